package deepseek

import "fmt"

// APIError is a non-2xx response from the DeepSeek API.
// Transport failures are returned as plain wrapped errors, not APIError.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("deepseek: API error %d: %s", e.StatusCode, e.Message)
}
