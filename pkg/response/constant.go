package response

const (
	// MessageSuccess is the message returned on every successful response.
	MessageSuccess = "success"

	// DefaultErrorMessage is the generic client-facing message for 5xx errors.
	DefaultErrorMessage = "something went wrong"

	// InternalServerErrorCode is the error_code for unexpected failures.
	InternalServerErrorCode = 500

	// DateFormat and DateTimeFormat are the wire formats for Date/DateTime.
	DateFormat     = "2006-01-02"
	DateTimeFormat = "2006-01-02 15:04:05"
)
