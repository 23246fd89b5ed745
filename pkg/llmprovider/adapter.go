package llmprovider

import (
	"context"
	"errors"

	"chat-relay/pkg/deepseek"
	"chat-relay/pkg/gemini"
	"chat-relay/pkg/qwen"
)

// DeepSeekAdapter adapts pkg/deepseek to llmprovider.Provider interface
type DeepSeekAdapter struct {
	client deepseek.IDeepSeek
}

// NewDeepSeekAdapter creates a new DeepSeek adapter
func NewDeepSeekAdapter(client deepseek.IDeepSeek) *DeepSeekAdapter {
	return &DeepSeekAdapter{client: client}
}

// GenerateContent implements Provider interface
func (a *DeepSeekAdapter) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	dsReq := &deepseek.Request{
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
		Messages:    make([]deepseek.Message, 0, len(req.Messages)+1),
	}
	if req.SystemInstruction != nil {
		dsReq.Messages = append(dsReq.Messages, deepseek.Message{
			Role:    "system",
			Content: req.SystemInstruction.Content,
		})
	}
	for _, msg := range req.Messages {
		dsReq.Messages = append(dsReq.Messages, deepseek.Message{
			Role:    msg.Role,
			Content: msg.Content,
		})
	}

	resp, err := a.client.GenerateContent(ctx, dsReq)
	if err != nil {
		var apiErr *deepseek.APIError
		if errors.As(err, &apiErr) {
			return nil, &ProviderError{Provider: a.Name(), Kind: ErrProviderRejected, Detail: err}
		}
		return nil, &ProviderError{Provider: a.Name(), Kind: ErrProviderUnavailable, Detail: err}
	}

	out := &Response{
		ProviderName: a.Name(),
		ModelName:    a.client.Model(),
		Usage: &Usage{
			InputTokens:  resp.Usage.PromptTokens,
			OutputTokens: resp.Usage.CompletionTokens,
			TotalTokens:  resp.Usage.TotalTokens,
		},
	}
	if len(resp.Choices) > 0 {
		out.Content = Message{
			Role:    resp.Choices[0].Message.Role,
			Content: resp.Choices[0].Message.Content,
		}
	}
	return out, nil
}

// Name returns provider name
func (a *DeepSeekAdapter) Name() string {
	return "deepseek"
}

// Model returns model name
func (a *DeepSeekAdapter) Model() string {
	return a.client.Model()
}

// QwenAdapter adapts pkg/qwen to llmprovider.Provider interface
type QwenAdapter struct {
	client qwen.IQwen
}

// NewQwenAdapter creates a new Qwen adapter
func NewQwenAdapter(client qwen.IQwen) *QwenAdapter {
	return &QwenAdapter{client: client}
}

// GenerateContent implements Provider interface
func (a *QwenAdapter) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	qwenReq := &qwen.Request{
		SystemInstruction: toQwenContent(req.SystemInstruction),
		Messages:          toQwenContents(req.Messages),
		Temperature:       req.Temperature,
		MaxTokens:         req.MaxTokens,
	}

	resp, err := a.client.GenerateContent(ctx, qwenReq)
	if err != nil {
		var apiErr *qwen.APIError
		if errors.As(err, &apiErr) {
			return nil, &ProviderError{Provider: a.Name(), Kind: ErrProviderRejected, Detail: err}
		}
		return nil, &ProviderError{Provider: a.Name(), Kind: ErrProviderUnavailable, Detail: err}
	}

	return &Response{
		Content:      Message{Role: resp.Content.Role, Content: resp.Content.Text},
		ProviderName: a.Name(),
		ModelName:    a.client.Model(),
		Usage: &Usage{
			InputTokens:  resp.Usage.InputTokens,
			OutputTokens: resp.Usage.OutputTokens,
			TotalTokens:  resp.Usage.TotalTokens,
		},
	}, nil
}

// Name returns provider name
func (a *QwenAdapter) Name() string {
	return "qwen"
}

// Model returns model name
func (a *QwenAdapter) Model() string {
	return a.client.Model()
}

// GeminiAdapter adapts pkg/gemini to llmprovider.Provider interface
type GeminiAdapter struct {
	client gemini.IGemini
}

// NewGeminiAdapter creates a new Gemini adapter
func NewGeminiAdapter(client gemini.IGemini) *GeminiAdapter {
	return &GeminiAdapter{client: client}
}

// GenerateContent implements Provider interface
func (a *GeminiAdapter) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	geminiReq := &gemini.Request{
		SystemInstruction: toGeminiContent(req.SystemInstruction),
		Messages:          toGeminiContents(req.Messages),
		Temperature:       req.Temperature,
		MaxTokens:         req.MaxTokens,
	}

	resp, err := a.client.GenerateContent(ctx, geminiReq)
	if err != nil {
		var apiErr *gemini.APIError
		if errors.As(err, &apiErr) {
			return nil, &ProviderError{Provider: a.Name(), Kind: ErrProviderRejected, Detail: err}
		}
		return nil, &ProviderError{Provider: a.Name(), Kind: ErrProviderUnavailable, Detail: err}
	}

	return &Response{
		Content:      Message{Role: resp.Content.Role, Content: resp.Content.Text},
		ProviderName: a.Name(),
		ModelName:    a.client.Model(),
		Usage: &Usage{
			InputTokens:  resp.Usage.InputTokens,
			OutputTokens: resp.Usage.OutputTokens,
			TotalTokens:  resp.Usage.TotalTokens,
		},
	}, nil
}

// Name returns provider name
func (a *GeminiAdapter) Name() string {
	return "gemini"
}

// Model returns model name
func (a *GeminiAdapter) Model() string {
	return a.client.Model()
}

// Conversion helpers

func toQwenContent(msg *Message) *qwen.Content {
	if msg == nil {
		return nil
	}
	return &qwen.Content{Role: msg.Role, Text: msg.Content}
}

func toQwenContents(msgs []Message) []qwen.Content {
	out := make([]qwen.Content, len(msgs))
	for i, m := range msgs {
		out[i] = qwen.Content{Role: m.Role, Text: m.Content}
	}
	return out
}

func toGeminiContent(msg *Message) *gemini.Content {
	if msg == nil {
		return nil
	}
	return &gemini.Content{Role: msg.Role, Text: msg.Content}
}

func toGeminiContents(msgs []Message) []gemini.Content {
	out := make([]gemini.Content, len(msgs))
	for i, m := range msgs {
		out[i] = gemini.Content{Role: m.Role, Text: m.Content}
	}
	return out
}
