package llmprovider

import (
	"context"
	"fmt"
	"strings"
	"time"

	"chat-relay/pkg/log"
)

// Manager orchestrates provider selection and fallback.
// A failed call is never retried against the same provider; when fallback is
// enabled the request moves on to the next provider in priority order.
type Manager struct {
	providers []Provider
	config    *Config
	logger    log.Logger
}

// Config defines configuration for the Provider Manager
type Config struct {
	FallbackEnabled bool
	MaxTotalTimeout time.Duration // Global timeout for entire fallback chain
}

// NewManager creates a new Provider Manager with the given providers, config, and logger
func NewManager(providers []Provider, config *Config, logger log.Logger) *Manager {
	return &Manager{
		providers: providers,
		config:    config,
		logger:    logger,
	}
}

// GenerateContent iterates through providers in priority order with fallback logic
func (m *Manager) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	if len(m.providers) == 0 {
		return nil, ErrNoProvidersConfigured
	}
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	// Create context with global timeout for entire fallback chain
	var cancel context.CancelFunc
	if m.config.MaxTotalTimeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, m.config.MaxTotalTimeout)
		defer cancel()
	}

	var lastErr error

	for _, provider := range m.providers {
		// Check if context is already cancelled (timeout exceeded)
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("global timeout exceeded after trying provider(s): %w", ctx.Err())
		default:
		}

		resp, err := provider.GenerateContent(ctx, req)
		if err == nil {
			m.logSuccess(ctx, provider, resp)
			return resp, nil
		}

		m.logFailure(ctx, provider, err)
		lastErr = err

		// If fallback is disabled, surface the first provider's error verbatim
		if !m.config.FallbackEnabled {
			return nil, err
		}
	}

	// All providers failed: surface the last provider error so errors.Is
	// classification (unavailable vs rejected) still works at the boundary.
	return nil, fmt.Errorf("%w: %w", ErrAllProvidersFailed, lastErr)
}

// validateRequest enforces the completion input contract: at least one
// message, every message with non-empty content.
func validateRequest(req *Request) error {
	if req == nil || len(req.Messages) == 0 {
		return fmt.Errorf("%w: at least one message required", ErrInvalidRequest)
	}
	for i, msg := range req.Messages {
		if strings.TrimSpace(msg.Content) == "" {
			return fmt.Errorf("%w: message %d has empty content", ErrInvalidRequest, i)
		}
	}
	return nil
}

// logSuccess logs successful LLM generation with metrics
func (m *Manager) logSuccess(ctx context.Context, provider Provider, resp *Response) {
	m.logger.Infof(ctx, "LLM generation successful: provider=%s model=%s input_tokens=%d output_tokens=%d",
		provider.Name(), provider.Model(), resp.Usage.InputTokens, resp.Usage.OutputTokens)
}

// logFailure logs failed LLM generation attempts
func (m *Manager) logFailure(ctx context.Context, provider Provider, err error) {
	m.logger.Warnf(ctx, "LLM generation failed: provider=%s model=%s error=%v",
		provider.Name(), provider.Model(), err)
}
