package http

import (
	"errors"

	"chat-relay/internal/chat"
	pkgErrors "chat-relay/pkg/errors"
	"chat-relay/pkg/llmprovider"
	"chat-relay/pkg/response"
)

// mapError translates domain/use-case errors into HTTP errors from pkg/errors.
// Store and unexpected errors collapse into a generic 500 so internals never
// leak to clients.
func (h *handler) mapError(err error) error {
	switch {
	case errors.Is(err, chat.ErrEmptyTurns):
		return pkgErrors.NewHTTPError(400, "turns must not be empty")
	case errors.Is(err, chat.ErrInvalidRole):
		return pkgErrors.NewHTTPError(400, "turn role must be user, assistant or system")
	case errors.Is(err, chat.ErrEmptyContent):
		return pkgErrors.NewHTTPError(400, "turn content must not be empty")
	case errors.Is(err, chat.ErrConversationNotFound):
		return pkgErrors.NewHTTPError(404, "conversation not found")
	case errors.Is(err, llmprovider.ErrInvalidRequest):
		return pkgErrors.NewHTTPError(400, "invalid completion request")
	case errors.Is(err, llmprovider.ErrProviderRejected):
		return pkgErrors.NewHTTPError(502, "completion provider rejected the request")
	case errors.Is(err, llmprovider.ErrProviderUnavailable),
		errors.Is(err, llmprovider.ErrNoProvidersConfigured):
		return pkgErrors.NewHTTPError(503, "completion provider unavailable")
	case errors.Is(err, chat.ErrEmptyReply):
		return pkgErrors.NewHTTPError(502, "completion provider returned an empty reply")
	default:
		return pkgErrors.NewHTTPError(500, response.DefaultErrorMessage)
	}
}
