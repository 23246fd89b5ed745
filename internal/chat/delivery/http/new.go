package http

import (
	"github.com/gin-gonic/gin"

	"chat-relay/internal/chat"
	"chat-relay/pkg/log"
)

// Handler is the public interface for the chat HTTP delivery layer.
type Handler interface {
	Consolidate(c *gin.Context)
	List(c *gin.Context)
	Detail(c *gin.Context)
}

type handler struct {
	l  log.Logger
	uc chat.UseCase
}

// New creates a new HTTP handler for the chat domain.
func New(l log.Logger, uc chat.UseCase) *handler {
	return &handler{
		l:  l,
		uc: uc,
	}
}
