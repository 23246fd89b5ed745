package http

import (
	"github.com/gin-gonic/gin"

	"chat-relay/internal/middleware"
)

// RegisterRoutes maps HTTP verbs and paths to Handler methods.
// The consolidate endpoint is rate limited per client IP; reads are not.
func RegisterRoutes(rg *gin.RouterGroup, h Handler, mw middleware.Middleware) {
	chat := rg.Group("/chat")
	{
		chat.POST("/consolidate", mw.RateLimit(), h.Consolidate)
		chat.GET("/conversations", h.List)
		chat.GET("/conversations/:id", h.Detail)
	}
}
