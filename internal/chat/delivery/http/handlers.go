package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"chat-relay/pkg/response"
)

// Consolidate godoc
// @Summary     Consolidate a chat exchange
// @Description Sends the turn batch to the completion provider and persists the latest user turn plus the generated reply into the conversation. A new conversation is created when existing_id is omitted.
// @Tags        Chat
// @Accept      json
// @Produce     json
// @Param       body body consolidateReq true "Turn batch and optional conversation ID"
// @Success     200 {object} consolidateResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     404 {object} response.Resp "Not Found - unknown conversation"
// @Failure     502 {object} response.Resp "Bad Gateway - provider rejected the request"
// @Failure     503 {object} response.Resp "Service Unavailable - provider unreachable"
// @Router      /api/v1/chat/consolidate [POST]
func (h *handler) Consolidate(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processConsolidateReq(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	output, err := h.uc.Consolidate(ctx, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "uc.Consolidate: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, h.newConsolidateResp(output))
}

// List godoc
// @Summary     List conversations
// @Description Returns summaries of all conversations, most recently updated first.
// @Tags        Chat
// @Accept      json
// @Produce     json
// @Success     200 {object} listResp
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/chat/conversations [GET]
func (h *handler) List(c *gin.Context) {
	ctx := c.Request.Context()

	output, err := h.uc.List(ctx)
	if err != nil {
		h.l.Errorf(ctx, "uc.List: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, h.newListResp(output))
}

// Detail godoc
// @Summary     Get conversation detail
// @Description Returns the full ordered turn history of a conversation.
// @Tags        Chat
// @Accept      json
// @Produce     json
// @Param       id path string true "Conversation ID"
// @Success     200 {object} detailResp
// @Failure     404 {object} response.Resp "Not Found"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/chat/conversations/{id} [GET]
func (h *handler) Detail(c *gin.Context) {
	ctx := c.Request.Context()

	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id is required"})
		return
	}

	output, err := h.uc.Detail(ctx, id)
	if err != nil {
		h.l.Errorf(ctx, "uc.Detail: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, h.newDetailResp(output))
}
