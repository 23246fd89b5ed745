package http

import (
	"github.com/gin-gonic/gin"
)

// processConsolidateReq binds and validates the consolidate request body.
func (h *handler) processConsolidateReq(c *gin.Context) (consolidateReq, error) {
	var req consolidateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, err
	}
	return req, req.validate()
}
