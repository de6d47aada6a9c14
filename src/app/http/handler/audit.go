package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"pgbridge/src/app/http/dto"
	"pgbridge/src/app/http/response"
	"pgbridge/src/app/middleware"
	"pgbridge/src/core/usecase"
)

// AuditHandler exposes the statement audit trail.
type AuditHandler struct {
	auditService *usecase.AuditService
}

// NewAuditHandler creates a new AuditHandler.
func NewAuditHandler(auditService *usecase.AuditService) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

// List returns recent audit entries, newest first.
// GET /v1/audit?limit=20
func (h *AuditHandler) List(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			response.BadRequest(c, "invalid limit parameter", middleware.GetRequestID(c))
			return
		}
		limit = n
	}

	entries, err := h.auditService.Recent(c.Request.Context(), limit)
	if err != nil {
		c.Error(err)
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}

	out := make([]dto.AuditEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, dto.AuditEntryFromDomain(e))
	}
	response.OK(c, out)
}
