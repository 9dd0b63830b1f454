package contact

import (
	"log/slog"
	"net/http"

	"portfolio-api/internal/common"
	"portfolio-api/internal/i18n"
	"portfolio-api/internal/middleware"

	"github.com/gin-gonic/gin"
)

// Handler handles HTTP requests for the contact form.
type Handler struct {
	service *Service
}

// NewHandler creates a new contact handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Send handles POST /api/v1/contact
func (h *Handler) Send(c *gin.Context) {
	var req Request
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Error(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	if err := h.service.Send(c.Request.Context(), &req); err != nil {
		slog.Error("contact request failed", "error", err)
		common.HandleError(c, err)
		return
	}

	lang := middleware.Lang(c)
	common.Success(c, http.StatusOK, gin.H{
		"message": i18n.T(lang, "contact.sent"),
	})
}

// RegisterRoutes registers contact routes to the given router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/contact", h.Send)
}
