package subscription

import (
	"log/slog"
	"net/http"

	"portfolio-api/internal/common"
	"portfolio-api/internal/i18n"
	"portfolio-api/internal/middleware"

	"github.com/gin-gonic/gin"
)

// Handler handles HTTP requests for the subscription domain.
type Handler struct {
	service *Service
}

// NewHandler creates a new subscription handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Subscribe handles POST /api/v1/subscriptions
func (h *Handler) Subscribe(c *gin.Context) {
	var req Request
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Error(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	lang := middleware.Lang(c)
	outcome, err := h.service.Subscribe(c.Request.Context(), req.Email, lang)
	if err != nil {
		slog.Error("subscribe failed", "error", err)
		common.HandleError(c, err)
		return
	}

	common.Success(c, http.StatusOK, Response{
		Status:  outcome,
		Message: i18n.T(lang, subscribeMessageKey(outcome)),
	})
}

// Unsubscribe handles POST /api/v1/unsubscribe
func (h *Handler) Unsubscribe(c *gin.Context) {
	var req Request
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Error(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	lang := middleware.Lang(c)
	outcome, err := h.service.Unsubscribe(c.Request.Context(), req.Email, lang)
	if err != nil {
		slog.Error("unsubscribe failed", "error", err)
		common.HandleError(c, err)
		return
	}

	common.Success(c, http.StatusOK, Response{
		Status:  outcome,
		Message: i18n.T(lang, unsubscribeMessageKey(outcome)),
	})
}

func subscribeMessageKey(outcome Outcome) string {
	switch outcome {
	case OutcomeAlready:
		return "subscribe.already"
	case OutcomeResubscribed:
		return "subscribe.resubscribed"
	default:
		return "subscribe.subscribed"
	}
}

func unsubscribeMessageKey(outcome Outcome) string {
	switch outcome {
	case OutcomeAlready:
		return "unsubscribe.already"
	case OutcomeNotFound:
		return "unsubscribe.not_found"
	default:
		return "unsubscribe.ok"
	}
}

// RegisterRoutes registers subscription routes to the given router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/subscriptions", h.Subscribe)
	rg.POST("/unsubscribe", h.Unsubscribe)
}
