package blog

import (
	"log/slog"
	"net/http"

	"portfolio-api/internal/common"

	"github.com/gin-gonic/gin"
)

// Handler handles HTTP requests for the blog domain.
type Handler struct {
	service *Service
}

// NewHandler creates a new blog handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// ListPosts handles GET /api/v1/posts
func (h *Handler) ListPosts(c *gin.Context) {
	posts, err := h.service.ListPosts(c.Request.Context())
	if err != nil {
		slog.Error("list posts failed", "error", err)
		common.HandleError(c, err)
		return
	}

	common.Success(c, http.StatusOK, gin.H{"posts": posts})
}

// GetPost handles GET /api/v1/posts/:slug
// The frontend also uses this endpoint as its view beacon.
func (h *Handler) GetPost(c *gin.Context) {
	view, err := h.service.GetPost(c.Request.Context(), c.Param("slug"))
	if err != nil {
		common.HandleError(c, err)
		return
	}

	common.Success(c, http.StatusOK, view)
}

// CreatePost handles POST /api/v1/admin/posts
func (h *Handler) CreatePost(c *gin.Context) {
	var req UpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Error(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	post, err := h.service.CreatePost(c.Request.Context(), &req)
	if err != nil {
		slog.Error("create post failed", "slug", req.Slug, "error", err)
		common.HandleError(c, err)
		return
	}

	common.Success(c, http.StatusCreated, post)
}

// UpdatePost handles PUT /api/v1/admin/posts/:slug
func (h *Handler) UpdatePost(c *gin.Context) {
	var req UpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Error(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	slug := c.Param("slug")
	post, err := h.service.UpdatePost(c.Request.Context(), slug, &req)
	if err != nil {
		slog.Error("update post failed", "slug", slug, "error", err)
		common.HandleError(c, err)
		return
	}

	common.Success(c, http.StatusOK, post)
}

// RegisterRoutes registers public blog routes to the given router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/posts", h.ListPosts)
	rg.GET("/posts/:slug", h.GetPost)
}

// RegisterAdminRoutes registers editor routes to the given router group.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.POST("/posts", h.CreatePost)
	rg.PUT("/posts/:slug", h.UpdatePost)
}
