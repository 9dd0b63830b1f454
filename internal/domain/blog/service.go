// Package blog serves post content to the site frontend. Post bodies are
// stored as editor documents and transformed into renderable blocks on
// the way out; fetching a post doubles as the frontend's view beacon.
package blog

import (
	"context"
	"fmt"
	"log/slog"

	"portfolio-api/internal/common"
	"portfolio-api/internal/domain/content"
)

// ViewEnqueuer defines the contract for recording view beacons.
// The implementation lives in infra/queue.
type ViewEnqueuer interface {
	EnqueueIncrementView(slug string) error
}

// Service orchestrates post retrieval and view tracking.
type Service struct {
	store PostStore
	views ViewEnqueuer
}

// NewService creates a new blog service. views may be nil to disable
// view tracking.
func NewService(store PostStore, views ViewEnqueuer) *Service {
	return &Service{store: store, views: views}
}

// ListPosts returns published post summaries, newest first.
func (s *Service) ListPosts(ctx context.Context) ([]Summary, error) {
	posts, err := s.store.ListPublished(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing posts: %w", err)
	}

	summaries := make([]Summary, 0, len(posts))
	for _, p := range posts {
		summaries = append(summaries, summaryOf(p))
	}
	return summaries, nil
}

// GetPost returns one post with its body transformed into blocks, and
// records a view. The beacon is fire-and-forget: an enqueue failure is
// logged and the post is still served.
func (s *Service) GetPost(ctx context.Context, slug string) (*View, error) {
	post, err := s.store.GetBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("fetching post: %w", err)
	}
	if post == nil || !post.Published {
		return nil, common.NewNotFoundError("post", slug)
	}

	if s.views != nil {
		if err := s.views.EnqueueIncrementView(slug); err != nil {
			slog.Error("failed to enqueue view increment", "slug", slug, "error", err)
		}
	}

	return &View{
		Summary: summaryOf(post),
		Content: content.Transform(post.Body),
	}, nil
}

// CreatePost stores a new post from the admin editor.
func (s *Service) CreatePost(ctx context.Context, req *UpsertRequest) (*Post, error) {
	existing, err := s.store.GetBySlug(ctx, req.Slug)
	if err != nil {
		return nil, fmt.Errorf("checking slug: %w", err)
	}
	if existing != nil {
		return nil, common.NewValidationError(fmt.Sprintf("slug '%s' is already in use", req.Slug))
	}

	post := postFromRequest(req)
	if err := s.store.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("creating post: %w", err)
	}

	slog.Info("post created", "slug", post.Slug, "published", post.Published)
	return post, nil
}

// UpdatePost overwrites an existing post from the admin editor.
func (s *Service) UpdatePost(ctx context.Context, slug string, req *UpsertRequest) (*Post, error) {
	existing, err := s.store.GetBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("fetching post: %w", err)
	}
	if existing == nil {
		return nil, common.NewNotFoundError("post", slug)
	}

	post := postFromRequest(req)
	if err := s.store.Update(ctx, slug, post); err != nil {
		return nil, fmt.Errorf("updating post: %w", err)
	}

	slog.Info("post updated", "slug", slug)
	return post, nil
}

func postFromRequest(req *UpsertRequest) *Post {
	return &Post{
		Slug:        req.Slug,
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		CoverURL:    req.CoverURL,
		Lang:        req.Lang,
		Featured:    req.Featured,
		Published:   req.Published,
		Body:        req.Body,
	}
}
