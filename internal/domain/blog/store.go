package blog

import "context"

// PostStore defines the contract for persisting posts.
// The implementation lives in infra/store.
type PostStore interface {
	// ListPublished retrieves published posts, newest first.
	ListPublished(ctx context.Context) ([]*Post, error)

	// GetBySlug retrieves a post by slug. Returns nil, nil when no post
	// exists.
	GetBySlug(ctx context.Context, slug string) (*Post, error)

	// Create inserts a new post and fills in generated fields.
	Create(ctx context.Context, post *Post) error

	// Update overwrites the mutable fields of the post with the given slug.
	Update(ctx context.Context, slug string, post *Post) error

	// IncrementViews bumps the view counter by one. Best effort: the
	// beacon pipeline tolerates lost increments.
	IncrementViews(ctx context.Context, slug string) error
}
