package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"portfolio-api/internal/domain/blog"

	"github.com/supabase-community/postgrest-go"
	supa "github.com/supabase-community/supabase-go"
)

const tableName = "posts"

var _ blog.PostStore = (*SupabaseStore)(nil)

// SupabaseStore implements PostStore using the Supabase Go SDK.
type SupabaseStore struct {
	client *supa.Client
}

// NewSupabaseStore creates a new Supabase-backed post store.
func NewSupabaseStore(supabaseURL, serviceKey string) (*SupabaseStore, error) {
	client, err := supa.NewClient(supabaseURL, serviceKey, nil)
	if err != nil {
		return nil, fmt.Errorf("creating supabase client: %w", err)
	}
	return &SupabaseStore{client: client}, nil
}

// supabaseRow is the internal representation for Supabase PostgREST insert/update.
type supabaseRow struct {
	ID          string          `json:"id,omitempty"`
	Slug        string          `json:"slug"`
	Title       string          `json:"title"`
	Description *string         `json:"description,omitempty"`
	Category    *string         `json:"category,omitempty"`
	CoverURL    *string         `json:"cover_url,omitempty"`
	Lang        *string         `json:"lang,omitempty"`
	Featured    bool            `json:"featured"`
	Published   bool            `json:"published"`
	Views       int             `json:"views"`
	Body        json.RawMessage `json:"body,omitempty"`
	PublishedAt *string         `json:"published_at,omitempty"`
	CreatedAt   string          `json:"created_at,omitempty"`
	UpdatedAt   string          `json:"updated_at,omitempty"`
}

// ListPublished returns published posts, newest first.
func (s *SupabaseStore) ListPublished(ctx context.Context) ([]*blog.Post, error) {
	data, _, err := s.client.From(tableName).
		Select("*", "exact", false).
		Eq("published", "true").
		Order("published_at", &postgrest.OrderOpts{Ascending: false}).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("listing posts: %w", err)
	}

	var rows []supabaseRow
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("parsing post list: %w", err)
	}

	posts := make([]*blog.Post, len(rows))
	for i, row := range rows {
		posts[i] = rowToPost(&row)
	}
	return posts, nil
}

// GetBySlug retrieves a post by its slug. Returns nil, nil if no record
// is found.
func (s *SupabaseStore) GetBySlug(ctx context.Context, slug string) (*blog.Post, error) {
	data, _, err := s.client.From(tableName).
		Select("*", "exact", false).
		Eq("slug", slug).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("fetching post: %w", err)
	}

	var rows []supabaseRow
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("parsing post: %w", err)
	}

	if len(rows) == 0 {
		return nil, nil
	}
	return rowToPost(&rows[0]), nil
}

// Create inserts a new post and fills in the generated ID and timestamps.
func (s *SupabaseStore) Create(ctx context.Context, post *blog.Post) error {
	row := postToRow(post)
	if post.Published && post.PublishedAt == nil {
		now := time.Now().UTC().Format(time.RFC3339Nano)
		row.PublishedAt = &now
	}

	var results []supabaseRow
	data, _, err := s.client.From(tableName).Insert(row, false, "", "representation", "").Execute()
	if err != nil {
		return fmt.Errorf("inserting post: %w", err)
	}

	if err := json.Unmarshal(data, &results); err != nil {
		return fmt.Errorf("parsing insert response: %w", err)
	}

	if len(results) > 0 {
		created := rowToPost(&results[0])
		post.ID = created.ID
		post.PublishedAt = created.PublishedAt
		post.CreatedAt = created.CreatedAt
		post.UpdatedAt = created.UpdatedAt
	}

	return nil
}

// Update overwrites the post stored under slug.
func (s *SupabaseStore) Update(ctx context.Context, slug string, post *blog.Post) error {
	update := map[string]any{
		"slug":        post.Slug,
		"title":       post.Title,
		"description": post.Description,
		"category":    post.Category,
		"cover_url":   post.CoverURL,
		"lang":        post.Lang,
		"featured":    post.Featured,
		"published":   post.Published,
		"updated_at":  time.Now().UTC().Format(time.RFC3339Nano),
	}
	if post.Body != nil {
		update["body"] = post.Body
	}
	if post.Published && post.PublishedAt == nil {
		update["published_at"] = time.Now().UTC().Format(time.RFC3339Nano)
	}

	_, _, err := s.client.From(tableName).Update(update, "", "").Eq("slug", slug).Execute()
	if err != nil {
		return fmt.Errorf("updating post: %w", err)
	}
	return nil
}

// IncrementViews bumps the view counter for a post. Read-then-write;
// concurrent increments may lose a count, which is acceptable for a
// page-view metric.
func (s *SupabaseStore) IncrementViews(ctx context.Context, slug string) error {
	post, err := s.GetBySlug(ctx, slug)
	if err != nil {
		return err
	}
	if post == nil {
		return fmt.Errorf("post '%s' not found", slug)
	}

	update := map[string]any{
		"views":      post.Views + 1,
		"updated_at": time.Now().UTC().Format(time.RFC3339Nano),
	}

	_, _, err = s.client.From(tableName).Update(update, "", "").Eq("slug", slug).Execute()
	if err != nil {
		return fmt.Errorf("incrementing views: %w", err)
	}
	return nil
}

func postToRow(post *blog.Post) supabaseRow {
	row := supabaseRow{
		Slug:      post.Slug,
		Title:     post.Title,
		Featured:  post.Featured,
		Published: post.Published,
		Views:     post.Views,
		Body:      post.Body,
	}

	if post.Description != "" {
		row.Description = &post.Description
	}
	if post.Category != "" {
		row.Category = &post.Category
	}
	if post.CoverURL != "" {
		row.CoverURL = &post.CoverURL
	}
	if post.Lang != "" {
		row.Lang = &post.Lang
	}
	if post.PublishedAt != nil {
		ts := post.PublishedAt.UTC().Format(time.RFC3339Nano)
		row.PublishedAt = &ts
	}

	return row
}

// rowToPost converts a supabaseRow to a Post.
func rowToPost(row *supabaseRow) *blog.Post {
	post := &blog.Post{
		ID:        row.ID,
		Slug:      row.Slug,
		Title:     row.Title,
		Featured:  row.Featured,
		Published: row.Published,
		Views:     row.Views,
		Body:      row.Body,
	}

	if row.Description != nil {
		post.Description = *row.Description
	}
	if row.Category != nil {
		post.Category = *row.Category
	}
	if row.CoverURL != nil {
		post.CoverURL = *row.CoverURL
	}
	if row.Lang != nil {
		post.Lang = *row.Lang
	}

	if row.PublishedAt != nil {
		if t, err := time.Parse(time.RFC3339Nano, *row.PublishedAt); err == nil {
			post.PublishedAt = &t
		}
	}
	if row.CreatedAt != "" {
		if t, err := time.Parse(time.RFC3339Nano, row.CreatedAt); err == nil {
			post.CreatedAt = t
		}
	}
	if row.UpdatedAt != "" {
		if t, err := time.Parse(time.RFC3339Nano, row.UpdatedAt); err == nil {
			post.UpdatedAt = t
		}
	}

	return post
}
