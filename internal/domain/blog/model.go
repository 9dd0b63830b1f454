package blog

import (
	"encoding/json"
	"time"

	"portfolio-api/internal/domain/content"
)

// Post is a blog entry as persisted. Body holds the editor's document
// verbatim; it is transformed into renderable blocks on read.
type Post struct {
	ID          string          `json:"id"`
	Slug        string          `json:"slug"`
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	Category    string          `json:"category,omitempty"`
	CoverURL    string          `json:"cover_url,omitempty"`
	Lang        string          `json:"lang,omitempty"`
	Featured    bool            `json:"featured"`
	Published   bool            `json:"published"`
	Views       int             `json:"views"`
	Body        json.RawMessage `json:"body,omitempty"`
	PublishedAt *time.Time      `json:"published_at,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// Summary is a post without its body, for list responses.
type Summary struct {
	ID          string     `json:"id"`
	Slug        string     `json:"slug"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Category    string     `json:"category,omitempty"`
	CoverURL    string     `json:"cover_url,omitempty"`
	Lang        string     `json:"lang,omitempty"`
	Featured    bool       `json:"featured"`
	Views       int        `json:"views"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
}

// View is a single post ready for rendering: the stored body replaced by
// its transformed block sequence.
type View struct {
	Summary
	Content content.Doc `json:"content"`
}

// UpsertRequest is the admin payload for creating or updating a post.
type UpsertRequest struct {
	Slug        string          `json:"slug" binding:"required"`
	Title       string          `json:"title" binding:"required"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	CoverURL    string          `json:"cover_url"`
	Lang        string          `json:"lang"`
	Featured    bool            `json:"featured"`
	Published   bool            `json:"published"`
	Body        json.RawMessage `json:"body"`
}

func summaryOf(p *Post) Summary {
	return Summary{
		ID:          p.ID,
		Slug:        p.Slug,
		Title:       p.Title,
		Description: p.Description,
		Category:    p.Category,
		CoverURL:    p.CoverURL,
		Lang:        p.Lang,
		Featured:    p.Featured,
		Views:       p.Views,
		PublishedAt: p.PublishedAt,
	}
}
