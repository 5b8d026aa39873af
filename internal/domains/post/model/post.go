package model

import (
	"time"

	"github.com/google/uuid"
)

type Post struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Slug         string    `json:"slug" db:"slug"`
	Title        string    `json:"title" db:"title"`
	AuthorHandle string    `json:"author_handle" db:"author_handle"`
	Content      string    `json:"content" db:"content"`
	Excerpt      *string   `json:"excerpt,omitempty" db:"excerpt"`
	CoverImage   *string   `json:"cover_image,omitempty" db:"cover_image"`
	Published    bool      `json:"published" db:"published"`
	Featured     bool      `json:"featured" db:"featured"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

type CreatePostRequest struct {
	Slug       string  `json:"slug"`
	Title      string  `json:"title" binding:"required"`
	Content    string  `json:"content" binding:"required"`
	Excerpt    *string `json:"excerpt,omitempty"`
	CoverImage *string `json:"cover_image,omitempty"`
	Published  bool    `json:"published"`
	Featured   bool    `json:"featured"`
}

type UpdatePostRequest struct {
	Title      *string `json:"title,omitempty"`
	Content    *string `json:"content,omitempty"`
	Excerpt    *string `json:"excerpt,omitempty"`
	CoverImage *string `json:"cover_image,omitempty"`
	Published  *bool   `json:"published,omitempty"`
	Featured   *bool   `json:"featured,omitempty"`
}

// PostFilter narrows a listing. Zero value lists published posts only.
type PostFilter struct {
	AuthorHandle       string
	FeaturedOnly       bool
	IncludeUnpublished bool
	Limit              int
	Offset             int
}

// UpsertRow is a post as parsed out of a content sheet. The sync pipeline
// writes these by slug, creating or overwriting.
type UpsertRow struct {
	Slug      string
	Title     string
	Author    string
	Content   string
	Published bool
	Featured  bool
	UpdatedAt *time.Time
}

type PostListItem struct {
	Slug         string    `json:"slug"`
	Title        string    `json:"title"`
	AuthorHandle string    `json:"author_handle"`
	Excerpt      *string   `json:"excerpt,omitempty"`
	CoverImage   *string   `json:"cover_image,omitempty"`
	Featured     bool      `json:"featured"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (p *Post) ToListItem() *PostListItem {
	return &PostListItem{
		Slug:         p.Slug,
		Title:        p.Title,
		AuthorHandle: p.AuthorHandle,
		Excerpt:      p.Excerpt,
		CoverImage:   p.CoverImage,
		Featured:     p.Featured,
		UpdatedAt:    p.UpdatedAt,
	}
}
