package model

import (
	"time"

	"github.com/google/uuid"
)

// MaxCommentLength caps comment bodies.
const MaxCommentLength = 2000

type Comment struct {
	ID          uuid.UUID `json:"id" db:"id"`
	PostSlug    string    `json:"post_slug" db:"post_slug"`
	AuthorName  string    `json:"author_name" db:"author_name"`
	AuthorEmail string    `json:"author_email" db:"author_email"`
	Content     string    `json:"content" db:"content"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

type CreateCommentRequest struct {
	AuthorName  string `json:"author_name" binding:"required"`
	AuthorEmail string `json:"author_email" binding:"required"`
	Content     string `json:"content" binding:"required"`
}
