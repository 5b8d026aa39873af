package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"blogpress-backend/internal/domains/comment/model"
)

// Comments are append-only, so there is nothing to cache-invalidate beyond
// the parent post's rendered page.
type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

const commentColumns = `id, post_slug, author_name, author_email, content, created_at`

func scanComment(row pgx.Row, c *model.Comment) error {
	return row.Scan(
		&c.ID,
		&c.PostSlug,
		&c.AuthorName,
		&c.AuthorEmail,
		&c.Content,
		&c.CreatedAt,
	)
}

func (r *postgresRepository) Create(ctx context.Context, c *model.Comment) (*model.Comment, error) {
	query := `
        INSERT INTO comments (post_slug, author_name, author_email, content)
        VALUES ($1, $2, $3, $4)
        RETURNING ` + commentColumns

	var created model.Comment
	err := scanComment(r.pool.QueryRow(ctx, query, c.PostSlug, c.AuthorName, c.AuthorEmail, c.Content), &created)
	if err != nil {
		var pgErr *pgconn.PgError
		// 23503: the post_slug foreign key has no matching post.
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return nil, model.ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	return &created, nil
}

func (r *postgresRepository) ListByPost(ctx context.Context, postSlug string, limit, offset int) ([]model.Comment, int64, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+commentColumns+` FROM comments WHERE post_slug = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		postSlug, limit, offset,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list comments: %w", err)
	}
	defer rows.Close()

	var comments []model.Comment
	for rows.Next() {
		var c model.Comment
		if err := scanComment(rows, &c); err != nil {
			return nil, 0, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate comments: %w", err)
	}

	var total int64
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM comments WHERE post_slug = $1`, postSlug,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count comments: %w", err)
	}

	return comments, total, nil
}
