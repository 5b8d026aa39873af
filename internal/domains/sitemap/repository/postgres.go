package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"blogpress-backend/internal/domains/sitemap/model"
)

type RepositoryInterface interface {
	// ListAuthors returns the authors whose pages belong in the sitemap.
	ListAuthors(ctx context.Context) ([]model.AuthorEntry, error)
	// ListPosts returns published posts only.
	ListPosts(ctx context.Context) ([]model.PostEntry, error)
}

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) ListAuthors(ctx context.Context) ([]model.AuthorEntry, error) {
	rows, err := r.pool.Query(ctx, `
        SELECT handle, updated_at
        FROM authors
        WHERE status = 'active' AND visibility = 'visible'
        ORDER BY handle ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list sitemap authors: %w", err)
	}
	defer rows.Close()

	var entries []model.AuthorEntry
	for rows.Next() {
		var e model.AuthorEntry
		if err := rows.Scan(&e.Handle, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan sitemap author: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate sitemap authors: %w", err)
	}

	return entries, nil
}

func (r *postgresRepository) ListPosts(ctx context.Context) ([]model.PostEntry, error) {
	rows, err := r.pool.Query(ctx, `
        SELECT p.slug, p.author_handle, p.updated_at
        FROM posts p
        JOIN authors a ON a.handle = p.author_handle
        WHERE p.published = TRUE AND a.status = 'active' AND a.visibility = 'visible'
        ORDER BY p.updated_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list sitemap posts: %w", err)
	}
	defer rows.Close()

	var entries []model.PostEntry
	for rows.Next() {
		var e model.PostEntry
		if err := rows.Scan(&e.Slug, &e.AuthorHandle, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan sitemap post: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate sitemap posts: %w", err)
	}

	return entries, nil
}
