package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"blogpress-backend/internal/domains/post/model"
	"blogpress-backend/pkg/cache"
	"blogpress-backend/pkg/database"
)

type postgresRepository struct {
	pool  *pgxpool.Pool
	cache cache.Cache
}

func NewPostgresRepository(pool *pgxpool.Pool, cache cache.Cache) RepositoryInterface {
	return &postgresRepository{
		pool:  pool,
		cache: cache,
	}
}

// Cache key constants. Only single-post lookups are cached; listings go
// straight to the database.
const (
	postCacheKeyPrefix = "post:"
	cacheTTL           = 15 * time.Minute
)

const postColumns = `id, slug, title, author_handle, content, excerpt, cover_image, published, featured, created_at, updated_at`

func scanPost(row pgx.Row, p *model.Post) error {
	return row.Scan(
		&p.ID,
		&p.Slug,
		&p.Title,
		&p.AuthorHandle,
		&p.Content,
		&p.Excerpt,
		&p.CoverImage,
		&p.Published,
		&p.Featured,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
}

func (r *postgresRepository) Create(ctx context.Context, p *model.Post) (*model.Post, error) {
	query := `
        INSERT INTO posts (slug, title, author_handle, content, excerpt, cover_image, published, featured)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING ` + postColumns

	var created model.Post
	err := scanPost(r.pool.QueryRow(
		ctx,
		query,
		p.Slug,
		p.Title,
		p.AuthorHandle,
		p.Content,
		p.Excerpt,
		p.CoverImage,
		p.Published,
		p.Featured,
	), &created)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, model.ErrDuplicateSlug
		}
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	return &created, nil
}

func (r *postgresRepository) GetBySlug(ctx context.Context, slug string) (*model.Post, error) {
	cacheKey := postCacheKeyPrefix + slug

	var p model.Post
	if found, err := r.cache.Get(ctx, cacheKey, &p); err == nil && found {
		return &p, nil
	}

	query := `SELECT ` + postColumns + ` FROM posts WHERE slug = $1`

	err := scanPost(r.pool.QueryRow(ctx, query, slug), &p)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to get post by slug: %w", err)
	}

	_ = r.cache.Set(ctx, cacheKey, p, cacheTTL)

	return &p, nil
}

func (r *postgresRepository) List(ctx context.Context, filter model.PostFilter) ([]model.Post, int64, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + postColumns + ` FROM posts WHERE 1=1`)

	args := []interface{}{}
	argPos := 1

	if !filter.IncludeUnpublished {
		queryBuilder.WriteString(" AND published = TRUE")
	}
	if filter.FeaturedOnly {
		queryBuilder.WriteString(" AND featured = TRUE")
	}
	if filter.AuthorHandle != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND author_handle = $%d", argPos))
		args = append(args, filter.AuthorHandle)
		argPos++
	}

	countQuery := strings.Replace(queryBuilder.String(), "SELECT "+postColumns, "SELECT COUNT(*)", 1)
	countArgs := append([]interface{}{}, args...)

	queryBuilder.WriteString(" ORDER BY updated_at DESC")
	if filter.Limit > 0 {
		queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d", argPos))
		args = append(args, filter.Limit)
		argPos++
	}
	if filter.Offset > 0 {
		queryBuilder.WriteString(fmt.Sprintf(" OFFSET $%d", argPos))
		args = append(args, filter.Offset)
	}

	rows, err := r.pool.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list posts: %w", err)
	}
	defer rows.Close()

	var posts []model.Post
	for rows.Next() {
		var p model.Post
		if err := scanPost(rows, &p); err != nil {
			return nil, 0, fmt.Errorf("failed to scan post: %w", err)
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate posts: %w", err)
	}

	var total int64
	if err := r.pool.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count posts: %w", err)
	}

	return posts, total, nil
}

func (r *postgresRepository) Update(ctx context.Context, slug string, req *model.UpdatePostRequest) (*model.Post, error) {
	sets := []string{"updated_at = NOW()"}
	args := []interface{}{}
	argPos := 1

	appendSet := func(column string, value interface{}) {
		sets = append(sets, fmt.Sprintf("%s = $%d", column, argPos))
		args = append(args, value)
		argPos++
	}

	if req.Title != nil {
		appendSet("title", *req.Title)
	}
	if req.Content != nil {
		appendSet("content", *req.Content)
	}
	if req.Excerpt != nil {
		appendSet("excerpt", *req.Excerpt)
	}
	if req.CoverImage != nil {
		appendSet("cover_image", *req.CoverImage)
	}
	if req.Published != nil {
		appendSet("published", *req.Published)
	}
	if req.Featured != nil {
		appendSet("featured", *req.Featured)
	}

	query := fmt.Sprintf(
		`UPDATE posts SET %s WHERE slug = $%d RETURNING %s`,
		strings.Join(sets, ", "), argPos, postColumns,
	)
	args = append(args, slug)

	var updated model.Post
	err := scanPost(r.pool.QueryRow(ctx, query, args...), &updated)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to update post: %w", err)
	}

	r.invalidatePostCache(ctx, slug)

	return &updated, nil
}

// Delete removes the post and its comments together.
func (r *postgresRepository) Delete(ctx context.Context, slug string) error {
	err := database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM comments WHERE post_slug = $1`, slug); err != nil {
			return fmt.Errorf("failed to delete post comments: %w", err)
		}

		tag, err := tx.Exec(ctx, `DELETE FROM posts WHERE slug = $1`, slug)
		if err != nil {
			return fmt.Errorf("failed to delete post: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return model.ErrPostNotFound
		}

		return nil
	})
	if err != nil {
		return err
	}

	r.invalidatePostCache(ctx, slug)

	return nil
}

// UpsertBatch is all-or-nothing: a bad row rolls back the whole batch so a
// partially applied sheet never goes live.
func (r *postgresRepository) UpsertBatch(ctx context.Context, upserts []model.UpsertRow) (int, error) {
	written, err := database.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (int, error) {
		count := 0
		for _, row := range upserts {
			updatedAt := row.UpdatedAt
			if updatedAt == nil {
				now := time.Now().UTC()
				updatedAt = &now
			}

			_, err := tx.Exec(ctx, `
                INSERT INTO posts (slug, title, author_handle, content, published, featured, updated_at)
                VALUES ($1, $2, $3, $4, $5, $6, $7)
                ON CONFLICT (slug) DO UPDATE SET
                    title = EXCLUDED.title,
                    author_handle = EXCLUDED.author_handle,
                    content = EXCLUDED.content,
                    published = EXCLUDED.published,
                    featured = EXCLUDED.featured,
                    updated_at = EXCLUDED.updated_at`,
				row.Slug, row.Title, row.Author, row.Content, row.Published, row.Featured, *updatedAt,
			)
			if err != nil {
				return 0, fmt.Errorf("failed to upsert post %q: %w", row.Slug, err)
			}
			count++
		}
		return count, nil
	})
	if err != nil {
		return 0, err
	}

	_ = r.cache.DeletePattern(ctx, postCacheKeyPrefix+"*")

	return written, nil
}

func (r *postgresRepository) invalidatePostCache(ctx context.Context, slug string) {
	_ = r.cache.Delete(ctx, postCacheKeyPrefix+slug)
}
