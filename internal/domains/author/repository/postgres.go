package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"blogpress-backend/internal/domains/author/model"
	"blogpress-backend/pkg/cache"
	"blogpress-backend/pkg/database"
)

// postgresRepository implements RepositoryInterface over pgxpool with
// cache-aside Redis.
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

// Cache key constants. Only single-author lookups are cached; the directory
// listing goes straight to the database.
const (
	authorCacheKeyPrefix = "author:"
	cacheTTL             = 15 * time.Minute
)

const authorColumns = `id, handle, name, email, bio, website, role, status, listing_status, visibility, api_token, created_at, updated_at`

func scanAuthor(row pgx.Row, a *model.Author) error {
	return row.Scan(
		&a.ID,
		&a.Handle,
		&a.Name,
		&a.Email,
		&a.Bio,
		&a.Website,
		&a.Role,
		&a.Status,
		&a.ListingStatus,
		&a.Visibility,
		&a.APIToken,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
}

func (r *postgresRepository) Create(ctx context.Context, a *model.Author) (*model.Author, error) {
	query := `
        INSERT INTO authors (handle, name, email, bio, website, role, status, listing_status, visibility, api_token)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
        RETURNING ` + authorColumns

	var created model.Author
	err := scanAuthor(r.pool.QueryRow(
		ctx,
		query,
		a.Handle,
		a.Name,
		a.Email,
		a.Bio,
		a.Website,
		a.Role,
		a.Status,
		a.ListingStatus,
		a.Visibility,
		a.APIToken,
	), &created)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, model.ErrDuplicateHandle
		}
		return nil, fmt.Errorf("failed to create author: %w", err)
	}

	return &created, nil
}

func (r *postgresRepository) GetByHandle(ctx context.Context, handle string) (*model.Author, error) {
	cacheKey := authorCacheKeyPrefix + handle

	var a model.Author
	if found, err := r.cache.Get(ctx, cacheKey, &a); err == nil && found {
		return &a, nil
	}

	query := `SELECT ` + authorColumns + ` FROM authors WHERE handle = $1`

	err := scanAuthor(r.pool.QueryRow(ctx, query, handle), &a)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrAuthorNotFound
		}
		return nil, fmt.Errorf("failed to get author by handle: %w", err)
	}

	_ = r.cache.Set(ctx, cacheKey, a, cacheTTL)

	return &a, nil
}

// GetAPIToken reads the token column directly; it intentionally bypasses the
// cache so a regenerated token takes effect immediately.
func (r *postgresRepository) GetAPIToken(ctx context.Context, handle string) (string, error) {
	var token string
	err := r.pool.QueryRow(ctx, `SELECT api_token FROM authors WHERE handle = $1`, handle).Scan(&token)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", model.ErrAuthorNotFound
		}
		return "", fmt.Errorf("failed to get api token: %w", err)
	}
	return token, nil
}

func (r *postgresRepository) List(ctx context.Context, filter model.AuthorFilter) ([]model.Author, int64, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + authorColumns + ` FROM authors WHERE 1=1`)

	args := []interface{}{}
	argPos := 1

	if !filter.IncludeHidden {
		// Public directory: listed, active, visible only.
		queryBuilder.WriteString(" AND status = 'active' AND listing_status = 'listed' AND visibility = 'visible'")
	}

	countQuery := strings.Replace(queryBuilder.String(), "SELECT "+authorColumns, "SELECT COUNT(*)", 1)

	queryBuilder.WriteString(" ORDER BY handle ASC")
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
		return nil, 0, fmt.Errorf("failed to list authors: %w", err)
	}
	defer rows.Close()

	var authors []model.Author
	for rows.Next() {
		var a model.Author
		if err := scanAuthor(rows, &a); err != nil {
			return nil, 0, fmt.Errorf("failed to scan author: %w", err)
		}
		authors = append(authors, a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate authors: %w", err)
	}

	var total int64
	if err := r.pool.QueryRow(ctx, countQuery).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count authors: %w", err)
	}

	return authors, total, nil
}

func (r *postgresRepository) Update(ctx context.Context, handle string, req *model.UpdateAuthorRequest) (*model.Author, error) {
	sets := []string{"updated_at = NOW()"}
	args := []interface{}{}
	argPos := 1

	appendSet := func(column string, value interface{}) {
		sets = append(sets, fmt.Sprintf("%s = $%d", column, argPos))
		args = append(args, value)
		argPos++
	}

	if req.Name != nil {
		appendSet("name", *req.Name)
	}
	if req.Email != nil {
		appendSet("email", *req.Email)
	}
	if req.Bio != nil {
		appendSet("bio", *req.Bio)
	}
	if req.Website != nil {
		appendSet("website", *req.Website)
	}

	query := fmt.Sprintf(
		`UPDATE authors SET %s WHERE handle = $%d RETURNING %s`,
		strings.Join(sets, ", "), argPos, authorColumns,
	)
	args = append(args, handle)

	var updated model.Author
	err := scanAuthor(r.pool.QueryRow(ctx, query, args...), &updated)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrAuthorNotFound
		}
		return nil, fmt.Errorf("failed to update author: %w", err)
	}

	r.invalidateAuthorCache(ctx, handle)

	return &updated, nil
}

func (r *postgresRepository) Transition(ctx context.Context, handle string, req *model.TransitionRequest) (*model.Author, error) {
	sets := []string{"updated_at = NOW()"}
	args := []interface{}{}
	argPos := 1

	appendSet := func(column string, value string) {
		sets = append(sets, fmt.Sprintf("%s = $%d", column, argPos))
		args = append(args, value)
		argPos++
	}

	if req.Role != nil {
		appendSet("role", *req.Role)
	}
	if req.Status != nil {
		appendSet("status", *req.Status)
	}
	if req.ListingStatus != nil {
		appendSet("listing_status", *req.ListingStatus)
	}
	if req.Visibility != nil {
		appendSet("visibility", *req.Visibility)
	}

	query := fmt.Sprintf(
		`UPDATE authors SET %s WHERE handle = $%d RETURNING %s`,
		strings.Join(sets, ", "), argPos, authorColumns,
	)
	args = append(args, handle)

	var updated model.Author
	err := scanAuthor(r.pool.QueryRow(ctx, query, args...), &updated)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrAuthorNotFound
		}
		return nil, fmt.Errorf("failed to transition author: %w", err)
	}

	r.invalidateAuthorCache(ctx, handle)

	return &updated, nil
}

func (r *postgresRepository) SetAPIToken(ctx context.Context, handle, token string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE authors SET api_token = $1, updated_at = NOW() WHERE handle = $2`,
		token, handle,
	)
	if err != nil {
		return fmt.Errorf("failed to set api token: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrAuthorNotFound
	}

	r.invalidateAuthorCache(ctx, handle)
	return nil
}

// DeleteCascade removes the author and every dependent row. Comments hang off
// posts, so they go first.
func (r *postgresRepository) DeleteCascade(ctx context.Context, handle string) error {
	err := database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx,
			`DELETE FROM comments WHERE post_slug IN (SELECT slug FROM posts WHERE author_handle = $1)`,
			handle,
		); err != nil {
			return fmt.Errorf("failed to delete author comments: %w", err)
		}

		if _, err := tx.Exec(ctx, `DELETE FROM posts WHERE author_handle = $1`, handle); err != nil {
			return fmt.Errorf("failed to delete author posts: %w", err)
		}

		if _, err := tx.Exec(ctx, `DELETE FROM preferences WHERE author_handle = $1`, handle); err != nil {
			return fmt.Errorf("failed to delete author preferences: %w", err)
		}

		tag, err := tx.Exec(ctx, `DELETE FROM authors WHERE handle = $1`, handle)
		if err != nil {
			return fmt.Errorf("failed to delete author: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return model.ErrAuthorNotFound
		}

		return nil
	})
	if err != nil {
		return err
	}

	r.invalidateAuthorCache(ctx, handle)
	_ = r.cache.DeletePattern(ctx, "posts:*")

	return nil
}

func (r *postgresRepository) CountPostsByHandle(ctx context.Context, handle string) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM posts WHERE author_handle = $1`, handle).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count posts: %w", err)
	}
	return count, nil
}

// ---- Join requests ----

const requestColumns = `id, handle, name, email, bio, website, api_token, status, created_at, updated_at`

func scanRequest(row pgx.Row, jr *model.JoinRequest) error {
	return row.Scan(
		&jr.ID,
		&jr.Handle,
		&jr.Name,
		&jr.Email,
		&jr.Bio,
		&jr.Website,
		&jr.APIToken,
		&jr.Status,
		&jr.CreatedAt,
		&jr.UpdatedAt,
	)
}

func (r *postgresRepository) CreateRequest(ctx context.Context, jr *model.JoinRequest) (*model.JoinRequest, error) {
	query := `
        INSERT INTO author_requests (handle, name, email, bio, website, api_token, status)
        VALUES ($1, $2, $3, $4, $5, $6, 'pending')
        RETURNING ` + requestColumns

	var created model.JoinRequest
	err := scanRequest(r.pool.QueryRow(
		ctx, query,
		jr.Handle, jr.Name, jr.Email, jr.Bio, jr.Website, jr.APIToken,
	), &created)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, model.ErrDuplicateHandle
		}
		return nil, fmt.Errorf("failed to create join request: %w", err)
	}

	return &created, nil
}

func (r *postgresRepository) ListRequests(ctx context.Context, status string) ([]model.JoinRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM author_requests`
	args := []interface{}{}
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list join requests: %w", err)
	}
	defer rows.Close()

	var requests []model.JoinRequest
	for rows.Next() {
		var jr model.JoinRequest
		if err := scanRequest(rows, &jr); err != nil {
			return nil, fmt.Errorf("failed to scan join request: %w", err)
		}
		requests = append(requests, jr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate join requests: %w", err)
	}

	return requests, nil
}

func (r *postgresRepository) GetRequestByID(ctx context.Context, id uuid.UUID) (*model.JoinRequest, error) {
	var jr model.JoinRequest
	err := scanRequest(r.pool.QueryRow(ctx,
		`SELECT `+requestColumns+` FROM author_requests WHERE id = $1`, id,
	), &jr)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrRequestNotFound
		}
		return nil, fmt.Errorf("failed to get join request: %w", err)
	}
	return &jr, nil
}

// RejectRequest is terminal: it only fires on pending rows.
func (r *postgresRepository) RejectRequest(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE author_requests SET status = 'rejected', updated_at = NOW() WHERE id = $1 AND status = 'pending'`,
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to reject join request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		// Either absent or already decided; disambiguate for the caller.
		if _, getErr := r.GetRequestByID(ctx, id); getErr != nil {
			return getErr
		}
		return model.ErrRequestNotPending
	}
	return nil
}

func (r *postgresRepository) ApproveRequest(ctx context.Context, id uuid.UUID) (*model.Author, error) {
	author, err := database.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (*model.Author, error) {
		var jr model.JoinRequest
		err := scanRequest(tx.QueryRow(ctx,
			`SELECT `+requestColumns+` FROM author_requests WHERE id = $1 FOR UPDATE`, id,
		), &jr)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, model.ErrRequestNotFound
			}
			return nil, fmt.Errorf("failed to lock join request: %w", err)
		}

		if jr.Status != model.RequestPending {
			return nil, model.ErrRequestNotPending
		}

		if _, err := tx.Exec(ctx,
			`UPDATE author_requests SET status = 'approved', updated_at = NOW() WHERE id = $1`, id,
		); err != nil {
			return nil, fmt.Errorf("failed to approve join request: %w", err)
		}

		var created model.Author
		err = scanAuthor(tx.QueryRow(ctx, `
            INSERT INTO authors (handle, name, email, bio, website, role, status, listing_status, visibility, api_token)
            VALUES ($1, $2, $3, $4, $5, 'regular', 'active', 'listed', 'visible', $6)
            RETURNING `+authorColumns,
			jr.Handle, jr.Name, jr.Email, jr.Bio, jr.Website, jr.APIToken,
		), &created)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" {
				return nil, model.ErrDuplicateHandle
			}
			return nil, fmt.Errorf("failed to create author from request: %w", err)
		}

		return &created, nil
	})
	if err != nil {
		return nil, err
	}

	return author, nil
}

func (r *postgresRepository) invalidateAuthorCache(ctx context.Context, handle string) {
	_ = r.cache.Delete(ctx, authorCacheKeyPrefix+handle)
}
