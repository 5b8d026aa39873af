package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	postmodel "blogpress-backend/internal/domains/post/model"
	postservice "blogpress-backend/internal/domains/post/service"
	settingsmodel "blogpress-backend/internal/domains/settings/model"
	settingsservice "blogpress-backend/internal/domains/settings/service"
	"blogpress-backend/internal/domains/sync/model"
)

type ServiceInterface interface {
	// SyncFromBody ingests an inline CSV document or an uploaded file.
	// Filename decides the format: .xlsx goes through the workbook parser,
	// everything else is treated as CSV.
	SyncFromBody(ctx context.Context, data []byte, filename, source string) (*model.SyncResult, error)

	// SyncFromURL fetches and ingests a sheet from an explicit URL.
	SyncFromURL(ctx context.Context, url string) (*model.SyncResult, error)

	// SyncConfigured pulls the configured sheet. A fetch failure is not an
	// error: the run reports refreshed=false and the previous content
	// stays live.
	SyncConfigured(ctx context.Context, source string) (*model.SyncResult, error)
}

// SnapshotStore persists a copy of every successfully applied sheet.
type SnapshotStore interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

type syncService struct {
	posts    postservice.ServiceInterface
	settings settingsservice.ServiceInterface
	store    SnapshotStore
	sheetURL string
	client   *http.Client
}

func NewSyncService(posts postservice.ServiceInterface, settings settingsservice.ServiceInterface, store SnapshotStore, sheetURL string) ServiceInterface {
	return &syncService{
		posts:    posts,
		settings: settings,
		store:    store,
		sheetURL: sheetURL,
		client:   &http.Client{Timeout: 30 * time.Second},
	}
}

func (s *syncService) SyncFromBody(ctx context.Context, data []byte, filename, source string) (*model.SyncResult, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, model.ErrNoSource
	}

	var sheet *parsedSheet
	var err error

	if strings.EqualFold(filepath.Ext(filename), ".xlsx") {
		sheet, err = parseXLSX(data)
	} else {
		sheet, err = parseCSV(data)
	}
	if err != nil {
		return nil, err
	}

	return s.apply(ctx, sheet, source)
}

func (s *syncService) SyncFromURL(ctx context.Context, url string) (*model.SyncResult, error) {
	data, err := s.fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	return s.SyncFromBody(ctx, data, "sheet.csv", model.SourceURL)
}

func (s *syncService) SyncConfigured(ctx context.Context, source string) (*model.SyncResult, error) {
	if s.sheetURL == "" {
		return nil, model.ErrNoSource
	}

	data, err := s.fetch(ctx, s.sheetURL)
	if err != nil {
		// Keep serving what we have; the next run may succeed.
		log.Error().Err(err).Str("source", source).Msg("Configured sheet fetch failed, content not refreshed")
		return &model.SyncResult{
			Refreshed: false,
			Source:    source,
			Detail:    err.Error(),
		}, nil
	}

	return s.SyncFromBody(ctx, data, "sheet.csv", source)
}

func (s *syncService) apply(ctx context.Context, sheet *parsedSheet, source string) (*model.SyncResult, error) {
	result := &model.SyncResult{
		Refreshed: true,
		Kind:      sheet.Kind,
		Source:    source,
	}

	switch sheet.Kind {
	case model.KindPosts:
		written, err := s.posts.UpsertFromSheet(ctx, sheet.Posts)
		if err != nil {
			return nil, asRowError(err)
		}
		result.RowsParsed = len(sheet.Posts)
		result.PostsWritten = written

	case model.KindSettings:
		applied, err := s.settings.ApplyEntries(ctx, sheet.Settings)
		if err != nil {
			return nil, asRowError(err)
		}
		result.RowsParsed = len(sheet.Settings)
		result.SettingsApplied = applied
	}

	result.SnapshotKey = s.snapshot(ctx, sheet)

	log.Info().
		Str("kind", sheet.Kind).
		Str("source", source).
		Int("rows", result.RowsParsed).
		Msg("Sheet sync applied")

	return result, nil
}

// snapshot stores the applied sheet twice: a timestamped copy for history and
// latest.csv for quick inspection. CSV input is persisted verbatim, extra
// columns and quoting included; xlsx uploads are re-encoded since they carry
// no CSV text of their own. Snapshot failure never fails a sync.
func (s *syncService) snapshot(ctx context.Context, sheet *parsedSheet) string {
	data := sheet.Raw
	if len(data) == 0 {
		var err error
		data, err = canonicalCSV(sheet)
		if err != nil {
			log.Error().Err(err).Msg("Failed to encode sheet snapshot")
			return ""
		}
	}

	key := fmt.Sprintf("snapshots/%s/%s.csv", sheet.Kind, time.Now().UTC().Format("20060102T150405Z"))
	if _, err := s.store.Upload(ctx, key, data, "text/csv"); err != nil {
		log.Error().Err(err).Str("key", key).Msg("Failed to store sheet snapshot")
		return ""
	}

	latest := fmt.Sprintf("snapshots/%s/latest.csv", sheet.Kind)
	if _, err := s.store.Upload(ctx, latest, data, "text/csv"); err != nil {
		log.Error().Err(err).Str("key", latest).Msg("Failed to store latest snapshot")
	}

	return key
}

// asRowError reclassifies validation failures raised inside the post and
// settings pipelines so malformed sheet content answers 400, not 500.
func asRowError(err error) error {
	if errors.Is(err, postmodel.ErrInvalidSlug) ||
		errors.Is(err, settingsmodel.ErrInvalidEntry) ||
		errors.Is(err, settingsmodel.ErrUnknownType) {
		return fmt.Errorf("%w: %s", model.ErrInvalidRow, err)
	}
	return err
}

func (s *syncService) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build sheet request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch sheet: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("sheet fetch returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, 20<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet body: %w", err)
	}

	return data, nil
}

func canonicalCSV(sheet *parsedSheet) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	switch sheet.Kind {
	case model.KindSettings:
		if err := w.Write(settingsHeader); err != nil {
			return nil, err
		}
		for _, e := range sheet.Settings {
			if err := w.Write([]string{e.Key, e.Type, e.Value}); err != nil {
				return nil, err
			}
		}

	case model.KindPosts:
		if err := w.Write(postsHeader); err != nil {
			return nil, err
		}
		for _, p := range sheet.Posts {
			updatedAt := ""
			if p.UpdatedAt != nil {
				updatedAt = p.UpdatedAt.Format(time.RFC3339)
			}
			if err := w.Write([]string{
				p.Slug,
				p.Title,
				p.Author,
				p.Content,
				strconv.FormatBool(p.Published),
				strconv.FormatBool(p.Featured),
				updatedAt,
			}); err != nil {
				return nil, err
			}
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
