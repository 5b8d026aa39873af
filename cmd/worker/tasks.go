package main

import (
	"context"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	sitemaprepo "blogpress-backend/internal/domains/sitemap/repository"
	syncmodel "blogpress-backend/internal/domains/sync/model"
	syncservice "blogpress-backend/internal/domains/sync/service"
	"blogpress-backend/internal/infrastructure/revalidate"
)

// taskHandlers groups the worker's task processors around their shared
// dependencies.
type taskHandlers struct {
	sync    syncservice.ServiceInterface
	warmer  *revalidate.Warmer
	sitemap sitemaprepo.RepositoryInterface
}

// HandleContentSync pulls the configured sheet. The sync service already
// treats fetch failures as a skipped refresh, so this task only errors on a
// real processing failure (which asynq will retry).
func (h *taskHandlers) HandleContentSync(ctx context.Context, _ *asynq.Task) error {
	result, err := h.sync.SyncConfigured(ctx, syncmodel.SourceCron)
	if err != nil {
		return err
	}

	log.Info().
		Bool("refreshed", result.Refreshed).
		Int("posts", result.PostsWritten).
		Int("settings", result.SettingsApplied).
		Msg("Scheduled content sync finished")

	return nil
}

// HandleSitemapWarm re-renders the public pages ahead of traffic: the root,
// every visible author page, every published post. Individual failures are
// already recorded in the warm log, so the task itself never fails.
func (h *taskHandlers) HandleSitemapWarm(ctx context.Context, _ *asynq.Task) error {
	paths := []string{"/", "/sitemap.xml"}

	authors, err := h.sitemap.ListAuthors(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Warm task could not list authors")
	}
	for _, a := range authors {
		paths = append(paths, "/"+a.Handle)
	}

	posts, err := h.sitemap.ListPosts(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Warm task could not list posts")
	}
	for _, p := range posts {
		paths = append(paths, "/"+p.AuthorHandle+"/"+p.Slug)
	}

	warmed := 0
	for _, path := range paths {
		if err := h.warmer.Warm(ctx, path); err == nil {
			warmed++
		}
	}

	log.Info().Int("warmed", warmed).Int("total", len(paths)).Msg("Scheduled warm finished")

	return nil
}
