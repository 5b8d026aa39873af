package container

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"blogpress-backend/internal/config"
	authorhandler "blogpress-backend/internal/domains/author/handler"
	authorrepo "blogpress-backend/internal/domains/author/repository"
	authorservice "blogpress-backend/internal/domains/author/service"
	commenthandler "blogpress-backend/internal/domains/comment/handler"
	commentrepo "blogpress-backend/internal/domains/comment/repository"
	commentservice "blogpress-backend/internal/domains/comment/service"
	mediahandler "blogpress-backend/internal/domains/media/handler"
	mediaservice "blogpress-backend/internal/domains/media/service"
	posthandler "blogpress-backend/internal/domains/post/handler"
	postrepo "blogpress-backend/internal/domains/post/repository"
	postservice "blogpress-backend/internal/domains/post/service"
	revalidationhandler "blogpress-backend/internal/domains/revalidation/handler"
	settingshandler "blogpress-backend/internal/domains/settings/handler"
	settingsrepo "blogpress-backend/internal/domains/settings/repository"
	settingsservice "blogpress-backend/internal/domains/settings/service"
	sitemaphandler "blogpress-backend/internal/domains/sitemap/handler"
	sitemaprepo "blogpress-backend/internal/domains/sitemap/repository"
	sitemapservice "blogpress-backend/internal/domains/sitemap/service"
	synchandler "blogpress-backend/internal/domains/sync/handler"
	syncservice "blogpress-backend/internal/domains/sync/service"
	rediscache "blogpress-backend/internal/infrastructure/cache"
	"blogpress-backend/internal/infrastructure/database"
	"blogpress-backend/internal/infrastructure/revalidate"
	"blogpress-backend/internal/infrastructure/storage"
)

// Container owns construction order: infrastructure, repositories, services,
// handlers. Everything downstream receives its dependencies here and nowhere
// else.
type Container struct {
	Config *config.Config

	// Infrastructure
	DB          *database.PostgresDB
	Cache       *rediscache.RedisClient
	Storage     *storage.MinIOStorage
	Invalidator *revalidate.Client
	Warmer      *revalidate.Warmer
	RingLog     *revalidate.RingLog

	// Services
	AuthorService   authorservice.ServiceInterface
	PostService     postservice.ServiceInterface
	CommentService  commentservice.ServiceInterface
	SettingsService settingsservice.ServiceInterface
	SitemapService  sitemapservice.ServiceInterface
	SyncService     syncservice.ServiceInterface
	MediaService    mediaservice.ServiceInterface

	// Handlers
	AuthorHandler       *authorhandler.AuthorHandler
	PostHandler         *posthandler.PostHandler
	CommentHandler      *commenthandler.CommentHandler
	SettingsHandler     *settingshandler.SettingsHandler
	SitemapHandler      *sitemaphandler.SitemapHandler
	SyncHandler         *synchandler.SyncHandler
	MediaHandler        *mediahandler.MediaHandler
	RevalidationHandler *revalidationhandler.RevalidationHandler
}

func New(ctx context.Context, cfg *config.Config) (*Container, error) {
	c := &Container{Config: cfg}

	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}

	c.DB = database.NewPostgresDB(dbConfig)
	if err := c.DB.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	c.Cache = rediscache.NewRedisClient(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if err := c.Cache.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	c.Storage, err = storage.NewMinIOStorage(cfg.MinIO)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to minio: %w", err)
	}

	c.RingLog = revalidate.NewRingLog(10)
	c.Invalidator = revalidate.NewClient(cfg.Content.FrontendBaseURL, cfg.Admin.RevalidateSecret, c.Cache)
	c.Warmer = revalidate.NewWarmer(cfg.Content.FrontendBaseURL, c.RingLog)

	c.wire(c.DB.Pool)

	return c, nil
}

// wire builds repositories, services and handlers on top of an already
// connected infrastructure layer. Split out so tests can assemble a
// container around fakes.
func (c *Container) wire(pool *pgxpool.Pool) {
	settingsRepository := settingsrepo.NewPostgresRepository(pool, c.Cache)
	c.SettingsService = settingsservice.NewSettingsService(settingsRepository, c.Invalidator)

	c.MediaService = mediaservice.NewMediaService(c.Storage, storage.NewImageProcessor())

	authorRepository := authorrepo.NewPostgresRepository(pool, c.Cache)
	c.AuthorService = authorservice.NewAuthorService(authorRepository, c.SettingsService, c.MediaService, c.Invalidator)

	postRepository := postrepo.NewPostgresRepository(pool, c.Cache)
	c.PostService = postservice.NewPostService(postRepository, c.AuthorService, c.Invalidator)

	commentRepository := commentrepo.NewPostgresRepository(pool)
	c.CommentService = commentservice.NewCommentService(commentRepository, c.PostService, c.Invalidator)

	sitemapRepository := sitemaprepo.NewPostgresRepository(pool)
	c.SitemapService = sitemapservice.NewSitemapService(sitemapRepository, c.Config.Content.SiteBaseURL)

	c.SyncService = syncservice.NewSyncService(c.PostService, c.SettingsService, c.Storage, c.Config.Content.SheetCSVURL)

	c.AuthorHandler = authorhandler.NewAuthorHandler(c.AuthorService)
	c.PostHandler = posthandler.NewPostHandler(c.PostService)
	c.CommentHandler = commenthandler.NewCommentHandler(c.CommentService)
	c.SettingsHandler = settingshandler.NewSettingsHandler(c.SettingsService)
	c.SitemapHandler = sitemaphandler.NewSitemapHandler(c.SitemapService)
	c.SyncHandler = synchandler.NewSyncHandler(c.SyncService)
	c.MediaHandler = mediahandler.NewMediaHandler(c.MediaService)
	c.RevalidationHandler = revalidationhandler.NewRevalidationHandler(c.Invalidator, c.Warmer, c.RingLog)
}

// Close releases infrastructure connections in reverse order of creation.
func (c *Container) Close() {
	if c.Cache != nil {
		_ = c.Cache.Close()
	}
	if c.DB != nil {
		c.DB.Close()
	}
}
