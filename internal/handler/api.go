package handler

import (
	"github.com/sitekit/internal/cache"
	"github.com/sitekit/internal/config"
	"github.com/sitekit/internal/service"
	"github.com/sitekit/internal/storage"
	"gorm.io/gorm"
)

// API bundles shared dependencies for HTTP handlers.
type API struct {
	db            *gorm.DB
	cache         *cache.Store
	announcements *service.AnnouncementService
	posts         *service.BlogPostService
	siteConfig    *service.SiteConfigService
	intakes       *service.IntakeService
	uploads       *service.UploadService
	previews      *service.LinkPreviewService
}

// NewAPI constructs a handler set with shared services.
func NewAPI(gdb *gorm.DB, store *cache.Store, cfg config.AppConfig) *API {
	blobs := storage.NewLocalStore(cfg.UploadDir, cfg.SiteBaseURL, cfg.UploadURLPath)

	return &API{
		db:            gdb,
		cache:         store,
		announcements: service.NewAnnouncementService(gdb, store),
		posts:         service.NewBlogPostService(gdb, store),
		siteConfig:    service.NewSiteConfigService(gdb, store, cfg.CacheEnabled),
		intakes:       service.NewIntakeService(gdb, store),
		uploads:       service.NewUploadService(blobs, cfg.MaxUploadBytes),
		previews:      service.NewLinkPreviewService(),
	}
}

// Cache exposes the cache store for the manual refresh handler and tests.
func (a *API) Cache() *cache.Store {
	return a.cache
}
