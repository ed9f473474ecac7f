package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sitekit/internal/cache"
	"github.com/sitekit/internal/db"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SiteConfigInput carries the mutable fields of the singleton config. Every
// write fully overwrites them; absent fields become empty strings, never
// NULL, so the persisted shape stays uniform.
type SiteConfigInput struct {
	Message   string
	ImageURL  string
	ImagePath string
}

// SiteConfigService reads and writes the "my-life" singleton document. Reads
// go through the tag cache in production and bypass it entirely when caching
// is disabled, which eases iterative editing in development.
type SiteConfigService struct {
	db           *gorm.DB
	cache        *cache.Store
	cacheEnabled bool
}

// NewSiteConfigService creates a SiteConfigService instance.
func NewSiteConfigService(gdb *gorm.DB, store *cache.Store, cacheEnabled bool) *SiteConfigService {
	return &SiteConfigService{db: gdb, cache: store, cacheEnabled: cacheEnabled}
}

// Get returns the singleton config. A document that was never initialized
// reads as the valid default state, not an error.
func (s *SiteConfigService) Get() (db.SiteConfig, error) {
	if !s.cacheEnabled {
		return s.load()
	}

	value, err := s.cache.GetOrCompute(
		"site-config:"+db.SiteConfigKeyMyLife,
		[]string{cache.TagSiteConfig},
		func() (any, error) {
			return s.load()
		},
	)
	if err != nil {
		return db.SiteConfig{}, err
	}
	config, _ := value.(db.SiteConfig)
	return config, nil
}

// Set overwrites the mutable fields of the singleton config and invalidates
// its cache tag.
func (s *SiteConfigService) Set(input SiteConfigInput) (db.SiteConfig, error) {
	sanitized := db.SiteConfig{
		Key:       db.SiteConfigKeyMyLife,
		Message:   strings.TrimSpace(input.Message),
		ImageURL:  strings.TrimSpace(input.ImageURL),
		ImagePath: strings.TrimSpace(input.ImagePath),
	}

	if err := s.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "key"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"message":    sanitized.Message,
			"image_url":  sanitized.ImageURL,
			"image_path": sanitized.ImagePath,
			"updated_at": gorm.Expr("CURRENT_TIMESTAMP"),
		}),
	}).Create(&sanitized).Error; err != nil {
		return db.SiteConfig{}, fmt.Errorf("upsert site config: %w", err)
	}

	s.cache.Invalidate(cache.TagSiteConfig)
	return sanitized, nil
}

func (s *SiteConfigService) load() (db.SiteConfig, error) {
	var config db.SiteConfig
	err := s.db.Where("key = ?", db.SiteConfigKeyMyLife).First(&config).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return db.SiteConfig{Key: db.SiteConfigKeyMyLife}, nil
		}
		return db.SiteConfig{}, err
	}
	return config, nil
}
