package service

import (
	"testing"

	"github.com/sitekit/internal/cache"
	"github.com/sitekit/internal/db"
)

func TestSiteConfigDefaultWhenMissing(t *testing.T) {
	cleanup := setupContentTestDB(t)
	defer cleanup()

	svc := NewSiteConfigService(db.DB, cache.New(), true)
	config, err := svc.Get()
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}

	if config.Key != db.SiteConfigKeyMyLife {
		t.Fatalf("expected default key %q, got %q", db.SiteConfigKeyMyLife, config.Key)
	}
	if config.Message != "" || config.ImageURL != "" {
		t.Fatalf("expected empty default state, got %+v", config)
	}
}

func TestSiteConfigSetOverwritesAndNormalizes(t *testing.T) {
	cleanup := setupContentTestDB(t)
	defer cleanup()

	svc := NewSiteConfigService(db.DB, cache.New(), true)

	if _, err := svc.Set(SiteConfigInput{Message: "first", ImageURL: "https://example.com/a.png", ImagePath: "cfg/a.png"}); err != nil {
		t.Fatalf("first Set failed: %v", err)
	}

	// Absent fields must come back as empty strings, not stale values.
	if _, err := svc.Set(SiteConfigInput{Message: "  second  "}); err != nil {
		t.Fatalf("second Set failed: %v", err)
	}

	config, err := svc.Get()
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if config.Message != "second" {
		t.Fatalf("expected overwritten message, got %q", config.Message)
	}
	if config.ImageURL != "" || config.ImagePath != "" {
		t.Fatalf("expected image fields cleared, got %+v", config)
	}

	var count int64
	if err := db.DB.Model(&db.SiteConfig{}).Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected exactly one config row, got %d", count)
	}
}

func TestSiteConfigCacheInvalidatedOnSet(t *testing.T) {
	cleanup := setupContentTestDB(t)
	defer cleanup()

	store := cache.New()
	svc := NewSiteConfigService(db.DB, store, true)

	if _, err := svc.Set(SiteConfigInput{Message: "first"}); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if _, err := svc.Get(); err != nil {
		t.Fatalf("warm Get failed: %v", err)
	}

	if _, err := svc.Set(SiteConfigInput{Message: "second"}); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	config, err := svc.Get()
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if config.Message != "second" {
		t.Fatalf("expected cached read to observe the new write, got %q", config.Message)
	}
}

func TestSiteConfigBypassesCacheWhenDisabled(t *testing.T) {
	cleanup := setupContentTestDB(t)
	defer cleanup()

	store := cache.New()
	svc := NewSiteConfigService(db.DB, store, false)

	if _, err := svc.Set(SiteConfigInput{Message: "hello"}); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if _, err := svc.Get(); err != nil {
		t.Fatalf("Get failed: %v", err)
	}

	if store.Len() != 0 {
		t.Fatalf("expected no cache entries with caching disabled, got %d", store.Len())
	}
}
