package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://writer@db/phexara")
	t.Setenv("ADMIN_PATH_PREFIX", "/backoffice/")
	t.Setenv("SITE_URL", "https://example.test/")
	t.Setenv("GALLERY_CACHE_TTL", "not-a-duration")
	t.Setenv("ALLOWED_ORIGINS", " https://a.test , ,https://b.test")

	cfg := Load()

	if cfg.DatabaseReadURL != "postgres://writer@db/phexara" {
		t.Fatalf("read url should fall back to DATABASE_URL, got %q", cfg.DatabaseReadURL)
	}
	if cfg.AdminPathPrefix != "/backoffice" {
		t.Fatalf("unexpected prefix %q", cfg.AdminPathPrefix)
	}
	if cfg.SiteURL != "https://example.test" {
		t.Fatalf("unexpected site url %q", cfg.SiteURL)
	}
	if cfg.GalleryCacheTTL != 60*time.Second {
		t.Fatalf("unexpected ttl %v", cfg.GalleryCacheTTL)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "https://b.test" {
		t.Fatalf("unexpected origins %v", cfg.AllowedOrigins)
	}
}

func TestLoad_ReadURLOverride(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://writer@db/phexara")
	t.Setenv("DATABASE_READ_URL", "postgres://reader@db/phexara")
	t.Setenv("MIGRATE_ON_START", "true")

	cfg := Load()

	if cfg.DatabaseReadURL != "postgres://reader@db/phexara" || !cfg.MigrateOnStart {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}
