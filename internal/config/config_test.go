package config

import (
	"testing"
	"time"

	"tablero/domain/commerce"
)

func TestLoadRequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	if _, err := Load(); err == nil {
		t.Fatal("expected error without DATABASE_URL")
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/tablero_test?sslmode=disable")
	t.Setenv("PORT", "")
	t.Setenv("ORDER_DEFAULT_STATUS", "")
	t.Setenv("CACHE_MAX_ENTRIES", "")
	t.Setenv("CACHE_TTL", "")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Port != "8080" {
		t.Errorf("port = %s, want 8080", cfg.Server.Port)
	}
	if cfg.Commerce.DefaultOrderStatus != commerce.StatusFulfilled {
		t.Errorf("default order status = %s, want fulfilled", cfg.Commerce.DefaultOrderStatus)
	}
	if cfg.Cache.MaxEntries != 32 {
		t.Errorf("cache max entries = %d, want 32", cfg.Cache.MaxEntries)
	}
	if cfg.Cache.TTL != 15*time.Minute {
		t.Errorf("cache ttl = %v, want 15m", cfg.Cache.TTL)
	}
}

func TestLoadOrderStatusOverride(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/tablero_test?sslmode=disable")

	t.Setenv("ORDER_DEFAULT_STATUS", "pending")
	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Commerce.DefaultOrderStatus != commerce.StatusPending {
		t.Errorf("status = %s, want pending", cfg.Commerce.DefaultOrderStatus)
	}

	// Unknown names fall back instead of failing startup.
	t.Setenv("ORDER_DEFAULT_STATUS", "shipped")
	cfg, err = Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Commerce.DefaultOrderStatus != commerce.StatusFulfilled {
		t.Errorf("status = %s, want fulfilled fallback", cfg.Commerce.DefaultOrderStatus)
	}
}

func TestLoadCacheOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/tablero_test?sslmode=disable")
	t.Setenv("CACHE_MAX_ENTRIES", "5")
	t.Setenv("CACHE_TTL", "30s")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Cache.MaxEntries != 5 {
		t.Errorf("cache max entries = %d, want 5", cfg.Cache.MaxEntries)
	}
	if cfg.Cache.TTL != 30*time.Second {
		t.Errorf("cache ttl = %v, want 30s", cfg.Cache.TTL)
	}
}
