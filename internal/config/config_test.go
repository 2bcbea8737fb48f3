package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Errorf("http addr: got %q", cfg.HTTPAddr)
	}
	if cfg.PageSizeDefault != 20 || cfg.PageSizeMax != 100 {
		t.Errorf("page sizes: got %d/%d", cfg.PageSizeDefault, cfg.PageSizeMax)
	}
	if !cfg.JanitorEnabled {
		t.Error("janitor should default to enabled")
	}
	if cfg.JanitorInterval() != 300*time.Second {
		t.Errorf("janitor interval: got %v", cfg.JanitorInterval())
	}
	if cfg.JanitorBatchSize != 1000 {
		t.Errorf("janitor batch: got %d", cfg.JanitorBatchSize)
	}
	if cfg.IdempotencyTTL != 24*time.Hour {
		t.Errorf("idempotency ttl: got %v", cfg.IdempotencyTTL)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("ERP_JANITOR_ENABLED", "false")
	t.Setenv("ERP_JANITOR_INTERVAL_SECONDS", "30")
	t.Setenv("ERP_PAGE_SIZE_DEFAULT", "50")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.JanitorEnabled {
		t.Error("janitor flag override ignored")
	}
	if cfg.JanitorInterval() != 30*time.Second {
		t.Errorf("janitor interval: got %v", cfg.JanitorInterval())
	}
	if cfg.PageSizeDefault != 50 {
		t.Errorf("page size default: got %d", cfg.PageSizeDefault)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := map[string]string{
		"ERP_PAGE_SIZE_DEFAULT":        "0",
		"ERP_JANITOR_INTERVAL_SECONDS": "0",
		"ERP_JANITOR_BATCH_SIZE":       "-5",
	}
	for key, val := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, val)
			if _, err := Load(); err == nil {
				t.Errorf("%s=%s accepted", key, val)
			}
		})
	}
}
