package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("port = %d", cfg.Server.Port)
	}
	if cfg.Store.Driver != DriverPostgres {
		t.Errorf("driver = %q", cfg.Store.Driver)
	}
	if cfg.Redis.TTL != time.Minute {
		t.Errorf("redis ttl = %v", cfg.Redis.TTL)
	}
	if cfg.VAT.DefaultRate != "8.1" {
		t.Errorf("default vat = %q", cfg.VAT.DefaultRate)
	}
	if !cfg.Database.AutoMigrate {
		t.Error("auto_migrate should default to true")
	}
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("DATABASE_URL", "postgres://pooled/db")
	t.Setenv("DIRECT_URL", "postgres://direct/db")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example,,")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("STORE_DRIVER", "memory")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Database.URL != "postgres://pooled/db" {
		t.Errorf("database url = %q", cfg.Database.URL)
	}
	if cfg.MigrationURL() != "postgres://direct/db" {
		t.Errorf("migration url = %q", cfg.MigrationURL())
	}
	if diff := cmp.Diff([]string{"https://a.example", "https://b.example"}, cfg.Server.AllowedOrigins); diff != "" {
		t.Errorf("origins mismatch (-want +got):\n%s", diff)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("log level = %q", cfg.Log.Level)
	}
	if cfg.Addr() != ":9090" {
		t.Errorf("addr = %q", cfg.Addr())
	}
	if cfg.Store.Driver != DriverMemory {
		t.Errorf("driver = %q", cfg.Store.Driver)
	}
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `
server:
  port: 7000
  allowed_origins:
    - https://books.example
redis:
  addr: localhost:6379
  ttl: 30s
log:
  format: json
`
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 7000 || cfg.Redis.Addr != "localhost:6379" || cfg.Redis.TTL != 30*time.Second {
		t.Errorf("unexpected config %+v", cfg)
	}
	if cfg.Log.Format != "json" {
		t.Errorf("format = %q", cfg.Log.Format)
	}
	if len(cfg.Server.AllowedOrigins) != 1 {
		t.Errorf("origins = %v", cfg.Server.AllowedOrigins)
	}

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for an explicit missing file")
	}
}

func TestValidate(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("DATABASE_URL", "")
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	cfg.Server.Port = 0
	cfg.Log.Format = "xml"
	cfg.VAT.DefaultRate = "abc"

	err = cfg.Validate()
	if err == nil {
		t.Fatal("expected validation errors")
	}
	for _, want := range []string{"server.port", "DATABASE_URL", "log.format", "vat.default_rate"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %s", err, want)
		}
	}

	cfg.Server.Port = 8080
	cfg.Log.Format = "logfmt"
	cfg.VAT.DefaultRate = "7.7"
	cfg.Store.Driver = DriverMemory
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected valid config, got %v", err)
	}
}
