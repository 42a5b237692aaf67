package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := LoadConfig("")
		if err != nil {
			t.Fatalf("LoadConfig failed: %v", err)
		}
		if cfg.Server.Host != "0.0.0.0" {
			t.Errorf("expected host 0.0.0.0, got %s", cfg.Server.Host)
		}
		if cfg.Server.HTTPPort != 8080 {
			t.Errorf("expected http_port 8080, got %d", cfg.Server.HTTPPort)
		}
		if cfg.Server.GRPCPort != 50051 {
			t.Errorf("expected grpc_port 50051, got %d", cfg.Server.GRPCPort)
		}
		if cfg.Server.RequestTimeout != 30*time.Second {
			t.Errorf("expected timeout 30s, got %v", cfg.Server.RequestTimeout)
		}
		if cfg.Database.URL != "sqlite://./data/audiencekeeper.db" {
			t.Errorf("expected default sqlite url, got %s", cfg.Database.URL)
		}
		if cfg.Audience.Strategy != StrategyStream {
			t.Errorf("expected strategy stream, got %s", cfg.Audience.Strategy)
		}
		if cfg.Audience.RefreshConcurrency != 4 {
			t.Errorf("expected refresh_concurrency 4, got %d", cfg.Audience.RefreshConcurrency)
		}
		if cfg.Export.Enabled {
			t.Errorf("expected export disabled by default")
		}
		if len(cfg.Server.AllowedOrigins) != 1 || cfg.Server.AllowedOrigins[0] != "*" {
			t.Errorf("expected allowed_origins [*], got %v", cfg.Server.AllowedOrigins)
		}
	})

	t.Run("environment override", func(t *testing.T) {
		t.Setenv("AK_SERVER_HTTP_PORT", "9999")
		t.Setenv("AK_SERVER_HOST", "127.0.0.1")
		t.Setenv("AK_AUDIENCE_STRATEGY", "SQL")
		t.Setenv("AK_SERVER_ALLOWED_ORIGINS", "https://a.example,https://b.example")

		cfg, err := LoadConfig("")
		if err != nil {
			t.Fatalf("LoadConfig failed: %v", err)
		}
		if cfg.Server.HTTPPort != 9999 {
			t.Errorf("expected port 9999, got %d", cfg.Server.HTTPPort)
		}
		if cfg.Server.Host != "127.0.0.1" {
			t.Errorf("expected host 127.0.0.1, got %s", cfg.Server.Host)
		}
		if cfg.Audience.Strategy != StrategySQL {
			t.Errorf("expected strategy sql, got %s", cfg.Audience.Strategy)
		}
		if len(cfg.Server.AllowedOrigins) != 2 {
			t.Errorf("expected 2 origins, got %v", cfg.Server.AllowedOrigins)
		}
	})

	t.Run("environment overrides config file", func(t *testing.T) {
		t.Setenv("AK_SERVER_HTTP_PORT", "8081")
		path := writeConfig(t, "server:\n  http_port: 9090\n  grpc_port: 9191\n")

		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig failed: %v", err)
		}
		if cfg.Server.HTTPPort != 8081 {
			t.Errorf("expected env port 8081, got %d", cfg.Server.HTTPPort)
		}
		if cfg.Server.GRPCPort != 9191 {
			t.Errorf("expected file grpc port 9191, got %d", cfg.Server.GRPCPort)
		}
	})

	t.Run("invalid port range", func(t *testing.T) {
		t.Setenv("AK_SERVER_HTTP_PORT", "70000")
		if _, err := LoadConfig(""); err == nil {
			t.Error("expected error for port > 65535")
		}
	})

	t.Run("same ports rejected", func(t *testing.T) {
		t.Setenv("AK_SERVER_HTTP_PORT", "50051")
		if _, err := LoadConfig(""); err == nil {
			t.Error("expected error for identical ports")
		}
	})

	t.Run("invalid strategy", func(t *testing.T) {
		t.Setenv("AK_AUDIENCE_STRATEGY", "magic")
		if _, err := LoadConfig(""); err == nil {
			t.Error("expected error for unknown strategy")
		}
	})

	t.Run("invalid negative values", func(t *testing.T) {
		t.Setenv("AK_AUDIENCE_REFRESH_CONCURRENCY", "-1")
		if _, err := LoadConfig(""); err == nil {
			t.Error("expected error for negative refresh_concurrency")
		}
	})

	t.Run("export requires bucket", func(t *testing.T) {
		t.Setenv("AK_EXPORT_ENABLED", "true")
		if _, err := LoadConfig(""); err == nil {
			t.Error("expected error for export without bucket")
		}
	})

	t.Run("secret in config file rejected", func(t *testing.T) {
		path := writeConfig(t, "export:\n  bucket: audiences\n  secret_access_key: should_be_rejected\n")
		_, err := LoadConfig(path)
		if err == nil {
			t.Fatal("expected error for secret in config file")
		}
		if !strings.Contains(err.Error(), "secrets not allowed in config files") {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("secret in environment accepted", func(t *testing.T) {
		t.Setenv(EnvExportSecretAccessKey, "from-env")
		t.Setenv(EnvExportAccessKeyID, "AKIDEXAMPLE")
		path := writeConfig(t, "export:\n  bucket: audiences\n")
		if _, err := LoadConfig(path); err != nil {
			t.Errorf("LoadConfig failed: %v", err)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
			t.Error("expected error for missing config file")
		}
	})
}

func TestExportCredentials(t *testing.T) {
	t.Run("unset uses default chain", func(t *testing.T) {
		t.Setenv(EnvExportAccessKeyID, "")
		t.Setenv(EnvExportSecretAccessKey, "")
		_, _, ok, err := ExportCredentials()
		if err != nil || ok {
			t.Errorf("ExportCredentials() ok = %v, err = %v, want false, nil", ok, err)
		}
	})

	t.Run("pair", func(t *testing.T) {
		t.Setenv(EnvExportAccessKeyID, "AKIDEXAMPLE")
		t.Setenv(EnvExportSecretAccessKey, "secret")
		id, secret, ok, err := ExportCredentials()
		if err != nil || !ok || id != "AKIDEXAMPLE" || secret != "secret" {
			t.Errorf("ExportCredentials() = %q, %q, %v, %v", id, secret, ok, err)
		}
	})

	t.Run("half a pair", func(t *testing.T) {
		t.Setenv(EnvExportAccessKeyID, "AKIDEXAMPLE")
		t.Setenv(EnvExportSecretAccessKey, "")
		if _, _, _, err := ExportCredentials(); err == nil {
			t.Error("expected error for access key without secret")
		}
	})
}
