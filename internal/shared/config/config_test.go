package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("ENV", "")
	t.Setenv("OBJECT_STORE", "")
	t.Setenv("JWT_TTL_HOURS", "")
	t.Setenv("PORT", "")
	t.Setenv("UI_BASE_URL", "")
	t.Setenv("UI_LOGIN_REDIRECT_URL", "")

	cfg := Load()
	if cfg.Port != "8080" {
		t.Fatalf("expected default port 8080, got %q", cfg.Port)
	}
	if cfg.Env != "dev" {
		t.Fatalf("expected env dev, got %q", cfg.Env)
	}
	if cfg.ObjectStoreType != "local" {
		t.Fatalf("expected local store, got %q", cfg.ObjectStoreType)
	}
	if cfg.JWTTTL != 7*24*time.Hour {
		t.Fatalf("expected 7 day token ttl, got %s", cfg.JWTTTL)
	}
	if cfg.UILoginRedirectURL != "http://localhost:5173/login" {
		t.Fatalf("unexpected login redirect: %q", cfg.UILoginRedirectURL)
	}
}

func TestLoadReadsEnvAndDotenv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("MINIO_BUCKET=from-file\nPORT=9999\n"), 0o644); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	t.Setenv("PORT", "7000")
	t.Setenv("ENV", "prod")
	t.Setenv("OBJECT_STORE", "MinIO")
	t.Setenv("LLM_PROVIDER", "google")
	t.Setenv("CORS_ALLOW_ORIGINS", "https://a.example, ,https://b.example")
	t.Cleanup(func() { _ = os.Unsetenv("MINIO_BUCKET") })

	cfg := Load()
	if cfg.Port != "7000" {
		t.Fatalf("expected env to win over .env, got %q", cfg.Port)
	}
	if cfg.MinioBucket != "from-file" {
		t.Fatalf("expected bucket from .env, got %q", cfg.MinioBucket)
	}
	if cfg.Env != "production" || cfg.ObjectStoreType != "minio" || cfg.LLMProvider != "gemini" {
		t.Fatalf("unexpected normalization: %+v", cfg)
	}
	if len(cfg.CORSAllowOrigin) != 2 {
		t.Fatalf("expected 2 origins, got %v", cfg.CORSAllowOrigin)
	}
}
