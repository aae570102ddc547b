package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_DefaultsAndEnv(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("DATABASE_URL", "file:test.db")
	t.Setenv("CACHE_DRIVER", "redis")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.JWT.Secret != "s3cret" {
		t.Errorf("Expected secret from env, got %q", cfg.JWT.Secret)
	}
	if cfg.Database.URL != "file:test.db" {
		t.Errorf("Expected database url from env, got %q", cfg.Database.URL)
	}
	if cfg.Cache.Driver != "redis" {
		t.Errorf("Expected cache driver redis, got %q", cfg.Cache.Driver)
	}
	if cfg.JWT.TokenTTL != 7*24*time.Hour {
		t.Errorf("Expected 7d token ttl, got %v", cfg.JWT.TokenTTL)
	}
	if cfg.JWT.CookieName != "auth-token" {
		t.Errorf("Expected auth-token cookie, got %q", cfg.JWT.CookieName)
	}
	if cfg.Database.MaxConnections != 10 {
		t.Errorf("Expected pool size 10, got %d", cfg.Database.MaxConnections)
	}
}

func TestLoad_File(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte("jwt:\n  secret: from-file\nserver:\n  port: 9999\nuploads:\n  avatar_size: 256\n")
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.JWT.Secret != "from-file" {
		t.Errorf("Expected secret from file, got %q", cfg.JWT.Secret)
	}
	if cfg.Server.Port != 9999 {
		t.Errorf("Expected port 9999, got %d", cfg.Server.Port)
	}
	if cfg.Uploads.AvatarSize != 256 {
		t.Errorf("Expected avatar size 256, got %d", cfg.Uploads.AvatarSize)
	}
}

func TestLoad_MissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	if _, err := Load(""); err == nil {
		t.Error("Expected error when jwt secret is empty")
	}
}
