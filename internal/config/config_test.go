package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
database:
  url: "postgres://localhost/test"
auth:
  jwt_secret: "s3cret"
  login_ttl_seconds: 1800
  register_ttl_seconds: 120
  bcrypt_cost: 8
server:
  port: ":9090"
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}
	if cfg.Auth.JWTSecret != "s3cret" {
		t.Fatalf("unexpected secret: %q", cfg.Auth.JWTSecret)
	}
	if cfg.LoginTTL() != 30*time.Minute {
		t.Fatalf("unexpected login ttl: %v", cfg.LoginTTL())
	}
	if cfg.Server.Port != ":9090" {
		t.Fatalf("unexpected port: %q", cfg.Server.Port)
	}
}

func TestLoadConfig_TTLDefaults(t *testing.T) {
	path := writeConfig(t, `
auth:
  jwt_secret: "s"
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}
	if cfg.LoginTTL() != time.Hour {
		t.Fatalf("expected 1h default, got %v", cfg.LoginTTL())
	}
	if cfg.RegisterTTL() != 5*time.Minute {
		t.Fatalf("expected 5m default, got %v", cfg.RegisterTTL())
	}
}

func TestLoadConfig_MissingSecret(t *testing.T) {
	path := writeConfig(t, `
server:
  port: ":8080"
`)

	if _, err := LoadConfig(path); err == nil {
		t.Fatalf("expected error for missing jwt secret")
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
