package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.ListenAddress != ":8080" {
		t.Errorf("ListenAddress = %q, want :8080", cfg.Server.ListenAddress)
	}
	if cfg.OutputDir != "outputs" {
		t.Errorf("OutputDir = %q, want outputs", cfg.OutputDir)
	}
	if cfg.Assets.FontBold != "templates/fonts/DejaVuSans-Bold.ttf" {
		t.Errorf("FontBold = %q", cfg.Assets.FontBold)
	}
}

func TestLoadYAMLThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	content := `
server:
  listen_address: ":9000"
  write_timeout: 30s
assets:
  template: "https://cdn.example.com/base.png"
output_dir: "/var/comunicados"
log_level: debug
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("COMUNICADO_OUTPUT_DIR", "/tmp/out")
	t.Setenv("COMUNICADO_READ_TIMEOUT", "2s")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.ListenAddress != ":9000" {
		t.Errorf("ListenAddress = %q, want :9000", cfg.Server.ListenAddress)
	}
	if cfg.Server.WriteTimeout != 30*time.Second {
		t.Errorf("WriteTimeout = %v, want 30s", cfg.Server.WriteTimeout)
	}
	if cfg.Server.ReadTimeout != 2*time.Second {
		t.Errorf("ReadTimeout = %v, want 2s", cfg.Server.ReadTimeout)
	}
	if cfg.Assets.Template != "https://cdn.example.com/base.png" {
		t.Errorf("Template = %q", cfg.Assets.Template)
	}
	// fields absent from the file keep their defaults
	if cfg.Assets.FontRegular != "templates/fonts/DejaVuSans.ttf" {
		t.Errorf("FontRegular = %q", cfg.Assets.FontRegular)
	}
	if cfg.OutputDir != "/tmp/out" {
		t.Errorf("OutputDir = %q, env should win", cfg.OutputDir)
	}
}

func TestLoadPortEnv(t *testing.T) {
	t.Setenv("PORT", "7070")
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.ListenAddress != ":7070" {
		t.Errorf("ListenAddress = %q, want :7070", cfg.Server.ListenAddress)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yml")); err == nil {
		t.Error("expected error for explicit missing file")
	}

	t.Run("bad duration", func(t *testing.T) {
		t.Setenv("COMUNICADO_IDLE_TIMEOUT", "forever")
		if _, err := Load(""); err == nil {
			t.Error("expected error for bad duration")
		}
	})

	t.Run("bad log level", func(t *testing.T) {
		t.Setenv("COMUNICADO_LOG_LEVEL", "loud")
		if _, err := Load(""); err == nil {
			t.Error("expected error for unknown log level")
		}
	})
}
