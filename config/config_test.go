package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.App.ID != "ither" {
		t.Errorf("default app id = %q", cfg.App.ID)
	}
	if cfg.App.Mode != ModeMock {
		t.Errorf("default mode = %q", cfg.App.Mode)
	}
	if !cfg.App.DemoData {
		t.Error("demo data should default on")
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("default log level = %q", cfg.Logging.Level)
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte(`
app:
  id: myapp
  mode: remote
  demoData: false
mongo:
  uri: mongodb://localhost:27017
  database: myapp
logging:
  level: debug
`)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.App.ID != "myapp" || cfg.App.Mode != ModeRemote || cfg.App.DemoData {
		t.Errorf("unexpected app config: %+v", cfg.App)
	}
	if cfg.Mongo.URI != "mongodb://localhost:27017" {
		t.Errorf("mongo uri = %q", cfg.Mongo.URI)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("log level = %q", cfg.Logging.Level)
	}
}

func TestEnvOverridesWin(t *testing.T) {
	t.Setenv("ITHER_MODE", ModeRemote)
	t.Setenv("ITHER_MONGO_URI", "mongodb://db:27017")
	t.Setenv("ITHER_DEMO_DATA", "false")

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.App.Mode != ModeRemote {
		t.Errorf("mode = %q", cfg.App.Mode)
	}
	if cfg.Mongo.URI != "mongodb://db:27017" {
		t.Errorf("mongo uri = %q", cfg.Mongo.URI)
	}
	if cfg.App.DemoData {
		t.Error("demo data should be off")
	}
}

func TestValidation(t *testing.T) {
	t.Run("unknown mode", func(t *testing.T) {
		t.Setenv("ITHER_MODE", "hybrid")
		if _, err := LoadConfig(""); err == nil {
			t.Error("expected error for unknown mode")
		}
	})

	t.Run("remote requires mongo uri", func(t *testing.T) {
		t.Setenv("ITHER_MODE", ModeRemote)
		if _, err := LoadConfig(""); err == nil {
			t.Error("expected error for missing mongo uri")
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := LoadConfig("/does/not/exist.yaml"); err == nil {
			t.Error("expected error for missing file")
		}
	})
}
