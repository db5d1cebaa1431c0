package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", filepath.Join(t.TempDir(), "home"))
	t.Setenv("PINBOARD_ADDR", "")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DaemonAddress() != "127.0.0.1:7171" {
		t.Fatalf("unexpected daemon address: %q", cfg.DaemonAddress())
	}
	if cfg.DaemonBaseURL() != "http://127.0.0.1:7171" {
		t.Fatalf("unexpected daemon base url: %q", cfg.DaemonBaseURL())
	}
	if cfg.StorageBackend() != BackendFile {
		t.Fatalf("unexpected backend: %q", cfg.StorageBackend())
	}
	if cfg.SaveDelay() != 300*time.Millisecond {
		t.Fatalf("unexpected save delay: %v", cfg.SaveDelay())
	}
	if cfg.DefaultNoteWidth() <= 0 || cfg.DefaultNoteHeight() <= 0 {
		t.Fatalf("expected positive default note size")
	}
}

func TestLoadFromTOML(t *testing.T) {
	home := filepath.Join(t.TempDir(), "home")
	t.Setenv("HOME", home)
	t.Setenv("PINBOARD_ADDR", "")

	dataDir := filepath.Join(home, ".pinboard")
	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	content := []byte("[daemon]\naddress = \"http://127.0.0.1:9999/\"\n\n[storage]\nbackend = \"bolt\"\n\n[board]\nsave_delay_ms = 150\n")
	if err := os.WriteFile(filepath.Join(dataDir, "config.toml"), content, 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DaemonAddress() != "127.0.0.1:9999" {
		t.Fatalf("unexpected daemon address: %q", cfg.DaemonAddress())
	}
	if cfg.StorageBackend() != BackendBolt {
		t.Fatalf("unexpected backend: %q", cfg.StorageBackend())
	}
	if cfg.SaveDelay() != 150*time.Millisecond {
		t.Fatalf("unexpected save delay: %v", cfg.SaveDelay())
	}
	path, err := cfg.StoragePath()
	if err != nil {
		t.Fatalf("StoragePath: %v", err)
	}
	if want := filepath.Join(dataDir, "notes.db"); path != want {
		t.Fatalf("unexpected storage path: got=%q want=%q", path, want)
	}
}

func TestAddressEnvOverride(t *testing.T) {
	t.Setenv("PINBOARD_ADDR", "http://127.0.0.1:7272/")
	cfg := Default()
	if cfg.DaemonAddress() != "127.0.0.1:7272" {
		t.Fatalf("unexpected daemon address: %q", cfg.DaemonAddress())
	}
}

func TestUnknownBackendFallsBack(t *testing.T) {
	cfg := Default()
	cfg.Storage.Backend = "etcd"
	if cfg.StorageBackend() != BackendFile {
		t.Fatalf("unexpected backend: %q", cfg.StorageBackend())
	}
}
