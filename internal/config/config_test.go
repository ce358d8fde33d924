package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	t.Setenv("CHAT_CONFIG_DIR", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ChatDB != "" || cfg.DefaultLimit != 0 || cfg.NoResolve {
		t.Fatalf("expected zero config, got %+v", cfg)
	}
}

func TestLoadReadsConfigFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("CHAT_CONFIG_DIR", dir)

	data := "chat_db: /tmp/chat.db\ndefault_limit: 50\nservice: SMS\nno_resolve: true\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ChatDB != "/tmp/chat.db" || cfg.DefaultLimit != 50 || cfg.Service != "SMS" || !cfg.NoResolve {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("CHAT_CONFIG_DIR", dir)

	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("{not yaml"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestGetConfigDirOverride(t *testing.T) {
	t.Setenv("CHAT_CONFIG_DIR", "/tmp/custom")
	dir, err := GetConfigDir()
	if err != nil {
		t.Fatalf("GetConfigDir: %v", err)
	}
	if dir != "/tmp/custom" {
		t.Fatalf("GetConfigDir=%q", dir)
	}
}
