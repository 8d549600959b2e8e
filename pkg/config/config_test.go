package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
index_url: https://reports.example.com/api/index
db_path: /var/lib/granola/digest.db
listen_addr: ":9090"
lookback_days: 28
refresh_interval: 1h
archive:
  path: /var/lib/granola/archive
  push: true
delivery:
  schedule_kind: weekly
  schedule_expr: mon 09:00
  timezone: Europe/Warsaw
  discord_channel: "12345"
ai:
  provider: gemini
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.IndexURL != "https://reports.example.com/api/index" {
		t.Errorf("index url = %q", cfg.IndexURL)
	}
	if cfg.LookbackDays != 28 {
		t.Errorf("lookback = %d", cfg.LookbackDays)
	}
	if cfg.Archive.Path != "/var/lib/granola/archive" || !cfg.Archive.Push {
		t.Errorf("archive = %+v", cfg.Archive)
	}
	if cfg.Delivery.ScheduleKind != "weekly" || cfg.Delivery.ScheduleExpr != "mon 09:00" {
		t.Errorf("delivery = %+v", cfg.Delivery)
	}
	if cfg.AI.Provider != "gemini" {
		t.Errorf("ai provider = %q", cfg.AI.Provider)
	}
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, "index_url: https://reports.example.com/api/index\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DBPath != "granola-digest.db" {
		t.Errorf("db path = %q", cfg.DBPath)
	}
	if cfg.ListenAddr != ":8080" {
		t.Errorf("listen addr = %q", cfg.ListenAddr)
	}
	if cfg.LookbackDays != 7 {
		t.Errorf("lookback = %d", cfg.LookbackDays)
	}
	if cfg.RefreshInterval != "30m" {
		t.Errorf("refresh interval = %q", cfg.RefreshInterval)
	}
}

func TestLoadRequiresIndexURL(t *testing.T) {
	path := writeConfig(t, "db_path: some.db\n")
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for missing index_url")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
