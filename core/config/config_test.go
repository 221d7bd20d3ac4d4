package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadDatabaseSection(t *testing.T) {
	path := writeConfig(t, `
telegram:
  token: "123:abcdefghij"
database:
  enabled: true
  host: localhost
  port: "5432"
  user: privacybot
  name: privacybot
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !cfg.Database.Enabled {
		t.Fatal("database.enabled not parsed")
	}
	if cfg.Database.Host != "localhost" || cfg.Database.Name != "privacybot" {
		t.Fatalf("database section mismatch: %+v", cfg.Database)
	}
	if cfg.Database.SSLMode != "disable" {
		t.Fatalf("expected sslmode default 'disable', got %q", cfg.Database.SSLMode)
	}
	if cfg.Database.MaxConnections != 4 {
		t.Fatalf("expected max_connections default 4, got %d", cfg.Database.MaxConnections)
	}
}

func TestNormalizeDatabaseRequiresConnectionFields(t *testing.T) {
	cfg := &Config{
		Telegram: TelegramConfig{Token: "123:abcdefghij"},
		Database: DatabaseConfig{Enabled: true},
	}
	if err := Normalize(cfg); err == nil {
		t.Fatal("expected error for enabled database without host/name/user")
	}
}

func TestNormalizeDisabledDatabaseSkipsValidation(t *testing.T) {
	cfg := &Config{
		Telegram: TelegramConfig{Token: "123:abcdefghij"},
	}
	if err := Normalize(cfg); err != nil {
		t.Fatalf("normalize: %v", err)
	}
}

func TestNormalizeAnswerPauseDefault(t *testing.T) {
	cfg := &Config{Telegram: TelegramConfig{Token: "123:abcdefghij"}}
	if err := Normalize(cfg); err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if cfg.Bot.AnswerPauseMS != 1000 {
		t.Fatalf("expected default pause 1000ms, got %d", cfg.Bot.AnswerPauseMS)
	}

	cfg = &Config{
		Telegram: TelegramConfig{Token: "123:abcdefghij"},
		Bot:      BotConfig{AnswerPauseMS: -1},
	}
	if err := Normalize(cfg); err == nil {
		t.Fatal("expected error for negative pause")
	}
}
