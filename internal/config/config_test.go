package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Database.Path != filepath.Join(dir, "trades.db") {
		t.Errorf("Wrong default db path: %s", cfg.Database.Path)
	}
	if !cfg.Journal.RequireAttachment {
		t.Error("require_attachment should default to true")
	}
	if cfg.Journal.StrictNumeric {
		t.Error("strict_numeric should default to false")
	}
	if len(cfg.Access.Admins) != 0 {
		t.Errorf("Admins should default empty, got %v", cfg.Access.Admins)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Wrong default log level: %s", cfg.Logging.Level)
	}

	// First load leaves an editable template behind.
	if _, err := os.Stat(filepath.Join(dir, "config.toml")); err != nil {
		t.Errorf("Config template not created: %v", err)
	}
}

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	content := `
[database]
path = "/tmp/custom.db"

[journal]
require_attachment = false
strict_numeric = true

[access]
admins = ["1001", "1002"]

[logging]
level = "debug"
`
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Database.Path != "/tmp/custom.db" {
		t.Errorf("db path = %s", cfg.Database.Path)
	}
	if cfg.Journal.RequireAttachment {
		t.Error("require_attachment should be false")
	}
	if !cfg.Journal.StrictNumeric {
		t.Error("strict_numeric should be true")
	}
	if len(cfg.Access.Admins) != 2 || cfg.Access.Admins[0] != "1001" {
		t.Errorf("admins = %v", cfg.Access.Admins)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("log level = %s", cfg.Logging.Level)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("JOURNALBOT_DB_PATH", "/tmp/env.db")
	t.Setenv("JOURNALBOT_ADMINS", "2001, 2002 ,")
	t.Setenv("JOURNALBOT_LOG_LEVEL", "warn")

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Database.Path != "/tmp/env.db" {
		t.Errorf("db path = %s", cfg.Database.Path)
	}
	if len(cfg.Access.Admins) != 2 || cfg.Access.Admins[1] != "2002" {
		t.Errorf("admins = %v", cfg.Access.Admins)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("log level = %s", cfg.Logging.Level)
	}
}

func TestValidate(t *testing.T) {
	valid := &Config{
		Database: DatabaseConfig{Path: "/tmp/t.db"},
		Logging:  LoggingConfig{Level: "info"},
	}
	if err := valid.Validate(); err != nil {
		t.Errorf("Valid config rejected: %v", err)
	}

	noDB := &Config{Logging: LoggingConfig{Level: "info"}}
	if err := noDB.Validate(); err == nil {
		t.Error("Expected error for empty database path")
	}

	badLevel := &Config{
		Database: DatabaseConfig{Path: "/tmp/t.db"},
		Logging:  LoggingConfig{Level: "verbose"},
	}
	if err := badLevel.Validate(); err == nil {
		t.Error("Expected error for invalid log level")
	}
}
