package config

import (
	"os"
	"testing"
)

func TestLoadConfig(t *testing.T) {
	os.Setenv("DATABASE_URL", "mongodb://localhost:27017/testdb")
	os.Setenv("MONGODB_DATABASE", "moldcosting_test")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.MongoDB.URI == "" || cfg.MongoDB.Database != "moldcosting_test" {
		t.Fatalf("unexpected config values: %+v", cfg.MongoDB)
	}
	if cfg.Server.Port != "3000" {
		t.Fatalf("expected default port 3000, got %q", cfg.Server.Port)
	}
}

func TestLoadConfigRequiresDatabaseURL(t *testing.T) {
	os.Unsetenv("DATABASE_URL")
	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected an error when DATABASE_URL is unset")
	}
}
