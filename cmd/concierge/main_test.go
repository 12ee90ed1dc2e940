package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"concierge/internal/config"
)

func TestConfigInitWritesDefaults(t *testing.T) {
	logger = zap.NewNop()
	configPath = filepath.Join(t.TempDir(), "concierge.yaml")

	if err := configInitCmd.RunE(&cobra.Command{}, nil); err != nil {
		t.Fatalf("config init failed: %v", err)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Name != "concierge" {
		t.Errorf("Name = %q", cfg.Name)
	}
}

func TestRunServeRejectsMissingAPIKey(t *testing.T) {
	logger = zap.NewNop()
	configPath = filepath.Join(t.TempDir(), "missing.yaml")
	t.Setenv("GEMINI_API_KEY", "")

	if err := runServe(context.Background()); err == nil {
		t.Fatal("expected error for missing API key")
	}
}
