package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fixwire/fixwire/wire"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := loadConfig("")
	if err != nil {
		t.Fatalf("loadConfig failed: %v", err)
	}
	if cfg.Iterations != 200_000 {
		t.Errorf("Iterations = %d, want 200000", cfg.Iterations)
	}
	if len(cfg.Strategies) != 2 {
		t.Errorf("Strategies = %v, want both", cfg.Strategies)
	}
}

func TestLoadConfig_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fixbench.toml")
	content := "fixture = \"msg.bin\"\niterations = 500\nstrategy = \"two-pass\"\nverbose = true\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig failed: %v", err)
	}
	if cfg.Fixture != "msg.bin" || cfg.Iterations != 500 || !cfg.Verbose {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if len(cfg.Strategies) != 1 || cfg.Strategies[0] != wire.StrategyTwoPass {
		t.Errorf("Strategies = %v, want [two-pass]", cfg.Strategies)
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
	}{
		{"bad strategy", "strategy = \"three-pass\"\n"},
		{"non-positive iterations", "iterations = 0\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name+".toml")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatal(err)
			}
			if _, err := loadConfig(path); err == nil {
				t.Error("invalid config accepted")
			}
		})
	}
}

func TestSamplePayload_Valid(t *testing.T) {
	if _, err := wire.Validate(samplePayload()); err != nil {
		t.Errorf("built-in sample does not validate: %v", err)
	}
}
