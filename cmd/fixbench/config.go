package main

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/fixwire/fixwire/wire"
)

type fileConfig struct {
	Fixture    string `toml:"fixture"`
	Dictionary string `toml:"dictionary"`
	Iterations int    `toml:"iterations"`
	Strategy   string `toml:"strategy"`
	Verbose    bool   `toml:"verbose"`
}

type benchConfig struct {
	Fixture    string
	Dictionary string
	Iterations int
	Strategies []wire.Strategy
	Verbose    bool
}

func defaultBenchConfig() benchConfig {
	return benchConfig{
		Iterations: 200_000,
		Strategies: []wire.Strategy{wire.StrategyOnePass, wire.StrategyTwoPass},
	}
}

// loadConfig reads a TOML config file, falling back to defaults for anything
// left unset. An empty path returns the defaults untouched.
func loadConfig(path string) (benchConfig, error) {
	cfg := defaultBenchConfig()
	if path == "" {
		return cfg, nil
	}

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return benchConfig{}, fmt.Errorf("load fixbench config: %w", err)
	}

	if meta.IsDefined("fixture") {
		cfg.Fixture = strings.TrimSpace(raw.Fixture)
	}
	if meta.IsDefined("dictionary") {
		cfg.Dictionary = strings.TrimSpace(raw.Dictionary)
	}
	if meta.IsDefined("iterations") {
		if raw.Iterations <= 0 {
			return benchConfig{}, fmt.Errorf("iterations must be positive, got %d", raw.Iterations)
		}
		cfg.Iterations = raw.Iterations
	}
	if meta.IsDefined("strategy") {
		strategies, err := parseStrategies(raw.Strategy)
		if err != nil {
			return benchConfig{}, err
		}
		cfg.Strategies = strategies
	}
	if meta.IsDefined("verbose") {
		cfg.Verbose = raw.Verbose
	}

	return cfg, nil
}

func parseStrategies(s string) ([]wire.Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "one-pass":
		return []wire.Strategy{wire.StrategyOnePass}, nil
	case "two-pass":
		return []wire.Strategy{wire.StrategyTwoPass}, nil
	case "", "both":
		return []wire.Strategy{wire.StrategyOnePass, wire.StrategyTwoPass}, nil
	default:
		return nil, fmt.Errorf("unknown strategy %q (want one-pass, two-pass or both)", s)
	}
}
