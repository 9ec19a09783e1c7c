package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds the settings of the interpreter command.
type Config struct {
	// ExpansionLimit bounds macro expansions per top-level form; 0 = none.
	ExpansionLimit     int      `yaml:"expansion_limit"`
	Prelude            []string `yaml:"prelude"`
	HistoryFile        string   `yaml:"history_file"`
	Prompt             string   `yaml:"prompt"`
	ContinuationPrompt string   `yaml:"continuation_prompt"`
}

// DefaultConfig returns the settings used when no config file exists.
func DefaultConfig() Config {
	history := ""
	if home, err := os.UserHomeDir(); err == nil {
		history = filepath.Join(home, ".little_lisp_history")
	}
	return Config{
		ExpansionLimit:     10000,
		HistoryFile:        history,
		Prompt:             "> ",
		ContinuationPrompt: "| ",
	}
}

// DefaultConfigPath returns ~/.little-lisp.yaml, or "" if there is no home.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".little-lisp.yaml")
}

// LoadConfig reads a YAML config file over the defaults. A missing file
// is not an error unless required is true.
func LoadConfig(path string, required bool) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !required {
			return cfg, nil
		}
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	if cfg.ExpansionLimit < 0 {
		return cfg, fmt.Errorf("%s: expansion_limit must not be negative", path)
	}
	return cfg, nil
}
