package main

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// replConfig holds the REPL's optional, entirely-cosmetic settings.
// Nothing in here changes language semantics; it only lets a user
// customize the prompt, greeting, and history file location via
// ~/.wisdomrc.yaml.
type replConfig struct {
	Prompt      string `yaml:"prompt"`
	Greeting    string `yaml:"greeting"`
	HistoryFile string `yaml:"history_file"`
}

func defaultConfig() replConfig {
	historyFile := ""
	if home, err := os.UserHomeDir(); err == nil {
		historyFile = filepath.Join(home, ".wisdom_history")
	}
	return replConfig{
		Prompt:      "wisdom> ",
		Greeting:    "wisdom REPL (type 'exit' or Ctrl+D to quit)",
		HistoryFile: historyFile,
	}
}

// loadReplConfig returns the default configuration, overridden field by
// field by ~/.wisdomrc.yaml when that file exists. A missing or
// unreadable config file is not an error: the REPL falls back to
// defaultConfig() silently.
func loadReplConfig() replConfig {
	cfg := defaultConfig()

	home, err := os.UserHomeDir()
	if err != nil {
		return cfg
	}
	data, err := os.ReadFile(filepath.Join(home, ".wisdomrc.yaml"))
	if err != nil {
		return cfg
	}

	var override replConfig
	if err := yaml.Unmarshal(data, &override); err != nil {
		return cfg
	}
	if override.Prompt != "" {
		cfg.Prompt = override.Prompt
	}
	if override.Greeting != "" {
		cfg.Greeting = override.Greeting
	}
	if override.HistoryFile != "" {
		cfg.HistoryFile = override.HistoryFile
	}
	return cfg
}
