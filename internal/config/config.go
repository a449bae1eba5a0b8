// Package config loads optional server configuration from a
// JSON-with-comments file, following the precedence chain modeled on the
// teacher's own config loader: defaults, then a global user config, then
// a project config file, then explicit CLI overrides (highest wins).
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tailscale/hujson"
)

// FileName is the default project config file name.
const FileName = ".docindex.json"

// Config holds server startup options. DocRoot and CacheCapacity can also
// come from the mandatory `<document_folder> <cache_size>` positional CLI
// arguments, which the server applies over any file value.
type Config struct {
	// DocRoot is the directory documents are served from.
	DocRoot string `json:"doc_root,omitempty"`

	// CacheCapacity is the number of entries the response cache holds;
	// 0 selects the no-op cache backend.
	CacheCapacity int `json:"cache_capacity,omitempty"`

	// WorkerCapMultiplier bounds parallel search workers at
	// WorkerCapMultiplier*runtime.NumCPU() (spec.md §9 Open Question (iii)).
	WorkerCapMultiplier int `json:"worker_cap_multiplier,omitempty"`

	// ListenDir is the directory the server's FIFO listen endpoint and
	// per-client reply endpoints are created in.
	ListenDir string `json:"listen_dir,omitempty"`
}

// Default returns the built-in defaults.
func Default() Config {
	return Config{
		WorkerCapMultiplier: 10,
		ListenDir:           "/tmp",
	}
}

// Load resolves configuration with the following precedence (highest
// wins): defaults, global config ($XDG_CONFIG_HOME/docindex/config.json
// or ~/.config/docindex/config.json), project config file at
// workDir/.docindex.json, explicit configPath (if non-empty), then
// cliOverrides.
func Load(workDir, configPath string, cliOverrides Config) (Config, error) {
	cfg := Default()

	if globalPath := globalConfigPath(); globalPath != "" {
		if loaded, ok, err := loadFile(globalPath); err != nil {
			return Config{}, fmt.Errorf("config: global config: %w", err)
		} else if ok {
			cfg = merge(cfg, loaded)
		}
	}

	projectPath := filepath.Join(workDir, FileName)
	if loaded, ok, err := loadFile(projectPath); err != nil {
		return Config{}, fmt.Errorf("config: project config: %w", err)
	} else if ok {
		cfg = merge(cfg, loaded)
	}

	if configPath != "" {
		loaded, ok, err := loadFile(configPath)
		if err != nil {
			return Config{}, fmt.Errorf("config: %s: %w", configPath, err)
		}

		if !ok {
			return Config{}, fmt.Errorf("config: %s: %w", configPath, os.ErrNotExist)
		}

		cfg = merge(cfg, loaded)
	}

	return merge(cfg, cliOverrides), nil
}

func globalConfigPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "docindex", "config.json")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	return filepath.Join(home, ".config", "docindex", "config.json")
}

func loadFile(path string) (Config, bool, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, false, nil
		}

		return Config{}, false, err
	}

	standard, err := hujson.Standardize(raw)
	if err != nil {
		return Config{}, false, fmt.Errorf("parse: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(standard, &cfg); err != nil {
		return Config{}, false, fmt.Errorf("decode: %w", err)
	}

	return cfg, true, nil
}

// merge overlays every non-zero field of override onto base.
func merge(base, override Config) Config {
	if override.DocRoot != "" {
		base.DocRoot = override.DocRoot
	}

	if override.CacheCapacity != 0 {
		base.CacheCapacity = override.CacheCapacity
	}

	if override.WorkerCapMultiplier != 0 {
		base.WorkerCapMultiplier = override.WorkerCapMultiplier
	}

	if override.ListenDir != "" {
		base.ListenDir = override.ListenDir
	}

	return base
}
