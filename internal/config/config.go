// Package config handles global Zinc configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// DefaultPapersFolder is the vault subfolder notes are written to when the
// config does not override it.
const DefaultPapersFolder = "Academic Papers"

// Config represents the global Zinc configuration.
type Config struct {
	// ZoteroDB is the path to zotero.sqlite.
	ZoteroDB string `toml:"zotero_db"`

	// Vault is the path to the Obsidian vault root.
	Vault string `toml:"vault"`

	// PapersFolder is the vault subfolder that holds synced notes.
	// Defaults to "Academic Papers".
	PapersFolder string `toml:"papers_folder"`
}

// DefaultPath returns the default config file location,
// honoring XDG_CONFIG_HOME.
func DefaultPath() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "zinc", "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".config", "zinc", "config.toml"), nil
}

// Load reads the config at path. A missing file is not an error: it returns
// an empty config so flags and environment variables can stand alone.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the config to path, creating parent directories as needed.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create config file: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// ExpandHome expands a leading "~/" to the user's home directory.
func ExpandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}
