// Package file provides the TOML configuration file for the docchat CLI.
package file

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Config holds user-tunable settings persisted in config.toml.
type Config struct {
	// EmbeddingModel is the embedding model name.
	EmbeddingModel string `toml:"embedding_model"`

	// ChatModel is the chat completion model name.
	ChatModel string `toml:"chat_model"`

	// DataDir is where the SQLite library lives. Empty means the default
	// ~/.docchat/data.
	DataDir string `toml:"data_dir"`

	// ChunkSize is the segmentation window length in bytes.
	ChunkSize int `toml:"chunk_size"`

	// ChunkOverlap is the number of bytes shared between windows.
	ChunkOverlap int `toml:"chunk_overlap"`
}

// DefaultConfig returns the settings used when no config file exists.
func DefaultConfig() Config {
	return Config{
		EmbeddingModel: "text-embedding-3-small",
		ChatModel:      "gpt-4o",
		ChunkSize:      500,
		ChunkOverlap:   50,
	}
}

func configPath(configDir string) (string, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("getting home directory: %w", err)
		}
		configDir = filepath.Join(home, ".docchat")
	}
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return "", fmt.Errorf("creating config directory: %w", err)
	}
	return filepath.Join(configDir, "config.toml"), nil
}

// Load reads the config file under configDir, filling unset fields with
// defaults. A missing file yields the defaults.
// If configDir is empty, defaults to ~/.docchat.
func Load(configDir string) (Config, error) {
	cfg := DefaultConfig()

	path, err := configPath(configDir)
	if err != nil {
		return cfg, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing %s: %w", path, err)
	}

	defaults := DefaultConfig()
	if cfg.EmbeddingModel == "" {
		cfg.EmbeddingModel = defaults.EmbeddingModel
	}
	if cfg.ChatModel == "" {
		cfg.ChatModel = defaults.ChatModel
	}
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = defaults.ChunkSize
	}
	if cfg.ChunkOverlap < 0 {
		cfg.ChunkOverlap = defaults.ChunkOverlap
	}
	return cfg, nil
}

// Save writes the config file under configDir.
func Save(configDir string, cfg Config) error {
	path, err := configPath(configDir)
	if err != nil {
		return err
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
