// Package file provides a file-backed secret store with environment
// fallback.
package file

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/docchat/internal/core/ports/driven"
)

// Ensure SecretStore implements the interface.
var _ driven.SecretStore = (*SecretStore)(nil)

// envFallbacks maps secret keys to the environment variables consulted
// when no value is stored on disk.
var envFallbacks = map[string]string{
	driven.SecretKeyOpenAI: "DOCCHAT_OPENAI_API_KEY",
}

// SecretStore keeps secrets in a TOML file written with 0600 permissions.
// A key absent from the file falls back to its environment variable, so a
// dev setup can run without ever persisting the credential.
type SecretStore struct {
	mu       sync.RWMutex
	filePath string
	values   map[string]string
}

// NewSecretStore creates a secret store under configDir.
// If configDir is empty, defaults to ~/.docchat/secrets.toml.
func NewSecretStore(configDir string) (*SecretStore, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		configDir = filepath.Join(home, ".docchat")
	}
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, fmt.Errorf("creating config directory: %w", err)
	}

	s := &SecretStore{
		filePath: filepath.Join(configDir, "secrets.toml"),
		values:   make(map[string]string),
	}
	if err := s.load(); err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	return s, nil
}

func (s *SecretStore) load() error {
	data, err := os.ReadFile(s.filePath)
	if err != nil {
		return err
	}
	if err := toml.Unmarshal(data, &s.values); err != nil {
		return fmt.Errorf("parsing %s: %w", s.filePath, err)
	}
	return nil
}

func (s *SecretStore) save() error {
	data, err := toml.Marshal(s.values)
	if err != nil {
		return fmt.Errorf("encoding secrets: %w", err)
	}
	if err := os.WriteFile(s.filePath, data, 0600); err != nil {
		return fmt.Errorf("writing %s: %w", s.filePath, err)
	}
	return nil
}

// Get returns the stored value for key, falling back to the key's
// environment variable, or "" when neither is set.
func (s *SecretStore) Get(key string) (string, error) {
	s.mu.RLock()
	val := s.values[key]
	s.mu.RUnlock()
	if val != "" {
		return val, nil
	}
	if envVar, ok := envFallbacks[key]; ok {
		return os.Getenv(envVar), nil
	}
	return "", nil
}

// Set stores a value under key and persists the file.
func (s *SecretStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return s.save()
}

// Delete removes a key. Deleting an unknown key is not an error.
func (s *SecretStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return s.save()
}
