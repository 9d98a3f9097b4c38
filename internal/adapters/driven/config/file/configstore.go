package file

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/consolidator/internal/core/domain"
	"github.com/custodia-labs/consolidator/internal/core/ports/driven"
)

// Ensure ConfigStore implements the interface.
var _ driven.ConfigStore = (*ConfigStore)(nil)

// document is the on-disk layout of config.toml.
type document struct {
	Identity struct {
		Strategy string `toml:"strategy,omitempty"`
	} `toml:"identity"`
	Storage struct {
		DataDir string `toml:"data_dir,omitempty"`
	} `toml:"storage"`
	Output struct {
		Verbose *bool `toml:"verbose,omitempty"`
	} `toml:"output"`
}

// stringFields and boolFields map dot-notation keys onto the document.
var stringFields = map[string]func(*document) *string{
	domain.SettingIdentityStrategy: func(d *document) *string { return &d.Identity.Strategy },
	domain.SettingDataDir:          func(d *document) *string { return &d.Storage.DataDir },
}

var boolFields = map[string]func(*document) **bool{
	domain.SettingVerbose: func(d *document) **bool { return &d.Output.Verbose },
}

// ConfigStore keeps settings in a TOML file, one table per key prefix.
type ConfigStore struct {
	mu       sync.RWMutex
	filePath string
	doc      document
}

// NewConfigStore opens <configDir>/config.toml, creating the directory.
// If configDir is empty, defaults to ~/.consolidator.
func NewConfigStore(configDir string) (*ConfigStore, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		configDir = filepath.Join(home, ".consolidator")
	}
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, err
	}

	s := &ConfigStore{filePath: filepath.Join(configDir, "config.toml")}

	data, err := os.ReadFile(s.filePath)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return s, nil
	case err != nil:
		return nil, err
	}
	if err := toml.Unmarshal(data, &s.doc); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrInvalidInput, s.filePath, err)
	}
	return s, nil
}

// GetString returns a string setting.
func (s *ConfigStore) GetString(key string) string {
	field, ok := stringFields[key]
	if !ok {
		return ""
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return *field(&s.doc)
}

// GetBool returns a boolean setting.
func (s *ConfigStore) GetBool(key string) bool {
	field, ok := boolFields[key]
	if !ok {
		return false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if b := *field(&s.doc); b != nil {
		return *b
	}
	return false
}

// Set updates one setting and rewrites the file.
func (s *ConfigStore) Set(key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.doc
	if field, ok := stringFields[key]; ok {
		v, ok := value.(string)
		if !ok {
			return fmt.Errorf("%w: %s expects a string", domain.ErrInvalidInput, key)
		}
		*field(&next) = v
	} else if field, ok := boolFields[key]; ok {
		v, ok := value.(bool)
		if !ok {
			return fmt.Errorf("%w: %s expects true or false", domain.ErrInvalidInput, key)
		}
		*field(&next) = &v
	} else {
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	data, err := toml.Marshal(next)
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.filePath, data, 0600); err != nil {
		return err
	}
	s.doc = next
	return nil
}

// Path returns the configuration file path.
func (s *ConfigStore) Path() string {
	return s.filePath
}
