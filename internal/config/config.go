package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"github.com/typings-labs/gentypings/internal/branding"
)

const (
	fileName = "config"
	fileType = "yaml"

	// promptPrefix namespaces remembered prompt answers inside the config file.
	promptPrefix = "prompts."
)

// Dir returns the path to the config directory. GENTYPINGS_HOME overrides the
// default of ~/.gentypings.
func Dir() string {
	if v := os.Getenv(branding.EnvVar("HOME")); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file.
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// Store reads and writes one config file through its own Viper instance.
type Store struct {
	v    *viper.Viper
	path string
}

// Open loads the config file at path, along with GENTYPINGS_* environment
// overrides. A missing file is not an error; it is created on the first Set.
func Open(path string) (*Store, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType(fileType)
	v.SetEnvPrefix(branding.EnvPrefix())
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// Only a file that exists but cannot be parsed is an error.
		if _, statErr := os.Stat(path); statErr == nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
	}
	return &Store{v: v, path: path}, nil
}

// Load opens the default config file.
func Load() (*Store, error) {
	return Open(FilePath())
}

// Path returns the file backing the store.
func (s *Store) Path() string { return s.path }

// Get returns a config value by key. Returns empty string if not set.
func (s *Store) Get(key string) string {
	return s.v.GetString(key)
}

// Set writes a config key-value pair and saves the config file.
func (s *Store) Set(key, value string) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	s.v.Set(key, value)

	if err := s.v.WriteConfigAs(s.path); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// Remembered returns the stored answer for the named prompt.
func (s *Store) Remembered(prompt string) string {
	return s.Get(promptPrefix + prompt)
}

// Remember stores an answer under the prompt's name.
func (s *Store) Remember(prompt, answer string) error {
	return s.Set(promptPrefix+prompt, answer)
}
