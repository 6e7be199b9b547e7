package config

import (
	"fmt"
	"sync"

	"github.com/yllada/system-monitor/common"
)

// Store exposes the persisted preferences as a small key/value API.
// Every Set is written to disk before it returns.
type Store struct {
	mu     sync.Mutex
	path   string
	config *Config
}

// NewStore wraps cfg so that changes are saved to path.
func NewStore(cfg *Config, path string) *Store {
	return &Store{path: path, config: cfg}
}

// OpenStore loads the configuration at path and wraps it in a Store.
func OpenStore(path string) (*Store, error) {
	cfg, err := LoadFrom(path)
	if err != nil {
		return nil, err
	}
	return NewStore(cfg, path), nil
}

// OpenDefaultStore opens the store backed by the default config file.
func OpenDefaultStore() (*Store, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	return OpenStore(path)
}

// Config returns a copy of the current configuration.
func (s *Store) Config() Config {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.config
}

// Update applies fn to the configuration and saves the result.
func (s *Store) Update(fn func(*Config)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.config)
	s.config.validate()
	return s.config.SaveTo(s.path)
}

// Int returns an integer preference. Unknown keys read as zero.
func (s *Store) Int(key string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if key == common.OptionProcessTabIndex {
		return s.config.ProcessTabIndex
	}
	return 0
}

// String returns a string preference. Unknown keys read as "".
func (s *Store) String(key string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch key {
	case common.OptionProcessColumns:
		return s.config.ProcessColumns
	case common.OptionThemeStyle:
		return s.config.ThemeStyle
	}
	return ""
}

// Set stores value under key and writes the file immediately.
func (s *Store) Set(key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch key {
	case common.OptionProcessTabIndex:
		v, ok := value.(int)
		if !ok {
			return fmt.Errorf("%w: %s wants an int, got %T", common.ErrInvalidOption, key, value)
		}
		s.config.ProcessTabIndex = v
	case common.OptionProcessColumns:
		v, ok := value.(string)
		if !ok {
			return fmt.Errorf("%w: %s wants a string, got %T", common.ErrInvalidOption, key, value)
		}
		s.config.ProcessColumns = v
	case common.OptionThemeStyle:
		v, ok := value.(string)
		if !ok {
			return fmt.Errorf("%w: %s wants a string, got %T", common.ErrInvalidOption, key, value)
		}
		s.config.ThemeStyle = v
	default:
		return fmt.Errorf("%w: %s", common.ErrUnknownOption, key)
	}

	return s.config.SaveTo(s.path)
}
