// Package memory provides in-memory driven adapters for testing.
package memory

import (
	"sync"

	"github.com/leehyunseo03/crisper-app/internal/core/domain"
	"github.com/leehyunseo03/crisper-app/internal/core/ports/driven"
)

// Ensure ConfigStore implements the interface.
var _ driven.ConfigStore = (*ConfigStore)(nil)

// ConfigStore is an in-memory implementation of driven.ConfigStore for
// testing. Load before the first Save returns the defaults, matching
// the file-backed store's missing-file behaviour.
type ConfigStore struct {
	mu    sync.RWMutex
	cfg   domain.Config
	saved bool

	// LoadErr and SaveErr, when set, fail the corresponding call.
	LoadErr error
	SaveErr error
}

// NewConfigStore creates a new in-memory config store.
func NewConfigStore() *ConfigStore {
	return &ConfigStore{}
}

// Load returns the stored configuration, or the defaults before any save.
func (s *ConfigStore) Load() (domain.Config, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.LoadErr != nil {
		return domain.Config{}, s.LoadErr
	}
	if !s.saved {
		return domain.DefaultConfig(), nil
	}
	return s.cfg, nil
}

// Save stores the configuration.
func (s *ConfigStore) Save(cfg domain.Config) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.SaveErr != nil {
		return s.SaveErr
	}
	s.cfg = cfg
	s.saved = true
	return nil
}

// Path returns the configuration file path.
func (s *ConfigStore) Path() string {
	return ":memory:"
}
