package driven

import "github.com/leehyunseo03/crisper-app/internal/core/domain"

// ConfigStore provides access to application configuration.
// Implementations handle persistence (e.g., TOML files).
type ConfigStore interface {
	// Load reads configuration from storage. A missing file returns
	// the defaults, not an error.
	Load() (domain.Config, error)

	// Save persists the configuration to storage.
	Save(cfg domain.Config) error

	// Path returns the configuration file path.
	Path() string
}
