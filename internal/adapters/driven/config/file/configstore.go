package file

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"github.com/leehyunseo03/crisper-app/internal/core/domain"
	"github.com/leehyunseo03/crisper-app/internal/core/ports/driven"
)

// Ensure ConfigStore implements the interface.
var _ driven.ConfigStore = (*ConfigStore)(nil)

// ConfigStore is a file-based implementation of driven.ConfigStore using TOML.
// Configuration is stored in a TOML file within the crisper config directory.
// A .env file in the working directory, when present, overrides endpoint
// settings at load time.
type ConfigStore struct {
	mu       sync.Mutex
	filePath string
	dataDir  string
}

// NewConfigStore creates a new TOML-based config store.
// If configDir is empty, defaults to ~/.crisper/config.toml.
func NewConfigStore(configDir string) (*ConfigStore, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		configDir = filepath.Join(home, ".crisper")
	}

	// Ensure directory exists
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, err
	}

	// Optional local overrides; absence is not an error.
	_ = godotenv.Load()

	return &ConfigStore{
		filePath: filepath.Join(configDir, "config.toml"),
		dataDir:  configDir,
	}, nil
}

// Load reads configuration from the TOML file. A missing file yields
// the defaults. Environment variables override endpoint settings.
func (s *ConfigStore) Load() (domain.Config, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cfg := domain.DefaultConfig()
	cfg.DataDir = s.dataDir

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return s.applyEnv(cfg), nil
		}
		return cfg, err
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}

	if cfg.DataDir == "" {
		cfg.DataDir = s.dataDir
	}

	return s.applyEnv(cfg), nil
}

// Save persists the configuration to disk.
func (s *ConfigStore) Save(cfg domain.Config) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}

	// Write with restricted permissions
	return os.WriteFile(s.filePath, data, 0600)
}

// Path returns the configuration file path.
func (s *ConfigStore) Path() string {
	return s.filePath
}

// applyEnv layers environment overrides onto the loaded config.
func (s *ConfigStore) applyEnv(cfg domain.Config) domain.Config {
	if v := os.Getenv("CRISPER_LLM_ENDPOINT"); v != "" {
		cfg.LLMEndpoint = v
	}
	if v := os.Getenv("CRISPER_EMBED_MODEL"); v != "" {
		cfg.EmbedModel = v
	}
	if v := os.Getenv("CRISPER_CATALOG_URL"); v != "" {
		cfg.CatalogURL = v
	}
	return cfg
}
