package domain

// ModelEntry is one downloadable model from the catalog.
type ModelEntry struct {
	Name        string `json:"name"`
	Filename    string `json:"filename"`
	URL         string `json:"url"`
	SizeBytes   int64  `json:"sizeBytes,omitempty"`
	Description string `json:"description,omitempty"`
}

// Config is the persisted application configuration.
type Config struct {
	// SourcePath is the last selected ingest directory.
	SourcePath string `toml:"source_path"`

	// DataDir holds the database and downloaded models.
	DataDir string `toml:"data_dir"`

	// LLMEndpoint is the OpenAI-compatible completion endpoint.
	LLMEndpoint string `toml:"llm_endpoint"`

	// EmbedModel is the Ollama model used for embeddings.
	EmbedModel string `toml:"embed_model"`

	// GPUEnabled is the persisted hardware acceleration flag.
	GPUEnabled bool `toml:"gpu_enabled"`

	// CatalogURL is the model catalog listing endpoint.
	CatalogURL string `toml:"catalog_url"`
}

// DefaultConfig returns the configuration used before any save.
func DefaultConfig() Config {
	return Config{
		LLMEndpoint: "http://127.0.0.1:8080",
		EmbedModel:  "nomic-embed-text",
		CatalogURL:  "https://raw.githubusercontent.com/leehyunseo03/crisper-app/main/models.json",
	}
}
