package model

import "time"

// Config holds the full application configuration.
type Config struct {
	Lexicon     LexiconConfig     `yaml:"lexicon" mapstructure:"lexicon"`
	Model       ModelConfig       `yaml:"model" mapstructure:"model"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" mapstructure:"concurrency"`
	Output      OutputConfig      `yaml:"output" mapstructure:"output"`
	Log         LogConfig         `yaml:"log" mapstructure:"log"`
}

// LexiconConfig points at optional external dictionaries that override or
// extend the embedded seed datasets.
type LexiconConfig struct {
	CountriesPath     string `yaml:"countries_path" mapstructure:"countries_path"`
	NamesPath         string `yaml:"names_path" mapstructure:"names_path"`
	NamesJunkPath     string `yaml:"names_junk_path" mapstructure:"names_junk_path"`
	NoOwnerPath       string `yaml:"no_owner_path" mapstructure:"no_owner_path"`
	SameAsFounderPath string `yaml:"same_as_founder_path" mapstructure:"same_as_founder_path"`
}

// ModelConfig configures the external named-entity model used as a
// fallback scorer when lexical rules are inconclusive.
type ModelConfig struct {
	// Provider name: "openai" or "" (disabled).
	Provider string `yaml:"provider" mapstructure:"provider"`
	Model    string `yaml:"model" mapstructure:"model"`
	APIKey   string `yaml:"api_key" mapstructure:"api_key"`
	// BaseURL allows any OpenAI-compatible endpoint (e.g. Ollama).
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`

	// Timeout bounds a single call into the model. A timeout degrades the
	// record to unparsed, it never aborts the batch.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`

	// MinScore is the confidence threshold below which a model answer is
	// discarded and the record falls back to unparsed.
	MinScore float64 `yaml:"min_score" mapstructure:"min_score"`

	// RequestsPerSecond and Burst bound the request queue to the model.
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	Burst             int     `yaml:"burst" mapstructure:"burst"`

	// Serialize forces one in-flight request at a time, for model
	// implementations that are not reentrant.
	Serialize bool `yaml:"serialize" mapstructure:"serialize"`

	// CacheTTL controls memoization of model answers. Registry feeds
	// repeat the same boilerplate strings massively, so this pays off.
	CacheTTL time.Duration `yaml:"cache_ttl" mapstructure:"cache_ttl"`

	HTTPProxy  string `yaml:"http_proxy" mapstructure:"http_proxy"`
	HTTPSProxy string `yaml:"https_proxy" mapstructure:"https_proxy"`
}

// ConcurrencyConfig controls batch parallelism.
type ConcurrencyConfig struct {
	Workers int `yaml:"workers" mapstructure:"workers"`
}

// OutputConfig controls the saving collaborator.
type OutputConfig struct {
	// Format: "jsonl" or "csv".
	Format  string `yaml:"format" mapstructure:"format"`
	Verbose bool   `yaml:"verbose" mapstructure:"verbose"`
}

// LogConfig configures structured logging.
type LogConfig struct {
	Level string `yaml:"level" mapstructure:"level"`
	// File enables rotated file output in addition to stderr.
	File       string `yaml:"file" mapstructure:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb" mapstructure:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups" mapstructure:"max_backups"`
	JSON       bool   `yaml:"json" mapstructure:"json"`
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Model: ModelConfig{
			Provider:          "",
			Timeout:           10 * time.Second,
			MinScore:          0.5,
			RequestsPerSecond: 5,
			Burst:             5,
			CacheTTL:          time.Hour,
		},
		Concurrency: ConcurrencyConfig{
			Workers: 4,
		},
		Output: OutputConfig{
			Format: "jsonl",
		},
		Log: LogConfig{
			Level:      "info",
			MaxSizeMB:  50,
			MaxBackups: 3,
		},
	}
}
