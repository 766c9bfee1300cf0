package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables that override the corresponding config fields when set.
const (
	EnvSPARQLEndpoint = "COUNTRYNAME_SPARQL_ENDPOINT"
	EnvUserAgent      = "COUNTRYNAME_USER_AGENT"
	EnvOutputPath     = "COUNTRYNAME_OUTPUT"
)

// Config holds the application configuration.
type Config struct {
	Request   RequestConfig   `yaml:"request"`
	Wikidata  WikidataConfig  `yaml:"wikidata"`
	Standards StandardsConfig `yaml:"standards"`
	Output    OutputConfig    `yaml:"output"`
	Log       LogConfig       `yaml:"log"`
}

// RequestConfig holds HTTP request settings.
type RequestConfig struct {
	Retries   int           `yaml:"retries"`
	Timeout   Duration      `yaml:"timeout"`
	UserAgent string        `yaml:"user_agent"`
	Backoff   BackoffConfig `yaml:"backoff"`
}

// BackoffConfig holds exponential backoff settings.
type BackoffConfig struct {
	BaseDelay Duration `yaml:"base_delay"`
	MaxDelay  Duration `yaml:"max_delay"`
}

// WikidataConfig holds settings for the remote name lookup.
type WikidataConfig struct {
	Endpoint string `yaml:"endpoint"`
	Language string `yaml:"language"` // label language, e.g. "en"
}

// StandardsConfig holds settings for the ISO 3166 fallback.
type StandardsConfig struct {
	MinSimilarity Ratio `yaml:"min_similarity"`
}

// OutputConfig holds settings for the result file.
type OutputConfig struct {
	Path string `yaml:"path"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Server LogSettings `yaml:"server"`
}

// LogSettings holds settings for a specific logger.
type LogSettings struct {
	Path  string `yaml:"path"`
	Level string `yaml:"level"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Request: RequestConfig{
			Retries: 0,
			Timeout: Duration(30 * time.Second),
			Backoff: BackoffConfig{
				BaseDelay: Duration(500 * time.Millisecond),
				MaxDelay:  Duration(10 * time.Second),
			},
		},
		Wikidata: WikidataConfig{
			Endpoint: "https://query.wikidata.org/sparql",
			Language: "en",
		},
		Standards: StandardsConfig{
			MinSimilarity: 0.75,
		},
		Output: OutputConfig{
			Path: "country_status.txt",
		},
		Log: LogConfig{
			Server: LogSettings{
				Path:  "./logs/countryname.log",
				Level: "INFO",
			},
		},
	}
}

// Load loads the configuration from the given path.
// If the file does not exist, it creates it with default values.
// If the file exists, defaults are merged with its values but nothing is
// written back, so user formatting and comments survive.
// A .env file in the working directory is loaded first (if present) and
// COUNTRYNAME_* environment variables override the file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(path); err == nil {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	} else if err := Save(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to save config file: %w", err)
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv(EnvSPARQLEndpoint); v != "" {
		cfg.Wikidata.Endpoint = v
	}
	if v := os.Getenv(EnvUserAgent); v != "" {
		cfg.Request.UserAgent = v
	}
	if v := os.Getenv(EnvOutputPath); v != "" {
		cfg.Output.Path = v
	}
}

var languageTag = regexp.MustCompile(`^[a-z]{2,3}$`)

// Validate checks the fields that would otherwise fail late, mid-run.
func (c *Config) Validate() error {
	if c.Wikidata.Endpoint == "" {
		return fmt.Errorf("wikidata.endpoint must be set (or %s)", EnvSPARQLEndpoint)
	}
	if !languageTag.MatchString(c.Wikidata.Language) {
		return fmt.Errorf("invalid wikidata.language '%s': must be a lowercase ISO 639 code (e.g. 'en')", c.Wikidata.Language)
	}
	if strings.TrimSpace(c.Output.Path) == "" {
		return fmt.Errorf("output.path must be set (or %s)", EnvOutputPath)
	}
	if c.Request.Retries < 0 {
		return fmt.Errorf("request.retries must be >= 0, got %d", c.Request.Retries)
	}
	return nil
}

// Save writes the configuration to the path.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	header := []byte(`# countryname configuration
# ------------------------
# Supported Units:
#   Duration: ns, us (or µs), ms, s, m, h, d (day), w (week)
#   Ratio:    0.75 or 75%

`)
	data = append(header, data...)

	reRetries := regexp.MustCompile(`(?m)^(\s+)retries:`)
	data = reRetries.ReplaceAll(data, []byte("${1}# Extra attempts after a failed request (0 = single attempt)\n${1}retries:"))

	reSim := regexp.MustCompile(`(?m)^(\s+)min_similarity:`)
	data = reSim.ReplaceAll(data, []byte("${1}# Lowest edit-distance similarity accepted as a typo match\n${1}min_similarity:"))

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// GenerateDefault creates a default config file at the given path.
// Returns nil if the file already exists.
func GenerateDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	return Save(path, DefaultConfig())
}
