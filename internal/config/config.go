package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/confdocs/internal/foundation/errors"
)

// CurrentVersion is the only configuration schema version understood by Load.
const CurrentVersion = "1.0"

// DefaultPath is the configuration file looked up when no path is given.
const DefaultPath = "confdocs.yaml"

// Config represents the documentation hook configuration.
type Config struct {
	Version    string           `yaml:"version"`
	Copy       []CopyConfig     `yaml:"copy"`
	Reports    ReportsConfig    `yaml:"reports"`
	Tables     TablesConfig     `yaml:"tables"`
	Output     OutputConfig     `yaml:"output"`
	Monitoring MonitoringConfig `yaml:"monitoring"`
}

// CopyConfig is one static content tree copied into the site source before rendering.
type CopyConfig struct {
	Source      string `yaml:"source"`
	Destination string `yaml:"destination"`
}

// ReportsConfig locates the conformance report documents.
type ReportsConfig struct {
	Directory string `yaml:"directory"` // Versioned report root, e.g. conformance/reports/v1.0.0
	Pattern   string `yaml:"pattern"`   // doublestar glob relative to Directory
}

// TablesConfig controls the shape and wording of the generated tables.
type TablesConfig struct {
	Preamble               string   `yaml:"preamble"`
	ExcludedCategories     []string `yaml:"excluded_categories"`
	ExcludeEmptyCategories bool     `yaml:"exclude_empty_categories"`
	MatrixCategory         string   `yaml:"matrix_category"`
	FeaturesFile           string   `yaml:"features_file,omitempty"` // Overrides the embedded feature list
	SupportedMarker        string   `yaml:"supported_marker"`
	UnsupportedMarker      string   `yaml:"unsupported_marker"`
	MissingValue           string   `yaml:"missing_value"`
}

// OutputConfig names the generated markdown files.
type OutputConfig struct {
	GeneralTable  string `yaml:"general_table"`
	FeatureMatrix string `yaml:"feature_matrix"`
}

// MonitoringConfig represents logging and metrics configuration.
type MonitoringConfig struct {
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// LoggingConfig represents logging configuration.
type LoggingConfig struct {
	Level  LogLevel  `yaml:"level"`
	Format LogFormat `yaml:"format"`
}

// MetricsConfig represents metrics export configuration.
type MetricsConfig struct {
	Textfile string `yaml:"textfile,omitempty"` // node-exporter textfile destination; empty disables export
}

// Load reads configPath, applies defaults and validates the result.
//
// An empty configPath means "use DefaultPath if it exists, otherwise defaults".
// An explicitly named file that does not exist is an error.
func Load(configPath string) (*Config, error) {
	loadEnvFile()

	explicit := configPath != ""
	if !explicit {
		configPath = DefaultPath
	}

	data, err := os.ReadFile(configPath)
	switch {
	case err == nil:
	case os.IsNotExist(err) && !explicit:
		return Default()
	case os.IsNotExist(err):
		return nil, errors.ConfigError("configuration file not found").WithContext("path", configPath).Build()
	default:
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to read config file").
			Fatal().WithContext("path", configPath).Build()
	}

	cfg, err := Parse(data)
	if err != nil {
		if ce, ok := errors.AsClassified(err); ok {
			return nil, ce.WithContext("path", configPath)
		}
		return nil, err
	}
	return cfg, nil
}

// Default returns a validated configuration built from defaults alone.
func Default() (*Config, error) {
	cfg := &Config{}
	if err := applyDefaults(cfg); err != nil {
		return nil, err
	}
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes YAML configuration content, expanding ${VAR} references first.
func Parse(data []byte) (*Config, error) {
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to unmarshal config").Fatal().Build()
	}

	if cfg.Version != "" && cfg.Version != CurrentVersion {
		return nil, errors.ConfigError(fmt.Sprintf("unsupported configuration version: %s (expected %s)", cfg.Version, CurrentVersion)).Build()
	}

	if err := applyDefaults(&cfg); err != nil {
		return nil, err
	}
	if err := ValidateConfig(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
