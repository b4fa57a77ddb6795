package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultFile is the configuration file picked up from the working directory
// when no --config flag is given.
const DefaultFile = "text2h.yaml"

// Read error policies.
const (
	// ReadErrorsIgnore treats a read failure as end of input.
	ReadErrorsIgnore = "ignore"
	// ReadErrorsFail aborts the conversion with the read error.
	ReadErrorsFail = "fail"
)

// Config represents the configuration parsed from text2h.yaml.
type Config struct {
	// Logging contains logging configuration.
	Logging LoggingConfig `yaml:"logging"`
	// ReadErrors selects what happens when the input fails mid-stream
	// ("ignore" or "fail").
	ReadErrors string `yaml:"read_errors"`
}

// LoggingConfig configures logging behavior.
type LoggingConfig struct {
	// Level is the log level (debug, info, warn, error).
	Level string `yaml:"level"`
	// Path is the log file path. Empty means standard error.
	Path string `yaml:"path"`
}

var validLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

var validReadErrors = map[string]bool{
	ReadErrorsIgnore: true,
	ReadErrorsFail:   true,
}

// Load reads and parses a configuration file.
//
// A missing file is only an error when required is true; otherwise an empty
// Config is returned so that defaults apply.
//
// Parameters:
//   - path: The YAML file to read.
//   - required: Whether the file must exist.
//
// Returns:
//   - *Config: The parsed configuration (defaults not yet applied).
//   - error: An error if the file cannot be read or parsed.
func Load(path string, required bool) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil {
		if !required && errors.Is(err, fs.ErrNotExist) {
			return &cfg, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &cfg, nil
}

// Validate checks the configuration for unsupported values.
func Validate(config *Config) error {
	if config.Logging.Level != "" && !validLevels[strings.ToLower(config.Logging.Level)] {
		return fmt.Errorf("invalid logging level: %s (allowed: %s)", config.Logging.Level, allowedList(validLevels))
	}

	if config.ReadErrors != "" && !validReadErrors[config.ReadErrors] {
		return fmt.Errorf("invalid read_errors policy: %s (allowed: %s)", config.ReadErrors, allowedList(validReadErrors))
	}

	return nil
}

func allowedList(m map[string]bool) string {
	var keys []string
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return strings.Join(keys, ", ")
}

// ApplyDefaults sets default values for configuration fields that are missing.
func ApplyDefaults(config *Config) {
	if config.Logging.Level == "" {
		config.Logging.Level = "warn"
	}
	if config.ReadErrors == "" {
		config.ReadErrors = ReadErrorsIgnore
	}
}
