// Package config loads, validates and exposes tablekit configuration.
//
// Configuration starts from New() defaults, is overlaid top-level section by
// section from a YAML file (see ShallowMergeYAML) and finally adjusted by
// TABLEKIT_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// Config file name and schema version.
const (
	configFileName = "config.yaml"

	// CurrentVersion is written by New and `config show`.
	CurrentVersion = "1.0.0"

	// SupportedVersions is the semver constraint a config file version must satisfy.
	SupportedVersions = ">= 1.0.0, < 2.0.0"
)

// Environment variables consulted by ApplyEnv and GetConfigDir.
const (
	EnvHome     = "TABLEKIT_HOME"
	EnvLogLevel = "TABLEKIT_LOG_LEVEL"
	EnvLogFile  = "TABLEKIT_LOG_FILE"
)

// Defaults.
const (
	DefaultIdleHideMS      = 1000
	DefaultFrameIntervalMS = 16
	DefaultFetchThreshold  = 1.0
	DefaultPageSize        = 10
	DefaultBatchSize       = 50
	DefaultLogLevel        = "info"
	DefaultLogFormat       = "console"
)

const (
	minPageSize = 1
	maxPageSize = 1000
	maxBatch    = 10000
)

// Validation errors.
var (
	ErrInvalidVersion        = errors.New("invalid config version")
	ErrUnsupportedVersion    = errors.New("unsupported config version")
	ErrInvalidIdleHide       = errors.New("scroll.idle_hide_ms must be positive")
	ErrInvalidFrameInterval  = errors.New("scroll.frame_interval_ms must be positive")
	ErrInvalidFetchThreshold = errors.New("scroll.fetch_threshold must not be negative")
	ErrInvalidPageSize       = fmt.Errorf("table.page_size must be between %d and %d", minPageSize, maxPageSize)
	ErrInvalidBatchSize      = fmt.Errorf("table.batch_size must be between 1 and %d", maxBatch)
	ErrInvalidLogLevel       = errors.New("invalid logging.level")
	ErrInvalidLogFormat      = errors.New("logging.format must be console or json")
)

// Config is the complete tablekit configuration.
type Config struct {
	Version string        `yaml:"version"`
	Scroll  ScrollConfig  `yaml:"scroll"`
	Table   TableConfig   `yaml:"table"`
	Logging LoggingConfig `yaml:"logging"`
}

// ScrollConfig tunes the scroll engine.
type ScrollConfig struct {
	IdleHideMS      int     `yaml:"idle_hide_ms"`
	FrameIntervalMS int     `yaml:"frame_interval_ms"`
	FetchThreshold  float64 `yaml:"fetch_threshold"`
}

// TableConfig tunes the table body and its data loading.
type TableConfig struct {
	PageSize           int  `yaml:"page_size"`
	DisableAutoSlicing bool `yaml:"disable_auto_slicing"`
	BatchSize          int  `yaml:"batch_size"`
}

// LoggingConfig controls log level, format and optional file output.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file,omitempty"`
}

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		Version: CurrentVersion,
		Scroll: ScrollConfig{
			IdleHideMS:      DefaultIdleHideMS,
			FrameIntervalMS: DefaultFrameIntervalMS,
			FetchThreshold:  DefaultFetchThreshold,
		},
		Table: TableConfig{
			PageSize:  DefaultPageSize,
			BatchSize: DefaultBatchSize,
		},
		Logging: LoggingConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}

// Load builds a Config from defaults, the YAML file at path and the
// environment, then validates it. An empty path means the default config
// file, which may be absent. An explicit path must exist.
func Load(path string) (*Config, error) {
	cfg := New()

	explicit := path != ""
	if !explicit {
		p, err := DefaultConfigPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	if _, err := os.Stat(path); err == nil {
		if mergeErr := ShallowMergeYAML(cfg, path); mergeErr != nil {
			return nil, mergeErr
		}
	} else if explicit || !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	cfg.ApplyEnv(os.LookupEnv)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DefaultConfigPath returns the config file under the config directory.
func DefaultConfigPath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

// ApplyEnv applies TABLEKIT_* overrides read through lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.Logging.Level = strings.ToLower(strings.TrimSpace(v))
	}
	if v, ok := lookup(EnvLogFile); ok && v != "" {
		c.Logging.File = v
	}
}

// Validate checks every section and returns the first problem found.
func (c *Config) Validate() error {
	if err := c.validateVersion(); err != nil {
		return err
	}
	if err := c.Scroll.Validate(); err != nil {
		return err
	}
	if err := c.Table.Validate(); err != nil {
		return err
	}
	return c.Logging.Validate()
}

func (c *Config) validateVersion() error {
	v, err := semver.NewVersion(c.Version)
	if err != nil {
		return fmt.Errorf("%w %q: %w", ErrInvalidVersion, c.Version, err)
	}
	constraint, err := semver.NewConstraint(SupportedVersions)
	if err != nil {
		return fmt.Errorf("parsing supported versions: %w", err)
	}
	if !constraint.Check(v) {
		return fmt.Errorf("%w %s (supported: %s)", ErrUnsupportedVersion, v, SupportedVersions)
	}
	return nil
}

// Validate checks the scroll section.
func (s ScrollConfig) Validate() error {
	if s.IdleHideMS <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidIdleHide, s.IdleHideMS)
	}
	if s.FrameIntervalMS <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidFrameInterval, s.FrameIntervalMS)
	}
	if s.FetchThreshold < 0 {
		return fmt.Errorf("%w: got %s", ErrInvalidFetchThreshold,
			strconv.FormatFloat(s.FetchThreshold, 'f', -1, 64))
	}
	return nil
}

// IdleHide returns the scrollbar idle-hide delay.
func (s ScrollConfig) IdleHide() time.Duration {
	return time.Duration(s.IdleHideMS) * time.Millisecond
}

// FrameInterval returns the geometry batching interval.
func (s ScrollConfig) FrameInterval() time.Duration {
	return time.Duration(s.FrameIntervalMS) * time.Millisecond
}

// Validate checks the table section.
func (t TableConfig) Validate() error {
	if t.PageSize < minPageSize || t.PageSize > maxPageSize {
		return fmt.Errorf("%w: got %d", ErrInvalidPageSize, t.PageSize)
	}
	if t.BatchSize < 1 || t.BatchSize > maxBatch {
		return fmt.Errorf("%w: got %d", ErrInvalidBatchSize, t.BatchSize)
	}
	return nil
}

// Validate checks the logging section.
func (l LoggingConfig) Validate() error {
	if _, err := zerolog.ParseLevel(l.Level); err != nil || l.Level == "" {
		return fmt.Errorf("%w %q", ErrInvalidLogLevel, l.Level)
	}
	switch l.Format {
	case "", "console", "json":
		return nil
	default:
		return fmt.Errorf("%w: got %q", ErrInvalidLogFormat, l.Format)
	}
}

// Marshal renders the config as YAML.
func (c *Config) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshalling config: %w", err)
	}
	return data, nil
}
