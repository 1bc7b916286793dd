package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

const (
	AppName         = "site-word-scanner"
	DefaultFileName = "config.yaml"
)

type configDTO struct {
	Format        string `yaml:"format,omitempty"`
	Directory     string `yaml:"directory,omitempty"`
	Parallel      int    `yaml:"parallel,omitempty"`
	TimeoutMillis int    `yaml:"timeoutMillis,omitempty"`
	UserAgent     string `yaml:"userAgent,omitempty"`
}

// applyTo overrides builder fields with every non-zero DTO value.
func (dto configDTO) applyTo(cfg *Config) error {
	if dto.Format != "" {
		format, err := ParseOutputFormat(dto.Format)
		if err != nil {
			return err
		}
		cfg.outputFormat = format
	}
	if dto.Directory != "" {
		cfg.outputDir = dto.Directory
	}
	if dto.Parallel != 0 {
		cfg.parallelScans = dto.Parallel
	}
	if dto.TimeoutMillis != 0 {
		cfg.timeout = time.Duration(dto.TimeoutMillis) * time.Millisecond
	}
	if dto.UserAgent != "" {
		cfg.userAgent = dto.UserAgent
	}
	return nil
}

// WithConfigFile returns a builder seeded with defaults and then with the
// values found in the YAML file at path. Callers may keep chaining WithX
// calls, e.g. for flag overrides, before Build.
func WithConfigFile(path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrFileDoesNotExist, err.Error())
	}
	configContent, err := os.ReadFile(path) //nolint:gosec // user-provided config path is intentional
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrReadConfigFail, err.Error())
	}

	cfgDTO := configDTO{}
	if err := yaml.Unmarshal(configContent, &cfgDTO); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrConfigParsingFail, err.Error())
	}

	cfg := WithDefault()
	if err := cfgDTO.applyTo(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// XDGConfigDir returns the XDG config directory for site-word-scanner.
// On Linux: ~/.config/site-word-scanner
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// DefaultConfigFilePath is where the config file is looked up when no
// explicit path is given.
func DefaultConfigFilePath() string {
	return filepath.Join(XDGConfigDir(), DefaultFileName)
}

// Load resolves the config file to use and returns a builder.
// An explicit path must exist. Without one, the default XDG location is
// used when present and built-in defaults otherwise.
func Load(explicitPath string) (*Config, error) {
	if explicitPath != "" {
		return WithConfigFile(explicitPath)
	}
	defaultPath := DefaultConfigFilePath()
	cfg, err := WithConfigFile(defaultPath)
	if errors.Is(err, ErrFileDoesNotExist) {
		return WithDefault(), nil
	}
	return cfg, err
}
