package config

import (
	"fmt"
	"strings"
	"time"
)

const (
	DefaultUserAgent     = "Mozilla/5.0 (compatible; SiteWordScanner/1.0)"
	DefaultParallelScans = 3
	DefaultOutputDir     = "."
)

type Config struct {
	//===============
	// Output
	//===============
	// Renderer used for every saved report
	outputFormat OutputFormat
	// Directory in which reports are written; created when missing
	outputDir string

	//===============
	// Orchestration
	//===============
	// Maximum number of domain scans running at the same time.
	// A single domain scan is always sequential.
	parallelScans int

	//===============
	// Fetch
	//===============
	// Maximum time of a single page request; zero means no limit
	timeout time.Duration
	// User agent that will be used in the request header. In raw string
	userAgent string
}

// WithDefault creates a new Config builder holding the default value of every field.
func WithDefault() *Config {
	defaultConfig := Config{
		outputFormat:  FormatJSON,
		outputDir:     DefaultOutputDir,
		parallelScans: DefaultParallelScans,
		timeout:       0,
		userAgent:     DefaultUserAgent,
	}
	return &defaultConfig
}

func (c *Config) WithOutputFormat(format OutputFormat) *Config {
	c.outputFormat = format
	return c
}

func (c *Config) WithOutputDir(outputDir string) *Config {
	c.outputDir = outputDir
	return c
}

func (c *Config) WithParallelScans(parallel int) *Config {
	c.parallelScans = parallel
	return c
}

func (c *Config) WithTimeout(timeout time.Duration) *Config {
	c.timeout = timeout
	return c
}

func (c *Config) WithUserAgent(agent string) *Config {
	c.userAgent = agent
	return c
}

func (c *Config) Build() (Config, error) {
	if _, err := ParseOutputFormat(string(c.outputFormat)); err != nil {
		return Config{}, err
	}
	if strings.TrimSpace(c.outputDir) == "" {
		return Config{}, fmt.Errorf("%w: output directory cannot be empty", ErrInvalidConfig)
	}
	if c.parallelScans < 1 {
		return Config{}, fmt.Errorf("%w: parallel scans must be at least 1, got %d", ErrInvalidConfig, c.parallelScans)
	}
	if c.timeout < 0 {
		return Config{}, fmt.Errorf("%w: timeout cannot be negative, got %v", ErrInvalidConfig, c.timeout)
	}
	if strings.TrimSpace(c.userAgent) == "" {
		c.userAgent = DefaultUserAgent
	}
	return *c, nil
}

func (c Config) OutputFormat() OutputFormat {
	return c.outputFormat
}

func (c Config) OutputDir() string {
	return c.outputDir
}

func (c Config) ParallelScans() int {
	return c.parallelScans
}

func (c Config) Timeout() time.Duration {
	return c.timeout
}

func (c Config) UserAgent() string {
	return c.userAgent
}
