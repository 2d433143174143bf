package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ImageEnvVar selects the linter container image when set
const ImageEnvVar = "SHELLCHECK_CONTAINER"

// DefaultConfigFile is looked up in the working directory when --config is not given
const DefaultConfigFile = ".doccheck.yaml"

// Color modes for highlighted output
const (
	ColorAlways = "always"
	ColorAuto   = "auto"
	ColorNever  = "never"
)

// Config represents doccheck configuration options
type Config struct {
	// Image is the container image that provides shellcheck
	Image string `yaml:"image"`

	// Launcher is the container launcher binary (podman, docker)
	Launcher string `yaml:"launcher"`

	// MountPath is where the script is mounted inside the container
	MountPath string `yaml:"mount_path"`

	// Extensions lists documentation file extensions to scan
	Extensions []string `yaml:"extensions"`

	// ExcludeDirs lists directory names skipped during the walk
	ExcludeDirs []string `yaml:"exclude_dirs"`

	// Timeout bounds a single linter invocation (0 = none)
	Timeout time.Duration `yaml:"timeout"`

	// Color selects highlighting: always, auto, never
	Color string `yaml:"color"`

	// LogLevel sets the logging verbosity (trace, debug, info, warn, error)
	LogLevel string `yaml:"log_level"`

	// Verbose prints every script block before it is checked
	Verbose bool `yaml:"verbose"`

	// Report is an optional path for a YAML run report
	Report string `yaml:"report"`
}

// DefaultConfig returns a Config with sensible default values
func DefaultConfig() *Config {
	return &Config{
		Image:       "koalaman/shellcheck:stable",
		Launcher:    "podman",
		MountPath:   "/shell-script.sh",
		Extensions:  []string{".adoc"},
		ExcludeDirs: []string{".git"},
		Timeout:     0,
		Color:       ColorAlways,
		LogLevel:    "warn",
		Verbose:     false,
		Report:      "",
	}
}

// LoadConfig loads configuration from the specified file path
// If the file doesn't exist, returns default configuration without error
// If the file exists but is malformed, returns an error
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Duration is read as a string so "30s" style values parse
	type yamlConfig struct {
		Image       string   `yaml:"image"`
		Launcher    string   `yaml:"launcher"`
		MountPath   string   `yaml:"mount_path"`
		Extensions  []string `yaml:"extensions"`
		ExcludeDirs []string `yaml:"exclude_dirs"`
		Timeout     string   `yaml:"timeout"`
		Color       string   `yaml:"color"`
		LogLevel    string   `yaml:"log_level"`
		Verbose     bool     `yaml:"verbose"`
		Report      string   `yaml:"report"`
	}

	var yamlCfg yamlConfig
	if err := yaml.Unmarshal(data, &yamlCfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if yamlCfg.Image != "" {
		cfg.Image = yamlCfg.Image
	}
	if yamlCfg.Launcher != "" {
		cfg.Launcher = yamlCfg.Launcher
	}
	if yamlCfg.MountPath != "" {
		cfg.MountPath = yamlCfg.MountPath
	}
	if yamlCfg.Timeout != "" {
		timeout, err := time.ParseDuration(yamlCfg.Timeout)
		if err != nil {
			return nil, fmt.Errorf("invalid timeout format %q: %w", yamlCfg.Timeout, err)
		}
		cfg.Timeout = timeout
	}
	if yamlCfg.Color != "" {
		cfg.Color = yamlCfg.Color
	}
	if yamlCfg.LogLevel != "" {
		cfg.LogLevel = yamlCfg.LogLevel
	}
	if yamlCfg.Verbose {
		cfg.Verbose = true
	}
	if yamlCfg.Report != "" {
		cfg.Report = yamlCfg.Report
	}

	// Lists replace the defaults only when the key is present, so an explicit
	// empty exclude_dirs disables the .git exclusion
	var rawMap map[string]interface{}
	if err := yaml.Unmarshal(data, &rawMap); err == nil {
		if _, exists := rawMap["extensions"]; exists {
			cfg.Extensions = yamlCfg.Extensions
		}
		if _, exists := rawMap["exclude_dirs"]; exists {
			cfg.ExcludeDirs = yamlCfg.ExcludeDirs
		}
	}

	return cfg, nil
}

// ApplyEnv overrides the image from SHELLCHECK_CONTAINER when it is set and non-empty.
// lookup is normally os.LookupEnv.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	if lookup == nil {
		return
	}
	if image, ok := lookup(ImageEnvVar); ok && strings.TrimSpace(image) != "" {
		c.Image = strings.TrimSpace(image)
	}
}

// MergeWithFlags merges CLI flags into the configuration
// Non-nil flag values override configuration values
func (c *Config) MergeWithFlags(image, launcher, color, logLevel, report *string, verbose *bool) {
	if image != nil {
		c.Image = *image
	}
	if launcher != nil {
		c.Launcher = *launcher
	}
	if color != nil {
		c.Color = *color
	}
	if logLevel != nil {
		c.LogLevel = *logLevel
	}
	if report != nil {
		c.Report = *report
	}
	if verbose != nil {
		c.Verbose = *verbose
	}
}

// Validate validates the configuration values
// Returns an error if any values are invalid
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Image) == "" {
		return fmt.Errorf("image cannot be empty")
	}
	if strings.TrimSpace(c.Launcher) == "" {
		return fmt.Errorf("launcher cannot be empty")
	}
	if !strings.HasPrefix(c.MountPath, "/") {
		return fmt.Errorf("mount_path must be an absolute in-container path, got %q", c.MountPath)
	}
	if len(c.Extensions) == 0 {
		return fmt.Errorf("extensions cannot be empty")
	}

	validLevels := map[string]bool{
		"trace": true,
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[c.LogLevel] {
		return fmt.Errorf("invalid log_level %q, must be one of: trace, debug, info, warn, error", c.LogLevel)
	}

	switch c.Color {
	case ColorAlways, ColorAuto, ColorNever:
	default:
		return fmt.Errorf("invalid color %q, must be one of: always, auto, never", c.Color)
	}

	if c.Timeout < 0 {
		return fmt.Errorf("timeout must be >= 0, got %v", c.Timeout)
	}

	return nil
}
