// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided
// via CLI flags or environment variables.
type Config struct {
	TemplatesDir string `json:"templates_dir,omitempty"` // Directory scanned for .docx templates
	OutputDir    string `json:"output_dir,omitempty"`    // Directory where PDF artifacts land
	SofficePath  string `json:"soffice_path,omitempty"`  // LibreOffice executable (optional, auto-discovered)
	Verbose      bool   `json:"verbose,omitempty"`       // Print detailed progress information
}

// Default returns the built-in configuration: Templates and Outputs relative
// to the working directory, converter discovered automatically.
func Default() Config {
	return Config{
		TemplatesDir: "Templates",
		OutputDir:    "Outputs",
	}
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that both directories exist. Neither is auto-created;
// pointing the tool at missing directories is a setup error, not something
// to paper over at runtime.
func (c *Config) Validate() error {
	if err := c.ValidateTemplatesDir(); err != nil {
		return err
	}
	return c.ValidateOutputDir()
}

// ValidateTemplatesDir checks only the templates directory, for commands
// that never export anything.
func (c *Config) ValidateTemplatesDir() error {
	return requireDir("templates_dir", c.TemplatesDir)
}

// ValidateOutputDir checks only the output directory, for commands that take
// an explicit template path instead of scanning the templates directory.
func (c *Config) ValidateOutputDir() error {
	return requireDir("output_dir", c.OutputDir)
}

func requireDir(field, path string) error {
	if path == "" {
		return fmt.Errorf("config error: %q must not be empty", field)
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return fmt.Errorf("config error: %s directory not found: %s", field, path)
	}
	if err != nil {
		return fmt.Errorf("config error: cannot access %s directory %s: %w", field, path, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("config error: %s is not a directory: %s", field, path)
	}
	return nil
}

// MergeWithDefaults returns a new Config with empty string fields filled from
// defaults. This is used to apply config file values as defaults for CLI
// flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.TemplatesDir == "" {
		result.TemplatesDir = defaults.TemplatesDir
	}
	if result.OutputDir == "" {
		result.OutputDir = defaults.OutputDir
	}
	if result.SofficePath == "" {
		result.SofficePath = defaults.SofficePath
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
