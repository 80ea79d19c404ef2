// Package config loads the optional .jstool.yml settings file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds the tool's tunable settings.
type Config struct {
	// PreviewContext is the number of lines shown around a previewed edit.
	PreviewContext int `yaml:"preview_context"`
	// SchemaSampleLimit caps how many array elements schema inference samples.
	SchemaSampleLimit int `yaml:"schema_sample_limit"`
	// SchemaTitle is the fallback title for inferred schemas.
	SchemaTitle string `yaml:"schema_title"`
	// IssuesDir is the default directory scanned by nextissue.
	IssuesDir string `yaml:"issues_dir"`
}

// NewConfig returns a Config with default values.
func NewConfig() *Config {
	return &Config{
		PreviewContext:    3,
		SchemaSampleLimit: 20,
		SchemaTitle:       "Inferred Schema",
		IssuesDir:         ".issues",
	}
}

// LoadConfig loads configuration from a YAML file, layered over defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := NewConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, nil
}

// FindConfigFile searches for a config file in the current directory and its
// parents. Returns "" when none exists.
func FindConfigFile() string {
	configNames := []string{".jstool.yml", ".jstool.yaml", "jstool.yml", "jstool.yaml"}

	currentDir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		for _, name := range configNames {
			configPath := filepath.Join(currentDir, name)
			if _, err := os.Stat(configPath); err == nil {
				return configPath
			}
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			break
		}
		currentDir = parentDir
	}

	return ""
}

// Load resolves the effective configuration: defaults, overlaid by the
// nearest config file when one exists.
func Load() (*Config, error) {
	path := FindConfigFile()
	if path == "" {
		return NewConfig(), nil
	}
	return LoadConfig(path)
}
