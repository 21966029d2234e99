package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the top-level configuration for nugetbump. All fields are
// optional; a missing config file yields Default().
type Config struct {
	// ExcludeDirs lists directory names that are never descended into
	// during a recursive scan (build artifact and VCS trees).
	ExcludeDirs []string `yaml:"exclude_dirs"`
	// Defaults supplies flag values applied when the corresponding flag
	// is not set on the command line.
	Defaults DefaultsConfig `yaml:"defaults"`
}

// DefaultsConfig holds flag defaults. CLI flags always win.
type DefaultsConfig struct {
	Recurse bool `yaml:"recurse"`
	Verbose bool `yaml:"verbose"`
}

// Default returns the built-in configuration used when no config file
// is present.
func Default() *Config {
	return &Config{
		ExcludeDirs: []string{".git", "bin", "obj", "packages", "node_modules"},
	}
}

// Load reads and parses a configuration file. Fields left empty fall
// back to the built-in defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
	}

	cfg := Default()
	if unmarshalErr := yaml.Unmarshal(data, cfg); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", unmarshalErr)
	}

	if len(cfg.ExcludeDirs) == 0 {
		cfg.ExcludeDirs = Default().ExcludeDirs
	}

	if validateErr := validate(cfg); validateErr != nil {
		return nil, validateErr
	}

	return cfg, nil
}

// FindConfigFile searches for a configuration file in standard
// locations. Returns the path to the first file found or an error if
// none is found.
func FindConfigFile() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = ""
	}

	locations := []string{
		".",
		".config",
	}
	if homeDir != "" {
		locations = append(
			locations,
			homeDir,
			filepath.Join(homeDir, ".config"),
		)
	}

	patterns := []string{
		".nugetbump.yaml",
		".nugetbump.yml",
		"nugetbump.yaml",
		"nugetbump.yml",
	}

	for _, loc := range locations {
		for _, pat := range patterns {
			p := filepath.Join(loc, pat)
			if _, statErr := os.Stat(p); statErr == nil {
				return p, nil
			}
		}
	}

	return "", errors.New("config file not found in default locations")
}

// validate checks the configuration values.
func validate(cfg *Config) error {
	for i, dir := range cfg.ExcludeDirs {
		if dir == "" {
			return fmt.Errorf("exclude_dirs[%d] must not be empty", i)
		}
		if strings.ContainsAny(dir, `/\`) {
			return fmt.Errorf(
				"exclude_dirs[%d] must be a plain directory name, got %q",
				i, dir,
			)
		}
	}

	return nil
}
