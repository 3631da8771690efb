// Package config loads bucket-browser defaults from YAML and merges CLI overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	DefaultSort      = "desc"
	DefaultLogLevel  = "info"
	DefaultOutputDir = "."
)

// Config holds optional defaults loaded from ~/.config/bucket-browser/config.yaml.
type Config struct {
	URL       string `yaml:"url"`
	Bucket    string `yaml:"bucket"`
	Prefix    string `yaml:"prefix"`
	MaxKeys   int32  `yaml:"max_keys"`
	Region    string `yaml:"region"`
	Profile   string `yaml:"profile"`
	Endpoint  string `yaml:"endpoint"`
	Sort      string `yaml:"sort"`
	CachePath string `yaml:"cache_path"`
	LogLevel  string `yaml:"log_level"`
	OutputDir string `yaml:"output_dir"`
}

// Settings is the effective configuration after merging flags over the file
type Settings struct {
	Config
	Offline bool
}

// DefaultPath returns the location of the per-user config file
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "bucket-browser", "config.yaml"), nil
}

// Load reads the default config file. Returns zero-value Config if the file doesn't exist.
func Load() (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return &Config{}, nil
	}
	cfg, err := LoadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return &Config{}, nil
	}
	return cfg, err
}

// LoadFile reads the config at path. A missing file is reported as an error
// wrapping os.ErrNotExist.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return &cfg, nil
}

// Merge applies CLI flag overrides. Non-zero flags take precedence over config
// values, which take precedence over built-in defaults.
func (c *Config) Merge(flags Settings) Settings {
	s := Settings{Config: *c, Offline: flags.Offline}

	s.URL = pick(flags.URL, s.URL)
	s.Bucket = pick(flags.Bucket, s.Bucket)
	s.Prefix = pick(flags.Prefix, s.Prefix)
	s.Region = pick(flags.Region, s.Region)
	s.Profile = pick(flags.Profile, s.Profile)
	s.Endpoint = pick(flags.Endpoint, s.Endpoint)
	s.CachePath = pick(flags.CachePath, s.CachePath)
	s.Sort = pick(flags.Sort, pick(s.Sort, DefaultSort))
	s.LogLevel = pick(flags.LogLevel, pick(s.LogLevel, DefaultLogLevel))
	s.OutputDir = pick(flags.OutputDir, pick(s.OutputDir, DefaultOutputDir))
	if flags.MaxKeys > 0 {
		s.MaxKeys = flags.MaxKeys
	}

	// A source named on the command line replaces the configured one entirely
	if flags.URL != "" {
		s.Bucket = ""
	}
	if flags.Bucket != "" {
		s.URL = ""
	}

	return s
}

// Validate checks that exactly one listing source is configured
func (s Settings) Validate() error {
	switch {
	case s.URL == "" && s.Bucket == "":
		return errors.New("no listing source: set --url or --bucket")
	case s.URL != "" && s.Bucket != "":
		return errors.New("--url and --bucket are mutually exclusive")
	case s.Offline && s.CachePath == "":
		return errors.New("--offline requires a cache path")
	}
	return nil
}

func pick(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
