// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/dirstd

// Package config loads command-line defaults from file and environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charmbracelet/log"
	"github.com/spf13/viper"
)

const (
	// AppName names the config file stem and the user config directory.
	AppName = "osh-dir-std"
	// EnvPrefix prefixes environment overrides, e.g. OSH_DIR_STD_FORMAT.
	EnvPrefix = "OSH_DIR_STD"
	// DefaultIgnorePathsRegex ignores hidden files and directories at any depth.
	DefaultIgnorePathsRegex = `(^|.*/)(\..+)$`
)

// Output formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatText = "text"
)

// ErrInvalidConfig reports a configuration value that failed validation.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds the resolved settings shared by all commands.
type Config struct {
	// Catalogs are catalog directories, merged in order.
	Catalogs []string `mapstructure:"catalogs"`
	// StandardFiles are single standard definitions added after the catalogs.
	StandardFiles []string `mapstructure:"standard_files"`
	// IgnorePathsRegex matches listing paths to ignore; empty ignores nothing.
	IgnorePathsRegex string `mapstructure:"ignore_paths_regex"`
	// Exclude are doublestar globs skipped when walking or watching a project.
	Exclude []string `mapstructure:"exclude"`
	// GeneratedExtensions mark files as generated content by extension.
	GeneratedExtensions []string `mapstructure:"generated_extensions"`
	// Format is the output format: json, yaml or text.
	Format string `mapstructure:"format"`
	// LogLevel is a charmbracelet/log level name.
	LogLevel string `mapstructure:"log_level"`
	// Parallelism limits concurrently evaluated standards; 0 is unlimited.
	Parallelism int `mapstructure:"parallelism"`
	// Debounce is the quiet period of the watch command.
	Debounce time.Duration `mapstructure:"debounce"`
	// SymlinkEscapeCheck skips symlinks leaving the project when walking.
	SymlinkEscapeCheck bool `mapstructure:"symlink_escape_check"`
}

// LoadOptions selects where configuration is read from.
type LoadOptions struct {
	// File is an explicit config file; it must exist when set.
	File string
	// SearchPaths are directories searched for osh-dir-std.yaml when File is empty.
	SearchPaths []string
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		IgnorePathsRegex: DefaultIgnorePathsRegex,
		Exclude:          []string{"**/.git"},
		Format:           FormatJSON,
		LogLevel:         log.InfoLevel.String(),
		Debounce:         500 * time.Millisecond,
	}
}

// DefaultSearchPaths returns the working directory and the user config directory.
func DefaultSearchPaths() []string {
	paths := []string{"."}
	if dir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(dir, AppName))
	}

	return paths
}

// Load reads defaults, the optional config file and environment overrides, then validates.
func Load(opts LoadOptions) (*Config, error) {
	v := viper.New()

	def := Default()
	v.SetDefault("catalogs", def.Catalogs)
	v.SetDefault("standard_files", def.StandardFiles)
	v.SetDefault("ignore_paths_regex", def.IgnorePathsRegex)
	v.SetDefault("exclude", def.Exclude)
	v.SetDefault("generated_extensions", def.GeneratedExtensions)
	v.SetDefault("format", def.Format)
	v.SetDefault("log_level", def.LogLevel)
	v.SetDefault("parallelism", def.Parallelism)
	v.SetDefault("debounce", def.Debounce)
	v.SetDefault("symlink_escape_check", def.SymlinkEscapeCheck)

	if opts.File != "" {
		v.SetConfigFile(opts.File)
	} else {
		v.SetConfigName(AppName)
		v.SetConfigType("yaml")
		for _, p := range opts.SearchPaths {
			v.AddConfigPath(p)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if opts.File != "" || len(opts.SearchPaths) > 0 {
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if opts.File != "" || !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks value ranges, regular expressions and globs.
func (c *Config) Validate() error {
	if !slices.Contains([]string{FormatJSON, FormatYAML, FormatText}, c.Format) {
		return fmt.Errorf("%w: format must be json, yaml or text, got %q", ErrInvalidConfig, c.Format)
	}

	if c.Parallelism < 0 {
		return fmt.Errorf("%w: parallelism must not be negative, got %d", ErrInvalidConfig, c.Parallelism)
	}

	if c.Debounce < 0 {
		return fmt.Errorf("%w: debounce must not be negative, got %s", ErrInvalidConfig, c.Debounce)
	}

	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: log_level %q: %v", ErrInvalidConfig, c.LogLevel, err)
	}

	if _, err := c.IgnoreRegexp(); err != nil {
		return err
	}

	for _, pattern := range c.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("%w: exclude glob %q", ErrInvalidConfig, pattern)
		}
	}

	return nil
}

// IgnoreRegexp compiles IgnorePathsRegex; an empty value yields nil.
func (c *Config) IgnoreRegexp() (*regexp.Regexp, error) {
	if c.IgnorePathsRegex == "" {
		return nil, nil
	}

	re, err := regexp.Compile(c.IgnorePathsRegex)
	if err != nil {
		return nil, fmt.Errorf("%w: ignore_paths_regex: %v", ErrInvalidConfig, err)
	}

	return re, nil
}

// Level returns the parsed log level, info when invalid.
func (c *Config) Level() log.Level {
	lvl, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}

	return lvl
}
