// Package config loads ulox CLI settings from a TOML or YAML file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// EnvVar names the environment variable holding the config file path.
const EnvVar = "ULOX_CONFIG"

// Format represents the configuration file format.
type Format int

const (
	// FormatTOML represents TOML format (default)
	FormatTOML Format = iota

	// FormatYAML represents YAML format
	FormatYAML
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case FormatTOML:
		return "toml"
	case FormatYAML:
		return "yaml"
	default:
		return "unknown"
	}
}

// Config holds settings for the ulox command.
type Config struct {
	// Prompt is shown before each REPL line (default: "> ").
	Prompt string `toml:"prompt" yaml:"prompt"`

	// ContinuationPrompt is shown while a grouping is still open
	// (default: ". ").
	ContinuationPrompt string `toml:"continuation_prompt" yaml:"continuation_prompt"`

	// HistoryFile stores REPL history; a leading "~/" is expanded to the
	// home directory. "none" disables history.
	// Default: ~/.ulox_history
	HistoryFile string `toml:"history_file" yaml:"history_file"`

	// Color enables styled output. When nil, color is used only if
	// stderr is a terminal.
	Color *bool `toml:"color" yaml:"color"`

	// PrintAST prints the prefix form of each expression before its value.
	PrintAST bool `toml:"print_ast" yaml:"print_ast"`

	// Workers is the number of files evaluated in parallel by "ulox run"
	// (default: number of CPUs).
	Workers int `toml:"workers" yaml:"workers"`

	// LogLevel is one of debug, info, warn, error (default: warn).
	LogLevel string `toml:"log_level" yaml:"log_level"`

	path string
}

// Default returns a Config with every default applied.
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load reads the config file at path. The format is chosen by extension:
// .yaml and .yml are YAML, anything else is TOML.
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg, err := Parse(content, detectFormat(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	cfg.path = path
	return cfg, nil
}

// Parse decodes config content in the given format and applies defaults.
func Parse(content []byte, format Format) (*Config, error) {
	var cfg Config

	switch format {
	case FormatTOML:
		md, err := toml.Decode(string(content), &cfg)
		if err != nil {
			return nil, fmt.Errorf("TOML parse error: %w", err)
		}
		if undec := md.Undecoded(); len(undec) > 0 {
			return nil, fmt.Errorf("unknown config key %q", undec[0].String())
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(content))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("YAML parse error: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return &cfg, nil
}

// LoadDefault loads the file named by ULOX_CONFIG, or the first config
// found in the default locations. If there is none, defaults are returned.
func LoadDefault() (*Config, error) {
	if path := os.Getenv(EnvVar); path != "" {
		return Load(path)
	}
	for _, p := range SearchPaths() {
		if _, err := os.Stat(p); err == nil {
			return Load(p)
		}
	}
	return Default(), nil
}

// SearchPaths returns the default config locations in lookup order.
func SearchPaths() []string {
	paths := []string{"./ulox.toml", "./ulox.yaml"}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths,
			filepath.Join(home, ".config", "ulox", "config.toml"),
			filepath.Join(home, ".config", "ulox", "config.yaml"),
		)
	}
	return paths
}

// Path returns the file the config was loaded from, or "".
func (c *Config) Path() string {
	return c.path
}

// Level returns LogLevel as a slog level.
func (c *Config) Level() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelWarn
	}
	return lvl
}

// ExpandedHistoryFile returns HistoryFile with a leading "~/" resolved,
// or "" when history is disabled.
func (c *Config) ExpandedHistoryFile() string {
	if c.HistoryFile == "none" {
		return ""
	}
	if rest, ok := strings.CutPrefix(c.HistoryFile, "~/"); ok {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, rest)
		}
	}
	return c.HistoryFile
}

// detectFormat determines the configuration format from file extension.
func detectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatTOML
	}
}

func (c *Config) validate() error {
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}
	if c.LogLevel != "" {
		var lvl slog.Level
		if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
			return fmt.Errorf("invalid log_level %q", c.LogLevel)
		}
	}
	return nil
}

// applyDefaults fills in default values for unset Config fields.
func (c *Config) applyDefaults() {
	if c.Prompt == "" {
		c.Prompt = "> "
	}
	if c.ContinuationPrompt == "" {
		c.ContinuationPrompt = ". "
	}
	if c.HistoryFile == "" {
		c.HistoryFile = "~/.ulox_history"
	}
	if c.Workers == 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.LogLevel == "" {
		c.LogLevel = "warn"
	}
}
