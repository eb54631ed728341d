// Package config provides unified configuration loading for cooccur.
// It supports loading from YAML files, a .env file, and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/nvandessel/cooccur/internal/cooccur"
	"github.com/nvandessel/cooccur/internal/logging"
	"github.com/nvandessel/cooccur/internal/tokenize"
	"github.com/nvandessel/cooccur/internal/visualization"
)

// DirName is the per-user state directory under $HOME.
const DirName = ".cooccur"

// Config contains all cooccur configuration settings.
type Config struct {
	Source    SourceConfig    `json:"source" yaml:"source"`
	Tokenizer TokenizerConfig `json:"tokenizer" yaml:"tokenizer"`
	Graph     GraphConfig     `json:"graph" yaml:"graph"`
	Selection SelectionConfig `json:"selection" yaml:"selection"`
	Render    RenderConfig    `json:"render" yaml:"render"`
	Server    ServerConfig    `json:"server" yaml:"server"`
	Logging   LoggingConfig   `json:"logging" yaml:"logging"`
}

// SourceConfig names the document to read.
type SourceConfig struct {
	// Path is the document location. Its extension picks the extractor.
	Path string `json:"path" yaml:"path"`
}

// TokenizerConfig configures sentence splitting and stop-word filtering.
type TokenizerConfig struct {
	// SentenceSplitter is "punkt" (default) or "simple".
	SentenceSplitter string   `json:"sentence_splitter" yaml:"sentence_splitter"`
	ExtraStopWords   []string `json:"extra_stop_words,omitempty" yaml:"extra_stop_words,omitempty"`
	StopWordsFile    string   `json:"stop_words_file,omitempty" yaml:"stop_words_file,omitempty"`
}

// GraphConfig configures graph construction.
type GraphConfig struct {
	// CountMode is "once" (default) or "legacy", which counts every pair twice.
	CountMode string `json:"count_mode" yaml:"count_mode"`
}

// SelectionConfig chooses the rendered subgraph. A non-empty Names list
// takes precedence over Zoom.
type SelectionConfig struct {
	// Zoom is the number of top-weighted edges whose endpoints are kept.
	Zoom  int      `json:"zoom" yaml:"zoom"`
	Names []string `json:"names,omitempty" yaml:"names,omitempty"`
}

// RenderConfig configures output.
type RenderConfig struct {
	Format string `json:"format" yaml:"format"`
	// Output is the destination file. Empty writes HTML to a temp file and
	// other formats to stdout.
	Output           string `json:"output,omitempty" yaml:"output,omitempty"`
	DegreeThreshold  int    `json:"degree_threshold" yaml:"degree_threshold"`
	Width            int    `json:"width" yaml:"width"`
	Height           int    `json:"height" yaml:"height"`
	LayoutIterations int    `json:"layout_iterations" yaml:"layout_iterations"`
	Seed             uint64 `json:"seed" yaml:"seed"`
}

// ServerConfig configures `graph --serve`.
type ServerConfig struct {
	// Addr is the listen address. "localhost:0" picks a free port.
	Addr string `json:"addr" yaml:"addr"`
}

// LoggingConfig configures cooccur's logging behavior.
type LoggingConfig struct {
	// Level sets the log verbosity: "info" (default), "debug", or "trace".
	// "debug" enables decision logging to ~/.cooccur/decisions.jsonl.
	// "trace" additionally logs every filtered sentence.
	Level string `json:"level" yaml:"level"`
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Tokenizer: TokenizerConfig{
			SentenceSplitter: tokenize.SplitterPunkt,
		},
		Graph: GraphConfig{
			CountMode: string(cooccur.CountOnce),
		},
		Selection: SelectionConfig{
			Zoom: 20,
		},
		Render: RenderConfig{
			Format:           string(visualization.FormatHTML),
			DegreeThreshold:  10,
			Width:            1200,
			Height:           900,
			LayoutIterations: 200,
			Seed:             1,
		},
		Server: ServerConfig{
			Addr: "localhost:0",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// DefaultPath returns ~/.cooccur/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, DirName, "config.yaml"), nil
}

// StateDir returns ~/.cooccur, falling back to the temp dir when there is no home.
func StateDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "cooccur")
	}
	return filepath.Join(home, DirName)
}

// Load builds the effective configuration.
// Order: defaults -> config file -> .env in the working directory ->
// environment variables. An explicit path must exist; the default path is
// optional.
func Load(path string) (*Config, error) {
	config := Default()

	if path != "" {
		fileConfig, err := LoadFromFile(path)
		if err != nil {
			return nil, fmt.Errorf("loading config file: %w", err)
		}
		config = fileConfig
	} else if defPath, err := DefaultPath(); err == nil {
		if _, statErr := os.Stat(defPath); statErr == nil {
			fileConfig, loadErr := LoadFromFile(defPath)
			if loadErr != nil {
				return nil, fmt.Errorf("loading config file: %w", loadErr)
			}
			config = fileConfig
		}
	}

	// .env is optional and never overrides variables already set.
	_ = godotenv.Load()

	if err := applyEnvOverrides(config); err != nil {
		return nil, err
	}
	return config, nil
}

// LoadFromFile loads configuration from a specific YAML file over the defaults.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	config.Source.Path = expandEnvVars(config.Source.Path)
	config.Tokenizer.StopWordsFile = expandEnvVars(config.Tokenizer.StopWordsFile)
	return config, nil
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	var errs []error
	if _, err := cooccur.ParseCountMode(c.Graph.CountMode); err != nil {
		errs = append(errs, err)
	}
	switch strings.ToLower(c.Tokenizer.SentenceSplitter) {
	case "", tokenize.SplitterPunkt, tokenize.SplitterSimple:
	default:
		errs = append(errs, fmt.Errorf("%w: %q", tokenize.ErrInvalidSplitter, c.Tokenizer.SentenceSplitter))
	}
	if _, err := visualization.ParseFormat(c.Render.Format); err != nil {
		errs = append(errs, err)
	}
	if c.Selection.Zoom < 0 {
		errs = append(errs, fmt.Errorf("zoom must be non-negative, got %d", c.Selection.Zoom))
	}
	if c.Render.Width <= 0 || c.Render.Height <= 0 {
		errs = append(errs, fmt.Errorf("canvas size must be positive, got %dx%d", c.Render.Width, c.Render.Height))
	}
	if c.Render.DegreeThreshold < 0 {
		errs = append(errs, fmt.Errorf("degree_threshold must be non-negative, got %d", c.Render.DegreeThreshold))
	}
	if err := logging.ValidateLevel(c.Logging.Level); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Criteria returns the selection criteria the config describes.
func (c *Config) Criteria() cooccur.Criteria {
	return cooccur.Criteria{Names: c.Selection.Names, Zoom: c.Selection.Zoom}
}

// YAML renders the configuration as YAML.
func (c *Config) YAML() ([]byte, error) {
	return yaml.Marshal(c)
}

// applyEnvOverrides applies COOCCUR_* environment variables to the config.
func applyEnvOverrides(config *Config) error {
	if v := os.Getenv("COOCCUR_SOURCE"); v != "" {
		config.Source.Path = v
	}
	if v := os.Getenv("COOCCUR_ZOOM"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("COOCCUR_ZOOM: %w", err)
		}
		config.Selection.Zoom = n
	}
	if v, ok := os.LookupEnv("COOCCUR_NAMES"); ok {
		config.Selection.Names = visualization.SplitNames(v)
	}
	if v := os.Getenv("COOCCUR_COUNT_MODE"); v != "" {
		config.Graph.CountMode = v
	}
	if v := os.Getenv("COOCCUR_SENTENCE_SPLITTER"); v != "" {
		config.Tokenizer.SentenceSplitter = v
	}
	if v := os.Getenv("COOCCUR_RENDER_FORMAT"); v != "" {
		config.Render.Format = v
	}
	if v := os.Getenv("COOCCUR_SERVER_ADDR"); v != "" {
		config.Server.Addr = v
	}
	if v := os.Getenv("COOCCUR_LOG_LEVEL"); v != "" {
		config.Logging.Level = v
	}
	return nil
}

// expandEnvVars expands ${VAR} patterns in a string with environment variable values.
func expandEnvVars(s string) string {
	if !strings.Contains(s, "${") {
		return s
	}
	return os.Expand(s, os.Getenv)
}
