package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// ExtendedConfig contains all configuration for the vsl CLI host.
type ExtendedConfig struct {
	Source    SourceConfig    `mapstructure:"source" json:"source" yaml:"source" toml:"source"`
	Logging   LoggingConfig   `mapstructure:"logging" json:"logging" yaml:"logging" toml:"logging"`
	Evaluator EvaluatorConfig `mapstructure:"evaluator" json:"evaluator" yaml:"evaluator" toml:"evaluator"`
	Builtins  BuiltinsConfig  `mapstructure:"builtins" json:"builtins" yaml:"builtins" toml:"builtins"`
	Output    OutputConfig    `mapstructure:"output" json:"output" yaml:"output" toml:"output"`
}

// SourceConfig contains the default input-source configuration.
type SourceConfig struct {
	// Path is the default .vsl file read when no source argument is given
	// on the command line ("-" reads standard input; a directory is not
	// read).
	Path string `mapstructure:"path" json:"path" yaml:"path" toml:"path"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	// Log level: DEBUG, INFO, WARN, ERROR
	Level string `mapstructure:"level" json:"level" yaml:"level" toml:"level"`

	// Log format: text, json
	Format string `mapstructure:"format" json:"format" yaml:"format" toml:"format"`

	// Log destination: stderr, stdout, file
	Destination string `mapstructure:"destination" json:"destination" yaml:"destination" toml:"destination"`

	// Log file path (only used if destination is "file")
	File string `mapstructure:"file" json:"file" yaml:"file" toml:"file"`
}

// EvaluatorConfig contains evaluator-wide switches.
type EvaluatorConfig struct {
	// DisableLazy forces every function call to reduce immediately instead
	// of producing a thunk (the disable_lazy mode named in the language).
	DisableLazy bool `mapstructure:"disable_lazy" json:"disable_lazy" yaml:"disable_lazy" toml:"disable_lazy"`
}

// BuiltinsConfig holds built-in plugin settings. The built-in table is
// always the standard one from internal/builtins.
type BuiltinsConfig struct {
	// PluginDirs lists directories for additional built-in definitions. It
	// is loaded, merged, validated and written back, but no command reads
	// these directories.
	PluginDirs []string `mapstructure:"plugin_dirs" json:"plugin_dirs" yaml:"plugin_dirs" toml:"plugin_dirs"`
}

// OutputConfig contains diagnostic/result output formatting configuration.
type OutputConfig struct {
	// Default output format: text, json, yaml
	Format string `mapstructure:"format" json:"format" yaml:"format" toml:"format"`

	// Enable colored output: auto, always, never
	Color string `mapstructure:"color" json:"color" yaml:"color" toml:"color"`

	// Verbosity level: 0 (quiet), 1 (normal), 2 (verbose), 3 (debug)
	Verbosity int `mapstructure:"verbosity" json:"verbosity" yaml:"verbosity" toml:"verbosity"`

	// Terminal width. It is stored and shown by `config list`; no output
	// is wrapped to it.
	Width int `mapstructure:"width" json:"width" yaml:"width" toml:"width"`
}

// DefaultExtended returns extended configuration with sensible defaults.
func DefaultExtended() *ExtendedConfig {
	return &ExtendedConfig{
		Source: SourceConfig{
			Path: "./system.vsl",
		},
		Logging: LoggingConfig{
			Level:       "INFO",
			Format:      "text",
			Destination: "stderr",
			File:        getXDGStatePath("vsl/vsl.log"),
		},
		Evaluator: EvaluatorConfig{
			DisableLazy: false,
		},
		Builtins: BuiltinsConfig{
			PluginDirs: []string{},
		},
		Output: OutputConfig{
			Format:    "text",
			Color:     "auto",
			Verbosity: 1,
			Width:     0,
		},
	}
}

// LoadExtendedFromFile loads extended configuration from specified file.
func LoadExtendedFromFile(path string) (*ExtendedConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := DefaultExtended()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// Validate checks configuration for errors.
func (c *ExtendedConfig) Validate() error {
	if err := c.validateSource(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	if err := c.validateOutput(); err != nil {
		return err
	}
	return nil
}

func (c *ExtendedConfig) validateSource() error {
	if c.Source.Path == "" {
		return fmt.Errorf("source.path: path cannot be empty")
	}
	return nil
}

func (c *ExtendedConfig) validateLogging() error {
	validLevels := []string{"DEBUG", "INFO", "WARN", "ERROR"}
	if !contains(validLevels, c.Logging.Level) {
		return fmt.Errorf("logging.level: invalid log level %q (must be one of: %s)",
			c.Logging.Level, strings.Join(validLevels, ", "))
	}

	validFormats := []string{"text", "json"}
	if !contains(validFormats, c.Logging.Format) {
		return fmt.Errorf("logging.format: invalid log format %q (must be one of: %s)",
			c.Logging.Format, strings.Join(validFormats, ", "))
	}

	validDestinations := []string{"stderr", "stdout", "file"}
	if !contains(validDestinations, c.Logging.Destination) {
		return fmt.Errorf("logging.destination: invalid log destination %q (must be one of: %s)",
			c.Logging.Destination, strings.Join(validDestinations, ", "))
	}

	if c.Logging.Destination == "file" && c.Logging.File == "" {
		return fmt.Errorf("logging.file: log file must be specified when destination is 'file'")
	}

	return nil
}

func (c *ExtendedConfig) validateOutput() error {
	validFormats := []string{"text", "json", "yaml"}
	if !contains(validFormats, c.Output.Format) {
		return fmt.Errorf("output.format: invalid output format %q (must be one of: %s)",
			c.Output.Format, strings.Join(validFormats, ", "))
	}

	validColors := []string{"auto", "always", "never"}
	if !contains(validColors, c.Output.Color) {
		return fmt.Errorf("output.color: invalid color mode %q (must be one of: %s)",
			c.Output.Color, strings.Join(validColors, ", "))
	}

	if c.Output.Verbosity < 0 || c.Output.Verbosity > 3 {
		return fmt.Errorf("output.verbosity: verbosity must be between 0 and 3, got %d", c.Output.Verbosity)
	}

	if c.Output.Width < 0 {
		return fmt.Errorf("output.width: width cannot be negative, got %d", c.Output.Width)
	}

	return nil
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}

// getXDGStatePath returns XDG state directory path.
func getXDGStatePath(suffix string) string {
	if stateHome := os.Getenv("XDG_STATE_HOME"); stateHome != "" {
		return filepath.Join(stateHome, suffix)
	}
	homeDir, _ := os.UserHomeDir()
	if homeDir == "" {
		homeDir = "."
	}
	return filepath.Join(homeDir, ".local", "state", suffix)
}
