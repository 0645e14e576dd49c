package config

import (
	"bytes"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// YAMLStrategy implements Strategy for YAML format.
type YAMLStrategy struct{}

// NewYAMLStrategy creates a new YAML marshaling strategy.
func NewYAMLStrategy() *YAMLStrategy {
	return &YAMLStrategy{}
}

// Name returns "yaml".
func (s *YAMLStrategy) Name() string {
	return "yaml"
}

// Marshal converts configuration to YAML bytes.
func (s *YAMLStrategy) Marshal(cfg *ExtendedConfig, opts MarshalOptions) ([]byte, error) {
	if cfg == nil {
		return nil, errors.New("cannot marshal nil config")
	}

	if opts.IncludeComments {
		return s.marshalWithComments(cfg)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("marshal yaml: %w", err)
	}

	return data, nil
}

// Unmarshal converts YAML bytes to configuration.
func (s *YAMLStrategy) Unmarshal(data []byte) (*ExtendedConfig, error) {
	if len(data) == 0 {
		return nil, errors.New("cannot unmarshal empty data")
	}

	var cfg ExtendedConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal yaml: %w", err)
	}

	return &cfg, nil
}

// marshalWithComments creates YAML with helpful comments.
func (s *YAMLStrategy) marshalWithComments(cfg *ExtendedConfig) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString("# vsl Configuration File\n")
	buf.WriteString("# Documentation: https://github.com/yaklabco/vsl/docs/configuration.md\n\n")

	buf.WriteString("# Source Resolution\n")
	buf.WriteString("source:\n")
	buf.WriteString("  # Default .vsl file read when no source argument is given\n")
	buf.WriteString(fmt.Sprintf("  path: %s\n\n", cfg.Source.Path))

	buf.WriteString("# Logging Configuration\n")
	buf.WriteString("logging:\n")
	buf.WriteString("  # Log level: DEBUG, INFO, WARN, ERROR\n")
	buf.WriteString(fmt.Sprintf("  level: %s\n", cfg.Logging.Level))
	buf.WriteString("  # Log format: text, json\n")
	buf.WriteString(fmt.Sprintf("  format: %s\n", cfg.Logging.Format))
	buf.WriteString("  # Log destination: stderr, stdout, file\n")
	buf.WriteString(fmt.Sprintf("  destination: %s\n", cfg.Logging.Destination))
	buf.WriteString("  # Log file path (only used if destination is file)\n")
	buf.WriteString(fmt.Sprintf("  file: %s\n\n", cfg.Logging.File))

	buf.WriteString("# Evaluator Switches\n")
	buf.WriteString("evaluator:\n")
	buf.WriteString("  # Force every function call to reduce immediately instead of\n")
	buf.WriteString("  # producing a thunk\n")
	buf.WriteString(fmt.Sprintf("  disable_lazy: %t\n\n", cfg.Evaluator.DisableLazy))

	buf.WriteString("# Built-in Function Plugins\n")
	buf.WriteString("builtins:\n")
	buf.WriteString("  # Directories for additional built-in definitions (not read by any command)\n")
	s.writeYAMLList(&buf, "plugin_dirs", cfg.Builtins.PluginDirs, 2)
	buf.WriteString("\n")

	buf.WriteString("# Output Configuration\n")
	buf.WriteString("output:\n")
	buf.WriteString("  # Default output format: text, json, yaml\n")
	buf.WriteString(fmt.Sprintf("  format: %s\n", cfg.Output.Format))
	buf.WriteString("  # Enable colored output: auto, always, never\n")
	buf.WriteString(fmt.Sprintf("  color: %s\n", cfg.Output.Color))
	buf.WriteString("  # Verbosity level: 0 (quiet), 1 (normal), 2 (verbose), 3 (debug)\n")
	buf.WriteString(fmt.Sprintf("  verbosity: %d\n", cfg.Output.Verbosity))
	buf.WriteString("  # Terminal width (stored only; output is not wrapped to it)\n")
	buf.WriteString(fmt.Sprintf("  width: %d\n", cfg.Output.Width))

	return buf.Bytes(), nil
}

// writeYAMLList writes a YAML list with proper indentation.
func (s *YAMLStrategy) writeYAMLList(buf *bytes.Buffer, key string, items []string, indent int) {
	spaces := make([]byte, indent)
	for i := range spaces {
		spaces[i] = ' '
	}
	prefix := string(spaces)

	if len(items) == 0 {
		buf.WriteString(fmt.Sprintf("%s%s: []\n", prefix, key))
		return
	}

	buf.WriteString(fmt.Sprintf("%s%s:\n", prefix, key))
	for _, item := range items {
		buf.WriteString(fmt.Sprintf("%s  - %s\n", prefix, item))
	}
}
