package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	permUserRWX = 0o700
	permUserRW  = 0o600
)

// Writer handles writing configuration to files.
type Writer struct {
	path string
}

// NewWriter creates a configuration writer.
func NewWriter(path string) *Writer {
	return &Writer{
		path: path,
	}
}

// Write writes configuration to file.
func (w *Writer) Write(cfg *ExtendedConfig, opts WriteOptions) error {
	// Ensure directory exists
	dir := filepath.Dir(w.path)
	if err := os.MkdirAll(dir, permUserRWX); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	// Marshal config based on format
	data, err := w.marshal(cfg, opts)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	// Write to file with secure permissions
	if err := os.WriteFile(w.path, data, permUserRW); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// WriteDefault writes default configuration with comments.
func (w *Writer) WriteDefault(opts WriteOptions) error {
	cfg := DefaultExtended()
	opts.IncludeComments = opts.IncludeComments || opts.Format == "yaml"
	return w.Write(cfg, opts)
}

// Update updates specific value in configuration file.
func (w *Writer) Update(key string, value interface{}) error {
	// Load existing config
	var cfg *ExtendedConfig
	var err error

	if fileExists(w.path) {
		cfg, err = LoadExtendedFromFile(w.path)
		if err != nil {
			return fmt.Errorf("load existing config: %w", err)
		}
	} else {
		// File doesn't exist, create with default
		cfg = DefaultExtended()
	}

	// Update value
	if err := w.setValue(cfg, key, value); err != nil {
		return fmt.Errorf("set value: %w", err)
	}

	// Validate
	if err := cfg.Validate(); err != nil {
		return err
	}

	// Write back
	opts := WriteOptions{
		Format:          w.DetectFormat(),
		IncludeComments: false,
	}
	return w.Write(cfg, opts)
}

// WriteOptions controls configuration file output.
type WriteOptions struct {
	Format          string // yaml, json, toml
	IncludeComments bool
	Indent          int
}

// marshal converts config to bytes in specified format using strategy pattern.
func (w *Writer) marshal(cfg *ExtendedConfig, opts WriteOptions) ([]byte, error) {
	format := opts.Format
	if format == "" {
		format = w.DetectFormat()
	}

	strategy, err := GetStrategy(format)
	if err != nil {
		return nil, err
	}

	marshalOpts := MarshalOptions{
		IncludeComments: opts.IncludeComments,
		Indent:          opts.Indent,
	}

	return strategy.Marshal(cfg, marshalOpts)
}

// DetectFormat detects format from file extension.
func (w *Writer) DetectFormat() string {
	ext := filepath.Ext(w.path)
	switch ext {
	case ".yaml", ".yml":
		return "yaml"
	case ".json":
		return "json"
	case ".toml":
		return "toml"
	default:
		return "yaml"
	}
}

// setValue sets a configuration value by dotted key path.
func (w *Writer) setValue(cfg *ExtendedConfig, key string, value interface{}) error {
	parts := strings.Split(key, ".")
	if len(parts) < 2 {
		return fmt.Errorf("invalid key: %s (must be section.field)", key)
	}

	section := parts[0]
	field := parts[1]

	switch section {
	case "source":
		return setSourceValue(&cfg.Source, field, value)
	case "logging":
		return setLoggingValue(&cfg.Logging, field, value)
	case "evaluator":
		return setEvaluatorValue(&cfg.Evaluator, field, value)
	case "builtins":
		return setBuiltinsValue(&cfg.Builtins, field, value)
	case "output":
		return setOutputValue(&cfg.Output, field, value)
	default:
		return fmt.Errorf("unknown section: %s", section)
	}
}

func setSourceValue(cfg *SourceConfig, field string, value interface{}) error {
	str, ok := value.(string)
	if !ok {
		return fmt.Errorf("source.%s: value must be string", field)
	}

	switch field {
	case "path":
		cfg.Path = str
	default:
		return fmt.Errorf("unknown field: source.%s", field)
	}

	return nil
}

func setLoggingValue(cfg *LoggingConfig, field string, value interface{}) error {
	str, ok := value.(string)
	if !ok {
		return fmt.Errorf("logging.%s: value must be string", field)
	}

	switch field {
	case "level":
		cfg.Level = str
	case "format":
		cfg.Format = str
	case "destination":
		cfg.Destination = str
	case "file":
		cfg.File = str
	default:
		return fmt.Errorf("unknown field: logging.%s", field)
	}

	return nil
}

func setEvaluatorValue(cfg *EvaluatorConfig, field string, value interface{}) error {
	switch field {
	case "disable_lazy":
		b, ok := value.(bool)
		if !ok {
			return fmt.Errorf("evaluator.%s: value must be bool", field)
		}
		cfg.DisableLazy = b
	default:
		return fmt.Errorf("unknown field: evaluator.%s", field)
	}

	return nil
}

func setBuiltinsValue(cfg *BuiltinsConfig, field string, value interface{}) error {
	switch field {
	case "plugin_dirs":
		var arr []string
		switch v := value.(type) {
		case []string:
			arr = v
		case string:
			arr = strings.Split(v, ",")
			for i := range arr {
				arr[i] = strings.TrimSpace(arr[i])
			}
		default:
			return fmt.Errorf("builtins.%s: value must be []string or string", field)
		}
		cfg.PluginDirs = arr
	default:
		return fmt.Errorf("unknown field: builtins.%s", field)
	}

	return nil
}

func setOutputValue(cfg *OutputConfig, field string, value interface{}) error {
	switch field {
	case "format", "color":
		str, ok := value.(string)
		if !ok {
			return fmt.Errorf("output.%s: value must be string", field)
		}

		switch field {
		case "format":
			cfg.Format = str
		case "color":
			cfg.Color = str
		}

	case "verbosity", "width":
		var i int
		switch v := value.(type) {
		case int:
			i = v
		case float64:
			i = int(v)
		default:
			return fmt.Errorf("output.%s: value must be int", field)
		}

		switch field {
		case "verbosity":
			cfg.Verbosity = i
		case "width":
			cfg.Width = i
		}

	default:
		return fmt.Errorf("unknown field: output.%s", field)
	}

	return nil
}

// WriteConfigWithHeader writes configuration with a custom header comment.
func WriteConfigWithHeader(path string, cfg *ExtendedConfig, header string) error {
	writer := NewWriter(path)

	// Marshal config
	opts := WriteOptions{
		Format:          writer.DetectFormat(),
		IncludeComments: false,
		Indent:          2,
	}

	data, err := writer.marshal(cfg, opts)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	// Prepend header
	finalData := []byte(header)
	finalData = append(finalData, data...)

	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, permUserRWX); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	// Write to file with secure permissions
	if err := os.WriteFile(path, finalData, permUserRW); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// fileExists checks if a file exists.
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
