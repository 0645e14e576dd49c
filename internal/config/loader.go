package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Loader handles loading configuration from multiple sources.
type Loader struct {
	appName    string
	configPath string
}

// NewLoader creates a configuration loader.
func NewLoader(appName string, configPath string) *Loader {
	return &Loader{
		appName:    appName,
		configPath: configPath,
	}
}

// Load loads configuration from file with proper precedence.
// Precedence: file > defaults
func (l *Loader) Load() (*ExtendedConfig, error) {
	// Load from config file if it exists
	if fileExists(l.configPath) {
		fileCfg, err := LoadExtendedFromFile(l.configPath)
		if err != nil {
			return nil, fmt.Errorf("load config file: %w", err)
		}
		// Use file config directly to preserve explicit false values
		return fileCfg, nil
	}

	// No file - return defaults
	cfg := DefaultExtended()

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// LoadWithEnv loads configuration from file and applies environment variable overrides.
// Precedence: env > file > defaults
func (l *Loader) LoadWithEnv() (*ExtendedConfig, error) {
	// Start with file load
	cfg, err := l.Load()
	if err != nil {
		return nil, err
	}

	// Load from environment (sparse config with only env-set values)
	envCfg := l.loadFromEnv()
	// Overlay env-set values; mergeConfigs decides which zero values count as unset
	cfg = mergeConfigs(cfg, envCfg)

	// Validate merged configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// LoadWithFlags loads configuration and applies flag overrides.
// Precedence: flags > env > file > defaults
func (l *Loader) LoadWithFlags(flags map[string]interface{}) (*ExtendedConfig, error) {
	// Load with env
	cfg, err := l.LoadWithEnv()
	if err != nil {
		return nil, err
	}

	// Apply flag overrides
	flagCfg, verbositySet := l.configFromFlags(flags)
	cfg = mergeConfigsWithVerbosity(cfg, flagCfg, verbositySet)

	// Validate again after flag overrides
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// loadFromEnv loads configuration from environment variables.
// Returns a sparse config with only explicitly set environment values.
func (l *Loader) loadFromEnv() *ExtendedConfig {
	v := viper.New()

	// Set up environment variable handling
	v.SetEnvPrefix(strings.ToUpper(l.appName))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Bind all configuration keys
	l.bindEnvKeys(v)

	// Create sparse config
	cfg := createSparseConfig()

	// Load each section
	loadSourceFromEnv(v, &cfg.Source)
	loadLoggingFromEnv(v, &cfg.Logging)
	loadEvaluatorFromEnv(v, &cfg.Evaluator)
	loadBuiltinsFromEnv(v, &cfg.Builtins)
	loadOutputFromEnv(v, &cfg.Output)

	return cfg
}

func loadSourceFromEnv(v *viper.Viper, cfg *SourceConfig) {
	if v.IsSet("source.path") {
		cfg.Path = v.GetString("source.path")
	}
}

func loadLoggingFromEnv(v *viper.Viper, cfg *LoggingConfig) {
	if v.IsSet("logging.level") {
		cfg.Level = v.GetString("logging.level")
	}
	if v.IsSet("logging.format") {
		cfg.Format = v.GetString("logging.format")
	}
	if v.IsSet("logging.destination") {
		cfg.Destination = v.GetString("logging.destination")
	}
	if v.IsSet("logging.file") {
		cfg.File = v.GetString("logging.file")
	}
}

func loadEvaluatorFromEnv(v *viper.Viper, cfg *EvaluatorConfig) {
	if v.IsSet("evaluator.disable_lazy") {
		cfg.DisableLazy = v.GetBool("evaluator.disable_lazy")
	}
}

func loadBuiltinsFromEnv(v *viper.Viper, cfg *BuiltinsConfig) {
	if v.IsSet("builtins.plugin_dirs") {
		cfg.PluginDirs = v.GetStringSlice("builtins.plugin_dirs")
	}
}

func loadOutputFromEnv(v *viper.Viper, cfg *OutputConfig) {
	if v.IsSet("output.format") {
		cfg.Format = v.GetString("output.format")
	}
	if v.IsSet("output.color") {
		cfg.Color = v.GetString("output.color")
	}
	if v.IsSet("output.verbosity") {
		cfg.Verbosity = v.GetInt("output.verbosity")
	}
	if v.IsSet("output.width") {
		cfg.Width = v.GetInt("output.width")
	}
}

// bindEnvKeys binds all configuration keys to environment variables.
func (l *Loader) bindEnvKeys(v *viper.Viper) {
	v.BindEnv("source.path")

	v.BindEnv("logging.level")
	v.BindEnv("logging.format")
	v.BindEnv("logging.destination")
	v.BindEnv("logging.file")

	v.BindEnv("evaluator.disable_lazy")

	v.BindEnv("builtins.plugin_dirs")

	v.BindEnv("output.format")
	v.BindEnv("output.color")
	v.BindEnv("output.verbosity")
	v.BindEnv("output.width")
}

// configFromFlags creates partial config from flag map.
func (l *Loader) configFromFlags(flags map[string]interface{}) (*ExtendedConfig, bool) {
	cfg := createSparseConfig()

	verbositySet := applyFlagsToConfig(cfg, flags)

	return cfg, verbositySet
}

// createSparseConfig creates an empty config for flag/env merging.
func createSparseConfig() *ExtendedConfig {
	return &ExtendedConfig{
		Source:    SourceConfig{},
		Logging:   LoggingConfig{},
		Evaluator: EvaluatorConfig{},
		Builtins:  BuiltinsConfig{},
		Output:    OutputConfig{Verbosity: -1}, // Use -1 as sentinel for "not set"
	}
}

// applyFlagsToConfig maps command-line flags to configuration fields.
func applyFlagsToConfig(cfg *ExtendedConfig, flags map[string]interface{}) bool {
	applySourceFlags(cfg, flags)
	applyLoggingFlags(cfg, flags)
	applyEvaluatorFlags(cfg, flags)
	return applyOutputFlags(cfg, flags)
}

// applySourceFlags applies source-related flags.
func applySourceFlags(cfg *ExtendedConfig, flags map[string]interface{}) {
	if val, ok := flags["source"].(string); ok && val != "" {
		cfg.Source.Path = val
	}
}

// applyLoggingFlags applies logging-related flags.
func applyLoggingFlags(cfg *ExtendedConfig, flags map[string]interface{}) {
	if val, ok := flags["log-json"].(bool); ok && val {
		cfg.Logging.Format = "json"
	}
	if val, ok := flags["log-level"].(string); ok && val != "" {
		cfg.Logging.Level = val
	}
}

// applyEvaluatorFlags applies evaluator-related flags.
func applyEvaluatorFlags(cfg *ExtendedConfig, flags map[string]interface{}) {
	if val, ok := flags["disable-lazy"].(bool); ok && val {
		cfg.Evaluator.DisableLazy = val
	}
}

// applyOutputFlags applies output-related flags and returns if verbosity was set.
func applyOutputFlags(cfg *ExtendedConfig, flags map[string]interface{}) bool {
	verbositySet := false

	if val, ok := flags["verbose"].(int); ok {
		cfg.Output.Verbosity = val
		verbositySet = true
	}
	if val, ok := flags["quiet"].(bool); ok && val {
		cfg.Output.Verbosity = 0
		verbositySet = true
	}
	if val, ok := flags["color"].(string); ok && val != "" {
		cfg.Output.Color = val
	}
	if val, ok := flags["format"].(string); ok && val != "" {
		cfg.Output.Format = val
	}

	return verbositySet
}

// mergeConfigs merges two configs, with override taking precedence for non-zero values.
// Only merges fields that are explicitly set in override (non-empty strings, non-zero lists).
func mergeConfigs(base, override *ExtendedConfig) *ExtendedConfig {
	return mergeConfigsWithVerbosity(base, override, false)
}

// mergeConfigsWithVerbosity merges configs with special handling for verbosity.
func mergeConfigsWithVerbosity(base, override *ExtendedConfig, verbosityExplicit bool) *ExtendedConfig {
	merged := *base

	mergeSource(&merged, override)
	mergeLogging(&merged, override)
	mergeEvaluator(&merged, override)
	mergeBuiltins(&merged, override)
	mergeOutput(&merged, override, verbosityExplicit)

	return &merged
}

// mergeSource merges source configuration.
func mergeSource(merged *ExtendedConfig, override *ExtendedConfig) {
	if override.Source.Path != "" {
		merged.Source.Path = override.Source.Path
	}
}

// mergeLogging merges logging configuration.
func mergeLogging(merged *ExtendedConfig, override *ExtendedConfig) {
	if override.Logging.Level != "" {
		merged.Logging.Level = override.Logging.Level
	}
	if override.Logging.Format != "" {
		merged.Logging.Format = override.Logging.Format
	}
	if override.Logging.Destination != "" {
		merged.Logging.Destination = override.Logging.Destination
	}
	if override.Logging.File != "" {
		merged.Logging.File = override.Logging.File
	}
}

// mergeEvaluator merges evaluator configuration.
func mergeEvaluator(merged *ExtendedConfig, override *ExtendedConfig) {
	if override.Evaluator.DisableLazy {
		merged.Evaluator.DisableLazy = true
	}
}

// mergeBuiltins merges builtins configuration.
func mergeBuiltins(merged *ExtendedConfig, override *ExtendedConfig) {
	if len(override.Builtins.PluginDirs) > 0 {
		merged.Builtins.PluginDirs = override.Builtins.PluginDirs
	}
}

// mergeOutput merges output configuration with special verbosity handling.
func mergeOutput(merged *ExtendedConfig, override *ExtendedConfig, verbosityExplicit bool) {
	if override.Output.Format != "" {
		merged.Output.Format = override.Output.Format
	}
	if override.Output.Color != "" {
		merged.Output.Color = override.Output.Color
	}
	if verbosityExplicit || override.Output.Verbosity >= 0 {
		merged.Output.Verbosity = override.Output.Verbosity
	}
	if override.Output.Width > 0 {
		merged.Output.Width = override.Output.Width
	}
}
