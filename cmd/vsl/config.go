package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/vsl/internal/config"
)

// newConfigCommand creates the config command, adapted from the teacher's
// cmd/dot/config.go to the five-section vsl schema (source/logging/
// evaluator/builtins/output) instead of the dotfile-manager schema.
func newConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "config",
		Aliases: []string{"cfg"},
		Short:   "Manage vsl configuration",
		Long: `View and modify vsl configuration settings.

Configuration is loaded from multiple sources in order of precedence:
  1. Command-line flags (highest)
  2. Environment variables (VSL_* prefix)
  3. Configuration file (~/.config/vsl/config.yaml)
  4. Built-in defaults (lowest)`,
		RunE: runConfigList,
	}

	cmd.AddCommand(
		newConfigInitCommand(),
		newConfigGetCommand(),
		newConfigSetCommand(),
		newConfigListCommand(),
		newConfigPathCommand(),
	)

	return cmd
}

// getConfigFilePath returns the configuration file path, honoring an
// explicit VSL_CONFIG override.
func getConfigFilePath() string {
	if path := os.Getenv("VSL_CONFIG"); path != "" {
		return path
	}
	return filepath.Join(config.GetConfigPath("vsl"), "config.yaml")
}

func runConfigList(cmd *cobra.Command, args []string) error {
	return runConfigListCmd(cmd, args)
}

func newConfigInitCommand() *cobra.Command {
	var force bool
	var format string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create initial configuration file",
		Long: `Create a new configuration file with default values.

The configuration file is created in the XDG config directory:
  ~/.config/vsl/config.yaml (default)

Use --force to overwrite existing configuration.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigInit(force, format)
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite existing config")
	cmd.Flags().StringVar(&format, "format", "yaml", "Config format (yaml, json, toml)")

	return cmd
}

func runConfigInit(force bool, format string) error {
	configPath := getConfigFilePath()

	if format == "yaml" {
		if ext := strings.TrimPrefix(filepath.Ext(configPath), "."); ext == "json" || ext == "toml" {
			format = ext
		}
	} else {
		dir, base := filepath.Dir(configPath), filepath.Base(configPath)
		if ext := filepath.Ext(base); ext != "" {
			base = base[:len(base)-len(ext)]
		}
		configPath = filepath.Join(dir, base+"."+format)
	}

	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("config file already exists: %s (use --force to overwrite)", configPath)
	}

	writer := config.NewWriter(configPath)
	if err := writer.WriteDefault(config.WriteOptions{
		Format:          format,
		IncludeComments: format == "yaml",
	}); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	fmt.Printf("Configuration file created: %s\n", configPath)
	return nil
}

func newConfigGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Get configuration value",
		Long:  "Retrieve configuration value by key path (e.g. source.path, logging.level).",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigGet(args[0])
		},
	}
}

func runConfigGet(key string) error {
	loader := config.NewLoader("vsl", getConfigFilePath())
	cfg, err := loader.LoadWithEnv()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	value, err := getConfigValue(cfg, key)
	if err != nil {
		return err
	}

	fmt.Println(value)
	return nil
}

func getConfigValue(cfg *config.ExtendedConfig, key string) (string, error) {
	switch key {
	case "source.path":
		return cfg.Source.Path, nil
	case "logging.level":
		return cfg.Logging.Level, nil
	case "logging.format":
		return cfg.Logging.Format, nil
	case "logging.destination":
		return cfg.Logging.Destination, nil
	case "logging.file":
		return cfg.Logging.File, nil
	case "evaluator.disable_lazy":
		return fmt.Sprintf("%t", cfg.Evaluator.DisableLazy), nil
	case "output.format":
		return cfg.Output.Format, nil
	case "output.color":
		return cfg.Output.Color, nil
	default:
		return "", fmt.Errorf("unknown config key: %s", key)
	}
}

func newConfigSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set configuration value",
		Long:  "Set configuration value by key path. Values are type-converted based on the field.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigSet(args[0], args[1])
		},
	}
}

func runConfigSet(key, value string) error {
	writer := config.NewWriter(getConfigFilePath())
	if err := writer.Update(key, value); err != nil {
		return fmt.Errorf("update config: %w", err)
	}

	fmt.Printf("Updated configuration: %s\n  %s: %s\n", getConfigFilePath(), key, value)
	return nil
}

func newConfigListCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"show", "ls"},
		Short:   "List all configuration settings",
		RunE:    runConfigListCmd,
	}
}

func runConfigListCmd(cmd *cobra.Command, args []string) error {
	configPath := getConfigFilePath()

	loader := config.NewLoader("vsl", configPath)
	cfg, err := loader.LoadWithEnv()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	st := newStyles(shouldColorize(globalCfg.noColor, globalCfg.color))

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%s\n\n", st.Dim("Configuration from: "+configPath))

	renderSourceSection(&buf, cfg, st)
	buf.WriteString("\n")
	renderLoggingSection(&buf, cfg, st)
	buf.WriteString("\n")
	renderEvaluatorSection(&buf, cfg, st)
	buf.WriteString("\n")
	renderBuiltinsSection(&buf, cfg, st)
	buf.WriteString("\n")
	renderOutputSection(&buf, cfg, st)

	fmt.Fprint(cmd.OutOrStdout(), buf.String())
	return nil
}

func renderSourceSection(buf *bytes.Buffer, cfg *config.ExtendedConfig, st *styles) {
	fmt.Fprintf(buf, "%s\n", st.Bold("Source"))
	fmt.Fprintf(buf, "  %-20s %s\n", st.Dim("path:"), cfg.Source.Path)
}

func renderLoggingSection(buf *bytes.Buffer, cfg *config.ExtendedConfig, st *styles) {
	fmt.Fprintf(buf, "%s\n", st.Bold("Logging"))
	fmt.Fprintf(buf, "  %-20s %s\n", st.Dim("level:"), cfg.Logging.Level)
	fmt.Fprintf(buf, "  %-20s %s\n", st.Dim("format:"), cfg.Logging.Format)
	fmt.Fprintf(buf, "  %-20s %s\n", st.Dim("destination:"), cfg.Logging.Destination)
	if cfg.Logging.File != "" {
		fmt.Fprintf(buf, "  %-20s %s\n", st.Dim("file:"), cfg.Logging.File)
	}
}

func renderEvaluatorSection(buf *bytes.Buffer, cfg *config.ExtendedConfig, st *styles) {
	fmt.Fprintf(buf, "%s\n", st.Bold("Evaluator"))
	fmt.Fprintf(buf, "  %-20s %s\n", st.Dim("disable_lazy:"), formatBool(cfg.Evaluator.DisableLazy, st))
}

func renderBuiltinsSection(buf *bytes.Buffer, cfg *config.ExtendedConfig, st *styles) {
	fmt.Fprintf(buf, "%s\n", st.Bold("Builtins"))
	fmt.Fprintf(buf, "  %-20s %s\n", st.Dim("plugin_dirs:"), formatSlice(cfg.Builtins.PluginDirs, st))
}

func renderOutputSection(buf *bytes.Buffer, cfg *config.ExtendedConfig, st *styles) {
	fmt.Fprintf(buf, "%s\n", st.Bold("Output"))
	fmt.Fprintf(buf, "  %-20s %s\n", st.Dim("format:"), cfg.Output.Format)
	fmt.Fprintf(buf, "  %-20s %s\n", st.Dim("color:"), cfg.Output.Color)
	fmt.Fprintf(buf, "  %-20s %d\n", st.Dim("verbosity:"), cfg.Output.Verbosity)
	fmt.Fprintf(buf, "  %-20s %d\n", st.Dim("width:"), cfg.Output.Width)
}

func formatBool(b bool, st *styles) string {
	if b {
		return st.Success("true")
	}
	return st.Dim("false")
}

func formatSlice(s []string, st *styles) string {
	if len(s) == 0 {
		return st.Dim("(none)")
	}
	if len(s) <= 3 {
		return strings.Join(s, ", ")
	}
	return strings.Join(s[:3], ", ") + st.Dim(fmt.Sprintf(" (+%d more)", len(s)-3))
}

func newConfigPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigPath()
		},
	}
}

func runConfigPath() error {
	configPath := getConfigFilePath()

	exists := "✗ (not created)"
	if _, err := os.Stat(configPath); err == nil {
		exists = "✓"
	}

	fmt.Printf("Configuration file: %s %s\n", configPath, exists)
	return nil
}
