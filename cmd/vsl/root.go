package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/vsl/internal/config"
	"github.com/yaklabco/vsl/internal/domain"
	"github.com/yaklabco/vsl/internal/vlog"
)

// globalConfig holds the persistent flags shared across subcommands, the
// way the teacher's cmd/dot/root.go keeps one package-level globalCfg
// rather than threading flag values through every command constructor.
type globalConfig struct {
	configPath  string
	source      string
	logLevel    string
	logJSON     bool
	disableLazy bool
	verbose     int
	quiet       bool
	noColor     bool
	color       string
	format      string
}

var globalCfg globalConfig

// NewRootCommand builds the vsl root command and wires its subcommands.
func NewRootCommand(version, commit, date string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "vsl",
		Short: "VSL source interpreter and configuration converter",
		Long: `vsl lexes, parses, and evaluates VSL configuration source and
converts the evaluated system.config map into a typed system description.

It performs no filesystem mutation: the converted System is the boundary
surface an external mutation engine would consume.`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n\n", err)
		_ = cmd.Usage()
		return err
	})

	rootCmd.PersistentFlags().StringVarP(&globalCfg.configPath, "config", "c", "",
		"Path to vsl config file (default: XDG config location)")
	rootCmd.PersistentFlags().StringVarP(&globalCfg.source, "source", "s", "",
		"Path to VSL source file (default: from config, or system.vsl)")
	rootCmd.PersistentFlags().StringVar(&globalCfg.logLevel, "log-level", "",
		"Log level: DEBUG, INFO, WARN, ERROR")
	rootCmd.PersistentFlags().BoolVar(&globalCfg.logJSON, "log-json", false,
		"Output logs in JSON format")
	rootCmd.PersistentFlags().BoolVar(&globalCfg.disableLazy, "disable-lazy", false,
		"Force every function call to run eagerly instead of producing a thunk")
	rootCmd.PersistentFlags().CountVarP(&globalCfg.verbose, "verbose", "v",
		"Increase output verbosity (repeatable); does not change the log level")
	rootCmd.PersistentFlags().BoolVarP(&globalCfg.quiet, "quiet", "q", false,
		"Set output verbosity to 0; does not change the log level")
	rootCmd.PersistentFlags().BoolVar(&globalCfg.noColor, "no-color", false,
		"Disable color output")
	rootCmd.PersistentFlags().StringVar(&globalCfg.color, "color", "auto",
		"Color mode: auto, always, never")
	rootCmd.PersistentFlags().StringVarP(&globalCfg.format, "format", "f", "",
		"Output format for print: text, json, yaml")

	rootCmd.AddCommand(
		newParseCommand(),
		newEvalCommand(),
		newCheckCommand(),
		newPrintCommand(),
		newConfigCommand(),
	)

	return rootCmd
}

// buildConfig loads the effective ExtendedConfig from file, environment,
// and flags, in that ascending precedence, per internal/config.Loader.
func buildConfig() (*config.ExtendedConfig, error) {
	configPath := globalCfg.configPath
	if configPath == "" {
		configPath = filepath.Join(config.GetConfigPath("vsl"), "config.yaml")
	}

	loader := config.NewLoader("vsl", configPath)
	flags := map[string]interface{}{
		"source":       globalCfg.source,
		"log-json":     globalCfg.logJSON,
		"log-level":    globalCfg.logLevel,
		"disable-lazy": globalCfg.disableLazy,
		"quiet":        globalCfg.quiet,
		"color":        globalCfg.color,
		"format":       globalCfg.format,
	}
	if globalCfg.verbose > 0 {
		flags["verbose"] = globalCfg.verbose
	}

	cfg, err := loader.LoadWithFlags(flags)
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}
	return cfg, nil
}

// createLogger builds a domain.Logger from the effective configuration,
// dispatching on format/destination the way the teacher's createLogger
// dispatches on --log-json/--quiet/verbosity.
func createLogger(cfg *config.ExtendedConfig) (domain.Logger, error) {
	w, err := logDestination(cfg)
	if err != nil {
		return nil, err
	}

	if cfg.Logging.Format == "json" {
		return vlog.NewJSON(w, cfg.Logging.Level), nil
	}
	return vlog.NewConsole(w, cfg.Logging.Level), nil
}

func logDestination(cfg *config.ExtendedConfig) (*os.File, error) {
	switch cfg.Logging.Destination {
	case "stdout":
		return os.Stdout, nil
	case "file":
		f, err := os.OpenFile(cfg.Logging.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		return f, nil
	default:
		return os.Stderr, nil
	}
}

// resolveSourcePath returns the explicit positional arg if given, else the
// effective config's source path.
func resolveSourcePath(args []string, cfg *config.ExtendedConfig) string {
	if len(args) > 0 && args[0] != "" {
		return args[0]
	}
	return cfg.Source.Path
}
