package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/vsl/internal/domain"
)

// newPrintCommand builds the `vsl print` subcommand: runs the full
// pipeline and renders the converted System in the configured output
// format (text, json, or yaml via domain.DebugYAML).
func newPrintCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "print [file]",
		Short: "Convert VSL source to a System and print it",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := buildConfig()
			if err != nil {
				return err
			}
			path := resolveSourcePath(args, cfg)

			source, err := readSource(path)
			if err != nil {
				return err
			}

			logger, err := createLogger(cfg)
			if err != nil {
				return err
			}

			p := newPipeline(cfg.Evaluator.DisableLazy, cmd.OutOrStdout(), logger)
			forms, err := p.lexAndParse(source)
			if err != nil {
				return reportPipelineError(cmd, source, err, cfg)
			}

			env, err := p.eval(forms)
			if err != nil {
				return reportPipelineError(cmd, source, err, cfg)
			}

			system, err := p.convert(env)
			if err != nil {
				return reportPipelineError(cmd, source, err, cfg)
			}

			rendered, err := renderSystem(system, cfg.Output.Format)
			if err != nil {
				return fmt.Errorf("render system: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return nil
		},
	}
}

func renderSystem(system domain.System, format string) (string, error) {
	switch format {
	case "json":
		data, err := json.MarshalIndent(system, "", "  ")
		if err != nil {
			return "", err
		}
		return string(data), nil
	case "text":
		return fmt.Sprintf("%+v", system), nil
	default: // "yaml" and unset
		return domain.DebugYAML(system)
	}
}
