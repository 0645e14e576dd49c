package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newCheckCommand builds the `vsl check` subcommand: runs the full
// pipeline (lex, parse, eval, convert) and reports success or a diagnostic,
// without printing the converted system. Intended for CI / pre-commit use,
// where only the exit code matters.
func newCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check [file]",
		Short: "Validate VSL source end to end without printing the result",
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

			if _, err := p.convert(env); err != nil {
				return reportPipelineError(cmd, source, err, cfg)
			}

			if cfg.Output.Verbosity > 0 {
				st := newStyles(shouldColorize(globalCfg.noColor, cfg.Output.Color))
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", st.Success("✓"), path)
			}
			return nil
		},
	}
}
