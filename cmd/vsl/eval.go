package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newEvalCommand builds the `vsl eval` subcommand: lex, parse, and evaluate
// every top-level form, then print the resolved `system` binding.
func newEvalCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "eval [file]",
		Short: "Evaluate VSL source and print the resulting system binding",
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

			system, ok := env.Get("system")
			if !ok {
				return fmt.Errorf("system is not bound")
			}
			fmt.Fprintln(cmd.OutOrStdout(), system.String())
			return nil
		},
	}
}
