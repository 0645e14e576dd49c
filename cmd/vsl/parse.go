package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/vsl/internal/langvalue"
)

// newParseCommand builds the `vsl parse` subcommand: lex and parse only,
// printing the resulting top-level forms without evaluating them.
func newParseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "parse [file]",
		Short: "Lex and parse VSL source, printing the parsed forms",
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

			p := newPipeline(cfg.Evaluator.DisableLazy, cmd.OutOrStdout(), nil)
			forms, err := p.lexAndParse(source)
			if err != nil {
				return reportPipelineError(cmd, source, err, cfg)
			}

			for i, form := range forms {
				fmt.Fprintf(cmd.OutOrStdout(), "%d: %s\n", i, formString(form))
			}
			return nil
		},
	}
}

func formString(e langvalue.Expr) string {
	return e.String()
}
