package main

import (
	"fmt"

	"github.com/r4yfon/flashcarder/internal/config"
	"github.com/r4yfon/flashcarder/internal/generation"
	"github.com/spf13/cobra"
)

func newPromptCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "prompt",
		Short: "Print the prompt that would be sent for a note",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.validateCount(); err != nil {
				return err
			}
			content, err := opts.readNote(cmd.InOrStdin())
			if err != nil {
				return err
			}

			// A template path is optional, so a missing LLM section is tolerated.
			path := ""
			if cfg, err := config.LoadLLM(); err == nil {
				path = cfg.PromptTemplatePath
			}
			builder, err := generation.NewPromptBuilder(path)
			if err != nil {
				return err
			}

			prompt, err := builder.Build(content, opts.count)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), prompt)
			return err
		},
	}
}
