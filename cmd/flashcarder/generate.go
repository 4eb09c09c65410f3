package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/r4yfon/flashcarder/internal/config"
	"github.com/r4yfon/flashcarder/internal/generation"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// generateOutput is what generate prints.
type generateOutput struct {
	Flashcards []generation.Pair `json:"flashcards"        yaml:"flashcards"`
	Degraded   bool              `json:"degraded"          yaml:"degraded"`
	Failure    string            `json:"failure,omitempty" yaml:"failure,omitempty"`
}

func newGenerateCmd(opts *cliOptions, newCompleter completerFactory) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate flashcards for a note and print them",
		Long: `generate runs prompt, completion and normalization for a note without
touching the database. It exits non-zero when the completion call fails.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if output != "json" && output != "yaml" {
				return fmt.Errorf("unsupported output format %q (want json or yaml)", output)
			}
			if err := opts.validateCount(); err != nil {
				return err
			}
			content, err := opts.readNote(cmd.InOrStdin())
			if err != nil {
				return err
			}

			cfg, err := config.LoadLLM()
			if err != nil {
				return err
			}

			completer, err := newCompleter(cmd.Context(), *cfg, opts.logger)
			if err != nil {
				return err
			}
			prompts, err := generation.NewPromptBuilder(cfg.PromptTemplatePath)
			if err != nil {
				return err
			}
			generator, err := generation.NewGenerator(completer, prompts, opts.logger)
			if err != nil {
				return err
			}

			result, err := generator.Generate(cmd.Context(), content, opts.count)
			if err != nil {
				return fmt.Errorf("%w: %w", errGenerationFailed, err)
			}
			if result.Degraded() {
				opts.logger.Warn("model output was unusable; printing placeholder",
					slog.String("failure", string(result.Failure)))
			}

			return writeOutput(cmd.OutOrStdout(), output, generateOutput{
				Flashcards: result.Pairs,
				Degraded:   result.Degraded(),
				Failure:    string(result.Failure),
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "json", "Output format: json or yaml")
	return cmd
}

func writeOutput(w io.Writer, format string, out generateOutput) error {
	if format == "yaml" {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(out); err != nil {
			return fmt.Errorf("failed to encode YAML: %w", err)
		}
		return enc.Close()
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}
