package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/r4yfon/flashcarder/internal/config"
	"github.com/r4yfon/flashcarder/internal/domain"
	"github.com/r4yfon/flashcarder/internal/generation"
	"github.com/spf13/cobra"
)

// maxCount matches the server's upper bound on a batch.
const maxCount = 50

var errGenerationFailed = errors.New("generation failed")

// completerFactory builds the completion backend for a command run.
type completerFactory func(ctx context.Context, cfg config.LLMConfig, log *slog.Logger) (generation.Completer, error)

// cliOptions are the flags shared by every subcommand.
type cliOptions struct {
	verbose bool
	file    string
	count   int
	logger  *slog.Logger
}

func newRootCmd(newCompleter completerFactory) *cobra.Command {
	opts := &cliOptions{}

	root := &cobra.Command{
		Use:   "flashcarder",
		Short: "Generate flashcards from a note using the configured LLM",
		Long: `flashcarder builds the generation prompt for a note and, with generate,
sends it to the configured provider and prints the normalized flashcards.
Configuration is read from config.yaml and FLASHCARDER_* environment variables.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelWarn
			if opts.verbose {
				level = slog.LevelDebug
			}
			opts.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
		},
	}

	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable verbose logging")
	root.PersistentFlags().StringVarP(&opts.file, "file", "f", "", "Note file to read, or - for stdin")
	root.PersistentFlags().IntVarP(&opts.count, "count", "n", 5, "Number of flashcards to ask for")
	_ = root.MarkPersistentFlagRequired("file")

	root.AddCommand(newPromptCmd(opts), newGenerateCmd(opts, newCompleter))
	return root
}

// readNote returns the content of opts.file. Blank content is rejected.
func (o *cliOptions) readNote(stdin io.Reader) (string, error) {
	var (
		data []byte
		err  error
	)
	if o.file == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(o.file)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read note: %w", err)
	}

	content := string(data)
	if strings.TrimSpace(content) == "" {
		return "", domain.ErrEmptyContent
	}
	return content, nil
}

func (o *cliOptions) validateCount() error {
	if o.count < 1 || o.count > maxCount {
		return domain.NewValidationError("count", fmt.Sprintf("must be between 1 and %d", maxCount))
	}
	return nil
}
