package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fieldmark/contactlex/internal/config"
)

// RebuildOptions holds flags for the rebuild command.
type RebuildOptions struct {
	*RootOptions
	Config string
}

// NewRebuildCommand creates the rebuild command.
func NewRebuildCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RebuildOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "rebuild",
		Short: "Run one full derivation pass",
		Long: `Run a single unconditional rebuild pass and exit.

Tokenizes every valid contact name, inserts the resulting words and
bigrams into the lexicon, and persists the record-count baseline used by
the cheap staleness check.

Example:
  contactlex rebuild --config ./contactlex.yaml`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRebuild(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Config, "config", "", "path to config file (required)")
	_ = cmd.MarkFlagRequired("config")

	return cmd
}

func runRebuild(opts *RebuildOptions, cmd *cobra.Command) error {
	configureLogging(opts.Verbose)

	cfg, err := config.Load(opts.Config)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load config", err)
	}

	loaded, err := loadEngine(cfg)
	if err != nil {
		return err
	}
	defer loaded.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	loaded.Engine.Rebuild(ctx)

	words, bigrams, err := loaded.Lexicon.Stats(ctx)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read lexicon stats", err)
	}

	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	if opts.Format == "json" {
		return out.Success(map[string]int{"words": words, "bigrams": bigrams})
	}
	return out.Success(fmt.Sprintf("rebuild complete: %d words, %d bigrams", words, bigrams))
}
