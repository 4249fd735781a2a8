package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/fieldmark/contactlex/internal/config"
)

// CheckOptions holds flags for the check command.
type CheckOptions struct {
	*RootOptions
	Config string
}

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CheckOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Report whether the lexicon is stale",
		Long: `Run the change detector against the contact store.

Exit code 0 means the lexicon is current, 1 means it is stale and a
rebuild is needed. The check runs the cheap count comparison first and
falls back to the full content scan only when counts match.

Example:
  contactlex check --config ./contactlex.yaml`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Config, "config", "", "path to config file (required)")
	_ = cmd.MarkFlagRequired("config")

	return cmd
}

func runCheck(opts *CheckOptions, cmd *cobra.Command) error {
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
	stale, err := loaded.Engine.Stale(ctx)
	if err != nil {
		return WrapExitError(ExitCommandError, "staleness check failed", err)
	}

	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	if opts.Format == "json" {
		if err := out.Success(map[string]bool{"stale": stale}); err != nil {
			return err
		}
	} else {
		msg := "lexicon is current"
		if stale {
			msg = "lexicon is stale"
		}
		if err := out.Success(msg); err != nil {
			return err
		}
	}

	if stale {
		return NewExitError(ExitFailure, "lexicon is stale")
	}
	return nil
}
