package cli

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/fieldmark/contactlex/internal/source"
)

// SeedOptions holds flags for the seed command.
type SeedOptions struct {
	*RootOptions
	Database string
}

// NewSeedCommand creates the seed command.
func NewSeedCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SeedOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "seed <name>...",
		Short: "Insert contacts into a contact database",
		Long: `Insert display names into a SQLite contact database, minting a
UUIDv7 identifier per record. Intended for fixtures and local testing;
the engine itself never writes to a contact store.

Example:
  contactlex seed --db ./contacts.db "Jane Doe" "Jean-Luc Picard"`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(opts, args, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite contact database (required)")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runSeed(opts *SeedOptions, names []string, cmd *cobra.Command) error {
	configureLogging(opts.Verbose)

	db, err := source.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open contact database", err)
	}
	defer db.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	for _, name := range names {
		r := source.Record{
			ID:          uuid.Must(uuid.NewV7()).String(),
			DisplayName: name,
		}
		if err := db.Add(ctx, r); err != nil {
			return WrapExitError(ExitCommandError, fmt.Sprintf("failed to add %q", name), err)
		}
	}

	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	if opts.Format == "json" {
		return out.Success(map[string]int{"added": len(names)})
	}
	return out.Success(fmt.Sprintf("added %d contacts", len(names)))
}
