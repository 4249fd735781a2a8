package cli

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/fieldmark/contactlex/internal/config"
)

// WatchOptions holds flags for the watch command.
type WatchOptions struct {
	*RootOptions
	Config   string
	Interval time.Duration
}

// NewWatchCommand creates the watch command.
func NewWatchCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &WatchOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Run the sync engine until interrupted",
		Long: `Run the contactlex sync engine as a long-lived worker.

The engine performs one rebuild on startup, then polls the contact store
on the given interval. Each tick raises a change notification; the change
detector decides whether a rebuild is actually needed, so idle ticks cost
one count query.

Example:
  contactlex watch --config ./contactlex.yaml
  contactlex watch --config ./contactlex.yaml --interval 30s --verbose`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Config, "config", "", "path to config file (required)")
	cmd.Flags().DurationVar(&opts.Interval, "interval", time.Minute, "poll interval for change detection")
	_ = cmd.MarkFlagRequired("config")

	return cmd
}

func runWatch(opts *WatchOptions, cmd *cobra.Command) error {
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

	// Use command's context if available (for testing), otherwise create one
	parentCtx := cmd.Context()
	if parentCtx == nil {
		parentCtx = context.Background()
	}
	ctx, cancel := context.WithCancel(parentCtx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	go func() {
		select {
		case sig := <-sigChan:
			slog.Info("received signal, shutting down", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	// Poller stands in for the platform's change notifications: each tick
	// is a fire-and-forget "something may have changed".
	go func() {
		ticker := time.NewTicker(opts.Interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				loaded.Engine.NotifyChange()
			case <-ctx.Done():
				return
			}
		}
	}()

	if err := loaded.Engine.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return WrapExitError(ExitCommandError, "engine stopped", err)
	}
	return nil
}
