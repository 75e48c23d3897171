package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/artlens/curator/pkg/curator"
	"github.com/artlens/curator/pkg/curator/setup"
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the artwork lookup and narrative web form",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			setupResult, err := setup.Setup()
			if err != nil {
				return fmt.Errorf("failed to setup: %w", err)
			}

			config, err := curator.NewCuratorConfigFromSetupResult(setupResult)
			if err != nil {
				return fmt.Errorf("failed to create curator config: %w", err)
			}

			c, err := curator.NewCurator(config)
			if err != nil {
				return fmt.Errorf("failed to create curator: %w", err)
			}

			if err := c.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}
}
