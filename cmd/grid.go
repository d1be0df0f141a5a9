package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/bnema/barcamp-grid/internal/domain"
	"github.com/spf13/cobra"
)

func newGridCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "grid",
		Short: "Create and view the session grid",
	}

	cmd.AddCommand(newGridSetupCmd(app), newGridShowCmd(app), newGridWatchCmd(app))

	return cmd
}

func newGridSetupCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "setup",
		Short: "Create the session grid for the room",
		Args:  cobra.NoArgs,
		RunE: mutate(app, func(cmd *cobra.Command, _ []string, svc *services) (domain.GridEvent, error) {
			var event domain.GridEvent
			err := runWithSpinner(cmd.Context(), cmd.ErrOrStderr(), "Creating session grid...", func(ctx context.Context) error {
				var err error
				event, err = svc.grid.SetupSessionGrid(ctx)
				return err
			})
			return event, err
		}),
	}
}

func newGridShowCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the session grid",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := openServices(cmd, app)
			if err != nil {
				return err
			}

			event, err := loadGrid(cmd.Context(), svc)
			if err != nil {
				return err
			}

			if asJSON {
				return writeGridJSON(cmd, event)
			}
			return writeGrid(cmd, app, svc, event)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Render the grid event as JSON")

	return cmd
}

func newGridWatchCmd(app *app) *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Print the session grid whenever it changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := openServices(cmd, app)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			if timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, timeout)
				defer cancel()
			}

			event, err := loadGrid(ctx, svc)
			if err != nil {
				return err
			}
			if err := writeGrid(cmd, app, svc, event); err != nil {
				return err
			}

			unsubscribe := svc.store.Subscribe(func(event domain.GridEvent) {
				if err := writeGrid(cmd, app, svc, event); err != nil {
					svc.logger.Error("could not print session grid", "error", err)
				}
			})
			defer unsubscribe()

			if err := svc.store.Run(ctx); err != nil {
				return fmt.Errorf("watch session grid: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().DurationVar(&timeout, "timeout", 0, "Stop watching after this long (0 watches until interrupted)")

	return cmd
}
