package cmd

import (
	"github.com/bnema/barcamp-grid/internal/application"
	"github.com/bnema/barcamp-grid/internal/domain"
	"github.com/spf13/cobra"
)

func newTrackCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "track",
		Short: "Add, rename and delete tracks",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "add",
			Short: "Append a track with a random icon",
			Args:  cobra.NoArgs,
			RunE: mutate(app, func(cmd *cobra.Command, _ []string, svc *services) (domain.GridEvent, error) {
				return svc.grid.AddTrack(cmd.Context())
			}),
		},
		&cobra.Command{
			Use:   "rename <track-id> <name>",
			Short: "Rename a track",
			Args:  cobra.ExactArgs(2),
			RunE: mutate(app, func(cmd *cobra.Command, args []string, svc *services) (domain.GridEvent, error) {
				return svc.grid.UpdateTrack(cmd.Context(), domain.TrackID(args[0]), application.TrackChanges{Name: &args[1]})
			}),
		},
		&cobra.Command{
			Use:   "icon <track-id> <icon>",
			Short: "Change the icon of a track",
			Args:  cobra.ExactArgs(2),
			RunE: mutate(app, func(cmd *cobra.Command, args []string, svc *services) (domain.GridEvent, error) {
				return svc.grid.UpdateTrack(cmd.Context(), domain.TrackID(args[0]), application.TrackChanges{Icon: &args[1]})
			}),
		},
		&cobra.Command{
			Use:   "delete <track-id>",
			Short: "Delete a track and park its sessions",
			Args:  cobra.ExactArgs(1),
			RunE: mutate(app, func(cmd *cobra.Command, args []string, svc *services) (domain.GridEvent, error) {
				return svc.grid.DeleteTrack(cmd.Context(), domain.TrackID(args[0]))
			}),
		},
	)

	return cmd
}
