package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRoomCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "room",
		Short: "Find and prepare the rooms of the space",
	}

	cmd.AddCommand(newRoomListCmd(app), newRoomSuggestCmd(app))

	return cmd
}

func newRoomListCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List rooms of the space that can be linked to a topic",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := openServices(cmd, app)
			if err != nil {
				return err
			}

			rooms, err := svc.rooms.Unassigned(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(rooms) == 0 {
				_, err = fmt.Fprintln(out, "No unassigned rooms.")
				return err
			}
			for _, room := range rooms {
				if _, err := fmt.Fprintf(out, "%s (%s)\n", room.Name, room.RoomID); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func newRoomSuggestCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "suggest [room-id]",
		Short: "Mark a room, the planning room by default, as suggested in the space",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := openServices(cmd, app)
			if err != nil {
				return err
			}

			roomID := svc.locator.CurrentRoomID()
			if len(args) == 1 {
				roomID = args[0]
			}

			changed, err := svc.rooms.MarkSuggested(cmd.Context(), roomID)
			if err != nil {
				return err
			}

			message := "Marked %s as suggested\n"
			if !changed {
				message = "%s is already suggested\n"
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), message, roomID)
			return err
		},
	}
}
