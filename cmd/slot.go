package cmd

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/bnema/barcamp-grid/internal/application"
	"github.com/bnema/barcamp-grid/internal/domain"
	"github.com/spf13/cobra"
)

func newSlotCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "slot",
		Short: "Add, reschedule and delete time slots",
	}

	cmd.AddCommand(
		newSlotAddCmd(app),
		&cobra.Command{
			Use:   "start <slot-id> <HH:MM|RFC3339>",
			Short: "Move the start of the first time slot",
			Args:  cobra.ExactArgs(2),
			RunE: mutate(app, func(cmd *cobra.Command, args []string, svc *services) (domain.GridEvent, error) {
				start, err := parseStartTime(cmd.Context(), svc, domain.TimeSlotID(args[0]), args[1])
				if err != nil {
					return domain.GridEvent{}, err
				}
				return svc.grid.UpdateTimeSlot(cmd.Context(), domain.TimeSlotID(args[0]), application.TimeSlotChanges{StartTime: &start})
			}),
		},
		&cobra.Command{
			Use:   "duration <slot-id> <minutes>",
			Short: "Change the length of a time slot",
			Args:  cobra.ExactArgs(2),
			RunE: mutate(app, func(cmd *cobra.Command, args []string, svc *services) (domain.GridEvent, error) {
				minutes, err := strconv.Atoi(args[1])
				if err != nil {
					return domain.GridEvent{}, fmt.Errorf("invalid duration %q: want whole minutes", args[1])
				}
				return svc.grid.UpdateTimeSlot(cmd.Context(), domain.TimeSlotID(args[0]), application.TimeSlotChanges{DurationMinutes: &minutes})
			}),
		},
		&cobra.Command{
			Use:   "move <slot-id> <index>",
			Short: "Move a time slot to a new position",
			Args:  cobra.ExactArgs(2),
			RunE: mutate(app, func(cmd *cobra.Command, args []string, svc *services) (domain.GridEvent, error) {
				index, err := strconv.Atoi(args[1])
				if err != nil {
					return domain.GridEvent{}, fmt.Errorf("invalid index %q", args[1])
				}
				return svc.grid.MoveTimeSlot(cmd.Context(), domain.TimeSlotID(args[0]), index)
			}),
		},
		&cobra.Command{
			Use:   "delete <slot-id>",
			Short: "Delete a time slot and park its sessions",
			Args:  cobra.ExactArgs(1),
			RunE: mutate(app, func(cmd *cobra.Command, args []string, svc *services) (domain.GridEvent, error) {
				return svc.grid.DeleteTimeSlot(cmd.Context(), domain.TimeSlotID(args[0]))
			}),
		},
		newSlotEventCmd(app),
	)

	return cmd
}

func newSlotAddCmd(app *app) *cobra.Command {
	var kind string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Append a time slot",
		Args:  cobra.NoArgs,
		RunE: mutate(app, func(cmd *cobra.Command, _ []string, svc *services) (domain.GridEvent, error) {
			return svc.grid.AddTimeSlot(cmd.Context(), domain.TimeSlotKind(kind))
		}),
	}

	cmd.Flags().StringVar(&kind, "kind", string(domain.TimeSlotKindSessions), "Time slot type: sessions or common-event")

	return cmd
}

func newSlotEventCmd(app *app) *cobra.Command {
	var summary, icon string

	cmd := &cobra.Command{
		Use:   "event <slot-id>",
		Short: "Edit the summary or icon of a common event",
		Args:  cobra.ExactArgs(1),
		RunE: mutate(app, func(cmd *cobra.Command, args []string, svc *services) (domain.GridEvent, error) {
			var changes application.CommonEventChanges
			if cmd.Flags().Changed("summary") {
				changes.Summary = &summary
			}
			if cmd.Flags().Changed("icon") {
				changes.Icon = &icon
			}
			return svc.grid.UpdateCommonEvent(cmd.Context(), domain.TimeSlotID(args[0]), changes)
		}),
	}

	cmd.Flags().StringVar(&summary, "summary", "", "Summary shown across all tracks")
	cmd.Flags().StringVar(&icon, "icon", "", "Icon of the common event")

	return cmd
}

// parseStartTime accepts RFC 3339 or a local wall clock time on the day the
// slot currently starts.
func parseStartTime(ctx context.Context, svc *services, slotID domain.TimeSlotID, value string) (time.Time, error) {
	if start, err := time.Parse(time.RFC3339, value); err == nil {
		return start, nil
	}

	clock, err := time.ParseInLocation("15:04", value, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid start time %q: want HH:MM or RFC 3339", value)
	}

	event, err := loadGrid(ctx, svc)
	if err != nil {
		return time.Time{}, err
	}

	day := time.Now().In(time.Local)
	if i := event.Content.TimeSlotIndex(slotID); i >= 0 {
		day = event.Content.TimeSlots[i].StartTime.In(time.Local)
	}

	return time.Date(day.Year(), day.Month(), day.Day(), clock.Hour(), clock.Minute(), 0, 0, time.Local), nil
}
