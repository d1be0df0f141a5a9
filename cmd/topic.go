package cmd

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/bnema/barcamp-grid/internal/application"
	"github.com/bnema/barcamp-grid/internal/domain"
	"github.com/spf13/cobra"
)

func newTopicCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "topic",
		Short: "Submit, schedule and edit topics",
	}

	cmd.AddCommand(
		newTopicSubmitCmd(app),
		newTopicQueueCmd(app),
		&cobra.Command{
			Use:   "next",
			Short: "Take the oldest pending submission into the parking lot",
			Args:  cobra.NoArgs,
			RunE: mutate(app, func(cmd *cobra.Command, _ []string, svc *services) (domain.GridEvent, error) {
				var event domain.GridEvent
				err := runWithSpinner(cmd.Context(), cmd.ErrOrStderr(), "Selecting next topic...", func(ctx context.Context) error {
					var err error
					event, err = svc.grid.SelectNextTopic(ctx)
					return err
				})
				return event, err
			}),
		},
		newTopicMoveCmd(app),
		newTopicParkCmd(app),
		&cobra.Command{
			Use:   "delete <topic-id>",
			Short: "Remove a topic from the grid and the parking lot",
			Args:  cobra.ExactArgs(1),
			RunE: mutate(app, func(cmd *cobra.Command, args []string, svc *services) (domain.GridEvent, error) {
				return svc.grid.DeleteTopic(cmd.Context(), domain.TopicID(args[0]))
			}),
		},
		newTopicPinCmd(app),
		newTopicEditCmd(app),
		newTopicShowCmd(app),
		newTopicLinkCmd(app),
	)

	return cmd
}

func newTopicSubmitCmd(app *app) *cobra.Command {
	var title, description string

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Submit a topic to the planning room",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := openServices(cmd, app)
			if err != nil {
				return err
			}

			submission, err := svc.submissions.Submit(cmd.Context(), application.SubmitTopicCommand{
				Title:       title,
				Description: description,
			})
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Submitted %q as %s\n", submission.Title, submission.EventID)
			return err
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Topic title")
	cmd.Flags().StringVar(&description, "description", "", "Topic description")

	return cmd
}

func newTopicQueueCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "queue",
		Short: "List submissions that were not taken yet, oldest first",
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
			submissions, err := svc.submissions.ListAll(cmd.Context())
			if err != nil {
				return err
			}

			pending := domain.AvailableSubmissions(submissions, event.Content.ConsumedTopicSubmissions)
			out := cmd.OutOrStdout()
			if len(pending) == 0 {
				_, err = fmt.Fprintln(out, "No pending topic submissions.")
				return err
			}
			for i, submission := range pending {
				if _, err := fmt.Fprintf(out, "%2d. %s (%s, %s)\n", i, submission.Title, submission.Sender, submission.EventID); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func newTopicMoveCmd(app *app) *cobra.Command {
	var trackID, slotID string

	cmd := &cobra.Command{
		Use:   "move <topic-id>",
		Short: "Place a topic in a session",
		Args:  cobra.ExactArgs(1),
		RunE: mutate(app, func(cmd *cobra.Command, args []string, svc *services) (domain.GridEvent, error) {
			return svc.grid.MoveTopicToSession(cmd.Context(), application.MoveTopicToSessionCommand{
				TopicID:    domain.TopicID(args[0]),
				TrackID:    domain.TrackID(trackID),
				TimeSlotID: domain.TimeSlotID(slotID),
			})
		}),
	}

	cmd.Flags().StringVar(&trackID, "track", "", "Target track id")
	cmd.Flags().StringVar(&slotID, "slot", "", "Target time slot id")
	_ = cmd.MarkFlagRequired("track")
	_ = cmd.MarkFlagRequired("slot")

	return cmd
}

func newTopicParkCmd(app *app) *cobra.Command {
	var index int

	cmd := &cobra.Command{
		Use:   "park <topic-id>",
		Short: "Move a topic into the parking lot",
		Args:  cobra.ExactArgs(1),
		RunE: mutate(app, func(cmd *cobra.Command, args []string, svc *services) (domain.GridEvent, error) {
			return svc.grid.MoveTopicToParkingArea(cmd.Context(), application.MoveTopicToParkingAreaCommand{
				TopicID: domain.TopicID(args[0]),
				ToIndex: index,
			})
		}),
	}

	cmd.Flags().IntVar(&index, "index", 0, "Position in the parking lot")

	return cmd
}

func newTopicPinCmd(app *app) *cobra.Command {
	var unpin bool

	cmd := &cobra.Command{
		Use:   "pin <topic-id>",
		Short: "Pin a topic to its session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pinned := !unpin
			return updateTopic(cmd, app, domain.TopicID(args[0]), domain.TopicChanges{Pinned: &pinned})
		},
	}

	cmd.Flags().BoolVar(&unpin, "unpin", false, "Remove the pin instead")

	return cmd
}

func newTopicEditCmd(app *app) *cobra.Command {
	var title, description string

	cmd := &cobra.Command{
		Use:   "edit <topic-id>",
		Short: "Change the title or description of a topic",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var changes domain.TopicChanges
			if cmd.Flags().Changed("title") {
				changes.Title = &title
			}
			if cmd.Flags().Changed("description") {
				changes.Description = &description
			}
			if changes.Title == nil && changes.Description == nil {
				return fmt.Errorf("nothing to change: set --title or --description")
			}
			return updateTopic(cmd, app, domain.TopicID(args[0]), changes)
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVar(&description, "description", "", "New description")

	return cmd
}

func newTopicShowCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <topic-id>",
		Short: "Print a topic",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := openServices(cmd, app)
			if err != nil {
				return err
			}

			topic, err := svc.topics.Get(cmd.Context(), domain.TopicID(args[0]))
			if err != nil {
				return err
			}
			return writeTopic(cmd, topic)
		},
	}
}

func newTopicLinkCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "link <topic-id> <room-id>",
		Short: "Use a room of the space as the session room of a topic",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := openServices(cmd, app)
			if err != nil {
				return err
			}

			room, err := svc.rooms.Assign(cmd.Context(), domain.TopicID(args[0]), args[1])
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Linked %s to topic %s\n", room.RoomID, room.TopicID)
			return err
		},
	}
}

func updateTopic(cmd *cobra.Command, app *app, id domain.TopicID, changes domain.TopicChanges) error {
	svc, err := openServices(cmd, app)
	if err != nil {
		return err
	}

	topic, err := svc.topics.Update(cmd.Context(), id, changes)
	if err != nil {
		return err
	}
	return writeTopic(cmd, topic)
}

func writeTopic(cmd *cobra.Command, topic domain.TopicEvent) error {
	authors := make([]string, 0, len(topic.Content.Authors))
	for _, author := range topic.Content.Authors {
		authors = append(authors, author.ID)
	}

	lines := []string{
		topic.Content.Title,
		"id: " + string(topic.TopicID),
		"authors: " + strings.Join(authors, ", "),
		"pinned: " + strconv.FormatBool(topic.Content.Pinned),
	}
	if topic.Content.Description != "" {
		lines = append(lines, "", topic.Content.Description)
	}

	_, err := fmt.Fprintln(cmd.OutOrStdout(), strings.Join(lines, "\n"))
	return err
}
