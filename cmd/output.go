package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	gridrender "github.com/bnema/barcamp-grid/internal/adapters/render/grid"
	"github.com/bnema/barcamp-grid/internal/domain"
	"github.com/bnema/barcamp-grid/internal/events"
	"github.com/spf13/cobra"
)

// openServices opens the backend for cmd.
func openServices(cmd *cobra.Command, app *app) (*services, error) {
	return app.services(cmd.Context(), cmd.ErrOrStderr())
}

// loadGrid returns the current grid. A missing grid is reported like the
// mutation endpoints report it.
func loadGrid(ctx context.Context, svc *services) (domain.GridEvent, error) {
	event, err := svc.store.Get(ctx)
	if errors.Is(err, domain.ErrNoSessionGrid) {
		return domain.GridEvent{}, &domain.LoadError{Message: "No session grid found", Err: err}
	}
	return event, err
}

// writeGrid prints event with topic titles resolved. A failing topic lookup
// only degrades the output to topic ids.
func writeGrid(cmd *cobra.Command, app *app, svc *services, event domain.GridEvent) error {
	topics := map[domain.TopicID]domain.Topic{}
	list, err := svc.topics.List(cmd.Context())
	if err != nil {
		svc.logger.Warn("could not resolve topic titles", "error", err)
	}
	for _, topic := range list {
		topics[topic.TopicID] = topic.Content
	}

	rendered, err := app.renderGrid(event, gridrender.RenderOptions{
		Topics:   topics,
		Location: time.Local,
		ShowIDs:  app.cfg.GetBool(keyShowIDs),
	})
	if err != nil {
		return fmt.Errorf("render session grid: %w", err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return err
}

// writeGridJSON prints the grid in its event content format.
func writeGridJSON(cmd *cobra.Command, event domain.GridEvent) error {
	content, err := events.EncodeSessionGrid(event.Content)
	if err != nil {
		return err
	}

	payload := struct {
		EventID  string          `json:"event_id"`
		RoomID   string          `json:"room_id"`
		StateKey string          `json:"state_key"`
		Sender   string          `json:"sender"`
		Content  json.RawMessage `json:"content"`
	}{
		EventID:  event.EventID,
		RoomID:   event.RoomID,
		StateKey: event.StateKey,
		Sender:   event.Sender,
		Content:  content,
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}

// mutate runs one grid mutation and prints the resulting grid.
func mutate(app *app, run func(cmd *cobra.Command, args []string, svc *services) (domain.GridEvent, error)) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		svc, err := openServices(cmd, app)
		if err != nil {
			return err
		}

		event, err := run(cmd, args, svc)
		if err != nil {
			return err
		}
		return writeGrid(cmd, app, svc, event)
	}
}
