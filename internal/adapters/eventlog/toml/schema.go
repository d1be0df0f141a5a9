package toml

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/bnema/barcamp-grid/internal/ports"
)

const currentSchemaVersion = 1

type fileSchema struct {
	Version int           `toml:"version"`
	Events  []eventSchema `toml:"events"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}

func (s fileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported event log schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}

// eventSchema stores one event. Content is kept as JSON text so that the
// log holds exactly what a homeserver would.
type eventSchema struct {
	ID             string  `toml:"id"`
	Type           string  `toml:"type"`
	RoomID         string  `toml:"room_id"`
	Sender         string  `toml:"sender"`
	StateKey       *string `toml:"state_key,omitempty"`
	OriginServerTS string  `toml:"origin_server_ts"`
	RelType        string  `toml:"rel_type,omitempty"`
	RelatesTo      string  `toml:"relates_to,omitempty"`
	Content        string  `toml:"content"`
}

type relationSchema struct {
	RelatesTo *struct {
		RelType string `json:"rel_type"`
		EventID string `json:"event_id"`
	} `json:"m.relates_to"`
}

func toSchema(event ports.Event) eventSchema {
	schema := eventSchema{
		ID:             event.EventID,
		Type:           event.Type,
		RoomID:         event.RoomID,
		Sender:         event.Sender,
		StateKey:       event.StateKey,
		OriginServerTS: event.OriginServerTS.UTC().Format(time.RFC3339Nano),
		Content:        string(event.Content),
	}

	var relation relationSchema
	if err := json.Unmarshal(event.Content, &relation); err == nil && relation.RelatesTo != nil {
		schema.RelType = relation.RelatesTo.RelType
		schema.RelatesTo = relation.RelatesTo.EventID
	}

	return schema
}

func fromSchema(schema eventSchema) ports.Event {
	return ports.Event{
		Type:           schema.Type,
		EventID:        schema.ID,
		RoomID:         schema.RoomID,
		Sender:         schema.Sender,
		StateKey:       schema.StateKey,
		OriginServerTS: parseTime(schema.OriginServerTS),
		Content:        json.RawMessage(schema.Content),
	}
}

func parseTime(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}

	parsed, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}
	}

	return parsed
}
