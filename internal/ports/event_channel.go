package ports

import (
	"context"
	"encoding/json"
	"time"
)

// Event is a persisted event of the remote event log. StateKey is nil for
// room (non-state) events.
type Event struct {
	Type           string
	EventID        string
	RoomID         string
	Sender         string
	StateKey       *string
	OriginServerTS time.Time
	Content        json.RawMessage
}

func (e Event) IsState() bool {
	return e.StateKey != nil
}

func (e Event) StateKeyValue() string {
	if e.StateKey == nil {
		return ""
	}
	return *e.StateKey
}

// RelationsPage is one page of events related to a parent event.
type RelationsPage struct {
	Events    []Event
	NextToken string
}

type RelationsQuery struct {
	RelationType string
	EventType    string
	Limit        int
	From         string
}

// EventChannel is the remote event log the grid and its topics are stored in.
// Writes to the same (room, type, state key) are last-writer-wins.
type EventChannel interface {
	// ReadStateEvents returns the current state events of eventType in roomID,
	// one per state key.
	ReadStateEvents(ctx context.Context, roomID, eventType string) ([]Event, error)
	SendStateEvent(ctx context.Context, roomID, eventType, stateKey string, content json.RawMessage) (Event, error)
	SendRoomEvent(ctx context.Context, roomID, eventType string, content json.RawMessage) (Event, error)
	// ReadRoomEvents returns the room events of eventType, oldest first.
	ReadRoomEvents(ctx context.Context, roomID, eventType string) ([]Event, error)
	ReadRelations(ctx context.Context, roomID, eventID string, query RelationsQuery) (RelationsPage, error)
	// Subscribe delivers events of eventType written after the call, in
	// arrival order, until ctx is done. The channel is closed afterwards.
	Subscribe(ctx context.Context, eventType string) (<-chan Event, error)
}
