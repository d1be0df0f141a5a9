package matrix

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/bnema/barcamp-grid/internal/ports"
	"github.com/oklog/ulid/v2"
)

const messagesPageSize = 100

// Session is an authenticated client for one user. It implements
// ports.EventChannel.
type Session struct {
	client      *Client
	userID      string
	accessToken string

	entropyMu sync.Mutex
	entropy   *ulid.MonotonicEntropy
}

var _ ports.EventChannel = (*Session)(nil)

func (s *Session) UserID() string {
	return s.userID
}

type wireEvent struct {
	EventID        string          `json:"event_id"`
	Type           string          `json:"type"`
	Sender         string          `json:"sender"`
	OriginServerTS int64           `json:"origin_server_ts"`
	Content        json.RawMessage `json:"content"`
	RoomID         string          `json:"room_id,omitempty"`
	StateKey       *string         `json:"state_key,omitempty"`
}

func (e wireEvent) toPort(roomID string) ports.Event {
	if e.RoomID != "" {
		roomID = e.RoomID
	}
	return ports.Event{
		Type:           e.Type,
		EventID:        e.EventID,
		RoomID:         roomID,
		Sender:         e.Sender,
		StateKey:       e.StateKey,
		OriginServerTS: time.UnixMilli(e.OriginServerTS),
		Content:        e.Content,
	}
}

type sendEventResponse struct {
	EventID string `json:"event_id"`
}

type whoAmIResponse struct {
	UserID   string `json:"user_id"`
	DeviceID string `json:"device_id"`
}

func (s *Session) WhoAmI(ctx context.Context) (string, error) {
	body, err := s.client.doRequest(ctx, http.MethodGet, "/_matrix/client/v3/account/whoami", s.accessToken, nil, nil)
	if err != nil {
		return "", fmt.Errorf("matrix: whoami failed: %w", err)
	}

	var response whoAmIResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return "", fmt.Errorf("matrix: parse whoami response: %w", err)
	}
	return response.UserID, nil
}

func (s *Session) ReadStateEvents(ctx context.Context, roomID, eventType string) ([]ports.Event, error) {
	path := fmt.Sprintf("/_matrix/client/v3/rooms/%s/state", url.PathEscape(roomID))

	body, err := s.client.doRequest(ctx, http.MethodGet, path, s.accessToken, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("matrix: read state of %s: %w", roomID, err)
	}

	var state []wireEvent
	if err := json.Unmarshal(body, &state); err != nil {
		return nil, fmt.Errorf("matrix: parse room state: %w", err)
	}

	var events []ports.Event
	for _, event := range state {
		if event.Type == eventType && event.StateKey != nil {
			events = append(events, event.toPort(roomID))
		}
	}
	return events, nil
}

func (s *Session) SendStateEvent(ctx context.Context, roomID, eventType, stateKey string, content json.RawMessage) (ports.Event, error) {
	path := fmt.Sprintf("/_matrix/client/v3/rooms/%s/state/%s/%s",
		url.PathEscape(roomID),
		url.PathEscape(eventType),
		url.PathEscape(stateKey),
	)

	eventID, err := s.send(ctx, path, content)
	if err != nil {
		return ports.Event{}, fmt.Errorf("matrix: send state event %s to %s: %w", eventType, roomID, err)
	}

	return s.written(ctx, roomID, eventID, ports.Event{
		Type:     eventType,
		StateKey: &stateKey,
		Content:  content,
	}), nil
}

func (s *Session) SendRoomEvent(ctx context.Context, roomID, eventType string, content json.RawMessage) (ports.Event, error) {
	path := fmt.Sprintf("/_matrix/client/v3/rooms/%s/send/%s/%s",
		url.PathEscape(roomID),
		url.PathEscape(eventType),
		url.PathEscape(s.nextTransactionID()),
	)

	eventID, err := s.send(ctx, path, content)
	if err != nil {
		return ports.Event{}, fmt.Errorf("matrix: send event %s to %s: %w", eventType, roomID, err)
	}

	return s.written(ctx, roomID, eventID, ports.Event{Type: eventType, Content: content}), nil
}

func (s *Session) send(ctx context.Context, path string, content json.RawMessage) (string, error) {
	body, err := s.client.doRequest(ctx, http.MethodPut, path, s.accessToken, content, nil)
	if err != nil {
		return "", err
	}

	var response sendEventResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return "", fmt.Errorf("parse send response: %w", err)
	}
	return response.EventID, nil
}

// written fetches the persisted event to pick up server assigned metadata.
// The locally known fields are used when the fetch fails.
func (s *Session) written(ctx context.Context, roomID, eventID string, local ports.Event) ports.Event {
	local.EventID = eventID
	local.RoomID = roomID
	local.Sender = s.userID
	local.OriginServerTS = time.Now()

	path := fmt.Sprintf("/_matrix/client/v3/rooms/%s/event/%s", url.PathEscape(roomID), url.PathEscape(eventID))
	body, err := s.client.doRequest(ctx, http.MethodGet, path, s.accessToken, nil, nil)
	if err != nil {
		s.client.logger.Debug("could not fetch written event", "event_id", eventID, "error", err)
		return local
	}

	var event wireEvent
	if err := json.Unmarshal(body, &event); err != nil || event.EventID != eventID {
		return local
	}
	return event.toPort(roomID)
}

type messagesResponse struct {
	Start string      `json:"start"`
	End   string      `json:"end"`
	Chunk []wireEvent `json:"chunk"`
}

// ReadRoomEvents pages forward through the room history.
func (s *Session) ReadRoomEvents(ctx context.Context, roomID, eventType string) ([]ports.Event, error) {
	path := fmt.Sprintf("/_matrix/client/v3/rooms/%s/messages", url.PathEscape(roomID))
	filter, err := json.Marshal(map[string]any{"types": []string{eventType}})
	if err != nil {
		return nil, fmt.Errorf("matrix: encode messages filter: %w", err)
	}

	var events []ports.Event
	from := ""
	for {
		query := url.Values{}
		query.Set("dir", "f")
		query.Set("limit", strconv.Itoa(messagesPageSize))
		query.Set("filter", string(filter))
		if from != "" {
			query.Set("from", from)
		}

		body, err := s.client.doRequest(ctx, http.MethodGet, path, s.accessToken, nil, query)
		if err != nil {
			return nil, fmt.Errorf("matrix: read messages of %s: %w", roomID, err)
		}

		var page messagesResponse
		if err := json.Unmarshal(body, &page); err != nil {
			return nil, fmt.Errorf("matrix: parse messages response: %w", err)
		}
		for _, event := range page.Chunk {
			if event.Type == eventType && event.StateKey == nil {
				events = append(events, event.toPort(roomID))
			}
		}

		if page.End == "" || len(page.Chunk) == 0 || page.End == from {
			return events, nil
		}
		from = page.End
	}
}

type relationsResponse struct {
	Chunk     []wireEvent `json:"chunk"`
	NextBatch string      `json:"next_batch"`
}

func (s *Session) ReadRelations(ctx context.Context, roomID, eventID string, query ports.RelationsQuery) (ports.RelationsPage, error) {
	path := fmt.Sprintf("/_matrix/client/v1/rooms/%s/relations/%s", url.PathEscape(roomID), url.PathEscape(eventID))
	if query.RelationType != "" {
		path += "/" + url.PathEscape(query.RelationType)
		if query.EventType != "" {
			path += "/" + url.PathEscape(query.EventType)
		}
	}

	values := url.Values{}
	if query.Limit > 0 {
		values.Set("limit", strconv.Itoa(query.Limit))
	}
	if query.From != "" {
		values.Set("from", query.From)
	}

	body, err := s.client.doRequest(ctx, http.MethodGet, path, s.accessToken, nil, values)
	if err != nil {
		return ports.RelationsPage{}, fmt.Errorf("matrix: read relations of %s: %w", eventID, err)
	}

	var response relationsResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return ports.RelationsPage{}, fmt.Errorf("matrix: parse relations response: %w", err)
	}

	page := ports.RelationsPage{NextToken: response.NextBatch}
	for _, event := range response.Chunk {
		page.Events = append(page.Events, event.toPort(roomID))
	}
	return page, nil
}

func (s *Session) nextTransactionID() string {
	s.entropyMu.Lock()
	defer s.entropyMu.Unlock()

	if s.entropy == nil {
		s.entropy = ulid.Monotonic(rand.Reader, 0)
	}
	return "bcg" + ulid.MustNew(ulid.Now(), s.entropy).String()
}
