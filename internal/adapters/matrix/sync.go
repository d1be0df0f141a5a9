package matrix

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/bnema/barcamp-grid/internal/ports"
)

const (
	// maxSyncRetries is the number of consecutive /sync failures tolerated
	// before a subscription gives up.
	maxSyncRetries = 5
	// longPollTimeout is the server side hold time of /sync in milliseconds.
	longPollTimeout = 30000
	// retryTimeout is the hold time used right after a failed /sync.
	retryTimeout = 1000
	// streamBuffer lets a /sync batch be queued so consumers can drain it at once.
	streamBuffer = 64
)

type syncResponse struct {
	NextBatch string `json:"next_batch"`
	Rooms     struct {
		Join map[string]joinedRoom `json:"join"`
	} `json:"rooms"`
}

type joinedRoom struct {
	State struct {
		Events []wireEvent `json:"events"`
	} `json:"state"`
	Timeline struct {
		Events []wireEvent `json:"events"`
	} `json:"timeline"`
}

func syncFilter(eventType string) string {
	types := []string{eventType}
	filter := map[string]any{
		"room": map[string]any{
			"timeline": map[string]any{"types": types},
			"state":    map[string]any{"types": types},
		},
		"presence":     map[string]any{"types": []string{}},
		"account_data": map[string]any{"types": []string{}},
	}
	data, _ := json.Marshal(filter)
	return string(data)
}

func (s *Session) sync(ctx context.Context, since, filter string, timeout int) (syncResponse, error) {
	query := url.Values{}
	if since != "" {
		query.Set("since", since)
	}
	query.Set("timeout", strconv.Itoa(timeout))
	query.Set("filter", filter)

	body, err := s.client.doRequest(ctx, http.MethodGet, "/_matrix/client/v3/sync", s.accessToken, nil, query)
	if err != nil {
		return syncResponse{}, fmt.Errorf("matrix: sync failed: %w", err)
	}

	var response syncResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return syncResponse{}, fmt.Errorf("matrix: parse sync response: %w", err)
	}
	return response, nil
}

// Subscribe long-polls /sync and delivers events of eventType from every
// joined room. Only events after the call are delivered. The stream closes
// when ctx is done or /sync keeps failing.
func (s *Session) Subscribe(ctx context.Context, eventType string) (<-chan ports.Event, error) {
	filter := syncFilter(eventType)
	initial, err := s.sync(ctx, "", filter, 0)
	if err != nil {
		return nil, fmt.Errorf("matrix: initial sync: %w", err)
	}

	stream := make(chan ports.Event, streamBuffer)
	go func() {
		defer close(stream)

		since := initial.NextBatch
		retries := 0
		for {
			timeout := longPollTimeout
			if retries > 0 {
				timeout = retryTimeout
			}

			response, err := s.sync(ctx, since, filter, timeout)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				retries++
				s.client.CloseIdleConnections()
				if retries > maxSyncRetries {
					s.client.logger.Error("giving up on sync", "attempts", retries, "error", err)
					return
				}
				s.client.logger.Debug("sync error, retrying", "attempt", retries, "max_attempts", maxSyncRetries, "error", err)

				select {
				case <-ctx.Done():
					return
				case <-time.After(time.Duration(retries) * 100 * time.Millisecond):
				}
				continue
			}
			retries = 0
			since = response.NextBatch

			for roomID, room := range response.Rooms.Join {
				batch := append(room.State.Events, room.Timeline.Events...)
				for _, event := range batch {
					if event.Type != eventType {
						continue
					}
					select {
					case stream <- event.toPort(roomID):
					case <-ctx.Done():
						return
					}
				}
			}
		}
	}()

	return stream, nil
}
