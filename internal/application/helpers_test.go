package application

import (
	"context"
	"encoding/json"
	"io"
	"path/filepath"
	"sync"
	"testing"
	"time"

	eventlog "github.com/bnema/barcamp-grid/internal/adapters/eventlog/toml"
	"github.com/bnema/barcamp-grid/internal/domain"
	"github.com/bnema/barcamp-grid/internal/events"
	"github.com/bnema/barcamp-grid/internal/ports"
	"github.com/charmbracelet/log"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	testSpaceID = "!space:example.org"
	testRoomID  = "!lobby:example.org"
	testSender  = "@alice:example.org"
)

func mockAnyContext() any {
	return mock.Anything
}

func discardLogger() *log.Logger {
	return log.New(io.Discard)
}

// flakyChannel fails state writes on demand and counts them.
type flakyChannel struct {
	ports.EventChannel

	mu           sync.Mutex
	sendStateErr error
	stateWrites  int
}

func (c *flakyChannel) SendStateEvent(ctx context.Context, roomID, eventType, stateKey string, content json.RawMessage) (ports.Event, error) {
	c.mu.Lock()
	c.stateWrites++
	err := c.sendStateErr
	c.mu.Unlock()

	if err != nil {
		return ports.Event{}, err
	}
	return c.EventChannel.SendStateEvent(ctx, roomID, eventType, stateKey, content)
}

func (c *flakyChannel) failStateWrites(err error) {
	c.mu.Lock()
	c.sendStateErr = err
	c.mu.Unlock()
}

func (c *flakyChannel) writes() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stateWrites
}

type testEnv struct {
	ctx     context.Context
	path    string
	log     *eventlog.Log
	channel *flakyChannel
	locator *Locator
	store   *GridStore
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	path := filepath.Join(t.TempDir(), "events.toml")
	return newTestEnvAt(t, path, testRoomID)
}

func newTestEnvAt(t *testing.T, path, roomID string) *testEnv {
	t.Helper()

	config := viper.New()
	config.Set("local.path", path)
	eventLog, err := eventlog.NewLog(config, eventlog.WithSender(testSender), eventlog.WithPollInterval(10*time.Millisecond))
	require.NoError(t, err)

	channel := &flakyChannel{EventChannel: eventLog}
	locator := NewLocator(channel, roomID, testSpaceID)

	return &testEnv{
		ctx:     context.Background(),
		path:    path,
		log:     eventLog,
		channel: channel,
		locator: locator,
		store:   NewGridStore(channel, locator, discardLogger()),
	}
}

// seedGrid writes grid directly to the log, bypassing the store.
func (e *testEnv) seedGrid(t *testing.T, grid domain.SessionGrid) ports.Event {
	t.Helper()

	content, err := events.EncodeSessionGrid(grid)
	require.NoError(t, err)

	written, err := e.log.SendStateEvent(e.ctx, testSpaceID, events.TypeSessionGrid, testRoomID, content)
	require.NoError(t, err)
	return written
}

func at(hour, minute int) time.Time {
	return time.Date(2026, 5, 1, hour, minute, 0, 0, time.UTC)
}

func sessionsSlot(id domain.TimeSlotID, start, end time.Time) domain.TimeSlot {
	return domain.TimeSlot{ID: id, StartTime: start, EndTime: end, Variant: domain.SessionsSlot{}}
}

func sampleGrid() domain.SessionGrid {
	return domain.SessionGrid{
		Tracks: []domain.Track{
			{ID: "track-a", Name: "Track 1", Icon: "dog"},
			{ID: "track-b", Name: "Track 2", Icon: "cat"},
		},
		TimeSlots: []domain.TimeSlot{
			sessionsSlot("slot-0", at(10, 0), at(11, 0)),
			sessionsSlot("slot-1", at(11, 0), at(12, 0)),
		},
		Sessions:                 []domain.Session{{TopicID: "topic-x", TrackID: "track-a", TimeSlotID: "slot-0"}},
		ParkingLot:               []domain.ParkingLotEntry{{TopicID: "topic-y"}},
		ConsumedTopicSubmissions: []string{},
		TopicStartEventID:        "$start",
	}
}

func slotTimes(slots []domain.TimeSlot) []string {
	out := make([]string, 0, len(slots))
	for _, slot := range slots {
		out = append(out, string(slot.ID)+" "+slot.StartTime.UTC().Format("15:04")+"-"+slot.EndTime.UTC().Format("15:04"))
	}
	return out
}
