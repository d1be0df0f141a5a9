package grid

import (
	"testing"
	"time"

	"github.com/bnema/barcamp-grid/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleEvent() domain.GridEvent {
	start := time.Date(2026, 10, 17, 10, 0, 0, 0, time.UTC)
	sessions := domain.NewTimeSlot("slot-1", domain.TimeSlotKindSessions, start)
	lunch := domain.NewTimeSlot("slot-2", domain.TimeSlotKindCommonEvent, start)

	return domain.GridEvent{
		EventID: "$grid",
		Sender:  "@alice:example.org",
		Content: domain.SessionGrid{
			Tracks: []domain.Track{
				{ID: "track-1", Name: "Track 1", Icon: "fish"},
				{ID: "track-2", Name: "Track 2", Icon: "frog"},
			},
			TimeSlots:  domain.RecalculateTimeSlots([]domain.TimeSlot{sessions, lunch}),
			Sessions:   []domain.Session{{TopicID: "topic-a", TrackID: "track-2", TimeSlotID: "slot-1"}},
			ParkingLot: []domain.ParkingLotEntry{{TopicID: "topic-b"}},
		},
	}
}

func TestRenderGrid(t *testing.T) {
	output, err := Render(sampleEvent(), RenderOptions{
		Topics: map[domain.TopicID]domain.Topic{
			"topic-a": {Title: "Go generics"},
			"topic-b": {Title: "Matrix bridges", Pinned: true},
		},
		Location: time.UTC,
	})

	require.NoError(t, err)
	assert.Contains(t, output, "Session Grid")
	assert.Contains(t, output, "tracks: 2  time slots: 2  sessions: 1  parked: 1")
	assert.Contains(t, output, "last change by @alice:example.org")
	assert.Contains(t, output, "Track 1")
	assert.Contains(t, output, "Track 2")
	assert.Contains(t, output, "10:00-11:00")
	assert.Contains(t, output, "11:00-12:00")
	assert.Contains(t, output, "Go generics")
	assert.Contains(t, output, "Break (coffee)")
	assert.Contains(t, output, "Parking lot")
	assert.Contains(t, output, "Matrix bridges")
	assert.NotContains(t, output, "slot-1")
}

func TestRenderGridShowsIDsAndUnknownTopics(t *testing.T) {
	output, err := Render(sampleEvent(), RenderOptions{ShowIDs: true, Location: time.UTC})

	require.NoError(t, err)
	assert.Contains(t, output, "track-1")
	assert.Contains(t, output, "slot-2")
	assert.Contains(t, output, "topic-a")
	assert.Contains(t, output, "topic-b")
}

func TestRenderEmptyGrid(t *testing.T) {
	output, err := Render(domain.GridEvent{}, RenderOptions{})

	require.NoError(t, err)
	assert.Contains(t, output, "No time slots.")
	assert.Contains(t, output, "No parked topics.")
}

func TestTopicLabelTruncatesLongTitles(t *testing.T) {
	label := topicLabel("t", RenderOptions{Topics: map[domain.TopicID]domain.Topic{
		"t": {Title: "An unreasonably long session title that will not fit"},
	}}, newStyles(), 10)

	assert.Contains(t, label, "…")
	assert.NotContains(t, label, "not fit")
}
