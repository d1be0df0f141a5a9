package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(t *testing.T, clock string) time.Time {
	t.Helper()

	parsed, err := time.Parse(time.RFC3339, "2026-02-14T"+clock+"Z")
	require.NoError(t, err)
	return parsed
}

func slot(t *testing.T, id, start, end string) TimeSlot {
	t.Helper()

	return TimeSlot{ID: TimeSlotID(id), StartTime: at(t, start), EndTime: at(t, end), Variant: SessionsSlot{}}
}

func TestRecalculateTimeSlotsClosesGaps(t *testing.T) {
	t.Parallel()

	input := []TimeSlot{
		slot(t, "ts1", "09:00:00", "10:00:00"),
		slot(t, "ts3", "10:30:00", "11:30:00"),
		slot(t, "ts5", "11:30:00", "12:10:00"),
	}

	got := RecalculateTimeSlots(input)

	assert.Equal(t, []TimeSlot{
		slot(t, "ts1", "09:00:00", "10:00:00"),
		slot(t, "ts3", "10:00:00", "11:00:00"),
		slot(t, "ts5", "11:00:00", "11:40:00"),
	}, got)
	assert.Equal(t, at(t, "10:30:00"), input[1].StartTime, "input must not be modified")
}

func TestRecalculateTimeSlotsForcedStart(t *testing.T) {
	t.Parallel()

	input := []TimeSlot{
		slot(t, "ts1", "09:00:00", "10:00:00"),
		slot(t, "ts2", "10:00:00", "10:15:00"),
	}

	got := RecalculateTimeSlots(input, WithForcedStart(at(t, "13:00:00")))

	assert.Equal(t, []TimeSlot{
		slot(t, "ts1", "13:00:00", "14:00:00"),
		slot(t, "ts2", "14:00:00", "14:15:00"),
	}, got)
}

func TestRecalculateTimeSlotsEmpty(t *testing.T) {
	t.Parallel()

	assert.Empty(t, RecalculateTimeSlots(nil))
	assert.Empty(t, RecalculateTimeSlots(nil, WithForcedStart(time.Now())))
}

func TestRecalculateTimeSlotsPreservesDurationsAndContiguity(t *testing.T) {
	t.Parallel()

	input := []TimeSlot{
		slot(t, "a", "08:00:00", "08:45:00"),
		slot(t, "b", "07:00:00", "09:00:00"),
		slot(t, "c", "12:00:00", "12:05:00"),
		slot(t, "d", "12:05:00", "13:05:00"),
	}

	starts := []time.Time{at(t, "00:00:00"), at(t, "06:30:00"), at(t, "23:59:59")}
	for _, start := range starts {
		got := RecalculateTimeSlots(input, WithForcedStart(start))

		require.Len(t, got, len(input))
		assert.Equal(t, start, got[0].StartTime)
		for i := range got {
			assert.Equal(t, input[i].ID, got[i].ID)
			assert.Equal(t, input[i].Duration(), got[i].Duration())
			if i+1 < len(got) {
				assert.Equal(t, got[i].EndTime, got[i+1].StartTime)
			}
		}
	}
}

func TestRecalculateTimeSlotsKeepsVariant(t *testing.T) {
	t.Parallel()

	breakSlot := slot(t, "b", "11:00:00", "11:30:00")
	breakSlot.Variant = CommonEventSlot{Summary: "Lunch", Icon: "pizza-slice"}

	got := RecalculateTimeSlots([]TimeSlot{slot(t, "a", "09:00:00", "10:00:00"), breakSlot})

	event, ok := got[1].CommonEvent()
	require.True(t, ok)
	assert.Equal(t, "Lunch", event.Summary)
	assert.Equal(t, at(t, "10:00:00"), got[1].StartTime)
}

func TestNextGridStart(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		now  string
		want string
	}{
		{name: "before ten starts today", now: "2026-02-14T08:12:40Z", want: "2026-02-14T10:00:00Z"},
		{name: "exactly ten starts now", now: "2026-02-14T10:00:00Z", want: "2026-02-14T10:00:00Z"},
		{name: "after ten starts tomorrow", now: "2026-02-14T10:00:01Z", want: "2026-02-15T10:00:00Z"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			now, err := time.Parse(time.RFC3339, tt.now)
			require.NoError(t, err)
			want, err := time.Parse(time.RFC3339, tt.want)
			require.NoError(t, err)

			assert.Equal(t, want, NextGridStart(now))
		})
	}
}

func TestNewTimeSlotDefaults(t *testing.T) {
	t.Parallel()

	start := at(t, "10:00:00")

	sessions := NewTimeSlot("s", TimeSlotKindSessions, start)
	assert.Equal(t, TimeSlotKindSessions, sessions.Kind())
	assert.Equal(t, time.Hour, sessions.Duration())

	common := NewTimeSlot("c", TimeSlotKindCommonEvent, start)
	event, ok := common.CommonEvent()
	require.True(t, ok)
	assert.Equal(t, CommonEventSlot{Summary: "Break", Icon: "coffee"}, event)
}
