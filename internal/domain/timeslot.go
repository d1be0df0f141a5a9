package domain

import "time"

type TimeSlotKind string

const (
	TimeSlotKindSessions    TimeSlotKind = "sessions"
	TimeSlotKindCommonEvent TimeSlotKind = "common-event"
)

func (k TimeSlotKind) Valid() bool {
	switch k {
	case TimeSlotKindSessions, TimeSlotKindCommonEvent:
		return true
	default:
		return false
	}
}

// TimeSlotVariant is the kind-specific payload of a TimeSlot. The set of
// variants is closed: SessionsSlot and CommonEventSlot.
type TimeSlotVariant interface {
	Kind() TimeSlotKind
	timeSlotVariant()
}

// SessionsSlot hosts one session per track.
type SessionsSlot struct{}

func (SessionsSlot) Kind() TimeSlotKind { return TimeSlotKindSessions }
func (SessionsSlot) timeSlotVariant()   {}

// CommonEventSlot is a single event shared by all tracks, e.g. a break.
type CommonEventSlot struct {
	Summary string
	Icon    string
}

func (CommonEventSlot) Kind() TimeSlotKind { return TimeSlotKindCommonEvent }
func (CommonEventSlot) timeSlotVariant()   {}

const (
	DefaultTimeSlotDuration = time.Hour
	DefaultCommonEventTitle = "Break"
	DefaultCommonEventIcon  = "coffee"
	defaultGridStartHour    = 10
	timestampPrecision      = time.Second
)

type TimeSlot struct {
	ID        TimeSlotID
	StartTime time.Time
	EndTime   time.Time
	Variant   TimeSlotVariant
}

func (t TimeSlot) Kind() TimeSlotKind {
	if t.Variant == nil {
		return TimeSlotKindSessions
	}
	return t.Variant.Kind()
}

func (t TimeSlot) Duration() time.Duration {
	return t.EndTime.Sub(t.StartTime)
}

// CommonEvent returns the common event payload when the slot is one.
func (t TimeSlot) CommonEvent() (CommonEventSlot, bool) {
	event, ok := t.Variant.(CommonEventSlot)
	return event, ok
}

// NewTimeSlot creates a one hour slot of the given kind. Its position in the
// grid is fixed later by RecalculateTimeSlots.
func NewTimeSlot(id TimeSlotID, kind TimeSlotKind, start time.Time) TimeSlot {
	start = start.Truncate(timestampPrecision)
	slot := TimeSlot{
		ID:        id,
		StartTime: start,
		EndTime:   start.Add(DefaultTimeSlotDuration),
		Variant:   SessionsSlot{},
	}
	if kind == TimeSlotKindCommonEvent {
		slot.Variant = CommonEventSlot{Summary: DefaultCommonEventTitle, Icon: DefaultCommonEventIcon}
	}
	return slot
}

// NextGridStart returns the next 10:00 wall-clock boundary in now's location.
// A grid created before 10:00 starts today.
func NextGridStart(now time.Time) time.Time {
	start := time.Date(now.Year(), now.Month(), now.Day(), defaultGridStartHour, 0, 0, 0, now.Location())
	if now.After(start) {
		start = start.AddDate(0, 0, 1)
	}
	return start
}
