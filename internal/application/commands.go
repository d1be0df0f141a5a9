package application

import (
	"time"

	"github.com/bnema/barcamp-grid/internal/domain"
)

// TrackChanges holds the editable fields of a track. Nil fields are kept.
type TrackChanges struct {
	Name *string
	Icon *string
}

type CommonEventChanges struct {
	Summary *string
	Icon    *string
}

// TimeSlotChanges edits a time slot. StartTime is only accepted for the
// first slot of the grid.
type TimeSlotChanges struct {
	StartTime       *time.Time
	DurationMinutes *int
}

type MoveTopicToSessionCommand struct {
	TopicID    domain.TopicID
	TrackID    domain.TrackID
	TimeSlotID domain.TimeSlotID
}

type MoveTopicToParkingAreaCommand struct {
	TopicID domain.TopicID
	ToIndex int
}

type SubmitTopicCommand struct {
	Title       string
	Description string
}
