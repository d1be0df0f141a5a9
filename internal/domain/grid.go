package domain

import (
	"slices"
	"time"
)

type TrackID string
type TimeSlotID string
type TopicID string

type Track struct {
	ID   TrackID
	Name string
	Icon string
}

type Session struct {
	TopicID    TopicID
	TrackID    TrackID
	TimeSlotID TimeSlotID
}

type ParkingLotEntry struct {
	TopicID TopicID
}

// SessionGrid is the content of the single grid document of a planning session.
type SessionGrid struct {
	Tracks                   []Track
	TimeSlots                []TimeSlot
	Sessions                 []Session
	ParkingLot               []ParkingLotEntry
	ConsumedTopicSubmissions []string
	TopicStartEventID        string
}

// GridEvent is a persisted version of a SessionGrid together with the
// metadata assigned by the event log.
type GridEvent struct {
	EventID        string
	RoomID         string
	StateKey       string
	Sender         string
	OriginServerTS time.Time
	Content        SessionGrid
}

// Clone returns a deep copy. Recipes only ever mutate clones, so a failed
// recipe leaves the original untouched.
func (g SessionGrid) Clone() SessionGrid {
	return SessionGrid{
		Tracks:                   slices.Clone(g.Tracks),
		TimeSlots:                slices.Clone(g.TimeSlots),
		Sessions:                 slices.Clone(g.Sessions),
		ParkingLot:               slices.Clone(g.ParkingLot),
		ConsumedTopicSubmissions: slices.Clone(g.ConsumedTopicSubmissions),
		TopicStartEventID:        g.TopicStartEventID,
	}
}

func (g SessionGrid) TrackIndex(id TrackID) int {
	return slices.IndexFunc(g.Tracks, func(t Track) bool { return t.ID == id })
}

func (g SessionGrid) TimeSlotIndex(id TimeSlotID) int {
	return slices.IndexFunc(g.TimeSlots, func(t TimeSlot) bool { return t.ID == id })
}

func (g SessionGrid) SessionIndex(topicID TopicID) int {
	return slices.IndexFunc(g.Sessions, func(s Session) bool { return s.TopicID == topicID })
}

func (g SessionGrid) ParkingLotIndex(topicID TopicID) int {
	return slices.IndexFunc(g.ParkingLot, func(e ParkingLotEntry) bool { return e.TopicID == topicID })
}

// SessionAt returns the session occupying the (track, time slot) cell.
func (g SessionGrid) SessionAt(trackID TrackID, timeSlotID TimeSlotID) (Session, bool) {
	for _, session := range g.Sessions {
		if session.TrackID == trackID && session.TimeSlotID == timeSlotID {
			return session, true
		}
	}
	return Session{}, false
}

func (g SessionGrid) IsConsumed(submissionID string) bool {
	return slices.Contains(g.ConsumedTopicSubmissions, submissionID)
}

// TopicIDs returns every topic referenced by the grid, parking lot first.
func (g SessionGrid) TopicIDs() []TopicID {
	ids := make([]TopicID, 0, len(g.ParkingLot)+len(g.Sessions))
	for _, entry := range g.ParkingLot {
		ids = append(ids, entry.TopicID)
	}
	for _, session := range g.Sessions {
		ids = append(ids, session.TopicID)
	}
	return ids
}
