package domain

// LinkedRoom marks a room as the session room of a topic. The state key of
// the event is the linked room id.
type LinkedRoom struct {
	RoomID        string
	SessionGridID string
	TopicID       TopicID
}

// RoomCandidate is a room of the space that can still be linked to a topic.
type RoomCandidate struct {
	RoomID string
	Name   string
}
