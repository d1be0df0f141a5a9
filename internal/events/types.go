// Package events holds the wire format of the events the session grid is
// persisted as, and maps them to domain types.
//
// Every decoder validates the content against its schema. Content that does
// not match is reported with ErrInvalidContent and callers treat such events
// as absent: foreign or partial documents in a room are ignored, never
// surfaced.
package events

const (
	TypeSessionGrid      = "net.nordeck.barcamp.session_grid"
	TypeSessionGridStart = "net.nordeck.barcamp.session_grid_start"
	TypeTopic            = "net.nordeck.barcamp.topic"
	TypeTopicSubmission  = "net.nordeck.barcamp.topic_submission"
	TypeLinkedRoom       = "net.nordeck.barcamp.linked_room"
	TypeSpaceParent      = "m.space.parent"
	TypeSpaceChild       = "m.space.child"
	TypeRoomCreate       = "m.room.create"
	TypeRoomName         = "m.room.name"

	RelationReference = "m.reference"

	// LobbyOrder sorts the lobby room first among the children of a space.
	LobbyOrder = " lobby"
)
