package domain

import (
	"time"
)

type TopicAuthor struct {
	ID string
}

type Topic struct {
	Title       string
	Description string
	Authors     []TopicAuthor
	Pinned      bool
}

// TopicEvent is a persisted topic; the state key is the topic id.
type TopicEvent struct {
	EventID        string
	RoomID         string
	TopicID        TopicID
	Sender         string
	OriginServerTS time.Time
	Content        Topic
}

// TopicChanges holds the fields of a topic that can be edited. Nil fields
// are left untouched.
type TopicChanges struct {
	Title       *string
	Description *string
	Pinned      *bool
}

func (c TopicChanges) Apply(topic Topic) Topic {
	if c.Title != nil {
		topic.Title = *c.Title
	}
	if c.Description != nil {
		topic.Description = *c.Description
	}
	if c.Pinned != nil {
		topic.Pinned = *c.Pinned
	}
	return topic
}
