package ports

import (
	"context"

	"github.com/bnema/barcamp-grid/internal/domain"
)

type TopicRegistry interface {
	Create(ctx context.Context, id domain.TopicID, topic domain.Topic) (domain.TopicEvent, error)
	Update(ctx context.Context, id domain.TopicID, changes domain.TopicChanges) (domain.TopicEvent, error)
	Get(ctx context.Context, id domain.TopicID) (domain.TopicEvent, error)
}

type SubmissionQueue interface {
	// ListAll returns every submission of the planning session, oldest first.
	ListAll(ctx context.Context) ([]domain.TopicSubmission, error)
}

// RoomLocator resolves where the grid document of the current room lives.
type RoomLocator interface {
	CurrentRoomID() string
	SpaceRoomID(ctx context.Context) (string, error)
	LobbyRoomID(ctx context.Context) (string, error)
}
