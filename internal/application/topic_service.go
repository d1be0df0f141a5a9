package application

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/bnema/barcamp-grid/internal/domain"
	"github.com/bnema/barcamp-grid/internal/events"
	"github.com/bnema/barcamp-grid/internal/ports"
)

// TopicService stores topics as state events of the space room, keyed by
// topic id.
type TopicService struct {
	channel ports.EventChannel
	locator ports.RoomLocator
}

var _ ports.TopicRegistry = (*TopicService)(nil)

func NewTopicService(channel ports.EventChannel, locator ports.RoomLocator) *TopicService {
	return &TopicService{channel: channel, locator: locator}
}

// Create stores topic under id. An existing topic is returned unchanged.
func (s *TopicService) Create(ctx context.Context, id domain.TopicID, topic domain.Topic) (domain.TopicEvent, error) {
	existing, err := s.Get(ctx, id)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, domain.ErrTopicNotFound) {
		return domain.TopicEvent{}, err
	}

	return s.write(ctx, id, topic)
}

// Update merges changes into the stored topic.
func (s *TopicService) Update(ctx context.Context, id domain.TopicID, changes domain.TopicChanges) (domain.TopicEvent, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return domain.TopicEvent{}, err
	}

	return s.write(ctx, id, changes.Apply(existing.Content))
}

func (s *TopicService) Get(ctx context.Context, id domain.TopicID) (domain.TopicEvent, error) {
	topics, err := s.List(ctx)
	if err != nil {
		return domain.TopicEvent{}, err
	}

	for _, topic := range topics {
		if topic.TopicID == id {
			return topic, nil
		}
	}

	return domain.TopicEvent{}, &domain.LoadError{
		Message: fmt.Sprintf("Could not load topic %s", id),
		Err:     domain.ErrTopicNotFound,
	}
}

// List returns every valid topic of the space, ordered by topic id.
func (s *TopicService) List(ctx context.Context) ([]domain.TopicEvent, error) {
	spaceID, err := s.locator.SpaceRoomID(ctx)
	if err != nil {
		return nil, err
	}

	stateEvents, err := s.channel.ReadStateEvents(ctx, spaceID, events.TypeTopic)
	if err != nil {
		return nil, &domain.LoadError{Message: fmt.Sprintf("Could not load topics: %v", err), Err: err}
	}

	byID := make(map[domain.TopicID]domain.TopicEvent, len(stateEvents))
	for _, event := range stateEvents {
		if !event.IsState() || event.StateKeyValue() == "" {
			continue
		}
		topic, err := events.DecodeTopic(event.Content)
		if err != nil {
			continue
		}
		id := domain.TopicID(event.StateKeyValue())
		byID[id] = topicEventFrom(event, topic)
	}

	topics := make([]domain.TopicEvent, 0, len(byID))
	for _, topic := range byID {
		topics = append(topics, topic)
	}
	sort.Slice(topics, func(i, j int) bool { return topics[i].TopicID < topics[j].TopicID })

	return topics, nil
}

func (s *TopicService) write(ctx context.Context, id domain.TopicID, topic domain.Topic) (domain.TopicEvent, error) {
	content, err := events.EncodeTopic(topic)
	if err != nil {
		return domain.TopicEvent{}, &domain.UpdateError{Message: fmt.Sprintf("Invalid topic: %v", err), Err: err}
	}

	spaceID, err := s.locator.SpaceRoomID(ctx)
	if err != nil {
		return domain.TopicEvent{}, err
	}

	written, err := s.channel.SendStateEvent(ctx, spaceID, events.TypeTopic, string(id), content)
	if err != nil {
		return domain.TopicEvent{}, &domain.UpdateError{Message: fmt.Sprintf("Could not update topic: %v", err), Err: err}
	}

	event := topicEventFrom(written, topic)
	event.TopicID = id
	return event, nil
}

func topicEventFrom(event ports.Event, topic domain.Topic) domain.TopicEvent {
	return domain.TopicEvent{
		EventID:        event.EventID,
		RoomID:         event.RoomID,
		TopicID:        domain.TopicID(event.StateKeyValue()),
		Sender:         event.Sender,
		OriginServerTS: event.OriginServerTS,
		Content:        topic,
	}
}
