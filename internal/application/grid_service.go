package application

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/bnema/barcamp-grid/internal/domain"
	"github.com/bnema/barcamp-grid/internal/events"
	"github.com/bnema/barcamp-grid/internal/ports"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// GridService exposes the mutation endpoints of the session grid. Every
// endpoint returns the persisted grid version or an *domain.UpdateError.
type GridService struct {
	store       *GridStore
	topics      ports.TopicRegistry
	submissions ports.SubmissionQueue
	clock       ports.Clock
	logger      *log.Logger

	newID func() string
	rand  *rand.Rand
}

type GridServiceOption func(*GridService)

// WithIDGenerator replaces the uuid generator used for new tracks and slots.
func WithIDGenerator(newID func() string) GridServiceOption {
	return func(s *GridService) {
		s.newID = newID
	}
}

// WithIconSource makes the icon of new tracks deterministic.
func WithIconSource(r *rand.Rand) GridServiceOption {
	return func(s *GridService) {
		s.rand = r
	}
}

func WithGridLogger(logger *log.Logger) GridServiceOption {
	return func(s *GridService) {
		s.logger = logger
	}
}

func NewGridService(store *GridStore, topics ports.TopicRegistry, submissions ports.SubmissionQueue, clock ports.Clock, opts ...GridServiceOption) *GridService {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	service := &GridService{
		store:       store,
		topics:      topics,
		submissions: submissions,
		clock:       clock,
		logger:      log.Default(),
		newID:       uuid.NewString,
	}
	for _, opt := range opts {
		opt(service)
	}

	return service
}

func (s *GridService) Store() *GridStore {
	return s.store
}

func (s *GridService) AddTrack(ctx context.Context) (domain.GridEvent, error) {
	return s.store.Update(ctx, addTrackRecipe(domain.TrackID(s.newID()), domain.RandomIcon(s.rand)))
}

func (s *GridService) UpdateTrack(ctx context.Context, trackID domain.TrackID, changes TrackChanges) (domain.GridEvent, error) {
	return s.store.Update(ctx, updateTrackRecipe(trackID, changes))
}

func (s *GridService) DeleteTrack(ctx context.Context, trackID domain.TrackID) (domain.GridEvent, error) {
	return s.store.Update(ctx, deleteTrackRecipe(trackID))
}

func (s *GridService) AddTimeSlot(ctx context.Context, kind domain.TimeSlotKind) (domain.GridEvent, error) {
	if !kind.Valid() {
		return domain.GridEvent{}, domain.NewUpdateError(fmt.Sprintf("Unknown time slot type: %s", kind))
	}

	// The scheduler moves the slot behind the current last one.
	slot := domain.NewTimeSlot(domain.TimeSlotID(s.newID()), kind, s.clock.Now())
	return s.store.Update(ctx, addTimeSlotRecipe(slot))
}

func (s *GridService) UpdateCommonEvent(ctx context.Context, timeSlotID domain.TimeSlotID, changes CommonEventChanges) (domain.GridEvent, error) {
	return s.store.Update(ctx, updateCommonEventRecipe(timeSlotID, changes))
}

func (s *GridService) UpdateTimeSlot(ctx context.Context, timeSlotID domain.TimeSlotID, changes TimeSlotChanges) (domain.GridEvent, error) {
	return s.store.Update(ctx, updateTimeSlotRecipe(timeSlotID, changes))
}

func (s *GridService) DeleteTimeSlot(ctx context.Context, timeSlotID domain.TimeSlotID) (domain.GridEvent, error) {
	return s.store.Update(ctx, deleteTimeSlotRecipe(timeSlotID))
}

func (s *GridService) MoveTimeSlot(ctx context.Context, timeSlotID domain.TimeSlotID, toIndex int) (domain.GridEvent, error) {
	return s.store.Update(ctx, moveTimeSlotRecipe(timeSlotID, toIndex))
}

func (s *GridService) MoveTopicToSession(ctx context.Context, cmd MoveTopicToSessionCommand) (domain.GridEvent, error) {
	return s.store.Update(ctx, moveTopicToSessionRecipe(cmd.TopicID, cmd.TrackID, cmd.TimeSlotID))
}

func (s *GridService) MoveTopicToParkingArea(ctx context.Context, cmd MoveTopicToParkingAreaCommand) (domain.GridEvent, error) {
	return s.store.Update(ctx, moveTopicToParkingAreaRecipe(cmd.TopicID, cmd.ToIndex))
}

func (s *GridService) DeleteTopic(ctx context.Context, topicID domain.TopicID) (domain.GridEvent, error) {
	return s.store.Update(ctx, deleteTopicRecipe(topicID))
}

// SelectNextTopic admits the oldest submission that is not yet part of the
// grid. Its topic is created first, then the submission is parked.
func (s *GridService) SelectNextTopic(ctx context.Context) (domain.GridEvent, error) {
	current, err := s.store.Get(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrNoSessionGrid) {
			return domain.GridEvent{}, &domain.UpdateError{Message: "No session grid found", Err: err}
		}
		return domain.GridEvent{}, err
	}

	submissions, err := s.submissions.ListAll(ctx)
	if err != nil {
		return domain.GridEvent{}, fmt.Errorf("list topic submissions: %w", err)
	}

	available := domain.AvailableSubmissions(submissions, current.Content.ConsumedTopicSubmissions)
	if len(available) == 0 {
		return domain.GridEvent{}, domain.NewUpdateError("No next topic submission")
	}
	next := available[0]

	topicID := domain.TopicID(next.EventID)
	if _, err := s.topics.Create(ctx, topicID, domain.Topic{
		Title:       next.Title,
		Description: next.Description,
		Authors:     []domain.TopicAuthor{{ID: next.Sender}},
	}); err != nil {
		return domain.GridEvent{}, &domain.UpdateError{Message: fmt.Sprintf("Could not create topic: %v", err), Err: err}
	}

	s.logger.Info("selected next topic", "topic_id", topicID, "sender", next.Sender, "remaining", len(available)-1)
	return s.store.Update(ctx, consumeSubmissionRecipe(next.EventID))
}

// SetupSessionGrid creates the initial grid of the current room: one track,
// one sessions slot starting at the next 10:00 and an anchor event that
// topic submissions refer to.
func (s *GridService) SetupSessionGrid(ctx context.Context) (domain.GridEvent, error) {
	spaceID, err := s.store.locator.SpaceRoomID(ctx)
	if err != nil {
		return domain.GridEvent{}, &domain.UpdateError{Message: "No space found", Err: err}
	}

	roomID := s.store.locator.CurrentRoomID()
	if roomID == "" {
		return domain.GridEvent{}, &domain.UpdateError{Message: "Current room unknown", Err: domain.ErrCurrentRoomUnknown}
	}

	start, err := s.store.channel.SendRoomEvent(ctx, roomID, events.TypeSessionGridStart, events.EmptyContent())
	if err != nil {
		return domain.GridEvent{}, &domain.UpdateError{Message: fmt.Sprintf("Could not create session grid: %v", err), Err: err}
	}

	grid := domain.SessionGrid{
		Tracks: []domain.Track{{
			ID:   domain.TrackID(s.newID()),
			Name: "Track 1",
			Icon: domain.RandomIcon(s.rand),
		}},
		TimeSlots: []domain.TimeSlot{
			domain.NewTimeSlot(domain.TimeSlotID(s.newID()), domain.TimeSlotKindSessions, domain.NextGridStart(s.clock.Now())),
		},
		Sessions:                 []domain.Session{},
		ParkingLot:               []domain.ParkingLotEntry{},
		ConsumedTopicSubmissions: []string{},
		TopicStartEventID:        start.EventID,
	}

	event, err := s.store.create(ctx, spaceID, roomID, grid)
	if err != nil {
		return domain.GridEvent{}, &domain.UpdateError{Message: fmt.Sprintf("Could not create session grid: %v", err), Err: err}
	}

	s.logger.Info("session grid created", "room_id", spaceID, "state_key", roomID, "event_id", event.EventID)
	return event, nil
}
