package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/bnema/barcamp-grid/internal/domain"
	"github.com/bnema/barcamp-grid/internal/events"
	"github.com/bnema/barcamp-grid/internal/ports"
	"github.com/charmbracelet/log"
)

const submissionPageSize = 50

// SubmissionService reads and writes topic submissions of the current room.
// Once a grid exists, only submissions referencing its start event count.
type SubmissionService struct {
	store   *GridStore
	channel ports.EventChannel
	locator ports.RoomLocator
	logger  *log.Logger
}

var _ ports.SubmissionQueue = (*SubmissionService)(nil)

func NewSubmissionService(store *GridStore, channel ports.EventChannel, locator ports.RoomLocator, logger *log.Logger) *SubmissionService {
	if logger == nil {
		logger = log.Default()
	}

	return &SubmissionService{
		store:   store,
		channel: channel,
		locator: locator,
		logger:  logger.WithPrefix("submissions"),
	}
}

func (s *SubmissionService) ListAll(ctx context.Context) ([]domain.TopicSubmission, error) {
	roomID := s.locator.CurrentRoomID()
	if roomID == "" {
		return nil, &domain.LoadError{Message: "Current room unknown", Err: domain.ErrCurrentRoomUnknown}
	}

	startEventID, err := s.startEventID(ctx)
	if err != nil {
		return nil, err
	}

	var raw []ports.Event
	if startEventID == "" {
		raw, err = s.channel.ReadRoomEvents(ctx, roomID, events.TypeTopicSubmission)
		if err != nil {
			return nil, &domain.LoadError{Message: fmt.Sprintf("Could not load topic submissions: %v", err), Err: err}
		}
	} else {
		raw, err = s.readRelations(ctx, roomID, startEventID)
		if err != nil {
			return nil, err
		}
	}

	seen := make(map[string]struct{}, len(raw))
	submissions := make([]domain.TopicSubmission, 0, len(raw))
	for _, event := range raw {
		if event.Type != events.TypeTopicSubmission || event.IsState() {
			continue
		}
		if _, ok := seen[event.EventID]; ok {
			continue
		}
		content, err := events.DecodeTopicSubmission(event.Content)
		if err != nil {
			s.logger.Debug("skipping invalid topic submission", "event_id", event.EventID, "error", err)
			continue
		}
		seen[event.EventID] = struct{}{}
		submissions = append(submissions, domain.TopicSubmission{
			EventID:     event.EventID,
			Title:       content.Title,
			Description: content.Description,
			Sender:      event.Sender,
			SubmittedAt: event.OriginServerTS,
		})
	}
	domain.SortSubmissions(submissions)

	return submissions, nil
}

// Submit proposes a topic. It is linked to the grid start event when a grid
// exists.
func (s *SubmissionService) Submit(ctx context.Context, cmd SubmitTopicCommand) (domain.TopicSubmission, error) {
	roomID := s.locator.CurrentRoomID()
	if roomID == "" {
		return domain.TopicSubmission{}, &domain.UpdateError{Message: "Current room unknown", Err: domain.ErrCurrentRoomUnknown}
	}

	startEventID, err := s.startEventID(ctx)
	if err != nil {
		return domain.TopicSubmission{}, err
	}

	content, err := events.EncodeTopicSubmission(events.TopicSubmissionContent{
		Title:        cmd.Title,
		Description:  cmd.Description,
		StartEventID: startEventID,
	})
	if err != nil {
		return domain.TopicSubmission{}, &domain.UpdateError{Message: "Title and description are required", Err: err}
	}

	written, err := s.channel.SendRoomEvent(ctx, roomID, events.TypeTopicSubmission, content)
	if err != nil {
		return domain.TopicSubmission{}, &domain.UpdateError{Message: fmt.Sprintf("Could not submit topic: %v", err), Err: err}
	}

	s.logger.Info("topic submitted", "event_id", written.EventID, "room_id", roomID)
	return domain.TopicSubmission{
		EventID:     written.EventID,
		Title:       cmd.Title,
		Description: cmd.Description,
		Sender:      written.Sender,
		SubmittedAt: written.OriginServerTS,
	}, nil
}

func (s *SubmissionService) startEventID(ctx context.Context) (string, error) {
	grid, err := s.store.Get(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrNoSessionGrid) {
			return "", nil
		}
		return "", err
	}
	return grid.Content.TopicStartEventID, nil
}

func (s *SubmissionService) readRelations(ctx context.Context, roomID, startEventID string) ([]ports.Event, error) {
	var all []ports.Event
	query := ports.RelationsQuery{
		RelationType: events.RelationReference,
		EventType:    events.TypeTopicSubmission,
		Limit:        submissionPageSize,
	}

	for {
		page, err := s.channel.ReadRelations(ctx, roomID, startEventID, query)
		if err != nil {
			return nil, &domain.LoadError{Message: fmt.Sprintf("Could not load topic submissions: %v", err), Err: err}
		}
		all = append(all, page.Events...)
		if page.NextToken == "" || page.NextToken == query.From {
			return all, nil
		}
		query.From = page.NextToken
	}
}
