package application

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/bnema/barcamp-grid/internal/domain"
	"github.com/bnema/barcamp-grid/internal/events"
	"github.com/bnema/barcamp-grid/internal/ports"
	"github.com/charmbracelet/log"
)

// LinkedRoomService links rooms of the space to topics of the grid, so that
// a scheduled session has a room to meet in.
type LinkedRoomService struct {
	store   *GridStore
	channel ports.EventChannel
	logger  *log.Logger
}

func NewLinkedRoomService(store *GridStore, logger *log.Logger) *LinkedRoomService {
	if logger == nil {
		logger = log.Default()
	}

	return &LinkedRoomService{
		store:   store,
		channel: store.channel,
		logger:  logger.WithPrefix("rooms"),
	}
}

// Assign links roomID to a topic of the current grid. The link is a state
// event in the linked room itself, keyed by its room id.
func (s *LinkedRoomService) Assign(ctx context.Context, topicID domain.TopicID, roomID string) (domain.LinkedRoom, error) {
	if roomID == "" {
		return domain.LinkedRoom{}, domain.NewUpdateError("Room id is required")
	}

	grid, err := s.store.Get(ctx)
	if err != nil {
		return domain.LinkedRoom{}, &domain.UpdateError{Message: fmt.Sprintf("Could not assign room to a topic: %v", err), Err: err}
	}
	if grid.Content.SessionIndex(topicID) < 0 && grid.Content.ParkingLotIndex(topicID) < 0 {
		return domain.LinkedRoom{}, domain.NewUpdateError(fmt.Sprintf("Topic not found: %s", topicID))
	}
	if roomID == grid.StateKey {
		return domain.LinkedRoom{}, domain.NewUpdateError("The lobby room can not be linked to a topic")
	}

	room := domain.LinkedRoom{RoomID: roomID, SessionGridID: grid.StateKey, TopicID: topicID}
	content, err := events.EncodeLinkedRoom(room)
	if err != nil {
		return domain.LinkedRoom{}, &domain.UpdateError{Message: fmt.Sprintf("Could not assign room to a topic: %v", err), Err: err}
	}

	if _, err := s.channel.SendStateEvent(ctx, roomID, events.TypeLinkedRoom, roomID, content); err != nil {
		return domain.LinkedRoom{}, &domain.UpdateError{Message: fmt.Sprintf("Could not assign room to a topic: %v", err), Err: err}
	}

	s.logger.Info("linked room to topic", "room_id", roomID, "topic_id", topicID, "session_grid_id", grid.StateKey)
	return room, nil
}

// Unassigned lists the plain child rooms of the space that have the space as
// canonical parent, carry a name, and are neither linked to a topic nor the
// lobby of a grid. Rooms whose state can not be read are skipped.
func (s *LinkedRoomService) Unassigned(ctx context.Context) ([]domain.RoomCandidate, error) {
	spaceID, err := s.store.locator.SpaceRoomID(ctx)
	if err != nil {
		return nil, err
	}

	children, err := s.channel.ReadStateEvents(ctx, spaceID, events.TypeSpaceChild)
	if err != nil {
		return nil, &domain.LoadError{Message: fmt.Sprintf("Could not determine space room: %v", err), Err: err}
	}
	grids, err := s.channel.ReadStateEvents(ctx, spaceID, events.TypeSessionGrid)
	if err != nil {
		return nil, &domain.LoadError{Message: fmt.Sprintf("Could not determine space room: %v", err), Err: err}
	}

	lobbies := map[string]bool{}
	for _, event := range grids {
		if _, err := events.DecodeSessionGrid(event.Content); err == nil && event.IsState() {
			lobbies[event.StateKeyValue()] = true
		}
	}

	var candidates []domain.RoomCandidate
	for _, child := range children {
		roomID := child.StateKeyValue()
		if roomID == "" || lobbies[roomID] || !events.IsJoinableSpaceChild(child.Content) {
			continue
		}

		name, ok, err := s.candidateName(ctx, spaceID, roomID)
		if err != nil {
			s.logger.Debug("skipping unreadable room", "room_id", roomID, "error", err)
			continue
		}
		if ok {
			candidates = append(candidates, domain.RoomCandidate{RoomID: roomID, Name: name})
		}
	}

	sort.Slice(candidates, func(i, j int) bool { return candidates[i].RoomID < candidates[j].RoomID })
	return candidates, nil
}

func (s *LinkedRoomService) candidateName(ctx context.Context, spaceID, roomID string) (string, bool, error) {
	parents, err := s.channel.ReadStateEvents(ctx, roomID, events.TypeSpaceParent)
	if err != nil {
		return "", false, err
	}
	if !hasState(parents, spaceID, events.IsCanonicalSpaceParent) {
		return "", false, nil
	}

	creates, err := s.channel.ReadStateEvents(ctx, roomID, events.TypeRoomCreate)
	if err != nil {
		return "", false, err
	}
	if !hasState(creates, "", events.IsPlainRoom) {
		return "", false, nil
	}

	linked, err := s.channel.ReadStateEvents(ctx, roomID, events.TypeLinkedRoom)
	if err != nil {
		return "", false, err
	}
	for _, event := range linked {
		if event.StateKeyValue() != roomID {
			continue
		}
		if _, err := events.DecodeLinkedRoom(roomID, event.Content); err == nil {
			return "", false, nil
		}
	}

	names, err := s.channel.ReadStateEvents(ctx, roomID, events.TypeRoomName)
	if err != nil {
		return "", false, err
	}
	for _, event := range names {
		if !event.IsState() || event.StateKeyValue() != "" {
			continue
		}
		if name, err := events.DecodeRoomName(event.Content); err == nil {
			return name, true, nil
		}
	}

	return "", false, nil
}

// MarkSuggested marks roomID as a suggested child of the space, sorted first.
// It reports whether the space child event had to be rewritten.
func (s *LinkedRoomService) MarkSuggested(ctx context.Context, roomID string) (bool, error) {
	spaceID, err := s.store.locator.SpaceRoomID(ctx)
	if err != nil {
		return false, err
	}

	children, err := s.channel.ReadStateEvents(ctx, spaceID, events.TypeSpaceChild)
	if err != nil {
		return false, &domain.UpdateError{Message: fmt.Sprintf("Could not update space child: %v", err), Err: err}
	}

	var child *ports.Event
	for i := range children {
		if children[i].StateKeyValue() == roomID && events.IsJoinableSpaceChild(children[i].Content) {
			child = &children[i]
		}
	}
	if child == nil {
		return false, domain.NewUpdateError("Could not update space child: No space child event found")
	}

	content, changed, err := events.SuggestSpaceChild(child.Content)
	if err != nil {
		return false, &domain.UpdateError{Message: fmt.Sprintf("Could not update space child: %v", err), Err: err}
	}
	if !changed {
		return false, nil
	}

	if _, err := s.channel.SendStateEvent(ctx, spaceID, events.TypeSpaceChild, roomID, content); err != nil {
		return false, &domain.UpdateError{Message: fmt.Sprintf("Could not update space child: %v", err), Err: err}
	}

	s.logger.Info("marked room as suggested", "room_id", roomID, "space_id", spaceID)
	return true, nil
}

func hasState(candidates []ports.Event, stateKey string, valid func(json.RawMessage) bool) bool {
	for _, event := range candidates {
		if event.IsState() && event.StateKeyValue() == stateKey && valid(event.Content) {
			return true
		}
	}
	return false
}
