package application

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/bnema/barcamp-grid/internal/domain"
	"github.com/bnema/barcamp-grid/internal/events"
	"github.com/bnema/barcamp-grid/internal/ports"
	"github.com/charmbracelet/log"
)

// ErrSubscriptionClosed is returned by Run when the event stream ends before
// its context is done.
var ErrSubscriptionClosed = errors.New("session grid subscription closed")

// Recipe mutates a working copy of the grid. Returning an error rejects the
// mutation; nothing of the working copy is kept in that case.
type Recipe func(grid *domain.SessionGrid) error

// GridStore owns the cached current version of the grid document. All writes
// go through Update, which publishes optimistically and rolls back on failure.
// Update calls are serialized per store.
type GridStore struct {
	channel ports.EventChannel
	locator ports.RoomLocator
	logger  *log.Logger

	mu        sync.RWMutex
	current   *domain.GridEvent
	version   uint64
	listeners map[int]func(domain.GridEvent)
	nextID    int

	updateMu sync.Mutex
	inFlight string
}

func NewGridStore(channel ports.EventChannel, locator ports.RoomLocator, logger *log.Logger) *GridStore {
	if logger == nil {
		logger = log.Default()
	}

	return &GridStore{
		channel:   channel,
		locator:   locator,
		logger:    logger.WithPrefix("grid"),
		listeners: map[int]func(domain.GridEvent){},
	}
}

// Get returns the current grid, loading it from the event log on first use.
func (s *GridStore) Get(ctx context.Context) (domain.GridEvent, error) {
	s.mu.RLock()
	current := s.current
	s.mu.RUnlock()

	if current != nil {
		return *current, nil
	}

	return s.Refresh(ctx)
}

// Refresh drops the cached grid and loads the latest version.
func (s *GridStore) Refresh(ctx context.Context) (domain.GridEvent, error) {
	event, err := s.load(ctx)
	if err != nil {
		return domain.GridEvent{}, err
	}

	s.setCurrent(event)
	return event, nil
}

func (s *GridStore) load(ctx context.Context) (domain.GridEvent, error) {
	spaceID, stateKey, err := s.location(ctx)
	if err != nil {
		return domain.GridEvent{}, err
	}

	stateEvents, err := s.channel.ReadStateEvents(ctx, spaceID, events.TypeSessionGrid)
	if err != nil {
		return domain.GridEvent{}, &domain.LoadError{
			Message: fmt.Sprintf("Could not load the session grid: %v", err),
			Err:     err,
		}
	}

	grid, ok := latestGrid(stateEvents, spaceID, stateKey)
	if !ok {
		return domain.GridEvent{}, fmt.Errorf("load session grid in %s: %w", spaceID, domain.ErrNoSessionGrid)
	}

	s.logger.Debug("loaded session grid", "room_id", spaceID, "state_key", stateKey, "event_id", grid.EventID)
	return grid, nil
}

func (s *GridStore) location(ctx context.Context) (string, string, error) {
	spaceID, err := s.locator.SpaceRoomID(ctx)
	if err != nil {
		return "", "", err
	}

	stateKey, err := s.locator.LobbyRoomID(ctx)
	if err != nil {
		return "", "", err
	}

	return spaceID, stateKey, nil
}

// Subscribe registers a listener for every published grid version, including
// optimistic ones and rollbacks. The returned function unregisters it.
func (s *GridStore) Subscribe(listener func(domain.GridEvent)) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = listener
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.listeners, id)
			s.mu.Unlock()
		})
	}
}

// Update applies recipe to the current grid and persists the result.
// Failures are reported as *domain.UpdateError and leave the cached grid as
// it was before the call.
func (s *GridStore) Update(ctx context.Context, recipe Recipe) (domain.GridEvent, error) {
	s.updateMu.Lock()
	defer s.updateMu.Unlock()

	base, err := s.Get(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrNoSessionGrid) {
			return domain.GridEvent{}, &domain.UpdateError{Message: "No session grid found", Err: err}
		}
		return domain.GridEvent{}, &domain.UpdateError{Message: err.Error(), Err: err}
	}

	tx := s.Begin(base)
	if err := tx.Apply(recipe); err != nil {
		tx.Rollback()
		return domain.GridEvent{}, toUpdateError(err)
	}

	s.setInFlight(base.EventID)
	defer s.setInFlight("")

	event, err := tx.Commit(ctx)
	if err != nil {
		tx.Rollback()
		return domain.GridEvent{}, toUpdateError(err)
	}

	return event, nil
}

// create writes a new grid document and makes it current. It holds the
// update lock so no in-flight transaction can roll back over it.
func (s *GridStore) create(ctx context.Context, roomID, stateKey string, grid domain.SessionGrid) (domain.GridEvent, error) {
	s.updateMu.Lock()
	defer s.updateMu.Unlock()

	content, err := events.EncodeSessionGrid(grid)
	if err != nil {
		return domain.GridEvent{}, err
	}

	written, err := s.channel.SendStateEvent(ctx, roomID, events.TypeSessionGrid, stateKey, content)
	if err != nil {
		return domain.GridEvent{}, err
	}

	event := gridEventFrom(written, grid)
	s.setCurrent(event)
	return event, nil
}

// Run keeps the cached grid in sync with versions written by other
// participants until ctx is done or the subscription ends. Bursts of events are applied as one batch
// and only the newest matching version is kept.
func (s *GridStore) Run(ctx context.Context) error {
	stream, err := s.channel.Subscribe(ctx, events.TypeSessionGrid)
	if err != nil {
		return fmt.Errorf("subscribe to session grid events: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-stream:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return ErrSubscriptionClosed
			}
			batch := append([]ports.Event{event}, drain(stream)...)
			s.applyRemote(ctx, batch)
		}
	}
}

func drain(stream <-chan ports.Event) []ports.Event {
	var batch []ports.Event
	for {
		select {
		case event, ok := <-stream:
			if !ok {
				return batch
			}
			batch = append(batch, event)
		default:
			return batch
		}
	}
}

func (s *GridStore) applyRemote(ctx context.Context, batch []ports.Event) {
	spaceID, stateKey, err := s.location(ctx)
	if err != nil {
		s.logger.Debug("ignoring session grid events, location unknown", "events", len(batch), "error", err)
		return
	}

	grid, ok := latestGrid(batch, spaceID, stateKey)
	if !ok {
		return
	}

	s.mu.RLock()
	inFlight := s.inFlight
	s.mu.RUnlock()
	if inFlight != "" && inFlight != grid.EventID {
		s.logger.Warn("remote session grid changed during local update, last write wins",
			"base_event_id", inFlight,
			"remote_event_id", grid.EventID,
			"sender", grid.Sender,
		)
	}

	s.logger.Debug("received session grid", "events", len(batch), "event_id", grid.EventID)
	s.setCurrent(grid)
}

func (s *GridStore) setInFlight(eventID string) {
	s.mu.Lock()
	s.inFlight = eventID
	s.mu.Unlock()
}

// setCurrent caches and publishes event, returning the cache version it got.
func (s *GridStore) setCurrent(event domain.GridEvent) uint64 {
	s.mu.Lock()
	s.current = &event
	s.version++
	version := s.version
	listeners := make([]func(domain.GridEvent), 0, len(s.listeners))
	for _, listener := range s.listeners {
		listeners = append(listeners, listener)
	}
	s.mu.Unlock()

	for _, listener := range listeners {
		listener(event)
	}

	return version
}

// restore puts event back only if nothing was published after version.
func (s *GridStore) restore(event domain.GridEvent, version uint64) bool {
	s.mu.RLock()
	stale := s.version != version
	s.mu.RUnlock()

	if stale {
		return false
	}

	s.setCurrent(event)
	return true
}

func latestGrid(candidates []ports.Event, roomID, stateKey string) (domain.GridEvent, bool) {
	for i := len(candidates) - 1; i >= 0; i-- {
		event := candidates[i]
		if event.Type != events.TypeSessionGrid || event.RoomID != roomID || !event.IsState() || event.StateKeyValue() != stateKey {
			continue
		}

		grid, err := events.DecodeSessionGrid(event.Content)
		if err != nil {
			continue
		}

		return gridEventFrom(event, grid), true
	}

	return domain.GridEvent{}, false
}

func gridEventFrom(event ports.Event, grid domain.SessionGrid) domain.GridEvent {
	return domain.GridEvent{
		EventID:        event.EventID,
		RoomID:         event.RoomID,
		StateKey:       event.StateKeyValue(),
		Sender:         event.Sender,
		OriginServerTS: event.OriginServerTS,
		Content:        grid,
	}
}

func toUpdateError(err error) error {
	var updateErr *domain.UpdateError
	if errors.As(err, &updateErr) {
		return updateErr
	}
	return &domain.UpdateError{Message: err.Error(), Err: err}
}
