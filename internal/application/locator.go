package application

import (
	"context"
	"fmt"
	"sync"

	"github.com/bnema/barcamp-grid/internal/domain"
	"github.com/bnema/barcamp-grid/internal/events"
	"github.com/bnema/barcamp-grid/internal/ports"
)

// Locator resolves the space room that stores the grid and the lobby room
// whose id is the grid's state key. Resolved rooms are cached.
type Locator struct {
	channel       ports.EventChannel
	currentRoomID string
	spaceOverride string

	mu      sync.Mutex
	spaceID string
	lobbyID string
}

// NewLocator creates a locator for currentRoomID. A non-empty spaceRoomID
// skips the m.space.parent lookup.
func NewLocator(channel ports.EventChannel, currentRoomID, spaceRoomID string) *Locator {
	return &Locator{
		channel:       channel,
		currentRoomID: currentRoomID,
		spaceOverride: spaceRoomID,
	}
}

func (l *Locator) CurrentRoomID() string {
	return l.currentRoomID
}

// SpaceRoomID returns the configured space, the canonical parent space of the
// current room, or the current room itself when it has no parent.
func (l *Locator) SpaceRoomID(ctx context.Context) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.spaceID != "" {
		return l.spaceID, nil
	}
	if l.spaceOverride != "" {
		l.spaceID = l.spaceOverride
		return l.spaceID, nil
	}
	if l.currentRoomID == "" {
		return "", domain.ErrNoSpace
	}

	parents, err := l.channel.ReadStateEvents(ctx, l.currentRoomID, events.TypeSpaceParent)
	if err != nil {
		return "", &domain.LoadError{Message: fmt.Sprintf("Could not determine space room: %v", err), Err: err}
	}

	l.spaceID = l.currentRoomID
	for _, parent := range parents {
		if parent.IsState() && parent.StateKeyValue() != "" && events.IsCanonicalSpaceParent(parent.Content) {
			l.spaceID = parent.StateKeyValue()
			break
		}
	}

	return l.spaceID, nil
}

// LobbyRoomID returns the room the grid belongs to. Session rooms linked to
// a grid resolve to the grid's lobby; the result is confirmed by a valid
// grid stored under that state key.
func (l *Locator) LobbyRoomID(ctx context.Context) (string, error) {
	spaceID, err := l.SpaceRoomID(ctx)
	if err != nil {
		return "", err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.lobbyID != "" {
		return l.lobbyID, nil
	}
	if l.currentRoomID == "" {
		return "", domain.ErrCurrentRoomUnknown
	}

	candidate := l.currentRoomID
	linked, err := l.channel.ReadStateEvents(ctx, l.currentRoomID, events.TypeLinkedRoom)
	if err != nil {
		return "", &domain.LoadError{Message: fmt.Sprintf("Could not determine lobby room: %v", err), Err: err}
	}
	for _, event := range linked {
		if event.StateKeyValue() != l.currentRoomID {
			continue
		}
		if room, err := events.DecodeLinkedRoom(event.StateKeyValue(), event.Content); err == nil {
			candidate = room.SessionGridID
		}
	}

	grids, err := l.channel.ReadStateEvents(ctx, spaceID, events.TypeSessionGrid)
	if err != nil {
		return "", &domain.LoadError{Message: fmt.Sprintf("Could not determine lobby room: %v", err), Err: err}
	}
	if _, ok := latestGrid(grids, spaceID, candidate); !ok {
		return "", fmt.Errorf("no session grid for room %s: %w", candidate, domain.ErrNoSessionGrid)
	}

	l.lobbyID = candidate
	return l.lobbyID, nil
}

// Reset forgets resolved rooms, e.g. after the grid was set up.
func (l *Locator) Reset() {
	l.mu.Lock()
	l.spaceID = ""
	l.lobbyID = ""
	l.mu.Unlock()
}
