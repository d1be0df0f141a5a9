package application

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/bnema/barcamp-grid/internal/domain"
	"github.com/bnema/barcamp-grid/internal/events"
	"github.com/bnema/barcamp-grid/internal/ports"
	"github.com/bnema/barcamp-grid/internal/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu     sync.Mutex
	events []domain.GridEvent
}

func (r *recorder) record(event domain.GridEvent) {
	r.mu.Lock()
	r.events = append(r.events, event)
	r.mu.Unlock()
}

func (r *recorder) snapshot() []domain.GridEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.GridEvent(nil), r.events...)
}

func TestGridStoreGetWithoutGrid(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	_, err := env.store.Get(env.ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNoSessionGrid)
}

func TestGridStoreGetIgnoresInvalidDocuments(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	_, err := env.log.SendStateEvent(env.ctx, testSpaceID, events.TypeSessionGrid, testRoomID, json.RawMessage(`{"tracks":"nope"}`))
	require.NoError(t, err)

	_, err = env.store.Get(env.ctx)
	assert.ErrorIs(t, err, domain.ErrNoSessionGrid)
}

func TestGridStoreGetLoadsLatestGrid(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.seedGrid(t, sampleGrid())
	written := env.seedGrid(t, sampleGrid())

	got, err := env.store.Get(env.ctx)
	require.NoError(t, err)

	assert.Equal(t, written.EventID, got.EventID)
	assert.Equal(t, testSpaceID, got.RoomID)
	assert.Equal(t, testRoomID, got.StateKey)
	assert.Equal(t, testSender, got.Sender)
	assert.Equal(t, sampleGrid().Tracks, got.Content.Tracks)
}

func TestGridStoreUpdateWithoutGrid(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	_, err := env.store.Update(env.ctx, deleteTopicRecipe("topic-x"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUpdateFailed)
	assert.Equal(t, "No session grid found", err.Error())
	assert.Zero(t, env.channel.writes())
}

func TestGridStoreUpdatePublishesOptimisticallyThenReconciles(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	base := env.seedGrid(t, sampleGrid())
	_, err := env.store.Get(env.ctx)
	require.NoError(t, err)

	var seen recorder
	unsubscribe := env.store.Subscribe(seen.record)
	defer unsubscribe()

	updated, err := env.store.Update(env.ctx, deleteTrackRecipe("track-a"))
	require.NoError(t, err)

	published := seen.snapshot()
	require.Len(t, published, 2)
	assert.Equal(t, base.EventID, published[0].EventID, "optimistic version keeps the base event id")
	assert.Len(t, published[0].Content.Tracks, 1)
	assert.Equal(t, updated.EventID, published[1].EventID)
	assert.NotEqual(t, base.EventID, updated.EventID)

	reloaded := newTestEnvAt(t, env.path, testRoomID)
	persisted, err := reloaded.store.Get(env.ctx)
	require.NoError(t, err)
	assert.Equal(t, updated.EventID, persisted.EventID)
	assert.Equal(t, []domain.ParkingLotEntry{{TopicID: "topic-x"}, {TopicID: "topic-y"}}, persisted.Content.ParkingLot)
}

func TestGridStoreUpdateRecipeFailureKeepsDocument(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	grid := sampleGrid()
	grid.Tracks = grid.Tracks[:1]
	base := env.seedGrid(t, grid)

	var seen recorder
	env.store.Subscribe(seen.record)
	before, err := env.store.Get(env.ctx)
	require.NoError(t, err)
	writesBefore := env.channel.writes()

	_, err = env.store.Update(env.ctx, deleteTrackRecipe("track-a"))
	require.Error(t, err)
	assert.Equal(t, "Can not delete last track", err.Error())

	after, err := env.store.Get(env.ctx)
	require.NoError(t, err)
	assert.Equal(t, before, after)
	assert.Equal(t, base.EventID, after.EventID)
	assert.Equal(t, writesBefore, env.channel.writes())

	for _, event := range seen.snapshot() {
		assert.Len(t, event.Content.Tracks, 1)
	}
}

func TestGridStoreUpdateRollsBackOnWriteFailure(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.seedGrid(t, sampleGrid())
	before, err := env.store.Get(env.ctx)
	require.NoError(t, err)

	var seen recorder
	env.store.Subscribe(seen.record)
	forbidden := errors.New("M_FORBIDDEN: not allowed")
	env.channel.failStateWrites(forbidden)

	_, err = env.store.Update(env.ctx, deleteTrackRecipe("track-a"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUpdateFailed)
	assert.ErrorIs(t, err, forbidden)
	assert.Equal(t, "Could not update the session grid: M_FORBIDDEN: not allowed", err.Error())

	published := seen.snapshot()
	require.Len(t, published, 2)
	assert.Len(t, published[0].Content.Tracks, 1, "optimistic version")
	assert.Equal(t, before, published[1], "rollback restores the snapshot")

	after, err := env.store.Get(env.ctx)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestGridStoreUpdateRejectsUnreadableDraft(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.seedGrid(t, sampleGrid())
	before, err := env.store.Get(env.ctx)
	require.NoError(t, err)

	var seen recorder
	env.store.Subscribe(seen.record)

	empty := ""
	_, err = env.store.Update(env.ctx, updateTrackRecipe("track-a", TrackChanges{Name: &empty}))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUpdateFailed)
	assert.ErrorIs(t, err, events.ErrInvalidContent)
	assert.Empty(t, seen.snapshot(), "an unreadable draft is never published")
	assert.Zero(t, env.channel.writes())

	fresh, err := NewGridStore(env.channel, env.locator, discardLogger()).Get(env.ctx)
	require.NoError(t, err)
	assert.Equal(t, before.EventID, fresh.EventID)
	assert.Equal(t, "Track 1", fresh.Content.Tracks[0].Name)
}

func TestTransactionRollbackKeepsNewerRemoteVersion(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.seedGrid(t, sampleGrid())
	base, err := env.store.Get(env.ctx)
	require.NoError(t, err)

	tx := env.store.Begin(base)
	require.NoError(t, tx.Apply(deleteTopicRecipe("topic-x")))

	remote := base
	remote.EventID = "$remote"
	env.store.setCurrent(remote)

	tx.Rollback()

	current, err := env.store.Get(env.ctx)
	require.NoError(t, err)
	assert.Equal(t, "$remote", current.EventID)
}

func TestTransactionLifecycle(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.seedGrid(t, sampleGrid())
	base, err := env.store.Get(env.ctx)
	require.NoError(t, err)

	tx := env.store.Begin(base)
	_, err = tx.Commit(env.ctx)
	require.ErrorIs(t, err, ErrTransactionNotApplied)

	require.NoError(t, tx.Apply(deleteTopicRecipe("topic-x")))
	require.ErrorIs(t, tx.Apply(deleteTopicRecipe("topic-y")), ErrTransactionClosed)

	committed, err := tx.Commit(env.ctx)
	require.NoError(t, err)
	assert.Empty(t, committed.Content.Sessions)

	_, err = tx.Commit(env.ctx)
	require.ErrorIs(t, err, ErrTransactionClosed)

	tx.Rollback()
	current, err := env.store.Get(env.ctx)
	require.NoError(t, err)
	assert.Equal(t, committed.EventID, current.EventID, "rollback after commit is a no-op")
}

func TestGridStoreSubscribeReturnsUnsubscribe(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.seedGrid(t, sampleGrid())

	var seen recorder
	unsubscribe := env.store.Subscribe(seen.record)
	_, err := env.store.Refresh(env.ctx)
	require.NoError(t, err)

	unsubscribe()
	unsubscribe()
	_, err = env.store.Refresh(env.ctx)
	require.NoError(t, err)

	assert.Len(t, seen.snapshot(), 1)
}

func TestGridStoreRunAppliesRemoteVersions(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.seedGrid(t, sampleGrid())
	_, err := env.store.Get(env.ctx)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(env.ctx)
	done := make(chan error, 1)
	go func() { done <- env.store.Run(ctx) }()

	// Give the subscription time to start before writing.
	time.Sleep(50 * time.Millisecond)

	other := newTestEnvAt(t, env.path, testRoomID)
	remote, err := other.store.Update(env.ctx, deleteTopicRecipe("topic-y"))
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		current, err := env.store.Get(env.ctx)
		return err == nil && current.EventID == remote.EventID
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("run did not stop")
	}
}

func TestGridStoreRunReportsClosedSubscription(t *testing.T) {
	t.Parallel()

	stream := make(chan ports.Event)
	close(stream)
	channel := mocks.NewMockEventChannel(t)
	channel.EXPECT().Subscribe(mockAnyContext(), events.TypeSessionGrid).Return((<-chan ports.Event)(stream), nil).Once()

	store := NewGridStore(channel, NewLocator(channel, testRoomID, testSpaceID), discardLogger())

	err := store.Run(context.Background())
	assert.ErrorIs(t, err, ErrSubscriptionClosed)
}

func TestLatestGridFiltersByLocation(t *testing.T) {
	t.Parallel()

	content, err := events.EncodeSessionGrid(sampleGrid())
	require.NoError(t, err)
	key := testRoomID
	otherKey := "!other:example.org"

	batch := []struct {
		id, room string
		key      *string
	}{
		{id: "$match", room: testSpaceID, key: &key},
		{id: "$other-key", room: testSpaceID, key: &otherKey},
		{id: "$other-room", room: "!elsewhere", key: &key},
		{id: "$room-event", room: testSpaceID},
	}

	var candidates []ports.Event
	for _, entry := range batch {
		candidates = append(candidates, ports.Event{
			Type: events.TypeSessionGrid, EventID: entry.id, RoomID: entry.room, StateKey: entry.key, Content: content,
		})
	}

	got, ok := latestGrid(candidates, testSpaceID, testRoomID)
	require.True(t, ok)
	assert.Equal(t, "$match", got.EventID)
}

func TestDrainCollectsQueuedEvents(t *testing.T) {
	t.Parallel()

	stream := make(chan ports.Event, 4)
	for _, id := range []string{"$1", "$2", "$3"} {
		stream <- ports.Event{EventID: id}
	}

	batch := drain(stream)
	ids := make([]string, 0, len(batch))
	for _, event := range batch {
		ids = append(ids, event.EventID)
	}
	assert.Equal(t, []string{"$1", "$2", "$3"}, ids)
	assert.Empty(t, drain(stream), "nothing queued")

	close(stream)
	assert.Empty(t, drain(stream), "closed stream")
}

func TestGridStoreCreateWaitsForRunningUpdate(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.store.updateMu.Lock()

	done := make(chan error, 1)
	go func() {
		_, err := env.store.create(env.ctx, testSpaceID, testRoomID, sampleGrid())
		done <- err
	}()

	select {
	case <-done:
		t.Fatal("create finished while an update held the lock")
	case <-time.After(50 * time.Millisecond):
	}
	assert.Zero(t, env.channel.writes())

	env.store.updateMu.Unlock()
	require.NoError(t, <-done)

	got, err := env.store.Get(env.ctx)
	require.NoError(t, err)
	assert.Equal(t, sampleGrid(), got.Content)
}
