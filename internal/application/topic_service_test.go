package application

import (
	"encoding/json"
	"testing"

	"github.com/bnema/barcamp-grid/internal/domain"
	"github.com/bnema/barcamp-grid/internal/events"
	portmocks "github.com/bnema/barcamp-grid/internal/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTopicServiceCreateDoesNotOverwrite(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	service := NewTopicService(env.channel, env.locator)

	first, err := service.Create(env.ctx, "$sub", domain.Topic{
		Title:       "Go",
		Description: "Generics",
		Authors:     []domain.TopicAuthor{{ID: "@bob:example.org"}},
	})
	require.NoError(t, err)
	assert.Equal(t, domain.TopicID("$sub"), first.TopicID)

	again, err := service.Create(env.ctx, "$sub", domain.Topic{
		Title:       "Other",
		Description: "Other",
		Authors:     []domain.TopicAuthor{{ID: "@carol:example.org"}},
	})
	require.NoError(t, err)
	assert.Equal(t, first.EventID, again.EventID)
	assert.Equal(t, "Go", again.Content.Title)
	assert.Equal(t, 1, env.channel.writes())
}

func TestTopicServiceUpdateMerges(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	service := NewTopicService(env.channel, env.locator)
	_, err := service.Create(env.ctx, "$sub", domain.Topic{
		Title:       "Go",
		Description: "Generics",
		Authors:     []domain.TopicAuthor{{ID: "@bob:example.org"}},
	})
	require.NoError(t, err)

	pinned := true
	title := "Go 2"
	updated, err := service.Update(env.ctx, "$sub", domain.TopicChanges{Title: &title, Pinned: &pinned})
	require.NoError(t, err)

	assert.Equal(t, domain.Topic{
		Title:       "Go 2",
		Description: "Generics",
		Authors:     []domain.TopicAuthor{{ID: "@bob:example.org"}},
		Pinned:      true,
	}, updated.Content)

	got, err := service.Get(env.ctx, "$sub")
	require.NoError(t, err)
	assert.Equal(t, updated.Content, got.Content)
	assert.Equal(t, updated.EventID, got.EventID)
}

func TestTopicServiceGetMissing(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	service := NewTopicService(env.channel, env.locator)

	_, err := service.Get(env.ctx, "$missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrLoadFailed)
	assert.ErrorIs(t, err, domain.ErrTopicNotFound)
	assert.Equal(t, "Could not load topic $missing", err.Error())

	_, err = service.Update(env.ctx, "$missing", domain.TopicChanges{})
	assert.ErrorIs(t, err, domain.ErrTopicNotFound)
}

func TestTopicServiceRejectsInvalidTopic(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	service := NewTopicService(env.channel, env.locator)

	_, err := service.Create(env.ctx, "$sub", domain.Topic{Title: "No authors"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUpdateFailed)
	assert.Zero(t, env.channel.writes())
}

func TestTopicServiceRejectsEmptyDescriptionEdit(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	service := NewTopicService(env.channel, env.locator)
	_, err := service.Create(env.ctx, "$sub", domain.Topic{
		Title:       "Go",
		Description: "Generics",
		Authors:     []domain.TopicAuthor{{ID: testSender}},
	})
	require.NoError(t, err)

	empty := ""
	_, err = service.Update(env.ctx, "$sub", domain.TopicChanges{Description: &empty})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUpdateFailed)
	assert.ErrorIs(t, err, events.ErrInvalidContent)
	assert.Equal(t, 1, env.channel.writes())

	got, err := NewTopicService(env.channel, env.locator).Get(env.ctx, "$sub")
	require.NoError(t, err)
	assert.Equal(t, "Generics", got.Content.Description)
}

func TestTopicServiceListSkipsInvalidTopics(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	service := NewTopicService(env.channel, env.locator)
	_, err := env.log.SendStateEvent(env.ctx, testSpaceID, events.TypeTopic, "$broken", json.RawMessage(`{"title":""}`))
	require.NoError(t, err)
	for _, id := range []domain.TopicID{"$b", "$a"} {
		_, err := service.Create(env.ctx, id, domain.Topic{
			Title:       string(id),
			Description: "d",
			Authors:     []domain.TopicAuthor{{ID: testSender}},
		})
		require.NoError(t, err)
	}

	topics, err := service.List(env.ctx)
	require.NoError(t, err)
	require.Len(t, topics, 2)
	assert.Equal(t, domain.TopicID("$a"), topics[0].TopicID)
	assert.Equal(t, domain.TopicID("$b"), topics[1].TopicID)
}

func TestTopicServiceWithoutSpace(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	locator := portmocks.NewMockRoomLocator(t)
	locator.EXPECT().SpaceRoomID(mockAnyContext()).Return("", domain.ErrNoSpace).Times(2)
	service := NewTopicService(env.channel, locator)

	_, err := service.List(env.ctx)
	require.ErrorIs(t, err, domain.ErrNoSpace)

	_, err = service.Get(env.ctx, "$sub")
	require.ErrorIs(t, err, domain.ErrNoSpace)
	assert.Zero(t, env.channel.writes())
}
