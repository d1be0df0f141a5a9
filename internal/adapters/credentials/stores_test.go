package credentials

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	portmocks "github.com/bnema/barcamp-grid/internal/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestFileStoreKeepsSecretsInPrivateKeyring(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	root := t.TempDir()
	store := NewFileStore(root)
	bobKey := "barcamp/matrix/matrix.example.org/@bob:example.org"

	require.NoError(t, store.Put(ctx, aliceKey, `{"access_token":"a"}`))
	require.NoError(t, store.Put(ctx, bobKey, "b"))
	require.NoError(t, store.Put(ctx, aliceKey, `{"access_token":"a2"}`))

	assert.Equal(t, filepath.Join(root, keyringFile), store.Path())
	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(keyringFileMode), info.Mode().Perm())

	reopened := NewFileStore(root)
	value, err := reopened.Get(ctx, aliceKey)
	require.NoError(t, err)
	assert.Equal(t, `{"access_token":"a2"}`, value)
	value, err = reopened.Get(ctx, bobKey)
	require.NoError(t, err)
	assert.Equal(t, "b", value)

	require.NoError(t, reopened.Delete(ctx, aliceKey))
	_, err = reopened.Get(ctx, aliceKey)
	assert.ErrorIs(t, err, ErrSecretNotFound)

	require.NoError(t, reopened.Delete(ctx, bobKey))
	assert.NoFileExists(t, store.Path())
}

func TestFileStoreRejectsInvalidKeys(t *testing.T) {
	t.Parallel()

	store := NewFileStore(t.TempDir())
	for _, key := range []string{"", " ", "line\nbreak"} {
		assert.Error(t, store.Put(context.Background(), key, "x"), key)
	}
	assert.NoFileExists(t, store.Path())
}

func TestFileStoreRejectsNewerKeyring(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, keyringFile), []byte("version = 9\n"), keyringFileMode))

	_, err := NewFileStore(root).Get(context.Background(), aliceKey)
	assert.ErrorContains(t, err, "keyring version 9 is newer")
}

func TestFileStoreDeleteMissingIsNoError(t *testing.T) {
	t.Parallel()

	assert.NoError(t, NewFileStore(t.TempDir()).Delete(context.Background(), aliceKey))
}

func TestPassStoreCommands(t *testing.T) {
	t.Parallel()

	var calls [][]string
	store := &PassStore{
		run: func(ctx context.Context, input string, args ...string) (string, string, error) {
			calls = append(calls, append([]string{input}, args...))
			return "{\"access_token\":\"t\"}\n", "", nil
		},
	}

	require.NoError(t, store.Put(context.Background(), aliceKey, "secret"))
	value, err := store.Get(context.Background(), aliceKey)
	require.NoError(t, err)
	require.NoError(t, store.Delete(context.Background(), aliceKey))

	assert.Equal(t, "{\"access_token\":\"t\"}", value)
	assert.Equal(t, [][]string{
		{"secret\n", "insert", "--multiline", "--force", aliceKey},
		{"", "show", aliceKey},
		{"", "rm", "--force", aliceKey},
	}, calls)
}

func TestPassStoreErrorCarriesStderr(t *testing.T) {
	t.Parallel()

	store := &PassStore{
		run: func(ctx context.Context, input string, args ...string) (string, string, error) {
			return "", "entry not found", errors.New("exit status 1")
		},
	}

	_, err := store.Get(context.Background(), aliceKey)
	require.Error(t, err)
	assert.ErrorContains(t, err, "pass show")
	assert.ErrorContains(t, err, "entry not found")
}

func TestPassStoreMissingEntry(t *testing.T) {
	t.Parallel()

	store := &PassStore{
		run: func(ctx context.Context, input string, args ...string) (string, string, error) {
			return "", "Error: " + aliceKey + " is not in the password store.", errors.New("exit status 1")
		},
	}

	_, err := store.Get(context.Background(), aliceKey)
	assert.ErrorIs(t, err, ErrSecretNotFound)
	assert.NoError(t, store.Delete(context.Background(), aliceKey))
}

func TestChainStoreFallsBack(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockSecretStore(t)
	fallback := portmocks.NewMockSecretStore(t)
	store, err := NewChainStore(primary, fallback)
	require.NoError(t, err)

	primary.EXPECT().Get(mock.Anything, aliceKey).Return("", ErrPassUnavailable).Once()
	fallback.EXPECT().Get(mock.Anything, aliceKey).Return("from-file", nil).Once()

	value, err := store.Get(context.Background(), aliceKey)
	require.NoError(t, err)
	assert.Equal(t, "from-file", value)
}

func TestChainStoreStopsOnCancellation(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockSecretStore(t)
	fallback := portmocks.NewMockSecretStore(t)
	store, err := NewChainStore(primary, fallback)
	require.NoError(t, err)

	primary.EXPECT().Put(mock.Anything, aliceKey, "v").Return(context.Canceled).Once()

	assert.ErrorIs(t, store.Put(context.Background(), aliceKey, "v"), context.Canceled)
}

func TestChainStoreCombinesErrors(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockSecretStore(t)
	fallback := portmocks.NewMockSecretStore(t)
	store, err := NewChainStore(primary, fallback)
	require.NoError(t, err)

	primary.EXPECT().Delete(mock.Anything, aliceKey).Return(errors.New("pass failed")).Once()
	fallback.EXPECT().Delete(mock.Anything, aliceKey).Return(errors.New("file failed")).Once()

	err = store.Delete(context.Background(), aliceKey)
	require.Error(t, err)
	assert.ErrorContains(t, err, "pass failed")
	assert.ErrorContains(t, err, "file failed")
}

func TestNewChainStoreRequiresBothBackends(t *testing.T) {
	t.Parallel()

	_, err := NewChainStore(nil, NewFileStore(t.TempDir()))
	assert.Error(t, err)
	_, err = NewChainStore(NewPassStore(), nil)
	assert.Error(t, err)
}
