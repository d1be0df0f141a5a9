package credentials

import (
	"context"
	"errors"
	"testing"

	portmocks "github.com/bnema/barcamp-grid/internal/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const aliceKey = "barcamp/matrix/matrix.example.org/@alice:example.org"

func TestKey(t *testing.T) {
	t.Parallel()

	key, err := Key("https://matrix.example.org", "@alice:example.org")
	require.NoError(t, err)
	assert.Equal(t, aliceKey, key)

	_, err = Key("not a url", "@alice:example.org")
	assert.ErrorContains(t, err, "invalid homeserver url")

	_, err = Key("https://matrix.example.org", "alice")
	assert.ErrorContains(t, err, "invalid matrix user id")

	_, err = Key("https://matrix.example.org", "@../../etc:example.org")
	assert.ErrorContains(t, err, "invalid matrix user id")
}

func TestVaultRoundTripThroughFileStore(t *testing.T) {
	t.Parallel()

	vault := NewVault(NewFileStore(t.TempDir()))
	creds := Credentials{
		HomeserverURL: "https://matrix.example.org",
		UserID:        "@alice:example.org",
		AccessToken:   "syt_token",
		DeviceID:      "BCGDEVICE",
	}

	require.NoError(t, vault.Save(context.Background(), creds))

	loaded, err := vault.Load(context.Background(), creds.HomeserverURL, creds.UserID)
	require.NoError(t, err)
	assert.Equal(t, creds, loaded)

	require.NoError(t, vault.Forget(context.Background(), creds.HomeserverURL, creds.UserID))

	_, err = vault.Load(context.Background(), creds.HomeserverURL, creds.UserID)
	assert.ErrorIs(t, err, ErrNotLoggedIn)
}

func TestVaultSaveRejectsEmptyToken(t *testing.T) {
	t.Parallel()

	store := portmocks.NewMockSecretStore(t)
	vault := NewVault(store)

	err := vault.Save(context.Background(), Credentials{
		HomeserverURL: "https://matrix.example.org",
		UserID:        "@alice:example.org",
	})
	assert.ErrorContains(t, err, "access token is empty")
}

func TestVaultLoadKeepsCancellation(t *testing.T) {
	t.Parallel()

	store := portmocks.NewMockSecretStore(t)
	store.EXPECT().Get(mock.Anything, aliceKey).Return("", context.Canceled).Once()

	_, err := NewVault(store).Load(context.Background(), "https://matrix.example.org", "@alice:example.org")
	require.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, ErrNotLoggedIn)
}

func TestVaultLoadRejectsGarbage(t *testing.T) {
	t.Parallel()

	store := portmocks.NewMockSecretStore(t)
	store.EXPECT().Get(mock.Anything, aliceKey).Return("not json", nil).Once()

	_, err := NewVault(store).Load(context.Background(), "https://matrix.example.org", "@alice:example.org")
	assert.ErrorContains(t, err, "decode credentials")
}

func TestVaultForgetWrapsStoreError(t *testing.T) {
	t.Parallel()

	store := portmocks.NewMockSecretStore(t)
	store.EXPECT().Delete(mock.Anything, aliceKey).Return(errors.New("locked")).Once()

	err := NewVault(store).Forget(context.Background(), "https://matrix.example.org", "@alice:example.org")
	assert.ErrorContains(t, err, "delete credentials: locked")
}
