// Package credentials keeps Matrix access tokens out of the config file.
// Tokens live in pass when it is installed and in private files otherwise.
package credentials

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/bnema/barcamp-grid/internal/ports"
)

const keyPrefix = "barcamp/matrix"

var ErrNotLoggedIn = errors.New("not logged in")

// Credentials are the result of a login against one homeserver.
type Credentials struct {
	HomeserverURL string `json:"homeserver_url"`
	UserID        string `json:"user_id"`
	AccessToken   string `json:"access_token"`
	DeviceID      string `json:"device_id,omitempty"`
}

// Vault stores Credentials in a ports.SecretStore, one secret per
// homeserver and user.
type Vault struct {
	store ports.SecretStore
}

func NewVault(store ports.SecretStore) *Vault {
	return &Vault{store: store}
}

// Key returns the secret key of userID on homeserverURL, e.g.
// "barcamp/matrix/example.org/@alice:example.org".
func Key(homeserverURL, userID string) (string, error) {
	parsed, err := url.Parse(homeserverURL)
	if err != nil || parsed.Host == "" {
		return "", fmt.Errorf("invalid homeserver url %q", homeserverURL)
	}
	if !strings.HasPrefix(userID, "@") || strings.ContainsAny(userID, "/\\") {
		return "", fmt.Errorf("invalid matrix user id %q", userID)
	}
	return keyPrefix + "/" + parsed.Host + "/" + userID, nil
}

func (v *Vault) Save(ctx context.Context, creds Credentials) error {
	if creds.AccessToken == "" {
		return errors.New("access token is empty")
	}

	key, err := Key(creds.HomeserverURL, creds.UserID)
	if err != nil {
		return err
	}

	data, err := json.Marshal(creds)
	if err != nil {
		return fmt.Errorf("encode credentials: %w", err)
	}

	if err := v.store.Put(ctx, key, string(data)); err != nil {
		return fmt.Errorf("store credentials: %w", err)
	}
	return nil
}

func (v *Vault) Load(ctx context.Context, homeserverURL, userID string) (Credentials, error) {
	key, err := Key(homeserverURL, userID)
	if err != nil {
		return Credentials{}, err
	}

	raw, err := v.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return Credentials{}, err
		}
		return Credentials{}, fmt.Errorf("%w as %s on %s: %w", ErrNotLoggedIn, userID, homeserverURL, err)
	}

	var creds Credentials
	if err := json.Unmarshal([]byte(raw), &creds); err != nil {
		return Credentials{}, fmt.Errorf("decode credentials: %w", err)
	}
	if creds.AccessToken == "" {
		return Credentials{}, fmt.Errorf("%w as %s on %s", ErrNotLoggedIn, userID, homeserverURL)
	}
	return creds, nil
}

func (v *Vault) Forget(ctx context.Context, homeserverURL, userID string) error {
	key, err := Key(homeserverURL, userID)
	if err != nil {
		return err
	}

	if err := v.store.Delete(ctx, key); err != nil {
		return fmt.Errorf("delete credentials: %w", err)
	}
	return nil
}
