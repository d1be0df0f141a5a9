package credentials

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"unicode"

	"github.com/bnema/barcamp-grid/internal/ports"
	toml "github.com/pelletier/go-toml/v2"
)

const (
	keyringFile        = "credentials.toml"
	keyringVersion     = 1
	keyringDirMode     = 0o700
	keyringFileMode    = 0o600
	keyringTempPattern = ".credentials-*.toml.tmp"
)

var ErrSecretNotFound = errors.New("secret not found")

type keyringSchema struct {
	Version int               `toml:"version"`
	Secrets map[string]string `toml:"secrets"`
}

// FileStore keeps every secret in one private TOML keyring below root. It is
// the fallback for machines without pass.
type FileStore struct {
	path string
	mu   sync.Mutex
}

var _ ports.SecretStore = (*FileStore)(nil)

func NewFileStore(root string) *FileStore {
	return &FileStore{path: filepath.Join(filepath.Clean(root), keyringFile)}
}

// Path is the keyring file.
func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) Put(ctx context.Context, key string, value string) error {
	return s.edit(ctx, key, func(secrets map[string]string) bool {
		secrets[key] = value
		return true
	})
}

func (s *FileStore) Get(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := checkSecretKey(key); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	keyring, err := s.read()
	if err != nil {
		return "", err
	}
	value, ok := keyring.Secrets[key]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrSecretNotFound, key)
	}
	return value, nil
}

// Delete removes key. The keyring file goes away with its last secret.
func (s *FileStore) Delete(ctx context.Context, key string) error {
	return s.edit(ctx, key, func(secrets map[string]string) bool {
		if _, ok := secrets[key]; !ok {
			return false
		}
		delete(secrets, key)
		return true
	})
}

func (s *FileStore) edit(ctx context.Context, key string, change func(map[string]string) bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := checkSecretKey(key); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	keyring, err := s.read()
	if err != nil {
		return err
	}
	if !change(keyring.Secrets) {
		return nil
	}
	if len(keyring.Secrets) == 0 {
		if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("remove keyring: %w", err)
		}
		return nil
	}
	return s.write(keyring)
}

func (s *FileStore) read() (keyringSchema, error) {
	keyring := keyringSchema{Version: keyringVersion, Secrets: map[string]string{}}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return keyring, nil
		}
		return keyringSchema{}, fmt.Errorf("read keyring: %w", err)
	}

	if err := toml.Unmarshal(data, &keyring); err != nil {
		return keyringSchema{}, fmt.Errorf("decode keyring %s: %w", s.path, err)
	}
	if keyring.Version > keyringVersion {
		return keyringSchema{}, fmt.Errorf("keyring version %d is newer than supported version %d", keyring.Version, keyringVersion)
	}
	if keyring.Secrets == nil {
		keyring.Secrets = map[string]string{}
	}
	return keyring, nil
}

func (s *FileStore) write(keyring keyringSchema) error {
	keyring.Version = keyringVersion

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, keyringDirMode); err != nil {
		return fmt.Errorf("create keyring directory: %w", err)
	}

	data, err := toml.Marshal(keyring)
	if err != nil {
		return fmt.Errorf("encode keyring: %w", err)
	}

	tempFile, err := os.CreateTemp(dir, keyringTempPattern)
	if err != nil {
		return fmt.Errorf("create temp keyring: %w", err)
	}
	tempName := tempFile.Name()
	defer func() { _ = os.Remove(tempName) }()

	if err := tempFile.Chmod(keyringFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp keyring: %w", err)
	}
	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp keyring: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp keyring: %w", err)
	}

	if err := os.Rename(tempName, s.path); err != nil {
		return fmt.Errorf("replace keyring: %w", err)
	}
	return nil
}

func checkSecretKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return errors.New("secret key is empty")
	}
	if strings.IndexFunc(key, unicode.IsControl) >= 0 {
		return fmt.Errorf("invalid secret key %q", key)
	}
	return nil
}
