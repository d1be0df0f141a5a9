package credentials

import (
	"context"
	"errors"
	"fmt"

	"github.com/bnema/barcamp-grid/internal/ports"
)

// ChainStore tries primary first and falls back to fallback on any error
// other than cancellation.
type ChainStore struct {
	primary  ports.SecretStore
	fallback ports.SecretStore
}

var _ ports.SecretStore = (*ChainStore)(nil)

func NewChainStore(primary, fallback ports.SecretStore) (*ChainStore, error) {
	if primary == nil {
		return nil, errors.New("primary secret store is nil")
	}
	if fallback == nil {
		return nil, errors.New("fallback secret store is nil")
	}
	return &ChainStore{primary: primary, fallback: fallback}, nil
}

// NewDefaultStore prefers pass and falls back to files below fileRoot.
func NewDefaultStore(fileRoot string) (*ChainStore, error) {
	return NewChainStore(NewPassStore(), NewFileStore(fileRoot))
}

func (s *ChainStore) Put(ctx context.Context, key string, value string) error {
	return s.try("put", func(store ports.SecretStore) error {
		return store.Put(ctx, key, value)
	})
}

func (s *ChainStore) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.try("get", func(store ports.SecretStore) error {
		var err error
		value, err = store.Get(ctx, key)
		return err
	})
	return value, err
}

func (s *ChainStore) Delete(ctx context.Context, key string) error {
	return s.try("delete", func(store ports.SecretStore) error {
		return store.Delete(ctx, key)
	})
}

func (s *ChainStore) try(op string, call func(ports.SecretStore) error) error {
	err := call(s.primary)
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	fallbackErr := call(s.fallback)
	if fallbackErr == nil {
		return nil
	}
	return fmt.Errorf("primary backend %s failed: %w; fallback backend %s failed: %w", op, err, op, fallbackErr)
}
