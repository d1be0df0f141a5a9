package credentials

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/bnema/barcamp-grid/internal/ports"
)

var ErrPassUnavailable = errors.New("pass command unavailable")

// passMissingEntry is how pass reports an unknown entry on stderr.
const passMissingEntry = "is not in the password store"

type runFunc func(ctx context.Context, input string, args ...string) (stdout string, stderr string, err error)

// PassStore keeps secrets in the password-store of the current user. Secrets
// are written as multi-line entries so JSON values survive unchanged.
type PassStore struct {
	run runFunc
}

var _ ports.SecretStore = (*PassStore)(nil)

func NewPassStore() *PassStore {
	return &PassStore{run: runPass}
}

func (s *PassStore) Put(ctx context.Context, key string, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := checkSecretKey(key); err != nil {
		return err
	}

	_, stderr, err := s.run(ctx, value+"\n", "insert", "--multiline", "--force", key)
	return passError("insert", key, err, stderr)
}

func (s *PassStore) Get(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := checkSecretKey(key); err != nil {
		return "", err
	}

	stdout, stderr, err := s.run(ctx, "", "show", key)
	if err := passError("show", key, err, stderr); err != nil {
		return "", err
	}

	return strings.TrimRight(stdout, "\r\n"), nil
}

// Delete removes key. Unknown entries are not an error.
func (s *PassStore) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := checkSecretKey(key); err != nil {
		return err
	}

	_, stderr, err := s.run(ctx, "", "rm", "--force", key)
	if err := passError("rm", key, err, stderr); err != nil && !errors.Is(err, ErrSecretNotFound) {
		return err
	}
	return nil
}

func runPass(ctx context.Context, input string, args ...string) (string, string, error) {
	path, err := exec.LookPath("pass")
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return "", "", ErrPassUnavailable
		}
		return "", "", fmt.Errorf("locate pass command: %w", err)
	}

	cmd := exec.CommandContext(ctx, path, args...)
	if input != "" {
		cmd.Stdin = strings.NewReader(input)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err = cmd.Run()
	return stdout.String(), strings.TrimSpace(stderr.String()), err
}

// passError returns nil for a nil err and classifies unknown entries as
// ErrSecretNotFound.
func passError(op string, key string, err error, stderr string) error {
	switch {
	case err == nil:
		return nil
	case strings.Contains(stderr, passMissingEntry):
		return fmt.Errorf("pass %s: %w: %q", op, ErrSecretNotFound, key)
	case stderr == "":
		return fmt.Errorf("pass %s %q: %w", op, key, err)
	default:
		return fmt.Errorf("pass %s %q: %w: %s", op, key, err, stderr)
	}
}
