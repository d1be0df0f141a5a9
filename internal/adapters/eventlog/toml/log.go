// Package toml stores the event log of a planning session in a local TOML
// file. It stands in for a homeserver when working offline.
package toml

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/bnema/barcamp-grid/internal/ports"
	"github.com/oklog/ulid/v2"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

const (
	logPathKey          = "local.path"
	logFileMode         = 0o600
	logDirMode          = 0o700
	logConfigDir        = ".config/barcamp"
	logConfigFile       = "events.toml"
	tempFilePattern     = ".events-*.toml.tmp"
	defaultPollInterval = 500 * time.Millisecond
	defaultSender       = "@local:localhost"
	streamBuffer        = 64
)

// Log is a file backed ports.EventChannel. Every write appends an event;
// state reads return the newest event per state key.
type Log struct {
	path         string
	sender       string
	clock        ports.Clock
	pollInterval time.Duration
	mu           *sync.RWMutex
	entropy      *ulid.MonotonicEntropy
	entropyMu    sync.Mutex
}

type Option func(*Log)

// WithSender sets the user id recorded on written events.
func WithSender(sender string) Option {
	return func(l *Log) {
		if sender != "" {
			l.sender = sender
		}
	}
}

func WithClock(clock ports.Clock) Option {
	return func(l *Log) {
		if clock != nil {
			l.clock = clock
		}
	}
}

// WithPollInterval sets how often subscriptions look for new events.
func WithPollInterval(interval time.Duration) Option {
	return func(l *Log) {
		if interval > 0 {
			l.pollInterval = interval
		}
	}
}

var (
	lockRegistryMu sync.Mutex
	pathLockMap    = map[string]*sync.RWMutex{}
)

var _ ports.EventChannel = (*Log)(nil)

func NewLog(cfg *viper.Viper, opts ...Option) (*Log, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}
	cfg.SetDefault(logPathKey, filepath.Join(homeDir, logConfigDir, logConfigFile))

	path := cfg.GetString(logPathKey)
	if path == "" {
		return nil, errors.New("event log path is empty")
	}
	path, err = normalizePath(path)
	if err != nil {
		return nil, err
	}

	log := &Log{
		path:         path,
		sender:       defaultSender,
		clock:        ports.SystemClock{},
		pollInterval: defaultPollInterval,
		mu:           lockForPath(path),
		entropy:      ulid.Monotonic(rand.Reader, 0),
	}
	for _, opt := range opts {
		opt(log)
	}

	return log, nil
}

func (l *Log) Path() string {
	return l.path
}

func (l *Log) ReadStateEvents(ctx context.Context, roomID, eventType string) ([]ports.Event, error) {
	file, err := l.read(ctx)
	if err != nil {
		return nil, err
	}

	latest := map[string]int{}
	var order []string
	for i, entry := range file.Events {
		if entry.RoomID != roomID || entry.Type != eventType || entry.StateKey == nil {
			continue
		}
		if _, ok := latest[*entry.StateKey]; !ok {
			order = append(order, *entry.StateKey)
		}
		latest[*entry.StateKey] = i
	}

	events := make([]ports.Event, 0, len(order))
	for _, key := range order {
		events = append(events, fromSchema(file.Events[latest[key]]))
	}

	return events, nil
}

func (l *Log) ReadRoomEvents(ctx context.Context, roomID, eventType string) ([]ports.Event, error) {
	file, err := l.read(ctx)
	if err != nil {
		return nil, err
	}

	var events []ports.Event
	for _, entry := range file.Events {
		if entry.RoomID == roomID && entry.Type == eventType && entry.StateKey == nil {
			events = append(events, fromSchema(entry))
		}
	}

	return events, nil
}

// ReadRelations pages through events relating to eventID. Tokens are offsets
// into the matching events.
func (l *Log) ReadRelations(ctx context.Context, roomID, eventID string, query ports.RelationsQuery) (ports.RelationsPage, error) {
	file, err := l.read(ctx)
	if err != nil {
		return ports.RelationsPage{}, err
	}

	offset := 0
	if query.From != "" {
		offset, err = strconv.Atoi(query.From)
		if err != nil || offset < 0 {
			return ports.RelationsPage{}, fmt.Errorf("invalid relations token %q", query.From)
		}
	}

	var matching []ports.Event
	for _, entry := range file.Events {
		if entry.RoomID != roomID || entry.RelatesTo != eventID {
			continue
		}
		if query.RelationType != "" && entry.RelType != query.RelationType {
			continue
		}
		if query.EventType != "" && entry.Type != query.EventType {
			continue
		}
		matching = append(matching, fromSchema(entry))
	}

	if offset > len(matching) {
		offset = len(matching)
	}
	end := len(matching)
	if query.Limit > 0 && offset+query.Limit < end {
		end = offset + query.Limit
	}

	page := ports.RelationsPage{Events: matching[offset:end]}
	if end < len(matching) {
		page.NextToken = strconv.Itoa(end)
	}

	return page, nil
}

func (l *Log) SendStateEvent(ctx context.Context, roomID, eventType, stateKey string, content json.RawMessage) (ports.Event, error) {
	return l.append(ctx, roomID, eventType, &stateKey, content)
}

func (l *Log) SendRoomEvent(ctx context.Context, roomID, eventType string, content json.RawMessage) (ports.Event, error) {
	return l.append(ctx, roomID, eventType, nil, content)
}

// Subscribe polls the file and delivers events of eventType appended after
// the call, including those written by other processes.
func (l *Log) Subscribe(ctx context.Context, eventType string) (<-chan ports.Event, error) {
	file, err := l.read(ctx)
	if err != nil {
		return nil, err
	}
	seen := len(file.Events)

	stream := make(chan ports.Event, streamBuffer)
	go func() {
		defer close(stream)

		ticker := time.NewTicker(l.pollInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}

			file, err := l.read(ctx)
			if err != nil || len(file.Events) <= seen {
				continue
			}

			fresh := file.Events[seen:]
			seen = len(file.Events)
			for _, entry := range fresh {
				if entry.Type != eventType {
					continue
				}
				select {
				case stream <- fromSchema(entry):
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return stream, nil
}

func (l *Log) append(ctx context.Context, roomID, eventType string, stateKey *string, content json.RawMessage) (ports.Event, error) {
	if err := ctx.Err(); err != nil {
		return ports.Event{}, err
	}
	if !json.Valid(content) {
		return ports.Event{}, fmt.Errorf("event content of %s is not valid json", eventType)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	file, err := l.readSchema()
	if err != nil {
		return ports.Event{}, err
	}

	now := l.clock.Now()
	event := ports.Event{
		Type:           eventType,
		EventID:        "$" + l.newID(now),
		RoomID:         roomID,
		Sender:         l.sender,
		StateKey:       stateKey,
		OriginServerTS: now,
		Content:        content,
	}
	file.Events = append(file.Events, toSchema(event))

	if err := l.writeSchema(file); err != nil {
		return ports.Event{}, err
	}

	return event, nil
}

func (l *Log) newID(now time.Time) string {
	l.entropyMu.Lock()
	defer l.entropyMu.Unlock()

	return ulid.MustNew(ulid.Timestamp(now), l.entropy).String()
}

func (l *Log) read(ctx context.Context) (fileSchema, error) {
	if err := ctx.Err(); err != nil {
		return fileSchema{}, err
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.readSchema()
}

func (l *Log) readSchema() (fileSchema, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fileSchema{}, nil
		}
		return fileSchema{}, fmt.Errorf("read event log: %w", err)
	}

	var file fileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return fileSchema{}, fmt.Errorf("decode event log: %w", err)
	}
	if err := file.validateVersion(); err != nil {
		return fileSchema{}, err
	}
	file.applyDefaults()

	return file, nil
}

func normalizePath(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve event log path: %w", err)
	}

	return filepath.Clean(absPath), nil
}

func lockForPath(path string) *sync.RWMutex {
	lockRegistryMu.Lock()
	defer lockRegistryMu.Unlock()

	if mu, ok := pathLockMap[path]; ok {
		return mu
	}

	mu := &sync.RWMutex{}
	pathLockMap[path] = mu
	return mu
}

func (l *Log) writeSchema(file fileSchema) error {
	file.applyDefaults()

	if err := os.MkdirAll(filepath.Dir(l.path), logDirMode); err != nil {
		return fmt.Errorf("create event log directory: %w", err)
	}

	data, err := toml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encode event log: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(l.path), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp event log: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp event log: %w", err)
	}

	if err := tempFile.Chmod(logFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp event log: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp event log: %w", err)
	}

	if err := os.Rename(tempName, l.path); err != nil {
		return fmt.Errorf("replace event log: %w", err)
	}

	cleanup = false
	return nil
}
