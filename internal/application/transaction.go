package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/bnema/barcamp-grid/internal/domain"
	"github.com/bnema/barcamp-grid/internal/events"
)

type txState int

const (
	txOpen txState = iota
	txApplied
	txCommitted
	txRolledBack
)

var (
	ErrTransactionNotApplied = errors.New("transaction has no applied recipe")
	ErrTransactionClosed     = errors.New("transaction already closed")
)

// Transaction is one optimistic grid mutation: Apply publishes the new
// content locally, Commit persists it and Rollback restores the base.
type Transaction struct {
	store   *GridStore
	base    domain.GridEvent
	next    domain.GridEvent
	content json.RawMessage
	version uint64
	state   txState
}

func (s *GridStore) Begin(base domain.GridEvent) *Transaction {
	return &Transaction{store: s, base: base}
}

func (tx *Transaction) Base() domain.GridEvent {
	return tx.base
}

// Apply runs recipe on a copy of the base content and publishes the result.
// A failing recipe, or a draft readers would reject, publishes nothing and
// the transaction stays open.
func (tx *Transaction) Apply(recipe Recipe) error {
	if tx.state != txOpen {
		return ErrTransactionClosed
	}

	draft := tx.base.Content.Clone()
	if err := recipe(&draft); err != nil {
		return err
	}
	content, err := events.EncodeSessionGrid(draft)
	if err != nil {
		return &domain.UpdateError{Message: fmt.Sprintf("Invalid session grid: %v", err), Err: err}
	}

	tx.content = content
	tx.next = tx.base
	tx.next.Content = draft
	tx.version = tx.store.setCurrent(tx.next)
	tx.state = txApplied

	tx.store.logger.Debug("published optimistic session grid", "base_event_id", tx.base.EventID)
	return nil
}

// Commit writes the applied content to the event log and reconciles the
// cache with the persisted event.
func (tx *Transaction) Commit(ctx context.Context) (domain.GridEvent, error) {
	switch tx.state {
	case txOpen:
		return domain.GridEvent{}, ErrTransactionNotApplied
	case txCommitted, txRolledBack:
		return domain.GridEvent{}, ErrTransactionClosed
	}

	written, err := tx.store.channel.SendStateEvent(ctx, tx.base.RoomID, events.TypeSessionGrid, tx.base.StateKey, tx.content)
	if err != nil {
		return domain.GridEvent{}, &domain.UpdateError{
			Message: fmt.Sprintf("Could not update the session grid: %v", err),
			Err:     fmt.Errorf("send session grid: %w", err),
		}
	}

	grid, err := events.DecodeSessionGrid(written.Content)
	if err != nil {
		grid = tx.next.Content
	}
	event := gridEventFrom(written, grid)
	if event.RoomID == "" {
		event.RoomID = tx.base.RoomID
		event.StateKey = tx.base.StateKey
	}

	tx.store.restore(event, tx.version)
	tx.state = txCommitted

	tx.store.logger.Info("session grid updated", "event_id", event.EventID, "base_event_id", tx.base.EventID)
	return event, nil
}

// Rollback undoes the optimistic publish of Apply. It is a no-op for
// transactions that were never applied or are already closed, and it leaves
// newer versions received in the meantime in place.
func (tx *Transaction) Rollback() {
	if tx.state != txApplied {
		if tx.state == txOpen {
			tx.state = txRolledBack
		}
		return
	}

	restored := tx.store.restore(tx.base, tx.version)
	tx.state = txRolledBack

	tx.store.logger.Warn("rolled back optimistic session grid", "base_event_id", tx.base.EventID, "restored", restored)
}
