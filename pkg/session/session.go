// Package session provides the unit of work that bridges a relational
// transaction and the search-index commit synchronizer. Services mark the
// entities they created, updated or deleted on the session; Commit runs the
// synchronizer's pre-commit phase, commits the transaction and only then
// flushes the search index.
package session

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/sensorhub/sensor-management-system/pkg/search"
)

// ErrClosed is returned when a session is committed or used after it ended.
var ErrClosed = errors.New("session is closed")

// DB is the subset of pgxpool.Pool the factory needs. pgxmock satisfies it
// in tests.
type DB interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Factory creates sessions bound to the database and, when wired, the commit
// synchronizer. The synchronizer is attached explicitly at startup; a nil
// synchronizer disables index maintenance (used by tools that must not touch
// the index).
type Factory struct {
	db           DB
	synchronizer *search.Synchronizer
}

func NewFactory(db DB, synchronizer *search.Synchronizer) *Factory {
	return &Factory{db: db, synchronizer: synchronizer}
}

func (f *Factory) Begin(ctx context.Context) (*Session, error) {
	tx, err := f.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	return &Session{
		tx:           tx,
		synchronizer: f.synchronizer,
		states:       make(map[string]entityState),
		entities:     make(map[string]search.Entity),
	}, nil
}

type entityState uint8

const (
	stateCreated entityState = iota + 1
	stateUpdated
	stateDeleted
)

// Session tracks the entities changed within one transaction. The tracked
// sets stay disjoint: an entity created and then updated stays created, one
// created and then deleted never reaches the index at all, one updated and
// then deleted counts as deleted.
type Session struct {
	tx           pgx.Tx
	synchronizer *search.Synchronizer

	order    []string
	states   map[string]entityState
	entities map[string]search.Entity
	closed   bool
}

// Tx exposes the underlying transaction for SQL statements.
func (s *Session) Tx() pgx.Tx {
	return s.tx
}

func (s *Session) MarkCreated(entity search.Entity) {
	key := s.track(entity)
	if _, ok := s.states[key]; !ok {
		s.states[key] = stateCreated
	}
}

func (s *Session) MarkUpdated(entity search.Entity) {
	key := s.track(entity)
	if s.states[key] != stateCreated {
		s.states[key] = stateUpdated
	}
}

func (s *Session) MarkDeleted(entity search.Entity) {
	key := s.track(entity)
	if s.states[key] == stateCreated {
		delete(s.states, key)
		delete(s.entities, key)
		return
	}
	s.states[key] = stateDeleted
}

// Commit runs the pre-commit snapshot, commits the transaction and flushes
// the staged index writes. A pre-commit error rolls the transaction back; a
// failed commit leaves the index untouched.
func (s *Session) Commit(ctx context.Context) error {
	if s.closed {
		return ErrClosed
	}
	s.closed = true

	var commitContext *search.CommitContext
	if s.synchronizer != nil {
		var err error
		commitContext, err = s.synchronizer.BeforeCommit(s.changeSet())
		if err != nil {
			_ = s.tx.Rollback(ctx)
			return err
		}
	}

	if err := s.tx.Commit(ctx); err != nil {
		return err
	}

	if s.synchronizer != nil {
		s.synchronizer.AfterCommit(ctx, commitContext)
	}
	return nil
}

// Rollback aborts the transaction and discards all tracked changes. Safe to
// defer after Commit.
func (s *Session) Rollback(ctx context.Context) error {
	if s.closed {
		return nil
	}
	s.closed = true
	return s.tx.Rollback(ctx)
}

func (s *Session) track(entity search.Entity) string {
	key := entity.SearchType() + "/" + entity.SearchID()
	if _, ok := s.entities[key]; !ok {
		s.order = append(s.order, key)
	}
	s.entities[key] = entity
	return key
}

func (s *Session) changeSet() search.ChangeSet {
	var changes search.ChangeSet
	for _, key := range s.order {
		entity, ok := s.entities[key]
		if !ok {
			continue
		}
		switch s.states[key] {
		case stateCreated:
			changes.Created = append(changes.Created, entity)
		case stateUpdated:
			changes.Updated = append(changes.Updated, entity)
		case stateDeleted:
			changes.Deleted = append(changes.Deleted, entity)
		}
	}
	return changes
}
