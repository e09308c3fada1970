//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks

/*
Package store persists participants and messages.

It exposes one interface per collection, mirroring find / findOne / insertOne / updateOne / deleteOne
on exact-match keys, and three drivers behind them: an in-process memory store, PostgreSQL and an
embedded Badger directory. Every driver enforces name uniqueness atomically and returns messages in
insertion order.
*/
package store

import (
	"context"
	"errors"
	"fmt"

	"batepapo/internal/app/model"
	"batepapo/internal/configs"
)

var (
	// ErrNotFound is returned when no record matches the requested key.
	ErrNotFound = errors.New("store: record not found")

	// ErrDuplicate is returned when inserting a participant whose name is already taken.
	ErrDuplicate = errors.New("store: duplicate record")
)

// Participants is the participants collection.
type Participants interface {
	// ListParticipants returns every participant.
	ListParticipants(ctx context.Context) ([]model.Participant, error)

	// GetParticipant returns the participant called name, or ErrNotFound.
	GetParticipant(ctx context.Context, name string) (model.Participant, error)

	// InsertParticipant stores p, or returns ErrDuplicate when p.Name is taken.
	InsertParticipant(ctx context.Context, p model.Participant) error

	// TouchParticipant sets the lastStatus of name, or returns ErrNotFound.
	TouchParticipant(ctx context.Context, name string, lastStatus int64) error

	// DeleteParticipant removes name, or returns ErrNotFound.
	DeleteParticipant(ctx context.Context, name string) error
}

// Messages is the append-only messages collection.
type Messages interface {
	// ListMessages returns every message in insertion order.
	ListMessages(ctx context.Context) ([]model.Message, error)

	// InsertMessage appends m.
	InsertMessage(ctx context.Context, m model.Message) error
}

// Store groups both collections behind one handle shared by the whole process.
type Store interface {
	Participants
	Messages

	// Close releases the underlying connection or files.
	Close() error
}

// Open connects the driver selected by cfg.StoreDriver.
func Open(ctx context.Context, cfg *configs.AppConfig) (Store, error) {
	switch cfg.StoreDriver {
	case configs.DriverMemory:
		return NewMemoryStore(), nil
	case configs.DriverPostgres:
		return OpenPostgresStore(ctx, cfg.DatabaseDSN)
	case configs.DriverBadger:
		return OpenBadgerStore(cfg.BadgerPath)
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}
