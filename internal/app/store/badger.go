package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/rs/zerolog"

	"batepapo/internal/app/model"
	"batepapo/internal/pkg/logx"
)

const (
	participantPrefix = "participant:"
	messagePrefix     = "message:"
	messageSeqKey     = "seq:message"

	// messageSeqBandwidth is how many sequence numbers are leased from disk at once.
	messageSeqBandwidth = 100

	// maxTxnAttempts bounds retries of a read-modify-write transaction after a commit conflict.
	maxTxnAttempts = 3
)

// BadgerStore keeps both collections in an embedded Badger directory.
//
// Participants live under "participant:{name}". Messages live under
// "message:{sequence}" with the sequence zero padded to 19 digits, so a prefix
// scan returns them in insertion order.
type BadgerStore struct {
	db  *badger.DB
	seq *badger.Sequence
}

// OpenBadgerStore opens or creates the Badger directory at path.
func OpenBadgerStore(path string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(path).
		WithLogger(badgerLogger{logger: logx.Component("badger")})

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger at %s: %w", path, err)
	}

	return NewBadgerStore(db)
}

// NewBadgerStore wraps an already opened database.
func NewBadgerStore(db *badger.DB) (*BadgerStore, error) {
	seq, err := db.GetSequence([]byte(messageSeqKey), messageSeqBandwidth)
	if err != nil {
		return nil, fmt.Errorf("failed to lease message sequence: %w", err)
	}
	return &BadgerStore{db: db, seq: seq}, nil
}

func participantKey(name string) []byte {
	return []byte(participantPrefix + name)
}

func messageKey(n uint64) []byte {
	return fmt.Appendf(nil, "%s%019d", messagePrefix, n)
}

// update runs fn in a read-write transaction, retrying on commit conflicts.
func (s *BadgerStore) update(fn func(txn *badger.Txn) error) error {
	var err error
	for range maxTxnAttempts {
		err = s.db.Update(fn)
		if !errors.Is(err, badger.ErrConflict) {
			return err
		}
	}
	return err
}

func scanPrefix[T any](db *badger.DB, prefix string) ([]T, error) {
	records := []T{}

	err := db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		p := []byte(prefix)
		for it.Seek(p); it.ValidForPrefix(p); it.Next() {
			var record T
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &record)
			}); err != nil {
				return err
			}
			records = append(records, record)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("badger error: %w", err)
	}
	return records, nil
}

func getParticipant(txn *badger.Txn, name string) (model.Participant, error) {
	var p model.Participant

	item, err := txn.Get(participantKey(name))
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return p, ErrNotFound
		}
		return p, err
	}

	err = item.Value(func(val []byte) error {
		return json.Unmarshal(val, &p)
	})
	return p, err
}

func setJSON(txn *badger.Txn, key []byte, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return txn.Set(key, b)
}

func (s *BadgerStore) ListParticipants(ctx context.Context) ([]model.Participant, error) {
	return scanPrefix[model.Participant](s.db, participantPrefix)
}

func (s *BadgerStore) GetParticipant(ctx context.Context, name string) (model.Participant, error) {
	var p model.Participant

	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		p, err = getParticipant(txn, name)
		return err
	})
	if err != nil && !errors.Is(err, ErrNotFound) {
		return p, fmt.Errorf("badger error: %w", err)
	}
	return p, err
}

func (s *BadgerStore) InsertParticipant(ctx context.Context, p model.Participant) error {
	err := s.update(func(txn *badger.Txn) error {
		_, err := getParticipant(txn, p.Name)
		switch {
		case err == nil:
			return ErrDuplicate
		case !errors.Is(err, ErrNotFound):
			return err
		}
		return setJSON(txn, participantKey(p.Name), p)
	})
	return wrapBadger(err)
}

func (s *BadgerStore) TouchParticipant(ctx context.Context, name string, lastStatus int64) error {
	err := s.update(func(txn *badger.Txn) error {
		p, err := getParticipant(txn, name)
		if err != nil {
			return err
		}
		p.LastStatus = lastStatus
		return setJSON(txn, participantKey(name), p)
	})
	return wrapBadger(err)
}

func (s *BadgerStore) DeleteParticipant(ctx context.Context, name string) error {
	err := s.update(func(txn *badger.Txn) error {
		if _, err := getParticipant(txn, name); err != nil {
			return err
		}
		return txn.Delete(participantKey(name))
	})
	return wrapBadger(err)
}

func (s *BadgerStore) ListMessages(ctx context.Context) ([]model.Message, error) {
	return scanPrefix[model.Message](s.db, messagePrefix)
}

func (s *BadgerStore) InsertMessage(ctx context.Context, m model.Message) error {
	n, err := s.seq.Next()
	if err != nil {
		return fmt.Errorf("badger error: %w", err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		return setJSON(txn, messageKey(n), m)
	})
	return wrapBadger(err)
}

func (s *BadgerStore) Close() error {
	seqErr := s.seq.Release()
	if err := s.db.Close(); err != nil {
		return err
	}
	return seqErr
}

// wrapBadger keeps store sentinels intact and wraps everything else.
func wrapBadger(err error) error {
	if err == nil || errors.Is(err, ErrNotFound) || errors.Is(err, ErrDuplicate) {
		return err
	}
	return fmt.Errorf("badger error: %w", err)
}

// badgerLogger adapts zerolog to badger.Logger. Badger's info chatter is demoted to debug.
type badgerLogger struct {
	logger zerolog.Logger
}

func (l badgerLogger) Errorf(format string, args ...any) {
	l.logger.Error().Msgf(format, args...)
}

func (l badgerLogger) Warningf(format string, args ...any) {
	l.logger.Warn().Msgf(format, args...)
}

func (l badgerLogger) Infof(format string, args ...any) {
	l.logger.Debug().Msgf(format, args...)
}

func (l badgerLogger) Debugf(format string, args ...any) {
	l.logger.Debug().Msgf(format, args...)
}
