package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"batepapo/internal/app/db"
	"batepapo/internal/app/model"
)

// querier is the subset of *pgxpool.Pool the store needs.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// PostgresStore keeps participants and messages in PostgreSQL.
// Name uniqueness is enforced by the participants_name_key constraint.
type PostgresStore struct {
	pool *pgxpool.Pool
	q    querier
}

// OpenPostgresStore connects to dsn and migrates the schema.
func OpenPostgresStore(ctx context.Context, dsn string) (*PostgresStore, error) {
	pool, err := db.NewPool(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return &PostgresStore{pool: pool, q: pool}, nil
}

const (
	listParticipantsSQL  = `SELECT id::text, name, last_status FROM participants ORDER BY name`
	getParticipantSQL    = `SELECT id::text, name, last_status FROM participants WHERE name = $1`
	insertParticipantSQL = `INSERT INTO participants (id, name, last_status) VALUES ($1::text::uuid, $2, $3)`
	touchParticipantSQL  = `UPDATE participants SET last_status = $2 WHERE name = $1`
	deleteParticipantSQL = `DELETE FROM participants WHERE name = $1`

	listMessagesSQL  = `SELECT id::text, from_name, to_name, body, type, sent_time FROM messages ORDER BY seq`
	insertMessageSQL = `INSERT INTO messages (id, from_name, to_name, body, type, sent_time) VALUES ($1::text::uuid, $2, $3, $4, $5, $6)`
)

func scanParticipant(row pgx.CollectableRow) (model.Participant, error) {
	var p model.Participant
	err := row.Scan(&p.ID, &p.Name, &p.LastStatus)
	return p, err
}

func scanMessage(row pgx.CollectableRow) (model.Message, error) {
	var m model.Message
	var messageType string
	err := row.Scan(&m.ID, &m.From, &m.To, &m.Text, &messageType, &m.Time)
	m.Type = model.MessageType(messageType)
	return m, err
}

func (s *PostgresStore) ListParticipants(ctx context.Context) ([]model.Participant, error) {
	rows, err := s.q.Query(ctx, listParticipantsSQL)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	participants, err := pgx.CollectRows(rows, scanParticipant)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return participants, nil
}

func (s *PostgresStore) GetParticipant(ctx context.Context, name string) (model.Participant, error) {
	rows, err := s.q.Query(ctx, getParticipantSQL, name)
	if err != nil {
		return model.Participant{}, fmt.Errorf("db error: %w", err)
	}

	p, err := pgx.CollectExactlyOneRow(rows, scanParticipant)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Participant{}, ErrNotFound
		}
		return model.Participant{}, fmt.Errorf("db error: %w", err)
	}
	return p, nil
}

func (s *PostgresStore) InsertParticipant(ctx context.Context, p model.Participant) error {
	if _, err := s.q.Exec(ctx, insertParticipantSQL, p.ID, p.Name, p.LastStatus); err != nil {
		if db.IsUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (s *PostgresStore) TouchParticipant(ctx context.Context, name string, lastStatus int64) error {
	return s.execOne(ctx, touchParticipantSQL, name, lastStatus)
}

func (s *PostgresStore) DeleteParticipant(ctx context.Context, name string) error {
	return s.execOne(ctx, deleteParticipantSQL, name)
}

// execOne runs a statement keyed by name and maps "no row affected" to ErrNotFound.
func (s *PostgresStore) execOne(ctx context.Context, sql string, args ...any) error {
	tag, err := s.q.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) ListMessages(ctx context.Context) ([]model.Message, error) {
	rows, err := s.q.Query(ctx, listMessagesSQL)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	messages, err := pgx.CollectRows(rows, scanMessage)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return messages, nil
}

func (s *PostgresStore) InsertMessage(ctx context.Context, m model.Message) error {
	_, err := s.q.Exec(ctx, insertMessageSQL, m.ID, m.From, m.To, m.Text, string(m.Type), m.Time)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (s *PostgresStore) Close() error {
	if s.pool != nil {
		s.pool.Close()
	}
	return nil
}
