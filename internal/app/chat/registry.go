package chat

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"batepapo/internal/app/model"
	"batepapo/internal/app/store"
	"batepapo/internal/pkg/logx"
	"batepapo/internal/pkg/randx"
)

// Registry tracks the participants currently in the room and when each was last seen.
type Registry struct {
	participants store.Participants
	log          *MessageLog
	now          func() time.Time
	logger       zerolog.Logger
}

// NewRegistry creates a Registry. Join and eviction notices are appended to log.
func NewRegistry(participants store.Participants, log *MessageLog, now func() time.Time) *Registry {
	return &Registry{
		participants: participants,
		log:          log,
		now:          now,
		logger:       logx.Component("registry"),
	}
}

// Join registers name with lastStatus set to now and announces it to everybody.
//
// The registration and the announcement are two separate writes. If the second one
// fails the participant stays registered without a join notice and the error is returned.
func (r *Registry) Join(ctx context.Context, name string) (model.Participant, error) {
	if name == "" {
		return model.Participant{}, ErrInvalidName
	}

	p := model.Participant{
		ID:         randx.RecordID(),
		Name:       name,
		LastStatus: model.Millis(r.now()),
	}

	if err := r.participants.InsertParticipant(ctx, p); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return model.Participant{}, ErrNameTaken
		}
		return model.Participant{}, fmt.Errorf("insert participant %q: %w", name, err)
	}

	if _, err := r.log.AppendStatus(ctx, name, model.TextJoined); err != nil {
		return p, fmt.Errorf("announce participant %q: %w", name, err)
	}

	r.logger.Info().Str("participant", name).Msg("Participant joined.")
	return p, nil
}

// Heartbeat refreshes the lastStatus of name.
func (r *Registry) Heartbeat(ctx context.Context, name string) error {
	err := r.participants.TouchParticipant(ctx, name, model.Millis(r.now()))
	if errors.Is(err, store.ErrNotFound) {
		return ErrParticipantNotFound
	}
	if err != nil {
		return fmt.Errorf("touch participant %q: %w", name, err)
	}
	return nil
}

// List returns a snapshot of every registered participant.
func (r *Registry) List(ctx context.Context) ([]model.Participant, error) {
	participants, err := r.participants.ListParticipants(ctx)
	if err != nil {
		return nil, fmt.Errorf("list participants: %w", err)
	}
	if participants == nil {
		participants = []model.Participant{}
	}
	return participants, nil
}

// Remove deletes name from the registry.
func (r *Registry) Remove(ctx context.Context, name string) error {
	err := r.participants.DeleteParticipant(ctx, name)
	if errors.Is(err, store.ErrNotFound) {
		return ErrParticipantNotFound
	}
	if err != nil {
		return fmt.Errorf("delete participant %q: %w", name, err)
	}
	return nil
}
