package chat

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"batepapo/internal/app/model"
	"batepapo/internal/pkg/logx"
)

const (
	// DefaultSweepInterval is how often the sweeper looks for stale participants.
	DefaultSweepInterval = 15 * time.Second

	// DefaultInactivityTimeout is how long a participant may stay silent before eviction.
	DefaultInactivityTimeout = 10 * time.Second
)

// Sweeper periodically evicts participants whose last heartbeat is too old
// and announces each departure in the message log.
type Sweeper struct {
	registry *Registry
	log      *MessageLog
	interval time.Duration
	timeout  time.Duration
	now      func() time.Time
	logger   zerolog.Logger
}

// NewSweeper creates a Sweeper that runs every interval and evicts participants silent for timeout or longer.
func NewSweeper(registry *Registry, log *MessageLog, interval, timeout time.Duration, now func() time.Time) *Sweeper {
	return &Sweeper{
		registry: registry,
		log:      log,
		interval: interval,
		timeout:  timeout,
		now:      now,
		logger:   logx.Component("sweeper"),
	}
}

// Run sweeps every interval until ctx is done.
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info().
		Dur("interval", s.interval).
		Dur("timeout", s.timeout).
		Msg("Sweeper started.")

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("Sweeper stopped.")
			return
		case <-ticker.C:
			if _, err := s.SweepOnce(ctx); err != nil {
				s.logger.Error().Err(err).Msg("Sweep failed.")
			}
		}
	}
}

// SweepOnce runs one eviction pass and returns how many participants were removed.
// A failure on one participant is logged and does not stop the others.
// Only a failure to read the participant list aborts the pass.
//
// Staleness is judged on the snapshot read at the start of the pass and eviction deletes by name,
// so a heartbeat that lands between the two does not save the participant.
func (s *Sweeper) SweepOnce(ctx context.Context) (int, error) {
	participants, err := s.registry.List(ctx)
	if err != nil {
		return 0, err
	}

	cutoff := model.Millis(s.now()) - s.timeout.Milliseconds()

	evicted := 0
	for _, p := range participants {
		if p.LastStatus > cutoff {
			continue
		}
		if s.evict(ctx, p) {
			evicted++
		}
	}

	if evicted > 0 {
		s.logger.Info().
			Int("evicted", evicted).
			Int("remaining", len(participants)-evicted).
			Msg("Sweep finished.")
	}
	return evicted, nil
}

func (s *Sweeper) evict(ctx context.Context, p model.Participant) bool {
	logger := s.logger.With().Str("participant", p.Name).Logger()

	if err := s.registry.Remove(ctx, p.Name); err != nil {
		if errors.Is(err, ErrParticipantNotFound) {
			logger.Debug().Msg("Participant already gone.")
		} else {
			logger.Error().Err(err).Msg("Failed to remove stale participant.")
		}
		return false
	}

	if _, err := s.log.AppendStatus(ctx, p.Name, model.TextLeft); err != nil {
		logger.Error().Err(err).Msg("Failed to announce stale participant.")
	}

	logger.Info().Int64("last_status", p.LastStatus).Msg("Stale participant evicted.")
	return true
}
