/*
Package chat contains the room logic: who is present, what was said, and who went silent.

This file defines the Service, which wires the Registry, the MessageLog and the Sweeper to one
shared store and owns the lifecycle of the background sweeper goroutine.
*/
package chat

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"batepapo/internal/app/store"
	"batepapo/internal/pkg/logx"
)

// Options tunes a Service. Zero values fall back to the defaults.
type Options struct {
	SweepInterval     time.Duration
	InactivityTimeout time.Duration

	// Now is the clock; time.Now when nil.
	Now func() time.Time
}

// Service is the chat room shared by every request handler and the sweeper.
type Service struct {
	Registry *Registry
	Log      *MessageLog
	Sweeper  *Sweeper

	// cancel stops the sweeper goroutine.
	cancel context.CancelFunc

	// wg waits for the sweeper goroutine during shutdown.
	wg sync.WaitGroup

	mu      sync.Mutex
	started bool

	logger zerolog.Logger
}

// NewService builds a Service on top of st.
func NewService(st store.Store, opts Options) *Service {
	if opts.SweepInterval <= 0 {
		opts.SweepInterval = DefaultSweepInterval
	}
	if opts.InactivityTimeout <= 0 {
		opts.InactivityTimeout = DefaultInactivityTimeout
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	log := NewMessageLog(st, st, opts.Now)
	registry := NewRegistry(st, log, opts.Now)

	return &Service{
		Registry: registry,
		Log:      log,
		Sweeper:  NewSweeper(registry, log, opts.SweepInterval, opts.InactivityTimeout, opts.Now),
		logger:   logx.Component("service"),
	}
}

// Start launches the sweeper. It runs until ctx is done or Shutdown is called.
// Calling Start more than once has no effect.
func (s *Service) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return
	}
	s.started = true

	ctx, s.cancel = context.WithCancel(ctx)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.Sweeper.Run(ctx)
	}()
}

// Shutdown stops the sweeper and waits for it to exit.
func (s *Service) Shutdown() {
	s.logger.Info().Msg("Shutting down chat service...")

	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	s.mu.Unlock()

	s.wg.Wait()

	s.logger.Info().Msg("Chat service shutdown complete.")
}
