package history

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/absmach/perfapi/pkg/snapshot"
)

const (
	DefaultInterval = 5 * time.Second
	MinInterval     = 500 * time.Millisecond
)

// Sampler owns the single background loop that feeds a Store from a
// snapshot.Source. Stop is cooperative: the loop notices it at its next
// wait boundary, so it takes effect within one interval.
type Sampler struct {
	source   snapshot.Source
	store    *Store
	interval time.Duration
	logger   *slog.Logger

	mu   sync.Mutex
	stop chan struct{}
	done chan struct{}
}

func NewSampler(source snapshot.Source, store *Store, interval time.Duration, logger *slog.Logger) *Sampler {
	if interval <= 0 {
		interval = DefaultInterval
	}

	return &Sampler{
		source:   source,
		store:    store,
		interval: max(interval, MinInterval),
		logger:   logger,
	}
}

func (s *Sampler) Interval() time.Duration {
	return s.interval
}

// Start launches the sampling loop unless one is already running. A loop
// that was stopped but has not exited yet is joined first so that a single
// loop ever writes to the store.
func (s *Sampler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.runningLocked() {
		s.logger.Info("history sampler already running")

		return
	}
	if s.done != nil {
		<-s.done
	}

	s.logger.Info("starting history sampler", slog.Duration("interval", s.interval))
	s.stop = make(chan struct{})
	s.done = make(chan struct{})
	go s.run(ctx, s.stop, s.done)
}

// Stop signals the loop to exit. It does not wait for the loop to finish;
// use Wait for that.
func (s *Sampler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.runningLocked() {
		return
	}
	s.logger.Info("stopping history sampler")
	close(s.stop)
}

// Wait blocks until the loop has exited or ctx is done.
func (s *Sampler) Wait(ctx context.Context) error {
	s.mu.Lock()
	done := s.done
	s.mu.Unlock()

	if done == nil {
		return nil
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Sampler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.runningLocked()
}

func (s *Sampler) runningLocked() bool {
	if s.stop == nil {
		return false
	}
	select {
	case <-s.stop:
		return false
	case <-s.done:
		return false
	default:
		return true
	}
}

func (s *Sampler) run(ctx context.Context, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-stop:
			s.logger.Info("history sampler stopped")

			return
		case <-ctx.Done():
			s.logger.Info("history sampler stopping", slog.Any("error", ctx.Err()))

			return
		case <-timer.C:
		}

		s.sample(ctx)
		timer.Reset(s.interval)
	}
}

func (s *Sampler) sample(ctx context.Context) {
	snap, err := s.source.SystemSnapshot(ctx, snapshot.DefaultSystemOptions())
	if err != nil {
		s.logger.Warn("failed to take metrics sample", slog.Any("error", err))

		return
	}
	s.store.Append(snap)
	s.logger.Debug("took metrics sample", slog.Int("retained", s.store.Len()))
}
