package history

import (
	"sync"
	"time"

	"github.com/absmach/perfapi/pkg/snapshot"
)

const DefaultMaxSamples = 600

type Summary struct {
	WindowSeconds      float64  `json:"window_seconds"`
	SampleCount        int      `json:"sample_count"`
	CPUTotalPercentAvg *float64 `json:"cpu_total_percent_avg"`
	CPUTotalPercentMax *float64 `json:"cpu_total_percent_max"`
	CPUTotalPercentMin *float64 `json:"cpu_total_percent_min"`
}

type Option func(*Store)

// WithClock overrides the time source used to anchor window queries.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// Store is a fixed-capacity ring buffer of system snapshots kept in
// insertion order. When full, Append evicts the oldest sample.
type Store struct {
	mu    sync.RWMutex
	data  []snapshot.SystemSnapshot
	head  int
	count int
	now   func() time.Time
}

func NewStore(maxSamples int, opts ...Option) *Store {
	if maxSamples <= 0 {
		maxSamples = DefaultMaxSamples
	}
	s := &Store{
		data: make([]snapshot.SystemSnapshot, maxSamples),
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *Store) Append(sample snapshot.SystemSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[s.head] = sample
	s.head = (s.head + 1) % len(s.data)
	if s.count < len(s.data) {
		s.count++
	}
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.count
}

func (s *Store) Cap() int {
	return len(s.data)
}

// RecentSince returns the retained samples taken within the trailing window,
// oldest first. A non-positive window yields an empty slice.
func (s *Store) RecentSince(window time.Duration) []snapshot.SystemSnapshot {
	if window <= 0 {
		return []snapshot.SystemSnapshot{}
	}
	cutoff := snapshot.UnixSeconds(s.now()) - window.Seconds()

	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]snapshot.SystemSnapshot, 0, s.count)
	start := (s.head - s.count + len(s.data)) % len(s.data)
	for i := range s.count {
		sample := s.data[(start+i)%len(s.data)]
		if sample.Timestamp >= cutoff {
			result = append(result, sample)
		}
	}

	return result
}

// Summarize aggregates total CPU usage over the trailing window. CPU
// statistics cover only samples that carry a CPU reading; SampleCount covers
// every sample in the window.
func (s *Store) Summarize(window time.Duration) Summary {
	samples := s.RecentSince(window)
	summary := Summary{
		WindowSeconds: window.Seconds(),
		SampleCount:   len(samples),
	}

	var (
		sum, lo, hi float64
		n           int
	)
	for _, sample := range samples {
		if sample.CPUTotalPercent == nil {
			continue
		}
		v := *sample.CPUTotalPercent
		if n == 0 || v < lo {
			lo = v
		}
		if n == 0 || v > hi {
			hi = v
		}
		sum += v
		n++
	}
	if n == 0 {
		return summary
	}

	avg := sum / float64(n)
	summary.CPUTotalPercentAvg = &avg
	summary.CPUTotalPercentMax = &hi
	summary.CPUTotalPercentMin = &lo

	return summary
}
