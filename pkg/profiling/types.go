package profiling

import (
	"fmt"

	pkgerrors "github.com/absmach/perfapi/pkg/errors"
)

const (
	DefaultRuns       = 1
	MaxRuns           = 100
	DefaultMaxSeconds = 10.0
	ReportLimit       = 40
)

var ErrInvalidRequest = fmt.Errorf("invalid profile request: %w", pkgerrors.ErrValidation)

type RunRequest struct {
	TargetName string  `json:"target_name"`
	Runs       int     `json:"runs"`
	MaxSeconds float64 `json:"max_seconds"`
}

func (r RunRequest) Validate() error {
	switch {
	case r.TargetName == "":
		return fmt.Errorf("%w: target_name is required", ErrInvalidRequest)
	case r.Runs < 1 || r.Runs > MaxRuns:
		return fmt.Errorf("%w: runs must be between 1 and %d", ErrInvalidRequest, MaxRuns)
	case !(r.MaxSeconds > 0):
		return fmt.Errorf("%w: max_seconds must be greater than 0", ErrInvalidRequest)
	}

	return nil
}

type Stats struct {
	ProfileID    string  `json:"profile_id"`
	TargetName   string  `json:"target_name"`
	RunsExecuted int     `json:"runs_executed"`
	TotalSeconds float64 `json:"total_seconds"`
	StatsText    string  `json:"stats_text"`
}

type DetailedStats struct {
	Stats
	ResourceSamples []ResourceUsageSample `json:"resource_samples"`
}

type ResourceUsageSample struct {
	RunIndex        int    `json:"run_index"`
	MemRSSBefore    int64  `json:"mem_rss_before"`
	MemRSSAfter     int64  `json:"mem_rss_after"`
	MemRSSDelta     int64  `json:"mem_rss_delta"`
	ReadBytesDelta  *int64 `json:"read_bytes_delta"`
	WriteBytesDelta *int64 `json:"write_bytes_delta"`
}

// TargetExecutionError reports a target failure that aborted a profiling run.
type TargetExecutionError struct {
	ProfileID    string
	TargetName   string
	RunsExecuted int
	Err          error
}

func (e *TargetExecutionError) Error() string {
	return fmt.Sprintf("profile %s: target %q failed after %d completed runs: %v",
		e.ProfileID, e.TargetName, e.RunsExecuted, e.Err)
}

func (e *TargetExecutionError) Unwrap() []error {
	return []error{pkgerrors.ErrTargetExecution, e.Err}
}
