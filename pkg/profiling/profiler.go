package profiling

import (
	"io"
	"runtime/pprof"
	"sync"
)

// Profiler abstracts the process CPU profiler so tests can substitute it.
type Profiler interface {
	StartCPUProfile(w io.Writer) error
	StopCPUProfile()
}

// The Go runtime supports a single CPU profile per process, so sessions are
// serialized across every Runner.
var cpuProfileMu sync.Mutex

type cpuProfiler struct{}

// NewCPUProfiler returns the runtime/pprof backed profiler.
func NewCPUProfiler() Profiler {
	return cpuProfiler{}
}

func (cpuProfiler) StartCPUProfile(w io.Writer) error {
	cpuProfileMu.Lock()
	if err := pprof.StartCPUProfile(w); err != nil {
		cpuProfileMu.Unlock()

		return err
	}

	return nil
}

func (cpuProfiler) StopCPUProfile() {
	pprof.StopCPUProfile()
	cpuProfileMu.Unlock()
}
