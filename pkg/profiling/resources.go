package profiling

import (
	"context"
	"errors"
	"fmt"
	"os"

	pkgerrors "github.com/absmach/perfapi/pkg/errors"
	"github.com/shirou/gopsutil/v3/process"
)

// ResourceCounters is a reading of the counters captured around each run.
// IOAvailable is false on platforms that do not expose per-process IO.
type ResourceCounters struct {
	RSS         int64
	ReadBytes   int64
	WriteBytes  int64
	IOAvailable bool
}

type ResourceProbe interface {
	Read(ctx context.Context) (ResourceCounters, error)
}

type processProbe struct {
	proc *process.Process
}

// NewProcessProbe reads counters of the current process.
func NewProcessProbe() (ResourceProbe, error) {
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return nil, fmt.Errorf("failed to open current process: %w", err)
	}

	return &processProbe{proc: proc}, nil
}

func (p *processProbe) Read(ctx context.Context) (ResourceCounters, error) {
	memInfo, err := p.proc.MemoryInfoWithContext(ctx)
	if err != nil {
		return ResourceCounters{}, fmt.Errorf("rss: %w", errors.Join(pkgerrors.ErrSnapshotCollection, err))
	}
	counters := ResourceCounters{RSS: int64(memInfo.RSS)}

	if io, err := p.proc.IOCountersWithContext(ctx); err == nil && io != nil {
		counters.ReadBytes = int64(io.ReadBytes)
		counters.WriteBytes = int64(io.WriteBytes)
		counters.IOAvailable = true
	}

	return counters, nil
}

func usageSample(runIndex int, before, after ResourceCounters) ResourceUsageSample {
	sample := ResourceUsageSample{
		RunIndex:     runIndex,
		MemRSSBefore: before.RSS,
		MemRSSAfter:  after.RSS,
		MemRSSDelta:  after.RSS - before.RSS,
	}
	if before.IOAvailable && after.IOAvailable {
		read := after.ReadBytes - before.ReadBytes
		write := after.WriteBytes - before.WriteBytes
		sample.ReadBytesDelta = &read
		sample.WriteBytesDelta = &write
	}

	return sample
}
