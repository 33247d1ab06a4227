package snapshot

import (
	"context"
	"time"
)

const (
	DefaultCPUInterval     = 300 * time.Millisecond
	DefaultProcessInterval = 200 * time.Millisecond
)

// Source produces point-in-time readings of system and process counters.
// Calls may block for the requested CPU sampling interval.
type Source interface {
	SystemSnapshot(ctx context.Context, opts SystemOptions) (SystemSnapshot, error)
	ProcessSnapshot(ctx context.Context, pid int32) (ProcessSnapshot, error)
}

type SystemOptions struct {
	IncludeCPU    bool
	IncludeMemory bool
	IncludeDiskIO bool
	IncludeNetIO  bool
	CPUInterval   time.Duration
}

func DefaultSystemOptions() SystemOptions {
	return SystemOptions{
		IncludeCPU:    true,
		IncludeMemory: true,
		IncludeDiskIO: true,
		IncludeNetIO:  true,
		CPUInterval:   DefaultCPUInterval,
	}
}

// SystemSnapshot is immutable once returned. Sections that were not
// requested are nil and encode as JSON null.
type SystemSnapshot struct {
	Timestamp         float64      `json:"timestamp"`
	CPUTotalPercent   *float64     `json:"cpu_total_percent"`
	CPUPerCorePercent []float64    `json:"cpu_per_core_percent"`
	Memory            *MemoryStats `json:"memory"`
	DiskIO            *DiskIOStats `json:"disk_io"`
	NetIO             *NetIOStats  `json:"net_io"`
}

func (s SystemSnapshot) Time() time.Time {
	sec := int64(s.Timestamp)
	nsec := int64((s.Timestamp - float64(sec)) * float64(time.Second))

	return time.Unix(sec, nsec)
}

type MemoryStats struct {
	Total       uint64  `json:"total"`
	Available   uint64  `json:"available"`
	Percent     float64 `json:"percent"`
	Used        uint64  `json:"used"`
	Free        uint64  `json:"free"`
	Active      uint64  `json:"active"`
	Inactive    uint64  `json:"inactive"`
	Buffers     uint64  `json:"buffers"`
	Cached      uint64  `json:"cached"`
	Shared      uint64  `json:"shared"`
	SwapTotal   uint64  `json:"swap_total"`
	SwapFree    uint64  `json:"swap_free"`
	SwapCached  uint64  `json:"swap_cached"`
	CommitLimit uint64  `json:"commit_limit"`
}

type DiskIOStats struct {
	ReadCount  uint64 `json:"read_count"`
	WriteCount uint64 `json:"write_count"`
	ReadBytes  uint64 `json:"read_bytes"`
	WriteBytes uint64 `json:"write_bytes"`
	ReadTime   uint64 `json:"read_time"`
	WriteTime  uint64 `json:"write_time"`
	BusyTime   uint64 `json:"busy_time"`
}

type NetIOStats struct {
	BytesSent   uint64 `json:"bytes_sent"`
	BytesRecv   uint64 `json:"bytes_recv"`
	PacketsSent uint64 `json:"packets_sent"`
	PacketsRecv uint64 `json:"packets_recv"`
	ErrIn       uint64 `json:"errin"`
	ErrOut      uint64 `json:"errout"`
	DropIn      uint64 `json:"dropin"`
	DropOut     uint64 `json:"dropout"`
}

type ProcessSnapshot struct {
	Timestamp  float64            `json:"timestamp"`
	PID        int32              `json:"pid"`
	Name       string             `json:"name"`
	Cmdline    []string           `json:"cmdline"`
	CPUPercent float64            `json:"cpu_percent"`
	MemoryInfo ProcessMemory      `json:"memory_info"`
	IOCounters *ProcessIOCounters `json:"io_counters"`
	NumThreads int32              `json:"num_threads"`
}

type ProcessMemory struct {
	RSS    uint64 `json:"rss"`
	VMS    uint64 `json:"vms"`
	HWM    uint64 `json:"hwm"`
	Data   uint64 `json:"data"`
	Stack  uint64 `json:"stack"`
	Locked uint64 `json:"locked"`
	Swap   uint64 `json:"swap"`
}

type ProcessIOCounters struct {
	ReadCount  uint64 `json:"read_count"`
	WriteCount uint64 `json:"write_count"`
	ReadBytes  uint64 `json:"read_bytes"`
	WriteBytes uint64 `json:"write_bytes"`
}

// UnixSeconds renders t the way snapshots carry timestamps.
func UnixSeconds(t time.Time) float64 {
	return float64(t.UnixNano()) / float64(time.Second)
}
