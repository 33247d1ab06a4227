package snapshot

import (
	"context"
	"errors"
	"fmt"
	"time"

	pkgerrors "github.com/absmach/perfapi/pkg/errors"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/net"
	"github.com/shirou/gopsutil/v3/process"
)

var ErrProcessNotFound = fmt.Errorf("process %w", pkgerrors.ErrNotFound)

var _ Source = (*hostSource)(nil)

type hostSource struct {
	processInterval time.Duration
	now             func() time.Time
}

// NewSource returns a Source reading the host's counters through gopsutil.
func NewSource() Source {
	return &hostSource{
		processInterval: DefaultProcessInterval,
		now:             time.Now,
	}
}

func (s *hostSource) SystemSnapshot(ctx context.Context, opts SystemOptions) (SystemSnapshot, error) {
	snap := SystemSnapshot{
		Timestamp: UnixSeconds(s.now()),
	}

	if opts.IncludeCPU {
		interval := max(opts.CPUInterval, 0)
		perCore, err := cpu.PercentWithContext(ctx, interval, true)
		if err != nil {
			return SystemSnapshot{}, collectionError("cpu", err)
		}
		total := averageOf(perCore)
		snap.CPUTotalPercent = &total
		snap.CPUPerCorePercent = perCore
	}

	if opts.IncludeMemory {
		vm, err := mem.VirtualMemoryWithContext(ctx)
		if err != nil {
			return SystemSnapshot{}, collectionError("memory", err)
		}
		snap.Memory = &MemoryStats{
			Total:       vm.Total,
			Available:   vm.Available,
			Percent:     vm.UsedPercent,
			Used:        vm.Used,
			Free:        vm.Free,
			Active:      vm.Active,
			Inactive:    vm.Inactive,
			Buffers:     vm.Buffers,
			Cached:      vm.Cached,
			Shared:      vm.Shared,
			SwapTotal:   vm.SwapTotal,
			SwapFree:    vm.SwapFree,
			SwapCached:  vm.SwapCached,
			CommitLimit: vm.CommitLimit,
		}
	}

	if opts.IncludeDiskIO {
		counters, err := disk.IOCountersWithContext(ctx)
		if err != nil {
			return SystemSnapshot{}, collectionError("disk io", err)
		}
		var d DiskIOStats
		for _, c := range counters {
			d.ReadCount += c.ReadCount
			d.WriteCount += c.WriteCount
			d.ReadBytes += c.ReadBytes
			d.WriteBytes += c.WriteBytes
			d.ReadTime += c.ReadTime
			d.WriteTime += c.WriteTime
			d.BusyTime += c.IoTime
		}
		snap.DiskIO = &d
	}

	if opts.IncludeNetIO {
		counters, err := net.IOCountersWithContext(ctx, false)
		if err != nil {
			return SystemSnapshot{}, collectionError("net io", err)
		}
		if len(counters) == 0 {
			return SystemSnapshot{}, collectionError("net io", errors.New("no interfaces reported"))
		}
		c := counters[0]
		snap.NetIO = &NetIOStats{
			BytesSent:   c.BytesSent,
			BytesRecv:   c.BytesRecv,
			PacketsSent: c.PacketsSent,
			PacketsRecv: c.PacketsRecv,
			ErrIn:       c.Errin,
			ErrOut:      c.Errout,
			DropIn:      c.Dropin,
			DropOut:     c.Dropout,
		}
	}

	return snap, nil
}

func (s *hostSource) ProcessSnapshot(ctx context.Context, pid int32) (ProcessSnapshot, error) {
	exists, err := process.PidExistsWithContext(ctx, pid)
	if err != nil {
		return ProcessSnapshot{}, collectionError("process", err)
	}
	if !exists {
		return ProcessSnapshot{}, fmt.Errorf("pid %d: %w", pid, ErrProcessNotFound)
	}

	snap := ProcessSnapshot{
		Timestamp: UnixSeconds(s.now()),
		PID:       pid,
	}

	proc, err := process.NewProcessWithContext(ctx, pid)
	if err != nil {
		if errors.Is(err, process.ErrorProcessNotRunning) {
			return ProcessSnapshot{}, fmt.Errorf("pid %d: %w", pid, ErrProcessNotFound)
		}

		return ProcessSnapshot{}, collectionError("process", err)
	}

	if snap.CPUPercent, err = proc.PercentWithContext(ctx, s.processInterval); err != nil {
		return ProcessSnapshot{}, collectionError("process cpu", err)
	}

	memInfo, err := proc.MemoryInfoWithContext(ctx)
	if err != nil {
		return ProcessSnapshot{}, collectionError("process memory", err)
	}
	snap.MemoryInfo = ProcessMemory{
		RSS:    memInfo.RSS,
		VMS:    memInfo.VMS,
		HWM:    memInfo.HWM,
		Data:   memInfo.Data,
		Stack:  memInfo.Stack,
		Locked: memInfo.Locked,
		Swap:   memInfo.Swap,
	}

	// Name, cmdline and IO counters may be hidden from unprivileged callers.
	if name, err := proc.NameWithContext(ctx); err == nil {
		snap.Name = name
	}
	if cmdline, err := proc.CmdlineSliceWithContext(ctx); err == nil {
		snap.Cmdline = cmdline
	}
	if snap.Cmdline == nil {
		snap.Cmdline = []string{}
	}
	if io, err := proc.IOCountersWithContext(ctx); err == nil && io != nil {
		snap.IOCounters = &ProcessIOCounters{
			ReadCount:  io.ReadCount,
			WriteCount: io.WriteCount,
			ReadBytes:  io.ReadBytes,
			WriteBytes: io.WriteBytes,
		}
	}
	if threads, err := proc.NumThreadsWithContext(ctx); err == nil {
		snap.NumThreads = threads
	}

	return snap, nil
}

func collectionError(section string, err error) error {
	return fmt.Errorf("%s: %w", section, errors.Join(pkgerrors.ErrSnapshotCollection, err))
}

func averageOf(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}

	return sum / float64(len(values))
}
