package api

import (
	"fmt"
	"time"

	"github.com/absmach/perfapi/pkg/profiling"
	"github.com/absmach/perfapi/pkg/snapshot"
	apiutil "github.com/absmach/supermq/api/http/util"
)

const (
	defCPUInterval = 0.3
	maxCPUInterval = 5.0

	defHistoryWindow = 60.0
	defSummaryWindow = 300.0
	minWindow        = 1.0
	maxWindow        = 3600.0

	defWorkMS = 200
	minWorkMS = 1
	maxWorkMS = 60_000
)

type systemMetricsReq struct {
	includeCPU    bool
	includeMemory bool
	includeDiskIO bool
	includeNetIO  bool
	cpuInterval   float64
}

func (req systemMetricsReq) validate() error {
	if req.cpuInterval < 0 || req.cpuInterval > maxCPUInterval {
		return fmt.Errorf("cpu_interval must be between 0 and %g seconds", maxCPUInterval)
	}

	return nil
}

func (req systemMetricsReq) options() snapshot.SystemOptions {
	return snapshot.SystemOptions{
		IncludeCPU:    req.includeCPU,
		IncludeMemory: req.includeMemory,
		IncludeDiskIO: req.includeDiskIO,
		IncludeNetIO:  req.includeNetIO,
		CPUInterval:   seconds(req.cpuInterval),
	}
}

type processMetricsReq struct {
	pid int64
}

func (req processMetricsReq) validate() error {
	if req.pid < 0 {
		return fmt.Errorf("pid must be a non-negative integer")
	}

	return nil
}

type windowReq struct {
	windowSeconds float64
}

func (req windowReq) validate() error {
	if !(req.windowSeconds >= minWindow && req.windowSeconds <= maxWindow) {
		return fmt.Errorf("window_seconds must be between %g and %g", minWindow, maxWindow)
	}

	return nil
}

func (req windowReq) window() time.Duration {
	return seconds(req.windowSeconds)
}

type runProfileReq struct {
	profiling.RunRequest `json:",inline"`
}

func (req runProfileReq) validate() error {
	if req.TargetName == "" {
		return apiutil.ErrMissingName
	}

	return req.RunRequest.Validate()
}

type simulateWorkReq struct {
	workMS int64
}

func (req simulateWorkReq) validate() error {
	if req.workMS < minWorkMS || req.workMS > maxWorkMS {
		return fmt.Errorf("work_ms must be between %d and %d", minWorkMS, maxWorkMS)
	}

	return nil
}
