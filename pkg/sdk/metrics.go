package sdk

import (
	"net/url"
	"strconv"

	"github.com/absmach/perfapi/pkg/history"
	"github.com/absmach/perfapi/pkg/snapshot"
)

const (
	systemEndpoint  = "/metrics/system"
	processEndpoint = "/metrics/process"
	historyEndpoint = "/metrics/system/history"
	summaryEndpoint = "/metrics/system/summary"
)

type historyPage struct {
	Samples []snapshot.SystemSnapshot `json:"samples"`
}

func (sdk *perfSDK) SystemMetrics(opts SystemOptions) (snapshot.SystemSnapshot, error) {
	query := url.Values{}
	if opts.ExcludeCPU {
		query.Set("include_cpu", "false")
	}
	if opts.ExcludeMemory {
		query.Set("include_memory", "false")
	}
	if opts.ExcludeDiskIO {
		query.Set("include_disk_io", "false")
	}
	if opts.ExcludeNetIO {
		query.Set("include_net_io", "false")
	}
	if opts.CPUInterval > 0 {
		query.Set("cpu_interval", strconv.FormatFloat(opts.CPUInterval, 'f', -1, 64))
	}

	var snap snapshot.SystemSnapshot
	if err := sdk.get(systemEndpoint, query, &snap); err != nil {
		return snapshot.SystemSnapshot{}, err
	}

	return snap, nil
}

func (sdk *perfSDK) ProcessMetrics(pid int32) (snapshot.ProcessSnapshot, error) {
	var proc snapshot.ProcessSnapshot
	if err := sdk.get(processEndpoint+"/"+strconv.Itoa(int(pid)), nil, &proc); err != nil {
		return snapshot.ProcessSnapshot{}, err
	}

	return proc, nil
}

func (sdk *perfSDK) History(windowSeconds float64) ([]snapshot.SystemSnapshot, error) {
	var page historyPage
	if err := sdk.get(historyEndpoint, windowQuery(windowSeconds), &page); err != nil {
		return nil, err
	}

	return page.Samples, nil
}

func (sdk *perfSDK) Summary(windowSeconds float64) (history.Summary, error) {
	var summary history.Summary
	if err := sdk.get(summaryEndpoint, windowQuery(windowSeconds), &summary); err != nil {
		return history.Summary{}, err
	}

	return summary, nil
}

func windowQuery(windowSeconds float64) url.Values {
	if windowSeconds == 0 {
		return nil
	}

	return url.Values{"window_seconds": {strconv.FormatFloat(windowSeconds, 'f', -1, 64)}}
}
