package sdk

import (
	"net/url"
	"strconv"

	"github.com/absmach/perfapi/pkg/profiling"
)

const (
	targetsEndpoint     = "/profile/targets"
	runEndpoint         = "/profile/run"
	runDetailedEndpoint = "/profile/run_detailed"
	simulateEndpoint    = "/simulate_work"
	healthEndpoint      = "/health"
)

func (sdk *perfSDK) ListTargets() ([]string, error) {
	var names []string
	if err := sdk.get(targetsEndpoint, nil, &names); err != nil {
		return nil, err
	}

	return names, nil
}

func (sdk *perfSDK) RunProfile(req profiling.RunRequest) (profiling.Stats, error) {
	var stats profiling.Stats
	if err := sdk.post(runEndpoint, req, &stats); err != nil {
		return profiling.Stats{}, err
	}

	return stats, nil
}

func (sdk *perfSDK) RunProfileDetailed(req profiling.RunRequest) (profiling.DetailedStats, error) {
	var stats profiling.DetailedStats
	if err := sdk.post(runDetailedEndpoint, req, &stats); err != nil {
		return profiling.DetailedStats{}, err
	}

	return stats, nil
}

func (sdk *perfSDK) SimulateWork(workMS int) (WorkResult, error) {
	var query url.Values
	if workMS != 0 {
		query = url.Values{"work_ms": {strconv.Itoa(workMS)}}
	}

	var res WorkResult
	if err := sdk.get(simulateEndpoint, query, &res); err != nil {
		return WorkResult{}, err
	}

	return res, nil
}

func (sdk *perfSDK) Health() (Health, error) {
	var h Health
	if err := sdk.get(healthEndpoint, nil, &h); err != nil {
		return Health{}, err
	}

	return h, nil
}
