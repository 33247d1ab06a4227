package api

import (
	"net/http"

	"github.com/absmach/perfapi/monitor"
	"github.com/absmach/perfapi/pkg/history"
	"github.com/absmach/perfapi/pkg/profiling"
	"github.com/absmach/perfapi/pkg/snapshot"
	"github.com/absmach/supermq"
)

var (
	_ supermq.Response = (*systemMetricsRes)(nil)
	_ supermq.Response = (*processMetricsRes)(nil)
	_ supermq.Response = (*historyRes)(nil)
	_ supermq.Response = (*summaryRes)(nil)
	_ supermq.Response = (*targetsRes)(nil)
	_ supermq.Response = (*profileRes)(nil)
	_ supermq.Response = (*detailedProfileRes)(nil)
	_ supermq.Response = (*workRes)(nil)
	_ supermq.Response = (*healthRes)(nil)
	_ supermq.Response = (*infoRes)(nil)
)

type ok struct{}

func (ok) Code() int {
	return http.StatusOK
}

func (ok) Headers() map[string]string {
	return map[string]string{}
}

func (ok) Empty() bool {
	return false
}

type systemMetricsRes struct {
	ok
	snapshot.SystemSnapshot
}

type processMetricsRes struct {
	ok
	snapshot.ProcessSnapshot
}

type historyRes struct {
	ok
	Samples []snapshot.SystemSnapshot `json:"samples"`
}

type summaryRes struct {
	ok
	history.Summary
}

// targetsRes encodes as a bare JSON array.
type targetsRes []string

func (targetsRes) Code() int {
	return http.StatusOK
}

func (targetsRes) Headers() map[string]string {
	return map[string]string{}
}

func (targetsRes) Empty() bool {
	return false
}

type profileRes struct {
	ok
	profiling.Stats
}

type detailedProfileRes struct {
	ok
	profiling.DetailedStats
}

type workRes struct {
	ok
	monitor.WorkResult
}

type healthRes struct {
	ok
	monitor.Health
}

type infoRes struct {
	ok
	monitor.Info
}
