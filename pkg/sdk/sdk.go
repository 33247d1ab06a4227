package sdk

import (
	"bytes"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/absmach/perfapi/pkg/history"
	"github.com/absmach/perfapi/pkg/profiling"
	"github.com/absmach/perfapi/pkg/snapshot"
)

const CTJSON string = "application/json"

type SDK interface {
	// SystemMetrics collects a fresh system snapshot.
	//
	// example:
	//  snap, _ := sdk.SystemMetrics(sdk.SystemOptions{CPUInterval: 0.5})
	//  fmt.Println(*snap.CPUTotalPercent)
	SystemMetrics(opts SystemOptions) (snapshot.SystemSnapshot, error)

	// ProcessMetrics returns a snapshot of the process with the given pid.
	//
	// example:
	//  proc, _ := sdk.ProcessMetrics(1)
	//  fmt.Println(proc.Name)
	ProcessMetrics(pid int32) (snapshot.ProcessSnapshot, error)

	// History returns the samples recorded in the last windowSeconds.
	//
	// example:
	//  samples, _ := sdk.History(60)
	//  fmt.Println(len(samples))
	History(windowSeconds float64) ([]snapshot.SystemSnapshot, error)

	// Summary aggregates the samples recorded in the last windowSeconds.
	//
	// example:
	//  summary, _ := sdk.Summary(300)
	//  fmt.Println(summary.SampleCount)
	Summary(windowSeconds float64) (history.Summary, error)

	// ListTargets lists the registered profile targets.
	ListTargets() ([]string, error)

	// RunProfile profiles a registered target.
	//
	// example:
	//  stats, _ := sdk.RunProfile(profiling.RunRequest{TargetName: "fib_example", Runs: 5, MaxSeconds: 2})
	//  fmt.Println(stats.StatsText)
	RunProfile(req profiling.RunRequest) (profiling.Stats, error)

	// RunProfileDetailed profiles a registered target and reports per-run
	// resource deltas.
	RunProfileDetailed(req profiling.RunRequest) (profiling.DetailedStats, error)

	// SimulateWork keeps the server busy for roughly workMS milliseconds.
	SimulateWork(workMS int) (WorkResult, error)

	// Health checks that the server is alive.
	Health() (Health, error)
}

type SystemOptions struct {
	ExcludeCPU    bool
	ExcludeMemory bool
	ExcludeDiskIO bool
	ExcludeNetIO  bool
	// CPUInterval in seconds; zero leaves the server default.
	CPUInterval float64
}

type WorkResult struct {
	WorkMSRequested int64 `json:"work_ms_requested"`
	WorkMSActual    int64 `json:"work_ms_actual"`
	Iterations      int64 `json:"iterations"`
}

type Health struct {
	Status     string  `json:"status"`
	Time       float64 `json:"time"`
	InstanceID string  `json:"instance_id"`
}

// Error is returned when the server answers with an unexpected status.
type Error struct {
	StatusCode   int    `json:"-"`
	Message      string `json:"error"`
	ProfileID    string `json:"profile_id,omitempty"`
	RunsExecuted *int   `json:"runs_executed,omitempty"`
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("unexpected response code: %d", e.StatusCode)
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.ProfileID != "" {
		msg += fmt.Sprintf(" (profile_id %s", e.ProfileID)
		if e.RunsExecuted != nil {
			msg += fmt.Sprintf(", runs_executed %d", *e.RunsExecuted)
		}
		msg += ")"
	}

	return msg
}

type perfSDK struct {
	serverURL string
	client    *http.Client
}

type Config struct {
	ServerURL       string
	TLSVerification bool
	Timeout         time.Duration
}

func NewSDK(cfg Config) SDK {
	return &perfSDK{
		serverURL: cfg.ServerURL,
		client: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{
					InsecureSkipVerify: !cfg.TLSVerification,
				},
			},
		},
	}
}

func (sdk *perfSDK) endpoint(path string, query url.Values) string {
	u := sdk.serverURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	return u
}

func (sdk *perfSDK) processRequest(method, reqURL string, data []byte, expectedRespCode int) ([]byte, error) {
	req, err := http.NewRequest(method, reqURL, bytes.NewReader(data))
	if err != nil {
		return []byte{}, err
	}

	req.Header.Add("Content-Type", CTJSON)

	resp, err := sdk.client.Do(req)
	if err != nil {
		return []byte{}, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return []byte{}, err
	}

	if resp.StatusCode != expectedRespCode {
		respErr := &Error{StatusCode: resp.StatusCode}
		_ = json.Unmarshal(body, respErr)

		return []byte{}, respErr
	}

	return body, nil
}

func (sdk *perfSDK) get(path string, query url.Values, out any) error {
	body, err := sdk.processRequest(http.MethodGet, sdk.endpoint(path, query), nil, http.StatusOK)
	if err != nil {
		return err
	}

	return json.Unmarshal(body, out)
}

func (sdk *perfSDK) post(path string, in, out any) error {
	data, err := json.Marshal(in)
	if err != nil {
		return err
	}
	body, err := sdk.processRequest(http.MethodPost, sdk.endpoint(path, nil), data, http.StatusOK)
	if err != nil {
		return err
	}

	return json.Unmarshal(body, out)
}
