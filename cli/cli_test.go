package cli

import (
	"bytes"
	"errors"
	"os"
	"testing"

	"github.com/absmach/perfapi/pkg/history"
	"github.com/absmach/perfapi/pkg/profiling"
	"github.com/absmach/perfapi/pkg/sdk"
	"github.com/absmach/perfapi/pkg/snapshot"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

type fakeSDK struct {
	sdk.SDK
	targets  []string
	lastRun  profiling.RunRequest
	detailed bool
	runErr   error
	opts     sdk.SystemOptions
	window   float64
	pid      int32
}

func (f *fakeSDK) SystemMetrics(opts sdk.SystemOptions) (snapshot.SystemSnapshot, error) {
	f.opts = opts

	return snapshot.SystemSnapshot{Timestamp: 42}, nil
}

func (f *fakeSDK) ProcessMetrics(pid int32) (snapshot.ProcessSnapshot, error) {
	f.pid = pid

	return snapshot.ProcessSnapshot{PID: pid, Name: "perfapi"}, nil
}

func (f *fakeSDK) Summary(window float64) (history.Summary, error) {
	f.window = window

	return history.Summary{WindowSeconds: window, SampleCount: 4}, nil
}

func (f *fakeSDK) ListTargets() ([]string, error) {
	return f.targets, nil
}

func (f *fakeSDK) RunProfile(req profiling.RunRequest) (profiling.Stats, error) {
	f.lastRun = req
	if f.runErr != nil {
		return profiling.Stats{}, f.runErr
	}

	return profiling.Stats{ProfileID: "id-1", TargetName: req.TargetName, RunsExecuted: req.Runs, StatsText: "REPORT"}, nil
}

func (f *fakeSDK) RunProfileDetailed(req profiling.RunRequest) (profiling.DetailedStats, error) {
	f.lastRun = req
	f.detailed = true

	return profiling.DetailedStats{
		Stats:           profiling.Stats{ProfileID: "id-2", StatsText: "DETAILED"},
		ResourceSamples: []profiling.ResourceUsageSample{{RunIndex: 0, MemRSSDelta: 77}},
	}, nil
}

func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, string) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	require.NoError(t, cmd.Execute())

	return stdout.String(), stderr.String()
}

func TestMetricsCommands(t *testing.T) {
	fake := &fakeSDK{}
	SetSDK(fake)

	out, _ := execute(t, NewMetricsCmd(), "system", "--no-disk-io", "--cpu-interval", "1.5")
	assert.Contains(t, out, `"timestamp": 42`)
	assert.True(t, fake.opts.ExcludeDiskIO)
	assert.False(t, fake.opts.ExcludeCPU)
	assert.Equal(t, 1.5, fake.opts.CPUInterval)

	out, _ = execute(t, NewMetricsCmd(), "process", "17")
	assert.Contains(t, out, "perfapi")
	assert.Equal(t, int32(17), fake.pid)

	_, errOut := execute(t, NewMetricsCmd(), "process", "abc")
	assert.Contains(t, errOut, "error")

	out, _ = execute(t, NewMetricsCmd(), "summary", "-w", "120")
	assert.Contains(t, out, `"sample_count": 4`)
	assert.Equal(t, 120.0, fake.window)

	out, _ = execute(t, NewMetricsCmd(), "process")
	assert.Contains(t, out, "usage")
}

func TestProfileRunCommand(t *testing.T) {
	cases := []struct {
		desc     string
		args     []string
		runErr   error
		want     profiling.RunRequest
		detailed bool
		stdout   string
		stderr   string
	}{
		{
			desc:   "defaults",
			args:   []string{"run", "fib_example"},
			want:   profiling.RunRequest{TargetName: "fib_example", Runs: 1, MaxSeconds: 10},
			stdout: "REPORT",
		},
		{
			desc:   "flags",
			args:   []string{"run", "fib_example", "-r", "5", "-m", "2.5"},
			want:   profiling.RunRequest{TargetName: "fib_example", Runs: 5, MaxSeconds: 2.5},
			stdout: "REPORT",
		},
		{
			desc:   "json output",
			args:   []string{"run", "fib_example", "--json"},
			want:   profiling.RunRequest{TargetName: "fib_example", Runs: 1, MaxSeconds: 10},
			stdout: `"profile_id": "id-1"`,
		},
		{
			desc:     "detailed",
			args:     []string{"run", "io_example", "--detailed"},
			want:     profiling.RunRequest{TargetName: "io_example", Runs: 1, MaxSeconds: 10},
			detailed: true,
			stdout:   `"mem_rss_delta": 77`,
		},
		{
			desc:   "interactive selection",
			args:   []string{"run"},
			want:   profiling.RunRequest{TargetName: "picked", Runs: 1, MaxSeconds: 10},
			stdout: "REPORT",
		},
		{
			desc:   "server error",
			args:   []string{"run", "flaky"},
			runErr: errors.New("unexpected response code: 500"),
			want:   profiling.RunRequest{TargetName: "flaky", Runs: 1, MaxSeconds: 10},
			stderr: "unexpected response code: 500",
		},
	}

	selectTarget = func(names []string) (string, error) {
		return "picked", nil
	}
	for _, tc := range cases {
		t.Run(tc.desc, func(t *testing.T) {
			fake := &fakeSDK{targets: []string{"fib_example", "picked"}, runErr: tc.runErr}
			SetSDK(fake)

			out, errOut := execute(t, NewProfileCmd(), tc.args...)
			assert.Equal(t, tc.want, fake.lastRun)
			assert.Equal(t, tc.detailed, fake.detailed)
			if tc.stdout != "" {
				assert.Contains(t, out, tc.stdout)
			}
			if tc.stderr != "" {
				assert.Contains(t, errOut, tc.stderr)
			}
		})
	}
}

func TestProfileRunWithoutTargets(t *testing.T) {
	SetSDK(&fakeSDK{})

	_, errOut := execute(t, NewProfileCmd(), "run")
	assert.Contains(t, errOut, errNoTargets.Error())
}
