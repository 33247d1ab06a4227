package cli

import (
	"strconv"
	"time"

	"github.com/absmach/perfapi/pkg/sdk"
	"github.com/spf13/cobra"
)

var (
	DefTLSVerification = false
	DefServerURL       = "http://localhost:8000"
	DefTimeout         = 30 * time.Second
)

var psdk sdk.SDK

func SetSDK(s sdk.SDK) {
	psdk = s
}

func NewMetricsCmd() *cobra.Command {
	var (
		opts   sdk.SystemOptions
		window float64
	)

	cmd := &cobra.Command{
		Use:   "metrics [system|process|history|summary]",
		Short: "Performance metrics",
		Long:  `Collect system and process metrics and query the sampled history.`,
	}

	systemCmd := &cobra.Command{
		Use:   "system",
		Short: "Collect system metrics",
		Long: `Collect a fresh system snapshot.

Examples:
  perfapi-cli metrics system
  perfapi-cli metrics system --no-disk-io --no-net-io --cpu-interval 1`,
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) != 0 {
				logUsageCmd(*cmd, cmd.Use)

				return
			}

			snap, err := psdk.SystemMetrics(opts)
			if err != nil {
				logErrorCmd(*cmd, err)

				return
			}
			logJSONCmd(*cmd, snap)
		},
	}
	systemCmd.Flags().BoolVar(&opts.ExcludeCPU, "no-cpu", false, "Skip CPU usage")
	systemCmd.Flags().BoolVar(&opts.ExcludeMemory, "no-memory", false, "Skip memory counters")
	systemCmd.Flags().BoolVar(&opts.ExcludeDiskIO, "no-disk-io", false, "Skip disk IO counters")
	systemCmd.Flags().BoolVar(&opts.ExcludeNetIO, "no-net-io", false, "Skip network IO counters")
	systemCmd.Flags().Float64Var(&opts.CPUInterval, "cpu-interval", 0, "CPU sampling interval in seconds (0..5)")

	processCmd := &cobra.Command{
		Use:   "process <pid>",
		Short: "Collect process metrics",
		Long:  `Collect a snapshot of a single process.`,
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) != 1 {
				logUsageCmd(*cmd, cmd.Use)

				return
			}

			pid, err := strconv.ParseInt(args[0], 10, 32)
			if err != nil {
				logErrorCmd(*cmd, err)

				return
			}

			proc, err := psdk.ProcessMetrics(int32(pid))
			if err != nil {
				logErrorCmd(*cmd, err)

				return
			}
			logJSONCmd(*cmd, proc)
		},
	}

	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Sampled history",
		Long:  `List the system snapshots sampled within the window.`,
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) != 0 {
				logUsageCmd(*cmd, cmd.Use)

				return
			}

			samples, err := psdk.History(window)
			if err != nil {
				logErrorCmd(*cmd, err)

				return
			}
			logJSONCmd(*cmd, samples)
		},
	}

	summaryCmd := &cobra.Command{
		Use:   "summary",
		Short: "Summarize sampled history",
		Long:  `Aggregate CPU usage over the samples within the window.`,
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) != 0 {
				logUsageCmd(*cmd, cmd.Use)

				return
			}

			summary, err := psdk.Summary(window)
			if err != nil {
				logErrorCmd(*cmd, err)

				return
			}
			logJSONCmd(*cmd, summary)
		},
	}

	for _, c := range []*cobra.Command{historyCmd, summaryCmd} {
		c.Flags().Float64VarP(&window, "window", "w", 0, "Window in seconds (1..3600, server default when omitted)")
	}

	cmd.AddCommand(systemCmd, processCmd, historyCmd, summaryCmd)

	return cmd
}
