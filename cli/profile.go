package cli

import (
	"errors"
	"strconv"

	"github.com/absmach/perfapi/pkg/profiling"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var errNoTargets = errors.New("no profile targets are registered")

// selectTarget prompts for a target when none was given on the command line.
var selectTarget = func(names []string) (string, error) {
	var target string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Profile target").
				Options(huh.NewOptions(names...)...).
				Value(&target),
		),
	)
	if err := form.Run(); err != nil {
		return "", err
	}

	return target, nil
}

func NewProfileCmd() *cobra.Command {
	var (
		runs       int
		maxSeconds float64
		detailed   bool
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "profile [targets|run]",
		Short: "Function profiling",
		Long:  `List registered profile targets and profile them.`,
	}

	targetsCmd := &cobra.Command{
		Use:   "targets",
		Short: "List profile targets",
		Long:  `List registered profile targets.`,
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) != 0 {
				logUsageCmd(*cmd, cmd.Use)

				return
			}

			names, err := psdk.ListTargets()
			if err != nil {
				logErrorCmd(*cmd, err)

				return
			}
			logJSONCmd(*cmd, names)
		},
	}

	runCmd := &cobra.Command{
		Use:   "run [target]",
		Short: "Profile a target",
		Long: `Run a registered target under the CPU profiler.

The time budget is soft: it is checked between runs, so a run in flight
always completes. Without a target argument an interactive picker is shown.

Examples:
  perfapi-cli profile run fib_example --runs 5 --max-seconds 2
  perfapi-cli profile run io_example --detailed`,
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) > 1 {
				logUsageCmd(*cmd, cmd.Use)

				return
			}

			var target string
			switch len(args) {
			case 1:
				target = args[0]
			default:
				names, err := psdk.ListTargets()
				if err != nil {
					logErrorCmd(*cmd, err)

					return
				}
				if len(names) == 0 {
					logErrorCmd(*cmd, errNoTargets)

					return
				}
				if target, err = selectTarget(names); err != nil {
					logErrorCmd(*cmd, err)

					return
				}
			}

			req := profiling.RunRequest{TargetName: target, Runs: runs, MaxSeconds: maxSeconds}
			if detailed {
				stats, err := psdk.RunProfileDetailed(req)
				if err != nil {
					logErrorCmd(*cmd, err)

					return
				}
				logProfile(*cmd, stats.Stats, jsonOutput, stats)

				return
			}

			stats, err := psdk.RunProfile(req)
			if err != nil {
				logErrorCmd(*cmd, err)

				return
			}
			logProfile(*cmd, stats, jsonOutput, stats)
		},
	}
	runCmd.Flags().IntVarP(&runs, "runs", "r", profiling.DefaultRuns, "Number of runs (1.."+strconv.Itoa(profiling.MaxRuns)+")")
	runCmd.Flags().Float64VarP(&maxSeconds, "max-seconds", "m", profiling.DefaultMaxSeconds, "Soft time budget in seconds")
	runCmd.Flags().BoolVarP(&detailed, "detailed", "d", false, "Capture per-run resource deltas")
	runCmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the raw JSON response")

	cmd.AddCommand(targetsCmd, runCmd)

	return cmd
}

func logProfile(cmd cobra.Command, stats profiling.Stats, jsonOutput bool, raw any) {
	if jsonOutput {
		logJSONCmd(cmd, raw)

		return
	}
	logTextCmd(cmd, stats.StatsText)
	if d, ok := raw.(profiling.DetailedStats); ok {
		logJSONCmd(cmd, d.ResourceSamples)
	}
}
