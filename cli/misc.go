package cli

import (
	"github.com/spf13/cobra"
)

func NewHealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check server health",
		Long:  `Check that the PerfAPI server is alive.`,
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) != 0 {
				logUsageCmd(*cmd, cmd.Use)

				return
			}

			h, err := psdk.Health()
			if err != nil {
				logErrorCmd(*cmd, err)

				return
			}
			logJSONCmd(*cmd, h)
		},
	}
}

func NewSimulateWorkCmd() *cobra.Command {
	var workMS int

	cmd := &cobra.Command{
		Use:   "simulate-work",
		Short: "Generate CPU load",
		Long:  `Keep the server busy for roughly the requested time.`,
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) != 0 {
				logUsageCmd(*cmd, cmd.Use)

				return
			}

			res, err := psdk.SimulateWork(workMS)
			if err != nil {
				logErrorCmd(*cmd, err)

				return
			}
			logJSONCmd(*cmd, res)
			logOKCmd(*cmd)
		},
	}
	cmd.Flags().IntVar(&workMS, "work-ms", 0, "Work duration in milliseconds (1..60000, server default when omitted)")

	return cmd
}
