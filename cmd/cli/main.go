package main

import (
	"log"

	"github.com/absmach/perfapi/cli"
	"github.com/absmach/perfapi/pkg/sdk"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "perfapi-cli",
		Short: "PerfAPI CLI",
		Long:  `PerfAPI CLI is a command line interface for querying metrics and running profiles against a PerfAPI server.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			sdkConf := sdk.Config{
				ServerURL:       cli.DefServerURL,
				TLSVerification: cli.DefTLSVerification,
				Timeout:         cli.DefTimeout,
			}
			s := sdk.NewSDK(sdkConf)
			cli.SetSDK(s)
		},
	}

	rootCmd.PersistentFlags().StringVarP(
		&cli.DefServerURL,
		"server-url",
		"s",
		cli.DefServerURL,
		"PerfAPI server URL",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&cli.DefTLSVerification,
		"tls-verification",
		"v",
		cli.DefTLSVerification,
		"TLS Verification",
	)

	rootCmd.PersistentFlags().DurationVarP(
		&cli.DefTimeout,
		"timeout",
		"t",
		cli.DefTimeout,
		"Request timeout",
	)

	rootCmd.AddCommand(
		cli.NewMetricsCmd(),
		cli.NewProfileCmd(),
		cli.NewSimulateWorkCmd(),
		cli.NewHealthCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
