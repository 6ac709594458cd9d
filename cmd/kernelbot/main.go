package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/zyexro/kernelbot/core/buildinfo"
	corecmd "github.com/zyexro/kernelbot/core/cmd"
	"github.com/zyexro/kernelbot/internal/app"
)

func main() {
	var configPath string

	root := &cobra.Command{
		Use:           "kernelbot",
		Short:         "Telegram bot that dispatches kernel builds via GitHub Actions",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run the bot",
		RunE: func(cmd *cobra.Command, args []string) error {
			if configPath != "" {
				if err := os.Setenv("CONFIG_PATH", configPath); err != nil {
					return err
				}
			}
			return corecmd.Run(corecmd.Options{
				ConfigEnvVar:      "CONFIG_PATH",
				DefaultConfigPath: "config.yaml",
				LoadConfig: func(path string) (corecmd.ConfigCarrier, error) {
					return app.Load(path)
				},
				Bootstrap: func(cfg corecmd.ConfigCarrier) (corecmd.TelegramApp, error) {
					return app.Bootstrap(cfg.(*app.Config))
				},
			})
		},
	}
	runCmd.Flags().StringVarP(&configPath, "config", "c", "", "path to config file (overrides CONFIG_PATH)")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("kernelbot %s (commit %s", buildinfo.Version, buildinfo.Commit)
			if buildinfo.Date != "" {
				fmt.Printf(", built %s", buildinfo.Date)
			}
			fmt.Println(")")
		},
	}

	root.AddCommand(runCmd, versionCmd)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
