package main

import (
	"github.com/spf13/cobra"

	"github.com/chris/timely/internal/service"
)

func newServiceCmd() *cobra.Command {
	svc := &cobra.Command{
		Use:   "service",
		Short: "Manage the launchd agent that runs `timely serve` (macOS)",
	}
	svc.AddCommand(
		&cobra.Command{
			Use:   "install",
			Short: "Install the binary and load the launchd agent",
			RunE: func(cmd *cobra.Command, args []string) error {
				return service.Install(service.DefaultLayout(), cmd.OutOrStdout())
			},
		},
		&cobra.Command{
			Use:   "uninstall",
			Short: "Unload the agent and remove the binary",
			RunE: func(cmd *cobra.Command, args []string) error {
				return service.Uninstall(service.DefaultLayout(), cmd.OutOrStdout())
			},
		},
		&cobra.Command{
			Use:   "start",
			Short: "Start the agent",
			RunE:  func(cmd *cobra.Command, args []string) error { return service.Start() },
		},
		&cobra.Command{
			Use:   "stop",
			Short: "Stop the agent",
			RunE:  func(cmd *cobra.Command, args []string) error { return service.Stop() },
		},
		&cobra.Command{
			Use:   "status",
			Short: "Show launchd status",
			RunE: func(cmd *cobra.Command, args []string) error {
				return service.Status(cmd.OutOrStdout())
			},
		},
		&cobra.Command{
			Use:   "logs",
			Short: "Follow the service logs",
			RunE: func(cmd *cobra.Command, args []string) error {
				return service.Logs(service.DefaultLayout(), cmd.OutOrStdout())
			},
		},
	)
	return svc
}
