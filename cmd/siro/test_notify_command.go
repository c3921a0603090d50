package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/BlackDragon0207/siro/internal/ipc"
)

func newTestNotifyCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "test-notify",
		Short: "Send a test notification to the configured Discord webhook",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.TestNotification()
				if err != nil {
					return err
				}
				if !resp.Sent {
					if resp.Message != "" {
						return fmt.Errorf("notification not sent: %s", resp.Message)
					}
					return fmt.Errorf("notification not sent")
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Test notification sent")
				return nil
			})
		},
	}
}
