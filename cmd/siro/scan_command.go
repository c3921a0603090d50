package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/BlackDragon0207/siro/internal/ipc"
)

func newScanNowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "scan-now",
		Short: "Run a scan cycle immediately instead of waiting for the next tick",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.ScanNow()
				if err != nil {
					return err
				}
				if resp == nil {
					return errors.New("missing scan response")
				}
				if !resp.Triggered {
					if resp.Message != "" {
						return errors.New(resp.Message)
					}
					return errors.New("scan was not triggered")
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Scan triggered")
				return nil
			})
		},
	}
}
