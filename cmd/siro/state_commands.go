package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/BlackDragon0207/siro/internal/ipc"
)

func newStateCommand(ctx *commandContext) *cobra.Command {
	stateCmd := &cobra.Command{
		Use:   "state",
		Short: "Inspect and reset deduplication state",
	}

	stateCmd.AddCommand(newStateShowCommand(ctx))
	stateCmd.AddCommand(newStateResetCommand(ctx))
	return stateCmd
}

func newStateShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the persisted deduplication records",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.StateList()
				if err != nil {
					return err
				}

				rows := make([][]string, 0, len(resp.Records))
				for _, record := range resp.Records {
					lastID := record.LastID
					if lastID == "" {
						lastID = "-"
					}
					start := record.LastStartTime
					if start == "" {
						start = "-"
					}
					updated := record.UpdatedAt
					if updated == "" {
						updated = "-"
					}
					rows = append(rows, []string{record.Kind, lastID, start, updated})
				}

				table := renderTable(
					[]string{"Kind", "Last ID", "Last Start", "Updated"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft},
				)
				fmt.Fprintln(cmd.OutOrStdout(), table)
				return nil
			})
		},
	}
}

func newStateResetCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "reset [kind...]",
		Short: "Clear deduplication records (all kinds when none given)",
		Long: "Clear deduplication records so the next scan treats current " +
			"channel content as new. Valid kinds: upload, shorts, live.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.StateReset(args)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Cleared %d record(s)\n", resp.Cleared)
				return nil
			})
		},
	}
}
