package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/smallnest/podcastgraph/podcast"
	"github.com/smallnest/podcastgraph/store"
	"github.com/spf13/cobra"
)

var errNoStore = errors.New("no checkpoint store selected (use --store)")

func newCheckpointsCommand(ctx *commandContext) *cobra.Command {
	cpCmd := &cobra.Command{
		Use:   "checkpoints",
		Short: "Inspect checkpoints saved by earlier runs",
	}

	withStore := func(cmd *cobra.Command, fn func(store.CheckpointStore) error) error {
		cps, closeStore, err := ctx.openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer closeStore()
		if cps == nil {
			return errNoStore
		}
		return fn(cps)
	}

	cpCmd.AddCommand(&cobra.Command{
		Use:   "list <run-id>",
		Short: "List the checkpoints of a run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, func(cps store.CheckpointStore) error {
				list, err := cps.List(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if len(list) == 0 {
					fmt.Fprintf(cmd.OutOrStdout(), "No checkpoints for run %s\n", args[0])
					return nil
				}
				for _, cp := range list {
					fmt.Fprintf(cmd.OutOrStdout(), "%3d  %-22s %s  %s\n",
						cp.Version, cp.NodeName, cp.Timestamp.Format("2006-01-02 15:04:05"), cp.ID)
				}
				return nil
			})
		},
	})

	cpCmd.AddCommand(&cobra.Command{
		Use:   "show <run-id>",
		Short: "Print the latest saved state of a run as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, func(cps store.CheckpointStore) error {
				cp, err := store.Latest(cmd.Context(), cps, args[0])
				if err != nil {
					return err
				}
				var s podcast.State
				if err := cp.DecodeState(&s); err != nil {
					return err
				}
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(s)
			})
		},
	})

	cpCmd.AddCommand(&cobra.Command{
		Use:   "clear <run-id>",
		Short: "Delete every checkpoint of a run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, func(cps store.CheckpointStore) error {
				if err := cps.Clear(cmd.Context(), args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Cleared checkpoints for run %s\n", args[0])
				return nil
			})
		},
	})

	return cpCmd
}
