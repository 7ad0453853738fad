package main

import (
	"fmt"
	"strings"

	"github.com/smallnest/podcastgraph/podcast"
	"github.com/spf13/cobra"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration utilities",
	}

	configCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the resolved configuration as TOML",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.configuration(nil)
			if err != nil {
				return err
			}
			out, err := cfg.TOML()
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "keys",
		Short: "List configuration keys and the environment variables that override them",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, key := range podcast.ConfigurationKeys() {
				fmt.Fprintf(cmd.OutOrStdout(), "%-24s %s\n", key, strings.ToUpper(key))
			}
			return nil
		},
	})

	return configCmd
}
