package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	return newRootCommandWithContext(newCommandContext())
}

func newRootCommandWithContext(ctx *commandContext) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "podcaster",
		Short:         "Generate two-voice podcast episodes from a topic or a video",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&ctx.configPath, "config", "c", "", "TOML file with configuration overrides")
	flags.StringVar(&ctx.logLevel, "log-level", "info", "Log level (debug, info, warn, error, none)")
	flags.StringVar(&ctx.storeKind, "store", "", "Checkpoint store (memory, sqlite, postgres, redis); empty disables checkpoints")
	flags.StringVar(&ctx.storeDSN, "store-dsn", "", "Checkpoint store location: sqlite path, postgres URL or redis address")

	rootCmd.AddCommand(newCreateCommand(ctx))
	rootCmd.AddCommand(newGraphCommand())
	rootCmd.AddCommand(newConfigCommand(ctx))
	rootCmd.AddCommand(newCheckpointsCommand(ctx))

	return rootCmd
}
