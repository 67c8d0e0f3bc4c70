package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var configFlag string
	var dryRun bool

	ctx := newCommandContext(&configFlag)

	rootCmd := &cobra.Command{
		Use:   "squeeze <library-path>",
		Short: "Create low-bitrate Custom Versions of a media library",
		Long: `squeeze walks a media library laid out as one folder per title and
creates a low-bitrate "Custom Versions" variant of every qualifying video
file, probing sources with mediainfo and re-encoding them with ffmpeg.
Files whose converted variant already exists are skipped.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return executeRun(cmd, ctx, args[0], dryRun)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report what would be encoded without running ffmpeg")

	rootCmd.AddCommand(newPlanCommand(ctx))
	rootCmd.AddCommand(newStatusCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))

	return rootCmd
}
