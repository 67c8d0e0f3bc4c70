package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"squeeze/internal/preflight"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show external tool availability and the active profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			spec := tableSpec{headers: []string{"Tool", "Purpose", "Status", "Detail"}}
			for _, status := range preflight.CheckSystemDeps(cmd.Context(), cfg) {
				state := "missing"
				if status.Available {
					state = "ok"
				}
				detail := status.Detail
				if detail == "" {
					detail = status.Command
				}
				spec.rows = append(spec.rows, []string{status.Name, status.Description, state, detail})
			}
			fmt.Fprintln(cmd.OutOrStdout(), spec.render())

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Profile: %d kbps, max %dx%d, gop factor %.2f, %s/%s/%s\n",
				cfg.Profile.VideoBitrateKbps,
				cfg.Profile.MaxWidth, cfg.Profile.MaxHeight,
				cfg.Profile.GOPFactor,
				cfg.Profile.Codec, cfg.Profile.Preset, cfg.Profile.PixelFormat)
			fmt.Fprintf(out, "Output layout: <title>/%s/%s/\n", cfg.Library.VersionsDir, cfg.Library.ProfileLabel)
			return nil
		},
	}
}
