package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"squeeze/internal/config"
	"squeeze/internal/ffmpeg"
	"squeeze/internal/logging"
	"squeeze/internal/mediainfo"
	"squeeze/internal/preflight"
	"squeeze/internal/runner"
)

func executeRun(cmd *cobra.Command, ctx *commandContext, libraryPath string, dryRun bool) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}

	root, err := config.ExpandPath(libraryPath)
	if err != nil {
		return err
	}
	if err := runPreflight(cmd.Context(), cfg, root); err != nil {
		return err
	}

	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		return err
	}

	r, err := runner.New(
		cfg,
		mediainfo.NewCLI(mediainfo.WithBinary(cfg.MediainfoBinary())),
		ffmpeg.NewCLI(ffmpeg.WithBinary(cfg.FFmpegBinary())),
		logger,
		runner.WithDryRun(dryRun),
	)
	if err != nil {
		return err
	}

	summary, runErr := r.Run(cmd.Context(), root)
	if summary != nil && len(summary.Results) > 0 {
		fmt.Fprintln(cmd.OutOrStdout(), renderSummaryTable(summary))
		fmt.Fprintln(cmd.OutOrStdout(), summaryLine(summary))
	}
	return runErr
}

func runPreflight(ctx context.Context, cfg *config.Config, root string) error {
	var failed []string
	for _, result := range preflight.RunAll(ctx, cfg, root) {
		if !result.Passed {
			failed = append(failed, fmt.Sprintf("%s: %s", result.Name, result.Detail))
		}
	}
	if len(failed) > 0 {
		return fmt.Errorf("preflight failed: %s", strings.Join(failed, "; "))
	}
	return nil
}

func renderSummaryTable(summary *runner.Summary) string {
	verb := "Encoded"
	if summary.DryRun {
		verb = "Planned"
	}

	spec := tableSpec{
		headers: []string{"Title", "File", "Size", "Source", "Target", "Outcome"},
		numeric: map[int]bool{3: true},
	}
	for _, result := range summary.Results {
		spec.rows = append(spec.rows, []string{
			result.Candidate.DisplayTitle,
			filepath.Base(result.Candidate.SourcePath),
			humanize.Bytes(uint64(result.Candidate.SizeBytes)),
			describeSource(result),
			describeTarget(result),
			outcomeLabel(result.Outcome, verb),
		})
	}
	return spec.render()
}

func summaryLine(summary *runner.Summary) string {
	converted := summary.Count(runner.OutcomeEncoded) + summary.Count(runner.OutcomePlanned)
	skipped := summary.Count(runner.OutcomeSkippedExists) +
		summary.Count(runner.OutcomeSkippedBitrate) +
		summary.Count(runner.OutcomeSkippedProbe)
	parts := []string{
		fmt.Sprintf("%d converted", converted),
		fmt.Sprintf("%d skipped", skipped),
	}
	if failed := summary.Count(runner.OutcomeFailed); failed > 0 {
		parts = append(parts, fmt.Sprintf("%d failed", failed))
	}
	return fmt.Sprintf("%s across %d titles in %s",
		strings.Join(parts, ", "), summary.Titles, summary.Elapsed.Round(time.Millisecond))
}

func describeSource(result runner.FileResult) string {
	if result.Info.Width == 0 && result.Info.Height == 0 {
		return "-"
	}
	return fmt.Sprintf("%dx%d @ %d kbps", result.Info.Width, result.Info.Height, result.Info.BitRateKbps)
}

func describeTarget(result runner.FileResult) string {
	if result.Resolution.Width == 0 {
		return "-"
	}
	return result.Resolution.String() + " g" + strconv.Itoa(result.GOP)
}

func outcomeLabel(outcome runner.Outcome, verb string) string {
	switch outcome {
	case runner.OutcomeEncoded, runner.OutcomePlanned:
		return verb
	case runner.OutcomeSkippedExists:
		return "Skipped (exists)"
	case runner.OutcomeSkippedBitrate:
		return "Skipped (low bitrate)"
	case runner.OutcomeSkippedProbe:
		return "Skipped (probe failed)"
	case runner.OutcomeFailed:
		return "Failed"
	default:
		return string(outcome)
	}
}
