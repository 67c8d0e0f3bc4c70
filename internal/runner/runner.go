package runner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"squeeze/internal/config"
	"squeeze/internal/ffmpeg"
	"squeeze/internal/library"
	"squeeze/internal/logging"
	"squeeze/internal/mediainfo"
	"squeeze/internal/profile"
)

// Runner executes conversion runs over a library.
type Runner struct {
	cfg     *config.Config
	prober  mediainfo.Client
	encoder ffmpeg.Client
	logger  *slog.Logger
	dryRun  bool
}

// Option configures a Runner.
type Option func(*Runner)

// WithDryRun makes the run report what it would encode without touching
// the filesystem or invoking the transcoder.
func WithDryRun(dryRun bool) Option {
	return func(r *Runner) {
		r.dryRun = dryRun
	}
}

// New constructs a Runner. All collaborators are required except the
// logger, which falls back to a no-op logger.
func New(cfg *config.Config, prober mediainfo.Client, encoder ffmpeg.Client, logger *slog.Logger, opts ...Option) (*Runner, error) {
	if cfg == nil || prober == nil || encoder == nil {
		return nil, errors.New("runner requires config, prober, and encoder")
	}
	r := &Runner{
		cfg:     cfg,
		prober:  prober,
		encoder: encoder,
		logger:  logging.NewComponentLogger(logger, "runner"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Run converts every qualifying file under libraryPath. Probe failures and
// non-qualifying sources are skipped and accounted for; a transcoder
// failure aborts the run immediately, returning the partial summary
// alongside the error.
func (r *Runner) Run(ctx context.Context, libraryPath string) (*Summary, error) {
	root, err := config.ExpandPath(libraryPath)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(root)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("library path does not exist: %s", root)
		}
		return nil, fmt.Errorf("inspect library path: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("library path is not a directory: %s", root)
	}

	unlock, err := r.acquireLock()
	if err != nil {
		return nil, err
	}
	defer unlock()

	runID := uuid.NewString()
	logger := r.logger.With(logging.String(logging.FieldRunID, runID))

	summary := &Summary{RunID: runID, LibraryPath: root, DryRun: r.dryRun}
	started := time.Now()
	defer func() {
		summary.Elapsed = time.Since(started)
	}()

	scanner := library.NewScanner(root, r.cfg.Library)
	titles, err := scanner.Titles()
	if err != nil {
		return nil, err
	}
	summary.Titles = len(titles)
	logger.Info("starting conversion run",
		logging.String("library", root),
		logging.Int("titles", len(titles)),
		logging.Bool("dry_run", r.dryRun))

	prof := r.cfg.EncodeProfile()
	for _, title := range titles {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		if !r.dryRun {
			if err := scanner.EnsureVersionsDir(title); err != nil {
				return summary, err
			}
		}

		candidates, err := scanner.Candidates(title)
		if err != nil {
			return summary, err
		}
		for _, candidate := range candidates {
			if err := ctx.Err(); err != nil {
				return summary, err
			}
			result, err := r.processFile(ctx, logger, prof, candidate)
			summary.Results = append(summary.Results, result)
			if err != nil {
				return summary, err
			}
		}
	}

	logger.Info("conversion run complete",
		logging.Int("encoded", summary.Count(OutcomeEncoded)+summary.Count(OutcomePlanned)),
		logging.Int("skipped", len(summary.Results)-summary.Count(OutcomeEncoded)-summary.Count(OutcomePlanned)),
		logging.Duration("elapsed", time.Since(started)))
	return summary, nil
}

func (r *Runner) processFile(ctx context.Context, logger *slog.Logger, prof profile.Profile, candidate library.Candidate) (FileResult, error) {
	result := FileResult{Candidate: candidate}
	fileLogger := logger.With(
		logging.String(logging.FieldTitle, candidate.Title),
		logging.String(logging.FieldSource, candidate.SourcePath))

	// The output's existence is the only idempotence marker; an existing
	// file short-circuits before any probe.
	if _, err := os.Stat(candidate.OutputPath); err == nil {
		result.Outcome = OutcomeSkippedExists
		result.Detail = "output already present"
		fileLogger.Debug("skipping converted file", logging.String(logging.FieldOutput, candidate.OutputPath))
		return result, nil
	}

	info, err := r.prober.Inspect(ctx, candidate.SourcePath)
	if err != nil {
		result.Outcome = OutcomeSkippedProbe
		result.Detail = err.Error()
		fileLogger.Warn("probe failed, skipping file", logging.Error(err))
		return result, nil
	}
	result.Info = info

	if !prof.QualifiesBitrate(info.BitRateKbps) {
		result.Outcome = OutcomeSkippedBitrate
		result.Detail = fmt.Sprintf("source bitrate %d kbps below %d kbps floor", info.BitRateKbps, prof.VideoBitrateKbps)
		fileLogger.Info("skipping low-bitrate source",
			logging.Int(logging.FieldBitrate, info.BitRateKbps))
		return result, nil
	}

	resolution, err := prof.FitResolution(info.Width, info.Height)
	if err != nil {
		result.Outcome = OutcomeSkippedProbe
		result.Detail = err.Error()
		fileLogger.Warn("unusable probe metadata, skipping file", logging.Error(err))
		return result, nil
	}
	gop, err := prof.KeyframeInterval(info.FrameRate)
	if err != nil {
		result.Outcome = OutcomeSkippedProbe
		result.Detail = err.Error()
		fileLogger.Warn("unusable probe metadata, skipping file", logging.Error(err))
		return result, nil
	}
	result.Resolution = resolution
	result.GOP = gop

	job := ffmpeg.Job{
		InputPath:        candidate.SourcePath,
		OutputPath:       candidate.OutputPath,
		Title:            candidate.Stem,
		Width:            resolution.Width,
		Height:           resolution.Height,
		KeyframeInterval: gop,
		BitrateKbps:      prof.VideoBitrateKbps,
		MaxrateKbps:      prof.MaxrateKbps(),
		BufsizeKbps:      prof.BufsizeKbps(),
		Codec:            prof.Codec,
		Preset:           prof.Preset,
		PixelFormat:      prof.PixelFormat,
	}

	if r.dryRun {
		result.Outcome = OutcomePlanned
		fileLogger.Info("would encode",
			logging.String(logging.FieldResolution, resolution.String()),
			logging.Int(logging.FieldGOP, gop))
		return result, nil
	}

	fileLogger.Info("launching encode",
		logging.String(logging.FieldOutput, candidate.OutputPath),
		logging.String(logging.FieldResolution, resolution.String()),
		logging.Int(logging.FieldGOP, gop),
		logging.Int(logging.FieldBitrate, info.BitRateKbps),
		logging.Float64(logging.FieldFrameRate, info.FrameRate))
	started := time.Now()
	err = r.encoder.Transcode(ctx, job, func(line string) {
		fileLogger.Debug("ffmpeg output", logging.String("line", line))
	})
	result.EncodeTime = time.Since(started)
	if err != nil {
		// Encode failures are not isolated: the whole run stops and the
		// partially written output is left in place.
		result.Outcome = OutcomeFailed
		result.Detail = err.Error()
		fileLogger.Error("encode failed, aborting run", logging.Error(err))
		return result, err
	}

	result.Outcome = OutcomeEncoded
	fileLogger.Info("encode complete",
		logging.String(logging.FieldOutput, candidate.OutputPath),
		logging.Duration("encode_time", result.EncodeTime))
	return result, nil
}

func (r *Runner) acquireLock() (func(), error) {
	if err := r.cfg.EnsureDirectories(); err != nil {
		return nil, err
	}
	lockPath := filepath.Join(r.cfg.Paths.LogDir, "squeeze.lock")
	lock := flock.New(lockPath)
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, errors.New("another squeeze run is already active")
	}
	return func() {
		if err := lock.Unlock(); err != nil {
			r.logger.Warn("failed to release run lock", logging.Error(err))
		}
	}, nil
}
