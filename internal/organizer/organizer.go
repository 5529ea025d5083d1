package organizer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"m8org/internal/config"
	"m8org/internal/convert"
	"m8org/internal/fileutil"
	"m8org/internal/history"
	"m8org/internal/library"
	"m8org/internal/logging"
	"m8org/internal/resolve"
	"m8org/internal/services"
	"m8org/internal/shortener"
)

// Organizer converts a source library into the destination tree.
type Organizer struct {
	cfg       *config.Config
	store     *history.Store
	converter convert.Converter
	resolver  resolve.Resolver
	out       io.Writer
	logger    *slog.Logger
}

// New constructs an organizer. store may be nil to run without history;
// out receives the Input/Output report and may be nil.
func New(cfg *config.Config, store *history.Store, converter convert.Converter, resolver resolve.Resolver, out io.Writer, logger *slog.Logger) *Organizer {
	if out == nil {
		out = io.Discard
	}
	if resolver == nil {
		resolver = resolve.Skip{}
	}
	return &Organizer{
		cfg:       cfg,
		store:     store,
		converter: converter,
		resolver:  resolver,
		out:       out,
		logger:    logging.NewComponentLogger(logger, "organizer"),
	}
}

// Options tune a single run.
type Options struct {
	// DryRun shortens and resolves every path but converts nothing.
	DryRun bool
}

// Run processes every matching file under the source directory. The returned
// summary is valid even when err is non-nil and covers the files handled
// before the run stopped.
func (o *Organizer) Run(ctx context.Context, opts Options) (Summary, error) {
	summary := Summary{DryRun: opts.DryRun}
	if !opts.DryRun && o.converter == nil {
		return summary, services.Wrap(services.ErrConfiguration, "organizer", "run", "no converter configured", nil)
	}
	if err := o.cfg.CheckSource(); err != nil {
		return summary, services.Wrap(services.ErrConfiguration, "organizer", "check source", "", err)
	}
	if err := fileutil.EnsureParentDir(o.cfg.LockPath()); err != nil {
		return summary, services.Wrap(services.ErrConfiguration, "organizer", "state dir", "", err)
	}

	lock := flock.New(o.cfg.LockPath())
	ok, err := lock.TryLock()
	if err != nil {
		return summary, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return summary, services.Wrap(services.ErrConfiguration, "organizer", "lock",
			fmt.Sprintf("another m8org run is using %s", o.cfg.Paths.StateDir), nil)
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			o.logger.Warn("failed to release run lock", logging.Error(err))
		}
	}()

	short, err := shortener.NewFromConfig(o.cfg)
	if err != nil {
		return summary, services.Wrap(services.ErrConfiguration, "organizer", "naming rules", "", err)
	}

	files, err := library.Enumerate(o.cfg.Paths.SourceDir, o.cfg.Files.Extensions)
	if err != nil {
		return summary, services.Wrap(services.ErrNotFound, "organizer", "enumerate", "", err)
	}

	summary.RunID, err = o.beginRun(ctx, opts)
	if err != nil {
		return summary, err
	}
	ctx = services.WithRunID(ctx, summary.RunID)
	logger := logging.WithContext(ctx, o.logger)
	logger.Info("run started",
		logging.String("source_dir", o.cfg.Paths.SourceDir),
		logging.String("dest_dir", o.cfg.Paths.DestDir),
		logging.Int("files", len(files)),
		logging.Bool("dry_run", opts.DryRun),
	)

	run := &runState{
		short:   short,
		dryRun:  opts.DryRun,
		outputs: make(map[string]string, len(files)),
	}

	var runErr error
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			runErr = err
			break
		}
		result := o.processFile(ctx, run, path)
		summary.add(result)
		o.record(ctx, summary.RunID, result)
		if result.Err != nil && services.IsFatal(result.Err) {
			runErr = result.Err
			break
		}
	}

	fmt.Fprintf(o.out, "%d files processed\n", summary.Attempted)
	o.finishRun(summary)

	attrs := []logging.Attr{
		logging.Int("attempted", summary.Attempted),
		logging.Int("converted", summary.Converted),
		logging.Int("planned", summary.Planned),
		logging.Int("skipped", summary.Skipped),
		logging.Int("failed", summary.Failed),
		logging.Int("overlong", summary.Overlong),
	}
	if runErr != nil {
		logging.WarnWithContext(logger, "run stopped early", "run_stopped",
			append(attrs, logging.Error(runErr), logging.String(logging.FieldImpact, "remaining files were not processed"))...)
		return summary, runErr
	}
	logger.Info("run finished", logging.Args(attrs...)...)
	return summary, nil
}

type runState struct {
	short   *shortener.Shortener
	dryRun  bool
	outputs map[string]string
}

func (o *Organizer) processFile(ctx context.Context, run *runState, path string) Result {
	rel := library.Relative(o.cfg.Paths.SourceDir, path)
	ctx = services.WithFile(ctx, rel)
	logger := logging.WithContext(ctx, o.logger)
	result := Result{Source: path, Relative: rel}

	fmt.Fprintf(o.out, "Input %s\n", rel)
	short := run.short.Shorten(rel)

	if run.short.Overlong(short) {
		result.Overlong = true
		resolved, err := o.resolver.Resolve(services.WithStage(ctx, "resolve"), short, run.short.MaxOutputLength())
		if err != nil {
			result.Short = short
			result.Status = services.FailureStatus(err)
			result.Err = err
			if !services.IsFatal(err) {
				logging.WarnWithContext(logger, "overlong output skipped", "overlong_skipped",
					logging.String("output", short),
					logging.Int("max_output_length", run.short.MaxOutputLength()),
					logging.String(logging.FieldErrorHint, "edit the path interactively or set limits.overlong_policy = \"truncate\""),
					logging.String(logging.FieldImpact, "file was not converted"),
				)
			}
			return result
		}
		logger.Debug("overlong output resolved", logging.String("from", short), logging.String("to", resolved))
		short = resolved
	}

	result.Short = short
	result.Dest = filepath.Join(o.cfg.Paths.DestDir, filepath.FromSlash(short))
	fmt.Fprintf(o.out, "Output %s\n", short)

	if previous, ok := run.outputs[short]; ok {
		logging.WarnWithContext(logger, "output name collides with an earlier file", "output_collision",
			logging.String("output", short),
			logging.String("earlier_source", previous),
			logging.String(logging.FieldErrorHint, "rename one of the sources or adjust naming rules"),
			logging.String(logging.FieldImpact, "later file overwrites or is skipped in favour of the earlier one"),
		)
	} else {
		run.outputs[short] = rel
	}

	if o.cfg.Convert.SkipExisting {
		exists, err := fileutil.Exists(result.Dest)
		if err != nil {
			result.Status = services.StatusFailed
			result.Err = services.Wrap(services.ErrTransient, "organizer", "stat destination", "", err)
			logging.ErrorWithContext(logger, "destination check failed", "dest_stat_failed", logging.Error(err))
			return result
		}
		if exists {
			result.Status = services.StatusExists
			logger.Debug("destination exists; skipping", logging.String("dest", result.Dest))
			return result
		}
	}

	if run.dryRun {
		result.Status = services.StatusPlanned
		return result
	}

	if err := o.converter.Convert(services.WithStage(ctx, "convert"), path, result.Dest); err != nil {
		result.Err = err
		result.Status = services.FailureStatus(err)
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return result
		}
		logging.ErrorWithContext(logger, "conversion failed", "convert_failed",
			logging.Error(err),
			logging.String("dest", result.Dest),
			logging.String(logging.FieldErrorHint, "check the source file plays and that ffmpeg supports its format"),
		)
		return result
	}
	result.Status = services.StatusConverted
	logger.Info("converted", logging.String("output", short))
	return result
}

func (o *Organizer) beginRun(ctx context.Context, opts Options) (string, error) {
	if o.store == nil {
		return uuid.NewString(), nil
	}
	run, err := o.store.BeginRun(ctx, o.cfg.Paths.SourceDir, o.cfg.Paths.DestDir, opts.DryRun)
	if err != nil {
		return "", services.Wrap(services.ErrTransient, "organizer", "begin run", "", err)
	}
	return run.ID, nil
}

func (o *Organizer) record(ctx context.Context, runID string, result Result) {
	if o.store == nil {
		return
	}
	entry := history.Entry{
		SourcePath: result.Relative,
		ShortPath:  result.Short,
		DestPath:   result.Dest,
		Status:     result.Status,
		Overlong:   result.Overlong,
	}
	if result.Err != nil {
		entry.Message = result.Err.Error()
	}
	if err := o.store.RecordEntry(context.WithoutCancel(ctx), runID, entry); err != nil {
		o.logger.Warn("failed to record history entry", logging.Error(err), logging.String(logging.FieldFile, result.Relative))
	}
}

func (o *Organizer) finishRun(summary Summary) {
	if o.store == nil {
		return
	}
	if err := o.store.FinishRun(context.Background(), summary.RunID, summary.Counts()); err != nil {
		o.logger.Warn("failed to finish history run", logging.Error(err), logging.String(logging.FieldRunID, summary.RunID))
	}
}
