package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"speechset/internal/logging"
	"speechset/internal/manifest"
	"speechset/internal/media/duration"
	"speechset/internal/probecache"
	"speechset/internal/splits"
)

func newBuildCommand(ctx *commandContext) *cobra.Command {
	var dataRoot string
	var splitDir string
	var out string
	var noCache bool

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build the JSONL metadata manifest for an audio tree",
		Long: strings.TrimSpace(`
Build walks the audio tree under --data_root, joins each file against the
train/val/test CSV tables in --split_dir, probes durations, and writes one
JSON record per matched file to --out.

The tables must carry 'stimuli' and 'mos' columns; files without a table
entry are skipped with a warning.`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if out == "" {
				cfg, err := ctx.ensureConfig()
				if err != nil {
					return err
				}
				out = cfg.Output.Manifest
			}
			return runBuild(cmd.Context(), ctx, buildParams{
				dataRoot: dataRoot,
				splitDir: splitDir,
				out:      out,
				noCache:  noCache,
				stderr:   cmd.ErrOrStderr(),
			})
		},
	}

	cmd.Flags().StringVar(&dataRoot, "data_root", "", "Root directory of the audio tree")
	cmd.Flags().StringVar(&splitDir, "split_dir", "", "Directory holding train.csv, val.csv, and test.csv")
	cmd.Flags().StringVar(&out, "out", "", "Manifest output path (default from config, metadata.jsonl)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "Probe every file even when a cached duration exists")
	_ = cmd.MarkFlagRequired("data_root")
	_ = cmd.MarkFlagRequired("split_dir")

	return cmd
}

type buildParams struct {
	dataRoot string
	splitDir string
	out      string
	noCache  bool
	stderr   io.Writer
}

func runBuild(ctx context.Context, cmdCtx *commandContext, params buildParams) error {
	cfg, err := cmdCtx.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := cmdCtx.newLogger(params.stderr)
	if err != nil {
		return err
	}
	logger = logger.With(logging.String(logging.FieldRunID, uuid.NewString()))
	buildLog := logging.NewComponentLogger(logger, "build")

	// Split tables load first so a missing or malformed table aborts before
	// the output file is created or truncated.
	table, err := splits.Load(params.splitDir)
	if err != nil {
		return err
	}
	buildLog.Debug("split tables loaded",
		logging.Args(logging.Int("entries", len(table)), logging.String("split_dir", params.splitDir))...)

	// The lock file lives next to the output, so its parents must exist
	// before the lock can be taken.
	if dir := filepath.Dir(params.out); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory %q: %w", dir, err)
		}
	}

	lock := flock.New(params.out + ".lock")
	locked, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire manifest lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("another build is writing %s; wait for it to finish", params.out)
	}
	defer func() {
		_ = lock.Unlock()
		_ = os.Remove(params.out + ".lock")
	}()

	outFile, err := os.Create(params.out)
	if err != nil {
		return fmt.Errorf("create manifest %s: %w", params.out, err)
	}
	defer outFile.Close()

	var prober manifest.DurationProber = duration.NewProbe(cfg.Probe.FFprobeBinary, logger)
	if cfg.Probe.CacheEnabled && !params.noCache {
		if err := cfg.EnsureDirectories(); err != nil {
			return err
		}
		store, cacheErr := probecache.Open(cfg.DurationCachePath(), logger)
		if cacheErr != nil {
			// The cache is an optimization; a broken cache never blocks a build.
			buildLog.Warn("duration cache unavailable", logging.Args(logging.Error(cacheErr))...)
		} else {
			defer store.Close()
			prober = probecache.NewProber(store, prober)
		}
	}

	builder := &manifest.Builder{
		Root:   params.dataRoot,
		Splits: table,
		Probe:  prober,
		Logger: logger,
	}
	if bar := newBuildProgress(params.stderr); bar != nil {
		builder.OnFile = func(string) { _ = bar.Add(1) }
		defer func() { _ = bar.Finish() }()
	}

	summary, err := builder.Build(ctx, outFile)
	if err != nil {
		return err
	}
	if err := outFile.Close(); err != nil {
		return fmt.Errorf("close manifest %s: %w", params.out, err)
	}

	buildLog.Info("wrote manifest",
		logging.Args(
			logging.Int("entries", summary.Written),
			logging.Int("skipped", summary.Skipped),
			logging.String("out", params.out))...)
	return nil
}

// newBuildProgress returns a progress bar when stderr is a terminal, nil
// otherwise so non-interactive runs stay clean.
func newBuildProgress(stderr io.Writer) *progressbar.ProgressBar {
	file, ok := stderr.(*os.File)
	if !ok || !isatty.IsTerminal(file.Fd()) {
		return nil
	}
	return newProgressBar(file)
}

// newProgressBar is indeterminate: table entries without a file on disk mean
// the matched-file count is unknown until the walk finishes.
func newProgressBar(w io.Writer) *progressbar.ProgressBar {
	return progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription("probing"),
		progressbar.OptionClearOnFinish(),
	)
}
