package manifest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"path/filepath"

	"speechset/internal/logging"
	"speechset/internal/media/duration"
	"speechset/internal/splits"
)

// DurationProber computes a file's duration in milliseconds.
type DurationProber interface {
	DurationMS(ctx context.Context, path string) (float64, error)
}

// Summary reports the outcome of a build.
type Summary struct {
	Written int
	Skipped int
}

// Builder streams manifest records for every audio file under Root that has
// an entry in Splits.
type Builder struct {
	Root   string
	Splits splits.Table
	Probe  DurationProber
	Logger *slog.Logger

	// OnFile, when set, is called once per matched audio file before
	// probing. Used for progress reporting.
	OnFile func(relPath string)
}

// Build walks the tree and writes one JSON object per line to w. Files
// absent from the split lookup are skipped with a warning; any probe failure
// aborts the walk.
func (b *Builder) Build(ctx context.Context, w io.Writer) (Summary, error) {
	logger := logging.NewComponentLogger(b.Logger, "builder")

	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)

	var summary Summary
	err := filepath.WalkDir(b.Root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if entry.IsDir() || !duration.Supported(path) {
			return nil
		}

		rel, err := filepath.Rel(b.Root, path)
		if err != nil {
			return fmt.Errorf("relativize %s: %w", path, err)
		}
		key := filepath.ToSlash(rel)

		assignment, ok := b.Splits[key]
		if !ok {
			logger.Warn("not in split tables, skipped", logging.Args(logging.String("path", key))...)
			summary.Skipped++
			return nil
		}

		if b.OnFile != nil {
			b.OnFile(key)
		}

		durationMS, err := b.Probe.DurationMS(ctx, path)
		if err != nil {
			return fmt.Errorf("probe %s: %w", path, err)
		}

		record := Record{
			FilePath:   key,
			SpeakerID:  filepath.Base(filepath.Dir(path)),
			DurationMS: durationMS,
			Split:      assignment.Split,
			Rating:     assignment.Rating,
		}
		if err := encoder.Encode(record); err != nil {
			return fmt.Errorf("write record for %s: %w", key, err)
		}
		summary.Written++
		return nil
	})
	if err != nil {
		return summary, err
	}
	return summary, nil
}
