// Package report aggregates an existing manifest per split for operator
// summaries.
package report

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"speechset/internal/manifest"
	"speechset/internal/splits"
)

// SplitStats summarizes the records belonging to one split.
type SplitStats struct {
	Split           string
	Clips           int
	Speakers        int
	TotalDurationMS float64
	MeanRating      float64
}

// Aggregate reads JSONL manifest records from r and groups them by split.
// Known splits come first in train/val/test order; anything else follows
// alphabetically.
func Aggregate(r io.Reader) ([]SplitStats, error) {
	type bucket struct {
		clips     int
		duration  float64
		ratingSum float64
		speakers  map[string]struct{}
	}
	buckets := make(map[string]*bucket)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var record manifest.Record
		if err := json.Unmarshal(line, &record); err != nil {
			return nil, fmt.Errorf("manifest line %d: %w", lineNo, err)
		}
		b := buckets[record.Split]
		if b == nil {
			b = &bucket{speakers: make(map[string]struct{})}
			buckets[record.Split] = b
		}
		b.clips++
		b.duration += record.DurationMS
		b.ratingSum += record.Rating
		b.speakers[record.SpeakerID] = struct{}{}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	ordered := make([]string, 0, len(buckets))
	seen := make(map[string]struct{})
	for _, name := range splits.Names {
		if _, ok := buckets[name]; ok {
			ordered = append(ordered, name)
			seen[name] = struct{}{}
		}
	}
	var extras []string
	for name := range buckets {
		if _, ok := seen[name]; !ok {
			extras = append(extras, name)
		}
	}
	sort.Strings(extras)
	ordered = append(ordered, extras...)

	stats := make([]SplitStats, 0, len(ordered))
	for _, name := range ordered {
		b := buckets[name]
		stats = append(stats, SplitStats{
			Split:           name,
			Clips:           b.clips,
			Speakers:        len(b.speakers),
			TotalDurationMS: b.duration,
			MeanRating:      b.ratingSum / float64(b.clips),
		})
	}
	return stats, nil
}
