package splits

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Names lists the recognized split labels in the order their tables are read.
// The order matters: a key present in more than one table resolves to the
// table read last.
var Names = []string{"train", "val", "test"}

var (
	// ErrMissingTable indicates one of the three required CSV tables is absent.
	ErrMissingTable = errors.New("missing split table")
	// ErrSchema indicates a table header lacks a required column.
	ErrSchema = errors.New("split table schema error")
	// ErrParse indicates a rating value could not be parsed as a number.
	ErrParse = errors.New("split table parse error")
)

// Entry is the split assignment and rating for a single audio file.
type Entry struct {
	Split  string
	Rating float64
}

// Table maps a normalized relative audio path to its split entry.
type Table map[string]Entry

// Load reads train.csv, val.csv, and test.csv from dir into a single lookup.
// Keys are the `stimuli` column values, trimmed and with backslashes
// converted to forward slashes. Duplicate keys within or across tables are
// resolved last-write-wins, silently.
func Load(dir string) (Table, error) {
	table := make(Table)
	for _, name := range Names {
		path := filepath.Join(dir, name+".csv")
		if _, err := os.Stat(path); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("%w: expected %s", ErrMissingTable, path)
			}
			return nil, fmt.Errorf("stat %s: %w", path, err)
		}
		if err := loadOne(path, name, table); err != nil {
			return nil, err
		}
	}
	return table, nil
}

func loadOne(path, split string, table Table) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: %s has no header row", ErrSchema, path)
		}
		return fmt.Errorf("read header of %s: %w", path, err)
	}

	stimuliCol, mosCol := -1, -1
	for i, column := range header {
		switch strings.TrimSpace(column) {
		case "stimuli":
			stimuliCol = i
		case "mos":
			mosCol = i
		}
	}
	if stimuliCol < 0 || mosCol < 0 {
		return fmt.Errorf("%w: %s must contain 'stimuli' and 'mos' columns", ErrSchema, path)
	}

	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		if stimuliCol >= len(row) || mosCol >= len(row) {
			return fmt.Errorf("%w: %s row has too few fields", ErrSchema, path)
		}

		key := NormalizeKey(row[stimuliCol])
		rating, err := strconv.ParseFloat(strings.TrimSpace(row[mosCol]), 64)
		if err != nil {
			return fmt.Errorf("%w: %s rating %q: %w", ErrParse, path, row[mosCol], err)
		}
		table[key] = Entry{Split: split, Rating: rating}
	}
}

// NormalizeKey canonicalizes a stimuli path for lookup: surrounding
// whitespace trimmed and backslashes converted to forward slashes.
func NormalizeKey(raw string) string {
	return strings.ReplaceAll(strings.TrimSpace(raw), "\\", "/")
}
