// Package jsonfile persists a collection as a single pretty-printed JSON
// file, matching the layout of the legacy data files (users.json,
// time_entries.json, notes.json).
package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"timeclock/internal/logging"
)

// Collection stores records of type T in one JSON file.
type Collection[T any] struct {
	path string
	log  logging.Logger
}

// NewCollection creates a collection backed by the file at path.
// The file is created on the first Save.
func NewCollection[T any](path string, log logging.Logger) *Collection[T] {
	return &Collection[T]{
		path: path,
		log:  log,
	}
}

// Load reads the entire collection from disk.
//
// A missing file is an empty collection. A malformed file is backed up
// next to the original, logged as a warning and treated as empty, so a
// damaged data file never prevents the service from starting.
func (c *Collection[T]) Load(ctx context.Context) ([]T, error) {
	data, err := os.ReadFile(c.path)
	if os.IsNotExist(err) {
		return []T{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", c.path, err)
	}

	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		backupPath := c.path + ".corrupt"
		_ = os.Rename(c.path, backupPath)
		c.log.Warn(ctx, "data file is malformed, continuing with an empty collection",
			"path", c.path, "backup", backupPath, "error", err)
		return []T{}, nil
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// Save atomically replaces the entire collection on disk by writing to a
// temporary file and renaming it over the original.
func (c *Collection[T]) Save(ctx context.Context, items []T) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if items == nil {
		items = []T{}
	}

	data, err := json.MarshalIndent(items, "", "    ")
	if err != nil {
		return fmt.Errorf("marshalling %s: %w", c.path, err)
	}

	tmpPath := c.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("writing temp file for %s: %w", c.path, err)
	}
	if err := os.Rename(tmpPath, c.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file for %s: %w", c.path, err)
	}
	return nil
}
