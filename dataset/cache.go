/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package dataset

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/humaidq/checkup/analysis"
)

// Snapshot is an immutable view of a loaded table. Accessors return copies so
// that callers cannot modify the cached rows.
type Snapshot struct {
	columns []string
	records []analysis.PatientRecord
}

// NewSnapshot copies the table into a new Snapshot.
func NewSnapshot(t Table) *Snapshot {
	return &Snapshot{
		columns: slices.Clone(t.Columns),
		records: slices.Clone(t.Records),
	}
}

// Records returns a copy of the rows.
func (s *Snapshot) Records() []analysis.PatientRecord {
	return slices.Clone(s.records)
}

// Columns returns a copy of the header as read from the source.
func (s *Snapshot) Columns() []string {
	return slices.Clone(s.columns)
}

// Len returns the number of rows.
func (s *Snapshot) Len() int {
	return len(s.records)
}

// Between returns a new snapshot holding rows whose visit date lies within
// [from, to]. Dates compare as strings; an empty bound is open.
func (s *Snapshot) Between(from, to string) *Snapshot {
	filtered := make([]analysis.PatientRecord, 0, len(s.records))
	for _, r := range s.records {
		if from != "" && r.VisitDate < from {
			continue
		}
		if to != "" && r.VisitDate > to {
			continue
		}
		filtered = append(filtered, r)
	}

	return &Snapshot{columns: slices.Clone(s.columns), records: filtered}
}

// Cache loads a Source once and keeps the resulting snapshot until cleared.
type Cache struct {
	source Source

	mu       sync.Mutex
	snapshot *Snapshot
}

// NewCache returns a cache over source.
func NewCache(source Source) *Cache {
	return &Cache{source: source}
}

// Get returns the cached snapshot, loading it on first use. Load failures are
// not cached.
func (c *Cache) Get(ctx context.Context) (*Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.snapshot != nil {
		return c.snapshot, nil
	}

	if c.source == nil {
		return nil, errNoSource
	}

	table, err := c.source.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load dataset: %w", err)
	}

	c.snapshot = NewSnapshot(table)
	logger.Debug("Dataset cached", "rows", c.snapshot.Len())

	return c.snapshot, nil
}

// Clear drops the cached snapshot so the next Get reloads from the source.
func (c *Cache) Clear() {
	c.mu.Lock()
	c.snapshot = nil
	c.mu.Unlock()
}
