// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package storage

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/exp/slices"
	"golang.org/x/sync/errgroup"
)

// Table is an ordered sequence of chunks with column metadata. All chunks
// but the last hold exactly targetChunkSize rows.
//
// Appends and schema changes are single-writer. CompressChunk may run
// while other goroutines read other chunks; the chunk vector itself is
// guarded.
type Table struct {
	columnNames     []string
	columnTypes     []string
	targetChunkSize ChunkOffset
	log             *zap.Logger

	mu     sync.RWMutex
	chunks []*Chunk
}

// TableOption configures a table.
type TableOption func(*Table)

// WithTableLogger sets the logger used for compression reporting.
func WithTableLogger(log *zap.Logger) TableOption {
	return func(t *Table) { t.log = log }
}

// NewTable returns an empty table that rolls a new chunk every
// targetChunkSize rows.
func NewTable(targetChunkSize ChunkOffset, opts ...TableOption) *Table {
	t := &Table{
		targetChunkSize: targetChunkSize,
		log:             zap.NewNop(),
	}
	for _, opt := range opts {
		opt(t)
	}
	t.chunks = append(t.chunks, NewChunk())
	return t
}

// NewTableFromChunks builds a table directly from prepared chunks, used by
// operators to wrap their output. An empty chunk list produces a zero-row
// table with freshly typed value segments.
func NewTableFromChunks(names, types []string, chunks []*Chunk, targetChunkSize ChunkOffset, opts ...TableOption) (*Table, error) {
	if len(names) != len(types) {
		return nil, errors.Errorf("storage: %d column names but %d column types", len(names), len(types))
	}
	t := &Table{
		columnNames:     slices.Clone(names),
		columnTypes:     slices.Clone(types),
		targetChunkSize: targetChunkSize,
		log:             zap.NewNop(),
	}
	for _, opt := range opts {
		opt(t)
	}
	if len(chunks) == 0 {
		if err := t.createNewChunk(); err != nil {
			return nil, err
		}
		return t, nil
	}
	for _, c := range chunks {
		if int(c.ColumnCount()) != len(names) {
			return nil, errors.Errorf("storage: chunk has %d segments, table has %d columns", c.ColumnCount(), len(names))
		}
	}
	t.chunks = slices.Clone(chunks)
	return t, nil
}

// AddColumn defines a new column. It is only permitted while the table has
// no rows.
func (t *Table) AddColumn(name, dataType string) error {
	if t.RowCount() != 0 {
		return errors.Errorf("storage: cannot add column %q to a table with rows", name)
	}
	if err := ResolveDataType(dataType, &valueSegmentAlloc{}); err != nil {
		return errors.Wrapf(err, "add column %q", name)
	}
	t.columnNames = append(t.columnNames, name)
	t.columnTypes = append(t.columnTypes, dataType)
	for _, c := range t.chunks {
		a := &valueSegmentAlloc{}
		_ = ResolveDataType(dataType, a)
		c.AddSegment(a.out)
	}
	return nil
}

type valueSegmentAlloc struct {
	out Segment
}

func (a *valueSegmentAlloc) VisitInt32() error   { a.out = NewValueSegment[int32](); return nil }
func (a *valueSegmentAlloc) VisitInt64() error   { a.out = NewValueSegment[int64](); return nil }
func (a *valueSegmentAlloc) VisitFloat32() error { a.out = NewValueSegment[float32](); return nil }
func (a *valueSegmentAlloc) VisitFloat64() error { a.out = NewValueSegment[float64](); return nil }
func (a *valueSegmentAlloc) VisitString() error  { a.out = NewValueSegment[string](); return nil }

func (t *Table) createNewChunk() error {
	c := NewChunk()
	for _, dataType := range t.columnTypes {
		a := &valueSegmentAlloc{}
		if err := ResolveDataType(dataType, a); err != nil {
			return err
		}
		c.AddSegment(a.out)
	}
	t.chunks = append(t.chunks, c)
	return nil
}

// Append adds one row to the last chunk, rolling a new chunk first when
// the last one is full.
func (t *Table) Append(values []Variant) error {
	last := t.chunks[len(t.chunks)-1]
	if last.Size() >= t.targetChunkSize {
		if err := t.createNewChunk(); err != nil {
			return err
		}
		last = t.chunks[len(t.chunks)-1]
	}
	return last.Append(values)
}

// ColumnCount returns the number of columns.
func (t *Table) ColumnCount() ColumnCount {
	return ColumnCount(len(t.columnNames))
}

// RowCount returns the total number of rows across all chunks.
func (t *Table) RowCount() uint64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	full := uint64(len(t.chunks)-1) * uint64(t.targetChunkSize)
	return full + uint64(t.chunks[len(t.chunks)-1].Size())
}

// ChunkCount returns the number of chunks.
func (t *Table) ChunkCount() ChunkID {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return ChunkID(len(t.chunks))
}

// GetChunk returns the chunk at the given index.
func (t *Table) GetChunk(chunkID ChunkID) *Chunk {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.chunks[chunkID]
}

// ColumnNames returns the column names in column order. Callers must not
// modify the returned slice.
func (t *Table) ColumnNames() []string {
	return t.columnNames
}

// ColumnTypes returns the column type tags in column order. Callers must
// not modify the returned slice.
func (t *Table) ColumnTypes() []string {
	return t.columnTypes
}

// ColumnName returns the name of one column.
func (t *Table) ColumnName(columnID ColumnID) string {
	return t.columnNames[columnID]
}

// ColumnType returns the type tag of one column.
func (t *Table) ColumnType(columnID ColumnID) string {
	return t.columnTypes[columnID]
}

// ColumnIDByName finds a column by name.
func (t *Table) ColumnIDByName(name string) (ColumnID, error) {
	i := slices.Index(t.columnNames, name)
	if i < 0 {
		return 0, errors.Errorf("storage: no column named %q", name)
	}
	return ColumnID(i), nil
}

// TargetChunkSize returns the maximum row count of non-terminal chunks.
func (t *Table) TargetChunkSize() ChunkOffset {
	return t.targetChunkSize
}

// EstimateMemoryUsage sums the chunk estimates.
func (t *Table) EstimateMemoryUsage() uint64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	var total uint64
	for _, c := range t.chunks {
		total += c.EstimateMemoryUsage()
	}
	return total
}

// CompressChunk replaces the chunk at chunkID with one whose segments are
// dictionary encoded, building one column per task. The new chunk is
// installed atomically; readers of other chunks are unaffected.
func (t *Table) CompressChunk(ctx context.Context, chunkID ChunkID) error {
	input := t.GetChunk(chunkID)
	count := int(input.ColumnCount())
	for i := 0; i < count; i++ {
		if _, ok := input.GetSegment(ColumnID(i)).(*ReferenceSegment); ok {
			return errors.Errorf("storage: chunk %d holds reference segments and cannot be compressed", chunkID)
		}
	}
	before := input.EstimateMemoryUsage()
	start := time.Now()

	compressed := make([]Segment, count)
	group, _ := errgroup.WithContext(ctx)
	for i := 0; i < count; i++ {
		i := i
		segment := input.GetSegment(ColumnID(i))
		group.Go(func() error {
			out, err := NewDictionarySegmentForType(t.columnTypes[i], segment)
			if err != nil {
				return errors.Wrapf(err, "column %d", i)
			}
			compressed[i] = out
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return errors.Wrapf(err, "compress chunk %d", chunkID)
	}

	chunk := NewChunk()
	for _, s := range compressed {
		chunk.AddSegment(s)
	}
	t.mu.Lock()
	t.chunks[chunkID] = chunk
	t.mu.Unlock()

	t.log.Debug("chunk compressed",
		zap.Uint32("chunk", uint32(chunkID)),
		zap.Uint64("bytes_before", before),
		zap.Uint64("bytes_after", chunk.EstimateMemoryUsage()),
		zap.Duration("elapsed", time.Since(start)))
	return nil
}
