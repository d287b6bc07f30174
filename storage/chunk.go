// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package storage

import "github.com/pkg/errors"

// Chunk is one row group: an ordered sequence of segments, one per column,
// all of the same length.
type Chunk struct {
	segments []Segment
}

// NewChunk returns a chunk with no segments.
func NewChunk() *Chunk {
	return &Chunk{}
}

// AddSegment adds a segment as the next column.
func (c *Chunk) AddSegment(s Segment) {
	c.segments = append(c.segments, s)
}

// Append forwards one value to each segment in column order. The row
// length must equal the column count.
func (c *Chunk) Append(values []Variant) error {
	if len(values) != len(c.segments) {
		return errors.Errorf("storage: append row has %d values, chunk has %d columns", len(values), len(c.segments))
	}
	for i, v := range values {
		if err := c.segments[i].Append(v); err != nil {
			return errors.Wrapf(err, "column %d", i)
		}
	}
	return nil
}

// GetSegment returns the segment at the given column.
func (c *Chunk) GetSegment(columnID ColumnID) Segment {
	return c.segments[columnID]
}

// ColumnCount returns the number of segments.
func (c *Chunk) ColumnCount() ColumnCount {
	return ColumnCount(len(c.segments))
}

// Size returns the row count shared by all segments.
func (c *Chunk) Size() ChunkOffset {
	if len(c.segments) == 0 {
		return 0
	}
	return c.segments[0].Size()
}

// EstimateMemoryUsage sums the segment estimates.
func (c *Chunk) EstimateMemoryUsage() uint64 {
	var total uint64
	for _, s := range c.segments {
		total += s.EstimateMemoryUsage()
	}
	return total
}
