// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package storage

// ReferenceSegment is a view over one column of a base table, selecting
// the rows named by a shared position list. The base table must contain
// only value and dictionary segments, never another reference segment.
// The segment holds the base table alive.
type ReferenceSegment struct {
	table     *Table
	columnID  ColumnID
	positions *PositionList
}

// NewReferenceSegment returns a view over column columnID of table,
// selecting the rows in positions.
func NewReferenceSegment(table *Table, columnID ColumnID, positions *PositionList) *ReferenceSegment {
	return &ReferenceSegment{table: table, columnID: columnID, positions: positions}
}

// ValueAt resolves the position at the given offset through the base
// table.
func (s *ReferenceSegment) ValueAt(offset ChunkOffset) Variant {
	row := (*s.positions)[offset]
	return s.table.GetChunk(row.ChunkID).GetSegment(s.columnID).ValueAt(row.ChunkOffset)
}

// Append always fails: reference segments are immutable.
func (s *ReferenceSegment) Append(Variant) error {
	return ErrImmutableSegment
}

// Size returns the number of selected rows.
func (s *ReferenceSegment) Size() ChunkOffset {
	return ChunkOffset(len(*s.positions))
}

// Positions exposes the shared position list.
func (s *ReferenceSegment) Positions() *PositionList {
	return s.positions
}

// ReferencedTable returns the base table.
func (s *ReferenceSegment) ReferencedTable() *Table {
	return s.table
}

// ReferencedColumnID returns the base column this segment views.
func (s *ReferenceSegment) ReferencedColumnID() ColumnID {
	return s.columnID
}

// EstimateMemoryUsage counts the position list only; the viewed data is
// owned by the base table.
func (s *ReferenceSegment) EstimateMemoryUsage() uint64 {
	var z RowID
	return uint64(unsafeSizeof(z)) * uint64(len(*s.positions))
}
