// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package storage

import "math"

// ColumnID identifies a column within a table.
type ColumnID uint16

// ChunkID identifies a chunk within a table.
type ChunkID uint32

// ChunkOffset identifies a row within a chunk.
type ChunkOffset uint32

// ColumnCount counts the columns of a table or chunk.
type ColumnCount uint16

// ValueID is an index into a dictionary segment's dictionary.
type ValueID uint32

// InvalidValueID signals "no such dictionary entry".
const InvalidValueID ValueID = math.MaxUint32

// RowID addresses one row of a table.
type RowID struct {
	ChunkID     ChunkID
	ChunkOffset ChunkOffset
}

// PositionList is an ordered set of rows selected from a table. Reference
// segments of the same scan output share a single list.
type PositionList []RowID
