// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package storage

import "github.com/pkg/errors"

// ErrImmutableSegment is returned by Append on dictionary and reference
// segments.
var ErrImmutableSegment = errors.New("storage: segment is immutable")

// Segment is one column's data within one chunk: a value, dictionary or
// reference segment. Consumers that need the concrete variant assert on
// the concrete type.
type Segment interface {
	// ValueAt returns the value at the given row as a variant.
	ValueAt(offset ChunkOffset) Variant

	// Append adds a value at the end of the segment. Only value segments
	// accept appends.
	Append(value Variant) error

	// Size returns the number of rows in the segment.
	Size() ChunkOffset

	// EstimateMemoryUsage reports the approximate payload size in bytes.
	EstimateMemoryUsage() uint64
}
