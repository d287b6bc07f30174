// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package storage

import "github.com/pkg/errors"

// ValueSegment is a dense, append-only buffer of raw values of one element
// type.
type ValueSegment[T ColumnElement] struct {
	values []T
}

// NewValueSegment returns an empty value segment.
func NewValueSegment[T ColumnElement]() *ValueSegment[T] {
	return &ValueSegment[T]{}
}

// ValueAt returns the value at the given row.
func (s *ValueSegment[T]) ValueAt(offset ChunkOffset) Variant {
	return s.values[offset]
}

// Append converts the variant to T and adds it at the end of the segment.
// It fails when the contents do not convert.
func (s *ValueSegment[T]) Append(value Variant) error {
	v, err := Cast[T](value)
	if err != nil {
		return errors.Wrap(err, "append")
	}
	s.values = append(s.values, v)
	return nil
}

// Size returns the number of stored values.
func (s *ValueSegment[T]) Size() ChunkOffset {
	return ChunkOffset(len(s.values))
}

// Values exposes the dense buffer for scan loops. Callers must not modify
// it.
func (s *ValueSegment[T]) Values() []T {
	return s.values
}

// EstimateMemoryUsage reports sizeof(T) per stored value.
func (s *ValueSegment[T]) EstimateMemoryUsage() uint64 {
	var z T
	return uint64(unsafeSizeof(z)) * uint64(len(s.values))
}
