// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package storage

import (
	"github.com/pkg/errors"
	"golang.org/x/exp/slices"
)

// DictionarySegment stores a column as a sorted dictionary of distinct
// values plus a packed vector of value IDs, one per row. It is immutable
// after construction.
type DictionarySegment[T ColumnElement] struct {
	dictionary      []T
	attributeVector AttributeVector
}

// NewDictionarySegment compresses a value segment of element type T.
// It fails when the input is empty or is not a value segment of T.
func NewDictionarySegment[T ColumnElement](segment Segment) (*DictionarySegment[T], error) {
	vs, ok := segment.(*ValueSegment[T])
	if !ok {
		return nil, errors.Errorf("storage: cannot compress %T as %T", segment, &ValueSegment[T]{})
	}
	values := vs.Values()
	if len(values) == 0 {
		return nil, errors.New("storage: cannot compress an empty segment")
	}

	dictionary := slices.Clone(values)
	slices.Sort(dictionary)
	dictionary = slices.Compact(dictionary)

	// Width tracks cardinality, not row count.
	av, err := NewAttributeVector(len(dictionary), len(values))
	if err != nil {
		return nil, err
	}
	for i, v := range values {
		// The search always hits: the dictionary holds every input value.
		id, _ := slices.BinarySearch(dictionary, v)
		av.Set(ChunkOffset(i), ValueID(id))
	}

	return &DictionarySegment[T]{dictionary: dictionary, attributeVector: av}, nil
}

// NewDictionarySegmentForType compresses a value segment whose element type
// is named by the column type tag.
func NewDictionarySegmentForType(dataType string, segment Segment) (Segment, error) {
	b := &dictionaryBuilder{in: segment}
	if err := ResolveDataType(dataType, b); err != nil {
		return nil, err
	}
	return b.out, nil
}

type dictionaryBuilder struct {
	in  Segment
	out Segment
}

func buildDictionary[T ColumnElement](b *dictionaryBuilder) error {
	seg, err := NewDictionarySegment[T](b.in)
	if err != nil {
		return err
	}
	b.out = seg
	return nil
}

func (b *dictionaryBuilder) VisitInt32() error   { return buildDictionary[int32](b) }
func (b *dictionaryBuilder) VisitInt64() error   { return buildDictionary[int64](b) }
func (b *dictionaryBuilder) VisitFloat32() error { return buildDictionary[float32](b) }
func (b *dictionaryBuilder) VisitFloat64() error { return buildDictionary[float64](b) }
func (b *dictionaryBuilder) VisitString() error  { return buildDictionary[string](b) }

// ValueAt returns the decoded value at the given row.
func (s *DictionarySegment[T]) ValueAt(offset ChunkOffset) Variant {
	return s.dictionary[s.attributeVector.Get(offset)]
}

// Get returns the decoded value at the given row with its static type.
func (s *DictionarySegment[T]) Get(offset ChunkOffset) T {
	return s.dictionary[s.attributeVector.Get(offset)]
}

// Append always fails: dictionary segments are immutable.
func (s *DictionarySegment[T]) Append(Variant) error {
	return ErrImmutableSegment
}

// Size returns the number of rows.
func (s *DictionarySegment[T]) Size() ChunkOffset {
	return s.attributeVector.Size()
}

// Dictionary exposes the sorted distinct values. Callers must not modify
// it.
func (s *DictionarySegment[T]) Dictionary() []T {
	return s.dictionary
}

// AttributeVector exposes the packed value ID vector.
func (s *DictionarySegment[T]) AttributeVector() AttributeVector {
	return s.attributeVector
}

// ValueOfValueID returns the dictionary entry for a value ID.
func (s *DictionarySegment[T]) ValueOfValueID(id ValueID) T {
	return s.dictionary[id]
}

// UniqueValuesCount returns the dictionary cardinality.
func (s *DictionarySegment[T]) UniqueValuesCount() int {
	return len(s.dictionary)
}

// LowerBound returns the smallest value ID whose dictionary entry is >=
// value, or InvalidValueID if no entry qualifies.
func (s *DictionarySegment[T]) LowerBound(value T) ValueID {
	i, _ := slices.BinarySearch(s.dictionary, value)
	if i == len(s.dictionary) {
		return InvalidValueID
	}
	return ValueID(i)
}

// UpperBound returns the smallest value ID whose dictionary entry is >
// value, or InvalidValueID if no entry qualifies.
func (s *DictionarySegment[T]) UpperBound(value T) ValueID {
	i, found := slices.BinarySearch(s.dictionary, value)
	if found {
		i++
	}
	if i == len(s.dictionary) {
		return InvalidValueID
	}
	return ValueID(i)
}

// LowerBoundVariant is LowerBound after a variant cast.
func (s *DictionarySegment[T]) LowerBoundVariant(value Variant) (ValueID, error) {
	v, err := Cast[T](value)
	if err != nil {
		return InvalidValueID, err
	}
	return s.LowerBound(v), nil
}

// UpperBoundVariant is UpperBound after a variant cast.
func (s *DictionarySegment[T]) UpperBoundVariant(value Variant) (ValueID, error) {
	v, err := Cast[T](value)
	if err != nil {
		return InvalidValueID, err
	}
	return s.UpperBound(v), nil
}

// EstimateMemoryUsage reports the dictionary payload plus the packed
// vector payload.
func (s *DictionarySegment[T]) EstimateMemoryUsage() uint64 {
	var z T
	dict := uint64(unsafeSizeof(z)) * uint64(len(s.dictionary))
	codes := uint64(s.attributeVector.Width()) * uint64(s.attributeVector.Size())
	return dict + codes
}
