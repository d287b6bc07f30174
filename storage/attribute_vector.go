// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package storage

import (
	"math"

	"github.com/pkg/errors"
)

// AttributeVector is a packed sequence of value IDs with a fixed physical
// width per element.
type AttributeVector interface {
	// Get returns the value ID stored at index i.
	Get(i ChunkOffset) ValueID

	// Set stores a value ID at index i. Setting at i == Size() appends.
	// Setting past the end is a programming error.
	Set(i ChunkOffset, id ValueID)

	// Size returns the number of stored value IDs.
	Size() ChunkOffset

	// Width returns the physical width of one element in bytes.
	Width() uint32
}

type uintCode interface {
	uint8 | uint16 | uint32
}

// fixedWidthAttributeVector packs value IDs into the unsigned type U.
// Every stored ID must fit U; NewAttributeVector guarantees that by
// selecting U from the dictionary cardinality.
type fixedWidthAttributeVector[U uintCode] struct {
	values []U
}

// NewAttributeVector returns the narrowest vector of 1, 2 or 4 byte
// elements able to hold value IDs below distinct, with capacity reserved
// for rows elements. It fails when distinct exceeds the 4-byte range.
func NewAttributeVector(distinct, rows int) (AttributeVector, error) {
	switch {
	case distinct <= math.MaxUint8:
		return &fixedWidthAttributeVector[uint8]{values: make([]uint8, 0, rows)}, nil
	case distinct <= math.MaxUint16:
		return &fixedWidthAttributeVector[uint16]{values: make([]uint16, 0, rows)}, nil
	case distinct <= math.MaxUint32:
		return &fixedWidthAttributeVector[uint32]{values: make([]uint32, 0, rows)}, nil
	}
	return nil, errors.Errorf("storage: no attribute vector width fits %d values", distinct)
}

func (v *fixedWidthAttributeVector[U]) Get(i ChunkOffset) ValueID {
	return ValueID(v.values[i])
}

func (v *fixedWidthAttributeVector[U]) Set(i ChunkOffset, id ValueID) {
	switch {
	case int(i) == len(v.values):
		v.values = append(v.values, U(id))
	case int(i) < len(v.values):
		v.values[i] = U(id)
	default:
		panic("storage: attribute vector set past end")
	}
}

func (v *fixedWidthAttributeVector[U]) Size() ChunkOffset {
	return ChunkOffset(len(v.values))
}

func (v *fixedWidthAttributeVector[U]) Width() uint32 {
	var z U
	return uint32(unsafeSizeof(z))
}
