// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package storage

import (
	"github.com/pkg/errors"
)

// Column type tags accepted on the API surface.
const (
	TypeInt    = "int"
	TypeLong   = "long"
	TypeFloat  = "float"
	TypeDouble = "double"
	TypeString = "string"
)

// TypeVisitor receives exactly one callback from ResolveDataType, on the
// method matching the resolved element type. Implementations forward to a
// generic body instantiated at that type; all typed hot paths enter through
// here once and stay monomorphic.
type TypeVisitor interface {
	VisitInt32() error
	VisitInt64() error
	VisitFloat32() error
	VisitFloat64() error
	VisitString() error
}

// ResolveDataType maps a column type tag to the matching visitor method.
// An unknown tag fails.
func ResolveDataType(dataType string, v TypeVisitor) error {
	switch dataType {
	case TypeInt:
		return v.VisitInt32()
	case TypeLong:
		return v.VisitInt64()
	case TypeFloat:
		return v.VisitFloat32()
	case TypeDouble:
		return v.VisitFloat64()
	case TypeString:
		return v.VisitString()
	}
	return errors.Errorf("storage: unknown column type %q", dataType)
}
