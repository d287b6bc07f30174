// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package storage

import (
	"github.com/pkg/errors"
)

// Variant is a dynamically typed cell value. The supported contents are
// int32, int64, float32, float64 and string. Plain int is accepted on the
// way in and treated as int64.
type Variant = any

// ColumnElement enumerates the Go types a column may hold.
type ColumnElement interface {
	int32 | int64 | float32 | float64 | string
}

// Cast converts the contents of a variant to the element type T.
// Numeric contents convert between numeric targets with Go conversion
// semantics. Casting a string to a numeric target, or a number to string,
// fails.
func Cast[T ColumnElement](v Variant) (T, error) {
	if t, ok := v.(T); ok {
		return t, nil
	}
	switch n := v.(type) {
	case int:
		return numericAs[T](v, int64(n), float64(n), false)
	case int32:
		return numericAs[T](v, int64(n), float64(n), false)
	case int64:
		return numericAs[T](v, n, float64(n), false)
	case float32:
		return numericAs[T](v, int64(n), float64(n), true)
	case float64:
		return numericAs[T](v, int64(n), n, true)
	case string:
		var zero T
		return zero, errors.Errorf("storage: cannot cast string %q to %T", n, zero)
	}
	var zero T
	return zero, errors.Errorf("storage: unsupported variant contents %T", v)
}

func numericAs[T ColumnElement](v Variant, i int64, f float64, isFloat bool) (T, error) {
	var out T
	switch p := any(&out).(type) {
	case *int32:
		if isFloat {
			*p = int32(f)
		} else {
			*p = int32(i)
		}
	case *int64:
		if isFloat {
			*p = int64(f)
		} else {
			*p = i
		}
	case *float32:
		if isFloat {
			*p = float32(f)
		} else {
			*p = float32(i)
		}
	case *float64:
		if isFloat {
			*p = f
		} else {
			*p = float64(i)
		}
	case *string:
		return out, errors.Errorf("storage: cannot cast %T to string", v)
	}
	return out, nil
}
