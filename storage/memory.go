// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package storage

import "unsafe"

// unsafeSizeof reports the in-memory size of one element. For strings this
// is the header size only; heap bytes behind string contents are not
// counted by the memory estimates.
func unsafeSizeof[T any](z T) uintptr {
	return unsafe.Sizeof(z)
}
