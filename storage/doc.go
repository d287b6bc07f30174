// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package storage holds chunked columnar tables in memory.
//
// A Table owns a sequence of Chunks. Each Chunk owns one Segment per
// column; all segments in a chunk have the same length. A segment is one
// of three variants:
//
//   - a value segment: a dense, appendable buffer of typed values,
//   - a dictionary segment: an immutable sorted dictionary plus a packed
//     vector of value IDs, built by compressing a value segment,
//   - a reference segment: a view selecting rows of one column of another
//     table through a shared position list.
//
// Column types are named by the tag strings "int", "long", "float",
// "double" and "string". ResolveDataType bridges a tag to code that is
// statically typed in the matching Go element type; everything after that
// bridge runs monomorphic.
//
// The Manager maps table names to tables for the whole process.
package storage
