// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package operators

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/pkg/errors"

	"github.com/solidcoredata/coltab/storage"
)

// Print writes its input table to a writer and passes the table through as
// its own output.
type Print struct {
	base
	w io.Writer
}

// NewPrint returns an operator printing in's output to w.
func NewPrint(in Operator, w io.Writer, opts ...Option) *Print {
	return &Print{base: newBase(in, nil, opts), w: w}
}

// Execute prints the input table once.
func (op *Print) Execute(ctx context.Context) error {
	return op.execute(ctx, "print", op.run)
}

func (op *Print) run(context.Context) (*storage.Table, error) {
	input, err := op.leftInputTable()
	if err != nil {
		return nil, err
	}

	tw := tabwriter.NewWriter(op.w, 2, 0, 2, ' ', 0)
	for i, name := range input.ColumnNames() {
		fmt.Fprintf(tw, "%s (%s)", name, input.ColumnType(storage.ColumnID(i)))
		if i+1 < len(input.ColumnNames()) {
			fmt.Fprint(tw, "\t")
		}
	}
	fmt.Fprintln(tw)

	count := input.ChunkCount()
	for chunkID := storage.ChunkID(0); chunkID < count; chunkID++ {
		chunk := input.GetChunk(chunkID)
		size := chunk.Size()
		for row := storage.ChunkOffset(0); row < size; row++ {
			for col := storage.ColumnID(0); int(col) < int(chunk.ColumnCount()); col++ {
				if col > 0 {
					fmt.Fprint(tw, "\t")
				}
				fmt.Fprintf(tw, "%v", chunk.GetSegment(col).ValueAt(row))
			}
			fmt.Fprintln(tw)
		}
	}
	if err := tw.Flush(); err != nil {
		return nil, errors.Wrap(err, "flush")
	}
	return input, nil
}
