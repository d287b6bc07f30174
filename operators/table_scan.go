// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package operators

import (
	"context"

	"github.com/pkg/errors"
	"golang.org/x/exp/constraints"

	"github.com/solidcoredata/coltab/storage"
)

// ScanCondition is the comparison a TableScan applies between a column
// value and the search value.
type ScanCondition int

const (
	Equals ScanCondition = iota
	NotEquals
	LessThan
	LessThanEquals
	GreaterThan
	GreaterThanEquals
)

func (c ScanCondition) String() string {
	switch c {
	case Equals:
		return "="
	case NotEquals:
		return "!="
	case LessThan:
		return "<"
	case LessThanEquals:
		return "<="
	case GreaterThan:
		return ">"
	case GreaterThanEquals:
		return ">="
	}
	return "invalid"
}

// resolveComparator maps a scan condition to a predicate on the natural
// total order of T. An unknown condition fails.
func resolveComparator[T constraints.Ordered](c ScanCondition) (func(a, b T) bool, error) {
	switch c {
	case Equals:
		return func(a, b T) bool { return a == b }, nil
	case NotEquals:
		return func(a, b T) bool { return a != b }, nil
	case LessThan:
		return func(a, b T) bool { return a < b }, nil
	case LessThanEquals:
		return func(a, b T) bool { return a <= b }, nil
	case GreaterThan:
		return func(a, b T) bool { return a > b }, nil
	case GreaterThanEquals:
		return func(a, b T) bool { return a >= b }, nil
	}
	return nil, errors.Errorf("operators: invalid scan condition %d", int(c))
}

// TableScan filters one column of its input against a search value and
// produces a one-chunk table of reference segments sharing a single
// position list.
type TableScan struct {
	base
	columnID    storage.ColumnID
	condition   ScanCondition
	searchValue storage.Variant
}

// NewTableScan returns a scan of columnID of in's output.
func NewTableScan(in Operator, columnID storage.ColumnID, condition ScanCondition, searchValue storage.Variant, opts ...Option) *TableScan {
	return &TableScan{
		base:        newBase(in, nil, opts),
		columnID:    columnID,
		condition:   condition,
		searchValue: searchValue,
	}
}

// ColumnID returns the scanned column.
func (op *TableScan) ColumnID() storage.ColumnID { return op.columnID }

// Condition returns the comparison condition.
func (op *TableScan) Condition() ScanCondition { return op.condition }

// SearchValue returns the search value.
func (op *TableScan) SearchValue() storage.Variant { return op.searchValue }

// Execute runs the scan once and caches the output.
func (op *TableScan) Execute(ctx context.Context) error {
	return op.execute(ctx, "table_scan", op.run)
}

func (op *TableScan) run(context.Context) (*storage.Table, error) {
	input, err := op.leftInputTable()
	if err != nil {
		return nil, err
	}
	if int(op.columnID) >= int(input.ColumnCount()) {
		return nil, errors.Errorf("operators: column %d out of range", op.columnID)
	}
	if input.RowCount() == 0 {
		return storage.NewTableFromChunks(input.ColumnNames(), input.ColumnTypes(), nil, input.TargetChunkSize())
	}
	d := &scanDispatch{op: op, input: input}
	if err := storage.ResolveDataType(input.ColumnType(op.columnID), d); err != nil {
		return nil, err
	}
	return d.output, nil
}

// scanDispatch routes the column's dynamic type tag into the typed scan
// body. One resolution per scan; the row loops below are monomorphic.
type scanDispatch struct {
	op     *TableScan
	input  *storage.Table
	output *storage.Table
}

func (d *scanDispatch) VisitInt32() error   { return scanColumn[int32](d) }
func (d *scanDispatch) VisitInt64() error   { return scanColumn[int64](d) }
func (d *scanDispatch) VisitFloat32() error { return scanColumn[float32](d) }
func (d *scanDispatch) VisitFloat64() error { return scanColumn[float64](d) }
func (d *scanDispatch) VisitString() error  { return scanColumn[string](d) }

func scanColumn[T storage.ColumnElement](d *scanDispatch) error {
	op := d.op
	search, err := storage.Cast[T](op.searchValue)
	if err != nil {
		return err
	}
	cmp, err := resolveComparator[T](op.condition)
	if err != nil {
		return err
	}

	// baseTable is the table the emitted positions address. Scanning a
	// reference segment replaces it with the segment's referenced table.
	baseTable := d.input
	positions := storage.PositionList{}

	chunkCount := d.input.ChunkCount()
scan:
	for chunkID := storage.ChunkID(0); chunkID < chunkCount; chunkID++ {
		segment := d.input.GetChunk(chunkID).GetSegment(op.columnID)
		switch s := segment.(type) {
		case *storage.ValueSegment[T]:
			for i, v := range s.Values() {
				if cmp(v, search) {
					positions = append(positions, storage.RowID{ChunkID: chunkID, ChunkOffset: storage.ChunkOffset(i)})
				}
			}

		case *storage.DictionarySegment[T]:
			// Order-based pruning: skip the chunk when no dictionary
			// entry can satisfy the condition.
			switch op.condition {
			case Equals, GreaterThanEquals:
				if s.LowerBound(search) == storage.InvalidValueID {
					continue
				}
			case GreaterThan:
				if s.UpperBound(search) == storage.InvalidValueID {
					continue
				}
			}
			dictionary := s.Dictionary()
			codes := s.AttributeVector()
			size := s.Size()
			for i := storage.ChunkOffset(0); i < size; i++ {
				if cmp(dictionary[codes.Get(i)], search) {
					positions = append(positions, storage.RowID{ChunkID: chunkID, ChunkOffset: i})
				}
			}

		case *storage.ReferenceSegment:
			// The scan continues against the segment's base table, and
			// matching rows keep their base row IDs. A reference segment
			// spans the whole logical input, so the walk stops here.
			baseTable = s.ReferencedTable()
			for k, row := range *s.Positions() {
				v, err := storage.Cast[T](s.ValueAt(storage.ChunkOffset(k)))
				if err != nil {
					return err
				}
				if cmp(v, search) {
					positions = append(positions, row)
				}
			}
			break scan

		default:
			return errors.Errorf("operators: unrecognized segment variant %T", segment)
		}
	}

	chunk := storage.NewChunk()
	for i := 0; i < int(baseTable.ColumnCount()); i++ {
		chunk.AddSegment(storage.NewReferenceSegment(baseTable, storage.ColumnID(i), &positions))
	}
	out, err := storage.NewTableFromChunks(
		baseTable.ColumnNames(), baseTable.ColumnTypes(),
		[]*storage.Chunk{chunk}, baseTable.TargetChunkSize())
	if err != nil {
		return err
	}
	d.output = out
	return nil
}
