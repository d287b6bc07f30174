// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package operators

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/solidcoredata/coltab/storage"
)

// xyManager registers a table "xy" with columns (x int, y int) and rows
// (1,10),(2,20),(3,30),(4,40).
func xyManager(t *testing.T, target storage.ChunkOffset) (*storage.Manager, *storage.Table) {
	t.Helper()
	tab := storage.NewTable(target)
	require.NoError(t, tab.AddColumn("x", storage.TypeInt))
	require.NoError(t, tab.AddColumn("y", storage.TypeInt))
	for i := 1; i <= 4; i++ {
		require.NoError(t, tab.Append([]storage.Variant{i, i * 10}))
	}
	m := storage.NewManager()
	require.NoError(t, m.AddTable("xy", tab))
	return m, tab
}

func executed(t *testing.T, op Operator) *storage.Table {
	t.Helper()
	require.NoError(t, op.Execute(context.Background()))
	out, err := op.Output()
	require.NoError(t, err)
	return out
}

// columnValues reads one column of a table into int32s across all chunks.
func columnValues(t *testing.T, tab *storage.Table, col storage.ColumnID) []int32 {
	t.Helper()
	var out []int32
	count := tab.ChunkCount()
	for chunkID := storage.ChunkID(0); chunkID < count; chunkID++ {
		chunk := tab.GetChunk(chunkID)
		size := chunk.Size()
		for row := storage.ChunkOffset(0); row < size; row++ {
			v, err := storage.Cast[int32](chunk.GetSegment(col).ValueAt(row))
			require.NoError(t, err)
			out = append(out, v)
		}
	}
	return out
}

func TestTableScanGreaterThan(t *testing.T) {
	m, base := xyManager(t, 10)
	get := NewGetTable(m, "xy")
	scan := NewTableScan(get, 0, GreaterThan, 2)
	require.NoError(t, get.Execute(context.Background()))
	out := executed(t, scan)

	require.Equal(t, []string{"x", "y"}, out.ColumnNames())
	require.Equal(t, []string{storage.TypeInt, storage.TypeInt}, out.ColumnTypes())
	require.Equal(t, uint64(2), out.RowCount())
	require.Equal(t, storage.ChunkID(1), out.ChunkCount())

	require.Equal(t, []int32{3, 4}, columnValues(t, out, 0))
	require.Equal(t, []int32{30, 40}, columnValues(t, out, 1))

	chunk := out.GetChunk(0)
	xs, ok := chunk.GetSegment(0).(*storage.ReferenceSegment)
	require.True(t, ok)
	ys, ok := chunk.GetSegment(1).(*storage.ReferenceSegment)
	require.True(t, ok)

	// Both reference segments share one position list over the base table.
	require.Same(t, xs.Positions(), ys.Positions())
	require.Same(t, base, xs.ReferencedTable())
	want := storage.PositionList{
		{ChunkID: 0, ChunkOffset: 2},
		{ChunkID: 0, ChunkOffset: 3},
	}
	require.Equal(t, want, *xs.Positions())
}

func TestTableScanChainedThroughReference(t *testing.T) {
	m, base := xyManager(t, 10)
	get := NewGetTable(m, "xy")
	first := NewTableScan(get, 0, GreaterThan, 2)
	second := NewTableScan(first, 1, LessThan, 40)
	for _, op := range []Operator{get, first, second} {
		require.NoError(t, op.Execute(context.Background()))
	}
	out, err := second.Output()
	require.NoError(t, err)

	require.Equal(t, uint64(1), out.RowCount())
	require.Equal(t, []int32{3}, columnValues(t, out, 0))
	require.Equal(t, []int32{30}, columnValues(t, out, 1))

	// The second scan switched its base back to the original table and
	// kept the base row IDs.
	ref, ok := out.GetChunk(0).GetSegment(0).(*storage.ReferenceSegment)
	require.True(t, ok)
	require.Same(t, base, ref.ReferencedTable())
	require.Equal(t, storage.PositionList{{ChunkID: 0, ChunkOffset: 2}}, *ref.Positions())
}

func TestTableScanConditions(t *testing.T) {
	cases := []struct {
		condition ScanCondition
		want      []int32
	}{
		{Equals, []int32{2}},
		{NotEquals, []int32{1, 3, 4}},
		{LessThan, []int32{1}},
		{LessThanEquals, []int32{1, 2}},
		{GreaterThan, []int32{3, 4}},
		{GreaterThanEquals, []int32{2, 3, 4}},
	}
	for _, c := range cases {
		t.Run(c.condition.String(), func(t *testing.T) {
			m, _ := xyManager(t, 10)
			get := NewGetTable(m, "xy")
			scan := NewTableScan(get, 0, c.condition, 2)
			require.NoError(t, get.Execute(context.Background()))
			out := executed(t, scan)
			require.Equal(t, c.want, columnValues(t, out, 0))
		})
	}
}

func TestTableScanDictionarySegments(t *testing.T) {
	cases := []struct {
		condition ScanCondition
		search    int
		want      []int32
	}{
		{Equals, 2, []int32{2}},
		{NotEquals, 2, []int32{1, 3, 4}},
		{LessThan, 3, []int32{1, 2}},
		{LessThanEquals, 3, []int32{1, 2, 3}},
		{GreaterThan, 2, []int32{3, 4}},
		{GreaterThanEquals, 2, []int32{2, 3, 4}},

		// Searches beyond the dictionary exercise the pruning paths.
		{Equals, 100, nil},
		{GreaterThan, 4, nil},
		{GreaterThanEquals, 100, nil},
		{LessThan, 100, []int32{1, 2, 3, 4}},
	}
	for _, c := range cases {
		t.Run(c.condition.String(), func(t *testing.T) {
			m, tab := xyManager(t, 2)
			count := tab.ChunkCount()
			for chunkID := storage.ChunkID(0); chunkID < count; chunkID++ {
				require.NoError(t, tab.CompressChunk(context.Background(), chunkID))
			}
			get := NewGetTable(m, "xy")
			scan := NewTableScan(get, 0, c.condition, c.search)
			require.NoError(t, get.Execute(context.Background()))
			out := executed(t, scan)
			require.Equal(t, c.want, columnValues(t, out, 0))
		})
	}
}

func TestTableScanMultiChunkOrdering(t *testing.T) {
	m, _ := xyManager(t, 2)
	get := NewGetTable(m, "xy")
	scan := NewTableScan(get, 0, GreaterThanEquals, 1)
	require.NoError(t, get.Execute(context.Background()))
	out := executed(t, scan)

	ref, ok := out.GetChunk(0).GetSegment(0).(*storage.ReferenceSegment)
	require.True(t, ok)
	want := storage.PositionList{
		{ChunkID: 0, ChunkOffset: 0},
		{ChunkID: 0, ChunkOffset: 1},
		{ChunkID: 1, ChunkOffset: 0},
		{ChunkID: 1, ChunkOffset: 1},
	}
	require.Equal(t, want, *ref.Positions())
}

func TestTableScanStringColumn(t *testing.T) {
	tab := storage.NewTable(10)
	require.NoError(t, tab.AddColumn("name", storage.TypeString))
	for _, v := range []string{"Bill", "Steve", "Alexander", "Hasso"} {
		require.NoError(t, tab.Append([]storage.Variant{v}))
	}
	m := storage.NewManager()
	require.NoError(t, m.AddTable("people", tab))

	get := NewGetTable(m, "people")
	scan := NewTableScan(get, 0, LessThan, "Hasso")
	require.NoError(t, get.Execute(context.Background()))
	out := executed(t, scan)

	require.Equal(t, uint64(2), out.RowCount())
	chunk := out.GetChunk(0)
	require.Equal(t, storage.Variant("Bill"), chunk.GetSegment(0).ValueAt(0))
	require.Equal(t, storage.Variant("Alexander"), chunk.GetSegment(0).ValueAt(1))
}

func TestTableScanEmptyInput(t *testing.T) {
	tab := storage.NewTable(10)
	require.NoError(t, tab.AddColumn("x", storage.TypeInt))
	require.NoError(t, tab.AddColumn("y", storage.TypeLong))
	m := storage.NewManager()
	require.NoError(t, m.AddTable("empty", tab))

	get := NewGetTable(m, "empty")
	scan := NewTableScan(get, 0, Equals, 1)
	require.NoError(t, get.Execute(context.Background()))
	out := executed(t, scan)

	require.Equal(t, uint64(0), out.RowCount())
	require.Equal(t, []string{"x", "y"}, out.ColumnNames())
	require.Equal(t, []string{storage.TypeInt, storage.TypeLong}, out.ColumnTypes())
}

func TestTableScanNeverMatching(t *testing.T) {
	m, _ := xyManager(t, 10)
	get := NewGetTable(m, "xy")
	scan := NewTableScan(get, 0, Equals, 99)
	require.NoError(t, get.Execute(context.Background()))
	out := executed(t, scan)

	require.Equal(t, uint64(0), out.RowCount())
	require.Equal(t, []string{"x", "y"}, out.ColumnNames())
}

func TestTableScanEqualsIdempotent(t *testing.T) {
	m, _ := xyManager(t, 10)
	get := NewGetTable(m, "xy")
	first := NewTableScan(get, 0, Equals, 3)
	second := NewTableScan(first, 0, Equals, 3)
	for _, op := range []Operator{get, first, second} {
		require.NoError(t, op.Execute(context.Background()))
	}
	a, err := first.Output()
	require.NoError(t, err)
	b, err := second.Output()
	require.NoError(t, err)
	require.Equal(t, a.RowCount(), b.RowCount())
}

func TestTableScanCastFailure(t *testing.T) {
	m, _ := xyManager(t, 10)
	get := NewGetTable(m, "xy")
	scan := NewTableScan(get, 0, Equals, "two")
	require.NoError(t, get.Execute(context.Background()))
	require.Error(t, scan.Execute(context.Background()))
}

func TestTableScanInvalidCondition(t *testing.T) {
	m, _ := xyManager(t, 10)
	get := NewGetTable(m, "xy")
	scan := NewTableScan(get, 0, ScanCondition(42), 2)
	require.NoError(t, get.Execute(context.Background()))
	require.Error(t, scan.Execute(context.Background()))
}

func TestTableScanColumnOutOfRange(t *testing.T) {
	m, _ := xyManager(t, 10)
	get := NewGetTable(m, "xy")
	scan := NewTableScan(get, 7, Equals, 2)
	require.NoError(t, get.Execute(context.Background()))
	require.Error(t, scan.Execute(context.Background()))
}

func TestTableScanAccessors(t *testing.T) {
	scan := NewTableScan(nil, 1, GreaterThan, 5)
	require.Equal(t, storage.ColumnID(1), scan.ColumnID())
	require.Equal(t, GreaterThan, scan.Condition())
	require.Equal(t, storage.Variant(5), scan.SearchValue())
}

func TestTableScanExecuteCaches(t *testing.T) {
	m, _ := xyManager(t, 10)
	get := NewGetTable(m, "xy")
	scan := NewTableScan(get, 0, GreaterThan, 2)
	require.NoError(t, get.Execute(context.Background()))
	require.NoError(t, scan.Execute(context.Background()))
	first, err := scan.Output()
	require.NoError(t, err)
	require.NoError(t, scan.Execute(context.Background()))
	second, err := scan.Output()
	require.NoError(t, err)
	require.Same(t, first, second)
}
