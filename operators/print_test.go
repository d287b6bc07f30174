// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package operators

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPrintPassesThrough(t *testing.T) {
	m, tab := xyManager(t, 10)
	get := NewGetTable(m, "xy")
	sb := &strings.Builder{}
	print := NewPrint(get, sb)
	require.NoError(t, get.Execute(context.Background()))

	out := executed(t, print)
	require.Same(t, tab, out)

	text := sb.String()
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	require.Len(t, lines, 5)
	require.Contains(t, lines[0], "x (int)")
	require.Contains(t, lines[0], "y (int)")
	require.Contains(t, lines[1], "1")
	require.Contains(t, lines[4], "40")
}

func TestPrintScanOutput(t *testing.T) {
	m, _ := xyManager(t, 10)
	get := NewGetTable(m, "xy")
	scan := NewTableScan(get, 0, GreaterThan, 3)
	sb := &strings.Builder{}
	print := NewPrint(scan, sb)
	for _, op := range []Operator{get, scan, print} {
		require.NoError(t, op.Execute(context.Background()))
	}
	lines := strings.Split(strings.TrimRight(sb.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	require.Contains(t, lines[1], "4")
	require.Contains(t, lines[1], "40")
}
