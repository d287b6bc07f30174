// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package storage

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestManagerAddGetDrop(t *testing.T) {
	m := NewManager()
	require.NoError(t, m.AddTable("a", NewTable(2)))
	require.NoError(t, m.AddTable("b", NewTable(2)))

	require.True(t, m.HasTable("a"))
	require.False(t, m.HasTable("c"))

	_, err := m.GetTable("c")
	require.ErrorIs(t, err, ErrUnknownTable)
	tab, err := m.GetTable("a")
	require.NoError(t, err)
	require.NotNil(t, tab)

	require.ErrorIs(t, m.AddTable("a", NewTable(2)), ErrTableExists)

	require.NoError(t, m.DropTable("a"))
	require.ErrorIs(t, m.DropTable("a"), ErrUnknownTable)
	require.False(t, m.HasTable("a"))
}

func TestManagerTableNames(t *testing.T) {
	m := NewManager()
	require.NoError(t, m.AddTable("a", NewTable(2)))
	require.NoError(t, m.AddTable("b", NewTable(2)))
	require.ElementsMatch(t, []string{"a", "b"}, m.TableNames())
}

func TestManagerReset(t *testing.T) {
	m := NewManager()
	require.NoError(t, m.AddTable("a", NewTable(2)))
	m.Reset()
	require.False(t, m.HasTable("a"))
	require.Empty(t, m.TableNames())
}

func TestManagerPrint(t *testing.T) {
	m := NewManager()
	tab := NewTable(2)
	require.NoError(t, tab.AddColumn("x", TypeInt))
	require.NoError(t, tab.AddColumn("y", TypeString))
	for i := 0; i < 5; i++ {
		require.NoError(t, tab.Append([]Variant{i, "v"}))
	}
	require.NoError(t, m.AddTable("demo", tab))

	sb := &strings.Builder{}
	m.Print(sb)
	require.Equal(t, "Name: demo, #columns: 2, #rows: 5, #chunks: 3\n", sb.String())
}

func TestManagerPrintMemory(t *testing.T) {
	m := NewManager()
	tab := NewTable(2)
	require.NoError(t, tab.AddColumn("x", TypeInt))
	require.NoError(t, tab.Append([]Variant{1}))
	require.NoError(t, m.AddTable("demo", tab))

	sb := &strings.Builder{}
	m.PrintMemory(sb)
	require.True(t, strings.HasPrefix(sb.String(), "Name: demo, memory: "))
}

func TestDefaultManagerIsProcessWide(t *testing.T) {
	require.Same(t, Default(), Default())
}
