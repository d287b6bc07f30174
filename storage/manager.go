// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package storage

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

var (
	// ErrTableExists is returned by AddTable for a name already in use.
	ErrTableExists = errors.New("storage: table already exists")

	// ErrUnknownTable is returned when a name is not registered.
	ErrUnknownTable = errors.New("storage: unknown table")
)

// Manager maps table names to tables. The zero of the process is the
// Default manager; tests create their own with NewManager. Mutators are
// not safe for concurrent use and must be serialized by the caller.
type Manager struct {
	tables map[string]*Table
	log    *zap.Logger
}

// ManagerOption configures a manager.
type ManagerOption func(*Manager)

// WithManagerLogger sets the logger for registry mutations.
func WithManagerLogger(log *zap.Logger) ManagerOption {
	return func(m *Manager) { m.log = log }
}

// NewManager returns an empty manager.
func NewManager(opts ...ManagerOption) *Manager {
	m := &Manager{
		tables: make(map[string]*Table),
		log:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

var defaultManager = NewManager()

// Default returns the process-wide manager.
func Default() *Manager {
	return defaultManager
}

// AddTable registers a table under a name. It fails when the name is
// already present.
func (m *Manager) AddTable(name string, t *Table) error {
	if _, ok := m.tables[name]; ok {
		return errors.Wrap(ErrTableExists, name)
	}
	m.tables[name] = t
	m.log.Debug("table added", zap.String("name", name), zap.Uint64("rows", t.RowCount()))
	return nil
}

// DropTable removes a table. It fails when the name is absent.
func (m *Manager) DropTable(name string) error {
	if _, ok := m.tables[name]; !ok {
		return errors.Wrap(ErrUnknownTable, name)
	}
	delete(m.tables, name)
	m.log.Debug("table dropped", zap.String("name", name))
	return nil
}

// GetTable returns the table registered under a name. It fails when the
// name is absent.
func (m *Manager) GetTable(name string) (*Table, error) {
	t, ok := m.tables[name]
	if !ok {
		return nil, errors.Wrap(ErrUnknownTable, name)
	}
	return t, nil
}

// HasTable reports whether a name is registered.
func (m *Manager) HasTable(name string) bool {
	_, ok := m.tables[name]
	return ok
}

// TableNames returns the registered names in unspecified order.
func (m *Manager) TableNames() []string {
	names := make([]string, 0, len(m.tables))
	for name := range m.tables {
		names = append(names, name)
	}
	return names
}

// Reset drops every table. Used by tests.
func (m *Manager) Reset() {
	m.tables = make(map[string]*Table)
}

// Print writes one line per table.
func (m *Manager) Print(w io.Writer) {
	for name, t := range m.tables {
		fmt.Fprintf(w, "Name: %s, #columns: %d, #rows: %d, #chunks: %d\n",
			name, t.ColumnCount(), t.RowCount(), t.ChunkCount())
	}
}

// PrintMemory writes one line per table with its estimated payload size.
func (m *Manager) PrintMemory(w io.Writer) {
	for name, t := range m.tables {
		fmt.Fprintf(w, "Name: %s, memory: %s\n", name, humanize.IBytes(t.EstimateMemoryUsage()))
	}
}
