// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package operators

import (
	"context"

	"github.com/solidcoredata/coltab/storage"
)

// GetTable is the leaf operator: it resolves a table by name from a
// storage manager.
type GetTable struct {
	base
	manager *storage.Manager
	name    string
}

// NewGetTable returns an operator reading the named table from manager.
func NewGetTable(manager *storage.Manager, name string, opts ...Option) *GetTable {
	return &GetTable{base: newBase(nil, nil, opts), manager: manager, name: name}
}

// TableName returns the name this operator resolves.
func (op *GetTable) TableName() string { return op.name }

// Execute looks the table up and caches it as the output.
func (op *GetTable) Execute(ctx context.Context) error {
	return op.execute(ctx, "get_table", func(context.Context) (*storage.Table, error) {
		return op.manager.GetTable(op.name)
	})
}
