// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package operators implements query operators over the storage layer.
//
// An operator consumes the output tables of up to two input operators and
// produces one output table. Execution is caller driven: inputs must be
// executed before the consumer. Output tables are immutable; operators
// never mutate their inputs.
package operators

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/solidcoredata/coltab/storage"
)

// ErrNotExecuted is returned by Output before Execute has run.
var ErrNotExecuted = errors.New("operators: operator not executed")

// Operator is one node of a query chain.
type Operator interface {
	// Execute runs the operator body once and caches the output. Repeated
	// calls return the cached result.
	Execute(ctx context.Context) error

	// Output returns the cached output table. It fails before Execute.
	Output() (*storage.Table, error)
}

// Option configures an operator.
type Option func(*base)

// WithLogger sets the logger for execution reporting.
func WithLogger(log *zap.Logger) Option {
	return func(b *base) { b.log = log }
}

// base carries the input handles, the cached output, and the logger shared
// by all operators.
type base struct {
	left, right Operator
	output      *storage.Table
	log         *zap.Logger
}

func newBase(left, right Operator, opts []Option) base {
	b := base{left: left, right: right, log: zap.NewNop()}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

// Output returns the cached output table.
func (b *base) Output() (*storage.Table, error) {
	if b.output == nil {
		return nil, ErrNotExecuted
	}
	return b.output, nil
}

// execute runs the operator body exactly once.
func (b *base) execute(ctx context.Context, name string, run func(context.Context) (*storage.Table, error)) error {
	if b.output != nil {
		return nil
	}
	start := time.Now()
	out, err := run(ctx)
	if err != nil {
		return errors.Wrap(err, name)
	}
	b.output = out
	b.log.Debug("operator executed",
		zap.String("operator", name),
		zap.Uint64("rows", out.RowCount()),
		zap.Duration("elapsed", time.Since(start)))
	return nil
}

func (b *base) leftInputTable() (*storage.Table, error) {
	if b.left == nil {
		return nil, errors.New("operators: no left input")
	}
	return b.left.Output()
}
