// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command coltab builds a demo table, compresses it, and runs a chained
// scan against it.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	"github.com/solidcoredata/coltab/internal/start"
	"github.com/solidcoredata/coltab/operators"
	"github.com/solidcoredata/coltab/storage"
)

var (
	chunkSize = flag.Uint("chunk-size", 1000, "rows per chunk")
	rows      = flag.Uint("rows", 10000, "rows to generate")
	verbose   = flag.Bool("verbose", false, "enable debug logging")
)

func main() {
	flag.Parse()
	err := start.Start(context.Background(), time.Second*5, run)
	if err != nil {
		log.Print(err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	logger := zap.NewNop()
	if *verbose {
		var err error
		logger, err = zap.NewDevelopment()
		if err != nil {
			return err
		}
		defer logger.Sync()
	}

	manager := storage.NewManager(storage.WithManagerLogger(logger))

	table := storage.NewTable(storage.ChunkOffset(*chunkSize), storage.WithTableLogger(logger))
	if err := table.AddColumn("id", storage.TypeInt); err != nil {
		return err
	}
	if err := table.AddColumn("group", storage.TypeString); err != nil {
		return err
	}
	if err := table.AddColumn("score", storage.TypeDouble); err != nil {
		return err
	}
	groups := []string{"alpha", "beta", "gamma", "delta"}
	for i := uint(0); i < *rows; i++ {
		row := []storage.Variant{
			int32(i),
			groups[i%uint(len(groups))],
			float64(i%100) / 10,
		}
		if err := table.Append(row); err != nil {
			return err
		}
	}
	if err := manager.AddTable("demo", table); err != nil {
		return err
	}

	// Compress every chunk but the last; the tail chunk stays uncompressed
	// even when it is full.
	count := table.ChunkCount()
	for chunkID := storage.ChunkID(0); chunkID+1 < count; chunkID++ {
		if err := table.CompressChunk(ctx, chunkID); err != nil {
			return err
		}
	}

	// id > rows-8, then score < 5, printed.
	get := operators.NewGetTable(manager, "demo", operators.WithLogger(logger))
	first := operators.NewTableScan(get, 0, operators.GreaterThan, int32(*rows)-8, operators.WithLogger(logger))
	second := operators.NewTableScan(first, 2, operators.LessThan, 5.0, operators.WithLogger(logger))
	dump := operators.NewPrint(second, os.Stdout, operators.WithLogger(logger))
	for _, op := range []operators.Operator{get, first, second, dump} {
		if err := op.Execute(ctx); err != nil {
			return err
		}
	}
	out, err := second.Output()
	if err != nil {
		return err
	}
	fmt.Printf("matched %d of %d rows\n", out.RowCount(), table.RowCount())
	fmt.Printf("table memory: %s\n", humanize.IBytes(table.EstimateMemoryUsage()))

	manager.Print(os.Stdout)
	manager.PrintMemory(os.Stdout)
	return nil
}
