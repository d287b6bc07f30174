// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package start runs a process body with interrupt handling.
package start

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"time"
)

type RunFunc func(ctx context.Context) error

// Start runs run until it returns or the process is interrupted. On
// interrupt the context is canceled and run is given stopTimeout to
// finish.
func Start(ctx context.Context, stopTimeout time.Duration, run RunFunc) error {
	notify := make(chan os.Signal, 3)
	signal.Notify(notify, os.Interrupt)
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	once := &sync.Once{}
	fin := make(chan bool)
	unlockOnce := func() {
		once.Do(func() { close(fin) })
	}
	runErr := atomic.Value{}
	go func() {
		if err := run(ctx); err != nil {
			runErr.Store(err)
		}
		unlockOnce()
	}()
	select {
	case <-notify:
	case <-fin:
	}
	cancel()
	go func() {
		<-time.After(stopTimeout)
		unlockOnce()
	}()
	<-fin
	if err, ok := runErr.Load().(error); ok {
		return err
	}
	return nil
}
