// -*- Mode: Go; indent-tabs-mode: t -*-
//
// Copyright (C) 2019 Circutor S.A.
//
// SPDX-License-Identifier: Apache-2.0

// Package scheduler is Component F: fire registered jobs (discovery or
// device-command invocations) at ISO-8601-derived intervals on a worker
// pool (spec.md §4.F).
package scheduler

import "sync"

// workerPool is the fixed-size goroutine pool that actually executes
// fired jobs, so a slow driver callback behind one schedule event never
// blocks the cron ticker thread from evaluating the next one.
type workerPool struct {
	jobs chan func()
	wg   sync.WaitGroup
}

func newWorkerPool(size int) *workerPool {
	p := &workerPool{jobs: make(chan func(), size*4)}
	for i := 0; i < size; i++ {
		p.wg.Add(1)
		go p.worker()
	}
	return p
}

func (p *workerPool) worker() {
	defer p.wg.Done()
	for job := range p.jobs {
		job()
	}
}

// Submit enqueues job for execution on the pool. It never blocks the
// caller beyond the pool's queue capacity.
func (p *workerPool) Submit(job func()) {
	p.jobs <- job
}

// Stop closes the job queue; force=false waits for queued jobs to
// drain, force=true returns immediately and lets them finish in the
// background (spec.md §4.F: "stop must drain in-flight jobs before
// returning, stop(force=true) may abandon them").
func (p *workerPool) Stop(force bool) {
	close(p.jobs)
	if !force {
		p.wg.Wait()
	}
}
