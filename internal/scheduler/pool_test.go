package scheduler

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWorkerPoolRunsSubmittedJobs(t *testing.T) {
	p := newWorkerPool(4)
	var count int32
	const n = 50
	for i := 0; i < n; i++ {
		p.Submit(func() { atomic.AddInt32(&count, 1) })
	}
	p.Stop(false)
	assert.Equal(t, int32(n), atomic.LoadInt32(&count))
}

func TestWorkerPoolStopForceDoesNotBlock(t *testing.T) {
	p := newWorkerPool(1)
	block := make(chan struct{})
	p.Submit(func() { <-block })
	p.Submit(func() {})

	done := make(chan struct{})
	go func() {
		p.Stop(true)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop(true) must not block on in-flight jobs")
	}
	close(block)
}
