// -*- Mode: Go; indent-tabs-mode: t -*-
//
// Copyright (C) 2019 Circutor S.A.
//
// SPDX-License-Identifier: Apache-2.0

package cache

import "sync/atomic"

// discoveryGate serialises Discover calls (spec.md §4.C: "Discovery is
// further gated by a single-writer mutex so that at most one discovery
// runs at a time; simultaneous discovery requests short-circuit with a
// 'busy' error" rather than queuing behind a plain Mutex). go.mod targets
// Go 1.13, which predates sync.Mutex.TryLock, so the gate is a bare
// int32 flipped with a compare-and-swap.
type discoveryGate struct {
	busy int32
}

var dg discoveryGate

// TryStartDiscovery reports whether the caller won the right to run discovery. A
// false return means discovery is already running elsewhere.
func TryStartDiscovery() bool {
	return atomic.CompareAndSwapInt32(&dg.busy, 0, 1)
}

// FinishDiscovery releases the gate so a later Discover call can proceed.
func FinishDiscovery() {
	atomic.StoreInt32(&dg.busy, 0)
}

// DiscoveryBusy reports whether a discovery run currently holds the gate.
func DiscoveryBusy() bool {
	return atomic.LoadInt32(&dg.busy) == 1
}
