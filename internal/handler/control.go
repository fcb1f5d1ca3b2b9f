// -*- mode: Go; indent-tabs-mode: t -*-
//
// Copyright (C) 2017-2018 Canonical Ltd
// Copyright (c) 2019 Circutor S.A.
//
// SPDX-License-Identifier: Apache-2.0

package handler

import (
	"net/http"
	"runtime"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/circutor/device-sdk-go/internal/common"
)

// PingHandler answers the liveness probe, spec.md §6: GET /api/v1/ping.
func PingHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"value": "pong"})
}

// ConfigHandler returns the service's effective configuration as flat
// name/value pairs, spec.md §6: GET /api/v1/config.
func ConfigHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, common.CurrentConfig.FlatPairs())
}

// metricsReport is the wire shape spec.md §6 names verbatim:
// `{Alloc, Heap, CPU}` where CPU is user+system seconds.
type metricsReport struct {
	Alloc uint64
	Heap  uint64
	CPU   float64
}

// MetricsHandler answers GET /api/v1/metrics (spec.md §4.G, EXPANSION
// 4.G). Alloc/Heap come straight from runtime.MemStats; CPU seconds are
// gathered from client_golang's process collector through a private
// registry that this handler never exposes over HTTP — the collector is
// used purely as a gauge-reading utility, not as a /metrics exporter.
func MetricsHandler(w http.ResponseWriter, r *http.Request) {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)

	writeJSON(w, http.StatusOK, metricsReport{
		Alloc: ms.Alloc,
		Heap:  ms.HeapSys,
		CPU:   processCPUSeconds(),
	})
}

func processCPUSeconds() float64 {
	reg := prometheus.NewRegistry()
	reg.MustRegister(prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}))

	families, err := reg.Gather()
	if err != nil {
		common.LoggingClient.Error(err.Error())
		return 0
	}

	for _, family := range families {
		if family.GetName() != "process_cpu_seconds_total" {
			continue
		}
		for _, m := range family.GetMetric() {
			if c := m.GetCounter(); c != nil {
				return c.GetValue()
			}
		}
	}
	return 0
}
