// -*- mode: Go; indent-tabs-mode: t -*-
//
// Copyright (c) 2019 Circutor S.A.
//
// SPDX-License-Identifier: Apache-2.0

package handler

import (
	"fmt"
	"net/http"

	"github.com/circutor/device-sdk-go/internal/cache"
	"github.com/circutor/device-sdk-go/internal/common"
	"github.com/circutor/device-sdk-go/internal/scheduler"
)

// DiscoveryHandler implements spec.md §6: POST /api/v1/discovery. 202 if
// accepted, 423 if a discovery is already in flight, 503 if no driver is
// configured. A driver whose Discover returns an error, including one
// without discovery support, still gets 202; the error is only logged.
func DiscoveryHandler(w http.ResponseWriter, r *http.Request) {
	if common.Driver == nil {
		writeAppError(w, common.NewServiceUnavailableError("no driver configured for discovery", nil))
		return
	}

	if !cache.TryStartDiscovery() {
		writeAppError(w, common.NewLockedError("discovery already in progress", nil))
		return
	}

	scheduler.Submit(func() {
		defer cache.FinishDiscovery()
		if err := common.Driver.Discover(); err != nil {
			common.LoggingClient.Error(fmt.Sprintf("discovery failed: %v", err))
		}
	})

	w.WriteHeader(http.StatusAccepted)
}
