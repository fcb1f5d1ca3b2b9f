// -*- Mode: Go; indent-tabs-mode: t -*-
//
// Copyright (C) 2019 Circutor S.A.
//
// SPDX-License-Identifier: Apache-2.0

package scheduler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/Circutor/edgex/pkg/models"

	"github.com/circutor/device-sdk-go/internal/common"
)

// scheduleEventJob is the runtime counterpart of a ScheduleEvent: on
// fire it synthesises a request against the service for its Path: a POST
// for the discovery route, a GET for a device-command route (spec.md §3,
// §4.F). Routing both job shapes through one HTTP round-trip to the
// service's own listener keeps the scheduler decoupled from the
// dispatcher's internals — it only ever needs a URL.
type scheduleEventJob struct {
	event  models.ScheduleEvent
	client *http.Client
}

func newScheduleEventJob(event models.ScheduleEvent) *scheduleEventJob {
	return &scheduleEventJob{
		event:  event,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

// Run satisfies cron.Job. It is invoked on the cron library's own
// goroutine, so the actual HTTP call is handed off to the worker pool
// immediately to keep the ticker thread free to evaluate other entries.
func (j *scheduleEventJob) Run() {
	pool.Submit(func() {
		j.fire()
	})
}

func (j *scheduleEventJob) fire() {
	url := fmt.Sprintf("http://%s:%d%s", common.CurrentConfig.Service.Host, common.CurrentConfig.Service.Port, j.event.Addressable.Path)

	var resp *http.Response
	var err error
	if j.event.Addressable.Path == common.APIDiscoveryRoute {
		resp, err = j.client.Post(url, "application/json", nil)
	} else {
		resp, err = j.client.Get(url)
	}
	if err != nil {
		common.LoggingClient.Error(fmt.Sprintf("schedule event %s: request to %s failed: %v", j.event.Name, url, err))
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		common.LoggingClient.Error(fmt.Sprintf("schedule event %s: %s returned %s", j.event.Name, url, resp.Status))
	}
}
