// -*- Mode: Go; indent-tabs-mode: t -*-
//
// Copyright (C) 2018 IOTech Ltd
// Copyright (C) 2019 Circutor S.A.
//
// SPDX-License-Identifier: Apache-2.0

package scheduler

import (
	"fmt"
	"sync"

	"github.com/Circutor/edgex/pkg/models"
	cron "gopkg.in/robfig/cron.v2"

	"github.com/circutor/device-sdk-go/internal/cache"
	"github.com/circutor/device-sdk-go/internal/common"
)

var (
	schMgrOnce sync.Once
	cr         *cron.Cron
	entryMap   map[string]cron.EntryID
	pool       *workerPool
)

// StartScheduler brings up the cron ticker and worker pool and loads
// every ScheduleEvent already in cache.ScheduleEvents (populated by the
// reconciler's metadata load at spec.md §4.B step 7). Idempotent.
func StartScheduler() {
	schMgrOnce.Do(func() {
		pool = newWorkerPool(common.DefaultWorkerPoolSize)
		cr = cron.New()
		cr.Start()
		entryMap = make(map[string]cron.EntryID)

		for _, evt := range cache.ScheduleEvents().All() {
			if err := AddScheduleEvent(evt); err != nil {
				common.LoggingClient.Error(err.Error())
			}
		}
	})
}

// AddScheduleEvent resolves evt's schedule, turns its ISO-8601 frequency
// into a cron "@every" spec, and registers the resulting job.
func AddScheduleEvent(evt models.ScheduleEvent) error {
	cr.Stop()
	defer cr.Start()

	if _, ok := entryMap[evt.Name]; ok {
		return fmt.Errorf("schedule event %s already exists in scheduler", evt.Name)
	}

	sch, ok := cache.Schedules().ForName(evt.Schedule)
	if !ok {
		return fmt.Errorf("schedule %s for schedule event %s cannot be found in cache", evt.Schedule, evt.Name)
	}

	spec, err := cronSpec(sch)
	if err != nil {
		return err
	}

	entry, err := cr.AddJob(spec, newScheduleEventJob(evt))
	if err != nil {
		return err
	}
	entryMap[evt.Name] = entry
	common.LoggingClient.Info(fmt.Sprintf("initialized schedule event %s (every %s)", evt.Name, sch.Frequency))
	return nil
}

// Submit hands job to the shared worker pool, letting the event
// publisher (Component E) and the discovery handler reuse the
// same fixed-size pool the scheduler owns, rather than spinning up a
// second one (spec.md §5: "the worker pool and scheduler are shared by
// the whole process"). A call before StartScheduler or after
// StopScheduler is a silent no-op, matching post_readings' best-effort
// delivery contract.
func Submit(job func()) {
	if pool != nil {
		pool.Submit(job)
	}
}

// RemoveScheduleEvent unregisters a previously added schedule event,
// e.g. in response to a DELETE callback from core-metadata.
func RemoveScheduleEvent(name string) error {
	entry, ok := entryMap[name]
	if !ok {
		return fmt.Errorf("schedule event %s does not exist in scheduler", name)
	}
	cr.Remove(entry)
	delete(entryMap, name)
	return nil
}

// StopScheduler stops the cron ticker and drains (or, if force, abandons)
// the worker pool. Service.Stop calls this only after the HTTP server has
// already been shut down (spec.md §4.G), so no inbound request can still
// be dispatching into Submit once the pool's job queue is closed here.
func StopScheduler(force bool) {
	if cr != nil {
		cr.Stop()
	}
	if pool != nil {
		pool.Stop(force)
		pool = nil
	}
	common.LoggingClient.Info("stopped internal scheduler")
	schMgrOnce = sync.Once{}
}

func cronSpec(sch models.Schedule) (string, error) {
	seconds, err := common.ParseISO8601Duration(sch.Frequency)
	if err != nil {
		return "", fmt.Errorf("invalid frequency for schedule %s: %v", sch.Name, err)
	}
	return fmt.Sprintf("@every %ds", seconds), nil
}
