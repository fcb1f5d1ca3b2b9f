// -*- Mode: Go; indent-tabs-mode: t -*-
//
// Copyright (C) 2018 IOTech Ltd
// Copyright (C) 2019 Circutor S.A.
//
// SPDX-License-Identifier: Apache-2.0

package cache

import (
	"context"
	"fmt"
	"sync"

	"github.com/Circutor/edgex/pkg/models"
	"github.com/google/uuid"

	"github.com/circutor/device-sdk-go/internal/common"
)

var initOnce sync.Once

// InitCache loads the device, provision-watcher and profile sets this
// service owns from core-metadata (spec.md §4.B step 4), tolerating a
// metadata outage by starting with empty caches rather than failing
// Start outright. It is not retried: after such a failure, devices and
// watchers enter the cache only through metadata callbacks.
func InitCache() {
	initOnce.Do(func() {
		ctx := context.WithValue(context.Background(), common.CorrelationHeader, uuid.New().String())

		ds, err := common.DeviceClient.DevicesForServiceByName(common.ServiceName, ctx)
		logCacheLoadFailure("device", err)
		newDeviceCache(ds)

		pws, err := common.ProvisionWatcherClient.ProvisionWatchersForServiceByName(common.ServiceName, ctx)
		logCacheLoadFailure("provision watcher", err)
		newWatcherCache(pws)

		newProfileCache(distinctProfiles(ds, pws))
	})
}

// logCacheLoadFailure reports a metadata fetch failure without aborting
// startup; InitCache's callers start with an empty set for that kind,
// which only metadata callbacks fill afterwards (spec.md §4.B step 4).
func logCacheLoadFailure(kind string, err error) {
	if err != nil {
		common.LoggingClient.Error(fmt.Sprintf("%s cache initialization failed: %v", kind, err))
	}
}

// distinctProfiles collects every profile referenced by ds or pws,
// deduplicated by name — a device and a provision watcher commonly
// share a profile, and the cache only needs one copy of each.
func distinctProfiles(ds []models.Device, pws []models.ProvisionWatcher) []models.DeviceProfile {
	dps := make([]models.DeviceProfile, 0, len(ds)+len(pws))
	seen := make(map[string]bool, len(ds)+len(pws))
	add := func(p models.DeviceProfile) {
		if !seen[p.Name] {
			dps = append(dps, p)
			seen[p.Name] = true
		}
	}
	for _, d := range ds {
		add(d.Profile)
	}
	for _, pw := range pws {
		add(pw.Profile)
	}
	return dps
}

// InitScheduleCache loads the Schedule and ScheduleEvent sets registered
// for this service from core-metadata (spec.md §4.B step 7). Kept
// separate from InitCache because it runs last in the reconciler, after
// schedules and schedule events have been created; StartScheduler then
// reads the events from this cache.
func InitScheduleCache(schedules []models.Schedule, events []models.ScheduleEvent) {
	newScheduleCache(schedules)
	newScheduleEventCache(events)
}

// ResetCache discards every cached device, profile, watcher and schedule
// and rearms InitCache, used by Service.Stop so a second Service in the
// same process (the test suite's pattern) starts from a clean cache.
func ResetCache() {
	newDeviceCache(nil)
	newWatcherCache(nil)
	newProfileCache(nil)
	newScheduleCache(nil)
	newScheduleEventCache(nil)
	initOnce = sync.Once{}
}
