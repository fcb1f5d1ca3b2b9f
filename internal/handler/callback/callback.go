// -*- Mode: Go; indent-tabs-mode: t -*-
//
// Copyright (C) 2017-2018 Canonical Ltd
// Copyright (C) 2018-2019 IOTech Ltd
// Copyright (c) 2019 Circutor S.A.
//
// SPDX-License-Identifier: Apache-2.0

// Package callback implements the metadata change-notification sink
// (spec.md §4.B step 8 / §6 POST|PUT|DELETE /api/v1/callback): metadata
// calls back into the running service whenever a Device, DeviceProfile,
// ProvisionWatcher or ScheduleEvent it owns is added, updated or removed,
// so the in-memory caches (Component C) and the scheduler (Component F)
// never drift from metadata's record.
package callback

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Circutor/edgex/pkg/models"
	"github.com/google/uuid"

	"github.com/circutor/device-sdk-go/internal/cache"
	"github.com/circutor/device-sdk-go/internal/common"
	"github.com/circutor/device-sdk-go/internal/scheduler"
)

func CallbackHandler(cbAlert models.CallbackAlert, method string) common.AppError {
	if cbAlert.Id == "" || cbAlert.ActionType == "" {
		common.LoggingClient.Error("callback: missing id or action type")
		return common.NewBadRequestError("missing callback parameters", nil)
	}

	switch cbAlert.ActionType {
	case models.DEVICE:
		return handleDevice(method, cbAlert.Id)
	case models.PROFILE:
		return handleProfile(method, cbAlert.Id)
	case models.PROVISIONWATCHER:
		return handleProvisionWatcher(method, cbAlert.Id)
	case models.SCHEDULEEVENT:
		return handleScheduleEvent(method, cbAlert.Id)
	default:
		common.LoggingClient.Error(fmt.Sprintf("callback: invalid action type %s", cbAlert.ActionType))
		return common.NewBadRequestError("invalid callback action type", nil)
	}
}

func correlatedContext() context.Context {
	return context.WithValue(context.Background(), common.CorrelationHeader, uuid.New().String())
}

func handleDevice(method string, id string) common.AppError {
	ctx := correlatedContext()

	switch method {
	case http.MethodPost:
		device, err := common.DeviceClient.Device(id, ctx)
		if err != nil {
			common.LoggingClient.Error(fmt.Sprintf("callback: cannot find device %s in metadata: %v", id, err))
			return common.NewBadRequestError(err.Error(), err)
		}

		if _, exists := cache.Profiles().ForName(device.Profile.Name); !exists {
			if err := cache.Profiles().Add(device.Profile); err != nil {
				common.LoggingClient.Error(fmt.Sprintf("callback: couldn't add device profile %s: %v", device.Profile.Name, err))
				return common.NewServerError(err.Error(), err)
			}
			common.LoggingClient.Info(fmt.Sprintf("callback: added device profile %s", device.Profile.Name))
		}

		if err := cache.Devices().Add(device); err != nil {
			common.LoggingClient.Error(fmt.Sprintf("callback: couldn't add device %s: %v", device.Name, err))
			return common.NewServerError(err.Error(), err)
		}
		common.LoggingClient.Info(fmt.Sprintf("callback: added device %s", device.Name))

	case http.MethodPut:
		device, err := common.DeviceClient.Device(id, ctx)
		if err != nil {
			common.LoggingClient.Error(fmt.Sprintf("callback: cannot find device %s in metadata: %v", id, err))
			return common.NewBadRequestError(err.Error(), err)
		}

		if err := cache.Devices().Update(device); err != nil {
			common.LoggingClient.Error(fmt.Sprintf("callback: couldn't update device %s: %v", device.Name, err))
			return common.NewServerError(err.Error(), err)
		}
		common.LoggingClient.Info(fmt.Sprintf("callback: updated device %s", device.Name))

	case http.MethodDelete:
		device, _ := cache.Devices().ForId(id)
		if err := cache.Devices().Remove(id); err != nil {
			common.LoggingClient.Error(fmt.Sprintf("callback: couldn't remove device %s: %v", id, err))
			return common.NewServerError(err.Error(), err)
		}
		common.LoggingClient.Info(fmt.Sprintf("callback: removed device %s", id))
		if err := common.Driver.DisconnectDevice(device.Name, &device.Addressable); err != nil {
			common.LoggingClient.Error(fmt.Sprintf("callback: driver disconnect for device %s failed: %v", device.Name, err))
		}

	default:
		common.LoggingClient.Error(fmt.Sprintf("callback: invalid device method %s", method))
		return common.NewBadRequestError("invalid device method", nil)
	}

	return nil
}

func handleProfile(method string, id string) common.AppError {
	if method != http.MethodPut {
		common.LoggingClient.Error(fmt.Sprintf("callback: invalid device profile method %s", method))
		return common.NewBadRequestError("invalid device profile method", nil)
	}

	profile, err := common.DeviceProfileClient.DeviceProfile(id, correlatedContext())
	if err != nil {
		common.LoggingClient.Error(fmt.Sprintf("callback: cannot find device profile %s in metadata: %v", id, err))
		return common.NewBadRequestError(err.Error(), err)
	}

	if err := cache.Profiles().Update(profile); err != nil {
		common.LoggingClient.Error(fmt.Sprintf("callback: couldn't update device profile %s: %v", profile.Name, err))
		return common.NewServerError(err.Error(), err)
	}
	common.LoggingClient.Info(fmt.Sprintf("callback: updated device profile %s", profile.Name))
	return nil
}

// handleProvisionWatcher mirrors handleDevice's shape against the watcher
// cache. The cache is keyed by name rather than id (spec.md §4.C doesn't
// distinguish the two for watchers), so a DELETE has to resolve the id to
// a name with a linear scan over the cached watchers first
// (watcherNameForId), an acceptable cost for a small, rarely-churned set.
func handleProvisionWatcher(method string, id string) common.AppError {
	ctx := correlatedContext()

	switch method {
	case http.MethodPost:
		watcher, err := common.ProvisionWatcherClient.ProvisionWatcher(id, ctx)
		if err != nil {
			common.LoggingClient.Error(fmt.Sprintf("callback: cannot find provision watcher %s in metadata: %v", id, err))
			return common.NewBadRequestError(err.Error(), err)
		}

		if err := cache.Watchers().Add(watcher); err != nil {
			common.LoggingClient.Error(fmt.Sprintf("callback: couldn't add provision watcher %s: %v", watcher.Name, err))
			return common.NewServerError(err.Error(), err)
		}
		common.LoggingClient.Info(fmt.Sprintf("callback: added provision watcher %s", watcher.Name))

	case http.MethodPut:
		watcher, err := common.ProvisionWatcherClient.ProvisionWatcher(id, ctx)
		if err != nil {
			common.LoggingClient.Error(fmt.Sprintf("callback: cannot find provision watcher %s in metadata: %v", id, err))
			return common.NewBadRequestError(err.Error(), err)
		}

		if err := cache.Watchers().Update(watcher); err != nil {
			common.LoggingClient.Error(fmt.Sprintf("callback: couldn't update provision watcher %s: %v", watcher.Name, err))
			return common.NewServerError(err.Error(), err)
		}
		common.LoggingClient.Info(fmt.Sprintf("callback: updated provision watcher %s", watcher.Name))

	case http.MethodDelete:
		name, found := watcherNameForId(id)
		if !found {
			common.LoggingClient.Info(fmt.Sprintf("callback: provision watcher %s not cached, nothing to remove", id))
			return nil
		}
		if err := cache.Watchers().Remove(name); err != nil {
			common.LoggingClient.Error(fmt.Sprintf("callback: couldn't remove provision watcher %s: %v", name, err))
			return common.NewServerError(err.Error(), err)
		}
		common.LoggingClient.Info(fmt.Sprintf("callback: removed provision watcher %s", name))

	default:
		common.LoggingClient.Error(fmt.Sprintf("callback: invalid provision watcher method %s", method))
		return common.NewBadRequestError("invalid provision watcher method", nil)
	}

	return nil
}

// handleScheduleEvent keeps both the cache and the running scheduler
// (Component F) in sync. The cron library has no in-place update, so PUT
// is implemented as remove-then-add, matching how scheduler.AddScheduleEvent
// is already the only path that creates a cron entry.
func handleScheduleEvent(method string, id string) common.AppError {
	ctx := correlatedContext()

	switch method {
	case http.MethodPost:
		event, err := common.ScheduleEventClient.ScheduleEvent(id, ctx)
		if err != nil {
			common.LoggingClient.Error(fmt.Sprintf("callback: cannot find schedule event %s in metadata: %v", id, err))
			return common.NewBadRequestError(err.Error(), err)
		}

		if err := cache.ScheduleEvents().Add(event); err != nil {
			common.LoggingClient.Error(fmt.Sprintf("callback: couldn't add schedule event %s: %v", event.Name, err))
			return common.NewServerError(err.Error(), err)
		}
		if err := scheduler.AddScheduleEvent(event); err != nil {
			common.LoggingClient.Error(fmt.Sprintf("callback: couldn't schedule event %s: %v", event.Name, err))
			return common.NewServerError(err.Error(), err)
		}
		common.LoggingClient.Info(fmt.Sprintf("callback: added schedule event %s", event.Name))

	case http.MethodPut:
		event, err := common.ScheduleEventClient.ScheduleEvent(id, ctx)
		if err != nil {
			common.LoggingClient.Error(fmt.Sprintf("callback: cannot find schedule event %s in metadata: %v", id, err))
			return common.NewBadRequestError(err.Error(), err)
		}

		_ = scheduler.RemoveScheduleEvent(event.Name)
		if err := cache.ScheduleEvents().Update(event); err != nil {
			common.LoggingClient.Error(fmt.Sprintf("callback: couldn't update schedule event %s: %v", event.Name, err))
			return common.NewServerError(err.Error(), err)
		}
		if err := scheduler.AddScheduleEvent(event); err != nil {
			common.LoggingClient.Error(fmt.Sprintf("callback: couldn't reschedule event %s: %v", event.Name, err))
			return common.NewServerError(err.Error(), err)
		}
		common.LoggingClient.Info(fmt.Sprintf("callback: updated schedule event %s", event.Name))

	case http.MethodDelete:
		name, found := scheduleEventNameForId(id)
		if !found {
			common.LoggingClient.Info(fmt.Sprintf("callback: schedule event %s not cached, nothing to remove", id))
			return nil
		}
		_ = scheduler.RemoveScheduleEvent(name)
		if err := cache.ScheduleEvents().Remove(name); err != nil {
			common.LoggingClient.Error(fmt.Sprintf("callback: couldn't remove schedule event %s: %v", name, err))
			return common.NewServerError(err.Error(), err)
		}
		common.LoggingClient.Info(fmt.Sprintf("callback: removed schedule event %s", name))

	default:
		common.LoggingClient.Error(fmt.Sprintf("callback: invalid schedule event method %s", method))
		return common.NewBadRequestError("invalid schedule event method", nil)
	}

	return nil
}

func watcherNameForId(id string) (string, bool) {
	for _, w := range cache.Watchers().All() {
		if w.Id.Hex() == id {
			return w.Name, true
		}
	}
	return "", false
}

func scheduleEventNameForId(id string) (string, bool) {
	for _, e := range cache.ScheduleEvents().All() {
		if e.Id.Hex() == id {
			return e.Name, true
		}
	}
	return "", false
}
