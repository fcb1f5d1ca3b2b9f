// -*- mode: Go; indent-tabs-mode: t -*-
//
// Copyright (C) 2017-2018 Canonical Ltd
// Copyright (c) 2019 Circutor S.A.
//
// SPDX-License-Identifier: Apache-2.0

package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"

	"github.com/Circutor/edgex/pkg/models"
	"github.com/gorilla/mux"

	"github.com/circutor/device-sdk-go/internal/cache"
	"github.com/circutor/device-sdk-go/internal/common"
	"github.com/circutor/device-sdk-go/internal/data"
	"github.com/circutor/device-sdk-go/internal/transform"
	ds_models "github.com/circutor/device-sdk-go/pkg/models"
)

// DeviceCommandHandler implements spec.md §4.D for the two named-device
// URL families: GET .../name/<name>/<command> | .../<id>/<command>, and
// the same pair for PUT.
func DeviceCommandHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	device, appErr := resolveDevice(vars)
	if appErr != nil {
		writeAppError(w, appErr)
		return
	}
	if appErr := checkDeviceState(device); appErr != nil {
		writeAppError(w, appErr)
		return
	}

	profile := resolveProfile(device)

	command := vars[common.CommandVar]
	unlock := cache.Devices().Lock(device.Id.Hex())
	defer unlock()

	switch r.Method {
	case http.MethodGet:
		event, appErr := readDevice(device, profile, command)
		if appErr != nil {
			writeAppError(w, appErr)
			return
		}
		writeJSON(w, http.StatusOK, event)
	case http.MethodPut:
		if appErr := writeDevice(r, device, profile, command); appErr != nil {
			writeAppError(w, appErr)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"message": "ok"})
	default:
		writeAppError(w, common.NewBadRequestError(fmt.Sprintf("unsupported method %s", r.Method), nil))
	}
}

// AllCommandHandler implements the `all/<command>` broadcast: read
// command across every enabled, unlocked device, in name order so the
// output is reproducible even though the cache snapshot itself carries
// no ordering guarantee (spec.md §4.D: "aggregate JSON output preserves
// the device iteration order").
func AllCommandHandler(w http.ResponseWriter, r *http.Request) {
	command := mux.Vars(r)[common.CommandVar]

	devices := cache.Devices().All()
	sort.Slice(devices, func(i, j int) bool { return devices[i].Name < devices[j].Name })

	events := make([]*models.Event, 0, len(devices))
	for _, device := range devices {
		if checkDeviceState(device) != nil {
			continue
		}
		profile := resolveProfile(device)

		unlock := cache.Devices().Lock(device.Id.Hex())
		event, appErr := readDevice(device, profile, command)
		unlock()

		if appErr != nil {
			common.LoggingClient.Error(fmt.Sprintf("all/%s: device %s: %v", command, device.Name, appErr))
			continue
		}
		events = append(events, event)
	}
	writeJSON(w, http.StatusOK, events)
}

// resolveProfile implements spec.md §3's profile-presence invariant: a
// device's profile is cached before the driver is ever invoked for it.
// Most of the time the profile is already in cache from reconciliation;
// on first sight it falls back to the copy embedded in the device and
// caches it for every later dispatch.
func resolveProfile(device models.Device) models.DeviceProfile {
	profile, ok := cache.Profiles().ForName(device.Profile.Name)
	if ok {
		return profile
	}
	profile = device.Profile
	if err := cache.Profiles().Add(profile); err != nil {
		common.LoggingClient.Error(fmt.Sprintf("could not cache profile %s for device %s: %v", profile.Name, device.Name, err))
	}
	return profile
}

func resolveDevice(vars map[string]string) (models.Device, common.AppError) {
	if name, ok := vars[common.NameVar]; ok {
		device, found := cache.Devices().ForName(name)
		if !found {
			return models.Device{}, common.NewNotFoundError(fmt.Sprintf("device %s not found", name), nil)
		}
		return device, nil
	}

	id := vars[common.IdVar]
	device, found := cache.Devices().ForId(id)
	if !found {
		return models.Device{}, common.NewNotFoundError(fmt.Sprintf("device %s not found", id), nil)
	}
	return device, nil
}

// checkDeviceState implements spec.md §4.D step 1's admin/operating
// state gate: a locked device refuses dispatch with 423, a disabled one
// with 503, before the driver is ever invoked.
func checkDeviceState(device models.Device) common.AppError {
	if device.AdminState == models.Locked {
		return common.NewLockedError(fmt.Sprintf("device %s is locked", device.Name), nil)
	}
	if device.OperatingState == models.Disabled {
		return common.NewServiceUnavailableError(fmt.Sprintf("device %s is disabled", device.Name), nil)
	}
	return nil
}

// readDevice runs steps 2, 4 and 5 of §4.D for a single device: resolve
// the command, invoke the driver, apply forward transforms, then build
// and publish the Event, returning it so callers can aggregate (all/) or
// respond with it directly.
func readDevice(device models.Device, profile models.DeviceProfile, command string) (*models.Event, common.AppError) {
	reqs, err := resolveGet(profile, command)
	if err != nil {
		return nil, common.NewNotFoundError(err.Error(), err)
	}

	results, err := common.Driver.HandleReadCommands(device.Name, &device.Addressable, reqs)
	if err != nil {
		return nil, common.NewServerError(fmt.Sprintf("driver read failed for device %s: %v", device.Name, err), err)
	}
	if len(results) != len(reqs) {
		return nil, common.NewServerError(fmt.Sprintf("driver returned %d results for %d requests", len(results), len(reqs)), nil)
	}

	transformed := make([]*ds_models.CommandValue, len(results))
	for i, cv := range results {
		if cv == nil {
			return nil, common.NewServerError(fmt.Sprintf("driver returned no value for %s", reqs[i].DeviceResource.Name), nil)
		}
		if declared, ok := ds_models.ParsePropertyType(reqs[i].DeviceResource.Properties.Value.Type); ok && cv.Type != declared {
			return nil, common.NewServerError(fmt.Sprintf("driver returned %s for %s, profile declares %s", cv.Type, reqs[i].DeviceResource.Name, declared), nil)
		}
		out, valid, err := transform.Forward(cv, reqs[i].DeviceResource.Properties.Value)
		if err != nil {
			return nil, common.NewServerError(fmt.Sprintf("transform overflow for %s", reqs[i].DeviceResource.Name), err)
		}
		if !valid {
			common.LoggingClient.Info(fmt.Sprintf("reading %s on device %s clamped to range", reqs[i].DeviceResource.Name, device.Name))
		}
		transformed[i] = out
	}

	event, err := data.BuildEvent(device.Name, reqs, transformed)
	if err != nil {
		return nil, common.NewServerError(err.Error(), err)
	}
	data.PostEvent(event)
	return event, nil
}

// writeDevice runs steps 2-4 of §4.D for a PUT: resolve the command,
// parse and inverse-transform the JSON body, then invoke the driver.
func writeDevice(r *http.Request, device models.Device, profile models.DeviceProfile, command string) common.AppError {
	reqs, err := resolvePut(profile, command)
	if err != nil {
		return common.NewNotFoundError(err.Error(), err)
	}

	var body map[string]string
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return common.NewBadRequestError("invalid JSON body", err)
	}

	params := make([]*ds_models.CommandValue, len(reqs))
	for i, req := range reqs {
		raw, ok := body[req.DeviceResource.Name]
		if !ok {
			return common.NewBadRequestError(fmt.Sprintf("missing value for %s", req.DeviceResource.Name), nil)
		}
		cv, err := parseCommandValue(&req.RO, req.DeviceResource.Properties.Value.Type, raw)
		if err != nil {
			return common.NewBadRequestError(err.Error(), err)
		}
		cv, err = transform.Inverse(cv, req.DeviceResource.Properties.Value)
		if err != nil {
			return common.NewServerError(fmt.Sprintf("transform overflow for %s", req.DeviceResource.Name), err)
		}
		params[i] = cv
	}

	if err := common.Driver.HandleWriteCommands(device.Name, &device.Addressable, reqs, params); err != nil {
		return common.NewServerError(fmt.Sprintf("driver write failed for device %s: %v", device.Name, err), err)
	}
	return nil
}
