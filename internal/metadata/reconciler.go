// -*- mode: Go; indent-tabs-mode: t -*-
//
// Copyright (C) 2019 Circutor S.A.
//
// SPDX-License-Identifier: Apache-2.0

// Package metadata is Component B: reconcile this service's identity,
// device profiles, schedules and schedule events against core-metadata
// at startup (spec.md §4.B).
package metadata

import (
	"context"
	"fmt"
	"io/ioutil"
	"path/filepath"
	"strings"
	"time"

	"github.com/Circutor/edgex/pkg/models"
	"github.com/google/uuid"
	"gopkg.in/yaml.v2"

	"github.com/circutor/device-sdk-go/internal/cache"
	"github.com/circutor/device-sdk-go/internal/common"
)

func ctx() context.Context {
	return context.WithValue(context.Background(), common.CorrelationHeader, uuid.New().String())
}

// Reconcile runs steps 2-7 of the metadata reconciler. Step 1 (pinging
// core-data/core-metadata) already happened in clients.InitDependencyClients;
// step 4 (loading this service's device set) happens in cache.InitCache,
// run after ReconcileDeviceList so devices declared in configuration
// (spec.md §6 DeviceList) already exist in metadata by the time the
// cache's first fetch-by-service-name call runs.
func Reconcile(profilesDir string) error {
	if err := EnsureDeviceService(); err != nil {
		return err
	}
	if err := LoadProfiles(profilesDir); err != nil {
		return err
	}
	if err := ReconcileDeviceList(); err != nil {
		return err
	}
	cache.InitCache()
	if err := ReconcileSchedules(); err != nil {
		return err
	}
	if err := ReconcileScheduleEvents(); err != nil {
		return err
	}
	return LoadScheduleEvents()
}

// EnsureDeviceService implements step 2: look up deviceService(serviceName);
// if absent, ensure its Addressable exists, then create the device
// service bound to it.
func EnsureDeviceService() error {
	c := ctx()

	ds, err := common.DeviceServiceClient.DeviceServiceForName(common.ServiceName, c)
	if err == nil && ds.Name == common.ServiceName {
		common.CurrentDeviceService = ds
		return nil
	}

	addr, err := common.AddressableClient.AddressableForName(common.ServiceName, c)
	if err != nil {
		addr = models.Addressable{
			Name:     common.ServiceName,
			Method:   "POST",
			Protocol: "HTTP",
			Address:  common.CurrentConfig.Service.Host,
			Port:     common.CurrentConfig.Service.Port,
			Path:     common.APICallbackRoute,
		}
		id, err := common.AddressableClient.Add(&addr, c)
		if err != nil && !common.IsConflict(err) {
			return common.NewRemoteServerDownError("could not create service addressable", err)
		}
		addr.Id = id
	}

	newDS := models.DeviceService{
		Service: models.Service{
			Name:           common.ServiceName,
			Labels:         common.CurrentConfig.Service.Labels,
			OperatingState: "ENABLED",
			Addressable:    addr,
			Origin:         time.Now().UnixNano() / int64(time.Millisecond),
		},
		AdminState: "UNLOCKED",
	}

	id, err := common.DeviceServiceClient.Add(&newDS, c)
	if err != nil && !common.IsConflict(err) {
		return common.NewRemoteServerDownError("could not create device service", err)
	}
	newDS.Id = id
	common.CurrentDeviceService = newDS
	return nil
}

// LoadProfiles implements step 3: walk <profilesdir>/*.yaml, and for
// each ensure it exists in metadata, caching the metadata copy either
// way.
func LoadProfiles(profilesDir string) error {
	matches, err := filepath.Glob(filepath.Join(profilesDir, "*"+common.ProfileExtension))
	if err != nil {
		return common.NewBadConfigError("could not scan profiles directory", err)
	}

	for _, file := range matches {
		if strings.HasSuffix(file, common.WatcherExtension) {
			continue
		}
		if err := loadOneProfile(file); err != nil {
			common.LoggingClient.Error(fmt.Sprintf("could not load profile %s: %v", file, err))
		}
	}

	matches, err = filepath.Glob(filepath.Join(profilesDir, "*"+common.WatcherExtension))
	if err != nil {
		return common.NewBadConfigError("could not scan provision watcher directory", err)
	}
	for _, file := range matches {
		if err := loadOneWatcher(file); err != nil {
			common.LoggingClient.Error(fmt.Sprintf("could not load provision watcher %s: %v", file, err))
		}
	}

	return nil
}

func loadOneProfile(file string) error {
	contents, err := ioutil.ReadFile(file)
	if err != nil {
		return err
	}

	var profile models.DeviceProfile
	if err := yaml.Unmarshal(contents, &profile); err != nil {
		return fmt.Errorf("invalid profile YAML: %v", err)
	}

	c := ctx()
	existing, err := common.DeviceProfileClient.DeviceProfileForName(profile.Name, c)
	if err == nil && existing.Name == profile.Name {
		return cache.Profiles().Add(existing)
	}

	id, err := common.DeviceProfileClient.Add(&profile, c)
	if err != nil && !common.IsConflict(err) {
		return err
	}
	if id != "" {
		profile.Id = id
	}
	return cache.Profiles().Add(profile)
}

func loadOneWatcher(file string) error {
	contents, err := ioutil.ReadFile(file)
	if err != nil {
		return err
	}

	var watcher models.ProvisionWatcher
	if err := yaml.Unmarshal(contents, &watcher); err != nil {
		return fmt.Errorf("invalid provision watcher YAML: %v", err)
	}

	c := ctx()
	id, err := common.ProvisionWatcherClient.Add(&watcher, c)
	if err != nil && !common.IsConflict(err) {
		return err
	}
	if id != "" {
		watcher.Id = id
	}
	return cache.Watchers().Add(watcher)
}

// ReconcileDeviceList pushes the configured DeviceList (spec.md §6:
// devices provisioned directly from configuration rather than discovered
// or pushed via callback) into core-metadata, tolerating CONFLICT for a
// device that is already there from a prior run. Runs after LoadProfiles
// so each entry's named profile is already resolvable, and before
// cache.InitCache so the cache's first fetch sees these devices too.
func ReconcileDeviceList() error {
	c := ctx()
	for _, dc := range common.CurrentConfig.DeviceList {
		profile, ok := cache.Profiles().ForName(dc.Profile)
		if !ok {
			return common.NewBadConfigError(fmt.Sprintf("device %s references unknown profile %s", dc.Name, dc.Profile), nil)
		}

		addr := models.Addressable{
			Name:     dc.Addressable.Name,
			Method:   dc.Addressable.Method,
			Protocol: dc.Addressable.Protocol,
			Address:  dc.Addressable.Address,
			Port:     dc.Addressable.Port,
			Path:     dc.Addressable.Path,
		}
		addrId, err := common.AddressableClient.Add(&addr, c)
		if err != nil && !common.IsConflict(err) {
			return common.NewRemoteServerDownError(fmt.Sprintf("could not create addressable for device %s", dc.Name), err)
		}
		addr.Id = addrId

		device := models.Device{
			Name:           dc.Name,
			Profile:        profile,
			AdminState:     "UNLOCKED",
			OperatingState: "ENABLED",
			Addressable:    addr,
		}
		if _, err := common.DeviceClient.Add(&device, c); err != nil {
			if common.IsConflict(err) {
				common.LoggingClient.Info(fmt.Sprintf("device %s already exists in metadata", dc.Name))
				continue
			}
			return common.NewRemoteServerDownError(fmt.Sprintf("could not create device %s", dc.Name), err)
		}
		common.LoggingClient.Info(fmt.Sprintf("created device %s from configuration", dc.Name))
	}
	return nil
}

// ReconcileSchedules implements step 5: attempt create_schedule for
// every configured schedule, tolerating CONFLICT.
func ReconcileSchedules() error {
	c := ctx()
	for name, frequency := range common.CurrentConfig.Schedules {
		sch := models.Schedule{Name: name, Frequency: frequency}
		if _, err := common.ScheduleClient.Add(&sch, c); err != nil {
			if common.IsConflict(err) {
				common.LoggingClient.Info(fmt.Sprintf("schedule %s already exists in metadata", name))
				continue
			}
			return common.NewRemoteServerDownError(fmt.Sprintf("could not create schedule %s", name), err)
		}
		common.LoggingClient.Info(fmt.Sprintf("created schedule %s", name))
	}
	return nil
}

// ReconcileScheduleEvents implements step 6: validate each configured
// schedule event's path, create its auxiliary addressable (CONFLICT
// ignored) and the schedule event itself (CONFLICT ignored).
func ReconcileScheduleEvents() error {
	c := ctx()
	for name, evt := range common.CurrentConfig.ScheduleEvents {
		if !validSchedulePath(evt.Path) {
			return common.NewBadConfigError(fmt.Sprintf("schedule event %s has invalid path %s", name, evt.Path), nil)
		}

		addr := models.Addressable{
			Name:     name + common.AddressableAddrExt,
			Method:   "GET",
			Protocol: "HTTP",
			Address:  common.CurrentConfig.Service.Host,
			Port:     common.CurrentConfig.Service.Port,
			Path:     evt.Path,
		}
		addrId, err := common.AddressableClient.Add(&addr, c)
		if err != nil && !common.IsConflict(err) {
			return common.NewRemoteServerDownError(fmt.Sprintf("could not create addressable for schedule event %s", name), err)
		}
		addr.Id = addrId

		se := models.ScheduleEvent{
			Name:        name,
			Schedule:    evt.Schedule,
			Addressable: addr,
		}
		if _, err := common.ScheduleEventClient.Add(&se, c); err != nil && !common.IsConflict(err) {
			return common.NewRemoteServerDownError(fmt.Sprintf("could not create schedule event %s", name), err)
		}
		common.LoggingClient.Info(fmt.Sprintf("reconciled schedule event %s", name))
	}
	return nil
}

func validSchedulePath(path string) bool {
	return path == common.APIDiscoveryRoute || strings.HasPrefix(path, common.APIDeviceRoute+"/")
}

// LoadScheduleEvents implements step 7: fetch the full schedule-event
// list from metadata, resolve each one's schedule, and stage both into
// the cache for Component F to pick up.
func LoadScheduleEvents() error {
	c := ctx()

	events, err := common.ScheduleEventClient.ScheduleEvents(c)
	if err != nil {
		return common.NewRemoteServerDownError("could not list schedule events", err)
	}

	schedules := make([]models.Schedule, 0, len(events))
	seen := make(map[string]bool, len(events))
	for _, evt := range events {
		if !validSchedulePath(evt.Addressable.Path) {
			return common.NewBadConfigError(fmt.Sprintf("schedule event %s has invalid path %s", evt.Name, evt.Addressable.Path), nil)
		}
		if seen[evt.Schedule] {
			continue
		}
		sch, err := common.ScheduleClient.ScheduleForName(evt.Schedule, c)
		if err != nil {
			return common.NewRemoteServerDownError(fmt.Sprintf("could not fetch schedule %s", evt.Schedule), err)
		}
		if _, err := common.ParseISO8601Duration(sch.Frequency); err != nil {
			return common.NewBadConfigError(fmt.Sprintf("schedule %s has invalid frequency", sch.Name), err)
		}
		schedules = append(schedules, sch)
		seen[evt.Schedule] = true
	}

	cache.InitScheduleCache(schedules, events)
	return nil
}
