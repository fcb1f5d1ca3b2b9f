// -*- mode: Go; indent-tabs-mode: t -*-
//
// Copyright (C) 2017-2018 Canonical Ltd
// Copyright (C) 2018-2019 IOTech Ltd
// Copyright (c) 2019 Circutor S.A.
//
// SPDX-License-Identifier: Apache-2.0

// Package service is Component G: the public lifecycle surface a device
// service main() drives. Service.Start brings up configuration, the
// platform clients, the HTTP server, metadata reconciliation, the
// scheduler and the caller's driver, in that order (spec.md §4.G, §9);
// Service.Stop shuts down the HTTP server, the scheduler, the driver and
// the async-values drain, in that order.
package service

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/Circutor/edgex/pkg/models"

	"github.com/circutor/device-sdk-go/internal/cache"
	"github.com/circutor/device-sdk-go/internal/clients"
	"github.com/circutor/device-sdk-go/internal/common"
	"github.com/circutor/device-sdk-go/internal/config"
	"github.com/circutor/device-sdk-go/internal/data"
	"github.com/circutor/device-sdk-go/internal/handler"
	"github.com/circutor/device-sdk-go/internal/metadata"
	"github.com/circutor/device-sdk-go/internal/scheduler"
	ds_models "github.com/circutor/device-sdk-go/pkg/models"
)

// asyncChannelSize bounds how many AsyncValues batches a driver can have
// in flight toward the publisher before Initialize's sender blocks;
// generous enough that a burst of sensor-initiated pushes doesn't stall
// the driver's own read path while the drain goroutine catches up.
const asyncChannelSize = 16

// Service is the running device service: one per process, matching
// spec.md §9's note to lift what was process-wide global state in the
// source into a struct scoped by an explicit owner.
type Service struct {
	Name    string
	Version string

	driver  ds_models.ProtocolDriver
	asyncCh chan *ds_models.AsyncValues
	server  *http.Server

	stopOnce sync.Once
	drainWG  sync.WaitGroup
}

// New constructs a Service bound to driver. name and version identify
// this device service to core-metadata and must be non-empty (spec.md §7:
// NO_DEVICE_NAME / NO_DEVICE_VERSION / NO_DEVICE_IMPL).
func New(name, version string, driver ds_models.ProtocolDriver) (*Service, common.AppError) {
	if driver == nil {
		return nil, common.NewNoDriverError("no protocol driver supplied")
	}
	if name == "" {
		return nil, common.NewNoNameError("no service name supplied")
	}
	if version == "" {
		return nil, common.NewNoVersionError("no service version supplied")
	}
	return &Service{Name: name, Version: version, driver: driver}, nil
}

// Start runs spec.md §4.A-§4.G's startup sequence: resolve configuration,
// wire the platform clients, bring the HTTP server up (so the callback
// route is live before metadata reconciliation races it, per §9), run
// the metadata reconciler, start the scheduler, then hand the driver its
// asynchronous-publish channel and initialize it last so a slow driver
// never delays the REST surface or scheduled jobs from coming up.
func (s *Service) Start(profile, confDir string, useRegistry bool, registryURL string) common.AppError {
	common.ServiceName = s.Name
	common.ServiceVersion = s.Version
	common.Driver = s.driver

	cfg, err := config.LoadConfig(profile, confDir, useRegistry, registryURL)
	if err != nil {
		return common.NewBadConfigError(err.Error(), err)
	}
	common.CurrentConfig = cfg

	if err := clients.InitDependencyClients(); err != nil {
		return common.NewRemoteServerDownError(err.Error(), err)
	}

	s.server = &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Service.Host, cfg.Service.Port),
		Handler: handler.BuildRouter(),
	}
	listenErrCh := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			listenErrCh <- err
		}
	}()
	select {
	case err := <-listenErrCh:
		return common.NewRemoteServerDownError("could not start HTTP listener", err)
	case <-time.After(100 * time.Millisecond):
	}
	common.LoggingClient.Info(fmt.Sprintf("listening on %s", s.server.Addr))

	if err := metadata.Reconcile(cfg.Device.ProfilesDir); err != nil {
		return toAppError(err)
	}

	scheduler.StartScheduler()

	s.asyncCh = make(chan *ds_models.AsyncValues, asyncChannelSize)
	if err := s.driver.Initialize(common.LoggingClient, s.asyncCh); err != nil {
		return common.NewDriverUnstartError("driver initialize failed", err)
	}
	s.drainWG.Add(1)
	go s.drainAsyncValues()

	if cfg.Service.StartupMsg != "" {
		common.LoggingClient.Info(cfg.Service.StartupMsg)
	}
	return nil
}

// drainAsyncValues routes every AsyncValues batch the driver pushes
// through the same Event Publisher path a dispatcher-driven GET uses
// (spec.md §3's AsyncValues note), until Stop closes the channel.
func (s *Service) drainAsyncValues() {
	defer s.drainWG.Done()
	for av := range s.asyncCh {
		device, ok := cache.Devices().ForName(av.DeviceName)
		if !ok {
			common.LoggingClient.Error(fmt.Sprintf("async values for unknown device %s dropped", av.DeviceName))
			continue
		}
		profile, ok := cache.Profiles().ForName(device.Profile.Name)
		if !ok {
			profile = device.Profile
			if err := cache.Profiles().Add(profile); err != nil {
				common.LoggingClient.Error(fmt.Sprintf("could not cache profile %s for device %s: %v", profile.Name, av.DeviceName, err))
			}
		}

		reqs := make([]ds_models.CommandRequest, 0, len(av.CommandValues))
		results := make([]*ds_models.CommandValue, 0, len(av.CommandValues))
		for _, cv := range av.CommandValues {
			if cv == nil || cv.RO == nil {
				continue
			}
			resource, found := resourceForName(profile, cv.RO.Object)
			if !found {
				common.LoggingClient.Error(fmt.Sprintf("async value for device %s has no matching resource %s", av.DeviceName, cv.RO.Object))
				continue
			}
			reqs = append(reqs, ds_models.CommandRequest{RO: *cv.RO, DeviceResource: resource})
			results = append(results, cv)
		}
		if len(reqs) == 0 {
			continue
		}
		if err := data.PostReadings(av.DeviceName, reqs, results); err != nil {
			common.LoggingClient.Error(fmt.Sprintf("could not publish async values for device %s: %v", av.DeviceName, err))
		}
	}
}

// Stop tears the service down in the order spec.md §4.G requires: the
// HTTP server is shut down before the scheduler's worker pool is
// destroyed, so no in-flight request can still be dispatching into
// Submit once the pool's jobs channel is closed; then the driver is
// stopped, then the async-values drain is let finish, then process-wide
// state is cleared so a second Service in the same process starts clean
// (spec.md §5: "both are owned by the service and destroyed in
// service_stop").
func (s *Service) Stop(force bool) common.AppError {
	var outerErr common.AppError
	s.stopOnce.Do(func() {
		if s.server != nil {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := s.server.Shutdown(ctx); err != nil {
				common.LoggingClient.Error(fmt.Sprintf("HTTP server shutdown failed: %v", err))
			}
		}

		scheduler.StopScheduler(force)

		if s.driver != nil {
			if err := s.driver.Stop(force); err != nil {
				common.LoggingClient.Error(fmt.Sprintf("driver stop failed: %v", err))
				outerErr = common.NewServerError("driver stop failed", err)
			}
		}

		if s.asyncCh != nil {
			close(s.asyncCh)
			s.drainWG.Wait()
		}

		cache.ResetCache()
		common.Reset()
	})
	return outerErr
}

func resourceForName(profile models.DeviceProfile, name string) (models.DeviceObject, bool) {
	for _, resource := range profile.DeviceResources {
		if resource.Name == name {
			return resource, true
		}
	}
	return models.DeviceObject{}, false
}

// toAppError passes through an existing AppError or wraps a plain error
// as a generic server error, since metadata.Reconcile can surface either.
func toAppError(err error) common.AppError {
	if appErr, ok := err.(common.AppError); ok {
		return appErr
	}
	return common.NewServerError(err.Error(), err)
}
