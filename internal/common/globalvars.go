// -*- mode: Go; indent-tabs-mode: t -*-
//
// Copyright (C) 2018 IOTech Ltd
// Copyright (C) 2019 Circutor S.A.
//
// SPDX-License-Identifier: Apache-2.0

package common

import (
	"github.com/Circutor/edgex/pkg/clients/coredata"
	"github.com/Circutor/edgex/pkg/clients/logger"
	"github.com/Circutor/edgex/pkg/clients/metadata"
	"github.com/Circutor/edgex/pkg/models"

	ds_models "github.com/circutor/device-sdk-go/pkg/models"
)

// These handles are process-wide because a process hosts exactly one
// device service (mirroring the original C SDK's single
// edgex_device_service and its global iot_log_default). Ownership still
// belongs to the Service struct in pkg/service: Start populates these in a
// fixed order, Stop clears them, and nothing outside internal/ reaches in
// to mutate them directly. Internal collaborators (cache, handler,
// scheduler, data) read through this package instead of receiving every
// dependency by parameter, the same shortcut the teacher's own packages
// take.
var (
	ServiceName            string
	ServiceVersion         string
	CurrentConfig          *Config
	CurrentDeviceService   models.DeviceService
	ServiceLocked          bool
	Driver                 ds_models.ProtocolDriver
	EventClient            coredata.EventClient
	AddressableClient      metadata.AddressableClient
	DeviceClient           metadata.DeviceClient
	DeviceServiceClient    metadata.DeviceServiceClient
	DeviceProfileClient    metadata.DeviceProfileClient
	ScheduleClient         metadata.ScheduleClient
	ScheduleEventClient    metadata.ScheduleEventClient
	ProvisionWatcherClient metadata.ProvisionWatcherClient
	LoggingClient          logger.LoggingClient
)

// Reset clears every process-wide handle. Called from Service.Stop so a
// second Service created in the same process (as the test suite does)
// never observes a stale client left over from a previous instance.
func Reset() {
	ServiceName = ""
	ServiceVersion = ""
	CurrentConfig = nil
	CurrentDeviceService = models.DeviceService{}
	ServiceLocked = false
	Driver = nil
	EventClient = nil
	AddressableClient = nil
	DeviceClient = nil
	DeviceServiceClient = nil
	DeviceProfileClient = nil
	ScheduleClient = nil
	ScheduleEventClient = nil
	ProvisionWatcherClient = nil
	LoggingClient = nil
}
