// -*- Mode: Go; indent-tabs-mode: t -*-
//
// Copyright (C) 2018 Canonical Ltd
// Copyright (C) 2018-2019 IOTech Ltd
// Copyright (C) 2019 Circutor S.A.
//
// SPDX-License-Identifier: Apache-2.0

// Package models defines the types a protocol-specific driver exchanges
// with the device-service SDK: the low-level ProtocolDriver contract plus
// the CommandRequest/CommandValue/AsyncValues values that flow across it.
package models

import (
	"github.com/Circutor/edgex/pkg/clients/logger"
	"github.com/Circutor/edgex/pkg/models"
)

// ProtocolDriver is a low-level device-specific interface used by other
// components of a device service to interact with a specific class of
// devices. A protocol implementation supplies one of these; the SDK
// invokes it from the dispatcher, the scheduler and the discovery handler.
type ProtocolDriver interface {

	// Initialize performs protocol-specific initialization for the device
	// service. The given AsyncValues channel can be used to push
	// asynchronous readings outside of a dispatcher-driven GET.
	// Implementations that never produce unsolicited readings may ignore
	// the channel but must still retain it for the lifetime of the driver.
	Initialize(lc logger.LoggingClient, asyncCh chan<- *AsyncValues) error

	// HandleReadCommands passes a slice of CommandRequest, each
	// representing one resource operation for the named device. The
	// returned slice must be the same length as reqs and in the same
	// order; a nil entry with a non-nil error aborts the whole request.
	HandleReadCommands(deviceName string, addr *models.Addressable, reqs []CommandRequest) ([]*CommandValue, error)

	// HandleWriteCommands passes a slice of CommandRequest representing
	// the resources to write, together with the parallel slice of values
	// to write to them. Since these are actuation commands, params
	// supplies one value per request.
	HandleWriteCommands(deviceName string, addr *models.Addressable, reqs []CommandRequest, params []*CommandValue) error

	// DisconnectDevice is called when a device is removed from the
	// device service, allowing protocol-specific cleanup. Drivers
	// without per-device connection state may return nil.
	DisconnectDevice(deviceName string, addr *models.Addressable) error

	// Discover triggers protocol-specific device discovery, a
	// synchronous operation. Discovered devices are not returned here,
	// and Service has no method for adding devices.
	Discover() error

	// Stop instructs the driver to shut down gracefully, or if force is
	// true, immediately, releasing the resources it owns. The SDK closes
	// the AsyncValues channel itself after Stop returns, so the driver
	// must neither close it nor send on it once Stop has returned.
	Stop(force bool) error
}
