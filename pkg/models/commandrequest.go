// -*- Mode: Go; indent-tabs-mode: t -*-
//
// Copyright (C) 2019 Circutor S.A.
//
// SPDX-License-Identifier: Apache-2.0

package models

import (
	"github.com/Circutor/edgex/pkg/models"
)

// CommandRequest binds a single resource operation, declared on a device
// command in a profile, to the concrete device resource it reads from or
// writes to. The dispatcher builds a slice of these from a profile command
// before invoking the driver; RO.Parameter carries the write value's
// literal for a PUT against a resource the operation parameterises.
type CommandRequest struct {
	// RO is the resource operation, as declared on the device command
	// that was requested.
	RO models.ResourceOperation
	// DeviceResource is the resource the operation reads or writes.
	DeviceResource models.DeviceObject
}
