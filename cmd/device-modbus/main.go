// -*- Mode: Go; indent-tabs-mode: t -*-
//
// Copyright (C) 2018 Circutor S.A.
//
// SPDX-License-Identifier: Apache-2.0

// This package provides a Modbus example of a device service.
package main

import (
	"github.com/circutor/device-sdk-go/examples/modbus"
	"github.com/circutor/device-sdk-go/pkg/startup"
)

const (
	version     string = "1.0"
	serviceName string = "device-modbus"
)

func main() {
	d := modbus.Driver{}
	startup.Bootstrap(serviceName, version, &d)
}
