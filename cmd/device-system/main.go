// -*- Mode: Go; indent-tabs-mode: t -*-
//
// Copyright (C) 2018 Circutor S.A.
//
// SPDX-License-Identifier: Apache-2.0

// This package provides a host-metrics example of a device service.
package main

import (
	"github.com/circutor/device-sdk-go/examples/system"
	"github.com/circutor/device-sdk-go/pkg/startup"
)

const (
	version     string = "1.0"
	serviceName string = "device-system"
)

func main() {
	d := system.Driver{}
	startup.Bootstrap(serviceName, version, &d)
}
