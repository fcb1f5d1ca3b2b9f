// -*- mode: Go; indent-tabs-mode: t -*-
//
// Copyright (c) 2019 Circutor S.A.
//
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/circutor/device-sdk-go/internal/common"
)

func TestApplyOverlayScalarFields(t *testing.T) {
	cfg := &common.Config{
		Service: common.ServiceInfo{Host: "file-host", Port: 1000},
		Device:  common.DeviceInfo{ProfilesDir: "./res"},
		Driver:  map[string]string{"Protocol": "tcp"},
	}

	applyOverlay(cfg, map[string]string{
		"Service.Host":         "registry-host",
		"Service.Port":         "2000",
		"Device.DataTransform": "true",
		"Driver.Port":          "1883",
	})

	assert.Equal(t, "registry-host", cfg.Service.Host)
	assert.Equal(t, 2000, cfg.Service.Port)
	assert.True(t, cfg.Device.DataTransform)
	assert.Equal(t, "1883", cfg.Driver["Port"])
	assert.Equal(t, "tcp", cfg.Driver["Protocol"], "keys not present in the overlay must keep their file value")
}

func TestApplyOverlayIgnoresMalformedInt(t *testing.T) {
	cfg := &common.Config{Service: common.ServiceInfo{Port: 1000}}
	applyOverlay(cfg, map[string]string{"Service.Port": "not-a-number"})
	assert.Equal(t, 1000, cfg.Service.Port, "malformed numeric overlay must not clobber the file value")
}
