// -*- mode: Go; indent-tabs-mode: t -*-
//
// Copyright (C) 2017-2018 Canonical Ltd
// Copyright (C) 2018-2019 IOTech Ltd
// Copyright (c) 2019 Circutor S.A.
//
// SPDX-License-Identifier: Apache-2.0

package common

import "fmt"

// Config is the typed configuration surface for a device service,
// populated either from a local TOML file or overlaid from a remote
// registry's flat name/value config, as described by Component A (the
// Config Resolver).
type Config struct {
	Service        ServiceInfo
	Clients        map[string]ClientInfo
	Device         DeviceInfo
	Logging        LoggingInfo
	Schedules      map[string]string               // schedule name -> ISO-8601 frequency
	ScheduleEvents map[string]ScheduleEventInfo     // event name -> {schedule, path}
	Driver         map[string]string                // opaque name/value pairs for the driver
	DeviceList     []DeviceConfig
}

// ServiceInfo is the Service.* TOML/registry section.
type ServiceInfo struct {
	Host           string
	Port           int
	Timeout        int // milliseconds
	ConnectRetries int
	CheckInterval  string
	Labels         []string
	StartupMsg     string
}

// ClientInfo describes one REST collaborator (core-data, core-metadata,
// registry, logging) by host/port/protocol/timeout.
type ClientInfo struct {
	Protocol string
	Host     string
	Port     int
	Timeout  int // milliseconds
}

// Url renders the base URL for this client, e.g. "http://localhost:48080".
func (c ClientInfo) Url() string {
	protocol := c.Protocol
	if protocol == "" {
		protocol = "http"
	}
	return fmt.Sprintf("%s://%s:%v", protocol, c.Host, c.Port)
}

// DeviceInfo is the Device.* section governing dispatcher/cache behaviour.
type DeviceInfo struct {
	DataTransform bool
	ProfilesDir   string
	MaxCmdOps     int
}

// LoggingInfo is the Logging.* section.
type LoggingInfo struct {
	EnableRemote bool
	File         string
	RemoteURL    string
	LogLevel     string
}

// ScheduleEventInfo is one ScheduleEvents.<name> entry: the schedule it
// runs on and the path it fires (either the discovery route or a device
// command route, validated in the metadata reconciler).
type ScheduleEventInfo struct {
	Schedule string
	Path     string
}

// DeviceConfig is one DeviceList.[] entry: a device provisioned directly
// from configuration rather than discovered or pushed via callback.
type DeviceConfig struct {
	Name        string
	Profile     string
	Description string
	Labels      []string
	Addressable AddressableConfig
}

// AddressableConfig is the inline addressable for a configured device.
type AddressableConfig struct {
	Name     string
	Protocol string
	Method   string
	Address  string
	Port     int
	Path     string
}

// FlatPairs renders the configuration as dotted name/value pairs, the
// representation pushed to the registry on first run and returned by the
// /api/v1/config handler.
func (c *Config) FlatPairs() map[string]string {
	out := map[string]string{
		"Service.Host":           c.Service.Host,
		"Service.Port":           fmt.Sprintf("%d", c.Service.Port),
		"Service.Timeout":        fmt.Sprintf("%d", c.Service.Timeout),
		"Service.ConnectRetries": fmt.Sprintf("%d", c.Service.ConnectRetries),
		"Service.CheckInterval":  c.Service.CheckInterval,
		"Service.StartupMsg":     c.Service.StartupMsg,
		"Device.DataTransform":   fmt.Sprintf("%t", c.Device.DataTransform),
		"Device.ProfilesDir":     c.Device.ProfilesDir,
		"Logging.File":           c.Logging.File,
		"Logging.RemoteURL":      c.Logging.RemoteURL,
		"Logging.EnableRemote":   fmt.Sprintf("%t", c.Logging.EnableRemote),
	}
	for i, l := range c.Service.Labels {
		out[fmt.Sprintf("Service.Labels.%d", i)] = l
	}
	for name, client := range c.Clients {
		out[fmt.Sprintf("Clients.%s.Host", name)] = client.Host
		out[fmt.Sprintf("Clients.%s.Port", name)] = fmt.Sprintf("%d", client.Port)
		out[fmt.Sprintf("Clients.%s.Protocol", name)] = client.Protocol
	}
	for name, freq := range c.Schedules {
		out[fmt.Sprintf("Schedules.%s.Frequency", name)] = freq
	}
	for name, evt := range c.ScheduleEvents {
		out[fmt.Sprintf("ScheduleEvents.%s.Schedule", name)] = evt.Schedule
		out[fmt.Sprintf("ScheduleEvents.%s.Path", name)] = evt.Path
	}
	for k, v := range c.Driver {
		out[fmt.Sprintf("Driver.%s", k)] = v
	}
	return out
}
