// -*- mode: Go; indent-tabs-mode: t -*-
//
// Copyright (c) 2019 Circutor S.A.
//
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"strconv"
	"time"

	"github.com/edgexfoundry/go-mod-registry/registry"

	"github.com/circutor/device-sdk-go/internal/common"
)

// overlayFromRegistry reconciles the locally-loaded config against the
// registry's flat name/value store: on first run for this service key the
// registry is empty, so the file's values are pushed up; on subsequent
// runs whatever the registry already holds wins, letting an operator
// change config centrally without touching the TOML file on every host
// (spec.md §4.A).
func overlayFromRegistry(fileConfig *common.Config, registryURL string) (*common.Config, error) {
	client, err := newRegistryClient(fileConfig, registryURL)
	if err != nil {
		return nil, fmt.Errorf("could not create registry client: %v", err)
	}

	if err := waitForRegistry(client); err != nil {
		return nil, err
	}

	has, err := client.HasConfiguration()
	if err != nil {
		return nil, fmt.Errorf("could not query registry configuration: %v", err)
	}

	if !has {
		for key, value := range fileConfig.FlatPairs() {
			if err := client.PutConfigurationValue(key, []byte(value)); err != nil {
				return nil, fmt.Errorf("could not seed registry key %s: %v", key, err)
			}
		}
		return fileConfig, nil
	}

	overlay, err := fetchFlatPairs(client, fileConfig.FlatPairs())
	if err != nil {
		return nil, err
	}
	applyOverlay(fileConfig, overlay)
	return fileConfig, nil
}

func newRegistryClient(cfg *common.Config, registryURL string) (registry.Client, error) {
	registryConfig := registry.Config{
		Host:            registryURL,
		Port:            8500,
		Type:            "consul",
		ServiceKey:      common.ServiceName,
		ServiceHost:     cfg.Service.Host,
		ServicePort:     cfg.Service.Port,
		ServiceProtocol: "http",
		Stem:            "edgex/core/1.0/",
	}
	return registry.NewRegistryClient(registryConfig)
}

func waitForRegistry(client registry.Client) error {
	for i := 0; i < common.RegistryPingRetries; i++ {
		if client.IsAlive() {
			return nil
		}
		<-time.After(common.RegistryPingInterval)
	}
	return fmt.Errorf("registry did not become available after %d attempts", common.RegistryPingRetries)
}

// fetchFlatPairs resolves every key the local file knows about against
// the registry, keeping the file's value for any key the registry has
// not seen yet (a newly-added config field, for instance).
func fetchFlatPairs(client registry.Client, fileValues map[string]string) (map[string]string, error) {
	out := make(map[string]string, len(fileValues))
	for key, fileValue := range fileValues {
		exists, err := client.ConfigurationValueExists(key)
		if err != nil {
			return nil, fmt.Errorf("could not check registry key %s: %v", key, err)
		}
		if !exists {
			out[key] = fileValue
			continue
		}
		raw, err := client.GetConfigurationValue(key)
		if err != nil {
			return nil, fmt.Errorf("could not read registry key %s: %v", key, err)
		}
		out[key] = string(raw)
	}
	return out, nil
}

// applyOverlay writes the resolved flat pairs back onto the handful of
// scalar fields that are safe to override centrally; Clients/Schedules/
// DeviceList stay file-defined since they describe this host's topology,
// not a value an operator tunes across a fleet.
func applyOverlay(config *common.Config, pairs map[string]string) {
	if v, ok := pairs["Service.Host"]; ok {
		config.Service.Host = v
	}
	if v, ok := pairs["Service.Port"]; ok {
		if n, err := strconv.Atoi(v); err == nil {
			config.Service.Port = n
		}
	}
	if v, ok := pairs["Service.Timeout"]; ok {
		if n, err := strconv.Atoi(v); err == nil {
			config.Service.Timeout = n
		}
	}
	if v, ok := pairs["Service.CheckInterval"]; ok {
		config.Service.CheckInterval = v
	}
	if v, ok := pairs["Device.DataTransform"]; ok {
		config.Device.DataTransform = v == "true"
	}
	if v, ok := pairs["Device.ProfilesDir"]; ok {
		config.Device.ProfilesDir = v
	}
	if v, ok := pairs["Logging.LogLevel"]; ok {
		config.Logging.LogLevel = v
	}
	if v, ok := pairs["Logging.EnableRemote"]; ok {
		config.Logging.EnableRemote = v == "true"
	}
	for k, v := range pairs {
		if len(k) > len("Driver.") && k[:len("Driver.")] == "Driver." {
			if config.Driver == nil {
				config.Driver = make(map[string]string)
			}
			config.Driver[k[len("Driver."):]] = v
		}
	}
}
