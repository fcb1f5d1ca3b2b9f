// -*- mode: Go; indent-tabs-mode: t -*-
//
// Copyright (C) 2017-2018 Canonical Ltd
// Copyright (c) 2019 Circutor S.A.
//
// SPDX-License-Identifier: Apache-2.0

// Package handler is Component D: route HTTP requests against the
// cache and the configured ProtocolDriver (spec.md §4.D), plus the
// auxiliary ping/config/metrics/discovery/callback endpoints of §4.G.
package handler

import (
	"fmt"

	"github.com/Circutor/edgex/pkg/models"

	"github.com/circutor/device-sdk-go/internal/common"
	ds_models "github.com/circutor/device-sdk-go/pkg/models"
)

// resolveGet and resolvePut implement spec.md §4.D step 2: locate the
// named command on the profile, preferring an explicit, profile-authored
// DeviceCommand (ProfileResource.Get/Set) over the implicit one-resource
// CoreCommand synthesised from a matching DeviceResource name
// (spec.md §4 EXPANSION 4.D, resolving the Open Question over which the
// dispatcher consults first).

func resolveGet(profile models.DeviceProfile, command string) ([]ds_models.CommandRequest, error) {
	for _, dc := range profile.DeviceCommands {
		if dc.Name == command {
			return buildRequests(profile, dc.Get)
		}
	}
	return coreCommand(profile, command, common.GetCmdMethod)
}

func resolvePut(profile models.DeviceProfile, command string) ([]ds_models.CommandRequest, error) {
	for _, dc := range profile.DeviceCommands {
		if dc.Name == command {
			return buildRequests(profile, dc.Set)
		}
	}
	return coreCommand(profile, command, common.PutCmdMethod)
}

// coreCommand synthesises the auto-generated command for a bare
// resource name: one ResourceOperation whose type matches the
// resource's own declared property type.
func coreCommand(profile models.DeviceProfile, resourceName, operation string) ([]ds_models.CommandRequest, error) {
	resource, ok := findResource(profile, resourceName)
	if !ok {
		return nil, fmt.Errorf("command %s not found on profile %s", resourceName, profile.Name)
	}
	ro := models.ResourceOperation{Operation: operation, Object: resource.Name}
	return []ds_models.CommandRequest{{RO: ro, DeviceResource: resource}}, nil
}

func buildRequests(profile models.DeviceProfile, ops []models.ResourceOperation) ([]ds_models.CommandRequest, error) {
	if len(ops) == 0 {
		return nil, fmt.Errorf("command has no resource operations")
	}
	reqs := make([]ds_models.CommandRequest, 0, len(ops))
	for _, ro := range ops {
		resource, ok := findResource(profile, ro.Object)
		if !ok {
			return nil, fmt.Errorf("resource %s referenced by command not found in profile %s", ro.Object, profile.Name)
		}
		reqs = append(reqs, ds_models.CommandRequest{RO: ro, DeviceResource: resource})
	}
	return reqs, nil
}

func findResource(profile models.DeviceProfile, name string) (models.DeviceObject, bool) {
	for _, resource := range profile.DeviceResources {
		if resource.Name == name {
			return resource, true
		}
	}
	return models.DeviceObject{}, false
}
