// -*- mode: Go; indent-tabs-mode: t -*-
//
// Copyright (C) 2017-2018 Canonical Ltd
// Copyright (C) 2018 IOTech Ltd
// Copyright (c) 2019 Intel Corporation
// Copyright (c) 2019 Circutor S.A.
//
// SPDX-License-Identifier: Apache-2.0

// Package config is Component A: resolve a Config either from a local
// TOML file or overlaid from a remote registry's flat name/value store
// (spec.md §4.A).
package config

import (
	"fmt"
	"io/ioutil"
	"os"
	"path"
	"path/filepath"

	"github.com/pelletier/go-toml"

	"github.com/circutor/device-sdk-go/internal/common"
)

// LoadConfig loads the local configuration file based upon the specified
// parameters, then, if useRegistry is set, overlays it with whatever the
// registry already holds for this service (or seeds the registry with the
// file contents on first run). It returns a pointer to the Config struct
// that holds the settings for the running service. profile is only
// printed: the file read is always <confDir>/configuration.toml.
func LoadConfig(profile string, confDir string, useRegistry bool, registryURL string) (config *common.Config, err error) {
	fmt.Fprintf(os.Stdout, "Init: profile: %s confDir: %s\n", profile, confDir)

	config, err = loadConfigFromFile(profile, confDir)
	if err != nil {
		return nil, err
	}

	if !useRegistry {
		return config, nil
	}

	return overlayFromRegistry(config, registryURL)
}

func loadConfigFromFile(profile string, confDir string) (config *common.Config, err error) {
	if len(confDir) == 0 {
		confDir = common.ConfigDirectory
	}

	p := path.Join(confDir, common.ConfigFileName)
	absPath, err := filepath.Abs(p)
	if err != nil {
		return nil, fmt.Errorf("could not create absolute path to load configuration: %s; %v", p, err)
	}
	fmt.Fprintf(os.Stdout, "Loading configuration from: %s\n", absPath)

	// The toml package can panic on malformed input, so the load is
	// wrapped in a recover that turns it into a BAD_CONFIG error instead
	// of bringing the process down before logging is even up.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("could not load configuration file; invalid TOML (%s): %v", p, r)
		}
	}()

	config = &common.Config{}
	contents, err := ioutil.ReadFile(absPath)
	if err != nil {
		return nil, fmt.Errorf("could not load configuration file (%s): %v; be sure to change to program folder or set working directory", p, err)
	}

	if err = toml.Unmarshal(contents, config); err != nil {
		return nil, fmt.Errorf("unable to parse configuration file (%s): %v", p, err)
	}

	return config, nil
}
