// -*- mode: Go; indent-tabs-mode: t -*-
//
// Copyright (C) 2017-2018 Canonical Ltd
// Copyright (c) 2019 Circutor S.A.
//
// SPDX-License-Identifier: Apache-2.0

// Package startup is the thin CLI entry point a device service's main()
// calls into: parse flags, call Service.Start, block until a termination
// signal, then call Service.Stop. Carried ambiently even though CLI
// bootstrapping isn't itself a spec module, the way the teacher's own
// example commands (example/cmd/device-modbus) are a few lines around
// the same Bootstrap call.
package startup

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/circutor/device-sdk-go/internal/common"
	"github.com/circutor/device-sdk-go/pkg/service"

	ds_models "github.com/circutor/device-sdk-go/pkg/models"
)

// exitCodes maps the subset of spec.md §7's error kinds a failed Start
// can surface to a process exit status; anything else falls back to 1.
var exitCodes = map[common.ErrorKind]int{
	common.KindNoDeviceImpl:     2,
	common.KindNoDeviceName:     3,
	common.KindNoDeviceVersion:  4,
	common.KindBadConfig:        5,
	common.KindRemoteServerDown: 6,
	common.KindDriverUnstart:    7,
}

// Bootstrap wires a cobra command exposing --profile, --confdir and
// --registry, starts svcName/version against driver, waits for SIGINT or
// SIGTERM, and stops cleanly. It calls os.Exit itself (mirroring the
// source's edgex_device_service model of owning the process), so callers
// should do nothing but call Bootstrap from main().
func Bootstrap(svcName, version string, driver ds_models.ProtocolDriver) {
	var profile, confDir, registryURL string
	var useRegistry bool

	cmd := &cobra.Command{
		Use:   svcName,
		Short: fmt.Sprintf("%s device service", svcName),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(svcName, version, driver, profile, confDir, useRegistry, registryURL)
		},
	}
	cmd.Flags().StringVar(&profile, "profile", "default", "configuration profile name (printed only; does not select the file)")
	cmd.Flags().StringVar(&confDir, "confdir", "", "directory containing configuration.toml")
	cmd.Flags().BoolVar(&useRegistry, "registry", false, "overlay configuration from the registry")
	cmd.Flags().StringVar(&registryURL, "registryUrl", "", "registry base URL, e.g. consul.http://localhost:8500")

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(svcName, version string, driver ds_models.ProtocolDriver, profile, confDir string, useRegistry bool, registryURL string) error {
	svc, appErr := service.New(svcName, version, driver)
	if appErr != nil {
		fmt.Fprintln(os.Stderr, appErr.Error())
		os.Exit(exitCode(appErr.Kind()))
	}

	if appErr := svc.Start(profile, confDir, useRegistry, registryURL); appErr != nil {
		fmt.Fprintln(os.Stderr, appErr.Error())
		os.Exit(exitCode(appErr.Kind()))
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	force := false
	if appErr := svc.Stop(force); appErr != nil {
		fmt.Fprintln(os.Stderr, appErr.Error())
		os.Exit(exitCode(appErr.Kind()))
	}
	return nil
}

func exitCode(kind common.ErrorKind) int {
	if code, ok := exitCodes[kind]; ok {
		return code
	}
	return 1
}
