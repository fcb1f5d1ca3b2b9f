// -*- Mode: Go; indent-tabs-mode: t -*-
//
// Copyright (C) 2018 IOTech Ltd
// Copyright (c) 2019 Intel Corporation
// Copyright (c) 2019 Circutor S.A.
//
// SPDX-License-Identifier: Apache-2.0

// Package clients wires up the REST clients for core-data and
// core-metadata (and the local logging client) used throughout
// Component B, the metadata reconciler, and Component E's event
// publisher.
package clients

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/Circutor/edgex/pkg/clients"
	"github.com/Circutor/edgex/pkg/clients/coredata"
	"github.com/Circutor/edgex/pkg/clients/logger"
	"github.com/Circutor/edgex/pkg/clients/metadata"

	"github.com/circutor/device-sdk-go/internal/common"
)

// InitDependencyClients validates client configuration, brings up the
// logging client, pings core-data and core-metadata up to
// Service.ConnectRetries times each (failing if either never answers),
// and then builds the REST clients the rest of the
// service depends on. Start calls this before InitCache so the cache's
// first metadata read has a client to call.
func InitDependencyClients() error {
	if err := validateClientConfig(); err != nil {
		return err
	}

	initializeLoggingClient()

	if err := checkDependencyServices(); err != nil {
		return err
	}

	initializeClients()

	common.LoggingClient.Info("Service clients initialize successful.")
	return nil
}

func validateClientConfig() error {
	if len(common.CurrentConfig.Clients[common.ClientMetadata].Host) == 0 {
		return fmt.Errorf("fatal error; host setting for core-metadata client not configured")
	}
	if common.CurrentConfig.Clients[common.ClientMetadata].Port == 0 {
		return fmt.Errorf("fatal error; port setting for core-metadata client not configured")
	}
	if len(common.CurrentConfig.Clients[common.ClientData].Host) == 0 {
		return fmt.Errorf("fatal error; host setting for core-data client not configured")
	}
	if common.CurrentConfig.Clients[common.ClientData].Port == 0 {
		return fmt.Errorf("fatal error; port setting for core-data client not configured")
	}
	return nil
}

func initializeLoggingClient() {
	var logTarget string
	config := common.CurrentConfig

	if config.Logging.EnableRemote {
		logTarget = config.Clients[common.ClientLogging].Url() + clients.ApiLoggingRoute
		fmt.Println("EnableRemote is true, using remote logging service")
	} else {
		logTarget = config.Logging.File
		fmt.Println("EnableRemote is false, using local log file")
	}

	common.LoggingClient = logger.NewClient(common.ServiceName, config.Logging.EnableRemote, logTarget, config.Logging.LogLevel)
}

func checkDependencyServices() error {
	dependencyList := []string{common.ClientData, common.ClientMetadata}

	var waitGroup sync.WaitGroup
	dependencyCount := len(dependencyList)
	waitGroup.Add(dependencyCount)
	checkingErrs := make(chan error, dependencyCount)

	for i := 0; i < dependencyCount; i++ {
		go func(wg *sync.WaitGroup, serviceName string) {
			defer wg.Done()
			if err := checkServiceAvailable(serviceName); err != nil {
				checkingErrs <- err
			}
		}(&waitGroup, dependencyList[i])
	}

	waitGroup.Wait()
	close(checkingErrs)

	if len(checkingErrs) > 0 {
		return fmt.Errorf("checking required dependency services failed")
	}
	return nil
}

func checkServiceAvailable(serviceId string) error {
	for i := 0; i < common.CurrentConfig.Service.ConnectRetries; i++ {
		if checkServiceAvailableByPing(serviceId) == nil {
			return nil
		}
		time.Sleep(time.Duration(common.CurrentConfig.Service.Timeout) * time.Millisecond)
		common.LoggingClient.Debug(fmt.Sprintf("checked %d times for %s availability", i+1, serviceId))
	}

	errMsg := fmt.Sprintf("service dependency %s checking timed out", serviceId)
	common.LoggingClient.Error(errMsg)
	return fmt.Errorf(errMsg)
}

func checkServiceAvailableByPing(serviceId string) error {
	common.LoggingClient.Info(fmt.Sprintf("check %v service's status...", serviceId))
	addr := common.CurrentConfig.Clients[serviceId].Url()
	timeout := int64(common.CurrentConfig.Clients[serviceId].Timeout) * int64(time.Millisecond)

	client := http.Client{
		Timeout: time.Duration(timeout),
	}

	_, err := client.Get(addr + clients.ApiPingRoute)
	if err != nil {
		common.LoggingClient.Error(fmt.Sprintf("error getting ping: %v", err))
	}
	return err
}

func initializeClients() {
	metaAddr := common.CurrentConfig.Clients[common.ClientMetadata].Url()

	common.AddressableClient = metadata.NewAddressableClient(metaAddr + clients.ApiAddressableRoute)
	common.DeviceClient = metadata.NewDeviceClient(metaAddr + clients.ApiDeviceRoute)
	common.DeviceServiceClient = metadata.NewDeviceServiceClient(metaAddr + clients.ApiDeviceServiceRoute)
	common.DeviceProfileClient = metadata.NewDeviceProfileClient(metaAddr + clients.ApiDeviceProfileRoute)
	common.ProvisionWatcherClient = metadata.NewProvisionWatcherClient(metaAddr + clients.ApiProvisionWatcherRoute)
	common.ScheduleClient = metadata.NewScheduleClient(metaAddr + clients.ApiScheduleRoute)
	common.ScheduleEventClient = metadata.NewScheduleEventClient(metaAddr + clients.ApiScheduleEventRoute)

	dataAddr := common.CurrentConfig.Clients[common.ClientData].Url()
	common.EventClient = coredata.NewEventClient(dataAddr + clients.ApiEventRoute)
}
