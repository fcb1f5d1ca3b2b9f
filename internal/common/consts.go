// -*- mode: Go; indent-tabs-mode: t -*-
//
// Copyright (C) 2017-2018 Canonical Ltd
// Copyright (C) 2018-2019 IOTech Ltd
// Copyright (c) 2019 Intel Corporation
//
// SPDX-License-Identifier: Apache-2.0

package common

import (
	"time"

	"github.com/Circutor/edgex/pkg/clients"
)

const (
	ClientData     = "Data"
	ClientMetadata = "Metadata"
	ClientLogging  = "Logging"

	APIv1Prefix = "/api/v1"
	Colon       = ":"
	HttpScheme  = "http://"
	HttpProto   = "HTTP"

	ConfigDirectory  = "./res"
	ConfigFileName   = "configuration.toml"
	ProfileExtension = ".yaml"
	WatcherExtension = ".watcher.yaml"

	APICallbackRoute  = APIv1Prefix + "/callback"
	APIPingRoute      = APIv1Prefix + "/ping"
	APIDeviceRoute    = APIv1Prefix + "/device"
	APIDiscoveryRoute = APIv1Prefix + "/discovery"
	APIConfigRoute    = APIv1Prefix + "/config"
	APIMetricsRoute   = APIv1Prefix + "/metrics"

	AllCommand = "all"

	AddressableAddrExt = "_addr"

	NameVar      string = "name"
	IdVar        string = "id"
	CommandVar   string = "command"
	GetCmdMethod string = "get"
	PutCmdMethod string = "set"

	CorrelationHeader = clients.CorrelationHeader

	// DefaultWorkerPoolSize is the number of goroutines servicing both the
	// scheduler's fired jobs and asynchronous event posts, mirroring the
	// eight-thread pool (POOL_THREADS) of the original C SDK.
	DefaultWorkerPoolSize = 8

	// RegistryPingRetries / RegistryPingInterval bound how long
	// service_start waits for a configured registry to come up before
	// giving up with REMOTE_SERVER_DOWN.
	RegistryPingRetries  = 5
	RegistryPingInterval = time.Second
)
