// -*- mode: Go; indent-tabs-mode: t -*-
//
// Copyright (c) 2019 Circutor S.A.
//
// SPDX-License-Identifier: Apache-2.0

// Package data is Component E: turn a dispatcher or driver result set
// into a core-data Event and post it without blocking the caller
// (spec.md §4.E).
package data

import (
	"context"
	"fmt"
	"time"

	"github.com/Circutor/edgex/pkg/models"
	"github.com/google/uuid"

	"github.com/circutor/device-sdk-go/internal/common"
	"github.com/circutor/device-sdk-go/internal/scheduler"
	ds_models "github.com/circutor/device-sdk-go/pkg/models"
)

// BuildEvent assembles an Event from a device name and the parallel
// (CommandRequest, CommandValue) pairs the dispatcher or a driver's
// asynchronous channel produced, per spec.md §4.E step 1-2: one Reading
// per pair, origin defaulted to now when the result didn't carry one,
// numeric values rendered decimal, Binary values base64 with mediaType
// set from the resource.
func BuildEvent(deviceName string, reqs []ds_models.CommandRequest, results []*ds_models.CommandValue) (*models.Event, error) {
	if len(reqs) != len(results) {
		return nil, fmt.Errorf("data: %d requests but %d results for device %s", len(reqs), len(results), deviceName)
	}

	readings := make([]models.Reading, 0, len(results))
	for i, cv := range results {
		if cv == nil {
			return nil, fmt.Errorf("data: nil result for %s on device %s", reqs[i].DeviceResource.Name, deviceName)
		}

		origin := cv.Origin
		if origin == 0 {
			origin = nowMillis()
		}

		reading := models.Reading{
			Name:      reqs[i].DeviceResource.Name,
			Value:     cv.ValueToString(),
			Origin:    origin,
			ValueType: cv.Type.String(),
		}
		if cv.Type == ds_models.Binary {
			reading.MediaType = reqs[i].DeviceResource.Properties.Value.MediaType
		}
		readings = append(readings, reading)
	}

	return &models.Event{
		Device:   deviceName,
		Origin:   nowMillis(),
		Readings: readings,
	}, nil
}

// PostEvent implements spec.md §4.E step 3, shared by the dispatcher and
// PostReadings: submit the POST to the shared worker pool and return
// immediately. Delivery is at-most-once; a failed POST is logged and
// dropped, never retried or buffered.
func PostEvent(event *models.Event) {
	scheduler.Submit(func() {
		ctx := context.WithValue(context.Background(), common.CorrelationHeader, uuid.New().String())
		if _, err := common.EventClient.Add(event, ctx); err != nil {
			common.LoggingClient.Error(fmt.Sprintf("data: failed to post event for device %s: %v", event.Device, err))
		}
	})
}

// PostReadings publishes readings produced outside the dispatcher's own
// GET path, through the same BuildEvent/PostEvent steps. Service's
// async-values drain calls it for batches a driver pushes on its
// AsyncValues channel; being in an internal package, it cannot be
// called by a driver outside this module.
func PostReadings(deviceName string, reqs []ds_models.CommandRequest, results []*ds_models.CommandValue) error {
	event, err := BuildEvent(deviceName, reqs, results)
	if err != nil {
		return err
	}
	PostEvent(event)
	return nil
}

func nowMillis() int64 {
	return time.Now().UnixNano() / int64(time.Millisecond)
}
