// -*- Mode: Go; indent-tabs-mode: t -*-
//
// Copyright (C) 2019 Circutor S.A.
//
// SPDX-License-Identifier: Apache-2.0

package models

// AsyncValues is the payload a ProtocolDriver pushes on the channel handed
// to it by Initialize when it has readings to report outside of a
// dispatcher-driven GET (sensor-initiated pushes, interrupt handlers,
// background polling loops owned by the driver itself). The SDK drains
// this channel and routes each batch through the event publisher's
// PostReadings. Service has no PostReadings method of its own, so this
// channel is how a driver publishes readings.
type AsyncValues struct {
	DeviceName    string
	CommandValues []*CommandValue
}
