// -*- mode: Go; indent-tabs-mode: t -*-
//
// Copyright (c) 2019 Circutor S.A.
//
// SPDX-License-Identifier: Apache-2.0

package handler

import (
	"encoding/base64"
	"fmt"
	"strconv"

	"github.com/Circutor/edgex/pkg/models"

	ds_models "github.com/circutor/device-sdk-go/pkg/models"
)

// parseCommandValue type-checks and converts a PUT body's literal string
// for one resource against its declared property type (spec.md §4.D
// step 3: "type-checking each value against the declared property
// type"). A parse failure is a type mismatch, which the caller maps to
// HTTP 400.
func parseCommandValue(ro *models.ResourceOperation, propertyType string, raw string) (*ds_models.CommandValue, error) {
	pt, ok := ds_models.ParsePropertyType(propertyType)
	if !ok {
		return nil, fmt.Errorf("unknown property type %q", propertyType)
	}

	switch pt {
	case ds_models.Bool:
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("value %q is not a valid Bool: %v", raw, err)
		}
		return ds_models.NewBoolValue(ro, 0, v)
	case ds_models.String:
		return ds_models.NewStringValue(ro, 0, raw), nil
	case ds_models.Uint8:
		v, err := strconv.ParseUint(raw, 10, 8)
		if err != nil {
			return nil, fmt.Errorf("value %q is not a valid Uint8: %v", raw, err)
		}
		return ds_models.NewUint8Value(ro, 0, uint8(v))
	case ds_models.Uint16:
		v, err := strconv.ParseUint(raw, 10, 16)
		if err != nil {
			return nil, fmt.Errorf("value %q is not a valid Uint16: %v", raw, err)
		}
		return ds_models.NewUint16Value(ro, 0, uint16(v))
	case ds_models.Uint32:
		v, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("value %q is not a valid Uint32: %v", raw, err)
		}
		return ds_models.NewUint32Value(ro, 0, uint32(v))
	case ds_models.Uint64:
		v, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("value %q is not a valid Uint64: %v", raw, err)
		}
		return ds_models.NewUint64Value(ro, 0, v)
	case ds_models.Int8:
		v, err := strconv.ParseInt(raw, 10, 8)
		if err != nil {
			return nil, fmt.Errorf("value %q is not a valid Int8: %v", raw, err)
		}
		return ds_models.NewInt8Value(ro, 0, int8(v))
	case ds_models.Int16:
		v, err := strconv.ParseInt(raw, 10, 16)
		if err != nil {
			return nil, fmt.Errorf("value %q is not a valid Int16: %v", raw, err)
		}
		return ds_models.NewInt16Value(ro, 0, int16(v))
	case ds_models.Int32:
		v, err := strconv.ParseInt(raw, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("value %q is not a valid Int32: %v", raw, err)
		}
		return ds_models.NewInt32Value(ro, 0, int32(v))
	case ds_models.Int64:
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("value %q is not a valid Int64: %v", raw, err)
		}
		return ds_models.NewInt64Value(ro, 0, v)
	case ds_models.Float32:
		v, err := strconv.ParseFloat(raw, 32)
		if err != nil {
			return nil, fmt.Errorf("value %q is not a valid Float32: %v", raw, err)
		}
		return ds_models.NewFloat32Value(ro, 0, float32(v))
	case ds_models.Float64:
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("value %q is not a valid Float64: %v", raw, err)
		}
		return ds_models.NewFloat64Value(ro, 0, v)
	case ds_models.Binary:
		v, err := base64.StdEncoding.DecodeString(raw)
		if err != nil {
			return nil, fmt.Errorf("value is not valid base64 Binary: %v", err)
		}
		return ds_models.NewBinaryValue(ro, 0, v)
	default:
		return nil, fmt.Errorf("unsupported property type %q", propertyType)
	}
}
