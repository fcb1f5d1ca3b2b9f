// -*- mode: Go; indent-tabs-mode: t -*-
//
// Copyright (c) 2019 Circutor S.A.
//
// SPDX-License-Identifier: Apache-2.0

// Package transform applies the per-resource numeric transforms declared
// on a DeviceObject's PropertyValue (mask, shift, scale, offset, base,
// min/max) in both directions: forward on GET results before they reach
// Component E, inverse on PUT parameters before they reach the driver
// (spec.md §4.D steps 3 and 5).
package transform

import (
	"math"
	"strconv"

	"github.com/Circutor/edgex/pkg/models"
	"github.com/pkg/errors"

	ds_models "github.com/circutor/device-sdk-go/pkg/models"
)

// ErrOverflow is returned when a transform pushes a value outside the
// range its property type can hold; the dispatcher maps this to HTTP 500.
var ErrOverflow = errors.New("transform overflow")

// Forward applies mask, shift, base, scale and offset (in that order) to
// a freshly-read numeric value, per spec.md §4.D step 5. Non-numeric
// values and values with no transform configured pass through
// unchanged. Base, scale and offset introduce a fractional result, so
// their presence promotes the output to Float32 regardless of the raw
// value's integer type (spec.md §8 scenario 4: a raw I16 scaled by 0.1
// yields a Float32 reading); mask/shift alone preserve the original
// integer type. The returned bool reports whether the result fell
// within [Minimum, Maximum]; when it is false the value has been clamped
// to the boundary crossed and the dispatcher logs it. The resulting
// reading carries no validity mark.
func Forward(cv *ds_models.CommandValue, pv models.PropertyValue) (*ds_models.CommandValue, bool, error) {
	if !cv.Type.IsNumeric() {
		return cv, true, nil
	}

	v, err := cv.Float64()
	if err != nil {
		return cv, true, nil
	}

	fractional := false

	if mask, ok := parseInt(pv.Mask); ok {
		v = float64(int64(v) & mask)
	}
	if shift, ok := parseInt(pv.Shift); ok && shift != 0 {
		v = float64(int64(v) << uint(shift))
	}
	if base, ok := parseFloat(pv.Base); ok && base != 0 {
		v = math.Pow(base, v)
		fractional = true
	}
	if scale, ok := parseFloat(pv.Scale); ok && scale != 0 {
		v *= scale
		fractional = true
	}
	if offset, ok := parseFloat(pv.Offset); ok {
		v += offset
		fractional = true
	}

	if math.IsInf(v, 0) || math.IsNaN(v) {
		return nil, false, ErrOverflow
	}

	v, valid := clampToRange(v, pv)

	out, err := promote(cv, v, fractional)
	if err != nil {
		return nil, false, err
	}
	return out, valid, nil
}

// Inverse reverses Forward for a PUT parameter: subtract offset, divide
// by scale, apply mask — the write-path counterpart to step 3 of §4.D.
// The output keeps cv's own type: a parameter arriving as a Float32
// engineering value stays Float32 once de-scaled, since the driver is
// the one that knows how to truncate it to the wire representation.
func Inverse(cv *ds_models.CommandValue, pv models.PropertyValue) (*ds_models.CommandValue, error) {
	if !cv.Type.IsNumeric() {
		return cv, nil
	}

	v, err := cv.Float64()
	if err != nil {
		return cv, nil
	}

	if offset, ok := parseFloat(pv.Offset); ok {
		v -= offset
	}
	if scale, ok := parseFloat(pv.Scale); ok && scale != 0 {
		v /= scale
	}
	if mask, ok := parseInt(pv.Mask); ok {
		v = float64(int64(v) & mask)
	}

	if math.IsInf(v, 0) || math.IsNaN(v) {
		return nil, ErrOverflow
	}

	return promote(cv, v, cv.Type == ds_models.Float32 || cv.Type == ds_models.Float64)
}

// promote writes v back into a CommandValue, either retyping to Float32
// (fractional transforms applied to a non-float source) or preserving
// cv's own numeric type via WithFloat64/WithInt64.
func promote(cv *ds_models.CommandValue, v float64, asFloat bool) (*ds_models.CommandValue, error) {
	if cv.Type == ds_models.Float32 || cv.Type == ds_models.Float64 {
		return cv.WithFloat64(v)
	}
	if asFloat {
		return ds_models.NewFloat32Value(cv.RO, cv.Origin, float32(v))
	}
	out, err := cv.WithInt64(int64(v))
	if err != nil {
		return nil, err
	}
	if back, _ := out.Int64(); back != int64(v) {
		return nil, ErrOverflow
	}
	return out, nil
}

// clampToRange replaces v with the boundary it crossed when Minimum or
// Maximum is configured and violated, reporting false so the caller can
// tell the value was replaced rather than dropping it.
func clampToRange(v float64, pv models.PropertyValue) (float64, bool) {
	if min, ok := parseFloat(pv.Minimum); ok && v < min {
		return min, false
	}
	if max, ok := parseFloat(pv.Maximum); ok && v > max {
		return max, false
	}
	return v, true
}

func parseFloat(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

func parseInt(s string) (int64, bool) {
	if s == "" {
		return 0, false
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
