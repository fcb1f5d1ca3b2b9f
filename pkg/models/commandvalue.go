// -*- Mode: Go; indent-tabs-mode: t -*-
//
// Copyright (C) 2019 Circutor S.A.
//
// SPDX-License-Identifier: Apache-2.0

package models

import (
	"encoding/base64"
	"fmt"
	"strconv"

	edgexmodels "github.com/Circutor/edgex/pkg/models"
	"github.com/pkg/errors"
)

// Binary is the owning byte-buffer variant of a CommandValue. Ownership
// transfers to whoever receives the CommandValue; the event publisher frees
// it by letting it fall out of scope once the reading has been serialised.
type Binary struct {
	Bytes []byte
}

// CommandValue is the tagged union of every primitive result/parameter
// type a driver or dispatcher exchanges, corresponding to
// edgex_device_commandresult in the original C SDK. Exactly one of the
// typed fields is meaningful, selected by Type.
type CommandValue struct {
	RO     *edgexmodels.ResourceOperation
	Origin int64
	Type   PropertyType

	boolValue   bool
	stringValue string
	uint8Value  uint8
	uint16Value uint16
	uint32Value uint32
	uint64Value uint64
	int8Value   int8
	int16Value  int16
	int32Value  int32
	int64Value  int64
	float32Val  float32
	float64Val  float64
	binaryValue Binary
}

func newValue(ro *edgexmodels.ResourceOperation, origin int64, t PropertyType) CommandValue {
	return CommandValue{RO: ro, Origin: origin, Type: t}
}

func NewBoolValue(ro *edgexmodels.ResourceOperation, origin int64, v bool) (*CommandValue, error) {
	cv := newValue(ro, origin, Bool)
	cv.boolValue = v
	return &cv, nil
}

func NewStringValue(ro *edgexmodels.ResourceOperation, origin int64, v string) *CommandValue {
	cv := newValue(ro, origin, String)
	cv.stringValue = v
	return &cv
}

func NewUint8Value(ro *edgexmodels.ResourceOperation, origin int64, v uint8) (*CommandValue, error) {
	cv := newValue(ro, origin, Uint8)
	cv.uint8Value = v
	return &cv, nil
}

func NewUint16Value(ro *edgexmodels.ResourceOperation, origin int64, v uint16) (*CommandValue, error) {
	cv := newValue(ro, origin, Uint16)
	cv.uint16Value = v
	return &cv, nil
}

func NewUint32Value(ro *edgexmodels.ResourceOperation, origin int64, v uint32) (*CommandValue, error) {
	cv := newValue(ro, origin, Uint32)
	cv.uint32Value = v
	return &cv, nil
}

func NewUint64Value(ro *edgexmodels.ResourceOperation, origin int64, v uint64) (*CommandValue, error) {
	cv := newValue(ro, origin, Uint64)
	cv.uint64Value = v
	return &cv, nil
}

func NewInt8Value(ro *edgexmodels.ResourceOperation, origin int64, v int8) (*CommandValue, error) {
	cv := newValue(ro, origin, Int8)
	cv.int8Value = v
	return &cv, nil
}

func NewInt16Value(ro *edgexmodels.ResourceOperation, origin int64, v int16) (*CommandValue, error) {
	cv := newValue(ro, origin, Int16)
	cv.int16Value = v
	return &cv, nil
}

func NewInt32Value(ro *edgexmodels.ResourceOperation, origin int64, v int32) (*CommandValue, error) {
	cv := newValue(ro, origin, Int32)
	cv.int32Value = v
	return &cv, nil
}

func NewInt64Value(ro *edgexmodels.ResourceOperation, origin int64, v int64) (*CommandValue, error) {
	cv := newValue(ro, origin, Int64)
	cv.int64Value = v
	return &cv, nil
}

func NewFloat32Value(ro *edgexmodels.ResourceOperation, origin int64, v float32) (*CommandValue, error) {
	cv := newValue(ro, origin, Float32)
	cv.float32Val = v
	return &cv, nil
}

func NewFloat64Value(ro *edgexmodels.ResourceOperation, origin int64, v float64) (*CommandValue, error) {
	cv := newValue(ro, origin, Float64)
	cv.float64Val = v
	return &cv, nil
}

func NewBinaryValue(ro *edgexmodels.ResourceOperation, origin int64, v []byte) (*CommandValue, error) {
	cv := newValue(ro, origin, Binary)
	cv.binaryValue = Binary{Bytes: v}
	return &cv, nil
}

// BoolValue, StringValue and BinaryValue unwrap a CommandValue, returning
// an error if Type doesn't match the accessor. The type-fidelity invariant
// between a profile resource's declared propertyType and the value a driver
// actually returned is checked by the dispatcher against Type directly.

func (cv *CommandValue) BoolValue() (bool, error) {
	if cv.Type != Bool {
		return false, errors.Errorf("CommandValue type %s is not Bool", cv.Type)
	}
	return cv.boolValue, nil
}

func (cv *CommandValue) StringValue() (string, error) {
	if cv.Type != String {
		return "", errors.Errorf("CommandValue type %s is not String", cv.Type)
	}
	return cv.stringValue, nil
}

func (cv *CommandValue) BinaryValue() (Binary, error) {
	if cv.Type != Binary {
		return Binary{}, errors.Errorf("CommandValue type %s is not Binary", cv.Type)
	}
	return cv.binaryValue, nil
}

// Float64 coerces any numeric CommandValue to a float64, for transform
// arithmetic that is type-agnostic over the numeric domain.
func (cv *CommandValue) Float64() (float64, error) {
	switch cv.Type {
	case Uint8:
		return float64(cv.uint8Value), nil
	case Uint16:
		return float64(cv.uint16Value), nil
	case Uint32:
		return float64(cv.uint32Value), nil
	case Uint64:
		return float64(cv.uint64Value), nil
	case Int8:
		return float64(cv.int8Value), nil
	case Int16:
		return float64(cv.int16Value), nil
	case Int32:
		return float64(cv.int32Value), nil
	case Int64:
		return float64(cv.int64Value), nil
	case Float32:
		return float64(cv.float32Val), nil
	case Float64:
		return cv.float64Val, nil
	default:
		return 0, errors.Errorf("CommandValue type %s is not numeric", cv.Type)
	}
}

// Int64 coerces any integer CommandValue to an int64, returning an error
// for non-integer types.
func (cv *CommandValue) Int64() (int64, error) {
	switch cv.Type {
	case Uint8:
		return int64(cv.uint8Value), nil
	case Uint16:
		return int64(cv.uint16Value), nil
	case Uint32:
		return int64(cv.uint32Value), nil
	case Uint64:
		return int64(cv.uint64Value), nil
	case Int8:
		return int64(cv.int8Value), nil
	case Int16:
		return int64(cv.int16Value), nil
	case Int32:
		return int64(cv.int32Value), nil
	case Int64:
		return cv.int64Value, nil
	default:
		return 0, errors.Errorf("CommandValue type %s is not an integer", cv.Type)
	}
}

// WithInt64 returns a copy of cv with the same Type, replacing the numeric
// payload with v truncated/reinterpreted to that type. Used by the
// dispatcher to write back a transformed integer without losing Type.
func (cv *CommandValue) WithInt64(v int64) (*CommandValue, error) {
	out := *cv
	switch cv.Type {
	case Uint8:
		out.uint8Value = uint8(v)
	case Uint16:
		out.uint16Value = uint16(v)
	case Uint32:
		out.uint32Value = uint32(v)
	case Uint64:
		out.uint64Value = uint64(v)
	case Int8:
		out.int8Value = int8(v)
	case Int16:
		out.int16Value = int16(v)
	case Int32:
		out.int32Value = int32(v)
	case Int64:
		out.int64Value = v
	default:
		return nil, errors.Errorf("CommandValue type %s is not an integer", cv.Type)
	}
	return &out, nil
}

// WithFloat64 is the float analogue of WithInt64.
func (cv *CommandValue) WithFloat64(v float64) (*CommandValue, error) {
	out := *cv
	switch cv.Type {
	case Float32:
		out.float32Val = float32(v)
	case Float64:
		out.float64Val = v
	default:
		return nil, errors.Errorf("CommandValue type %s is not a float", cv.Type)
	}
	return &out, nil
}

// ValueToString renders the payload the way the event publisher serialises
// it into a Reading.Value: decimal for numerics, the literal string for
// String, "true"/"false" for Bool, base64 for Binary.
func (cv *CommandValue) ValueToString() string {
	switch cv.Type {
	case Bool:
		return strconv.FormatBool(cv.boolValue)
	case String:
		return cv.stringValue
	case Uint8:
		return strconv.FormatUint(uint64(cv.uint8Value), 10)
	case Uint16:
		return strconv.FormatUint(uint64(cv.uint16Value), 10)
	case Uint32:
		return strconv.FormatUint(uint64(cv.uint32Value), 10)
	case Uint64:
		return strconv.FormatUint(cv.uint64Value, 10)
	case Int8:
		return strconv.FormatInt(int64(cv.int8Value), 10)
	case Int16:
		return strconv.FormatInt(int64(cv.int16Value), 10)
	case Int32:
		return strconv.FormatInt(int64(cv.int32Value), 10)
	case Int64:
		return strconv.FormatInt(cv.int64Value, 10)
	case Float32:
		return strconv.FormatFloat(float64(cv.float32Val), 'f', -1, 32)
	case Float64:
		return strconv.FormatFloat(cv.float64Val, 'f', -1, 64)
	case Binary:
		return base64.StdEncoding.EncodeToString(cv.binaryValue.Bytes)
	default:
		return fmt.Sprintf("%v", cv)
	}
}
