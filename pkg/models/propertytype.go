// -*- Mode: Go; indent-tabs-mode: t -*-
//
// Copyright (C) 2019 Circutor S.A.
//
// SPDX-License-Identifier: Apache-2.0

package models

// PropertyType enumerates the primitive wire types a device resource may
// declare, mirroring edgex_propertytype from the original C SDK header.
type PropertyType int

const (
	Bool PropertyType = iota
	String
	Uint8
	Uint16
	Uint32
	Uint64
	Int8
	Int16
	Int32
	Int64
	Float32
	Float64
	Binary
)

func (t PropertyType) String() string {
	switch t {
	case Bool:
		return "Bool"
	case String:
		return "String"
	case Uint8:
		return "Uint8"
	case Uint16:
		return "Uint16"
	case Uint32:
		return "Uint32"
	case Uint64:
		return "Uint64"
	case Int8:
		return "Int8"
	case Int16:
		return "Int16"
	case Int32:
		return "Int32"
	case Int64:
		return "Int64"
	case Float32:
		return "Float32"
	case Float64:
		return "Float64"
	case Binary:
		return "Binary"
	default:
		return "Unknown"
	}
}

// IsNumeric reports whether t carries a value transforms (scale, offset,
// mask, base) may be meaningfully applied to.
func (t PropertyType) IsNumeric() bool {
	switch t {
	case Bool, String, Binary:
		return false
	default:
		return true
	}
}

// ParsePropertyType maps a profile's textual propertyType onto the enum.
func ParsePropertyType(s string) (PropertyType, bool) {
	for _, t := range []PropertyType{Bool, String, Uint8, Uint16, Uint32, Uint64,
		Int8, Int16, Int32, Int64, Float32, Float64, Binary} {
		if t.String() == s {
			return t, true
		}
	}
	return 0, false
}
