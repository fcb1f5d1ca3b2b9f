// -*- mode: Go; indent-tabs-mode: t -*-
//
// Copyright (C) 2019 Circutor S.A.
//
// SPDX-License-Identifier: Apache-2.0

package common

import (
	"regexp"
	"strconv"

	"github.com/pkg/errors"
)

// No ISO-8601 duration library appears anywhere in the retrieval pack (see
// DESIGN.md); this mirrors the original C SDK's edgex_device_config_parse8601,
// which is itself a small hand-rolled parser, just done with a single regexp
// instead of a character-by-character scan.
var durationPattern = regexp.MustCompile(
	`^P(?:(\d+)Y)?(?:(\d+)M)?(?:(\d+)D)?(?:T(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?)?$`)

const (
	secondsPerYear  = 365 * 24 * 3600
	secondsPerMonth = 30 * 24 * 3600
	secondsPerDay   = 24 * 3600
	secondsPerHour  = 3600
	secondsPerMin   = 60
)

// ParseISO8601Duration parses an ISO-8601 duration of the form
// PnYnMnDTnHnMnS into a whole number of seconds. Years are approximated as
// 365 days and months as 30 days, so a schedule frequency becomes a fixed
// interval that does not follow calendar month or year lengths.
func ParseISO8601Duration(s string) (int, error) {
	if s == "" {
		return 0, errors.New("empty ISO-8601 duration")
	}
	m := durationPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, errors.Errorf("invalid ISO-8601 duration: %q", s)
	}
	if s == "P" || s == "PT" {
		return 0, errors.Errorf("invalid ISO-8601 duration: %q", s)
	}

	total := 0
	units := []int{secondsPerYear, secondsPerMonth, secondsPerDay, secondsPerHour, secondsPerMin, 1}
	for i, group := range m[1:] {
		if group == "" {
			continue
		}
		n, err := strconv.Atoi(group)
		if err != nil {
			return 0, errors.Wrapf(err, "invalid ISO-8601 duration field in %q", s)
		}
		total += n * units[i]
	}
	if total == 0 {
		return 0, errors.Errorf("zero-length ISO-8601 duration: %q", s)
	}
	return total, nil
}
