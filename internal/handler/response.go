// -*- mode: Go; indent-tabs-mode: t -*-
//
// Copyright (c) 2019 Circutor S.A.
//
// SPDX-License-Identifier: Apache-2.0

package handler

import (
	"encoding/json"
	"net/http"

	"github.com/circutor/device-sdk-go/internal/common"
)

// writeJSON writes body as the JSON response, matching spec.md §6's
// requirement that every endpoint respond application/json.
func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		common.LoggingClient.Error(err.Error())
	}
}

// writeAppError renders an AppError as spec.md §7's "HTTP responses
// carry the status plus a JSON {message} body for non-2xx cases".
func writeAppError(w http.ResponseWriter, appErr common.AppError) {
	common.LoggingClient.Error(appErr.Error())
	writeJSON(w, appErr.Code(), map[string]string{"message": appErr.Error()})
}
