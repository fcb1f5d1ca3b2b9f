// -*- mode: Go; indent-tabs-mode: t -*-
//
// Copyright (C) 2017-2018 Canonical Ltd
// Copyright (c) 2019 Circutor S.A.
//
// SPDX-License-Identifier: Apache-2.0

package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/Circutor/edgex/pkg/models"
	"github.com/gorilla/mux"

	"github.com/circutor/device-sdk-go/internal/common"
	"github.com/circutor/device-sdk-go/internal/handler/callback"
)

// BuildRouter wires the whole HTTP surface at once, in the order callback,
// device, discovery, metrics, config, ping. Service.Start serves this
// router before it initializes the driver, so metrics, config and ping
// answer before driver initialization too.
func BuildRouter() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc(common.APICallbackRoute, callbackHandler).
		Methods(http.MethodPut, http.MethodPost, http.MethodDelete)

	deviceRoute := common.APIDeviceRoute
	r.HandleFunc(fmt.Sprintf("%s/name/{%s}/{%s}", deviceRoute, common.NameVar, common.CommandVar), DeviceCommandHandler).
		Methods(http.MethodGet, http.MethodPut)
	r.HandleFunc(fmt.Sprintf("%s/%s/{%s}", deviceRoute, common.AllCommand, common.CommandVar), AllCommandHandler).
		Methods(http.MethodGet)
	r.HandleFunc(fmt.Sprintf("%s/{%s}/{%s}", deviceRoute, common.IdVar, common.CommandVar), DeviceCommandHandler).
		Methods(http.MethodGet, http.MethodPut)

	r.HandleFunc(common.APIDiscoveryRoute, DiscoveryHandler).Methods(http.MethodPost)

	r.HandleFunc(common.APIMetricsRoute, MetricsHandler).Methods(http.MethodGet)
	r.HandleFunc(common.APIConfigRoute, ConfigHandler).Methods(http.MethodGet)
	r.HandleFunc(common.APIPingRoute, PingHandler).Methods(http.MethodGet)

	return r
}

// callbackHandler adapts the HTTP request to callback.CallbackHandler's
// (CallbackAlert, method) contract: decode the body, dispatch, translate
// the resulting AppError (or nil) into a response.
func callbackHandler(w http.ResponseWriter, r *http.Request) {
	var alert models.CallbackAlert
	if err := json.NewDecoder(r.Body).Decode(&alert); err != nil {
		writeAppError(w, common.NewBadRequestError("invalid callback body", err))
		return
	}

	if appErr := callback.CallbackHandler(alert, r.Method); appErr != nil {
		writeAppError(w, appErr)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "ok"})
}
