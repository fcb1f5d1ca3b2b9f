// -*- mode: Go; indent-tabs-mode: t -*-
//
// Copyright (C) 2017-2018 Canonical Ltd
// Copyright (C) 2018-2019 IOTech Ltd
//
// SPDX-License-Identifier: Apache-2.0

package common

import (
	"net/http"

	"github.com/pkg/errors"
)

// ErrorKind mirrors the reason codes of spec.md §7: a closed set of
// failure categories the core can raise, independent of the HTTP status a
// handler eventually maps them to.
type ErrorKind string

const (
	KindOK                ErrorKind = "OK"
	KindNoDeviceImpl       ErrorKind = "NO_DEVICE_IMPL"
	KindNoDeviceName       ErrorKind = "NO_DEVICE_NAME"
	KindNoDeviceVersion    ErrorKind = "NO_DEVICE_VERSION"
	KindInvalidArg         ErrorKind = "INVALID_ARG"
	KindBadConfig          ErrorKind = "BAD_CONFIG"
	KindRemoteServerDown   ErrorKind = "REMOTE_SERVER_DOWN"
	KindDriverUnstart      ErrorKind = "DRIVER_UNSTART"
	KindHTTPConflict       ErrorKind = "HTTP_CONFLICT"
	KindHTTPNotFound       ErrorKind = "HTTP_NOT_FOUND"
	KindHTTPServerError    ErrorKind = "HTTP_SERVER_ERROR"
	KindBadRequest         ErrorKind = "BAD_REQUEST"
	KindLocked             ErrorKind = "LOCKED"
	KindServiceUnavailable ErrorKind = "SERVICE_UNAVAILABLE"
)

// AppError is the single error vehicle propagated out of the core: a
// reason string attached at the origin (spec.md §7 "every error has a
// single-line reason string attached at the origin"), an ErrorKind, the
// HTTP status it maps to for handlers, and the wrapped cause.
type AppError interface {
	error
	Kind() ErrorKind
	Code() int
	Cause() error
}

type appError struct {
	kind    ErrorKind
	code    int
	message string
	cause   error
}

func (e *appError) Error() string {
	if e.cause != nil {
		return errors.Wrap(e.cause, e.message).Error()
	}
	return e.message
}

func (e *appError) Kind() ErrorKind { return e.kind }
func (e *appError) Code() int       { return e.code }
func (e *appError) Cause() error    { return e.cause }

func newAppError(kind ErrorKind, code int, message string, cause error) AppError {
	return &appError{kind: kind, code: code, message: message, cause: cause}
}

func NewBadRequestError(message string, cause error) AppError {
	return newAppError(KindBadRequest, http.StatusBadRequest, message, cause)
}

func NewServerError(message string, cause error) AppError {
	return newAppError(KindHTTPServerError, http.StatusInternalServerError, message, cause)
}

func NewNotFoundError(message string, cause error) AppError {
	return newAppError(KindHTTPNotFound, http.StatusNotFound, message, cause)
}

func NewLockedError(message string, cause error) AppError {
	return newAppError(KindLocked, http.StatusLocked, message, cause)
}

func NewServiceUnavailableError(message string, cause error) AppError {
	return newAppError(KindServiceUnavailable, http.StatusServiceUnavailable, message, cause)
}

func NewConflictError(message string, cause error) AppError {
	return newAppError(KindHTTPConflict, http.StatusConflict, message, cause)
}

func NewBadConfigError(message string, cause error) AppError {
	return newAppError(KindBadConfig, http.StatusInternalServerError, message, cause)
}

func NewRemoteServerDownError(message string, cause error) AppError {
	return newAppError(KindRemoteServerDown, http.StatusInternalServerError, message, cause)
}

// NewNoDriverError reports Service.New being called with a nil
// ProtocolDriver, spec.md §7's NO_DEVICE_IMPL.
func NewNoDriverError(message string) AppError {
	return newAppError(KindNoDeviceImpl, http.StatusInternalServerError, message, nil)
}

// NewNoNameError reports Service.New being called with an empty
// service name, spec.md §7's NO_DEVICE_NAME.
func NewNoNameError(message string) AppError {
	return newAppError(KindNoDeviceName, http.StatusInternalServerError, message, nil)
}

// NewNoVersionError reports Service.New being called with an empty
// version string, spec.md §7's NO_DEVICE_VERSION.
func NewNoVersionError(message string) AppError {
	return newAppError(KindNoDeviceVersion, http.StatusInternalServerError, message, nil)
}

// NewDriverUnstartError wraps a ProtocolDriver.Initialize failure,
// spec.md §7's DRIVER_UNSTART — fatal during service_start.
func NewDriverUnstartError(message string, cause error) AppError {
	return newAppError(KindDriverUnstart, http.StatusInternalServerError, message, cause)
}

// IsConflict reports whether err (typically returned from a metadata
// create call) represents an HTTP 409 that §4.B / §7 say to tolerate
// during startup reconciliation.
func IsConflict(err error) bool {
	if ae, ok := err.(AppError); ok {
		return ae.Code() == http.StatusConflict || ae.Kind() == KindHTTPConflict
	}
	return false
}
