// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors produced while decoding a request, before the service layer
// is reached. All of them are reported as 400 Bad Request.
var (
	// errInvalidID is returned when a path identity is not a non-negative
	// decimal integer.
	errInvalidID = errors.New("invalid id")

	// errEmptyBody is returned when a create or update request carries no
	// payload at all.
	errEmptyBody = errors.New("request body is empty")

	// errInvalidJSON is returned when the payload cannot be decoded.
	errInvalidJSON = errors.New("invalid JSON was passed")
)
