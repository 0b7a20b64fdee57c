// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks directory entities before they reach storage.
//
// The service layer wraps its façade with a validating decorator that calls
// [Validator.Validate] on every create and update payload. A non-nil result
// is reported to HTTP callers as 400.
package validators

import "context"

// Validator validates a value, optionally restricted to the named fields.
// Unsupported value types yield [ErrUnsupportedType] and unknown field names
// yield [ErrUnknownField].
type Validator interface {
	Validate(ctx context.Context, obj any, fields ...string) error
}
