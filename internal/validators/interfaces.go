// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks account requests (registration, login, password
// reset) before they reach the auth service.
package validators

import "context"

// Validator validates a request value. When fields are given only those
// fields are checked; otherwise every field the request type defines is.
type Validator interface {
	Validate(ctx context.Context, value any, fields ...string) error
}
