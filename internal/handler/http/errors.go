// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"

	"github.com/MKhiriev/go-file-keeper/internal/app"
)

// Sentinel errors used by the authentication middleware when parsing the
// "Authorization" HTTP header. Callers can match against them with [errors.Is].
var (
	// ErrEmptyAuthorizationHeader is returned by the auth middleware when the
	// incoming request does not include an "Authorization" header at all.
	ErrEmptyAuthorizationHeader = errors.New("no token provided")

	// ErrInvalidAuthorizationHeader is returned when the "Authorization"
	// header is present but cannot be split into two space-separated parts.
	ErrInvalidAuthorizationHeader = errors.New("invalid `Authorization` header")

	// ErrEmptyToken is returned when the "Authorization" header contains the
	// expected scheme prefix but the token value itself is an empty string.
	ErrEmptyToken = errors.New("empty token in `Authorization` header")
)

// Request decoding errors.
var (
	ErrInvalidJSON    = errors.New(app.MsgInvalidJSON)
	ErrNoFileUploaded = errors.New(app.MsgNoFileUploaded)
	ErrInvalidFileID  = errors.New(app.MsgInvalidFileID)
	ErrFileTooLarge   = errors.New(app.MsgFileTooLarge)
)

// ErrNoUserInContext means a protected handler ran without the auth
// middleware having stored a user id.
var ErrNoUserInContext = errors.New("no user id in request context")
