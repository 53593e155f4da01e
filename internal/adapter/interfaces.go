// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides transport-layer abstractions for communicating with
// the go-file-keeper server.
//
// The primary abstraction is [ServerAdapter], which decouples the CLI client
// from the underlying protocol. The package ships an HTTP/REST implementation
// ([NewHTTPServerAdapter]) built on resty.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic error
// handling (e.g. [ErrConflict] for 409, [ErrUnauthorized] for 401).
package adapter

import (
	"context"
	"io"

	"github.com/MKhiriev/go-file-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

// ServerAdapter defines transport-agnostic communication with the
// go-file-keeper server. Implementations are responsible for serialisation,
// authentication header management, and mapping transport-level errors to the
// sentinel values defined in this package.
type ServerAdapter interface {
	// SetToken stores the bearer token that will be attached to all subsequent
	// authenticated requests.
	SetToken(token string)

	// Token returns the bearer token currently stored in the adapter, or an
	// empty string if no token has been set yet.
	Token() string

	// Register creates an account. On success the returned token is also
	// stored via SetToken.
	Register(ctx context.Context, request models.RegisterRequest) (string, error)

	// Login exchanges credentials for a token. On success the token is also
	// stored via SetToken.
	Login(ctx context.Context, request models.LoginRequest) (string, error)

	// ResetPassword replaces the password of the account with request.Email.
	ResetPassword(ctx context.Context, request models.ResetPasswordRequest) error

	// Upload streams content as a multipart upload named fileName and
	// returns the id assigned by the server.
	Upload(ctx context.Context, fileName string, content io.Reader) (int64, error)

	// List returns the caller's files ordered by id.
	List(ctx context.Context) ([]models.UploadedFile, error)

	// Download streams the content of fileID into dst and returns the file
	// name announced by the server.
	Download(ctx context.Context, fileID int64, dst io.Writer) (string, error)

	// Delete removes fileID.
	Delete(ctx context.Context, fileID int64) error

	// Version returns the server version.
	Version(ctx context.Context) (string, error)
}
