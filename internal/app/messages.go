// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer constants used across the
// go-file-keeper server handlers and the CLI client.
//
// All Msg* constants are human-readable message strings that are written into
// HTTP response bodies or printed by the client to describe the outcome of an
// operation. Keeping them in one place ensures consistent wording throughout
// the API.
package app

// Success messages.
const (
	MsgRegistered         = "Registered and logged in"
	MsgLoginSuccessful    = "Login successful"
	MsgPasswordReset      = "Password reset successfully"
	MsgFileUploaded       = "File uploaded"
	MsgFileDeleted        = "File deleted successfully"
	MsgServiceIsHealthy   = "ok"
	MsgLoggedOut          = "Logged out"
	MsgTokenSaved         = "Token saved"
	MsgNoFilesUploadedYet = "No files uploaded yet"
)

// Error messages.
const (
	// MsgInvalidJSON is returned when the request body cannot be decoded.
	MsgInvalidJSON = "invalid JSON was passed"

	// MsgNoFileUploaded is returned when a multipart upload has no "file" part.
	MsgNoFileUploaded = "no file uploaded"

	// MsgInvalidFileID is returned when a {fileId} path segment is not a number.
	MsgInvalidFileID = "invalid file id"

	// MsgFileTooLarge is returned when an upload exceeds the configured limit.
	MsgFileTooLarge = "file is too large"

	// MsgInternalServerError is returned when an unexpected server-side
	// failure occurs that the client cannot resolve.
	MsgInternalServerError = "internal server error"

	// MsgNotFound is returned for unknown routes.
	MsgNotFound = "not found"
)
