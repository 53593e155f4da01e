// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the command-line client of the file keeper.
//
// Each invocation runs one subcommand (register, login, upload, list, ...)
// against the REST API through [adapter.ServerAdapter]. The bearer token is
// kept in a token file between invocations.
package client
