// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import "context"

// Client defines the minimal lifecycle contract for runnable client
// applications.
type Client interface {
	// Run executes the subcommand named by args[0] and returns when it is done.
	Run(ctx context.Context, args []string) error
}

// TokenStore persists the bearer token between client invocations.
type TokenStore interface {
	// Load returns the saved token, or "" when none was saved.
	Load() (string, error)
	Save(token string) error
	// Clear forgets the token. Clearing an empty store is not an error.
	Clear() error
}
