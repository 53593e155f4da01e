// Package utils holds small helpers shared by the file keeper server and the
// CLI client: the owner carried in a request context, storage key
// generation, JSON responses, the resty client constructor and JWT handling.
package utils

import "context"

// ownerKey is the context key of the authenticated file owner. Being an
// unexported struct type, no other package can read or forge the value.
type ownerKey struct{}

// WithUserID returns a copy of ctx whose file operations act on behalf of
// userID. Only the auth middleware calls it.
func WithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, ownerKey{}, userID)
}

// GetUserIDFromContext returns the owner set by WithUserID. ok is false for
// a context that never passed the auth middleware.
func GetUserIDFromContext(ctx context.Context) (userID int64, ok bool) {
	userID, ok = ctx.Value(ownerKey{}).(int64)
	return userID, ok
}
