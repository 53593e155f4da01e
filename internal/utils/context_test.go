// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"context"
	"testing"
)

func TestWithUserID_RoundTrip(t *testing.T) {
	for _, userID := range []int64{42, 0, -1} {
		ctx := WithUserID(context.Background(), userID)

		got, ok := GetUserIDFromContext(ctx)
		if !ok || got != userID {
			t.Fatalf("expected (%d, true), got (%d, %v)", userID, got, ok)
		}
	}
}

func TestGetUserIDFromContext_Missing(t *testing.T) {
	userID, ok := GetUserIDFromContext(context.Background())
	if ok || userID != 0 {
		t.Fatalf("expected (0, false), got (%d, %v)", userID, ok)
	}
}

func TestGetUserIDFromContext_IgnoresLookalikeKeys(t *testing.T) {
	type otherKey struct{}
	ctx := context.WithValue(context.Background(), "userID", int64(7))
	ctx = context.WithValue(ctx, otherKey{}, int64(8))

	userID, ok := GetUserIDFromContext(ctx)
	if ok || userID != 0 {
		t.Fatalf("expected (0, false), got (%d, %v)", userID, ok)
	}
}

func TestWithUserID_InnermostWins(t *testing.T) {
	ctx := WithUserID(WithUserID(context.Background(), 1), 2)

	if userID, _ := GetUserIDFromContext(ctx); userID != 2 {
		t.Fatalf("expected 2, got %d", userID)
	}
}
