package service

import (
	"context"
	"fmt"
	"time"
)

// pingTimeout bounds a single storage health check.
const pingTimeout = 2 * time.Second

// Pinger is implemented by *store.Storages.
type Pinger interface {
	Ping(ctx context.Context) error
}

type healthService struct {
	pinger Pinger
}

func NewHealthService(pinger Pinger) HealthService {
	return &healthService{pinger: pinger}
}

// Check pings the database with a short timeout.
func (h *healthService) Check(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := h.pinger.Ping(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}

	return nil
}
