// Package grpc exposes the standard grpc.health.v1 service for the file
// keeper so orchestrators can health-check the server without HTTP.
package grpc

import (
	"context"
	"time"

	"github.com/MKhiriev/go-file-keeper/internal/logger"
	"github.com/MKhiriev/go-file-keeper/internal/service"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// ServiceName is the name reported alongside the overall ("") status.
const ServiceName = "filekeeper.FileKeeper"

const defaultCheckInterval = 15 * time.Second

// Handler is the root gRPC transport handler.
//
// It owns a [health.Server] whose status follows [service.HealthService]:
// SERVING while storage answers pings, NOT_SERVING otherwise and for good
// once [Handler.Shutdown] was called.
type Handler struct {
	// services provides access to all application business operations.
	services *service.Services

	health        *health.Server
	checkInterval time.Duration

	// logger is used for diagnostic log output.
	logger *logger.Logger
}

// NewHandler constructs a [Handler]. Every service starts as NOT_SERVING
// until the first storage check succeeds.
func NewHandler(services *service.Services, logger *logger.Logger) *Handler {
	logger.Debug().Msg("gRPC handler created")

	healthServer := health.NewServer()
	healthServer.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	healthServer.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_NOT_SERVING)

	return &Handler{
		services:      services,
		health:        healthServer,
		checkInterval: defaultCheckInterval,
		logger:        logger,
	}
}

// Register attaches the health service to s.
func (h *Handler) Register(s *grpc.Server) {
	healthpb.RegisterHealthServer(s, h.health)
}

// Watch refreshes the serving status immediately and then on every check
// interval until ctx is cancelled.
func (h *Handler) Watch(ctx context.Context) {
	h.refresh(ctx)

	t := time.NewTicker(h.checkInterval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			h.refresh(ctx)
		}
	}
}

func (h *Handler) refresh(ctx context.Context) {
	status := healthpb.HealthCheckResponse_SERVING
	if err := h.services.HealthService.Check(ctx); err != nil {
		h.logger.Err(err).Str("func", "*Handler.refresh").Msg("storage check failed")
		status = healthpb.HealthCheckResponse_NOT_SERVING
	}

	h.health.SetServingStatus("", status)
	h.health.SetServingStatus(ServiceName, status)
}

// Shutdown reports NOT_SERVING for every service and ignores later updates.
func (h *Handler) Shutdown() {
	h.health.Shutdown()
}
