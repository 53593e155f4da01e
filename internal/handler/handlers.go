// Package handler builds the file keeper's transport handlers from the
// server configuration: the REST API and the gRPC health service.
package handler

import (
	"github.com/MKhiriev/go-file-keeper/internal/config"
	"github.com/MKhiriev/go-file-keeper/internal/handler/grpc"
	"github.com/MKhiriev/go-file-keeper/internal/handler/http"
	"github.com/MKhiriev/go-file-keeper/internal/logger"
	"github.com/MKhiriev/go-file-keeper/internal/service"
)

// Handlers has one handler per configured listen address. A nil field means
// that transport is disabled.
type Handlers struct {
	// HTTP serves the account and file routes.
	HTTP *http.Handler
	// GRPC serves grpc.health.v1 backed by the storage health check.
	GRPC *grpc.Handler
}

// NewHandlers enables the REST API when cfg.HTTPAddress is set and the gRPC
// health service when cfg.GRPCAddress is set. At least one is required.
func NewHandlers(services *service.Services, cfg config.Server, logger *logger.Logger) (*Handlers, error) {
	handlers := new(Handlers)

	if cfg.HTTPAddress != "" {
		handlers.HTTP = http.NewHandler(services, cfg, logger)
	}
	if cfg.GRPCAddress != "" {
		handlers.GRPC = grpc.NewHandler(services, logger)
	}
	if handlers.HTTP == nil && handlers.GRPC == nil {
		return nil, errNoHandlersAreCreated
	}

	logger.Info().
		Bool("rest_api", handlers.HTTP != nil).
		Bool("grpc_health", handlers.GRPC != nil).
		Msg("file keeper handlers created")

	return handlers, nil
}
