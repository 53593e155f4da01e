package http

import (
	"time"

	"github.com/MKhiriev/go-file-keeper/internal/config"
	"github.com/MKhiriev/go-file-keeper/internal/logger"
	"github.com/MKhiriev/go-file-keeper/internal/service"
)

type Handler struct {
	services *service.Services

	requestTimeout time.Duration
	maxUploadSize  int64
	allowedOrigins []string

	logger *logger.Logger
}

func NewHandler(services *service.Services, cfg config.Server, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:       services,
		requestTimeout: cfg.RequestTimeout,
		maxUploadSize:  cfg.MaxUploadSize,
		allowedOrigins: cfg.AllowedOrigins,
		logger:         logger,
	}
}
