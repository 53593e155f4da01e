package service

import (
	"fmt"

	"github.com/MKhiriev/go-file-keeper/internal/config"
	"github.com/MKhiriev/go-file-keeper/internal/crypto"
	"github.com/MKhiriev/go-file-keeper/internal/logger"
	"github.com/MKhiriev/go-file-keeper/internal/store"
	"github.com/MKhiriev/go-file-keeper/models"
)

type Services struct {
	AuthService    AuthService
	FileService    FileService
	AppInfoService AppInfoService
	HealthService  HealthService
}

// NewServices builds every service on top of storages. Auth and file
// services are wrapped with request validation.
func NewServices(storages *store.Storages, cfg config.StructuredConfig, buildInfo models.AppBuildInfo, logger *logger.Logger) (*Services, error) {
	appInfoService, err := NewAppInfoService(cfg.App, buildInfo, logger)
	if err != nil {
		return nil, fmt.Errorf("error creating app info service: %w", err)
	}

	authService := NewAuthService(storages.UserRepository, crypto.NewPasswordHasher(cfg.App.PasswordHashCost), cfg.App, logger)
	fileService := NewFileService(storages.FileRepository, storages.BlobStorage, crypto.NewKeyGenerator(), logger)

	return &Services{
		AuthService:    NewAuthValidationService().Wrap(authService),
		FileService:    NewFileValidationService().Wrap(fileService),
		AppInfoService: appInfoService,
		HealthService:  NewHealthService(storages),
	}, nil
}
