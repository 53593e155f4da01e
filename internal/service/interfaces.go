package service

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

import (
	"context"
	"io"
	"time"

	"github.com/MKhiriev/go-file-keeper/models"
)

type AuthService interface {
	RegisterUser(ctx context.Context, request models.RegisterRequest) (models.User, error)
	Login(ctx context.Context, request models.LoginRequest) (models.User, error)
	ResetPassword(ctx context.Context, request models.ResetPasswordRequest) error
	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// FileService enforces per-user ownership over uploaded files. Every method
// that touches a single file first proves that userID owns it.
type FileService interface {
	Authorize(ctx context.Context, userID, fileID int64) (models.UploadedFile, error)
	Upload(ctx context.Context, request models.UploadRequest, content io.Reader) (int64, error)
	List(ctx context.Context, userID int64) ([]models.UploadedFile, error)
	Download(ctx context.Context, userID, fileID int64) (models.UploadedFile, io.ReadCloser, error)
	OpenByStorageKey(ctx context.Context, userID int64, storageKey string) (models.UploadedFile, io.ReadCloser, error)
	Delete(ctx context.Context, userID, fileID int64) error

	// SweepOrphans removes blobs older than olderThan that no registry row
	// references and returns how many were removed.
	SweepOrphans(ctx context.Context, olderThan time.Time) (int, error)
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
	GetBuildInfo(ctx context.Context) models.AppBuildInfo
}

// HealthService reports whether the storage backing the services is reachable.
type HealthService interface {
	Check(ctx context.Context) error
}
