package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/MKhiriev/go-file-keeper/internal/validators"
	"github.com/MKhiriev/go-file-keeper/models"
)

// AuthServiceWrapper defines middleware composition for AuthService.
// Implementations wrap an existing AuthService to add behavior such as
// logging or validating.
type AuthServiceWrapper interface {
	Wrap(AuthService) AuthService // returns a decorated AuthService applying additional behavior
}

// FileServiceWrapper defines middleware composition for FileService.
type FileServiceWrapper interface {
	Wrap(FileService) FileService
}

// AuthValidationService checks account requests before they reach the
// wrapped AuthService. Every validation failure matches ErrInvalidDataProvided.
type AuthValidationService struct {
	inner     AuthService
	validator validators.Validator
}

func NewAuthValidationService() AuthServiceWrapper {
	return &AuthValidationService{
		validator: validators.NewRequestValidator(),
	}
}

func (v *AuthValidationService) RegisterUser(ctx context.Context, request models.RegisterRequest) (models.User, error) {
	if err := v.validator.Validate(ctx, request); err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return v.inner.RegisterUser(ctx, request)
}

func (v *AuthValidationService) Login(ctx context.Context, request models.LoginRequest) (models.User, error) {
	if err := v.validator.Validate(ctx, request); err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return v.inner.Login(ctx, request)
}

func (v *AuthValidationService) ResetPassword(ctx context.Context, request models.ResetPasswordRequest) error {
	if err := v.validator.Validate(ctx, request); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return v.inner.ResetPassword(ctx, request)
}

func (v *AuthValidationService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	return v.inner.CreateToken(ctx, user)
}

func (v *AuthValidationService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	return v.inner.ParseToken(ctx, tokenString)
}

func (v *AuthValidationService) Wrap(wrapped AuthService) AuthService {
	v.inner = wrapped
	return v
}

// FileValidationService checks upload metadata and identifiers before they
// reach the wrapped FileService.
type FileValidationService struct {
	inner     FileService
	validator validators.Validator
}

func NewFileValidationService() FileServiceWrapper {
	return &FileValidationService{
		validator: validators.NewRequestValidator(),
	}
}

func (v *FileValidationService) Authorize(ctx context.Context, userID, fileID int64) (models.UploadedFile, error) {
	// a non-positive id can never name an existing file
	if fileID <= 0 {
		return models.UploadedFile{}, ErrForbidden
	}

	return v.inner.Authorize(ctx, userID, fileID)
}

func (v *FileValidationService) Upload(ctx context.Context, request models.UploadRequest, content io.Reader) (int64, error) {
	if err := v.validator.Validate(ctx, request); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
	if content == nil {
		return 0, ErrInvalidDataProvided
	}

	return v.inner.Upload(ctx, request, content)
}

func (v *FileValidationService) List(ctx context.Context, userID int64) ([]models.UploadedFile, error) {
	return v.inner.List(ctx, userID)
}

func (v *FileValidationService) Download(ctx context.Context, userID, fileID int64) (models.UploadedFile, io.ReadCloser, error) {
	if fileID <= 0 {
		return models.UploadedFile{}, nil, ErrForbidden
	}

	return v.inner.Download(ctx, userID, fileID)
}

func (v *FileValidationService) OpenByStorageKey(ctx context.Context, userID int64, storageKey string) (models.UploadedFile, io.ReadCloser, error) {
	if storageKey == "" {
		return models.UploadedFile{}, nil, ErrForbidden
	}

	return v.inner.OpenByStorageKey(ctx, userID, storageKey)
}

func (v *FileValidationService) Delete(ctx context.Context, userID, fileID int64) error {
	if fileID <= 0 {
		return ErrForbidden
	}

	return v.inner.Delete(ctx, userID, fileID)
}

func (v *FileValidationService) SweepOrphans(ctx context.Context, olderThan time.Time) (int, error) {
	return v.inner.SweepOrphans(ctx, olderThan)
}

func (v *FileValidationService) Wrap(wrapped FileService) FileService {
	v.inner = wrapped
	return v
}
