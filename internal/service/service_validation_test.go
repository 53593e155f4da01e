package service

import (
	"context"
	"strings"
	"testing"

	"github.com/MKhiriev/go-file-keeper/internal/mock"
	"github.com/MKhiriev/go-file-keeper/internal/validators"
	"github.com/MKhiriev/go-file-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// ── AuthValidationService ────────────────────────────────────────────────────

func TestAuthValidationService_RejectsBeforeInner(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	inner := mock.NewMockAuthService(ctrl)
	svc := NewAuthValidationService().Wrap(inner)
	ctx := context.Background()

	// inner must not be reached for any of these
	_, err := svc.RegisterUser(ctx, models.RegisterRequest{Username: "alice", Email: "not-an-email", Password: "p"})
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
	assert.ErrorIs(t, err, validators.ErrInvalidEmail)

	_, err = svc.Login(ctx, models.LoginRequest{Username: "alice"})
	assert.ErrorIs(t, err, ErrInvalidDataProvided)

	err = svc.ResetPassword(ctx, models.ResetPasswordRequest{Email: "a@b.c", NewPassword: strings.Repeat("x", 73)})
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
	assert.ErrorIs(t, err, validators.ErrPasswordTooLong)
}

func TestAuthValidationService_PassesValidRequests(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	inner := mock.NewMockAuthService(ctrl)
	svc := NewAuthValidationService().Wrap(inner)
	ctx := context.Background()

	register := models.RegisterRequest{Username: "alice", Email: "alice@example.com", Password: "p"}
	login := models.LoginRequest{Username: "alice", Password: "p"}
	reset := models.ResetPasswordRequest{Email: "alice@example.com", NewPassword: "q"}

	inner.EXPECT().RegisterUser(ctx, register).Return(models.User{UserID: 1}, nil)
	inner.EXPECT().Login(ctx, login).Return(models.User{UserID: 1}, nil)
	inner.EXPECT().ResetPassword(ctx, reset).Return(nil)
	inner.EXPECT().CreateToken(ctx, models.User{UserID: 1}).Return(models.Token{SignedString: "t"}, nil)
	inner.EXPECT().ParseToken(ctx, "t").Return(models.Token{UserID: 1}, nil)

	_, err := svc.RegisterUser(ctx, register)
	require.NoError(t, err)
	_, err = svc.Login(ctx, login)
	require.NoError(t, err)
	require.NoError(t, svc.ResetPassword(ctx, reset))

	token, err := svc.CreateToken(ctx, models.User{UserID: 1})
	require.NoError(t, err)
	parsed, err := svc.ParseToken(ctx, token.SignedString)
	require.NoError(t, err)
	assert.Equal(t, int64(1), parsed.UserID)
}

// ── FileValidationService ────────────────────────────────────────────────────

func TestFileValidationService_NonPositiveIDsAreForbidden(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	inner := mock.NewMockFileService(ctrl)
	svc := NewFileValidationService().Wrap(inner)
	ctx := context.Background()

	_, err := svc.Authorize(ctx, 1, 0)
	assert.ErrorIs(t, err, ErrForbidden)

	_, _, err = svc.Download(ctx, 1, -3)
	assert.ErrorIs(t, err, ErrForbidden)

	assert.ErrorIs(t, svc.Delete(ctx, 1, 0), ErrForbidden)

	_, _, err = svc.OpenByStorageKey(ctx, 1, "")
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestFileValidationService_Upload(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	inner := mock.NewMockFileService(ctrl)
	svc := NewFileValidationService().Wrap(inner)
	ctx := context.Background()
	content := strings.NewReader("x")

	_, err := svc.Upload(ctx, models.UploadRequest{UserID: 1}, content)
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
	assert.ErrorIs(t, err, validators.ErrEmptyFileName)

	_, err = svc.Upload(ctx, models.UploadRequest{UserID: 1, FileName: "a.txt"}, nil)
	assert.ErrorIs(t, err, ErrInvalidDataProvided)

	valid := models.UploadRequest{UserID: 1, FileName: "a.txt", Size: 1}
	inner.EXPECT().Upload(ctx, valid, content).Return(int64(8), nil)

	id, err := svc.Upload(ctx, valid, content)
	require.NoError(t, err)
	assert.Equal(t, int64(8), id)
}

func TestFileValidationService_PassThrough(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	inner := mock.NewMockFileService(ctrl)
	svc := NewFileValidationService().Wrap(inner)
	ctx := context.Background()

	inner.EXPECT().List(ctx, int64(1)).Return([]models.UploadedFile{}, nil)
	inner.EXPECT().Authorize(ctx, int64(1), int64(2)).Return(models.UploadedFile{FileID: 2}, nil)
	inner.EXPECT().Delete(ctx, int64(1), int64(2)).Return(nil)

	files, err := svc.List(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, files)

	file, err := svc.Authorize(ctx, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(2), file.FileID)

	require.NoError(t, svc.Delete(ctx, 1, 2))
}
