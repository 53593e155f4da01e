package store

import (
	"context"
	"io"
	"time"

	"github.com/MKhiriev/go-file-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// UserRepository is the credential store.
type UserRepository interface {
	// CreateUser inserts a user and returns it with UserID and CreatedAt set.
	// Duplicates yield [ErrUsernameAlreadyExists] or [ErrEmailAlreadyExists].
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	// FindUserByUsername returns [ErrNoUserWasFound] when nothing matches.
	FindUserByUsername(ctx context.Context, username string) (models.User, error)
	// FindUserByEmail returns [ErrNoUserWasFound] when nothing matches.
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	// UpdatePasswordByEmail replaces the stored hash. [ErrNoUserWasFound]
	// when no user has that email.
	UpdatePasswordByEmail(ctx context.Context, email, passwordHash string) error
}

// FileRepository is the ownership registry.
type FileRepository interface {
	// SaveFile inserts a registry row and returns it with FileID and
	// CreatedAt set.
	SaveFile(ctx context.Context, file models.UploadedFile) (models.UploadedFile, error)
	// GetFile looks a row up by id only. [ErrFileNotFound] when absent.
	GetFile(ctx context.Context, fileID int64) (models.UploadedFile, error)
	// GetFileByStorageKey looks a row up by storage key and owner.
	// [ErrFileNotFound] when absent or owned by someone else.
	GetFileByStorageKey(ctx context.Context, userID int64, storageKey string) (models.UploadedFile, error)
	// ListFiles returns the owner's rows ordered by id.
	ListFiles(ctx context.Context, userID int64) ([]models.UploadedFile, error)
	// DeleteFile removes the row only if userID owns it and returns its
	// storage key. [ErrFileNotFound] when no row was removed.
	DeleteFile(ctx context.Context, userID, fileID int64) (string, error)
	// ExistingStorageKeys returns the subset of keys referenced by a row.
	ExistingStorageKeys(ctx context.Context, keys []string) (map[string]struct{}, error)
}

// BlobInfo describes a stored blob.
type BlobInfo struct {
	Key     string
	Size    int64
	ModTime time.Time
}

// BlobStorage stores raw bytes under opaque keys.
type BlobStorage interface {
	// Put stores everything read from r under key and returns the number
	// of bytes written. A partially written blob is never left behind.
	Put(ctx context.Context, key string, r io.Reader) (int64, error)
	// Open returns a reader for the blob. [ErrBlobNotFound] when absent.
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	// Delete removes the blob. [ErrBlobNotFound] when absent.
	Delete(ctx context.Context, key string) error
	// List enumerates every stored blob.
	List(ctx context.Context) ([]BlobInfo, error)
}
