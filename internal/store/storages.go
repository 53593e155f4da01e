package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-file-keeper/internal/config"
	"github.com/MKhiriev/go-file-keeper/internal/logger"
)

// Storages groups every persistence dependency of the services.
type Storages struct {
	UserRepository UserRepository
	FileRepository FileRepository
	BlobStorage    BlobStorage

	db *DB
}

// NewStorages connects to the database, applies migrations and opens the
// blob store. S3 is used when a bucket is configured, the local upload
// directory otherwise.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	db, err := NewConnect(ctx, cfg.DB, log)
	if err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}

	if err = db.Migrate(); err != nil {
		db.Close()
		return nil, err
	}

	var blobs BlobStorage
	if cfg.S3.Bucket != "" {
		blobs, err = NewS3BlobStorage(ctx, cfg.S3, log)
	} else {
		blobs, err = NewLocalBlobStorage(cfg.Files.UploadDir, log)
	}
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("error opening blob storage: %w", err)
	}

	return &Storages{
		UserRepository: NewUserRepository(db, log),
		FileRepository: NewFileRepository(db, log),
		BlobStorage:    blobs,
		db:             db,
	}, nil
}

// Ping checks the database connection.
func (s *Storages) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close releases the database connection pool.
func (s *Storages) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
