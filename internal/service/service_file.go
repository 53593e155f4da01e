// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/MKhiriev/go-file-keeper/internal/crypto"
	"github.com/MKhiriev/go-file-keeper/internal/logger"
	"github.com/MKhiriev/go-file-keeper/internal/store"
	"github.com/MKhiriev/go-file-keeper/internal/utils"
	"github.com/MKhiriev/go-file-keeper/models"
)

// storageKeyGenerator produces opaque blob store keys.
type storageKeyGenerator interface {
	StorageKey(fileName string) string
}

// fileService binds the file registry to the blob store.
//
// The registry row is the single source of truth for ownership: a blob
// without a row is unreachable through the API and is eventually reclaimed
// by SweepOrphans.
type fileService struct {
	fileRepository store.FileRepository
	blobStorage    store.BlobStorage
	keyGenerator   crypto.KeyGenerator
	storageKeys    storageKeyGenerator

	logger *logger.Logger
}

func NewFileService(fileRepository store.FileRepository, blobStorage store.BlobStorage, keyGenerator crypto.KeyGenerator, logger *logger.Logger) FileService {
	return &fileService{
		fileRepository: fileRepository,
		blobStorage:    blobStorage,
		keyGenerator:   keyGenerator,
		storageKeys:    utils.NewUUIDGenerator(),
		logger:         logger,
	}
}

// Authorize returns the registry row of fileID if it belongs to userID.
// A missing row and a foreign row both yield ErrForbidden.
func (f *fileService) Authorize(ctx context.Context, userID, fileID int64) (models.UploadedFile, error) {
	file, err := f.fileRepository.GetFile(ctx, fileID)
	if err != nil {
		if errors.Is(err, store.ErrFileNotFound) {
			return models.UploadedFile{}, ErrForbidden
		}
		logger.FromContext(ctx).Err(err).Str("func", "*fileService.Authorize").Int64("file_id", fileID).Msg("file lookup failed")
		return models.UploadedFile{}, fmt.Errorf("file lookup failed: %w", err)
	}

	if file.UserID != userID {
		logger.FromContext(ctx).Warn().
			Int64("file_id", fileID).
			Int64("user_id", userID).
			Msg("access to a foreign file denied")
		return models.UploadedFile{}, ErrForbidden
	}

	return file, nil
}

// Upload writes content to the blob store under a fresh storage key, then
// records ownership in the registry. When the registry insert fails the blob
// is removed again and the insert error is returned.
func (f *fileService) Upload(ctx context.Context, request models.UploadRequest, content io.Reader) (int64, error) {
	log := logger.FromContext(ctx)

	storageKey := f.storageKeys.StorageKey(request.FileName)

	written, err := f.blobStorage.Put(ctx, storageKey, content)
	if err != nil {
		log.Err(err).Str("func", "*fileService.Upload").Str("storage_key", storageKey).Msg("error writing blob")
		return 0, fmt.Errorf("%w: %w", ErrUploadFailed, err)
	}

	encryptionKey, err := f.keyGenerator.GenerateFileKey()
	if err != nil {
		log.Err(err).Str("func", "*fileService.Upload").Msg("error generating file key")
		f.removeBlob(ctx, storageKey)
		return 0, fmt.Errorf("%w: %w", ErrUploadFailed, err)
	}

	saved, err := f.fileRepository.SaveFile(ctx, models.UploadedFile{
		FileName:      request.FileName,
		UserID:        request.UserID,
		StorageKey:    storageKey,
		EncryptionKey: encryptionKey,
		Size:          written,
		ContentType:   request.ContentType,
	})
	if err != nil {
		log.Err(err).Str("func", "*fileService.Upload").Str("storage_key", storageKey).Msg("error saving file record")
		f.removeBlob(ctx, storageKey)
		return 0, fmt.Errorf("%w: %w", ErrUploadFailed, err)
	}

	log.Info().
		Int64("file_id", saved.FileID).
		Int64("user_id", request.UserID).
		Int64("size", written).
		Msg("file uploaded")

	return saved.FileID, nil
}

func (f *fileService) List(ctx context.Context, userID int64) ([]models.UploadedFile, error) {
	files, err := f.fileRepository.ListFiles(ctx, userID)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*fileService.List").Int64("user_id", userID).Msg("error listing files")
		return nil, fmt.Errorf("error listing files: %w", err)
	}

	return files, nil
}

// Download authorizes the caller and opens the blob of fileID. The caller
// must close the returned reader.
func (f *fileService) Download(ctx context.Context, userID, fileID int64) (models.UploadedFile, io.ReadCloser, error) {
	file, err := f.Authorize(ctx, userID, fileID)
	if err != nil {
		return models.UploadedFile{}, nil, err
	}

	content, err := f.openBlob(ctx, file)
	if err != nil {
		return models.UploadedFile{}, nil, err
	}

	return file, content, nil
}

// OpenByStorageKey is the ownership check behind the raw blob route: the
// storage key must belong to a row owned by userID.
func (f *fileService) OpenByStorageKey(ctx context.Context, userID int64, storageKey string) (models.UploadedFile, io.ReadCloser, error) {
	file, err := f.fileRepository.GetFileByStorageKey(ctx, userID, storageKey)
	if err != nil {
		if errors.Is(err, store.ErrFileNotFound) {
			return models.UploadedFile{}, nil, ErrForbidden
		}
		logger.FromContext(ctx).Err(err).Str("func", "*fileService.OpenByStorageKey").Msg("file lookup failed")
		return models.UploadedFile{}, nil, fmt.Errorf("file lookup failed: %w", err)
	}

	content, err := f.openBlob(ctx, file)
	if err != nil {
		return models.UploadedFile{}, nil, err
	}

	return file, content, nil
}

// Delete removes the registry row first and the blob second. Of two
// concurrent deletes exactly one removes the row; the other gets
// ErrForbidden. A blob that cannot be removed afterwards is only logged.
func (f *fileService) Delete(ctx context.Context, userID, fileID int64) error {
	log := logger.FromContext(ctx)

	storageKey, err := f.fileRepository.DeleteFile(ctx, userID, fileID)
	if err != nil {
		if errors.Is(err, store.ErrFileNotFound) {
			return ErrForbidden
		}
		log.Err(err).Str("func", "*fileService.Delete").Int64("file_id", fileID).Msg("error deleting file record")
		return fmt.Errorf("error deleting file record: %w", err)
	}

	if err = f.blobStorage.Delete(context.WithoutCancel(ctx), storageKey); err != nil {
		log.Warn().Err(err).
			Int64("file_id", fileID).
			Str("storage_key", storageKey).
			Msg("file record deleted but blob removal failed")
	}

	return nil
}

// SweepOrphans lists the blob store and removes every blob that is older
// than olderThan and has no registry row.
func (f *fileService) SweepOrphans(ctx context.Context, olderThan time.Time) (int, error) {
	log := logger.FromContext(ctx)

	blobs, err := f.blobStorage.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("error listing blobs: %w", err)
	}

	candidates := make([]string, 0, len(blobs))
	for _, blob := range blobs {
		if blob.ModTime.Before(olderThan) {
			candidates = append(candidates, blob.Key)
		}
	}
	if len(candidates) == 0 {
		return 0, nil
	}

	referenced, err := f.fileRepository.ExistingStorageKeys(ctx, candidates)
	if err != nil {
		return 0, fmt.Errorf("error checking storage keys: %w", err)
	}

	removed := 0
	for _, key := range candidates {
		if _, ok := referenced[key]; ok {
			continue
		}
		if err = f.blobStorage.Delete(ctx, key); err != nil && !errors.Is(err, store.ErrBlobNotFound) {
			log.Warn().Err(err).Str("storage_key", key).Msg("error removing orphan blob")
			continue
		}
		removed++
	}

	return removed, nil
}

func (f *fileService) openBlob(ctx context.Context, file models.UploadedFile) (io.ReadCloser, error) {
	content, err := f.blobStorage.Open(ctx, file.StorageKey)
	if err != nil {
		if errors.Is(err, store.ErrBlobNotFound) {
			logger.FromContext(ctx).Warn().
				Int64("file_id", file.FileID).
				Str("storage_key", file.StorageKey).
				Msg("file record has no blob")
		}
		return nil, fmt.Errorf("error opening blob: %w", err)
	}

	return content, nil
}

func (f *fileService) removeBlob(ctx context.Context, storageKey string) {
	if err := f.blobStorage.Delete(context.WithoutCancel(ctx), storageKey); err != nil {
		logger.FromContext(ctx).Warn().Err(err).Str("storage_key", storageKey).Msg("error removing blob after failed upload")
	}
}
