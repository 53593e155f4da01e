// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-file-keeper/internal/logger"
	"github.com/MKhiriev/go-file-keeper/models"
)

// fileRepository is the SQL-backed implementation of [FileRepository]. It
// owns the "uploaded_files" table, which binds file ids to owners and blob
// storage keys.
type fileRepository struct {
	*DB
	logger *logger.Logger
}

// NewFileRepository constructs a [FileRepository] backed by db.
func NewFileRepository(db *DB, logger *logger.Logger) FileRepository {
	logger.Debug().Msg("creating file repository")
	return &fileRepository{
		DB:     db,
		logger: logger,
	}
}

// SaveFile inserts the registry row. FileID and CreatedAt are assigned by
// the database and returned through the RETURNING clause.
func (f *fileRepository) SaveFile(ctx context.Context, file models.UploadedFile) (models.UploadedFile, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildInsertFileQuery(f.builder, file)
	if err != nil {
		log.Err(err).Str("func", "*fileRepository.SaveFile").Msg("failed to build query")
		return models.UploadedFile{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if err = f.QueryRowContext(ctx, query, args...).Scan(&file.FileID, dbTime{&file.CreatedAt}); err != nil {
		log.Err(err).
			Str("func", "*fileRepository.SaveFile").
			Int64("user_id", file.UserID).
			Bool("retryable", f.errorClassificator.Classify(err) == Retryable).
			Msg("failed to insert file")
		return models.UploadedFile{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return file, nil
}

// GetFile returns the row with the given id regardless of its owner. The
// caller is responsible for the ownership check.
func (f *fileRepository) GetFile(ctx context.Context, fileID int64) (models.UploadedFile, error) {
	return f.getOne(ctx, sq.Eq{"file_id": fileID})
}

// GetFileByStorageKey returns the row with the given storage key only if it
// belongs to userID.
func (f *fileRepository) GetFileByStorageKey(ctx context.Context, userID int64, storageKey string) (models.UploadedFile, error) {
	return f.getOne(ctx, sq.Eq{"storage_key": storageKey, "user_id": userID})
}

func (f *fileRepository) getOne(ctx context.Context, where sq.Sqlizer) (models.UploadedFile, error) {
	files, err := f.selectFiles(ctx, where)
	if err != nil {
		return models.UploadedFile{}, err
	}
	if len(files) == 0 {
		return models.UploadedFile{}, ErrFileNotFound
	}

	return files[0], nil
}

// ListFiles returns every row owned by userID ordered by file id.
func (f *fileRepository) ListFiles(ctx context.Context, userID int64) ([]models.UploadedFile, error) {
	return f.selectFiles(ctx, sq.Eq{"user_id": userID})
}

func (f *fileRepository) selectFiles(ctx context.Context, where sq.Sqlizer) ([]models.UploadedFile, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectFileQuery(f.builder, where)
	if err != nil {
		log.Err(err).Str("func", "*fileRepository.selectFiles").Msg("failed to build query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := f.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*fileRepository.selectFiles").Msg("failed to select files")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	files := make([]models.UploadedFile, 0)
	for rows.Next() {
		var file models.UploadedFile
		if err := rows.Scan(
			&file.FileID,
			&file.FileName,
			&file.UserID,
			&file.StorageKey,
			&file.EncryptionKey,
			&file.Size,
			&file.ContentType,
			dbTime{&file.CreatedAt},
		); err != nil {
			log.Err(err).Str("func", "*fileRepository.selectFiles").Msg("failed to scan file row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		files = append(files, file)
	}

	if err := rows.Err(); err != nil {
		log.Err(err).Str("func", "*fileRepository.selectFiles").Msg("rows iteration error")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return files, nil
}

// DeleteFile removes the row in one statement conditioned on both id and
// owner, so of two concurrent deletes only one observes the row.
func (f *fileRepository) DeleteFile(ctx context.Context, userID, fileID int64) (string, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildDeleteFileQuery(f.builder, userID, fileID)
	if err != nil {
		log.Err(err).Str("func", "*fileRepository.DeleteFile").Msg("failed to build query")
		return "", fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var storageKey string
	err = f.QueryRowContext(ctx, query, args...).Scan(&storageKey)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrFileNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "*fileRepository.DeleteFile").
			Int64("user_id", userID).
			Int64("file_id", fileID).
			Msg("failed to delete file")
		return "", fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return storageKey, nil
}

// storageKeysChunkSize caps the bind parameters of one storage key lookup,
// well under SQLite's and PostgreSQL's limits.
const storageKeysChunkSize = 500

// ExistingStorageKeys returns which of keys are still referenced by a row.
// Keys are looked up storageKeysChunkSize at a time.
func (f *fileRepository) ExistingStorageKeys(ctx context.Context, keys []string) (map[string]struct{}, error) {
	existing := make(map[string]struct{}, len(keys))

	for chunk := range slices.Chunk(keys, storageKeysChunkSize) {
		if err := f.collectStorageKeys(ctx, chunk, existing); err != nil {
			return nil, err
		}
	}

	return existing, nil
}

func (f *fileRepository) collectStorageKeys(ctx context.Context, keys []string, existing map[string]struct{}) error {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectStorageKeysQuery(f.builder, keys)
	if err != nil {
		log.Err(err).Str("func", "*fileRepository.collectStorageKeys").Msg("failed to build query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := f.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*fileRepository.collectStorageKeys").Int("keys", len(keys)).Msg("failed to select storage keys")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		existing[key] = struct{}{}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return nil
}
