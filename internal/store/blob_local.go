package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/MKhiriev/go-file-keeper/internal/logger"
)

// tmpPrefix marks in-progress writes. List never reports such files.
const tmpPrefix = ".upload-"

// localBlobStorage keeps every blob as a single file directly under root.
type localBlobStorage struct {
	root   string
	logger *logger.Logger
}

// NewLocalBlobStorage creates root if needed and returns a [BlobStorage]
// writing into it.
func NewLocalBlobStorage(root string, log *logger.Logger) (BlobStorage, error) {
	if err := os.MkdirAll(root, 0o750); err != nil {
		log.Err(err).Str("func", "NewLocalBlobStorage").Str("root", root).Msg("error creating upload directory")
		return nil, fmt.Errorf("error creating upload directory: %w", err)
	}

	log.Info().Str("func", "NewLocalBlobStorage").Str("root", root).Msg("local blob storage ready")
	return &localBlobStorage{root: root, logger: log}, nil
}

func (l *localBlobStorage) path(key string) (string, error) {
	if key == "" || key == "." || key == ".." ||
		strings.ContainsAny(key, `/\`) || strings.HasPrefix(key, tmpPrefix) {
		return "", ErrInvalidStorageKey
	}

	return filepath.Join(l.root, key), nil
}

// Put writes into a temporary file first and renames it into place, so a
// reader never sees a partial blob.
func (l *localBlobStorage) Put(ctx context.Context, key string, r io.Reader) (int64, error) {
	log := logger.FromContext(ctx)

	target, err := l.path(key)
	if err != nil {
		return 0, err
	}
	if err = ctx.Err(); err != nil {
		return 0, err
	}

	tmp, err := os.CreateTemp(l.root, tmpPrefix+"*")
	if err != nil {
		log.Err(err).Str("func", "*localBlobStorage.Put").Msg("error creating temp file")
		return 0, fmt.Errorf("%w: %w", ErrWritingBlob, err)
	}
	defer os.Remove(tmp.Name()) // no-op after a successful rename

	written, err := io.Copy(tmp, &contextReader{ctx: ctx, r: r})
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		log.Err(err).Str("func", "*localBlobStorage.Put").Str("key", key).Msg("error writing blob")
		return 0, fmt.Errorf("%w: %w", ErrWritingBlob, err)
	}

	if err = os.Rename(tmp.Name(), target); err != nil {
		log.Err(err).Str("func", "*localBlobStorage.Put").Str("key", key).Msg("error moving blob into place")
		return 0, fmt.Errorf("%w: %w", ErrWritingBlob, err)
	}

	return written, nil
}

func (l *localBlobStorage) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	target, err := l.path(key)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(target)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrBlobNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*localBlobStorage.Open").Str("key", key).Msg("error opening blob")
		return nil, fmt.Errorf("%w: %w", ErrReadingBlob, err)
	}

	return file, nil
}

func (l *localBlobStorage) Delete(ctx context.Context, key string) error {
	target, err := l.path(key)
	if err != nil {
		return err
	}

	err = os.Remove(target)
	if errors.Is(err, fs.ErrNotExist) {
		return ErrBlobNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*localBlobStorage.Delete").Str("key", key).Msg("error removing blob")
		return fmt.Errorf("%w: %w", ErrDeletingBlob, err)
	}

	return nil
}

func (l *localBlobStorage) List(ctx context.Context) ([]BlobInfo, error) {
	entries, err := os.ReadDir(l.root)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*localBlobStorage.List").Msg("error reading upload directory")
		return nil, fmt.Errorf("%w: %w", ErrListingBlobs, err)
	}

	blobs := make([]BlobInfo, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), tmpPrefix) {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			// removed between ReadDir and Info
			continue
		}

		blobs = append(blobs, BlobInfo{
			Key:     entry.Name(),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	return blobs, nil
}

// contextReader stops a copy once ctx is done.
type contextReader struct {
	ctx context.Context
	r   io.Reader
}

func (c *contextReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
