// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/MKhiriev/go-file-keeper/internal/config"
	"github.com/MKhiriev/go-file-keeper/internal/logger"
)

// s3API is the subset of *s3.Client used by s3BlobStorage.
type s3API interface {
	HeadBucket(ctx context.Context, params *s3.HeadBucketInput, optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

// s3BlobStorage keeps every blob as one object in a single bucket. Works
// with AWS and with S3-compatible servers such as MinIO.
type s3BlobStorage struct {
	client s3API
	bucket string
	logger *logger.Logger
}

// NewS3BlobStorage builds an S3 client from cfg and checks that the bucket
// is reachable.
func NewS3BlobStorage(ctx context.Context, cfg config.S3, log *logger.Logger) (BlobStorage, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		log.Err(err).Str("func", "NewS3BlobStorage").Msg("error loading aws config")
		return nil, fmt.Errorf("error loading aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.BaseEndpoint)
			o.UsePathStyle = true
		}
	})

	if _, err = client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(cfg.Bucket)}); err != nil {
		log.Err(err).Str("func", "NewS3BlobStorage").Str("bucket", cfg.Bucket).Msg("bucket is not reachable")
		return nil, fmt.Errorf("bucket %q is not reachable: %w", cfg.Bucket, err)
	}

	log.Info().Str("func", "NewS3BlobStorage").Str("bucket", cfg.Bucket).Msg("s3 blob storage ready")
	return newS3BlobStorage(client, cfg.Bucket, log), nil
}

func newS3BlobStorage(client s3API, bucket string, log *logger.Logger) *s3BlobStorage {
	return &s3BlobStorage{client: client, bucket: bucket, logger: log}
}

// Put uploads r as one object. Unseekable readers are spooled to a
// temporary file first because the request must carry a content length.
func (s *s3BlobStorage) Put(ctx context.Context, key string, r io.Reader) (int64, error) {
	log := logger.FromContext(ctx)

	if key == "" {
		return 0, ErrInvalidStorageKey
	}

	body, size, cleanup, err := seekableBody(r)
	if err != nil {
		log.Err(err).Str("func", "*s3BlobStorage.Put").Str("key", key).Msg("error buffering upload")
		return 0, fmt.Errorf("%w: %w", ErrWritingBlob, err)
	}
	defer cleanup()

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          body,
		ContentLength: aws.Int64(size),
	})
	if err != nil {
		log.Err(err).Str("func", "*s3BlobStorage.Put").Str("key", key).Msg("error putting object")
		return 0, fmt.Errorf("%w: %w", ErrWritingBlob, err)
	}

	return size, nil
}

func (s *s3BlobStorage) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if isS3NotFound(err) {
		return nil, ErrBlobNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*s3BlobStorage.Open").Str("key", key).Msg("error getting object")
		return nil, fmt.Errorf("%w: %w", ErrReadingBlob, err)
	}

	return out.Body, nil
}

// Delete checks for the object first because S3 reports success when
// deleting a missing key.
func (s *s3BlobStorage) Delete(ctx context.Context, key string) error {
	log := logger.FromContext(ctx)

	_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if isS3NotFound(err) {
		return ErrBlobNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "*s3BlobStorage.Delete").Str("key", key).Msg("error checking object")
		return fmt.Errorf("%w: %w", ErrDeletingBlob, err)
	}

	if _, err = s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}); err != nil {
		log.Err(err).Str("func", "*s3BlobStorage.Delete").Str("key", key).Msg("error deleting object")
		return fmt.Errorf("%w: %w", ErrDeletingBlob, err)
	}

	return nil
}

func (s *s3BlobStorage) List(ctx context.Context) ([]BlobInfo, error) {
	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
	})

	blobs := make([]BlobInfo, 0)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			logger.FromContext(ctx).Err(err).Str("func", "*s3BlobStorage.List").Msg("error listing objects")
			return nil, fmt.Errorf("%w: %w", ErrListingBlobs, err)
		}

		for _, object := range page.Contents {
			blobs = append(blobs, BlobInfo{
				Key:     aws.ToString(object.Key),
				Size:    aws.ToInt64(object.Size),
				ModTime: aws.ToTime(object.LastModified),
			})
		}
	}

	return blobs, nil
}

func isS3NotFound(err error) bool {
	if err == nil {
		return false
	}

	var noSuchKey *types.NoSuchKey
	var notFound *types.NotFound
	return errors.As(err, &noSuchKey) || errors.As(err, &notFound)
}

// seekableBody returns r itself when it can seek, otherwise a temporary
// file holding its content. cleanup must always be called.
func seekableBody(r io.Reader) (io.ReadSeeker, int64, func(), error) {
	if rs, ok := r.(io.ReadSeeker); ok {
		size, err := rs.Seek(0, io.SeekEnd)
		if err != nil {
			return nil, 0, func() {}, err
		}
		if _, err = rs.Seek(0, io.SeekStart); err != nil {
			return nil, 0, func() {}, err
		}
		return rs, size, func() {}, nil
	}

	tmp, err := os.CreateTemp("", "go-file-keeper-s3-*")
	if err != nil {
		return nil, 0, func() {}, err
	}
	cleanup := func() {
		tmp.Close()
		os.Remove(tmp.Name())
	}

	size, err := io.Copy(tmp, r)
	if err != nil {
		cleanup()
		return nil, 0, func() {}, err
	}
	if _, err = tmp.Seek(0, io.SeekStart); err != nil {
		cleanup()
		return nil, 0, func() {}, err
	}

	return tmp, size, cleanup, nil
}
