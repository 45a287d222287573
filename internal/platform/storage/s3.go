// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package storage is the object store holding formula images.

Blobs live in a single S3-compatible bucket and are served from a public base
URL laid out as <publicBase>/<bucket>/<path>. The same layout is parsed back
to recover a blob path from a stored image URL.

Uploads are retried with exponential backoff on transient failures; client
errors (4xx) fail immediately.
*/
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/avast/retry-go"
	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/taibuivan/formulary/internal/platform/config"
	"github.com/taibuivan/formulary/internal/platform/constants"
)

// S3Storage uploads, deletes and locates blobs in an S3-compatible bucket.
type S3Storage struct {
	*Locator

	client *s3.Client
	logger *slog.Logger
}

// NewS3Storage builds a client from configuration. Static credentials are used
// when both key and secret are set; otherwise the default AWS chain applies.
func NewS3Storage(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*S3Storage, error) {
	locator, err := NewLocator(cfg.S3PublicBaseURL, cfg.S3Bucket)
	if err != nil {
		return nil, err
	}

	options := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.S3Region),
	}

	accessKey := strings.TrimSpace(cfg.S3AccessKeyID)
	secretKey := strings.TrimSpace(cfg.S3SecretKey)
	if accessKey != "" && secretKey != "" {
		options = append(options, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(accessKey, secretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, options...)
	if err != nil {
		return nil, fmt.Errorf("storage: load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.S3UsePathStyle
		if cfg.S3Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3Endpoint)
		}
		// Backoff is owned by Upload.
		o.RetryMaxAttempts = 1
	})

	return &S3Storage{
		Locator: locator,
		client:  client,
		logger:  logger.With(slog.String("component", "s3-storage")),
	}, nil
}

/*
Upload stores data under path with the given content type.

Up to [constants.UploadAttempts] tries are made. The body is rebuilt for
every attempt so a partial write never leaks into the next one.
*/
func (s *S3Storage) Upload(ctx context.Context, path string, data []byte, contentType string) error {
	return retry.Do(
		func() error {
			_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
				Bucket:        aws.String(s.bucket),
				Key:           aws.String(path),
				Body:          bytes.NewReader(data),
				ContentLength: aws.Int64(int64(len(data))),
				ContentType:   aws.String(contentType),
			})
			if err != nil && !transient(err) {
				return retry.Unrecoverable(err)
			}
			return err
		},
		retry.Context(ctx),
		retry.Attempts(constants.UploadAttempts),
		retry.Delay(constants.UploadRetryDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			s.logger.Warn("blob_upload_retry",
				slog.String("path", path),
				slog.Uint64("attempt", uint64(n+1)),
				slog.Any("error", err),
			)
		}),
	)
}

// Delete removes the given paths in one batch. Missing objects are not an error.
func (s *S3Storage) Delete(ctx context.Context, paths ...string) error {
	if len(paths) == 0 {
		return nil
	}

	objects := make([]types.ObjectIdentifier, 0, len(paths))
	for _, path := range paths {
		objects = append(objects, types.ObjectIdentifier{Key: aws.String(path)})
	}

	out, err := s.client.DeleteObjects(ctx, &s3.DeleteObjectsInput{
		Bucket: aws.String(s.bucket),
		Delete: &types.Delete{Objects: objects, Quiet: aws.Bool(true)},
	})
	if err != nil {
		return fmt.Errorf("storage: delete objects: %w", err)
	}

	if len(out.Errors) > 0 {
		first := out.Errors[0]
		return fmt.Errorf("storage: delete %s: %s", aws.ToString(first.Key), aws.ToString(first.Message))
	}

	return nil
}

// Health performs a HeadBucket request.
func (s *S3Storage) Health(ctx context.Context) error {
	_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(s.bucket)})
	return err
}

// transient reports whether a failed call is worth retrying.
func transient(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var responseError *awshttp.ResponseError
	if errors.As(err, &responseError) {
		status := responseError.HTTPStatusCode()
		return status >= http.StatusInternalServerError ||
			status == http.StatusTooManyRequests ||
			status == http.StatusRequestTimeout
	}

	// No HTTP response at all: network level failure.
	return true
}
