// Package proofstore stages proof-of-payment uploads in a blob bucket
// so the background upload to the order service can re-read them after
// the customer-facing request has finished.
package proofstore

import (
	"context"
	"io"
	"log/slog"
	"path"
	"time"

	"storefront/config"
	"storefront/internal/domain/service"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
	"gocloud.dev/blob"
	"gocloud.dev/gcerrors"

	// Bucket drivers selected by the configured URL scheme.
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/gcsblob"
	_ "gocloud.dev/blob/memblob"
)

type blobStore struct {
	bucket *blob.Bucket
	logger *slog.Logger
}

// Params holds dependencies for the proof store, injected by Fx.
type Params struct {
	fx.In
	fx.Lifecycle

	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

// New opens the configured bucket. Without configuration the store
// falls back to an in-memory bucket, which suffices for development
// but loses staged files on restart.
func New(params Params) (service.ProofStore, error) {
	bucketURL := "mem://"
	if params.Config.ProofStore != nil && params.Config.ProofStore.BucketURL != "" {
		bucketURL = params.Config.ProofStore.BucketURL
	} else {
		params.Logger.Warn("Proof store bucket not configured, using in-memory bucket")
	}

	bucket, err := blob.OpenBucket(params.Ctx, bucketURL)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open proof bucket %s", bucketURL)
	}

	params.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return bucket.Close()
		},
	})

	return &blobStore{bucket: bucket, logger: params.Logger}, nil
}

// NewWithBucket wraps an already-open bucket. Used by tests.
func NewWithBucket(bucket *blob.Bucket, logger *slog.Logger) service.ProofStore {
	return &blobStore{bucket: bucket, logger: logger}
}

// Save writes the file under a generated key and returns that key.
func (s *blobStore) Save(ctx context.Context, fileName, contentType string, content io.Reader) (string, error) {
	key := time.Now().UTC().Format("2006/01/02") + "/" + uuid.New().String() + path.Ext(fileName)

	writer, err := s.bucket.NewWriter(ctx, key, &blob.WriterOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", errors.Wrap(err, "open proof writer")
	}

	if _, err := io.Copy(writer, content); err != nil {
		writer.Close()

		return "", errors.Wrap(err, "write proof content")
	}

	if err := writer.Close(); err != nil {
		return "", errors.Wrap(err, "close proof writer")
	}

	return key, nil
}

// Open reads a previously saved file back.
func (s *blobStore) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	reader, err := s.bucket.NewReader(ctx, key, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "open proof %s", key)
	}

	return reader, nil
}

// Delete removes a staged file. Missing keys are not an error.
func (s *blobStore) Delete(ctx context.Context, key string) error {
	if err := s.bucket.Delete(ctx, key); err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return nil
		}

		return errors.Wrapf(err, "delete proof %s", key)
	}

	return nil
}
