package proofstore

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocloud.dev/blob/memblob"
)

func newMemStore(t *testing.T) *blobStore {
	t.Helper()

	bucket := memblob.OpenBucket(nil)
	t.Cleanup(func() { bucket.Close() })

	store := NewWithBucket(bucket, slog.New(slog.NewTextHandler(io.Discard, nil)))

	return store.(*blobStore)
}

func TestSaveAndOpenRoundTrip(t *testing.T) {
	store := newMemStore(t)
	ctx := context.Background()

	key, err := store.Save(ctx, "receipt.png", "image/png", strings.NewReader("png-bytes"))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(key, ".png"))

	reader, err := store.Open(ctx, key)
	require.NoError(t, err)
	defer reader.Close()

	content, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(content))
}

func TestSaveGeneratesUniqueKeys(t *testing.T) {
	store := newMemStore(t)
	ctx := context.Background()

	first, err := store.Save(ctx, "a.pdf", "application/pdf", strings.NewReader("one"))
	require.NoError(t, err)
	second, err := store.Save(ctx, "a.pdf", "application/pdf", strings.NewReader("two"))
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestDeleteMissingKeyIsNotAnError(t *testing.T) {
	store := newMemStore(t)

	require.NoError(t, store.Delete(context.Background(), "2026/01/01/nope.png"))
}
