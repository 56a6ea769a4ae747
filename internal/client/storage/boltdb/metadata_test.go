package boltdb

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.etcd.io/bbolt"
)

func TestSaveAndGetLastFetchTimestamp(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStorage(t)

	// Изначально timestamp не сохранён — ожидаем 0
	ts, err := store.GetLastFetchTimestamp(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), ts)

	var expectedTS int64 = 1234567890
	require.NoError(t, store.SaveLastFetchTimestamp(ctx, expectedTS))

	gotTS, err := store.GetLastFetchTimestamp(ctx)
	require.NoError(t, err)
	assert.Equal(t, expectedTS, gotTS)
}

func TestSaveAndGetEncryptionSalt(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStorage(t)

	salt, err := store.GetEncryptionSalt(ctx)
	require.NoError(t, err)
	assert.Nil(t, salt)

	want := []byte("0123456789abcdef0123456789abcdef")
	require.NoError(t, store.SaveEncryptionSalt(ctx, want))

	salt, err = store.GetEncryptionSalt(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, salt)
}

func TestMetadata_BucketMissing(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStorage(t)

	// Удаляем bucket metadata напрямую
	err := store.db.Update(func(tx *bbolt.Tx) error {
		return tx.DeleteBucket(bucketMetadata)
	})
	require.NoError(t, err)

	_, err = store.GetLastFetchTimestamp(ctx)
	assert.ErrorContains(t, err, "metadata bucket not found")

	err = store.SaveLastFetchTimestamp(ctx, 42)
	assert.ErrorContains(t, err, "metadata bucket not found")

	_, err = store.GetEncryptionSalt(ctx)
	assert.ErrorContains(t, err, "metadata bucket not found")

	err = store.SaveEncryptionSalt(ctx, []byte("salt"))
	assert.ErrorContains(t, err, "metadata bucket not found")
}
