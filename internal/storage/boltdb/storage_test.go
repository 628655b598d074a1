package boltdb

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.etcd.io/bbolt"

	"github.com/iudanet/quicknotes/internal/storage"
)

// создаём тестовое BoltDB хранилище во временной директории
func createTestStorage(t *testing.T) *Storage {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "quicknotes_test.db")

	store, err := New(context.Background(), dbPath)
	require.NoError(t, err)
	require.NotNil(t, store)

	t.Cleanup(func() {
		require.NoError(t, store.Close())
	})

	return store
}

func TestNew_Success(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "testdb.db")

	store, err := New(context.Background(), dbPath)
	require.NoError(t, err)
	defer func() {
		require.NoError(t, store.Close())
	}()

	// Проверяем что файл БД действительно создан
	info, err := os.Stat(dbPath)
	require.NoError(t, err)
	assert.False(t, info.IsDir())

	// Проверяем, что бакет существует
	err = store.db.View(func(tx *bbolt.Tx) error {
		if tx.Bucket(bucketKV) == nil {
			return os.ErrNotExist
		}
		return nil
	})
	require.NoError(t, err)
}

func TestNew_InvalidPath(t *testing.T) {
	// Директории не существует - открыть файл нельзя
	invalidPath := filepath.Join(t.TempDir(), "missing", "dir", "db")
	store, err := New(context.Background(), invalidPath)
	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestClose(t *testing.T) {
	store, err := New(context.Background(), filepath.Join(t.TempDir(), "testdb.db"))
	require.NoError(t, err)

	assert.NoError(t, store.Close())
	assert.Nil(t, store.db)

	// Второй вызов Close не должен падать
	assert.NoError(t, store.Close())

	// Операции после закрытия возвращают ErrStorageClosed
	ctx := context.Background()
	_, err = store.Get(ctx, "k")
	assert.ErrorIs(t, err, storage.ErrStorageClosed)
	assert.ErrorIs(t, store.Set(ctx, "k", []byte("v")), storage.ErrStorageClosed)
	assert.ErrorIs(t, store.Delete(ctx, "k"), storage.ErrStorageClosed)
}

func TestStorage_SetGetDelete(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)

	// До сохранения ключа нет
	_, err := store.Get(ctx, "quicknotes-state")
	assert.ErrorIs(t, err, storage.ErrKeyNotFound)

	require.NoError(t, store.Set(ctx, "quicknotes-state", []byte(`{"darkMode":true}`)))

	got, err := store.Get(ctx, "quicknotes-state")
	require.NoError(t, err)
	assert.JSONEq(t, `{"darkMode":true}`, string(got))

	// Перезапись значения
	require.NoError(t, store.Set(ctx, "quicknotes-state", []byte(`{}`)))
	got, err = store.Get(ctx, "quicknotes-state")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{}`), got)

	require.NoError(t, store.Delete(ctx, "quicknotes-state"))
	_, err = store.Get(ctx, "quicknotes-state")
	assert.ErrorIs(t, err, storage.ErrKeyNotFound)

	assert.ErrorIs(t, store.Delete(ctx, "quicknotes-state"), storage.ErrKeyNotFound)
}

func TestStorage_EmptyKey(t *testing.T) {
	store := createTestStorage(t)
	assert.ErrorIs(t, store.Set(context.Background(), "", []byte("x")), storage.ErrEmptyKey)
}

func TestStorage_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "reopen.db")

	store, err := New(ctx, dbPath)
	require.NoError(t, err)
	require.NoError(t, store.Set(ctx, "quicknotes-users", []byte(`[]`)))
	require.NoError(t, store.Close())

	reopened, err := New(ctx, dbPath)
	require.NoError(t, err)
	defer func() {
		require.NoError(t, reopened.Close())
	}()

	got, err := reopened.Get(ctx, "quicknotes-users")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[]`), got)
}
