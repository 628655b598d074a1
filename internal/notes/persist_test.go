package notes

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/quicknotes/internal/clock"
	"github.com/iudanet/quicknotes/internal/storage"
)

var errReadFailed = errors.New("read failed")

// newMockKV возвращает мок, по умолчанию работающий поверх Memory
func newMockKV() *storage.KeyValueMock {
	mem := storage.NewMemory()
	return &storage.KeyValueMock{
		GetFunc:    mem.Get,
		SetFunc:    mem.Set,
		DeleteFunc: mem.Delete,
		CloseFunc:  mem.Close,
	}
}

func newMockStore(t *testing.T, kv storage.KeyValue) *Store {
	t.Helper()

	opts := testOptions(clock.NewManual(baseTime))
	opts.NewID = func() string { return "u1" }
	s, err := New(context.Background(), kv, opts)
	require.NoError(t, err)

	return s
}

func setKeys(kv *storage.KeyValueMock) []string {
	var keys []string
	for _, call := range kv.SetCalls() {
		keys = append(keys, call.Key)
	}
	return keys
}

// TestSave_WriteOrder проверяет порядок записей: учетные записи, архив, состояние
func TestSave_WriteOrder(t *testing.T) {
	ctx := context.Background()
	kv := newMockKV()
	s := newMockStore(t, kv)

	_, err := s.Register(ctx, "a@x.com", "secret", "A")
	require.NoError(t, err)
	assert.Equal(t, []string{UsersKey, UserNotesKey("u1"), StateKey}, setKeys(kv))

	_, err = s.CreateNote(ctx, "n", "", "")
	require.NoError(t, err)
	assert.Equal(t, []string{UsersKey, UserNotesKey("u1"), StateKey, UserNotesKey("u1"), StateKey}, setKeys(kv))

	// Без сессии пишется только состояние
	require.NoError(t, s.Logout(ctx))
	keys := setKeys(kv)
	assert.Equal(t, StateKey, keys[len(keys)-1])
	assert.Len(t, keys, 6)
}

// TestSave_ReadFailureWritesNothing проверяет, что ошибка чтения предыдущих
// значений прерывает сохранение до первой записи
func TestSave_ReadFailureWritesNothing(t *testing.T) {
	ctx := context.Background()
	kv := newMockKV()
	s := newMockStore(t, kv)

	_, err := s.Register(ctx, "a@x.com", "secret", "A")
	require.NoError(t, err)
	before := s.State()
	writes := len(kv.SetCalls())

	get := kv.GetFunc
	kv.GetFunc = func(ctx context.Context, key string) ([]byte, error) {
		if key == StateKey {
			return nil, errReadFailed
		}
		return get(ctx, key)
	}

	_, err = s.CreateNote(ctx, "n", "", "")
	require.ErrorIs(t, err, errReadFailed)
	assert.Contains(t, err.Error(), "failed to read state before save")
	assert.Len(t, kv.SetCalls(), writes)
	assert.Equal(t, before, s.State())
}

// TestSave_RestoreFailureKeepsOriginalError проверяет, что ошибка отката
// не подменяет исходную ошибку записи
func TestSave_RestoreFailureKeepsOriginalError(t *testing.T) {
	ctx := context.Background()
	kv := newMockKV()
	s := newMockStore(t, kv)

	set := kv.SetFunc
	kv.SetFunc = func(ctx context.Context, key string, value []byte) error {
		if key == StateKey {
			return errWriteFailed
		}
		return set(ctx, key, value)
	}
	kv.DeleteFunc = func(context.Context, string) error {
		return errors.New("delete failed")
	}

	_, err := s.Register(ctx, "a@x.com", "secret", "A")
	require.ErrorIs(t, err, errWriteFailed)
	assert.Contains(t, err.Error(), "failed to save state")
	assert.Nil(t, s.Session())

	// Откат идет в обратном порядке: сначала архив, потом учетные записи
	calls := kv.DeleteCalls()
	require.Len(t, calls, 2)
	assert.Equal(t, UserNotesKey("u1"), calls[0].Key)
	assert.Equal(t, UsersKey, calls[1].Key)
}

// TestLogin_StorageReadError проверяет, что ошибка хранилища не выдается
// за неверный пароль
func TestLogin_StorageReadError(t *testing.T) {
	ctx := context.Background()
	kv := newMockKV()
	s := newMockStore(t, kv)

	kv.GetFunc = func(context.Context, string) ([]byte, error) {
		return nil, errReadFailed
	}

	_, err := s.Login(ctx, "a@x.com", "secret")
	require.ErrorIs(t, err, errReadFailed)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
	assert.Contains(t, err.Error(), "failed to load users")
	assert.Empty(t, kv.SetCalls())
}
