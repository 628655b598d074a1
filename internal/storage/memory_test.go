package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_SetGetDelete(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	_, err := m.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrKeyNotFound)

	value := []byte("v1")
	require.NoError(t, m.Set(ctx, "k", value))

	// Изменение исходного среза не должно влиять на сохраненное значение
	value[0] = 'X'
	got, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v1"), got)

	require.NoError(t, m.Set(ctx, "k", []byte("v2")))
	got, err = m.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v2"), got)

	require.NoError(t, m.Delete(ctx, "k"))
	assert.ErrorIs(t, m.Delete(ctx, "k"), ErrKeyNotFound)

	assert.ErrorIs(t, m.Set(ctx, "", []byte("x")), ErrEmptyKey)
}

func TestMemory_Closed(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	require.NoError(t, m.Close())

	_, err := m.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrStorageClosed)
	assert.ErrorIs(t, m.Set(ctx, "k", nil), ErrStorageClosed)
	assert.ErrorIs(t, m.Delete(ctx, "k"), ErrStorageClosed)
}
