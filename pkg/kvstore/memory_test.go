package kvstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_GetMissingKey(t *testing.T) {
	s := NewMemoryStore()

	_, err := s.Get(context.Background(), "cart:u1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_SetGetDelete(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "favorites:u1", []byte(`[{"id":1}]`)))

	value, err := s.Get(ctx, "favorites:u1")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[{"id":1}]`), value)

	require.NoError(t, s.Delete(ctx, "favorites:u1"))
	_, err = s.Get(ctx, "favorites:u1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_CopiesOnWriteAndRead(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	payload := []byte("original")
	require.NoError(t, s.Set(ctx, "k", payload))
	payload[0] = 'X'

	got, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("original"), got)

	got[0] = 'Y'
	again, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("original"), again)
}

func TestMemoryStore_DeleteMissingKeyIsNoOp(t *testing.T) {
	s := NewMemoryStore()
	assert.NoError(t, s.Delete(context.Background(), "nope"))
}
