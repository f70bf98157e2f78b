package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMemory(t *testing.T) *Memory {
	m := NewMemory()
	t.Cleanup(func() { _ = m.Close() })
	return m
}

func TestMemory_SetGetInvalidate(t *testing.T) {
	m := newTestMemory(t)
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, "k", testStruct{Country: "NO", Count: 2}, time.Minute))

	var out testStruct
	found, err := m.Get(ctx, "k", &out)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "NO", out.Country)

	require.NoError(t, m.Invalidate(ctx, "k"))
	found, err = m.Get(ctx, "k", &out)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestMemory_Expiration(t *testing.T) {
	m := newTestMemory(t)
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, "k", "v", 50*time.Millisecond))
	time.Sleep(100 * time.Millisecond)

	var out string
	found, err := m.Get(ctx, "k", &out)
	require.NoError(t, err)
	assert.False(t, found)
}

// Запись, которую больше никто не читает, удаляется без обращения к ней.
func TestMemory_SweepsUnreadEntries(t *testing.T) {
	m := newTestMemory(t)
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, "board:a", "v", 30*time.Millisecond))
	require.NoError(t, m.Set(ctx, "board:b", "v", 30*time.Millisecond))
	require.NoError(t, m.Set(ctx, "board:c", "v", time.Hour))
	require.Equal(t, 3, m.Len())

	assert.Eventually(t, func() bool { return m.Len() == 1 }, 2*time.Second, 10*time.Millisecond)
}

func TestMemory_NoExpiration(t *testing.T) {
	m := newTestMemory(t)
	ctx := context.Background()
	require.NoError(t, m.Set(ctx, "k", "v", 0))

	var out string
	found, err := m.Get(ctx, "k", &out)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "v", out)
}

func TestMemory_CloseTwice(t *testing.T) {
	m := NewMemory()
	require.NoError(t, m.Close())
	require.NoError(t, m.Close())
}

func TestMemory_DecodeError(t *testing.T) {
	m := newTestMemory(t)
	ctx := context.Background()
	require.NoError(t, m.Set(ctx, "k", "text", time.Minute))

	var out testStruct
	_, err := m.Get(ctx, "k", &out)
	assert.Error(t, err)
}
