package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSessionLifecycle(t *testing.T) {
	s := New("abc")
	assert.False(t, s.IsAuthenticated())

	s.Authenticate("ada", "editor")
	name, ok := s.Username()
	assert.True(t, ok)
	assert.Equal(t, "ada", name)
	assert.Equal(t, "editor", s.Role())

	s.Clear()
	assert.False(t, s.IsAuthenticated())
	assert.Equal(t, Data{}, s.Data())
}

func TestManagerRoundTrip(t *testing.T) {
	ctx := context.Background()
	m := NewManager(NewMemoryStore(time.Minute), zap.NewNop())

	s, err := m.Start(ctx, "")
	require.NoError(t, err)
	require.NotEmpty(t, s.ID)

	// nothing changed, nothing stored
	require.NoError(t, m.Commit(ctx, s))
	_, ok, _ := m.Store().Load(ctx, s.ID)
	assert.False(t, ok)

	s.Authenticate("ada", "guest")
	require.NoError(t, m.Commit(ctx, s))

	again, err := m.Start(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, s.ID, again.ID)
	assert.True(t, again.IsAuthenticated())

	again.Clear()
	require.NoError(t, m.Commit(ctx, again))

	fresh, err := m.Start(ctx, s.ID)
	require.NoError(t, err)
	assert.NotEqual(t, s.ID, fresh.ID)
	assert.False(t, fresh.IsAuthenticated())
}

func TestMemoryStoreExpiry(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(20 * time.Millisecond)
	require.NoError(t, store.Save(ctx, "id", Data{Username: "ada"}))

	_, ok, _ := store.Load(ctx, "id")
	assert.True(t, ok)

	time.Sleep(50 * time.Millisecond)
	_, ok, _ = store.Load(ctx, "id")
	assert.False(t, ok)
	assert.NoError(t, store.Ping(ctx))
}
