package session

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"
)

// MemoryStore keeps sessions in process. Suitable for a single instance.
type MemoryStore struct {
	cache *cache.Cache
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{cache: cache.New(ttl, ttl/2)}
}

func (m *MemoryStore) Load(_ context.Context, id string) (Data, bool, error) {
	v, ok := m.cache.Get(id)
	if !ok {
		return Data{}, false, nil
	}
	return v.(Data), true, nil
}

func (m *MemoryStore) Save(_ context.Context, id string, data Data) error {
	m.cache.SetDefault(id, data)
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.cache.Delete(id)
	return nil
}

func (m *MemoryStore) Ping(context.Context) error {
	return nil
}
