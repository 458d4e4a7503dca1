package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/johnquangdev/meeting-minutes/internal/domain/entities"
)

// MemoryStore keeps categories in process memory with expiration
type MemoryStore struct {
	items *gocache.Cache
}

// NewMemoryStore creates an in-memory store; expired items are purged every cleanup interval
func NewMemoryStore(ttl, cleanup time.Duration) *MemoryStore {
	return &MemoryStore{items: gocache.New(ttl, cleanup)}
}

func (ms *MemoryStore) Get(_ context.Context, key string) (*entities.EntityType, bool, error) {
	v, ok := ms.items.Get(key)
	if !ok {
		return nil, false, nil
	}
	t, ok := v.(*entities.EntityType)
	if !ok {
		ms.items.Delete(key)
		return nil, false, nil
	}
	copied := *t
	return &copied, true, nil
}

func (ms *MemoryStore) Set(_ context.Context, key string, value *entities.EntityType) error {
	copied := *value
	ms.items.Set(key, &copied, gocache.DefaultExpiration)
	return nil
}

func (ms *MemoryStore) Delete(_ context.Context, key string) error {
	ms.items.Delete(key)
	return nil
}

// Flush drops every cached entry
func (ms *MemoryStore) Flush() {
	ms.items.Flush()
}
