package cache

import (
	"context"

	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-minutes/internal/domain/entities"
)

// Store is a key/value backend for cached categories
type Store interface {
	Get(ctx context.Context, key string) (*entities.EntityType, bool, error)
	Set(ctx context.Context, key string, value *entities.EntityType) error
	Delete(ctx context.Context, key string) error
}

// SlugLookup is the uncached category source
type SlugLookup interface {
	GetBySlug(ctx context.Context, slug string) (*entities.EntityType, error)
}

// CategoryCache is a read-through cache for category lookups by slug.
// Only hits are cached, so newly created categories are visible immediately.
type CategoryCache struct {
	next   SlugLookup
	store  Store
	logger *zap.Logger
}

// NewCategoryCache wraps next with store
func NewCategoryCache(next SlugLookup, store Store, logger *zap.Logger) *CategoryCache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CategoryCache{next: next, store: store, logger: logger}
}

// GetBySlug returns the cached category or loads it from the source.
// Cache failures fall back to the source.
func (c *CategoryCache) GetBySlug(ctx context.Context, slug string) (*entities.EntityType, error) {
	if t, ok, err := c.store.Get(ctx, slug); err != nil {
		c.logger.Warn("⚠️ Category cache read failed", zap.String("slug", slug), zap.Error(err))
	} else if ok {
		return t, nil
	}

	t, err := c.next.GetBySlug(ctx, slug)
	if err != nil || t == nil {
		return t, err
	}

	if err := c.store.Set(ctx, slug, t); err != nil {
		c.logger.Warn("⚠️ Category cache write failed", zap.String("slug", slug), zap.Error(err))
	}
	return t, nil
}

// Invalidate drops a slug after its category changed or was deleted
func (c *CategoryCache) Invalidate(ctx context.Context, slug string) {
	if err := c.store.Delete(ctx, slug); err != nil {
		c.logger.Warn("⚠️ Category cache invalidation failed", zap.String("slug", slug), zap.Error(err))
	}
}
