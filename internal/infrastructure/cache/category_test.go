package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnquangdev/meeting-minutes/internal/domain/entities"
)

type countingLookup struct {
	calls int
	types map[string]*entities.EntityType
}

func (l *countingLookup) GetBySlug(_ context.Context, slug string) (*entities.EntityType, error) {
	l.calls++
	return l.types[slug], nil
}

type brokenStore struct{}

func (brokenStore) Get(context.Context, string) (*entities.EntityType, bool, error) {
	return nil, false, errors.New("redis: connection refused")
}
func (brokenStore) Set(context.Context, string, *entities.EntityType) error {
	return errors.New("redis: connection refused")
}
func (brokenStore) Delete(context.Context, string) error {
	return errors.New("redis: connection refused")
}

func TestCategoryCache(t *testing.T) {
	ctx := context.Background()
	person := &entities.EntityType{Name: "Person", Slug: "person"}

	t.Run("hits are served from memory", func(t *testing.T) {
		lookup := &countingLookup{types: map[string]*entities.EntityType{"person": person}}
		c := NewCategoryCache(lookup, NewMemoryStore(time.Minute, time.Minute), nil)

		for i := 0; i < 3; i++ {
			got, err := c.GetBySlug(ctx, "person")
			require.NoError(t, err)
			require.NotNil(t, got)
			assert.Equal(t, "Person", got.Name)
		}
		assert.Equal(t, 1, lookup.calls)
	})

	t.Run("misses are not cached", func(t *testing.T) {
		lookup := &countingLookup{types: map[string]*entities.EntityType{}}
		c := NewCategoryCache(lookup, NewMemoryStore(time.Minute, time.Minute), nil)

		got, err := c.GetBySlug(ctx, "vendor")
		require.NoError(t, err)
		assert.Nil(t, got)

		lookup.types["vendor"] = &entities.EntityType{Slug: "vendor"}
		got, err = c.GetBySlug(ctx, "vendor")
		require.NoError(t, err)
		assert.NotNil(t, got)
	})

	t.Run("invalidate forces a reload", func(t *testing.T) {
		lookup := &countingLookup{types: map[string]*entities.EntityType{"person": person}}
		c := NewCategoryCache(lookup, NewMemoryStore(time.Minute, time.Minute), nil)

		_, _ = c.GetBySlug(ctx, "person")
		c.Invalidate(ctx, "person")
		_, _ = c.GetBySlug(ctx, "person")
		assert.Equal(t, 2, lookup.calls)
	})

	t.Run("broken store falls back to source", func(t *testing.T) {
		lookup := &countingLookup{types: map[string]*entities.EntityType{"person": person}}
		c := NewCategoryCache(lookup, brokenStore{}, nil)

		got, err := c.GetBySlug(ctx, "person")
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.NotPanics(t, func() { c.Invalidate(ctx, "person") })
	})

	t.Run("cached values are copies", func(t *testing.T) {
		store := NewMemoryStore(time.Minute, time.Minute)
		require.NoError(t, store.Set(ctx, "person", person))

		got, ok, err := store.Get(ctx, "person")
		require.NoError(t, err)
		require.True(t, ok)
		got.Name = "Mutated"

		again, _, _ := store.Get(ctx, "person")
		assert.Equal(t, "Person", again.Name)
	})
}
