package resolver

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnquangdev/meeting-minutes/internal/domain/entities"
	"github.com/johnquangdev/meeting-minutes/internal/domain/repositories"
	"github.com/johnquangdev/meeting-minutes/internal/testhelper"
)

// failingDeleteStore refuses to delete entities, inside or outside a transaction
type failingDeleteStore struct {
	repositories.Store
}

func (s failingDeleteStore) Entities() repositories.EntityRepository {
	return failingDelete{s.Store.Entities()}
}

func (s failingDeleteStore) Transaction(ctx context.Context, fn func(tx repositories.Store) error) error {
	return s.Store.Transaction(ctx, func(tx repositories.Store) error {
		return fn(failingDeleteStore{tx})
	})
}

type failingDelete struct {
	repositories.EntityRepository
}

func (failingDelete) Delete(context.Context, uuid.UUID) (bool, error) {
	return false, errors.New("delete refused")
}

func TestMerge(t *testing.T) {
	ctx := context.Background()

	t.Run("moves links and deletes source", func(t *testing.T) {
		store := testhelper.NewStore(t)
		svc := NewService(store, DefaultConfig(), nil, nil, nil)

		source := createEntity(t, store, "Acme", entities.EntityTypeCompany)
		target := createEntity(t, store, "Acme Corp", entities.EntityTypeCompany)
		shared := createMeeting(t, store)
		onlySource := createMeeting(t, store)
		require.NoError(t, store.Meetings().LinkEntity(ctx, shared, source.ID))
		require.NoError(t, store.Meetings().LinkEntity(ctx, shared, target.ID))
		require.NoError(t, store.Meetings().LinkEntity(ctx, onlySource, source.ID))

		merged, err := svc.Merge(ctx, source.ID, target.ID)
		require.NoError(t, err)
		assert.True(t, merged)

		gone, err := store.Entities().GetByID(ctx, source.ID)
		require.NoError(t, err)
		assert.Nil(t, gone)

		meetings, err := store.Meetings().ListByEntity(ctx, target.ID)
		require.NoError(t, err)
		ids := []uuid.UUID{}
		for _, m := range meetings {
			ids = append(ids, m.ID)
		}
		assert.ElementsMatch(t, []uuid.UUID{shared, onlySource}, ids, "target linked once per meeting")

		dangling, err := store.Meetings().ListByEntity(ctx, source.ID)
		require.NoError(t, err)
		assert.Empty(t, dangling)
	})

	t.Run("missing entity is rejected", func(t *testing.T) {
		store := testhelper.NewStore(t)
		svc := NewService(store, DefaultConfig(), nil, nil, nil)
		target := createEntity(t, store, "Acme Corp", entities.EntityTypeCompany)

		merged, err := svc.Merge(ctx, uuid.New(), target.ID)
		require.NoError(t, err)
		assert.False(t, merged)

		merged, err = svc.Merge(ctx, target.ID, uuid.New())
		require.NoError(t, err)
		assert.False(t, merged)

		still, err := store.Entities().GetByID(ctx, target.ID)
		require.NoError(t, err)
		assert.NotNil(t, still, "target is never deleted")
	})

	t.Run("merging into itself is rejected", func(t *testing.T) {
		store := testhelper.NewStore(t)
		svc := NewService(store, DefaultConfig(), nil, nil, nil)
		e := createEntity(t, store, "Acme Corp", entities.EntityTypeCompany)

		merged, err := svc.Merge(ctx, e.ID, e.ID)
		require.NoError(t, err)
		assert.False(t, merged)
		assert.Equal(t, 1, countEntities(t, store))
	})

	t.Run("store failure rolls back", func(t *testing.T) {
		store := testhelper.NewStore(t)
		source := createEntity(t, store, "Acme", entities.EntityTypeCompany)
		target := createEntity(t, store, "Acme Corp", entities.EntityTypeCompany)
		meetingID := createMeeting(t, store)
		require.NoError(t, store.Meetings().LinkEntity(ctx, meetingID, source.ID))

		svc := NewService(failingDeleteStore{store}, DefaultConfig(), nil, nil, nil)
		merged, err := svc.Merge(ctx, source.ID, target.ID)
		assert.Error(t, err)
		assert.False(t, merged)

		linked, err := store.Meetings().ListEntities(ctx, meetingID)
		require.NoError(t, err)
		require.Len(t, linked, 1)
		assert.Equal(t, source.ID, linked[0].ID, "links are restored on rollback")
	})
}

func TestSuggestMerges(t *testing.T) {
	ctx := context.Background()

	t.Run("same category pairs between floor and threshold", func(t *testing.T) {
		store := testhelper.NewStore(t)
		svc := NewService(store, DefaultConfig(), nil, nil, nil)

		createEntity(t, store, "Globex", entities.EntityTypeCompany)
		createEntity(t, store, "Globex Ltd", entities.EntityTypeCompany)
		createEntity(t, store, "Atlas", entities.EntityTypeOther)
		createEntity(t, store, "Atlas v2", entities.EntityTypeOther)
		createEntity(t, store, "Vega Team", entities.EntityTypeOther)
		createEntity(t, store, "Vega Teams", entities.EntityTypeOther)
		createEntity(t, store, "Orion", entities.EntityTypeProject)
		createEntity(t, store, "Orion X", entities.EntityTypeOther)

		got, err := svc.SuggestMerges(ctx)
		require.NoError(t, err)
		require.Len(t, got, 2)

		assert.Equal(t, "Atlas", got[0].Source.Name)
		assert.Equal(t, "Atlas v2", got[0].Target.Name)
		assert.InDelta(t, 0.625, got[0].Similarity, 1e-9)

		assert.Equal(t, "Globex", got[1].Source.Name)
		assert.Equal(t, "Globex Ltd", got[1].Target.Name)
		assert.InDelta(t, 0.6, got[1].Similarity, 1e-9, "floor is inclusive")
	})

	t.Run("limited and sorted", func(t *testing.T) {
		store := testhelper.NewStore(t)
		cfg := DefaultConfig()
		cfg.SuggestionLimit = 1
		svc := NewService(store, cfg, nil, nil, nil)

		createEntity(t, store, "Globex", entities.EntityTypeCompany)
		createEntity(t, store, "Globex Ltd", entities.EntityTypeCompany)
		createEntity(t, store, "Atlas", entities.EntityTypeOther)
		createEntity(t, store, "Atlas v2", entities.EntityTypeOther)

		got, err := svc.SuggestMerges(ctx)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Atlas", got[0].Source.Name)
	})

	t.Run("empty registry", func(t *testing.T) {
		store := testhelper.NewStore(t)
		svc := NewService(store, DefaultConfig(), nil, nil, nil)

		got, err := svc.SuggestMerges(ctx)
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}
