package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnquangdev/meeting-minutes/internal/domain/entities"
	"github.com/johnquangdev/meeting-minutes/internal/domain/repositories"
	"github.com/johnquangdev/meeting-minutes/internal/testhelper"
)

func newMeeting(t *testing.T, store repositories.Store, title string) *entities.Meeting {
	t.Helper()
	m := &entities.Meeting{Title: title, Date: time.Now().UTC()}
	require.NoError(t, store.Meetings().Create(context.Background(), m))
	return m
}

func newEntity(t *testing.T, store repositories.Store, name, slug string) *entities.Entity {
	t.Helper()
	e := entities.NewEntity(name, slug, nil)
	require.NoError(t, store.Entities().Create(context.Background(), e))
	return e
}

func TestEntityRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("create and lookup", func(t *testing.T) {
		store := testhelper.NewStore(t)
		e := newEntity(t, store, "Acme Corp", entities.EntityTypeCompany)

		byName, err := store.Entities().GetByName(ctx, "Acme Corp")
		require.NoError(t, err)
		require.NotNil(t, byName)
		assert.Equal(t, e.ID, byName.ID)

		byID, err := store.Entities().GetByID(ctx, e.ID)
		require.NoError(t, err)
		require.NotNil(t, byID.Type)
		assert.Equal(t, "Company", byID.Type.Name)

		missing, err := store.Entities().GetByName(ctx, "Nobody")
		require.NoError(t, err)
		assert.Nil(t, missing)
	})

	t.Run("duplicate name is a conflict", func(t *testing.T) {
		store := testhelper.NewStore(t)
		newEntity(t, store, "Acme Corp", entities.EntityTypeCompany)

		err := store.Entities().Create(ctx, entities.NewEntity("Acme Corp", entities.EntityTypeOther, nil))
		require.Error(t, err)
		assert.True(t, errors.Is(err, entities.ErrEntityNameConflict))
	})

	t.Run("list is ordered by creation", func(t *testing.T) {
		store := testhelper.NewStore(t)
		first := newEntity(t, store, "Zeta", entities.EntityTypeOther)
		second := newEntity(t, store, "Alpha", entities.EntityTypeOther)

		list, err := store.Entities().List(ctx, repositories.ListOptions{Limit: 1000})
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, first.ID, list[0].ID)
		assert.Equal(t, second.ID, list[1].ID)

		limited, err := store.Entities().List(ctx, repositories.ListOptions{Limit: 1})
		require.NoError(t, err)
		assert.Len(t, limited, 1)
	})

	t.Run("list recent keeps the newest window in creation order", func(t *testing.T) {
		store := testhelper.NewStore(t)
		base := time.Now().UTC().Add(-time.Hour)
		var created []*entities.Entity
		for i, name := range []string{"Oldest", "Middle", "Newer", "Newest"} {
			e := entities.NewEntity(name, entities.EntityTypeOther, nil)
			e.CreatedAt = base.Add(time.Duration(i) * time.Minute)
			require.NoError(t, store.Entities().Create(ctx, e))
			created = append(created, e)
		}

		recent, err := store.Entities().ListRecent(ctx, 2)
		require.NoError(t, err)
		require.Len(t, recent, 2)
		assert.Equal(t, created[2].ID, recent[0].ID)
		assert.Equal(t, created[3].ID, recent[1].ID)

		all, err := store.Entities().ListRecent(ctx, 0)
		require.NoError(t, err)
		require.Len(t, all, 4)
		assert.Equal(t, created[0].ID, all[0].ID)
	})

	t.Run("update and count by type", func(t *testing.T) {
		store := testhelper.NewStore(t)
		e := newEntity(t, store, "Phoenix", entities.EntityTypeOther)

		e.TypeSlug = entities.EntityTypeProject
		require.NoError(t, store.Entities().Update(ctx, e))

		n, err := store.Entities().CountByType(ctx, entities.EntityTypeProject)
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)

		ghost := entities.NewEntity("Ghost", entities.EntityTypeOther, nil)
		ghost.ID = uuid.New()
		assert.ErrorIs(t, store.Entities().Update(ctx, ghost), entities.ErrEntityNotFound)
	})

	t.Run("delete removes links", func(t *testing.T) {
		store := testhelper.NewStore(t)
		m := newMeeting(t, store, "Kickoff")
		e := newEntity(t, store, "Jane", entities.EntityTypePerson)
		require.NoError(t, store.Meetings().LinkEntity(ctx, m.ID, e.ID))

		deleted, err := store.Entities().Delete(ctx, e.ID)
		require.NoError(t, err)
		assert.True(t, deleted)

		linked, err := store.Meetings().ListEntities(ctx, m.ID)
		require.NoError(t, err)
		assert.Empty(t, linked)

		deleted, err = store.Entities().Delete(ctx, e.ID)
		require.NoError(t, err)
		assert.False(t, deleted)
	})

	t.Run("low usage", func(t *testing.T) {
		store := testhelper.NewStore(t)
		m1 := newMeeting(t, store, "One")
		m2 := newMeeting(t, store, "Two")
		once := newEntity(t, store, "Once", entities.EntityTypeOther)
		twice := newEntity(t, store, "Twice", entities.EntityTypeOther)
		newEntity(t, store, "Never", entities.EntityTypeOther)

		require.NoError(t, store.Meetings().LinkEntity(ctx, m1.ID, once.ID))
		require.NoError(t, store.Meetings().LinkEntity(ctx, m1.ID, twice.ID))
		require.NoError(t, store.Meetings().LinkEntity(ctx, m2.ID, twice.ID))

		rows, err := store.Entities().ListLowUsage(ctx)
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "Once", rows[0].Name)
		assert.Equal(t, int64(1), rows[0].MeetingCount)
	})
}

func TestMeetingRepository_Links(t *testing.T) {
	ctx := context.Background()
	store := testhelper.NewStore(t)

	m := newMeeting(t, store, "Planning")
	assert.Equal(t, entities.DefaultMeetingTypeSlug, m.MeetingTypeSlug)
	e := newEntity(t, store, "Project Phoenix", entities.EntityTypeProject)

	require.NoError(t, store.Meetings().LinkEntity(ctx, m.ID, e.ID))
	require.NoError(t, store.Meetings().LinkEntity(ctx, m.ID, e.ID), "re-linking is a no-op")

	linked, err := store.Meetings().ListEntities(ctx, m.ID)
	require.NoError(t, err)
	require.Len(t, linked, 1)
	assert.Equal(t, e.ID, linked[0].ID)

	meetings, err := store.Meetings().ListByEntity(ctx, e.ID)
	require.NoError(t, err)
	require.Len(t, meetings, 1)
	assert.Equal(t, m.ID, meetings[0].ID)

	removed, err := store.Meetings().UnlinkEntity(ctx, m.ID, e.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = store.Meetings().UnlinkEntity(ctx, m.ID, e.ID)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestMeetingRepository_GetByIDLoadsChildren(t *testing.T) {
	ctx := context.Background()
	store := testhelper.NewStore(t)

	m := newMeeting(t, store, "Retro")
	e := newEntity(t, store, "Lisa", entities.EntityTypePerson)
	require.NoError(t, store.Meetings().LinkEntity(ctx, m.ID, e.ID))
	require.NoError(t, store.ActionItems().Create(ctx, entities.NewActionItem(m.ID, "Write the notes")))

	got, err := store.Meetings().GetByID(ctx, m.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Len(t, got.Entities, 1)
	require.Len(t, got.ActionItems, 1)
	assert.Equal(t, entities.ActionItemStatusPending, got.ActionItems[0].Status)

	deleted, err := store.Meetings().Delete(ctx, m.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	got, err = store.Meetings().GetByID(ctx, m.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestTypeRegistries(t *testing.T) {
	ctx := context.Background()
	store := testhelper.NewStore(t)

	types, err := store.EntityTypes().List(ctx)
	require.NoError(t, err)
	assert.Len(t, types, 4)

	require.NoError(t, store.EntityTypes().EnsureSystemTypes(ctx), "seeding twice is safe")
	types, err = store.EntityTypes().List(ctx)
	require.NoError(t, err)
	assert.Len(t, types, 4)

	general, err := store.MeetingTypes().GetBySlug(ctx, entities.DefaultMeetingTypeSlug)
	require.NoError(t, err)
	require.NotNil(t, general)
	assert.True(t, general.IsSystem)

	err = store.EntityTypes().Create(ctx, &entities.EntityType{Name: "Person", Slug: "person", ColorClass: "x"})
	assert.ErrorIs(t, err, entities.ErrEntityTypeExists)
}

func TestStore_TransactionRollsBack(t *testing.T) {
	ctx := context.Background()
	store := testhelper.NewStore(t)

	boom := errors.New("boom")
	err := store.Transaction(ctx, func(tx repositories.Store) error {
		if err := tx.Entities().Create(ctx, entities.NewEntity("Temp", entities.EntityTypeOther, nil)); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, err := store.Entities().GetByName(ctx, "Temp")
	require.NoError(t, err)
	assert.Nil(t, got)
}
