package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/johnquangdev/meeting-minutes/internal/domain/repositories"
)

// gormStore implements repositories.Store on a single gorm handle
type gormStore struct {
	db *gorm.DB
}

// NewStore creates a store whose repositories share db
func NewStore(db *gorm.DB) repositories.Store {
	return &gormStore{db: db}
}

func (s *gormStore) Entities() repositories.EntityRepository {
	return NewEntityRepository(s.db)
}

func (s *gormStore) EntityTypes() repositories.EntityTypeRepository {
	return NewEntityTypeRepository(s.db)
}

func (s *gormStore) Meetings() repositories.MeetingRepository {
	return NewMeetingRepository(s.db)
}

func (s *gormStore) MeetingTypes() repositories.MeetingTypeRepository {
	return NewMeetingTypeRepository(s.db)
}

func (s *gormStore) ActionItems() repositories.ActionItemRepository {
	return NewActionItemRepository(s.db)
}

// Transaction runs fn with a store bound to one database transaction
func (s *gormStore) Transaction(ctx context.Context, fn func(tx repositories.Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormStore{db: tx})
	})
}
