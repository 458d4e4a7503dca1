package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/johnquangdev/meeting-minutes/internal/domain/entities"
	"github.com/johnquangdev/meeting-minutes/internal/domain/repositories"
)

// meetingTypeRepository implements the MeetingTypeRepository interface
type meetingTypeRepository struct {
	db *gorm.DB
}

// NewMeetingTypeRepository creates a new meeting type repository
func NewMeetingTypeRepository(db *gorm.DB) repositories.MeetingTypeRepository {
	return &meetingTypeRepository{db: db}
}

func (r *meetingTypeRepository) List(ctx context.Context) ([]*entities.MeetingType, error) {
	var list []*entities.MeetingType
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *meetingTypeRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.MeetingType, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *meetingTypeRepository) GetBySlug(ctx context.Context, slug string) (*entities.MeetingType, error) {
	return r.first(ctx, "slug = ?", slug)
}

func (r *meetingTypeRepository) first(ctx context.Context, query string, arg interface{}) (*entities.MeetingType, error) {
	var t entities.MeetingType
	if err := r.db.WithContext(ctx).Where(query, arg).First(&t).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func (r *meetingTypeRepository) Create(ctx context.Context, meetingType *entities.MeetingType) error {
	err := r.db.WithContext(ctx).Create(meetingType).Error
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: %q", entities.ErrMeetingTypeExists, meetingType.Slug)
	}
	return err
}

func (r *meetingTypeRepository) Update(ctx context.Context, meetingType *entities.MeetingType) error {
	res := r.db.WithContext(ctx).
		Model(meetingType).
		Select("name", "description", "summary_instructions", "entity_instructions", "action_item_instructions", "updated_at").
		Updates(meetingType)
	if isUniqueViolation(res.Error) {
		return fmt.Errorf("%w: %q", entities.ErrMeetingTypeExists, meetingType.Name)
	}
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return entities.ErrMeetingTypeNotFound
	}
	return nil
}

func (r *meetingTypeRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.MeetingType{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *meetingTypeRepository) EnsureSystemTypes(ctx context.Context) error {
	for _, t := range entities.SystemMeetingTypes() {
		err := r.db.WithContext(ctx).
			Clauses(clause.OnConflict{DoNothing: true}).
			Create(t).Error
		if err != nil {
			return fmt.Errorf("failed to seed meeting type %s: %w", t.Slug, err)
		}
	}
	return nil
}
