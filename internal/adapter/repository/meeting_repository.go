package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/johnquangdev/meeting-minutes/internal/domain/entities"
	"github.com/johnquangdev/meeting-minutes/internal/domain/repositories"
)

// meetingRepository implements the MeetingRepository interface
type meetingRepository struct {
	db *gorm.DB
}

// NewMeetingRepository creates a new meeting repository
func NewMeetingRepository(db *gorm.DB) repositories.MeetingRepository {
	return &meetingRepository{db: db}
}

// Create creates a new meeting
func (r *meetingRepository) Create(ctx context.Context, meeting *entities.Meeting) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(meeting).Error
}

// GetByID retrieves a meeting with its entities and action items
func (r *meetingRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Meeting, error) {
	var meeting entities.Meeting
	err := r.db.WithContext(ctx).
		Preload("ActionItems", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Where("id = ?", id).
		First(&meeting).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	linked, err := r.ListEntities(ctx, id)
	if err != nil {
		return nil, err
	}
	meeting.Entities = linked
	return &meeting, nil
}

// List returns meetings ordered by date, newest first
func (r *meetingRepository) List(ctx context.Context, opts repositories.ListOptions) ([]*entities.Meeting, error) {
	var meetings []*entities.Meeting
	q := r.db.WithContext(ctx).Order("date DESC").Order("created_at DESC")
	if err := applyPaging(q, opts.Limit, opts.Offset).Find(&meetings).Error; err != nil {
		return nil, err
	}
	return meetings, nil
}

// Update saves the editable meeting fields
func (r *meetingRepository) Update(ctx context.Context, meeting *entities.Meeting) error {
	res := r.db.WithContext(ctx).
		Model(meeting).
		Select("title", "date", "transcript", "summary", "meeting_type_slug", "metadata", "updated_at").
		Updates(meeting)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return entities.ErrMeetingNotFound
	}
	return nil
}

// Delete removes a meeting with its links and action items
func (r *meetingRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	var deleted bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("meeting_id = ?", id).Delete(&entities.MeetingEntity{}).Error; err != nil {
			return err
		}
		if err := tx.Where("meeting_id = ?", id).Delete(&entities.ActionItem{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&entities.Meeting{})
		if res.Error != nil {
			return res.Error
		}
		deleted = res.RowsAffected > 0
		return nil
	})
	if err != nil {
		return false, err
	}
	return deleted, nil
}

// CountByType returns how many meetings reference a meeting type slug
func (r *meetingRepository) CountByType(ctx context.Context, typeSlug string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&entities.Meeting{}).
		Where("meeting_type_slug = ?", typeSlug).
		Count(&n).Error
	return n, err
}

// LinkEntity inserts the (meeting, entity) pair, ignoring an existing one
func (r *meetingRepository) LinkEntity(ctx context.Context, meetingID, entityID uuid.UUID) error {
	link := &entities.MeetingEntity{MeetingID: meetingID, EntityID: entityID}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(link).Error
}

// UnlinkEntity removes the (meeting, entity) pair
func (r *meetingRepository) UnlinkEntity(ctx context.Context, meetingID, entityID uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("meeting_id = ? AND entity_id = ?", meetingID, entityID).
		Delete(&entities.MeetingEntity{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// ListByEntity returns the meetings an entity is linked to, newest first
func (r *meetingRepository) ListByEntity(ctx context.Context, entityID uuid.UUID) ([]*entities.Meeting, error) {
	var meetings []*entities.Meeting
	err := r.db.WithContext(ctx).
		Joins("JOIN meeting_entities me ON me.meeting_id = meetings.id").
		Where("me.entity_id = ?", entityID).
		Order("meetings.date DESC").
		Find(&meetings).Error
	if err != nil {
		return nil, err
	}
	return meetings, nil
}

// ListEntities returns the entities linked to a meeting
func (r *meetingRepository) ListEntities(ctx context.Context, meetingID uuid.UUID) ([]*entities.Entity, error) {
	var list []*entities.Entity
	err := r.db.WithContext(ctx).
		Preload("Type").
		Joins("JOIN meeting_entities me ON me.entity_id = entities.id").
		Where("me.meeting_id = ?", meetingID).
		Order("entities.name ASC").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}
