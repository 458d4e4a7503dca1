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

// entityRepository implements the EntityRepository interface
type entityRepository struct {
	db *gorm.DB
}

// NewEntityRepository creates a new entity repository
func NewEntityRepository(db *gorm.DB) repositories.EntityRepository {
	return &entityRepository{db: db}
}

// List returns entities in creation order so that matching is reproducible
func (r *entityRepository) List(ctx context.Context, opts repositories.ListOptions) ([]*entities.Entity, error) {
	var list []*entities.Entity
	q := r.db.WithContext(ctx).
		Order("created_at ASC").
		Order("id ASC")
	if err := applyPaging(q, opts.Limit, opts.Offset).Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// ListRecent loads the newest window and flips it back to creation order
func (r *entityRepository) ListRecent(ctx context.Context, limit int) ([]*entities.Entity, error) {
	var list []*entities.Entity
	q := r.db.WithContext(ctx).
		Order("created_at DESC").
		Order("id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&list).Error; err != nil {
		return nil, err
	}
	for i, j := 0, len(list)-1; i < j; i, j = i+1, j-1 {
		list[i], list[j] = list[j], list[i]
	}
	return list, nil
}

// ListByName returns entities ordered by name with their type preloaded
func (r *entityRepository) ListByName(ctx context.Context, opts repositories.ListOptions) ([]*entities.Entity, error) {
	var list []*entities.Entity
	q := r.db.WithContext(ctx).
		Preload("Type").
		Order("name ASC")
	if err := applyPaging(q, opts.Limit, opts.Offset).Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// GetByID retrieves an entity by its ID
func (r *entityRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Entity, error) {
	var entity entities.Entity
	err := r.db.WithContext(ctx).
		Preload("Type").
		Where("id = ?", id).
		First(&entity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &entity, nil
}

// GetByName retrieves an entity by its exact name
func (r *entityRepository) GetByName(ctx context.Context, name string) (*entities.Entity, error) {
	var entity entities.Entity
	err := r.db.WithContext(ctx).
		Where("name = ?", name).
		First(&entity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &entity, nil
}

// Create inserts a new entity
func (r *entityRepository) Create(ctx context.Context, entity *entities.Entity) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(entity).Error
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: %q", entities.ErrEntityNameConflict, entity.Name)
	}
	return err
}

// Update saves name, type and description
func (r *entityRepository) Update(ctx context.Context, entity *entities.Entity) error {
	res := r.db.WithContext(ctx).
		Model(entity).
		Select("name", "type_slug", "description", "updated_at").
		Updates(entity)
	if isUniqueViolation(res.Error) {
		return fmt.Errorf("%w: %q", entities.ErrEntityNameConflict, entity.Name)
	}
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return entities.ErrEntityNotFound
	}
	return nil
}

// Delete removes an entity together with its meeting links
func (r *entityRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	var deleted bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("entity_id = ?", id).Delete(&entities.MeetingEntity{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&entities.Entity{})
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

// CountByType returns how many entities reference a type slug
func (r *entityRepository) CountByType(ctx context.Context, typeSlug string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&entities.Entity{}).
		Where("type_slug = ?", typeSlug).
		Count(&n).Error
	return n, err
}

// ListLowUsage returns entities that appear in exactly one meeting
func (r *entityRepository) ListLowUsage(ctx context.Context) ([]*entities.EntityUsage, error) {
	var rows []*entities.EntityUsage
	err := r.db.WithContext(ctx).
		Table("entities").
		Select("entities.*, COUNT(me.meeting_id) AS meeting_count").
		Joins("JOIN meeting_entities me ON me.entity_id = entities.id").
		Group("entities.id").
		Having("COUNT(me.meeting_id) = ?", 1).
		Order("entities.name ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
