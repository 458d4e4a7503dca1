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

// entityTypeRepository implements the EntityTypeRepository interface
type entityTypeRepository struct {
	db *gorm.DB
}

// NewEntityTypeRepository creates a new entity type repository
func NewEntityTypeRepository(db *gorm.DB) repositories.EntityTypeRepository {
	return &entityTypeRepository{db: db}
}

func (r *entityTypeRepository) List(ctx context.Context) ([]*entities.EntityType, error) {
	var list []*entities.EntityType
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *entityTypeRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.EntityType, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *entityTypeRepository) GetBySlug(ctx context.Context, slug string) (*entities.EntityType, error) {
	return r.first(ctx, "slug = ?", slug)
}

func (r *entityTypeRepository) first(ctx context.Context, query string, arg interface{}) (*entities.EntityType, error) {
	var t entities.EntityType
	if err := r.db.WithContext(ctx).Where(query, arg).First(&t).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func (r *entityTypeRepository) Create(ctx context.Context, entityType *entities.EntityType) error {
	err := r.db.WithContext(ctx).Create(entityType).Error
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: %q", entities.ErrEntityTypeExists, entityType.Slug)
	}
	return err
}

func (r *entityTypeRepository) Update(ctx context.Context, entityType *entities.EntityType) error {
	res := r.db.WithContext(ctx).
		Model(entityType).
		Select("name", "color_class", "description", "updated_at").
		Updates(entityType)
	if isUniqueViolation(res.Error) {
		return fmt.Errorf("%w: %q", entities.ErrEntityTypeExists, entityType.Name)
	}
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return entities.ErrEntityTypeNotFound
	}
	return nil
}

func (r *entityTypeRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.EntityType{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// EnsureSystemTypes inserts missing built-in types and leaves existing rows untouched
func (r *entityTypeRepository) EnsureSystemTypes(ctx context.Context) error {
	for _, t := range entities.SystemEntityTypes() {
		err := r.db.WithContext(ctx).
			Clauses(clause.OnConflict{DoNothing: true}).
			Create(t).Error
		if err != nil {
			return fmt.Errorf("failed to seed entity type %s: %w", t.Slug, err)
		}
	}
	return nil
}
