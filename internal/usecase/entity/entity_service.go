package entity

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-minutes/internal/domain/entities"
	"github.com/johnquangdev/meeting-minutes/internal/domain/repositories"
	usecaseErrors "github.com/johnquangdev/meeting-minutes/internal/usecase/errors"
)

// DefaultColorClass is used for categories created without a colour
const DefaultColorClass = "bg-gray-100 text-gray-800 border-gray-200"

// EntityService implements Service
type EntityService struct {
	store       repositories.Store
	classifier  Classifier
	invalidator CategoryInvalidator
	logger      *zap.Logger
}

// Ensure EntityService implements Service interface
var _ Service = (*EntityService)(nil)

// NewEntityService creates a new entity service. classifier and invalidator may be nil.
func NewEntityService(store repositories.Store, classifier Classifier, invalidator CategoryInvalidator, logger *zap.Logger) *EntityService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EntityService{
		store:       store,
		classifier:  classifier,
		invalidator: invalidator,
		logger:      logger,
	}
}

func (s *EntityService) invalidate(ctx context.Context, slug string) {
	if s.invalidator != nil {
		s.invalidator.Invalidate(ctx, slug)
	}
}

func (s *EntityService) ListEntityTypes(ctx context.Context) ([]*entities.EntityType, error) {
	return s.store.EntityTypes().List(ctx)
}

func (s *EntityService) GetEntityType(ctx context.Context, id uuid.UUID) (*entities.EntityType, error) {
	t, err := s.store.EntityTypes().GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get entity type: %w", err)
	}
	if t == nil {
		return nil, entities.ErrEntityTypeNotFound
	}
	return t, nil
}

func (s *EntityService) CreateEntityType(ctx context.Context, input CreateEntityTypeInput) (*entities.EntityType, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, usecaseErrors.ErrEmptyName
	}
	slug := input.Slug
	if slug == "" {
		slug = entities.Slugify(name)
	}
	if slug == "" {
		return nil, fmt.Errorf("%w: cannot derive slug from %q", usecaseErrors.ErrInvalidInput, name)
	}
	color := input.ColorClass
	if color == "" {
		color = DefaultColorClass
	}

	t := &entities.EntityType{
		Name:        name,
		Slug:        slug,
		ColorClass:  color,
		Description: input.Description,
	}
	if err := s.store.EntityTypes().Create(ctx, t); err != nil {
		return nil, err
	}

	s.logger.Info("🏷️ Entity type created", zap.String("slug", t.Slug))
	return t, nil
}

func (s *EntityService) UpdateEntityType(ctx context.Context, id uuid.UUID, input UpdateEntityTypeInput) (*entities.EntityType, error) {
	t, err := s.GetEntityType(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, usecaseErrors.ErrEmptyName
		}
		if t.IsSystem && name != t.Name {
			return nil, entities.ErrSystemEntityType
		}
		t.Name = name
	}
	if input.ColorClass != nil {
		t.ColorClass = *input.ColorClass
	}
	if input.Description != nil {
		t.Description = input.Description
	}

	if err := s.store.EntityTypes().Update(ctx, t); err != nil {
		return nil, err
	}
	s.invalidate(ctx, t.Slug)
	return t, nil
}

func (s *EntityService) DeleteEntityType(ctx context.Context, id uuid.UUID) error {
	t, err := s.GetEntityType(ctx, id)
	if err != nil {
		return err
	}
	if t.IsSystem {
		return entities.ErrSystemEntityType
	}

	n, err := s.store.Entities().CountByType(ctx, t.Slug)
	if err != nil {
		return fmt.Errorf("failed to count entities: %w", err)
	}
	if n > 0 {
		return fmt.Errorf("%w: %d entities use %q", entities.ErrEntityTypeInUse, n, t.Slug)
	}

	if _, err := s.store.EntityTypes().Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete entity type: %w", err)
	}
	s.invalidate(ctx, t.Slug)

	s.logger.Info("🗑️ Entity type deleted", zap.String("slug", t.Slug))
	return nil
}

func (s *EntityService) ListEntities(ctx context.Context, opts repositories.ListOptions) ([]*entities.Entity, error) {
	return s.store.Entities().ListByName(ctx, opts)
}

func (s *EntityService) GetEntity(ctx context.Context, id uuid.UUID) (*entities.Entity, error) {
	e, err := s.store.Entities().GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get entity: %w", err)
	}
	if e == nil {
		return nil, entities.ErrEntityNotFound
	}
	return e, nil
}

// requireType returns ErrEntityTypeNotFound unless slug is registered
func (s *EntityService) requireType(ctx context.Context, slug string) error {
	t, err := s.store.EntityTypes().GetBySlug(ctx, slug)
	if err != nil {
		return fmt.Errorf("failed to get entity type: %w", err)
	}
	if t == nil {
		return fmt.Errorf("%w: %q", entities.ErrEntityTypeNotFound, slug)
	}
	return nil
}

func (s *EntityService) CreateEntity(ctx context.Context, input CreateEntityInput) (*entities.Entity, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, usecaseErrors.ErrEmptyName
	}

	slug := strings.ToLower(strings.TrimSpace(input.TypeSlug))
	if slug == "" {
		slug = entities.EntityTypeOther
		if s.classifier != nil {
			slug = s.classifier.Classify(ctx, name, "")
		}
	}
	if err := s.requireType(ctx, slug); err != nil {
		return nil, err
	}

	e := entities.NewEntity(name, slug, input.Description)
	if err := s.store.Entities().Create(ctx, e); err != nil {
		return nil, err
	}
	return s.GetEntity(ctx, e.ID)
}

func (s *EntityService) UpdateEntity(ctx context.Context, id uuid.UUID, input UpdateEntityInput) (*entities.Entity, error) {
	e, err := s.GetEntity(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, usecaseErrors.ErrEmptyName
		}
		e.Name = name
	}
	if input.TypeSlug != nil && *input.TypeSlug != e.TypeSlug {
		if err := s.requireType(ctx, *input.TypeSlug); err != nil {
			return nil, err
		}
		e.TypeSlug = *input.TypeSlug
	}
	if input.Description != nil {
		e.Description = input.Description
	}
	e.Type = nil

	if err := s.store.Entities().Update(ctx, e); err != nil {
		return nil, err
	}
	return s.GetEntity(ctx, id)
}

func (s *EntityService) DeleteEntity(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.store.Entities().Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete entity: %w", err)
	}
	if !deleted {
		return entities.ErrEntityNotFound
	}
	return nil
}

func (s *EntityService) BulkDelete(ctx context.Context, ids []uuid.UUID) (*BulkResult, error) {
	if len(ids) == 0 {
		return nil, usecaseErrors.ErrEmptySelection
	}

	result := &BulkResult{FailedIDs: []uuid.UUID{}}
	for _, id := range ids {
		if err := s.DeleteEntity(ctx, id); err != nil {
			if !errors.Is(err, entities.ErrEntityNotFound) {
				s.logger.Warn("⚠️ Bulk delete failed for entity", zap.String("entity_id", id.String()), zap.Error(err))
			}
			result.FailedIDs = append(result.FailedIDs, id)
			continue
		}
		result.Count++
	}

	s.logger.Info("🗑️ Bulk delete finished", zap.Int("deleted", result.Count), zap.Int("failed", len(result.FailedIDs)))
	return result, nil
}

func (s *EntityService) BulkUpdateType(ctx context.Context, ids []uuid.UUID, typeSlug string) (*BulkResult, error) {
	if len(ids) == 0 {
		return nil, usecaseErrors.ErrEmptySelection
	}
	if err := s.requireType(ctx, typeSlug); err != nil {
		return nil, err
	}

	result := &BulkResult{FailedIDs: []uuid.UUID{}}
	for _, id := range ids {
		slug := typeSlug
		if _, err := s.UpdateEntity(ctx, id, UpdateEntityInput{TypeSlug: &slug}); err != nil {
			if !errors.Is(err, entities.ErrEntityNotFound) {
				s.logger.Warn("⚠️ Bulk type update failed for entity", zap.String("entity_id", id.String()), zap.Error(err))
			}
			result.FailedIDs = append(result.FailedIDs, id)
			continue
		}
		result.Count++
	}
	return result, nil
}

func (s *EntityService) ListLowUsage(ctx context.Context) ([]*entities.EntityUsage, error) {
	return s.store.Entities().ListLowUsage(ctx)
}

func (s *EntityService) MeetingsOf(ctx context.Context, id uuid.UUID) ([]*entities.Meeting, error) {
	if _, err := s.GetEntity(ctx, id); err != nil {
		return nil, err
	}
	return s.store.Meetings().ListByEntity(ctx, id)
}
