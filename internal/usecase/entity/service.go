package entity

import (
	"context"

	"github.com/google/uuid"

	"github.com/johnquangdev/meeting-minutes/internal/domain/entities"
	"github.com/johnquangdev/meeting-minutes/internal/domain/repositories"
)

// Service defines the interface for entity and entity type management
type Service interface {
	// ListEntityTypes returns the registry ordered by name
	ListEntityTypes(ctx context.Context) ([]*entities.EntityType, error)

	// GetEntityType retrieves a registry entry by ID
	GetEntityType(ctx context.Context, id uuid.UUID) (*entities.EntityType, error)

	// CreateEntityType adds a user-defined category
	CreateEntityType(ctx context.Context, input CreateEntityTypeInput) (*entities.EntityType, error)

	// UpdateEntityType changes display fields; system types keep their name
	UpdateEntityType(ctx context.Context, id uuid.UUID, input UpdateEntityTypeInput) (*entities.EntityType, error)

	// DeleteEntityType removes an unused, user-defined category
	DeleteEntityType(ctx context.Context, id uuid.UUID) error

	// ListEntities returns entities ordered by name
	ListEntities(ctx context.Context, opts repositories.ListOptions) ([]*entities.Entity, error)

	// GetEntity retrieves an entity by ID
	GetEntity(ctx context.Context, id uuid.UUID) (*entities.Entity, error)

	// CreateEntity creates an entity; an empty type is classified from the name
	CreateEntity(ctx context.Context, input CreateEntityInput) (*entities.Entity, error)

	// UpdateEntity changes name, type or description
	UpdateEntity(ctx context.Context, id uuid.UUID, input UpdateEntityInput) (*entities.Entity, error)

	// DeleteEntity removes an entity and its meeting links
	DeleteEntity(ctx context.Context, id uuid.UUID) error

	// BulkDelete deletes each entity independently
	BulkDelete(ctx context.Context, ids []uuid.UUID) (*BulkResult, error)

	// BulkUpdateType moves each entity to the given category independently
	BulkUpdateType(ctx context.Context, ids []uuid.UUID, typeSlug string) (*BulkResult, error)

	// ListLowUsage returns entities that appear in exactly one meeting
	ListLowUsage(ctx context.Context) ([]*entities.EntityUsage, error)

	// MeetingsOf returns the meetings an entity is linked to
	MeetingsOf(ctx context.Context, id uuid.UUID) ([]*entities.Meeting, error)
}

// Classifier picks a category for a new entity name
type Classifier interface {
	Classify(ctx context.Context, name, hint string) string
}

// CategoryInvalidator drops cached categories after they change
type CategoryInvalidator interface {
	Invalidate(ctx context.Context, slug string)
}

// CreateEntityTypeInput represents input for creating an entity type
type CreateEntityTypeInput struct {
	Name        string
	Slug        string
	ColorClass  string
	Description *string
}

// UpdateEntityTypeInput represents a partial entity type update
type UpdateEntityTypeInput struct {
	Name        *string
	ColorClass  *string
	Description *string
}

// CreateEntityInput represents input for creating an entity
type CreateEntityInput struct {
	Name        string
	TypeSlug    string
	Description *string
}

// UpdateEntityInput represents a partial entity update
type UpdateEntityInput struct {
	Name        *string
	TypeSlug    *string
	Description *string
}

// BulkResult reports how many items a bulk operation changed and which failed
type BulkResult struct {
	Count     int         `json:"count"`
	FailedIDs []uuid.UUID `json:"failed_ids"`
}
