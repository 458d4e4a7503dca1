package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/johnquangdev/meeting-minutes/internal/domain/entities"
)

// ListOptions controls paging for list queries
type ListOptions struct {
	Limit  int
	Offset int
}

// EntityRepository defines the interface for entity data access
type EntityRepository interface {
	// List returns up to opts.Limit entities ordered by creation time, then ID
	List(ctx context.Context, opts ListOptions) ([]*entities.Entity, error)

	// ListRecent returns the newest limit entities, ordered oldest first by
	// creation time, then ID. A limit of zero or less returns every entity.
	ListRecent(ctx context.Context, limit int) ([]*entities.Entity, error)

	// ListByName returns entities ordered by name with their type preloaded
	ListByName(ctx context.Context, opts ListOptions) ([]*entities.Entity, error)

	// GetByID retrieves an entity by ID. Returns nil, nil if absent.
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Entity, error)

	// GetByName retrieves an entity by exact name. Returns nil, nil if absent.
	GetByName(ctx context.Context, name string) (*entities.Entity, error)

	// Create inserts a new entity. Returns entities.ErrEntityNameConflict when the name is taken.
	Create(ctx context.Context, entity *entities.Entity) error

	// Update saves name, type and description of an existing entity
	Update(ctx context.Context, entity *entities.Entity) error

	// Delete removes the entity and all of its meeting links. Returns whether it existed.
	Delete(ctx context.Context, id uuid.UUID) (bool, error)

	// CountByType returns how many entities use the given type slug
	CountByType(ctx context.Context, typeSlug string) (int64, error)

	// ListLowUsage returns entities linked to exactly one meeting
	ListLowUsage(ctx context.Context) ([]*entities.EntityUsage, error)
}

// EntityTypeRepository defines the interface for the entity type registry
type EntityTypeRepository interface {
	// List returns all entity types ordered by name
	List(ctx context.Context) ([]*entities.EntityType, error)

	// GetByID retrieves an entity type by ID. Returns nil, nil if absent.
	GetByID(ctx context.Context, id uuid.UUID) (*entities.EntityType, error)

	// GetBySlug retrieves an entity type by slug. Returns nil, nil if absent.
	GetBySlug(ctx context.Context, slug string) (*entities.EntityType, error)

	// Create inserts a new entity type. Returns entities.ErrEntityTypeExists on conflict.
	Create(ctx context.Context, entityType *entities.EntityType) error

	// Update saves an existing entity type
	Update(ctx context.Context, entityType *entities.EntityType) error

	// Delete removes an entity type. Returns whether it existed.
	Delete(ctx context.Context, id uuid.UUID) (bool, error)

	// EnsureSystemTypes inserts the built-in types that are missing
	EnsureSystemTypes(ctx context.Context) error
}
