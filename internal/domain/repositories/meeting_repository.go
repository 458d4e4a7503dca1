package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/johnquangdev/meeting-minutes/internal/domain/entities"
)

// MeetingRepository defines the interface for meeting data access
type MeetingRepository interface {
	// Create inserts a new meeting
	Create(ctx context.Context, meeting *entities.Meeting) error

	// GetByID retrieves a meeting by ID. Returns nil, nil if absent.
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Meeting, error)

	// List returns meetings ordered by date, newest first
	List(ctx context.Context, opts ListOptions) ([]*entities.Meeting, error)

	// Update saves an existing meeting
	Update(ctx context.Context, meeting *entities.Meeting) error

	// Delete removes the meeting with its links and action items. Returns whether it existed.
	Delete(ctx context.Context, id uuid.UUID) (bool, error)

	// CountByType returns how many meetings use the given meeting type slug
	CountByType(ctx context.Context, typeSlug string) (int64, error)

	// LinkEntity records that an entity was mentioned in a meeting. Re-linking is a no-op.
	LinkEntity(ctx context.Context, meetingID, entityID uuid.UUID) error

	// UnlinkEntity removes a link. Returns whether the link existed.
	UnlinkEntity(ctx context.Context, meetingID, entityID uuid.UUID) (bool, error)

	// ListByEntity returns the meetings an entity is linked to
	ListByEntity(ctx context.Context, entityID uuid.UUID) ([]*entities.Meeting, error)

	// ListEntities returns the entities linked to a meeting
	ListEntities(ctx context.Context, meetingID uuid.UUID) ([]*entities.Entity, error)
}

// MeetingTypeRepository defines the interface for meeting type data access
type MeetingTypeRepository interface {
	List(ctx context.Context) ([]*entities.MeetingType, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entities.MeetingType, error)
	GetBySlug(ctx context.Context, slug string) (*entities.MeetingType, error)
	Create(ctx context.Context, meetingType *entities.MeetingType) error
	Update(ctx context.Context, meetingType *entities.MeetingType) error
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	EnsureSystemTypes(ctx context.Context) error
}

// ActionItemRepository defines the interface for action item data access
type ActionItemRepository interface {
	Create(ctx context.Context, item *entities.ActionItem) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.ActionItem, error)
	ListByMeeting(ctx context.Context, meetingID uuid.UUID) ([]*entities.ActionItem, error)
	Update(ctx context.Context, item *entities.ActionItem) error
}
