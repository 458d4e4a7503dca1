package meeting

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/johnquangdev/meeting-minutes/internal/domain/entities"
	"github.com/johnquangdev/meeting-minutes/internal/domain/repositories"
	"github.com/johnquangdev/meeting-minutes/internal/usecase/resolver"
)

// Service defines the interface for meeting use cases
type Service interface {
	// Process generates summary, entities and action items for a transcript and stores the meeting
	Process(ctx context.Context, input ProcessInput) (*ProcessResult, error)

	// SuggestTitle proposes a short title for a transcript. It never fails.
	SuggestTitle(ctx context.Context, transcript string) string

	// CreateMeeting stores a meeting without generation
	CreateMeeting(ctx context.Context, input CreateMeetingInput) (*entities.Meeting, error)

	// GetMeeting retrieves a meeting with its entities and action items
	GetMeeting(ctx context.Context, id uuid.UUID) (*entities.Meeting, error)

	// ListMeetings returns meetings newest first
	ListMeetings(ctx context.Context, opts repositories.ListOptions) ([]*entities.Meeting, error)

	// UpdateMeeting applies a partial update
	UpdateMeeting(ctx context.Context, id uuid.UUID, input UpdateMeetingInput) (*entities.Meeting, error)

	// DeleteMeeting removes a meeting with its links and action items
	DeleteMeeting(ctx context.Context, id uuid.UUID) error

	// LinkEntity attaches an existing entity to a meeting
	LinkEntity(ctx context.Context, meetingID, entityID uuid.UUID) error

	// UnlinkEntity detaches an entity from a meeting
	UnlinkEntity(ctx context.Context, meetingID, entityID uuid.UUID) error

	// ResolveEntities runs mention resolution for an existing meeting
	ResolveEntities(ctx context.Context, meetingID uuid.UUID, lines []string) (*resolver.ResolveReport, error)

	// Meeting types
	ListMeetingTypes(ctx context.Context) ([]*entities.MeetingType, error)
	GetMeetingType(ctx context.Context, id uuid.UUID) (*entities.MeetingType, error)
	CreateMeetingType(ctx context.Context, input MeetingTypeInput) (*entities.MeetingType, error)
	UpdateMeetingType(ctx context.Context, id uuid.UUID, input MeetingTypeInput) (*entities.MeetingType, error)
	DeleteMeetingType(ctx context.Context, id uuid.UUID) error

	// Action items
	ListActionItems(ctx context.Context, meetingID uuid.UUID) ([]*entities.ActionItem, error)
	CreateActionItem(ctx context.Context, meetingID uuid.UUID, input ActionItemInput) (*entities.ActionItem, error)
	UpdateActionItem(ctx context.Context, id uuid.UUID, input UpdateActionItemInput) (*entities.ActionItem, error)
}

// MentionResolver resolves extracted mention lines against known entities
type MentionResolver interface {
	ResolveMentions(ctx context.Context, lines []string, meetingID uuid.UUID) (*resolver.ResolveReport, error)
}

// TranscriptArchiver stores raw transcripts outside the database
type TranscriptArchiver interface {
	ArchiveTranscript(ctx context.Context, meetingID uuid.UUID, transcript string) (string, error)
}

// ProcessInput represents input for processing a transcript
type ProcessInput struct {
	Title           string
	Date            time.Time
	Transcript      string
	MeetingTypeSlug string
	EntityIDs       []uuid.UUID
	Metadata        map[string]interface{}
}

// ProcessResult is the stored meeting plus what happened to its mentions
type ProcessResult struct {
	Meeting          *entities.Meeting
	Resolution       *resolver.ResolveReport
	TranscriptObject string
}

// CreateMeetingInput represents input for creating a meeting
type CreateMeetingInput struct {
	Title           string
	Date            time.Time
	Transcript      *string
	Summary         *string
	MeetingTypeSlug string
	EntityIDs       []uuid.UUID
	Metadata        map[string]interface{}
}

// UpdateMeetingInput represents a partial meeting update
type UpdateMeetingInput struct {
	Title           *string
	Date            *time.Time
	Transcript      *string
	Summary         *string
	MeetingTypeSlug *string
	Metadata        map[string]interface{}
}

// MeetingTypeInput carries meeting type fields. Nil pointers are left unchanged on update.
type MeetingTypeInput struct {
	Name                   *string
	Slug                   *string
	Description            *string
	SummaryInstructions    *string
	EntityInstructions     *string
	ActionItemInstructions *string
}

// ActionItemInput represents input for creating an action item
type ActionItemInput struct {
	Description string
	Assignee    *string
	DueDate     *time.Time
	Status      entities.ActionItemStatus
}

// UpdateActionItemInput represents a partial action item update
type UpdateActionItemInput struct {
	Description *string
	Assignee    *string
	DueDate     *time.Time
	Status      *entities.ActionItemStatus
}
