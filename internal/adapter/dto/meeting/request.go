package meeting

import "time"

// ProcessRequest represents a transcript to summarise and store.
// It is also the payload of the signed ingest webhook.
type ProcessRequest struct {
	Title       string                 `json:"title" validate:"required,min=1,max=255"`
	Date        *time.Time             `json:"date,omitempty"`
	Transcript  string                 `json:"transcript" validate:"required"`
	MeetingType string                 `json:"meeting_type,omitempty" validate:"omitempty,max=50"`
	EntityIDs   []string               `json:"entity_ids,omitempty" validate:"omitempty,dive,uuid"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
}

// SuggestTitleRequest represents the request for a generated title
type SuggestTitleRequest struct {
	Transcript string `json:"transcript" validate:"required"`
}

// CreateMeetingRequest represents a manually recorded meeting
type CreateMeetingRequest struct {
	Title       string                 `json:"title" validate:"required,min=1,max=255"`
	Date        *time.Time             `json:"date,omitempty"`
	Transcript  *string                `json:"transcript,omitempty"`
	Summary     *string                `json:"summary,omitempty"`
	MeetingType string                 `json:"meeting_type,omitempty" validate:"omitempty,max=50"`
	EntityIDs   []string               `json:"entity_ids,omitempty" validate:"omitempty,dive,uuid"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
}

// UpdateMeetingRequest represents a partial meeting update
type UpdateMeetingRequest struct {
	Title       *string                `json:"title,omitempty" validate:"omitempty,min=1,max=255"`
	Date        *time.Time             `json:"date,omitempty"`
	Transcript  *string                `json:"transcript,omitempty"`
	Summary     *string                `json:"summary,omitempty"`
	MeetingType *string                `json:"meeting_type,omitempty" validate:"omitempty,min=1,max=50"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
}

// ResolveEntitiesRequest carries "Name|Type" lines to resolve for a meeting
type ResolveEntitiesRequest struct {
	Lines []string `json:"lines" validate:"required,min=1"`
}

// MeetingTypeRequest represents meeting type fields. Omitted fields are unchanged on update.
type MeetingTypeRequest struct {
	Name                   *string `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Slug                   *string `json:"slug,omitempty" validate:"omitempty,max=50,slug"`
	Description            *string `json:"description,omitempty"`
	SummaryInstructions    *string `json:"summary_instructions,omitempty"`
	EntityInstructions     *string `json:"entity_instructions,omitempty"`
	ActionItemInstructions *string `json:"action_item_instructions,omitempty"`
}

// CreateActionItemRequest represents a new action item
type CreateActionItemRequest struct {
	Description string     `json:"description" validate:"required,min=1"`
	Assignee    *string    `json:"assignee,omitempty" validate:"omitempty,max=255"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Status      string     `json:"status,omitempty" validate:"omitempty,oneof=pending in_progress completed cancelled"`
}

// UpdateActionItemRequest represents a partial action item update
type UpdateActionItemRequest struct {
	Description *string    `json:"description,omitempty" validate:"omitempty,min=1"`
	Assignee    *string    `json:"assignee,omitempty" validate:"omitempty,max=255"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Status      *string    `json:"status,omitempty" validate:"omitempty,oneof=pending in_progress completed cancelled"`
}
