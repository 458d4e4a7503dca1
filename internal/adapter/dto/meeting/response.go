package meeting

import (
	"time"

	"github.com/johnquangdev/meeting-minutes/internal/adapter/dto/entity"
)

// MeetingResponse represents a meeting in API responses
type MeetingResponse struct {
	ID          string                   `json:"id"`
	Title       string                   `json:"title"`
	Date        time.Time                `json:"date"`
	Transcript  *string                  `json:"transcript,omitempty"`
	Summary     *string                  `json:"summary,omitempty"`
	MeetingType string                   `json:"meeting_type"`
	Metadata    map[string]interface{}   `json:"metadata,omitempty"`
	Entities    []*entity.EntityResponse `json:"entities"`
	ActionItems []*ActionItemResponse    `json:"action_items"`
	CreatedAt   time.Time                `json:"created_at"`
	UpdatedAt   time.Time                `json:"updated_at"`
}

// MeetingTypeResponse represents a meeting type in API responses
type MeetingTypeResponse struct {
	ID                     string    `json:"id"`
	Name                   string    `json:"name"`
	Slug                   string    `json:"slug"`
	Description            *string   `json:"description,omitempty"`
	SummaryInstructions    *string   `json:"summary_instructions,omitempty"`
	EntityInstructions     *string   `json:"entity_instructions,omitempty"`
	ActionItemInstructions *string   `json:"action_item_instructions,omitempty"`
	IsSystem               bool      `json:"is_system"`
	CreatedAt              time.Time `json:"created_at"`
	UpdatedAt              time.Time `json:"updated_at"`
}

// ActionItemResponse represents an action item in API responses
type ActionItemResponse struct {
	ID          string     `json:"id"`
	MeetingID   string     `json:"meeting_id"`
	Description string     `json:"description"`
	Assignee    *string    `json:"assignee,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// ResolutionFailure describes a mention line that was not resolved
type ResolutionFailure struct {
	Line  string `json:"line"`
	Name  string `json:"name"`
	Error string `json:"error"`
}

// ResolutionResponse reports the outcome of a resolution pass
type ResolutionResponse struct {
	Resolved []*entity.EntityResponse `json:"resolved"`
	Failed   []*ResolutionFailure     `json:"failed"`
}

// ProcessResponse is the stored meeting plus the resolution report
type ProcessResponse struct {
	Meeting          *MeetingResponse    `json:"meeting"`
	Resolution       *ResolutionResponse `json:"resolution"`
	TranscriptObject string              `json:"transcript_object,omitempty"`
}

// TitleResponse carries a suggested title
type TitleResponse struct {
	Title string `json:"title"`
}
