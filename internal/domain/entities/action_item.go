package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ActionItemStatus represents the lifecycle state of an action item
type ActionItemStatus string

const (
	ActionItemStatusPending    ActionItemStatus = "pending"
	ActionItemStatusInProgress ActionItemStatus = "in_progress"
	ActionItemStatusCompleted  ActionItemStatus = "completed"
	ActionItemStatusCancelled  ActionItemStatus = "cancelled"
)

// Valid reports whether s is a known status
func (s ActionItemStatus) Valid() bool {
	switch s {
	case ActionItemStatusPending, ActionItemStatusInProgress, ActionItemStatusCompleted, ActionItemStatusCancelled:
		return true
	}
	return false
}

// ActionItem is a follow-up task extracted from or attached to a meeting
type ActionItem struct {
	ID          uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	MeetingID   uuid.UUID        `gorm:"type:uuid;not null;index" json:"meeting_id"`
	Description string           `gorm:"type:text;not null" json:"description"`
	Assignee    *string          `gorm:"type:varchar(255)" json:"assignee,omitempty"`
	DueDate     *time.Time       `json:"due_date,omitempty"`
	Status      ActionItemStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// TableName specifies the table name for ActionItem
func (ActionItem) TableName() string {
	return "action_items"
}

// BeforeCreate assigns an ID and default status when the caller did not
func (a *ActionItem) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.Status == "" {
		a.Status = ActionItemStatusPending
	}
	return nil
}

// NewActionItem creates a pending action item for a meeting
func NewActionItem(meetingID uuid.UUID, description string) *ActionItem {
	return &ActionItem{
		ID:          uuid.New(),
		MeetingID:   meetingID,
		Description: description,
		Status:      ActionItemStatusPending,
	}
}
