package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// DefaultMeetingTypeSlug is used when a meeting is created without a type
const DefaultMeetingTypeSlug = "general"

// Meeting is a processed or manually recorded meeting
type Meeting struct {
	ID              uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Title           string         `gorm:"type:varchar(255);not null" json:"title"`
	Date            time.Time      `gorm:"not null;index" json:"date"`
	Transcript      *string        `gorm:"type:text" json:"transcript,omitempty"`
	Summary         *string        `gorm:"type:text" json:"summary,omitempty"`
	MeetingTypeSlug string         `gorm:"type:varchar(50);not null;default:'general';index" json:"meeting_type_slug"`
	Metadata        datatypes.JSON `json:"metadata,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`

	Entities    []*Entity     `gorm:"-" json:"entities,omitempty"`
	ActionItems []*ActionItem `gorm:"foreignKey:MeetingID" json:"action_items,omitempty"`
}

// TableName specifies the table name for Meeting
func (Meeting) TableName() string {
	return "meetings"
}

// BeforeCreate assigns an ID and default type when the caller did not
func (m *Meeting) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.MeetingTypeSlug == "" {
		m.MeetingTypeSlug = DefaultMeetingTypeSlug
	}
	return nil
}

// MeetingEntity links an entity to a meeting. The pair is unique.
type MeetingEntity struct {
	MeetingID uuid.UUID `gorm:"type:uuid;primaryKey" json:"meeting_id"`
	EntityID  uuid.UUID `gorm:"type:uuid;primaryKey;index" json:"entity_id"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for MeetingEntity
func (MeetingEntity) TableName() string {
	return "meeting_entities"
}
