package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MeetingType carries per-type prompt instructions for processing
type MeetingType struct {
	ID                     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name                   string    `gorm:"type:varchar(100);not null;uniqueIndex" json:"name"`
	Slug                   string    `gorm:"type:varchar(50);not null;uniqueIndex" json:"slug"`
	Description            *string   `gorm:"type:text" json:"description,omitempty"`
	SummaryInstructions    *string   `gorm:"type:text" json:"summary_instructions,omitempty"`
	EntityInstructions     *string   `gorm:"type:text" json:"entity_instructions,omitempty"`
	ActionItemInstructions *string   `gorm:"type:text" json:"action_item_instructions,omitempty"`
	IsSystem               bool      `gorm:"not null;default:false" json:"is_system"`
	CreatedAt              time.Time `json:"created_at"`
	UpdatedAt              time.Time `json:"updated_at"`
}

// TableName specifies the table name for MeetingType
func (MeetingType) TableName() string {
	return "meeting_types"
}

// BeforeCreate assigns an ID when the caller did not
func (t *MeetingType) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// SystemMeetingTypes returns the built-in meeting types seeded on first run
func SystemMeetingTypes() []*MeetingType {
	s := func(v string) *string { return &v }
	return []*MeetingType{
		{
			Name:        "General Meeting",
			Slug:        DefaultMeetingTypeSlug,
			Description: s("Default meeting type for general discussions"),
			IsSystem:    true,
		},
		{
			Name:                   "Daily Standup",
			Slug:                   "standup",
			Description:            s("Daily team standup meetings"),
			SummaryInstructions:    s("Focus on what was accomplished yesterday, what will be done today, and any blockers or impediments."),
			EntityInstructions:     s("Extract team member names, projects being worked on, and any tools or systems mentioned."),
			ActionItemInstructions: s("Identify blockers, impediments, or action items that need to be addressed by the team or individuals."),
			IsSystem:               true,
		},
		{
			Name:                   "Sprint Planning",
			Slug:                   "sprint-planning",
			Description:            s("Sprint planning and story estimation meetings"),
			SummaryInstructions:    s("Summarize the sprint goals, stories planned, capacity discussions, and any major decisions about scope or timeline."),
			EntityInstructions:     s("Extract team member names, user stories, epics, and any external stakeholders mentioned."),
			ActionItemInstructions: s("Capture story assignments, estimation decisions, and any follow-up tasks for story refinement."),
			IsSystem:               true,
		},
		{
			Name:                   "Retrospective",
			Slug:                   "retrospective",
			Description:            s("Team retrospective meetings"),
			SummaryInstructions:    s("Focus on what went well, what could be improved, and key takeaways from the period being reviewed."),
			EntityInstructions:     s("Extract team member names, processes, tools, and any external factors mentioned."),
			ActionItemInstructions: s("Identify specific action items for process improvements and who will own them."),
			IsSystem:               true,
		},
		{
			Name:                   "Client Meeting",
			Slug:                   "client-meeting",
			Description:            s("Meetings with external clients or stakeholders"),
			SummaryInstructions:    s("Emphasize client requirements, feedback, decisions made, and next steps in the relationship."),
			EntityInstructions:     s("Extract client names, company names, project names, and any deliverables or systems discussed."),
			ActionItemInstructions: s("Focus on client requests, commitments made, deliverables promised, and follow-up actions."),
			IsSystem:               true,
		},
	}
}
