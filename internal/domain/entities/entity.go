package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// System entity type slugs. These rows are seeded on first run and cannot be deleted.
const (
	EntityTypePerson  = "person"
	EntityTypeCompany = "company"
	EntityTypeProject = "project"
	EntityTypeOther   = "other"
)

// DefaultEntityDescription is attached to entities created from meeting extraction
const DefaultEntityDescription = "Automatically extracted from meeting"

// Entity is a de-duplicated real-world referent mentioned across meetings
type Entity struct {
	ID          uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string      `gorm:"type:varchar(255);not null;uniqueIndex" json:"name"`
	TypeSlug    string      `gorm:"type:varchar(50);not null;index" json:"type_slug"`
	Description *string     `gorm:"type:text" json:"description,omitempty"`
	Type        *EntityType `gorm:"foreignKey:TypeSlug;references:Slug" json:"type,omitempty"`
	CreatedAt   time.Time   `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// TableName specifies the table name for Entity
func (Entity) TableName() string {
	return "entities"
}

// BeforeCreate assigns an ID when the caller did not
func (e *Entity) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// NewEntity creates a new entity with the given name and category
func NewEntity(name, typeSlug string, description *string) *Entity {
	return &Entity{
		ID:          uuid.New(),
		Name:        name,
		TypeSlug:    typeSlug,
		Description: description,
	}
}

// EntityType is a user-extensible category in the entity type registry
type EntityType struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"type:varchar(100);not null;uniqueIndex" json:"name"`
	Slug        string    `gorm:"type:varchar(50);not null;uniqueIndex" json:"slug"`
	ColorClass  string    `gorm:"type:varchar(255);not null" json:"color_class"`
	Description *string   `gorm:"type:text" json:"description,omitempty"`
	IsSystem    bool      `gorm:"not null;default:false" json:"is_system"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName specifies the table name for EntityType
func (EntityType) TableName() string {
	return "entity_types"
}

// BeforeCreate assigns an ID when the caller did not
func (t *EntityType) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// SystemEntityTypes returns the built-in categories seeded on first run
func SystemEntityTypes() []*EntityType {
	desc := func(s string) *string { return &s }
	return []*EntityType{
		{Name: "Person", Slug: EntityTypePerson, ColorClass: "bg-blue-100 text-blue-800 border-blue-200", Description: desc("Individual people"), IsSystem: true},
		{Name: "Company", Slug: EntityTypeCompany, ColorClass: "bg-green-100 text-green-800 border-green-200", Description: desc("Organizations and businesses"), IsSystem: true},
		{Name: "Project", Slug: EntityTypeProject, ColorClass: "bg-purple-100 text-purple-800 border-purple-200", Description: desc("Projects and initiatives"), IsSystem: true},
		{Name: "Other", Slug: EntityTypeOther, ColorClass: "bg-gray-100 text-gray-800 border-gray-200", Description: desc("Miscellaneous entities"), IsSystem: true},
	}
}

// EntityUsage pairs an entity with the number of meetings it appears in
type EntityUsage struct {
	Entity
	MeetingCount int64 `gorm:"column:meeting_count" json:"meeting_count"`
}
