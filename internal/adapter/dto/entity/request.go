package entity

// CreateEntityTypeRequest represents the request to register a category
type CreateEntityTypeRequest struct {
	Name        string  `json:"name" validate:"required,min=1,max=100"`
	Slug        string  `json:"slug,omitempty" validate:"omitempty,max=50,slug"`
	ColorClass  string  `json:"color_class,omitempty" validate:"omitempty,max=255"`
	Description *string `json:"description,omitempty"`
}

// UpdateEntityTypeRequest represents a partial category update
type UpdateEntityTypeRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	ColorClass  *string `json:"color_class,omitempty" validate:"omitempty,max=255"`
	Description *string `json:"description,omitempty"`
}

// CreateEntityRequest represents the request to create an entity.
// An empty type is classified from the name.
type CreateEntityRequest struct {
	Name        string  `json:"name" validate:"required,min=1,max=255"`
	Type        string  `json:"type,omitempty" validate:"omitempty,max=50"`
	Description *string `json:"description,omitempty"`
}

// UpdateEntityRequest represents a partial entity update
type UpdateEntityRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Type        *string `json:"type,omitempty" validate:"omitempty,min=1,max=50"`
	Description *string `json:"description,omitempty"`
}

// BulkDeleteRequest represents the request to delete several entities
type BulkDeleteRequest struct {
	IDs []string `json:"entity_ids" validate:"required,min=1,dive,uuid"`
}

// BulkUpdateTypeRequest represents the request to recategorise several entities
type BulkUpdateTypeRequest struct {
	IDs  []string `json:"entity_ids" validate:"required,min=1,dive,uuid"`
	Type string   `json:"type" validate:"required,max=50"`
}

// ClassifyRequest represents the request to classify a name
type ClassifyRequest struct {
	Name string `json:"name" validate:"required,min=1,max=255"`
	Hint string `json:"hint,omitempty" validate:"omitempty,max=100"`
}

// MergeRequest represents the request to merge source into target
type MergeRequest struct {
	SourceID string `json:"source_id" validate:"required,uuid"`
	TargetID string `json:"target_id" validate:"required,uuid"`
}
