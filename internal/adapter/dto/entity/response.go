package entity

import "time"

// EntityTypeResponse represents a category in API responses
type EntityTypeResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	ColorClass  string    `json:"color_class"`
	Description *string   `json:"description,omitempty"`
	IsSystem    bool      `json:"is_system"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// EntityResponse represents an entity in API responses
type EntityResponse struct {
	ID           string              `json:"id"`
	Name         string              `json:"name"`
	Type         string              `json:"type"`
	Description  *string             `json:"description,omitempty"`
	TypeInfo     *EntityTypeResponse `json:"type_info,omitempty"`
	MeetingCount *int64              `json:"meeting_count,omitempty"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
}

// BulkResponse reports the outcome of a bulk operation
type BulkResponse struct {
	Count     int      `json:"count"`
	FailedIDs []string `json:"failed_ids"`
}

// ClassifyResponse carries the category picked for a name
type ClassifyResponse struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// MergeResponse reports whether a merge happened
type MergeResponse struct {
	Merged   bool   `json:"merged"`
	SourceID string `json:"source_id"`
	TargetID string `json:"target_id"`
}

// MergeSuggestionResponse is one candidate duplicate pair
type MergeSuggestionResponse struct {
	Source     *EntityResponse `json:"source"`
	Target     *EntityResponse `json:"target"`
	Similarity float64         `json:"similarity"`
}

// MergeSuggestionsResponse lists candidate pairs. ScannedAt is set for cached results.
type MergeSuggestionsResponse struct {
	Suggestions []*MergeSuggestionResponse `json:"suggestions"`
	Cached      bool                       `json:"cached"`
	ScannedAt   *time.Time                 `json:"scanned_at,omitempty"`
}
