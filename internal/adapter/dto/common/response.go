package common

// PageResponse represents offset paging metadata
type PageResponse struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Count  int `json:"count"`
}

// ListResponse represents a paged list response
type ListResponse struct {
	Items interface{}   `json:"items"`
	Page  *PageResponse `json:"page,omitempty"`
}

// DeletedResponse acknowledges a delete
type DeletedResponse struct {
	ID      string `json:"id"`
	Deleted bool   `json:"deleted"`
}
