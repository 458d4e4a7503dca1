package presenter

import (
	"github.com/johnquangdev/meeting-minutes/internal/adapter/dto/entity"
	"github.com/johnquangdev/meeting-minutes/internal/domain/entities"
	entityUsecase "github.com/johnquangdev/meeting-minutes/internal/usecase/entity"
	"github.com/johnquangdev/meeting-minutes/internal/usecase/resolver"
)

// ToEntityTypeResponse converts an EntityType to its DTO
func ToEntityTypeResponse(t *entities.EntityType) *entity.EntityTypeResponse {
	if t == nil {
		return nil
	}
	return &entity.EntityTypeResponse{
		ID:          t.ID.String(),
		Name:        t.Name,
		Slug:        t.Slug,
		ColorClass:  t.ColorClass,
		Description: t.Description,
		IsSystem:    t.IsSystem,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

// ToEntityTypeList converts a slice of entity types
func ToEntityTypeList(types []*entities.EntityType) []*entity.EntityTypeResponse {
	out := make([]*entity.EntityTypeResponse, len(types))
	for i, t := range types {
		out[i] = ToEntityTypeResponse(t)
	}
	return out
}

// ToEntityResponse converts an Entity to its DTO
func ToEntityResponse(e *entities.Entity) *entity.EntityResponse {
	if e == nil {
		return nil
	}
	return &entity.EntityResponse{
		ID:          e.ID.String(),
		Name:        e.Name,
		Type:        e.TypeSlug,
		Description: e.Description,
		TypeInfo:    ToEntityTypeResponse(e.Type),
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

// ToEntityList converts a slice of entities
func ToEntityList(list []*entities.Entity) []*entity.EntityResponse {
	out := make([]*entity.EntityResponse, len(list))
	for i, e := range list {
		out[i] = ToEntityResponse(e)
	}
	return out
}

// ToEntityUsageList converts low-usage rows, keeping their meeting counts
func ToEntityUsageList(list []*entities.EntityUsage) []*entity.EntityResponse {
	out := make([]*entity.EntityResponse, len(list))
	for i, u := range list {
		resp := ToEntityResponse(&u.Entity)
		count := u.MeetingCount
		resp.MeetingCount = &count
		out[i] = resp
	}
	return out
}

// ToBulkResponse converts a bulk operation result
func ToBulkResponse(r *entityUsecase.BulkResult) *entity.BulkResponse {
	resp := &entity.BulkResponse{FailedIDs: []string{}}
	if r == nil {
		return resp
	}
	resp.Count = r.Count
	for _, id := range r.FailedIDs {
		resp.FailedIDs = append(resp.FailedIDs, id.String())
	}
	return resp
}

// ToMergeSuggestions converts candidate pairs
func ToMergeSuggestions(list []resolver.MergeSuggestion) []*entity.MergeSuggestionResponse {
	out := make([]*entity.MergeSuggestionResponse, len(list))
	for i, s := range list {
		out[i] = &entity.MergeSuggestionResponse{
			Source:     ToEntityResponse(s.Source),
			Target:     ToEntityResponse(s.Target),
			Similarity: s.Similarity,
		}
	}
	return out
}
