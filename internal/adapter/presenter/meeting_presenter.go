package presenter

import (
	"encoding/json"

	"github.com/johnquangdev/meeting-minutes/internal/adapter/dto/entity"
	"github.com/johnquangdev/meeting-minutes/internal/adapter/dto/meeting"
	"github.com/johnquangdev/meeting-minutes/internal/domain/entities"
	meetingUsecase "github.com/johnquangdev/meeting-minutes/internal/usecase/meeting"
	"github.com/johnquangdev/meeting-minutes/internal/usecase/resolver"
)

// ToMeetingResponse converts a Meeting to its DTO
func ToMeetingResponse(m *entities.Meeting) *meeting.MeetingResponse {
	if m == nil {
		return nil
	}

	// Parse metadata from JSON
	var metadata map[string]interface{}
	if len(m.Metadata) > 0 {
		_ = json.Unmarshal(m.Metadata, &metadata)
	}

	items := make([]*meeting.ActionItemResponse, len(m.ActionItems))
	for i, a := range m.ActionItems {
		items[i] = ToActionItemResponse(a)
	}

	return &meeting.MeetingResponse{
		ID:          m.ID.String(),
		Title:       m.Title,
		Date:        m.Date,
		Transcript:  m.Transcript,
		Summary:     m.Summary,
		MeetingType: m.MeetingTypeSlug,
		Metadata:    metadata,
		Entities:    ToEntityList(m.Entities),
		ActionItems: items,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// ToMeetingList converts a slice of meetings
func ToMeetingList(list []*entities.Meeting) []*meeting.MeetingResponse {
	out := make([]*meeting.MeetingResponse, len(list))
	for i, m := range list {
		out[i] = ToMeetingResponse(m)
	}
	return out
}

// ToMeetingTypeResponse converts a MeetingType to its DTO
func ToMeetingTypeResponse(t *entities.MeetingType) *meeting.MeetingTypeResponse {
	if t == nil {
		return nil
	}
	return &meeting.MeetingTypeResponse{
		ID:                     t.ID.String(),
		Name:                   t.Name,
		Slug:                   t.Slug,
		Description:            t.Description,
		SummaryInstructions:    t.SummaryInstructions,
		EntityInstructions:     t.EntityInstructions,
		ActionItemInstructions: t.ActionItemInstructions,
		IsSystem:               t.IsSystem,
		CreatedAt:              t.CreatedAt,
		UpdatedAt:              t.UpdatedAt,
	}
}

// ToMeetingTypeList converts a slice of meeting types
func ToMeetingTypeList(list []*entities.MeetingType) []*meeting.MeetingTypeResponse {
	out := make([]*meeting.MeetingTypeResponse, len(list))
	for i, t := range list {
		out[i] = ToMeetingTypeResponse(t)
	}
	return out
}

// ToActionItemResponse converts an ActionItem to its DTO
func ToActionItemResponse(a *entities.ActionItem) *meeting.ActionItemResponse {
	if a == nil {
		return nil
	}
	return &meeting.ActionItemResponse{
		ID:          a.ID.String(),
		MeetingID:   a.MeetingID.String(),
		Description: a.Description,
		Assignee:    a.Assignee,
		DueDate:     a.DueDate,
		Status:      string(a.Status),
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

// ToActionItemList converts a slice of action items
func ToActionItemList(list []*entities.ActionItem) []*meeting.ActionItemResponse {
	out := make([]*meeting.ActionItemResponse, len(list))
	for i, a := range list {
		out[i] = ToActionItemResponse(a)
	}
	return out
}

// ToResolutionResponse converts a resolver report
func ToResolutionResponse(r *resolver.ResolveReport) *meeting.ResolutionResponse {
	resp := &meeting.ResolutionResponse{
		Resolved: []*entity.EntityResponse{},
		Failed:   []*meeting.ResolutionFailure{},
	}
	if r == nil {
		return resp
	}
	resp.Resolved = ToEntityList(r.Resolved)
	for _, f := range r.Failed {
		msg := ""
		if f.Err != nil {
			msg = f.Err.Error()
		}
		resp.Failed = append(resp.Failed, &meeting.ResolutionFailure{Line: f.Line, Name: f.Name, Error: msg})
	}
	return resp
}

// ToProcessResponse converts the result of transcript processing
func ToProcessResponse(r *meetingUsecase.ProcessResult) *meeting.ProcessResponse {
	if r == nil {
		return nil
	}
	return &meeting.ProcessResponse{
		Meeting:          ToMeetingResponse(r.Meeting),
		Resolution:       ToResolutionResponse(r.Resolution),
		TranscriptObject: r.TranscriptObject,
	}
}
