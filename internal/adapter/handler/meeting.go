package handler

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-minutes/internal/adapter/dto/common"
	"github.com/johnquangdev/meeting-minutes/internal/adapter/dto/meeting"
	"github.com/johnquangdev/meeting-minutes/internal/adapter/presenter"
	"github.com/johnquangdev/meeting-minutes/internal/domain/entities"
	meetingUsecase "github.com/johnquangdev/meeting-minutes/internal/usecase/meeting"
)

// Meeting handles meetings, their entity links and their action items
type Meeting struct {
	service meetingUsecase.Service
	logger  *zap.Logger
}

// NewMeetingHandler creates a new meeting handler
func NewMeetingHandler(service meetingUsecase.Service, logger *zap.Logger) *Meeting {
	return &Meeting{service: service, logger: logger}
}

func dateOrNow(d *time.Time) time.Time {
	if d == nil || d.IsZero() {
		return time.Now().UTC()
	}
	return d.UTC()
}

// toProcessInput converts a process request, shared with the ingest webhook
func toProcessInput(req *meeting.ProcessRequest) (meetingUsecase.ProcessInput, error) {
	ids, err := parseUUIDs(req.EntityIDs)
	if err != nil {
		return meetingUsecase.ProcessInput{}, err
	}
	return meetingUsecase.ProcessInput{
		Title:           req.Title,
		Date:            dateOrNow(req.Date),
		Transcript:      req.Transcript,
		MeetingTypeSlug: req.MeetingType,
		EntityIDs:       ids,
		Metadata:        req.Metadata,
	}, nil
}

// ProcessMeeting handles POST /meetings/process
// @Summary      Process a transcript
// @Description  Generates the summary, entity mentions and action items, stores the meeting and resolves its entities
// @Tags         Meetings
// @Accept       json
// @Produce      json
// @Param        request  body      meeting.ProcessRequest  true  "Transcript and meeting fields"
// @Success      201      {object}  meeting.ProcessResponse
// @Failure      400      {object}  map[string]interface{}
// @Failure      503      {object}  map[string]interface{}  "Text generation unavailable"
// @Router       /meetings/process [post]
func (h *Meeting) ProcessMeeting(c echo.Context) error {
	var req meeting.ProcessRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}
	input, err := toProcessInput(&req)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	result, err := h.service.Process(c.Request().Context(), input)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleCreated(h.logger, c, presenter.ToProcessResponse(result))
}

// SuggestTitle handles POST /meetings/suggest-title
// @Summary      Suggest a meeting title
// @Description  Falls back to a default title when generation fails
// @Tags         Meetings
// @Accept       json
// @Produce      json
// @Param        request  body      meeting.SuggestTitleRequest  true  "Transcript"
// @Success      200      {object}  meeting.TitleResponse
// @Failure      400      {object}  map[string]interface{}
// @Router       /meetings/suggest-title [post]
func (h *Meeting) SuggestTitle(c echo.Context) error {
	var req meeting.SuggestTitleRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}
	title := h.service.SuggestTitle(c.Request().Context(), req.Transcript)
	return HandleSuccess(h.logger, c, meeting.TitleResponse{Title: title})
}

// ListMeetings handles GET /meetings
// @Summary      List meetings
// @Description  Returns meetings newest first
// @Tags         Meetings
// @Produce      json
// @Param        limit   query     int  false  "Page size (default: 50)"
// @Param        offset  query     int  false  "Offset"
// @Success      200     {object}  common.ListResponse
// @Router       /meetings [get]
func (h *Meeting) ListMeetings(c echo.Context) error {
	opts, err := listOptions(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	list, err := h.service.ListMeetings(c.Request().Context(), opts)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, common.ListResponse{
		Items: presenter.ToMeetingList(list),
		Page:  &common.PageResponse{Limit: opts.Limit, Offset: opts.Offset, Count: len(list)},
	})
}

// GetMeeting handles GET /meetings/:id
// @Summary      Get a meeting
// @Description  Returns the meeting with its entities and action items
// @Tags         Meetings
// @Produce      json
// @Param        id   path      string  true  "Meeting ID (UUID)"
// @Success      200  {object}  meeting.MeetingResponse
// @Failure      404  {object}  map[string]interface{}
// @Router       /meetings/{id} [get]
func (h *Meeting) GetMeeting(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	m, err := h.service.GetMeeting(c.Request().Context(), id)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToMeetingResponse(m))
}

// CreateMeeting handles POST /meetings
// @Summary      Create a meeting
// @Description  Stores a meeting without text generation
// @Tags         Meetings
// @Accept       json
// @Produce      json
// @Param        request  body      meeting.CreateMeetingRequest  true  "Meeting"
// @Success      201      {object}  meeting.MeetingResponse
// @Failure      400      {object}  map[string]interface{}
// @Failure      404      {object}  map[string]interface{}  "Unknown meeting type"
// @Router       /meetings [post]
func (h *Meeting) CreateMeeting(c echo.Context) error {
	var req meeting.CreateMeetingRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}
	ids, err := parseUUIDs(req.EntityIDs)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	m, err := h.service.CreateMeeting(c.Request().Context(), meetingUsecase.CreateMeetingInput{
		Title:           req.Title,
		Date:            dateOrNow(req.Date),
		Transcript:      req.Transcript,
		Summary:         req.Summary,
		MeetingTypeSlug: req.MeetingType,
		EntityIDs:       ids,
		Metadata:        req.Metadata,
	})
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleCreated(h.logger, c, presenter.ToMeetingResponse(m))
}

// UpdateMeeting handles PUT /meetings/:id
// @Summary      Update a meeting
// @Tags         Meetings
// @Accept       json
// @Produce      json
// @Param        id       path      string                        true  "Meeting ID (UUID)"
// @Param        request  body      meeting.UpdateMeetingRequest  true  "Fields to change"
// @Success      200      {object}  meeting.MeetingResponse
// @Failure      400      {object}  map[string]interface{}
// @Failure      404      {object}  map[string]interface{}
// @Router       /meetings/{id} [put]
func (h *Meeting) UpdateMeeting(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	var req meeting.UpdateMeetingRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	m, err := h.service.UpdateMeeting(c.Request().Context(), id, meetingUsecase.UpdateMeetingInput{
		Title:           req.Title,
		Date:            req.Date,
		Transcript:      req.Transcript,
		Summary:         req.Summary,
		MeetingTypeSlug: req.MeetingType,
		Metadata:        req.Metadata,
	})
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToMeetingResponse(m))
}

// DeleteMeeting handles DELETE /meetings/:id
// @Summary      Delete a meeting
// @Tags         Meetings
// @Produce      json
// @Param        id   path      string  true  "Meeting ID (UUID)"
// @Success      200  {object}  common.DeletedResponse
// @Failure      404  {object}  map[string]interface{}
// @Router       /meetings/{id} [delete]
func (h *Meeting) DeleteMeeting(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	if err := h.service.DeleteMeeting(c.Request().Context(), id); err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, common.DeletedResponse{ID: id.String(), Deleted: true})
}

// ResolveEntities handles POST /meetings/:id/entities/resolve
// @Summary      Resolve entity mentions for a meeting
// @Description  Matches or creates an entity for each "Name|Type" line and links it to the meeting
// @Tags         Meetings
// @Accept       json
// @Produce      json
// @Param        id       path      string                          true  "Meeting ID (UUID)"
// @Param        request  body      meeting.ResolveEntitiesRequest  true  "Mention lines"
// @Success      200      {object}  meeting.ResolutionResponse
// @Failure      404      {object}  map[string]interface{}
// @Router       /meetings/{id}/entities/resolve [post]
func (h *Meeting) ResolveEntities(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	var req meeting.ResolveEntitiesRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	report, err := h.service.ResolveEntities(c.Request().Context(), id, req.Lines)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToResolutionResponse(report))
}

// LinkEntity handles POST /meetings/:id/entities/:entity_id
// @Summary      Link an entity to a meeting
// @Tags         Meetings
// @Produce      json
// @Param        id         path      string  true  "Meeting ID (UUID)"
// @Param        entity_id  path      string  true  "Entity ID (UUID)"
// @Success      200        {object}  meeting.MeetingResponse
// @Failure      404        {object}  map[string]interface{}
// @Router       /meetings/{id}/entities/{entity_id} [post]
func (h *Meeting) LinkEntity(c echo.Context) error {
	return h.changeLink(c, h.service.LinkEntity)
}

// UnlinkEntity handles DELETE /meetings/:id/entities/:entity_id
// @Summary      Unlink an entity from a meeting
// @Tags         Meetings
// @Produce      json
// @Param        id         path      string  true  "Meeting ID (UUID)"
// @Param        entity_id  path      string  true  "Entity ID (UUID)"
// @Success      200        {object}  meeting.MeetingResponse
// @Failure      404        {object}  map[string]interface{}
// @Router       /meetings/{id}/entities/{entity_id} [delete]
func (h *Meeting) UnlinkEntity(c echo.Context) error {
	return h.changeLink(c, h.service.UnlinkEntity)
}

func (h *Meeting) changeLink(c echo.Context, op func(ctx context.Context, meetingID, entityID uuid.UUID) error) error {
	meetingID, err := pathUUID(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	entityID, err := pathUUID(c, "entity_id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	ctx := c.Request().Context()
	if err := op(ctx, meetingID, entityID); err != nil {
		return HandleError(h.logger, c, err)
	}
	m, err := h.service.GetMeeting(ctx, meetingID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToMeetingResponse(m))
}

// ListActionItems handles GET /meetings/:id/action-items
// @Summary      List action items of a meeting
// @Tags         ActionItems
// @Produce      json
// @Param        id   path      string  true  "Meeting ID (UUID)"
// @Success      200  {array}   meeting.ActionItemResponse
// @Failure      404  {object}  map[string]interface{}
// @Router       /meetings/{id}/action-items [get]
func (h *Meeting) ListActionItems(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	items, err := h.service.ListActionItems(c.Request().Context(), id)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToActionItemList(items))
}

// CreateActionItem handles POST /meetings/:id/action-items
// @Summary      Add an action item to a meeting
// @Tags         ActionItems
// @Accept       json
// @Produce      json
// @Param        id       path      string                           true  "Meeting ID (UUID)"
// @Param        request  body      meeting.CreateActionItemRequest  true  "Action item"
// @Success      201      {object}  meeting.ActionItemResponse
// @Failure      400      {object}  map[string]interface{}
// @Failure      404      {object}  map[string]interface{}
// @Router       /meetings/{id}/action-items [post]
func (h *Meeting) CreateActionItem(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	var req meeting.CreateActionItemRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	item, err := h.service.CreateActionItem(c.Request().Context(), id, meetingUsecase.ActionItemInput{
		Description: req.Description,
		Assignee:    req.Assignee,
		DueDate:     req.DueDate,
		Status:      entities.ActionItemStatus(req.Status),
	})
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleCreated(h.logger, c, presenter.ToActionItemResponse(item))
}

// UpdateActionItem handles PUT /action-items/:id
// @Summary      Update an action item
// @Tags         ActionItems
// @Accept       json
// @Produce      json
// @Param        id       path      string                           true  "Action item ID (UUID)"
// @Param        request  body      meeting.UpdateActionItemRequest  true  "Fields to change"
// @Success      200      {object}  meeting.ActionItemResponse
// @Failure      400      {object}  map[string]interface{}
// @Failure      404      {object}  map[string]interface{}
// @Router       /action-items/{id} [put]
func (h *Meeting) UpdateActionItem(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	var req meeting.UpdateActionItemRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	input := meetingUsecase.UpdateActionItemInput{
		Description: req.Description,
		Assignee:    req.Assignee,
		DueDate:     req.DueDate,
	}
	if req.Status != nil {
		status := entities.ActionItemStatus(*req.Status)
		input.Status = &status
	}

	item, err := h.service.UpdateActionItem(c.Request().Context(), id, input)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToActionItemResponse(item))
}
