package handler

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-minutes/internal/adapter/dto/common"
	"github.com/johnquangdev/meeting-minutes/internal/adapter/dto/meeting"
	"github.com/johnquangdev/meeting-minutes/internal/adapter/presenter"
	meetingUsecase "github.com/johnquangdev/meeting-minutes/internal/usecase/meeting"
)

// MeetingType handles meeting type CRUD
type MeetingType struct {
	service meetingUsecase.Service
	logger  *zap.Logger
}

// NewMeetingTypeHandler creates a new meeting type handler
func NewMeetingTypeHandler(service meetingUsecase.Service, logger *zap.Logger) *MeetingType {
	return &MeetingType{service: service, logger: logger}
}

func toMeetingTypeInput(req *meeting.MeetingTypeRequest) meetingUsecase.MeetingTypeInput {
	return meetingUsecase.MeetingTypeInput{
		Name:                   req.Name,
		Slug:                   req.Slug,
		Description:            req.Description,
		SummaryInstructions:    req.SummaryInstructions,
		EntityInstructions:     req.EntityInstructions,
		ActionItemInstructions: req.ActionItemInstructions,
	}
}

// ListMeetingTypes handles GET /meeting-types
// @Summary      List meeting types
// @Tags         MeetingTypes
// @Produce      json
// @Success      200  {array}   meeting.MeetingTypeResponse
// @Router       /meeting-types [get]
func (h *MeetingType) ListMeetingTypes(c echo.Context) error {
	list, err := h.service.ListMeetingTypes(c.Request().Context())
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToMeetingTypeList(list))
}

// GetMeetingType handles GET /meeting-types/:id
// @Summary      Get a meeting type
// @Tags         MeetingTypes
// @Produce      json
// @Param        id   path      string  true  "Meeting type ID (UUID)"
// @Success      200  {object}  meeting.MeetingTypeResponse
// @Failure      404  {object}  map[string]interface{}
// @Router       /meeting-types/{id} [get]
func (h *MeetingType) GetMeetingType(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	mt, err := h.service.GetMeetingType(c.Request().Context(), id)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToMeetingTypeResponse(mt))
}

// CreateMeetingType handles POST /meeting-types
// @Summary      Create a meeting type
// @Description  The slug is derived from the name when omitted
// @Tags         MeetingTypes
// @Accept       json
// @Produce      json
// @Param        request  body      meeting.MeetingTypeRequest  true  "Meeting type"
// @Success      201      {object}  meeting.MeetingTypeResponse
// @Failure      400      {object}  map[string]interface{}
// @Failure      409      {object}  map[string]interface{}
// @Router       /meeting-types [post]
func (h *MeetingType) CreateMeetingType(c echo.Context) error {
	var req meeting.MeetingTypeRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}
	mt, err := h.service.CreateMeetingType(c.Request().Context(), toMeetingTypeInput(&req))
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleCreated(h.logger, c, presenter.ToMeetingTypeResponse(mt))
}

// UpdateMeetingType handles PUT /meeting-types/:id
// @Summary      Update a meeting type
// @Description  The slug cannot change
// @Tags         MeetingTypes
// @Accept       json
// @Produce      json
// @Param        id       path      string                      true  "Meeting type ID (UUID)"
// @Param        request  body      meeting.MeetingTypeRequest  true  "Fields to change"
// @Success      200      {object}  meeting.MeetingTypeResponse
// @Failure      400      {object}  map[string]interface{}
// @Failure      404      {object}  map[string]interface{}
// @Router       /meeting-types/{id} [put]
func (h *MeetingType) UpdateMeetingType(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	var req meeting.MeetingTypeRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}
	mt, err := h.service.UpdateMeetingType(c.Request().Context(), id, toMeetingTypeInput(&req))
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToMeetingTypeResponse(mt))
}

// DeleteMeetingType handles DELETE /meeting-types/:id
// @Summary      Delete a meeting type
// @Description  Fails for system types and for types still used by meetings
// @Tags         MeetingTypes
// @Produce      json
// @Param        id   path      string  true  "Meeting type ID (UUID)"
// @Success      200  {object}  common.DeletedResponse
// @Failure      403  {object}  map[string]interface{}
// @Failure      409  {object}  map[string]interface{}
// @Router       /meeting-types/{id} [delete]
func (h *MeetingType) DeleteMeetingType(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	if err := h.service.DeleteMeetingType(c.Request().Context(), id); err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, common.DeletedResponse{ID: id.String(), Deleted: true})
}
