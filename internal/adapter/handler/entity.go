package handler

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-minutes/errors"
	"github.com/johnquangdev/meeting-minutes/internal/adapter/dto/common"
	"github.com/johnquangdev/meeting-minutes/internal/adapter/dto/entity"
	"github.com/johnquangdev/meeting-minutes/internal/adapter/presenter"
	entityUsecase "github.com/johnquangdev/meeting-minutes/internal/usecase/entity"
)

// Entity handles entity CRUD and bulk operations
type Entity struct {
	service entityUsecase.Service
	logger  *zap.Logger
}

// NewEntityHandler creates a new entity handler
func NewEntityHandler(service entityUsecase.Service, logger *zap.Logger) *Entity {
	return &Entity{service: service, logger: logger}
}

func parseUUIDs(raw []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(raw))
	for _, s := range raw {
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, errors.ErrInvalidArgument("entity_ids must contain valid UUIDs")
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// ListEntities handles GET /entities
// @Summary      List entities
// @Description  Returns entities ordered by name
// @Tags         Entities
// @Produce      json
// @Param        limit   query     int  false  "Page size (default: 50)"
// @Param        offset  query     int  false  "Offset"
// @Success      200     {object}  common.ListResponse
// @Failure      400     {object}  map[string]interface{}
// @Router       /entities [get]
func (h *Entity) ListEntities(c echo.Context) error {
	opts, err := listOptions(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	list, err := h.service.ListEntities(c.Request().Context(), opts)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, common.ListResponse{
		Items: presenter.ToEntityList(list),
		Page:  &common.PageResponse{Limit: opts.Limit, Offset: opts.Offset, Count: len(list)},
	})
}

// GetEntity handles GET /entities/:id
// @Summary      Get an entity
// @Tags         Entities
// @Produce      json
// @Param        id   path      string  true  "Entity ID (UUID)"
// @Success      200  {object}  entity.EntityResponse
// @Failure      404  {object}  map[string]interface{}
// @Router       /entities/{id} [get]
func (h *Entity) GetEntity(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	e, err := h.service.GetEntity(c.Request().Context(), id)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToEntityResponse(e))
}

// CreateEntity handles POST /entities
// @Summary      Create an entity
// @Description  Creates an entity. When type is omitted it is classified from the name.
// @Tags         Entities
// @Accept       json
// @Produce      json
// @Param        request  body      entity.CreateEntityRequest  true  "Entity"
// @Success      201      {object}  entity.EntityResponse
// @Failure      400      {object}  map[string]interface{}
// @Failure      409      {object}  map[string]interface{}
// @Router       /entities [post]
func (h *Entity) CreateEntity(c echo.Context) error {
	var req entity.CreateEntityRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	e, err := h.service.CreateEntity(c.Request().Context(), entityUsecase.CreateEntityInput{
		Name:        req.Name,
		TypeSlug:    req.Type,
		Description: req.Description,
	})
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleCreated(h.logger, c, presenter.ToEntityResponse(e))
}

// UpdateEntity handles PUT /entities/:id
// @Summary      Update an entity
// @Tags         Entities
// @Accept       json
// @Produce      json
// @Param        id       path      string                      true  "Entity ID (UUID)"
// @Param        request  body      entity.UpdateEntityRequest  true  "Fields to change"
// @Success      200      {object}  entity.EntityResponse
// @Failure      400      {object}  map[string]interface{}
// @Failure      404      {object}  map[string]interface{}
// @Failure      409      {object}  map[string]interface{}
// @Router       /entities/{id} [put]
func (h *Entity) UpdateEntity(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	var req entity.UpdateEntityRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	e, err := h.service.UpdateEntity(c.Request().Context(), id, entityUsecase.UpdateEntityInput{
		Name:        req.Name,
		TypeSlug:    req.Type,
		Description: req.Description,
	})
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToEntityResponse(e))
}

// DeleteEntity handles DELETE /entities/:id
// @Summary      Delete an entity
// @Description  Deletes an entity and its meeting links
// @Tags         Entities
// @Produce      json
// @Param        id   path      string  true  "Entity ID (UUID)"
// @Success      200  {object}  common.DeletedResponse
// @Failure      404  {object}  map[string]interface{}
// @Router       /entities/{id} [delete]
func (h *Entity) DeleteEntity(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	if err := h.service.DeleteEntity(c.Request().Context(), id); err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, common.DeletedResponse{ID: id.String(), Deleted: true})
}

// ListMeetings handles GET /entities/:id/meetings
// @Summary      List meetings of an entity
// @Tags         Entities
// @Produce      json
// @Param        id   path      string  true  "Entity ID (UUID)"
// @Success      200  {array}   meeting.MeetingResponse
// @Failure      404  {object}  map[string]interface{}
// @Router       /entities/{id}/meetings [get]
func (h *Entity) ListMeetings(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	meetings, err := h.service.MeetingsOf(c.Request().Context(), id)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToMeetingList(meetings))
}

// ListLowUsage handles GET /entities/low-usage
// @Summary      List low-usage entities
// @Description  Returns entities that appear in exactly one meeting
// @Tags         Entities
// @Produce      json
// @Success      200  {array}   entity.EntityResponse
// @Router       /entities/low-usage [get]
func (h *Entity) ListLowUsage(c echo.Context) error {
	list, err := h.service.ListLowUsage(c.Request().Context())
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToEntityUsageList(list))
}

// BulkDelete handles POST /entities/bulk-delete
// @Summary      Delete several entities
// @Description  Each entity is deleted independently; failures are reported by ID
// @Tags         Entities
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      entity.BulkDeleteRequest  true  "Entity IDs"
// @Success      200      {object}  entity.BulkResponse
// @Failure      400      {object}  map[string]interface{}
// @Failure      401      {object}  map[string]interface{}
// @Failure      403      {object}  map[string]interface{}
// @Router       /entities/bulk-delete [post]
func (h *Entity) BulkDelete(c echo.Context) error {
	var req entity.BulkDeleteRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}
	ids, err := parseUUIDs(req.IDs)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	result, err := h.service.BulkDelete(c.Request().Context(), ids)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToBulkResponse(result))
}

// BulkUpdateType handles POST /entities/bulk-update-type
// @Summary      Recategorise several entities
// @Tags         Entities
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      entity.BulkUpdateTypeRequest  true  "Entity IDs and target type"
// @Success      200      {object}  entity.BulkResponse
// @Failure      400      {object}  map[string]interface{}
// @Failure      401      {object}  map[string]interface{}
// @Failure      403      {object}  map[string]interface{}
// @Router       /entities/bulk-update-type [post]
func (h *Entity) BulkUpdateType(c echo.Context) error {
	var req entity.BulkUpdateTypeRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}
	ids, err := parseUUIDs(req.IDs)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	result, err := h.service.BulkUpdateType(c.Request().Context(), ids, req.Type)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToBulkResponse(result))
}
