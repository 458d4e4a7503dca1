package handler

import (
	stdErrors "errors"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-minutes/errors"
	"github.com/johnquangdev/meeting-minutes/internal/adapter/dto/common"
	"github.com/johnquangdev/meeting-minutes/internal/adapter/dto/entity"
	"github.com/johnquangdev/meeting-minutes/internal/adapter/presenter"
	"github.com/johnquangdev/meeting-minutes/internal/domain/entities"
	entityUsecase "github.com/johnquangdev/meeting-minutes/internal/usecase/entity"
)

// EntityType handles the entity type registry
type EntityType struct {
	service entityUsecase.Service
	logger  *zap.Logger
}

// NewEntityTypeHandler creates a new entity type handler
func NewEntityTypeHandler(service entityUsecase.Service, logger *zap.Logger) *EntityType {
	return &EntityType{service: service, logger: logger}
}

// a missing registry row addressed by ID is a 404, not a bad category
func registryError(err error, id string) error {
	if stdErrors.Is(err, entities.ErrEntityTypeNotFound) {
		return errors.ErrNotFound("Entity type").WithDetail("entity_type_id", id)
	}
	return err
}

// ListEntityTypes handles GET /entity-types
// @Summary      List entity types
// @Description  Returns the entity type registry ordered by name
// @Tags         EntityTypes
// @Produce      json
// @Success      200  {array}   entity.EntityTypeResponse
// @Failure      500  {object}  map[string]interface{}
// @Router       /entity-types [get]
func (h *EntityType) ListEntityTypes(c echo.Context) error {
	types, err := h.service.ListEntityTypes(c.Request().Context())
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToEntityTypeList(types))
}

// GetEntityType handles GET /entity-types/:id
// @Summary      Get an entity type
// @Tags         EntityTypes
// @Produce      json
// @Param        id   path      string  true  "Entity type ID (UUID)"
// @Success      200  {object}  entity.EntityTypeResponse
// @Failure      404  {object}  map[string]interface{}
// @Router       /entity-types/{id} [get]
func (h *EntityType) GetEntityType(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	t, err := h.service.GetEntityType(c.Request().Context(), id)
	if err != nil {
		return HandleError(h.logger, c, registryError(err, id.String()))
	}
	return HandleSuccess(h.logger, c, presenter.ToEntityTypeResponse(t))
}

// CreateEntityType handles POST /entity-types
// @Summary      Create an entity type
// @Description  Registers a user-defined category. The slug is derived from the name when omitted.
// @Tags         EntityTypes
// @Accept       json
// @Produce      json
// @Param        request  body      entity.CreateEntityTypeRequest  true  "Entity type"
// @Success      201      {object}  entity.EntityTypeResponse
// @Failure      400      {object}  map[string]interface{}
// @Failure      409      {object}  map[string]interface{}
// @Router       /entity-types [post]
func (h *EntityType) CreateEntityType(c echo.Context) error {
	var req entity.CreateEntityTypeRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	t, err := h.service.CreateEntityType(c.Request().Context(), entityUsecase.CreateEntityTypeInput{
		Name:        req.Name,
		Slug:        req.Slug,
		ColorClass:  req.ColorClass,
		Description: req.Description,
	})
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleCreated(h.logger, c, presenter.ToEntityTypeResponse(t))
}

// UpdateEntityType handles PUT /entity-types/:id
// @Summary      Update an entity type
// @Description  System types accept colour and description changes only
// @Tags         EntityTypes
// @Accept       json
// @Produce      json
// @Param        id       path      string                          true  "Entity type ID (UUID)"
// @Param        request  body      entity.UpdateEntityTypeRequest  true  "Fields to change"
// @Success      200      {object}  entity.EntityTypeResponse
// @Failure      403      {object}  map[string]interface{}
// @Failure      404      {object}  map[string]interface{}
// @Router       /entity-types/{id} [put]
func (h *EntityType) UpdateEntityType(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	var req entity.UpdateEntityTypeRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	t, err := h.service.UpdateEntityType(c.Request().Context(), id, entityUsecase.UpdateEntityTypeInput{
		Name:        req.Name,
		ColorClass:  req.ColorClass,
		Description: req.Description,
	})
	if err != nil {
		return HandleError(h.logger, c, registryError(err, id.String()))
	}
	return HandleSuccess(h.logger, c, presenter.ToEntityTypeResponse(t))
}

// DeleteEntityType handles DELETE /entity-types/:id
// @Summary      Delete an entity type
// @Description  Fails for system types and for types still used by entities
// @Tags         EntityTypes
// @Produce      json
// @Param        id   path      string  true  "Entity type ID (UUID)"
// @Success      200  {object}  common.DeletedResponse
// @Failure      403  {object}  map[string]interface{}
// @Failure      409  {object}  map[string]interface{}
// @Router       /entity-types/{id} [delete]
func (h *EntityType) DeleteEntityType(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	if err := h.service.DeleteEntityType(c.Request().Context(), id); err != nil {
		return HandleError(h.logger, c, registryError(err, id.String()))
	}
	return HandleSuccess(h.logger, c, common.DeletedResponse{ID: id.String(), Deleted: true})
}
