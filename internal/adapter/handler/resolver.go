package handler

import (
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-minutes/errors"
	"github.com/johnquangdev/meeting-minutes/internal/adapter/dto/entity"
	"github.com/johnquangdev/meeting-minutes/internal/adapter/presenter"
	"github.com/johnquangdev/meeting-minutes/internal/usecase/resolver"
)

// SuggestionCache exposes the result of the last background merge scan
type SuggestionCache interface {
	Latest() (suggestions []resolver.MergeSuggestion, at time.Time, ok bool)
	// Forget drops cached pairs that reference any of ids
	Forget(ids ...uuid.UUID)
}

// Resolver handles classification and merge endpoints
type Resolver struct {
	service resolver.Service
	cache   SuggestionCache
	logger  *zap.Logger
}

// NewResolverHandler creates a new resolver handler. cache may be nil.
func NewResolverHandler(service resolver.Service, cache SuggestionCache, logger *zap.Logger) *Resolver {
	return &Resolver{service: service, cache: cache, logger: logger}
}

// Classify handles POST /entities/classify
// @Summary      Classify a name
// @Description  Picks a registry category for a name using the hint, the name heuristics and the fallback category
// @Tags         Resolver
// @Accept       json
// @Produce      json
// @Param        request  body      entity.ClassifyRequest  true  "Name and optional hint"
// @Success      200      {object}  entity.ClassifyResponse
// @Failure      400      {object}  map[string]interface{}
// @Router       /entities/classify [post]
func (h *Resolver) Classify(c echo.Context) error {
	var req entity.ClassifyRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}
	slug := h.service.Classify(c.Request().Context(), req.Name, req.Hint)
	return HandleSuccess(h.logger, c, entity.ClassifyResponse{Name: req.Name, Type: slug})
}

// Merge handles POST /entities/merge
// @Summary      Merge two entities
// @Description  Moves every meeting link of source to target and deletes source
// @Tags         Resolver
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      entity.MergeRequest  true  "Source and target IDs"
// @Success      200      {object}  entity.MergeResponse
// @Failure      400      {object}  map[string]interface{}
// @Failure      422      {object}  map[string]interface{}
// @Failure      500      {object}  map[string]interface{}
// @Router       /entities/merge [post]
func (h *Resolver) Merge(c echo.Context) error {
	var req entity.MergeRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}
	sourceID, err := uuid.Parse(req.SourceID)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("source_id must be a valid UUID"))
	}
	targetID, err := uuid.Parse(req.TargetID)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("target_id must be a valid UUID"))
	}

	merged, err := h.service.Merge(c.Request().Context(), sourceID, targetID)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrMergeFailed(err))
	}
	if !merged {
		return HandleError(h.logger, c, errors.ErrMergeRejected(req.SourceID, req.TargetID))
	}
	if h.cache != nil {
		h.cache.Forget(sourceID)
	}
	return HandleSuccess(h.logger, c, entity.MergeResponse{
		Merged:   true,
		SourceID: req.SourceID,
		TargetID: req.TargetID,
	})
}

// MergeSuggestions handles GET /entities/merge-suggestions
// @Summary      Suggest merges
// @Description  Lists same-category pairs that are similar but below the match threshold. cached=true returns the last scheduled scan without pairs whose source or target was merged away since.
// @Tags         Resolver
// @Produce      json
// @Security     BearerAuth
// @Param        cached  query     bool  false  "Return the last background scan"
// @Success      200     {object}  entity.MergeSuggestionsResponse
// @Failure      500     {object}  map[string]interface{}
// @Router       /entities/merge-suggestions [get]
func (h *Resolver) MergeSuggestions(c echo.Context) error {
	if cached, _ := strconv.ParseBool(c.QueryParam("cached")); cached && h.cache != nil {
		if list, at, ok := h.cache.Latest(); ok {
			return HandleSuccess(h.logger, c, entity.MergeSuggestionsResponse{
				Suggestions: presenter.ToMergeSuggestions(list),
				Cached:      true,
				ScannedAt:   &at,
			})
		}
	}

	list, err := h.service.SuggestMerges(c.Request().Context())
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, entity.MergeSuggestionsResponse{
		Suggestions: presenter.ToMergeSuggestions(list),
	})
}
