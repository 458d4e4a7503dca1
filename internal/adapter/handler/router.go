package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/johnquangdev/meeting-minutes/internal/infrastructure/http/middleware"
	"github.com/johnquangdev/meeting-minutes/pkg/config"
)

// Router holds all handlers
type Router struct {
	cfg       *config.Config
	tokens    middleware.TokenValidator
	gatherer  prometheus.Gatherer
	healthy   func() error
	entity    *Entity
	types     *EntityType
	resolver  *Resolver
	meeting   *Meeting
	meetTypes *MeetingType
	archive   *TranscriptArchive
	webhook   *WebhookHandler
}

// Handlers groups the route handlers passed to NewRouter
type Handlers struct {
	Entity      *Entity
	EntityType  *EntityType
	Resolver    *Resolver
	Meeting     *Meeting
	MeetingType *MeetingType
	Archive     *TranscriptArchive
	Webhook     *WebhookHandler
}

// NewRouter creates a new router with all handlers.
// gatherer backs /metrics and healthy backs /health; either may be nil.
func NewRouter(cfg *config.Config, tokens middleware.TokenValidator, gatherer prometheus.Gatherer, healthy func() error, h Handlers) *Router {
	return &Router{
		cfg:       cfg,
		tokens:    tokens,
		gatherer:  gatherer,
		healthy:   healthy,
		entity:    h.Entity,
		types:     h.EntityType,
		resolver:  h.Resolver,
		meeting:   h.Meeting,
		meetTypes: h.MeetingType,
		archive:   h.Archive,
		webhook:   h.Webhook,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", rt.healthCheck)

	if rt.gatherer != nil {
		e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(rt.gatherer, promhttp.HandlerOpts{})))
	}
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// API v1 group
	v1 := e.Group("/v1")
	admin := middleware.EchoAdmin(rt.tokens)

	rt.setupEntityTypeRoutes(v1)
	rt.setupEntityRoutes(v1, admin)
	rt.setupMeetingTypeRoutes(v1)
	rt.setupMeetingRoutes(v1)
	rt.setupWebhookRoutes(v1)
}

// setupEntityTypeRoutes configures the entity type registry routes
func (rt *Router) setupEntityTypeRoutes(g *echo.Group) {
	types := g.Group("/entity-types")
	types.GET("", rt.types.ListEntityTypes)
	types.POST("", rt.types.CreateEntityType)
	types.GET("/:id", rt.types.GetEntityType)
	types.PUT("/:id", rt.types.UpdateEntityType)
	types.DELETE("/:id", rt.types.DeleteEntityType)
}

// setupEntityRoutes configures entity, classification and merge routes
func (rt *Router) setupEntityRoutes(g *echo.Group, admin echo.MiddlewareFunc) {
	ents := g.Group("/entities")
	ents.GET("", rt.entity.ListEntities)
	ents.POST("", rt.entity.CreateEntity)
	ents.GET("/low-usage", rt.entity.ListLowUsage)
	ents.POST("/classify", rt.resolver.Classify)

	// Admin only
	ents.POST("/bulk-delete", rt.entity.BulkDelete, admin)
	ents.POST("/bulk-update-type", rt.entity.BulkUpdateType, admin)
	ents.GET("/merge-suggestions", rt.resolver.MergeSuggestions, admin)
	ents.POST("/merge", rt.resolver.Merge, admin)

	ents.GET("/:id", rt.entity.GetEntity)
	ents.PUT("/:id", rt.entity.UpdateEntity)
	ents.DELETE("/:id", rt.entity.DeleteEntity)
	ents.GET("/:id/meetings", rt.entity.ListMeetings)
}

// setupMeetingTypeRoutes configures meeting type routes
func (rt *Router) setupMeetingTypeRoutes(g *echo.Group) {
	types := g.Group("/meeting-types")
	types.GET("", rt.meetTypes.ListMeetingTypes)
	types.POST("", rt.meetTypes.CreateMeetingType)
	types.GET("/:id", rt.meetTypes.GetMeetingType)
	types.PUT("/:id", rt.meetTypes.UpdateMeetingType)
	types.DELETE("/:id", rt.meetTypes.DeleteMeetingType)
}

// setupMeetingRoutes configures meeting, action item and transcript routes
func (rt *Router) setupMeetingRoutes(g *echo.Group) {
	meetings := g.Group("/meetings")
	meetings.GET("", rt.meeting.ListMeetings)
	meetings.POST("", rt.meeting.CreateMeeting)
	meetings.POST("/process", rt.meeting.ProcessMeeting)
	meetings.POST("/suggest-title", rt.meeting.SuggestTitle)
	meetings.GET("/:id", rt.meeting.GetMeeting)
	meetings.PUT("/:id", rt.meeting.UpdateMeeting)
	meetings.DELETE("/:id", rt.meeting.DeleteMeeting)
	meetings.POST("/:id/entities/resolve", rt.meeting.ResolveEntities)
	meetings.POST("/:id/entities/:entity_id", rt.meeting.LinkEntity)
	meetings.DELETE("/:id/entities/:entity_id", rt.meeting.UnlinkEntity)
	meetings.GET("/:id/action-items", rt.meeting.ListActionItems)
	meetings.POST("/:id/action-items", rt.meeting.CreateActionItem)

	g.PUT("/action-items/:id", rt.meeting.UpdateActionItem)

	if rt.archive != nil {
		meetings.GET("/:id/transcript-url", rt.archive.TranscriptURL)
		g.GET("/transcripts", rt.archive.ListTranscripts)
	} else {
		meetings.GET("/:id/transcript-url", rt.notImplemented)
		g.GET("/transcripts", rt.notImplemented)
	}
}

// setupWebhookRoutes configures signed ingestion routes
func (rt *Router) setupWebhookRoutes(g *echo.Group) {
	hooks := g.Group("/webhooks")
	if rt.webhook != nil {
		hooks.POST("/transcripts", rt.webhook.IngestTranscript)
	} else {
		hooks.POST("/transcripts", rt.notImplemented)
	}
}

// notImplemented returns 501 Not Implemented response
func (rt *Router) notImplemented(c echo.Context) error {
	return c.JSON(http.StatusNotImplemented, map[string]interface{}{
		"error":  "This endpoint is not enabled",
		"path":   c.Request().URL.Path,
		"method": c.Request().Method,
	})
}

// healthCheck returns health status
func (rt *Router) healthCheck(c echo.Context) error {
	env := ""
	if rt.cfg != nil {
		env = rt.cfg.Server.Environment
	}
	if rt.healthy != nil {
		if err := rt.healthy(); err != nil {
			return c.JSON(http.StatusServiceUnavailable, map[string]interface{}{
				"status":      "unavailable",
				"environment": env,
				"error":       err.Error(),
			})
		}
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"environment": env,
	})
}
