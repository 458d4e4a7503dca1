package handler

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-minutes/errors"
	usecaseErrors "github.com/johnquangdev/meeting-minutes/internal/usecase/errors"
	meetingUsecase "github.com/johnquangdev/meeting-minutes/internal/usecase/meeting"
)

const transcriptURLExpiry = time.Hour

// TranscriptStore reads the transcript archive
type TranscriptStore interface {
	TranscriptURL(ctx context.Context, meetingID uuid.UUID, expiry time.Duration) (string, error)
	ListTranscripts(ctx context.Context) ([]uuid.UUID, error)
}

// TranscriptArchive serves archived transcripts
type TranscriptArchive struct {
	store    TranscriptStore
	meetings meetingUsecase.Service
	logger   *zap.Logger
}

// NewTranscriptArchive creates a transcript archive handler. store is nil when storage is disabled.
func NewTranscriptArchive(store TranscriptStore, meetings meetingUsecase.Service, logger *zap.Logger) *TranscriptArchive {
	return &TranscriptArchive{store: store, meetings: meetings, logger: logger}
}

// ListTranscripts handles GET /transcripts
// @Summary      List archived transcripts
// @Description  Returns the IDs of meetings whose transcript is archived
// @Tags         Transcripts
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  map[string]interface{}  "Storage not configured or unavailable"
// @Router       /transcripts [get]
func (h *TranscriptArchive) ListTranscripts(c echo.Context) error {
	if h.store == nil {
		return HandleError(h.logger, c, usecaseErrors.ErrStorageDisabled)
	}

	ids, err := h.store.ListTranscripts(c.Request().Context())
	if err != nil {
		return HandleError(h.logger, c, errors.ErrStorageFailed("list", err))
	}

	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return HandleSuccess(h.logger, c, map[string]interface{}{
		"meeting_ids": out,
		"count":       len(out),
	})
}

// TranscriptURL handles GET /meetings/:id/transcript-url
// @Summary      Get a download URL for an archived transcript
// @Tags         Transcripts
// @Produce      json
// @Param        id   path      string  true  "Meeting ID (UUID)"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Failure      500  {object}  map[string]interface{}
// @Router       /meetings/{id}/transcript-url [get]
func (h *TranscriptArchive) TranscriptURL(c echo.Context) error {
	if h.store == nil {
		return HandleError(h.logger, c, usecaseErrors.ErrStorageDisabled)
	}
	id, err := pathUUID(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	ctx := c.Request().Context()
	if _, err := h.meetings.GetMeeting(ctx, id); err != nil {
		return HandleError(h.logger, c, err)
	}

	url, err := h.store.TranscriptURL(ctx, id, transcriptURLExpiry)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrStorageFailed("presign", err))
	}
	return HandleSuccess(h.logger, c, map[string]interface{}{
		"meeting_id": id.String(),
		"url":        url,
		"expires_in": transcriptURLExpiry.String(),
	})
}
