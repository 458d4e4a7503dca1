package handler

import (
	"encoding/json"
	"io"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-minutes/errors"
	"github.com/johnquangdev/meeting-minutes/internal/adapter/dto/meeting"
	"github.com/johnquangdev/meeting-minutes/internal/adapter/presenter"
	meetingUsecase "github.com/johnquangdev/meeting-minutes/internal/usecase/meeting"
	"github.com/johnquangdev/meeting-minutes/pkg/ai"
)

// SignatureHeader carries the hex HMAC-SHA256 of the request body
const SignatureHeader = "X-Signature"

// maxWebhookBody bounds an ingested transcript payload
const maxWebhookBody = 10 << 20

// WebhookHandler accepts signed transcripts from recorders and other upstream systems
type WebhookHandler struct {
	service meetingUsecase.Service
	secret  string
	logger  *zap.Logger
}

// NewWebhookHandler creates a new webhook handler
func NewWebhookHandler(service meetingUsecase.Service, secret string, logger *zap.Logger) *WebhookHandler {
	return &WebhookHandler{service: service, secret: secret, logger: logger}
}

// IngestTranscript handles POST /webhooks/transcripts
// @Summary      Ingest a signed transcript
// @Description  Same payload as /meetings/process. X-Signature must be the hex HMAC-SHA256 of the body ("sha256=" prefix allowed).
// @Tags         Webhooks
// @Accept       json
// @Produce      json
// @Param        X-Signature  header    string                  true  "Body signature"
// @Param        request      body      meeting.ProcessRequest  true  "Transcript and meeting fields"
// @Success      201          {object}  meeting.ProcessResponse
// @Failure      400          {object}  map[string]interface{}
// @Failure      401          {object}  map[string]interface{}
// @Failure      503          {object}  map[string]interface{}
// @Router       /webhooks/transcripts [post]
func (h *WebhookHandler) IngestTranscript(c echo.Context) error {
	body, err := io.ReadAll(io.LimitReader(c.Request().Body, maxWebhookBody))
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload(err))
	}

	if !ai.VerifyHMAC(h.secret, body, c.Request().Header.Get(SignatureHeader)) {
		if h.logger != nil {
			h.logger.Warn("⚠️ Rejected unsigned transcript webhook",
				zap.String("request_id", getRequestID(c)),
				zap.String("remote_ip", c.RealIP()),
			)
		}
		return HandleError(h.logger, c, errors.ErrInvalidSignature())
	}

	var req meeting.ProcessRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload(err))
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload(err))
	}
	input, err := toProcessInput(&req)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	result, err := h.service.Process(c.Request().Context(), input)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	if h.logger != nil {
		h.logger.Info("📥 Transcript ingested",
			zap.String("meeting_id", result.Meeting.ID.String()),
			zap.Int("resolved", len(result.Resolution.Resolved)),
		)
	}
	return HandleCreated(h.logger, c, presenter.ToProcessResponse(result))
}
