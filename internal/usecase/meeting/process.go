package meeting

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-minutes/internal/domain/entities"
	"github.com/johnquangdev/meeting-minutes/internal/domain/repositories"
	usecaseErrors "github.com/johnquangdev/meeting-minutes/internal/usecase/errors"
	"github.com/johnquangdev/meeting-minutes/pkg/ai"
	"github.com/johnquangdev/meeting-minutes/pkg/jobcontext"
)

// generate runs one generator call with timeout and retries
func (s *MeetingService) generate(ctx context.Context, kind string, req ai.CompletionRequest) (string, error) {
	jobCtx, cancel := jobcontext.JobBegin(ctx, "generate_"+kind, s.opts.MaxRetries, s.opts.Timeout)
	defer cancel()

	var out string
	err := jobcontext.JobEndWithBackOff(jobCtx, s.newBackOff(), func(ctx context.Context) error {
		if attempt := jobcontext.GetRetryAttempt(ctx); attempt > 0 {
			s.logger.Info("🔄 Retrying generation",
				zap.String("kind", kind),
				zap.Int("attempt", attempt+1),
			)
		}
		text, err := s.generator.Complete(ctx, req)
		if err != nil {
			return err
		}
		out = strings.TrimSpace(text)
		return nil
	})
	if err != nil {
		s.metrics.RecordGeneratorRequest(kind, "error")
		return "", err
	}
	s.metrics.RecordGeneratorRequest(kind, "ok")
	return out, nil
}

// Process generates the summary, entity lines and action items for a transcript,
// stores the meeting and resolves the extracted mentions. Generation failures
// fail the request; resolution failures are reported in the result.
func (s *MeetingService) Process(ctx context.Context, input ProcessInput) (*ProcessResult, error) {
	transcript := strings.TrimSpace(input.Transcript)
	if transcript == "" {
		return nil, usecaseErrors.ErrEmptyTranscript
	}
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", usecaseErrors.ErrInvalidInput)
	}
	meta, err := toJSON(input.Metadata)
	if err != nil {
		return nil, err
	}

	slug := input.MeetingTypeSlug
	if slug == "" {
		slug = entities.DefaultMeetingTypeSlug
	}
	meetingType, err := s.store.MeetingTypes().GetBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("failed to get meeting type: %w", err)
	}
	if meetingType == nil {
		s.logger.Warn("⚠️ Meeting type not found, using default processing", zap.String("meeting_type", slug))
		slug = entities.DefaultMeetingTypeSlug
	}

	s.logger.Info("🤖 Processing meeting",
		zap.String("title", title),
		zap.String("meeting_type", slug),
		zap.Int("transcript_length", len(transcript)),
	)

	summary, err := s.generate(ctx, KindSummary, summaryRequest(transcript, meetingType))
	if err != nil {
		return nil, fmt.Errorf("%w: summary: %w", usecaseErrors.ErrGenerationFailed, err)
	}
	entityText, err := s.generate(ctx, KindEntities, entityRequest(transcript, meetingType))
	if err != nil {
		return nil, fmt.Errorf("%w: entities: %w", usecaseErrors.ErrGenerationFailed, err)
	}
	actionText, err := s.generate(ctx, KindActionItems, actionItemRequest(transcript, meetingType))
	if err != nil {
		return nil, fmt.Errorf("%w: action items: %w", usecaseErrors.ErrGenerationFailed, err)
	}

	m := &entities.Meeting{
		Title:           title,
		Date:            input.Date.UTC(),
		Transcript:      &transcript,
		Summary:         &summary,
		MeetingTypeSlug: slug,
		Metadata:        meta,
	}

	// The meeting, its explicit links and its action items commit together.
	// Mention resolution runs afterwards so a name conflict cannot abort this transaction.
	err = s.store.Transaction(ctx, func(tx repositories.Store) error {
		if err := tx.Meetings().Create(ctx, m); err != nil {
			return fmt.Errorf("failed to create meeting: %w", err)
		}
		if err := s.linkKnown(ctx, tx, m.ID, input.EntityIDs); err != nil {
			return err
		}
		for _, line := range SplitLines(actionText) {
			parsed, ok := s.parser.Parse(line, m.Date)
			if !ok {
				continue
			}
			item := entities.NewActionItem(m.ID, parsed.Description)
			item.Assignee = parsed.Assignee
			item.DueDate = parsed.DueDate
			if err := tx.ActionItems().Create(ctx, item); err != nil {
				return fmt.Errorf("failed to create action item: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	report, err := s.resolver.ResolveMentions(ctx, SplitLines(entityText), m.ID)
	if err != nil {
		s.logger.Error("❌ Entity resolution failed",
			zap.String("meeting_id", m.ID.String()),
			zap.Error(err),
		)
		return nil, fmt.Errorf("meeting %s stored but entity resolution failed: %w", m.ID, err)
	}

	result := &ProcessResult{Resolution: report}
	if s.archiver != nil {
		object, err := s.archiver.ArchiveTranscript(ctx, m.ID, transcript)
		if err != nil {
			s.logger.Warn("⚠️ Failed to archive transcript",
				zap.String("meeting_id", m.ID.String()),
				zap.Error(err),
			)
		} else {
			result.TranscriptObject = object
		}
	}

	if result.Meeting, err = s.GetMeeting(ctx, m.ID); err != nil {
		return nil, err
	}

	s.logger.Info("✅ Meeting processed",
		zap.String("meeting_id", m.ID.String()),
		zap.Int("entities", len(report.Resolved)),
		zap.Int("entity_failures", len(report.Failed)),
		zap.Int("action_items", len(result.Meeting.ActionItems)),
	)
	return result, nil
}

// SuggestTitle asks the generator for a title and falls back to DefaultTitle
func (s *MeetingService) SuggestTitle(ctx context.Context, transcript string) string {
	if strings.TrimSpace(transcript) == "" {
		return DefaultTitle
	}
	title, err := s.generate(ctx, KindTitle, titleRequest(transcript))
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			s.logger.Warn("⚠️ Title generation failed", zap.Error(err))
		}
		return DefaultTitle
	}
	title = strings.TrimSpace(strings.Trim(title, `"`))
	if title == "" {
		return DefaultTitle
	}
	return title
}
