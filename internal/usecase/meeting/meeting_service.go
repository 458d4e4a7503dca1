package meeting

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/johnquangdev/meeting-minutes/internal/domain/entities"
	"github.com/johnquangdev/meeting-minutes/internal/domain/repositories"
	"github.com/johnquangdev/meeting-minutes/internal/infrastructure/metrics"
	usecaseErrors "github.com/johnquangdev/meeting-minutes/internal/usecase/errors"
	"github.com/johnquangdev/meeting-minutes/internal/usecase/resolver"
	"github.com/johnquangdev/meeting-minutes/pkg/ai"
)

// Options tune generator calls
type Options struct {
	// MaxRetries is the number of attempts per generator call
	MaxRetries int
	// Timeout bounds one generator call including retries
	Timeout time.Duration
}

// MeetingService implements Service
type MeetingService struct {
	store     repositories.Store
	generator ai.Generator
	resolver  MentionResolver
	archiver  TranscriptArchiver
	parser    *ActionItemParser
	logger    *zap.Logger
	metrics   *metrics.Metrics
	opts      Options

	newBackOff func() backoff.BackOff
}

// Ensure MeetingService implements Service interface
var _ Service = (*MeetingService)(nil)

// NewMeetingService constructs a new meeting service. archiver may be nil.
func NewMeetingService(
	store repositories.Store,
	generator ai.Generator,
	res MentionResolver,
	archiver TranscriptArchiver,
	logger *zap.Logger,
	m *metrics.Metrics,
	opts Options,
) *MeetingService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MeetingService{
		store:     store,
		generator: generator,
		resolver:  res,
		archiver:  archiver,
		parser:    NewActionItemParser(),
		logger:    logger,
		metrics:   m,
		opts:      opts,
		newBackOff: func() backoff.BackOff {
			return backoff.NewExponentialBackOff()
		},
	}
}

func toJSON(v map[string]interface{}) (datatypes.JSON, error) {
	if v == nil {
		return nil, nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("%w: metadata: %v", usecaseErrors.ErrInvalidInput, err)
	}
	return datatypes.JSON(raw), nil
}

// requireMeetingType returns ErrMeetingTypeNotFound unless slug is registered
func (s *MeetingService) requireMeetingType(ctx context.Context, slug string) error {
	mt, err := s.store.MeetingTypes().GetBySlug(ctx, slug)
	if err != nil {
		return fmt.Errorf("failed to get meeting type: %w", err)
	}
	if mt == nil {
		return fmt.Errorf("%w: %q", entities.ErrMeetingTypeNotFound, slug)
	}
	return nil
}

// linkKnown links the entities that exist and logs the rest
func (s *MeetingService) linkKnown(ctx context.Context, tx repositories.Store, meetingID uuid.UUID, ids []uuid.UUID) error {
	for _, id := range ids {
		e, err := tx.Entities().GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to load entity %s: %w", id, err)
		}
		if e == nil {
			s.logger.Warn("⚠️ Skipping unknown entity id",
				zap.String("meeting_id", meetingID.String()),
				zap.String("entity_id", id.String()),
			)
			continue
		}
		if err := tx.Meetings().LinkEntity(ctx, meetingID, id); err != nil {
			return fmt.Errorf("failed to link entity %s: %w", id, err)
		}
	}
	return nil
}

func (s *MeetingService) CreateMeeting(ctx context.Context, input CreateMeetingInput) (*entities.Meeting, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", usecaseErrors.ErrInvalidInput)
	}
	slug := input.MeetingTypeSlug
	if slug == "" {
		slug = entities.DefaultMeetingTypeSlug
	}
	if err := s.requireMeetingType(ctx, slug); err != nil {
		return nil, err
	}
	meta, err := toJSON(input.Metadata)
	if err != nil {
		return nil, err
	}

	m := &entities.Meeting{
		Title:           title,
		Date:            input.Date.UTC(),
		Transcript:      input.Transcript,
		Summary:         input.Summary,
		MeetingTypeSlug: slug,
		Metadata:        meta,
	}

	err = s.store.Transaction(ctx, func(tx repositories.Store) error {
		if err := tx.Meetings().Create(ctx, m); err != nil {
			return fmt.Errorf("failed to create meeting: %w", err)
		}
		return s.linkKnown(ctx, tx, m.ID, input.EntityIDs)
	})
	if err != nil {
		return nil, err
	}

	return s.GetMeeting(ctx, m.ID)
}

func (s *MeetingService) GetMeeting(ctx context.Context, id uuid.UUID) (*entities.Meeting, error) {
	m, err := s.store.Meetings().GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get meeting: %w", err)
	}
	if m == nil {
		return nil, entities.ErrMeetingNotFound
	}
	return m, nil
}

func (s *MeetingService) ListMeetings(ctx context.Context, opts repositories.ListOptions) ([]*entities.Meeting, error) {
	return s.store.Meetings().List(ctx, opts)
}

func (s *MeetingService) UpdateMeeting(ctx context.Context, id uuid.UUID, input UpdateMeetingInput) (*entities.Meeting, error) {
	m, err := s.GetMeeting(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, fmt.Errorf("%w: title is required", usecaseErrors.ErrInvalidInput)
		}
		m.Title = title
	}
	if input.Date != nil {
		m.Date = input.Date.UTC()
	}
	if input.Transcript != nil {
		m.Transcript = input.Transcript
	}
	if input.Summary != nil {
		m.Summary = input.Summary
	}
	if input.MeetingTypeSlug != nil && *input.MeetingTypeSlug != m.MeetingTypeSlug {
		if err := s.requireMeetingType(ctx, *input.MeetingTypeSlug); err != nil {
			return nil, err
		}
		m.MeetingTypeSlug = *input.MeetingTypeSlug
	}
	if input.Metadata != nil {
		if m.Metadata, err = toJSON(input.Metadata); err != nil {
			return nil, err
		}
	}

	// Children are managed through their own endpoints.
	m.ActionItems = nil
	m.Entities = nil

	if err := s.store.Meetings().Update(ctx, m); err != nil {
		return nil, err
	}
	return s.GetMeeting(ctx, id)
}

func (s *MeetingService) DeleteMeeting(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.store.Meetings().Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete meeting: %w", err)
	}
	if !deleted {
		return entities.ErrMeetingNotFound
	}
	return nil
}

func (s *MeetingService) LinkEntity(ctx context.Context, meetingID, entityID uuid.UUID) error {
	if _, err := s.GetMeeting(ctx, meetingID); err != nil {
		return err
	}
	e, err := s.store.Entities().GetByID(ctx, entityID)
	if err != nil {
		return fmt.Errorf("failed to get entity: %w", err)
	}
	if e == nil {
		return entities.ErrEntityNotFound
	}
	return s.store.Meetings().LinkEntity(ctx, meetingID, entityID)
}

func (s *MeetingService) UnlinkEntity(ctx context.Context, meetingID, entityID uuid.UUID) error {
	removed, err := s.store.Meetings().UnlinkEntity(ctx, meetingID, entityID)
	if err != nil {
		return fmt.Errorf("failed to unlink entity: %w", err)
	}
	if !removed {
		return fmt.Errorf("%w: entity %s is not linked to meeting %s", usecaseErrors.ErrNotFound, entityID, meetingID)
	}
	return nil
}

func (s *MeetingService) ResolveEntities(ctx context.Context, meetingID uuid.UUID, lines []string) (*resolver.ResolveReport, error) {
	if _, err := s.GetMeeting(ctx, meetingID); err != nil {
		return nil, err
	}
	return s.resolver.ResolveMentions(ctx, lines, meetingID)
}

func (s *MeetingService) ListMeetingTypes(ctx context.Context) ([]*entities.MeetingType, error) {
	return s.store.MeetingTypes().List(ctx)
}

func (s *MeetingService) GetMeetingType(ctx context.Context, id uuid.UUID) (*entities.MeetingType, error) {
	mt, err := s.store.MeetingTypes().GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get meeting type: %w", err)
	}
	if mt == nil {
		return nil, entities.ErrMeetingTypeNotFound
	}
	return mt, nil
}

func (s *MeetingService) CreateMeetingType(ctx context.Context, input MeetingTypeInput) (*entities.MeetingType, error) {
	if input.Name == nil || strings.TrimSpace(*input.Name) == "" {
		return nil, usecaseErrors.ErrEmptyName
	}
	name := strings.TrimSpace(*input.Name)
	slug := entities.Slugify(name)
	if input.Slug != nil && *input.Slug != "" {
		slug = *input.Slug
	}

	mt := &entities.MeetingType{
		Name:                   name,
		Slug:                   slug,
		Description:            input.Description,
		SummaryInstructions:    input.SummaryInstructions,
		EntityInstructions:     input.EntityInstructions,
		ActionItemInstructions: input.ActionItemInstructions,
	}
	if err := s.store.MeetingTypes().Create(ctx, mt); err != nil {
		return nil, err
	}
	return mt, nil
}

// UpdateMeetingType changes name, description and instructions. The slug is immutable.
func (s *MeetingService) UpdateMeetingType(ctx context.Context, id uuid.UUID, input MeetingTypeInput) (*entities.MeetingType, error) {
	mt, err := s.GetMeetingType(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, usecaseErrors.ErrEmptyName
		}
		mt.Name = name
	}
	if input.Description != nil {
		mt.Description = input.Description
	}
	if input.SummaryInstructions != nil {
		mt.SummaryInstructions = input.SummaryInstructions
	}
	if input.EntityInstructions != nil {
		mt.EntityInstructions = input.EntityInstructions
	}
	if input.ActionItemInstructions != nil {
		mt.ActionItemInstructions = input.ActionItemInstructions
	}

	if err := s.store.MeetingTypes().Update(ctx, mt); err != nil {
		return nil, err
	}
	return mt, nil
}

func (s *MeetingService) DeleteMeetingType(ctx context.Context, id uuid.UUID) error {
	mt, err := s.GetMeetingType(ctx, id)
	if err != nil {
		return err
	}
	if mt.IsSystem {
		return entities.ErrSystemMeetingType
	}
	n, err := s.store.Meetings().CountByType(ctx, mt.Slug)
	if err != nil {
		return fmt.Errorf("failed to count meetings: %w", err)
	}
	if n > 0 {
		return fmt.Errorf("%w: %d meetings use %q", entities.ErrMeetingTypeInUse, n, mt.Slug)
	}
	if _, err := s.store.MeetingTypes().Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete meeting type: %w", err)
	}
	return nil
}

func (s *MeetingService) ListActionItems(ctx context.Context, meetingID uuid.UUID) ([]*entities.ActionItem, error) {
	if _, err := s.GetMeeting(ctx, meetingID); err != nil {
		return nil, err
	}
	return s.store.ActionItems().ListByMeeting(ctx, meetingID)
}

func (s *MeetingService) CreateActionItem(ctx context.Context, meetingID uuid.UUID, input ActionItemInput) (*entities.ActionItem, error) {
	if _, err := s.GetMeeting(ctx, meetingID); err != nil {
		return nil, err
	}
	desc := strings.TrimSpace(input.Description)
	if desc == "" {
		return nil, fmt.Errorf("%w: description is required", usecaseErrors.ErrInvalidInput)
	}
	status := input.Status
	if status == "" {
		status = entities.ActionItemStatusPending
	}
	if !status.Valid() {
		return nil, fmt.Errorf("%w: %q", entities.ErrInvalidActionStatus, status)
	}

	item := entities.NewActionItem(meetingID, desc)
	item.Assignee = input.Assignee
	item.DueDate = input.DueDate
	item.Status = status

	if err := s.store.ActionItems().Create(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to create action item: %w", err)
	}
	return item, nil
}

func (s *MeetingService) UpdateActionItem(ctx context.Context, id uuid.UUID, input UpdateActionItemInput) (*entities.ActionItem, error) {
	item, err := s.store.ActionItems().GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get action item: %w", err)
	}
	if item == nil {
		return nil, entities.ErrActionItemNotFound
	}

	if input.Description != nil {
		desc := strings.TrimSpace(*input.Description)
		if desc == "" {
			return nil, fmt.Errorf("%w: description is required", usecaseErrors.ErrInvalidInput)
		}
		item.Description = desc
	}
	if input.Assignee != nil {
		item.Assignee = input.Assignee
	}
	if input.DueDate != nil {
		item.DueDate = input.DueDate
	}
	if input.Status != nil {
		if !input.Status.Valid() {
			return nil, fmt.Errorf("%w: %q", entities.ErrInvalidActionStatus, *input.Status)
		}
		item.Status = *input.Status
	}

	if err := s.store.ActionItems().Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}
