package resolver

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-minutes/internal/domain/entities"
	"github.com/johnquangdev/meeting-minutes/internal/domain/repositories"
	"github.com/johnquangdev/meeting-minutes/internal/infrastructure/metrics"
)

// Service resolves extracted mentions to de-duplicated entities
type Service interface {
	// ResolveMentions matches or creates an entity for each line and links it to the meeting
	ResolveMentions(ctx context.Context, lines []string, meetingID uuid.UUID) (*ResolveReport, error)
	// Classify returns a registry slug for a new entity name
	Classify(ctx context.Context, name, hint string) string
	// Merge moves all meeting links from source to target and deletes source
	Merge(ctx context.Context, sourceID, targetID uuid.UUID) (bool, error)
	// SuggestMerges lists same-category pairs that are similar but below the match threshold
	SuggestMerges(ctx context.Context) ([]MergeSuggestion, error)
}

// ResolveReport is the outcome of one resolution pass
type ResolveReport struct {
	// Resolved holds each linked entity once, in input order
	Resolved []*entities.Entity
	Failed   []MentionFailure
}

// MentionFailure records a line that could not be resolved
type MentionFailure struct {
	Line string
	Name string
	Err  error
}

type service struct {
	store      repositories.Store
	cfg        Config
	classifier *Classifier
	logger     *zap.Logger
	metrics    *metrics.Metrics
}

// NewService creates the resolver. registry may wrap store.EntityTypes() with a cache.
func NewService(
	store repositories.Store,
	cfg Config,
	registry CategoryRegistry,
	logger *zap.Logger,
	m *metrics.Metrics,
) Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if registry == nil {
		registry = store.EntityTypes()
	}
	return &service{
		store:      store,
		cfg:        cfg,
		classifier: NewClassifier(cfg, registry, logger, m),
		logger:     logger,
		metrics:    m,
	}
}

func (s *service) Classify(ctx context.Context, name, hint string) string {
	return s.classifier.Classify(ctx, name, hint)
}

// ResolveMentions processes lines in order. Entities created earlier in the
// pass are visible to later lines, so a batch never creates the same name twice.
// Only the initial load of known entities is fatal.
func (s *service) ResolveMentions(ctx context.Context, lines []string, meetingID uuid.UUID) (*ResolveReport, error) {
	start := time.Now()
	defer func() {
		s.metrics.RecordResolveDuration(time.Since(start).Seconds())
	}()

	known, err := s.store.Entities().ListRecent(ctx, s.cfg.KnownEntityWindow)
	if err != nil {
		return nil, fmt.Errorf("failed to load known entities: %w", err)
	}

	report := &ResolveReport{}
	seen := make(map[uuid.UUID]struct{})

	for _, line := range lines {
		mention, ok := ParseMention(line, s.cfg.MinNameLength)
		if !ok {
			s.metrics.RecordMention(metrics.OutcomeSkipped)
			continue
		}

		entity, outcome, err := s.resolveOne(ctx, mention, &known)
		if err == nil {
			err = s.store.Meetings().LinkEntity(ctx, meetingID, entity.ID)
		}
		if err != nil {
			s.logger.Error("❌ Failed to resolve mention",
				zap.String("meeting_id", meetingID.String()),
				zap.String("name", mention.Name),
				zap.Error(err),
			)
			s.metrics.RecordMention(metrics.OutcomeFailed)
			report.Failed = append(report.Failed, MentionFailure{Line: line, Name: mention.Name, Err: err})
			continue
		}

		s.metrics.RecordMention(outcome)
		if _, dup := seen[entity.ID]; !dup {
			seen[entity.ID] = struct{}{}
			report.Resolved = append(report.Resolved, entity)
		}
	}

	s.logger.Info("✅ Mentions resolved",
		zap.String("meeting_id", meetingID.String()),
		zap.Int("lines", len(lines)),
		zap.Int("resolved", len(report.Resolved)),
		zap.Int("failed", len(report.Failed)),
	)
	return report, nil
}

// resolveOne finds or creates the entity for a mention and extends known with new rows
func (s *service) resolveOne(ctx context.Context, m Mention, known *[]*entities.Entity) (*entities.Entity, string, error) {
	if match, score := s.cfg.FindBestMatch(m.Name, *known); match != nil {
		s.logger.Info("🔗 Found existing entity",
			zap.String("name", m.Name),
			zap.String("entity", match.Name),
			zap.Float64("similarity", score),
		)
		return match, metrics.OutcomeMatched, nil
	}

	slug := s.classifier.Classify(ctx, m.Name, m.Hint)
	description := s.cfg.Description
	entity := entities.NewEntity(m.Name, slug, &description)

	err := s.store.Entities().Create(ctx, entity)
	if err == nil {
		s.logger.Info("🆕 Created entity",
			zap.String("name", entity.Name),
			zap.String("type", entity.TypeSlug),
		)
		*known = append(*known, entity)
		return entity, metrics.OutcomeCreated, nil
	}
	if !errors.Is(err, entities.ErrEntityNameConflict) {
		return nil, "", fmt.Errorf("failed to create entity: %w", err)
	}

	// Another writer created the name after our initial load.
	existing, getErr := s.store.Entities().GetByName(ctx, m.Name)
	if getErr != nil {
		return nil, "", fmt.Errorf("failed to load conflicting entity: %w", getErr)
	}
	if existing == nil {
		return nil, "", fmt.Errorf("entity %q reported as duplicate but not found: %w", m.Name, err)
	}
	*known = append(*known, existing)
	return existing, metrics.OutcomeConflict, nil
}
