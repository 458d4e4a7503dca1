package resolver

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-minutes/internal/domain/entities"
	"github.com/johnquangdev/meeting-minutes/internal/domain/repositories"
)

// Merge results, used as metric labels
const (
	MergeResultMerged   = "merged"
	MergeResultRejected = "rejected"
	MergeResultError    = "error"
)

// MergeSuggestion is a pair of same-category entities that may be duplicates
type MergeSuggestion struct {
	Source     *entities.Entity
	Target     *entities.Entity
	Similarity float64
}

// Merge re-links every meeting of source to target, then deletes source.
// It returns false without error when either entity is missing or they are the same.
// All writes happen in one transaction.
func (s *service) Merge(ctx context.Context, sourceID, targetID uuid.UUID) (bool, error) {
	if sourceID == targetID {
		s.metrics.RecordMerge(MergeResultRejected)
		return false, nil
	}

	var source, target *entities.Entity
	err := s.store.Transaction(ctx, func(tx repositories.Store) error {
		var err error
		if source, err = tx.Entities().GetByID(ctx, sourceID); err != nil {
			return fmt.Errorf("failed to load source entity: %w", err)
		}
		if target, err = tx.Entities().GetByID(ctx, targetID); err != nil {
			return fmt.Errorf("failed to load target entity: %w", err)
		}
		if source == nil || target == nil {
			return nil
		}

		meetings, err := tx.Meetings().ListByEntity(ctx, sourceID)
		if err != nil {
			return fmt.Errorf("failed to list source meetings: %w", err)
		}
		for _, m := range meetings {
			if err := tx.Meetings().LinkEntity(ctx, m.ID, targetID); err != nil {
				return fmt.Errorf("failed to link target to meeting %s: %w", m.ID, err)
			}
			if _, err := tx.Meetings().UnlinkEntity(ctx, m.ID, sourceID); err != nil {
				return fmt.Errorf("failed to unlink source from meeting %s: %w", m.ID, err)
			}
		}

		if _, err := tx.Entities().Delete(ctx, sourceID); err != nil {
			return fmt.Errorf("failed to delete source entity: %w", err)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("❌ Entity merge failed",
			zap.String("source_id", sourceID.String()),
			zap.String("target_id", targetID.String()),
			zap.Error(err),
		)
		s.metrics.RecordMerge(MergeResultError)
		return false, err
	}

	if source == nil || target == nil {
		s.metrics.RecordMerge(MergeResultRejected)
		return false, nil
	}

	s.logger.Info("🔀 Merged entities",
		zap.String("source", source.Name),
		zap.String("target", target.Name),
	)
	s.metrics.RecordMerge(MergeResultMerged)
	return true, nil
}

// SuggestMerges scores every same-category pair among the known entities and
// returns those in [SuggestionFloor, Threshold), best first.
func (s *service) SuggestMerges(ctx context.Context) ([]MergeSuggestion, error) {
	known, err := s.store.Entities().ListRecent(ctx, s.cfg.KnownEntityWindow)
	if err != nil {
		return nil, fmt.Errorf("failed to load entities: %w", err)
	}

	var suggestions []MergeSuggestion
	for i, a := range known {
		for _, b := range known[i+1:] {
			if a.TypeSlug != b.TypeSlug {
				continue
			}
			score := similarity(a.Name, b.Name, s.cfg.MinContainmentLength)
			if score >= s.cfg.SuggestionFloor && score < s.cfg.Threshold {
				suggestions = append(suggestions, MergeSuggestion{Source: a, Target: b, Similarity: score})
			}
		}
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		si, sj := suggestions[i], suggestions[j]
		if si.Similarity != sj.Similarity {
			return si.Similarity > sj.Similarity
		}
		if si.Source.Name != sj.Source.Name {
			return si.Source.Name < sj.Source.Name
		}
		return si.Target.Name < sj.Target.Name
	})

	if len(suggestions) > s.cfg.SuggestionLimit {
		suggestions = suggestions[:s.cfg.SuggestionLimit]
	}
	return suggestions, nil
}
