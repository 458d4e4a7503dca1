package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-minutes/internal/infrastructure/metrics"
	"github.com/johnquangdev/meeting-minutes/internal/usecase/resolver"
)

const mergeScanJob = "merge-scan"

// MergeSuggester produces merge suggestions
type MergeSuggester interface {
	SuggestMerges(ctx context.Context) ([]resolver.MergeSuggestion, error)
}

// MergeScanner periodically computes merge suggestions and keeps the latest result
type MergeScanner struct {
	scheduler gocron.Scheduler
	suggester MergeSuggester
	cron      string
	timeout   time.Duration
	logger    *zap.Logger
	metrics   *metrics.Metrics

	mu        sync.RWMutex
	latest    []resolver.MergeSuggestion
	lastRun   time.Time
	hasLatest bool
}

// NewMergeScanner creates a scanner for the given cron expression (UTC).
// An empty expression disables the periodic job; RunOnce still works.
func NewMergeScanner(suggester MergeSuggester, cronExpr string, logger *zap.Logger, m *metrics.Metrics) (*MergeScanner, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	s, err := gocron.NewScheduler(gocron.WithLocation(time.UTC))
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	ms := &MergeScanner{
		scheduler: s,
		suggester: suggester,
		cron:      cronExpr,
		timeout:   5 * time.Minute,
		logger:    logger,
		metrics:   m,
	}

	if cronExpr != "" {
		_, err = s.NewJob(
			gocron.CronJob(cronExpr, false),
			gocron.NewTask(func() {
				ctx, cancel := context.WithTimeout(context.Background(), ms.timeout)
				defer cancel()
				_, _ = ms.RunOnce(ctx)
			}),
			gocron.WithName(mergeScanJob),
			gocron.WithSingletonMode(gocron.LimitModeReschedule),
		)
		if err != nil {
			_ = s.Shutdown()
			return nil, fmt.Errorf("failed to register merge scan (cron: %s): %w", cronExpr, err)
		}
	}

	return ms, nil
}

// Enabled reports whether a periodic job is registered
func (ms *MergeScanner) Enabled() bool {
	return ms.cron != ""
}

// Start starts the scheduler
func (ms *MergeScanner) Start() {
	if !ms.Enabled() {
		log.Println("⚠️ Merge scan disabled (SCHEDULER_MERGE_SCAN_CRON is empty)")
		return
	}
	ms.scheduler.Start()
	log.Printf("⏰ Merge scan scheduled (cron: %s, tz: UTC)", ms.cron)
}

// Stop stops the scheduler and waits for a running scan
func (ms *MergeScanner) Stop() error {
	log.Println("⏹️ Stopping merge scan...")
	return ms.scheduler.Shutdown()
}

// RunOnce computes suggestions now and stores them as the latest result
func (ms *MergeScanner) RunOnce(ctx context.Context) ([]resolver.MergeSuggestion, error) {
	suggestions, err := ms.suggester.SuggestMerges(ctx)
	if err != nil {
		ms.logger.Error("❌ Merge scan failed", zap.Error(err))
		return nil, err
	}

	ms.mu.Lock()
	ms.latest = suggestions
	ms.lastRun = time.Now().UTC()
	ms.hasLatest = true
	ms.mu.Unlock()

	ms.metrics.SetPendingSuggestions(len(suggestions))

	fields := []zap.Field{zap.Int("suggestions", len(suggestions))}
	for i, s := range suggestions {
		if i == 3 {
			break
		}
		fields = append(fields, zap.String(fmt.Sprintf("pair_%d", i+1),
			fmt.Sprintf("%s ~ %s (%.2f)", s.Source.Name, s.Target.Name, s.Similarity)))
	}
	ms.logger.Info("🔍 Merge scan completed", fields...)

	return suggestions, nil
}

// Latest returns the last computed suggestions and when they were computed.
// ok is false until a scan has completed.
func (ms *MergeScanner) Latest() (suggestions []resolver.MergeSuggestion, at time.Time, ok bool) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	return ms.latest, ms.lastRun, ms.hasLatest
}

// Forget drops cached pairs that reference any of ids, so entities removed by
// a merge are not offered again before the next scan
func (ms *MergeScanner) Forget(ids ...uuid.UUID) {
	drop := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}

	ms.mu.Lock()
	kept := make([]resolver.MergeSuggestion, 0, len(ms.latest))
	for _, s := range ms.latest {
		_, src := drop[s.Source.ID]
		_, tgt := drop[s.Target.ID]
		if !src && !tgt {
			kept = append(kept, s)
		}
	}
	removed := len(ms.latest) - len(kept)
	ms.latest = kept
	ms.mu.Unlock()

	if removed > 0 {
		ms.metrics.SetPendingSuggestions(len(kept))
	}
}
