package jobcontext

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
)

type KeyContext string

var (
	keyJobID        KeyContext = "job_id"
	keyJobType      KeyContext = "job_type"
	keyRetryAttempt KeyContext = "retry_attempt"
	keyJobStartTime KeyContext = "job_start_time"
	keyMaxRetries   KeyContext = "max_retries"
)

// DefaultTimeout bounds a job when the caller passes zero
const DefaultTimeout = 5 * time.Minute

// JobMetadata holds metadata for a job execution
type JobMetadata struct {
	JobID        uuid.UUID
	JobType      string
	RetryAttempt int
	MaxRetries   int
	StartTime    time.Time
}

// JobBegin initializes a job context with metadata and timeout
func JobBegin(parentCtx context.Context, jobType string, maxRetries int, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if maxRetries <= 0 {
		maxRetries = 3
	}

	// Create context with timeout to prevent infinite hanging
	ctx, cancel := context.WithTimeout(parentCtx, timeout)

	// Set job metadata
	ctx = context.WithValue(ctx, keyJobID, uuid.New())
	ctx = context.WithValue(ctx, keyJobType, jobType)
	ctx = context.WithValue(ctx, keyRetryAttempt, 0)
	ctx = context.WithValue(ctx, keyMaxRetries, maxRetries)
	ctx = context.WithValue(ctx, keyJobStartTime, time.Now())

	return ctx, cancel
}

// JobEnd executes the job function with panic recovery and exponential backoff.
// Only errors accepted by IsRetryableError are retried.
func JobEnd(ctx context.Context, jobFunc func(context.Context) error) error {
	return JobEndWithBackOff(ctx, backoff.NewExponentialBackOff(), jobFunc)
}

// JobEndWithBackOff is JobEnd with a caller supplied backoff policy
func JobEndWithBackOff(ctx context.Context, bo backoff.BackOff, jobFunc func(context.Context) error) error {
	maxRetries := GetMaxRetries(ctx)
	attempt := 0
	permanent := false

	operation := func() error {
		attemptCtx := SetRetryAttempt(ctx, attempt)
		attempt++

		err := runSafely(attemptCtx, jobFunc)
		if err == nil {
			return nil
		}
		if !IsRetryableError(err) {
			permanent = true
			return backoff.Permanent(fmt.Errorf("non-retryable error: %w", err))
		}
		return err
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(bo, uint64(maxRetries-1)), ctx)
	if err := backoff.Retry(operation, policy); err != nil {
		if !permanent && attempt >= maxRetries {
			return fmt.Errorf("max retries (%d) exceeded: %w", maxRetries, err)
		}
		return err
	}
	return nil
}

func runSafely(ctx context.Context, jobFunc func(context.Context) error) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic recovered: %v", p)
		}
	}()

	// Check if context was cancelled before execution
	if ctx.Err() != nil {
		return fmt.Errorf("context cancelled before job execution: %w", ctx.Err())
	}
	return jobFunc(ctx)
}

// GetRetryAttempt extracts current retry attempt from context
func GetRetryAttempt(ctx context.Context) int {
	attempt, ok := ctx.Value(keyRetryAttempt).(int)
	if !ok {
		return 0
	}
	return attempt
}

// SetRetryAttempt updates retry attempt in context
func SetRetryAttempt(ctx context.Context, attempt int) context.Context {
	return context.WithValue(ctx, keyRetryAttempt, attempt)
}

// GetMaxRetries extracts max retries from context
func GetMaxRetries(ctx context.Context) int {
	maxRetries, ok := ctx.Value(keyMaxRetries).(int)
	if !ok || maxRetries <= 0 {
		return 3 // default
	}
	return maxRetries
}

// GetJobMetadata reads the job values stored by JobBegin
func GetJobMetadata(ctx context.Context) *JobMetadata {
	meta := &JobMetadata{
		RetryAttempt: GetRetryAttempt(ctx),
		MaxRetries:   GetMaxRetries(ctx),
	}
	meta.JobID, _ = ctx.Value(keyJobID).(uuid.UUID)
	meta.JobType, _ = ctx.Value(keyJobType).(string)
	meta.StartTime, _ = ctx.Value(keyJobStartTime).(time.Time)
	return meta
}

// retryable is implemented by errors that know whether a retry may help
type retryable interface {
	Retryable() bool
}

// transientMarkers are message fragments of failures worth another attempt:
// timeouts, dropped connections, lock contention, throttling and upstream 5xx.
var transientMarkers = []string{
	"context deadline exceeded",
	"connection refused",
	"connection reset",
	"network unreachable",
	"no such host",
	"i/o timeout",
	"deadlock",
	"40001",
	"40p01",
	"rate limit",
	"too many requests",
	"429",
	"status 5",
	"internal server error",
	"service unavailable",
	"bad gateway",
	"overloaded",
	"temporary failure",
	"try again",
}

// IsRetryableError reports whether err should trigger another attempt.
// Typed answers win; everything else is matched against transientMarkers.
func IsRetryableError(err error) bool {
	if err == nil {
		return false
	}

	var r retryable
	if errors.As(err, &r) {
		return r.Retryable()
	}
	if errors.Is(err, context.Canceled) {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	msg := strings.ToLower(err.Error())
	for _, marker := range transientMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}
