package meeting

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnquangdev/meeting-minutes/internal/domain/entities"
	"github.com/johnquangdev/meeting-minutes/internal/domain/repositories"
	"github.com/johnquangdev/meeting-minutes/internal/testhelper"
	usecaseErrors "github.com/johnquangdev/meeting-minutes/internal/usecase/errors"
	"github.com/johnquangdev/meeting-minutes/internal/usecase/resolver"
	"github.com/johnquangdev/meeting-minutes/pkg/ai"
)

// scriptedGenerator answers by prompt prefix and records every request
type scriptedGenerator struct {
	mu       sync.Mutex
	answers  map[string]string
	failures map[string][]error
	requests []ai.CompletionRequest
}

func (g *scriptedGenerator) Complete(_ context.Context, req ai.CompletionRequest) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.requests = append(g.requests, req)
	for prefix, answer := range g.answers {
		if !strings.HasPrefix(req.Prompt, prefix) {
			continue
		}
		if errs := g.failures[prefix]; len(errs) > 0 {
			g.failures[prefix] = errs[1:]
			return "", errs[0]
		}
		return answer, nil
	}
	return "", ai.ErrEmptyCompletion
}

func (g *scriptedGenerator) count(prefix string) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	n := 0
	for _, r := range g.requests {
		if strings.HasPrefix(r.Prompt, prefix) {
			n++
		}
	}
	return n
}

func defaultAnswers() map[string]string {
	return map[string]string{
		"Please summarize":     "The team agreed on the Q2 roadmap.",
		"Extract entities":     "John Smith|Person\nAcme Corp|Company\nJon Smith|Person\n",
		"Extract action items": "1. John will send the proposal tomorrow\n- Review the budget document and provide feedback\n",
		"Generate a title":     `"Q2 Roadmap Review"`,
	}
}

type fakeArchiver struct {
	err      error
	archived map[uuid.UUID]string
}

func (a *fakeArchiver) ArchiveTranscript(_ context.Context, id uuid.UUID, text string) (string, error) {
	if a.err != nil {
		return "", a.err
	}
	if a.archived == nil {
		a.archived = map[uuid.UUID]string{}
	}
	a.archived[id] = text
	return "transcripts/" + id.String() + ".txt", nil
}

func newProcessService(t *testing.T, gen ai.Generator, archiver TranscriptArchiver) (*MeetingService, repositories.Store) {
	t.Helper()
	store := testhelper.NewStore(t)
	res := resolver.NewService(store, resolver.DefaultConfig(), nil, nil, nil)
	svc := NewMeetingService(store, gen, res, archiver, nil, nil, Options{MaxRetries: 3, Timeout: 5 * time.Second})
	svc.newBackOff = func() backoff.BackOff { return &backoff.ZeroBackOff{} }
	return svc, store
}

var meetingDate = time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC)

func TestProcess(t *testing.T) {
	ctx := context.Background()

	t.Run("stores meeting, action items and resolved entities", func(t *testing.T) {
		gen := &scriptedGenerator{answers: defaultAnswers()}
		archiver := &fakeArchiver{}
		svc, store := newProcessService(t, gen, archiver)

		globex := entities.NewEntity("Globex", entities.EntityTypeCompany, nil)
		require.NoError(t, store.Entities().Create(ctx, globex))

		res, err := svc.Process(ctx, ProcessInput{
			Title:           "Roadmap",
			Date:            meetingDate,
			Transcript:      "John and Acme discussed the roadmap.",
			MeetingTypeSlug: "standup",
			EntityIDs:       []uuid.UUID{globex.ID, uuid.New()},
			Metadata:        map[string]interface{}{"source": "upload"},
		})
		require.NoError(t, err)

		m := res.Meeting
		require.NotNil(t, m.Summary)
		assert.Equal(t, "The team agreed on the Q2 roadmap.", *m.Summary)
		assert.Equal(t, "standup", m.MeetingTypeSlug)
		assert.JSONEq(t, `{"source":"upload"}`, string(m.Metadata))

		names := make([]string, 0, len(m.Entities))
		for _, e := range m.Entities {
			names = append(names, e.Name)
		}
		assert.Equal(t, []string{"Acme Corp", "Globex", "John Smith"}, names)

		require.Len(t, res.Resolution.Resolved, 2)
		assert.Empty(t, res.Resolution.Failed)

		require.Len(t, m.ActionItems, 2)
		require.NotNil(t, m.ActionItems[0].Assignee)
		assert.Equal(t, "John", *m.ActionItems[0].Assignee)
		require.NotNil(t, m.ActionItems[0].DueDate)
		assert.Equal(t, 5, m.ActionItems[0].DueDate.UTC().Day())
		assert.Equal(t, "Review the budget document and provide feedback", m.ActionItems[1].Description)
		assert.Equal(t, entities.ActionItemStatusPending, m.ActionItems[1].Status)

		assert.Equal(t, "transcripts/"+m.ID.String()+".txt", res.TranscriptObject)
		assert.Equal(t, "John and Acme discussed the roadmap.", archiver.archived[m.ID])

		for _, r := range gen.requests {
			if strings.HasPrefix(r.Prompt, "Please summarize") {
				assert.Contains(t, r.System, "Custom instructions for this meeting type:")
				assert.Equal(t, 0.3, r.Temperature)
				assert.Equal(t, 700, r.MaxTokens)
			}
		}
	})

	t.Run("unknown meeting type falls back to general", func(t *testing.T) {
		gen := &scriptedGenerator{answers: defaultAnswers()}
		svc, _ := newProcessService(t, gen, nil)

		res, err := svc.Process(ctx, ProcessInput{Title: "Sync", Date: meetingDate, Transcript: "hello", MeetingTypeSlug: "board-review"})
		require.NoError(t, err)
		assert.Equal(t, entities.DefaultMeetingTypeSlug, res.Meeting.MeetingTypeSlug)
		assert.Empty(t, res.TranscriptObject)
		for _, r := range gen.requests {
			assert.NotContains(t, r.System, "Custom instructions")
		}
	})

	t.Run("retryable errors are retried", func(t *testing.T) {
		gen := &scriptedGenerator{
			answers:  defaultAnswers(),
			failures: map[string][]error{"Please summarize": {&ai.StatusError{Provider: "groq", StatusCode: 503}}},
		}
		svc, _ := newProcessService(t, gen, nil)

		_, err := svc.Process(ctx, ProcessInput{Title: "Sync", Date: meetingDate, Transcript: "hello"})
		require.NoError(t, err)
		assert.Equal(t, 2, gen.count("Please summarize"))
	})

	t.Run("generation failure stores nothing", func(t *testing.T) {
		gen := &scriptedGenerator{
			answers:  defaultAnswers(),
			failures: map[string][]error{"Extract action items": {&ai.StatusError{Provider: "groq", StatusCode: 401}}},
		}
		svc, store := newProcessService(t, gen, nil)

		_, err := svc.Process(ctx, ProcessInput{Title: "Sync", Date: meetingDate, Transcript: "hello"})
		require.Error(t, err)
		assert.ErrorIs(t, err, usecaseErrors.ErrGenerationFailed)
		assert.Equal(t, 1, gen.count("Extract action items"))

		list, err := store.Meetings().List(ctx, repositories.ListOptions{})
		require.NoError(t, err)
		assert.Empty(t, list)
	})

	t.Run("archive failure does not fail the request", func(t *testing.T) {
		gen := &scriptedGenerator{answers: defaultAnswers()}
		svc, _ := newProcessService(t, gen, &fakeArchiver{err: errors.New("minio down")})

		res, err := svc.Process(ctx, ProcessInput{Title: "Sync", Date: meetingDate, Transcript: "hello"})
		require.NoError(t, err)
		assert.Empty(t, res.TranscriptObject)
	})

	t.Run("input validation", func(t *testing.T) {
		svc, _ := newProcessService(t, &scriptedGenerator{answers: defaultAnswers()}, nil)

		_, err := svc.Process(ctx, ProcessInput{Title: "Sync", Transcript: "   "})
		assert.ErrorIs(t, err, usecaseErrors.ErrEmptyTranscript)

		_, err = svc.Process(ctx, ProcessInput{Transcript: "hello"})
		assert.ErrorIs(t, err, usecaseErrors.ErrInvalidInput)
	})
}

func TestSuggestTitle(t *testing.T) {
	ctx := context.Background()

	t.Run("strips quotes and samples the transcript", func(t *testing.T) {
		gen := &scriptedGenerator{answers: defaultAnswers()}
		svc, _ := newProcessService(t, gen, nil)

		long := strings.Repeat("é", 1500)
		assert.Equal(t, "Q2 Roadmap Review", svc.SuggestTitle(ctx, long))

		require.Len(t, gen.requests, 1)
		req := gen.requests[0]
		assert.Equal(t, "Generate a title for this meeting:\n\n"+strings.Repeat("é", 1000)+"...", req.Prompt)
		assert.Equal(t, 50, req.MaxTokens)
	})

	t.Run("falls back on failure", func(t *testing.T) {
		gen := &scriptedGenerator{answers: map[string]string{}}
		svc, _ := newProcessService(t, gen, nil)
		assert.Equal(t, DefaultTitle, svc.SuggestTitle(ctx, "hello"))
		assert.Equal(t, DefaultTitle, svc.SuggestTitle(ctx, "  "))
	})
}
