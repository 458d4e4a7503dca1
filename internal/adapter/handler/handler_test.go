package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnquangdev/meeting-minutes/internal/domain/entities"
	"github.com/johnquangdev/meeting-minutes/internal/domain/repositories"
	"github.com/johnquangdev/meeting-minutes/internal/infrastructure/metrics"
	"github.com/johnquangdev/meeting-minutes/internal/infrastructure/scheduler"
	"github.com/johnquangdev/meeting-minutes/internal/testhelper"
	entityUsecase "github.com/johnquangdev/meeting-minutes/internal/usecase/entity"
	meetingUsecase "github.com/johnquangdev/meeting-minutes/internal/usecase/meeting"
	"github.com/johnquangdev/meeting-minutes/internal/usecase/resolver"
	"github.com/johnquangdev/meeting-minutes/pkg/ai"
	"github.com/johnquangdev/meeting-minutes/pkg/config"
	"github.com/johnquangdev/meeting-minutes/pkg/jwt"
	pkgvalidator "github.com/johnquangdev/meeting-minutes/pkg/validator"
)

const testWebhookSecret = "webhook-secret"

// prefixGenerator answers by prompt prefix
type prefixGenerator struct {
	answers map[string]string
	err     error
}

func (g *prefixGenerator) Complete(_ context.Context, req ai.CompletionRequest) (string, error) {
	if g.err != nil {
		return "", g.err
	}
	for prefix, answer := range g.answers {
		if strings.HasPrefix(req.Prompt, prefix) {
			return answer, nil
		}
	}
	return "", ai.ErrEmptyCompletion
}

type stubCache struct {
	list []resolver.MergeSuggestion
	at   time.Time
}

func (s stubCache) Latest() ([]resolver.MergeSuggestion, time.Time, bool) {
	return s.list, s.at, true
}

func (stubCache) Forget(...uuid.UUID) {}

type fixedSuggester struct {
	out []resolver.MergeSuggestion
}

func (f *fixedSuggester) SuggestMerges(context.Context) ([]resolver.MergeSuggestion, error) {
	return f.out, nil
}

type testServer struct {
	e      *echo.Echo
	store  repositories.Store
	tokens *jwt.Manager
	gen    *prefixGenerator
}

func newTestServer(t *testing.T, cache SuggestionCache) *testServer {
	t.Helper()

	store := testhelper.NewStore(t)
	m := metrics.New(prometheus.NewRegistry())
	gen := &prefixGenerator{answers: map[string]string{
		"Please summarize":     "Budget approved.",
		"Extract entities":     "Jane Doe|person\nInitech|company",
		"Extract action items": "Jane will send the budget tomorrow",
		"Generate a title":     "Budget Review",
	}}

	res := resolver.NewService(store, resolver.DefaultConfig(), nil, nil, m)
	entitySvc := entityUsecase.NewEntityService(store, res, nil, nil)
	meetings := meetingUsecase.NewMeetingService(store, gen, res, nil, nil, m, meetingUsecase.Options{MaxRetries: 1, Timeout: 5 * time.Second})
	tokens := jwt.NewManager("test-secret", time.Hour, "")

	e := echo.New()
	e.Validator = pkgvalidator.New()
	cfg := &config.Config{Server: config.ServerConfig{Environment: "test"}}
	NewRouter(cfg, tokens, prometheus.NewRegistry(), nil, Handlers{
		Entity:      NewEntityHandler(entitySvc, nil),
		EntityType:  NewEntityTypeHandler(entitySvc, nil),
		Resolver:    NewResolverHandler(res, cache, nil),
		Meeting:     NewMeetingHandler(meetings, nil),
		MeetingType: NewMeetingTypeHandler(meetings, nil),
		Webhook:     NewWebhookHandler(meetings, testWebhookSecret, nil),
	}).Setup(e)

	return &testServer{e: e, store: store, tokens: tokens, gen: gen}
}

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Info    string          `json:"info"`
}

func (s *testServer) do(t *testing.T, method, path string, body interface{}, headers map[string]string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case []byte:
		reader = bytes.NewReader(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 {
		_ = json.Unmarshal(rec.Body.Bytes(), &env)
	}
	return rec, env
}

func (s *testServer) bearer(t *testing.T, role string) map[string]string {
	t.Helper()
	token, err := s.tokens.GenerateToken("tester", role)
	require.NoError(t, err)
	return map[string]string{"Authorization": "Bearer " + token}
}

func decode(t *testing.T, raw json.RawMessage, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(raw, v))
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, nil)
	rec, _ := s.do(t, http.MethodGet, "/health", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestEntityTypeRoutes(t *testing.T) {
	s := newTestServer(t, nil)

	t.Run("lists seeded types", func(t *testing.T) {
		rec, env := s.do(t, http.MethodGet, "/v1/entity-types", nil, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var types []map[string]interface{}
		decode(t, env.Data, &types)
		assert.Len(t, types, 4)
	})

	t.Run("creates a type with a derived slug", func(t *testing.T) {
		rec, env := s.do(t, http.MethodPost, "/v1/entity-types", map[string]string{"name": "Product Line"}, nil)
		require.Equal(t, http.StatusCreated, rec.Code)
		var created map[string]interface{}
		decode(t, env.Data, &created)
		assert.Equal(t, "product-line", created["slug"])
		assert.Equal(t, false, created["is_system"])
	})

	t.Run("rejects an invalid slug", func(t *testing.T) {
		rec, _ := s.do(t, http.MethodPost, "/v1/entity-types", map[string]string{"name": "Bad", "slug": "Not A Slug"}, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("system types cannot be deleted", func(t *testing.T) {
		person, err := s.store.EntityTypes().GetBySlug(context.Background(), entities.EntityTypePerson)
		require.NoError(t, err)
		rec, _ := s.do(t, http.MethodDelete, "/v1/entity-types/"+person.ID.String(), nil, nil)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("unknown id is not found", func(t *testing.T) {
		rec, _ := s.do(t, http.MethodGet, "/v1/entity-types/"+uuid.NewString(), nil, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestEntityRoutes(t *testing.T) {
	s := newTestServer(t, nil)

	t.Run("create classifies a missing type", func(t *testing.T) {
		rec, env := s.do(t, http.MethodPost, "/v1/entities", map[string]string{"name": "Acme Corp"}, nil)
		require.Equal(t, http.StatusCreated, rec.Code)
		var created map[string]interface{}
		decode(t, env.Data, &created)
		assert.Equal(t, "company", created["type"])
	})

	t.Run("duplicate name conflicts", func(t *testing.T) {
		rec, _ := s.do(t, http.MethodPost, "/v1/entities", map[string]string{"name": "Acme Corp", "type": "company"}, nil)
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("unknown type is a bad request", func(t *testing.T) {
		rec, _ := s.do(t, http.MethodPost, "/v1/entities", map[string]string{"name": "Zeta", "type": "galaxy"}, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("malformed id is a bad request", func(t *testing.T) {
		rec, _ := s.do(t, http.MethodGet, "/v1/entities/not-a-uuid", nil, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("missing entity is not found", func(t *testing.T) {
		rec, _ := s.do(t, http.MethodGet, "/v1/entities/"+uuid.NewString(), nil, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("list pages by name", func(t *testing.T) {
		rec, env := s.do(t, http.MethodGet, "/v1/entities?limit=10", nil, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var list struct {
			Items []map[string]interface{} `json:"items"`
			Page  struct {
				Limit int `json:"limit"`
				Count int `json:"count"`
			} `json:"page"`
		}
		decode(t, env.Data, &list)
		assert.Equal(t, 10, list.Page.Limit)
		assert.Equal(t, 1, list.Page.Count)
	})

	t.Run("classify uses the hint", func(t *testing.T) {
		rec, env := s.do(t, http.MethodPost, "/v1/entities/classify", map[string]string{"name": "Widget", "hint": "product"}, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var out map[string]string
		decode(t, env.Data, &out)
		assert.Equal(t, "project", out["type"])
	})
}

func TestAdminRoutes(t *testing.T) {
	s := newTestServer(t, nil)
	ctx := context.Background()

	a := entities.NewEntity("Globex", entities.EntityTypeCompany, nil)
	b := entities.NewEntity("Initech", entities.EntityTypeCompany, nil)
	require.NoError(t, s.store.Entities().Create(ctx, a))
	require.NoError(t, s.store.Entities().Create(ctx, b))
	body := map[string]interface{}{"entity_ids": []string{a.ID.String(), uuid.NewString()}}

	t.Run("missing token is unauthorized", func(t *testing.T) {
		rec, _ := s.do(t, http.MethodPost, "/v1/entities/bulk-delete", body, nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("non-admin is forbidden", func(t *testing.T) {
		rec, _ := s.do(t, http.MethodPost, "/v1/entities/bulk-delete", body, s.bearer(t, "viewer"))
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("admin bulk delete reports failures", func(t *testing.T) {
		rec, env := s.do(t, http.MethodPost, "/v1/entities/bulk-delete", body, s.bearer(t, jwt.RoleAdmin))
		require.Equal(t, http.StatusOK, rec.Code)
		var out struct {
			Count     int      `json:"count"`
			FailedIDs []string `json:"failed_ids"`
		}
		decode(t, env.Data, &out)
		assert.Equal(t, 1, out.Count)
		assert.Len(t, out.FailedIDs, 1)
	})

	t.Run("bulk update type", func(t *testing.T) {
		rec, env := s.do(t, http.MethodPost, "/v1/entities/bulk-update-type", map[string]interface{}{
			"entity_ids": []string{b.ID.String()},
			"type":       "project",
		}, s.bearer(t, jwt.RoleAdmin))
		require.Equal(t, http.StatusOK, rec.Code)
		var out struct {
			Count int `json:"count"`
		}
		decode(t, env.Data, &out)
		assert.Equal(t, 1, out.Count)

		got, err := s.store.Entities().GetByID(ctx, b.ID)
		require.NoError(t, err)
		assert.Equal(t, "project", got.TypeSlug)
	})
}

func TestMergeRoutes(t *testing.T) {
	ctx := context.Background()

	t.Run("merge moves links and rejects repeats", func(t *testing.T) {
		s := newTestServer(t, nil)
		admin := s.bearer(t, jwt.RoleAdmin)

		src := entities.NewEntity("Jon Smith", entities.EntityTypePerson, nil)
		dst := entities.NewEntity("John Smith", entities.EntityTypePerson, nil)
		require.NoError(t, s.store.Entities().Create(ctx, src))
		require.NoError(t, s.store.Entities().Create(ctx, dst))
		m := &entities.Meeting{Title: "Sync", Date: time.Now().UTC()}
		require.NoError(t, s.store.Meetings().Create(ctx, m))
		require.NoError(t, s.store.Meetings().LinkEntity(ctx, m.ID, src.ID))

		body := map[string]string{"source_id": src.ID.String(), "target_id": dst.ID.String()}
		rec, env := s.do(t, http.MethodPost, "/v1/entities/merge", body, admin)
		require.Equal(t, http.StatusOK, rec.Code)
		var out map[string]interface{}
		decode(t, env.Data, &out)
		assert.Equal(t, true, out["merged"])

		linked, err := s.store.Meetings().ListEntities(ctx, m.ID)
		require.NoError(t, err)
		require.Len(t, linked, 1)
		assert.Equal(t, dst.ID, linked[0].ID)

		rec, _ = s.do(t, http.MethodPost, "/v1/entities/merge", body, admin)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("cached suggestions come from the last scan", func(t *testing.T) {
		at := time.Date(2024, 3, 4, 6, 0, 0, 0, time.UTC)
		cache := stubCache{
			list: []resolver.MergeSuggestion{{
				Source:     entities.NewEntity("Acme", entities.EntityTypeCompany, nil),
				Target:     entities.NewEntity("Acme Corporation", entities.EntityTypeCompany, nil),
				Similarity: 0.7,
			}},
			at: at,
		}
		s := newTestServer(t, cache)

		rec, env := s.do(t, http.MethodGet, "/v1/entities/merge-suggestions?cached=true", nil, s.bearer(t, jwt.RoleAdmin))
		require.Equal(t, http.StatusOK, rec.Code)
		var out struct {
			Suggestions []struct {
				Similarity float64 `json:"similarity"`
			} `json:"suggestions"`
			Cached    bool       `json:"cached"`
			ScannedAt *time.Time `json:"scanned_at"`
		}
		decode(t, env.Data, &out)
		assert.True(t, out.Cached)
		require.Len(t, out.Suggestions, 1)
		assert.Equal(t, 0.7, out.Suggestions[0].Similarity)
		require.NotNil(t, out.ScannedAt)
		assert.True(t, at.Equal(*out.ScannedAt))

		rec, env = s.do(t, http.MethodGet, "/v1/entities/merge-suggestions", nil, s.bearer(t, jwt.RoleAdmin))
		require.Equal(t, http.StatusOK, rec.Code)
		decode(t, env.Data, &out)
		assert.False(t, out.Cached)
	})

	t.Run("merge drops stale cached suggestions", func(t *testing.T) {
		suggester := &fixedSuggester{}
		scanner, err := scheduler.NewMergeScanner(suggester, "", nil, nil)
		require.NoError(t, err)
		s := newTestServer(t, scanner)
		admin := s.bearer(t, jwt.RoleAdmin)

		acme := entities.NewEntity("Acme", entities.EntityTypeCompany, nil)
		acmeCorp := entities.NewEntity("Acme Corporation", entities.EntityTypeCompany, nil)
		globex := entities.NewEntity("Globex", entities.EntityTypeCompany, nil)
		globexInc := entities.NewEntity("Globex Inc", entities.EntityTypeCompany, nil)
		for _, e := range []*entities.Entity{acme, acmeCorp, globex, globexInc} {
			require.NoError(t, s.store.Entities().Create(ctx, e))
		}
		suggester.out = []resolver.MergeSuggestion{
			{Source: acme, Target: acmeCorp, Similarity: 0.7},
			{Source: globex, Target: globexInc, Similarity: 0.65},
		}
		_, err = scanner.RunOnce(ctx)
		require.NoError(t, err)

		body := map[string]string{"source_id": acme.ID.String(), "target_id": acmeCorp.ID.String()}
		rec, _ := s.do(t, http.MethodPost, "/v1/entities/merge", body, admin)
		require.Equal(t, http.StatusOK, rec.Code)

		rec, env := s.do(t, http.MethodGet, "/v1/entities/merge-suggestions?cached=true", nil, admin)
		require.Equal(t, http.StatusOK, rec.Code)
		var out struct {
			Suggestions []struct {
				Source struct {
					ID string `json:"id"`
				} `json:"source"`
			} `json:"suggestions"`
			Cached bool `json:"cached"`
		}
		decode(t, env.Data, &out)
		assert.True(t, out.Cached)
		require.Len(t, out.Suggestions, 1)
		assert.Equal(t, globex.ID.String(), out.Suggestions[0].Source.ID)
	})
}

func TestMeetingRoutes(t *testing.T) {
	s := newTestServer(t, nil)

	var meetingID string
	t.Run("process stores the meeting and reports resolution", func(t *testing.T) {
		rec, env := s.do(t, http.MethodPost, "/v1/meetings/process", map[string]interface{}{
			"title":        "Budget",
			"date":         "2024-03-04T10:00:00Z",
			"transcript":   "Jane from Initech presented the budget.",
			"meeting_type": "standup",
		}, nil)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		var out struct {
			Meeting struct {
				ID          string                   `json:"id"`
				Summary     string                   `json:"summary"`
				MeetingType string                   `json:"meeting_type"`
				ActionItems []map[string]interface{} `json:"action_items"`
			} `json:"meeting"`
			Resolution struct {
				Resolved []map[string]interface{} `json:"resolved"`
				Failed   []map[string]interface{} `json:"failed"`
			} `json:"resolution"`
		}
		decode(t, env.Data, &out)
		assert.Equal(t, "Budget approved.", out.Meeting.Summary)
		assert.Equal(t, "standup", out.Meeting.MeetingType)
		assert.Len(t, out.Resolution.Resolved, 2)
		assert.Empty(t, out.Resolution.Failed)
		require.Len(t, out.Meeting.ActionItems, 1)
		assert.Equal(t, "Jane", out.Meeting.ActionItems[0]["assignee"])
		meetingID = out.Meeting.ID
	})

	t.Run("missing transcript is a bad request", func(t *testing.T) {
		rec, _ := s.do(t, http.MethodPost, "/v1/meetings/process", map[string]string{"title": "Empty"}, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("get returns entities and action items", func(t *testing.T) {
		require.NotEmpty(t, meetingID)
		rec, env := s.do(t, http.MethodGet, "/v1/meetings/"+meetingID, nil, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var out struct {
			Entities []map[string]interface{} `json:"entities"`
		}
		decode(t, env.Data, &out)
		assert.Len(t, out.Entities, 2)
	})

	t.Run("resolve links further mentions", func(t *testing.T) {
		rec, env := s.do(t, http.MethodPost, "/v1/meetings/"+meetingID+"/entities/resolve", map[string]interface{}{
			"lines": []string{"Jane Doe|person", "Project Phoenix"},
		}, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var out struct {
			Resolved []map[string]interface{} `json:"resolved"`
		}
		decode(t, env.Data, &out)
		assert.Len(t, out.Resolved, 2)
	})

	t.Run("action item status is validated", func(t *testing.T) {
		rec, env := s.do(t, http.MethodPost, "/v1/meetings/"+meetingID+"/action-items", map[string]string{
			"description": "Book the venue",
		}, nil)
		require.Equal(t, http.StatusCreated, rec.Code)
		var item map[string]interface{}
		decode(t, env.Data, &item)
		assert.Equal(t, "pending", item["status"])

		path := "/v1/action-items/" + item["id"].(string)
		rec, _ = s.do(t, http.MethodPut, path, map[string]string{"status": "finished"}, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		rec, env = s.do(t, http.MethodPut, path, map[string]string{"status": "completed"}, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		decode(t, env.Data, &item)
		assert.Equal(t, "completed", item["status"])
	})

	t.Run("suggest title", func(t *testing.T) {
		rec, env := s.do(t, http.MethodPost, "/v1/meetings/suggest-title", map[string]string{"transcript": "We reviewed the budget."}, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var out map[string]string
		decode(t, env.Data, &out)
		assert.Equal(t, "Budget Review", out["title"])
	})

	t.Run("generation failure is unavailable", func(t *testing.T) {
		s.gen.err = errors.New("backend rejected the key")
		defer func() { s.gen.err = nil }()

		rec, _ := s.do(t, http.MethodPost, "/v1/meetings/process", map[string]string{
			"title":      "Broken",
			"transcript": "hello",
		}, nil)
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})

	t.Run("transcript archive is disabled without storage", func(t *testing.T) {
		rec, _ := s.do(t, http.MethodGet, "/v1/transcripts", nil, nil)
		assert.Equal(t, http.StatusNotImplemented, rec.Code)
	})
}

func TestMeetingTypeRoutes(t *testing.T) {
	s := newTestServer(t, nil)

	rec, env := s.do(t, http.MethodGet, "/v1/meeting-types", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var types []map[string]interface{}
	decode(t, env.Data, &types)
	assert.Len(t, types, 5)

	rec, env = s.do(t, http.MethodPost, "/v1/meeting-types", map[string]string{
		"name":                 "Board Review",
		"summary_instructions": "Focus on decisions.",
	}, nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	var created map[string]interface{}
	decode(t, env.Data, &created)
	assert.Equal(t, "board-review", created["slug"])

	rec, _ = s.do(t, http.MethodDelete, "/v1/meeting-types/"+created["id"].(string), nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	for _, mt := range types {
		if mt["slug"] == entities.DefaultMeetingTypeSlug {
			rec, _ = s.do(t, http.MethodDelete, "/v1/meeting-types/"+mt["id"].(string), nil, nil)
			assert.Equal(t, http.StatusForbidden, rec.Code)
		}
	}
}

func TestIngestWebhook(t *testing.T) {
	s := newTestServer(t, nil)
	body := []byte(`{"title":"Signed","transcript":"Jane from Initech joined."}`)

	t.Run("rejects a bad signature", func(t *testing.T) {
		rec, _ := s.do(t, http.MethodPost, "/v1/webhooks/transcripts", body, map[string]string{SignatureHeader: "deadbeef"})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("rejects a missing signature", func(t *testing.T) {
		rec, _ := s.do(t, http.MethodPost, "/v1/webhooks/transcripts", body, nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("accepts a signed payload", func(t *testing.T) {
		sig := "sha256=" + ai.SignHMAC(testWebhookSecret, body)
		rec, env := s.do(t, http.MethodPost, "/v1/webhooks/transcripts", body, map[string]string{SignatureHeader: sig})
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		var out struct {
			Meeting struct {
				Title string `json:"title"`
			} `json:"meeting"`
		}
		decode(t, env.Data, &out)
		assert.Equal(t, "Signed", out.Meeting.Title)
	})

	t.Run("signed but invalid payload is a bad request", func(t *testing.T) {
		bad := []byte(`{"title":"No transcript"}`)
		sig := ai.SignHMAC(testWebhookSecret, bad)
		rec, _ := s.do(t, http.MethodPost, "/v1/webhooks/transcripts", bad, map[string]string{SignatureHeader: sig})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
