package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"reout/internal/models/db_models"
	"reout/internal/models/response_models"
	sm "reout/internal/models/session_models"
	"reout/internal/services"
	"reout/pkg/logger"
	mem "reout/pkg/memcache"
	"reout/pkg/utils"
)

type stubGenerator struct {
	plan string
	err  error
}

func (g *stubGenerator) Name() string { return "stub" }

func (g *stubGenerator) Generate(ctx context.Context, prompt, model string) (string, error) {
	if g.err != nil {
		return "", g.err
	}
	return g.plan, nil
}

func (g *stubGenerator) ListModels(ctx context.Context) ([]string, error) {
	return []string{"gpt-4o-mini"}, nil
}

type memoryLedger struct {
	mu   sync.Mutex
	rows []db_models.LedgerRow
}

func (l *memoryLedger) AppendRow(ctx context.Context, row *db_models.LedgerRow) (sm.RowHandle, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	row.Handle = fmt.Sprintf("%d", len(l.rows))
	l.rows = append(l.rows, *row)
	return sm.RowHandle(row.Handle), nil
}

func (l *memoryLedger) find(handle sm.RowHandle) (*db_models.LedgerRow, error) {
	for i := range l.rows {
		if l.rows[i].Handle == string(handle) {
			return &l.rows[i], nil
		}
	}
	return nil, utils.ErrLedgerRowNotFound
}

func (l *memoryLedger) UpdateRating(ctx context.Context, handle sm.RowHandle, rating int) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	r, err := l.find(handle)
	if err != nil {
		return err
	}
	r.Rating = rating
	return nil
}

func (l *memoryLedger) UpdateComment(ctx context.Context, handle sm.RowHandle, comment string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	r, err := l.find(handle)
	if err != nil {
		return err
	}
	r.Comment = comment
	return nil
}

func (l *memoryLedger) ListFeedback(ctx context.Context, page, pageSize int) ([]db_models.LedgerRow, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]db_models.LedgerRow(nil), l.rows...), nil
}

type apiEnvelope struct {
	Status  string          `json:"status"`
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newTestAPI(t *testing.T, gen *stubGenerator) (*gin.Engine, *memoryLedger) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ledger := &memoryLedger{}
	feedback := services.NewFeedbackService(logger.NewNop(), ledger, time.Second)
	sessions := services.NewSessionService(logger.NewNop(), mem.NewMemorySessionStore(time.Hour), gen, feedback, services.SessionOptions{
		DefaultModel: "gpt-4o-mini",
	})

	sc := NewSessionController(sessions)
	pc := NewPlannerController(sessions, services.NewCityService())
	fc := NewFeedbackController(feedback)

	r := gin.New()
	r.POST("/sessions", sc.CreateSession)
	r.GET("/sessions/:id", sc.GetSession)
	r.DELETE("/sessions/:id", sc.EndSession)
	r.PUT("/sessions/:id/city", sc.SetCity)
	r.POST("/sessions/:id/participants", sc.AddParticipant)
	r.DELETE("/sessions/:id/participants", sc.ClearParticipants)
	r.POST("/sessions/:id/generate", sc.Generate)
	r.POST("/sessions/:id/rating", sc.SubmitRating)
	r.POST("/sessions/:id/comment", sc.SubmitComment)
	r.GET("/models", pc.ListModels)
	r.GET("/cities", pc.SuggestCities)
	r.GET("/feedback/list", fc.ListFeedback)
	return r, ledger
}

func do(t *testing.T, r *gin.Engine, method, path string, body any) (int, apiEnvelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env apiEnvelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode %s %s: %v body=%s", method, path, err, w.Body.String())
	}
	return w.Code, env
}

func decodeSession(t *testing.T, env apiEnvelope) response_models.SessionResponse {
	t.Helper()
	var s response_models.SessionResponse
	if err := json.Unmarshal(env.Data, &s); err != nil {
		t.Fatalf("decode session: %v", err)
	}
	return s
}

func TestSessionFlowOverHTTP(t *testing.T) {
	r, ledger := newTestAPI(t, &stubGenerator{plan: "Step 1: tacos"})

	code, env := do(t, r, http.MethodPost, "/sessions", nil)
	if code != http.StatusCreated {
		t.Fatalf("create: want=%d got=%d", http.StatusCreated, code)
	}
	id := decodeSession(t, env).ID
	base := "/sessions/" + id

	if code, _ := do(t, r, http.MethodPut, base+"/city", map[string]string{"city": "Austin"}); code != http.StatusOK {
		t.Fatalf("city: got=%d", code)
	}

	code, env = do(t, r, http.MethodPost, base+"/participants", map[string]any{
		"name":      "Ana",
		"times":     []string{"Evening"},
		"setting":   "Both",
		"interests": []string{"Food"},
		"transport": "Walking",
	})
	if code != http.StatusOK {
		t.Fatalf("participant: got=%d msg=%s", code, env.Message)
	}
	s := decodeSession(t, env)
	if s.Participants[0].Budget != 30 || s.Participants[0].ActivityLevel != "Moderate" {
		t.Fatalf("defaults not applied: %+v", s.Participants[0])
	}
	if len(s.Summary) != 1 || s.Summary[0] != "- **Ana** · $30 · Moderate · any cuisine" {
		t.Fatalf("summary: %v", s.Summary)
	}

	code, env = do(t, r, http.MethodPost, base+"/generate", nil)
	if code != http.StatusOK {
		t.Fatalf("generate: got=%d msg=%s", code, env.Message)
	}
	s = decodeSession(t, env)
	if s.State != sm.StatePlanned || s.LastPlan == nil || *s.LastPlan != "Step 1: tacos" {
		t.Fatalf("unexpected session after generate: %+v", s)
	}

	if code, env := do(t, r, http.MethodPost, base+"/rating", map[string]int{"rating": 4}); code != http.StatusOK {
		t.Fatalf("rating: got=%d msg=%s", code, env.Message)
	}
	code, env = do(t, r, http.MethodPost, base+"/comment", map[string]string{"comment": "Great!"})
	if code != http.StatusOK {
		t.Fatalf("comment: got=%d msg=%s", code, env.Message)
	}
	if s := decodeSession(t, env); s.State != sm.StateRatedOnce || !s.Rated {
		t.Fatalf("state: want=%s got=%s", sm.StateRatedOnce, s.State)
	}

	if len(ledger.rows) != 1 || ledger.rows[0].Rating != 4 || ledger.rows[0].Comment != "Great!" {
		t.Fatalf("ledger rows: %+v", ledger.rows)
	}

	code, env = do(t, r, http.MethodGet, "/feedback/list?page=1&pageSize=5", nil)
	if code != http.StatusOK {
		t.Fatalf("feedback list: got=%d", code)
	}
	var rows []response_models.FeedbackRowResponse
	if err := json.Unmarshal(env.Data, &rows); err != nil {
		t.Fatalf("decode rows: %v", err)
	}
	if len(rows) != 1 || rows[0].City != "Austin" {
		t.Fatalf("rows: %+v", rows)
	}
}

func TestErrorStatuses(t *testing.T) {
	r, _ := newTestAPI(t, &stubGenerator{err: &utils.ProviderError{
		Kind: utils.ProviderErrorTransport, Provider: "openai", Status: 429, Message: "You exceeded your current quota",
	}})

	if code, _ := do(t, r, http.MethodGet, "/sessions/unknown", nil); code != http.StatusNotFound {
		t.Fatalf("unknown session: want=%d got=%d", http.StatusNotFound, code)
	}

	_, env := do(t, r, http.MethodPost, "/sessions", nil)
	base := "/sessions/" + decodeSession(t, env).ID

	code, env := do(t, r, http.MethodPost, base+"/generate", map[string]string{"model": "gpt-4o"})
	if code != http.StatusBadRequest || env.Message != utils.ErrEmptyCity.Error() {
		t.Fatalf("generate without city: got=%d msg=%q", code, env.Message)
	}

	if code, _ := do(t, r, http.MethodPost, base+"/participants", map[string]any{"name": "Bo", "budget": 7, "setting": "Both", "transport": "Car"}); code != http.StatusBadRequest {
		t.Fatalf("bad budget: want=%d got=%d", http.StatusBadRequest, code)
	}

	if code, _ := do(t, r, http.MethodPost, base+"/comment", map[string]string{"comment": "hi"}); code != http.StatusConflict {
		t.Fatalf("comment before rating: want=%d got=%d", http.StatusConflict, code)
	}

	do(t, r, http.MethodPut, base+"/city", map[string]string{"city": "Austin"})
	do(t, r, http.MethodPost, base+"/participants", map[string]any{"name": "Bo", "setting": "Both", "transport": "Car"})
	code, env = do(t, r, http.MethodPost, base+"/generate", nil)
	if code != http.StatusBadGateway {
		t.Fatalf("provider failure: want=%d got=%d", http.StatusBadGateway, code)
	}
	if env.Message != "openai error (429): You exceeded your current quota" {
		t.Fatalf("provider message: %q", env.Message)
	}

	_, env = do(t, r, http.MethodGet, base, nil)
	if s := decodeSession(t, env); s.LastError != "openai error (429): You exceeded your current quota" {
		t.Fatalf("lastError: %q", s.LastError)
	}
}

func TestModelsAndCities(t *testing.T) {
	r, _ := newTestAPI(t, &stubGenerator{})

	code, env := do(t, r, http.MethodGet, "/models", nil)
	if code != http.StatusOK {
		t.Fatalf("models: got=%d", code)
	}
	var models response_models.ModelsResponse
	_ = json.Unmarshal(env.Data, &models)
	if models.Provider != "stub" || models.Default != "gpt-4o-mini" || len(models.Models) != 1 {
		t.Fatalf("models: %+v", models)
	}

	_, env = do(t, r, http.MethodGet, "/cities?q=aus", nil)
	var cities []string
	_ = json.Unmarshal(env.Data, &cities)
	if len(cities) != 1 || cities[0] != "Austin" {
		t.Fatalf("cities: %v", cities)
	}
}
