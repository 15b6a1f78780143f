package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"reout/pkg/logger"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(TraceIDMiddleware())
	r.Use(RequestLogger(logger.NewNop()))
	r.Use(CORSMiddleware([]string{"http://localhost:3000"}))
	r.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString("trace_id"))
	})
	return r
}

func TestTraceIDMintedWhenMissing(t *testing.T) {
	r := newTestRouter()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	got := w.Header().Get(TraceIDHeader)
	if _, err := uuid.Parse(got); err != nil {
		t.Fatalf("trace id not a uuid: %q", got)
	}
	if w.Body.String() != got {
		t.Fatalf("context trace id: want=%q got=%q", got, w.Body.String())
	}
}

func TestTraceIDReusesValidHeader(t *testing.T) {
	r := newTestRouter()
	want := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(TraceIDHeader, want)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if got := w.Header().Get(TraceIDHeader); got != want {
		t.Fatalf("trace id: want=%q got=%q", want, got)
	}
}

func TestCORSAllowsConfiguredOrigin(t *testing.T) {
	r := newTestRouter()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Fatalf("allow origin: want=%q got=%q", "http://localhost:3000", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Origin", "http://evil.example")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Fatalf("status: want=%d got=%d", http.StatusForbidden, w.Code)
	}
}

func TestRequestLoggerRecordsAttachedError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zapcore.DebugLevel)

	r := gin.New()
	r.Use(RequestLogger(&logger.Logger{SugaredLogger: zap.New(core).Sugar()}))
	r.GET("/sessions/:id", func(c *gin.Context) {
		_ = c.Error(errors.New("ledger down"))
		c.Status(http.StatusBadGateway)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/sessions/abc", nil))

	entries := logs.All()
	if len(entries) != 1 || entries[0].Level != zapcore.ErrorLevel {
		t.Fatalf("expected one error entry, got=%v", entries)
	}
	fields := entries[0].ContextMap()
	if fields["error"] != "ledger down" || fields["path"] != "/sessions/:id" {
		t.Fatalf("unexpected fields: %v", fields)
	}
	if id, _ := fields["session_id"].(string); id == "abc" {
		t.Fatalf("session id logged in clear")
	}
}
