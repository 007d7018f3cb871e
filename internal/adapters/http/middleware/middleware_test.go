package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rafaelleal24/stock-control/internal/core/logger"
)

type countingLimiter struct {
	mu    sync.Mutex
	hits  map[string]int
	err   error
	calls int
}

func (l *countingLimiter) Allow(_ context.Context, key string, limit int, _ time.Duration) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls++
	if l.err != nil {
		return false, l.err
	}
	if l.hits == nil {
		l.hits = make(map[string]int)
	}
	l.hits[key]++
	return l.hits[key] <= limit, nil
}

type recordingLogger struct {
	mu      sync.Mutex
	entries []logger.LogEntry
}

func (r *recordingLogger) Log(_ context.Context, entry logger.LogEntry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, entry)
}

func (r *recordingLogger) Shutdown(context.Context) error { return nil }

func newEngine(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	chain := append(handlers, func(c *gin.Context) { c.JSON(http.StatusCreated, gin.H{"ok": true}) })
	engine.POST("/movements", chain...)
	return engine
}

func post(engine *gin.Engine) int {
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/movements", nil))
	return w.Code
}

func TestRateLimit(t *testing.T) {
	t.Run("blocks after limit", func(t *testing.T) {
		engine := newEngine(RateLimit(&countingLimiter{}, 2, time.Minute))

		for i := 0; i < 2; i++ {
			if code := post(engine); code != http.StatusCreated {
				t.Fatalf("request %d: expected 201, got %d", i, code)
			}
		}
		if code := post(engine); code != http.StatusTooManyRequests {
			t.Fatalf("expected 429, got %d", code)
		}
	})

	t.Run("limiter error lets request through", func(t *testing.T) {
		engine := newEngine(RateLimit(&countingLimiter{err: errors.New("redis down")}, 1, time.Minute))

		if code := post(engine); code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", code)
		}
	})

	t.Run("nil limiter is passthrough", func(t *testing.T) {
		engine := newEngine(RateLimit(nil, 1, time.Minute))

		for i := 0; i < 3; i++ {
			if code := post(engine); code != http.StatusCreated {
				t.Fatalf("expected 201, got %d", code)
			}
		}
	})

	t.Run("zero limit skips limiter", func(t *testing.T) {
		limiter := &countingLimiter{}
		engine := newEngine(RateLimit(limiter, 0, time.Minute))

		post(engine)
		if limiter.calls != 0 {
			t.Fatalf("expected limiter not to be called, got %d calls", limiter.calls)
		}
	})
}

func TestLogRequest(t *testing.T) {
	rec := &recordingLogger{}
	restore := logger.Replace(rec)
	defer restore()

	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(LogRequest())
	engine.GET("/products", func(c *gin.Context) { c.JSON(http.StatusOK, []string{}) })
	engine.GET("/boom", func(c *gin.Context) { c.JSON(http.StatusBadGateway, gin.H{"error": "could not load products"}) })

	for _, path := range []string{"/products", "/boom"} {
		engine.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	if len(rec.entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(rec.entries))
	}
	ok, failed := rec.entries[0], rec.entries[1]
	if ok.Level != logger.LogLevelInfo || ok.Attributes["http.route"] != "/products" {
		t.Fatalf("unexpected entry %+v", ok)
	}
	if _, found := ok.Attributes["http.response_body"]; found {
		t.Fatalf("expected no body on success entry")
	}
	if failed.Level != logger.LogLevelError || failed.Attributes["http.status_code"] != http.StatusBadGateway {
		t.Fatalf("unexpected entry %+v", failed)
	}
	if failed.Attributes["http.response_body"] != `{"error":"could not load products"}` {
		t.Fatalf("expected error body, got %v", failed.Attributes["http.response_body"])
	}
}
