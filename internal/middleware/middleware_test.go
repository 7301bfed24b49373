package middleware

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/andybalholm/brotli"
	"github.com/gin-gonic/gin"
	"github.com/jxdata/portal/internal/config"
	"github.com/jxdata/portal/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newVisitorRouter() (*gin.Engine, *service.VisitorService) {
	svc := service.NewVisitorService(&config.Config{
		VisitorSecret: "secret",
		VisitorTTL:    time.Hour,
	})

	r := gin.New()
	r.Use(VisitorSession(svc, VisitorCookie{Name: "jx_visitor"}))
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, GetVisitorID(c))
	})
	return r, svc
}

func TestVisitorSession_IssuesCookie(t *testing.T) {
	r, svc := newVisitorRouter()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, w.Code)
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "jx_visitor", cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)

	visitorID, err := svc.Validate(cookies[0].Value)
	require.NoError(t, err)
	assert.Equal(t, visitorID, w.Body.String())
}

func TestVisitorSession_ReusesValidCookie(t *testing.T) {
	r, svc := newVisitorRouter()

	token, visitorID, err := svc.Issue()
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "jx_visitor", Value: token})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, visitorID, w.Body.String())
	assert.Empty(t, w.Result().Cookies())
}

func TestVisitorSession_ReplacesTamperedCookie(t *testing.T) {
	r, _ := newVisitorRouter()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "jx_visitor", Value: "forged"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.NotEmpty(t, w.Body.String())
	assert.Len(t, w.Result().Cookies(), 1)
}

func TestGetVisitorID_Missing(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Empty(t, GetVisitorID(c))
}

func TestRateLimiter_Allow(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rl := NewRateLimiter(ctx, 2, time.Minute)
	now := time.Now()
	rl.now = func() time.Time { return now }

	assert.True(t, rl.Allow("1.1.1.1"))
	assert.True(t, rl.Allow("1.1.1.1"))
	assert.False(t, rl.Allow("1.1.1.1"))
	assert.True(t, rl.Allow("2.2.2.2"), "limits are per key")

	now = now.Add(time.Minute)
	assert.True(t, rl.Allow("1.1.1.1"))

	now = now.Add(10 * time.Minute)
	rl.cleanup()
	assert.Empty(t, rl.visitors)
}

func TestRateLimiter_CleanupKeepsActiveKeys(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rl := NewRateLimiter(ctx, 2, time.Minute)
	start := time.Now()
	now := start
	rl.now = func() time.Time { return now }

	assert.True(t, rl.Allow("1.1.1.1"))
	assert.True(t, rl.Allow("2.2.2.2"))

	// Active again before any refill is due.
	now = start.Add(59 * time.Second)
	assert.True(t, rl.Allow("1.1.1.1"))

	now = start.Add(3*time.Minute + 30*time.Second)
	rl.cleanup()

	assert.Contains(t, rl.visitors, "1.1.1.1")
	assert.NotContains(t, rl.visitors, "2.2.2.2")
}

func TestRateLimiter_Middleware(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rl := NewRateLimiter(ctx, 1, time.Minute)
	r := gin.New()
	r.POST("/", rl.Middleware(), func(c *gin.Context) { c.Status(http.StatusNoContent) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "RATE_LIMIT_EXCEEDED")
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
}

func newBrotliRouter(body string, contentType string) *gin.Engine {
	r := gin.New()
	r.Use(Brotli())
	r.GET("/", func(c *gin.Context) {
		c.Data(http.StatusOK, contentType, []byte(body))
	})
	return r
}

func TestBrotli_CompressesLargeText(t *testing.T) {
	body := strings.Repeat("数据要素流通 ", 400)
	r := newBrotliRouter(body, "text/html; charset=utf-8")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Encoding", "gzip, br;q=1.0")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, "br", w.Header().Get("Content-Encoding"))
	decoded, err := io.ReadAll(brotli.NewReader(bytes.NewReader(w.Body.Bytes())))
	require.NoError(t, err)
	assert.Equal(t, body, string(decoded))
}

func TestBrotli_PassThrough(t *testing.T) {
	large := strings.Repeat("x", 4096)

	tests := []struct {
		name        string
		body        string
		contentType string
		accept      string
	}{
		{name: "client without br", body: large, contentType: "text/plain", accept: "gzip"},
		{name: "small body", body: "ok", contentType: "text/plain", accept: "br"},
		{name: "binary content", body: large, contentType: "image/png", accept: "br"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newBrotliRouter(tt.body, tt.contentType)

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set("Accept-Encoding", tt.accept)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Empty(t, w.Header().Get("Content-Encoding"))
			assert.Equal(t, tt.body, w.Body.String())
		})
	}
}

func TestBrotli_ReusesPooledWriters(t *testing.T) {
	body := strings.Repeat("合作生态 ", 600)
	r := newBrotliRouter(body, "application/json")

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Accept-Encoding", "br")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		require.Equal(t, "br", w.Header().Get("Content-Encoding"))
		decoded, err := io.ReadAll(brotli.NewReader(bytes.NewReader(w.Body.Bytes())))
		require.NoError(t, err)
		assert.Equal(t, body, string(decoded))
	}
}

func TestBrotli_SkipPrefixes(t *testing.T) {
	body := strings.Repeat("x", 4096)

	r := gin.New()
	r.Use(BrotliWithConfig(BrotliConfig{SkipPrefixes: []string{"/ws/"}}))
	r.GET("/ws/quiz", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/plain", []byte(body))
	})

	req := httptest.NewRequest(http.MethodGet, "/ws/quiz", nil)
	req.Header.Set("Accept-Encoding", "br")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Empty(t, w.Header().Get("Content-Encoding"))
	assert.Equal(t, body, w.Body.String())
}

func TestCacheHeaders(t *testing.T) {
	r := gin.New()
	r.GET("/static", CacheControl(60), func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/page", NoStore(), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/static", nil))
	assert.Equal(t, "public, max-age=60", w.Header().Get("Cache-Control"))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/page", nil))
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
}
