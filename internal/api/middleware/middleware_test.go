package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TaiyoMatsuda/board-app/internal/pkg/jwthelper"
)

const (
	signingKey = "test-signing-key"
	userAgent  = "board-app-test/1.0"
)

func whoami(ctx *gin.Context) {
	id, ok := UserID(ctx)
	ctx.JSON(http.StatusOK, gin.H{"id": id, "authenticated": ok})
}

func newEngine(mw ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/whoami", append(mw, whoami)...)

	return r
}

func call(r http.Handler, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("User-Agent", userAgent)
	for k, v := range header {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	return w
}

func bearer(t *testing.T, key string, userID uint, ua string, ttl time.Duration) map[string]string {
	t.Helper()

	token, err := jwthelper.GenerateToken([]byte(key), userID, ua, ttl)
	require.NoError(t, err)

	return map[string]string{"Authorization": "Bearer " + token}
}

func TestVerifyJWT(t *testing.T) {
	r := newEngine(NewAuthenticator(signingKey).VerifyJWT())

	w := call(r, bearer(t, signingKey, 7, userAgent, time.Hour))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":7,"authenticated":true}`, w.Body.String())

	tests := []struct {
		name   string
		header map[string]string
	}{
		{"missing header", nil},
		{"not bearer", map[string]string{"Authorization": "Token abc"}},
		{"garbage token", map[string]string{"Authorization": "Bearer abc.def.ghi"}},
		{"wrong key", bearer(t, "another-key", 7, userAgent, time.Hour)},
		{"expired", bearer(t, signingKey, 7, userAgent, -time.Minute)},
		{"other client", bearer(t, signingKey, 7, "curl/8.0", time.Hour)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := call(r, tt.header)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Contains(t, w.Body.String(), `"status":"Unauthorized"`)
		})
	}
}

func TestIdentifyJWT(t *testing.T) {
	r := newEngine(NewAuthenticator(signingKey).IdentifyJWT())

	w := call(r, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":0,"authenticated":false}`, w.Body.String())

	w = call(r, bearer(t, signingKey, 3, userAgent, time.Hour))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":3,"authenticated":true}`, w.Body.String())

	w = call(r, map[string]string{"Authorization": "Bearer broken"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(1, 2)
	r := newEngine(rl.Handler())

	assert.Equal(t, http.StatusOK, call(r, nil).Code)
	assert.Equal(t, http.StatusOK, call(r, nil).Code)

	w := call(r, nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))

	// A refused request does not consume a token.
	w = call(r, nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	rl.Cleanup(time.Now().Add(time.Minute))
	assert.Equal(t, http.StatusOK, call(r, nil).Code)
}

func TestRateLimiter_StartCleanup(t *testing.T) {
	rl := NewRateLimiter(60, 1)
	rl.limiter("192.0.2.1", time.Now().Add(-time.Hour))

	ctx, cancel := context.WithCancel(context.Background())
	done := rl.StartCleanup(ctx, 5*time.Millisecond, time.Minute)

	require.Eventually(t, func() bool {
		rl.mu.Lock()
		defer rl.mu.Unlock()
		return len(rl.visitors) == 0
	}, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("cleanup goroutine still running after cancel")
	}
}

func TestConfigCORS(t *testing.T) {
	preflight := func(r http.Handler, origin string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodOptions, "/whoami", nil)
		req.Header.Set("Origin", origin)
		req.Header.Set("Access-Control-Request-Method", http.MethodGet)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		return w
	}

	restricted := newEngine()
	restricted.Use(ConfigCORS([]string{"https://board.example.com"}))

	w := preflight(restricted, "https://board.example.com")
	assert.Equal(t, "https://board.example.com", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))

	w = preflight(restricted, "https://evil.example.com")
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))

	open := newEngine()
	open.Use(ConfigCORS(nil))
	w = preflight(open, "https://anywhere.example.com")
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
