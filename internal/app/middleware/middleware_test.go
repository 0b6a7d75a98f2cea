package middleware

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Robson2726/Facilitta-sub000/internal/domain/models"
	"github.com/Robson2726/Facilitta-sub000/internal/domain/services"
	"github.com/Robson2726/Facilitta-sub000/internal/error/code"
	"github.com/Robson2726/Facilitta-sub000/internal/infrastructure/cache"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(r *gin.Engine, method, path string, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestTokenBucketRefills(t *testing.T) {
	tb := NewTokenBucket(1, 2)
	start := tb.lastRefill

	assert.True(t, tb.allowAt(start))
	assert.True(t, tb.allowAt(start))
	assert.False(t, tb.allowAt(start))
	assert.True(t, tb.allowAt(start.Add(1100*time.Millisecond)))
	assert.False(t, tb.allowAt(start.Add(1200*time.Millisecond)))
}

func TestIPRateLimiterRejectsBurst(t *testing.T) {
	r := gin.New()
	r.Use(IPRateLimiter(0.001, 2))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/ping", nil).Code)
	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/ping", nil).Code)
	w := serve(r, http.MethodGet, "/ping", nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), `"success":false`)
}

func TestCombinedRateLimiterKeysByPath(t *testing.T) {
	r := gin.New()
	r.Use(CombinedRateLimiter(0.001, 1))
	r.GET("/a", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/b", func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/a", nil).Code)
	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/b", nil).Code)
	assert.Equal(t, http.StatusTooManyRequests, serve(r, http.MethodGet, "/a", nil).Code)
}

func TestAuthenticateAdmin(t *testing.T) {
	tokens := services.NewJWTService("test-secret", time.Hour)
	r := gin.New()
	r.GET("/admin", append(AuthenticateAdmin(tokens), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": CurrentUserID(c)})
	})...)

	assert.Equal(t, http.StatusUnauthorized, serve(r, http.MethodGet, "/admin", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, serve(r, http.MethodGet, "/admin", map[string]string{"Authorization": "Bearer junk"}).Code)

	porterToken, _, err := tokens.GenerateToken(&models.User{BaseModel: models.BaseModel{ID: 2}, Login: "joao", AccessLevel: models.AccessLevelPorter})
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, serve(r, http.MethodGet, "/admin", map[string]string{"Authorization": "Bearer " + porterToken}).Code)

	adminToken, _, err := tokens.GenerateToken(&models.User{BaseModel: models.BaseModel{ID: 1}, Login: "admin", AccessLevel: models.AccessLevelAdmin})
	require.NoError(t, err)
	w := serve(r, http.MethodGet, "/admin", map[string]string{"Authorization": "Bearer " + adminToken})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":1}`, w.Body.String())
}

func TestResponseCacheServesHits(t *testing.T) {
	calls := 0
	r := gin.New()
	r.Use(ResponseCache(ResponseCacheConfig{Store: cache.NewMemoryStore(), Expiration: time.Minute}))
	r.GET("/qr", func(c *gin.Context) {
		calls++
		c.Data(http.StatusOK, "image/png", []byte("png-bytes"))
	})
	r.GET("/broken", func(c *gin.Context) {
		calls++
		c.Status(http.StatusServiceUnavailable)
	})

	first := serve(r, http.MethodGet, "/qr", nil)
	second := serve(r, http.MethodGet, "/qr", nil)
	assert.Equal(t, 1, calls)
	assert.Equal(t, "png-bytes", second.Body.String())
	assert.Equal(t, first.Body.String(), second.Body.String())
	assert.Equal(t, "image/png", second.Header().Get("Content-Type"))
	assert.Equal(t, "HIT", second.Header().Get("X-Cache"))

	serve(r, http.MethodGet, "/broken", nil)
	serve(r, http.MethodGet, "/broken", nil)
	assert.Equal(t, 3, calls)
}

func TestRequestLoggerSetsRequestID(t *testing.T) {
	r := gin.New()
	r.Use(Recovery(zap.NewNop()), RequestLogger(zap.NewNop()))
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/panic", func(c *gin.Context) { panic("boom") })

	w := serve(r, http.MethodGet, "/ok", nil)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	w = serve(r, http.MethodGet, "/ok", map[string]string{"X-Request-ID": "abc"})
	assert.Equal(t, "abc", w.Header().Get("X-Request-ID"))

	w = serve(r, http.MethodGet, "/panic", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), `"success":false`)
	assert.Contains(t, w.Body.String(), `"code":`+strconv.Itoa(code.ErrUnknown))
}
