package middleware

import (
	"bytes"
	"crypto/md5"
	"encoding/hex"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Robson2726/Facilitta-sub000/internal/infrastructure/cache"
)

const responseKeyPrefix = "response:"

// cachedResponse is a captured 200 response
type cachedResponse struct {
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

// ResponseCacheConfig configures ResponseCache
type ResponseCacheConfig struct {
	Store      cache.Store
	Expiration time.Duration
	KeyFunc    func(*gin.Context) string
	Log        *zap.Logger
}

// defaultKeyFunc hashes the path and the sorted query string
func defaultKeyFunc(c *gin.Context) string {
	query := c.Request.URL.Query()
	keys := make([]string, 0, len(query))
	for key := range query {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(c.Request.URL.Path)
	b.WriteByte('?')
	for _, key := range keys {
		values := query[key]
		sort.Strings(values)
		for _, value := range values {
			b.WriteString(key + "=" + value + "&")
		}
	}

	sum := md5.Sum([]byte(b.String()))
	return responseKeyPrefix + hex.EncodeToString(sum[:])
}

// ResponseCache serves GET responses from the store while fresh and captures 200 responses otherwise.
// Cache failures fall through to the handler.
func ResponseCache(cfg ResponseCacheConfig) gin.HandlerFunc {
	if cfg.Expiration <= 0 {
		cfg.Expiration = time.Minute
	}
	if cfg.KeyFunc == nil {
		cfg.KeyFunc = defaultKeyFunc
	}
	if cfg.Log == nil {
		cfg.Log = zap.NewNop()
	}

	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet || cfg.Store == nil {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		key := cfg.KeyFunc(c)

		var hit cachedResponse
		if err := cfg.Store.Get(ctx, key, &hit); err == nil {
			c.Header("X-Cache", "HIT")
			c.Data(http.StatusOK, hit.ContentType, hit.Body)
			c.Abort()
			return
		}

		writer := &responseWriter{
			ResponseWriter: c.Writer,
			body:           &bytes.Buffer{},
		}
		c.Writer = writer

		c.Next()

		if writer.Status() != http.StatusOK {
			return
		}
		entry := cachedResponse{
			ContentType: writer.Header().Get("Content-Type"),
			Body:        writer.body.Bytes(),
		}
		if err := cfg.Store.Set(ctx, key, entry, cfg.Expiration); err != nil {
			cfg.Log.Warn("response cache write failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
		}
	}
}

// responseWriter copies the body while writing it
type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *responseWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}
