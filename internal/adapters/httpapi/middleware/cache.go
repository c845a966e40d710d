package middleware

import (
	"bytes"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	cachePort "plume/internal/ports/cache"
)

// PageCache serves GET responses from the cache keyed by request URI, and
// stores successful renders with the given TTL. Mutating writes clear the
// cache through the post service, so a hit is never staler than the last
// content change.
func PageCache(cache cachePort.PageCache, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if cache == nil || c.Request.Method != http.MethodGet {
			c.Next()
			return
		}

		key := c.Request.RequestURI
		if body, ok, err := cache.Get(c.Request.Context(), key); err == nil && ok {
			c.Data(http.StatusOK, "text/html; charset=utf-8", body)
			c.Abort()
			return
		}

		w := &captureWriter{ResponseWriter: c.Writer}
		c.Writer = w
		c.Next()

		if w.Status() == http.StatusOK {
			_ = cache.Set(c.Request.Context(), key, w.body.Bytes(), ttl)
		}
	}
}

type captureWriter struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *captureWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *captureWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}
