package middleware

import (
	"bytes"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rafaelleal24/stock-control/internal/core/logger"
)

// maxErrorBodySize bounds the error response body copied into the log entry.
const maxErrorBodySize = 16 * 1024

var bufferPool = sync.Pool{
	New: func() any {
		return new(bytes.Buffer)
	},
}

type responseBodyWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *responseBodyWriter) capture(n int) bool {
	return w.body.Len()+n <= maxErrorBodySize
}

func (w *responseBodyWriter) Write(b []byte) (int, error) {
	if w.capture(len(b)) {
		w.body.Write(b)
	}
	return w.ResponseWriter.Write(b)
}

func (w *responseBodyWriter) WriteString(s string) (int, error) {
	if w.capture(len(s)) {
		w.body.WriteString(s)
	}
	return w.ResponseWriter.WriteString(s)
}

func levelForStatus(status int) logger.LogLevel {
	switch {
	case status >= 500:
		return logger.LogLevelError
	case status >= 400:
		return logger.LogLevelWarn
	default:
		return logger.LogLevelInfo
	}
}

// LogRequest emits one entry per request. JSON error bodies are attached so a
// failed call can be diagnosed from the log alone.
func LogRequest() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		buf := bufferPool.Get().(*bytes.Buffer)
		defer bufferPool.Put(buf)
		buf.Reset()
		writer := &responseBodyWriter{ResponseWriter: c.Writer, body: buf}
		c.Writer = writer

		c.Next()

		status := c.Writer.Status()
		attrs := map[string]any{
			"http.method":        c.Request.Method,
			"http.path":          c.Request.URL.Path,
			"http.route":         c.FullPath(),
			"http.status_code":   status,
			"http.duration_ms":   time.Since(start).Milliseconds(),
			"http.client_ip":     c.ClientIP(),
			"http.response_size": c.Writer.Size(),
		}
		if contentLength := c.Request.Header.Get("Content-Length"); contentLength != "" {
			if size, err := strconv.ParseInt(contentLength, 10, 64); err == nil {
				attrs["http.request_size"] = size
			}
		}
		if key := c.GetHeader("Idempotency-Key"); key != "" {
			attrs["http.idempotency_key"] = key
		}
		contentType := c.Writer.Header().Get("Content-Type")
		if status >= 400 && strings.Contains(contentType, "application/json") && writer.body.Len() > 0 {
			attrs["http.response_body"] = writer.body.String()
		}

		logger.Log(c.Request.Context(), logger.LogEntry{
			Level:      levelForStatus(status),
			Message:    "HTTP Request",
			Attributes: attrs,
			Timestamp:  time.Now(),
		})
	}
}
