package middleware

import (
	"bytes"
	"compress/gzip"
	"errors"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/tempizhere/linkvault/internal/apierror"
	"github.com/tempizhere/linkvault/internal/response"
)

// minGzipSize - ответы меньше этого размера не сжимаются
const minGzipSize = 1400

// GzipMiddleware распаковывает gzip-запросы и сжимает крупные JSON/HTML-ответы
func GzipMiddleware(rw *response.Writer, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if strings.Contains(r.Header.Get("Content-Encoding"), "gzip") {
				gz, err := gzip.NewReader(r.Body)
				if err != nil {
					rw.Error(w, apierror.InvalidBody(errors.New("invalid gzip data")))
					return
				}
				defer gz.Close()
				r.Body = io.NopCloser(gz)
				r.Header.Del("Content-Encoding")
			}

			if !strings.Contains(r.Header.Get("Accept-Encoding"), "gzip") {
				next.ServeHTTP(w, r)
				return
			}

			gw := &gzipResponseWriter{ResponseWriter: w, status: http.StatusOK, logger: logger}
			next.ServeHTTP(gw, r)
			gw.flush()
		})
	}
}

// gzipResponseWriter буферизует ответ, чтобы решить о сжатии по типу и размеру тела
type gzipResponseWriter struct {
	http.ResponseWriter
	status int
	buf    bytes.Buffer
	logger *zap.Logger
}

func (w *gzipResponseWriter) WriteHeader(statusCode int) {
	w.status = statusCode
}

func (w *gzipResponseWriter) Write(b []byte) (int, error) {
	return w.buf.Write(b)
}

func (w *gzipResponseWriter) compressible() bool {
	contentType := w.Header().Get("Content-Type")
	if !strings.HasPrefix(contentType, "application/json") && !strings.HasPrefix(contentType, "text/html") {
		return false
	}
	return w.buf.Len() >= minGzipSize
}

func (w *gzipResponseWriter) flush() {
	w.Header().Add("Vary", "Accept-Encoding")
	if !w.compressible() {
		w.ResponseWriter.WriteHeader(w.status)
		if _, err := w.ResponseWriter.Write(w.buf.Bytes()); err != nil {
			w.logger.Warn("Failed to write response", zap.Error(err))
		}
		return
	}

	w.Header().Set("Content-Encoding", "gzip")
	w.Header().Del("Content-Length")
	w.ResponseWriter.WriteHeader(w.status)
	gz := gzip.NewWriter(w.ResponseWriter)
	if _, err := gz.Write(w.buf.Bytes()); err != nil {
		w.logger.Warn("Failed to compress response", zap.Error(err))
		return
	}
	if err := gz.Close(); err != nil {
		w.logger.Warn("Failed to compress response", zap.Error(err))
	}
}
