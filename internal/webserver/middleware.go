package webserver

import (
	"compress/gzip"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/klauspost/compress/zstd"
)

type compressResponseWriter struct {
	http.ResponseWriter
	writer io.Writer
}

func (w *compressResponseWriter) Write(b []byte) (int, error) {
	return w.writer.Write(b)
}

// CompressionMiddleware encodes responses with zstd or gzip, whichever the client accepts first
func CompressionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		acceptEncoding := r.Header.Get("Accept-Encoding")
		w.Header().Add("Vary", "Accept-Encoding")

		var writer io.WriteCloser

		switch {
		case strings.Contains(acceptEncoding, "zstd"):
			encoder, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
			if err != nil {
				slog.Warn("zstd encoder unavailable", "error", err)
				break
			}

			w.Header().Set("Content-Encoding", "zstd")
			writer = encoder
		case strings.Contains(acceptEncoding, "gzip"):
			w.Header().Set("Content-Encoding", "gzip")
			writer = gzip.NewWriter(w)
		}

		if writer == nil {
			next.ServeHTTP(w, r)
			return
		}

		defer writer.Close()

		w.Header().Del("Content-Length") // Can't know compressed size
		next.ServeHTTP(&compressResponseWriter{ResponseWriter: w, writer: writer}, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// LoggingMiddleware logs one line per request
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		slog.Debug("Request served",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start))
	})
}
