// Package middleware bundles the HTTP middleware stack used by the API
package middleware

import (
	"compress/flate"
	"encoding/json"
	"net/http"
	"runtime/debug"
	"time"

	perr "artisantrend/internal/platform/errors"
	"artisantrend/internal/platform/logger"
	pnet "artisantrend/internal/platform/net"
	pstrings "artisantrend/internal/platform/strings"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// CORSOptions narrows go-chi/cors to the knobs the API exposes
type CORSOptions struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
	MaxAge         int
}

// CORS applies go-chi/cors with GET/POST/OPTIONS and the request-id header by default
func CORS(o CORSOptions) func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins: pstrings.IfEmpty(o.AllowedOrigins, []string{"*"}),
		AllowedMethods: pstrings.IfEmpty(o.AllowedMethods, []string{"GET", "POST", "OPTIONS"}),
		AllowedHeaders: pstrings.IfEmpty(o.AllowedHeaders, []string{"Accept", "Content-Type", "X-Request-ID"}),
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         o.MaxAge,
	})
}

// Stack is the default chain: real ip, request id, panic recovery, access log, timeout, gzip
func Stack(timeout, slow time.Duration) []func(http.Handler) http.Handler {
	return []func(http.Handler) http.Handler{
		chimw.RealIP,
		chimw.RequestID,
		RecoverJSON,
		AccessLog(slow),
		chimw.Timeout(timeout),
		chimw.Compress(flate.DefaultCompression),
		chimw.NoCache,
	}
}

type captureWriter struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (cw *captureWriter) WriteHeader(code int) {
	cw.status = code
	cw.ResponseWriter.WriteHeader(code)
}

func (cw *captureWriter) Write(b []byte) (int, error) {
	n, err := cw.ResponseWriter.Write(b)
	cw.bytes += n
	return n, err
}

// AccessLog logs one line per request; requests at or above slow log at warn
func AccessLog(slow time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cw := &captureWriter{ResponseWriter: w, status: http.StatusOK}
			start := time.Now()
			next.ServeHTTP(cw, r)
			elapsed := time.Since(start)

			log := logger.C(logger.WithRequest(r.Context(), pnet.RequestID(r.Context())))
			evt := log.Info()
			switch {
			case cw.status >= 500:
				evt = log.Error()
			case slow > 0 && elapsed >= slow:
				evt = log.Warn()
			}
			evt.Int("status", cw.status).
				Dur("elapsed", elapsed).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("bytes", cw.bytes).
				Msg("request")
		})
	}
}

// RecoverJSON turns a panic into a JSON 500 envelope and logs the stack
func RecoverJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			v := recover()
			if v == nil {
				return
			}
			reqID := pnet.RequestID(r.Context())
			logger.C(logger.WithRequest(r.Context(), reqID)).Error().
				Interface("panic", v).
				Bytes("stack", debug.Stack()).
				Msg("panic recovered")

			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			w.WriteHeader(http.StatusInternalServerError)
			_ = json.NewEncoder(w).Encode(map[string]any{
				"status_code": http.StatusInternalServerError,
				"status":      http.StatusText(http.StatusInternalServerError),
				"code":        perr.ErrorCodePanic,
				"error":       "internal error",
				"request_id":  reqID,
			})
		}()
		next.ServeHTTP(w, r)
	})
}
