package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Ovitozinn/luxe-dash-suite/internal/observer"
	"github.com/Ovitozinn/luxe-dash-suite/internal/reqctx"
	"github.com/Ovitozinn/luxe-dash-suite/pkg/logger"
	"github.com/Ovitozinn/luxe-dash-suite/pkg/utils"
)

// HeaderRequestID carries the request id in and out.
const HeaderRequestID = "X-Request-Id"

// requestContext stores a request id and a scoped logger on the context.
// An incoming X-Request-Id is reused.
func requestContext(base *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := r.Header.Get(HeaderRequestID)
			if requestID == "" {
				requestID = uuid.NewString()
			}
			w.Header().Set(HeaderRequestID, requestID)

			ctx := reqctx.WithRequestID(r.Context(), requestID)
			ctx = logger.WithLogger(ctx, base.With(
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
			))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// requestLogger logs every completed request and records its metrics under
// the matched route pattern.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			latency := time.Since(start)
			observer.ObserveHTTPRequest(r.Method, routePattern(r), status, latency)
			logger.FromContext(r.Context()).Info("Request completed",
				zap.Int("status", status),
				zap.Duration("latency", latency),
				zap.String("remote_addr", r.RemoteAddr),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}

// recoverer turns a handler panic into a 500.
func recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		serve := utils.WrapWithContextRecovery(func(ctx context.Context) error {
			next.ServeHTTP(w, r.WithContext(ctx))
			return nil
		})
		if err := serve(r.Context()); err != nil {
			writeError(w, http.StatusInternalServerError, "internal server error")
		}
	})
}

func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return "unmatched"
}
