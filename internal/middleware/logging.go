package middleware

import (
	"context"
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

type requestInfoKey struct{}

type requestInfo struct {
	username string
}

func setLoggedUser(ctx context.Context, username string) {
	if info, ok := ctx.Value(requestInfoKey{}).(*requestInfo); ok {
		info.username = username
	}
}

// RequestLogger writes one event per request. 5xx responses log at error
// level, 4xx at warn, everything else at info.
func RequestLogger(log zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			info := &requestInfo{}
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r.WithContext(context.WithValue(r.Context(), requestInfoKey{}, info)))

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}

			var e *zerolog.Event
			switch {
			case status >= 500:
				e = log.Error()
			case status >= 400:
				e = log.Warn()
			default:
				e = log.Info()
			}

			if reqID := chimw.GetReqID(r.Context()); reqID != "" {
				e = e.Str("request_id", reqID)
			}
			if info.username != "" {
				e = e.Str("username", info.username)
			}

			e.Dur("latency", time.Since(start)).
				Int("status", status).
				Int("bytes", ww.BytesWritten()).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Str("ip", r.RemoteAddr).
				Str("user_agent", r.UserAgent()).
				Msg("API")
		})
	}
}
