package middlewarectx

import (
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"

	"github.com/AMULYA007-hub/campus-hire/internal/models"
)

// Recorder stores activity entries.
type Recorder interface {
	Record(a models.Activity) models.Activity
}

// ActivityMiddleware records every successful mutating request of an
// authenticated caller. The action is the method and the route pattern.
func ActivityMiddleware(recorder Recorder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodGet || r.Method == http.MethodHead || r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			id, ok := IdentityFrom(r.Context())
			if !ok || ww.Status() >= http.StatusBadRequest {
				return
			}
			pattern := r.URL.Path
			if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
				pattern = rctx.RoutePattern()
			}
			recorder.Record(models.Activity{
				UserID: id.Profile.ID,
				Role:   id.Profile.Role,
				Action: r.Method + " " + pattern,
				Target: r.URL.Path,
			})
		})
	}
}
