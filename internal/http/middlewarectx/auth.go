package middlewarectx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"slices"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/AMULYA007-hub/campus-hire/internal/http/response"
	"github.com/AMULYA007-hub/campus-hire/internal/lib/jwt"
	"github.com/AMULYA007-hub/campus-hire/internal/lib/sl"
	"github.com/AMULYA007-hub/campus-hire/internal/models"
	"github.com/AMULYA007-hub/campus-hire/internal/services/auth"
	"github.com/AMULYA007-hub/campus-hire/internal/sessions"
)

// Sessions resolves a client context to its logged in profile.
type Sessions interface {
	Session(ctx context.Context, contextID string) (*models.Profile, error)
}

// JWTMiddleware checks the bearer token, touches its session context and puts
// the caller's Identity into the request context. Any failure answers 401.
func JWTMiddleware(log *slog.Logger, tokens jwt.Maker, registry Sessions) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.JWTMiddleware"
			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				log.Debug("missing or invalid authorization header")
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("missing or invalid authorization header"))
				return
			}

			claims, err := tokens.ParseToken(strings.TrimPrefix(authHeader, "Bearer "))
			if err != nil {
				log.Debug("invalid or expired token", sl.Err(err))
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("invalid or expired token"))
				return
			}

			profile, err := registry.Session(r.Context(), claims.ContextID)
			switch {
			case errors.Is(err, sessions.ErrSessionExpired):
				log.Info("session expired", slog.String("context_id", claims.ContextID))
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("session expired"))
				return
			case errors.Is(err, auth.ErrNoSession):
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("no active session"))
				return
			case err != nil:
				log.Error("failed to resolve session", sl.Err(err))
				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, response.Error("internal error"))
				return
			}
			if profile.ID != claims.UserID {
				log.Warn("token does not match session", slog.String("context_id", claims.ContextID))
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("no active session"))
				return
			}

			ctx := WithIdentity(r.Context(), Identity{ContextID: claims.ContextID, Profile: *profile})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole lets through only callers whose role is one of roles.
func RequireRole(log *slog.Logger, roles ...models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := IdentityFrom(r.Context())
			if !ok {
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("no active session"))
				return
			}
			if !slices.Contains(roles, id.Profile.Role) {
				log.Info("access denied",
					slog.String("request_id", middleware.GetReqID(r.Context())),
					slog.String("role", string(id.Profile.Role)),
					slog.String("path", r.URL.Path),
				)
				render.Status(r, http.StatusForbidden)
				render.JSON(w, r, response.Error("access denied"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
