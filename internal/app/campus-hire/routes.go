// Package campushire assembles the placement portal HTTP service.
package campushire

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/AMULYA007-hub/campus-hire/internal/config"
	activitylist "github.com/AMULYA007-hub/campus-hire/internal/http/handlers/activity/list"
	applicationslist "github.com/AMULYA007-hub/campus-hire/internal/http/handlers/applications/list"
	"github.com/AMULYA007-hub/campus-hire/internal/http/handlers/applications/status"
	"github.com/AMULYA007-hub/campus-hire/internal/http/handlers/auth/login"
	"github.com/AMULYA007-hub/campus-hire/internal/http/handlers/auth/logout"
	"github.com/AMULYA007-hub/campus-hire/internal/http/handlers/auth/profile"
	"github.com/AMULYA007-hub/campus-hire/internal/http/handlers/auth/register"
	"github.com/AMULYA007-hub/campus-hire/internal/http/handlers/auth/session"
	"github.com/AMULYA007-hub/campus-hire/internal/http/handlers/health"
	"github.com/AMULYA007-hub/campus-hire/internal/http/handlers/jobs/apply"
	jobscreate "github.com/AMULYA007-hub/campus-hire/internal/http/handlers/jobs/create"
	jobsremove "github.com/AMULYA007-hub/campus-hire/internal/http/handlers/jobs/remove"
	"github.com/AMULYA007-hub/campus-hire/internal/http/handlers/jobs/search"
	"github.com/AMULYA007-hub/campus-hire/internal/http/handlers/jobs/update"
	placementscreate "github.com/AMULYA007-hub/campus-hire/internal/http/handlers/placements/create"
	placementslist "github.com/AMULYA007-hub/campus-hire/internal/http/handlers/placements/list"
	userscreate "github.com/AMULYA007-hub/campus-hire/internal/http/handlers/users/create"
	userslist "github.com/AMULYA007-hub/campus-hire/internal/http/handlers/users/list"
	usersremove "github.com/AMULYA007-hub/campus-hire/internal/http/handlers/users/remove"
	"github.com/AMULYA007-hub/campus-hire/internal/http/middlewarectx"
	"github.com/AMULYA007-hub/campus-hire/internal/lib/jwt"
	"github.com/AMULYA007-hub/campus-hire/internal/models"
	"github.com/AMULYA007-hub/campus-hire/internal/services/activity"
	authservice "github.com/AMULYA007-hub/campus-hire/internal/services/auth"
	"github.com/AMULYA007-hub/campus-hire/internal/services/board"
	"github.com/AMULYA007-hub/campus-hire/internal/sessions"
)

// Services are the dependencies of the routes.
type Services struct {
	Board     *board.Service
	Registry  *sessions.Registry
	Registrar *authservice.Service
	Activity  *activity.Log
	Tokens    jwt.Maker
	RateLimit config.RateLimit
}

// RegisterRoutes registers every route of the API on r.
func RegisterRoutes(r chi.Router, logger *slog.Logger, s Services) {
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	staff := middlewarectx.RequireRole(logger, models.RoleEmployer, models.RoleOfficer, models.RoleAdmin)
	employers := middlewarectx.RequireRole(logger, models.RoleEmployer, models.RoleAdmin)
	office := middlewarectx.RequireRole(logger, models.RoleOfficer, models.RoleAdmin)
	admins := middlewarectx.RequireRole(logger, models.RoleAdmin)
	students := middlewarectx.RequireRole(logger, models.RoleStudent)

	r.Route("/api/v1", func(r chi.Router) {
		// Public
		r.Post("/auth/register", register.New(logger, s.Registrar, s.Activity).ServeHTTP)
		r.With(middlewarectx.RateLimitMiddleware(logger, s.RateLimit.LoginRPS, s.RateLimit.LoginBurst)).
			Post("/auth/login", login.New(logger, s.Registry, s.Tokens, s.Activity).ServeHTTP)

		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(logger, s.Tokens, s.Registry))

			r.Post("/auth/logout", logout.New(logger, s.Registry, s.Activity).ServeHTTP)
			r.Get("/auth/session", session.New().ServeHTTP)
			r.Get("/jobs", search.New(logger, s.Board).ServeHTTP)
			r.Get("/applications", applicationslist.New(logger, s.Board).ServeHTTP)
			r.Get("/placements", placementslist.New(logger, s.Board).ServeHTTP)
			r.With(admins).Get("/users", userslist.New(logger, s.Board).ServeHTTP)
			r.With(office).Get("/activity", activitylist.New(s.Activity).ServeHTTP)

			// Mutations below are written to the activity feed.
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.ActivityMiddleware(s.Activity))

				r.Patch("/auth/profile", profile.New(logger, s.Registry).ServeHTTP)

				r.With(employers).Post("/jobs", jobscreate.New(logger, s.Board).ServeHTTP)
				r.With(employers).Patch("/jobs/{id}", update.New(logger, s.Board).ServeHTTP)
				r.With(employers).Delete("/jobs/{id}", jobsremove.New(logger, s.Board).ServeHTTP)
				r.With(students).Post("/jobs/{id}/apply", apply.New(logger, s.Board).ServeHTTP)

				r.With(staff).Patch("/applications/{id}/status", status.New(logger, s.Board).ServeHTTP)

				r.With(office).Post("/placements", placementscreate.New(logger, s.Board).ServeHTTP)

				r.With(admins).Post("/users", userscreate.New(logger, s.Board).ServeHTTP)
				r.With(admins).Delete("/users/{id}", usersremove.New(logger, s.Board).ServeHTTP)
			})
		})
	})

	r.Get("/health", health.New().ServeHTTP)
	r.Handle("/metrics", promhttp.Handler())
}
