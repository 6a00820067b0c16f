// Package logout serves POST /auth/logout.
package logout

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/AMULYA007-hub/campus-hire/internal/http/middlewarectx"
	"github.com/AMULYA007-hub/campus-hire/internal/http/response"
	"github.com/AMULYA007-hub/campus-hire/internal/lib/sl"
	"github.com/AMULYA007-hub/campus-hire/internal/models"
)

// Service closes session contexts.
type Service interface {
	Close(ctx context.Context, contextID string) error
}

// Recorder stores activity entries.
type Recorder interface {
	Record(a models.Activity) models.Activity
}

type Handler struct {
	log      *slog.Logger
	service  Service
	recorder Recorder
}

func New(log *slog.Logger, service Service, recorder Recorder) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		recorder: recorder,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.logout"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, ok := middlewarectx.IdentityFrom(r.Context())
	if !ok {
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error("no active session"))
		return
	}

	if err := h.service.Close(r.Context(), id.ContextID); err != nil {
		log.Error("failed to log out", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not log out"))
		return
	}

	h.recorder.Record(models.Activity{UserID: id.Profile.ID, Role: id.Profile.Role, Action: "logout"})
	log.Info("logged out", slog.String("id", id.Profile.ID))
	render.JSON(w, r, response.OK())
}
