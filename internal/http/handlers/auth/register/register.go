// Package register serves POST /auth/register.
package register

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/AMULYA007-hub/campus-hire/internal/http/response"
	"github.com/AMULYA007-hub/campus-hire/internal/lib/sl"
	"github.com/AMULYA007-hub/campus-hire/internal/models"
	"github.com/AMULYA007-hub/campus-hire/internal/services/auth"
)

// Service registers accounts.
type Service interface {
	Register(ctx context.Context, in auth.RegisterInput) (*models.Profile, error)
}

// Recorder stores activity entries.
type Recorder interface {
	Record(a models.Activity) models.Activity
}

// Handler creates accounts. Input is checked by the service so the messages
// and their order stay the same for every client.
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
	const op = "handlers.auth.register"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req auth.RegisterInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	profile, err := h.service.Register(r.Context(), req)
	var verr *auth.ValidationError
	switch {
	case errors.As(err, &verr):
		log.Info("registration rejected", slog.String("reason", verr.Message))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error(verr.Message))
		return
	case errors.Is(err, auth.ErrDuplicateEmail):
		log.Info("email already registered")
		render.Status(r, http.StatusConflict)
		render.JSON(w, r, response.Error(auth.ErrDuplicateEmail.Error()))
		return
	case err != nil:
		log.Error("failed to register", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not register account"))
		return
	}

	h.recorder.Record(models.Activity{UserID: profile.ID, Role: profile.Role, Action: "register"})
	log.Info("account registered", slog.String("id", profile.ID))
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, response.StatusOKWithData(profile))
}
