// Package profile serves PATCH /auth/profile.
package profile

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/AMULYA007-hub/campus-hire/internal/http/middlewarectx"
	"github.com/AMULYA007-hub/campus-hire/internal/http/response"
	"github.com/AMULYA007-hub/campus-hire/internal/lib/sl"
	"github.com/AMULYA007-hub/campus-hire/internal/models"
	"github.com/AMULYA007-hub/campus-hire/internal/services/auth"
)

// Service edits the session profile of a context.
type Service interface {
	UpdateProfile(ctx context.Context, contextID string, upd auth.ProfileUpdate) (*models.Profile, error)
}

type Handler struct {
	log     *slog.Logger
	service Service
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.profile"

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

	var req auth.ProfileUpdate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	profile, err := h.service.UpdateProfile(r.Context(), id.ContextID, req)
	var verr *auth.ValidationError
	switch {
	case errors.As(err, &verr):
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error(verr.Message))
		return
	case errors.Is(err, auth.ErrNoSession):
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error("no active session"))
		return
	case err != nil:
		log.Error("failed to update profile", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not update profile"))
		return
	}

	log.Info("profile updated", slog.String("id", profile.ID))
	render.JSON(w, r, response.StatusOKWithData(profile))
}
