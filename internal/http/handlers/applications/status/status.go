// Package status serves PATCH /applications/{id}/status. Only the moves
// applied to shortlisted, applied to rejected and shortlisted to hired are
// accepted.
package status

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/AMULYA007-hub/campus-hire/internal/http/response"
	"github.com/AMULYA007-hub/campus-hire/internal/lib/sl"
	"github.com/AMULYA007-hub/campus-hire/internal/models"
	"github.com/AMULYA007-hub/campus-hire/internal/storage"
)

type Request struct {
	Status models.ApplicationStatus `json:"status" validate:"required,oneof=applied shortlisted rejected hired"`
}

type Service interface {
	Application(ctx context.Context, id int64) (models.Application, error)
	UpdateApplicationStatus(ctx context.Context, id int64, status models.ApplicationStatus) (models.Application, error)
}

type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.applications.status"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		log.Info("failed to decode id from url", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid id"))
		return
	}

	var req Request
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	current, err := h.service.Application(r.Context(), id)
	switch {
	case errors.Is(err, storage.ErrApplicationNotFound):
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error("application not found"))
		return
	case err != nil:
		log.Error("failed to read application", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not update application"))
		return
	}

	if !current.Status.CanTransition(req.Status) {
		log.Info("illegal status transition",
			slog.String("from", string(current.Status)),
			slog.String("to", string(req.Status)),
		)
		render.Status(r, http.StatusConflict)
		render.JSON(w, r, response.Error(fmt.Sprintf("cannot change status from %s to %s", current.Status, req.Status)))
		return
	}

	app, err := h.service.UpdateApplicationStatus(r.Context(), id, req.Status)
	switch {
	case errors.Is(err, storage.ErrApplicationNotFound):
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error("application not found"))
		return
	case err != nil:
		log.Error("failed to update application", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not update application"))
		return
	}

	log.Info("application status changed", slog.Int64("id", id), slog.String("status", string(app.Status)))
	render.JSON(w, r, response.StatusOKWithData(app))
}
