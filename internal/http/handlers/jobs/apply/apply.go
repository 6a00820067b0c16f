// Package apply serves POST /jobs/{id}/apply for the logged in student.
package apply

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/AMULYA007-hub/campus-hire/internal/http/middlewarectx"
	"github.com/AMULYA007-hub/campus-hire/internal/http/response"
	"github.com/AMULYA007-hub/campus-hire/internal/lib/sl"
	"github.com/AMULYA007-hub/campus-hire/internal/models"
	"github.com/AMULYA007-hub/campus-hire/internal/storage"
)

// Request is the optional application body.
type Request struct {
	Resume string `json:"resume"`
}

type Service interface {
	ApplyJob(ctx context.Context, jobID int64, info models.StudentInfo) (models.Application, error)
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
	const op = "handlers.jobs.apply"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	identity, ok := middlewarectx.IdentityFrom(r.Context())
	if !ok {
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error("no active session"))
		return
	}

	jobID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		log.Info("failed to decode id from url", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid id"))
		return
	}

	var req Request
	if err := render.DecodeJSON(r.Body, &req); err != nil && !errors.Is(err, io.EOF) {
		log.Error("failed to decode request body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	app, err := h.service.ApplyJob(r.Context(), jobID, models.StudentInfo{
		StudentID: identity.Profile.ID,
		Resume:    req.Resume,
	})
	switch {
	case errors.Is(err, storage.ErrJobNotFound):
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error("job not found"))
		return
	case errors.Is(err, storage.ErrAlreadyApplied):
		render.Status(r, http.StatusConflict)
		render.JSON(w, r, response.Error("already applied to this job"))
		return
	case err != nil:
		log.Error("failed to apply", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not apply"))
		return
	}

	log.Info("application created", slog.Int64("id", app.ID), slog.Int64("job_id", jobID))
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, response.StatusOKWithData(app))
}
