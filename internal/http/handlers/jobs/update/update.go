// Package update serves PATCH /jobs/{id}.
package update

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/AMULYA007-hub/campus-hire/internal/http/response"
	"github.com/AMULYA007-hub/campus-hire/internal/lib/sl"
	"github.com/AMULYA007-hub/campus-hire/internal/models"
	"github.com/AMULYA007-hub/campus-hire/internal/storage"
)

type Service interface {
	UpdateJob(ctx context.Context, id int64, patch models.JobPatch) (models.Job, error)
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
	const op = "handlers.jobs.update"

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

	var patch models.JobPatch
	if err := render.DecodeJSON(r.Body, &patch); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	if patch.Status != nil && !patch.Status.Valid() {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid status"))
		return
	}
	if patch.Deadline != nil && *patch.Deadline != "" {
		if _, err := time.Parse(models.DateLayout, *patch.Deadline); err != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid deadline"))
			return
		}
	}

	job, err := h.service.UpdateJob(r.Context(), id, patch)
	switch {
	case errors.Is(err, storage.ErrJobNotFound):
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error("job not found"))
		return
	case err != nil:
		log.Error("failed to update job", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not update job"))
		return
	}

	log.Info("job updated", slog.Int64("id", id))
	render.JSON(w, r, response.StatusOKWithData(job))
}
