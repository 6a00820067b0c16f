// Package remove serves DELETE /jobs/{id}. Applications of the job are kept.
package remove

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/AMULYA007-hub/campus-hire/internal/http/response"
	"github.com/AMULYA007-hub/campus-hire/internal/lib/sl"
	"github.com/AMULYA007-hub/campus-hire/internal/storage"
)

type Service interface {
	DeleteJob(ctx context.Context, id int64) error
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
	const op = "handlers.jobs.remove"

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

	err = h.service.DeleteJob(r.Context(), id)
	switch {
	case errors.Is(err, storage.ErrJobNotFound):
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error("job not found"))
		return
	case err != nil:
		log.Error("failed to delete job", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not delete job"))
		return
	}

	log.Info("job deleted", slog.Int64("id", id))
	render.JSON(w, r, response.OK())
}
