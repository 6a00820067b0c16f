// Package search serves GET /jobs with the optional filters q, skills,
// location and status.
package search

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/AMULYA007-hub/campus-hire/internal/http/response"
	"github.com/AMULYA007-hub/campus-hire/internal/lib/sl"
	"github.com/AMULYA007-hub/campus-hire/internal/models"
)

type Service interface {
	SearchJobs(ctx context.Context, f models.JobFilter) ([]models.Job, error)
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

// ParseFilter reads the job filter from the query string. skills may be
// repeated or comma separated.
func ParseFilter(r *http.Request) models.JobFilter {
	q := r.URL.Query()
	var skills []string
	for _, v := range q["skills"] {
		for _, s := range strings.Split(v, ",") {
			if s = strings.TrimSpace(s); s != "" {
				skills = append(skills, s)
			}
		}
	}
	return models.JobFilter{
		Query:    q.Get("q"),
		Skills:   skills,
		Location: q.Get("location"),
		Status:   models.JobStatus(q.Get("status")),
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.jobs.search"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	filter := ParseFilter(r)
	if filter.Status != "" && !filter.Status.Valid() {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid status"))
		return
	}

	jobs, err := h.service.SearchJobs(r.Context(), filter)
	if err != nil {
		log.Error("failed to list jobs", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list jobs"))
		return
	}

	log.Debug("jobs listed", slog.Int("count", len(jobs)))
	render.JSON(w, r, response.StatusOKWithData(jobs))
}
