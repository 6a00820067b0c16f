// Package list serves GET /applications. Students only see their own.
package list

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

type Service interface {
	Applications(ctx context.Context, studentID string) ([]models.Application, error)
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
	const op = "handlers.applications.list"

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

	var studentID string
	if identity.Profile.Role == models.RoleStudent {
		studentID = identity.Profile.ID
	}

	apps, err := h.service.Applications(r.Context(), studentID)
	if err != nil {
		log.Error("failed to list applications", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list applications"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(apps))
}
