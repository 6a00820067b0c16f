// Package list serves GET /activity with the optional filters userId and limit.
package list

import (
	"net/http"
	"strconv"

	"github.com/go-chi/render"

	"github.com/AMULYA007-hub/campus-hire/internal/http/response"
	"github.com/AMULYA007-hub/campus-hire/internal/models"
)

type Service interface {
	List(f models.ActivityFilter) []models.Activity
}

type Handler struct {
	service Service
}

func New(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := models.ActivityFilter{UserID: q.Get("userId")}
	if raw := q.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid limit"))
			return
		}
		filter.Limit = limit
	}
	render.JSON(w, r, response.StatusOKWithData(h.service.List(filter)))
}
