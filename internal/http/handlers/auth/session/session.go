// Package session serves GET /auth/session.
package session

import (
	"net/http"

	"github.com/go-chi/render"

	"github.com/AMULYA007-hub/campus-hire/internal/http/middlewarectx"
	"github.com/AMULYA007-hub/campus-hire/internal/http/response"
)

// Handler returns the profile of the caller.
type Handler struct{}

func New() *Handler {
	return &Handler{}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, ok := middlewarectx.IdentityFrom(r.Context())
	if !ok {
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error("no active session"))
		return
	}
	render.JSON(w, r, response.StatusOKWithData(id.Profile))
}
