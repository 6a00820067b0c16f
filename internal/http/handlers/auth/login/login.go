// Package login serves POST /auth/login. A successful login opens a new
// session context and answers with the token that refers to it.
package login

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/AMULYA007-hub/campus-hire/internal/http/response"
	"github.com/AMULYA007-hub/campus-hire/internal/lib/jwt"
	"github.com/AMULYA007-hub/campus-hire/internal/lib/sl"
	"github.com/AMULYA007-hub/campus-hire/internal/models"
	"github.com/AMULYA007-hub/campus-hire/internal/services/auth"
)

// Request holds the login form.
type Request struct {
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Role     models.Role `json:"role"`
}

// Service opens and closes session contexts.
type Service interface {
	Login(ctx context.Context, contextID, email, password string, role models.Role) (*models.Profile, error)
	Close(ctx context.Context, contextID string) error
}

// Recorder stores activity entries.
type Recorder interface {
	Record(a models.Activity) models.Activity
}

type Handler struct {
	log      *slog.Logger
	service  Service
	tokens   jwt.Maker
	recorder Recorder
	newID    func() string
}

func New(log *slog.Logger, service Service, tokens jwt.Maker, recorder Recorder) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		tokens:   tokens,
		recorder: recorder,
		newID:    uuid.NewString,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.login"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	contextID := h.newID()
	profile, err := h.service.Login(r.Context(), contextID, req.Email, req.Password, req.Role)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		log.Info("invalid credentials", slog.String("role", string(req.Role)))
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error(auth.ErrInvalidCredentials.Error()))
		return
	}
	if err != nil {
		log.Error("login failed", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not log in"))
		return
	}

	token, err := h.tokens.GenerateToken(contextID, profile.ID, string(profile.Role))
	if err != nil {
		log.Error("failed to generate token", sl.Err(err))
		if err := h.service.Close(r.Context(), contextID); err != nil {
			log.Error("failed to close session", sl.Err(err))
		}
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not log in"))
		return
	}

	h.recorder.Record(models.Activity{UserID: profile.ID, Role: profile.Role, Action: "login"})
	log.Info("login success", slog.String("id", profile.ID))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"token":   token,
		"profile": profile,
	}))
}
