package login

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/AMULYA007-hub/campus-hire/internal/lib/jwt"
	"github.com/AMULYA007-hub/campus-hire/internal/models"
	"github.com/AMULYA007-hub/campus-hire/internal/services/activity"
	"github.com/AMULYA007-hub/campus-hire/internal/services/auth"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) Login(ctx context.Context, contextID, email, password string, role models.Role) (*models.Profile, error) {
	args := m.Called(ctx, contextID, email, password, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func (m *ServiceMock) Close(ctx context.Context, contextID string) error {
	return m.Called(ctx, contextID).Error(0)
}

type MakerMock struct {
	mock.Mock
}

func (m *MakerMock) GenerateToken(contextID, userID, role string) (string, error) {
	args := m.Called(contextID, userID, role)
	return args.String(0), args.Error(1)
}

func (m *MakerMock) ParseToken(token string) (*jwt.CustomClaims, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*jwt.CustomClaims), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func post(t *testing.T, h *Handler, body string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var got map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	return rec.Code, got
}

func TestLoginHandler_IssuesVerifiableToken(t *testing.T) {
	service := new(ServiceMock)
	maker := jwt.NewJWTMaker("secret", time.Hour)
	feed := activity.New(10)
	profile := &models.Profile{ID: "u-1", Email: "a@b.co", Role: models.RoleEmployer}

	service.On("Login", mock.Anything, "ctx-1", "a@b.co", "secret1", models.RoleEmployer).Return(profile, nil).Once()

	h := New(newNoopLogger(), service, maker, feed)
	h.newID = func() string { return "ctx-1" }

	code, got := post(t, h, `{"email":"a@b.co","password":"secret1","role":"employer"}`)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "OK", got["status"])

	data := got["data"].(map[string]any)
	claims, err := maker.ParseToken(data["token"].(string))
	require.NoError(t, err)
	assert.Equal(t, "ctx-1", claims.ContextID)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, "employer", claims.Role)

	list := feed.List(models.ActivityFilter{})
	require.Len(t, list, 1)
	assert.Equal(t, "login", list[0].Action)
	service.AssertExpectations(t)
}

func TestLoginHandler_Failures(t *testing.T) {
	profile := &models.Profile{ID: "u-1", Role: models.RoleStudent}

	tests := []struct {
		name       string
		body       string
		setup      func(s *ServiceMock, m *MakerMock)
		wantStatus int
		wantError  string
	}{
		{
			name:       "invalid json",
			body:       "nope",
			setup:      func(_ *ServiceMock, _ *MakerMock) {},
			wantStatus: http.StatusBadRequest,
			wantError:  "invalid request body",
		},
		{
			name: "bad credentials",
			body: `{"email":"a@b.co","password":"x","role":"student"}`,
			setup: func(s *ServiceMock, _ *MakerMock) {
				s.On("Login", mock.Anything, "ctx-1", "a@b.co", "x", models.RoleStudent).
					Return(nil, fmt.Errorf("sessions.Login: %w", auth.ErrInvalidCredentials)).Once()
			},
			wantStatus: http.StatusUnauthorized,
			wantError:  "invalid email, password, or role",
		},
		{
			name: "store failure",
			body: `{"email":"a@b.co","password":"x","role":"student"}`,
			setup: func(s *ServiceMock, _ *MakerMock) {
				s.On("Login", mock.Anything, "ctx-1", "a@b.co", "x", models.RoleStudent).
					Return(nil, errors.New("redis down")).Once()
			},
			wantStatus: http.StatusInternalServerError,
			wantError:  "could not log in",
		},
		{
			name: "token failure closes the context",
			body: `{"email":"a@b.co","password":"secret1","role":"student"}`,
			setup: func(s *ServiceMock, m *MakerMock) {
				s.On("Login", mock.Anything, "ctx-1", "a@b.co", "secret1", models.RoleStudent).Return(profile, nil).Once()
				m.On("GenerateToken", "ctx-1", "u-1", "student").Return("", errors.New("sign failed")).Once()
				s.On("Close", mock.Anything, "ctx-1").Return(nil).Once()
			},
			wantStatus: http.StatusInternalServerError,
			wantError:  "could not log in",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := new(ServiceMock)
			maker := new(MakerMock)
			feed := activity.New(10)
			tt.setup(service, maker)

			h := New(newNoopLogger(), service, maker, feed)
			h.newID = func() string { return "ctx-1" }

			code, got := post(t, h, tt.body)
			assert.Equal(t, tt.wantStatus, code)
			assert.Equal(t, "Error", got["status"])
			assert.Equal(t, tt.wantError, got["error"])
			assert.Equal(t, 0, feed.Len())
			service.AssertExpectations(t)
			maker.AssertExpectations(t)
		})
	}
}
