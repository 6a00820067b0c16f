package register

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/AMULYA007-hub/campus-hire/internal/models"
	"github.com/AMULYA007-hub/campus-hire/internal/services/activity"
	"github.com/AMULYA007-hub/campus-hire/internal/services/auth"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) Register(ctx context.Context, in auth.RegisterInput) (*models.Profile, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestRegisterHandler_ServeHTTP(t *testing.T) {
	input := auth.RegisterInput{
		Email:           "a@b.co",
		Password:        "secret1",
		ConfirmPassword: "secret1",
		Role:            models.RoleStudent,
		FullName:        "Ann",
		Phone:           "555",
	}

	tests := []struct {
		name         string
		body         string
		mockProfile  *models.Profile
		mockErr      error
		wantStatus   int
		wantError    string
		wantRecorded int
	}{
		{
			name:         "success",
			mockProfile:  &models.Profile{ID: "u-1", Email: "a@b.co", Role: models.RoleStudent},
			wantStatus:   http.StatusCreated,
			wantRecorded: 1,
		},
		{
			name:       "invalid json",
			body:       "{",
			wantStatus: http.StatusBadRequest,
			wantError:  "invalid request body",
		},
		{
			name:       "validation message passes through",
			mockErr:    auth.ErrPasswordsMismatch,
			wantStatus: http.StatusBadRequest,
			wantError:  "passwords do not match",
		},
		{
			name:       "duplicate email",
			mockErr:    auth.ErrDuplicateEmail,
			wantStatus: http.StatusConflict,
			wantError:  "email already registered",
		},
		{
			name:       "store failure",
			mockErr:    errors.New("disk full"),
			wantStatus: http.StatusInternalServerError,
			wantError:  "could not register account",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := new(ServiceMock)
			feed := activity.New(10)

			body := tt.body
			if body == "" {
				raw, err := json.Marshal(input)
				require.NoError(t, err)
				body = string(raw)
				service.On("Register", mock.Anything, input).Return(tt.mockProfile, tt.mockErr).Once()
			}

			req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", bytes.NewBufferString(body))
			req = req.WithContext(context.WithValue(req.Context(), middleware.RequestIDKey, "reqid123"))
			rec := httptest.NewRecorder()

			New(newNoopLogger(), service, feed).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			var got map[string]any
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
			if tt.wantError != "" {
				assert.Equal(t, "Error", got["status"])
				assert.Equal(t, tt.wantError, got["error"])
			} else {
				assert.Equal(t, "OK", got["status"])
				data := got["data"].(map[string]any)
				assert.Equal(t, "u-1", data["id"])
				assert.NotContains(t, data, "passwordHash")
			}
			assert.Equal(t, tt.wantRecorded, feed.Len())
			service.AssertExpectations(t)
		})
	}
}
