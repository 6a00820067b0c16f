package create

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/AMULYA007-hub/campus-hire/internal/models"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) AddUser(ctx context.Context, in models.UserInput) (models.User, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(models.User), args.Error(1)
}

func TestCreateHandler_ServeHTTP(t *testing.T) {
	in := models.UserInput{Name: "Ravi", Email: "ravi@acme.com", Role: models.RoleEmployer}

	tests := []struct {
		name       string
		body       string
		callsMock  bool
		mockResult models.User
		mockErr    error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "success",
			body:       `{"name":"Ravi","email":"ravi@acme.com","role":"employer"}`,
			callsMock:  true,
			mockResult: models.User{ID: 4, Name: "Ravi", Email: "ravi@acme.com", Role: models.RoleEmployer, Status: models.UserActive, JoinDate: "2026-10-18"},
			wantStatus: http.StatusCreated,
			wantBody: `{"status":"OK","data":{"id":4,"name":"Ravi","email":"ravi@acme.com",` +
				`"role":"employer","status":"active","joinDate":"2026-10-18"}}`,
		},
		{
			name:       "bad email",
			body:       `{"name":"Ravi","email":"ravi","role":"employer"}`,
			wantStatus: http.StatusUnprocessableEntity,
			wantBody:   `{"status":"Error","error":"field Email must be a valid email"}`,
		},
		{
			name:       "bad json",
			body:       `[]`,
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"status":"Error","error":"invalid request body"}`,
		},
		{
			name:       "service error",
			body:       `{"name":"Ravi","email":"ravi@acme.com","role":"employer"}`,
			callsMock:  true,
			mockErr:    errors.New("db down"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"status":"Error","error":"could not add user"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := new(ServiceMock)
			if tt.callsMock {
				service.On("AddUser", mock.Anything, in).Return(tt.mockResult, tt.mockErr).Once()
			}

			req := httptest.NewRequest(http.MethodPost, "/api/v1/users", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()

			New(slog.New(slog.NewTextHandler(io.Discard, nil)), service).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
			service.AssertExpectations(t)
		})
	}
}
