package session

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AMULYA007-hub/campus-hire/internal/http/middlewarectx"
	"github.com/AMULYA007-hub/campus-hire/internal/models"
)

func TestSessionHandler_ServeHTTP(t *testing.T) {
	t.Run("returns the caller profile", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/session", nil)
		req = req.WithContext(middlewarectx.WithIdentity(req.Context(), middlewarectx.Identity{
			ContextID: "ctx-1",
			Profile: models.Profile{
				ID:          "u-1",
				Email:       "a@b.co",
				Role:        models.RoleAdmin,
				RoleProfile: models.DefaultRoleProfile(models.RoleAdmin, "a@b.co"),
			},
		}))
		rec := httptest.NewRecorder()
		New().ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var got struct {
			Status string         `json:"status"`
			Data   models.Profile `json:"data"`
		}
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
		assert.Equal(t, "OK", got.Status)
		assert.Equal(t, "u-1", got.Data.ID)
		require.NotNil(t, got.Data.RoleProfile.Admin)
		assert.Contains(t, got.Data.RoleProfile.Admin.Permissions, "manage_users")
	})

	t.Run("no identity", func(t *testing.T) {
		rec := httptest.NewRecorder()
		New().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/auth/session", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
