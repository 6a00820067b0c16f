package apply

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AMULYA007-hub/campus-hire/internal/http/middlewarectx"
	"github.com/AMULYA007-hub/campus-hire/internal/models"
	"github.com/AMULYA007-hub/campus-hire/internal/services/board"
	"github.com/AMULYA007-hub/campus-hire/internal/storage/memory"
)

func TestApplyHandler_ServeHTTP(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := board.New(log, memory.New(memory.WithSeed(memory.DemoSeed())), nil)
	h := New(log, svc)

	student := middlewarectx.Identity{ContextID: "c", Profile: models.Profile{ID: "s-9", Role: models.RoleStudent}}

	send := func(id, body string, identity *middlewarectx.Identity) *httptest.ResponseRecorder {
		var reader io.Reader = http.NoBody
		if body != "" {
			reader = bytes.NewBufferString(body)
		}
		req := httptest.NewRequest(http.MethodPost, "/api/v1/jobs/"+id+"/apply", reader)
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("id", id)
		ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
		if identity != nil {
			ctx = middlewarectx.WithIdentity(ctx, *identity)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req.WithContext(ctx))
		return rec
	}

	rec := send("4", `{"resume":"cv.pdf"}`, &student)
	require.Equal(t, http.StatusCreated, rec.Code)
	var got struct {
		Data models.Application `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, "s-9", got.Data.StudentID)
	assert.Equal(t, int64(4), got.Data.JobID)
	assert.Equal(t, "cv.pdf", got.Data.Resume)
	assert.Equal(t, models.StatusApplied, got.Data.Status)

	job, err := svc.Job(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, 19, job.Applicants)

	assert.Equal(t, http.StatusConflict, send("4", "", &student).Code, "second application")
	assert.Equal(t, http.StatusCreated, send("5", "", &student).Code, "empty body")
	assert.Equal(t, http.StatusNotFound, send("99", "", &student).Code)
	assert.Equal(t, http.StatusBadRequest, send("x", "", &student).Code)
	assert.Equal(t, http.StatusBadRequest, send("3", "{", &student).Code)
	assert.Equal(t, http.StatusUnauthorized, send("3", "", nil).Code)

	job, err = svc.Job(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, 19, job.Applicants, "rejected applications change nothing")
}
