package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Catacombb/f9-sub000/internal/handlers"
	"github.com/Catacombb/f9-sub000/internal/models"
)

func statusRouter(backend *fakeBackend, userID uuid.UUID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	_, status, _ := testServices(backend)
	h := handlers.NewStatusHandler(status, backend, zap.NewNop().Sugar())

	router := gin.New()
	router.Use(authAs(userID))
	router.GET("/projects/:project_id/status", h.GetStatus)
	router.PUT("/projects/:project_id/status", h.UpdateStatus)
	return router
}

func statusBody(t *testing.T, status string) *bytes.Buffer {
	t.Helper()
	body, err := json.Marshal(models.UpdateStatusRequest{Status: status})
	require.NoError(t, err)
	return bytes.NewBuffer(body)
}

func putStatus(router *gin.Engine, projectID uuid.UUID, body *bytes.Buffer) *httptest.ResponseRecorder {
	req, _ := http.NewRequest("PUT", "/projects/"+projectID.String()+"/status", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestGetStatus(t *testing.T) {
	userID := uuid.New()
	project := seedProject(userID)
	backend := newFakeBackend(project)
	router := statusRouter(backend, userID)

	req, _ := http.NewRequest("GET", "/projects/"+project.ID.String()+"/status", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp models.StatusResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, models.StatusBrief, resp.Status)
	assert.Equal(t, project.ID.String(), resp.ProjectID)
}

func TestUpdateStatusValidTransition(t *testing.T) {
	userID := uuid.New()
	project := seedProject(userID)
	backend := newFakeBackend(project)
	router := statusRouter(backend, userID)

	w := putStatus(router, project.ID, statusBody(t, models.StatusSent))
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.StatusResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, models.StatusSent, resp.Status)
}

func TestUpdateStatusSkippingReviewRejected(t *testing.T) {
	userID := uuid.New()
	project := seedProject(userID)
	backend := newFakeBackend(project)
	router := statusRouter(backend, userID)

	// brief -> complete must go through sent.
	w := putStatus(router, project.ID, statusBody(t, models.StatusComplete))
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	stored, err := backend.GetProject(project.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusBrief, stored.Status)
}

func TestUpdateStatusUnknownValue(t *testing.T) {
	userID := uuid.New()
	project := seedProject(userID)
	backend := newFakeBackend(project)
	router := statusRouter(backend, userID)

	w := putStatus(router, project.ID, statusBody(t, "archived"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateStatusSameStateIsNoOp(t *testing.T) {
	userID := uuid.New()
	project := seedProject(userID)
	backend := newFakeBackend(project)
	router := statusRouter(backend, userID)

	w := putStatus(router, project.ID, statusBody(t, models.StatusBrief))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, backend.activities)
}

func TestUpdateStatusScopedToOwner(t *testing.T) {
	owner := uuid.New()
	project := seedProject(owner)
	backend := newFakeBackend(project)
	router := statusRouter(backend, uuid.New())

	w := putStatus(router, project.ID, statusBody(t, models.StatusSent))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
