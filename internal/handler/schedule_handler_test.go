package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cantouch/socialflow-backend/internal/domain"
	"github.com/cantouch/socialflow-backend/internal/middleware"
	"github.com/cantouch/socialflow-backend/internal/repository"
	"github.com/cantouch/socialflow-backend/internal/service"
)

func newScheduleAPI(t *testing.T) (*gin.Engine, *service.SessionManager, *service.ScheduleService) {
	t.Helper()

	schedules := service.NewScheduleService(context.Background(), repository.NewMemoryScheduleStore())
	manager := service.NewSessionManager("key")

	router := gin.New()
	h := NewScheduleHandler(schedules)

	authed := router.Group("/api/v1", middleware.Session(manager))
	authed.POST("/schedule", h.Save)
	authed.GET("/schedule", h.List)
	authed.DELETE("/schedule/:id", h.Delete)
	authed.POST("/schedule/:id/duplicate", h.Duplicate)

	return router, manager, schedules
}

// completeWorkflow puts a session into the succeeded state with one result
func completeWorkflow(session *service.Session, scheduleDate string) {
	info := domain.DefaultBrandInfo()
	info.BrandName = "Brewline"
	info.Topic = "Cold brew launch"
	info.ScheduleDate = scheduleDate
	input, _ := session.Workflow.BeginSubmit(info)
	session.Workflow.Complete(input, domain.GeneratedContent{
		{Platform: domain.PlatformX, Content: "thread", Hashtags: []string{"#brew"}},
	})
}

func TestScheduleEndpoint_SaveRequiresResult(t *testing.T) {
	router, manager, _ := newScheduleAPI(t)
	session := manager.Create()

	w := doRequest(router, http.MethodPost, "/api/v1/schedule", session.ID, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestScheduleEndpoint_SaveRequiresDate(t *testing.T) {
	router, manager, _ := newScheduleAPI(t)
	session := manager.Create()
	completeWorkflow(session, "")

	w := doRequest(router, http.MethodPost, "/api/v1/schedule", session.ID, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "date")
}

func TestScheduleEndpoint_SaveAndList(t *testing.T) {
	router, manager, schedules := newScheduleAPI(t)
	session := manager.Create()
	completeWorkflow(session, "2026-04-01T10:00")

	w := doRequest(router, http.MethodPost, "/api/v1/schedule", session.ID, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, 1, schedules.Count())

	w = doRequest(router, http.MethodGet, "/api/v1/schedule", session.ID, "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data []domain.ScheduledCampaign `json:"data"`
		Meta struct {
			Count int `json:"count"`
		} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 1)
	assert.Equal(t, 1, resp.Meta.Count)
	assert.Equal(t, "Brewline", resp.Data[0].BrandInfo.BrandName)
	assert.Len(t, resp.Data[0].GeneratedContent, 1)
}

func TestScheduleEndpoint_SaveWithDateOverride(t *testing.T) {
	router, manager, _ := newScheduleAPI(t)
	session := manager.Create()
	completeWorkflow(session, "")

	w := doRequest(router, http.MethodPost, "/api/v1/schedule", session.ID,
		`{"scheduleDate":"2026-05-01T08:00"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doRequest(router, http.MethodGet, "/api/v1/schedule", session.ID, "")
	assert.Contains(t, w.Body.String(), "2026-05-01T08:00")
}

func TestScheduleEndpoint_Delete(t *testing.T) {
	router, manager, _ := newScheduleAPI(t)
	session := manager.Create()
	completeWorkflow(session, "2026-04-01T10:00")

	w := doRequest(router, http.MethodPost, "/api/v1/schedule", session.ID, "")
	require.Equal(t, http.StatusCreated, w.Code)

	var created struct {
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = doRequest(router, http.MethodDelete, "/api/v1/schedule/"+created.Data.ID, session.ID, "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(router, http.MethodDelete, "/api/v1/schedule/"+created.Data.ID, session.ID, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestScheduleEndpoint_Duplicate(t *testing.T) {
	router, manager, schedules := newScheduleAPI(t)
	session := manager.Create()
	completeWorkflow(session, "2026-04-01T10:00")

	w := doRequest(router, http.MethodPost, "/api/v1/schedule", session.ID, "")
	require.Equal(t, http.StatusCreated, w.Code)

	var created struct {
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = doRequest(router, http.MethodPost, "/api/v1/schedule/"+created.Data.ID+"/duplicate", session.ID, "")
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, 2, schedules.Count())

	w = doRequest(router, http.MethodPost, "/api/v1/schedule/missing/duplicate", session.ID, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

// the schedule is shared across sessions
func TestScheduleEndpoint_SharedAcrossSessions(t *testing.T) {
	router, manager, _ := newScheduleAPI(t)

	first := manager.Create()
	completeWorkflow(first, "2026-04-01T10:00")
	w := doRequest(router, http.MethodPost, "/api/v1/schedule", first.ID, "")
	require.Equal(t, http.StatusCreated, w.Code)

	second := manager.Create()
	w = doRequest(router, http.MethodGet, "/api/v1/schedule", second.ID, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Brewline")
}
