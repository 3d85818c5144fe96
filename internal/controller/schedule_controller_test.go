package controller

import (
	"cohort_backend/internal/service"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newScheduleRouter(store *tableStore) *gin.Engine {
	svc := service.NewRescheduleService(store, nil, nil, time.UTC)
	svc.SetClock(func() time.Time { return time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC) })
	ctrl := NewScheduleController(svc)

	r := gin.New()
	r.POST("/api/reschedule", ctrl.ApplyShift)
	r.GET("/api/reschedule/preview", ctrl.PreviewShift)
	r.POST("/api/cohorts/:table/renumber", ctrl.Renumber)
	r.GET("/api/cohorts/:table/shifts", ctrl.ListShifts)
	return r
}

func TestScheduleController_Apply(t *testing.T) {
	store := newTableStore()
	r := newScheduleRouter(store)

	w := performJSON(t, r, http.MethodPost, "/api/reschedule", gin.H{
		"tableName": "cohort_alpha",
		"sessionId": 3,
		"newDate":   "2026-11-10",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	body := decode(t, w)
	assert.Equal(t, true, body["success"])
	assert.EqualValues(t, 2, body["updatedCount"])
	assert.Equal(t, "Successfully rescheduled 2 sessions", body["message"])

	updates := body["updates"].([]interface{})
	require.Len(t, updates, 2)
	assert.Equal(t, map[string]interface{}{"id": float64(3), "date": "2026-11-10", "day": "Tuesday"}, updates[0])
	assert.Equal(t, map[string]interface{}{"id": float64(4), "date": "2026-11-11", "day": "Wednesday"}, updates[1])
}

func TestScheduleController_ApplyPartialFailure(t *testing.T) {
	store := newTableStore()
	store.failDate[4] = errors.New("lock wait timeout")
	r := newScheduleRouter(store)

	w := performJSON(t, r, http.MethodPost, "/api/reschedule", gin.H{
		"tableName": "cohort_alpha",
		"sessionId": 3,
		"newDate":   "2026-11-10",
	})
	require.Equal(t, http.StatusMultiStatus, w.Code, w.Body.String())

	body := decode(t, w)
	assert.Equal(t, false, body["success"])
	assert.EqualValues(t, 1, body["updatedCount"])
	assert.Equal(t, []interface{}{"session 4: lock wait timeout"}, body["errors"])
	assert.NotContains(t, body, "updates")
}

func TestScheduleController_ApplyErrors(t *testing.T) {
	tests := []struct {
		name       string
		body       gin.H
		wantStatus int
	}{
		{"missing fields", gin.H{"tableName": "cohort_alpha"}, http.StatusBadRequest},
		{"unknown table", gin.H{"tableName": "cohort_zeta", "sessionId": 3, "newDate": "2026-11-10"}, http.StatusNotFound},
		{"unknown session", gin.H{"tableName": "cohort_alpha", "sessionId": 99, "newDate": "2026-11-10"}, http.StatusNotFound},
		{"bad date", gin.H{"tableName": "cohort_alpha", "sessionId": 3, "newDate": "10/11/2026"}, http.StatusBadRequest},
		{"same date", gin.H{"tableName": "cohort_alpha", "sessionId": 3, "newDate": "2026-11-09"}, http.StatusBadRequest},
		{"past date", gin.H{"tableName": "cohort_alpha", "sessionId": 3, "newDate": "2026-10-01"}, http.StatusBadRequest},
		{"today", gin.H{"tableName": "cohort_alpha", "sessionId": 3, "newDate": "2026-10-19"}, http.StatusBadRequest},
		{"wrong type", gin.H{"tableName": "cohort_alpha", "sessionId": "three", "newDate": "2026-11-10"}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newTableStore()
			r := newScheduleRouter(store)

			w := performJSON(t, r, http.MethodPost, "/api/reschedule", tt.body)
			assert.Equal(t, tt.wantStatus, w.Code, w.Body.String())

			body := decode(t, w)
			assert.NotEmpty(t, body["error"])
			assert.Zero(t, store.writes)
		})
	}
}

func TestScheduleController_Preview(t *testing.T) {
	store := newTableStore()
	r := newScheduleRouter(store)

	w := performJSON(t, r, http.MethodGet, "/api/reschedule/preview?tableName=cohort_alpha&sessionId=3&newDate=2026-11-10", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	body := decode(t, w)
	assert.Equal(t, true, body["success"])
	assert.EqualValues(t, 2, body["affectedCount"])
	assert.Equal(t, []interface{}{"Monday", "Wednesday"}, body["dayPattern"])
	assert.Equal(t, map[string]interface{}{"id": float64(3), "week_number": float64(2), "session_number": float64(1)}, body["shiftedSession"])

	rows := body["preview"].([]interface{})
	require.Len(t, rows, 2)
	first := rows[0].(map[string]interface{})
	assert.Equal(t, "2026-11-09", first["oldDate"])
	assert.Equal(t, "Monday", first["oldDay"])
	assert.Equal(t, "2026-11-10", first["newDate"])
	assert.Equal(t, "Tuesday", first["newDay"])
	assert.Equal(t, "Sorting", first["subject_name"])

	assert.Zero(t, store.writes)
}

func TestScheduleController_PreviewErrors(t *testing.T) {
	store := newTableStore()
	r := newScheduleRouter(store)

	w := performJSON(t, r, http.MethodGet, "/api/reschedule/preview?tableName=cohort_alpha&sessionId=abc&newDate=2026-11-10", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = performJSON(t, r, http.MethodGet, "/api/reschedule/preview?tableName=cohort_alpha&sessionId=3", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "tableName, sessionId and newDate are required", decode(t, w)["error"])

	w = performJSON(t, r, http.MethodGet, "/api/reschedule/preview?tableName=cohort_alpha&sessionId=42&newDate=2026-11-10", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestScheduleController_Renumber(t *testing.T) {
	store := newTableStore()
	store.tables["cohort_alpha"][3].WeekNumber = 5
	r := newScheduleRouter(store)

	w := performJSON(t, r, http.MethodPost, "/api/cohorts/cohort_alpha/renumber", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	data := decode(t, w)["data"].(map[string]interface{})
	renumbered := data["renumbered"].([]interface{})
	require.Len(t, renumbered, 1)
	assert.Equal(t, map[string]interface{}{"id": float64(4), "week_number": float64(2), "session_number": float64(2)}, renumbered[0])
}

func TestScheduleController_ListShifts(t *testing.T) {
	r := newScheduleRouter(newTableStore())

	w := performJSON(t, r, http.MethodGet, "/api/cohorts/cohort_alpha/shifts?limit=5", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = performJSON(t, r, http.MethodGet, "/api/cohorts/cohort_zeta/shifts", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
