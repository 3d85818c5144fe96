package controller

import (
	"bytes"
	"cohort_backend/internal/model"
	"cohort_backend/internal/util"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// tableStore 控制器测试用的内存课程表
type tableStore struct {
	tables   map[string][]model.ClassSession
	failDate map[int]error
	writes   int
}

func newTableStore() *tableStore {
	return &tableStore{
		tables: map[string][]model.ClassSession{
			"cohort_alpha": {
				{ID: 1, WeekNumber: 1, SessionNumber: 1, Date: "2026-11-02", Day: "Monday", SessionType: "regular", SubjectName: "Intro"},
				{ID: 2, WeekNumber: 1, SessionNumber: 2, Date: "2026-11-04", Day: "Wednesday", SessionType: "regular", SubjectName: "Arrays"},
				{ID: 3, WeekNumber: 2, SessionNumber: 1, Date: "2026-11-09", Day: "Monday", SessionType: "regular", SubjectName: "Sorting"},
				{ID: 4, WeekNumber: 2, SessionNumber: 2, Date: "2026-11-11", Day: "Wednesday", SessionType: "regular", SubjectName: "Searching"},
			},
		},
		failDate: map[int]error{},
	}
}

func (s *tableStore) TableExists(ctx context.Context, table string) (bool, error) {
	if !util.ValidTableName(table) {
		return false, util.ErrInvalidTableName
	}
	_, ok := s.tables[table]
	return ok, nil
}

func (s *tableStore) sorted(table string, byDate bool) []model.ClassSession {
	sessions := append([]model.ClassSession(nil), s.tables[table]...)
	sort.SliceStable(sessions, func(i, j int) bool {
		a, b := sessions[i], sessions[j]
		if byDate && a.Date != b.Date {
			return a.Date < b.Date
		}
		if a.WeekNumber != b.WeekNumber {
			return a.WeekNumber < b.WeekNumber
		}
		return a.SessionNumber < b.SessionNumber
	})
	return sessions
}

func (s *tableStore) ListOrdered(ctx context.Context, table string) ([]model.ClassSession, error) {
	return s.sorted(table, false), nil
}

func (s *tableStore) ListByDate(ctx context.Context, table string) ([]model.ClassSession, error) {
	return s.sorted(table, true), nil
}

func (s *tableStore) find(table string, id int) *model.ClassSession {
	sessions := s.tables[table]
	for i := range sessions {
		if sessions[i].ID == id {
			return &sessions[i]
		}
	}
	return nil
}

func (s *tableStore) UpdateDate(ctx context.Context, table string, id int, date, day string) error {
	if err := s.failDate[id]; err != nil {
		return err
	}
	s.writes++
	session := s.find(table, id)
	session.Date, session.Day = date, day
	return nil
}

func (s *tableStore) UpdateNumbering(ctx context.Context, table string, id, week, number int) error {
	s.writes++
	session := s.find(table, id)
	session.WeekNumber, session.SessionNumber = week, number
	return nil
}

func (s *tableStore) FindByID(ctx context.Context, table string, id int) (*model.ClassSession, error) {
	if session := s.find(table, id); session != nil {
		found := *session
		return &found, nil
	}
	return nil, fmt.Errorf("%w: id %d", util.ErrSessionNotFound, id)
}

func (s *tableStore) UpdateContent(ctx context.Context, table string, id int, fields map[string]interface{}) error {
	s.writes++
	session := s.find(table, id)
	if v, ok := fields["subject_topic"].(string); ok {
		session.SubjectTopic = v
	}
	if v, ok := fields["session_material"].(string); ok {
		session.SessionMaterial = v
	}
	return nil
}

func (s *tableStore) MaxID(ctx context.Context, table string) (int, error) {
	max := 0
	for _, session := range s.tables[table] {
		if session.ID > max {
			max = session.ID
		}
	}
	return max, nil
}

func (s *tableStore) Insert(ctx context.Context, table string, sessions []model.ClassSession) error {
	s.tables[table] = append(s.tables[table], sessions...)
	return nil
}

func (s *tableStore) CreateTable(ctx context.Context, table, procedure string) error {
	s.tables[table] = nil
	return nil
}

type cohortRegistry struct {
	cohorts []model.Cohort
}

func (r *cohortRegistry) Create(ctx context.Context, cohort *model.Cohort) error {
	r.cohorts = append(r.cohorts, *cohort)
	return nil
}

func (r *cohortRegistry) FindByTable(ctx context.Context, table string) (*model.Cohort, error) {
	for _, cohort := range r.cohorts {
		if cohort.Table == table {
			found := cohort
			return &found, nil
		}
	}
	return nil, util.ErrCohortNotFound
}

func (r *cohortRegistry) List(ctx context.Context) ([]model.Cohort, error) {
	return r.cohorts, nil
}

func performJSON(t *testing.T, r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}
