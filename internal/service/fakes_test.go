package service

import (
	"cohort_backend/internal/model"
	"cohort_backend/internal/util"
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
)

// memorySessionStore 内存版课程表，可按 id 注入写入失败
type memorySessionStore struct {
	mu     sync.Mutex
	tables map[string][]model.ClassSession

	failDate      map[int]error
	failNumbering map[int]error
	listErr       error
	contentErr    error
	// reloadErr 只影响 ListByDate，模拟写完日期后重新取数失败
	reloadErr     error

	dateWrites      int
	numberingWrites int
	contentWrites   int
	createdTables   []string
	procedures      []string
}

func newMemorySessionStore() *memorySessionStore {
	return &memorySessionStore{
		tables:        make(map[string][]model.ClassSession),
		failDate:      make(map[int]error),
		failNumbering: make(map[int]error),
	}
}

func (m *memorySessionStore) put(table string, sessions []model.ClassSession) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tables[table] = append([]model.ClassSession(nil), sessions...)
}

func (m *memorySessionStore) writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.dateWrites + m.numberingWrites + m.contentWrites
}

func (m *memorySessionStore) get(table string, id int) model.ClassSession {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.tables[table] {
		if s.ID == id {
			return s
		}
	}
	return model.ClassSession{}
}

func (m *memorySessionStore) TableExists(ctx context.Context, table string) (bool, error) {
	if !util.ValidTableName(table) {
		return false, util.ErrInvalidTableName
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.tables[table]
	return ok, nil
}

func (m *memorySessionStore) list(table string, less func(a, b model.ClassSession) bool) ([]model.ClassSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	sessions := append([]model.ClassSession(nil), m.tables[table]...)
	sort.SliceStable(sessions, func(i, j int) bool { return less(sessions[i], sessions[j]) })
	return sessions, nil
}

func (m *memorySessionStore) ListOrdered(ctx context.Context, table string) ([]model.ClassSession, error) {
	return m.list(table, func(a, b model.ClassSession) bool {
		if a.WeekNumber != b.WeekNumber {
			return a.WeekNumber < b.WeekNumber
		}
		if a.SessionNumber != b.SessionNumber {
			return a.SessionNumber < b.SessionNumber
		}
		return a.ID < b.ID
	})
}

func (m *memorySessionStore) ListByDate(ctx context.Context, table string) ([]model.ClassSession, error) {
	m.mu.Lock()
	reloadErr := m.reloadErr
	m.mu.Unlock()
	if reloadErr != nil {
		return nil, reloadErr
	}
	return m.list(table, func(a, b model.ClassSession) bool {
		if a.Date != b.Date {
			return a.Date < b.Date
		}
		if a.WeekNumber != b.WeekNumber {
			return a.WeekNumber < b.WeekNumber
		}
		if a.SessionNumber != b.SessionNumber {
			return a.SessionNumber < b.SessionNumber
		}
		return a.ID < b.ID
	})
}

func (m *memorySessionStore) update(table string, id int, fn func(s *model.ClassSession)) error {
	sessions := m.tables[table]
	for i := range sessions {
		if sessions[i].ID == id {
			fn(&sessions[i])
			return nil
		}
	}
	return fmt.Errorf("%w: id %d", util.ErrSessionNotFound, id)
}

func (m *memorySessionStore) UpdateDate(ctx context.Context, table string, id int, date, day string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.failDate[id]; err != nil {
		return err
	}
	m.dateWrites++
	return m.update(table, id, func(s *model.ClassSession) {
		s.Date = date
		s.Day = day
	})
}

func (m *memorySessionStore) UpdateNumbering(ctx context.Context, table string, id, week, session int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.failNumbering[id]; err != nil {
		return err
	}
	m.numberingWrites++
	return m.update(table, id, func(s *model.ClassSession) {
		s.WeekNumber = week
		s.SessionNumber = session
	})
}

func (m *memorySessionStore) FindByID(ctx context.Context, table string, id int) (*model.ClassSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.tables[table] {
		if s.ID == id {
			found := s
			return &found, nil
		}
	}
	return nil, fmt.Errorf("%w: id %d", util.ErrSessionNotFound, id)
}

func (m *memorySessionStore) UpdateContent(ctx context.Context, table string, id int, fields map[string]interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.contentWrites++
	if m.contentErr != nil {
		return m.contentErr
	}
	return m.update(table, id, func(s *model.ClassSession) {
		for column, value := range fields {
			v, _ := value.(string)
			switch column {
			case "time":
				s.Time = v
			case "session_type":
				s.SessionType = v
			case "subject_type":
				s.SubjectType = v
			case "subject_name":
				s.SubjectName = v
			case "subject_topic":
				s.SubjectTopic = v
			case util.MaterialColumn(util.MaterialInitial):
				s.InitialSessionMaterial = v
			case util.MaterialColumn(util.MaterialSession):
				s.SessionMaterial = v
			case util.MaterialColumn(util.MaterialRecording):
				s.SessionRecording = v
			}
		}
	})
}

func (m *memorySessionStore) MaxID(ctx context.Context, table string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	max := 0
	for _, s := range m.tables[table] {
		if s.ID > max {
			max = s.ID
		}
	}
	return max, nil
}

func (m *memorySessionStore) Insert(ctx context.Context, table string, sessions []model.ClassSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tables[table] = append(m.tables[table], sessions...)
	return nil
}

func (m *memorySessionStore) CreateTable(ctx context.Context, table, procedure string) error {
	if !util.ValidTableName(table) {
		return util.ErrInvalidTableName
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.tables[table]; ok {
		return errors.New("table already exists")
	}
	m.tables[table] = nil
	m.createdTables = append(m.createdTables, table)
	m.procedures = append(m.procedures, procedure)
	return nil
}

type stubLocker struct {
	err      error
	acquired int
	released int
}

func (l *stubLocker) Acquire(ctx context.Context, table string) (func(), error) {
	if l.err != nil {
		return nil, l.err
	}
	l.acquired++
	return func() { l.released++ }, nil
}

type memoryShiftLogs struct {
	err  error
	logs []model.ShiftLog
}

func (l *memoryShiftLogs) Create(ctx context.Context, log *model.ShiftLog) error {
	if l.err != nil {
		return l.err
	}
	l.logs = append(l.logs, *log)
	return nil
}

func (l *memoryShiftLogs) ListByTable(ctx context.Context, table string, limit int) ([]model.ShiftLog, error) {
	var out []model.ShiftLog
	for i := len(l.logs) - 1; i >= 0 && len(out) < limit; i-- {
		if l.logs[i].Table == table {
			out = append(out, l.logs[i])
		}
	}
	return out, nil
}

type memoryCohorts struct {
	cohorts []model.Cohort
}

func (c *memoryCohorts) Create(ctx context.Context, cohort *model.Cohort) error {
	c.cohorts = append(c.cohorts, *cohort)
	return nil
}

func (c *memoryCohorts) FindByTable(ctx context.Context, table string) (*model.Cohort, error) {
	for _, cohort := range c.cohorts {
		if cohort.Table == table {
			found := cohort
			return &found, nil
		}
	}
	return nil, util.ErrCohortNotFound
}

func (c *memoryCohorts) List(ctx context.Context) ([]model.Cohort, error) {
	return append([]model.Cohort(nil), c.cohorts...), nil
}

type memoryMeetings struct {
	meetings []model.Meeting
}

func (m *memoryMeetings) Create(ctx context.Context, meeting *model.Meeting) error {
	meeting.ID = uint(len(m.meetings) + 1)
	m.meetings = append(m.meetings, *meeting)
	return nil
}

func (m *memoryMeetings) List(ctx context.Context, table string) ([]model.Meeting, error) {
	var out []model.Meeting
	for _, meeting := range m.meetings {
		if table == "" || meeting.Table == table {
			out = append(out, meeting)
		}
	}
	return out, nil
}

// monWedCohort 周一、周三上课，11-13 为一节周五比赛课
func monWedCohort() []model.ClassSession {
	return []model.ClassSession{
		{ID: 1, WeekNumber: 1, SessionNumber: 1, Date: "2026-11-02", Day: "Monday", SessionType: "regular", SubjectName: "Intro"},
		{ID: 2, WeekNumber: 1, SessionNumber: 2, Date: "2026-11-04", Day: "Wednesday", SessionType: "regular", SubjectName: "Arrays"},
		{ID: 3, WeekNumber: 2, SessionNumber: 1, Date: "2026-11-09", Day: "Monday", SessionType: "regular", SubjectName: "Sorting"},
		{ID: 4, WeekNumber: 2, SessionNumber: 2, Date: "2026-11-11", Day: "Wednesday", SessionType: "regular", SubjectName: "Searching"},
		{ID: 5, WeekNumber: 2, SessionNumber: 3, Date: "2026-11-13", Day: "Friday", SessionType: "contest", SubjectName: "Weekly Contest"},
		{ID: 6, WeekNumber: 3, SessionNumber: 1, Date: "2026-11-16", Day: "Monday", SessionType: "regular", SubjectName: "Graphs"},
		{ID: 7, WeekNumber: 3, SessionNumber: 2, Date: "2026-11-18", Day: "Wednesday", SessionType: "regular", SubjectName: "Trees"},
	}
}
