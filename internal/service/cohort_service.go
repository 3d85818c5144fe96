package service

import (
	"cohort_backend/internal/model"
	"cohort_backend/internal/scheduler"
	"cohort_backend/internal/util"
	"cohort_backend/pkg/logger"
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

// CohortSessionStore 班级课程表的建表和内容维护
type CohortSessionStore interface {
	TableExists(ctx context.Context, table string) (bool, error)
	CreateTable(ctx context.Context, table, procedure string) error
	ListOrdered(ctx context.Context, table string) ([]model.ClassSession, error)
	FindByID(ctx context.Context, table string, id int) (*model.ClassSession, error)
	UpdateContent(ctx context.Context, table string, id int, fields map[string]interface{}) error
	MaxID(ctx context.Context, table string) (int, error)
	Insert(ctx context.Context, table string, sessions []model.ClassSession) error
}

type CohortStore interface {
	Create(ctx context.Context, cohort *model.Cohort) error
	FindByTable(ctx context.Context, table string) (*model.Cohort, error)
	List(ctx context.Context) ([]model.Cohort, error)
}

// TableRenumberer 新增课程后整表重排周次
type TableRenumberer interface {
	Renumber(ctx context.Context, table string) ([]scheduler.Numbering, *BatchResult, error)
}

type CreateCohortRequest struct {
	Name         string   `json:"name" binding:"required"`
	TableName    string   `json:"tableName" binding:"required"`
	StartDate    string   `json:"startDate"`
	Days         []string `json:"days"`
	SessionCount int      `json:"sessionCount"`
	Operator     string   `json:"-"`
}

// SessionContentPatch 只允许修改描述类字段，nil 表示不修改
type SessionContentPatch struct {
	Time                   *string `json:"time"`
	SessionType            *string `json:"session_type"`
	SubjectType            *string `json:"subject_type"`
	SubjectName            *string `json:"subject_name"`
	SubjectTopic           *string `json:"subject_topic"`
	InitialSessionMaterial *string `json:"initial_session_material"`
	SessionMaterial        *string `json:"session_material"`
	SessionRecording       *string `json:"session_recording"`
}

func (p SessionContentPatch) fields() map[string]interface{} {
	fields := make(map[string]interface{})
	set := func(column string, v *string) {
		if v != nil {
			fields[column] = *v
		}
	}
	set("time", p.Time)
	set("session_type", p.SessionType)
	set("subject_type", p.SubjectType)
	set("subject_name", p.SubjectName)
	set("subject_topic", p.SubjectTopic)
	set(util.MaterialColumn(util.MaterialInitial), p.InitialSessionMaterial)
	set(util.MaterialColumn(util.MaterialSession), p.SessionMaterial)
	set(util.MaterialColumn(util.MaterialRecording), p.SessionRecording)
	return fields
}

type CohortDetail struct {
	Cohort   *model.Cohort        `json:"cohort"`
	Sessions []model.ClassSession `json:"sessions"`
}

type CohortService struct {
	Sessions   CohortSessionStore
	Cohorts    CohortStore
	Renumberer TableRenumberer
	// Procedure 建表存储过程名，为空时使用 gorm 建表
	Procedure string
}

func NewCohortService(sessions CohortSessionStore, cohorts CohortStore, renumberer TableRenumberer, procedure string) *CohortService {
	return &CohortService{
		Sessions:   sessions,
		Cohorts:    cohorts,
		Renumberer: renumberer,
		Procedure:  procedure,
	}
}

// CreateCohort 建课程表并登记班级；给出 startDate 和 sessionCount 时生成初始课表
func (s *CohortService) CreateCohort(ctx context.Context, req CreateCohortRequest) (*model.Cohort, error) {
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return nil, fmt.Errorf("%w: name is required", util.ErrMissingFields)
	}
	if !util.ValidTableName(req.TableName) {
		return nil, fmt.Errorf("%w: %q", util.ErrInvalidTableName, req.TableName)
	}

	days, err := parseDays(req.Days)
	if err != nil {
		return nil, err
	}

	var generated []model.ClassSession
	if req.SessionCount > 0 {
		if req.StartDate == "" {
			return nil, fmt.Errorf("%w: startDate is required with sessionCount", util.ErrMissingFields)
		}
		start, err := util.ParseDate(req.StartDate)
		if err != nil {
			return nil, err
		}
		generated, err = scheduler.Generate(start, days, req.SessionCount)
		if err != nil {
			return nil, err
		}
	} else if req.StartDate != "" {
		if _, err := util.ParseDate(req.StartDate); err != nil {
			return nil, err
		}
	}

	exists, err := s.Sessions.TableExists(ctx, req.TableName)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: %s", util.ErrCohortExists, req.TableName)
	}

	if err := s.Sessions.CreateTable(ctx, req.TableName, s.Procedure); err != nil {
		return nil, fmt.Errorf("create session table: %w", err)
	}

	cohort := &model.Cohort{
		Name:      req.Name,
		Table:     req.TableName,
		StartDate: req.StartDate,
		Days:      strings.Join(scheduler.PatternNames(days), ","),
		CreatedBy: req.Operator,
	}
	if err := s.Cohorts.Create(ctx, cohort); err != nil {
		return nil, fmt.Errorf("register cohort: %w", err)
	}

	if len(generated) > 0 {
		if err := s.Sessions.Insert(ctx, req.TableName, generated); err != nil {
			return nil, fmt.Errorf("insert generated sessions: %w", err)
		}
	}

	logger.Log.Info("cohort created",
		zap.String("table", req.TableName),
		zap.String("name", req.Name),
		zap.Int("sessions", len(generated)),
		zap.String("operator", req.Operator))

	return cohort, nil
}

func (s *CohortService) ListCohorts(ctx context.Context) ([]model.Cohort, error) {
	return s.Cohorts.List(ctx)
}

func (s *CohortService) GetCohort(ctx context.Context, table string) (*CohortDetail, error) {
	cohort, err := s.Cohorts.FindByTable(ctx, table)
	if err != nil {
		return nil, err
	}
	sessions, err := s.ListSessions(ctx, table)
	if err != nil {
		return nil, err
	}
	return &CohortDetail{Cohort: cohort, Sessions: sessions}, nil
}

func (s *CohortService) ListSessions(ctx context.Context, table string) ([]model.ClassSession, error) {
	if err := s.ensureTable(ctx, table); err != nil {
		return nil, err
	}
	return s.Sessions.ListOrdered(ctx, table)
}

// AddSessions 追加课程。未给 id 的从当前最大 id 之后分配，星期由日期推出，
// 插入后整表重排周次
func (s *CohortService) AddSessions(ctx context.Context, table string, sessions []model.ClassSession) ([]model.ClassSession, error) {
	if len(sessions) == 0 {
		return nil, fmt.Errorf("%w: no sessions", util.ErrMissingFields)
	}
	if err := s.ensureTable(ctx, table); err != nil {
		return nil, err
	}

	existing, err := s.Sessions.ListOrdered(ctx, table)
	if err != nil {
		return nil, err
	}
	taken := make(map[int]bool, len(existing)+len(sessions))
	for _, e := range existing {
		taken[e.ID] = true
	}

	nextID, err := s.Sessions.MaxID(ctx, table)
	if err != nil {
		return nil, err
	}

	prepared := make([]model.ClassSession, 0, len(sessions))
	for _, session := range sessions {
		date, err := util.ParseDate(session.Date)
		if err != nil {
			return nil, err
		}
		session.Date = util.FormatDate(date)
		session.Day = date.Weekday().String()

		if session.ID == 0 {
			for taken[nextID+1] {
				nextID++
			}
			nextID++
			session.ID = nextID
		} else if taken[session.ID] {
			return nil, fmt.Errorf("%w: id %d", util.ErrSessionExists, session.ID)
		}
		taken[session.ID] = true

		prepared = append(prepared, session)
	}

	if err := s.Sessions.Insert(ctx, table, prepared); err != nil {
		return nil, fmt.Errorf("insert sessions: %w", err)
	}

	if s.Renumberer != nil {
		if _, batch, err := s.Renumberer.Renumber(ctx, table); err != nil {
			logger.Log.Error("renumber after insert failed", zap.String("table", table), zap.Error(err))
		} else if !batch.OK() {
			logger.Log.Warn("renumber after insert partially failed",
				zap.String("table", table),
				zap.Strings("errors", batch.Messages()))
		}
	}

	return prepared, nil
}

// UpdateSessionContent 日期、星期和周次不在这里修改
func (s *CohortService) UpdateSessionContent(ctx context.Context, table string, id int, patch SessionContentPatch) (*model.ClassSession, error) {
	fields := patch.fields()
	if len(fields) == 0 {
		return nil, util.ErrNothingToUpdate
	}
	if err := s.ensureTable(ctx, table); err != nil {
		return nil, err
	}
	if _, err := s.Sessions.FindByID(ctx, table, id); err != nil {
		return nil, err
	}

	if err := s.Sessions.UpdateContent(ctx, table, id, fields); err != nil {
		return nil, fmt.Errorf("update session %d: %w", id, err)
	}
	return s.Sessions.FindByID(ctx, table, id)
}

func (s *CohortService) ensureTable(ctx context.Context, table string) error {
	exists, err := s.Sessions.TableExists(ctx, table)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%w: %s", util.ErrCohortNotFound, table)
	}
	return nil
}

// parseDays 为空时使用默认上课日
func parseDays(names []string) ([]time.Weekday, error) {
	if len(names) == 0 {
		return append([]time.Weekday(nil), scheduler.DefaultPattern...), nil
	}

	seen := make(map[time.Weekday]bool, len(names))
	days := make([]time.Weekday, 0, len(names))
	for _, name := range names {
		d, ok := scheduler.ParseWeekday(name)
		if !ok {
			return nil, fmt.Errorf("%w: %q", util.ErrInvalidDays, name)
		}
		if !seen[d] {
			seen[d] = true
			days = append(days, d)
		}
	}
	return days, nil
}
