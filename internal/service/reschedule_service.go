package service

import (
	"cohort_backend/internal/model"
	"cohort_backend/internal/scheduler"
	"cohort_backend/internal/util"
	"cohort_backend/pkg/logger"
	"cohort_backend/pkg/monitoring"
	"cohort_backend/pkg/tracing"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
)

// SessionStore 调课用到的课程表读写
type SessionStore interface {
	TableExists(ctx context.Context, table string) (bool, error)
	ListOrdered(ctx context.Context, table string) ([]model.ClassSession, error)
	ListByDate(ctx context.Context, table string) ([]model.ClassSession, error)
	UpdateDate(ctx context.Context, table string, id int, date, day string) error
	UpdateNumbering(ctx context.Context, table string, id, week, session int) error
}

// ShiftLocker 返回的 release 必须调用
type ShiftLocker interface {
	Acquire(ctx context.Context, table string) (release func(), err error)
}

type ShiftLogStore interface {
	Create(ctx context.Context, log *model.ShiftLog) error
	ListByTable(ctx context.Context, table string, limit int) ([]model.ShiftLog, error)
}

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 200

	shiftModePreview = "preview"
	shiftModeApply   = "apply"
)

// ShiftRequest 预览和应用共用的调课参数
type ShiftRequest struct {
	TableName string `json:"tableName" form:"tableName"`
	SessionID int    `json:"sessionId" form:"sessionId"`
	NewDate   string `json:"newDate" form:"newDate"`
	Operator  string `json:"-" form:"-"`
}

type ShiftedSession struct {
	ID            int `json:"id"`
	WeekNumber    int `json:"week_number"`
	SessionNumber int `json:"session_number"`
}

type ShiftPreview struct {
	ShiftedSession ShiftedSession         `json:"shiftedSession"`
	AffectedCount  int                    `json:"affectedCount"`
	DayPattern     []string               `json:"dayPattern"`
	Preview        []scheduler.PreviewRow `json:"preview"`
}

type SessionUpdate struct {
	ID   int    `json:"id"`
	Date string `json:"date"`
	Day  string `json:"day"`
}

type BatchFailure struct {
	ID     int    `json:"id"`
	Reason string `json:"reason"`
}

// BatchResult 逐条写库的结果，失败不回滚也不重试
type BatchResult struct {
	Succeeded []int          `json:"succeeded"`
	Failed    []BatchFailure `json:"failed"`
}

func (b *BatchResult) succeed(id int) {
	b.Succeeded = append(b.Succeeded, id)
}

func (b *BatchResult) fail(id int, err error) {
	b.Failed = append(b.Failed, BatchFailure{ID: id, Reason: err.Error()})
}

func (b *BatchResult) OK() bool {
	return len(b.Failed) == 0
}

// Messages 207 响应中的 errors 字段
func (b *BatchResult) Messages() []string {
	msgs := make([]string, 0, len(b.Failed))
	for _, f := range b.Failed {
		msgs = append(msgs, fmt.Sprintf("session %d: %s", f.ID, f.Reason))
	}
	return msgs
}

type ShiftResult struct {
	Updates    []SessionUpdate
	Renumbered []scheduler.Numbering
	Batch      *BatchResult
}

func (r *ShiftResult) UpdatedCount() int {
	return len(r.Batch.Succeeded)
}

// RescheduleService 调课：预览不落库，应用时逐条写入新日期后整表重排周次
type RescheduleService struct {
	Store    SessionStore
	Locker   ShiftLocker
	Logs     ShiftLogStore
	Location *time.Location

	now func() time.Time
}

func NewRescheduleService(store SessionStore, locker ShiftLocker, logs ShiftLogStore, loc *time.Location) *RescheduleService {
	if loc == nil {
		loc = time.Local
	}
	return &RescheduleService{
		Store:    store,
		Locker:   locker,
		Logs:     logs,
		Location: loc,
		now:      time.Now,
	}
}

// SetClock 测试用
func (s *RescheduleService) SetClock(now func() time.Time) {
	s.now = now
}

// shiftContext 校验通过后的调课上下文
type shiftContext struct {
	sessions []model.ClassSession
	plan     *scheduler.ShiftPlan
	rows     []scheduler.PreviewRow
}

// Preview 计算调课结果，不做任何写入
func (s *RescheduleService) Preview(ctx context.Context, req ShiftRequest) (*ShiftPreview, error) {
	ctx, span := tracing.StartSpan(ctx, "RescheduleService.Preview")
	defer span.End()
	span.SetAttributes(
		attribute.String("table", req.TableName),
		attribute.Int("session_id", req.SessionID),
	)

	newDate, err := s.checkRequest(ctx, req)
	if err != nil {
		s.observe(shiftModePreview, err)
		span.RecordError(err)
		return nil, err
	}

	sc, err := s.prepare(ctx, req, newDate)
	if err != nil {
		s.observe(shiftModePreview, err)
		span.RecordError(err)
		return nil, err
	}

	rows := sc.rows
	target := sc.plan.Target
	monitoring.ObserveShift(shiftModePreview, "ok")
	return &ShiftPreview{
		ShiftedSession: ShiftedSession{
			ID:            target.ID,
			WeekNumber:    target.WeekNumber,
			SessionNumber: target.SessionNumber,
		},
		AffectedCount: len(rows),
		DayPattern:    scheduler.PatternNames(sc.plan.Pattern),
		Preview:       rows,
	}, nil
}

// Apply 写入新日期并重排周次。单条失败记入 BatchResult，不中断其余更新
func (s *RescheduleService) Apply(ctx context.Context, req ShiftRequest) (*ShiftResult, error) {
	ctx, span := tracing.StartSpan(ctx, "RescheduleService.Apply")
	defer span.End()
	span.SetAttributes(
		attribute.String("table", req.TableName),
		attribute.Int("session_id", req.SessionID),
	)

	newDate, err := s.checkRequest(ctx, req)
	if err != nil {
		s.observe(shiftModeApply, err)
		span.RecordError(err)
		return nil, err
	}

	if s.Locker != nil {
		release, err := s.Locker.Acquire(ctx, req.TableName)
		if err != nil {
			s.observe(shiftModeApply, err)
			span.RecordError(err)
			return nil, err
		}
		defer release()
	}

	sc, err := s.prepare(ctx, req, newDate)
	if err != nil {
		s.observe(shiftModeApply, err)
		span.RecordError(err)
		return nil, err
	}

	batch := &BatchResult{}
	updates := make([]SessionUpdate, 0, len(sc.plan.Changes))
	for _, change := range sc.plan.Changes {
		date := change.DateString()
		if err := s.Store.UpdateDate(ctx, req.TableName, change.ID, date, change.Day); err != nil {
			logger.Log.Error("update session date failed",
				zap.String("table", req.TableName),
				zap.Int("id", change.ID),
				zap.Error(err))
			monitoring.SessionUpdateFailures.Inc()
			batch.fail(change.ID, err)
			continue
		}
		batch.succeed(change.ID)
		updates = append(updates, SessionUpdate{ID: change.ID, Date: date, Day: change.Day})
	}

	renumbered, err := s.renumber(ctx, req.TableName, batch)
	result := &ShiftResult{Updates: updates, Renumbered: renumbered, Batch: batch}
	// 日期已经写入，重排失败也要留下调课记录
	s.writeLog(ctx, req, sc.plan, result)
	if err != nil {
		logger.Log.Error("renumber after reschedule failed",
			zap.String("table", req.TableName),
			zap.Int("session_id", req.SessionID),
			zap.Int("updated", len(batch.Succeeded)),
			zap.Error(err))
		s.observe(shiftModeApply, err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	if batch.OK() {
		monitoring.ObserveShift(shiftModeApply, "ok")
	} else {
		monitoring.ObserveShift(shiftModeApply, "partial")
		span.SetStatus(codes.Error, "partial failure")
	}

	logger.Log.Info("reschedule applied",
		zap.String("table", req.TableName),
		zap.Int("session_id", req.SessionID),
		zap.String("new_date", req.NewDate),
		zap.Int("updated", len(batch.Succeeded)),
		zap.Int("failed", len(batch.Failed)),
		zap.Int("renumbered", len(renumbered)))

	return result, nil
}

// Renumber 按当前日期整表重排周次/课次，返回实际改动的条目
func (s *RescheduleService) Renumber(ctx context.Context, table string) ([]scheduler.Numbering, *BatchResult, error) {
	if err := s.ensureTable(ctx, table); err != nil {
		return nil, nil, err
	}

	if s.Locker != nil {
		release, err := s.Locker.Acquire(ctx, table)
		if err != nil {
			return nil, nil, err
		}
		defer release()
	}

	batch := &BatchResult{}
	changed, err := s.renumber(ctx, table, batch)
	if err != nil {
		return nil, nil, err
	}
	return changed, batch, nil
}

// History 最近的调课记录，按时间倒序
func (s *RescheduleService) History(ctx context.Context, table string, limit int) ([]model.ShiftLog, error) {
	if err := s.ensureTable(ctx, table); err != nil {
		return nil, err
	}
	if s.Logs == nil {
		return []model.ShiftLog{}, nil
	}
	if limit <= 0 || limit > maxHistoryLimit {
		limit = defaultHistoryLimit
	}
	return s.Logs.ListByTable(ctx, table, limit)
}

func (s *RescheduleService) checkRequest(ctx context.Context, req ShiftRequest) (time.Time, error) {
	if strings.TrimSpace(req.TableName) == "" || req.SessionID <= 0 || strings.TrimSpace(req.NewDate) == "" {
		return time.Time{}, util.ErrMissingFields
	}

	if err := s.ensureTable(ctx, req.TableName); err != nil {
		return time.Time{}, err
	}

	return util.ParseDate(req.NewDate)
}

func (s *RescheduleService) ensureTable(ctx context.Context, table string) error {
	exists, err := s.Store.TableExists(ctx, table)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%w: %s", util.ErrCohortNotFound, table)
	}
	return nil
}

func (s *RescheduleService) prepare(ctx context.Context, req ShiftRequest, newDate time.Time) (*shiftContext, error) {
	sessions, err := s.Store.ListOrdered(ctx, req.TableName)
	if err != nil {
		return nil, fmt.Errorf("load sessions: %w", err)
	}

	var target *model.ClassSession
	for i := range sessions {
		if sessions[i].ID == req.SessionID {
			target = &sessions[i]
			break
		}
	}
	if target == nil {
		return nil, fmt.Errorf("%w: id %d", util.ErrSessionNotFound, req.SessionID)
	}

	current, err := util.ParseDate(target.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: session %d: %v", util.ErrCorruptSchedule, target.ID, err)
	}
	if current.Equal(newDate) {
		return nil, util.ErrSameDate
	}

	today := util.Today(s.now(), s.Location)
	if !newDate.After(today) {
		return nil, fmt.Errorf("%w: %s is not after %s", util.ErrDateNotInFuture, util.FormatDate(newDate), util.FormatDate(today))
	}

	plan, err := scheduler.PlanShift(sessions, req.SessionID, newDate)
	if err != nil {
		return nil, err
	}

	// 先模拟一遍重排，库里有坏数据时在写入任何日期之前失败
	rows, err := scheduler.SimulateShift(sessions, plan)
	if err != nil {
		return nil, fmt.Errorf("simulate shift: %w", err)
	}

	return &shiftContext{sessions: sessions, plan: plan, rows: rows}, nil
}

// renumber 重新按日期取整表，只写回周次/课次有变化的行
func (s *RescheduleService) renumber(ctx context.Context, table string, batch *BatchResult) ([]scheduler.Numbering, error) {
	sessions, err := s.Store.ListByDate(ctx, table)
	if err != nil {
		return nil, fmt.Errorf("reload sessions: %w", err)
	}
	scheduler.SortByDate(sessions)

	numbering, err := scheduler.Renumber(sessions)
	if err != nil {
		return nil, fmt.Errorf("renumber: %w", err)
	}

	changed := scheduler.ChangedOnly(numbering)
	applied := make([]scheduler.Numbering, 0, len(changed))
	for _, n := range changed {
		if err := s.Store.UpdateNumbering(ctx, table, n.ID, n.WeekNumber, n.SessionNumber); err != nil {
			logger.Log.Error("update session numbering failed",
				zap.String("table", table),
				zap.Int("id", n.ID),
				zap.Error(err))
			monitoring.SessionUpdateFailures.Inc()
			batch.fail(n.ID, fmt.Errorf("renumber: %w", err))
			continue
		}
		applied = append(applied, n)
	}

	return applied, nil
}

func (s *RescheduleService) writeLog(ctx context.Context, req ShiftRequest, plan *scheduler.ShiftPlan, result *ShiftResult) {
	if s.Logs == nil {
		return
	}

	entry := &model.ShiftLog{
		Table:        req.TableName,
		SessionID:    req.SessionID,
		OldDate:      plan.Target.Date,
		NewDate:      plan.Changes[0].DateString(),
		UpdatedCount: len(result.Batch.Succeeded),
		FailedCount:  len(result.Batch.Failed),
		Operator:     req.Operator,
	}
	if err := s.Logs.Create(ctx, entry); err != nil {
		logger.Log.Warn("write shift log failed",
			zap.String("table", req.TableName),
			zap.Error(err))
	}
}

func (s *RescheduleService) observe(mode string, err error) {
	result := "error"
	if util.IsValidationError(err) ||
		errors.Is(err, util.ErrSessionNotFound) ||
		errors.Is(err, util.ErrCohortNotFound) ||
		errors.Is(err, util.ErrShiftInProgress) {
		result = "rejected"
	}
	monitoring.ObserveShift(mode, result)
}
