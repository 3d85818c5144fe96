package repository

import (
	"cohort_backend/internal/model"
	"cohort_backend/internal/util"
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// SessionRepository 读写班级课程表，表名在运行时传入
type SessionRepository struct {
	DB *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{DB: db}
}

func (r *SessionRepository) table(ctx context.Context, table string) *gorm.DB {
	return r.DB.WithContext(ctx).Table(table)
}

// TableExists 表名须先通过 util.ValidTableName 校验
func (r *SessionRepository) TableExists(ctx context.Context, table string) (bool, error) {
	if !util.ValidTableName(table) {
		return false, util.ErrInvalidTableName
	}
	return r.DB.WithContext(ctx).Migrator().HasTable(table), nil
}

// ListOrdered 按周次、课次排序
func (r *SessionRepository) ListOrdered(ctx context.Context, table string) ([]model.ClassSession, error) {
	var sessions []model.ClassSession
	err := r.table(ctx, table).
		Order("week_number ASC").
		Order("session_number ASC").
		Order("id ASC").
		Find(&sessions).Error
	return sessions, err
}

// ListByDate 按日期排序，同一天按原周次、课次
func (r *SessionRepository) ListByDate(ctx context.Context, table string) ([]model.ClassSession, error) {
	var sessions []model.ClassSession
	err := r.table(ctx, table).
		Order("date ASC").
		Order("week_number ASC").
		Order("session_number ASC").
		Order("id ASC").
		Find(&sessions).Error
	return sessions, err
}

func (r *SessionRepository) FindByID(ctx context.Context, table string, id int) (*model.ClassSession, error) {
	var session model.ClassSession
	err := r.table(ctx, table).Where("id = ?", id).First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: id %d", util.ErrSessionNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *SessionRepository) UpdateDate(ctx context.Context, table string, id int, date, day string) error {
	return r.table(ctx, table).Where("id = ?", id).Updates(map[string]interface{}{
		"date": date,
		"day":  day,
	}).Error
}

func (r *SessionRepository) UpdateNumbering(ctx context.Context, table string, id, week, session int) error {
	return r.table(ctx, table).Where("id = ?", id).Updates(map[string]interface{}{
		"week_number":    week,
		"session_number": session,
	}).Error
}

// UpdateContent 只更新描述类字段，日期与编号由调课流程维护
func (r *SessionRepository) UpdateContent(ctx context.Context, table string, id int, fields map[string]interface{}) error {
	return r.table(ctx, table).Where("id = ?", id).Updates(fields).Error
}

func (r *SessionRepository) MaxID(ctx context.Context, table string) (int, error) {
	var maxID *int
	if err := r.table(ctx, table).Select("MAX(id)").Scan(&maxID).Error; err != nil {
		return 0, err
	}
	if maxID == nil {
		return 0, nil
	}
	return *maxID, nil
}

func (r *SessionRepository) Insert(ctx context.Context, table string, sessions []model.ClassSession) error {
	if len(sessions) == 0 {
		return nil
	}
	return r.table(ctx, table).CreateInBatches(sessions, 100).Error
}

// CreateTable 建立班级课程表。配置了存储过程时调用存储过程，否则按 ClassSession 结构建表
func (r *SessionRepository) CreateTable(ctx context.Context, table, procedure string) error {
	if !util.ValidTableName(table) {
		return util.ErrInvalidTableName
	}
	if procedure != "" {
		if !util.ValidTableName(procedure) {
			return fmt.Errorf("invalid procedure name %q", procedure)
		}
		return r.DB.WithContext(ctx).Exec("CALL "+procedure+"(?)", table).Error
	}
	return r.table(ctx, table).Migrator().CreateTable(&model.ClassSession{})
}
