package repository

import (
	"cohort_backend/internal/model"
	"context"

	"gorm.io/gorm"
)

type ShiftLogRepository struct {
	DB *gorm.DB
}

func NewShiftLogRepository(db *gorm.DB) *ShiftLogRepository {
	return &ShiftLogRepository{DB: db}
}

func (r *ShiftLogRepository) Create(ctx context.Context, log *model.ShiftLog) error {
	return r.DB.WithContext(ctx).Create(log).Error
}

func (r *ShiftLogRepository) ListByTable(ctx context.Context, table string, limit int) ([]model.ShiftLog, error) {
	var logs []model.ShiftLog
	err := r.DB.WithContext(ctx).
		Where("table_name = ?", table).
		Order("created_at DESC").
		Limit(limit).
		Find(&logs).Error
	return logs, err
}
