package repository

import (
	"cohort_backend/internal/model"
	"context"

	"gorm.io/gorm"
)

type MeetingRepository struct {
	DB *gorm.DB
}

func NewMeetingRepository(db *gorm.DB) *MeetingRepository {
	return &MeetingRepository{DB: db}
}

func (r *MeetingRepository) Create(ctx context.Context, meeting *model.Meeting) error {
	return r.DB.WithContext(ctx).Create(meeting).Error
}

// List table 为空时返回全部
func (r *MeetingRepository) List(ctx context.Context, table string) ([]model.Meeting, error) {
	var meetings []model.Meeting
	query := r.DB.WithContext(ctx).Order("start_time DESC")
	if table != "" {
		query = query.Where("table_name = ?", table)
	}
	err := query.Find(&meetings).Error
	return meetings, err
}
