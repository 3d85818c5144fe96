package repository

import (
	"cohort_backend/internal/model"
	"cohort_backend/internal/util"
	"context"
	"errors"

	"gorm.io/gorm"
)

type CohortRepository struct {
	DB *gorm.DB
}

func NewCohortRepository(db *gorm.DB) *CohortRepository {
	return &CohortRepository{DB: db}
}

func (r *CohortRepository) Create(ctx context.Context, cohort *model.Cohort) error {
	return r.DB.WithContext(ctx).Create(cohort).Error
}

func (r *CohortRepository) FindByTable(ctx context.Context, table string) (*model.Cohort, error) {
	var cohort model.Cohort
	err := r.DB.WithContext(ctx).Where("table_name = ?", table).First(&cohort).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrCohortNotFound
	}
	if err != nil {
		return nil, err
	}
	return &cohort, nil
}

func (r *CohortRepository) List(ctx context.Context) ([]model.Cohort, error) {
	var cohorts []model.Cohort
	err := r.DB.WithContext(ctx).Order("created_at DESC").Find(&cohorts).Error
	return cohorts, err
}
