package repository

import (
	"eduboost_backend/internal/model"

	"gorm.io/gorm"
)

type HealthPlanRepository struct {
	DB *gorm.DB
}

func NewHealthPlanRepository(db *gorm.DB) *HealthPlanRepository {
	return &HealthPlanRepository{DB: db}
}

func (r *HealthPlanRepository) FindByStudent(studentID string) (*model.HealthPlan, error) {
	var plan model.HealthPlan
	if err := r.DB.Where("student_id = ?", studentID).First(&plan).Error; err != nil {
		return nil, err
	}
	return &plan, nil
}

func (r *HealthPlanRepository) Save(plan *model.HealthPlan) error {
	return r.DB.Save(plan).Error
}
