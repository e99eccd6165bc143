package repository

import (
	"eduboost_backend/internal/model"

	"gorm.io/gorm"
)

// GoalRepository 处理学习目标的数据访问
type GoalRepository struct {
	DB *gorm.DB
}

func NewGoalRepository(db *gorm.DB) *GoalRepository {
	return &GoalRepository{DB: db}
}

func (r *GoalRepository) Create(goal *model.Goal) error {
	return r.DB.Create(goal).Error
}

func (r *GoalRepository) FindByID(id string) (*model.Goal, error) {
	var goal model.Goal
	if err := r.DB.Where("id = ?", id).First(&goal).Error; err != nil {
		return nil, err
	}
	return &goal, nil
}

// FindByStudent moduleID 为空时返回该学生全部目标
func (r *GoalRepository) FindByStudent(studentID, moduleID string) ([]model.Goal, error) {
	var goals []model.Goal
	q := r.DB.Where("student_id = ?", studentID)
	if moduleID != "" {
		q = q.Where("module_id = ?", moduleID)
	}
	err := q.Order("created_at DESC").Find(&goals).Error
	return goals, err
}

func (r *GoalRepository) Update(goal *model.Goal) error {
	return r.DB.Save(goal).Error
}

func (r *GoalRepository) Delete(id string) error {
	return r.DB.Where("id = ?", id).Delete(&model.Goal{}).Error
}
