package repository

import (
	"eduboost_backend/internal/model"

	"gorm.io/gorm"
)

type ProgressRepository struct {
	DB *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{DB: db}
}

func (r *ProgressRepository) Create(progress *model.StudentProgress) error {
	return r.DB.Create(progress).Error
}

func (r *ProgressRepository) FindByStudent(studentID string) ([]model.StudentProgress, error) {
	var records []model.StudentProgress
	err := r.DB.Where("student_id = ?", studentID).Order("graded_at DESC").Find(&records).Error
	return records, err
}

func (r *ProgressRepository) FindByStudentAndModule(studentID, moduleID string) ([]model.StudentProgress, error) {
	var records []model.StudentProgress
	err := r.DB.Where("student_id = ? AND module_id = ?", studentID, moduleID).
		Order("graded_at DESC").
		Find(&records).Error
	return records, err
}

// ModuleMarksRepository 模块总评
type ModuleMarksRepository struct {
	DB *gorm.DB
}

func NewModuleMarksRepository(db *gorm.DB) *ModuleMarksRepository {
	return &ModuleMarksRepository{DB: db}
}

func (r *ModuleMarksRepository) FindByStudentAndModule(studentID, moduleID string) (*model.ModuleMarks, error) {
	var marks model.ModuleMarks
	err := r.DB.Where("student_id = ? AND module_id = ?", studentID, moduleID).First(&marks).Error
	if err != nil {
		return nil, err
	}
	return &marks, nil
}

func (r *ModuleMarksRepository) FindByStudent(studentID string) ([]model.ModuleMarks, error) {
	var marks []model.ModuleMarks
	err := r.DB.Where("student_id = ?", studentID).Order("marks").Find(&marks).Error
	return marks, err
}

func (r *ModuleMarksRepository) Save(marks *model.ModuleMarks) error {
	return r.DB.Save(marks).Error
}
