package repository

import (
	"eduboost_backend/internal/model"

	"gorm.io/gorm"
)

type EnrollmentRepository struct {
	DB *gorm.DB
}

func NewEnrollmentRepository(db *gorm.DB) *EnrollmentRepository {
	return &EnrollmentRepository{DB: db}
}

func (r *EnrollmentRepository) Create(enrollment *model.Enrollment) error {
	return r.DB.Create(enrollment).Error
}

func (r *EnrollmentRepository) FindActiveByStudent(studentID string) ([]model.Enrollment, error) {
	var enrollments []model.Enrollment
	err := r.DB.Where("student_id = ? AND status = ?", studentID, model.EnrollmentActive).
		Order("enrolled_at").
		Find(&enrollments).Error
	return enrollments, err
}

func (r *EnrollmentRepository) FindByStudentAndProgram(studentID, programID string) (*model.Enrollment, error) {
	var enrollment model.Enrollment
	err := r.DB.Where("student_id = ? AND program_id = ?", studentID, programID).First(&enrollment).Error
	if err != nil {
		return nil, err
	}
	return &enrollment, nil
}

func (r *EnrollmentRepository) Update(enrollment *model.Enrollment) error {
	return r.DB.Save(enrollment).Error
}
