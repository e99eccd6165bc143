package repository

import (
	"time"

	"eduboost_backend/internal/model"

	"gorm.io/gorm"
)

type AssessmentRepository struct {
	DB *gorm.DB
}

func NewAssessmentRepository(db *gorm.DB) *AssessmentRepository {
	return &AssessmentRepository{DB: db}
}

func (r *AssessmentRepository) Create(assessment *model.Assessment) error {
	return r.DB.Create(assessment).Error
}

func (r *AssessmentRepository) FindByID(id string) (*model.Assessment, error) {
	var assessment model.Assessment
	if err := r.DB.Where("id = ?", id).First(&assessment).Error; err != nil {
		return nil, err
	}
	return &assessment, nil
}

func (r *AssessmentRepository) FindByModule(moduleID string) ([]model.Assessment, error) {
	var assessments []model.Assessment
	err := r.DB.Where("module_id = ?", moduleID).Order("created_at").Find(&assessments).Error
	return assessments, err
}

func (r *AssessmentRepository) FindByEducator(educatorID string) ([]model.Assessment, error) {
	var assessments []model.Assessment
	err := r.DB.Where("educator_id = ?", educatorID).Order("created_at DESC").Find(&assessments).Error
	return assessments, err
}

func (r *AssessmentRepository) Update(assessment *model.Assessment) error {
	return r.DB.Save(assessment).Error
}

func (r *AssessmentRepository) Delete(id string) error {
	return r.DB.Where("id = ?", id).Delete(&model.Assessment{}).Error
}

// AssignmentTemplateRepository 作业模板
type AssignmentTemplateRepository struct {
	DB *gorm.DB
}

func NewAssignmentTemplateRepository(db *gorm.DB) *AssignmentTemplateRepository {
	return &AssignmentTemplateRepository{DB: db}
}

func (r *AssignmentTemplateRepository) Create(tpl *model.AssignmentTemplate) error {
	return r.DB.Create(tpl).Error
}

func (r *AssignmentTemplateRepository) FindByID(id string) (*model.AssignmentTemplate, error) {
	var tpl model.AssignmentTemplate
	if err := r.DB.Where("id = ?", id).First(&tpl).Error; err != nil {
		return nil, err
	}
	return &tpl, nil
}

func (r *AssignmentTemplateRepository) FindByModule(moduleID string) ([]model.AssignmentTemplate, error) {
	var tpls []model.AssignmentTemplate
	err := r.DB.Where("module_id = ?", moduleID).Order("created_at").Find(&tpls).Error
	return tpls, err
}

func (r *AssignmentTemplateRepository) FindActiveByModules(moduleIDs []string) ([]model.AssignmentTemplate, error) {
	var tpls []model.AssignmentTemplate
	if len(moduleIDs) == 0 {
		return tpls, nil
	}
	err := r.DB.Where("module_id IN ? AND is_active = ?", moduleIDs, true).
		Order("due_date").
		Find(&tpls).Error
	return tpls, err
}

// FindActiveDueBefore 已激活且截止时间早于 t 的模板
func (r *AssignmentTemplateRepository) FindActiveDueBefore(t time.Time) ([]model.AssignmentTemplate, error) {
	var tpls []model.AssignmentTemplate
	err := r.DB.Where("is_active = ? AND due_date IS NOT NULL AND due_date < ?", true, t).Find(&tpls).Error
	return tpls, err
}

func (r *AssignmentTemplateRepository) Update(tpl *model.AssignmentTemplate) error {
	return r.DB.Save(tpl).Error
}

func (r *AssignmentTemplateRepository) Delete(id string) error {
	return r.DB.Where("id = ?", id).Delete(&model.AssignmentTemplate{}).Error
}
