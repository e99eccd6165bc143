package repository

import (
	"eduboost_backend/internal/model"

	"gorm.io/gorm"
)

type ProgramRepository struct {
	DB *gorm.DB
}

func NewProgramRepository(db *gorm.DB) *ProgramRepository {
	return &ProgramRepository{DB: db}
}

func (r *ProgramRepository) Create(program *model.Program) error {
	return r.DB.Create(program).Error
}

func (r *ProgramRepository) FindByID(id string) (*model.Program, error) {
	var program model.Program
	if err := r.DB.Where("id = ?", id).First(&program).Error; err != nil {
		return nil, err
	}
	return &program, nil
}

func (r *ProgramRepository) FindAll() ([]model.Program, error) {
	var programs []model.Program
	err := r.DB.Order("title").Find(&programs).Error
	return programs, err
}

func (r *ProgramRepository) FindByEducator(educatorID string) ([]model.Program, error) {
	var programs []model.Program
	err := r.DB.Where("educator_id = ?", educatorID).Order("title").Find(&programs).Error
	return programs, err
}

func (r *ProgramRepository) Update(program *model.Program) error {
	return r.DB.Save(program).Error
}

func (r *ProgramRepository) Delete(id string) error {
	return r.DB.Where("id = ?", id).Delete(&model.Program{}).Error
}

type BatchRepository struct {
	DB *gorm.DB
}

func NewBatchRepository(db *gorm.DB) *BatchRepository {
	return &BatchRepository{DB: db}
}

func (r *BatchRepository) Create(batch *model.Batch) error {
	return r.DB.Create(batch).Error
}

func (r *BatchRepository) FindByID(id string) (*model.Batch, error) {
	var batch model.Batch
	if err := r.DB.Where("id = ?", id).First(&batch).Error; err != nil {
		return nil, err
	}
	return &batch, nil
}

func (r *BatchRepository) FindByProgram(programID string) ([]model.Batch, error) {
	var batches []model.Batch
	err := r.DB.Where("program_id = ?", programID).Order("start_date DESC").Find(&batches).Error
	return batches, err
}

func (r *BatchRepository) Update(batch *model.Batch) error {
	return r.DB.Save(batch).Error
}

func (r *BatchRepository) Delete(id string) error {
	return r.DB.Where("id = ?", id).Delete(&model.Batch{}).Error
}

type ModuleRepository struct {
	DB *gorm.DB
}

func NewModuleRepository(db *gorm.DB) *ModuleRepository {
	return &ModuleRepository{DB: db}
}

func (r *ModuleRepository) Create(module *model.Module) error {
	return r.DB.Create(module).Error
}

func (r *ModuleRepository) FindByID(id string) (*model.Module, error) {
	var module model.Module
	if err := r.DB.Where("id = ?", id).First(&module).Error; err != nil {
		return nil, err
	}
	return &module, nil
}

func (r *ModuleRepository) FindAll() ([]model.Module, error) {
	var modules []model.Module
	err := r.DB.Order("title").Find(&modules).Error
	return modules, err
}

func (r *ModuleRepository) FindByPrograms(programIDs []string) ([]model.Module, error) {
	var modules []model.Module
	if len(programIDs) == 0 {
		return modules, nil
	}
	err := r.DB.Where("program_id IN ?", programIDs).Order("title").Find(&modules).Error
	return modules, err
}

func (r *ModuleRepository) Update(module *model.Module) error {
	return r.DB.Save(module).Error
}

func (r *ModuleRepository) Delete(id string) error {
	return r.DB.Where("id = ?", id).Delete(&model.Module{}).Error
}
