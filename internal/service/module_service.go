package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"eduboost_backend/internal/grading"
	"eduboost_backend/internal/model"
	"eduboost_backend/internal/util"
	"eduboost_backend/pkg/logger"
	"eduboost_backend/pkg/monitoring"

	"go.uber.org/zap"
)

// ModuleService 课程目录：项目、班级、模块、考核与作业模板
type ModuleService struct {
	Programs    ProgramRepository
	Batches     BatchRepository
	Modules     ModuleRepository
	Assessments AssessmentRepository
	Templates   AssignmentTemplateRepository
	Enrollments EnrollmentRepository

	now func() time.Time
}

func NewModuleService(repos Repositories) *ModuleService {
	return &ModuleService{
		Programs:    repos.Programs,
		Batches:     repos.Batches,
		Modules:     repos.Modules,
		Assessments: repos.Assessments,
		Templates:   repos.Templates,
		Enrollments: repos.Enrollments,
		now:         time.Now,
	}
}

type ProgramRequest struct {
	Code        string `json:"code" binding:"max=50"`
	Title       string `json:"title" binding:"required,max=255"`
	Description string `json:"description"`
}

func (s *ModuleService) CreateProgram(educatorID string, req ProgramRequest) (*model.Program, error) {
	program := &model.Program{
		Code:        normalizeCode(req.Code),
		Title:       req.Title,
		Description: req.Description,
		EducatorID:  educatorID,
	}
	if err := s.Programs.Create(program); err != nil {
		return nil, fmt.Errorf("create program: %w", err)
	}
	return program, nil
}

func (s *ModuleService) GetProgram(id string) (*model.Program, error) {
	program, err := s.Programs.FindByID(id)
	if err != nil {
		return nil, notFound(err, util.ErrProgramNotFound)
	}
	return program, nil
}

func (s *ModuleService) ListPrograms() ([]model.Program, error) {
	return s.Programs.FindAll()
}

func (s *ModuleService) ListProgramsByEducator(educatorID string) ([]model.Program, error) {
	return s.Programs.FindByEducator(educatorID)
}

func (s *ModuleService) UpdateProgram(id string, req ProgramRequest) (*model.Program, error) {
	program, err := s.GetProgram(id)
	if err != nil {
		return nil, err
	}
	program.Code = normalizeCode(req.Code)
	program.Title = req.Title
	program.Description = req.Description
	if err := s.Programs.Update(program); err != nil {
		return nil, err
	}
	return program, nil
}

func (s *ModuleService) DeleteProgram(id string) error {
	if _, err := s.GetProgram(id); err != nil {
		return err
	}
	return s.Programs.Delete(id)
}

type BatchRequest struct {
	ProgramID    string     `json:"programId" binding:"required"`
	Name         string     `json:"name" binding:"required,max=100"`
	AcademicYear string     `json:"academicYear" binding:"max=20"`
	StartDate    *time.Time `json:"startDate"`
	EndDate      *time.Time `json:"endDate"`
	Instructor   string     `json:"instructor" binding:"max=100"`
}

func (s *ModuleService) CreateBatch(req BatchRequest) (*model.Batch, error) {
	if _, err := s.GetProgram(req.ProgramID); err != nil {
		return nil, err
	}
	if req.StartDate != nil && req.EndDate != nil && req.EndDate.Before(*req.StartDate) {
		return nil, fmt.Errorf("%w: batch ends before it starts", util.ErrValidation)
	}
	batch := &model.Batch{
		ProgramID:    req.ProgramID,
		Name:         req.Name,
		AcademicYear: req.AcademicYear,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		Instructor:   req.Instructor,
	}
	if err := s.Batches.Create(batch); err != nil {
		return nil, fmt.Errorf("create batch: %w", err)
	}
	return batch, nil
}

func (s *ModuleService) GetBatch(id string) (*model.Batch, error) {
	batch, err := s.Batches.FindByID(id)
	if err != nil {
		return nil, notFound(err, util.ErrBatchNotFound)
	}
	return batch, nil
}

func (s *ModuleService) ListBatches(programID string) ([]model.Batch, error) {
	return s.Batches.FindByProgram(programID)
}

func (s *ModuleService) UpdateBatch(id string, req BatchRequest) (*model.Batch, error) {
	batch, err := s.GetBatch(id)
	if err != nil {
		return nil, err
	}
	batch.Name = req.Name
	batch.AcademicYear = req.AcademicYear
	batch.StartDate = req.StartDate
	batch.EndDate = req.EndDate
	batch.Instructor = req.Instructor
	if err := s.Batches.Update(batch); err != nil {
		return nil, err
	}
	return batch, nil
}

func (s *ModuleService) DeleteBatch(id string) error {
	if _, err := s.GetBatch(id); err != nil {
		return err
	}
	return s.Batches.Delete(id)
}

type ModuleRequest struct {
	ProgramID      string `json:"programId" binding:"required"`
	Code           string `json:"code" binding:"max=50"`
	Title          string `json:"title" binding:"required,max=255"`
	Description    string `json:"description"`
	Difficulty     string `json:"difficulty" binding:"omitempty,oneof=beginner intermediate advanced"`
	EstimatedHours int    `json:"estimatedHours" binding:"gte=0"`
}

func (s *ModuleService) CreateModule(req ModuleRequest) (*model.Module, error) {
	if _, err := s.GetProgram(req.ProgramID); err != nil {
		return nil, err
	}
	module := &model.Module{
		ProgramID:      req.ProgramID,
		Code:           normalizeCode(req.Code),
		Title:          req.Title,
		Description:    req.Description,
		Difficulty:     req.Difficulty,
		EstimatedHours: req.EstimatedHours,
	}
	if module.Difficulty == "" {
		module.Difficulty = "intermediate"
	}
	if err := s.Modules.Create(module); err != nil {
		return nil, fmt.Errorf("create module: %w", err)
	}
	return module, nil
}

func (s *ModuleService) GetModule(id string) (*model.Module, error) {
	module, err := s.Modules.FindByID(id)
	if err != nil {
		return nil, notFound(err, util.ErrModuleNotFound)
	}
	return module, nil
}

// ListModules programID 为空时返回全部模块
func (s *ModuleService) ListModules(programID string) ([]model.Module, error) {
	if programID == "" {
		return s.Modules.FindAll()
	}
	return s.Modules.FindByPrograms([]string{programID})
}

func (s *ModuleService) UpdateModule(id string, req ModuleRequest) (*model.Module, error) {
	module, err := s.GetModule(id)
	if err != nil {
		return nil, err
	}
	if req.ProgramID != module.ProgramID {
		if _, err := s.GetProgram(req.ProgramID); err != nil {
			return nil, err
		}
		module.ProgramID = req.ProgramID
	}
	module.Code = normalizeCode(req.Code)
	module.Title = req.Title
	module.Description = req.Description
	if req.Difficulty != "" {
		module.Difficulty = req.Difficulty
	}
	module.EstimatedHours = req.EstimatedHours
	if err := s.Modules.Update(module); err != nil {
		return nil, err
	}
	return module, nil
}

func (s *ModuleService) DeleteModule(id string) error {
	if _, err := s.GetModule(id); err != nil {
		return err
	}
	return s.Modules.Delete(id)
}

type AssessmentRequest struct {
	Title    string     `json:"title" binding:"required,max=255"`
	Type     string     `json:"type" binding:"required"`
	MaxScore float64    `json:"maxScore"`
	DueDate  *time.Time `json:"dueDate"`
}

func (req AssessmentRequest) resolve() (grading.AssessmentType, float64, error) {
	t, ok := grading.ParseAssessmentType(req.Type)
	if !ok || req.MaxScore < 0 {
		return "", 0, util.ErrInvalidAssessment
	}
	maxScore := req.MaxScore
	if maxScore == 0 {
		maxScore = 100
	}
	return t, maxScore, nil
}

func (s *ModuleService) CreateAssessment(educatorID, moduleID string, req AssessmentRequest) (*model.Assessment, error) {
	if _, err := s.GetModule(moduleID); err != nil {
		return nil, err
	}
	t, maxScore, err := req.resolve()
	if err != nil {
		return nil, err
	}
	assessment := &model.Assessment{
		ModuleID:   moduleID,
		EducatorID: educatorID,
		Title:      req.Title,
		Type:       t,
		MaxScore:   maxScore,
		DueDate:    req.DueDate,
	}
	if err := s.Assessments.Create(assessment); err != nil {
		return nil, fmt.Errorf("create assessment: %w", err)
	}
	return assessment, nil
}

func (s *ModuleService) GetAssessment(id string) (*model.Assessment, error) {
	assessment, err := s.Assessments.FindByID(id)
	if err != nil {
		return nil, notFound(err, util.ErrAssessmentNotFound)
	}
	return assessment, nil
}

func (s *ModuleService) ListAssessmentsByModule(moduleID string) ([]model.Assessment, error) {
	if _, err := s.GetModule(moduleID); err != nil {
		return nil, err
	}
	return s.Assessments.FindByModule(moduleID)
}

func (s *ModuleService) ListAssessmentsByEducator(educatorID string) ([]model.Assessment, error) {
	return s.Assessments.FindByEducator(educatorID)
}

func (s *ModuleService) UpdateAssessment(id string, req AssessmentRequest) (*model.Assessment, error) {
	assessment, err := s.GetAssessment(id)
	if err != nil {
		return nil, err
	}
	t, maxScore, err := req.resolve()
	if err != nil {
		return nil, err
	}
	assessment.Title = req.Title
	assessment.Type = t
	assessment.MaxScore = maxScore
	assessment.DueDate = req.DueDate
	if err := s.Assessments.Update(assessment); err != nil {
		return nil, err
	}
	return assessment, nil
}

func (s *ModuleService) DeleteAssessment(id string) error {
	if _, err := s.GetAssessment(id); err != nil {
		return err
	}
	return s.Assessments.Delete(id)
}

type TemplateRequest struct {
	Title        string  `json:"title" binding:"required,max=255"`
	Description  string  `json:"description"`
	MaxScore     float64 `json:"maxScore" binding:"gte=0"`
	ReferenceURL string  `json:"referenceUrl" binding:"omitempty,max=512"`
}

// CreateAssignmentTemplate 新建模板默认未激活
func (s *ModuleService) CreateAssignmentTemplate(moduleID string, req TemplateRequest) (*model.AssignmentTemplate, error) {
	if _, err := s.GetModule(moduleID); err != nil {
		return nil, err
	}
	tpl := &model.AssignmentTemplate{
		ModuleID:     moduleID,
		Title:        req.Title,
		Description:  req.Description,
		MaxScore:     req.MaxScore,
		ReferenceURL: req.ReferenceURL,
	}
	if tpl.MaxScore == 0 {
		tpl.MaxScore = 100
	}
	if err := s.Templates.Create(tpl); err != nil {
		return nil, fmt.Errorf("create assignment template: %w", err)
	}
	return tpl, nil
}

func (s *ModuleService) ListAssignmentTemplates(moduleID string) ([]model.AssignmentTemplate, error) {
	if _, err := s.GetModule(moduleID); err != nil {
		return nil, err
	}
	return s.Templates.FindByModule(moduleID)
}

// GetAssignmentTemplate 模板必须属于指定模块
func (s *ModuleService) GetAssignmentTemplate(moduleID, templateID string) (*model.AssignmentTemplate, error) {
	tpl, err := s.Templates.FindByID(templateID)
	if err != nil {
		return nil, notFound(err, util.ErrTemplateNotFound)
	}
	if tpl.ModuleID != moduleID {
		return nil, util.ErrTemplateNotFound
	}
	return tpl, nil
}

func (s *ModuleService) UpdateAssignmentTemplate(moduleID, templateID string, req TemplateRequest) (*model.AssignmentTemplate, error) {
	tpl, err := s.GetAssignmentTemplate(moduleID, templateID)
	if err != nil {
		return nil, err
	}
	tpl.Title = req.Title
	tpl.Description = req.Description
	if req.MaxScore > 0 {
		tpl.MaxScore = req.MaxScore
	}
	tpl.ReferenceURL = req.ReferenceURL
	if err := s.Templates.Update(tpl); err != nil {
		return nil, err
	}
	return tpl, nil
}

func (s *ModuleService) DeleteAssignmentTemplate(moduleID, templateID string) error {
	if _, err := s.GetAssignmentTemplate(moduleID, templateID); err != nil {
		return err
	}
	return s.Templates.Delete(templateID)
}

// AttachReference 记录上传后的参考资料地址
func (s *ModuleService) AttachReference(moduleID, templateID, url string) (*model.AssignmentTemplate, error) {
	tpl, err := s.GetAssignmentTemplate(moduleID, templateID)
	if err != nil {
		return nil, err
	}
	tpl.ReferenceURL = url
	if err := s.Templates.Update(tpl); err != nil {
		return nil, err
	}
	return tpl, nil
}

func (s *ModuleService) ActivateAssignment(moduleID, templateID string, dueDate time.Time, educatorID string) (*model.AssignmentTemplate, error) {
	tpl, err := s.GetAssignmentTemplate(moduleID, templateID)
	if err != nil {
		return nil, err
	}
	now := s.now()
	if !dueDate.After(now) {
		return nil, util.ErrInvalidDueDate
	}

	tpl.IsActive = true
	tpl.ActivatedAt = &now
	tpl.ActivatedBy = educatorID
	tpl.DueDate = &dueDate
	if err := s.Templates.Update(tpl); err != nil {
		return nil, err
	}
	return tpl, nil
}

func (s *ModuleService) DeactivateAssignment(moduleID, templateID string) (*model.AssignmentTemplate, error) {
	tpl, err := s.GetAssignmentTemplate(moduleID, templateID)
	if err != nil {
		return nil, err
	}
	tpl.IsActive = false
	if err := s.Templates.Update(tpl); err != nil {
		return nil, err
	}
	return tpl, nil
}

// ActiveAssignment 学生视角的已激活作业
type ActiveAssignment struct {
	model.AssignmentTemplate
	ModuleTitle string `json:"moduleTitle"`
	ModuleCode  string `json:"moduleCode"`
	Overdue     bool   `json:"overdue"`
}

// ListActiveAssignmentsForStudent 选课项目 -> 模块 -> 已激活模板，按截止时间升序
func (s *ModuleService) ListActiveAssignmentsForStudent(studentID string) ([]ActiveAssignment, error) {
	enrollments, err := s.Enrollments.FindActiveByStudent(studentID)
	if err != nil {
		return nil, err
	}
	programIDs := make([]string, 0, len(enrollments))
	for _, e := range enrollments {
		programIDs = append(programIDs, e.ProgramID)
	}

	modules, err := s.Modules.FindByPrograms(programIDs)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]model.Module, len(modules))
	moduleIDs := make([]string, 0, len(modules))
	for _, m := range modules {
		byID[m.ID] = m
		moduleIDs = append(moduleIDs, m.ID)
	}

	tpls, err := s.Templates.FindActiveByModules(moduleIDs)
	if err != nil {
		return nil, err
	}

	now := s.now()
	out := make([]ActiveAssignment, 0, len(tpls))
	for _, tpl := range tpls {
		m := byID[tpl.ModuleID]
		out = append(out, ActiveAssignment{
			AssignmentTemplate: tpl,
			ModuleTitle:        m.Title,
			ModuleCode:         m.Code,
			Overdue:            tpl.DueDate != nil && tpl.DueDate.Before(now),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].DueDate, out[j].DueDate
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.Before(*b)
		}
	})
	return out, nil
}

// DeactivateOverdueAssignments 截止时间超过宽限期的模板自动下线，返回处理数量
func (s *ModuleService) DeactivateOverdueAssignments(ctx context.Context, grace time.Duration) (int, error) {
	cutoff := s.now().Add(-grace)
	tpls, err := s.Templates.FindActiveDueBefore(cutoff)
	if err != nil {
		return 0, err
	}

	count := 0
	for i := range tpls {
		if err := ctx.Err(); err != nil {
			return count, err
		}
		tpl := tpls[i]
		tpl.IsActive = false
		if err := s.Templates.Update(&tpl); err != nil {
			logger.Log.Error("deactivate overdue assignment failed", zap.String("templateID", tpl.ID), zap.Error(err))
			continue
		}
		count++
	}
	if count > 0 {
		monitoring.AssignmentsDeactivated.Add(float64(count))
		logger.Log.Info("overdue assignments deactivated", zap.Int("count", count))
	}
	return count, nil
}

// normalizeCode 统一模块/项目编码大小写
func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
