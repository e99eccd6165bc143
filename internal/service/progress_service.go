package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"eduboost_backend/internal/grading"
	"eduboost_backend/internal/model"
	"eduboost_backend/internal/util"
	"eduboost_backend/pkg/logger"
	"eduboost_backend/pkg/monitoring"
	"eduboost_backend/pkg/tracing"

	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Thresholds 模块总评相关阈值，可随配置热更新
type Thresholds struct {
	Repeat         float64
	MarksCompleted float64
}

var DefaultThresholds = Thresholds{Repeat: 50, MarksCompleted: 40}

type ProgressService struct {
	Users       UserRepository
	Modules     ModuleRepository
	Assessments AssessmentRepository
	Progress    ProgressRepository
	Marks       ModuleMarksRepository
	Cache       CompletionCache

	validate   *validator.Validate
	mu         sync.RWMutex
	thresholds Thresholds
	now        func() time.Time
}

// NewProgressService cache 可以为 nil，此时每次都重新计算
func NewProgressService(repos Repositories, cache CompletionCache, thresholds Thresholds) *ProgressService {
	return &ProgressService{
		Users:       repos.Users,
		Modules:     repos.Modules,
		Assessments: repos.Assessments,
		Progress:    repos.Progress,
		Marks:       repos.Marks,
		Cache:       cache,
		validate:    validator.New(),
		thresholds:  thresholds,
		now:         time.Now,
	}
}

func (s *ProgressService) SetThresholds(t Thresholds) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.thresholds = t
}

func (s *ProgressService) Thresholds() Thresholds {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.thresholds
}

type RecordProgressRequest struct {
	StudentID    string   `json:"studentId" validate:"required"`
	ModuleID     string   `json:"moduleId" validate:"required"`
	AssessmentID string   `json:"assessmentId" validate:"required"`
	Score        *float64 `json:"score" validate:"required"`
	Feedback     string   `json:"feedback" validate:"max=2000"`
}

type RecordProgressResult struct {
	Progress   *model.StudentProgress          `json:"progress"`
	Completion grading.ModuleCompletionSummary `json:"completion"`
}

func (s *ProgressService) student(id string) (*model.User, error) {
	user, err := s.Users.FindByID(id)
	if err != nil {
		return nil, notFound(err, util.ErrStudentNotFound)
	}
	if user.Role != model.Student {
		return nil, util.ErrStudentNotFound
	}
	return user, nil
}

func (s *ProgressService) module(id string) (*model.Module, error) {
	module, err := s.Modules.FindByID(id)
	if err != nil {
		return nil, notFound(err, util.ErrModuleNotFound)
	}
	return module, nil
}

func (s *ProgressService) graderName(graderID string) string {
	grader, err := s.Users.FindByID(graderID)
	if err != nil {
		return ""
	}
	return grader.FullName()
}

// RecordProgress 记录一次考核成绩，类型与满分取自考核本身
func (s *ProgressService) RecordProgress(ctx context.Context, graderID string, req RecordProgressRequest) (result *RecordProgressResult, err error) {
	ctx, span := tracing.StartSpan(ctx, "ProgressService.RecordProgress",
		attribute.String("student.id", req.StudentID),
		attribute.String("module.id", req.ModuleID),
	)
	defer func() {
		tracing.RecordError(span, err)
		span.End()
	}()

	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrValidation, err)
	}
	if _, err := s.student(req.StudentID); err != nil {
		return nil, err
	}
	if _, err := s.module(req.ModuleID); err != nil {
		return nil, err
	}

	assessment, err := s.Assessments.FindByID(req.AssessmentID)
	if err != nil {
		return nil, notFound(err, util.ErrAssessmentNotFound)
	}
	if assessment.ModuleID != req.ModuleID {
		return nil, util.ErrAssessmentNotFound
	}

	score := *req.Score
	if score < 0 || score > assessment.MaxScore {
		return nil, util.ErrInvalidScore
	}

	progress := &model.StudentProgress{
		StudentID:      req.StudentID,
		ModuleID:       req.ModuleID,
		AssessmentID:   assessment.ID,
		AssessmentType: assessment.Type,
		Score:          score,
		MaxScore:       assessment.MaxScore,
		Feedback:       req.Feedback,
		GradedBy:       graderID,
		GraderName:     s.graderName(graderID),
		GradedAt:       s.now(),
	}
	if err := s.Progress.Create(progress); err != nil {
		return nil, fmt.Errorf("create progress: %w", err)
	}
	monitoring.ProgressRecorded.WithLabelValues(string(assessment.Type)).Inc()

	if s.Cache != nil {
		s.Cache.Invalidate(ctx, req.StudentID, req.ModuleID)
	}

	summary, err := s.computeCompletion(ctx, req.StudentID, req.ModuleID)
	if err != nil {
		return nil, err
	}

	logger.Log.Info("progress recorded",
		zap.String("studentID", req.StudentID),
		zap.String("moduleID", req.ModuleID),
		zap.String("type", string(assessment.Type)),
		zap.String("status", string(summary.PassStatus)),
	)
	return &RecordProgressResult{Progress: progress, Completion: summary}, nil
}

// ListProgress moduleID 为空时返回该学生全部记录
func (s *ProgressService) ListProgress(studentID, moduleID string) ([]model.StudentProgress, error) {
	if moduleID == "" {
		return s.Progress.FindByStudent(studentID)
	}
	return s.Progress.FindByStudentAndModule(studentID, moduleID)
}

func (s *ProgressService) computeCompletion(ctx context.Context, studentID, moduleID string) (grading.ModuleCompletionSummary, error) {
	records, err := s.Progress.FindByStudentAndModule(studentID, moduleID)
	if err != nil {
		return grading.ModuleCompletionSummary{}, err
	}

	in := make([]grading.AssessmentRecord, 0, len(records))
	for _, r := range records {
		in = append(in, r.Record())
	}
	summary := grading.ComputeModuleCompletion(in)
	monitoring.ModuleCompletions.WithLabelValues(string(summary.PassStatus)).Inc()
	return summary, nil
}

// ModuleCompletion 优先读缓存，未命中时根据全部成绩记录重新汇总
func (s *ProgressService) ModuleCompletion(ctx context.Context, studentID, moduleID string) (summary grading.ModuleCompletionSummary, err error) {
	ctx, span := tracing.StartSpan(ctx, "ProgressService.ModuleCompletion",
		attribute.String("student.id", studentID),
		attribute.String("module.id", moduleID),
	)
	defer func() {
		tracing.RecordError(span, err)
		span.End()
	}()

	if _, err := s.module(moduleID); err != nil {
		return grading.ModuleCompletionSummary{}, err
	}

	if s.Cache != nil {
		if cached, ok := s.Cache.Get(ctx, studentID, moduleID); ok {
			span.SetAttributes(attribute.Bool("cache.hit", true))
			return *cached, nil
		}
		// 先取版本再读记录，期间若有成绩写入，回填的条目会因版本落后而失效
		version := s.Cache.Version(ctx, studentID, moduleID)
		summary, err = s.computeCompletion(ctx, studentID, moduleID)
		if err != nil {
			return summary, err
		}
		s.Cache.Set(ctx, studentID, moduleID, version, summary)
		return summary, nil
	}
	return s.computeCompletion(ctx, studentID, moduleID)
}

type UpsertMarksRequest struct {
	StudentID string   `json:"studentId" validate:"required"`
	ModuleID  string   `json:"moduleId" validate:"required"`
	Marks     *float64 `json:"marks" validate:"required"`
}

// UpsertModuleMarks 录入或更新模块总评；上次低于重修线时视为新一次尝试
func (s *ProgressService) UpsertModuleMarks(ctx context.Context, graderID string, req UpsertMarksRequest) (marks *model.ModuleMarks, err error) {
	_, span := tracing.StartSpan(ctx, "ProgressService.UpsertModuleMarks",
		attribute.String("student.id", req.StudentID),
		attribute.String("module.id", req.ModuleID),
	)
	defer func() {
		tracing.RecordError(span, err)
		span.End()
	}()

	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrValidation, err)
	}
	value := *req.Marks
	if value < 0 || value > 100 {
		return nil, util.ErrInvalidMarks
	}
	if _, err := s.student(req.StudentID); err != nil {
		return nil, err
	}
	if _, err := s.module(req.ModuleID); err != nil {
		return nil, err
	}

	t := s.Thresholds()
	marks, err = s.Marks.FindByStudentAndModule(req.StudentID, req.ModuleID)
	switch {
	case err == nil:
		if marks.Marks < t.Repeat {
			marks.AttemptNumber++
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		marks = &model.ModuleMarks{
			StudentID:     req.StudentID,
			ModuleID:      req.ModuleID,
			AttemptNumber: 1,
		}
	default:
		return nil, err
	}

	marks.Marks = value
	marks.Status = model.MarksInProgress
	if value >= t.MarksCompleted {
		marks.Status = model.MarksCompleted
	}
	marks.GradedBy = graderID
	marks.GraderName = s.graderName(graderID)
	marks.GradedAt = s.now()

	if err := s.Marks.Save(marks); err != nil {
		return nil, fmt.Errorf("save module marks: %w", err)
	}
	return marks, nil
}

// RepeatModule 需要重修的模块
type RepeatModule struct {
	ModuleID      string            `json:"moduleId"`
	ModuleTitle   string            `json:"moduleTitle"`
	ModuleCode    string            `json:"moduleCode"`
	Marks         float64           `json:"marks"`
	Status        model.MarksStatus `json:"status"`
	AttemptNumber int               `json:"attemptNumber"`
	GradedAt      time.Time         `json:"gradedAt"`
}

const unknownModuleTitle = "Unknown Module"

func (s *ProgressService) moduleLabel(moduleID string) (title, code string) {
	m, err := s.Modules.FindByID(moduleID)
	if err != nil {
		return unknownModuleTitle, ""
	}
	return m.Title, m.Code
}

// RepeatModules 总评低于重修线的模块，分数低的在前
func (s *ProgressService) RepeatModules(studentID string) ([]RepeatModule, error) {
	all, err := s.Marks.FindByStudent(studentID)
	if err != nil {
		return nil, err
	}

	threshold := s.Thresholds().Repeat
	out := make([]RepeatModule, 0)
	for _, m := range all {
		if m.Marks >= threshold {
			continue
		}
		title, code := s.moduleLabel(m.ModuleID)
		out = append(out, RepeatModule{
			ModuleID:      m.ModuleID,
			ModuleTitle:   title,
			ModuleCode:    code,
			Marks:         m.Marks,
			Status:        m.Status,
			AttemptNumber: m.AttemptNumber,
			GradedAt:      m.GradedAt,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Marks < out[j].Marks })
	return out, nil
}

type ModuleGrade struct {
	ModuleID    string        `json:"moduleId"`
	ModuleTitle string        `json:"moduleTitle"`
	ModuleCode  string        `json:"moduleCode"`
	Marks       float64       `json:"marks"`
	Grade       grading.Grade `json:"grade"`
	Passed      bool          `json:"passed"`
}

type GradesOverview struct {
	Modules       []ModuleGrade `json:"modules"`
	TotalModules  int           `json:"totalModules"`
	PassedModules int           `json:"passedModules"`
	AverageMarks  float64       `json:"averageMarks"`
}

// GradesOverview 按模块总评给出等级与汇总
func (s *ProgressService) GradesOverview(studentID string) (*GradesOverview, error) {
	all, err := s.Marks.FindByStudent(studentID)
	if err != nil {
		return nil, err
	}

	threshold := s.Thresholds().Repeat
	overview := &GradesOverview{Modules: make([]ModuleGrade, 0, len(all))}
	var sum float64
	for _, m := range all {
		title, code := s.moduleLabel(m.ModuleID)
		passed := m.Marks >= threshold
		overview.Modules = append(overview.Modules, ModuleGrade{
			ModuleID:    m.ModuleID,
			ModuleTitle: title,
			ModuleCode:  code,
			Marks:       m.Marks,
			Grade:       grading.GradeLetterForPercentage(m.Marks),
			Passed:      passed,
		})
		if passed {
			overview.PassedModules++
		}
		sum += m.Marks
	}
	overview.TotalModules = len(all)
	if overview.TotalModules > 0 {
		overview.AverageMarks = util.Round(sum/float64(overview.TotalModules), 1)
	}
	sort.SliceStable(overview.Modules, func(i, j int) bool {
		return overview.Modules[i].ModuleTitle < overview.Modules[j].ModuleTitle
	})
	return overview, nil
}
