package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"eduboost_backend/internal/grading"
	"eduboost_backend/internal/model"
	"eduboost_backend/internal/util"

	"gorm.io/gorm"
)

type EnrollmentService struct {
	Users       UserRepository
	Programs    ProgramRepository
	Batches     BatchRepository
	Modules     ModuleRepository
	Enrollments EnrollmentRepository
	Progress    *ProgressService
	Goals       *GoalService
}

func NewEnrollmentService(repos Repositories, progress *ProgressService, goals *GoalService) *EnrollmentService {
	return &EnrollmentService{
		Users:       repos.Users,
		Programs:    repos.Programs,
		Batches:     repos.Batches,
		Modules:     repos.Modules,
		Enrollments: repos.Enrollments,
		Progress:    progress,
		Goals:       goals,
	}
}

type EnrollRequest struct {
	StudentID string  `json:"studentId" binding:"required"`
	ProgramID string  `json:"programId" binding:"required"`
	BatchID   *string `json:"batchId"`
}

// EnrollStudent 已退课的记录会被重新激活
func (s *EnrollmentService) EnrollStudent(req EnrollRequest) (*model.Enrollment, error) {
	student, err := s.Users.FindByID(req.StudentID)
	if err != nil {
		return nil, notFound(err, util.ErrStudentNotFound)
	}
	if student.Role != model.Student {
		return nil, util.ErrStudentNotFound
	}
	if _, err := s.Programs.FindByID(req.ProgramID); err != nil {
		return nil, notFound(err, util.ErrProgramNotFound)
	}
	if req.BatchID != nil {
		batch, err := s.Batches.FindByID(*req.BatchID)
		if err != nil {
			return nil, notFound(err, util.ErrBatchNotFound)
		}
		if batch.ProgramID != req.ProgramID {
			return nil, util.ErrBatchNotFound
		}
	}

	enrollment, err := s.Enrollments.FindByStudentAndProgram(req.StudentID, req.ProgramID)
	switch {
	case err == nil:
		if enrollment.Status == model.EnrollmentActive {
			return nil, util.ErrAlreadyEnrolled
		}
		enrollment.Status = model.EnrollmentActive
		enrollment.BatchID = req.BatchID
		enrollment.EnrolledAt = time.Now()
		err = s.Enrollments.Update(enrollment)
	case errors.Is(err, gorm.ErrRecordNotFound):
		enrollment = &model.Enrollment{
			StudentID:  req.StudentID,
			ProgramID:  req.ProgramID,
			BatchID:    req.BatchID,
			Status:     model.EnrollmentActive,
			EnrolledAt: time.Now(),
		}
		err = s.Enrollments.Create(enrollment)
	}
	if err != nil {
		return nil, fmt.Errorf("enroll student: %w", err)
	}

	if req.BatchID != nil {
		student.CurrentBatchID = req.BatchID
		if err := s.Users.Update(student); err != nil {
			return nil, err
		}
	}
	return enrollment, nil
}

func (s *EnrollmentService) Withdraw(studentID, programID string) error {
	enrollment, err := s.Enrollments.FindByStudentAndProgram(studentID, programID)
	if err != nil {
		return notFound(err, util.ErrProgramNotFound)
	}
	enrollment.Status = model.EnrollmentWithdrew
	return s.Enrollments.Update(enrollment)
}

type EnrollmentView struct {
	model.Enrollment
	ProgramTitle string `json:"programTitle"`
	ProgramCode  string `json:"programCode"`
}

func (s *EnrollmentService) ListActiveEnrollments(studentID string) ([]EnrollmentView, error) {
	enrollments, err := s.Enrollments.FindActiveByStudent(studentID)
	if err != nil {
		return nil, err
	}
	out := make([]EnrollmentView, 0, len(enrollments))
	for _, e := range enrollments {
		view := EnrollmentView{Enrollment: e}
		if p, err := s.Programs.FindByID(e.ProgramID); err == nil {
			view.ProgramTitle = p.Title
			view.ProgramCode = p.Code
		}
		out = append(out, view)
	}
	return out, nil
}

type EnrolledModule struct {
	Module       model.Module                    `json:"module"`
	ProgramTitle string                          `json:"programTitle"`
	Completion   grading.ModuleCompletionSummary `json:"completion"`
	Goals        GoalStats                       `json:"goals"`
}

type EnrolledOverview struct {
	TotalModules     int     `json:"totalModules"`
	ModulesCompleted int     `json:"modulesCompleted"`
	TotalGoals       int     `json:"totalGoals"`
	CompletedGoals   int     `json:"completedGoals"`
	OverallProgress  float64 `json:"overallProgress"`
}

type EnrolledModules struct {
	Modules []EnrolledModule `json:"modules"`
	Stats   EnrolledOverview `json:"stats"`
}

// ListEnrolledModules 汇总学生所有在读模块的完成度与目标进度
func (s *EnrollmentService) ListEnrolledModules(ctx context.Context, studentID string) (*EnrolledModules, error) {
	enrollments, err := s.ListActiveEnrollments(studentID)
	if err != nil {
		return nil, err
	}
	programTitles := make(map[string]string, len(enrollments))
	programIDs := make([]string, 0, len(enrollments))
	for _, e := range enrollments {
		programTitles[e.ProgramID] = e.ProgramTitle
		programIDs = append(programIDs, e.ProgramID)
	}

	modules, err := s.Modules.FindByPrograms(programIDs)
	if err != nil {
		return nil, err
	}

	out := &EnrolledModules{Modules: make([]EnrolledModule, 0, len(modules))}
	for _, m := range modules {
		completion, err := s.Progress.ModuleCompletion(ctx, studentID, m.ID)
		if err != nil {
			return nil, fmt.Errorf("module %s completion: %w", m.ID, err)
		}
		goals, err := s.Goals.ModuleGoalStats(studentID, m.ID)
		if err != nil {
			return nil, err
		}

		out.Modules = append(out.Modules, EnrolledModule{
			Module:       m,
			ProgramTitle: programTitles[m.ProgramID],
			Completion:   completion,
			Goals:        goals,
		})
		out.Stats.TotalGoals += goals.Total
		out.Stats.CompletedGoals += goals.Completed
		if completion.IsComplete {
			out.Stats.ModulesCompleted++
		}
	}

	sort.SliceStable(out.Modules, func(i, j int) bool {
		a, b := out.Modules[i], out.Modules[j]
		if a.ProgramTitle != b.ProgramTitle {
			return a.ProgramTitle < b.ProgramTitle
		}
		return a.Module.Title < b.Module.Title
	})

	out.Stats.TotalModules = len(out.Modules)
	if out.Stats.TotalGoals > 0 {
		out.Stats.OverallProgress = util.Round(float64(out.Stats.CompletedGoals)/float64(out.Stats.TotalGoals)*100, 1)
	}
	return out, nil
}
