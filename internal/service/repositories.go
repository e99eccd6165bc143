package service

import (
	"errors"
	"time"

	"eduboost_backend/internal/model"

	"gorm.io/gorm"
)

// 以下接口由 repository 包（gorm）与 repository/inmem 包共同实现

type UserRepository interface {
	Create(user *model.User) error
	FindByID(id string) (*model.User, error)
	FindByEmail(email string) (*model.User, error)
	Update(user *model.User) error
	UpdateLastSeen(userID string) error
}

type ProgramRepository interface {
	Create(program *model.Program) error
	FindByID(id string) (*model.Program, error)
	FindAll() ([]model.Program, error)
	FindByEducator(educatorID string) ([]model.Program, error)
	Update(program *model.Program) error
	Delete(id string) error
}

type BatchRepository interface {
	Create(batch *model.Batch) error
	FindByID(id string) (*model.Batch, error)
	FindByProgram(programID string) ([]model.Batch, error)
	Update(batch *model.Batch) error
	Delete(id string) error
}

type ModuleRepository interface {
	Create(module *model.Module) error
	FindByID(id string) (*model.Module, error)
	FindAll() ([]model.Module, error)
	FindByPrograms(programIDs []string) ([]model.Module, error)
	Update(module *model.Module) error
	Delete(id string) error
}

type AssessmentRepository interface {
	Create(assessment *model.Assessment) error
	FindByID(id string) (*model.Assessment, error)
	FindByModule(moduleID string) ([]model.Assessment, error)
	FindByEducator(educatorID string) ([]model.Assessment, error)
	Update(assessment *model.Assessment) error
	Delete(id string) error
}

type AssignmentTemplateRepository interface {
	Create(tpl *model.AssignmentTemplate) error
	FindByID(id string) (*model.AssignmentTemplate, error)
	FindByModule(moduleID string) ([]model.AssignmentTemplate, error)
	FindActiveByModules(moduleIDs []string) ([]model.AssignmentTemplate, error)
	FindActiveDueBefore(t time.Time) ([]model.AssignmentTemplate, error)
	Update(tpl *model.AssignmentTemplate) error
	Delete(id string) error
}

type EnrollmentRepository interface {
	Create(enrollment *model.Enrollment) error
	FindActiveByStudent(studentID string) ([]model.Enrollment, error)
	FindByStudentAndProgram(studentID, programID string) (*model.Enrollment, error)
	Update(enrollment *model.Enrollment) error
}

type ProgressRepository interface {
	Create(progress *model.StudentProgress) error
	FindByStudent(studentID string) ([]model.StudentProgress, error)
	FindByStudentAndModule(studentID, moduleID string) ([]model.StudentProgress, error)
}

type ModuleMarksRepository interface {
	FindByStudentAndModule(studentID, moduleID string) (*model.ModuleMarks, error)
	FindByStudent(studentID string) ([]model.ModuleMarks, error)
	Save(marks *model.ModuleMarks) error
}

type GoalRepository interface {
	Create(goal *model.Goal) error
	FindByID(id string) (*model.Goal, error)
	FindByStudent(studentID, moduleID string) ([]model.Goal, error)
	Update(goal *model.Goal) error
	Delete(id string) error
}

type HealthPlanRepository interface {
	FindByStudent(studentID string) (*model.HealthPlan, error)
	Save(plan *model.HealthPlan) error
}

// Repositories 服务层依赖的全部仓储
type Repositories struct {
	Users       UserRepository
	Programs    ProgramRepository
	Batches     BatchRepository
	Modules     ModuleRepository
	Assessments AssessmentRepository
	Templates   AssignmentTemplateRepository
	Enrollments EnrollmentRepository
	Progress    ProgressRepository
	Marks       ModuleMarksRepository
	Goals       GoalRepository
	HealthPlans HealthPlanRepository
}

// notFound 把 gorm 的记录不存在转换成业务错误，其他错误原样返回
func notFound(err, sentinel error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return err
}
