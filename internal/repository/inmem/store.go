package inmem

import (
	"sort"
	"strings"
	"time"

	"eduboost_backend/internal/model"
)

// Store 聚合全部内存仓储
type Store struct {
	Users       *UserRepository
	Programs    *ProgramRepository
	Batches     *BatchRepository
	Modules     *ModuleRepository
	Assessments *AssessmentRepository
	Templates   *AssignmentTemplateRepository
	Enrollments *EnrollmentRepository
	Progress    *ProgressRepository
	Marks       *ModuleMarksRepository
	Goals       *GoalRepository
	HealthPlans *HealthPlanRepository
}

func NewStore() *Store {
	return &Store{
		Users:       &UserRepository{t: newTable[model.User]()},
		Programs:    &ProgramRepository{t: newTable[model.Program]()},
		Batches:     &BatchRepository{t: newTable[model.Batch]()},
		Modules:     &ModuleRepository{t: newTable[model.Module]()},
		Assessments: &AssessmentRepository{t: newTable[model.Assessment]()},
		Templates:   &AssignmentTemplateRepository{t: newTable[model.AssignmentTemplate]()},
		Enrollments: &EnrollmentRepository{t: newTable[model.Enrollment]()},
		Progress:    &ProgressRepository{t: newTable[model.StudentProgress]()},
		Marks:       &ModuleMarksRepository{t: newTable[model.ModuleMarks]()},
		Goals:       &GoalRepository{t: newTable[model.Goal]()},
		HealthPlans: &HealthPlanRepository{t: newTable[model.HealthPlan]()},
	}
}

type UserRepository struct {
	t *table[model.User, *model.User]
}

func (r *UserRepository) Create(user *model.User) error {
	return r.t.insertUnique(user, func(u *model.User) bool { return strings.EqualFold(u.Email, user.Email) })
}

func (r *UserRepository) FindByID(id string) (*model.User, error) {
	return r.t.get(id)
}

func (r *UserRepository) FindByEmail(email string) (*model.User, error) {
	return r.t.first(func(u *model.User) bool { return strings.EqualFold(u.Email, email) })
}

func (r *UserRepository) Update(user *model.User) error {
	return r.t.save(user)
}

func (r *UserRepository) UpdateLastSeen(userID string) error {
	user, err := r.t.get(userID)
	if err != nil {
		return err
	}
	now := time.Now()
	user.LastSeen = &now
	return r.t.save(user)
}

type ProgramRepository struct {
	t *table[model.Program, *model.Program]
}

func (r *ProgramRepository) Create(p *model.Program) error { return r.t.insert(p) }

func (r *ProgramRepository) FindByID(id string) (*model.Program, error) { return r.t.get(id) }

func (r *ProgramRepository) FindAll() ([]model.Program, error) {
	out := r.t.filter(nil)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out, nil
}

func (r *ProgramRepository) FindByEducator(educatorID string) ([]model.Program, error) {
	out := r.t.filter(func(p *model.Program) bool { return p.EducatorID == educatorID })
	sort.SliceStable(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out, nil
}

func (r *ProgramRepository) Update(p *model.Program) error { return r.t.save(p) }

func (r *ProgramRepository) Delete(id string) error { return r.t.remove(id) }

type BatchRepository struct {
	t *table[model.Batch, *model.Batch]
}

func (r *BatchRepository) Create(b *model.Batch) error { return r.t.insert(b) }

func (r *BatchRepository) FindByID(id string) (*model.Batch, error) { return r.t.get(id) }

func (r *BatchRepository) FindByProgram(programID string) ([]model.Batch, error) {
	return r.t.filter(func(b *model.Batch) bool { return b.ProgramID == programID }), nil
}

func (r *BatchRepository) Update(b *model.Batch) error { return r.t.save(b) }

func (r *BatchRepository) Delete(id string) error { return r.t.remove(id) }

type ModuleRepository struct {
	t *table[model.Module, *model.Module]
}

func (r *ModuleRepository) Create(m *model.Module) error { return r.t.insert(m) }

func (r *ModuleRepository) FindByID(id string) (*model.Module, error) { return r.t.get(id) }

func (r *ModuleRepository) FindAll() ([]model.Module, error) {
	out := r.t.filter(nil)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out, nil
}

func (r *ModuleRepository) FindByPrograms(programIDs []string) ([]model.Module, error) {
	out := r.t.filter(func(m *model.Module) bool { return contains(programIDs, m.ProgramID) })
	sort.SliceStable(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out, nil
}

func (r *ModuleRepository) Update(m *model.Module) error { return r.t.save(m) }

func (r *ModuleRepository) Delete(id string) error { return r.t.remove(id) }

type AssessmentRepository struct {
	t *table[model.Assessment, *model.Assessment]
}

func (r *AssessmentRepository) Create(a *model.Assessment) error { return r.t.insert(a) }

func (r *AssessmentRepository) FindByID(id string) (*model.Assessment, error) { return r.t.get(id) }

func (r *AssessmentRepository) FindByModule(moduleID string) ([]model.Assessment, error) {
	return r.t.filter(func(a *model.Assessment) bool { return a.ModuleID == moduleID }), nil
}

func (r *AssessmentRepository) FindByEducator(educatorID string) ([]model.Assessment, error) {
	return r.t.filter(func(a *model.Assessment) bool { return a.EducatorID == educatorID }), nil
}

func (r *AssessmentRepository) Update(a *model.Assessment) error { return r.t.save(a) }

func (r *AssessmentRepository) Delete(id string) error { return r.t.remove(id) }

type AssignmentTemplateRepository struct {
	t *table[model.AssignmentTemplate, *model.AssignmentTemplate]
}

func (r *AssignmentTemplateRepository) Create(tpl *model.AssignmentTemplate) error {
	return r.t.insert(tpl)
}

func (r *AssignmentTemplateRepository) FindByID(id string) (*model.AssignmentTemplate, error) {
	return r.t.get(id)
}

func (r *AssignmentTemplateRepository) FindByModule(moduleID string) ([]model.AssignmentTemplate, error) {
	return r.t.filter(func(tpl *model.AssignmentTemplate) bool { return tpl.ModuleID == moduleID }), nil
}

func (r *AssignmentTemplateRepository) FindActiveByModules(moduleIDs []string) ([]model.AssignmentTemplate, error) {
	return r.t.filter(func(tpl *model.AssignmentTemplate) bool {
		return tpl.IsActive && contains(moduleIDs, tpl.ModuleID)
	}), nil
}

func (r *AssignmentTemplateRepository) FindActiveDueBefore(t time.Time) ([]model.AssignmentTemplate, error) {
	return r.t.filter(func(tpl *model.AssignmentTemplate) bool {
		return tpl.IsActive && tpl.DueDate != nil && tpl.DueDate.Before(t)
	}), nil
}

func (r *AssignmentTemplateRepository) Update(tpl *model.AssignmentTemplate) error {
	return r.t.save(tpl)
}

func (r *AssignmentTemplateRepository) Delete(id string) error { return r.t.remove(id) }

type EnrollmentRepository struct {
	t *table[model.Enrollment, *model.Enrollment]
}

func (r *EnrollmentRepository) Create(e *model.Enrollment) error { return r.t.insert(e) }

func (r *EnrollmentRepository) FindActiveByStudent(studentID string) ([]model.Enrollment, error) {
	return r.t.filter(func(e *model.Enrollment) bool {
		return e.StudentID == studentID && e.Status == model.EnrollmentActive
	}), nil
}

func (r *EnrollmentRepository) FindByStudentAndProgram(studentID, programID string) (*model.Enrollment, error) {
	return r.t.first(func(e *model.Enrollment) bool {
		return e.StudentID == studentID && e.ProgramID == programID
	})
}

func (r *EnrollmentRepository) Update(e *model.Enrollment) error { return r.t.save(e) }

type ProgressRepository struct {
	t *table[model.StudentProgress, *model.StudentProgress]
}

func (r *ProgressRepository) Create(p *model.StudentProgress) error { return r.t.insert(p) }

func (r *ProgressRepository) FindByStudent(studentID string) ([]model.StudentProgress, error) {
	return r.t.filter(func(p *model.StudentProgress) bool { return p.StudentID == studentID }), nil
}

func (r *ProgressRepository) FindByStudentAndModule(studentID, moduleID string) ([]model.StudentProgress, error) {
	return r.t.filter(func(p *model.StudentProgress) bool {
		return p.StudentID == studentID && p.ModuleID == moduleID
	}), nil
}

type ModuleMarksRepository struct {
	t *table[model.ModuleMarks, *model.ModuleMarks]
}

func (r *ModuleMarksRepository) FindByStudentAndModule(studentID, moduleID string) (*model.ModuleMarks, error) {
	return r.t.first(func(m *model.ModuleMarks) bool {
		return m.StudentID == studentID && m.ModuleID == moduleID
	})
}

func (r *ModuleMarksRepository) FindByStudent(studentID string) ([]model.ModuleMarks, error) {
	out := r.t.filter(func(m *model.ModuleMarks) bool { return m.StudentID == studentID })
	sort.SliceStable(out, func(i, j int) bool { return out[i].Marks < out[j].Marks })
	return out, nil
}

func (r *ModuleMarksRepository) Save(m *model.ModuleMarks) error { return r.t.save(m) }

type GoalRepository struct {
	t *table[model.Goal, *model.Goal]
}

func (r *GoalRepository) Create(g *model.Goal) error { return r.t.insert(g) }

func (r *GoalRepository) FindByID(id string) (*model.Goal, error) { return r.t.get(id) }

func (r *GoalRepository) FindByStudent(studentID, moduleID string) ([]model.Goal, error) {
	return r.t.filter(func(g *model.Goal) bool {
		return g.StudentID == studentID && (moduleID == "" || g.ModuleID == moduleID)
	}), nil
}

func (r *GoalRepository) Update(g *model.Goal) error { return r.t.save(g) }

func (r *GoalRepository) Delete(id string) error { return r.t.remove(id) }

type HealthPlanRepository struct {
	t *table[model.HealthPlan, *model.HealthPlan]
}

func (r *HealthPlanRepository) FindByStudent(studentID string) (*model.HealthPlan, error) {
	return r.t.first(func(p *model.HealthPlan) bool { return p.StudentID == studentID })
}

func (r *HealthPlanRepository) Save(p *model.HealthPlan) error { return r.t.save(p) }
