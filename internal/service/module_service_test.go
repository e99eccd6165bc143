package service

import (
	"context"
	"testing"
	"time"

	"eduboost_backend/internal/grading"
	"eduboost_backend/internal/model"
	"eduboost_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var catalogNow = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

func newModuleService(t *testing.T) (*ModuleService, Repositories, catalogFixture) {
	t.Helper()
	repos := newRepos()
	f := seedCatalog(t, repos)
	svc := NewModuleService(repos)
	svc.now = fixedClock(catalogNow)
	return svc, repos, f
}

func TestCatalogCRUD(t *testing.T) {
	svc, _, f := newModuleService(t)

	program, err := svc.CreateProgram(f.educator.ID, ProgramRequest{Code: " dsc ", Title: "Data Science"})
	require.NoError(t, err)
	assert.Equal(t, "DSC", program.Code)

	mine, err := svc.ListProgramsByEducator(f.educator.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	module, err := svc.CreateModule(ModuleRequest{ProgramID: program.ID, Code: "ds201", Title: "Statistics"})
	require.NoError(t, err)
	assert.Equal(t, "intermediate", module.Difficulty)
	assert.Equal(t, "DS201", module.Code)

	_, err = svc.CreateModule(ModuleRequest{ProgramID: "missing", Title: "x"})
	assert.ErrorIs(t, err, util.ErrProgramNotFound)

	module, err = svc.UpdateModule(module.ID, ModuleRequest{ProgramID: program.ID, Title: "Applied Statistics", Difficulty: "advanced", EstimatedHours: 40})
	require.NoError(t, err)
	assert.Equal(t, "Applied Statistics", module.Title)
	assert.Equal(t, "advanced", module.Difficulty)

	listed, err := svc.ListModules(program.ID)
	require.NoError(t, err)
	require.Len(t, listed, 1)

	all, err := svc.ListModules("")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	require.NoError(t, svc.DeleteModule(module.ID))
	_, err = svc.GetModule(module.ID)
	assert.ErrorIs(t, err, util.ErrModuleNotFound)
}

func TestBatchDatesValidated(t *testing.T) {
	svc, _, f := newModuleService(t)
	start := catalogNow
	end := start.AddDate(0, -1, 0)

	_, err := svc.CreateBatch(BatchRequest{ProgramID: f.program.ID, Name: "2026A", StartDate: &start, EndDate: &end})
	assert.ErrorIs(t, err, util.ErrValidation)

	end = start.AddDate(0, 6, 0)
	batch, err := svc.CreateBatch(BatchRequest{ProgramID: f.program.ID, Name: "2026A", StartDate: &start, EndDate: &end})
	require.NoError(t, err)

	batches, err := svc.ListBatches(f.program.ID)
	require.NoError(t, err)
	assert.Len(t, batches, 1)
	assert.Equal(t, batch.ID, batches[0].ID)
}

func TestAssessmentTypeAndMaxScore(t *testing.T) {
	svc, _, f := newModuleService(t)

	a, err := svc.CreateAssessment(f.educator.ID, f.module.ID, AssessmentRequest{Title: "Final", Type: "Exam"})
	require.NoError(t, err)
	assert.Equal(t, grading.Exam, a.Type)
	assert.Equal(t, 100.0, a.MaxScore)

	_, err = svc.CreateAssessment(f.educator.ID, f.module.ID, AssessmentRequest{Title: "Quiz", Type: "quiz"})
	assert.ErrorIs(t, err, util.ErrInvalidAssessment)

	_, err = svc.CreateAssessment(f.educator.ID, f.module.ID, AssessmentRequest{Title: "Lab", Type: "practical", MaxScore: -5})
	assert.ErrorIs(t, err, util.ErrInvalidAssessment)

	a, err = svc.UpdateAssessment(a.ID, AssessmentRequest{Title: "Final v2", Type: "assignment", MaxScore: 40})
	require.NoError(t, err)
	assert.Equal(t, grading.Assignment, a.Type)
	assert.Equal(t, 40.0, a.MaxScore)

	byEducator, err := svc.ListAssessmentsByEducator(f.educator.ID)
	require.NoError(t, err)
	assert.Len(t, byEducator, 4)
}

func TestAssignmentTemplateLifecycle(t *testing.T) {
	svc, repos, f := newModuleService(t)

	tpl, err := svc.CreateAssignmentTemplate(f.module.ID, TemplateRequest{Title: "Linked lists"})
	require.NoError(t, err)
	assert.False(t, tpl.IsActive)
	assert.Equal(t, 100.0, tpl.MaxScore)

	_, err = svc.ActivateAssignment(f.module.ID, tpl.ID, catalogNow.Add(-time.Hour), f.educator.ID)
	assert.ErrorIs(t, err, util.ErrInvalidDueDate)

	due := catalogNow.Add(72 * time.Hour)
	tpl, err = svc.ActivateAssignment(f.module.ID, tpl.ID, due, f.educator.ID)
	require.NoError(t, err)
	assert.True(t, tpl.IsActive)
	assert.Equal(t, f.educator.ID, tpl.ActivatedBy)

	// 学生未选课时看不到
	active, err := svc.ListActiveAssignmentsForStudent(f.student.ID)
	require.NoError(t, err)
	assert.Empty(t, active)

	require.NoError(t, repos.Enrollments.Create(&model.Enrollment{StudentID: f.student.ID, ProgramID: f.program.ID, Status: model.EnrollmentActive}))
	active, err = svc.ListActiveAssignmentsForStudent(f.student.ID)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "Programming Fundamentals", active[0].ModuleTitle)
	assert.False(t, active[0].Overdue)

	_, err = svc.GetAssignmentTemplate("other-module", tpl.ID)
	assert.ErrorIs(t, err, util.ErrTemplateNotFound)

	tpl, err = svc.DeactivateAssignment(f.module.ID, tpl.ID)
	require.NoError(t, err)
	assert.False(t, tpl.IsActive)

	active, err = svc.ListActiveAssignmentsForStudent(f.student.ID)
	require.NoError(t, err)
	assert.Empty(t, active)
}

func TestActiveAssignmentsSortedByDueDate(t *testing.T) {
	svc, repos, f := newModuleService(t)
	require.NoError(t, repos.Enrollments.Create(&model.Enrollment{StudentID: f.student.ID, ProgramID: f.program.ID, Status: model.EnrollmentActive}))

	for _, d := range []time.Duration{96 * time.Hour, 24 * time.Hour, 48 * time.Hour} {
		tpl, err := svc.CreateAssignmentTemplate(f.module.ID, TemplateRequest{Title: d.String()})
		require.NoError(t, err)
		_, err = svc.ActivateAssignment(f.module.ID, tpl.ID, catalogNow.Add(d), f.educator.ID)
		require.NoError(t, err)
	}

	active, err := svc.ListActiveAssignmentsForStudent(f.student.ID)
	require.NoError(t, err)
	require.Len(t, active, 3)
	assert.Equal(t, "24h0m0s", active[0].Title)
	assert.Equal(t, "96h0m0s", active[2].Title)
}

func TestDeactivateOverdueAssignments(t *testing.T) {
	svc, _, f := newModuleService(t)

	for _, d := range []time.Duration{2 * time.Hour, 48 * time.Hour} {
		tpl, err := svc.CreateAssignmentTemplate(f.module.ID, TemplateRequest{Title: d.String()})
		require.NoError(t, err)
		_, err = svc.ActivateAssignment(f.module.ID, tpl.ID, catalogNow.Add(d), f.educator.ID)
		require.NoError(t, err)
	}

	// 三天后：第一个已过宽限期，第二个仍在宽限期内
	svc.now = fixedClock(catalogNow.Add(72 * time.Hour))
	n, err := svc.DeactivateOverdueAssignments(context.Background(), 24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	tpls, err := svc.ListAssignmentTemplates(f.module.ID)
	require.NoError(t, err)
	active := 0
	for _, tpl := range tpls {
		if tpl.IsActive {
			active++
		}
	}
	assert.Equal(t, 1, active)
}
