package service

import (
	"context"
	"testing"

	"eduboost_backend/internal/model"
	"eduboost_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEnrollmentService(t *testing.T) (*EnrollmentService, *ProgressService, *GoalService, Repositories, catalogFixture) {
	t.Helper()
	repos := newRepos()
	f := seedCatalog(t, repos)
	progress := NewProgressService(repos, nil, DefaultThresholds)
	goals := NewGoalService(repos.Goals, repos.Modules)
	return NewEnrollmentService(repos, progress, goals), progress, goals, repos, f
}

func TestEnrollStudent(t *testing.T) {
	svc, _, _, repos, f := newEnrollmentService(t)

	batch := &model.Batch{ProgramID: f.program.ID, Name: "2026A"}
	require.NoError(t, repos.Batches.Create(batch))

	e, err := svc.EnrollStudent(EnrollRequest{StudentID: f.student.ID, ProgramID: f.program.ID, BatchID: &batch.ID})
	require.NoError(t, err)
	assert.Equal(t, model.EnrollmentActive, e.Status)

	student, err := repos.Users.FindByID(f.student.ID)
	require.NoError(t, err)
	require.NotNil(t, student.CurrentBatchID)
	assert.Equal(t, batch.ID, *student.CurrentBatchID)

	_, err = svc.EnrollStudent(EnrollRequest{StudentID: f.student.ID, ProgramID: f.program.ID})
	assert.ErrorIs(t, err, util.ErrAlreadyEnrolled)

	require.NoError(t, svc.Withdraw(f.student.ID, f.program.ID))
	active, err := svc.ListActiveEnrollments(f.student.ID)
	require.NoError(t, err)
	assert.Empty(t, active)

	again, err := svc.EnrollStudent(EnrollRequest{StudentID: f.student.ID, ProgramID: f.program.ID})
	require.NoError(t, err)
	assert.Equal(t, e.ID, again.ID)
}

func TestEnrollStudentRejectsBadReferences(t *testing.T) {
	svc, _, _, repos, f := newEnrollmentService(t)

	_, err := svc.EnrollStudent(EnrollRequest{StudentID: f.educator.ID, ProgramID: f.program.ID})
	assert.ErrorIs(t, err, util.ErrStudentNotFound)

	_, err = svc.EnrollStudent(EnrollRequest{StudentID: f.student.ID, ProgramID: "missing"})
	assert.ErrorIs(t, err, util.ErrProgramNotFound)

	otherProgram := &model.Program{Title: "Other"}
	require.NoError(t, repos.Programs.Create(otherProgram))
	foreign := &model.Batch{ProgramID: otherProgram.ID, Name: "X"}
	require.NoError(t, repos.Batches.Create(foreign))
	_, err = svc.EnrollStudent(EnrollRequest{StudentID: f.student.ID, ProgramID: f.program.ID, BatchID: &foreign.ID})
	assert.ErrorIs(t, err, util.ErrBatchNotFound)
}

func TestListEnrolledModules(t *testing.T) {
	svc, progress, goals, repos, f := newEnrollmentService(t)
	ctx := context.Background()

	second := &model.Module{ProgramID: f.program.ID, Title: "Databases"}
	require.NoError(t, repos.Modules.Create(second))

	_, err := svc.EnrollStudent(EnrollRequest{StudentID: f.student.ID, ProgramID: f.program.ID})
	require.NoError(t, err)

	for _, rec := range []struct {
		assessment *model.Assessment
		score      float64
	}{{f.exam, 75}, {f.practical, 40}} {
		_, err := progress.RecordProgress(ctx, f.educator.ID, RecordProgressRequest{
			StudentID: f.student.ID, ModuleID: f.module.ID, AssessmentID: rec.assessment.ID, Score: ptr(rec.score),
		})
		require.NoError(t, err)
	}

	g, err := goals.CreateGoal(f.student.ID, CreateGoalRequest{ModuleID: f.module.ID, Title: "lab"})
	require.NoError(t, err)
	_, err = goals.CreateGoal(f.student.ID, CreateGoalRequest{ModuleID: second.ID, Title: "erd"})
	require.NoError(t, err)
	_, err = goals.ToggleGoal(f.student.ID, g.ID)
	require.NoError(t, err)

	out, err := svc.ListEnrolledModules(ctx, f.student.ID)
	require.NoError(t, err)
	require.Len(t, out.Modules, 2)

	assert.Equal(t, "Databases", out.Modules[0].Module.Title)
	assert.False(t, out.Modules[0].Completion.IsComplete)
	assert.Equal(t, "Programming Fundamentals", out.Modules[1].Module.Title)
	assert.Equal(t, "Software Engineering", out.Modules[1].ProgramTitle)
	assert.InDelta(t, 155, out.Modules[1].Completion.TotalPercentage, 1e-9)
	assert.Equal(t, 100.0, out.Modules[1].Goals.Progress)

	assert.Equal(t, EnrolledOverview{
		TotalModules:     2,
		ModulesCompleted: 1,
		TotalGoals:       2,
		CompletedGoals:   1,
		OverallProgress:  50,
	}, out.Stats)
}
