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

func newProgressService(t *testing.T) (*ProgressService, Repositories, catalogFixture, *memoryCache) {
	t.Helper()
	repos := newRepos()
	f := seedCatalog(t, repos)
	cache := newMemoryCache()
	svc := NewProgressService(repos, cache, DefaultThresholds)
	svc.now = fixedClock(time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC))
	return svc, repos, f, cache
}

func record(t *testing.T, svc *ProgressService, f catalogFixture, a *model.Assessment, score float64) *RecordProgressResult {
	t.Helper()
	res, err := svc.RecordProgress(context.Background(), f.educator.ID, RecordProgressRequest{
		StudentID:    f.student.ID,
		ModuleID:     f.module.ID,
		AssessmentID: a.ID,
		Score:        ptr(score),
	})
	require.NoError(t, err)
	return res
}

func TestRecordProgressUsesAssessmentTypeAndMax(t *testing.T) {
	svc, _, f, _ := newProgressService(t)

	res := record(t, svc, f, f.practical, 35)
	assert.Equal(t, grading.Practical, res.Progress.AssessmentType)
	assert.Equal(t, 50.0, res.Progress.MaxScore)
	assert.Equal(t, "edu Test", res.Progress.GraderName)
	assert.InDelta(t, 70, res.Completion.PracticalPercentage, 1e-9)
	assert.Equal(t, grading.StatusIncomplete, res.Completion.PassStatus)

	res = record(t, svc, f, f.exam, 60)
	assert.InDelta(t, 130, res.Completion.TotalPercentage, 1e-9)
	assert.Equal(t, grading.StatusPassed, res.Completion.PassStatus)
	assert.True(t, res.Completion.IsComplete)
}

func TestRecordProgressValidation(t *testing.T) {
	svc, repos, f, _ := newProgressService(t)
	ctx := context.Background()

	base := RecordProgressRequest{StudentID: f.student.ID, ModuleID: f.module.ID, AssessmentID: f.exam.ID}

	_, err := svc.RecordProgress(ctx, f.educator.ID, base)
	assert.ErrorIs(t, err, util.ErrValidation, "missing score")

	req := base
	req.Score = ptr(101.0)
	_, err = svc.RecordProgress(ctx, f.educator.ID, req)
	assert.ErrorIs(t, err, util.ErrInvalidScore)

	req.Score = ptr(-1.0)
	_, err = svc.RecordProgress(ctx, f.educator.ID, req)
	assert.ErrorIs(t, err, util.ErrInvalidScore)

	req = base
	req.Score = ptr(0.0)
	req.StudentID = f.educator.ID
	_, err = svc.RecordProgress(ctx, f.educator.ID, req)
	assert.ErrorIs(t, err, util.ErrStudentNotFound)

	other := &model.Module{ProgramID: f.program.ID, Title: "Other"}
	require.NoError(t, repos.Modules.Create(other))
	req = base
	req.Score = ptr(10.0)
	req.ModuleID = other.ID
	_, err = svc.RecordProgress(ctx, f.educator.ID, req)
	assert.ErrorIs(t, err, util.ErrAssessmentNotFound, "assessment belongs to another module")

	req.ModuleID = "missing"
	_, err = svc.RecordProgress(ctx, f.educator.ID, req)
	assert.ErrorIs(t, err, util.ErrModuleNotFound)
}

func TestModuleCompletionCachedAndInvalidated(t *testing.T) {
	svc, _, f, cache := newProgressService(t)
	ctx := context.Background()

	s, err := svc.ModuleCompletion(ctx, f.student.ID, f.module.ID)
	require.NoError(t, err)
	assert.Equal(t, grading.StatusIncomplete, s.PassStatus)

	_, err = svc.ModuleCompletion(ctx, f.student.ID, f.module.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, cache.hits)

	record(t, svc, f, f.exam, 40)
	record(t, svc, f, f.practical, 10)
	assert.Equal(t, 2, cache.invalidated)

	s, err = svc.ModuleCompletion(ctx, f.student.ID, f.module.ID)
	require.NoError(t, err)
	assert.InDelta(t, 60, s.TotalPercentage, 1e-9)
	assert.Equal(t, grading.StatusFailed, s.PassStatus)

	_, err = svc.ModuleCompletion(ctx, f.student.ID, "missing")
	assert.ErrorIs(t, err, util.ErrModuleNotFound)
}

func TestModuleCompletionStaleFillIgnored(t *testing.T) {
	svc, _, f, cache := newProgressService(t)
	ctx := context.Background()

	// 读取方先拿到版本并算出旧汇总，写入方随后录入成绩
	version := cache.Version(ctx, f.student.ID, f.module.ID)
	stale, err := svc.computeCompletion(ctx, f.student.ID, f.module.ID)
	require.NoError(t, err)

	record(t, svc, f, f.exam, 90)
	record(t, svc, f, f.practical, 40)

	// 旧汇总晚于失效才回填
	cache.Set(ctx, f.student.ID, f.module.ID, version, stale)

	s, err := svc.ModuleCompletion(ctx, f.student.ID, f.module.ID)
	require.NoError(t, err)
	assert.Equal(t, grading.StatusPassed, s.PassStatus)
	assert.InDelta(t, 170, s.TotalPercentage, 1e-9)
	assert.Zero(t, cache.hits)

	again, err := svc.ModuleCompletion(ctx, f.student.ID, f.module.ID)
	require.NoError(t, err)
	assert.Equal(t, s, again)
	assert.Equal(t, 1, cache.hits)
}

func TestModuleCompletionWithoutCache(t *testing.T) {
	repos := newRepos()
	f := seedCatalog(t, repos)
	svc := NewProgressService(repos, nil, DefaultThresholds)

	record(t, svc, f, f.exam, 80)
	record(t, svc, f, f.assignment, 15)

	s, err := svc.ModuleCompletion(context.Background(), f.student.ID, f.module.ID)
	require.NoError(t, err)
	assert.InDelta(t, 155, s.TotalPercentage, 1e-9)
	assert.Equal(t, grading.StatusPassed, s.PassStatus)
}

func TestUpsertModuleMarks(t *testing.T) {
	svc, _, f, _ := newProgressService(t)
	ctx := context.Background()
	req := UpsertMarksRequest{StudentID: f.student.ID, ModuleID: f.module.ID, Marks: ptr(39.5)}

	m, err := svc.UpsertModuleMarks(ctx, f.educator.ID, req)
	require.NoError(t, err)
	assert.Equal(t, model.MarksInProgress, m.Status)
	assert.Equal(t, 1, m.AttemptNumber)

	req.Marks = ptr(40.0)
	m, err = svc.UpsertModuleMarks(ctx, f.educator.ID, req)
	require.NoError(t, err)
	assert.Equal(t, model.MarksCompleted, m.Status)
	assert.Equal(t, 2, m.AttemptNumber, "previous marks were below the repeat line")

	req.Marks = ptr(75.0)
	m, err = svc.UpsertModuleMarks(ctx, f.educator.ID, req)
	require.NoError(t, err)
	assert.Equal(t, 3, m.AttemptNumber)

	req.Marks = ptr(80.0)
	m, err = svc.UpsertModuleMarks(ctx, f.educator.ID, req)
	require.NoError(t, err)
	assert.Equal(t, 3, m.AttemptNumber, "regrade of a passed module is not a new attempt")

	req.Marks = ptr(100.5)
	_, err = svc.UpsertModuleMarks(ctx, f.educator.ID, req)
	assert.ErrorIs(t, err, util.ErrInvalidMarks)
}

func TestUpsertModuleMarksHonoursThresholdChange(t *testing.T) {
	svc, _, f, _ := newProgressService(t)
	svc.SetThresholds(Thresholds{Repeat: 60, MarksCompleted: 55})

	m, err := svc.UpsertModuleMarks(context.Background(), f.educator.ID, UpsertMarksRequest{
		StudentID: f.student.ID, ModuleID: f.module.ID, Marks: ptr(50.0),
	})
	require.NoError(t, err)
	assert.Equal(t, model.MarksInProgress, m.Status)

	repeat, err := svc.RepeatModules(f.student.ID)
	require.NoError(t, err)
	assert.Len(t, repeat, 1)
}

func TestRepeatModulesAndGradesOverview(t *testing.T) {
	svc, repos, f, _ := newProgressService(t)
	ctx := context.Background()

	titles := map[string]float64{"Algorithms": 45, "Databases": 72, "Networks": 31, "Security": 50}
	for title, marks := range titles {
		m := &model.Module{ProgramID: f.program.ID, Title: title}
		require.NoError(t, repos.Modules.Create(m))
		_, err := svc.UpsertModuleMarks(ctx, f.educator.ID, UpsertMarksRequest{
			StudentID: f.student.ID, ModuleID: m.ID, Marks: ptr(marks),
		})
		require.NoError(t, err)
	}

	repeat, err := svc.RepeatModules(f.student.ID)
	require.NoError(t, err)
	require.Len(t, repeat, 2)
	assert.Equal(t, "Networks", repeat[0].ModuleTitle)
	assert.Equal(t, "Algorithms", repeat[1].ModuleTitle)

	overview, err := svc.GradesOverview(f.student.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, overview.TotalModules)
	assert.Equal(t, 2, overview.PassedModules)
	assert.Equal(t, 49.5, overview.AverageMarks)
	require.Len(t, overview.Modules, 4)
	assert.Equal(t, "Algorithms", overview.Modules[0].ModuleTitle)
	assert.Equal(t, grading.GradeAtRisk, overview.Modules[0].Grade)
	assert.Equal(t, grading.GradeGood, overview.Modules[1].Grade)
	assert.Equal(t, grading.GradeFail, overview.Modules[2].Grade)
	assert.Equal(t, grading.GradePass, overview.Modules[3].Grade)
	assert.True(t, overview.Modules[3].Passed)
}

func TestGradesOverviewEmpty(t *testing.T) {
	svc, _, f, _ := newProgressService(t)
	overview, err := svc.GradesOverview(f.student.ID)
	require.NoError(t, err)
	assert.Zero(t, overview.TotalModules)
	assert.Zero(t, overview.AverageMarks)
	assert.Empty(t, overview.Modules)
}
