package service

import (
	"testing"
	"time"

	"eduboost_backend/internal/model"
	"eduboost_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGoalProgress(t *testing.T) {
	created := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	target := created.AddDate(0, 0, 10)
	goal := model.Goal{TargetDate: &target}
	goal.CreatedAt = created

	assert.Equal(t, 0.0, GoalProgress(goal, created))
	assert.Equal(t, 40.0, GoalProgress(goal, created.AddDate(0, 0, 4)))
	assert.Equal(t, 100.0, GoalProgress(goal, target.AddDate(0, 0, 5)), "clamped after the target date")
	assert.Equal(t, 0.0, GoalProgress(goal, created.AddDate(0, 0, -3)), "clamped before creation")

	goal.Completed = true
	assert.Equal(t, 100.0, GoalProgress(goal, created))

	noTarget := model.Goal{}
	assert.Equal(t, 0.0, GoalProgress(noTarget, created))

	past := created.AddDate(0, 0, -1)
	backwards := model.Goal{TargetDate: &past}
	backwards.CreatedAt = created
	assert.Equal(t, 0.0, GoalProgress(backwards, created))
}

func TestGoalLifecycleAndOwnership(t *testing.T) {
	repos := newRepos()
	f := seedCatalog(t, repos)
	other := seedUser(t, repos, model.Student, "ama")
	svc := NewGoalService(repos.Goals, repos.Modules)

	_, err := svc.CreateGoal(f.student.ID, CreateGoalRequest{ModuleID: "missing", Title: "x"})
	assert.ErrorIs(t, err, util.ErrModuleNotFound)

	g1, err := svc.CreateGoal(f.student.ID, CreateGoalRequest{ModuleID: f.module.ID, Title: "Finish lab 1"})
	require.NoError(t, err)
	_, err = svc.CreateGoal(f.student.ID, CreateGoalRequest{ModuleID: f.module.ID, Title: "Revise pointers"})
	require.NoError(t, err)

	_, err = svc.ToggleGoal(other.ID, g1.ID)
	assert.ErrorIs(t, err, util.ErrPermissionDenied)
	assert.ErrorIs(t, svc.DeleteGoal(other.ID, g1.ID), util.ErrPermissionDenied)

	toggled, err := svc.ToggleGoal(f.student.ID, g1.ID)
	require.NoError(t, err)
	assert.True(t, toggled.Completed)
	assert.NotNil(t, toggled.CompletedAt)
	assert.Equal(t, 100.0, toggled.Progress)

	stats, err := svc.ModuleGoalStats(f.student.ID, f.module.ID)
	require.NoError(t, err)
	assert.Equal(t, GoalStats{Total: 2, Completed: 1, Progress: 50}, stats)

	toggled, err = svc.ToggleGoal(f.student.ID, g1.ID)
	require.NoError(t, err)
	assert.False(t, toggled.Completed)
	assert.Nil(t, toggled.CompletedAt)

	require.NoError(t, svc.DeleteGoal(f.student.ID, g1.ID))
	goals, err := svc.ListGoals(f.student.ID, "")
	require.NoError(t, err)
	assert.Len(t, goals, 1)

	_, err = svc.ToggleGoal(f.student.ID, g1.ID)
	assert.ErrorIs(t, err, util.ErrGoalNotFound)
}
