package service

import (
	"encoding/json"
	"testing"

	"eduboost_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluateHighStress(t *testing.T) {
	svc := NewHealthService(newRepos().HealthPlans)

	res, err := svc.Evaluate(HealthCheckInput{Mood: "Stressed", StressLevel: 5, ProcrastinationLevel: 4, SleepHours: 5})
	require.NoError(t, err)

	assert.Equal(t, HealthMetrics{
		StudyHours:        8.5,
		ExerciseMinutes:   55,
		SleepHours:        6.5,
		WaterLiters:       3.5,
		MeditationMinutes: 25,
		ScreenLimitHours:  3.5,
	}, res.Metrics)
	assert.Equal(t, "stressed", res.InputAnalysis.Mood)
	assert.Equal(t, "Very high stress - seek support", res.InputAnalysis.StressCategory)
	assert.Equal(t, "Insufficient sleep", res.InputAnalysis.SleepQuality)
	assert.Len(t, res.Recommendations.StudyPlan, 3)
	assert.Len(t, res.Recommendations.PhysicalPlan, 3)
	assert.Contains(t, res.Recommendations.EmotionalPlan, "Practice mindfulness meditation daily")
	assert.Equal(t, 0.72, res.Confidence)
}

func TestEvaluateLowStress(t *testing.T) {
	svc := NewHealthService(newRepos().HealthPlans)

	res, err := svc.Evaluate(HealthCheckInput{Mood: "sad", StressLevel: 1, ProcrastinationLevel: 1, SleepHours: 8})
	require.NoError(t, err)
	assert.Equal(t, 17.5, res.Metrics.StudyHours)
	assert.Equal(t, 7.7, res.Metrics.SleepHours)
	assert.Equal(t, "Good sleep duration", res.InputAnalysis.SleepQuality)
	assert.Contains(t, res.Recommendations.EmotionalPlan, "Reach out to someone you trust")
	assert.Equal(t, 1.0, res.Confidence)
}

func TestEvaluateRejectsInvalidInput(t *testing.T) {
	svc := NewHealthService(newRepos().HealthPlans)
	cases := []HealthCheckInput{
		{Mood: "angry", StressLevel: 3, ProcrastinationLevel: 3, SleepHours: 7},
		{Mood: "happy", StressLevel: 0, ProcrastinationLevel: 3, SleepHours: 7},
		{Mood: "happy", StressLevel: 3, ProcrastinationLevel: 6, SleepHours: 7},
		{Mood: "happy", StressLevel: 3, ProcrastinationLevel: 3, SleepHours: 25},
	}
	for _, in := range cases {
		_, err := svc.Evaluate(in)
		assert.ErrorIs(t, err, util.ErrInvalidHealthInput, "%+v", in)
	}
}

func TestSubmitHealthCheckKeepsLatestPlan(t *testing.T) {
	svc := NewHealthService(newRepos().HealthPlans)

	plan, err := svc.CurrentHealthPlan("stu-1")
	require.NoError(t, err)
	assert.Nil(t, plan)

	first, _, err := svc.SubmitHealthCheck("stu-1", HealthCheckInput{Mood: "happy", StressLevel: 2, ProcrastinationLevel: 2, SleepHours: 8})
	require.NoError(t, err)
	second, res, err := svc.SubmitHealthCheck("stu-1", HealthCheckInput{Mood: "neutral", StressLevel: 4, ProcrastinationLevel: 3, SleepHours: 6.5})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	plan, err = svc.CurrentHealthPlan("stu-1")
	require.NoError(t, err)
	require.NotNil(t, plan)
	assert.Equal(t, "neutral", plan.Mood)
	assert.Equal(t, 4, plan.StressLevel)

	var stored HealthResult
	require.NoError(t, json.Unmarshal(plan.Result, &stored))
	assert.Equal(t, res.Metrics, stored.Metrics)
	assert.Equal(t, "Below recommended", stored.InputAnalysis.SleepQuality)
}
