package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"eduboost_backend/internal/model"
	"eduboost_backend/internal/util"

	"github.com/go-playground/validator/v10"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type HealthCheckInput struct {
	Mood                 string  `json:"mood" validate:"required,oneof=happy neutral stressed sad"`
	StressLevel          int     `json:"stressLevel" validate:"min=1,max=5"`
	ProcrastinationLevel int     `json:"procrastinationLevel" validate:"min=1,max=5"`
	SleepHours           float64 `json:"sleepHours" validate:"min=0,max=24"`
}

type HealthMetrics struct {
	StudyHours        float64 `json:"studyHours"`
	ExerciseMinutes   float64 `json:"exerciseMinutes"`
	SleepHours        float64 `json:"sleepHours"`
	WaterLiters       float64 `json:"waterLiters"`
	MeditationMinutes float64 `json:"meditationMinutes"`
	ScreenLimitHours  float64 `json:"screenLimitHours"`
}

type HealthRecommendations struct {
	StudyPlan     []string `json:"studyPlan"`
	PhysicalPlan  []string `json:"physicalPlan"`
	EmotionalPlan []string `json:"emotionalPlan"`
}

type HealthAnalysis struct {
	HealthCheckInput
	StressCategory string `json:"stressCategory"`
	SleepQuality   string `json:"sleepQuality"`
}

type HealthResult struct {
	InputAnalysis   HealthAnalysis        `json:"inputAnalysis"`
	Recommendations HealthRecommendations `json:"recommendations"`
	Metrics         HealthMetrics         `json:"metrics"`
	Confidence      float64               `json:"confidence"`
}

type HealthService struct {
	Plans    HealthPlanRepository
	validate *validator.Validate
	now      func() time.Time
}

func NewHealthService(plans HealthPlanRepository) *HealthService {
	return &HealthService{Plans: plans, validate: validator.New(), now: time.Now}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func healthMetrics(stress, procrastination int) HealthMetrics {
	s, p := float64(stress), float64(procrastination)
	return HealthMetrics{
		StudyHours:        util.Round(math.Max(1, 20-s*1.5-p*1.0), 1),
		ExerciseMinutes:   math.Round(math.Min(120, 30+s*5)),
		SleepHours:        util.Round(clamp(8-s*0.3, 6, 10), 1),
		WaterLiters:       util.Round(clamp(2.5+s*0.2, 1.5, 4), 1),
		MeditationMinutes: math.Round(math.Min(60, 10+s*3)),
		ScreenLimitHours:  util.Round(clamp(6-s*0.5, 2, 8), 1),
	}
}

func healthRecommendations(mood string, stress, procrastination int) HealthRecommendations {
	var r HealthRecommendations

	switch {
	case procrastination >= 4:
		r.StudyPlan = []string{
			"Break study sessions into 25-minute focused blocks (Pomodoro Technique)",
			"Use a timer and reward yourself after each session",
			"Start with the easiest task to build momentum",
		}
	case procrastination >= 3:
		r.StudyPlan = []string{
			"Schedule specific study times and stick to them",
			"Remove distractions from your study environment",
		}
	default:
		r.StudyPlan = []string{
			"Maintain your current good study habits",
			"Consider teaching others to reinforce your learning",
		}
	}

	switch {
	case stress >= 4:
		r.PhysicalPlan = []string{
			"Try high-intensity interval training (HIIT) for quick stress relief",
			"Take regular walking breaks during study sessions",
			"Practice deep breathing exercises",
		}
	case stress >= 3:
		r.PhysicalPlan = []string{
			"Incorporate moderate cardio like jogging or cycling",
			"Try yoga or stretching routines",
		}
	default:
		r.PhysicalPlan = []string{
			"Maintain regular physical activity",
			"Try new sports or activities for variety",
		}
	}

	switch {
	case mood == "stressed" || stress >= 4:
		r.EmotionalPlan = []string{
			"Practice mindfulness meditation daily",
			"Connect with friends or family for support",
			"Consider journaling to process your thoughts",
		}
	case mood == "sad":
		r.EmotionalPlan = []string{
			"Engage in activities you enjoy",
			"Spend time in nature or sunlight",
			"Reach out to someone you trust",
		}
	default:
		r.EmotionalPlan = []string{
			"Continue positive habits that support your well-being",
			"Practice gratitude daily",
		}
	}
	return r
}

func stressCategory(stress int) string {
	switch {
	case stress <= 2:
		return "Low stress - well managed"
	case stress <= 3:
		return "Moderate stress - manageable"
	case stress <= 4:
		return "High stress - needs attention"
	default:
		return "Very high stress - seek support"
	}
}

func sleepQuality(hours float64) string {
	switch {
	case hours < 6:
		return "Insufficient sleep"
	case hours < 7:
		return "Below recommended"
	case hours <= 9:
		return "Good sleep duration"
	default:
		return "Excessive sleep"
	}
}

func healthConfidence(stress, procrastination int) float64 {
	c := 0.85 - float64(stress-3)*0.05 - float64(procrastination-3)*0.03
	return util.Round(clamp(c, 0.5, 1.0), 3)
}

// Evaluate 根据自评生成建议，不落库
func (s *HealthService) Evaluate(input HealthCheckInput) (*HealthResult, error) {
	input.Mood = strings.ToLower(strings.TrimSpace(input.Mood))
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrInvalidHealthInput, err)
	}

	return &HealthResult{
		InputAnalysis: HealthAnalysis{
			HealthCheckInput: input,
			StressCategory:   stressCategory(input.StressLevel),
			SleepQuality:     sleepQuality(input.SleepHours),
		},
		Recommendations: healthRecommendations(input.Mood, input.StressLevel, input.ProcrastinationLevel),
		Metrics:         healthMetrics(input.StressLevel, input.ProcrastinationLevel),
		Confidence:      healthConfidence(input.StressLevel, input.ProcrastinationLevel),
	}, nil
}

// SubmitHealthCheck 每个学生只保留最新的一份计划
func (s *HealthService) SubmitHealthCheck(studentID string, input HealthCheckInput) (*model.HealthPlan, *HealthResult, error) {
	result, err := s.Evaluate(input)
	if err != nil {
		return nil, nil, err
	}
	raw, err := json.Marshal(result)
	if err != nil {
		return nil, nil, err
	}

	plan, err := s.Plans.FindByStudent(studentID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, err
		}
		plan = &model.HealthPlan{StudentID: studentID}
	}

	in := result.InputAnalysis
	plan.Mood = in.Mood
	plan.StressLevel = in.StressLevel
	plan.ProcrastinationLevel = in.ProcrastinationLevel
	plan.SleepHours = in.SleepHours
	plan.Confidence = result.Confidence
	plan.Result = datatypes.JSON(raw)
	plan.LastUpdated = s.now()

	if err := s.Plans.Save(plan); err != nil {
		return nil, nil, fmt.Errorf("save health plan: %w", err)
	}
	return plan, result, nil
}

// CurrentHealthPlan 没有记录时返回 nil, nil
func (s *HealthService) CurrentHealthPlan(studentID string) (*model.HealthPlan, error) {
	plan, err := s.Plans.FindByStudent(studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return plan, nil
}
