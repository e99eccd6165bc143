package service

import (
	"fmt"
	"math"
	"time"

	"eduboost_backend/internal/model"
	"eduboost_backend/internal/util"
)

type GoalService struct {
	Goals   GoalRepository
	Modules ModuleRepository

	now func() time.Time
}

func NewGoalService(goals GoalRepository, modules ModuleRepository) *GoalService {
	return &GoalService{Goals: goals, Modules: modules, now: time.Now}
}

type CreateGoalRequest struct {
	ModuleID   string     `json:"moduleId" binding:"required"`
	Title      string     `json:"title" binding:"required,max=255"`
	TargetDate *time.Time `json:"targetDate"`
}

// GoalStats 模块下目标完成情况
type GoalStats struct {
	Total     int     `json:"total"`
	Completed int     `json:"completed"`
	Progress  float64 `json:"progress"`
}

const hoursPerDay = 24

// GoalProgress 已完成为 100；否则按创建日到目标日已过去的天数比例计算，限制在 [0,100]
func GoalProgress(goal model.Goal, now time.Time) float64 {
	if goal.Completed {
		return 100
	}
	if goal.TargetDate == nil {
		return 0
	}

	totalDays := math.Ceil(goal.TargetDate.Sub(goal.CreatedAt).Hours() / hoursPerDay)
	if totalDays <= 0 {
		return 0
	}
	daysRemaining := math.Ceil(goal.TargetDate.Sub(now).Hours() / hoursPerDay)

	pct := (totalDays - daysRemaining) / totalDays * 100
	return math.Max(0, math.Min(100, util.Round(pct, 1)))
}

func (s *GoalService) CreateGoal(studentID string, req CreateGoalRequest) (*model.Goal, error) {
	if _, err := s.Modules.FindByID(req.ModuleID); err != nil {
		return nil, notFound(err, util.ErrModuleNotFound)
	}
	goal := &model.Goal{
		StudentID:  studentID,
		ModuleID:   req.ModuleID,
		Title:      req.Title,
		TargetDate: req.TargetDate,
	}
	if err := s.Goals.Create(goal); err != nil {
		return nil, fmt.Errorf("create goal: %w", err)
	}
	goal.Progress = GoalProgress(*goal, s.now())
	return goal, nil
}

// ListGoals 返回时按当前时间重新计算进度
func (s *GoalService) ListGoals(studentID, moduleID string) ([]model.Goal, error) {
	goals, err := s.Goals.FindByStudent(studentID, moduleID)
	if err != nil {
		return nil, err
	}
	now := s.now()
	for i := range goals {
		goals[i].Progress = GoalProgress(goals[i], now)
	}
	return goals, nil
}

func (s *GoalService) ownedGoal(studentID, goalID string) (*model.Goal, error) {
	goal, err := s.Goals.FindByID(goalID)
	if err != nil {
		return nil, notFound(err, util.ErrGoalNotFound)
	}
	if goal.StudentID != studentID {
		return nil, util.ErrPermissionDenied
	}
	return goal, nil
}

func (s *GoalService) ToggleGoal(studentID, goalID string) (*model.Goal, error) {
	goal, err := s.ownedGoal(studentID, goalID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	goal.Completed = !goal.Completed
	if goal.Completed {
		goal.CompletedAt = &now
	} else {
		goal.CompletedAt = nil
	}
	goal.Progress = GoalProgress(*goal, now)

	if err := s.Goals.Update(goal); err != nil {
		return nil, err
	}
	return goal, nil
}

func (s *GoalService) DeleteGoal(studentID, goalID string) error {
	if _, err := s.ownedGoal(studentID, goalID); err != nil {
		return err
	}
	return s.Goals.Delete(goalID)
}

func (s *GoalService) ModuleGoalStats(studentID, moduleID string) (GoalStats, error) {
	goals, err := s.Goals.FindByStudent(studentID, moduleID)
	if err != nil {
		return GoalStats{}, err
	}
	stats := GoalStats{Total: len(goals)}
	for _, g := range goals {
		if g.Completed {
			stats.Completed++
		}
	}
	if stats.Total > 0 {
		stats.Progress = math.Round(float64(stats.Completed) / float64(stats.Total) * 100)
	}
	return stats, nil
}
