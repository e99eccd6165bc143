package model

import "time"

// Goal 学生在某个模块下的学习目标
type Goal struct {
	UUIDBase
	StudentID   string     `gorm:"index:idx_goal_student_module;type:varchar(36);not null" json:"studentId"`
	ModuleID    string     `gorm:"index:idx_goal_student_module;type:varchar(36)" json:"moduleId"`
	Title       string     `gorm:"size:255;not null" json:"title"`
	TargetDate  *time.Time `json:"targetDate,omitempty"`
	Completed   bool       `gorm:"default:false" json:"completed"`
	Progress    float64    `gorm:"default:0" json:"progress"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

func (Goal) TableName() string {
	return "goals"
}
