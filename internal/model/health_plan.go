package model

import (
	"time"

	"gorm.io/datatypes"
)

// HealthPlan 学生最近一次健康自评生成的建议，每个学生只保留一份
type HealthPlan struct {
	UUIDBase
	StudentID            string         `gorm:"uniqueIndex;type:varchar(36);not null" json:"studentId"`
	Mood                 string         `gorm:"size:20" json:"mood"`
	StressLevel          int            `json:"stressLevel"`
	ProcrastinationLevel int            `json:"procrastinationLevel"`
	SleepHours           float64        `json:"sleepHours"`
	Confidence           float64        `json:"confidence"`
	Result               datatypes.JSON `gorm:"type:json" json:"result"`
	LastUpdated          time.Time      `json:"lastUpdated"`
}

func (HealthPlan) TableName() string {
	return "health_plans"
}
