package model

import (
	"time"

	"eduboost_backend/internal/grading"
)

// swagger:model Assessment
type Assessment struct {
	UUIDBase
	ModuleID   string                 `gorm:"index;type:varchar(36);not null" json:"moduleId"`
	EducatorID string                 `gorm:"index;type:varchar(36)" json:"educatorId"`
	Title      string                 `gorm:"size:255;not null" json:"title"`
	Type       grading.AssessmentType `gorm:"size:20;not null" json:"type"`
	MaxScore   float64                `gorm:"default:100" json:"maxScore"`
	DueDate    *time.Time             `json:"dueDate,omitempty"`
}

func (Assessment) TableName() string {
	return "assessments"
}

// AssignmentTemplate 模块下的作业模板，激活后对已选课学生可见
type AssignmentTemplate struct {
	UUIDBase
	ModuleID     string     `gorm:"index;type:varchar(36);not null" json:"moduleId"`
	Title        string     `gorm:"size:255;not null" json:"title"`
	Description  string     `gorm:"type:text" json:"description"`
	MaxScore     float64    `gorm:"default:100" json:"maxScore"`
	ReferenceURL string     `gorm:"size:512" json:"referenceUrl,omitempty"`
	IsActive     bool       `gorm:"default:false;index" json:"isActive"`
	ActivatedAt  *time.Time `json:"activatedAt,omitempty"`
	ActivatedBy  string     `gorm:"type:varchar(36)" json:"activatedBy,omitempty"`
	DueDate      *time.Time `json:"dueDate,omitempty"`
}

func (AssignmentTemplate) TableName() string {
	return "assignment_templates"
}
