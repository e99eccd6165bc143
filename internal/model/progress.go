package model

import (
	"time"

	"eduboost_backend/internal/grading"
)

// StudentProgress 一条考核成绩记录，是模块完成度计算的唯一数据源
type StudentProgress struct {
	UUIDBase
	StudentID      string                 `gorm:"index:idx_progress_student_module;type:varchar(36);not null" json:"studentId"`
	ModuleID       string                 `gorm:"index:idx_progress_student_module;type:varchar(36);not null" json:"moduleId"`
	AssessmentID   string                 `gorm:"index;type:varchar(36);not null" json:"assessmentId"`
	AssessmentType grading.AssessmentType `gorm:"size:20" json:"assessmentType"`
	Score          float64                `json:"score"`
	MaxScore       float64                `json:"maxScore"`
	Feedback       string                 `gorm:"type:text" json:"feedback,omitempty"`
	GradedBy       string                 `gorm:"type:varchar(36)" json:"gradedBy"`
	GraderName     string                 `gorm:"size:200" json:"graderName"`
	GradedAt       time.Time              `json:"gradedAt"`
}

func (StudentProgress) TableName() string {
	return "student_progress"
}

func (p StudentProgress) Record() grading.AssessmentRecord {
	return grading.AssessmentRecord{
		StudentID:      p.StudentID,
		ModuleID:       p.ModuleID,
		AssessmentID:   p.AssessmentID,
		AssessmentType: p.AssessmentType,
		Score:          p.Score,
		MaxScore:       p.MaxScore,
	}
}

type MarksStatus string

const (
	MarksCompleted  MarksStatus = "completed"
	MarksInProgress MarksStatus = "in_progress"
)

// ModuleMarks 教师直接录入的模块总评（0-100），每个学生每个模块一条
type ModuleMarks struct {
	UUIDBase
	StudentID     string      `gorm:"uniqueIndex:idx_marks_student_module;type:varchar(36);not null" json:"studentId"`
	ModuleID      string      `gorm:"uniqueIndex:idx_marks_student_module;type:varchar(36);not null" json:"moduleId"`
	Marks         float64     `json:"marks"`
	Status        MarksStatus `gorm:"size:20" json:"status"`
	AttemptNumber int         `gorm:"default:1" json:"attemptNumber"`
	GradedBy      string      `gorm:"type:varchar(36)" json:"gradedBy"`
	GraderName    string      `gorm:"size:200" json:"graderName"`
	GradedAt      time.Time   `json:"gradedAt"`
}

func (ModuleMarks) TableName() string {
	return "module_marks"
}
