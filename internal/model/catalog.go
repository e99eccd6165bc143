package model

import "time"

// Program 课程项目（包含若干模块）
type Program struct {
	UUIDBase
	Code        string `gorm:"size:50;index" json:"code"`
	Title       string `gorm:"size:255;not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	EducatorID  string `gorm:"index;type:varchar(36)" json:"educatorId"`
}

func (Program) TableName() string {
	return "programs"
}

type Batch struct {
	UUIDBase
	ProgramID    string     `gorm:"index;type:varchar(36)" json:"programId"`
	Name         string     `gorm:"size:100;not null" json:"name"`
	AcademicYear string     `gorm:"size:20" json:"academicYear"`
	StartDate    *time.Time `json:"startDate,omitempty"`
	EndDate      *time.Time `json:"endDate,omitempty"`
	Instructor   string     `gorm:"size:100" json:"instructor"`
}

func (Batch) TableName() string {
	return "batches"
}

type Module struct {
	UUIDBase
	ProgramID      string `gorm:"index;type:varchar(36)" json:"programId"`
	Code           string `gorm:"size:50;index" json:"code"`
	Title          string `gorm:"size:255;not null" json:"title"`
	Description    string `gorm:"type:text" json:"description"`
	Difficulty     string `gorm:"size:20;default:'intermediate'" json:"difficulty"`
	EstimatedHours int    `gorm:"default:0" json:"estimatedHours"`
}

func (Module) TableName() string {
	return "modules"
}
