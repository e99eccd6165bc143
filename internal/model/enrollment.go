package model

import "time"

type EnrollmentStatus string

const (
	EnrollmentActive   EnrollmentStatus = "active"
	EnrollmentWithdrew EnrollmentStatus = "withdrawn"
)

type Enrollment struct {
	UUIDBase
	StudentID  string           `gorm:"index;type:varchar(36);not null" json:"studentId"`
	ProgramID  string           `gorm:"index;type:varchar(36);not null" json:"programId"`
	BatchID    *string          `gorm:"type:varchar(36)" json:"batchId,omitempty"`
	Status     EnrollmentStatus `gorm:"size:20;default:'active'" json:"status"`
	EnrolledAt time.Time        `json:"enrolledAt"`
}

func (Enrollment) TableName() string {
	return "enrollments"
}
