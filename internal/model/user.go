package model

import "time"

type UserRole string

const (
	Student  UserRole = "student"
	Educator UserRole = "educator"
	Admin    UserRole = "admin"
)

// swagger:model User
type User struct {
	UUIDBase
	FirstName      string     `gorm:"size:100;not null" json:"firstName"`
	LastName       string     `gorm:"size:100" json:"lastName"`
	Email          string     `gorm:"size:100;unique;not null" json:"email"`
	Password       string     `gorm:"size:100;not null" json:"-"`
	Role           UserRole   `gorm:"type:enum('student','educator','admin');default:'student'" json:"role"`
	Approved       bool       `gorm:"default:false" json:"approved"`
	ProfileImage   string     `gorm:"size:255" json:"profileImage"`
	CurrentBatchID *string    `gorm:"type:varchar(36)" json:"currentBatchId,omitempty"`
	LastLogin      *time.Time `json:"lastLogin,omitempty"`
	LastSeen       *time.Time `json:"lastSeen,omitempty"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
