package model

import (
	"time"
)

type UserRole string

const (
	Student         UserRole = "student"
	Instructor      UserRole = "instructor"
	DepartmentAdmin UserRole = "department_admin"
	SuperAdmin      UserRole = "super_admin"
)

// swagger:model User
type User struct {
	BaseModel
	Name         string    `gorm:"size:100;not null" json:"name"`
	Email        string    `gorm:"size:100;unique;not null" json:"email"`
	Password     string    `gorm:"size:100;not null" json:"-"`
	Role         UserRole  `gorm:"type:enum('student','instructor','department_admin','super_admin');default:'student'" json:"role"`
	DepartmentID *uint     `gorm:"index" json:"departmentId"`
	Language     string    `gorm:"size:10;default:'en'" json:"language"`
	Avatar       string    `gorm:"size:255" json:"avatar"`
	Disabled     bool      `gorm:"default:false" json:"disabled"`
	LastLogin    time.Time `gorm:"default:CURRENT_TIMESTAMP(3)" json:"lastLogin"`
	LastSeen     time.Time `gorm:"default:CURRENT_TIMESTAMP(3)" json:"lastSeen"`
}

func (User) TableName() string {
	return "users"
}
