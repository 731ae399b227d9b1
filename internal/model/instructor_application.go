package model

import "time"

type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "pending"
	ApplicationApproved ApplicationStatus = "approved"
	ApplicationRejected ApplicationStatus = "rejected"
)

// InstructorApplication 学生申请成为讲师的工单
// swagger:model InstructorApplication
type InstructorApplication struct {
	BaseModel
	UserID       uint              `gorm:"index;type:bigint unsigned;not null" json:"userId"`
	UserName     string            `gorm:"size:100" json:"userName"`
	Email        string            `gorm:"size:100" json:"email"`
	DepartmentID *uint             `gorm:"index" json:"departmentId"`
	Motivation   string            `gorm:"type:text" json:"motivation"`
	Status       ApplicationStatus `gorm:"type:enum('pending','approved','rejected');default:'pending';index" json:"status"`
	ReviewedBy   *uint             `json:"reviewedBy"`
	ReviewedAt   *time.Time        `json:"reviewedAt"`
}

func (InstructorApplication) TableName() string {
	return "instructor_applications"
}
