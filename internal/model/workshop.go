package model

import "time"

type WorkshopStatus string

const (
	WorkshopUpcoming  WorkshopStatus = "upcoming"
	WorkshopOngoing   WorkshopStatus = "ongoing"
	WorkshopCompleted WorkshopStatus = "completed"
)

// swagger:model Workshop
type Workshop struct {
	BaseModel
	Title          string            `gorm:"size:200;not null" json:"title"`
	Description    string            `gorm:"type:text" json:"description"`
	InstructorID   uint              `gorm:"index;type:bigint unsigned;not null" json:"instructorId"`
	InstructorName string            `gorm:"size:100" json:"instructorName"`
	Category       string            `gorm:"size:50" json:"category"`
	Thumbnail      string            `gorm:"size:255" json:"thumbnail"`
	MaxStudents    int               `gorm:"default:30" json:"maxStudents"`
	Status         WorkshopStatus    `gorm:"type:enum('upcoming','ongoing','completed');default:'upcoming'" json:"status"`
	DepartmentID   *uint             `gorm:"index;not null" json:"departmentId"`
	Sessions       []WorkshopSession `gorm:"foreignKey:WorkshopID" json:"sessions"`
}

func (Workshop) TableName() string {
	return "workshops"
}

// WorkshopSession 工作坊场次，可标记为直播中
type WorkshopSession struct {
	BaseModel
	WorkshopID   uint      `gorm:"index;type:bigint unsigned;not null" json:"workshopId"`
	Date         time.Time `gorm:"type:date;not null" json:"date"`
	StartTime    string    `gorm:"size:10" json:"startTime"`
	EndTime      string    `gorm:"size:10" json:"endTime"`
	VimeoLiveURL string    `gorm:"size:255" json:"vimeoLiveUrl"`
	IsLive       bool      `gorm:"default:false" json:"isLive"`
}

func (WorkshopSession) TableName() string {
	return "workshop_sessions"
}

// WorkshopEnrollment 工作坊报名记录，(workshop_id, student_id) 唯一
type WorkshopEnrollment struct {
	BaseModel
	WorkshopID uint `gorm:"index:idx_workshop_student,unique;type:bigint unsigned;not null" json:"workshopId"`
	StudentID  uint `gorm:"index:idx_workshop_student,unique;type:bigint unsigned;not null" json:"studentId"`
}

func (WorkshopEnrollment) TableName() string {
	return "workshop_enrollments"
}
