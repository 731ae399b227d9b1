package model

type NotificationType string

const (
	NotifyCourseUpdate      NotificationType = "course_update"
	NotifyNewLesson         NotificationType = "new_lesson"
	NotifyAchievement       NotificationType = "achievement"
	NotifyWorkshopLive      NotificationType = "workshop_live"
	NotifyWorkshopUpdate    NotificationType = "workshop_update"
	NotifyCertificateIssued NotificationType = "certificate_issued"
	NotifyEnrollment        NotificationType = "enrollment"
	NotifyApplicationResult NotificationType = "application_reviewed"
)

// swagger:model Notification
type Notification struct {
	BaseModel
	UserID    uint             `gorm:"index;type:bigint unsigned;not null" json:"userId"`
	ItemID    uint             `gorm:"type:bigint unsigned" json:"itemId"`
	ItemTitle string           `gorm:"size:200" json:"itemTitle"`
	ItemType  string           `gorm:"size:20" json:"itemType"` // course | workshop | application
	Type      NotificationType `gorm:"size:30;not null" json:"type"`
	Message   string           `gorm:"size:500" json:"message"`
	IsRead    bool             `gorm:"default:false;index" json:"read"`
}

func (Notification) TableName() string {
	return "notifications"
}
