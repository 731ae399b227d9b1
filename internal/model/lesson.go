package model

// swagger:model Lesson
type Lesson struct {
	BaseModel
	CourseID    uint   `gorm:"index;type:bigint unsigned;not null" json:"courseId"`
	Title       string `gorm:"size:200;not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	VideoURL    string `gorm:"size:255" json:"videoUrl"`
	Thumbnail   string `gorm:"size:255" json:"thumbnail"`
	Duration    string `gorm:"size:50" json:"duration"`
	OrderIndex  int    `gorm:"default:0;index" json:"orderIndex"`
}

func (Lesson) TableName() string {
	return "lessons"
}
