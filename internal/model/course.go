package model

// swagger:model Course
type Course struct {
	BaseModel
	Title          string `gorm:"size:200;not null" json:"title"`
	Description    string `gorm:"type:text" json:"description"`
	InstructorID   uint   `gorm:"index;type:bigint unsigned;not null" json:"instructorId"`
	InstructorName string `gorm:"size:100" json:"instructorName"`
	Category       string `gorm:"size:50;index" json:"category"`
	Level          string `gorm:"size:20" json:"level"`
	Duration       string `gorm:"size:50" json:"duration"`
	Thumbnail      string `gorm:"size:255" json:"thumbnail"`
	VideoURL       string `gorm:"size:255" json:"videoUrl"`
	DepartmentID   *uint  `gorm:"index" json:"departmentId"`
}

func (Course) TableName() string {
	return "courses"
}

// CourseEnrollment 学生选课记录，(course_id, student_id) 唯一
type CourseEnrollment struct {
	BaseModel
	CourseID  uint `gorm:"index:idx_course_student,unique;type:bigint unsigned;not null" json:"courseId"`
	StudentID uint `gorm:"index:idx_course_student,unique;type:bigint unsigned;not null" json:"studentId"`
}

func (CourseEnrollment) TableName() string {
	return "course_enrollments"
}
