package model

import (
	"time"

	"gorm.io/datatypes"
)

// CourseProgress 每个 (user, course) 一条，记录选课后的学习进度聚合。
// completion_percentage 永远是派生值，随课时完成状态变更重算；
// achievements 只增不减。
// swagger:model CourseProgress
type CourseProgress struct {
	BaseModel
	UserID               uint                         `gorm:"index:idx_user_course,unique;type:bigint unsigned;not null" json:"userId"`
	CourseID             uint                         `gorm:"index:idx_user_course,unique;type:bigint unsigned;not null" json:"courseId"`
	EnrolledAt           time.Time                    `gorm:"not null" json:"enrolledAt"`
	LastAccessedAt       time.Time                    `gorm:"not null" json:"lastAccessedAt"`
	TotalTimeSpent       int                          `gorm:"default:0" json:"totalTimeSpent"` // 秒
	CompletionPercentage int                          `gorm:"default:0" json:"completionPercentage"`
	CurrentStreak        int                          `gorm:"default:1" json:"currentStreak"` // 连续学习天数
	LastActivityDate     *time.Time                   `gorm:"type:date" json:"lastActivityDate"`
	Achievements         datatypes.JSONSlice[string]  `json:"achievements"`
	Lessons              []LessonProgress             `gorm:"foreignKey:CourseProgressID" json:"lessons"`
}

func (CourseProgress) TableName() string {
	return "course_progress"
}

// LessonProgress 每个课时一条，随 CourseProgress 初始化时批量创建。
// time_spent / video_watch_time 单调递增；last_watch_position 反映拖动位置。
type LessonProgress struct {
	BaseModel
	CourseProgressID  uint       `gorm:"index:idx_progress_lesson,unique;type:bigint unsigned;not null" json:"-"`
	LessonID          uint       `gorm:"index:idx_progress_lesson,unique;type:bigint unsigned;not null" json:"lessonId"`
	Completed         bool       `gorm:"default:false" json:"completed"`
	CompletedAt       *time.Time `json:"completedAt"`
	TimeSpent         int        `gorm:"default:0" json:"timeSpent"`         // 秒
	VideoWatchTime    int        `gorm:"default:0" json:"videoWatchTime"`    // 秒，实际播放时长
	LastWatchPosition int        `gorm:"default:0" json:"lastWatchPosition"` // 秒，播放偏移
}

func (LessonProgress) TableName() string {
	return "lesson_progress"
}
