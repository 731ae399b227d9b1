package repository

import (
	"errors"
	"lms_backend/internal/model"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ProgressRepository 学习进度存储。
// 所有时间计数器一律用 SQL 原子自增写入（x = x + ?），
// 避免并发会话下读-改-写造成的丢失更新。
type ProgressRepository struct {
	DB *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{DB: db}
}

// GetCourseProgress 不存在时返回 (nil, nil)
func (r *ProgressRepository) GetCourseProgress(userID, courseID uint) (*model.CourseProgress, error) {
	var cp model.CourseProgress
	err := r.DB.Preload("Lessons").
		Where("user_id = ? AND course_id = ?", userID, courseID).
		First(&cp).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cp, nil
}

func (r *ProgressRepository) ListCourseProgressByUser(userID uint) ([]model.CourseProgress, error) {
	var list []model.CourseProgress
	err := r.DB.Preload("Lessons").
		Where("user_id = ?", userID).
		Order("last_accessed_at DESC").
		Find(&list).Error
	return list, err
}

// CreateCourseProgress 选课初始化：进度主记录和每课时子记录在一个事务里创建
func (r *ProgressRepository) CreateCourseProgress(cp *model.CourseProgress, lessonIDs []uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(cp).Error; err != nil {
			return err
		}

		if len(lessonIDs) == 0 {
			return nil
		}

		entries := make([]model.LessonProgress, len(lessonIDs))
		for i, lessonID := range lessonIDs {
			entries[i] = model.LessonProgress{
				CourseProgressID: cp.ID,
				LessonID:         lessonID,
			}
		}
		return tx.CreateInBatches(entries, 100).Error
	})
}

// GetLessonProgress 不存在时返回 (nil, nil)
func (r *ProgressRepository) GetLessonProgress(courseProgressID, lessonID uint) (*model.LessonProgress, error) {
	var lp model.LessonProgress
	err := r.DB.Where("course_progress_id = ? AND lesson_id = ?", courseProgressID, lessonID).
		First(&lp).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &lp, nil
}

func (r *ProgressRepository) ListLessonProgress(courseProgressID uint) ([]model.LessonProgress, error) {
	var list []model.LessonProgress
	err := r.DB.Where("course_progress_id = ?", courseProgressID).
		Order("id ASC").Find(&list).Error
	return list, err
}

func (r *ProgressRepository) AddLessonWatchTime(courseProgressID, lessonID uint, seconds, position int) error {
	return r.DB.Model(&model.LessonProgress{}).
		Where("course_progress_id = ? AND lesson_id = ?", courseProgressID, lessonID).
		Updates(map[string]interface{}{
			"video_watch_time":    gorm.Expr("video_watch_time + ?", seconds),
			"time_spent":          gorm.Expr("time_spent + ?", seconds),
			"last_watch_position": position,
		}).Error
}

// SaveLessonCompletion completedAt 为 nil 时不触碰 completed_at 列（完成时间从不清除）
func (r *ProgressRepository) SaveLessonCompletion(courseProgressID, lessonID uint, completed bool, completedAt *time.Time, additionalTime int) error {
	updates := map[string]interface{}{
		"completed":  completed,
		"time_spent": gorm.Expr("time_spent + ?", additionalTime),
	}
	if completedAt != nil {
		updates["completed_at"] = *completedAt
	}

	return r.DB.Model(&model.LessonProgress{}).
		Where("course_progress_id = ? AND lesson_id = ?", courseProgressID, lessonID).
		Updates(updates).Error
}

func (r *ProgressRepository) TouchCourseActivity(courseProgressID uint, addSeconds, streak int, activityAt time.Time) error {
	return r.DB.Model(&model.CourseProgress{}).
		Where("id = ?", courseProgressID).
		Updates(map[string]interface{}{
			"total_time_spent":   gorm.Expr("total_time_spent + ?", addSeconds),
			"last_accessed_at":   activityAt,
			"last_activity_date": activityAt.Format("2006-01-02"),
			"current_streak":     streak,
		}).Error
}

func (r *ProgressRepository) SaveCourseAggregates(courseProgressID uint, addSeconds, completionPercentage, streak int, achievements []string, activityAt time.Time) error {
	return r.DB.Model(&model.CourseProgress{}).
		Where("id = ?", courseProgressID).
		Updates(map[string]interface{}{
			"total_time_spent":      gorm.Expr("total_time_spent + ?", addSeconds),
			"last_accessed_at":      activityAt,
			"last_activity_date":    activityAt.Format("2006-01-02"),
			"current_streak":        streak,
			"completion_percentage": completionPercentage,
			"achievements":          datatypes.JSONSlice[string](achievements),
		}).Error
}
