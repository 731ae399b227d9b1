package repository

import (
	"lms_backend/internal/model"

	"gorm.io/gorm"
)

type LessonRepository struct {
	DB *gorm.DB
}

func NewLessonRepository(db *gorm.DB) *LessonRepository {
	return &LessonRepository{DB: db}
}

func (r *LessonRepository) Create(lesson *model.Lesson) error {
	return r.DB.Create(lesson).Error
}

func (r *LessonRepository) FindByID(id uint) (*model.Lesson, error) {
	var lesson model.Lesson
	err := r.DB.First(&lesson, id).Error
	return &lesson, err
}

func (r *LessonRepository) ListByCourse(courseID uint) ([]model.Lesson, error) {
	var lessons []model.Lesson
	err := r.DB.Where("course_id = ?", courseID).
		Order("order_index ASC").Find(&lessons).Error
	return lessons, err
}

func (r *LessonRepository) ListIDsByCourse(courseID uint) ([]uint, error) {
	var ids []uint
	err := r.DB.Model(&model.Lesson{}).
		Where("course_id = ?", courseID).
		Order("order_index ASC").
		Pluck("id", &ids).Error
	return ids, err
}

func (r *LessonRepository) Update(lesson *model.Lesson) error {
	return r.DB.Save(lesson).Error
}

func (r *LessonRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Lesson{}, id).Error
}

// Reorder 按给定顺序重排课时，order_index 从1开始
func (r *LessonRepository) Reorder(courseID uint, lessonIDs []uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		for i, lessonID := range lessonIDs {
			err := tx.Model(&model.Lesson{}).
				Where("id = ? AND course_id = ?", lessonID, courseID).
				Update("order_index", i+1).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}
