package repository

import (
	"lms_backend/internal/model"

	"gorm.io/gorm"
)

type WorkshopRepository struct {
	DB *gorm.DB
}

func NewWorkshopRepository(db *gorm.DB) *WorkshopRepository {
	return &WorkshopRepository{DB: db}
}

func (r *WorkshopRepository) Create(workshop *model.Workshop) error {
	return r.DB.Create(workshop).Error
}

func (r *WorkshopRepository) FindByID(id uint) (*model.Workshop, error) {
	var workshop model.Workshop
	err := r.DB.Preload("Sessions").First(&workshop, id).Error
	return &workshop, err
}

func (r *WorkshopRepository) List() ([]model.Workshop, error) {
	var workshops []model.Workshop
	err := r.DB.Preload("Sessions").Order("created_at DESC").Find(&workshops).Error
	return workshops, err
}

func (r *WorkshopRepository) ListByDepartment(departmentID uint) ([]model.Workshop, error) {
	var workshops []model.Workshop
	err := r.DB.Preload("Sessions").
		Where("department_id = ?", departmentID).
		Order("created_at DESC").Find(&workshops).Error
	return workshops, err
}

func (r *WorkshopRepository) ListByInstructor(instructorID uint) ([]model.Workshop, error) {
	var workshops []model.Workshop
	err := r.DB.Preload("Sessions").
		Where("instructor_id = ?", instructorID).
		Order("created_at DESC").Find(&workshops).Error
	return workshops, err
}

func (r *WorkshopRepository) ListByStudent(studentID uint) ([]model.Workshop, error) {
	var workshops []model.Workshop
	err := r.DB.Preload("Sessions").
		Joins("JOIN workshop_enrollments ON workshop_enrollments.workshop_id = workshops.id").
		Where("workshop_enrollments.student_id = ? AND workshop_enrollments.deleted_at IS NULL", studentID).
		Order("workshop_enrollments.created_at DESC").
		Find(&workshops).Error
	return workshops, err
}

func (r *WorkshopRepository) Update(workshop *model.Workshop) error {
	return r.DB.Omit("Sessions").Save(workshop).Error
}

// ReplaceSessions 更新场次采用整体替换语义：删除旧场次后插入新场次
func (r *WorkshopRepository) ReplaceSessions(workshopID uint, sessions []model.WorkshopSession) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("workshop_id = ?", workshopID).
			Delete(&model.WorkshopSession{}).Error; err != nil {
			return err
		}

		for i := range sessions {
			sessions[i].ID = 0
			sessions[i].WorkshopID = workshopID
		}
		if len(sessions) == 0 {
			return nil
		}
		return tx.Create(&sessions).Error
	})
}

func (r *WorkshopRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("workshop_id = ?", id).Delete(&model.WorkshopSession{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Workshop{}, id).Error
	})
}

func (r *WorkshopRepository) CountByDepartment(departmentID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Workshop{}).
		Where("department_id = ?", departmentID).
		Count(&count).Error
	return count, err
}

func (r *WorkshopRepository) CreateEnrollment(enrollment *model.WorkshopEnrollment) error {
	return r.DB.Create(enrollment).Error
}

func (r *WorkshopRepository) IsEnrolled(workshopID, studentID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.WorkshopEnrollment{}).
		Where("workshop_id = ? AND student_id = ?", workshopID, studentID).
		Count(&count).Error
	return count > 0, err
}

func (r *WorkshopRepository) CountEnrollments(workshopID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.WorkshopEnrollment{}).
		Where("workshop_id = ?", workshopID).
		Count(&count).Error
	return count, err
}

func (r *WorkshopRepository) ListEnrolledStudentIDs(workshopID uint) ([]uint, error) {
	var ids []uint
	err := r.DB.Model(&model.WorkshopEnrollment{}).
		Where("workshop_id = ?", workshopID).
		Pluck("student_id", &ids).Error
	return ids, err
}

func (r *WorkshopRepository) FindSession(workshopID, sessionID uint) (*model.WorkshopSession, error) {
	var session model.WorkshopSession
	err := r.DB.Where("id = ? AND workshop_id = ?", sessionID, workshopID).
		First(&session).Error
	return &session, err
}

func (r *WorkshopRepository) UpdateSessionLive(sessionID uint, isLive bool, vimeoLiveURL string) error {
	return r.DB.Model(&model.WorkshopSession{}).
		Where("id = ?", sessionID).
		Updates(map[string]interface{}{
			"is_live":        isLive,
			"vimeo_live_url": vimeoLiveURL,
		}).Error
}
