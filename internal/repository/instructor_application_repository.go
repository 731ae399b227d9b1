package repository

import (
	"errors"
	"lms_backend/internal/model"

	"gorm.io/gorm"
)

type InstructorApplicationRepository struct {
	DB *gorm.DB
}

func NewInstructorApplicationRepository(db *gorm.DB) *InstructorApplicationRepository {
	return &InstructorApplicationRepository{DB: db}
}

func (r *InstructorApplicationRepository) Create(application *model.InstructorApplication) error {
	return r.DB.Create(application).Error
}

func (r *InstructorApplicationRepository) FindByID(id uint) (*model.InstructorApplication, error) {
	var application model.InstructorApplication
	err := r.DB.First(&application, id).Error
	return &application, err
}

// FindPendingByUser 不存在时返回 (nil, nil)
func (r *InstructorApplicationRepository) FindPendingByUser(userID uint) (*model.InstructorApplication, error) {
	var application model.InstructorApplication
	err := r.DB.Where("user_id = ? AND status = ?", userID, model.ApplicationPending).
		First(&application).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &application, nil
}

func (r *InstructorApplicationRepository) List() ([]model.InstructorApplication, error) {
	var applications []model.InstructorApplication
	err := r.DB.Order("created_at DESC").Find(&applications).Error
	return applications, err
}

func (r *InstructorApplicationRepository) ListByStatus(status model.ApplicationStatus) ([]model.InstructorApplication, error) {
	var applications []model.InstructorApplication
	err := r.DB.Where("status = ?", status).
		Order("created_at DESC").Find(&applications).Error
	return applications, err
}

func (r *InstructorApplicationRepository) ListByDepartment(departmentID uint) ([]model.InstructorApplication, error) {
	var applications []model.InstructorApplication
	err := r.DB.Where("department_id = ?", departmentID).
		Order("created_at DESC").Find(&applications).Error
	return applications, err
}

func (r *InstructorApplicationRepository) Update(application *model.InstructorApplication) error {
	return r.DB.Save(application).Error
}
