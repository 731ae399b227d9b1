package repository

import (
	"errors"
	"lms_backend/internal/model"

	"gorm.io/gorm"
)

type CertificateRepository struct {
	DB *gorm.DB
}

func NewCertificateRepository(db *gorm.DB) *CertificateRepository {
	return &CertificateRepository{DB: db}
}

func (r *CertificateRepository) Create(cert *model.Certificate) error {
	return r.DB.Create(cert).Error
}

// FindByWorkshopAndStudent 不存在时返回 (nil, nil)
func (r *CertificateRepository) FindByWorkshopAndStudent(workshopID, studentID uint) (*model.Certificate, error) {
	var cert model.Certificate
	err := r.DB.Where("workshop_id = ? AND student_id = ?", workshopID, studentID).
		First(&cert).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cert, nil
}

func (r *CertificateRepository) List() ([]model.Certificate, error) {
	var certs []model.Certificate
	err := r.DB.Order("issued_at DESC").Find(&certs).Error
	return certs, err
}

func (r *CertificateRepository) ListByStudent(studentID uint) ([]model.Certificate, error) {
	var certs []model.Certificate
	err := r.DB.Where("student_id = ?", studentID).
		Order("issued_at DESC").Find(&certs).Error
	return certs, err
}

func (r *CertificateRepository) ListByWorkshop(workshopID uint) ([]model.Certificate, error) {
	var certs []model.Certificate
	err := r.DB.Where("workshop_id = ?", workshopID).
		Order("issued_at DESC").Find(&certs).Error
	return certs, err
}
