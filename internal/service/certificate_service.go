package service

import (
	"fmt"
	"time"

	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/pkg/logger"

	"go.uber.org/zap"
)

type CertificateService struct {
	CertificateRepo *repository.CertificateRepository
	WorkshopRepo    *repository.WorkshopRepository
	UserRepo        *repository.UserRepository
	Notifications   *NotificationService
}

func NewCertificateService(
	certificateRepo *repository.CertificateRepository,
	workshopRepo *repository.WorkshopRepository,
	userRepo *repository.UserRepository,
	notifications *NotificationService,
) *CertificateService {
	return &CertificateService{
		CertificateRepo: certificateRepo,
		WorkshopRepo:    workshopRepo,
		UserRepo:        userRepo,
		Notifications:   notifications,
	}
}

// IssueResult 批量颁发的结果汇总
type IssueResult struct {
	Issued  []model.Certificate `json:"issued"`
	Skipped []uint              `json:"skipped"` // 已持有证书的学生
}

// IssueCertificates 给工作坊学员批量颁发结业证书。
// studentIDs 为空时对全部已报名学生颁发；已有证书的学生跳过，不重复发。
func (s *CertificateService) IssueCertificates(workshopID uint, studentIDs []uint) (*IssueResult, error) {
	workshop, err := s.WorkshopRepo.FindByID(workshopID)
	if err != nil {
		return nil, err
	}

	if len(studentIDs) == 0 {
		studentIDs, err = s.WorkshopRepo.ListEnrolledStudentIDs(workshopID)
		if err != nil {
			return nil, err
		}
	}

	students, err := s.UserRepo.FindByIDs(studentIDs)
	if err != nil {
		return nil, err
	}
	nameByID := make(map[uint]string, len(students))
	for _, u := range students {
		nameByID[u.ID] = u.Name
	}

	result := &IssueResult{}
	now := time.Now()

	for _, studentID := range studentIDs {
		existing, err := s.CertificateRepo.FindByWorkshopAndStudent(workshopID, studentID)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			result.Skipped = append(result.Skipped, studentID)
			continue
		}

		cert := model.Certificate{
			SerialNumber:   model.GenerateUUID(),
			WorkshopID:     workshopID,
			StudentID:      studentID,
			WorkshopTitle:  workshop.Title,
			StudentName:    nameByID[studentID],
			InstructorID:   workshop.InstructorID,
			InstructorName: workshop.InstructorName,
			IssuedAt:       now,
		}
		if err := s.CertificateRepo.Create(&cert); err != nil {
			return nil, err
		}
		result.Issued = append(result.Issued, cert)

		s.Notifications.Notify(studentID, model.NotifyCertificateIssued,
			fmt.Sprintf("你获得了工作坊《%s》的结业证书", workshop.Title),
			workshop.ID, workshop.Title, "workshop")
	}

	logger.Log.Info("证书批量颁发",
		zap.Uint("workshopId", workshopID),
		zap.Int("issued", len(result.Issued)),
		zap.Int("skipped", len(result.Skipped)))

	return result, nil
}

func (s *CertificateService) GetMyCertificates(studentID uint) ([]model.Certificate, error) {
	return s.CertificateRepo.ListByStudent(studentID)
}

func (s *CertificateService) GetWorkshopCertificates(workshopID uint) ([]model.Certificate, error) {
	return s.CertificateRepo.ListByWorkshop(workshopID)
}

func (s *CertificateService) ListCertificates() ([]model.Certificate, error) {
	return s.CertificateRepo.List()
}
