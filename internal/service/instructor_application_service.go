package service

import (
	"time"

	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"
	"lms_backend/pkg/logger"

	"go.uber.org/zap"
)

type InstructorApplicationService struct {
	ApplicationRepo *repository.InstructorApplicationRepository
	UserRepo        *repository.UserRepository
	Notifications   *NotificationService
}

func NewInstructorApplicationService(
	applicationRepo *repository.InstructorApplicationRepository,
	userRepo *repository.UserRepository,
	notifications *NotificationService,
) *InstructorApplicationService {
	return &InstructorApplicationService{
		ApplicationRepo: applicationRepo,
		UserRepo:        userRepo,
		Notifications:   notifications,
	}
}

// Apply 学生提交讲师申请，同一用户同时只能有一份待审工单
func (s *InstructorApplicationService) Apply(userID uint, departmentID *uint, motivation string) (*model.InstructorApplication, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return nil, util.ErrUserNotFound
	}
	if user.Role != model.Student {
		return nil, util.ErrPermissionDenied
	}

	pending, err := s.ApplicationRepo.FindPendingByUser(userID)
	if err != nil {
		return nil, err
	}
	if pending != nil {
		return nil, util.ErrApplicationPending
	}

	application := &model.InstructorApplication{
		UserID:       userID,
		UserName:     user.Name,
		Email:        user.Email,
		DepartmentID: departmentID,
		Motivation:   motivation,
		Status:       model.ApplicationPending,
	}
	if err := s.ApplicationRepo.Create(application); err != nil {
		return nil, err
	}
	return application, nil
}

type ApplicationFilter struct {
	Status       model.ApplicationStatus
	DepartmentID *uint
}

func (s *InstructorApplicationService) ListApplications(filter ApplicationFilter) ([]model.InstructorApplication, error) {
	switch {
	case filter.Status != "":
		return s.ApplicationRepo.ListByStatus(filter.Status)
	case filter.DepartmentID != nil:
		return s.ApplicationRepo.ListByDepartment(*filter.DepartmentID)
	default:
		return s.ApplicationRepo.List()
	}
}

// Review 审批：通过时把申请人晋升为讲师并落院系。已终审的工单不可再审。
func (s *InstructorApplicationService) Review(applicationID, reviewerID uint, approve bool) (*model.InstructorApplication, error) {
	application, err := s.ApplicationRepo.FindByID(applicationID)
	if err != nil {
		return nil, err
	}
	if application.Status != model.ApplicationPending {
		return nil, util.ErrApplicationFinalized
	}

	now := time.Now()
	application.ReviewedBy = &reviewerID
	application.ReviewedAt = &now

	if approve {
		application.Status = model.ApplicationApproved

		user, err := s.UserRepo.FindByID(application.UserID)
		if err != nil {
			return nil, util.ErrUserNotFound
		}
		user.Role = model.Instructor
		if application.DepartmentID != nil {
			user.DepartmentID = application.DepartmentID
		}
		if err := s.UserRepo.Update(user); err != nil {
			return nil, err
		}

		logger.Log.Info("讲师申请通过",
			zap.Uint("userId", application.UserID),
			zap.Uint("reviewerId", reviewerID))
	} else {
		application.Status = model.ApplicationRejected
	}

	if err := s.ApplicationRepo.Update(application); err != nil {
		return nil, err
	}

	message := "很遗憾，您的讲师申请未通过审核"
	if approve {
		message = "恭喜！您的讲师申请已通过，现在可以创建课程和工作坊了"
	}
	s.Notifications.Notify(application.UserID, model.NotifyApplicationResult, message, application.ID, "讲师申请", "application")

	return application, nil
}
