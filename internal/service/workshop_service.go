package service

import (
	"errors"
	"fmt"

	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"

	"gorm.io/gorm"
)

type WorkshopService struct {
	WorkshopRepo  *repository.WorkshopRepository
	UserRepo      *repository.UserRepository
	Notifications *NotificationService
}

func NewWorkshopService(
	workshopRepo *repository.WorkshopRepository,
	userRepo *repository.UserRepository,
	notifications *NotificationService,
) *WorkshopService {
	return &WorkshopService{
		WorkshopRepo:  workshopRepo,
		UserRepo:      userRepo,
		Notifications: notifications,
	}
}

// WorkshopView 带报名人数的工作坊视图
type WorkshopView struct {
	model.Workshop
	EnrolledCount int64 `json:"enrolledCount"`
}

// CreateWorkshop 工作坊必须归属某个院系
func (s *WorkshopService) CreateWorkshop(workshop *model.Workshop) error {
	if workshop.DepartmentID == nil {
		return util.ErrDepartmentRequired
	}

	instructor, err := s.UserRepo.FindByID(workshop.InstructorID)
	if err != nil {
		return util.ErrUserNotFound
	}
	workshop.InstructorName = instructor.Name

	if workshop.MaxStudents <= 0 {
		workshop.MaxStudents = 30
	}
	if workshop.Status == "" {
		workshop.Status = model.WorkshopUpcoming
	}

	return s.WorkshopRepo.Create(workshop)
}

func (s *WorkshopService) GetWorkshop(id uint) (*WorkshopView, error) {
	workshop, err := s.WorkshopRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrWorkshopNotFound
	} else if err != nil {
		return nil, err
	}

	count, err := s.WorkshopRepo.CountEnrollments(id)
	if err != nil {
		return nil, err
	}

	return &WorkshopView{Workshop: *workshop, EnrolledCount: count}, nil
}

type WorkshopFilter struct {
	DepartmentID *uint
	InstructorID *uint
	StudentID    *uint
}

func (s *WorkshopService) ListWorkshops(filter WorkshopFilter) ([]model.Workshop, error) {
	switch {
	case filter.StudentID != nil:
		return s.WorkshopRepo.ListByStudent(*filter.StudentID)
	case filter.InstructorID != nil:
		return s.WorkshopRepo.ListByInstructor(*filter.InstructorID)
	case filter.DepartmentID != nil:
		return s.WorkshopRepo.ListByDepartment(*filter.DepartmentID)
	default:
		return s.WorkshopRepo.List()
	}
}

// UpdateWorkshop 基础信息与场次分开更新，场次为整体替换；
// 更新后通知所有已报名学生。
func (s *WorkshopService) UpdateWorkshop(workshop *model.Workshop, sessions []model.WorkshopSession) error {
	if err := s.WorkshopRepo.Update(workshop); err != nil {
		return err
	}

	if sessions != nil {
		if err := s.WorkshopRepo.ReplaceSessions(workshop.ID, sessions); err != nil {
			return err
		}
	}

	studentIDs, err := s.WorkshopRepo.ListEnrolledStudentIDs(workshop.ID)
	if err == nil {
		s.Notifications.Broadcast(studentIDs, model.NotifyWorkshopUpdate,
			fmt.Sprintf("工作坊《%s》安排有调整", workshop.Title),
			workshop.ID, workshop.Title, "workshop")
	}
	return nil
}

func (s *WorkshopService) DeleteWorkshop(id uint) error {
	if _, err := s.GetWorkshop(id); err != nil {
		return err
	}
	return s.WorkshopRepo.Delete(id)
}

// Enroll 报名：满员返回 ErrWorkshopFull，重复报名返回 ErrAlreadyEnrolled
func (s *WorkshopService) Enroll(workshopID, studentID uint) error {
	view, err := s.GetWorkshop(workshopID)
	if err != nil {
		return err
	}

	enrolled, err := s.WorkshopRepo.IsEnrolled(workshopID, studentID)
	if err != nil {
		return err
	}
	if enrolled {
		return util.ErrAlreadyEnrolled
	}

	if view.EnrolledCount >= int64(view.MaxStudents) {
		return util.ErrWorkshopFull
	}

	if err := s.WorkshopRepo.CreateEnrollment(&model.WorkshopEnrollment{
		WorkshopID: workshopID,
		StudentID:  studentID,
	}); err != nil {
		return err
	}

	s.Notifications.Notify(studentID, model.NotifyEnrollment,
		fmt.Sprintf("已报名工作坊《%s》", view.Title),
		view.ID, view.Title, "workshop")
	return nil
}

func (s *WorkshopService) IsEnrolled(workshopID, studentID uint) (bool, error) {
	return s.WorkshopRepo.IsEnrolled(workshopID, studentID)
}

// SetSessionLive 开播/停播切换，开播时群发直播通知
func (s *WorkshopService) SetSessionLive(workshopID, sessionID uint, isLive bool, vimeoLiveURL string) error {
	workshop, err := s.WorkshopRepo.FindByID(workshopID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return util.ErrWorkshopNotFound
	} else if err != nil {
		return err
	}

	if _, err := s.WorkshopRepo.FindSession(workshopID, sessionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrWorkshopNotFound
		}
		return err
	}

	if err := s.WorkshopRepo.UpdateSessionLive(sessionID, isLive, vimeoLiveURL); err != nil {
		return err
	}

	if isLive {
		studentIDs, err := s.WorkshopRepo.ListEnrolledStudentIDs(workshopID)
		if err == nil {
			s.Notifications.Broadcast(studentIDs, model.NotifyWorkshopLive,
				fmt.Sprintf("工作坊《%s》正在直播", workshop.Title),
				workshop.ID, workshop.Title, "workshop")
		}
	}
	return nil
}
