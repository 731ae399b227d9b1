package service

import (
	"errors"
	"fmt"

	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"

	"gorm.io/gorm"
)

type CourseService struct {
	CourseRepo    *repository.CourseRepository
	LessonRepo    *repository.LessonRepository
	UserRepo      *repository.UserRepository
	Progress      *ProgressService
	Notifications *NotificationService
}

func NewCourseService(
	courseRepo *repository.CourseRepository,
	lessonRepo *repository.LessonRepository,
	userRepo *repository.UserRepository,
	progress *ProgressService,
	notifications *NotificationService,
) *CourseService {
	return &CourseService{
		CourseRepo:    courseRepo,
		LessonRepo:    lessonRepo,
		UserRepo:      userRepo,
		Progress:      progress,
		Notifications: notifications,
	}
}

func (s *CourseService) CreateCourse(course *model.Course, creator *util.Claims) error {
	instructor, err := s.UserRepo.FindByID(course.InstructorID)
	if err != nil {
		return util.ErrUserNotFound
	}
	course.InstructorName = instructor.Name

	// 讲师只能以自己的名义开课，院系归属跟随讲师
	if creator.Role == model.Instructor {
		if course.InstructorID != creator.UserID {
			return util.ErrPermissionDenied
		}
		course.DepartmentID = instructor.DepartmentID
	}

	return s.CourseRepo.Create(course)
}

func (s *CourseService) GetCourse(id uint) (*model.Course, error) {
	course, err := s.CourseRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrCourseNotFound
	}
	return course, err
}

type CourseFilter struct {
	DepartmentID *uint
	InstructorID *uint
	StudentID    *uint
}

func (s *CourseService) ListCourses(filter CourseFilter) ([]model.Course, error) {
	switch {
	case filter.StudentID != nil:
		return s.CourseRepo.ListByStudent(*filter.StudentID)
	case filter.InstructorID != nil:
		return s.CourseRepo.ListByInstructor(*filter.InstructorID)
	case filter.DepartmentID != nil:
		return s.CourseRepo.ListByDepartment(*filter.DepartmentID)
	default:
		return s.CourseRepo.List()
	}
}

func (s *CourseService) UpdateCourse(course *model.Course, actor *util.Claims) error {
	if !s.canManage(course, actor) {
		return util.ErrPermissionDenied
	}

	if err := s.CourseRepo.Update(course); err != nil {
		return err
	}

	studentIDs, err := s.CourseRepo.ListEnrolledStudentIDs(course.ID)
	if err == nil {
		s.Notifications.Broadcast(studentIDs, model.NotifyCourseUpdate,
			fmt.Sprintf("课程《%s》内容有更新", course.Title),
			course.ID, course.Title, "course")
	}
	return nil
}

func (s *CourseService) DeleteCourse(id uint, actor *util.Claims) error {
	course, err := s.GetCourse(id)
	if err != nil {
		return err
	}
	if !s.canManage(course, actor) {
		return util.ErrPermissionDenied
	}
	return s.CourseRepo.Delete(id)
}

// Enroll 选课：写入报名记录并初始化学习进度，成功后给学生发通知。
// 重复选课返回 ErrAlreadyEnrolled。
func (s *CourseService) Enroll(courseID, studentID uint) (*model.CourseProgress, error) {
	course, err := s.GetCourse(courseID)
	if err != nil {
		return nil, err
	}

	enrolled, err := s.CourseRepo.IsEnrolled(courseID, studentID)
	if err != nil {
		return nil, err
	}
	if enrolled {
		return nil, util.ErrAlreadyEnrolled
	}

	if err := s.CourseRepo.CreateEnrollment(&model.CourseEnrollment{
		CourseID:  courseID,
		StudentID: studentID,
	}); err != nil {
		return nil, err
	}

	lessonIDs, err := s.LessonRepo.ListIDsByCourse(courseID)
	if err != nil {
		return nil, err
	}

	progress, err := s.Progress.InitializeCourseProgress(studentID, courseID, lessonIDs)
	if err != nil {
		return nil, err
	}

	s.Notifications.Notify(studentID, model.NotifyEnrollment,
		fmt.Sprintf("已加入课程《%s》", course.Title),
		course.ID, course.Title, "course")

	return progress, nil
}

func (s *CourseService) IsEnrolled(courseID, studentID uint) (bool, error) {
	return s.CourseRepo.IsEnrolled(courseID, studentID)
}

// canManage 讲师管自己的课，部门管理员管本部门的课，超管全通过
func (s *CourseService) canManage(course *model.Course, actor *util.Claims) bool {
	switch actor.Role {
	case model.SuperAdmin:
		return true
	case model.DepartmentAdmin:
		return actor.DepartmentID != nil && course.DepartmentID != nil &&
			*actor.DepartmentID == *course.DepartmentID
	case model.Instructor:
		return course.InstructorID == actor.UserID
	default:
		return false
	}
}
