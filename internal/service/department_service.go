package service

import (
	"errors"

	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"

	"gorm.io/gorm"
)

type DepartmentService struct {
	DepartmentRepo *repository.DepartmentRepository
	UserRepo       *repository.UserRepository
	CourseRepo     *repository.CourseRepository
	WorkshopRepo   *repository.WorkshopRepository
}

func NewDepartmentService(
	departmentRepo *repository.DepartmentRepository,
	userRepo *repository.UserRepository,
	courseRepo *repository.CourseRepository,
	workshopRepo *repository.WorkshopRepository,
) *DepartmentService {
	return &DepartmentService{
		DepartmentRepo: departmentRepo,
		UserRepo:       userRepo,
		CourseRepo:     courseRepo,
		WorkshopRepo:   workshopRepo,
	}
}

// DepartmentStats 院系概况统计
type DepartmentStats struct {
	Department  model.Department `json:"department"`
	Students    int64            `json:"students"`
	Instructors int64            `json:"instructors"`
	Courses     int64            `json:"courses"`
	Workshops   int64            `json:"workshops"`
}

func (s *DepartmentService) CreateDepartment(department *model.Department) error {
	_, err := s.DepartmentRepo.FindByCode(department.Code)
	if err == nil {
		return util.ErrDepartmentCodeTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return s.DepartmentRepo.Create(department)
}

func (s *DepartmentService) GetDepartment(id uint) (*model.Department, error) {
	department, err := s.DepartmentRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrDepartmentNotFound
	}
	return department, err
}

func (s *DepartmentService) ListDepartments() ([]model.Department, error) {
	return s.DepartmentRepo.List()
}

func (s *DepartmentService) UpdateDepartment(id uint, name, code, description string) (*model.Department, error) {
	department, err := s.GetDepartment(id)
	if err != nil {
		return nil, err
	}

	if code != "" && code != department.Code {
		existing, err := s.DepartmentRepo.FindByCode(code)
		if err == nil && existing.ID != id {
			return nil, util.ErrDepartmentCodeTaken
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		department.Code = code
	}
	if name != "" {
		department.Name = name
	}
	if description != "" {
		department.Description = description
	}

	if err := s.DepartmentRepo.Update(department); err != nil {
		return nil, err
	}
	return department, nil
}

func (s *DepartmentService) DeleteDepartment(id uint) error {
	if _, err := s.GetDepartment(id); err != nil {
		return err
	}
	return s.DepartmentRepo.Delete(id)
}

func (s *DepartmentService) GetDepartmentStats(id uint) (*DepartmentStats, error) {
	department, err := s.GetDepartment(id)
	if err != nil {
		return nil, err
	}

	students, err := s.UserRepo.CountByRoleAndDepartment(model.Student, id)
	if err != nil {
		return nil, err
	}
	instructors, err := s.UserRepo.CountByRoleAndDepartment(model.Instructor, id)
	if err != nil {
		return nil, err
	}
	courses, err := s.CourseRepo.CountByDepartment(id)
	if err != nil {
		return nil, err
	}
	workshops, err := s.WorkshopRepo.CountByDepartment(id)
	if err != nil {
		return nil, err
	}

	return &DepartmentStats{
		Department:  *department,
		Students:    students,
		Instructors: instructors,
		Courses:     courses,
		Workshops:   workshops,
	}, nil
}
