package service

import (
	"errors"

	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserService struct {
	UserRepo *repository.UserRepository
}

func NewUserService(userRepo *repository.UserRepository) *UserService {
	return &UserService{UserRepo: userRepo}
}

type UserFilter struct {
	Role         model.UserRole
	DepartmentID *uint
	Search       string
}

func (s *UserService) GetUsers(page, pageSize int, filter UserFilter) ([]model.User, int64, error) {
	return s.UserRepo.List(page, pageSize, string(filter.Role), filter.DepartmentID, filter.Search)
}

// CreateUser 管理员直接建号，返回一次性初始密码
func (s *UserService) CreateUser(name, email string, role model.UserRole, departmentID *uint) (*model.User, string, error) {
	if existing, err := s.UserRepo.FindByEmail(email); err == nil && existing != nil {
		return nil, "", util.ErrEmailRegistered
	}

	tempPassword := model.GenerateUUID()[:12]
	hashed, err := bcrypt.GenerateFromPassword([]byte(tempPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	user := &model.User{
		Name:         name,
		Email:        email,
		Password:     string(hashed),
		Role:         role,
		DepartmentID: departmentID,
	}
	if err := s.UserRepo.Create(user); err != nil {
		return nil, "", err
	}
	return user, tempPassword, nil
}

// ResetPassword 管理员重置，返回临时密码，用户下次登录后自行修改
func (s *UserService) ResetPassword(userID uint) (string, error) {
	user, err := s.GetUserByID(userID)
	if err != nil {
		return "", err
	}

	tempPassword := model.GenerateUUID()[:12]
	hashed, err := bcrypt.GenerateFromPassword([]byte(tempPassword), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	user.Password = string(hashed)
	if err := s.UserRepo.Update(user); err != nil {
		return "", err
	}
	return tempPassword, nil
}

func (s *UserService) GetUserByID(id uint) (*model.User, error) {
	user, err := s.UserRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrUserNotFound
	}
	return user, err
}

// UpdateProfile 用户可改的只有展示信息，角色和部门走管理接口
func (s *UserService) UpdateProfile(userID uint, name, language, avatar string) (*model.User, error) {
	user, err := s.GetUserByID(userID)
	if err != nil {
		return nil, err
	}

	if name != "" {
		user.Name = name
	}
	if language != "" {
		user.Language = language
	}
	if avatar != "" {
		user.Avatar = avatar
	}

	if err := s.UserRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) ChangePassword(userID uint, oldPassword, newPassword string) error {
	user, err := s.GetUserByID(userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(oldPassword)); err != nil {
		return errors.New("原密码错误")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.Password = string(hashed)
	return s.UserRepo.Update(user)
}

// SetRole 管理员指派角色，指派讲师/部门管理员时同时落部门
func (s *UserService) SetRole(userID uint, role model.UserRole, departmentID *uint) (*model.User, error) {
	user, err := s.GetUserByID(userID)
	if err != nil {
		return nil, err
	}

	user.Role = role
	if departmentID != nil {
		user.DepartmentID = departmentID
	}

	if err := s.UserRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) SetDisabled(userID uint, disabled bool) error {
	user, err := s.GetUserByID(userID)
	if err != nil {
		return err
	}
	user.Disabled = disabled
	return s.UserRepo.Update(user)
}

func (s *UserService) DeleteUser(id uint) error {
	user, err := s.GetUserByID(id)
	if err != nil {
		return err
	}
	return s.UserRepo.Delete(user)
}
