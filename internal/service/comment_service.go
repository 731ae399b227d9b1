package service

import (
	"errors"

	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"

	"gorm.io/gorm"
)

type CommentService struct {
	CommentRepo  *repository.CommentRepository
	WorkshopRepo *repository.WorkshopRepository
}

func NewCommentService(
	commentRepo *repository.CommentRepository,
	workshopRepo *repository.WorkshopRepository,
) *CommentService {
	return &CommentService{
		CommentRepo:  commentRepo,
		WorkshopRepo: workshopRepo,
	}
}

// PostComment 学生必须先报名才能在讨论区发言，讲师和管理员不受限
func (s *CommentService) PostComment(workshopID uint, actor *util.Claims, userName, message string) (*model.Comment, error) {
	if _, err := s.WorkshopRepo.FindByID(workshopID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrWorkshopNotFound
		}
		return nil, err
	}

	if actor.Role == model.Student {
		enrolled, err := s.WorkshopRepo.IsEnrolled(workshopID, actor.UserID)
		if err != nil {
			return nil, err
		}
		if !enrolled {
			return nil, util.ErrPermissionDenied
		}
	}

	comment := &model.Comment{
		WorkshopID: workshopID,
		UserID:     actor.UserID,
		UserName:   userName,
		Message:    message,
	}
	if err := s.CommentRepo.Create(comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *CommentService) ListComments(workshopID uint) ([]model.Comment, error) {
	return s.CommentRepo.ListByWorkshop(workshopID)
}

// DeleteComment 作者本人或管理员可删
func (s *CommentService) DeleteComment(commentID uint, actor *util.Claims) error {
	comment, err := s.CommentRepo.FindByID(commentID)
	if err != nil {
		return err
	}

	isAdmin := actor.Role == model.SuperAdmin || actor.Role == model.DepartmentAdmin
	if comment.UserID != actor.UserID && !isAdmin {
		return util.ErrPermissionDenied
	}
	return s.CommentRepo.Delete(commentID)
}
