package util

import "errors"

var (
	ErrUserNotFound         = errors.New("用户不存在")
	ErrEmailRegistered      = errors.New("该邮箱已被注册")
	ErrPermissionDenied     = errors.New("permission denied")
	ErrCourseNotFound       = errors.New("course not found")
	ErrLessonNotFound       = errors.New("lesson not found")
	ErrWorkshopNotFound     = errors.New("workshop not found")
	ErrWorkshopFull         = errors.New("workshop is full")
	ErrAlreadyEnrolled      = errors.New("already enrolled")
	ErrDepartmentNotFound   = errors.New("department not found")
	ErrDepartmentCodeTaken  = errors.New("department code already in use")
	ErrDepartmentRequired   = errors.New("department is required")
	ErrApplicationPending   = errors.New("application already pending")
	ErrApplicationFinalized = errors.New("application already reviewed")
)
