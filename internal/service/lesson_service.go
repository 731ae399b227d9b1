package service

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"
	"lms_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type LessonService struct {
	LessonRepo    *repository.LessonRepository
	CourseRepo    *repository.CourseRepository
	Storage       *StorageService
	Notifications *NotificationService
}

func NewLessonService(
	lessonRepo *repository.LessonRepository,
	courseRepo *repository.CourseRepository,
	storage *StorageService,
	notifications *NotificationService,
) *LessonService {
	return &LessonService{
		LessonRepo:    lessonRepo,
		CourseRepo:    courseRepo,
		Storage:       storage,
		Notifications: notifications,
	}
}

// CreateLesson 新课时默认排在末尾，已选课学生收到通知
func (s *LessonService) CreateLesson(lesson *model.Lesson) error {
	course, err := s.CourseRepo.FindByID(lesson.CourseID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return util.ErrCourseNotFound
	} else if err != nil {
		return err
	}

	if lesson.OrderIndex == 0 {
		existing, err := s.LessonRepo.ListByCourse(lesson.CourseID)
		if err != nil {
			return err
		}
		lesson.OrderIndex = len(existing) + 1
	}

	if err := s.LessonRepo.Create(lesson); err != nil {
		return err
	}

	studentIDs, err := s.CourseRepo.ListEnrolledStudentIDs(lesson.CourseID)
	if err == nil {
		s.Notifications.Broadcast(studentIDs, model.NotifyNewLesson,
			fmt.Sprintf("课程《%s》新增课时：%s", course.Title, lesson.Title),
			course.ID, course.Title, "course")
	}
	return nil
}

func (s *LessonService) GetLesson(id uint) (*model.Lesson, error) {
	lesson, err := s.LessonRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrLessonNotFound
	}
	return lesson, err
}

func (s *LessonService) ListLessons(courseID uint) ([]model.Lesson, error) {
	return s.LessonRepo.ListByCourse(courseID)
}

func (s *LessonService) UpdateLesson(lesson *model.Lesson) error {
	return s.LessonRepo.Update(lesson)
}

func (s *LessonService) DeleteLesson(id uint) error {
	if _, err := s.GetLesson(id); err != nil {
		return err
	}
	return s.LessonRepo.Delete(id)
}

func (s *LessonService) ReorderLessons(courseID uint, lessonIDs []uint) error {
	return s.LessonRepo.Reorder(courseID, lessonIDs)
}

// UploadVideo 处理课时视频：先落临时文件探测时长、截首帧缩略图，
// 再把视频和缩略图交给存储后端，最后回写课时的 videoUrl / duration。
func (s *LessonService) UploadVideo(ctx context.Context, lessonID uint, file *multipart.FileHeader) (*model.Lesson, error) {
	lesson, err := s.GetLesson(lessonID)
	if err != nil {
		return nil, err
	}

	tmpDir, err := os.MkdirTemp("", "lesson-video-*")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(tmpDir)

	ext := filepath.Ext(file.Filename)
	tmpPath := filepath.Join(tmpDir, "upload"+ext)
	if err := saveUploadedFile(file, tmpPath); err != nil {
		return nil, err
	}

	objectName := fmt.Sprintf("videos/lesson_%d_%s%s", lessonID, model.GenerateUUID()[:8], ext)
	videoURL, err := s.Storage.UploadFile(ctx, objectName, tmpPath, videoContentType(ext))
	if err != nil {
		return nil, err
	}
	lesson.VideoURL = videoURL

	// 探测失败不阻断上传，时长和缩略图算锦上添花
	if info, err := util.GetVideoInfo(tmpPath); err == nil {
		lesson.Duration = util.FormatVideoDuration(info.Duration)
	} else {
		logger.Log.Warn("视频时长探测失败",
			zap.Uint("lessonId", lessonID),
			zap.Error(err))
	}

	thumbPath := filepath.Join(tmpDir, "thumb.jpg")
	if err := util.GenerateThumbnail(tmpPath, thumbPath, "00:00:01"); err == nil {
		thumbObject := fmt.Sprintf("thumbnails/lesson_%d.jpg", lessonID)
		if thumbURL, err := s.Storage.UploadFile(ctx, thumbObject, thumbPath, "image/jpeg"); err == nil {
			lesson.Thumbnail = thumbURL
		} else {
			logger.Log.Warn("缩略图上传失败",
				zap.Uint("lessonId", lessonID),
				zap.Error(err))
		}
	}

	if err := s.LessonRepo.Update(lesson); err != nil {
		return nil, err
	}
	return lesson, nil
}

func saveUploadedFile(file *multipart.FileHeader, dst string) error {
	src, err := file.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = out.ReadFrom(src)
	return err
}

func videoContentType(ext string) string {
	switch strings.ToLower(ext) {
	case ".mp4":
		return "video/mp4"
	case ".webm":
		return "video/webm"
	case ".mov":
		return "video/quicktime"
	default:
		return "application/octet-stream"
	}
}
