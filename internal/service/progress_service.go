package service

import (
	"fmt"
	"time"

	"lms_backend/internal/model"
	"lms_backend/pkg/logger"
	"lms_backend/pkg/monitoring"

	"go.uber.org/zap"
)

// ProgressStore 进度持久化接口。生产环境由 repository.ProgressRepository 实现，
// 测试用内存实现替换。
type ProgressStore interface {
	// GetCourseProgress 不存在时返回 (nil, nil)
	GetCourseProgress(userID, courseID uint) (*model.CourseProgress, error)
	ListCourseProgressByUser(userID uint) ([]model.CourseProgress, error)
	CreateCourseProgress(cp *model.CourseProgress, lessonIDs []uint) error
	// GetLessonProgress 不存在时返回 (nil, nil)
	GetLessonProgress(courseProgressID, lessonID uint) (*model.LessonProgress, error)
	ListLessonProgress(courseProgressID uint) ([]model.LessonProgress, error)
	AddLessonWatchTime(courseProgressID, lessonID uint, seconds, position int) error
	SaveLessonCompletion(courseProgressID, lessonID uint, completed bool, completedAt *time.Time, additionalTime int) error
	TouchCourseActivity(courseProgressID uint, addSeconds, streak int, activityAt time.Time) error
	SaveCourseAggregates(courseProgressID uint, addSeconds, completionPercentage, streak int, achievements []string, activityAt time.Time) error
}

// AchievementNotifier 解锁成就后的回调，可为 nil
type AchievementNotifier interface {
	NotifyAchievement(userID, courseID uint, achievement AchievementDetail)
}

// ProgressService 学习进度核心：课时完成、观看时长累计、连续学习天数和成就解锁。
//
// 契约要点：
//   - 引用不存在的进度记录时静默返回，不报错（前端轮询场景下落库前的请求不算异常）
//   - 观看时长只累计计数器和连续天数，不触发成就评估；成就只在完成状态变更时评估
//   - 成就集合只增不减，completed_at 一旦写入不再清除
type ProgressService struct {
	Store    ProgressStore
	Notifier AchievementNotifier
}

func NewProgressService(store ProgressStore, notifier AchievementNotifier) *ProgressService {
	return &ProgressService{Store: store, Notifier: notifier}
}

// AchievementDetail 成就展示信息
type AchievementDetail struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

var achievementCatalog = map[string]AchievementDetail{
	"first_lesson": {
		ID:          "first_lesson",
		Title:       "First Steps",
		Description: "Completed your first lesson",
		Icon:        "🎯",
	},
	"five_lessons": {
		ID:          "five_lessons",
		Title:       "Knowledge Seeker",
		Description: "Completed 5 lessons",
		Icon:        "📚",
	},
	"course_complete": {
		ID:          "course_complete",
		Title:       "Course Master",
		Description: "Completed an entire course",
		Icon:        "🏆",
	},
	"week_streak": {
		ID:          "week_streak",
		Title:       "Consistent Learner",
		Description: "Maintained a 7-day learning streak",
		Icon:        "🔥",
	},
	"five_hours": {
		ID:          "five_hours",
		Title:       "Time Invested",
		Description: "Spent 5 hours learning",
		Icon:        "⏰",
	},
}

// GetAchievementDetails 未知成就ID返回通用占位信息
func GetAchievementDetails(achievementID string) AchievementDetail {
	if detail, ok := achievementCatalog[achievementID]; ok {
		return detail
	}
	return AchievementDetail{
		ID:          achievementID,
		Title:       "Achievement",
		Description: "Achievement unlocked",
		Icon:        "🏅",
	}
}

// InitializeCourseProgress 幂等初始化：已存在直接返回现有记录，
// 否则创建主记录（streak=1，计数器归零）并为每个课时建一条子记录。
func (s *ProgressService) InitializeCourseProgress(userID, courseID uint, lessonIDs []uint) (*model.CourseProgress, error) {
	existing, err := s.Store.GetCourseProgress(userID, courseID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	now := time.Now()
	today := dateOnly(now)
	cp := &model.CourseProgress{
		UserID:               userID,
		CourseID:             courseID,
		EnrolledAt:           now,
		LastAccessedAt:       now,
		TotalTimeSpent:       0,
		CompletionPercentage: 0,
		CurrentStreak:        1,
		LastActivityDate:     &today,
		Achievements:         []string{},
	}
	if err := s.Store.CreateCourseProgress(cp, lessonIDs); err != nil {
		return nil, err
	}

	logger.Log.Info("课程进度初始化",
		zap.Uint("userId", userID),
		zap.Uint("courseId", courseID),
		zap.Int("lessons", len(lessonIDs)))

	return s.Store.GetCourseProgress(userID, courseID)
}

// RecordWatchTime 累计观看时长并刷新连续学习天数。
// 进度记录不存在时静默返回。不重算完成百分比，也不评估成就。
func (s *ProgressService) RecordWatchTime(userID, courseID, lessonID uint, watchedSeconds, currentPosition int) error {
	cp, err := s.Store.GetCourseProgress(userID, courseID)
	if err != nil {
		return err
	}
	if cp == nil {
		return nil
	}

	lp, err := s.Store.GetLessonProgress(cp.ID, lessonID)
	if err != nil {
		return err
	}
	if lp == nil {
		return nil
	}

	if err := s.Store.AddLessonWatchTime(cp.ID, lessonID, watchedSeconds, currentPosition); err != nil {
		return err
	}

	now := time.Now()
	streak := nextStreak(cp.LastActivityDate, cp.CurrentStreak, now)
	if err := s.Store.TouchCourseActivity(cp.ID, watchedSeconds, streak, now); err != nil {
		return err
	}

	monitoring.WatchTimeSeconds.Add(float64(watchedSeconds))
	return nil
}

// SetLessonCompletion 切换课时完成状态并重算课程聚合。
// completedAt 只在 false→true 时写入，取消完成不清除历史完成时间。
// 进度记录不存在时静默返回。
func (s *ProgressService) SetLessonCompletion(userID, courseID, lessonID uint, completed bool, additionalTime int) error {
	cp, err := s.Store.GetCourseProgress(userID, courseID)
	if err != nil {
		return err
	}
	if cp == nil {
		return nil
	}

	lp, err := s.Store.GetLessonProgress(cp.ID, lessonID)
	if err != nil {
		return err
	}
	if lp == nil {
		return nil
	}

	now := time.Now()
	var completedAt *time.Time
	if completed && !lp.Completed {
		completedAt = &now
	}

	if err := s.Store.SaveLessonCompletion(cp.ID, lessonID, completed, completedAt, additionalTime); err != nil {
		return err
	}

	lessons, err := s.Store.ListLessonProgress(cp.ID)
	if err != nil {
		return err
	}

	percentage := CalculateCompletionPercentage(lessons)
	streak := nextStreak(cp.LastActivityDate, cp.CurrentStreak, now)
	achievements := evaluateAchievements(achievementInput{
		completionPercentage: percentage,
		currentStreak:        streak,
		totalTimeSpent:       cp.TotalTimeSpent + additionalTime,
		lessons:              lessons,
	}, cp.Achievements)

	unlocked := diffAchievements(cp.Achievements, achievements)

	if err := s.Store.SaveCourseAggregates(cp.ID, additionalTime, percentage, streak, achievements, now); err != nil {
		return err
	}

	for _, id := range unlocked {
		monitoring.AchievementUnlocks.WithLabelValues(id).Inc()
		logger.Log.Info("成就解锁",
			zap.Uint("userId", userID),
			zap.Uint("courseId", courseID),
			zap.String("achievement", id))
		if s.Notifier != nil {
			s.Notifier.NotifyAchievement(userID, courseID, GetAchievementDetails(id))
		}
	}
	return nil
}

// GetCourseProgress 不存在时返回 (nil, nil)，由调用方决定如何呈现
func (s *ProgressService) GetCourseProgress(userID, courseID uint) (*model.CourseProgress, error) {
	return s.Store.GetCourseProgress(userID, courseID)
}

func (s *ProgressService) GetUserProgress(userID uint) ([]model.CourseProgress, error) {
	return s.Store.ListCourseProgressByUser(userID)
}

// CalculateCompletionPercentage 完成百分比 = round(100 * 已完成 / 总数)，空课程为0
func CalculateCompletionPercentage(lessons []model.LessonProgress) int {
	if len(lessons) == 0 {
		return 0
	}
	completed := 0
	for _, l := range lessons {
		if l.Completed {
			completed++
		}
	}
	return int(float64(completed)/float64(len(lessons))*100 + 0.5)
}

// FormatTimeSpent 秒数格式化为 "2h 5m" 或 "12m"
func FormatTimeSpent(seconds int) string {
	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}

// nextStreak 连续学习天数：同日保持，隔一天加一，中断归一。
// 按自然日比较，时区取服务器本地时区。
func nextStreak(lastActivity *time.Time, currentStreak int, now time.Time) int {
	if currentStreak < 1 {
		currentStreak = 1
	}
	if lastActivity == nil {
		return 1
	}

	last := dateOnly(*lastActivity)
	today := dateOnly(now)
	days := int(today.Sub(last).Hours() / 24)

	switch {
	case days <= 0:
		return currentStreak
	case days == 1:
		return currentStreak + 1
	default:
		return 1
	}
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

type achievementInput struct {
	completionPercentage int
	currentStreak        int
	totalTimeSpent       int
	lessons              []model.LessonProgress
}

// evaluateAchievements 在现有成就集合上做并集，保证单调不减
func evaluateAchievements(in achievementInput, existing []string) []string {
	achievements := make([]string, len(existing))
	copy(achievements, existing)

	has := make(map[string]bool, len(existing))
	for _, id := range existing {
		has[id] = true
	}
	add := func(id string) {
		if !has[id] {
			has[id] = true
			achievements = append(achievements, id)
		}
	}

	completedCount := 0
	for _, l := range in.lessons {
		if l.Completed {
			completedCount++
		}
	}

	if completedCount > 0 {
		add("first_lesson")
	}
	if completedCount >= 5 {
		add("five_lessons")
	}
	if in.completionPercentage == 100 {
		add("course_complete")
	}
	if in.currentStreak >= 7 {
		add("week_streak")
	}
	if in.totalTimeSpent >= 18000 {
		add("five_hours")
	}
	return achievements
}

func diffAchievements(before, after []string) []string {
	seen := make(map[string]bool, len(before))
	for _, id := range before {
		seen[id] = true
	}
	var unlocked []string
	for _, id := range after {
		if !seen[id] {
			unlocked = append(unlocked, id)
		}
	}
	return unlocked
}
