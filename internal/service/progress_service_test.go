package service

import (
	"sort"
	"testing"
	"time"

	"lms_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memProgressStore 内存版 ProgressStore，测试用
type memProgressStore struct {
	nextID  uint
	courses map[uint]*model.CourseProgress        // key: CourseProgress.ID
	lessons map[uint]map[uint]*model.LessonProgress // key: CourseProgressID -> LessonID
}

func newMemProgressStore() *memProgressStore {
	return &memProgressStore{
		nextID:  1,
		courses: make(map[uint]*model.CourseProgress),
		lessons: make(map[uint]map[uint]*model.LessonProgress),
	}
}

func (m *memProgressStore) find(userID, courseID uint) *model.CourseProgress {
	for _, cp := range m.courses {
		if cp.UserID == userID && cp.CourseID == courseID {
			return cp
		}
	}
	return nil
}

func (m *memProgressStore) GetCourseProgress(userID, courseID uint) (*model.CourseProgress, error) {
	cp := m.find(userID, courseID)
	if cp == nil {
		return nil, nil
	}
	clone := *cp
	lessons, _ := m.ListLessonProgress(cp.ID)
	clone.Lessons = lessons
	return &clone, nil
}

func (m *memProgressStore) ListCourseProgressByUser(userID uint) ([]model.CourseProgress, error) {
	var list []model.CourseProgress
	for _, cp := range m.courses {
		if cp.UserID == userID {
			clone := *cp
			clone.Lessons, _ = m.ListLessonProgress(cp.ID)
			list = append(list, clone)
		}
	}
	return list, nil
}

func (m *memProgressStore) CreateCourseProgress(cp *model.CourseProgress, lessonIDs []uint) error {
	cp.ID = m.nextID
	m.nextID++
	stored := *cp
	m.courses[cp.ID] = &stored
	m.lessons[cp.ID] = make(map[uint]*model.LessonProgress)
	for _, lessonID := range lessonIDs {
		m.lessons[cp.ID][lessonID] = &model.LessonProgress{
			CourseProgressID: cp.ID,
			LessonID:         lessonID,
		}
	}
	return nil
}

func (m *memProgressStore) GetLessonProgress(courseProgressID, lessonID uint) (*model.LessonProgress, error) {
	lp, ok := m.lessons[courseProgressID][lessonID]
	if !ok {
		return nil, nil
	}
	clone := *lp
	return &clone, nil
}

func (m *memProgressStore) ListLessonProgress(courseProgressID uint) ([]model.LessonProgress, error) {
	var list []model.LessonProgress
	for _, lp := range m.lessons[courseProgressID] {
		list = append(list, *lp)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].LessonID < list[j].LessonID })
	return list, nil
}

func (m *memProgressStore) AddLessonWatchTime(courseProgressID, lessonID uint, seconds, position int) error {
	lp := m.lessons[courseProgressID][lessonID]
	lp.VideoWatchTime += seconds
	lp.TimeSpent += seconds
	lp.LastWatchPosition = position
	return nil
}

func (m *memProgressStore) SaveLessonCompletion(courseProgressID, lessonID uint, completed bool, completedAt *time.Time, additionalTime int) error {
	lp := m.lessons[courseProgressID][lessonID]
	lp.Completed = completed
	lp.TimeSpent += additionalTime
	if completedAt != nil {
		lp.CompletedAt = completedAt
	}
	return nil
}

func (m *memProgressStore) TouchCourseActivity(courseProgressID uint, addSeconds, streak int, activityAt time.Time) error {
	cp := m.courses[courseProgressID]
	cp.TotalTimeSpent += addSeconds
	cp.LastAccessedAt = activityAt
	day := dateOnly(activityAt)
	cp.LastActivityDate = &day
	cp.CurrentStreak = streak
	return nil
}

func (m *memProgressStore) SaveCourseAggregates(courseProgressID uint, addSeconds, completionPercentage, streak int, achievements []string, activityAt time.Time) error {
	cp := m.courses[courseProgressID]
	cp.TotalTimeSpent += addSeconds
	cp.LastAccessedAt = activityAt
	day := dateOnly(activityAt)
	cp.LastActivityDate = &day
	cp.CurrentStreak = streak
	cp.CompletionPercentage = completionPercentage
	cp.Achievements = achievements
	return nil
}

type recordingNotifier struct {
	unlocked []string
}

func (r *recordingNotifier) NotifyAchievement(userID, courseID uint, achievement AchievementDetail) {
	r.unlocked = append(r.unlocked, achievement.ID)
}

func newTestService() (*ProgressService, *memProgressStore, *recordingNotifier) {
	store := newMemProgressStore()
	notifier := &recordingNotifier{}
	return NewProgressService(store, notifier), store, notifier
}

func TestInitializeCourseProgress(t *testing.T) {
	svc, _, _ := newTestService()

	cp, err := svc.InitializeCourseProgress(1, 10, []uint{100, 101, 102})
	require.NoError(t, err)
	require.NotNil(t, cp)

	assert.Equal(t, 0, cp.CompletionPercentage)
	assert.Equal(t, 0, cp.TotalTimeSpent)
	assert.Equal(t, 1, cp.CurrentStreak)
	assert.Len(t, cp.Lessons, 3)
	for _, lp := range cp.Lessons {
		assert.False(t, lp.Completed)
		assert.Nil(t, lp.CompletedAt)
	}
}

func TestInitializeCourseProgressIdempotent(t *testing.T) {
	svc, _, _ := newTestService()

	first, err := svc.InitializeCourseProgress(1, 10, []uint{100, 101})
	require.NoError(t, err)

	again, err := svc.InitializeCourseProgress(1, 10, []uint{100, 101})
	require.NoError(t, err)

	assert.Equal(t, first.ID, again.ID)
	assert.Len(t, again.Lessons, 2)
}

func TestInitializeEmptyCourse(t *testing.T) {
	svc, _, _ := newTestService()

	cp, err := svc.InitializeCourseProgress(1, 10, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, cp.CompletionPercentage)
	assert.Empty(t, cp.Lessons)
}

func TestSetLessonCompletionRecomputesPercentage(t *testing.T) {
	svc, _, notifier := newTestService()
	_, err := svc.InitializeCourseProgress(1, 10, []uint{100, 101})
	require.NoError(t, err)

	// 完成A → 50%，解锁 first_lesson
	require.NoError(t, svc.SetLessonCompletion(1, 10, 100, true, 0))
	cp, _ := svc.GetCourseProgress(1, 10)
	assert.Equal(t, 50, cp.CompletionPercentage)
	assert.Contains(t, []string(cp.Achievements), "first_lesson")
	assert.Contains(t, notifier.unlocked, "first_lesson")

	// 完成B → 100%，解锁 course_complete
	require.NoError(t, svc.SetLessonCompletion(1, 10, 101, true, 0))
	cp, _ = svc.GetCourseProgress(1, 10)
	assert.Equal(t, 100, cp.CompletionPercentage)
	assert.Contains(t, []string(cp.Achievements), "course_complete")
}

func TestToggleCompletionIdempotentRecompute(t *testing.T) {
	svc, _, _ := newTestService()
	_, err := svc.InitializeCourseProgress(1, 10, []uint{100, 101})
	require.NoError(t, err)

	// true → false → true 的最终百分比等于按最终完成集直接计算的结果
	require.NoError(t, svc.SetLessonCompletion(1, 10, 100, true, 0))
	require.NoError(t, svc.SetLessonCompletion(1, 10, 100, false, 0))
	require.NoError(t, svc.SetLessonCompletion(1, 10, 100, true, 0))

	cp, _ := svc.GetCourseProgress(1, 10)
	assert.Equal(t, 50, cp.CompletionPercentage)
}

func TestCompletedAtNeverCleared(t *testing.T) {
	svc, store, _ := newTestService()
	_, err := svc.InitializeCourseProgress(1, 10, []uint{100})
	require.NoError(t, err)

	require.NoError(t, svc.SetLessonCompletion(1, 10, 100, true, 0))
	cp := store.find(1, 10)
	first, _ := store.GetLessonProgress(cp.ID, 100)
	require.NotNil(t, first.CompletedAt)
	stamp := *first.CompletedAt

	// 取消完成：completed 变 false，但完成时间保留
	require.NoError(t, svc.SetLessonCompletion(1, 10, 100, false, 0))
	lp, _ := store.GetLessonProgress(cp.ID, 100)
	assert.False(t, lp.Completed)
	require.NotNil(t, lp.CompletedAt)
	assert.Equal(t, stamp, *lp.CompletedAt)

	// 再次完成：时间戳刷新为新的完成时刻
	require.NoError(t, svc.SetLessonCompletion(1, 10, 100, true, 0))
	lp, _ = store.GetLessonProgress(cp.ID, 100)
	assert.True(t, lp.Completed)
	assert.False(t, lp.CompletedAt.Before(stamp))
}

func TestAchievementsMonotone(t *testing.T) {
	svc, _, _ := newTestService()
	_, err := svc.InitializeCourseProgress(1, 10, []uint{100})
	require.NoError(t, err)

	require.NoError(t, svc.SetLessonCompletion(1, 10, 100, true, 0))
	cp, _ := svc.GetCourseProgress(1, 10)
	assert.ElementsMatch(t, []string{"first_lesson", "course_complete"}, []string(cp.Achievements))

	// 取消完成不撤销已解锁的成就
	require.NoError(t, svc.SetLessonCompletion(1, 10, 100, false, 0))
	cp, _ = svc.GetCourseProgress(1, 10)
	assert.ElementsMatch(t, []string{"first_lesson", "course_complete"}, []string(cp.Achievements))
	assert.Equal(t, 0, cp.CompletionPercentage)
}

func TestAchievementNotifiedOncePerUnlock(t *testing.T) {
	svc, _, notifier := newTestService()
	_, err := svc.InitializeCourseProgress(1, 10, []uint{100, 101})
	require.NoError(t, err)

	require.NoError(t, svc.SetLessonCompletion(1, 10, 100, true, 0))
	require.NoError(t, svc.SetLessonCompletion(1, 10, 100, false, 0))
	require.NoError(t, svc.SetLessonCompletion(1, 10, 100, true, 0))

	count := 0
	for _, id := range notifier.unlocked {
		if id == "first_lesson" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestFiveLessonsAchievement(t *testing.T) {
	svc, _, _ := newTestService()
	lessonIDs := []uint{100, 101, 102, 103, 104, 105}
	_, err := svc.InitializeCourseProgress(1, 10, lessonIDs)
	require.NoError(t, err)

	for _, id := range lessonIDs[:4] {
		require.NoError(t, svc.SetLessonCompletion(1, 10, id, true, 0))
	}
	cp, _ := svc.GetCourseProgress(1, 10)
	assert.NotContains(t, []string(cp.Achievements), "five_lessons")

	require.NoError(t, svc.SetLessonCompletion(1, 10, lessonIDs[4], true, 0))
	cp, _ = svc.GetCourseProgress(1, 10)
	assert.Contains(t, []string(cp.Achievements), "five_lessons")
}

func TestFiveHoursThresholdExact(t *testing.T) {
	svc, _, _ := newTestService()
	_, err := svc.InitializeCourseProgress(1, 10, []uint{100})
	require.NoError(t, err)

	// 17999 秒差一秒，不解锁
	require.NoError(t, svc.SetLessonCompletion(1, 10, 100, true, 17999))
	cp, _ := svc.GetCourseProgress(1, 10)
	assert.NotContains(t, []string(cp.Achievements), "five_hours")

	// 补足到 18000 整，解锁
	require.NoError(t, svc.SetLessonCompletion(1, 10, 100, true, 1))
	cp, _ = svc.GetCourseProgress(1, 10)
	assert.Contains(t, []string(cp.Achievements), "five_hours")
}

func TestWatchTimeDoesNotEvaluateAchievements(t *testing.T) {
	svc, _, _ := newTestService()
	_, err := svc.InitializeCourseProgress(1, 10, []uint{100})
	require.NoError(t, err)

	// 纯观看跨过5小时阈值：计数器涨，但成就不评估
	for i := 0; i < 5; i++ {
		require.NoError(t, svc.RecordWatchTime(1, 10, 100, 3600, i*3600))
	}
	cp, _ := svc.GetCourseProgress(1, 10)
	assert.Equal(t, 18000, cp.TotalTimeSpent)
	assert.Empty(t, []string(cp.Achievements))

	// 下一次完成状态变更才触发评估
	require.NoError(t, svc.SetLessonCompletion(1, 10, 100, true, 0))
	cp, _ = svc.GetCourseProgress(1, 10)
	assert.Contains(t, []string(cp.Achievements), "five_hours")
}

func TestRecordWatchTimeAccumulates(t *testing.T) {
	svc, store, _ := newTestService()
	_, err := svc.InitializeCourseProgress(1, 10, []uint{100, 101})
	require.NoError(t, err)

	require.NoError(t, svc.RecordWatchTime(1, 10, 100, 30, 30))
	require.NoError(t, svc.RecordWatchTime(1, 10, 100, 15, 45))

	cp := store.find(1, 10)
	lp, _ := store.GetLessonProgress(cp.ID, 100)
	assert.Equal(t, 45, lp.VideoWatchTime)
	assert.Equal(t, 45, lp.TimeSpent)
	assert.Equal(t, 45, lp.LastWatchPosition)
	assert.Equal(t, 45, cp.TotalTimeSpent)
	// 观看不改变完成百分比
	assert.Equal(t, 0, cp.CompletionPercentage)
}

func TestSilentNoOpOnMissingRecords(t *testing.T) {
	svc, store, _ := newTestService()

	// 课程进度不存在：静默成功，不创建记录
	assert.NoError(t, svc.RecordWatchTime(1, 99, 100, 60, 60))
	assert.NoError(t, svc.SetLessonCompletion(1, 99, 100, true, 0))
	assert.Empty(t, store.courses)

	// 课时记录不存在：同样静默
	_, err := svc.InitializeCourseProgress(1, 10, []uint{100})
	require.NoError(t, err)
	assert.NoError(t, svc.RecordWatchTime(1, 10, 999, 60, 60))
	assert.NoError(t, svc.SetLessonCompletion(1, 10, 999, true, 0))

	cp, _ := svc.GetCourseProgress(1, 10)
	assert.Equal(t, 0, cp.TotalTimeSpent)
}

func TestStreakTransitions(t *testing.T) {
	now := time.Now()
	yesterday := now.AddDate(0, 0, -1)
	threeDaysAgo := now.AddDate(0, 0, -3)

	tests := []struct {
		name     string
		last     *time.Time
		current  int
		expected int
	}{
		{"无历史活动", nil, 5, 1},
		{"同一天保持", &now, 3, 3},
		{"连续一天递增", &yesterday, 3, 4},
		{"中断归一", &threeDaysAgo, 9, 1},
		{"脏数据钳到下限", &now, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, nextStreak(tt.last, tt.current, now))
		})
	}
}

func TestWeekStreakAchievement(t *testing.T) {
	svc, store, _ := newTestService()
	_, err := svc.InitializeCourseProgress(1, 10, []uint{100, 101})
	require.NoError(t, err)

	// 人为把连续天数推到6，昨天有活动：本次变更后应到7并解锁
	cp := store.find(1, 10)
	yesterday := dateOnly(time.Now().AddDate(0, 0, -1))
	cp.CurrentStreak = 6
	cp.LastActivityDate = &yesterday

	require.NoError(t, svc.SetLessonCompletion(1, 10, 100, true, 0))
	got, _ := svc.GetCourseProgress(1, 10)
	assert.Equal(t, 7, got.CurrentStreak)
	assert.Contains(t, []string(got.Achievements), "week_streak")
}

func TestCalculateCompletionPercentage(t *testing.T) {
	mk := func(completed, total int) []model.LessonProgress {
		lessons := make([]model.LessonProgress, total)
		for i := 0; i < completed; i++ {
			lessons[i].Completed = true
		}
		return lessons
	}

	tests := []struct {
		completed, total, expected int
	}{
		{0, 0, 0},
		{0, 4, 0},
		{1, 3, 33},
		{2, 3, 67},
		{1, 2, 50},
		{3, 3, 100},
		{1, 6, 17},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, CalculateCompletionPercentage(mk(tt.completed, tt.total)),
			"%d/%d", tt.completed, tt.total)
	}
}

func TestFormatTimeSpent(t *testing.T) {
	assert.Equal(t, "0m", FormatTimeSpent(0))
	assert.Equal(t, "12m", FormatTimeSpent(750))
	assert.Equal(t, "1h 0m", FormatTimeSpent(3600))
	assert.Equal(t, "2h 5m", FormatTimeSpent(7500))
}

func TestGetAchievementDetails(t *testing.T) {
	detail := GetAchievementDetails("first_lesson")
	assert.Equal(t, "First Steps", detail.Title)

	unknown := GetAchievementDetails("who_knows")
	assert.Equal(t, "who_knows", unknown.ID)
	assert.NotEmpty(t, unknown.Title)
}
