package service

import (
	"fmt"

	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/pkg/logger"

	"go.uber.org/zap"
)

type NotificationService struct {
	NotificationRepo *repository.NotificationRepository
}

func NewNotificationService(notificationRepo *repository.NotificationRepository) *NotificationService {
	return &NotificationService{NotificationRepo: notificationRepo}
}

func (s *NotificationService) Notify(userID uint, notifyType model.NotificationType, message string, itemID uint, itemTitle, itemType string) {
	err := s.NotificationRepo.Create(&model.Notification{
		UserID:    userID,
		Type:      notifyType,
		Message:   message,
		ItemID:    itemID,
		ItemTitle: itemTitle,
		ItemType:  itemType,
	})
	if err != nil {
		logger.Log.Warn("通知写入失败",
			zap.Uint("userId", userID),
			zap.String("type", string(notifyType)),
			zap.Error(err))
	}
}

// Broadcast 给一批用户发同一条通知（课程更新、直播开始等群发场景）
func (s *NotificationService) Broadcast(userIDs []uint, notifyType model.NotificationType, message string, itemID uint, itemTitle, itemType string) {
	if len(userIDs) == 0 {
		return
	}

	notifications := make([]model.Notification, len(userIDs))
	for i, userID := range userIDs {
		notifications[i] = model.Notification{
			UserID:    userID,
			Type:      notifyType,
			Message:   message,
			ItemID:    itemID,
			ItemTitle: itemTitle,
			ItemType:  itemType,
		}
	}

	if err := s.NotificationRepo.CreateBatch(notifications); err != nil {
		logger.Log.Warn("群发通知写入失败",
			zap.String("type", string(notifyType)),
			zap.Int("recipients", len(userIDs)),
			zap.Error(err))
	}
}

// NotifyAchievement 实现 AchievementNotifier
func (s *NotificationService) NotifyAchievement(userID, courseID uint, achievement AchievementDetail) {
	s.Notify(userID, model.NotifyAchievement,
		fmt.Sprintf("%s %s - %s", achievement.Icon, achievement.Title, achievement.Description),
		courseID, achievement.Title, "course")
}

func (s *NotificationService) GetNotifications(userID uint, limit int) ([]model.Notification, error) {
	return s.NotificationRepo.ListByUser(userID, limit)
}

func (s *NotificationService) UnreadCount(userID uint) (int64, error) {
	return s.NotificationRepo.UnreadCount(userID)
}

func (s *NotificationService) MarkRead(id, userID uint) error {
	return s.NotificationRepo.MarkRead(id, userID)
}

func (s *NotificationService) MarkAllRead(userID uint) error {
	return s.NotificationRepo.MarkAllRead(userID)
}
