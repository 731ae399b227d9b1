package repository

import (
	"context"
	"fmt"
	"lms_backend/internal/model"
	"time"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

// NotificationRepository 通知存储，未读数走 Redis 缓存
type NotificationRepository struct {
	DB    *gorm.DB
	Redis *redis.Client
}

func NewNotificationRepository(db *gorm.DB, rdb *redis.Client) *NotificationRepository {
	return &NotificationRepository{DB: db, Redis: rdb}
}

func unreadCountKey(userID uint) string {
	return fmt.Sprintf("notification:unread:%d", userID)
}

func (r *NotificationRepository) Create(notification *model.Notification) error {
	if err := r.DB.Create(notification).Error; err != nil {
		return err
	}
	r.invalidateUnreadCount(notification.UserID)
	return nil
}

// CreateBatch 群发通知（课程更新、直播开始等），一次事务写入
func (r *NotificationRepository) CreateBatch(notifications []model.Notification) error {
	if len(notifications) == 0 {
		return nil
	}
	if err := r.DB.CreateInBatches(notifications, 100).Error; err != nil {
		return err
	}
	for _, n := range notifications {
		r.invalidateUnreadCount(n.UserID)
	}
	return nil
}

func (r *NotificationRepository) ListByUser(userID uint, limit int) ([]model.Notification, error) {
	var list []model.Notification
	query := r.DB.Where("user_id = ?", userID).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&list).Error
	return list, err
}

func (r *NotificationRepository) FindByID(id uint) (*model.Notification, error) {
	var notification model.Notification
	err := r.DB.First(&notification, id).Error
	return &notification, err
}

func (r *NotificationRepository) MarkRead(id, userID uint) error {
	err := r.DB.Model(&model.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("is_read", true).Error
	if err != nil {
		return err
	}
	r.invalidateUnreadCount(userID)
	return nil
}

func (r *NotificationRepository) MarkAllRead(userID uint) error {
	err := r.DB.Model(&model.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true).Error
	if err != nil {
		return err
	}
	r.invalidateUnreadCount(userID)
	return nil
}

// UnreadCount 先查 Redis，未命中再落库并回填，缓存5分钟
func (r *NotificationRepository) UnreadCount(userID uint) (int64, error) {
	ctx := context.Background()
	key := unreadCountKey(userID)

	if r.Redis != nil {
		if cached, err := r.Redis.Get(ctx, key).Int64(); err == nil {
			return cached, nil
		}
	}

	var count int64
	err := r.DB.Model(&model.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	if r.Redis != nil {
		r.Redis.Set(ctx, key, count, 5*time.Minute)
	}
	return count, nil
}

func (r *NotificationRepository) invalidateUnreadCount(userID uint) {
	if r.Redis == nil {
		return
	}
	r.Redis.Del(context.Background(), unreadCountKey(userID))
}
