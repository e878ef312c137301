package services

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/sazonapp/sazon-backend/internal/clock"
	"github.com/sazonapp/sazon-backend/internal/models"
	"github.com/sazonapp/sazon-backend/internal/notify"
)

var ErrNotificationNotFound = errors.New("notification not found")

// NotificationService persists in-app notifications and pushes them to
// the external gateway. It implements Notifier: delivery runs in its own
// goroutine and never reports failure to the caller.
type NotificationService struct {
	db     *gorm.DB
	pusher notify.Pusher
	clk    clock.Clock
}

func NewNotificationService(db *gorm.DB, pusher notify.Pusher, clk clock.Clock) *NotificationService {
	return &NotificationService{db: db, pusher: pusher, clk: clk}
}

// Notify stores an in-app notification and fires a best-effort push.
func (s *NotificationService) Notify(userID uuid.UUID, title, body string, data map[string]string) {
	notification := models.Notification{
		ID:        uuid.New(),
		UserID:    userID,
		Title:     title,
		Body:      body,
		CreatedAt: s.clk.Now(),
	}
	if len(data) > 0 {
		if b, err := json.Marshal(data); err == nil {
			notification.Data = datatypes.JSON(b)
		}
	}

	if err := s.db.Create(&notification).Error; err != nil {
		slog.Error("failed to store notification", "error", err, "user_id", userID)
		return
	}

	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil || user.PushToken == nil {
		return
	}

	token := *user.PushToken
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		notify.LogFailure(s.pusher.Push(ctx, token, title, body, data), token)
	}()
}

func (s *NotificationService) List(userID uuid.UUID, limit, offset int) ([]models.Notification, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	query := s.db.Model(&models.Notification{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var notifications []models.Notification
	if err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&notifications).Error; err != nil {
		return nil, 0, err
	}
	return notifications, total, nil
}

func (s *NotificationService) MarkRead(userID, notificationID uuid.UUID) error {
	result := s.db.Model(&models.Notification{}).
		Where("id = ? AND user_id = ? AND read_at IS NULL", notificationID, userID).
		Update("read_at", s.clk.Now())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}
