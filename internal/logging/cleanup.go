package logging

import (
	"log/slog"
	"time"

	"gorm.io/gorm"

	"github.com/sazonapp/sazon-backend/internal/models"
)

// StartCleanup runs a daily goroutine that deletes system_logs older than
// the retention window. Audit logs are exempt: they are never deleted.
func StartCleanup(db *gorm.DB, retentionDays int, done chan struct{}) {
	if retentionDays <= 0 {
		retentionDays = 30
	}
	go func() {
		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				cutoff := time.Now().AddDate(0, 0, -retentionDays)
				result := db.Where("timestamp < ?", cutoff).Delete(&models.SystemLog{})
				if result.Error != nil {
					slog.Error("log cleanup failed", "error", result.Error)
				} else if result.RowsAffected > 0 {
					slog.Info("log cleanup completed", "deleted", result.RowsAffected)
				}
			case <-done:
				return
			}
		}
	}()
}
