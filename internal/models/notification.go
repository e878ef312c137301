package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Notification is an in-app message. Reading and acknowledging these is
// allow-listed for blocked accounts so they can still learn why they were
// blocked.
type Notification struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	Title     string         `gorm:"not null;size:255" json:"title"`
	Body      string         `gorm:"size:1000" json:"body"`
	Data      datatypes.JSON `gorm:"type:jsonb;default:'{}'" json:"data"`
	ReadAt    *time.Time     `json:"read_at,omitempty"`
	CreatedAt time.Time      `gorm:"index" json:"created_at"`
	User      User           `gorm:"foreignKey:UserID" json:"-"`
}
