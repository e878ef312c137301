package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is a platform account. Blocking is orthogonal to soft deletion: a
// blocked user keeps all data but loses most privileges platform-wide.
type User struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Email       string         `gorm:"not null;size:255;uniqueIndex" json:"email"`
	Username    string         `gorm:"not null;size:50;uniqueIndex" json:"username"`
	Password    string         `gorm:"not null" json:"-"`
	Role        string         `gorm:"size:20;default:'user'" json:"role"`
	IsBlocked   bool           `gorm:"not null;default:false" json:"is_blocked"`
	BlockReason *string        `gorm:"size:500" json:"block_reason,omitempty"`
	BlockedAt   *time.Time     `json:"blocked_at,omitempty"`
	PushToken   *string        `gorm:"size:255" json:"-"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (u *User) IsAdmin() bool {
	return u.Role == "admin"
}
