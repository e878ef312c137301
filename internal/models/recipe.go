package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Recipe carries only the fields the moderation core needs. A blocked
// recipe stays visible to its author and to admins but is hidden from
// public discovery.
type Recipe struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	AuthorID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"author_id"`
	Title       string         `gorm:"not null;size:255" json:"title"`
	Description string         `gorm:"type:text" json:"description"`
	Likes       int            `gorm:"not null;default:0" json:"likes"`
	IsBlocked   bool           `gorm:"not null;default:false" json:"is_blocked"`
	BlockReason *string        `gorm:"size:500" json:"block_reason,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
	Author      User           `gorm:"foreignKey:AuthorID" json:"-"`
}

type Comment struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	RecipeID  uuid.UUID      `gorm:"type:uuid;not null;index" json:"recipe_id"`
	AuthorID  uuid.UUID      `gorm:"type:uuid;not null;index" json:"author_id"`
	Body      string         `gorm:"not null;size:2000" json:"body"`
	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	Author    User           `gorm:"foreignKey:AuthorID" json:"-"`
}
