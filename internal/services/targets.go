package services

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sazonapp/sazon-backend/internal/models"
)

// targetInfo is what report intake and the moderation queue need to know
// about a reported entity without navigating the object graph.
type targetInfo struct {
	OwnerID uuid.UUID
	Label   string
}

// lookupTarget resolves a report target to its owning user and a short
// display label. Returns ErrTargetNotFound for missing or soft-deleted
// targets and for unknown target types.
func lookupTarget(db *gorm.DB, targetType string, targetID uuid.UUID) (*targetInfo, error) {
	switch targetType {
	case models.TargetReceta:
		var recipe models.Recipe
		if err := db.First(&recipe, "id = ?", targetID).Error; err != nil {
			return nil, wrapLookupErr(err)
		}
		return &targetInfo{OwnerID: recipe.AuthorID, Label: recipe.Title}, nil

	case models.TargetComentario:
		var comment models.Comment
		if err := db.First(&comment, "id = ?", targetID).Error; err != nil {
			return nil, wrapLookupErr(err)
		}
		return &targetInfo{OwnerID: comment.AuthorID, Label: excerpt(comment.Body, 80)}, nil

	case models.TargetUsuario:
		var user models.User
		if err := db.First(&user, "id = ?", targetID).Error; err != nil {
			return nil, wrapLookupErr(err)
		}
		return &targetInfo{OwnerID: user.ID, Label: user.Username}, nil
	}

	return nil, ErrTargetNotFound
}

func wrapLookupErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrTargetNotFound
	}
	return err
}

func excerpt(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "…"
}
