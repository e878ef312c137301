package services

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/sazonapp/sazon-backend/internal/clock"
	"github.com/sazonapp/sazon-backend/internal/dto"
	"github.com/sazonapp/sazon-backend/internal/models"
)

const defaultAuditPageSize = 50

// AuditService is the only writer of audit_logs. Entries are append-only:
// there is no update or delete method, here or anywhere else.
type AuditService struct {
	db  *gorm.DB
	clk clock.Clock
}

func NewAuditService(db *gorm.DB, clk clock.Clock) *AuditService {
	return &AuditService{db: db, clk: clk}
}

// Append writes one entry on the given handle. Callers inside a
// transaction pass their tx so a failed append aborts the enclosing unit
// of work.
func (s *AuditService) Append(tx *gorm.DB, adminID uuid.UUID, action, entityType string, entityID *uuid.UUID, description string, changes map[string]models.FieldChange, ip string) (*models.AuditLogEntry, error) {
	entry := models.AuditLogEntry{
		ID:          uuid.New(),
		AdminID:     adminID,
		Action:      action,
		EntityType:  entityType,
		EntityID:    entityID,
		Description: description,
		IPAddress:   ip,
		CreatedAt:   s.clk.Now(),
	}

	if len(changes) > 0 {
		b, err := json.Marshal(changes)
		if err != nil {
			return nil, fmt.Errorf("failed to encode audit changes: %w", err)
		}
		entry.Changes = datatypes.JSON(b)
	}

	if err := tx.Create(&entry).Error; err != nil {
		return nil, fmt.Errorf("failed to append audit entry: %w", err)
	}
	return &entry, nil
}

// Query returns entries newest-first, filtered and paged. Default page
// size is 50.
func (s *AuditService) Query(q *dto.AuditLogQuery) ([]models.AuditLogEntry, int64, error) {
	query := s.db.Model(&models.AuditLogEntry{})

	if q.Action != "" {
		query = query.Where("action = ?", q.Action)
	}
	if q.EntityType != "" {
		query = query.Where("entity_type = ?", q.EntityType)
	}
	if q.AdminID != nil {
		query = query.Where("admin_id = ?", *q.AdminID)
	}
	if q.DateFrom != nil {
		query = query.Where("created_at >= ?", *q.DateFrom)
	}
	if q.DateTo != nil {
		query = query.Where("created_at <= ?", *q.DateTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit := q.Limit
	if limit <= 0 || limit > 200 {
		limit = defaultAuditPageSize
	}

	var entries []models.AuditLogEntry
	if err := query.Order("created_at DESC").Limit(limit).Offset(q.Offset).Find(&entries).Error; err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}
