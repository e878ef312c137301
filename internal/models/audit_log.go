package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Audit actions. Cascading actions triggered by a report resolution are
// logged under their own verbs, distinct from the resolution itself.
const (
	AuditResolveReport    = "resolve_report"
	AuditBlockUser        = "block_user"
	AuditUnblockUser      = "unblock_user"
	AuditDeleteReceta     = "eliminar_receta_reporte"
	AuditDeleteComentario = "eliminar_comentario_reporte"
	AuditBlockUserReport  = "bloquear_usuario_reporte"
)

// AuditLogEntry is an immutable record of one administrative mutation.
// Rows are only ever inserted; no update or delete path exists anywhere
// in the codebase.
type AuditLogEntry struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	AdminID     uuid.UUID      `gorm:"type:uuid;not null;index" json:"admin_id"`
	Action      string         `gorm:"not null;size:50;index" json:"action"`
	EntityType  string         `gorm:"not null;size:50;index" json:"entity_type"`
	EntityID    *uuid.UUID     `gorm:"type:uuid" json:"entity_id,omitempty"`
	Description string         `gorm:"size:1000" json:"description"`
	Changes     datatypes.JSON `gorm:"type:jsonb;default:'{}'" json:"changes"`
	IPAddress   string         `gorm:"size:45" json:"ip_address"`
	CreatedAt   time.Time      `gorm:"not null;index" json:"created_at"`
	Admin       User           `gorm:"foreignKey:AdminID" json:"-"`
}

func (AuditLogEntry) TableName() string {
	return "audit_logs"
}

// FieldChange is one before/after pair inside AuditLogEntry.Changes.
type FieldChange struct {
	Old interface{} `json:"old"`
	New interface{} `json:"new"`
}
