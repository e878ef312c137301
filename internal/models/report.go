package models

import (
	"time"

	"github.com/google/uuid"
)

// Report target types. The wire values match the public report routes
// (/reports/recetas, /reports/usuarios, /reports/comentarios).
const (
	TargetReceta     = "receta"
	TargetUsuario    = "usuario"
	TargetComentario = "comentario"
)

// Report statuses. A report starts as pendiente and is moved exactly once
// by an admin to one of the three terminal states.
const (
	ReportPendiente = "pendiente"
	ReportRevisado  = "revisado"
	ReportRechazado = "rechazado"
	ReportResuelto  = "resuelto"
)

// Report reasons.
const (
	ReasonInapropiado  = "inapropiado"
	ReasonSpam         = "spam"
	ReasonFalso        = "falso"
	ReasonAcoso        = "acoso"
	ReasonPlagios      = "plagios"
	ReasonSuplantacion = "suplantacion"
	ReasonOtro         = "otro"
)

// reasonSets enumerates the valid reasons per target type.
var reasonSets = map[string]map[string]bool{
	TargetReceta: {
		ReasonInapropiado: true, ReasonSpam: true, ReasonFalso: true,
		ReasonPlagios: true, ReasonOtro: true,
	},
	TargetComentario: {
		ReasonInapropiado: true, ReasonSpam: true, ReasonAcoso: true,
		ReasonPlagios: true, ReasonOtro: true,
	},
	TargetUsuario: {
		ReasonInapropiado: true, ReasonSpam: true, ReasonAcoso: true,
		ReasonSuplantacion: true, ReasonOtro: true,
	},
}

// ValidReason reports whether reason is allowed for the given target type.
func ValidReason(targetType, reason string) bool {
	return reasonSets[targetType][reason]
}

// ValidTargetType reports whether t is one of the three report targets.
func ValidTargetType(t string) bool {
	_, ok := reasonSets[t]
	return ok
}

// Report is a user-filed flag against a recipe, user or comment. The
// partial unique index closes the duplicate-submission race at the store
// level: only one pendiente row may exist per (reporter, target) pair,
// while any number of resolved ones may accumulate.
type Report struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	ReporterID    uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:uniq_reports_pendiente,where:status = 'pendiente'" json:"reporter_id"`
	TargetType    string     `gorm:"not null;size:20;uniqueIndex:uniq_reports_pendiente" json:"target_type"`
	TargetID      uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:uniq_reports_pendiente" json:"target_id"`
	Reason        string     `gorm:"not null;size:50" json:"reason"`
	Description   string     `gorm:"size:1000" json:"description,omitempty"`
	Status        string     `gorm:"not null;default:'pendiente';size:20;index" json:"status"`
	AdminResponse string     `gorm:"size:1000" json:"admin_response,omitempty"`
	ReviewedBy    *uuid.UUID `gorm:"type:uuid" json:"reviewed_by,omitempty"`
	ReviewedAt    *time.Time `json:"reviewed_at,omitempty"`
	CreatedAt     time.Time  `gorm:"index" json:"created_at"`
	Reporter      User       `gorm:"foreignKey:ReporterID" json:"-"`
}
