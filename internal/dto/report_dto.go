package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/sazonapp/sazon-backend/internal/models"
)

type CreateReportRequest struct {
	Reason      string `json:"reason"`
	Description string `json:"description"`
}

// ReporterSummary is the slice of the reporting user shown in the admin
// queue.
type ReporterSummary struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
}

// TargetSummary describes the reported entity. Deleted is set when the
// target no longer exists (e.g. removed by a previous resolution).
type TargetSummary struct {
	Type    string `json:"type"`
	ID      string `json:"id"`
	Label   string `json:"label,omitempty"`
	Deleted bool   `json:"deleted,omitempty"`
}

type ReportView struct {
	models.Report
	ReporterSummary ReporterSummary `json:"reporter"`
	Target          TargetSummary   `json:"target"`
}

type ReportListResponse struct {
	Reports []ReportView `json:"reports"`
	Total   int64        `json:"total"`
	Limit   int          `json:"limit"`
	Offset  int          `json:"offset"`
}

type ResolveReportRequest struct {
	Status   string `json:"status"`
	Response string `json:"response"`
	Action   string `json:"action,omitempty"`
}

type AuditLogQuery struct {
	Action     string     `json:"action"`
	EntityType string     `json:"entity_type"`
	AdminID    *uuid.UUID `json:"admin_id"`
	DateFrom   *time.Time `json:"date_from"`
	DateTo     *time.Time `json:"date_to"`
	Limit      int        `json:"limit"`
	Offset     int        `json:"offset"`
}

type BlockUserRequest struct {
	Reason string `json:"reason"`
}
