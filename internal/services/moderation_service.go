package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sazonapp/sazon-backend/internal/clock"
	"github.com/sazonapp/sazon-backend/internal/dto"
	"github.com/sazonapp/sazon-backend/internal/models"
)

var (
	ErrReportNotFound   = errors.New("report not found")
	ErrReportNotPending = errors.New("report has already been resolved")
	ErrInvalidStatus    = errors.New("invalid resolution status")
	ErrResponseRequired = errors.New("admin response is required")
	ErrResponseTooLong  = errors.New("admin response exceeds the maximum length")
	ErrInvalidAction    = errors.New("invalid action for this report")
	ErrUserNotFound     = errors.New("user not found")
	ErrAlreadyBlocked   = errors.New("user is already blocked")
	ErrNotBlocked       = errors.New("user is not blocked")
)

// BlockedByModerationMessage is the fixed block reason applied by the
// block_owner cascading action.
const BlockedByModerationMessage = "Cuenta bloqueada por el equipo de moderación tras la revisión de un reporte"

const maxAdminResponse = 1000

// ResolutionAction is the closed set of cascading actions an admin can
// attach to a resolution. Adding a kind means extending parse and the
// switch in applyAction; there is no string dispatch anywhere else.
type ResolutionAction int

const (
	ActionNone ResolutionAction = iota
	ActionDeleteTarget
	ActionBlockOwner
)

// ParseResolutionAction maps the wire value to an action kind.
func ParseResolutionAction(s string) (ResolutionAction, error) {
	switch s {
	case "", "none":
		return ActionNone, nil
	case "delete_target":
		return ActionDeleteTarget, nil
	case "block_user":
		return ActionBlockOwner, nil
	}
	return ActionNone, ErrInvalidAction
}

var terminalStatuses = map[string]bool{
	models.ReportRevisado:  true,
	models.ReportRechazado: true,
	models.ReportResuelto:  true,
}

// Notifier delivers best-effort notifications. Implementations must never
// block the caller or return an error into the resolve path.
type Notifier interface {
	Notify(userID uuid.UUID, title, body string, data map[string]string)
}

// ModerationService is the admin-facing side of the report flow: queue
// listing, one-shot resolution with cascading actions, and direct user
// blocking. Every mutation it performs lands in the audit log.
type ModerationService struct {
	db       *gorm.DB
	audit    *AuditService
	notifier Notifier
	clk      clock.Clock
}

func NewModerationService(db *gorm.DB, audit *AuditService, notifier Notifier, clk clock.Clock) *ModerationService {
	return &ModerationService{db: db, audit: audit, notifier: notifier, clk: clk}
}

// ListReports returns reports newest-first, each joined with a reporter
// summary and a target summary. Targets removed since filing show up as
// tombstones rather than breaking the listing.
func (s *ModerationService) ListReports(status string, limit, offset int) ([]dto.ReportView, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	query := s.db.Model(&models.Report{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var reports []models.Report
	if err := query.Preload("Reporter").Order("created_at DESC").Limit(limit).Offset(offset).Find(&reports).Error; err != nil {
		return nil, 0, err
	}

	views := make([]dto.ReportView, len(reports))
	for i, r := range reports {
		views[i] = dto.ReportView{
			Report: r,
			ReporterSummary: dto.ReporterSummary{
				ID:       r.Reporter.ID,
				Username: r.Reporter.Username,
				Email:    r.Reporter.Email,
			},
			Target: s.targetSummary(r.TargetType, r.TargetID),
		}
	}
	return views, total, nil
}

func (s *ModerationService) targetSummary(targetType string, targetID uuid.UUID) dto.TargetSummary {
	summary := dto.TargetSummary{Type: targetType, ID: targetID.String()}
	info, err := lookupTarget(s.db, targetType, targetID)
	if err != nil {
		summary.Deleted = true
		return summary
	}
	summary.Label = info.Label
	return summary
}

// ResolveReport moves a report out of pendiente exactly once and executes
// the cascading action in the same transaction. The status change is a
// guarded UPDATE (WHERE status = 'pendiente'); when two admins race, the
// loser's update matches zero rows and the whole unit rolls back, so
// delete_target and block_owner can never run twice for one report.
func (s *ModerationService) ResolveReport(adminID, reportID uuid.UUID, req *dto.ResolveReportRequest, ip string) (*models.Report, error) {
	if !terminalStatuses[req.Status] {
		return nil, ErrInvalidStatus
	}
	response := strings.TrimSpace(req.Response)
	if response == "" {
		return nil, ErrResponseRequired
	}
	if len(response) > maxAdminResponse {
		return nil, ErrResponseTooLong
	}

	action, err := ParseResolutionAction(req.Action)
	if err != nil {
		return nil, err
	}

	var report models.Report
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&report, "id = ?", reportID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrReportNotFound
			}
			return err
		}

		// Deletion has no analogue for reported users.
		if action == ActionDeleteTarget && report.TargetType == models.TargetUsuario {
			return ErrInvalidAction
		}

		now := s.clk.Now()
		result := tx.Model(&models.Report{}).
			Where("id = ? AND status = ?", reportID, models.ReportPendiente).
			Updates(map[string]interface{}{
				"status":         req.Status,
				"admin_response": response,
				"reviewed_by":    adminID,
				"reviewed_at":    now,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrReportNotPending
		}

		if err := s.applyAction(tx, action, &report, adminID, ip); err != nil {
			return err
		}

		changes := map[string]models.FieldChange{
			"status": {Old: models.ReportPendiente, New: req.Status},
		}
		desc := fmt.Sprintf("Reporte %s sobre %s %s marcado como %s",
			report.Reason, report.TargetType, report.TargetID, req.Status)
		if _, err := s.audit.Append(tx, adminID, models.AuditResolveReport, "report", &report.ID, desc, changes, ip); err != nil {
			return err
		}

		report.Status = req.Status
		report.AdminResponse = response
		report.ReviewedBy = &adminID
		report.ReviewedAt = &now
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.Notify(report.ReporterID,
			"Tu reporte ha sido revisado",
			"Respuesta del equipo: "+response,
			map[string]string{"report_id": report.ID.String(), "status": report.Status})
	}
	return &report, nil
}

// applyAction executes the cascading action inside the resolve
// transaction and appends its own audit entry. The switch is exhaustive
// over ResolutionAction.
func (s *ModerationService) applyAction(tx *gorm.DB, action ResolutionAction, report *models.Report, adminID uuid.UUID, ip string) error {
	switch action {
	case ActionNone:
		return nil

	case ActionDeleteTarget:
		return s.deleteTarget(tx, report, adminID, ip)

	case ActionBlockOwner:
		return s.blockOwner(tx, report, adminID, ip)
	}
	return ErrInvalidAction
}

func (s *ModerationService) deleteTarget(tx *gorm.DB, report *models.Report, adminID uuid.UUID, ip string) error {
	var auditAction string

	switch report.TargetType {
	case models.TargetReceta:
		result := tx.Delete(&models.Recipe{}, "id = ?", report.TargetID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrTargetNotFound
		}
		auditAction = models.AuditDeleteReceta

	case models.TargetComentario:
		result := tx.Delete(&models.Comment{}, "id = ?", report.TargetID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrTargetNotFound
		}
		auditAction = models.AuditDeleteComentario

	default:
		return ErrInvalidAction
	}

	desc := fmt.Sprintf("%s %s eliminado al resolver el reporte %s", report.TargetType, report.TargetID, report.ID)
	targetID := report.TargetID
	_, err := s.audit.Append(tx, adminID, auditAction, report.TargetType, &targetID, desc, nil, ip)
	return err
}

func (s *ModerationService) blockOwner(tx *gorm.DB, report *models.Report, adminID uuid.UUID, ip string) error {
	info, err := lookupTarget(tx, report.TargetType, report.TargetID)
	if err != nil {
		return err
	}

	var owner models.User
	if err := tx.First(&owner, "id = ?", info.OwnerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	now := s.clk.Now()
	reason := BlockedByModerationMessage
	if err := tx.Model(&owner).Updates(map[string]interface{}{
		"is_blocked":   true,
		"block_reason": reason,
		"blocked_at":   now,
	}).Error; err != nil {
		return err
	}

	changes := map[string]models.FieldChange{
		"is_blocked": {Old: owner.IsBlocked, New: true},
	}
	desc := fmt.Sprintf("Usuario %s bloqueado al resolver el reporte %s", owner.Username, report.ID)
	ownerID := owner.ID
	_, err = s.audit.Append(tx, adminID, models.AuditBlockUserReport, models.TargetUsuario, &ownerID, desc, changes, ip)
	return err
}

// BlockUser blocks an account directly, outside the report flow.
func (s *ModerationService) BlockUser(adminID, userID uuid.UUID, reason, ip string) (*models.User, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		reason = BlockedByModerationMessage
	}

	var user models.User
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&user, "id = ?", userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}
		if user.IsBlocked {
			return ErrAlreadyBlocked
		}

		now := s.clk.Now()
		if err := tx.Model(&user).Updates(map[string]interface{}{
			"is_blocked":   true,
			"block_reason": reason,
			"blocked_at":   now,
		}).Error; err != nil {
			return err
		}

		changes := map[string]models.FieldChange{
			"is_blocked":   {Old: false, New: true},
			"block_reason": {Old: nil, New: reason},
		}
		desc := fmt.Sprintf("Usuario %s bloqueado", user.Username)
		if _, err := s.audit.Append(tx, adminID, models.AuditBlockUser, models.TargetUsuario, &userID, desc, changes, ip); err != nil {
			return err
		}

		user.IsBlocked = true
		user.BlockReason = &reason
		user.BlockedAt = &now
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.Notify(userID, "Tu cuenta ha sido bloqueada", reason, nil)
	}
	return &user, nil
}

// UnblockUser lifts a direct or cascading block.
func (s *ModerationService) UnblockUser(adminID, userID uuid.UUID, ip string) (*models.User, error) {
	var user models.User
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&user, "id = ?", userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}
		if !user.IsBlocked {
			return ErrNotBlocked
		}

		oldReason := user.BlockReason
		if err := tx.Model(&user).Updates(map[string]interface{}{
			"is_blocked":   false,
			"block_reason": nil,
			"blocked_at":   nil,
		}).Error; err != nil {
			return err
		}

		changes := map[string]models.FieldChange{
			"is_blocked":   {Old: true, New: false},
			"block_reason": {Old: oldReason, New: nil},
		}
		desc := fmt.Sprintf("Usuario %s desbloqueado", user.Username)
		if _, err := s.audit.Append(tx, adminID, models.AuditUnblockUser, models.TargetUsuario, &userID, desc, changes, ip); err != nil {
			return err
		}

		user.IsBlocked = false
		user.BlockReason = nil
		user.BlockedAt = nil
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}
