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
	ErrTargetNotFound    = errors.New("report target not found")
	ErrSelfReport        = errors.New("cannot report your own content")
	ErrInvalidReason     = errors.New("invalid reason for this target type")
	ErrShortDescription  = errors.New("description must be at least 5 characters when reason is otro")
	ErrDuplicatePending  = errors.New("a pending report for this target already exists")
	ErrInvalidTargetType = errors.New("invalid target type")
)

const minOtroDescription = 5

// ReportService handles report intake from end users. Intake writes no
// audit entries and notifies nobody: the admin queue is pull-based.
type ReportService struct {
	db  *gorm.DB
	clk clock.Clock
}

func NewReportService(db *gorm.DB, clk clock.Clock) *ReportService {
	return &ReportService{db: db, clk: clk}
}

// SubmitReport validates and persists a new pendiente report. Duplicate
// detection rides on the partial unique index over (reporter, target,
// pendiente): a concurrent duplicate insert surfaces as
// gorm.ErrDuplicatedKey and is mapped to ErrDuplicatePending, so two
// racing submissions can never both create a pendiente row.
func (s *ReportService) SubmitReport(reporterID uuid.UUID, targetType string, targetID uuid.UUID, req *dto.CreateReportRequest) (*models.Report, error) {
	if !models.ValidTargetType(targetType) {
		return nil, ErrInvalidTargetType
	}
	if !models.ValidReason(targetType, req.Reason) {
		return nil, ErrInvalidReason
	}
	if req.Reason == models.ReasonOtro && len(strings.TrimSpace(req.Description)) < minOtroDescription {
		return nil, ErrShortDescription
	}

	target, err := lookupTarget(s.db, targetType, targetID)
	if err != nil {
		return nil, err
	}
	if target.OwnerID == reporterID {
		return nil, ErrSelfReport
	}

	report := models.Report{
		ID:          uuid.New(),
		ReporterID:  reporterID,
		TargetType:  targetType,
		TargetID:    targetID,
		Reason:      req.Reason,
		Description: strings.TrimSpace(req.Description),
		Status:      models.ReportPendiente,
		CreatedAt:   s.clk.Now(),
	}

	if err := s.db.Create(&report).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicatePending
		}
		return nil, fmt.Errorf("failed to create report: %w", err)
	}
	return &report, nil
}
