package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sazonapp/sazon-backend/internal/dto"
	"github.com/sazonapp/sazon-backend/internal/models"
)

func TestSubmitReport_CreatesPendingReport(t *testing.T) {
	db := newTestDB(t)
	svc := NewReportService(db, testClock())

	author := createUser(t, db, "author", "user")
	reporter := createUser(t, db, "reporter", "user")
	recipe := createRecipe(t, db, author, "Paella")

	report, err := svc.SubmitReport(reporter.ID, models.TargetReceta, recipe.ID, &dto.CreateReportRequest{
		Reason:      models.ReasonSpam,
		Description: "  repite el mismo enlace  ",
	})
	require.NoError(t, err)

	assert.Equal(t, models.ReportPendiente, report.Status)
	assert.Equal(t, reporter.ID, report.ReporterID)
	assert.Equal(t, recipe.ID, report.TargetID)
	assert.Equal(t, "repite el mismo enlace", report.Description)
	assert.Equal(t, testNow, report.CreatedAt)
	assert.Nil(t, report.ReviewedBy)

	// Intake is not an admin action: no audit entry is written.
	var auditCount int64
	require.NoError(t, db.Model(&models.AuditLogEntry{}).Count(&auditCount).Error)
	assert.Zero(t, auditCount)
}

func TestSubmitReport_DuplicatePending(t *testing.T) {
	db := newTestDB(t)
	svc := NewReportService(db, testClock())

	author := createUser(t, db, "author", "user")
	reporter := createUser(t, db, "reporter", "user")
	recipe := createRecipe(t, db, author, "Paella")

	req := &dto.CreateReportRequest{Reason: models.ReasonSpam}
	_, err := svc.SubmitReport(reporter.ID, models.TargetReceta, recipe.ID, req)
	require.NoError(t, err)

	_, err = svc.SubmitReport(reporter.ID, models.TargetReceta, recipe.ID, req)
	assert.ErrorIs(t, err, ErrDuplicatePending)

	var count int64
	require.NoError(t, db.Model(&models.Report{}).Where("status = ?", models.ReportPendiente).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestSubmitReport_DuplicateAllowedAfterResolution(t *testing.T) {
	db := newTestDB(t)
	svc := NewReportService(db, testClock())

	author := createUser(t, db, "author", "user")
	reporter := createUser(t, db, "reporter", "user")
	recipe := createRecipe(t, db, author, "Paella")

	req := &dto.CreateReportRequest{Reason: models.ReasonSpam}
	first, err := svc.SubmitReport(reporter.ID, models.TargetReceta, recipe.ID, req)
	require.NoError(t, err)

	// The partial unique index only covers pendiente rows, so a resolved
	// report does not block a fresh filing against the same target.
	require.NoError(t, db.Model(first).Update("status", models.ReportRechazado).Error)

	_, err = svc.SubmitReport(reporter.ID, models.TargetReceta, recipe.ID, req)
	assert.NoError(t, err)
}

func TestSubmitReport_SelfTargetRejectedForEveryType(t *testing.T) {
	db := newTestDB(t)
	svc := NewReportService(db, testClock())

	user := createUser(t, db, "self", "user")
	recipe := createRecipe(t, db, user, "Mi receta")
	comment := createComment(t, db, recipe, user, "mi comentario")

	cases := []struct {
		targetType string
		targetID   uuid.UUID
		reason     string
	}{
		{models.TargetReceta, recipe.ID, models.ReasonSpam},
		{models.TargetComentario, comment.ID, models.ReasonAcoso},
		{models.TargetUsuario, user.ID, models.ReasonSuplantacion},
	}
	for _, tc := range cases {
		_, err := svc.SubmitReport(user.ID, tc.targetType, tc.targetID, &dto.CreateReportRequest{Reason: tc.reason})
		assert.ErrorIs(t, err, ErrSelfReport, "target type %s", tc.targetType)
	}

	var count int64
	require.NoError(t, db.Model(&models.Report{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestSubmitReport_ReasonSetsPerTargetType(t *testing.T) {
	db := newTestDB(t)
	svc := NewReportService(db, testClock())

	author := createUser(t, db, "author", "user")
	reporter := createUser(t, db, "reporter", "user")
	recipe := createRecipe(t, db, author, "Paella")
	comment := createComment(t, db, recipe, author, "hola")

	// suplantacion only applies to user reports.
	_, err := svc.SubmitReport(reporter.ID, models.TargetReceta, recipe.ID, &dto.CreateReportRequest{Reason: models.ReasonSuplantacion})
	assert.ErrorIs(t, err, ErrInvalidReason)

	// falso is a recipe reason, not a comment one.
	_, err = svc.SubmitReport(reporter.ID, models.TargetComentario, comment.ID, &dto.CreateReportRequest{Reason: models.ReasonFalso})
	assert.ErrorIs(t, err, ErrInvalidReason)

	// plagios does not apply to user reports.
	_, err = svc.SubmitReport(reporter.ID, models.TargetUsuario, author.ID, &dto.CreateReportRequest{Reason: models.ReasonPlagios})
	assert.ErrorIs(t, err, ErrInvalidReason)

	_, err = svc.SubmitReport(reporter.ID, models.TargetUsuario, author.ID, &dto.CreateReportRequest{Reason: models.ReasonAcoso})
	assert.NoError(t, err)
}

func TestSubmitReport_OtroDescriptionLength(t *testing.T) {
	db := newTestDB(t)
	svc := NewReportService(db, testClock())

	author := createUser(t, db, "author", "user")
	reporter := createUser(t, db, "reporter", "user")
	recipe := createRecipe(t, db, author, "Paella")

	_, err := svc.SubmitReport(reporter.ID, models.TargetReceta, recipe.ID, &dto.CreateReportRequest{
		Reason:      models.ReasonOtro,
		Description: "  abcd  ",
	})
	assert.ErrorIs(t, err, ErrShortDescription)

	_, err = svc.SubmitReport(reporter.ID, models.TargetReceta, recipe.ID, &dto.CreateReportRequest{
		Reason:      models.ReasonOtro,
		Description: "abcde",
	})
	assert.NoError(t, err)
}

func TestSubmitReport_TargetNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := NewReportService(db, testClock())

	reporter := createUser(t, db, "reporter", "user")

	_, err := svc.SubmitReport(reporter.ID, models.TargetReceta, uuid.New(), &dto.CreateReportRequest{Reason: models.ReasonSpam})
	assert.ErrorIs(t, err, ErrTargetNotFound)

	_, err = svc.SubmitReport(reporter.ID, "mensaje", uuid.New(), &dto.CreateReportRequest{Reason: models.ReasonSpam})
	assert.ErrorIs(t, err, ErrInvalidTargetType)
}

func TestSubmitReport_SoftDeletedTargetNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := NewReportService(db, testClock())

	author := createUser(t, db, "author", "user")
	reporter := createUser(t, db, "reporter", "user")
	recipe := createRecipe(t, db, author, "Paella")
	require.NoError(t, db.Delete(recipe).Error)

	_, err := svc.SubmitReport(reporter.ID, models.TargetReceta, recipe.ID, &dto.CreateReportRequest{Reason: models.ReasonSpam})
	assert.ErrorIs(t, err, ErrTargetNotFound)
}
