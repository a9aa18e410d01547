// internal/store/deals_test.go
package store

import (
	"context"
	"database/sql"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	stderrors "chatnil/internal/common/errors"
	"chatnil/internal/common/logger"
	"chatnil/internal/models"
)

// ==========================
// Test Helper Functions
// ==========================

func createIncomingDeal() *models.Deal {
	return &models.Deal{
		AthleteID:          "athlete-1",
		BrandName:          "Local Cards",
		BrandCategory:      "retail",
		DealType:           models.DealTypeAutograph,
		CompensationAmount: 500,
		Description:        "Signing session at the spring showcase",
		Deliverables:       []string{"2 hour signing"},
		ContractDocumentID: "doc-1",
	}
}

// ==========================
// Create Tests
// ==========================

func TestDealStore_Create(t *testing.T) {
	db, mock := setupMockDB(t)
	store := NewDealStore(db, logger.NewTestLogger(t))

	mock.ExpectQuery("SELECT EXISTS").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectExec("INSERT INTO deals").
		WillReturnResult(sqlmock.NewResult(0, 1))

	deal, err := store.Create(context.Background(), createIncomingDeal())
	require.NoError(t, err)

	assert.NotEmpty(t, deal.ID)
	assert.Equal(t, models.DealStatusSubmitted, deal.Status)
	assert.False(t, deal.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDealStore_Create_Duplicate(t *testing.T) {
	db, mock := setupMockDB(t)
	store := NewDealStore(db, logger.NewTestLogger(t))

	mock.ExpectQuery("SELECT EXISTS").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	_, err := store.Create(context.Background(), createIncomingDeal())
	require.Error(t, err)

	stdErr := stderrors.AsStandardError(err)
	assert.Equal(t, stderrors.ErrCodeDuplicateDeal, stdErr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ==========================
// Load Tests
// ==========================

func TestDealStore_GetByID(t *testing.T) {
	db, mock := setupMockDB(t)
	store := NewDealStore(db, logger.NewTestLogger(t))

	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{
		"id", "athlete_id", "campaign_id", "brand_name", "brand_category",
		"deal_type", "compensation_amount", "description", "deliverables",
		"start_date", "end_date", "uses_school_marks", "contract_document_id",
		"status", "compliance_status", "created_at", "updated_at",
	}).AddRow(
		"deal-1", "athlete-1", nil, "Local Cards", "retail",
		models.DealTypeAutograph, 500.0, "Signing session", "{\"2 hour signing\"}",
		now, now.Add(48*time.Hour), false, "doc-1",
		models.DealStatusSubmitted, models.StatusYellow, now, now,
	)

	mock.ExpectQuery("SELECT (.+) FROM deals").
		WithArgs("deal-1").
		WillReturnRows(rows)

	deal, err := store.GetByID(context.Background(), "deal-1")
	require.NoError(t, err)

	assert.Equal(t, "athlete-1", deal.AthleteID)
	assert.Empty(t, deal.CampaignID)
	assert.Equal(t, 500.0, deal.CompensationAmount)
	assert.Equal(t, []string{"2 hour signing"}, deal.Deliverables)
	assert.Equal(t, models.StatusYellow, deal.ComplianceStatus)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDealStore_GetByID_NotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	store := NewDealStore(db, logger.NewTestLogger(t))

	mock.ExpectQuery("SELECT (.+) FROM deals").
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := store.GetByID(context.Background(), "missing")
	require.Error(t, err)

	stdErr := stderrors.AsStandardError(err)
	assert.Equal(t, stderrors.ErrCodeDealNotFound, stdErr.Code)
}

// ==========================
// Status Tests
// ==========================

func TestDealStore_UpdateStatus(t *testing.T) {
	db, mock := setupMockDB(t)
	store := NewDealStore(db, logger.NewTestLogger(t))

	mock.ExpectExec("UPDATE deals").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := store.UpdateStatus(context.Background(), "deal-1", models.DealStatusActive)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDealStore_UpdateStatus_NotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	store := NewDealStore(db, logger.NewTestLogger(t))

	mock.ExpectExec("UPDATE deals").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := store.UpdateStatus(context.Background(), "missing", models.DealStatusActive)
	require.Error(t, err)

	stdErr := stderrors.AsStandardError(err)
	assert.Equal(t, stderrors.ErrCodeDealNotFound, stdErr.Code)
}
