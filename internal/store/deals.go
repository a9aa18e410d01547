// internal/store/deals.go
package store

import (
	"context"
	"database/sql"
	"time"

	stderrors "chatnil/internal/common/errors"
	"chatnil/internal/common/logger"
	"chatnil/internal/models"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// ==========================
// Deal Store
// ==========================

type DealStore struct {
	db     *sql.DB
	logger logger.Logger
}

func NewDealStore(db *sql.DB, log logger.Logger) *DealStore {
	return &DealStore{
		db:     db,
		logger: log.WithFields(map[string]interface{}{"store": "deals"}),
	}
}

// Create inserts a new deal. An active deal with the same athlete,
// brand, and deal type is rejected as a duplicate.
func (s *DealStore) Create(ctx context.Context, deal *models.Deal) (*models.Deal, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM deals
			WHERE athlete_id = $1 AND brand_name = $2 AND deal_type = $3
			  AND status NOT IN ($4, $5)
		)`, deal.AthleteID, deal.BrandName, deal.DealType,
		models.DealStatusCompleted, models.DealStatusCancelled).Scan(&exists)
	if err != nil {
		return nil, stderrors.NewQueryExecutionFailedError("duplicate check", err)
	}
	if exists {
		return nil, stderrors.NewDuplicateDealError(deal.AthleteID + "/" + deal.BrandName)
	}

	if deal.ID == "" {
		deal.ID = uuid.New().String()
	}
	if deal.Status == "" {
		deal.Status = models.DealStatusSubmitted
	}
	if deal.ComplianceStatus == "" {
		deal.ComplianceStatus = models.ScoreStateUnscored
	}
	now := time.Now().UTC()
	deal.CreatedAt = now
	deal.UpdatedAt = now

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO deals (
			id, athlete_id, campaign_id, brand_name, brand_category, deal_type,
			compensation_amount, description, deliverables, start_date, end_date,
			uses_school_marks, contract_document_id, status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $15)`,
		deal.ID, deal.AthleteID, nullString(deal.CampaignID), deal.BrandName,
		deal.BrandCategory, deal.DealType, deal.CompensationAmount, deal.Description,
		pq.Array(deal.Deliverables), nullTime(deal.StartDate), nullTime(deal.EndDate),
		deal.UsesSchoolMarks, nullString(deal.ContractDocumentID), deal.Status, now,
	)
	if err != nil {
		return nil, stderrors.NewDatabaseInsertFailedError(err)
	}

	s.logger.Info("deal created", map[string]interface{}{
		"dealId":    deal.ID,
		"athleteId": deal.AthleteID,
		"dealType":  deal.DealType,
	})

	return deal, nil
}

// GetByID loads one deal.
func (s *DealStore) GetByID(ctx context.Context, dealID string) (*models.Deal, error) {
	var (
		deal         models.Deal
		campaignID   sql.NullString
		contractID   sql.NullString
		startDate    sql.NullTime
		endDate      sql.NullTime
		deliverables pq.StringArray
	)

	err := s.db.QueryRowContext(ctx, `
		SELECT id, athlete_id, campaign_id, brand_name, brand_category, deal_type,
		       compensation_amount, description, deliverables, start_date, end_date,
		       uses_school_marks, contract_document_id, status, compliance_status,
		       created_at, updated_at
		FROM deals
		WHERE id = $1`, dealID).Scan(
		&deal.ID, &deal.AthleteID, &campaignID, &deal.BrandName, &deal.BrandCategory,
		&deal.DealType, &deal.CompensationAmount, &deal.Description, &deliverables,
		&startDate, &endDate, &deal.UsesSchoolMarks, &contractID, &deal.Status,
		&deal.ComplianceStatus, &deal.CreatedAt, &deal.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, stderrors.NewDealNotFoundError(dealID)
	}
	if err != nil {
		return nil, stderrors.NewQueryExecutionFailedError("load deal", err)
	}

	deal.CampaignID = campaignID.String
	deal.ContractDocumentID = contractID.String
	deal.Deliverables = deliverables
	if startDate.Valid {
		deal.StartDate = startDate.Time
	}
	if endDate.Valid {
		deal.EndDate = endDate.Time
	}

	return &deal, nil
}

// List returns deals filtered by status, newest first. An empty status
// returns all deals.
func (s *DealStore) List(ctx context.Context, status string, page, limit int) ([]*models.Deal, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id FROM deals
		WHERE ($1 = '' OR status = $1)
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`, status, limit, (page-1)*limit)
	if err != nil {
		return nil, stderrors.NewQueryExecutionFailedError("list deals", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, stderrors.NewQueryExecutionFailedError("scan deal id", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, stderrors.NewQueryExecutionFailedError("iterate deals", err)
	}

	deals := make([]*models.Deal, 0, len(ids))
	for _, id := range ids {
		deal, err := s.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		deals = append(deals, deal)
	}

	return deals, nil
}

// UpdateStatus moves a deal to a new lifecycle status.
func (s *DealStore) UpdateStatus(ctx context.Context, dealID, status string) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE deals SET status = $2, updated_at = $3 WHERE id = $1`,
		dealID, status, time.Now().UTC())
	if err != nil {
		return stderrors.NewQueryExecutionFailedError("update deal status", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return stderrors.NewDealNotFoundError(dealID)
	}
	return nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullTime(t time.Time) sql.NullTime {
	return sql.NullTime{Time: t, Valid: !t.IsZero()}
}
