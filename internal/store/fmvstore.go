// internal/store/fmvstore.go
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	stderrors "chatnil/internal/common/errors"
	"chatnil/internal/common/logger"
	"chatnil/internal/models"

	"github.com/google/uuid"
)

// ==========================
// FMV Estimate Store
// ==========================

type FMVStore struct {
	db     *sql.DB
	logger logger.Logger
}

func NewFMVStore(db *sql.DB, log logger.Logger) *FMVStore {
	return &FMVStore{
		db:     db,
		logger: log.WithFields(map[string]interface{}{"store": "fmv"}),
	}
}

// Upsert stores the latest valuation for an athlete, one row per
// athlete.
func (s *FMVStore) Upsert(ctx context.Context, estimate *models.FMVEstimate) error {
	if estimate.ID == "" {
		estimate.ID = uuid.New().String()
	}
	if estimate.CalculatedAt.IsZero() {
		estimate.CalculatedAt = time.Now().UTC()
	}

	breakdownJSON, err := json.Marshal(estimate.Breakdown)
	if err != nil {
		return stderrors.NewDatabaseInsertFailedError(err)
	}
	dealValuesJSON, err := json.Marshal(estimate.DealValues)
	if err != nil {
		return stderrors.NewDatabaseInsertFailedError(err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO fmv_estimates (
			id, athlete_id, factor, multiplier, tier, breakdown, deal_values,
			calculated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (athlete_id) DO UPDATE SET
			factor        = EXCLUDED.factor,
			multiplier    = EXCLUDED.multiplier,
			tier          = EXCLUDED.tier,
			breakdown     = EXCLUDED.breakdown,
			deal_values   = EXCLUDED.deal_values,
			calculated_at = EXCLUDED.calculated_at`,
		estimate.ID, estimate.AthleteID, estimate.Factor, estimate.Multiplier,
		estimate.Tier, breakdownJSON, dealValuesJSON, estimate.CalculatedAt,
	)
	if err != nil {
		return stderrors.NewDatabaseInsertFailedError(err)
	}

	s.logger.Info("fmv estimate stored", map[string]interface{}{
		"athleteId": estimate.AthleteID,
		"factor":    estimate.Factor,
		"tier":      estimate.Tier,
	})

	return nil
}

// GetByAthleteID loads the current valuation for an athlete, or nil
// when none has been calculated yet.
func (s *FMVStore) GetByAthleteID(ctx context.Context, athleteID string) (*models.FMVEstimate, error) {
	var (
		estimate       models.FMVEstimate
		breakdownJSON  []byte
		dealValuesJSON []byte
	)

	err := s.db.QueryRowContext(ctx, `
		SELECT id, athlete_id, factor, multiplier, tier, breakdown, deal_values,
		       calculated_at
		FROM fmv_estimates
		WHERE athlete_id = $1`, athleteID).Scan(
		&estimate.ID, &estimate.AthleteID, &estimate.Factor, &estimate.Multiplier,
		&estimate.Tier, &breakdownJSON, &dealValuesJSON, &estimate.CalculatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, stderrors.NewQueryExecutionFailedError("load fmv estimate", err)
	}

	if len(breakdownJSON) > 0 {
		if err := json.Unmarshal(breakdownJSON, &estimate.Breakdown); err != nil {
			return nil, stderrors.NewQueryExecutionFailedError("decode fmv breakdown", err)
		}
	}
	if len(dealValuesJSON) > 0 {
		if err := json.Unmarshal(dealValuesJSON, &estimate.DealValues); err != nil {
			return nil, stderrors.NewQueryExecutionFailedError("decode fmv deal values", err)
		}
	}

	return &estimate, nil
}
