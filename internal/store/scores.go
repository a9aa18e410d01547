// internal/store/scores.go
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
	"github.com/lib/pq"
)

// ==========================
// Compliance Score Store
// ==========================

type ScoreStore struct {
	db     *sql.DB
	logger logger.Logger
}

func NewScoreStore(db *sql.DB, log logger.Logger) *ScoreStore {
	return &ScoreStore{
		db:     db,
		logger: log.WithFields(map[string]interface{}{"store": "scores"}),
	}
}

// UpsertAuto stores a calculator result keyed by deal id. A rescore of
// an overridden deal records the fresh numbers but keeps the officer's
// status and state in force until the override is cleared; the
// returned score reflects what is now stored.
func (s *ScoreStore) UpsertAuto(ctx context.Context, score *models.ComplianceScore) (*models.ComplianceScore, error) {
	if score.ID == "" {
		score.ID = uuid.New().String()
	}
	score.State = models.ScoreStateAutoScored
	score.ScoredAt = time.Now().UTC()

	dimensionsJSON, err := json.Marshal(score.Dimensions)
	if err != nil {
		return nil, stderrors.NewDatabaseInsertFailedError(err)
	}

	err = s.db.QueryRowContext(ctx, `
		INSERT INTO compliance_scores (
			id, deal_id, total_score, status, state, dimensions,
			reason_codes, recommendations, score_version, scored_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (deal_id) DO UPDATE SET
			total_score     = EXCLUDED.total_score,
			status          = CASE WHEN compliance_scores.state = $11
			                       THEN compliance_scores.status
			                       ELSE EXCLUDED.status END,
			state           = CASE WHEN compliance_scores.state = $11
			                       THEN compliance_scores.state
			                       ELSE EXCLUDED.state END,
			dimensions      = EXCLUDED.dimensions,
			reason_codes    = EXCLUDED.reason_codes,
			recommendations = EXCLUDED.recommendations,
			score_version   = EXCLUDED.score_version,
			scored_at       = EXCLUDED.scored_at
		RETURNING id, status, state`,
		score.ID, score.DealID, score.TotalScore, score.Status, score.State,
		dimensionsJSON, pq.Array(score.ReasonCodes), pq.Array(score.Recommendations),
		score.ScoreVersion, score.ScoredAt, models.ScoreStateOverridden,
	).Scan(&score.ID, &score.Status, &score.State)
	if err != nil {
		return nil, stderrors.NewDatabaseInsertFailedError(err)
	}

	_, err = s.db.ExecContext(ctx, `
		UPDATE deals SET compliance_status = $2, updated_at = $3 WHERE id = $1`,
		score.DealID, score.Status, score.ScoredAt)
	if err != nil {
		return nil, stderrors.NewQueryExecutionFailedError("mirror deal status", err)
	}

	s.logger.Info("compliance score stored", map[string]interface{}{
		"dealId":     score.DealID,
		"totalScore": score.TotalScore,
		"status":     score.Status,
	})

	return score, nil
}

// GetByDealID loads the stored score for a deal.
func (s *ScoreStore) GetByDealID(ctx context.Context, dealID string) (*models.ComplianceScore, error) {
	var (
		score           models.ComplianceScore
		dimensionsJSON  []byte
		reasonCodes     pq.StringArray
		recommendations pq.StringArray
	)

	err := s.db.QueryRowContext(ctx, `
		SELECT id, deal_id, total_score, status, state, dimensions,
		       reason_codes, recommendations, score_version, scored_at
		FROM compliance_scores
		WHERE deal_id = $1`, dealID).Scan(
		&score.ID, &score.DealID, &score.TotalScore, &score.Status, &score.State,
		&dimensionsJSON, &reasonCodes, &recommendations, &score.ScoreVersion,
		&score.ScoredAt,
	)
	if err == sql.ErrNoRows {
		return nil, stderrors.NewScoreNotFoundError(dealID)
	}
	if err != nil {
		return nil, stderrors.NewQueryExecutionFailedError("load score", err)
	}

	score.ReasonCodes = reasonCodes
	score.Recommendations = recommendations
	if len(dimensionsJSON) > 0 {
		if err := json.Unmarshal(dimensionsJSON, &score.Dimensions); err != nil {
			return nil, stderrors.NewQueryExecutionFailedError("decode dimensions", err)
		}
	}

	return &score, nil
}

// ApplyOverride records an officer decision in one transaction: the
// score flips to the target status in the overridden state and the
// override row preserves the prior state for appeal handling.
func (s *ScoreStore) ApplyOverride(ctx context.Context, override *models.ScoreOverride) (*models.ScoreOverride, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, stderrors.NewDatabaseConnectionFailedError(err)
	}
	defer tx.Rollback()

	var previousState, previousStatus string
	err = tx.QueryRowContext(ctx, `
		SELECT state, status FROM compliance_scores
		WHERE deal_id = $1
		FOR UPDATE`, override.DealID).Scan(&previousState, &previousStatus)
	if err == sql.ErrNoRows {
		return nil, stderrors.NewScoreNotFoundError(override.DealID)
	}
	if err != nil {
		return nil, stderrors.NewQueryExecutionFailedError("lock score", err)
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE compliance_scores
		SET status = $2, state = $3
		WHERE deal_id = $1`,
		override.DealID, override.ToStatus, models.ScoreStateOverridden)
	if err != nil {
		return nil, stderrors.NewQueryExecutionFailedError("apply override", err)
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE deals SET compliance_status = $2, updated_at = $3 WHERE id = $1`,
		override.DealID, override.ToStatus, time.Now().UTC())
	if err != nil {
		return nil, stderrors.NewQueryExecutionFailedError("mirror deal status", err)
	}

	override.ID = uuid.New().String()
	override.PreviousState = previousState
	override.FromStatus = previousStatus
	override.CreatedAt = time.Now().UTC()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO score_overrides (
			id, deal_id, officer_id, previous_state, from_status, to_status,
			justification, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		override.ID, override.DealID, override.OfficerID, override.PreviousState,
		override.FromStatus, override.ToStatus, override.Justification,
		override.CreatedAt,
	)
	if err != nil {
		return nil, stderrors.NewDatabaseInsertFailedError(err)
	}

	if err := tx.Commit(); err != nil {
		return nil, stderrors.NewQueryExecutionFailedError("commit override", err)
	}

	s.logger.Info("score override applied", map[string]interface{}{
		"dealId":     override.DealID,
		"officerId":  override.OfficerID,
		"fromStatus": override.FromStatus,
		"toStatus":   override.ToStatus,
	})

	return override, nil
}

// ClearOverride returns an overridden score to the auto-scored state so
// the next calculator run takes effect again.
func (s *ScoreStore) ClearOverride(ctx context.Context, dealID string) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE compliance_scores
		SET state = $2
		WHERE deal_id = $1 AND state = $3`,
		dealID, models.ScoreStateAutoScored, models.ScoreStateOverridden)
	if err != nil {
		return stderrors.NewQueryExecutionFailedError("clear override", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return stderrors.NewScoreNotFoundError(dealID)
	}
	return nil
}

// StatusSummary counts stored scores per status for the officer
// dashboard.
func (s *ScoreStore) StatusSummary(ctx context.Context) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT status, COUNT(*) FROM compliance_scores GROUP BY status`)
	if err != nil {
		return nil, stderrors.NewQueryExecutionFailedError("status summary", err)
	}
	defer rows.Close()

	summary := map[string]int{
		models.StatusGreen:  0,
		models.StatusYellow: 0,
		models.StatusRed:    0,
	}
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, stderrors.NewQueryExecutionFailedError("scan summary", err)
		}
		summary[status] = count
	}
	if err := rows.Err(); err != nil {
		return nil, stderrors.NewQueryExecutionFailedError("iterate summary", err)
	}

	return summary, nil
}
