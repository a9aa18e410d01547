// internal/store/staterules.go
package store

import (
	"context"
	"database/sql"
	"strings"

	stderrors "chatnil/internal/common/errors"
	"chatnil/internal/common/logger"
	"chatnil/internal/models"

	"github.com/lib/pq"
)

// ==========================
// State Rule Store
// ==========================

type StateRuleStore struct {
	db     *sql.DB
	logger logger.Logger
}

func NewStateRuleStore(db *sql.DB, log logger.Logger) *StateRuleStore {
	return &StateRuleStore{
		db:     db,
		logger: log.WithFields(map[string]interface{}{"store": "staterules"}),
	}
}

// GetByState loads the NIL rules for one state code.
func (s *StateRuleStore) GetByState(ctx context.Context, state string) (*models.StateRule, error) {
	var (
		rule       models.StateRule
		prohibited pq.StringArray
		notes      sql.NullString
	)

	err := s.db.QueryRowContext(ctx, `
		SELECT state, allows_nil, high_school_allowed, college_allowed,
		       prohibited_categories, school_approval_required,
		       disclosure_required, notes, updated_at
		FROM state_rules
		WHERE state = $1`, strings.ToUpper(state)).Scan(
		&rule.State, &rule.AllowsNIL, &rule.HighSchoolAllowed, &rule.CollegeAllowed,
		&prohibited, &rule.SchoolApprovalRequired, &rule.DisclosureRequired,
		&notes, &rule.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, stderrors.NewStateRuleNotFoundError(state)
	}
	if err != nil {
		return nil, stderrors.NewQueryExecutionFailedError("load state rule", err)
	}

	rule.ProhibitedCategories = prohibited
	rule.Notes = notes.String

	return &rule, nil
}

// List returns all state rules ordered by state code.
func (s *StateRuleStore) List(ctx context.Context) ([]*models.StateRule, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT state, allows_nil, high_school_allowed, college_allowed,
		       prohibited_categories, school_approval_required,
		       disclosure_required, notes, updated_at
		FROM state_rules
		ORDER BY state`)
	if err != nil {
		return nil, stderrors.NewQueryExecutionFailedError("list state rules", err)
	}
	defer rows.Close()

	var rules []*models.StateRule
	for rows.Next() {
		var (
			rule       models.StateRule
			prohibited pq.StringArray
			notes      sql.NullString
		)
		if err := rows.Scan(
			&rule.State, &rule.AllowsNIL, &rule.HighSchoolAllowed, &rule.CollegeAllowed,
			&prohibited, &rule.SchoolApprovalRequired, &rule.DisclosureRequired,
			&notes, &rule.UpdatedAt,
		); err != nil {
			return nil, stderrors.NewQueryExecutionFailedError("scan state rule", err)
		}
		rule.ProhibitedCategories = prohibited
		rule.Notes = notes.String
		rules = append(rules, &rule)
	}
	if err := rows.Err(); err != nil {
		return nil, stderrors.NewQueryExecutionFailedError("iterate state rules", err)
	}

	return rules, nil
}
