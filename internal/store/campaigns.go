// internal/store/campaigns.go
package store

import (
	"context"
	"database/sql"

	stderrors "chatnil/internal/common/errors"
	"chatnil/internal/common/logger"
	"chatnil/internal/models"

	"github.com/lib/pq"
)

// ==========================
// Campaign Store
// ==========================

type CampaignStore struct {
	db     *sql.DB
	logger logger.Logger
}

func NewCampaignStore(db *sql.DB, log logger.Logger) *CampaignStore {
	return &CampaignStore{
		db:     db,
		logger: log.WithFields(map[string]interface{}{"store": "campaigns"}),
	}
}

// GetByID loads one campaign brief.
func (s *CampaignStore) GetByID(ctx context.Context, campaignID string) (*models.Campaign, error) {
	var (
		c               models.Campaign
		primarySports   pq.StringArray
		secondarySports pq.StringArray
		schoolLevels    pq.StringArray
		targetStates    pq.StringArray
		targetCities    pq.StringArray
		desiredValues   pq.StringArray
		desiredCauses   pq.StringArray
		interests       pq.StringArray
		targetGender    sql.NullString
	)

	err := s.db.QueryRowContext(ctx, `
		SELECT id, brand_name, brand_category, title, description,
		       budget_min, budget_max, deal_type,
		       primary_sports, secondary_sports, school_levels,
		       target_states, target_cities, target_gender, age_min, age_max,
		       desired_values, desired_causes, interests,
		       min_followers, max_followers, target_engagement_rate,
		       status, created_at, updated_at
		FROM campaigns
		WHERE id = $1`, campaignID).Scan(
		&c.ID, &c.BrandName, &c.BrandCategory, &c.Title, &c.Description,
		&c.BudgetMin, &c.BudgetMax, &c.DealType,
		&primarySports, &secondarySports, &schoolLevels,
		&targetStates, &targetCities, &targetGender, &c.AgeMin, &c.AgeMax,
		&desiredValues, &desiredCauses, &interests,
		&c.MinFollowers, &c.MaxFollowers, &c.TargetEngagementRate,
		&c.Status, &c.CreatedAt, &c.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, stderrors.NewCampaignNotFoundError(campaignID)
	}
	if err != nil {
		return nil, stderrors.NewQueryExecutionFailedError("load campaign", err)
	}

	c.PrimarySports = primarySports
	c.SecondarySports = secondarySports
	c.SchoolLevels = schoolLevels
	c.TargetStates = targetStates
	c.TargetCities = targetCities
	c.DesiredValues = desiredValues
	c.DesiredCauses = desiredCauses
	c.Interests = interests
	c.TargetGender = targetGender.String

	return &c, nil
}
