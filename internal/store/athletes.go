// internal/store/athletes.go
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"chatnil/internal/common/database"
	stderrors "chatnil/internal/common/errors"
	"chatnil/internal/common/logger"
	"chatnil/internal/models"

	"github.com/lib/pq"
)

// ==========================
// Athlete Store
// ==========================

const athleteCacheKeyPrefix = "athlete:profile:"

// AthleteStore reads athlete profiles from Postgres with a Redis
// read-through cache in front.
type AthleteStore struct {
	db       *sql.DB
	redis    *database.RedisClient
	cacheTTL time.Duration
	logger   logger.Logger
}

func NewAthleteStore(db *sql.DB, redis *database.RedisClient, cacheTTL time.Duration, log logger.Logger) *AthleteStore {
	return &AthleteStore{
		db:       db,
		redis:    redis,
		cacheTTL: cacheTTL,
		logger:   log.WithFields(map[string]interface{}{"store": "athletes"}),
	}
}

// GetByID loads an athlete profile, preferring the cache. Cache
// failures are logged and fall through to Postgres.
func (s *AthleteStore) GetByID(ctx context.Context, athleteID string) (*models.AthleteProfile, error) {
	cacheKey := athleteCacheKeyPrefix + athleteID

	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, cacheKey); err == nil && cached != "" {
			var profile models.AthleteProfile
			if err := json.Unmarshal([]byte(cached), &profile); err == nil {
				return &profile, nil
			}
			s.logger.Warn("corrupt athlete cache entry, reloading", map[string]interface{}{
				"athleteId": athleteID,
			})
		}
	}

	profile, err := s.loadProfile(ctx, athleteID)
	if err != nil {
		return nil, err
	}

	if s.redis != nil {
		if data, err := json.Marshal(profile); err == nil {
			if err := s.redis.Set(ctx, cacheKey, string(data), s.cacheTTL); err != nil {
				s.logger.Warn("athlete cache write failed", map[string]interface{}{
					"athleteId": athleteID,
					"error":     err.Error(),
				})
			}
		}
	}

	return profile, nil
}

func (s *AthleteStore) loadProfile(ctx context.Context, athleteID string) (*models.AthleteProfile, error) {
	var (
		profile     models.AthleteProfile
		socialJSON  []byte
		dateOfBirth sql.NullTime
		interests   pq.StringArray
		values      pq.StringArray
		causes      pq.StringArray
	)

	err := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, first_name, last_name, email, phone, gender, date_of_birth,
		       sport, position, school, school_level, division, state, city,
		       national_rank, state_rank, guardian_consent,
		       social_accounts, interests, values, causes, content_samples,
		       active_deal_count, total_earnings, deal_success_rate,
		       tax_forms_on_file, w9_submitted, school_approval_on_file,
		       created_at, updated_at
		FROM athletes
		WHERE id = $1`, athleteID).Scan(
		&profile.ID, &profile.UserID, &profile.FirstName, &profile.LastName,
		&profile.Email, &profile.Phone, &profile.Gender, &dateOfBirth,
		&profile.Sport, &profile.Position, &profile.School, &profile.SchoolLevel,
		&profile.Division, &profile.State, &profile.City,
		&profile.NationalRank, &profile.StateRank, &profile.GuardianConsent,
		&socialJSON, &interests, &values, &causes, &profile.ContentSamples,
		&profile.ActiveDealCount, &profile.TotalEarnings, &profile.DealSuccessRate,
		&profile.TaxFormsOnFile, &profile.W9Submitted, &profile.SchoolApprovalOn,
		&profile.CreatedAt, &profile.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, stderrors.NewAthleteNotFoundError(athleteID)
	}
	if err != nil {
		return nil, stderrors.NewQueryExecutionFailedError("load athlete", err)
	}

	if dateOfBirth.Valid {
		profile.DateOfBirth = dateOfBirth.Time
	}
	profile.Interests = interests
	profile.Values = values
	profile.Causes = causes

	if len(socialJSON) > 0 {
		if err := json.Unmarshal(socialJSON, &profile.SocialAccounts); err != nil {
			return nil, stderrors.NewQueryExecutionFailedError("decode social accounts", err)
		}
	}

	return &profile, nil
}

// ListCandidates returns active athletes matching the campaign's hard
// filters. Filtering happens in SQL, not application code.
func (s *AthleteStore) ListCandidates(ctx context.Context, campaign *models.Campaign) ([]*models.AthleteProfile, error) {
	query := `
		SELECT id FROM athletes
		WHERE ($1::text[] IS NULL OR cardinality($1::text[]) = 0 OR school_level = ANY($1))
		  AND ($2::text[] IS NULL OR cardinality($2::text[]) = 0 OR state = ANY($2))
		  AND ($3::text[] IS NULL OR cardinality($3::text[]) = 0
		       OR LOWER(sport) = ANY(SELECT LOWER(x) FROM unnest($3::text[]) AS x))
		ORDER BY created_at
		LIMIT 500`

	sports := append(append([]string{}, campaign.PrimarySports...), campaign.SecondarySports...)

	rows, err := s.db.QueryContext(ctx, query,
		pq.Array(campaign.SchoolLevels),
		pq.Array(campaign.TargetStates),
		pq.Array(sports),
	)
	if err != nil {
		return nil, stderrors.NewQueryExecutionFailedError("list candidates", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, stderrors.NewQueryExecutionFailedError("scan candidate", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, stderrors.NewQueryExecutionFailedError("iterate candidates", err)
	}

	profiles := make([]*models.AthleteProfile, 0, len(ids))
	for _, id := range ids {
		profile, err := s.GetByID(ctx, id)
		if err != nil {
			s.logger.Warn("skipping unloadable candidate", map[string]interface{}{
				"athleteId": id,
				"error":     err.Error(),
			})
			continue
		}
		profiles = append(profiles, profile)
	}

	return profiles, nil
}

// InvalidateCache drops the cached profile after a write elsewhere.
func (s *AthleteStore) InvalidateCache(ctx context.Context, athleteID string) {
	if s.redis == nil {
		return
	}
	if err := s.redis.Del(ctx, athleteCacheKeyPrefix+athleteID); err != nil {
		s.logger.Warn("athlete cache invalidation failed", map[string]interface{}{
			"athleteId": athleteID,
			"error":     err.Error(),
		})
	}
}
