// internal/fmv/calculator.go
package fmv

import (
	"fmt"
	"math"
	"time"

	"chatnil/internal/common/logger"
	"chatnil/internal/models"

	"github.com/google/uuid"
)

// ==========================
// Fair Market Value Calculator
// ==========================

const (
	minMultiplier = 0.5
	maxMultiplier = 2.0
)

// Calculator produces fair market value estimates from an athlete
// profile. It is pure: persistence and rate limiting live with the
// caller.
type Calculator struct {
	logger logger.Logger
}

func NewCalculator(log logger.Logger) *Calculator {
	return &Calculator{
		logger: log.WithFields(map[string]interface{}{"component": "fmv"}),
	}
}

// Result bundles the persisted estimate with the coaching insights
// surfaced alongside it.
type Result struct {
	Estimate    *models.FMVEstimate `json:"estimate"`
	Strengths   []string            `json:"strengths"`
	Weaknesses  []string            `json:"weaknesses"`
	Suggestions []Suggestion        `json:"suggestions"`
}

// Calculate scores the athlete across all four components and derives
// the per-deal-type value ranges.
func (c *Calculator) Calculate(athlete *models.AthleteProfile) (*Result, error) {
	if athlete == nil {
		return nil, fmt.Errorf("athlete profile is required")
	}

	breakdown := models.FMVBreakdown{
		SocialScore:   socialScore(athlete),
		AthleticScore: athleticScore(athlete),
		MarketScore:   marketScore(athlete),
		BrandScore:    brandScore(athlete),
	}

	factor := breakdown.Factor()
	multiplier := Multiplier(factor)

	estimate := &models.FMVEstimate{
		ID:           uuid.New().String(),
		AthleteID:    athlete.ID,
		Factor:       factor,
		Multiplier:   multiplier,
		Tier:         TierFor(factor),
		Breakdown:    breakdown,
		DealValues:   dealValues(multiplier),
		CalculatedAt: time.Now().UTC(),
	}

	c.logger.Info("fair market value calculated", map[string]interface{}{
		"athleteId":  athlete.ID,
		"factor":     factor,
		"multiplier": multiplier,
		"tier":       estimate.Tier,
	})

	return &Result{
		Estimate:    estimate,
		Strengths:   strengths(breakdown, athlete),
		Weaknesses:  weaknesses(breakdown, athlete),
		Suggestions: suggestions(breakdown, athlete),
	}, nil
}

// Multiplier converts a 0-100 factor to the rate multiplier applied
// to base deal values.
func Multiplier(factor float64) float64 {
	m := minMultiplier + (factor/100)*1.5
	if m < minMultiplier {
		return minMultiplier
	}
	if m > maxMultiplier {
		return maxMultiplier
	}
	return m
}

func dealValues(multiplier float64) []models.DealValueRange {
	ranges := make([]models.DealValueRange, 0, len(models.ValidDealTypes))
	for _, dealType := range models.ValidDealTypes {
		base, ok := baseDealValues[dealType]
		if !ok {
			continue
		}
		ranges = append(ranges, models.DealValueRange{
			DealType: dealType,
			Low:      math.Round(base.Low * multiplier),
			Mid:      math.Round(base.Mid * multiplier),
			High:     math.Round(base.High * multiplier),
		})
	}
	return ranges
}
