// internal/compliance/scoring/calculator.go
package scoring

import (
	"fmt"
	"math"

	"chatnil/internal/common/logger"
	"chatnil/internal/models"
)

// Calculator evaluates a deal's compliance across all weighted
// dimensions. It is pure: context loading and persistence live with
// the caller.
type Calculator struct {
	greenThreshold  float64
	yellowThreshold float64
	scoreVersion    string
	logger          logger.Logger
}

func NewCalculator(greenThreshold, yellowThreshold float64, scoreVersion string, log logger.Logger) (*Calculator, error) {
	if yellowThreshold >= greenThreshold {
		return nil, fmt.Errorf("yellow threshold %.1f must be below green threshold %.1f",
			yellowThreshold, greenThreshold)
	}
	if sum := SumWeights(); math.Abs(sum-1.0) > 1e-9 {
		return nil, fmt.Errorf("dimension weights sum to %.4f, expected 1.0", sum)
	}

	return &Calculator{
		greenThreshold:  greenThreshold,
		yellowThreshold: yellowThreshold,
		scoreVersion:    scoreVersion,
		logger:          log.WithFields(map[string]interface{}{"component": "scoring"}),
	}, nil
}

// Score runs every dimension, combines the weighted results, and applies
// the hard gates that no weighted average may soften.
func (c *Calculator) Score(dc *DealContext) (*Result, error) {
	if dc.Deal == nil {
		return nil, fmt.Errorf("deal is required")
	}
	if dc.Athlete == nil {
		return nil, fmt.Errorf("athlete profile is required")
	}

	dimResults := map[string]dimensionResult{
		models.DimPolicyFit:       c.scorePolicyFit(dc),
		models.DimDocumentHygiene: c.scoreDocumentHygiene(dc),
		models.DimFMVVerification: c.scoreFMVVerification(dc),
		models.DimTaxReadiness:    c.scoreTaxReadiness(dc),
		models.DimBrandSafety:     c.scoreBrandSafety(dc),
		models.DimGuardianConsent: c.scoreGuardianConsent(dc),
	}

	result := &Result{ScoreVersion: c.scoreVersion}
	total := 0.0

	for _, dim := range DimensionOrder {
		dr := dimResults[dim]
		score := clamp(dr.Score, 0, 100)
		weight := Weights[dim]
		weighted := score * weight
		total += weighted

		result.Dimensions = append(result.Dimensions, models.DimensionScore{
			Dimension:     dim,
			Score:         score,
			Weight:        weight,
			WeightedScore: weighted,
			Notes:         dr.Notes,
		})
		result.ReasonCodes = append(result.ReasonCodes, dr.ReasonCodes...)
		result.Recommendations = append(result.Recommendations, dr.Recommendations...)
	}

	result.TotalScore = math.Round(total*100) / 100
	result.Status = c.statusFor(result.TotalScore)

	c.applyGates(dc, dimResults, result)

	c.logger.Info("compliance score calculated", map[string]interface{}{
		"dealId":      dc.Deal.ID,
		"athleteId":   dc.Athlete.ID,
		"totalScore":  result.TotalScore,
		"status":      result.Status,
		"reasonCodes": result.ReasonCodes,
	})

	return result, nil
}

func (c *Calculator) statusFor(total float64) string {
	switch {
	case total >= c.greenThreshold:
		return models.StatusGreen
	case total >= c.yellowThreshold:
		return models.StatusYellow
	default:
		return models.StatusRed
	}
}

// applyGates enforces outcomes the weighted sum cannot express. A
// state-level prohibition is always red. For a minor, denied guardian
// consent is red and missing consent caps the status at yellow.
func (c *Calculator) applyGates(dc *DealContext, dims map[string]dimensionResult, result *Result) {
	policy := dims[models.DimPolicyFit]
	for _, code := range policy.ReasonCodes {
		switch code {
		case ReasonNILProhibited, ReasonLevelProhibited, ReasonProhibitedCategory:
			result.Status = models.StatusRed
			return
		}
	}

	if dc.Athlete.IsMinor() {
		switch dc.Athlete.GuardianConsent {
		case models.ConsentGranted:
		case models.ConsentDenied:
			result.Status = models.StatusRed
		default:
			if result.Status == models.StatusGreen {
				result.Status = models.StatusYellow
			}
		}
	}

	if dc.Athlete.IsMinor() && IsRestrictedCategory(dc.Deal.BrandCategory) {
		result.Status = models.StatusRed
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
