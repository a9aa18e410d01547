// internal/compliance/scoring/models.go
package scoring

import "chatnil/internal/models"

// DealContext bundles everything the calculator needs about one deal.
// Loading it is the caller's job; the calculator itself is pure.
type DealContext struct {
	Deal      *models.Deal
	Athlete   *models.AthleteProfile
	StateRule *models.StateRule
	FMV       *models.FMVEstimate
}

// dimensionResult is the internal outcome of scoring one dimension
// before weighting.
type dimensionResult struct {
	Score           float64
	Notes           string
	ReasonCodes     []string
	Recommendations []string
}

// Result is the outcome of a scoring run before persistence.
type Result struct {
	TotalScore      float64                 `json:"totalScore"`
	Status          string                  `json:"status"`
	Dimensions      []models.DimensionScore `json:"dimensions"`
	ReasonCodes     []string                `json:"reasonCodes,omitempty"`
	Recommendations []string                `json:"recommendations,omitempty"`
	ScoreVersion    string                  `json:"scoreVersion"`
}
