// internal/models/fmv.go
package models

import "time"

// Valuation tiers ordered from highest to lowest factor.
const (
	TierElite      = "elite"
	TierHigh       = "high"
	TierMedium     = "medium"
	TierDeveloping = "developing"
	TierEmerging   = "emerging"
)

// FMVBreakdown shows how the valuation factor was assembled. Component
// maxima: social 30, athletic 30, market 20, brand 20.
type FMVBreakdown struct {
	SocialScore   float64 `json:"socialScore"`
	AthleticScore float64 `json:"athleticScore"`
	MarketScore   float64 `json:"marketScore"`
	BrandScore    float64 `json:"brandScore"`
}

// Factor is the combined 0-100 valuation factor.
func (b FMVBreakdown) Factor() float64 {
	return b.SocialScore + b.AthleticScore + b.MarketScore + b.BrandScore
}

// DealValueRange is the estimated fair value band for one deal type.
type DealValueRange struct {
	DealType string  `json:"dealType"`
	Low      float64 `json:"low"`
	Mid      float64 `json:"mid"`
	High     float64 `json:"high"`
}

// FMVEstimate is the persisted fair market value result for an athlete.
type FMVEstimate struct {
	ID           string           `json:"id"`
	AthleteID    string           `json:"athleteId"`
	Factor       float64          `json:"factor"`
	Multiplier   float64          `json:"multiplier"`
	Tier         string           `json:"tier"`
	Breakdown    FMVBreakdown     `json:"breakdown"`
	DealValues   []DealValueRange `json:"dealValues"`
	CalculatedAt time.Time        `json:"calculatedAt"`
}

// RangeFor returns the value range for a deal type, or nil if absent.
func (e *FMVEstimate) RangeFor(dealType string) *DealValueRange {
	for i := range e.DealValues {
		if e.DealValues[i].DealType == dealType {
			return &e.DealValues[i]
		}
	}
	return nil
}
