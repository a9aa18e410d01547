// internal/models/campaign.go
package models

import "time"

// Campaign statuses.
const (
	CampaignStatusDraft  = "draft"
	CampaignStatusActive = "active"
	CampaignStatusClosed = "closed"
)

// Match confidence bands.
const (
	ConfidenceHigh   = "high"
	ConfidenceMedium = "medium"
	ConfidenceLow    = "low"
)

// Campaign is a brand's sponsorship brief that athletes are matched against.
type Campaign struct {
	ID                   string    `json:"id"`
	BrandName            string    `json:"brandName"`
	BrandCategory        string    `json:"brandCategory"`
	Title                string    `json:"title"`
	Description          string    `json:"description"`
	BudgetMin            float64   `json:"budgetMin"`
	BudgetMax            float64   `json:"budgetMax"`
	DealType             string    `json:"dealType"`
	PrimarySports        []string  `json:"primarySports"`
	SecondarySports      []string  `json:"secondarySports"`
	SchoolLevels         []string  `json:"schoolLevels"`
	TargetStates         []string  `json:"targetStates"`
	TargetCities         []string  `json:"targetCities"`
	TargetGender         string    `json:"targetGender,omitempty"`
	AgeMin               int       `json:"ageMin,omitempty"`
	AgeMax               int       `json:"ageMax,omitempty"`
	DesiredValues        []string  `json:"desiredValues"`
	DesiredCauses        []string  `json:"desiredCauses"`
	Interests            []string  `json:"interests"`
	MinFollowers         int       `json:"minFollowers,omitempty"`
	MaxFollowers         int       `json:"maxFollowers,omitempty"`
	TargetEngagementRate float64   `json:"targetEngagementRate,omitempty"`
	Status               string    `json:"status"`
	CreatedAt            time.Time `json:"createdAt"`
	UpdatedAt            time.Time `json:"updatedAt"`
}

// MatchBreakdown shows the per-factor contribution to a match score.
// Component maxima: brandValues 20, interests 15, campaignFit 20,
// budget 15, geography 10, demographics 10, engagement 10.
type MatchBreakdown struct {
	BrandValues  float64 `json:"brandValues"`
	Interests    float64 `json:"interests"`
	CampaignFit  float64 `json:"campaignFit"`
	Budget       float64 `json:"budget"`
	Geography    float64 `json:"geography"`
	Demographics float64 `json:"demographics"`
	Engagement   float64 `json:"engagement"`
}

// Total sums the factor contributions into the 0-100 match score.
func (b MatchBreakdown) Total() float64 {
	return b.BrandValues + b.Interests + b.CampaignFit + b.Budget +
		b.Geography + b.Demographics + b.Engagement
}

// CampaignMatch is one scored athlete-campaign pairing.
type CampaignMatch struct {
	CampaignID       string         `json:"campaignId"`
	AthleteID        string         `json:"athleteId"`
	AthleteName      string         `json:"athleteName"`
	MatchScore       float64        `json:"matchScore"`
	Confidence       string         `json:"confidence"`
	Breakdown        MatchBreakdown `json:"breakdown"`
	Reasons          []string       `json:"reasons"`
	RecommendedOffer float64        `json:"recommendedOffer"`
	ComputedAt       time.Time      `json:"computedAt"`
}
