// internal/matchmaking/matcher.go
package matchmaking

import (
	"fmt"
	"math"
	"sort"
	"time"

	"chatnil/internal/common/logger"
	"chatnil/internal/models"
)

// ==========================
// Campaign Matcher
// ==========================

// Candidate pairs an athlete profile with their current valuation.
// A nil estimate is allowed; budget scoring degrades to neutral.
type Candidate struct {
	Athlete *models.AthleteProfile
	FMV     *models.FMVEstimate
}

// Options tune a single matching run.
type Options struct {
	MinMatchScore float64
	MaxResults    int
}

// Matcher ranks athletes against a campaign brief. It is pure: the
// caller loads candidates and persists results.
type Matcher struct {
	logger logger.Logger
}

func NewMatcher(log logger.Logger) *Matcher {
	return &Matcher{
		logger: log.WithFields(map[string]interface{}{"component": "matchmaking"}),
	}
}

// FindMatches scores every candidate, filters by minimum score, and
// returns the top results ordered best first.
func (m *Matcher) FindMatches(campaign *models.Campaign, candidates []Candidate, opts Options) ([]models.CampaignMatch, error) {
	if campaign == nil {
		return nil, fmt.Errorf("campaign is required")
	}

	matches := make([]models.CampaignMatch, 0, len(candidates))
	for _, cand := range candidates {
		if cand.Athlete == nil {
			continue
		}

		match := m.scoreCandidate(campaign, cand)
		if match.MatchScore < opts.MinMatchScore {
			continue
		}
		matches = append(matches, match)
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].MatchScore > matches[j].MatchScore
	})

	if opts.MaxResults > 0 && len(matches) > opts.MaxResults {
		matches = matches[:opts.MaxResults]
	}

	m.logger.Info("campaign matches computed", map[string]interface{}{
		"campaignId": campaign.ID,
		"candidates": len(candidates),
		"matches":    len(matches),
	})

	return matches, nil
}

func (m *Matcher) scoreCandidate(campaign *models.Campaign, cand Candidate) models.CampaignMatch {
	athlete := cand.Athlete

	var fmvRange *models.DealValueRange
	if cand.FMV != nil {
		fmvRange = cand.FMV.RangeFor(campaign.DealType)
	}

	breakdown := models.MatchBreakdown{
		BrandValues:  brandValuesScore(athlete, campaign),
		Interests:    interestScore(athlete, campaign),
		CampaignFit:  campaignFitScore(athlete, campaign),
		Budget:       budgetScore(fmvRange, campaign),
		Geography:    geographyScore(athlete, campaign),
		Demographics: demographicsScore(athlete, campaign),
		Engagement:   engagementScore(athlete, campaign),
	}

	total := math.Round(breakdown.Total())

	return models.CampaignMatch{
		CampaignID:       campaign.ID,
		AthleteID:        athlete.ID,
		AthleteName:      athlete.FirstName + " " + athlete.LastName,
		MatchScore:       total,
		Confidence:       ConfidenceFor(total),
		Breakdown:        breakdown,
		Reasons:          insights(breakdown),
		RecommendedOffer: RecommendedOffer(fmvRange, total, campaign.BudgetMax),
		ComputedAt:       time.Now().UTC(),
	}
}

// ConfidenceFor maps a match score to its confidence band.
func ConfidenceFor(score float64) string {
	switch {
	case score >= 80:
		return models.ConfidenceHigh
	case score >= 60:
		return models.ConfidenceMedium
	default:
		return models.ConfidenceLow
	}
}

// RecommendedOffer derives an offer from the athlete's fair value range
// and the match quality. The offer never exceeds the campaign budget and
// never drops below 90% of the range floor.
func RecommendedOffer(fmvRange *models.DealValueRange, matchScore, budgetMax float64) float64 {
	if fmvRange == nil {
		return 0
	}

	mid := (fmvRange.Low + fmvRange.High) / 2

	var offer float64
	switch {
	case matchScore >= 85:
		offer = mid + (fmvRange.High-mid)*0.5
	case matchScore >= 70:
		offer = mid
	default:
		offer = mid - (mid-fmvRange.Low)*0.3
	}

	if budgetMax > 0 && offer > budgetMax {
		offer = budgetMax
	}
	if floor := fmvRange.Low * 0.9; offer < floor {
		offer = floor
	}

	return math.Round(offer)
}

func insights(b models.MatchBreakdown) []string {
	var out []string

	if b.BrandValues >= 16 {
		out = append(out, "Strong brand alignment")
	} else if b.BrandValues < 10 {
		out = append(out, "Limited brand values alignment")
	}

	if b.Interests >= 12 {
		out = append(out, "Excellent interest match")
	} else if b.Interests < 8 {
		out = append(out, "Interest mismatch with campaign")
	}

	if b.CampaignFit >= 16 {
		out = append(out, "Strong sport and level fit")
	} else if b.CampaignFit < 10 {
		out = append(out, "Poor sport or level fit")
	}

	if b.Budget >= 12 {
		out = append(out, "Budget aligns with fair value")
	} else if b.Budget < 6 {
		out = append(out, "Budget well below fair value")
	}

	if b.Geography >= 8 {
		out = append(out, "Geographic match")
	} else if b.Geography < 5 {
		out = append(out, "Geographic mismatch")
	}

	if b.Engagement >= 8 {
		out = append(out, "Exceeds engagement requirements")
	} else if b.Engagement < 5 {
		out = append(out, "Below engagement requirements")
	}

	return out
}
