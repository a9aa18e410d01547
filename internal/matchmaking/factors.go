// internal/matchmaking/factors.go
package matchmaking

import (
	"strings"

	"chatnil/internal/models"
)

// ==========================
// Match Factors
// ==========================

// brandValuesScore measures shared values and causes (0-20 points).
// Values alignment 0-12, causes alignment 0-8. Campaigns with no
// stated values or causes grant partial credit.
func brandValuesScore(athlete *models.AthleteProfile, campaign *models.Campaign) float64 {
	score := 0.0

	if len(campaign.DesiredValues) > 0 {
		matched := countMatches(athlete.Values, campaign.DesiredValues)
		score += ratio(matched, len(campaign.DesiredValues)) * 12
	} else {
		score += 6
	}

	if len(campaign.DesiredCauses) > 0 {
		matched := countMatches(athlete.Causes, campaign.DesiredCauses)
		score += ratio(matched, len(campaign.DesiredCauses)) * 8
	} else {
		score += 4
	}

	return minf(score, 20)
}

// interestScore measures lifestyle and content overlap (0-15 points).
func interestScore(athlete *models.AthleteProfile, campaign *models.Campaign) float64 {
	if len(campaign.Interests) == 0 {
		return 8
	}

	matched := countMatches(athlete.Interests, campaign.Interests)
	return minf(ratio(matched, len(campaign.Interests))*15, 15)
}

// campaignFitScore measures sport and school-level fit (0-20 points).
// Primary sport 12, secondary sport 8, school level 8.
func campaignFitScore(athlete *models.AthleteProfile, campaign *models.Campaign) float64 {
	score := 0.0

	switch {
	case containsFold(campaign.PrimarySports, athlete.Sport):
		score += 12
	case containsFold(campaign.SecondarySports, athlete.Sport):
		score += 8
	}

	if len(campaign.SchoolLevels) == 0 || containsFold(campaign.SchoolLevels, athlete.SchoolLevel) {
		score += 8
	}

	return minf(score, 20)
}

// budgetScore compares the campaign budget against the athlete's fair
// value range for the campaign's deal type (0-15 points).
func budgetScore(fmvRange *models.DealValueRange, campaign *models.Campaign) float64 {
	if fmvRange == nil || fmvRange.High == 0 {
		return 8
	}

	budget := (campaign.BudgetMin + campaign.BudgetMax) / 2
	if budget >= fmvRange.Low && budget <= fmvRange.High {
		return 15
	}

	mid := (fmvRange.Low + fmvRange.High) / 2
	if mid == 0 {
		return 8
	}

	switch ratio := budget / mid; {
	case ratio >= 0.8 && ratio <= 1.2:
		return 12
	case ratio >= 0.6 && ratio <= 1.4:
		return 8
	case ratio < 0.6:
		return 3
	default:
		return 10
	}
}

// geographyScore measures state and city alignment (0-10 points).
// State 7, city 3. Unrestricted campaigns grant full points.
func geographyScore(athlete *models.AthleteProfile, campaign *models.Campaign) float64 {
	score := 0.0

	if len(campaign.TargetStates) == 0 || containsFold(campaign.TargetStates, athlete.State) {
		score += 7
	}

	if len(campaign.TargetCities) == 0 || containsFold(campaign.TargetCities, athlete.City) {
		score += 3
	}

	return minf(score, 10)
}

// demographicsScore measures gender and age fit (0-10 points).
// Gender 5, age 5.
func demographicsScore(athlete *models.AthleteProfile, campaign *models.Campaign) float64 {
	score := 0.0

	gender := strings.ToLower(campaign.TargetGender)
	if gender == "" || gender == "any" || strings.EqualFold(campaign.TargetGender, athlete.Gender) {
		score += 5
	}

	if campaign.AgeMin == 0 && campaign.AgeMax == 0 {
		score += 5
	} else {
		age := athlete.Age()
		if age >= campaign.AgeMin && (campaign.AgeMax == 0 || age <= campaign.AgeMax) {
			score += 5
		}
	}

	return minf(score, 10)
}

// engagementScore measures social reach against campaign requirements
// (0-10 points). Followers 0-6, engagement rate 0-4.
func engagementScore(athlete *models.AthleteProfile, campaign *models.Campaign) float64 {
	score := 0.0

	if campaign.MinFollowers == 0 {
		score += 6
	} else {
		switch followerRatio := float64(athlete.TotalFollowers()) / float64(campaign.MinFollowers); {
		case followerRatio >= 2.0:
			score += 6
		case followerRatio >= 1.5:
			score += 5
		case followerRatio >= 1.2:
			score += 4
		case followerRatio >= 1.0:
			score += 3
		case followerRatio >= 0.8:
			score += 2
		}
	}

	if campaign.TargetEngagementRate == 0 {
		score += 4
	} else {
		switch engagementRatio := athlete.AvgEngagementRate() / campaign.TargetEngagementRate; {
		case engagementRatio >= 1.5:
			score += 4
		case engagementRatio >= 1.2:
			score += 3
		case engagementRatio >= 1.0:
			score += 2
		case engagementRatio >= 0.8:
			score += 1
		}
	}

	return minf(score, 10)
}

func countMatches(have, want []string) int {
	matched := 0
	for _, h := range have {
		if containsFold(want, h) {
			matched++
		}
	}
	return matched
}

func containsFold(list []string, v string) bool {
	for _, item := range list {
		if strings.EqualFold(item, v) {
			return true
		}
	}
	return false
}

func ratio(matched, total int) float64 {
	if total == 0 {
		return 0
	}
	r := float64(matched) / float64(total)
	if r > 1 {
		return 1
	}
	return r
}

func minf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
