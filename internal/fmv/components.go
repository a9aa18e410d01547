// internal/fmv/components.go
package fmv

import (
	"strings"

	"chatnil/internal/models"
)

// ==========================
// Component Scores
// ==========================

// socialScore rates the athlete's audience (0-30 points).
// Followers 0-12, engagement 0-10, platform diversity 0-4, verified
// accounts 0-4.
func socialScore(a *models.AthleteProfile) float64 {
	score := 0.0

	switch followers := a.TotalFollowers(); {
	case followers >= 100000:
		score += 12
	case followers >= 50000:
		score += 10
	case followers >= 25000:
		score += 8
	case followers >= 10000:
		score += 6
	case followers >= 5000:
		score += 4
	case followers >= 1000:
		score += 2
	}

	if len(a.SocialAccounts) > 0 {
		switch engagement := a.AvgEngagementRate(); {
		case engagement >= 8:
			score += 10
		case engagement >= 6:
			score += 8
		case engagement >= 4:
			score += 6
		case engagement >= 3:
			score += 4
		case engagement >= 2:
			score += 2
		}
	}

	score += minf(float64(len(a.SocialAccounts)), 4)

	verified := 0
	for _, acct := range a.SocialAccounts {
		if acct.Verified {
			verified++
		}
	}
	score += minf(float64(verified)*2, 4)

	return minf(score, 30)
}

// athleticScore rates the athlete's on-field profile (0-30 points).
// Sport tier 0-10, position 0-5, national ranking 0-10, division 0-5.
func athleticScore(a *models.AthleteProfile) float64 {
	score := 0.0

	if tier, ok := sportTiers[strings.ToLower(a.Sport)]; ok {
		score += tier
	} else {
		score += defaultSportTier
	}

	if value, ok := positionValues[strings.ToLower(a.Position)]; ok {
		score += value
	} else {
		score += defaultPositionValue
	}

	if a.NationalRank > 0 {
		switch {
		case a.NationalRank <= 50:
			score += 10
		case a.NationalRank <= 100:
			score += 8
		case a.NationalRank <= 300:
			score += 6
		case a.NationalRank <= 500:
			score += 4
		case a.NationalRank <= 1000:
			score += 2
		}
	}

	score += divisionPoints(a)

	return minf(score, 30)
}

// marketScore rates the athlete's local NIL market (0-20 points).
// State maturity 0-8, market size 0-7, division bonus 0-5.
func marketScore(a *models.AthleteProfile) float64 {
	score := 0.0

	if maturity, ok := stateNILMaturity[strings.ToUpper(a.State)]; ok {
		score += maturity
	} else {
		score += defaultStateMaturity
	}

	city := strings.ToLower(a.City)
	switch {
	case largeMarketCities[city]:
		score += 7
	case mediumMarketCities[city]:
		score += 4
	default:
		score += 2
	}

	switch divisionPoints(a) {
	case 5:
		score += 5
	case 3:
		score += 3
	default:
		score += 1
	}

	return minf(score, 20)
}

// brandScore rates the athlete's existing deal track record
// (0-20 points). Active deals 0-8, earnings 0-6, success rate 0-3,
// content samples 0-3.
func brandScore(a *models.AthleteProfile) float64 {
	score := minf(float64(a.ActiveDealCount)*2, 8)

	switch earnings := a.TotalEarnings; {
	case earnings >= 50000:
		score += 6
	case earnings >= 25000:
		score += 5
	case earnings >= 10000:
		score += 4
	case earnings >= 5000:
		score += 3
	case earnings >= 1000:
		score += 2
	case earnings > 0:
		score += 1
	}

	switch rate := a.DealSuccessRate; {
	case rate >= 0.9:
		score += 3
	case rate >= 0.7:
		score += 2
	case rate >= 0.5:
		score += 1
	}

	switch {
	case a.ContentSamples >= 5:
		score += 3
	case a.ContentSamples >= 3:
		score += 2
	case a.ContentSamples >= 1:
		score += 1
	}

	return minf(score, 20)
}

func divisionPoints(a *models.AthleteProfile) float64 {
	switch strings.ToUpper(a.Division) {
	case "D1", "DIVISION 1", "DIVISION I":
		return 5
	case "D2", "DIVISION 2", "DIVISION II":
		return 3
	case "D3", "NAIA", "JUCO":
		return 2
	default:
		if a.SchoolLevel == models.SchoolLevelCollege {
			return 2
		}
		return 1
	}
}

func minf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
