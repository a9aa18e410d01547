// internal/matchmaking/matcher_test.go
package matchmaking

import (
	"testing"

	"chatnil/internal/common/logger"
	"chatnil/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

func createTestCampaign() *models.Campaign {
	return &models.Campaign{
		ID:                   "campaign-1",
		BrandName:            "Hydrate Co",
		Title:                "Spring hydration push",
		BudgetMin:            500,
		BudgetMax:            1500,
		DealType:             models.DealTypeSocialMedia,
		PrimarySports:        []string{"basketball"},
		SchoolLevels:         []string{models.SchoolLevelCollege},
		TargetStates:         []string{"TX"},
		DesiredValues:        []string{"authenticity", "community"},
		DesiredCauses:        []string{"education"},
		Interests:            []string{"fitness", "gaming"},
		MinFollowers:         20000,
		TargetEngagementRate: 3,
		Status:               models.CampaignStatusActive,
	}
}

func createIdealAthlete() *models.AthleteProfile {
	return &models.AthleteProfile{
		ID:          "athlete-1",
		FirstName:   "Jordan",
		LastName:    "Reyes",
		Sport:       "basketball",
		SchoolLevel: models.SchoolLevelCollege,
		State:       "TX",
		City:        "Austin",
		Values:      []string{"authenticity", "community"},
		Causes:      []string{"education"},
		Interests:   []string{"fitness", "gaming"},
		SocialAccounts: []models.SocialAccount{
			{Platform: "instagram", Followers: 40000, EngagementRate: 5},
			{Platform: "tiktok", Followers: 20000, EngagementRate: 7},
		},
	}
}

func createMismatchedAthlete() *models.AthleteProfile {
	return &models.AthleteProfile{
		ID:          "athlete-2",
		FirstName:   "Casey",
		LastName:    "Lu",
		Sport:       "golf",
		SchoolLevel: models.SchoolLevelHighSchool,
		State:       "CA",
	}
}

func createTestFMV() *models.FMVEstimate {
	return &models.FMVEstimate{
		AthleteID: "athlete-1",
		DealValues: []models.DealValueRange{
			{DealType: models.DealTypeSocialMedia, Low: 300, Mid: 700, High: 1200},
		},
	}
}

func newTestMatcher(t *testing.T) *Matcher {
	return NewMatcher(logger.NewTestLogger(t))
}

// ==========================
// Factor Tests
// ==========================

func TestBrandValuesScore(t *testing.T) {
	campaign := createTestCampaign()

	t.Run("full alignment", func(t *testing.T) {
		// 2/2 values = 12, 1/1 causes = 8
		assert.Equal(t, 20.0, brandValuesScore(createIdealAthlete(), campaign))
	})

	t.Run("no alignment", func(t *testing.T) {
		assert.Equal(t, 0.0, brandValuesScore(createMismatchedAthlete(), campaign))
	})

	t.Run("unrestricted campaign grants partial credit", func(t *testing.T) {
		open := createTestCampaign()
		open.DesiredValues = nil
		open.DesiredCauses = nil
		// 6 + 4
		assert.Equal(t, 10.0, brandValuesScore(createMismatchedAthlete(), open))
	})
}

func TestInterestScore(t *testing.T) {
	campaign := createTestCampaign()

	assert.Equal(t, 15.0, interestScore(createIdealAthlete(), campaign))
	assert.Equal(t, 0.0, interestScore(createMismatchedAthlete(), campaign))

	open := createTestCampaign()
	open.Interests = nil
	assert.Equal(t, 8.0, interestScore(createMismatchedAthlete(), open))
}

func TestCampaignFitScore(t *testing.T) {
	campaign := createTestCampaign()

	t.Run("primary sport and level", func(t *testing.T) {
		// 12 + 8
		assert.Equal(t, 20.0, campaignFitScore(createIdealAthlete(), campaign))
	})

	t.Run("secondary sport", func(t *testing.T) {
		c := createTestCampaign()
		c.PrimarySports = []string{"football"}
		c.SecondarySports = []string{"basketball"}
		// 8 + 8
		assert.Equal(t, 16.0, campaignFitScore(createIdealAthlete(), c))
	})

	t.Run("wrong sport and level", func(t *testing.T) {
		assert.Equal(t, 0.0, campaignFitScore(createMismatchedAthlete(), campaign))
	})
}

func TestBudgetScore(t *testing.T) {
	valueRange := &models.DealValueRange{Low: 550, Mid: 600, High: 650}

	tests := []struct {
		name      string
		budgetMin float64
		budgetMax float64
		expected  float64
	}{
		{"budget within range", 500, 700, 15},   // mid 600
		{"within twenty percent", 300, 700, 12}, // mid 500, ratio 0.83
		{"acceptable stretch", 300, 500, 8},     // mid 400, ratio 0.67
		{"too low", 200, 400, 3},                // mid 300, ratio 0.50
		{"over budget", 800, 1000, 10},          // mid 900, ratio 1.50
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := createTestCampaign()
			c.BudgetMin = tt.budgetMin
			c.BudgetMax = tt.budgetMax
			assert.Equal(t, tt.expected, budgetScore(valueRange, c))
		})
	}

	t.Run("no valuation is neutral", func(t *testing.T) {
		assert.Equal(t, 8.0, budgetScore(nil, createTestCampaign()))
	})
}

func TestGeographyScore(t *testing.T) {
	campaign := createTestCampaign()

	// state 7 + unrestricted city 3
	assert.Equal(t, 10.0, geographyScore(createIdealAthlete(), campaign))
	// wrong state, unrestricted city
	assert.Equal(t, 3.0, geographyScore(createMismatchedAthlete(), campaign))

	cityBound := createTestCampaign()
	cityBound.TargetCities = []string{"Dallas"}
	assert.Equal(t, 7.0, geographyScore(createIdealAthlete(), cityBound))
}

func TestDemographicsScore(t *testing.T) {
	t.Run("unrestricted campaign", func(t *testing.T) {
		assert.Equal(t, 10.0, demographicsScore(createIdealAthlete(), createTestCampaign()))
	})

	t.Run("gender mismatch", func(t *testing.T) {
		c := createTestCampaign()
		c.TargetGender = "female"
		a := createIdealAthlete()
		a.Gender = "male"
		assert.Equal(t, 5.0, demographicsScore(a, c))
	})
}

func TestEngagementScore(t *testing.T) {
	campaign := createTestCampaign()

	t.Run("exceeds both requirements", func(t *testing.T) {
		// followers 60000/20000 = 3.0 => 6, engagement 6.0/3.0 = 2.0 => 4
		assert.Equal(t, 10.0, engagementScore(createIdealAthlete(), campaign))
	})

	t.Run("no social reach", func(t *testing.T) {
		assert.Equal(t, 0.0, engagementScore(createMismatchedAthlete(), campaign))
	})

	t.Run("unrestricted campaign", func(t *testing.T) {
		open := createTestCampaign()
		open.MinFollowers = 0
		open.TargetEngagementRate = 0
		assert.Equal(t, 10.0, engagementScore(createMismatchedAthlete(), open))
	})
}

// ==========================
// Confidence and Offer Tests
// ==========================

func TestConfidenceFor(t *testing.T) {
	assert.Equal(t, models.ConfidenceHigh, ConfidenceFor(80))
	assert.Equal(t, models.ConfidenceMedium, ConfidenceFor(60))
	assert.Equal(t, models.ConfidenceLow, ConfidenceFor(59))
}

func TestRecommendedOffer(t *testing.T) {
	valueRange := &models.DealValueRange{Low: 300, Mid: 700, High: 1200}
	// mid-point of the range is 750

	tests := []struct {
		name       string
		matchScore float64
		budgetMax  float64
		expected   float64
	}{
		{"excellent match moves toward high", 90, 5000, 975},
		{"good match stays mid", 75, 5000, 750},
		{"weaker match moves toward low", 50, 5000, 615},
		{"capped by campaign budget", 50, 600, 600},
		{"floored at ninety percent of low", 50, 100, 270},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, RecommendedOffer(valueRange, tt.matchScore, tt.budgetMax))
		})
	}

	t.Run("no valuation yields no offer", func(t *testing.T) {
		assert.Equal(t, 0.0, RecommendedOffer(nil, 90, 5000))
	})
}

// ==========================
// Full Matching Tests
// ==========================

func TestMatcher_FindMatches(t *testing.T) {
	matcher := newTestMatcher(t)
	campaign := createTestCampaign()

	candidates := []Candidate{
		{Athlete: createIdealAthlete(), FMV: createTestFMV()},
		{Athlete: createMismatchedAthlete()},
	}

	matches, err := matcher.FindMatches(campaign, candidates, Options{MinMatchScore: 40, MaxResults: 20})
	require.NoError(t, err)

	// The mismatched athlete scores 21 and is filtered out.
	require.Len(t, matches, 1)

	match := matches[0]
	assert.Equal(t, "athlete-1", match.AthleteID)
	assert.Equal(t, "Jordan Reyes", match.AthleteName)
	// 20 + 15 + 20 + 15 + 10 + 10 + 10
	assert.Equal(t, 100.0, match.MatchScore)
	assert.Equal(t, models.ConfidenceHigh, match.Confidence)
	assert.Equal(t, 975.0, match.RecommendedOffer)
	assert.Contains(t, match.Reasons, "Strong brand alignment")
}

func TestMatcher_FindMatches_Ordering(t *testing.T) {
	matcher := newTestMatcher(t)
	campaign := createTestCampaign()

	partial := createIdealAthlete()
	partial.ID = "athlete-3"
	partial.Values = nil
	partial.Causes = nil

	candidates := []Candidate{
		{Athlete: partial, FMV: createTestFMV()},
		{Athlete: createIdealAthlete(), FMV: createTestFMV()},
	}

	matches, err := matcher.FindMatches(campaign, candidates, Options{})
	require.NoError(t, err)
	require.Len(t, matches, 2)

	assert.Equal(t, "athlete-1", matches[0].AthleteID)
	assert.Greater(t, matches[0].MatchScore, matches[1].MatchScore)
}

func TestMatcher_FindMatches_MaxResults(t *testing.T) {
	matcher := newTestMatcher(t)

	candidates := []Candidate{
		{Athlete: createIdealAthlete(), FMV: createTestFMV()},
		{Athlete: createIdealAthlete(), FMV: createTestFMV()},
		{Athlete: createIdealAthlete(), FMV: createTestFMV()},
	}

	matches, err := matcher.FindMatches(createTestCampaign(), candidates, Options{MaxResults: 2})
	require.NoError(t, err)
	assert.Len(t, matches, 2)
}

func TestMatcher_FindMatches_NilCampaign(t *testing.T) {
	matcher := NewMatcher(logger.NewNoOpLogger())

	_, err := matcher.FindMatches(nil, nil, Options{})
	assert.Error(t, err)
}
