// internal/compliance/scoring/calculator_test.go
package scoring

import (
	"math"
	"testing"
	"time"

	"chatnil/internal/common/logger"
	"chatnil/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

func newTestCalculator(t *testing.T) *Calculator {
	calc, err := NewCalculator(80, 50, "1.0", logger.NewTestLogger(t))
	require.NoError(t, err)
	return calc
}

func createTestAthlete() *models.AthleteProfile {
	return &models.AthleteProfile{
		ID:               "athlete-1",
		FirstName:        "Jordan",
		LastName:         "Reyes",
		Sport:            "basketball",
		SchoolLevel:      models.SchoolLevelCollege,
		Division:         "D1",
		State:            "TX",
		City:             "Austin",
		DateOfBirth:      time.Now().AddDate(-20, 0, 0),
		GuardianConsent:  models.ConsentGranted,
		W9Submitted:      true,
		TaxFormsOnFile:   true,
		SchoolApprovalOn: true,
	}
}

func createMinorAthlete(consent string) *models.AthleteProfile {
	a := createTestAthlete()
	a.DateOfBirth = time.Now().AddDate(-16, 0, 0)
	a.SchoolLevel = models.SchoolLevelHighSchool
	a.GuardianConsent = consent
	return a
}

func createTestDeal() *models.Deal {
	return &models.Deal{
		ID:                 "deal-1",
		AthleteID:          "athlete-1",
		BrandName:          "Local Sports Cards",
		BrandCategory:      "retail",
		DealType:           models.DealTypeAutograph,
		CompensationAmount: 500,
		Deliverables:       []string{"2 hour signing session"},
		StartDate:          time.Now(),
		EndDate:            time.Now().AddDate(0, 1, 0),
		ContractDocumentID: "doc-1",
	}
}

func createTestStateRule() *models.StateRule {
	return &models.StateRule{
		State:             "TX",
		AllowsNIL:         true,
		HighSchoolAllowed: true,
		CollegeAllowed:    true,
	}
}

func createTestFMV() *models.FMVEstimate {
	return &models.FMVEstimate{
		AthleteID:  "athlete-1",
		Factor:     60,
		Multiplier: 1.4,
		Tier:       models.TierMedium,
		DealValues: []models.DealValueRange{
			{DealType: models.DealTypeAutograph, Low: 200, Mid: 500, High: 800},
			{DealType: models.DealTypeSocialMedia, Low: 300, Mid: 700, High: 1200},
		},
	}
}

func createTestContext() *DealContext {
	return &DealContext{
		Deal:      createTestDeal(),
		Athlete:   createTestAthlete(),
		StateRule: createTestStateRule(),
		FMV:       createTestFMV(),
	}
}

// ==========================
// Weight Table Tests
// ==========================

func TestWeights_SumToOne(t *testing.T) {
	assert.InDelta(t, 1.0, SumWeights(), 1e-9)
}

func TestWeights_AllDimensionsPresent(t *testing.T) {
	assert.Len(t, Weights, len(DimensionOrder))
	for _, dim := range DimensionOrder {
		assert.Contains(t, Weights, dim)
	}
}

func TestNewCalculator_RejectsBadThresholds(t *testing.T) {
	_, err := NewCalculator(50, 80, "1.0", logger.NewNoOpLogger())
	assert.Error(t, err)
}

// ==========================
// Core Scoring Tests
// ==========================

func TestCalculator_Score_CleanCollegeAutographDealIsGreen(t *testing.T) {
	calc := newTestCalculator(t)

	result, err := calc.Score(createTestContext())

	assert.NoError(t, err)
	assert.Equal(t, models.StatusGreen, result.Status)
	assert.Equal(t, 100.0, result.TotalScore)
	assert.Empty(t, result.ReasonCodes)
}

func TestCalculator_Score_TotalIsWeightedSum(t *testing.T) {
	calc := newTestCalculator(t)

	dc := createTestContext()
	dc.Deal.ContractDocumentID = "" // knock documentHygiene down
	dc.Athlete.W9Submitted = false  // knock taxReadiness down

	result, err := calc.Score(dc)
	assert.NoError(t, err)

	sum := 0.0
	for _, dim := range result.Dimensions {
		assert.Equal(t, dim.Score*dim.Weight, dim.WeightedScore)
		sum += dim.WeightedScore
	}
	assert.InDelta(t, result.TotalScore, math.Round(sum*100)/100, 1e-9)
}

func TestCalculator_Score_StatusThresholds(t *testing.T) {
	calc := newTestCalculator(t)

	tests := []struct {
		total    float64
		expected string
	}{
		{100, models.StatusGreen},
		{80, models.StatusGreen},
		{79.99, models.StatusYellow},
		{50, models.StatusYellow},
		{49.99, models.StatusRed},
		{0, models.StatusRed},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, calc.statusFor(tt.total), "total=%.2f", tt.total)
	}
}

func TestCalculator_Score_MissingInputs(t *testing.T) {
	calc := newTestCalculator(t)

	_, err := calc.Score(&DealContext{Athlete: createTestAthlete()})
	assert.Error(t, err)

	_, err = calc.Score(&DealContext{Deal: createTestDeal()})
	assert.Error(t, err)
}

// ==========================
// Gate Tests
// ==========================

func TestCalculator_Score_MinorWithoutConsentNeverGreen(t *testing.T) {
	calc := newTestCalculator(t)

	for _, consent := range []string{models.ConsentAbsent, models.ConsentDenied, ""} {
		dc := createTestContext()
		dc.Athlete = createMinorAthlete(consent)

		result, err := calc.Score(dc)
		assert.NoError(t, err)
		assert.NotEqual(t, models.StatusGreen, result.Status, "consent=%q", consent)
	}
}

func TestCalculator_Score_MinorWithDeniedConsentIsRed(t *testing.T) {
	calc := newTestCalculator(t)

	dc := createTestContext()
	dc.Athlete = createMinorAthlete(models.ConsentDenied)

	result, err := calc.Score(dc)
	assert.NoError(t, err)
	assert.Equal(t, models.StatusRed, result.Status)
}

func TestCalculator_Score_MinorWithAbsentConsentCapsAtYellow(t *testing.T) {
	calc := newTestCalculator(t)

	dc := createTestContext()
	dc.Athlete = createMinorAthlete(models.ConsentAbsent)

	result, err := calc.Score(dc)
	assert.NoError(t, err)
	assert.Equal(t, models.StatusYellow, result.Status)
}

func TestCalculator_Score_MinorWithConsentCanBeGreen(t *testing.T) {
	calc := newTestCalculator(t)

	dc := createTestContext()
	dc.Athlete = createMinorAthlete(models.ConsentGranted)

	result, err := calc.Score(dc)
	assert.NoError(t, err)
	assert.Equal(t, models.StatusGreen, result.Status)
}

func TestCalculator_Score_StateProhibitionIsAlwaysRed(t *testing.T) {
	calc := newTestCalculator(t)

	dc := createTestContext()
	dc.StateRule = &models.StateRule{State: "TX", AllowsNIL: false}

	result, err := calc.Score(dc)
	assert.NoError(t, err)
	assert.Equal(t, models.StatusRed, result.Status)
	assert.Contains(t, result.ReasonCodes, ReasonNILProhibited)
}

func TestCalculator_Score_HighSchoolProhibitedLevel(t *testing.T) {
	calc := newTestCalculator(t)

	dc := createTestContext()
	dc.Athlete = createMinorAthlete(models.ConsentGranted)
	dc.StateRule = &models.StateRule{
		State:             "TX",
		AllowsNIL:         true,
		HighSchoolAllowed: false,
		CollegeAllowed:    true,
	}

	result, err := calc.Score(dc)
	assert.NoError(t, err)
	assert.Equal(t, models.StatusRed, result.Status)
	assert.Contains(t, result.ReasonCodes, ReasonLevelProhibited)
}

func TestCalculator_Score_RestrictedCategoryForMinorIsRed(t *testing.T) {
	calc := newTestCalculator(t)

	dc := createTestContext()
	dc.Athlete = createMinorAthlete(models.ConsentGranted)
	dc.Deal.BrandCategory = "alcohol"

	result, err := calc.Score(dc)
	assert.NoError(t, err)
	assert.Equal(t, models.StatusRed, result.Status)
	assert.Contains(t, result.ReasonCodes, ReasonRestrictedBrandMinor)
}

// ==========================
// Dimension Tests
// ==========================

func TestCalculator_PolicyFit(t *testing.T) {
	calc := newTestCalculator(t)

	tests := []struct {
		name          string
		mutate        func(dc *DealContext)
		expectedScore float64
		expectedCode  string
	}{
		{
			name:          "no state rule on file",
			mutate:        func(dc *DealContext) { dc.StateRule = nil },
			expectedScore: 50,
			expectedCode:  ReasonNoStateRule,
		},
		{
			name: "prohibited category in state",
			mutate: func(dc *DealContext) {
				dc.StateRule.ProhibitedCategories = []string{"retail"}
			},
			expectedScore: 0,
			expectedCode:  ReasonProhibitedCategory,
		},
		{
			name: "school approval missing",
			mutate: func(dc *DealContext) {
				dc.StateRule.SchoolApprovalRequired = true
				dc.Athlete.SchoolApprovalOn = false
			},
			expectedScore: 60,
			expectedCode:  ReasonSchoolApprovalNeeded,
		},
		{
			name: "disclosure required",
			mutate: func(dc *DealContext) {
				dc.StateRule.DisclosureRequired = true
			},
			expectedScore: 90,
			expectedCode:  ReasonDisclosureRequired,
		},
		{
			name: "school marks without approval",
			mutate: func(dc *DealContext) {
				dc.Deal.UsesSchoolMarks = true
				dc.Athlete.SchoolApprovalOn = false
			},
			expectedScore: 70,
			expectedCode:  ReasonSchoolApprovalNeeded,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dc := createTestContext()
			tt.mutate(dc)

			dr := calc.scorePolicyFit(dc)
			assert.Equal(t, tt.expectedScore, dr.Score)
			assert.Contains(t, dr.ReasonCodes, tt.expectedCode)
		})
	}
}

func TestCalculator_DocumentHygiene(t *testing.T) {
	calc := newTestCalculator(t)

	t.Run("complete documentation", func(t *testing.T) {
		dr := calc.scoreDocumentHygiene(createTestContext())
		assert.Equal(t, 100.0, dr.Score)
		assert.Empty(t, dr.ReasonCodes)
	})

	t.Run("everything missing", func(t *testing.T) {
		dc := createTestContext()
		dc.Deal.ContractDocumentID = ""
		dc.Deal.Deliverables = nil
		dc.Deal.StartDate = time.Time{}
		dc.Deal.EndDate = time.Time{}

		dr := calc.scoreDocumentHygiene(dc)
		assert.Equal(t, 0.0, dr.Score)
		assert.ElementsMatch(t, []string{ReasonNoContract, ReasonNoDeliverables, ReasonNoDates}, dr.ReasonCodes)
	})

	t.Run("missing contract only", func(t *testing.T) {
		dc := createTestContext()
		dc.Deal.ContractDocumentID = ""

		dr := calc.scoreDocumentHygiene(dc)
		assert.Equal(t, 50.0, dr.Score)
	})
}

func TestCalculator_FMVVerification(t *testing.T) {
	calc := newTestCalculator(t)

	tests := []struct {
		name          string
		amount        float64
		expectedScore float64
	}{
		{"within range", 500, 100},
		{"at floor", 200, 100},
		{"at ceiling", 800, 100},
		{"above ceiling", 1200, 60},
		{"far above ceiling", 2500, 10},
		{"below floor", 100, 80},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dc := createTestContext()
			dc.Deal.CompensationAmount = tt.amount

			dr := calc.scoreFMVVerification(dc)
			assert.Equal(t, tt.expectedScore, dr.Score)
		})
	}

	t.Run("no estimate available", func(t *testing.T) {
		dc := createTestContext()
		dc.FMV = nil

		dr := calc.scoreFMVVerification(dc)
		assert.Equal(t, 50.0, dr.Score)
		assert.Contains(t, dr.ReasonCodes, ReasonNoFMVData)
	})

	t.Run("no range for deal type", func(t *testing.T) {
		dc := createTestContext()
		dc.Deal.DealType = models.DealTypeCamp

		dr := calc.scoreFMVVerification(dc)
		assert.Equal(t, 50.0, dr.Score)
	})
}

func TestCalculator_TaxReadiness(t *testing.T) {
	calc := newTestCalculator(t)

	tests := []struct {
		name          string
		w9            bool
		forms         bool
		amount        float64
		expectedScore float64
	}{
		{"all forms on file", true, true, 5000, 100},
		{"w9 only", true, false, 5000, 60},
		{"forms only", false, true, 5000, 60},
		{"nothing, below reporting threshold", false, false, 500, 70},
		{"nothing, reportable amount", false, false, 5000, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dc := createTestContext()
			dc.Athlete.W9Submitted = tt.w9
			dc.Athlete.TaxFormsOnFile = tt.forms
			dc.Deal.CompensationAmount = tt.amount

			dr := calc.scoreTaxReadiness(dc)
			assert.Equal(t, tt.expectedScore, dr.Score)
		})
	}
}

func TestCalculator_BrandSafety(t *testing.T) {
	calc := newTestCalculator(t)

	t.Run("unrestricted category", func(t *testing.T) {
		dr := calc.scoreBrandSafety(createTestContext())
		assert.Equal(t, 100.0, dr.Score)
	})

	t.Run("restricted category for adult", func(t *testing.T) {
		dc := createTestContext()
		dc.Deal.BrandCategory = "gambling"

		dr := calc.scoreBrandSafety(dc)
		assert.Equal(t, 20.0, dr.Score)
		assert.Contains(t, dr.ReasonCodes, ReasonRestrictedBrand)
	})

	t.Run("restricted category for minor", func(t *testing.T) {
		dc := createTestContext()
		dc.Athlete = createMinorAthlete(models.ConsentGranted)
		dc.Deal.BrandCategory = "gambling"

		dr := calc.scoreBrandSafety(dc)
		assert.Equal(t, 0.0, dr.Score)
		assert.Contains(t, dr.ReasonCodes, ReasonRestrictedBrandMinor)
	})
}

func TestCalculator_GuardianConsent(t *testing.T) {
	calc := newTestCalculator(t)

	tests := []struct {
		name          string
		athlete       *models.AthleteProfile
		expectedScore float64
	}{
		{"adult athlete", createTestAthlete(), 100},
		{"minor with consent", createMinorAthlete(models.ConsentGranted), 100},
		{"minor consent denied", createMinorAthlete(models.ConsentDenied), 0},
		{"minor consent absent", createMinorAthlete(models.ConsentAbsent), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dc := createTestContext()
			dc.Athlete = tt.athlete

			dr := calc.scoreGuardianConsent(dc)
			assert.Equal(t, tt.expectedScore, dr.Score)
		})
	}
}

// ==========================
// Quick Check Tests
// ==========================

func TestCalculator_QuickCheck(t *testing.T) {
	calc := newTestCalculator(t)

	t.Run("clean deal is green", func(t *testing.T) {
		result := calc.QuickCheck(createTestContext())
		assert.Equal(t, models.StatusGreen, result.Status)
		assert.Empty(t, result.Blockers)
	})

	t.Run("prohibited state is red", func(t *testing.T) {
		dc := createTestContext()
		dc.StateRule.AllowsNIL = false

		result := calc.QuickCheck(dc)
		assert.Equal(t, models.StatusRed, result.Status)
		assert.NotEmpty(t, result.Blockers)
	})

	t.Run("missing contract is yellow", func(t *testing.T) {
		dc := createTestContext()
		dc.Deal.ContractDocumentID = ""

		result := calc.QuickCheck(dc)
		assert.Equal(t, models.StatusYellow, result.Status)
	})

	t.Run("restricted category for minor is red", func(t *testing.T) {
		dc := createTestContext()
		dc.Athlete = createMinorAthlete(models.ConsentGranted)
		dc.Deal.BrandCategory = "tobacco"

		result := calc.QuickCheck(dc)
		assert.Equal(t, models.StatusRed, result.Status)
	})
}
