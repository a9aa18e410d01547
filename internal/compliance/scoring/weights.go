// internal/compliance/scoring/weights.go
package scoring

import "chatnil/internal/models"

// Weights is the consolidated dimension weight table. The values must
// sum to 1.0; SumWeights is checked at startup and in tests.
var Weights = map[string]float64{
	models.DimPolicyFit:       0.30,
	models.DimDocumentHygiene: 0.20,
	models.DimFMVVerification: 0.15,
	models.DimTaxReadiness:    0.15,
	models.DimBrandSafety:     0.10,
	models.DimGuardianConsent: 0.10,
}

// DimensionOrder fixes the order dimensions appear in results.
var DimensionOrder = []string{
	models.DimPolicyFit,
	models.DimDocumentHygiene,
	models.DimFMVVerification,
	models.DimTaxReadiness,
	models.DimBrandSafety,
	models.DimGuardianConsent,
}

// SumWeights returns the total of all dimension weights.
func SumWeights() float64 {
	sum := 0.0
	for _, w := range Weights {
		sum += w
	}
	return sum
}

// Reason codes attached to dimension results.
const (
	ReasonNILProhibited        = "NIL_PROHIBITED_IN_STATE"
	ReasonLevelProhibited      = "SCHOOL_LEVEL_NOT_PERMITTED"
	ReasonProhibitedCategory   = "PROHIBITED_CATEGORY_IN_STATE"
	ReasonSchoolApprovalNeeded = "SCHOOL_APPROVAL_MISSING"
	ReasonDisclosureRequired   = "DISCLOSURE_REQUIRED"
	ReasonNoStateRule          = "NO_STATE_RULE_ON_FILE"
	ReasonNoContract           = "CONTRACT_DOCUMENT_MISSING"
	ReasonNoDeliverables       = "DELIVERABLES_UNSPECIFIED"
	ReasonNoDates              = "DEAL_DATES_UNSPECIFIED"
	ReasonAboveFMV             = "COMPENSATION_ABOVE_FMV_RANGE"
	ReasonFarAboveFMV          = "COMPENSATION_FAR_ABOVE_FMV_RANGE"
	ReasonBelowFMV             = "COMPENSATION_BELOW_FMV_RANGE"
	ReasonNoFMVData            = "NO_FMV_ESTIMATE_AVAILABLE"
	ReasonTaxFormsMissing      = "TAX_FORMS_MISSING"
	ReasonW9Missing            = "W9_MISSING"
	ReasonRestrictedBrand      = "RESTRICTED_BRAND_CATEGORY"
	ReasonRestrictedBrandMinor = "RESTRICTED_BRAND_CATEGORY_FOR_MINOR"
	ReasonConsentMissing       = "GUARDIAN_CONSENT_MISSING"
	ReasonConsentDenied        = "GUARDIAN_CONSENT_DENIED"
)

// restrictedCategories are brand categories flagged regardless of state
// rules. Minors are scored harder against these.
var restrictedCategories = map[string]bool{
	"alcohol":  true,
	"tobacco":  true,
	"gambling": true,
	"cannabis": true,
	"adult":    true,
	"weapons":  true,
}

// IsRestrictedCategory reports whether a brand category is on the
// platform denylist.
func IsRestrictedCategory(category string) bool {
	return restrictedCategories[category]
}
