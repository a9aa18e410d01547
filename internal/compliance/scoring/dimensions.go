// internal/compliance/scoring/dimensions.go
package scoring

import (
	"fmt"

	"chatnil/internal/models"
)

func (c *Calculator) scorePolicyFit(dc *DealContext) dimensionResult {
	rule := dc.StateRule
	if rule == nil {
		return dimensionResult{
			Score:       50,
			Notes:       "no compliance rules on file for athlete's state",
			ReasonCodes: []string{ReasonNoStateRule},
			Recommendations: []string{
				"Confirm NIL rules for the athlete's state before signing",
			},
		}
	}

	if !rule.AllowsNIL {
		return dimensionResult{
			Score:       0,
			Notes:       fmt.Sprintf("%s does not permit NIL activity", rule.State),
			ReasonCodes: []string{ReasonNILProhibited},
			Recommendations: []string{
				"This deal cannot proceed under current state rules",
			},
		}
	}

	if !rule.AllowsLevel(dc.Athlete.SchoolLevel) {
		return dimensionResult{
			Score: 0,
			Notes: fmt.Sprintf("%s does not permit NIL activity at the %s level",
				rule.State, dc.Athlete.SchoolLevel),
			ReasonCodes: []string{ReasonLevelProhibited},
			Recommendations: []string{
				"This deal cannot proceed for the athlete's school level",
			},
		}
	}

	if rule.CategoryProhibited(dc.Deal.BrandCategory) {
		return dimensionResult{
			Score: 0,
			Notes: fmt.Sprintf("category %q is prohibited in %s",
				dc.Deal.BrandCategory, rule.State),
			ReasonCodes: []string{ReasonProhibitedCategory},
			Recommendations: []string{
				"Choose a brand in a permitted category for this state",
			},
		}
	}

	result := dimensionResult{Score: 100, Notes: "state rules permit this deal"}

	if rule.SchoolApprovalRequired && !dc.Athlete.SchoolApprovalOn {
		result.Score -= 40
		result.ReasonCodes = append(result.ReasonCodes, ReasonSchoolApprovalNeeded)
		result.Recommendations = append(result.Recommendations,
			"Obtain school approval before the deal starts")
		result.Notes = "school approval required but not on file"
	}

	if rule.DisclosureRequired {
		result.Score -= 10
		result.ReasonCodes = append(result.ReasonCodes, ReasonDisclosureRequired)
		result.Recommendations = append(result.Recommendations,
			"File the required state disclosure for this deal")
	}

	if dc.Deal.UsesSchoolMarks && !dc.Athlete.SchoolApprovalOn {
		result.Score -= 30
		result.ReasonCodes = append(result.ReasonCodes, ReasonSchoolApprovalNeeded)
		result.Recommendations = append(result.Recommendations,
			"School marks usage requires written school approval")
	}

	return result
}

func (c *Calculator) scoreDocumentHygiene(dc *DealContext) dimensionResult {
	result := dimensionResult{Score: 100, Notes: "deal documentation is complete"}

	if dc.Deal.ContractDocumentID == "" {
		result.Score -= 50
		result.ReasonCodes = append(result.ReasonCodes, ReasonNoContract)
		result.Recommendations = append(result.Recommendations,
			"Upload a signed contract document")
		result.Notes = "deal documentation is incomplete"
	}

	if len(dc.Deal.Deliverables) == 0 {
		result.Score -= 25
		result.ReasonCodes = append(result.ReasonCodes, ReasonNoDeliverables)
		result.Recommendations = append(result.Recommendations,
			"List the specific deliverables the athlete owes")
		result.Notes = "deal documentation is incomplete"
	}

	if dc.Deal.StartDate.IsZero() || dc.Deal.EndDate.IsZero() {
		result.Score -= 25
		result.ReasonCodes = append(result.ReasonCodes, ReasonNoDates)
		result.Recommendations = append(result.Recommendations,
			"Set explicit start and end dates for the deal term")
		result.Notes = "deal documentation is incomplete"
	}

	return result
}

func (c *Calculator) scoreFMVVerification(dc *DealContext) dimensionResult {
	if dc.FMV == nil {
		return dimensionResult{
			Score:       50,
			Notes:       "no fair market value estimate available for athlete",
			ReasonCodes: []string{ReasonNoFMVData},
			Recommendations: []string{
				"Run a fair market value calculation for this athlete",
			},
		}
	}

	valueRange := dc.FMV.RangeFor(dc.Deal.DealType)
	if valueRange == nil {
		return dimensionResult{
			Score:       50,
			Notes:       fmt.Sprintf("no value range for deal type %q", dc.Deal.DealType),
			ReasonCodes: []string{ReasonNoFMVData},
		}
	}

	amount := dc.Deal.CompensationAmount
	switch {
	case amount >= valueRange.Low && amount <= valueRange.High:
		return dimensionResult{
			Score: 100,
			Notes: fmt.Sprintf("$%.0f is within the fair range $%.0f-$%.0f",
				amount, valueRange.Low, valueRange.High),
		}
	case amount > valueRange.High*3:
		return dimensionResult{
			Score: 10,
			Notes: fmt.Sprintf("$%.0f is more than 3x the fair range ceiling $%.0f",
				amount, valueRange.High),
			ReasonCodes: []string{ReasonFarAboveFMV},
			Recommendations: []string{
				"Document the business rationale for compensation far above market",
			},
		}
	case amount > valueRange.High:
		return dimensionResult{
			Score: 60,
			Notes: fmt.Sprintf("$%.0f exceeds the fair range ceiling $%.0f",
				amount, valueRange.High),
			ReasonCodes: []string{ReasonAboveFMV},
			Recommendations: []string{
				"Verify deliverables justify above-market compensation",
			},
		}
	default:
		// Under-compensation is an athlete fairness concern, not a
		// pay-for-play signal.
		return dimensionResult{
			Score: 80,
			Notes: fmt.Sprintf("$%.0f is below the fair range floor $%.0f",
				amount, valueRange.Low),
			ReasonCodes: []string{ReasonBelowFMV},
			Recommendations: []string{
				"Consider negotiating toward the fair range floor",
			},
		}
	}
}

func (c *Calculator) scoreTaxReadiness(dc *DealContext) dimensionResult {
	athlete := dc.Athlete

	if athlete.W9Submitted && athlete.TaxFormsOnFile {
		return dimensionResult{Score: 100, Notes: "tax documentation is complete"}
	}

	result := dimensionResult{}
	if athlete.W9Submitted || athlete.TaxFormsOnFile {
		result.Score = 60
		result.Notes = "tax documentation is partially complete"
	} else if dc.Deal.CompensationAmount < 600 {
		// Below the 1099 reporting threshold.
		result.Score = 70
		result.Notes = "no tax forms on file; compensation is below the reporting threshold"
	} else {
		result.Score = 20
		result.Notes = "no tax forms on file for reportable compensation"
	}

	if !athlete.W9Submitted {
		result.ReasonCodes = append(result.ReasonCodes, ReasonW9Missing)
		result.Recommendations = append(result.Recommendations, "Submit a W-9 before payment")
	}
	if !athlete.TaxFormsOnFile {
		result.ReasonCodes = append(result.ReasonCodes, ReasonTaxFormsMissing)
		result.Recommendations = append(result.Recommendations,
			"Complete the tax readiness checklist")
	}

	return result
}

func (c *Calculator) scoreBrandSafety(dc *DealContext) dimensionResult {
	if !IsRestrictedCategory(dc.Deal.BrandCategory) {
		return dimensionResult{Score: 100, Notes: "brand category is unrestricted"}
	}

	if dc.Athlete.IsMinor() {
		return dimensionResult{
			Score: 0,
			Notes: fmt.Sprintf("category %q is restricted and the athlete is a minor",
				dc.Deal.BrandCategory),
			ReasonCodes: []string{ReasonRestrictedBrandMinor},
			Recommendations: []string{
				"Restricted-category deals are not available to minors",
			},
		}
	}

	return dimensionResult{
		Score:       20,
		Notes:       fmt.Sprintf("category %q is on the restricted list", dc.Deal.BrandCategory),
		ReasonCodes: []string{ReasonRestrictedBrand},
		Recommendations: []string{
			"Confirm school and conference policy on restricted categories",
		},
	}
}

func (c *Calculator) scoreGuardianConsent(dc *DealContext) dimensionResult {
	if !dc.Athlete.IsMinor() {
		return dimensionResult{Score: 100, Notes: "athlete is an adult; consent not required"}
	}

	switch dc.Athlete.GuardianConsent {
	case models.ConsentGranted:
		return dimensionResult{Score: 100, Notes: "guardian consent is on file"}
	case models.ConsentDenied:
		return dimensionResult{
			Score:       0,
			Notes:       "guardian has denied consent",
			ReasonCodes: []string{ReasonConsentDenied},
			Recommendations: []string{
				"This deal cannot proceed without guardian consent",
			},
		}
	default:
		return dimensionResult{
			Score:       0,
			Notes:       "no guardian consent on file for minor athlete",
			ReasonCodes: []string{ReasonConsentMissing},
			Recommendations: []string{
				"Request guardian consent before continuing",
			},
		}
	}
}
