// internal/compliance/scoring/quick.go
package scoring

import (
	"fmt"

	"chatnil/internal/models"
)

// QuickResult is a pre-submission risk readout. It flags blockers and
// warnings without computing or persisting a full score.
type QuickResult struct {
	Status   string   `json:"status"`
	Blockers []string `json:"blockers"`
	Warnings []string `json:"warnings"`
}

// QuickCheck runs the cheap rule checks a deal form can surface before
// submission. Blockers map to red, warnings to yellow.
func (c *Calculator) QuickCheck(dc *DealContext) *QuickResult {
	result := &QuickResult{Status: models.StatusGreen}

	if rule := dc.StateRule; rule != nil {
		if !rule.AllowsNIL {
			result.Blockers = append(result.Blockers,
				fmt.Sprintf("%s does not permit NIL activity", rule.State))
		} else if !rule.AllowsLevel(dc.Athlete.SchoolLevel) {
			result.Blockers = append(result.Blockers,
				fmt.Sprintf("%s does not permit NIL deals at the %s level",
					rule.State, dc.Athlete.SchoolLevel))
		}
		if rule.CategoryProhibited(dc.Deal.BrandCategory) {
			result.Blockers = append(result.Blockers,
				fmt.Sprintf("category %q is prohibited in %s", dc.Deal.BrandCategory, rule.State))
		}
		if rule.SchoolApprovalRequired && !dc.Athlete.SchoolApprovalOn {
			result.Warnings = append(result.Warnings,
				"school approval is required in this state and is not on file")
		}
		if rule.DisclosureRequired {
			result.Warnings = append(result.Warnings,
				"this state requires deal disclosure")
		}
	} else {
		result.Warnings = append(result.Warnings,
			"no compliance rules on file for the athlete's state")
	}

	if IsRestrictedCategory(dc.Deal.BrandCategory) {
		if dc.Athlete.IsMinor() {
			result.Blockers = append(result.Blockers,
				fmt.Sprintf("category %q is not available to minors", dc.Deal.BrandCategory))
		} else {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("category %q is on the restricted list", dc.Deal.BrandCategory))
		}
	}

	if dc.Athlete.IsMinor() {
		switch dc.Athlete.GuardianConsent {
		case models.ConsentGranted:
		case models.ConsentDenied:
			result.Blockers = append(result.Blockers,
				"guardian has denied consent for this athlete")
		default:
			result.Warnings = append(result.Warnings,
				"guardian consent is required for minor athletes and is not on file")
		}
	}

	if dc.Deal.ContractDocumentID == "" {
		result.Warnings = append(result.Warnings, "no contract document attached")
	}

	switch {
	case len(result.Blockers) > 0:
		result.Status = models.StatusRed
	case len(result.Warnings) > 0:
		result.Status = models.StatusYellow
	}

	return result
}
