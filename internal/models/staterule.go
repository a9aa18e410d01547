// internal/models/staterule.go
package models

import "time"

// StateRule captures one state's NIL legality profile.
type StateRule struct {
	State                  string    `json:"state"`
	AllowsNIL              bool      `json:"allowsNil"`
	HighSchoolAllowed      bool      `json:"highSchoolAllowed"`
	CollegeAllowed         bool      `json:"collegeAllowed"`
	ProhibitedCategories   []string  `json:"prohibitedCategories"`
	SchoolApprovalRequired bool      `json:"schoolApprovalRequired"`
	DisclosureRequired     bool      `json:"disclosureRequired"`
	Notes                  string    `json:"notes,omitempty"`
	UpdatedAt              time.Time `json:"updatedAt"`
}

// CategoryProhibited reports whether a brand category is barred in this state.
func (r *StateRule) CategoryProhibited(category string) bool {
	for _, prohibited := range r.ProhibitedCategories {
		if prohibited == category {
			return true
		}
	}
	return false
}

// AllowsLevel reports whether NIL activity is permitted for a school level.
func (r *StateRule) AllowsLevel(schoolLevel string) bool {
	if !r.AllowsNIL {
		return false
	}
	switch schoolLevel {
	case SchoolLevelHighSchool:
		return r.HighSchoolAllowed
	case SchoolLevelCollege:
		return r.CollegeAllowed
	default:
		return false
	}
}
