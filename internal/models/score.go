// internal/models/score.go
package models

import "time"

// Traffic-light statuses assigned to a scored deal.
const (
	StatusGreen  = "green"
	StatusYellow = "yellow"
	StatusRed    = "red"
)

// Score lifecycle states. An overridden score is never replaced by an
// automated rescore.
const (
	ScoreStateUnscored   = "unscored"
	ScoreStateAutoScored = "auto_scored"
	ScoreStateOverridden = "overridden"
	ScoreStateAppealed   = "appealed"
)

// Scoring dimension keys.
const (
	DimPolicyFit       = "policyFit"
	DimDocumentHygiene = "documentHygiene"
	DimFMVVerification = "fmvVerification"
	DimTaxReadiness    = "taxReadiness"
	DimBrandSafety     = "brandSafety"
	DimGuardianConsent = "guardianConsent"
)

// DimensionScore is one scored compliance dimension. Score is clamped to
// [0,100]; WeightedScore is Score times Weight.
type DimensionScore struct {
	Dimension     string  `json:"dimension"`
	Score         float64 `json:"score"`
	Weight        float64 `json:"weight"`
	WeightedScore float64 `json:"weightedScore"`
	Notes         string  `json:"notes,omitempty"`
}

// ComplianceScore is the persisted scoring result for a deal.
type ComplianceScore struct {
	ID              string           `json:"id"`
	DealID          string           `json:"dealId"`
	TotalScore      float64          `json:"totalScore"`
	Status          string           `json:"status"`
	State           string           `json:"state"`
	Dimensions      []DimensionScore `json:"dimensions"`
	ReasonCodes     []string         `json:"reasonCodes"`
	Recommendations []string         `json:"recommendations"`
	ScoreVersion    string           `json:"scoreVersion"`
	ScoredAt        time.Time        `json:"scoredAt"`
}

// Dimension returns the named dimension score, or nil if absent.
func (s *ComplianceScore) Dimension(name string) *DimensionScore {
	for i := range s.Dimensions {
		if s.Dimensions[i].Dimension == name {
			return &s.Dimensions[i]
		}
	}
	return nil
}

// ScoreOverride records a compliance officer decision that supersedes
// the automated score.
type ScoreOverride struct {
	ID            string    `json:"id"`
	DealID        string    `json:"dealId"`
	OfficerID     string    `json:"officerId"`
	PreviousState string    `json:"previousState"`
	FromStatus    string    `json:"fromStatus"`
	ToStatus      string    `json:"toStatus"`
	Justification string    `json:"justification"`
	CreatedAt     time.Time `json:"createdAt"`
}

// AuditLogEntry is a best-effort record of a compliance action.
type AuditLogEntry struct {
	ID         string                 `json:"id"`
	ActorID    string                 `json:"actorId"`
	Action     string                 `json:"action"`
	EntityType string                 `json:"entityType"`
	EntityID   string                 `json:"entityId"`
	Detail     map[string]interface{} `json:"detail,omitempty"`
	CreatedAt  time.Time              `json:"createdAt"`
}
