// internal/models/deal.go
package models

import "time"

// Deal types with distinct valuation base rates.
const (
	DealTypeEndorsement = "endorsement"
	DealTypeAppearance  = "appearance"
	DealTypeSocialMedia = "social_media"
	DealTypeAutograph   = "autograph"
	DealTypeMerchandise = "merchandise"
	DealTypeCamp        = "camp"
	DealTypeOther       = "other"
)

// Deal lifecycle statuses.
const (
	DealStatusDraft     = "draft"
	DealStatusSubmitted = "submitted"
	DealStatusActive    = "active"
	DealStatusCompleted = "completed"
	DealStatusCancelled = "cancelled"
)

// Deal is a proposed or active NIL agreement between an athlete and a brand.
type Deal struct {
	ID                 string    `json:"id"`
	AthleteID          string    `json:"athleteId"`
	CampaignID         string    `json:"campaignId,omitempty"`
	BrandName          string    `json:"brandName"`
	BrandCategory      string    `json:"brandCategory"`
	DealType           string    `json:"dealType"`
	CompensationAmount float64   `json:"compensationAmount"`
	Description        string    `json:"description"`
	Deliverables       []string  `json:"deliverables"`
	StartDate          time.Time `json:"startDate,omitempty"`
	EndDate            time.Time `json:"endDate,omitempty"`
	UsesSchoolMarks    bool      `json:"usesSchoolMarks"`
	ContractDocumentID string    `json:"contractDocumentId,omitempty"`
	Status             string    `json:"status"`
	ComplianceStatus   string    `json:"complianceStatus"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// ValidDealTypes lists the accepted dealType values.
var ValidDealTypes = []string{
	DealTypeEndorsement,
	DealTypeAppearance,
	DealTypeSocialMedia,
	DealTypeAutograph,
	DealTypeMerchandise,
	DealTypeCamp,
	DealTypeOther,
}

// IsValidDealType reports whether t is a known deal type.
func IsValidDealType(t string) bool {
	for _, valid := range ValidDealTypes {
		if t == valid {
			return true
		}
	}
	return false
}
