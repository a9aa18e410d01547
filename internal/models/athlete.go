// internal/models/athlete.go
package models

import "time"

// School levels recognized by state NIL rules.
const (
	SchoolLevelHighSchool = "high_school"
	SchoolLevelCollege    = "college"
)

// Guardian consent states tracked for minors.
const (
	ConsentGranted = "granted"
	ConsentDenied  = "denied"
	ConsentAbsent  = "absent"
)

// SocialAccount holds the per-platform audience stats used by the
// valuation and matchmaking engines.
type SocialAccount struct {
	Platform       string  `json:"platform"`
	Handle         string  `json:"handle"`
	Followers      int     `json:"followers"`
	EngagementRate float64 `json:"engagementRate"`
	Verified       bool    `json:"verified"`
}

// AthleteProfile is the full athlete record loaded for scoring,
// valuation, and matchmaking.
type AthleteProfile struct {
	ID           string    `json:"id"`
	UserID       string    `json:"userId"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone,omitempty"`
	Gender       string    `json:"gender"`
	DateOfBirth  time.Time `json:"dateOfBirth"`
	Sport        string    `json:"sport"`
	Position     string    `json:"position"`
	School       string    `json:"school"`
	SchoolLevel  string    `json:"schoolLevel"`
	Division     string    `json:"division"`
	State        string    `json:"state"`
	City         string    `json:"city"`
	GPA          float64   `json:"gpa,omitempty"`
	NationalRank int       `json:"nationalRank,omitempty"`
	StateRank    int       `json:"stateRank,omitempty"`

	GuardianConsent string `json:"guardianConsent"`

	SocialAccounts []SocialAccount `json:"socialAccounts"`
	Interests      []string        `json:"interests"`
	Values         []string        `json:"values"`
	Causes         []string        `json:"causes"`
	ContentSamples int             `json:"contentSamples"`

	ActiveDealCount int     `json:"activeDealCount"`
	TotalEarnings   float64 `json:"totalEarnings"`
	DealSuccessRate float64 `json:"dealSuccessRate"`

	TaxFormsOnFile   bool `json:"taxFormsOnFile"`
	W9Submitted      bool `json:"w9Submitted"`
	SchoolApprovalOn bool `json:"schoolApprovalOnFile"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// IsMinor reports whether the athlete is under 18 as of now.
func (a *AthleteProfile) IsMinor() bool {
	if a.DateOfBirth.IsZero() {
		return false
	}
	return age(a.DateOfBirth, time.Now()) < 18
}

// Age returns the athlete's age in whole years, or 0 when the date of
// birth is unknown.
func (a *AthleteProfile) Age() int {
	if a.DateOfBirth.IsZero() {
		return 0
	}
	return age(a.DateOfBirth, time.Now())
}

func age(birth, now time.Time) int {
	years := now.Year() - birth.Year()
	if now.YearDay() < birth.YearDay() {
		years--
	}
	return years
}

// TotalFollowers sums followers across all linked platforms.
func (a *AthleteProfile) TotalFollowers() int {
	total := 0
	for _, acct := range a.SocialAccounts {
		total += acct.Followers
	}
	return total
}

// AvgEngagementRate averages engagement across linked platforms.
func (a *AthleteProfile) AvgEngagementRate() float64 {
	if len(a.SocialAccounts) == 0 {
		return 0
	}
	sum := 0.0
	for _, acct := range a.SocialAccounts {
		sum += acct.EngagementRate
	}
	return sum / float64(len(a.SocialAccounts))
}

// HasVerifiedAccount reports whether any linked platform is verified.
func (a *AthleteProfile) HasVerifiedAccount() bool {
	for _, acct := range a.SocialAccounts {
		if acct.Verified {
			return true
		}
	}
	return false
}
