// internal/fmv/insights.go
package fmv

import (
	"fmt"
	"sort"

	"chatnil/internal/models"
)

// ==========================
// Coaching Insights
// ==========================

// Suggestion is one actionable step an athlete can take to raise
// their valuation factor.
type Suggestion struct {
	Area     string `json:"area"`
	Current  string `json:"current"`
	Target   string `json:"target"`
	Action   string `json:"action"`
	Priority string `json:"priority"`
}

const (
	priorityHigh   = "high"
	priorityMedium = "medium"
	priorityLow    = "low"
)

func strengths(b models.FMVBreakdown, athlete *models.AthleteProfile) []string {
	var out []string

	if b.SocialScore >= 20 {
		if followers := athlete.TotalFollowers(); followers >= 10000 {
			out = append(out, fmt.Sprintf("Strong social media presence (%.1fK followers)",
				float64(followers)/1000))
		}
		if engagement := athlete.AvgEngagementRate(); engagement >= 4 {
			out = append(out, fmt.Sprintf("High engagement rate (%.1f%%)", engagement))
		}
	}

	if b.AthleticScore >= 20 {
		if sportTiers[athlete.Sport] >= 9 {
			out = append(out, fmt.Sprintf("Premium sport (%s)", athlete.Sport))
		}
		if athlete.NationalRank > 0 && athlete.NationalRank <= 100 {
			out = append(out, fmt.Sprintf("Nationally ranked (#%d)", athlete.NationalRank))
		}
	}

	if b.MarketScore >= 15 {
		out = append(out, "Strong local NIL market")
	}

	if b.BrandScore >= 15 {
		out = append(out, "Active deal portfolio")
	}

	if len(out) > 5 {
		out = out[:5]
	}
	return out
}

func weaknesses(b models.FMVBreakdown, athlete *models.AthleteProfile) []string {
	var out []string

	if b.SocialScore < 15 {
		out = append(out, "Limited social media presence")
	}
	if len(athlete.SocialAccounts) < 2 {
		out = append(out, "Low platform diversity")
	}
	if b.AthleticScore < 15 {
		out = append(out, "No national rankings")
	}
	if b.MarketScore < 10 {
		out = append(out, "Small market area")
	}
	if b.BrandScore < 10 {
		out = append(out, "No deal experience")
	}

	if len(out) > 5 {
		out = out[:5]
	}
	return out
}

// suggestions returns up to five steps, highest priority first.
func suggestions(b models.FMVBreakdown, athlete *models.AthleteProfile) []Suggestion {
	var out []Suggestion

	if b.SocialScore < 20 {
		followers := athlete.TotalFollowers()
		switch {
		case followers < 5000:
			out = append(out, Suggestion{
				Area:     "social",
				Current:  fmt.Sprintf("%d followers", followers),
				Target:   "5,000 followers",
				Action:   "Post 3-4x per week, use trending hashtags, and engage with your audience consistently.",
				Priority: priorityHigh,
			})
		case followers < 10000:
			out = append(out, Suggestion{
				Area:     "social",
				Current:  fmt.Sprintf("%d followers", followers),
				Target:   "10,000 followers",
				Action:   "Increase posting frequency, create more video content, and cross-promote across platforms.",
				Priority: priorityHigh,
			})
		}

		if len(athlete.SocialAccounts) < 3 {
			out = append(out, Suggestion{
				Area:     "social",
				Current:  fmt.Sprintf("%d linked platforms", len(athlete.SocialAccounts)),
				Target:   "3+ platforms",
				Action:   "Link additional platforms to diversify your reach.",
				Priority: priorityMedium,
			})
		}

		if len(athlete.SocialAccounts) > 0 && athlete.AvgEngagementRate() < 4 {
			out = append(out, Suggestion{
				Area:     "social",
				Current:  fmt.Sprintf("%.1f%% engagement rate", athlete.AvgEngagementRate()),
				Target:   "4%+ engagement rate",
				Action:   "Ask questions in captions, respond to comments, and post when your audience is most active.",
				Priority: priorityMedium,
			})
		}
	}

	if b.BrandScore < 12 {
		if athlete.ActiveDealCount == 0 {
			out = append(out, Suggestion{
				Area:     "brand",
				Current:  "No active deals",
				Target:   "Complete your first deal",
				Action:   "Reach out to local businesses and use matchmaking to find opportunities.",
				Priority: priorityHigh,
			})
		}
		if athlete.ContentSamples < 3 {
			out = append(out, Suggestion{
				Area:     "brand",
				Current:  fmt.Sprintf("%d content samples", athlete.ContentSamples),
				Target:   "5+ content samples",
				Action:   "Add your best posts and sponsored content to your portfolio.",
				Priority: priorityMedium,
			})
		}
	}

	if b.AthleticScore < 20 && athlete.NationalRank == 0 {
		out = append(out, Suggestion{
			Area:     "athletic",
			Current:  "No national ranking",
			Target:   "Get ranked by recruiting services",
			Action:   "Create recruiting profiles and submit highlight videos to analysts.",
			Priority: priorityLow,
		})
	}

	rank := map[string]int{priorityHigh: 0, priorityMedium: 1, priorityLow: 2}
	sort.SliceStable(out, func(i, j int) bool {
		return rank[out[i].Priority] < rank[out[j].Priority]
	})

	if len(out) > 5 {
		out = out[:5]
	}
	return out
}
