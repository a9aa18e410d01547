// internal/server/matches.go
package server

import (
	"io"
	"time"

	"github.com/gin-gonic/gin"

	"chatnil/internal/common/metrics"
	"chatnil/internal/matchmaking"
)

// handleCampaignMatches ranks candidate athletes for a campaign. Hard
// filters run in the athlete query; soft scoring runs in the matcher.
func (s *Server) handleCampaignMatches(c *gin.Context) {
	ctx := c.Request.Context()

	campaign, err := s.deps.Campaigns.GetByID(ctx, c.Param("id"))
	if err != nil {
		respondError(c, s.logger, err)
		return
	}

	athletes, err := s.deps.Athletes.ListCandidates(ctx, campaign)
	if err != nil {
		respondError(c, s.logger, err)
		return
	}

	candidates := make([]matchmaking.Candidate, 0, len(athletes))
	for _, athlete := range athletes {
		estimate, err := s.deps.FMVStore.GetByAthleteID(ctx, athlete.ID)
		if err != nil {
			respondError(c, s.logger, err)
			return
		}
		candidates = append(candidates, matchmaking.Candidate{Athlete: athlete, FMV: estimate})
	}

	matches, err := s.deps.Matcher.FindMatches(campaign, candidates, matchmaking.Options{
		MinMatchScore: s.cfg.Matchmaking.MinMatchScore,
		MaxResults:    s.cfg.Matchmaking.MaxResults,
	})
	if err != nil {
		respondError(c, s.logger, err)
		return
	}

	for _, match := range matches {
		metrics.MatchEvaluations.WithLabelValues(match.Confidence).Inc()
		if s.deps.Obs != nil {
			s.deps.Obs.RecordMatchComputed(ctx, match.Confidence)
		}
		s.events.publish(MatchEvent{
			CampaignID: match.CampaignID,
			AthleteID:  match.AthleteID,
			MatchScore: match.MatchScore,
			Confidence: match.Confidence,
			OccurredAt: match.ComputedAt,
		})
	}

	respondOK(c, gin.H{
		"campaignId": campaign.ID,
		"matches":    matches,
		"evaluated":  len(candidates),
	})
}

// handleMatchEvents streams match announcements as server-sent events
// with periodic heartbeats to keep the connection alive.
func (s *Server) handleMatchEvents(c *gin.Context) {
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	events := s.events.subscribe()
	defer s.events.unsubscribe(events)

	ticker := time.NewTicker(15 * time.Second)
	defer ticker.Stop()

	c.SSEvent("connected", gin.H{"time": time.Now().UTC()})
	c.Writer.Flush()

	c.Stream(func(w io.Writer) bool {
		select {
		case <-c.Request.Context().Done():
			return false
		case event := <-events:
			c.SSEvent("match", event)
			return true
		case t := <-ticker.C:
			c.SSEvent("heartbeat", gin.H{"time": t.UTC()})
			return true
		}
	})
}
