// internal/server/fmv.go
package server

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	stderrors "chatnil/internal/common/errors"
	"chatnil/internal/common/metrics"
)

const recalcScope = "fmv-recalc"

type recalcRequest struct {
	AthleteID string `json:"athleteId" binding:"required"`
}

// handleRecalculateFMV recomputes an athlete's valuation. Recalculation
// is rate limited per athlete per day because the inputs rarely change
// faster than that.
func (s *Server) handleRecalculateFMV(c *gin.Context) {
	var req recalcRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, s.logger, stderrors.NewDealValidationFailedError("athleteId is required"))
		return
	}

	ctx := c.Request.Context()

	allowed, err := s.deps.Limiter.Allow(ctx, recalcScope, req.AthleteID,
		int64(s.cfg.FMV.RecalcDailyLimit), 24*time.Hour)
	if err != nil {
		respondError(c, s.logger, err)
		return
	}
	if !allowed {
		respondError(c, s.logger,
			stderrors.NewRecalcRateLimitedError(req.AthleteID, s.cfg.FMV.RecalcDailyLimit))
		return
	}

	result, err := s.computeFMV(ctx, req.AthleteID, true)
	if err != nil {
		respondError(c, s.logger, err)
		return
	}

	respondOK(c, result)
}

// handleGetFMV returns the stored estimate, computing one on first
// access.
func (s *Server) handleGetFMV(c *gin.Context) {
	ctx := c.Request.Context()
	athleteID := c.Param("athleteId")

	estimate, err := s.deps.FMVStore.GetByAthleteID(ctx, athleteID)
	if err != nil {
		respondError(c, s.logger, err)
		return
	}
	if estimate != nil {
		respondOK(c, gin.H{"estimate": estimate})
		return
	}

	result, err := s.computeFMV(ctx, athleteID, false)
	if err != nil {
		respondError(c, s.logger, err)
		return
	}

	respondOK(c, result)
}

func (s *Server) computeFMV(ctx context.Context, athleteID string, notifyAthlete bool) (gin.H, error) {
	athlete, err := s.deps.Athletes.GetByID(ctx, athleteID)
	if err != nil {
		return nil, err
	}

	result, err := s.deps.FMVCalc.Calculate(athlete)
	if err != nil {
		return nil, stderrors.NewFMVCalculationFailedError(athleteID, err)
	}

	estimate := result.Estimate
	estimate.AthleteID = athleteID

	if err := s.deps.FMVStore.Upsert(ctx, estimate); err != nil {
		return nil, err
	}

	metrics.FMVCalculations.WithLabelValues(estimate.Tier).Inc()

	s.deps.Audit.Record(ctx, "system", "fmv.calculated", "athlete", athleteID, map[string]interface{}{
		"tier":   estimate.Tier,
		"factor": estimate.Factor,
	})

	if notifyAthlete && s.deps.Notifier != nil {
		s.deps.Notifier.FMVUpdated(ctx, athlete, estimate)
	}

	return gin.H{
		"estimate":    estimate,
		"strengths":   result.Strengths,
		"weaknesses":  result.Weaknesses,
		"suggestions": result.Suggestions,
	}, nil
}
