// internal/server/review.go
package server

import (
	"github.com/gin-gonic/gin"

	stderrors "chatnil/internal/common/errors"
	"chatnil/internal/common/metrics"
	"chatnil/internal/common/validation"
	"chatnil/internal/models"
)

type overrideRequest struct {
	DealID        string `json:"dealId,omitempty"`
	Status        string `json:"status"`
	Justification string `json:"justification"`
	NotifyAthlete bool   `json:"notifyAthlete"`
}

// handleReviewDeal applies an officer override to the deal in the path.
func (s *Server) handleReviewDeal(c *gin.Context) {
	var req overrideRequest
	if err := bindValidated(c, validation.OverrideSchema, &req); err != nil {
		respondError(c, s.logger, err)
		return
	}
	s.applyOverride(c, c.Param("id"), &req)
}

// handleComplianceOverride is the body-addressed variant used by the
// officer dashboard.
func (s *Server) handleComplianceOverride(c *gin.Context) {
	var req overrideRequest
	if err := bindValidated(c, validation.OverrideSchema, &req); err != nil {
		respondError(c, s.logger, err)
		return
	}
	if req.DealID == "" {
		respondError(c, s.logger, stderrors.NewDealValidationFailedError("dealId: dealId is required"))
		return
	}
	s.applyOverride(c, req.DealID, &req)
}

// applyOverride performs the override. Overrides may only land on
// green or yellow; a red outcome has to come from the calculator,
// never from a human shortcut.
func (s *Server) applyOverride(c *gin.Context, dealID string, req *overrideRequest) {
	if req.Status != models.StatusGreen && req.Status != models.StatusYellow {
		respondError(c, s.logger, stderrors.NewOverrideInvalidStateError(req.Status))
		return
	}
	if min := s.cfg.Scoring.MinJustificationLen; len(req.Justification) < min {
		respondError(c, s.logger, stderrors.NewJustificationTooShortError(len(req.Justification), min))
		return
	}

	ctx := c.Request.Context()
	session := sessionFrom(c)

	override, err := s.deps.Scores.ApplyOverride(ctx, &models.ScoreOverride{
		DealID:        dealID,
		OfficerID:     session.UserID,
		ToStatus:      req.Status,
		Justification: req.Justification,
	})
	if err != nil {
		respondError(c, s.logger, err)
		return
	}

	metrics.ScoreOverrides.WithLabelValues(override.ToStatus).Inc()

	s.deps.Audit.Record(ctx, session.UserID, "score.overridden", "deal", dealID, map[string]interface{}{
		"fromStatus": override.FromStatus,
		"toStatus":   override.ToStatus,
	})

	if req.NotifyAthlete && s.deps.Notifier != nil {
		if deal, err := s.deps.Deals.GetByID(ctx, dealID); err == nil {
			if athlete, err := s.deps.Athletes.GetByID(ctx, deal.AthleteID); err == nil {
				s.deps.Notifier.ScoreOverridden(ctx, athlete, deal, override)
			}
		}
	}

	respondOK(c, override)
}

// handleClearOverride returns a score to the auto-scored state so the
// next calculator run takes effect again.
func (s *Server) handleClearOverride(c *gin.Context) {
	ctx := c.Request.Context()
	dealID := c.Param("id")
	session := sessionFrom(c)

	if err := s.deps.Scores.ClearOverride(ctx, dealID); err != nil {
		respondError(c, s.logger, err)
		return
	}

	s.deps.Audit.Record(ctx, session.UserID, "score.override_cleared", "deal", dealID, nil)

	respondOK(c, gin.H{"dealId": dealID, "state": models.ScoreStateAutoScored})
}
