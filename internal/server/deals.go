// internal/server/deals.go
package server

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	stderrors "chatnil/internal/common/errors"
	"chatnil/internal/common/metrics"
	"chatnil/internal/common/validation"
	"chatnil/internal/compliance/scoring"
	"chatnil/internal/models"
)

// dealRequest is the submission payload after schema validation.
type dealRequest struct {
	DealID             string   `json:"dealId,omitempty"`
	AthleteID          string   `json:"athleteId"`
	CampaignID         string   `json:"campaignId"`
	BrandName          string   `json:"brandName"`
	BrandCategory      string   `json:"brandCategory"`
	DealType           string   `json:"dealType"`
	CompensationAmount float64  `json:"compensationAmount"`
	Description        string   `json:"description"`
	Deliverables       []string `json:"deliverables"`
	StartDate          string   `json:"startDate"`
	EndDate            string   `json:"endDate"`
	UsesSchoolMarks    bool     `json:"usesSchoolMarks"`
	ContractDocumentID string   `json:"contractDocumentId"`
}

func (r *dealRequest) toDeal() *models.Deal {
	deal := &models.Deal{
		AthleteID:          r.AthleteID,
		CampaignID:         r.CampaignID,
		BrandName:          r.BrandName,
		BrandCategory:      r.BrandCategory,
		DealType:           r.DealType,
		CompensationAmount: r.CompensationAmount,
		Description:        r.Description,
		Deliverables:       r.Deliverables,
		UsesSchoolMarks:    r.UsesSchoolMarks,
		ContractDocumentID: r.ContractDocumentID,
	}
	if t, err := time.Parse("2006-01-02", r.StartDate); err == nil {
		deal.StartDate = t
	}
	if t, err := time.Parse("2006-01-02", r.EndDate); err == nil {
		deal.EndDate = t
	}
	return deal
}

// bindValidated decodes the body twice: once as a raw document for
// schema validation and once into the typed request.
func bindValidated(c *gin.Context, schema map[string]interface{}, out interface{}) error {
	var document map[string]interface{}
	if err := c.ShouldBindBodyWithJSON(&document); err != nil {
		return stderrors.NewDealValidationFailedError("request body is not valid JSON")
	}

	result, err := validation.Validate(document, schema)
	if err != nil {
		return stderrors.NewDealValidationFailedError(err.Error())
	}
	if !result.Valid {
		return stderrors.NewDealValidationFailedError(result.Summary())
	}

	return c.ShouldBindBodyWithJSON(out)
}

// ==========================
// Deal Handlers
// ==========================

// handleCreateDeal persists a deal and scores it synchronously. The
// decision notification and audit record are best effort.
func (s *Server) handleCreateDeal(c *gin.Context) {
	var req dealRequest
	if err := bindValidated(c, validation.DealSchema, &req); err != nil {
		respondError(c, s.logger, err)
		return
	}

	ctx := c.Request.Context()

	deal, err := s.deps.Deals.Create(ctx, req.toDeal())
	if err != nil {
		respondError(c, s.logger, err)
		return
	}

	score, err := s.scoreDeal(ctx, deal)
	if err != nil {
		respondError(c, s.logger, err)
		return
	}

	respondCreated(c, gin.H{"deal": deal, "score": score})
}

// handleValidateDeal scores a payload without creating a deal. With
// mode=quick it returns the pre-submission readout only; with a dealId
// in the body the computed score is persisted for that deal.
func (s *Server) handleValidateDeal(c *gin.Context) {
	var req dealRequest
	if err := bindValidated(c, validation.DealSchema, &req); err != nil {
		respondError(c, s.logger, err)
		return
	}

	ctx := c.Request.Context()
	deal := req.toDeal()
	deal.ID = req.DealID

	if c.Query("mode") == "quick" {
		dc, err := s.loadDealContext(ctx, deal)
		if err != nil {
			respondError(c, s.logger, err)
			return
		}
		respondOK(c, gin.H{"valid": true, "quickCheck": s.deps.Calculator.QuickCheck(dc)})
		return
	}

	if deal.ID != "" {
		score, err := s.scoreDeal(ctx, deal)
		if err != nil {
			respondError(c, s.logger, err)
			return
		}
		respondOK(c, gin.H{"valid": true, "score": score})
		return
	}

	dc, err := s.loadDealContext(ctx, deal)
	if err != nil {
		respondError(c, s.logger, err)
		return
	}
	result, err := s.deps.Calculator.Score(dc)
	if err != nil {
		respondError(c, s.logger, err)
		return
	}
	respondOK(c, gin.H{"valid": true, "result": result})
}

func (s *Server) handleListDeals(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	deals, err := s.deps.Deals.List(c.Request.Context(), c.Query("status"), page, limit)
	if err != nil {
		respondError(c, s.logger, err)
		return
	}

	respondOK(c, gin.H{"deals": deals, "page": page})
}

// handleGetScore returns the stored score. Athletes may only read
// scores on their own deals; officers can read any.
func (s *Server) handleGetScore(c *gin.Context) {
	ctx := c.Request.Context()
	dealID := c.Param("id")

	score, err := s.deps.Scores.GetByDealID(ctx, dealID)
	if err != nil {
		if stdErr := stderrors.AsStandardError(err); stdErr.Code == stderrors.ErrCodeScoreNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": stdErr, "needsScoring": true})
			return
		}
		respondError(c, s.logger, err)
		return
	}

	session := sessionFrom(c)
	if !session.IsOfficer(s.cfg.Auth.OfficerRoles) {
		deal, err := s.deps.Deals.GetByID(ctx, dealID)
		if err != nil {
			respondError(c, s.logger, err)
			return
		}
		if session.AthleteID != "" && session.AthleteID != deal.AthleteID {
			respondError(c, s.logger, stderrors.NewForbiddenError("score belongs to another athlete"))
			return
		}
	}

	respondOK(c, score)
}

// ==========================
// Scoring Pipeline
// ==========================

// loadDealContext gathers the scoring inputs. A missing state rule or
// FMV estimate is a soft condition the calculator handles itself.
func (s *Server) loadDealContext(ctx context.Context, deal *models.Deal) (*scoring.DealContext, error) {
	athlete, err := s.deps.Athletes.GetByID(ctx, deal.AthleteID)
	if err != nil {
		return nil, err
	}

	dc := &scoring.DealContext{Deal: deal, Athlete: athlete}

	rule, err := s.deps.StateRules.GetByState(ctx, athlete.State)
	if err == nil {
		dc.StateRule = rule
	} else if stderrors.AsStandardError(err).Code != stderrors.ErrCodeStateRuleNotFound {
		return nil, err
	}

	estimate, err := s.deps.FMVStore.GetByAthleteID(ctx, athlete.ID)
	if err != nil {
		return nil, err
	}
	dc.FMV = estimate

	return dc, nil
}

func (s *Server) scoreDeal(ctx context.Context, deal *models.Deal) (*models.ComplianceScore, error) {
	start := time.Now()

	dc, err := s.loadDealContext(ctx, deal)
	if err != nil {
		return nil, err
	}

	result, err := s.deps.Calculator.Score(dc)
	if err != nil {
		return nil, stderrors.NewScoringFailedError(deal.ID, err)
	}

	score := &models.ComplianceScore{
		DealID:          deal.ID,
		TotalScore:      result.TotalScore,
		Status:          result.Status,
		Dimensions:      result.Dimensions,
		ReasonCodes:     result.ReasonCodes,
		Recommendations: result.Recommendations,
		ScoreVersion:    result.ScoreVersion,
	}

	stored, err := s.deps.Scores.UpsertAuto(ctx, score)
	if err != nil {
		return nil, err
	}

	metrics.ScoresComputed.WithLabelValues(stored.Status).Inc()
	if s.deps.Obs != nil {
		s.deps.Obs.RecordScoreComputed(ctx, stored.Status)
		s.deps.Obs.RecordScoreDuration(ctx, time.Since(start), stored.Status)
	}

	s.deps.Audit.Record(ctx, "system", "score.computed", "deal", deal.ID, map[string]interface{}{
		"totalScore": stored.TotalScore,
		"status":     stored.Status,
	})

	if s.deps.Notifier != nil {
		s.deps.Notifier.ScoreReady(ctx, dc.Athlete, deal, stored)
	}

	return stored, nil
}
