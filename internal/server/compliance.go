// internal/server/compliance.go
package server

import (
	"github.com/gin-gonic/gin"
)

func (s *Server) handleListStateRules(c *gin.Context) {
	rules, err := s.deps.StateRules.List(c.Request.Context())
	if err != nil {
		respondError(c, s.logger, err)
		return
	}
	respondOK(c, gin.H{"rules": rules})
}

func (s *Server) handleGetStateRule(c *gin.Context) {
	rule, err := s.deps.StateRules.GetByState(c.Request.Context(), c.Param("state"))
	if err != nil {
		respondError(c, s.logger, err)
		return
	}
	respondOK(c, rule)
}

// handleComplianceSummary reports score counts per decision status.
func (s *Server) handleComplianceSummary(c *gin.Context) {
	summary, err := s.deps.Scores.StatusSummary(c.Request.Context())
	if err != nil {
		respondError(c, s.logger, err)
		return
	}
	respondOK(c, gin.H{"statusCounts": summary})
}
