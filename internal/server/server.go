// internal/server/server.go
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"chatnil/internal/common/auth"
	"chatnil/internal/common/config"
	"chatnil/internal/common/logger"
	"chatnil/internal/common/observability"
	"chatnil/internal/compliance/scoring"
	"chatnil/internal/fmv"
	"chatnil/internal/matchmaking"
	"chatnil/internal/notify"
	"chatnil/internal/store"
)

// Deps bundles everything the HTTP layer needs. All dependencies are
// injected so handlers stay testable against mocks and fakes.
type Deps struct {
	Deals      *store.DealStore
	Athletes   *store.AthleteStore
	Scores     *store.ScoreStore
	StateRules *store.StateRuleStore
	Campaigns  *store.CampaignStore
	FMVStore   *store.FMVStore
	Audit      *store.AuditStore
	Discover   *store.DiscoverStore
	Limiter    *store.RateLimiter
	Sessions   *auth.SessionStore

	Calculator *scoring.Calculator
	FMVCalc    *fmv.Calculator
	Matcher    *matchmaking.Matcher
	Notifier   *notify.Notifier
	Obs        *observability.Observability
}

type Server struct {
	cfg    *config.Config
	deps   Deps
	events *eventHub
	logger logger.Logger
}

func NewServer(cfg *config.Config, deps Deps, log logger.Logger) *Server {
	return &Server{
		cfg:    cfg,
		deps:   deps,
		events: newEventHub(),
		logger: log.WithFields(map[string]interface{}{"component": "server"}),
	}
}

// Router builds the gin engine with all routes and middleware wired.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger(s.logger))
	router.Use(requestMetrics())

	router.GET("/health", s.handleHealth)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	api.Use(requireSession(s.deps.Sessions, s.logger))
	{
		api.POST("/deals", s.handleCreateDeal)
		api.POST("/deals/validate", s.handleValidateDeal)
		api.GET("/deals", s.handleListDeals)
		api.GET("/deals/:id/score", s.handleGetScore)

		review := api.Group("/deals/:id/review")
		review.Use(requireOfficer(s.cfg.Auth.OfficerRoles, s.logger))
		{
			review.POST("", s.handleReviewDeal)
			review.DELETE("", s.handleClearOverride)
		}

		api.POST("/compliance/override",
			requireOfficer(s.cfg.Auth.OfficerRoles, s.logger), s.handleComplianceOverride)
		api.GET("/compliance/state-rules", s.handleListStateRules)
		api.GET("/compliance/state-rules/:state", s.handleGetStateRule)
		api.GET("/compliance/summary", s.handleComplianceSummary)

		api.POST("/fmv/recalculate", s.handleRecalculateFMV)
		api.GET("/fmv/:athleteId", s.handleGetFMV)

		api.GET("/campaigns/:id/matches", s.handleCampaignMatches)
		api.GET("/matches/events", s.handleMatchEvents)

		api.GET("/athletes/discover", s.handleDiscoverAthletes)
	}

	return router
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": s.cfg.App.Name,
		"version": s.cfg.App.Version,
	})
}
