// internal/server/discover.go
package server

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"chatnil/internal/store"
)

// handleDiscoverAthletes proxies full-text athlete discovery to the
// search index.
func (s *Server) handleDiscoverAthletes(c *gin.Context) {
	query := store.DiscoverQuery{
		Keywords:    c.Query("q"),
		Sport:       c.Query("sport"),
		State:       c.Query("state"),
		SchoolLevel: c.Query("schoolLevel"),
		Tier:        c.Query("tier"),
	}

	if v, err := strconv.Atoi(c.DefaultQuery("minFollowers", "0")); err == nil {
		query.MinFollowers = v
	}
	if v, err := strconv.Atoi(c.DefaultQuery("from", "0")); err == nil {
		query.From = v
	}
	if v, err := strconv.Atoi(c.DefaultQuery("size", "20")); err == nil {
		query.Size = v
	}

	hits, total, err := s.deps.Discover.Search(c.Request.Context(), query)
	if err != nil {
		respondError(c, s.logger, err)
		return
	}

	respondOK(c, gin.H{"hits": hits, "total": total})
}
