// internal/store/discover.go
package store

import (
	"context"
	"encoding/json"
	"strings"

	"chatnil/internal/common/database"
	stderrors "chatnil/internal/common/errors"
	"chatnil/internal/common/logger"

	"github.com/elastic/go-elasticsearch/v8/esapi"
)

// ==========================
// Athlete Discovery (Elasticsearch)
// ==========================

// DiscoverQuery is an agency-facing athlete search request.
type DiscoverQuery struct {
	Keywords     string
	Sport        string
	State        string
	SchoolLevel  string
	Tier         string
	MinFollowers int
	From         int
	Size         int
}

// DiscoverHit is one athlete result from the search index.
type DiscoverHit struct {
	AthleteID      string  `json:"athleteId"`
	Name           string  `json:"name"`
	Sport          string  `json:"sport"`
	School         string  `json:"school"`
	SchoolLevel    string  `json:"schoolLevel"`
	State          string  `json:"state"`
	Tier           string  `json:"tier"`
	TotalFollowers int     `json:"totalFollowers"`
	FMVFactor      float64 `json:"fmvFactor"`
	Score          float64 `json:"score"`
}

type DiscoverStore struct {
	es     *database.ElasticsearchClient
	index  string
	logger logger.Logger
}

func NewDiscoverStore(es *database.ElasticsearchClient, index string, log logger.Logger) *DiscoverStore {
	return &DiscoverStore{
		es:     es,
		index:  index,
		logger: log.WithFields(map[string]interface{}{"store": "discover"}),
	}
}

// Search runs the discovery query against the athlete index.
func (s *DiscoverStore) Search(ctx context.Context, q DiscoverQuery) ([]DiscoverHit, int, error) {
	body, err := json.Marshal(buildDiscoverQuery(q))
	if err != nil {
		return nil, 0, stderrors.NewSearchQueryFailedError(s.index, err)
	}

	if q.Size <= 0 || q.Size > 100 {
		q.Size = 20
	}

	req := esapi.SearchRequest{
		Index: []string{s.index},
		Body:  strings.NewReader(string(body)),
		From:  &q.From,
		Size:  &q.Size,
	}

	res, err := req.Do(ctx, s.es.Client)
	if err != nil {
		return nil, 0, stderrors.NewSearchQueryFailedError(s.index, err)
	}
	defer res.Body.Close()

	if res.StatusCode == 404 {
		return nil, 0, stderrors.NewIndexNotFoundError(s.index)
	}
	if res.IsError() {
		return nil, 0, stderrors.NewSearchQueryFailedError(s.index, nil)
	}

	var parsed struct {
		Hits struct {
			Total struct {
				Value int `json:"value"`
			} `json:"total"`
			Hits []struct {
				Score  float64         `json:"_score"`
				Source json.RawMessage `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, 0, stderrors.NewSearchQueryFailedError(s.index, err)
	}

	hits := make([]DiscoverHit, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		var hit DiscoverHit
		if err := json.Unmarshal(h.Source, &hit); err != nil {
			s.logger.Warn("skipping unparseable search hit", map[string]interface{}{
				"error": err.Error(),
			})
			continue
		}
		hit.Score = h.Score
		hits = append(hits, hit)
	}

	return hits, parsed.Hits.Total.Value, nil
}

func buildDiscoverQuery(q DiscoverQuery) map[string]interface{} {
	mustClauses := []interface{}{}
	filterClauses := []interface{}{}

	if q.Keywords != "" {
		mustClauses = append(mustClauses, map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  q.Keywords,
				"fields": []string{"name^3", "school^2", "sport"},
				"type":   "best_fields",
			},
		})
	}

	for field, value := range map[string]string{
		"sport":       strings.ToLower(q.Sport),
		"state":       strings.ToUpper(q.State),
		"schoolLevel": q.SchoolLevel,
		"tier":        q.Tier,
	} {
		if value != "" {
			filterClauses = append(filterClauses, map[string]interface{}{
				"term": map[string]interface{}{field: value},
			})
		}
	}

	if q.MinFollowers > 0 {
		filterClauses = append(filterClauses, map[string]interface{}{
			"range": map[string]interface{}{
				"totalFollowers": map[string]interface{}{"gte": q.MinFollowers},
			},
		})
	}

	boolQuery := map[string]interface{}{}
	if len(mustClauses) > 0 {
		boolQuery["must"] = mustClauses
	}
	if len(filterClauses) > 0 {
		boolQuery["filter"] = filterClauses
	}
	if len(boolQuery) == 0 {
		return map[string]interface{}{
			"query": map[string]interface{}{"match_all": map[string]interface{}{}},
			"sort":  []interface{}{map[string]interface{}{"fmvFactor": "desc"}},
		}
	}

	return map[string]interface{}{
		"query": map[string]interface{}{"bool": boolQuery},
		"sort": []interface{}{
			"_score",
			map[string]interface{}{"fmvFactor": "desc"},
		},
	}
}
