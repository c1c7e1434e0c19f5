package search

import (
	"fmt"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search/query"
)

// Hit is a single search result.
type Hit struct {
	ID     string  `json:"id"`
	Score  float64 `json:"score"`
	Title  string  `json:"title"`
	Author string  `json:"author,omitempty"`
	Genre  string  `json:"genre,omitempty"`
	Status string  `json:"status"`
}

// Result carries the hits for one query.
type Result struct {
	Query  string `json:"query"`
	Total  uint64 `json:"total"`
	TookMs int64  `json:"took_ms"`
	Hits   []Hit  `json:"hits"`
}

// Search runs a full-text query over title, author, genre, and note text.
// Terms get both exact-match and fuzzy treatment so small typos still hit.
func (s *Index) Search(queryString string, limit int) (*Result, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	queryString = strings.TrimSpace(queryString)
	if queryString == "" {
		return &Result{Query: queryString, Hits: []Hit{}}, nil
	}
	if limit <= 0 {
		limit = 20
	}

	matchQuery := bleve.NewMatchQuery(queryString)

	fuzzyQuery := bleve.NewMatchQuery(queryString)
	fuzzyQuery.SetFuzziness(1)
	fuzzyQuery.SetBoost(0.5)

	q := query.NewDisjunctionQuery([]query.Query{matchQuery, fuzzyQuery})

	req := bleve.NewSearchRequestOptions(q, limit, 0, false)
	req.Fields = []string{"title", "author", "genre", "status"}

	res, err := s.index.Search(req)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", queryString, err)
	}

	result := &Result{
		Query:  queryString,
		Total:  res.Total,
		TookMs: res.Took.Milliseconds(),
		Hits:   make([]Hit, 0, len(res.Hits)),
	}
	for _, hit := range res.Hits {
		h := Hit{ID: hit.ID, Score: hit.Score}
		h.Title, _ = hit.Fields["title"].(string)
		h.Author, _ = hit.Fields["author"].(string)
		h.Genre, _ = hit.Fields["genre"].(string)
		h.Status, _ = hit.Fields["status"].(string)
		result.Hits = append(result.Hits, h)
	}
	return result, nil
}
