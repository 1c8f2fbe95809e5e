package search

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/Newspicel/imdb-go/config"
	internalErrors "github.com/Newspicel/imdb-go/internal/errors"
	"github.com/Newspicel/imdb-go/internal/index"
	"github.com/Newspicel/imdb-go/internal/scoring"
	"github.com/Newspicel/imdb-go/model"
	"github.com/Newspicel/imdb-go/services"
)

const (
	// Relevance-sorted searches overscan the engine and re-rank, so the
	// final ordering reflects quality and popularity, not just lexical
	// match. Field-sorted searches need no overscan.
	candidateFactor = 5
	minCandidates   = 50

	cacheSize = 1024
)

// Service executes searches against the prepared indexes. It caches result
// lists keyed by the full request; the query id is minted fresh per response
// so repeated requests stay distinguishable in logs.
type Service struct {
	indexes    *index.Indexes
	titleCache *lru.Cache[string, []model.TitleResult]
	nameCache  *lru.Cache[string, []model.NameResult]
}

var (
	_ services.TitleSearcher = (*Service)(nil)
	_ services.NameSearcher  = (*Service)(nil)
)

// NewService wraps the prepared indexes in a search service.
func NewService(indexes *index.Indexes) (*Service, error) {
	titleCache, err := lru.New[string, []model.TitleResult](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("creating title result cache: %w", err)
	}
	nameCache, err := lru.New[string, []model.NameResult](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("creating name result cache: %w", err)
	}
	return &Service{indexes: indexes, titleCache: titleCache, nameCache: nameCache}, nil
}

// SearchTitles runs a structured title search and returns ranked results.
func (s *Service) SearchTitles(req services.TitleSearchRequest) (model.TitleSearchResponse, error) {
	req.Limit = clampLimit(req.Limit)
	if req.Sort == "" {
		req.Sort = model.SortRelevance
	}

	key := titleCacheKey(req)
	if cached, ok := s.titleCache.Get(key); ok {
		return model.TitleSearchResponse{Results: cached, QueryID: uuid.NewString()}, nil
	}

	q := ComposeTitleQuery(req)

	var results []model.TitleResult
	if field, descending, ok := sortField(req.Sort); ok {
		hits, err := s.indexes.Titles.Execute(q, req.Limit, index.SortSpec{Field: field, Descending: descending})
		if err != nil {
			return model.TitleSearchResponse{}, err
		}
		results = make([]model.TitleResult, 0, len(hits))
		for _, hit := range hits {
			result := titleResultFromHit(hit)
			result.SortValue = storedFloat(hit.Fields, field)
			results = append(results, result)
		}
	} else {
		topK := req.Limit * candidateFactor
		if topK < minCandidates {
			topK = minCandidates
		}
		hits, err := s.indexes.Titles.Execute(q, topK, index.SortSpec{})
		if err != nil {
			return model.TitleSearchResponse{}, err
		}
		results = make([]model.TitleResult, 0, len(hits))
		for _, hit := range hits {
			result := titleResultFromHit(hit)
			score := scoring.TitleScore(hit.Score, &result, req.Query)
			result.Score = &score
			results = append(results, result)
		}
		sort.SliceStable(results, func(i, j int) bool {
			return *results[i].Score > *results[j].Score
		})
		if len(results) > req.Limit {
			results = results[:req.Limit]
		}
	}

	s.titleCache.Add(key, results)
	return model.TitleSearchResponse{Results: results, QueryID: uuid.NewString()}, nil
}

// SearchNames runs a structured person search. A request with neither text
// nor filters is invalid.
func (s *Service) SearchNames(req services.NameSearchRequest) (model.NameSearchResponse, error) {
	req.Limit = clampLimit(req.Limit)

	if strings.TrimSpace(req.Query) == "" && !req.HasFilters() {
		return model.NameSearchResponse{}, internalErrors.NewInvalidQueryError(
			"name search requires a query or at least one filter")
	}

	key := nameCacheKey(req)
	if cached, ok := s.nameCache.Get(key); ok {
		return model.NameSearchResponse{Results: cached, QueryID: uuid.NewString()}, nil
	}

	hits, err := s.indexes.Names.Execute(ComposeNameQuery(req), req.Limit, index.SortSpec{})
	if err != nil {
		return model.NameSearchResponse{}, err
	}

	results := make([]model.NameResult, 0, len(hits))
	for _, hit := range hits {
		result := nameResultFromHit(hit)
		score := hit.Score
		result.Score = &score
		results = append(results, result)
	}

	s.nameCache.Add(key, results)
	return model.NameSearchResponse{Results: results, QueryID: uuid.NewString()}, nil
}

// GetTitle returns the stored document for one tconst.
func (s *Service) GetTitle(id string) (model.TitleResult, error) {
	hit, err := s.indexes.Titles.FetchStored(id)
	if err != nil {
		return model.TitleResult{}, err
	}
	return titleResultFromHit(hit), nil
}

// GetName returns the stored document for one nconst.
func (s *Service) GetName(id string) (model.NameResult, error) {
	hit, err := s.indexes.Names.FetchStored(id)
	if err != nil {
		return model.NameResult{}, err
	}
	return nameResultFromHit(hit), nil
}

func clampLimit(limit int) int {
	if limit == 0 {
		return config.DefaultSearchLimit
	}
	if limit < config.MinSearchLimit {
		return config.MinSearchLimit
	}
	if limit > config.MaxSearchLimit {
		return config.MaxSearchLimit
	}
	return limit
}

// sortField maps a sort mode to its fast field; relevance has none.
func sortField(mode model.SortMode) (field string, descending, ok bool) {
	switch mode {
	case model.SortRatingDesc:
		return model.FieldAverageRating, true, true
	case model.SortRatingAsc:
		return model.FieldAverageRating, false, true
	case model.SortVotesDesc:
		return model.FieldNumVotes, true, true
	case model.SortVotesAsc:
		return model.FieldNumVotes, false, true
	default:
		return "", false, false
	}
}

// Cache keys spell out every request field; range bounds are dereferenced so
// equal requests always collide.

func titleCacheKey(req services.TitleSearchRequest) string {
	return strings.Join([]string{
		"t",
		req.Query,
		strings.Join(req.TitleTypes, "|"),
		strings.Join(req.Genres, "|"),
		rangeKey(req.StartYear),
		rangeKey(req.EndYear),
		rangeKey(req.Rating),
		rangeKey(req.Votes),
		string(req.Sort),
		strconv.Itoa(req.Limit),
	}, "\x1f")
}

func nameCacheKey(req services.NameSearchRequest) string {
	return strings.Join([]string{
		"n",
		req.Query,
		rangeKey(req.BirthYear),
		strings.Join(req.Professions, "|"),
		strconv.Itoa(req.Limit),
	}, "\x1f")
}

func rangeKey(r services.RangeFilter) string {
	return boundKey(r.Min) + ".." + boundKey(r.Max)
}

func boundKey(bound *float64) string {
	if bound == nil {
		return ""
	}
	return strconv.FormatFloat(*bound, 'g', -1, 64)
}
