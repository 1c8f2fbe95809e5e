// Package search implements the online query path: composing engine queries
// from structured requests, ranking the hits, and shaping results.
package search

import (
	"sort"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search/query"

	"github.com/Newspicel/imdb-go/config"
	"github.com/Newspicel/imdb-go/internal/index"
	"github.com/Newspicel/imdb-go/model"
	"github.com/Newspicel/imdb-go/services"
)

var inclusive = true

// ComposeTitleQuery turns a title request into an engine query. The default
// filter policy is applied here: no category filter narrows to
// config.DefaultTitleTypes, and no explicit start-year minimum narrows to
// config.DefaultStartYearMin, text or no text.
func ComposeTitleQuery(req services.TitleSearchRequest) query.Query {
	var clauses []query.Query

	titleTypes := req.TitleTypes
	if len(titleTypes) == 0 {
		titleTypes = config.DefaultTitleTypes
	}
	clauses = append(clauses, termGroup(model.FieldTitleType, titleTypes))

	if len(req.Genres) > 0 {
		clauses = append(clauses, termGroup(model.FieldGenres, req.Genres))
	}

	startYear := req.StartYear
	if startYear.Min == nil {
		defaultMin := float64(config.DefaultStartYearMin)
		startYear.Min = &defaultMin
	}
	clauses = append(clauses, rangeQuery(model.FieldStartYear, startYear))

	if req.EndYear.IsSet() {
		clauses = append(clauses, rangeQuery(model.FieldEndYear, req.EndYear))
	}
	if req.Rating.IsSet() {
		clauses = append(clauses, rangeQuery(model.FieldAverageRating, req.Rating))
	}
	if req.Votes.IsSet() {
		clauses = append(clauses, rangeQuery(model.FieldNumVotes, req.Votes))
	}

	if text := strings.TrimSpace(req.Query); text != "" {
		clauses = append(clauses, textQuery(text, index.TitleFieldWeights))
	}

	return conjoin(clauses)
}

// ComposeNameQuery turns a person request into an engine query. Callers must
// reject empty requests before composing; an all-empty request here would
// match everything.
func ComposeNameQuery(req services.NameSearchRequest) query.Query {
	var clauses []query.Query

	if text := strings.TrimSpace(req.Query); text != "" {
		clauses = append(clauses, textQuery(text, index.NameFieldWeights))
	}
	if req.BirthYear.IsSet() {
		clauses = append(clauses, rangeQuery(model.FieldBirthYear, req.BirthYear))
	}
	if len(req.Professions) > 0 {
		clauses = append(clauses, termGroup(index.FieldProfessionFilter, req.Professions))
	}

	return conjoin(clauses)
}

// termGroup builds an exact-match filter over one keyword field. Multiple
// values form an OR-group; the group as a whole is required.
func termGroup(field string, values []string) query.Query {
	if len(values) == 1 {
		term := bleve.NewTermQuery(values[0])
		term.SetField(field)
		return term
	}
	group := bleve.NewDisjunctionQuery()
	for _, value := range values {
		term := bleve.NewTermQuery(value)
		term.SetField(field)
		group.AddQuery(term)
	}
	return group
}

func rangeQuery(field string, filter services.RangeFilter) query.Query {
	rq := bleve.NewNumericRangeInclusiveQuery(filter.Min, filter.Max, &inclusive, &inclusive)
	rq.SetField(field)
	return rq
}

// textQuery builds the weighted full-text clause: per field, a fuzzy match
// query, plus a prefix query for single-token input so partially typed terms
// still hit. Fields are visited in sorted order so composition is
// deterministic.
func textQuery(text string, weights map[string]float64) query.Query {
	fields := make([]string, 0, len(weights))
	for field := range weights {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	tokens := strings.Fields(text)
	singleToken := len(tokens) == 1

	group := bleve.NewDisjunctionQuery()
	for _, field := range fields {
		boost := weights[field]

		match := bleve.NewMatchQuery(text)
		match.SetField(field)
		match.SetBoost(boost)
		match.SetFuzziness(index.Fuzziness)
		group.AddQuery(match)

		if singleToken {
			prefix := bleve.NewPrefixQuery(strings.ToLower(text))
			prefix.SetField(field)
			prefix.SetBoost(boost)
			group.AddQuery(prefix)
		}
	}
	return group
}

func conjoin(clauses []query.Query) query.Query {
	switch len(clauses) {
	case 0:
		return bleve.NewMatchAllQuery()
	case 1:
		return clauses[0]
	default:
		return bleve.NewConjunctionQuery(clauses...)
	}
}
