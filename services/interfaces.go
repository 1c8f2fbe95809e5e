// Package services defines the boundary between the HTTP layer and the
// search core: request types and the searcher interfaces the API depends on.
package services

import "github.com/Newspicel/imdb-go/model"

// RangeFilter is an inclusive numeric range; a nil bound is unbounded on
// that side.
type RangeFilter struct {
	Min *float64
	Max *float64
}

// IsSet reports whether either bound is present.
func (r RangeFilter) IsSet() bool {
	return r.Min != nil || r.Max != nil
}

// TitleSearchRequest is a structured title search. Multi-valued exact-match
// filters (TitleTypes, Genres) are OR-groups: a document matches the group if
// it matches any value.
type TitleSearchRequest struct {
	Query      string
	TitleTypes []string
	Genres     []string
	StartYear  RangeFilter
	EndYear    RangeFilter
	Rating     RangeFilter
	Votes      RangeFilter
	Sort       model.SortMode
	Limit      int
}

// HasFilters reports whether any structured filter is present.
func (r TitleSearchRequest) HasFilters() bool {
	return len(r.TitleTypes) > 0 || len(r.Genres) > 0 ||
		r.StartYear.IsSet() || r.EndYear.IsSet() || r.Rating.IsSet() || r.Votes.IsSet()
}

// NameSearchRequest is a structured person search. A request with neither
// text nor filters is rejected: the name collection has no meaningful
// default subset.
type NameSearchRequest struct {
	Query       string
	BirthYear   RangeFilter
	Professions []string
	Limit       int
}

// HasFilters reports whether any structured filter is present.
func (r NameSearchRequest) HasFilters() bool {
	return r.BirthYear.IsSet() || len(r.Professions) > 0
}

// TitleSearcher executes title searches and exact-id lookups.
type TitleSearcher interface {
	SearchTitles(req TitleSearchRequest) (model.TitleSearchResponse, error)
	GetTitle(id string) (model.TitleResult, error)
}

// NameSearcher executes person searches and exact-id lookups.
type NameSearcher interface {
	SearchNames(req NameSearchRequest) (model.NameSearchResponse, error)
	GetName(id string) (model.NameResult, error)
}
