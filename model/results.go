package model

import (
	"fmt"
	"strings"
)

// SortMode selects how title search results are ordered.
type SortMode string

const (
	SortRelevance  SortMode = "relevance"
	SortRatingDesc SortMode = "rating_desc"
	SortRatingAsc  SortMode = "rating_asc"
	SortVotesDesc  SortMode = "votes_desc"
	SortVotesAsc   SortMode = "votes_asc"
)

// ParseSortMode parses a sort parameter; an empty value means relevance.
func ParseSortMode(value string) (SortMode, error) {
	switch SortMode(strings.ToLower(strings.TrimSpace(value))) {
	case "", SortRelevance:
		return SortRelevance, nil
	case SortRatingDesc:
		return SortRatingDesc, nil
	case SortRatingAsc:
		return SortRatingAsc, nil
	case SortVotesDesc:
		return SortVotesDesc, nil
	case SortVotesAsc:
		return SortVotesAsc, nil
	default:
		return "", fmt.Errorf("unknown sort mode %q", value)
	}
}

// TitleResult is one title in a search response. Optional fields are omitted,
// not null-valued, when absent. Score is set for relevance-sorted queries;
// SortValue for field-sorted queries.
type TitleResult struct {
	ID            string   `json:"tconst"`
	PrimaryTitle  string   `json:"primary_title"`
	OriginalTitle string   `json:"original_title,omitempty"`
	TitleType     string   `json:"title_type,omitempty"`
	StartYear     *int64   `json:"start_year,omitempty"`
	EndYear       *int64   `json:"end_year,omitempty"`
	Genres        []string `json:"genres,omitempty"`
	AverageRating *float64 `json:"average_rating,omitempty"`
	NumVotes      *int64   `json:"num_votes,omitempty"`
	Score         *float64 `json:"score,omitempty"`
	SortValue     *float64 `json:"sort_value,omitempty"`
}

// NameResult is one person in a search response.
type NameResult struct {
	ID                string   `json:"nconst"`
	PrimaryName       string   `json:"primary_name"`
	BirthYear         *int64   `json:"birth_year,omitempty"`
	DeathYear         *int64   `json:"death_year,omitempty"`
	PrimaryProfession []string `json:"primary_profession,omitempty"`
	KnownForTitles    []string `json:"known_for_titles,omitempty"`
	Score             *float64 `json:"score,omitempty"`
}

// TitleSearchResponse is the body returned by title search endpoints.
type TitleSearchResponse struct {
	Results []TitleResult `json:"results"`
	QueryID string        `json:"query_id,omitempty"`
}

// NameSearchResponse is the body returned by the name search endpoint.
type NameSearchResponse struct {
	Results []NameResult `json:"results"`
	QueryID string       `json:"query_id,omitempty"`
}
