package search

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/blevesearch/bleve/v2"

	internalErrors "github.com/Newspicel/imdb-go/internal/errors"
	"github.com/Newspicel/imdb-go/internal/index"
	"github.com/Newspicel/imdb-go/model"
	"github.com/Newspicel/imdb-go/services"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	dir := t.TempDir()

	titles, err := index.Prepare(filepath.Join(dir, "titles"), "titles", index.TitleIndexMapping(),
		func(b bleve.Index) error {
			docs := map[string]model.Document{
				"tt0133093": {
					model.FieldPrimaryTitle:  "The Matrix",
					model.FieldTitleType:     "movie",
					model.FieldGenres:        []string{"Action", "Sci-Fi"},
					model.FieldStartYear:     int64(1999),
					model.FieldAverageRating: 8.7,
					model.FieldNumVotes:      int64(1_900_000),
				},
				"tt0111161": {
					model.FieldPrimaryTitle:  "The Shawshank Redemption",
					model.FieldTitleType:     "movie",
					model.FieldGenres:        []string{"Drama"},
					model.FieldStartYear:     int64(1994),
					model.FieldAverageRating: 9.3,
					model.FieldNumVotes:      int64(2_600_000),
				},
				"tt0043265": {
					model.FieldPrimaryTitle:  "Ancient Drama",
					model.FieldTitleType:     "movie",
					model.FieldGenres:        []string{"Drama"},
					model.FieldStartYear:     int64(1950),
					model.FieldAverageRating: 7.0,
					model.FieldNumVotes:      int64(30_000),
				},
				"tt0460654": {
					model.FieldPrimaryTitle:  "Deep Sea Portrait",
					model.FieldTitleType:     "documentary",
					model.FieldGenres:        []string{"Documentary"},
					model.FieldStartYear:     int64(2005),
					model.FieldAverageRating: 7.8,
					model.FieldNumVotes:      int64(12_000),
				},
			}
			for id, doc := range docs {
				if err := b.Index(id, map[string]interface{}(doc)); err != nil {
					return err
				}
			}
			return nil
		})
	if err != nil {
		t.Fatalf("preparing title index: %v", err)
	}
	t.Cleanup(func() { titles.Close() })

	names, err := index.Prepare(filepath.Join(dir, "names"), "names", index.NameIndexMapping(),
		func(b bleve.Index) error {
			docs := map[string]model.Document{
				"nm0000206": {
					model.FieldPrimaryName:       "Keanu Reeves",
					model.FieldBirthYear:         int64(1964),
					model.FieldPrimaryProfession: "actor,producer",
					index.FieldProfessionFilter:  []string{"actor", "producer"},
					model.FieldKnownForTitles:    "tt0133093,tt0111161",
					model.FieldNameSearch:        []string{"Keanu Reeves", "actor", "producer"},
				},
				"nm2933757": {
					model.FieldPrimaryName:       "Gal Gadot",
					model.FieldBirthYear:         int64(1985),
					model.FieldPrimaryProfession: "actress",
					index.FieldProfessionFilter:  []string{"actress"},
					model.FieldNameSearch:        []string{"Gal Gadot", "actress"},
				},
			}
			for id, doc := range docs {
				if err := b.Index(id, map[string]interface{}(doc)); err != nil {
					return err
				}
			}
			return nil
		})
	if err != nil {
		t.Fatalf("preparing name index: %v", err)
	}
	t.Cleanup(func() { names.Close() })

	service, err := NewService(&index.Indexes{Titles: titles, Names: names})
	if err != nil {
		t.Fatalf("NewService failed: %v", err)
	}
	return service
}

func TestSearchTitlesByText(t *testing.T) {
	service := newTestService(t)

	response, err := service.SearchTitles(services.TitleSearchRequest{Query: "Matrix"})
	if err != nil {
		t.Fatalf("SearchTitles failed: %v", err)
	}
	if len(response.Results) != 1 {
		t.Fatalf("expected exactly one hit for Matrix, got %d", len(response.Results))
	}
	hit := response.Results[0]
	if hit.ID != "tt0133093" {
		t.Errorf("expected tt0133093, got %s", hit.ID)
	}
	if hit.Score == nil {
		t.Error("relevance search must report a score")
	}
	if hit.PrimaryTitle != "The Matrix" {
		t.Errorf("unexpected primaryTitle %q", hit.PrimaryTitle)
	}
	if hit.StartYear == nil || *hit.StartYear != 1999 {
		t.Errorf("unexpected startYear %v", hit.StartYear)
	}
	if hit.NumVotes == nil || *hit.NumVotes != 1_900_000 {
		t.Errorf("unexpected numVotes %v", hit.NumVotes)
	}
	if response.QueryID == "" {
		t.Error("expected a query id")
	}
}

func TestSearchTitlesDefaultPolicy(t *testing.T) {
	service := newTestService(t)

	// No text, no filters: the default policy narrows to modern movies and
	// series, excluding the 1950 title and the documentary.
	response, err := service.SearchTitles(services.TitleSearchRequest{})
	if err != nil {
		t.Fatalf("SearchTitles failed: %v", err)
	}

	got := map[string]bool{}
	for _, result := range response.Results {
		got[result.ID] = true
	}
	if !got["tt0133093"] || !got["tt0111161"] {
		t.Errorf("expected the modern movies in the default subset, got %v", got)
	}
	if got["tt0043265"] {
		t.Error("a pre-1980 title must be excluded by the default year floor")
	}
	if got["tt0460654"] {
		t.Error("a documentary must be excluded by the default type group")
	}
}

func TestSearchTitlesExplicitType(t *testing.T) {
	service := newTestService(t)

	response, err := service.SearchTitles(services.TitleSearchRequest{
		TitleTypes: []string{"documentary"},
	})
	if err != nil {
		t.Fatalf("SearchTitles failed: %v", err)
	}
	if len(response.Results) != 1 || response.Results[0].ID != "tt0460654" {
		t.Errorf("expected only the documentary, got %+v", response.Results)
	}
}

func TestSearchTitlesSortByVotes(t *testing.T) {
	service := newTestService(t)

	response, err := service.SearchTitles(services.TitleSearchRequest{
		Sort: model.SortVotesDesc,
	})
	if err != nil {
		t.Fatalf("SearchTitles failed: %v", err)
	}
	if len(response.Results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(response.Results))
	}
	first, second := response.Results[0], response.Results[1]
	if first.ID != "tt0111161" || second.ID != "tt0133093" {
		t.Errorf("expected vote-descending order, got %s then %s", first.ID, second.ID)
	}
	if first.SortValue == nil || *first.SortValue != 2_600_000 {
		t.Errorf("expected the sort value to be reported, got %v", first.SortValue)
	}
	if first.Score != nil {
		t.Error("field-sorted results must not carry a relevance score")
	}
}

func TestSearchTitlesRatingRange(t *testing.T) {
	service := newTestService(t)

	min := 9.0
	response, err := service.SearchTitles(services.TitleSearchRequest{
		Rating: services.RangeFilter{Min: &min},
	})
	if err != nil {
		t.Fatalf("SearchTitles failed: %v", err)
	}
	if len(response.Results) != 1 || response.Results[0].ID != "tt0111161" {
		t.Errorf("expected only the 9.3-rated title, got %+v", response.Results)
	}
}

func TestSearchTitlesCacheKeepsResultsFreshensQueryID(t *testing.T) {
	service := newTestService(t)
	req := services.TitleSearchRequest{Query: "Matrix"}

	first, err := service.SearchTitles(req)
	if err != nil {
		t.Fatalf("SearchTitles failed: %v", err)
	}
	second, err := service.SearchTitles(req)
	if err != nil {
		t.Fatalf("SearchTitles failed: %v", err)
	}
	if len(first.Results) != len(second.Results) {
		t.Errorf("cached results differ: %d vs %d", len(first.Results), len(second.Results))
	}
	if first.QueryID == second.QueryID {
		t.Error("each response must get a fresh query id")
	}
}

func TestSearchNames(t *testing.T) {
	service := newTestService(t)

	t.Run("by text", func(t *testing.T) {
		response, err := service.SearchNames(services.NameSearchRequest{Query: "Keanu"})
		if err != nil {
			t.Fatalf("SearchNames failed: %v", err)
		}
		if len(response.Results) != 1 || response.Results[0].ID != "nm0000206" {
			t.Fatalf("expected only Keanu Reeves, got %+v", response.Results)
		}
		result := response.Results[0]
		if result.Score == nil {
			t.Error("name results must carry the raw score")
		}
		if len(result.PrimaryProfession) != 2 || result.PrimaryProfession[0] != "actor" {
			t.Errorf("professions must be split on read, got %v", result.PrimaryProfession)
		}
		if len(result.KnownForTitles) != 2 {
			t.Errorf("knownForTitles must be split on read, got %v", result.KnownForTitles)
		}
	})

	t.Run("filter-only request is allowed", func(t *testing.T) {
		response, err := service.SearchNames(services.NameSearchRequest{
			Professions: []string{"actress"},
		})
		if err != nil {
			t.Fatalf("SearchNames failed: %v", err)
		}
		if len(response.Results) != 1 || response.Results[0].ID != "nm2933757" {
			t.Errorf("expected only Gal Gadot, got %+v", response.Results)
		}
	})

	t.Run("birth year range", func(t *testing.T) {
		min, max := 1980.0, 1990.0
		response, err := service.SearchNames(services.NameSearchRequest{
			BirthYear: services.RangeFilter{Min: &min, Max: &max},
		})
		if err != nil {
			t.Fatalf("SearchNames failed: %v", err)
		}
		if len(response.Results) != 1 || response.Results[0].ID != "nm2933757" {
			t.Errorf("expected only the 1985 birth, got %+v", response.Results)
		}
	})

	t.Run("empty request is rejected", func(t *testing.T) {
		_, err := service.SearchNames(services.NameSearchRequest{})
		if !errors.Is(err, internalErrors.ErrInvalidQuery) {
			t.Errorf("expected ErrInvalidQuery, got %v", err)
		}
	})
}

func TestGetTitle(t *testing.T) {
	service := newTestService(t)

	result, err := service.GetTitle("tt0133093")
	if err != nil {
		t.Fatalf("GetTitle failed: %v", err)
	}
	if result.PrimaryTitle != "The Matrix" {
		t.Errorf("unexpected title %q", result.PrimaryTitle)
	}
	if len(result.Genres) != 2 {
		t.Errorf("expected 2 genres, got %v", result.Genres)
	}

	_, err = service.GetTitle("tt9999999")
	if !errors.Is(err, internalErrors.ErrDocumentNotFound) {
		t.Errorf("expected ErrDocumentNotFound, got %v", err)
	}
}

func TestGetName(t *testing.T) {
	service := newTestService(t)

	result, err := service.GetName("nm0000206")
	if err != nil {
		t.Fatalf("GetName failed: %v", err)
	}
	if result.PrimaryName != "Keanu Reeves" {
		t.Errorf("unexpected name %q", result.PrimaryName)
	}

	_, err = service.GetName("nm9999999")
	if !errors.Is(err, internalErrors.ErrDocumentNotFound) {
		t.Errorf("expected ErrDocumentNotFound, got %v", err)
	}
}

func TestClampLimit(t *testing.T) {
	cases := []struct {
		in   int
		want int
	}{
		{0, 10},
		{-5, 1},
		{1, 1},
		{25, 25},
		{50, 50},
		{500, 50},
	}
	for _, tc := range cases {
		if got := clampLimit(tc.in); got != tc.want {
			t.Errorf("clampLimit(%d) = %d, want %d", tc.in, got, tc.want)
		}
	}
}
