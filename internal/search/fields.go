package search

import (
	"strings"

	"github.com/Newspicel/imdb-go/internal/index"
	"github.com/Newspicel/imdb-go/model"
)

// Stored-field readers. The engine returns a stored field as a bare value
// when the document held one, and as []interface{} when it held several;
// numerics always come back as float64.

func storedString(fields map[string]interface{}, key string) string {
	switch value := fields[key].(type) {
	case string:
		return value
	case []interface{}:
		if len(value) > 0 {
			if s, ok := value[0].(string); ok {
				return s
			}
		}
	}
	return ""
}

func storedStrings(fields map[string]interface{}, key string) []string {
	switch value := fields[key].(type) {
	case string:
		return []string{value}
	case []interface{}:
		out := make([]string, 0, len(value))
		for _, item := range value {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

func storedFloat(fields map[string]interface{}, key string) *float64 {
	if value, ok := fields[key].(float64); ok {
		return &value
	}
	return nil
}

func storedInt(fields map[string]interface{}, key string) *int64 {
	if value, ok := fields[key].(float64); ok {
		n := int64(value)
		return &n
	}
	return nil
}

// storedList splits a comma-joined stored value back into its items.
func storedList(fields map[string]interface{}, key string) []string {
	joined := storedString(fields, key)
	if joined == "" {
		return nil
	}
	return strings.Split(joined, ",")
}

func titleResultFromHit(hit index.Hit) model.TitleResult {
	return model.TitleResult{
		ID:            hit.ID,
		PrimaryTitle:  storedString(hit.Fields, model.FieldPrimaryTitle),
		OriginalTitle: storedString(hit.Fields, model.FieldOriginalTitle),
		TitleType:     storedString(hit.Fields, model.FieldTitleType),
		StartYear:     storedInt(hit.Fields, model.FieldStartYear),
		EndYear:       storedInt(hit.Fields, model.FieldEndYear),
		Genres:        storedStrings(hit.Fields, model.FieldGenres),
		AverageRating: storedFloat(hit.Fields, model.FieldAverageRating),
		NumVotes:      storedInt(hit.Fields, model.FieldNumVotes),
	}
}

func nameResultFromHit(hit index.Hit) model.NameResult {
	return model.NameResult{
		ID:                hit.ID,
		PrimaryName:       storedString(hit.Fields, model.FieldPrimaryName),
		BirthYear:         storedInt(hit.Fields, model.FieldBirthYear),
		DeathYear:         storedInt(hit.Fields, model.FieldDeathYear),
		PrimaryProfession: storedList(hit.Fields, model.FieldPrimaryProfession),
		KnownForTitles:    storedList(hit.Fields, model.FieldKnownForTitles),
	}
}
