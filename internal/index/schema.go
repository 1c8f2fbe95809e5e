// Package index owns the Bleve indexes: their schemas, the offline build
// pipeline that turns dataset rows into documents, and the query surface the
// search layer executes against.
package index

import (
	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/standard"
	"github.com/blevesearch/bleve/v2/mapping"

	"github.com/Newspicel/imdb-go/model"
)

// Per-field search weights, applied when composing full-text queries. The
// primary display name carries the most trust; recall-only alias fields less;
// genre text the least.
var (
	TitleFieldWeights = map[string]float64{
		model.FieldPrimaryTitle:  2.0,
		model.FieldOriginalTitle: 1.2,
		model.FieldSearchTitles:  1.0,
		model.FieldSearchGenres:  0.3,
	}
	NameFieldWeights = map[string]float64{
		model.FieldPrimaryName: 1.5,
		model.FieldNameSearch:  1.0,
	}
)

// FieldProfessionFilter indexes one keyword term per profession so the
// stored comma-joined primaryProfession stays filterable per value.
const FieldProfessionFilter = "professions"

// Fuzziness is the edit-distance tolerance applied to every analyzed text
// field; a query term that is a strict prefix of an indexed term also counts.
const Fuzziness = 1

func storedKeywordField() *mapping.FieldMapping {
	field := bleve.NewTextFieldMapping()
	field.Analyzer = keyword.Name
	field.Store = true
	field.IncludeInAll = false
	return field
}

func storedTextField() *mapping.FieldMapping {
	field := bleve.NewTextFieldMapping()
	field.Analyzer = standard.Name
	field.Store = true
	field.IncludeInAll = false
	return field
}

// recallTextField is analyzed for matching but never returned with a hit.
func recallTextField() *mapping.FieldMapping {
	field := bleve.NewTextFieldMapping()
	field.Analyzer = standard.Name
	field.Store = false
	field.IncludeInAll = false
	return field
}

// storedOnlyField is returned with hits but takes no part in matching.
func storedOnlyField() *mapping.FieldMapping {
	field := bleve.NewTextFieldMapping()
	field.Store = true
	field.Index = false
	field.IncludeInAll = false
	return field
}

func numericField() *mapping.FieldMapping {
	field := bleve.NewNumericFieldMapping()
	field.Store = true
	field.Index = true
	field.IncludeInAll = false
	return field
}

// TitleIndexMapping defines the title schema: which fields are stored,
// exact-match filterable, range/sortable, or analyzed for full-text search.
func TitleIndexMapping() mapping.IndexMapping {
	doc := bleve.NewDocumentMapping()
	doc.AddFieldMappingsAt(model.FieldTitleType, storedKeywordField())
	doc.AddFieldMappingsAt(model.FieldGenres, storedKeywordField())
	doc.AddFieldMappingsAt(model.FieldPrimaryTitle, storedTextField())
	doc.AddFieldMappingsAt(model.FieldOriginalTitle, storedTextField())
	doc.AddFieldMappingsAt(model.FieldSearchTitles, recallTextField())
	doc.AddFieldMappingsAt(model.FieldSearchGenres, recallTextField())
	doc.AddFieldMappingsAt(model.FieldStartYear, numericField())
	doc.AddFieldMappingsAt(model.FieldEndYear, numericField())
	doc.AddFieldMappingsAt(model.FieldAverageRating, numericField())
	doc.AddFieldMappingsAt(model.FieldNumVotes, numericField())

	indexMapping := bleve.NewIndexMapping()
	indexMapping.DefaultAnalyzer = standard.Name
	indexMapping.DefaultMapping = doc
	return indexMapping
}

// NameIndexMapping defines the person schema.
func NameIndexMapping() mapping.IndexMapping {
	doc := bleve.NewDocumentMapping()
	doc.AddFieldMappingsAt(model.FieldPrimaryName, storedTextField())
	doc.AddFieldMappingsAt(model.FieldNameSearch, recallTextField())
	doc.AddFieldMappingsAt(model.FieldPrimaryProfession, storedOnlyField())
	doc.AddFieldMappingsAt(FieldProfessionFilter, func() *mapping.FieldMapping {
		field := storedKeywordField()
		field.Store = false
		return field
	}())
	doc.AddFieldMappingsAt(model.FieldKnownForTitles, storedOnlyField())
	doc.AddFieldMappingsAt(model.FieldBirthYear, numericField())
	doc.AddFieldMappingsAt(model.FieldDeathYear, numericField())

	indexMapping := bleve.NewIndexMapping()
	indexMapping.DefaultAnalyzer = standard.Name
	indexMapping.DefaultMapping = doc
	return indexMapping
}
