// Package model defines the document and result records shared between the
// index, search, and API layers.
package model

// Document is the flexible field map written to and read from an index.
// Multi-valued fields hold a []string; numeric fields hold int64 or float64.
type Document map[string]interface{}

// Field names of the title index.
const (
	FieldTitleType     = "titleType"
	FieldPrimaryTitle  = "primaryTitle"
	FieldOriginalTitle = "originalTitle"
	FieldGenres        = "genres"
	FieldSearchTitles  = "searchTitles"
	FieldSearchGenres  = "searchGenres"
	FieldStartYear     = "startYear"
	FieldEndYear       = "endYear"
	FieldAverageRating = "averageRating"
	FieldNumVotes      = "numVotes"
)

// Field names of the name index.
const (
	FieldPrimaryName       = "primaryName"
	FieldNameSearch        = "nameSearch"
	FieldBirthYear         = "birthYear"
	FieldDeathYear         = "deathYear"
	FieldPrimaryProfession = "primaryProfession"
	FieldKnownForTitles    = "knownForTitles"
)
