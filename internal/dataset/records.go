package dataset

// Column counts of the dataset files we consume. Rows shorter than this are
// malformed and skipped.
const (
	TitleBasicsColumns = 9
	NameBasicsColumns  = 6
	RatingsColumns     = 3
	AkasColumns        = 3
	PrincipalsColumns  = 3
)

// TitleRecord is one parsed row of title.basics.
type TitleRecord struct {
	ID            string
	TitleType     string
	PrimaryTitle  string
	OriginalTitle string // empty when absent or equal to the sentinel
	StartYear     *int64
	EndYear       *int64
	Genres        []string
}

// ParseTitleRecord parses a title.basics row. Columns:
// tconst, titleType, primaryTitle, originalTitle, isAdult, startYear,
// endYear, runtimeMinutes, genres.
func ParseTitleRecord(cols []string) TitleRecord {
	rec := TitleRecord{
		ID:            Field(cols, 0),
		TitleType:     Field(cols, 1),
		PrimaryTitle:  Field(cols, 2),
		OriginalTitle: Field(cols, 3),
		Genres:        SplitList(cols, 8),
	}
	if year, ok := ParseInt64(cols, 5); ok {
		rec.StartYear = &year
	}
	if year, ok := ParseInt64(cols, 6); ok {
		rec.EndYear = &year
	}
	return rec
}

// NameRecord is one parsed row of name.basics.
type NameRecord struct {
	ID             string
	PrimaryName    string
	BirthYear      *int64
	DeathYear      *int64
	Professions    []string
	KnownForTitles []string
}

// ParseNameRecord parses a name.basics row. Columns:
// nconst, primaryName, birthYear, deathYear, primaryProfession,
// knownForTitles.
func ParseNameRecord(cols []string) NameRecord {
	rec := NameRecord{
		ID:             Field(cols, 0),
		PrimaryName:    Field(cols, 1),
		Professions:    SplitList(cols, 4),
		KnownForTitles: SplitList(cols, 5),
	}
	if year, ok := ParseInt64(cols, 2); ok {
		rec.BirthYear = &year
	}
	if year, ok := ParseInt64(cols, 3); ok {
		rec.DeathYear = &year
	}
	return rec
}
