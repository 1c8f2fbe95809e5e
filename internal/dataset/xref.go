package dataset

// Rating is one title.ratings entry.
type Rating struct {
	AverageRating float64
	NumVotes      int64
}

// LoadRatings builds the tconst → rating lookup from title.ratings. Rows
// with a missing key or unparsable numbers are skipped.
func LoadRatings(path string) (map[string]Rating, error) {
	ratings := make(map[string]Rating)
	err := ReadRows(path, RatingsColumns, func(cols []string) {
		id := Field(cols, 0)
		if id == "" {
			return
		}
		rating, ratingOK := ParseFloat64(cols, 1)
		votes, votesOK := ParseInt64(cols, 2)
		if !ratingOK || !votesOK {
			return
		}
		ratings[id] = Rating{AverageRating: rating, NumVotes: votes}
	})
	if err != nil {
		return nil, err
	}
	return ratings, nil
}

// LoadAlternateTitles builds the tconst → alternate titles lookup from
// title.akas. Duplicates against the primary/original title are resolved at
// document-build time, not here.
func LoadAlternateTitles(path string) (map[string][]string, error) {
	akas := make(map[string][]string)
	err := ReadRows(path, AkasColumns, func(cols []string) {
		id := Field(cols, 0)
		title := Field(cols, 2)
		if id == "" || title == "" {
			return
		}
		akas[id] = append(akas[id], title)
	})
	if err != nil {
		return nil, err
	}
	return akas, nil
}

// LoadNameMap builds the nconst → display name lookup from name.basics.
func LoadNameMap(path string) (map[string]string, error) {
	names := make(map[string]string)
	err := ReadRows(path, NameBasicsColumns, func(cols []string) {
		id := Field(cols, 0)
		name := Field(cols, 1)
		if id == "" || name == "" {
			return
		}
		names[id] = name
	})
	if err != nil {
		return nil, err
	}
	return names, nil
}

// LoadPrincipalNames joins title.principals against the name lookup and
// returns, per title, the deduplicated display names of its credited cast
// and crew.
func LoadPrincipalNames(path string, nameByID map[string]string) (map[string][]string, error) {
	seen := make(map[string]map[string]struct{})
	err := ReadRows(path, PrincipalsColumns, func(cols []string) {
		titleID := Field(cols, 0)
		personID := Field(cols, 2)
		if titleID == "" || personID == "" {
			return
		}
		name, ok := nameByID[personID]
		if !ok {
			return
		}
		set, ok := seen[titleID]
		if !ok {
			set = make(map[string]struct{})
			seen[titleID] = set
		}
		set[name] = struct{}{}
	})
	if err != nil {
		return nil, err
	}

	principals := make(map[string][]string, len(seen))
	for titleID, set := range seen {
		names := make([]string, 0, len(set))
		for name := range set {
			names = append(names, name)
		}
		principals[titleID] = names
	}
	return principals, nil
}
