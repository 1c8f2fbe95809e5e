package index

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/mapping"
	"github.com/blevesearch/bleve/v2/search/query"

	"github.com/Newspicel/imdb-go/config"
	internalErrors "github.com/Newspicel/imdb-go/internal/errors"
)

// State describes whether a committed index exists at a location.
type State int

const (
	// StateAbsent means no index and no leftover build directory exist.
	StateAbsent State = iota
	// StateBuilding means an interrupted build left a scratch directory
	// behind; it is discarded and the build restarted.
	StateBuilding
	// StateReady means a committed index exists and is opened as-is.
	StateReady
)

// buildSuffix marks the scratch directory a build writes into before the
// atomic rename that commits it.
const buildSuffix = ".building"

// metaFile is the marker Bleve writes into every committed index directory.
const metaFile = "index_meta.json"

// StateOf reports the lifecycle state of the index at path. The decision is
// a single filesystem predicate so the rebuild-vs-reuse choice stays
// testable.
func StateOf(path string) State {
	if _, err := os.Stat(filepath.Join(path, metaFile)); err == nil {
		return StateReady
	}
	if _, err := os.Stat(path + buildSuffix); err == nil {
		return StateBuilding
	}
	return StateAbsent
}

// Index wraps one Bleve index with the query surface the search layer needs.
// After Prepare returns, the index is read-only.
type Index struct {
	name  string
	bleve bleve.Index
}

// Name returns the index name ("titles" or "names").
func (ix *Index) Name() string { return ix.name }

// Close releases the underlying index.
func (ix *Index) Close() error { return ix.bleve.Close() }

// DocCount returns the number of indexed documents.
func (ix *Index) DocCount() (uint64, error) { return ix.bleve.DocCount() }

// Prepare opens the committed index at path, or runs a full build first when
// none exists. The build writes into a scratch directory and commits it with
// an atomic rename, so a crash never leaves a half-visible index.
func Prepare(path, name string, indexMapping mapping.IndexMapping, build func(bleve.Index) error) (*Index, error) {
	switch StateOf(path) {
	case StateReady:
		idx, err := bleve.Open(path)
		if err != nil {
			return nil, fmt.Errorf("opening %s index at %s: %w", name, path, err)
		}
		return &Index{name: name, bleve: idx}, nil
	case StateBuilding:
		log.Printf("discarding interrupted %s index build", name)
		if err := os.RemoveAll(path + buildSuffix); err != nil {
			return nil, fmt.Errorf("clearing interrupted %s build: %w", name, err)
		}
	}

	scratch := path + buildSuffix
	if err := os.MkdirAll(filepath.Dir(scratch), 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory for %s: %w", name, err)
	}

	log.Printf("building %s index at %s", name, path)
	idx, err := bleve.New(scratch, indexMapping)
	if err != nil {
		return nil, fmt.Errorf("creating %s index: %w", name, err)
	}
	if err := build(idx); err != nil {
		idx.Close()
		os.RemoveAll(scratch)
		return nil, fmt.Errorf("building %s index: %w", name, err)
	}
	if err := idx.Close(); err != nil {
		return nil, fmt.Errorf("closing %s index after build: %w", name, err)
	}
	if err := os.Rename(scratch, path); err != nil {
		return nil, fmt.Errorf("committing %s index: %w", name, err)
	}

	opened, err := bleve.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reopening %s index: %w", name, err)
	}
	return &Index{name: name, bleve: opened}, nil
}

// Indexes bundles the two collections the service searches.
type Indexes struct {
	Titles *Index
	Names  *Index
}

// PrepareAll opens or builds both indexes.
func PrepareAll(cfg *config.Config) (*Indexes, error) {
	titles, err := Prepare(cfg.TitleIndexPath(), "titles", TitleIndexMapping(), func(idx bleve.Index) error {
		return buildTitles(idx, cfg)
	})
	if err != nil {
		return nil, err
	}
	names, err := Prepare(cfg.NameIndexPath(), "names", NameIndexMapping(), func(idx bleve.Index) error {
		return buildNames(idx, cfg)
	})
	if err != nil {
		titles.Close()
		return nil, err
	}
	return &Indexes{Titles: titles, Names: names}, nil
}

// Close releases both indexes.
func (ix *Indexes) Close() {
	if ix.Titles != nil {
		ix.Titles.Close()
	}
	if ix.Names != nil {
		ix.Names.Close()
	}
}

// SortSpec selects hit ordering: the zero value means "by lexical
// relevance"; otherwise hits are ordered by the named fast field.
type SortSpec struct {
	Field      string
	Descending bool
}

// Hit is one search hit: the document id, the lexical score (or sort
// position score), and the stored fields of the document.
type Hit struct {
	ID     string
	Score  float64
	Fields map[string]interface{}
}

// Execute runs a composed query and returns at most topK hits with their
// stored fields, ordered per sort.
func (ix *Index) Execute(q query.Query, topK int, sort SortSpec) ([]Hit, error) {
	req := bleve.NewSearchRequestOptions(q, topK, 0, false)
	req.Fields = []string{"*"}
	if sort.Field != "" {
		if sort.Descending {
			req.SortBy([]string{"-" + sort.Field, "_id"})
		} else {
			req.SortBy([]string{sort.Field, "_id"})
		}
	}

	res, err := ix.bleve.Search(req)
	if err != nil {
		return nil, fmt.Errorf("searching %s index: %w", ix.name, err)
	}

	hits := make([]Hit, 0, len(res.Hits))
	for _, hit := range res.Hits {
		hits = append(hits, Hit{ID: hit.ID, Score: hit.Score, Fields: hit.Fields})
	}
	return hits, nil
}

// FetchStored returns the stored fields of the document with the given id,
// or ErrDocumentNotFound.
func (ix *Index) FetchStored(id string) (Hit, error) {
	req := bleve.NewSearchRequestOptions(bleve.NewDocIDQuery([]string{id}), 1, 0, false)
	req.Fields = []string{"*"}

	res, err := ix.bleve.Search(req)
	if err != nil {
		return Hit{}, fmt.Errorf("fetching document %s from %s index: %w", id, ix.name, err)
	}
	if len(res.Hits) == 0 {
		return Hit{}, internalErrors.NewDocumentNotFoundError(id, ix.name)
	}
	hit := res.Hits[0]
	return Hit{ID: hit.ID, Score: hit.Score, Fields: hit.Fields}, nil
}
