package index

import (
	"fmt"
	"log"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"golang.org/x/sync/errgroup"

	"github.com/Newspicel/imdb-go/config"
	"github.com/Newspicel/imdb-go/internal/dataset"
	"github.com/Newspicel/imdb-go/model"
)

// batchSize is the number of documents committed to the engine per batch
// during a build.
const batchSize = 1000

// TitleXrefs holds the cross-reference tables the title build joins against.
// They are built once, then read-only.
type TitleXrefs struct {
	Ratings    map[string]dataset.Rating
	Akas       map[string][]string
	Principals map[string][]string
}

// LoadTitleXrefs loads the ratings, alternate-title, and principal-cast
// lookups concurrently. Any unreadable source file aborts the build.
func LoadTitleXrefs(cfg *config.Config) (*TitleXrefs, error) {
	xrefs := &TitleXrefs{}

	var group errgroup.Group
	group.Go(func() error {
		ratings, err := dataset.LoadRatings(cfg.DatasetPath(config.TitleRatingsFile))
		if err != nil {
			return err
		}
		xrefs.Ratings = ratings
		log.Printf("loaded ratings lookup: %d entries", len(ratings))
		return nil
	})
	group.Go(func() error {
		akas, err := dataset.LoadAlternateTitles(cfg.DatasetPath(config.TitleAkasFile))
		if err != nil {
			return err
		}
		xrefs.Akas = akas
		log.Printf("loaded alternate-title lookup: %d titles", len(akas))
		return nil
	})
	group.Go(func() error {
		names, err := dataset.LoadNameMap(cfg.DatasetPath(config.NameBasicsFile))
		if err != nil {
			return err
		}
		principals, err := dataset.LoadPrincipalNames(cfg.DatasetPath(config.TitlePrincipalsFile), names)
		if err != nil {
			return err
		}
		xrefs.Principals = principals
		log.Printf("loaded principal-cast lookup: %d titles", len(principals))
		return nil
	})
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return xrefs, nil
}

// BuildTitleDocument merges one title row with its cross-reference lookups
// into a single document. It returns false when the record must be skipped
// (missing id or primary title). Enrichment is best-effort: a missing
// rating, alias, or cast entry just leaves the field out.
func BuildTitleDocument(rec dataset.TitleRecord, xrefs *TitleXrefs) (model.Document, bool) {
	if rec.ID == "" || rec.PrimaryTitle == "" {
		return nil, false
	}

	doc := model.Document{
		model.FieldPrimaryTitle: rec.PrimaryTitle,
	}
	if rec.TitleType != "" {
		doc[model.FieldTitleType] = rec.TitleType
	}
	if rec.OriginalTitle != "" {
		doc[model.FieldOriginalTitle] = rec.OriginalTitle
	}
	if len(rec.Genres) > 0 {
		doc[model.FieldGenres] = rec.Genres
		doc[model.FieldSearchGenres] = rec.Genres
	}
	if rec.StartYear != nil {
		doc[model.FieldStartYear] = *rec.StartYear
	}
	if rec.EndYear != nil {
		doc[model.FieldEndYear] = *rec.EndYear
	}
	if rating, ok := xrefs.Ratings[rec.ID]; ok {
		doc[model.FieldAverageRating] = rating.AverageRating
		doc[model.FieldNumVotes] = rating.NumVotes
	}

	// Recall-only aliases: primary name, distinct original name, alternate
	// regional titles, and well-known cast names. Dedup is per-document and
	// case-sensitive.
	aliases := []string{rec.PrimaryTitle}
	seen := map[string]struct{}{rec.PrimaryTitle: {}}
	add := func(value string) {
		if value == "" {
			return
		}
		if _, dup := seen[value]; dup {
			return
		}
		seen[value] = struct{}{}
		aliases = append(aliases, value)
	}
	add(rec.OriginalTitle)
	for _, alt := range xrefs.Akas[rec.ID] {
		add(alt)
	}
	for _, castName := range xrefs.Principals[rec.ID] {
		add(castName)
	}
	doc[model.FieldSearchTitles] = aliases

	return doc, true
}

// BuildNameDocument turns one name row into a person document, or reports
// that the record must be skipped. Professions and known-for ids are stored
// comma-joined and split again at read time.
func BuildNameDocument(rec dataset.NameRecord) (model.Document, bool) {
	if rec.ID == "" || rec.PrimaryName == "" {
		return nil, false
	}

	doc := model.Document{
		model.FieldPrimaryName: rec.PrimaryName,
	}
	if rec.BirthYear != nil {
		doc[model.FieldBirthYear] = *rec.BirthYear
	}
	if rec.DeathYear != nil {
		doc[model.FieldDeathYear] = *rec.DeathYear
	}
	if len(rec.Professions) > 0 {
		doc[model.FieldPrimaryProfession] = strings.Join(rec.Professions, ",")
		doc[FieldProfessionFilter] = rec.Professions
	}
	if len(rec.KnownForTitles) > 0 {
		doc[model.FieldKnownForTitles] = strings.Join(rec.KnownForTitles, ",")
	}

	blob := append([]string{rec.PrimaryName}, rec.Professions...)
	doc[model.FieldNameSearch] = blob

	return doc, true
}

// buildTitles streams title.basics through the document builder into the
// engine in batches.
func buildTitles(idx bleve.Index, cfg *config.Config) error {
	xrefs, err := LoadTitleXrefs(cfg)
	if err != nil {
		return err
	}

	writer := newBatchWriter(idx, "titles")
	err = dataset.ReadRows(cfg.DatasetPath(config.TitleBasicsFile), dataset.TitleBasicsColumns, func(cols []string) {
		rec := dataset.ParseTitleRecord(cols)
		doc, ok := BuildTitleDocument(rec, xrefs)
		if !ok {
			return
		}
		writer.add(rec.ID, doc)
	})
	if err != nil {
		return err
	}
	return writer.flush()
}

// buildNames streams name.basics into the engine.
func buildNames(idx bleve.Index, cfg *config.Config) error {
	writer := newBatchWriter(idx, "names")
	err := dataset.ReadRows(cfg.DatasetPath(config.NameBasicsFile), dataset.NameBasicsColumns, func(cols []string) {
		rec := dataset.ParseNameRecord(cols)
		doc, ok := BuildNameDocument(rec)
		if !ok {
			return
		}
		writer.add(rec.ID, doc)
	})
	if err != nil {
		return err
	}
	return writer.flush()
}

// batchWriter accumulates documents and commits them in fixed-size batches,
// logging progress at a fixed interval.
type batchWriter struct {
	idx   bleve.Index
	name  string
	batch *bleve.Batch
	count int
	err   error
}

func newBatchWriter(idx bleve.Index, name string) *batchWriter {
	return &batchWriter{idx: idx, name: name, batch: idx.NewBatch()}
}

func (w *batchWriter) add(id string, doc model.Document) {
	if w.err != nil {
		return
	}
	if err := w.batch.Index(id, map[string]interface{}(doc)); err != nil {
		w.err = fmt.Errorf("batching document %s: %w", id, err)
		return
	}
	w.count++
	if w.batch.Size() >= batchSize {
		if err := w.idx.Batch(w.batch); err != nil {
			w.err = fmt.Errorf("committing batch to %s index: %w", w.name, err)
			return
		}
		w.batch.Reset()
	}
	if w.count%config.ProgressLogInterval == 0 {
		log.Printf("indexing progress (%s): %d documents", w.name, w.count)
	}
}

func (w *batchWriter) flush() error {
	if w.err != nil {
		return w.err
	}
	if w.batch.Size() > 0 {
		if err := w.idx.Batch(w.batch); err != nil {
			return fmt.Errorf("committing final batch to %s index: %w", w.name, err)
		}
	}
	log.Printf("indexed %d documents into %s index", w.count, w.name)
	return nil
}
