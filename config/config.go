// Package config provides configuration for the imdb-go search service:
// dataset locations, index locations, search limits, and the default filter
// policy applied to unfiltered title searches.
package config

import (
	"os"
	"path/filepath"
)

// NullToken is the sentinel the IMDb datasets use for "no value". A column
// holding exactly this token (or an empty string) is treated as absent.
const NullToken = `\N`

// Dataset file names as shipped in the IMDb non-commercial dataset, after
// decompression. Acquisition and decompression happen outside this service.
const (
	TitleBasicsFile     = "title.basics.tsv"
	TitleRatingsFile    = "title.ratings.tsv"
	TitleAkasFile       = "title.akas.tsv"
	TitlePrincipalsFile = "title.principals.tsv"
	NameBasicsFile      = "name.basics.tsv"
)

// Search limit bounds. Requested limits are clamped into [MinSearchLimit,
// MaxSearchLimit]; a missing limit falls back to DefaultSearchLimit.
const (
	MinSearchLimit     = 1
	MaxSearchLimit     = 50
	DefaultSearchLimit = 10
)

// ProgressLogInterval controls how often the index build logs progress.
const ProgressLogInterval = 50_000

// Default filter policy for title searches. These are product tuning knobs,
// not invariants: an unfiltered title search is narrowed to a modern,
// displayable subset instead of returning the raw catalog.
var DefaultTitleTypes = []string{"movie", "tvSeries"}

// DefaultStartYearMin is applied whenever the caller supplies no explicit
// start-year minimum.
const DefaultStartYearMin = 1980

// Config holds the runtime configuration for the service.
type Config struct {
	DataDir  string // directory containing the decompressed dataset files
	IndexDir string // directory holding the Bleve indexes
	Port     string // HTTP listen port
}

// Load builds a Config from environment variables, falling back to defaults.
func Load() *Config {
	dataDir := getEnv("IMDB_DATA_DIR", "data")
	return &Config{
		DataDir:  dataDir,
		IndexDir: getEnv("IMDB_INDEX_DIR", filepath.Join(dataDir, "index")),
		Port:     getEnv("PORT", "3000"),
	}
}

// DatasetPath returns the absolute path of a dataset file inside DataDir.
func (c *Config) DatasetPath(name string) string {
	return filepath.Join(c.DataDir, name)
}

// TitleIndexPath returns the location of the title index.
func (c *Config) TitleIndexPath() string {
	return filepath.Join(c.IndexDir, "titles")
}

// NameIndexPath returns the location of the name index.
func (c *Config) NameIndexPath() string {
	return filepath.Join(c.IndexDir, "names")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
