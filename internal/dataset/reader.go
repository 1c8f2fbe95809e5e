// Package dataset reads the tab-delimited IMDb dataset files and builds the
// in-memory cross-reference tables the index build joins against.
//
// The files are plain TSV with a single header row. The token `\N` (or an
// empty column) means "no value". Rows with too few columns are skipped;
// an unreadable file aborts the build.
package dataset

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/Newspicel/imdb-go/config"
	internalErrors "github.com/Newspicel/imdb-go/internal/errors"
)

// Lines in title.akas can run long; give the scanner room.
const maxLineSize = 4 * 1024 * 1024

// ReadRows streams the data rows of a TSV file, skipping the header row and
// any row with fewer than minColumns columns. The callback receives the raw
// columns of one row and may retain nothing: the backing slice is reused.
func ReadRows(path string, minColumns int, fn func(cols []string)) error {
	file, err := os.Open(path)
	if err != nil {
		return internalErrors.NewDatasetMissingError(path, err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)

	header := true
	for scanner.Scan() {
		if header {
			header = false
			continue
		}
		cols := strings.Split(scanner.Text(), "\t")
		if len(cols) < minColumns {
			continue
		}
		fn(cols)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	return nil
}

// Field returns the column at index i, or "" when the column is absent or
// holds the null sentinel.
func Field(cols []string, i int) string {
	if i >= len(cols) {
		return ""
	}
	value := cols[i]
	if value == config.NullToken {
		return ""
	}
	return value
}

// ParseInt64 parses an optional integer column. The sentinel, an empty
// column, and unparsable text all come back as absent, never as zero.
func ParseInt64(cols []string, i int) (int64, bool) {
	value := Field(cols, i)
	if value == "" {
		return 0, false
	}
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, false
	}
	return parsed, true
}

// ParseFloat64 parses an optional float column with the same absence rules
// as ParseInt64.
func ParseFloat64(cols []string, i int) (float64, bool) {
	value := Field(cols, i)
	if value == "" {
		return 0, false
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, false
	}
	return parsed, true
}

// SplitList splits a comma-joined column into its non-empty entries.
func SplitList(cols []string, i int) []string {
	value := Field(cols, i)
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" && part != config.NullToken {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
