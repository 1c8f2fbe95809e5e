// Package scoring computes the final relevance score for title hits. The
// score blends the engine's lexical score with quality, popularity, recency,
// and title-match signals; it is a pure function of its inputs.
package scoring

import (
	"math"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/Newspicel/imdb-go/model"
)

const (
	// Bayesian shrinkage of the rating toward the corpus average: titles
	// with few votes are pulled toward globalAverageRating; titles with
	// vote counts far above ratingPrior keep their raw rating.
	globalAverageRating = 6.7
	ratingPrior         = 12_000.0

	// Normalization ceiling for the log-scaled popularity signal.
	voteCeiling = 2_000_000.0

	// Queries of at most this many runes count as "short": exact matches
	// on them are stronger evidence, bare substring hits are noisier.
	shortQueryRunes = 3
)

// TitleScore returns the final ranking score for one title hit. baseScore is
// the engine's raw lexical score, queryText the user's query (any case).
// Larger is better.
func TitleScore(baseScore float64, result *model.TitleResult, queryText string) float64 {
	return titleScoreAt(time.Now().Year(), baseScore, result, queryText)
}

func titleScoreAt(currentYear int, baseScore float64, result *model.TitleResult, queryText string) float64 {
	// Compress the lexical score so term-frequency blowups cannot dominate.
	base := math.Log1p(math.Max(baseScore, 0))

	titleBonus := 0.0
	needle := strings.ToLower(strings.TrimSpace(queryText))
	if needle != "" {
		haystack := strings.ToLower(result.PrimaryTitle)

		isExact := haystack == needle
		isPrefix := strings.HasPrefix(haystack, needle)
		isSubstr := strings.Contains(haystack, needle)
		isShort := utf8.RuneCountInString(needle) <= shortQueryRunes

		switch {
		case isExact:
			// An exact title match should crush near-matches: floor the
			// compressed base and add a large bonus. Exact equality on a
			// short string is rarer evidence, so short queries get more.
			boostBase, boostBonus := 3.8, 6.0
			if isShort {
				boostBase, boostBonus = 4.5, 7.0
			}
			base = math.Max(base, boostBase)
			titleBonus += boostBonus
		case isShort && containsWord(haystack, needle):
			// Whole-word match for short queries like "up", "it", "her".
			titleBonus += 1.2
		case isPrefix:
			titleBonus += 0.9
		case isSubstr && !isShort:
			titleBonus += 0.4
		case isShort:
			// Substring hits on very short queries are noise.
			titleBonus -= 0.8
		default:
			titleBonus -= 0.3
		}
	}

	rating := 5.0
	if result.AverageRating != nil {
		rating = *result.AverageRating
	}
	votes := 0.0
	if result.NumVotes != nil {
		votes = float64(*result.NumVotes)
	}

	// Bayesian weighted rating: wr = (v/(v+m))*R + (m/(v+m))*C, mapped to
	// roughly [0..3].
	weightedRating := globalAverageRating
	if votes > 0 {
		weightedRating = (votes/(votes+ratingPrior))*rating + (ratingPrior/(votes+ratingPrior))*globalAverageRating
	}
	ratingComponent := (weightedRating / 10.0) * 3.0

	// Log-normalized popularity in roughly [0..2.2], independent of rating
	// so a high-vote mediocre title still outranks an obscure one.
	popularityComponent := 0.0
	if votes > 0 {
		popularityComponent = math.Log1p(votes) / math.Log1p(voteCeiling) * 2.2
	}

	// Recency: prefer the end year; a series without one is still running.
	recencyYear := 0
	switch {
	case stillRunning(result):
		recencyYear = currentYear
	case result.EndYear != nil:
		recencyYear = int(*result.EndYear)
	case result.StartYear != nil:
		recencyYear = int(*result.StartYear)
	}
	yearComponent := 0.0
	if recencyYear != 0 {
		// Gentle tilt in [-0.10, +0.15] centered on 2012; never allowed to
		// dominate quality or popularity.
		yearComponent = clamp((float64(recencyYear)-2012.0)/90.0, -0.10, 0.15)
	}

	combined := 1.0 + ratingComponent + popularityComponent + yearComponent + titleBonus

	// Cold-start dampening: a barely-voted-on title cannot outrank an
	// established one on lexical or recency grounds alone.
	switch {
	case votes < 50:
		combined *= 0.20
	case votes < 500:
		combined *= 0.50
	case votes < 2_000:
		combined *= 0.80
	}

	combined = math.Max(combined, 0.05)

	return base * combined
}

func stillRunning(result *model.TitleResult) bool {
	if result.EndYear != nil {
		return false
	}
	switch result.TitleType {
	case "tvSeries", "tvMiniSeries", "tvEpisode":
		return true
	}
	return false
}

// containsWord reports whether needle equals one alphanumeric-delimited
// token of haystack.
func containsWord(haystack, needle string) bool {
	words := strings.FieldsFunc(haystack, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	for _, word := range words {
		if word == needle {
			return true
		}
	}
	return false
}

func clamp(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
