package scoring

import (
	"testing"

	"github.com/Newspicel/imdb-go/model"
)

const testYear = 2025

func titleResult(title, titleType string, rating float64, votes int64) *model.TitleResult {
	return &model.TitleResult{
		PrimaryTitle:  title,
		TitleType:     titleType,
		AverageRating: &rating,
		NumVotes:      &votes,
	}
}

func TestTitleScoreExactBeatsPartial(t *testing.T) {
	// A weak lexical hit on an exact title must outrank a strong lexical hit
	// on a title that merely contains the query.
	up := titleResult("Up", "movie", 8.3, 1_200_000)
	noWayUp := titleResult("No Way Up", "movie", 4.6, 11_321)

	upScore := titleScoreAt(testYear, 0.75, up, "up")
	noWayUpScore := titleScoreAt(testYear, 5.0, noWayUp, "up")

	if upScore <= noWayUpScore {
		t.Errorf("exact match %0.3f must beat partial match %0.3f", upScore, noWayUpScore)
	}
}

func TestTitleScoreRatingMonotonic(t *testing.T) {
	low := titleResult("Some Film", "movie", 6.0, 100_000)
	high := titleResult("Some Film", "movie", 9.0, 100_000)

	lowScore := titleScoreAt(testYear, 1.0, low, "")
	highScore := titleScoreAt(testYear, 1.0, high, "")

	if highScore <= lowScore {
		t.Errorf("higher rating must score higher: %0.3f vs %0.3f", highScore, lowScore)
	}
}

func TestTitleScoreVotesMonotonic(t *testing.T) {
	// With an above-average rating, more votes lift both the weighted rating
	// and the popularity signal.
	few := titleResult("Some Film", "movie", 9.0, 10_000)
	many := titleResult("Some Film", "movie", 9.0, 1_000_000)

	fewScore := titleScoreAt(testYear, 1.0, few, "")
	manyScore := titleScoreAt(testYear, 1.0, many, "")

	if manyScore <= fewScore {
		t.Errorf("more votes must score higher: %0.3f vs %0.3f", manyScore, fewScore)
	}
}

func TestTitleScoreColdStartDampening(t *testing.T) {
	cold := titleResult("Hidden Gem", "movie", 8.0, 40)
	warm := titleResult("Hidden Gem", "movie", 8.0, 5_000)

	coldScore := titleScoreAt(testYear, 1.0, cold, "")
	warmScore := titleScoreAt(testYear, 1.0, warm, "")

	if coldScore >= warmScore {
		t.Errorf("a barely-voted title must be dampened: %0.3f vs %0.3f", coldScore, warmScore)
	}
}

func TestTitleScoreStillRunningSeries(t *testing.T) {
	running := titleResult("Long Series", "tvSeries", 8.5, 500_000)
	ended := titleResult("Long Series", "tvSeries", 8.5, 500_000)
	endYear := int64(1995)
	ended.EndYear = &endYear

	runningScore := titleScoreAt(testYear, 1.0, running, "")
	endedScore := titleScoreAt(testYear, 1.0, ended, "")

	if runningScore <= endedScore {
		t.Errorf("a still-running series must get the recency credit: %0.3f vs %0.3f",
			runningScore, endedScore)
	}
}

func TestTitleScoreShortQueryNoise(t *testing.T) {
	// "it" appearing mid-word only is noise; the whole-word hit wins.
	wordHit := titleResult("Step It Up", "movie", 7.3, 600_000)
	noiseHit := titleResult("White Knight", "movie", 7.3, 600_000)

	wordScore := titleScoreAt(testYear, 1.0, wordHit, "it")
	noiseScore := titleScoreAt(testYear, 1.0, noiseHit, "it")

	if wordScore <= noiseScore {
		t.Errorf("whole-word short match must beat a substring hit: %0.3f vs %0.3f",
			wordScore, noiseScore)
	}
}

func TestTitleScoreZeroBase(t *testing.T) {
	result := titleResult("Anything", "movie", 9.0, 1_000_000)

	if score := titleScoreAt(testYear, 0, result, ""); score != 0 {
		t.Errorf("a zero lexical base must yield a zero score, got %0.3f", score)
	}
	if score := titleScoreAt(testYear, -3, result, ""); score != 0 {
		t.Errorf("a negative lexical base must clamp to zero, got %0.3f", score)
	}
}

func TestTitleScoreMissingRatingDefaults(t *testing.T) {
	// No rating row at all: neutral rating, zero votes, hard cold-start cut.
	bare := &model.TitleResult{PrimaryTitle: "Obscure", TitleType: "movie"}
	rated := titleResult("Obscure", "movie", 5.0, 100_000)

	bareScore := titleScoreAt(testYear, 1.0, bare, "")
	ratedScore := titleScoreAt(testYear, 1.0, rated, "")

	if bareScore >= ratedScore {
		t.Errorf("an unrated title must rank below a rated one: %0.3f vs %0.3f",
			bareScore, ratedScore)
	}
}
