// Package scoring implements the deterministic credit-score mock. The same
// document always maps to the same score, so integration environments get
// stable risk answers without a real bureau behind them.
package scoring

import "hash/fnv"

const (
	minScore = 300
	maxScore = 950

	highCeiling   = 500
	mediumCeiling = 700
)

const (
	LevelHigh   = "HIGH"
	LevelMedium = "MEDIUM"
	LevelLow    = "LOW"
)

// Score maps a document number onto the 300–950 range.
func Score(document string) int {
	h := fnv.New32a()
	h.Write([]byte(document))
	seed := int(h.Sum32() % 1000)
	return minScore + seed*(maxScore-minScore)/1000
}

// Level bands a score: at most 500 is HIGH risk, at most 700 MEDIUM,
// anything above is LOW.
func Level(score int) string {
	switch {
	case score <= highCeiling:
		return LevelHigh
	case score <= mediumCeiling:
		return LevelMedium
	default:
		return LevelLow
	}
}
