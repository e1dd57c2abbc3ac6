package titles

import (
	"github.com/hbollon/go-edlib"
)

// Confidence represents the confidence level of a title match.
type Confidence int

const (
	ConfidenceNone   Confidence = iota // Score < 0.70
	ConfidenceLow                      // Score >= 0.70
	ConfidenceMedium                   // Score >= 0.85
	ConfidenceHigh                     // Score >= 0.95
)

func (c Confidence) String() string {
	switch c {
	case ConfidenceHigh:
		return "high"
	case ConfidenceMedium:
		return "medium"
	case ConfidenceLow:
		return "low"
	default:
		return "none"
	}
}

// Match is the result of matching a title against a candidate list.
type Match struct {
	Index      int     // Index of the matched candidate, -1 for no match
	Title      string  // The matched candidate title
	Score      float64 // Jaro-Winkler similarity score (0.0-1.0)
	Confidence Confidence
}

// Best finds the candidate most similar to title.
// Uses Jaro-Winkler similarity on normalized titles; Jaro-Winkler favors
// prefix matches, which suits media titles.
func Best(title string, candidates []string) Match {
	best := Match{Index: -1, Confidence: ConfidenceNone}
	if len(candidates) == 0 {
		return best
	}

	cleaned := Clean(title)
	for i, candidate := range candidates {
		score := float64(edlib.JaroWinklerSimilarity(cleaned, Clean(candidate)))
		if score > best.Score {
			best.Index = i
			best.Title = candidate
			best.Score = score
		}
	}

	switch {
	case best.Score >= 0.95:
		best.Confidence = ConfidenceHigh
	case best.Score >= 0.85:
		best.Confidence = ConfidenceMedium
	case best.Score >= 0.70:
		best.Confidence = ConfidenceLow
	default:
		best = Match{Index: -1, Confidence: ConfidenceNone}
	}

	return best
}
