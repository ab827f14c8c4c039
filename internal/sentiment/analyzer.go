// Package sentiment scores post bodies with the VADER polarity model.
package sentiment

import (
	"math"
	"strings"

	"github.com/jonreiter/govader"
)

// Label thresholds on the compound score.
const (
	PositiveThreshold = 0.05
	NegativeThreshold = -0.05
)

const (
	LabelPositive = "Positive"
	LabelNegative = "Negative"
	LabelNeutral  = "Neutral"
)

// Scores are the polarity proportions and the normalized compound score.
type Scores struct {
	Positive float64
	Negative float64
	Neutral  float64
	Compound float64
}

// Label classifies the compound score.
func (s Scores) Label() string {
	return Label(s.Compound)
}

// Label maps a compound score to Positive, Negative or Neutral.
func Label(compound float64) string {
	switch {
	case compound >= PositiveThreshold:
		return LabelPositive
	case compound <= NegativeThreshold:
		return LabelNegative
	default:
		return LabelNeutral
	}
}

// Analyzer is stateless after construction and safe to share.
type Analyzer struct {
	model *govader.SentimentIntensityAnalyzer
}

func NewAnalyzer() *Analyzer {
	return &Analyzer{model: govader.NewSentimentIntensityAnalyzer()}
}

// Score returns the polarity scores of text, rounded to four decimals.
// Blank text scores zero across the board.
func (a *Analyzer) Score(text string) Scores {
	if strings.TrimSpace(text) == "" {
		return Scores{}
	}
	s := a.model.PolarityScores(text)
	return Scores{
		Positive: round4(s.Positive),
		Negative: round4(s.Negative),
		Neutral:  round4(s.Neutral),
		Compound: round4(s.Compound),
	}
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
