// Package assessment holds the stress-assessment domain: score
// classification, coping strategies, persistence and analytics.
package assessment

// Level is a classified stress band.
type Level string

const (
	LevelLow      Level = "Low"
	LevelModerate Level = "Moderate"
	LevelHigh     Level = "High"
)

// MaxScore bounds the total: 7 questions, each worth at most 3.
const MaxScore = 21

// Classify maps a total score onto its stress level. Thresholds match the
// questionnaire's scoring key: 0-7 Low, 8-14 Moderate, 15+ High.
func Classify(score int) Level {
	switch {
	case score <= 7:
		return LevelLow
	case score <= 14:
		return LevelModerate
	default:
		return LevelHigh
	}
}

// Result is the outcome of a completed questionnaire, displayed once and
// then owned by the backend.
type Result struct {
	TotalScore int
	Level      Level
}

// NewResult classifies a total score.
func NewResult(total int) Result {
	return Result{TotalScore: total, Level: Classify(total)}
}
