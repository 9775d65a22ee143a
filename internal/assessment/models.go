package assessment

import (
	"context"
	"time"
)

// Assessment is one stored questionnaire outcome. The backend owns the
// authoritative copy; clients only ever read these back as reports.
type Assessment struct {
	ID               string    `json:"id"`
	UserID           int64     `json:"userId"`
	TotalStressScore int       `json:"totalStressScore"`
	StressLevel      Level     `json:"stressLevel"`
	CopingStrategies string    `json:"copingStrategies,omitempty"`
	AssessmentDate   time.Time `json:"assessmentDate"`
}

// Store persists assessments.
type Store interface {
	Save(ctx context.Context, a Assessment) (Assessment, error)
	// ListByUser returns a user's assessments, newest first.
	ListByUser(ctx context.Context, userID int64) ([]Assessment, error)
}
