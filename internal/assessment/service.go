package assessment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrScoreOutOfRange rejects totals outside [0, MaxScore].
var ErrScoreOutOfRange = fmt.Errorf("total score out of range [0,%d]", MaxScore)

// Service applies the scoring rules before persisting. The submitted
// level is advisory: the server re-classifies from the score.
type Service struct {
	store Store
	now   func() time.Time
}

func NewService(store Store) *Service {
	return &Service{store: store, now: time.Now}
}

// Save classifies the score, attaches coping strategies and a fresh ID,
// stamps the date and persists.
func (s *Service) Save(ctx context.Context, userID int64, totalScore int) (Assessment, error) {
	if userID <= 0 {
		return Assessment{}, errors.New("userId required")
	}
	if totalScore < 0 || totalScore > MaxScore {
		return Assessment{}, ErrScoreOutOfRange
	}
	level := Classify(totalScore)
	a := Assessment{
		ID:               uuid.NewString(),
		UserID:           userID,
		TotalStressScore: totalScore,
		StressLevel:      level,
		CopingStrategies: CopingStrategies(level),
		AssessmentDate:   s.now().UTC(),
	}
	return s.store.Save(ctx, a)
}

// Reports returns the user's assessments, newest first.
func (s *Service) Reports(ctx context.Context, userID int64) ([]Assessment, error) {
	return s.store.ListByUser(ctx, userID)
}

// Analytics aggregates the user's history; ok is false when there is
// nothing recorded yet.
func (s *Service) Analytics(ctx context.Context, userID int64) (Summary, bool, error) {
	list, err := s.store.ListByUser(ctx, userID)
	if err != nil {
		return Summary{}, false, err
	}
	sum, ok := Analyze(list, s.now())
	return sum, ok, nil
}
