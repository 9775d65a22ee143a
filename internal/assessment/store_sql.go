package assessment

import (
	"context"
	"database/sql"
)

// SQLStore persists assessments in the shared database. Placeholders use
// $1..$n, which both the pgx and modernc sqlite drivers accept.
type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) Save(ctx context.Context, a Assessment) (Assessment, error) {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO stress_assessments (id,user_id,total_score,stress_level,coping_strategies,assessment_date)
		 VALUES ($1,$2,$3,$4,$5,$6)`,
		a.ID, a.UserID, a.TotalStressScore, string(a.StressLevel), a.CopingStrategies, a.AssessmentDate.Unix())
	if err != nil {
		return Assessment{}, err
	}
	return a, nil
}

func (s *SQLStore) ListByUser(ctx context.Context, userID int64) ([]Assessment, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id,user_id,total_score,stress_level,coping_strategies,assessment_date
		 FROM stress_assessments WHERE user_id=$1 ORDER BY assessment_date DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Assessment{}
	for rows.Next() {
		var a Assessment
		var level string
		var ts int64
		if err := rows.Scan(&a.ID, &a.UserID, &a.TotalStressScore, &level, &a.CopingStrategies, &ts); err != nil {
			return nil, err
		}
		a.StressLevel = Level(level)
		a.AssessmentDate = unixUTC(ts)
		out = append(out, a)
	}
	return out, rows.Err()
}
