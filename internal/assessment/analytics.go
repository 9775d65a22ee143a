package assessment

import (
	"fmt"
	"math"
	"sort"
	"time"
)

// WeeklyTrend is chart-ready data: one bucket per week seen in the last
// 30 days, with the average score and predominant level of each.
type WeeklyTrend struct {
	Labels []string  `json:"labels"`
	Scores []float64 `json:"scores"`
	Levels []Level   `json:"levels"`
}

// MonthlyCompare contrasts the trailing month with the one before it.
// Improvement is positive when scores went down.
type MonthlyCompare struct {
	CurrentMonthAverage   float64 `json:"currentMonthAverage"`
	PreviousMonthAverage  float64 `json:"previousMonthAverage"`
	Improvement           float64 `json:"improvement"`
	ImprovementPercentage float64 `json:"improvementPercentage"`
}

// Summary is the full analytics payload for one user.
type Summary struct {
	TotalAssessments   int            `json:"totalAssessments"`
	AverageStressScore float64        `json:"averageStressScore"`
	Distribution       map[Level]int  `json:"stressLevelDistribution"`
	WeeklyTrend        WeeklyTrend    `json:"weeklyTrend"`
	MonthlyComparison  MonthlyCompare `json:"monthlyComparison"`
	Insights           []string       `json:"insights"`
	LatestAssessment   *Assessment    `json:"latestAssessment,omitempty"`
}

// Analyze aggregates a user's assessments (newest first) as of now.
// ok is false when there is nothing to analyze.
func Analyze(list []Assessment, now time.Time) (Summary, bool) {
	if len(list) == 0 {
		return Summary{}, false
	}

	sum := 0
	dist := map[Level]int{}
	for _, a := range list {
		sum += a.TotalStressScore
		dist[a.StressLevel]++
	}
	avg := round2(float64(sum) / float64(len(list)))

	thirtyDaysAgo := now.AddDate(0, 0, -30)
	var recent []Assessment
	for _, a := range list {
		if a.AssessmentDate.After(thirtyDaysAgo) {
			recent = append(recent, a)
		}
	}

	latest := list[0]
	return Summary{
		TotalAssessments:   len(list),
		AverageStressScore: avg,
		Distribution:       dist,
		WeeklyTrend:        weeklyTrend(recent),
		MonthlyComparison:  monthlyComparison(list, now),
		Insights:           insights(list, avg),
		LatestAssessment:   &latest,
	}, true
}

func weeklyTrend(list []Assessment) WeeklyTrend {
	type bucket struct {
		scores []int
		levels map[Level]int
	}
	buckets := map[int]*bucket{}
	for _, a := range list {
		wk := a.AssessmentDate.YearDay() / 7
		b := buckets[wk]
		if b == nil {
			b = &bucket{levels: map[Level]int{}}
			buckets[wk] = b
		}
		b.scores = append(b.scores, a.TotalStressScore)
		b.levels[a.StressLevel]++
	}

	weeks := make([]int, 0, len(buckets))
	for wk := range buckets {
		weeks = append(weeks, wk)
	}
	sort.Ints(weeks)

	out := WeeklyTrend{Labels: []string{}, Scores: []float64{}, Levels: []Level{}}
	for _, wk := range weeks {
		b := buckets[wk]
		total := 0
		for _, s := range b.scores {
			total += s
		}
		out.Labels = append(out.Labels, fmt.Sprintf("Week %d", wk))
		out.Scores = append(out.Scores, round2(float64(total)/float64(len(b.scores))))
		out.Levels = append(out.Levels, predominant(b.levels))
	}
	return out
}

func predominant(counts map[Level]int) Level {
	best := Level("Unknown")
	n := -1
	// deterministic tie-break: fixed level order
	for _, l := range []Level{LevelLow, LevelModerate, LevelHigh} {
		if c := counts[l]; c > n {
			best, n = l, c
		}
	}
	return best
}

func monthlyComparison(list []Assessment, now time.Time) MonthlyCompare {
	lastMonth := now.AddDate(0, -1, 0)
	twoMonthsAgo := now.AddDate(0, -2, 0)

	curAvg := avgInWindow(list, lastMonth, now.Add(time.Second))
	prevAvg := avgInWindow(list, twoMonthsAgo, lastMonth)

	improvement := round2(prevAvg - curAvg)
	pct := 0.0
	if prevAvg > 0 {
		pct = round2((prevAvg - curAvg) / prevAvg * 100)
	}
	return MonthlyCompare{
		CurrentMonthAverage:   round2(curAvg),
		PreviousMonthAverage:  round2(prevAvg),
		Improvement:           improvement,
		ImprovementPercentage: pct,
	}
}

func avgInWindow(list []Assessment, after, before time.Time) float64 {
	sum, n := 0, 0
	for _, a := range list {
		if a.AssessmentDate.After(after) && a.AssessmentDate.Before(before) {
			sum += a.TotalStressScore
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

func insights(list []Assessment, avg float64) []string {
	out := []string{}

	if len(list) >= 2 {
		latest, previous := list[0], list[1]
		switch {
		case latest.TotalStressScore < previous.TotalStressScore:
			out = append(out, "Your stress levels are improving! Keep up the good work.")
		case latest.TotalStressScore > previous.TotalStressScore:
			out = append(out, "Your stress levels have increased recently. Consider implementing stress reduction techniques.")
		default:
			out = append(out, "Your stress levels are stable.")
		}
	}

	switch {
	case avg <= 7:
		out = append(out, "Your average stress level is low. You're managing stress well!")
	case avg <= 14:
		out = append(out, "Your average stress level is moderate. Regular stress management practices could be beneficial.")
	default:
		out = append(out, "Your average stress level is high. Consider seeking professional support and implementing stress reduction strategies.")
	}

	if len(list) >= 5 {
		out = append(out, "Great job on consistently tracking your stress levels!")
	} else {
		out = append(out, "Regular assessment helps in better stress management. Try to check in weekly.")
	}
	return out
}

func round2(x float64) float64 { return math.Round(x*100) / 100 }
