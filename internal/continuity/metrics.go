package continuity

import "github.com/sandeepkv93/lazyd/internal/model"

// WeekLength is the size of the weekly window ending today.
const WeekLength = 7

// CurrentStreak counts consecutive recorded days ending at today. A missing
// record for today yields 0 even when yesterday was recorded.
func CurrentStreak(h History, today model.Date) int {
	streak := 0
	for day := today; ; day = day.AddDays(-1) {
		if _, ok := h[day]; !ok {
			return streak
		}
		streak++
	}
}

// WeeklyCount counts records dated within [today-6, today].
func WeeklyCount(h History, today model.Date) int {
	count := 0
	for i := 0; i < WeekLength; i++ {
		if _, ok := h[today.AddDays(-i)]; ok {
			count++
		}
	}
	return count
}

func TotalCount(h History) int {
	return len(h)
}

// WeeklyProgress returns weeklyCount/weeklyGoal capped at 1.
func WeeklyProgress(weeklyCount, weeklyGoal int) (float64, error) {
	if err := model.ValidateGoal(weeklyGoal); err != nil {
		return 0, err
	}
	if weeklyCount <= 0 {
		return 0, nil
	}
	return min(float64(weeklyCount)/float64(weeklyGoal), 1.0), nil
}

type Metrics struct {
	Streak         int
	WeeklyCount    int
	WeeklyGoal     int
	WeeklyProgress float64
	Total          int
}

// Summarize computes every metric for one snapshot.
func Summarize(h History, today model.Date, weeklyGoal int) (Metrics, error) {
	weekly := WeeklyCount(h, today)
	progress, err := WeeklyProgress(weekly, weeklyGoal)
	if err != nil {
		return Metrics{}, err
	}
	return Metrics{
		Streak:         CurrentStreak(h, today),
		WeeklyCount:    weekly,
		WeeklyGoal:     weeklyGoal,
		WeeklyProgress: progress,
		Total:          TotalCount(h),
	}, nil
}
