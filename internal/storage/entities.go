package storage

import "time"

type Session struct {
	ID            string
	Category      string
	Level         int
	WeeklyGoal    int
	RerollCounter int
	TodayDate     string
	TodayCategory string
	TodayLevel    int
	TodayTask     string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type Completion struct {
	SessionID  string
	Date       string
	Category   string
	Task       string
	RecordedAt time.Time
}

type SessionListFilter struct {
	Limit  int
	Offset int
}

// CompletionListFilter bounds are inclusive ISO dates; empty means open.
type CompletionListFilter struct {
	SessionID string
	From      string
	To        string
	Limit     int
	Offset    int
}
