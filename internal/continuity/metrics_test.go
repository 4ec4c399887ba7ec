package continuity

import (
	"errors"
	"testing"
	"time"

	"github.com/sandeepkv93/lazyd/internal/model"
)

var today = model.NewDate(2024, time.January, 10)

func historyOn(offsets ...int) History {
	h := make(History)
	for _, off := range offsets {
		d := today.AddDays(-off)
		h[d] = model.CompletionRecord{Date: d, Category: model.CategoryStudy, Task: "Read one textbook page"}
	}
	return h
}

func TestCurrentStreak(t *testing.T) {
	cases := []struct {
		name string
		h    History
		want int
	}{
		{"empty", History{}, 0},
		{"nil", nil, 0},
		{"today only", historyOn(0), 1},
		{"today and yesterday", historyOn(0, 1), 2},
		{"yesterday only", historyOn(1), 0},
		{"gap after two days", historyOn(0, 1, 3, 4), 2},
		{"long run across month", historyOn(0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11), 12},
	}
	for _, tc := range cases {
		if got := CurrentStreak(tc.h, today); got != tc.want {
			t.Fatalf("%s: streak = %d, want %d", tc.name, got, tc.want)
		}
	}
}

func TestWeeklyCountWindow(t *testing.T) {
	if got := WeeklyCount(historyOn(0, 3, 6), today); got != 3 {
		t.Fatalf("expected 3 in window, got %d", got)
	}
	if got := WeeklyCount(historyOn(7, 8), today); got != 0 {
		t.Fatalf("records older than 6 days must be excluded, got %d", got)
	}
	if got := WeeklyCount(historyOn(-1), today); got != 0 {
		t.Fatalf("future records must be excluded, got %d", got)
	}
}

func TestTotalCount(t *testing.T) {
	if got := TotalCount(historyOn(0, 10, 400)); got != 3 {
		t.Fatalf("unexpected total: %d", got)
	}
}

func TestWeeklyProgress(t *testing.T) {
	cases := []struct {
		count, goal int
		want        float64
	}{
		{3, 4, 0.75},
		{5, 4, 1.0},
		{0, 4, 0},
		{7, 7, 1.0},
		{2, 10, 0.2},
		{-1, 4, 0},
	}
	for _, tc := range cases {
		got, err := WeeklyProgress(tc.count, tc.goal)
		if err != nil {
			t.Fatalf("progress(%d,%d) failed: %v", tc.count, tc.goal, err)
		}
		if got != tc.want {
			t.Fatalf("progress(%d,%d) = %v, want %v", tc.count, tc.goal, got, tc.want)
		}
	}
	for _, goal := range []int{0, -3} {
		if _, err := WeeklyProgress(3, goal); !errors.Is(err, model.ErrInvalidGoal) {
			t.Fatalf("goal %d: expected ErrInvalidGoal, got %v", goal, err)
		}
	}
}

func TestSummarize(t *testing.T) {
	m, err := Summarize(historyOn(0, 1, 2, 9), today, 4)
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}
	if m.Streak != 3 || m.WeeklyCount != 3 || m.Total != 4 || m.WeeklyProgress != 0.75 || m.WeeklyGoal != 4 {
		t.Fatalf("unexpected metrics: %+v", m)
	}
	if _, err := Summarize(historyOn(0), today, 0); !errors.Is(err, model.ErrInvalidGoal) {
		t.Fatalf("expected ErrInvalidGoal, got %v", err)
	}
}
