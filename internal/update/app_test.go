package update

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/lazyd/internal/catalog"
	"github.com/sandeepkv93/lazyd/internal/model"
	"github.com/sandeepkv93/lazyd/internal/selector"
	"github.com/sandeepkv93/lazyd/internal/session"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

type recordingPersister struct {
	saves int
	last  session.State
	err   error
}

func (p *recordingPersister) Save(_ context.Context, state session.State) error {
	if p.err != nil {
		return p.err
	}
	p.saves++
	p.last = state
	return nil
}

func newTestModel(t *testing.T, opts ...Option) (Model, *fakeClock) {
	t.Helper()
	clock := &fakeClock{now: time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)}
	state := session.New()
	if err := state.Configure(model.CategoryExercise, 4); err != nil {
		t.Fatalf("configure: %v", err)
	}
	all := append([]Option{WithClock(clock.Now)}, opts...)
	return NewModel(state, all...), clock
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		updated, _ := m.Update(msg)
		m = updated.(Model)
	}
	return m
}

func TestNewModelGeneratesTodayTask(t *testing.T) {
	m, _ := newTestModel(t)
	day := model.NewDate(2024, time.January, 1)
	want, err := selector.SelectTask(catalog.Default(), model.CategoryExercise, 4, 0, day)
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if m.Task.Task != want || m.Task.Date != day {
		t.Fatalf("unexpected initial task: %+v", m.Task)
	}
	if m.Keys.Quit != "q" {
		t.Fatalf("expected quit key q, got %q", m.Keys.Quit)
	}
	if m.Metrics.WeeklyGoal != session.DefaultWeeklyGoal || m.Metrics.Total != 0 {
		t.Fatalf("unexpected initial metrics: %+v", m.Metrics)
	}
}

func TestRerollKeyIncrementsCounter(t *testing.T) {
	store := &recordingPersister{}
	m, _ := newTestModel(t, WithPersister(store))
	m = press(t, m, "r")
	if m.Session.RerollCounter != 1 {
		t.Fatalf("expected reroll counter 1, got %d", m.Session.RerollCounter)
	}
	want, _ := selector.SelectTask(catalog.Default(), model.CategoryExercise, 4, 1, model.NewDate(2024, time.January, 1))
	if m.Task.Task != want {
		t.Fatalf("reroll task = %q, want %q", m.Task.Task, want)
	}
	if store.saves != 1 || store.last.RerollCounter != 1 {
		t.Fatalf("expected reroll to persist, got %+v", store)
	}
}

func TestDoneKeyRecordsCompletion(t *testing.T) {
	store := &recordingPersister{}
	m, _ := newTestModel(t, WithPersister(store))
	m = press(t, m, "d", "d")

	if m.Metrics.Total != 1 || m.Metrics.Streak != 1 || m.Metrics.WeeklyCount != 1 {
		t.Fatalf("unexpected metrics after done: %+v", m.Metrics)
	}
	if m.Metrics.WeeklyProgress != 0.25 {
		t.Fatalf("expected progress 0.25, got %v", m.Metrics.WeeklyProgress)
	}
	rec := m.Session.History[model.NewDate(2024, time.January, 1)]
	if rec.Task != m.Task.Task || rec.Category != model.CategoryExercise {
		t.Fatalf("record does not match card: %+v vs %+v", rec, m.Task)
	}
	if store.saves != 2 || len(store.last.History) != 1 {
		t.Fatalf("unexpected persistence: %+v", store)
	}
	if len(m.Notifications) == 0 || m.Notifications[len(m.Notifications)-1].Title != "Recorded" {
		t.Fatalf("expected recorded notification, got %+v", m.Notifications)
	}
}

func TestStreakAcrossDaysAndRollover(t *testing.T) {
	m, clock := newTestModel(t)
	m = press(t, m, "d")

	clock.now = clock.now.Add(24 * time.Hour)
	updated, cmd := m.Update(DayTickMsg{At: clock.now})
	m = updated.(Model)
	if cmd == nil {
		t.Fatal("expected day tick to reschedule")
	}
	if m.Task.Date != model.NewDate(2024, time.January, 2) {
		t.Fatalf("stale task not replaced: %+v", m.Task)
	}
	if m.Metrics.Streak != 0 {
		t.Fatalf("streak should be 0 until today is done, got %d", m.Metrics.Streak)
	}
	if !strings.Contains(m.Status.Text, "new day") {
		t.Fatalf("expected new day status, got %q", m.Status.Text)
	}

	m = press(t, m, "d")
	if m.Metrics.Streak != 2 || m.Metrics.Total != 2 {
		t.Fatalf("unexpected metrics on day two: %+v", m.Metrics)
	}
}

func TestCategoryLevelAndGoalKeys(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(t, m, "c")
	if m.Session.Category != model.CategoryCleaning || m.Task.Category != model.CategoryCleaning {
		t.Fatalf("expected cleaning after exercise, got %s / %s", m.Session.Category, m.Task.Category)
	}

	m = press(t, m, "+", "+", "+")
	if m.Session.Level != model.MaxLevel {
		t.Fatalf("level should clamp at %d, got %d", model.MaxLevel, m.Session.Level)
	}
	if m.Status.IsError {
		t.Fatalf("clamped level should not error: %+v", m.Status)
	}
	m = press(t, m, "-", "-", "-", "-", "-", "-")
	if m.Session.Level != model.MinLevel || m.Task.Level != model.MinLevel {
		t.Fatalf("level should clamp at %d, got %d", model.MinLevel, m.Session.Level)
	}

	m = press(t, m, "g", "g", "g")
	if m.Session.WeeklyGoal != 7 {
		t.Fatalf("expected goal 7, got %d", m.Session.WeeklyGoal)
	}
	m = press(t, m, "g")
	if m.Session.WeeklyGoal != 1 || m.Metrics.WeeklyGoal != 1 {
		t.Fatalf("expected goal to wrap to 1, got %d", m.Session.WeeklyGoal)
	}
}

func TestPaletteCommands(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(t, m, "/", "category journal", "enter")
	if m.Palette.Active {
		t.Fatal("palette should close after enter")
	}
	if m.Session.Category != model.CategoryJournal || m.Task.Category != model.CategoryJournal {
		t.Fatalf("palette category not applied: %+v", m.Session)
	}

	m = press(t, m, "/", "goal 10", "enter")
	if m.Session.WeeklyGoal != 10 {
		t.Fatalf("expected goal 10, got %d", m.Session.WeeklyGoal)
	}

	m = press(t, m, "/", "log", "enter")
	if !m.LogVisible || !strings.Contains(m.Status.Text, "log visible") {
		t.Fatalf("expected log toggle, got %+v", m.Status)
	}

	m = press(t, m, "/", "level 9", "enter")
	if !m.Status.IsError || !errors.Is(m.LastError, model.ErrInvalidLevel) {
		t.Fatalf("expected invalid level error, got %+v (%v)", m.Status, m.LastError)
	}

	m = press(t, m, "/", "done", "enter")
	if m.Status.IsError || m.Metrics.Total != 1 {
		t.Fatalf("expected done via palette, got %+v %+v", m.Status, m.Metrics)
	}

	m = press(t, m, "/", "esc")
	if m.Palette.Active || m.Status.Text != "command palette closed" {
		t.Fatalf("expected palette closed, got %+v", m.Palette)
	}
}

func TestPersistFailureSurfacesError(t *testing.T) {
	store := &recordingPersister{err: errors.New("disk full")}
	m, _ := newTestModel(t, WithPersister(store))
	m = press(t, m, "d")
	if !m.Status.IsError || !strings.Contains(m.Status.Text, "disk full") {
		t.Fatalf("expected persistence error in status, got %+v", m.Status)
	}
	if m.Metrics.Total != 1 {
		t.Fatalf("in-session history should still update, got %+v", m.Metrics)
	}
}

func TestEmptyBucketShowsError(t *testing.T) {
	c := catalog.Default()
	c[model.CategoryExercise][model.BucketHard] = nil
	m, _ := newTestModel(t, WithCatalog(c))
	if !errors.Is(m.LastError, model.ErrEmptyBucket) {
		t.Fatalf("expected ErrEmptyBucket, got %v", m.LastError)
	}
	if !strings.Contains(m.View(), "no task available") {
		t.Fatal("expected placeholder card")
	}
}

func TestUpdateStatusAndError(t *testing.T) {
	m, _ := newTestModel(t)
	updated, _ := m.Update(SetStatusMsg{Text: "ready", IsError: false})
	next := updated.(Model)
	if next.Status.Text != "ready" || next.Status.IsError {
		t.Fatalf("unexpected status: %+v", next.Status)
	}

	updated, _ = next.Update(AppErrorMsg{Err: errors.New("boom")})
	next = updated.(Model)
	if next.LastError == nil || next.LastError.Error() != "boom" {
		t.Fatalf("expected last error boom, got: %v", next.LastError)
	}
	if !next.Status.IsError || next.Status.Text != "boom" {
		t.Fatalf("unexpected error status: %+v", next.Status)
	}

	updated, _ = next.Update(ClearStatusMsg{})
	next = updated.(Model)
	if next.Status.Text != "" || next.Status.IsError {
		t.Fatalf("expected cleared status, got: %+v", next.Status)
	}
}

func TestViewShowsCardMetricsAndHelp(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(t, m, "d", "?")
	out := m.View()
	for _, want := range []string{"lazyd | 2024-01-01", "streak: 1 day(s)", "total completions: 1", "1/4", "mark today done"} {
		if !strings.Contains(out, want) {
			t.Fatalf("view missing %q:\n%s", want, out)
		}
	}
}

func TestQuitKey(t *testing.T) {
	m, _ := newTestModel(t)
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if !updated.(Model).Quitting || cmd == nil {
		t.Fatal("expected quit")
	}
}

func TestWindowSizeNarrowsLogPane(t *testing.T) {
	m, _ := newTestModel(t)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 60, Height: 30})
	m = updated.(Model)
	if m.width != 60 || m.logViewport.Width != 52 {
		t.Fatalf("unexpected widths: model %d, log %d", m.width, m.logViewport.Width)
	}
	m = press(t, m, "l")
	if !strings.Contains(m.View(), "lazyd | 2024-01-01") {
		t.Fatal("narrow view lost its header")
	}

	updated, _ = m.Update(tea.WindowSizeMsg{Width: 160, Height: 40})
	m = updated.(Model)
	if m.logViewport.Width != logPaneWidth {
		t.Fatalf("expected log width %d on a wide terminal, got %d", logPaneWidth, m.logViewport.Width)
	}
}
