package update

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/lazyd/internal/model"
	"github.com/sandeepkv93/lazyd/internal/session"
)

const dayTickInterval = time.Minute

// refresh loads today's task and recomputes metrics. A stale task from an
// earlier day is replaced here.
func (m *Model) refresh() {
	today := m.today()
	before := m.Session.Phase(today)
	task, err := m.Session.Current(m.Catalog, today)
	if err != nil {
		m.fail(err)
		return
	}
	m.Task = task
	metrics, err := m.Session.Metrics(today)
	if err != nil {
		m.fail(err)
		return
	}
	m.Metrics = metrics
	if before == session.PhaseStale {
		m.Status = StatusBar{Text: fmt.Sprintf("new day: %s", today)}
	}
}

func (m *Model) reroll() {
	m.clearError()
	task, err := m.Session.Reroll(m.Catalog, m.today())
	if err != nil {
		m.fail(err)
		return
	}
	m.Task = task
	m.save(fmt.Sprintf("new suggestion: %s", task.Task))
}

func (m *Model) complete() {
	m.clearError()
	rec, err := m.Session.Complete(m.Catalog, m.today())
	if err != nil {
		m.fail(err)
		return
	}
	m.refresh()
	if m.LastError == nil {
		m.notify("Recorded", fmt.Sprintf("%s: %s", rec.Date, rec.Task), "info")
	}
	m.save("recorded! ✅")
}

func (m *Model) configure(category model.Category, level int) {
	m.clearError()
	if err := m.Session.Configure(category, level); err != nil {
		m.fail(err)
		return
	}
	m.refresh()
	m.save(fmt.Sprintf("category: %s | level: %d", category, level))
}

func (m *Model) setGoal(goal int) {
	m.clearError()
	if err := m.Session.SetWeeklyGoal(goal); err != nil {
		m.fail(err)
		return
	}
	m.refresh()
	m.save(fmt.Sprintf("weekly goal: %d", goal))
}

func (m *Model) cycleGoal() {
	next := m.Session.WeeklyGoal + 1
	if next > 7 {
		next = 1
	}
	m.setGoal(next)
}

func (m *Model) save(okText string) {
	if m.LastError != nil {
		return
	}
	if err := m.persist(); err != nil {
		m.fail(fmt.Errorf("save session: %w", err))
		return
	}
	m.Status = StatusBar{Text: okText}
}

func (m *Model) clearError() {
	m.LastError = nil
	if m.Status.IsError {
		m.Status = StatusBar{}
	}
}

func (m *Model) fail(err error) {
	m.LastError = err
	m.Status = StatusBar{Text: err.Error(), IsError: true}
	m.notify("Error", err.Error(), "error")
}

func dayTickCmd() tea.Cmd {
	return tea.Tick(dayTickInterval, func(t time.Time) tea.Msg { return DayTickMsg{At: t} })
}
