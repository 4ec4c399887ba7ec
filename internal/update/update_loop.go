package update

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/lazyd/internal/continuity"
	"github.com/sandeepkv93/lazyd/internal/model"
	"github.com/sandeepkv93/lazyd/internal/selector"
	"github.com/sandeepkv93/lazyd/internal/views"
)

const logPaneWidth = 44

func (m Model) Init() tea.Cmd {
	return dayTickCmd()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.handleMsg(msg)
	next.syncBubbleData()
	return next, cmd
}

func (m Model) handleMsg(msg tea.Msg) (Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		if m.Palette.Active {
			if typed.String() == "ctrl+c" {
				m.Quitting = true
				return m, tea.Quit
			}
			next := m.handlePaletteKey(typed)
			return next, nil
		}

		switch typed.String() {
		case "/":
			m.Palette.Active = true
			m.Palette.Input = ""
			m.commandInput.Focus()
			m.commandInput.SetValue("")
			m.Status = StatusBar{Text: "command palette active", IsError: false}
			return m, nil
		case m.Keys.Reroll:
			m.reroll()
			return m, nil
		case m.Keys.Done:
			m.complete()
			return m, nil
		case m.Keys.Category:
			m.configure(m.Session.Category.Next(), m.Session.Level)
			return m, nil
		case m.Keys.LevelUp, "=":
			if m.Session.Level < model.MaxLevel {
				m.configure(m.Session.Category, m.Session.Level+1)
			}
			return m, nil
		case m.Keys.LevelDn:
			if m.Session.Level > model.MinLevel {
				m.configure(m.Session.Category, m.Session.Level-1)
			}
			return m, nil
		case m.Keys.Goal:
			m.cycleGoal()
			return m, nil
		case m.Keys.Log:
			m.LogVisible = !m.LogVisible
			return m, nil
		case m.Keys.Help:
			m.HelpVisible = !m.HelpVisible
			if m.HelpVisible {
				m.Status = StatusBar{Text: "help shown", IsError: false}
			} else {
				m.Status = StatusBar{Text: "help hidden", IsError: false}
			}
			return m, nil
		case "ctrl+c", m.Keys.Quit:
			m.Quitting = true
			return m, tea.Quit
		}
		if m.LogVisible {
			var cmd tea.Cmd
			m.logViewport, cmd = m.logViewport.Update(typed)
			return m, cmd
		}
	case tea.WindowSizeMsg:
		m.width = typed.Width
		if views.Stacked(typed.Width) {
			m.logViewport.Width = max(typed.Width-8, 20)
		} else {
			m.logViewport.Width = logPaneWidth
		}
		return m, nil
	case DayTickMsg:
		m.refresh()
		return m, dayTickCmd()
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		m.notify("Status", typed.Text, levelFromError(typed.IsError))
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		if typed.Err != nil {
			m.fail(typed.Err)
		}
		return m, nil
	}

	return m, nil
}

func (m Model) View() string {
	if m.Quitting {
		return ""
	}
	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = fmt.Sprintf("status: error: %s", m.Status.Text)
		} else {
			status = fmt.Sprintf("status: %s", m.Status.Text)
		}
	}

	leftPane := m.renderTaskCard()
	rightPane := strings.TrimSpace(strings.Join([]string{
		m.renderMetrics(),
		m.renderCommandPalette(),
		m.renderLogIfVisible(),
		m.renderHelpIfVisible(),
	}, "\n\n"))

	return views.RenderApp(views.AppData{
		Width:        m.width,
		Header:       fmt.Sprintf("lazyd | %s | session: %s", m.today(), shortID(m.Session.ID)),
		LeftPane:     leftPane,
		RightPane:    rightPane,
		StatusLine:   status,
		Notification: m.renderNotificationsView(),
		Footer: fmt.Sprintf("keys: %s another | %s done | %s category | %s/%s level | %s goal | %s log | / cmd | %s help | %s quit",
			m.Keys.Reroll, m.Keys.Done, m.Keys.Category, m.Keys.LevelUp, m.Keys.LevelDn, m.Keys.Goal, m.Keys.Log, m.Keys.Help, m.Keys.Quit),
	})
}

func (m *Model) initBubbleComponents() {
	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.CharLimit = 128
	m.commandInput.Width = 40

	m.weeklyProgress = progress.New(progress.WithDefaultGradient(), progress.WithWidth(30))

	m.helpModel = help.New()
	m.logViewport = viewport.New(logPaneWidth, 10)
}

func (m *Model) syncBubbleData() {
	m.commandInput.SetValue(m.Palette.Input)
	if m.Palette.Active {
		m.commandInput.Focus()
	} else {
		m.commandInput.Blur()
	}
	if m.LogVisible {
		m.logViewport.SetContent(views.RenderMarkdown(views.LogMarkdown(m.logEntries()), m.logViewport.Width))
	}
}

func (m Model) logEntries() []views.LogEntryData {
	recs := continuity.Log(m.Session.History)
	out := make([]views.LogEntryData, 0, len(recs))
	for _, rec := range recs {
		out = append(out, views.LogEntryData{
			Date:     rec.Date.String(),
			Category: string(rec.Category),
			Task:     rec.Task,
		})
	}
	return out
}

func (m Model) renderTaskCard() string {
	if m.Task.Task == "" {
		return "today:\n(no task available)"
	}
	_, done := m.Session.History[m.Task.Date]
	return views.RenderTaskCard(views.TaskCardData{
		Emoji:    m.Task.Category.Emoji(),
		Color:    m.Task.Category.Color(),
		Task:     m.Task.Task,
		Category: string(m.Task.Category),
		Level:    m.Task.Level,
		Bucket:   selector.BucketForLevel(m.Task.Level).String(),
		Date:     m.Task.Date.String(),
		Done:     done,
	})
}

func (m Model) renderMetrics() string {
	return views.RenderMetricsPanel(views.MetricsPanelData{
		ProgressView: m.weeklyProgress.ViewAs(m.Metrics.WeeklyProgress),
		WeeklyCount:  m.Metrics.WeeklyCount,
		WeeklyGoal:   m.Metrics.WeeklyGoal,
		Streak:       m.Metrics.Streak,
		Total:        m.Metrics.Total,
	})
}

func (m Model) renderLogIfVisible() string {
	if !m.LogVisible {
		return ""
	}
	return m.logViewport.View()
}
