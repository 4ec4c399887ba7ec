package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/lazyd/internal/commands"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m.Palette.Active = false
		m.Palette.Input = ""
		m.commandInput.SetValue("")
		m.commandInput.Blur()
		m.Status = StatusBar{Text: "command palette closed", IsError: false}
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		m = m.executePaletteCommand()
	default:
		if msg.Type == tea.KeyRunes {
			m.commandInput.SetValue(m.commandInput.Value() + string(msg.Runes))
			m.Palette.Input = m.commandInput.Value()
			return m
		}
		var cmd tea.Cmd
		m.commandInput, cmd = m.commandInput.Update(msg)
		_ = cmd
		m.Palette.Input = m.commandInput.Value()
	}
	return m
}

func (m Model) executePaletteCommand() Model {
	raw := strings.TrimSpace(m.Palette.Input)
	m.Palette.Active = false
	m.Palette.Input = ""
	m.commandInput.SetValue("")

	cmd, err := commands.Parse(raw)
	if err != nil {
		m.fail(err)
		return m
	}

	// Handlers report through Status; the returned message is only used
	// when the action left no status of its own.
	res, err := commands.Execute(cmd, commands.Handlers{
		Category: func(a commands.CategoryArgs) (commands.Result, error) {
			m.configure(a.Category, m.Session.Level)
			return commands.Result{}, m.LastError
		},
		Level: func(a commands.LevelArgs) (commands.Result, error) {
			m.configure(m.Session.Category, a.Level)
			return commands.Result{}, m.LastError
		},
		Goal: func(a commands.GoalArgs) (commands.Result, error) {
			m.setGoal(a.Goal)
			return commands.Result{}, m.LastError
		},
		Reroll: func() (commands.Result, error) {
			m.reroll()
			return commands.Result{}, m.LastError
		},
		Done: func() (commands.Result, error) {
			m.complete()
			return commands.Result{}, m.LastError
		},
		Log: func() (commands.Result, error) {
			m.LogVisible = !m.LogVisible
			return commands.Result{Message: fmt.Sprintf("log visible: %t", m.LogVisible)}, nil
		},
	})
	if err != nil {
		if m.LastError == nil {
			m.fail(err)
		}
		return m
	}
	if res.Message != "" {
		m.Status = StatusBar{Text: res.Message, IsError: false}
		m.notify("Command", res.Message, "info")
	}
	return m
}
