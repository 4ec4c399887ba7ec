package views

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

// AppData is one frame. Width is the terminal width; zero means unknown.
type AppData struct {
	Width        int
	Header       string
	LeftPane     string
	RightPane    string
	StatusLine   string
	Footer       string
	Notification string
}

const (
	paneWidth = 46
	// two panes plus their borders and padding
	sideBySideWidth = 2 * (paneWidth + 4)
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	panelStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// Stacked reports whether a terminal of this width gets one column.
func Stacked(width int) bool {
	return width > 0 && width < sideBySideWidth
}

func RenderApp(data AppData) string {
	w := paneWidth
	if Stacked(data.Width) && data.Width-4 < w {
		w = max(data.Width-4, 20)
	}
	body := panelStyle.Width(w).Render(data.LeftPane)
	if strings.TrimSpace(data.RightPane) != "" {
		right := panelStyle.Width(w).Render(data.RightPane)
		if Stacked(data.Width) {
			body = lipgloss.JoinVertical(lipgloss.Left, body, right)
		} else {
			body = lipgloss.JoinHorizontal(lipgloss.Top, body, right)
		}
	}

	status := statusStyle.Render(data.StatusLine)
	if strings.Contains(strings.ToLower(data.StatusLine), "error") {
		status = errorStyle.Render(data.StatusLine)
	}

	lines := []string{headerStyle.Render(data.Header), body}
	if data.StatusLine != "" {
		lines = append(lines, status)
	}
	if data.Notification != "" {
		lines = append(lines, panelStyle.Render(data.Notification))
	}
	if data.Footer != "" {
		footer := footerStyle
		if data.Width > 0 {
			footer = footer.Width(data.Width)
		}
		lines = append(lines, footer.Render(data.Footer))
	}
	return strings.Join(lines, "\n")
}

// RenderMarkdown renders md for the log pane, falling back to the raw text.
func RenderMarkdown(md string, width int) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimSpace(out)
}
