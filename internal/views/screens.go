package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type TaskCardData struct {
	Emoji    string
	Color    string
	Task     string
	Category string
	Level    int
	Bucket   string
	Date     string
	Done     bool
}

type MetricsPanelData struct {
	ProgressView string
	WeeklyCount  int
	WeeklyGoal   int
	Streak       int
	Total        int
}

type LogEntryData struct {
	Date     string
	Category string
	Task     string
}

type HelpPanelData struct {
	Bindings []string
	HelpView string
}

var cardTitleStyle = lipgloss.NewStyle().Bold(true)

func RenderTaskCard(data TaskCardData) string {
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(data.Color)).
		Padding(0, 1).
		Width(40)

	var b strings.Builder
	b.WriteString(cardTitleStyle.Render(fmt.Sprintf("%s today's smallest task", data.Emoji)) + "\n\n")
	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(data.Color)).Render(data.Task) + "\n\n")
	b.WriteString(fmt.Sprintf("category: %s | level: %d (%s)", data.Category, data.Level, data.Bucket))
	if data.Done {
		b.WriteString("\n✅ done for " + data.Date)
	}
	return "today:\n" + border.Render(b.String()) + "\nactions: [r]another [d]done [c]category [+/-]level"
}

func RenderMetricsPanel(data MetricsPanelData) string {
	var b strings.Builder
	b.WriteString("this week:\n")
	b.WriteString(fmt.Sprintf("%s %d/%d\n", data.ProgressView, data.WeeklyCount, data.WeeklyGoal))
	b.WriteString("\ncontinuity:\n")
	b.WriteString(fmt.Sprintf("streak: %d day(s)\n", data.Streak))
	b.WriteString(fmt.Sprintf("total completions: %d", data.Total))
	return b.String()
}

// LogMarkdown renders entries as a markdown bullet list for glamour.
func LogMarkdown(entries []LogEntryData) string {
	if len(entries) == 0 {
		return "_No completions yet_"
	}
	var b strings.Builder
	b.WriteString("## Log\n\n")
	for _, e := range entries {
		b.WriteString(fmt.Sprintf("- **%s** | %s | %s\n", escapeMarkdown(e.Date), escapeMarkdown(e.Category), escapeMarkdown(e.Task)))
	}
	return b.String()
}

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`, "`", "\\`", "*", `\*`, "_", `\_`, "[", `\[`, "]", `\]`,
	"#", `\#`, "<", `\<`, ">", `\>`, "|", `\|`, "~", `\~`,
)

// escapeMarkdown keeps catalog text literal inside the log markdown.
func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}

func RenderCommandPalette(active bool, input string) string {
	if !active {
		return ""
	}
	return fmt.Sprintf("command: /%s", input)
}

func RenderNotification(level string, body string) string {
	if strings.TrimSpace(body) == "" {
		return ""
	}
	return fmt.Sprintf("notification: [%s] %s", strings.ToUpper(level), body)
}

func RenderHelpPanel(data HelpPanelData) string {
	return fmt.Sprintf("help:\n%s\n%s",
		strings.Join(data.Bindings, "\n"),
		data.HelpView,
	)
}
