package update

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"

	"github.com/sandeepkv93/lazyd/internal/catalog"
	"github.com/sandeepkv93/lazyd/internal/continuity"
	"github.com/sandeepkv93/lazyd/internal/model"
	"github.com/sandeepkv93/lazyd/internal/session"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Reroll   string
	Done     string
	Category string
	LevelUp  string
	LevelDn  string
	Goal     string
	Log      string
	Help     string
	Quit     string
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

type Notification struct {
	Title string
	Body  string
	Level string
	At    time.Time
}

// Model is the bubbletea shell around one session. It owns the session
// state; the core packages stay free of globals.
type Model struct {
	Session       session.State
	Catalog       catalog.Catalog
	Task          model.DailyTask
	Metrics       continuity.Metrics
	Palette       CommandPaletteState
	HelpVisible   bool
	LogVisible    bool
	Notifications []Notification
	Status        StatusBar
	Keys          GlobalKeyMap
	Quitting      bool
	LastError     error

	commandInput   textinput.Model
	weeklyProgress progress.Model
	helpModel      help.Model
	logViewport    viewport.Model
	width          int
	store          Persister
	now            func() time.Time
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

// DayTickMsg re-checks the calendar date so a stale task is replaced.
type DayTickMsg struct {
	At time.Time
}

type Option func(*Model)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(m *Model) {
		if now != nil {
			m.now = now
		}
	}
}

// WithPersister saves the session after every change.
func WithPersister(p Persister) Option {
	return func(m *Model) {
		m.store = p
	}
}

func WithCatalog(c catalog.Catalog) Option {
	return func(m *Model) {
		if c != nil {
			m.Catalog = c
		}
	}
}

func NewModel(state session.State, opts ...Option) Model {
	m := Model{
		Session: state,
		Catalog: catalog.Default(),
		Keys: GlobalKeyMap{
			Reroll:   "r",
			Done:     "d",
			Category: "c",
			LevelUp:  "+",
			LevelDn:  "-",
			Goal:     "g",
			Log:      "l",
			Help:     "?",
			Quit:     "q",
		},
		now: time.Now,
	}
	if m.Session.History == nil {
		m.Session.History = make(continuity.History)
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.initBubbleComponents()
	m.refresh()
	m.syncBubbleData()
	return m
}

func (m Model) today() model.Date {
	return model.DateOf(m.now())
}
