package session

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/sandeepkv93/lazyd/internal/catalog"
	"github.com/sandeepkv93/lazyd/internal/continuity"
	"github.com/sandeepkv93/lazyd/internal/model"
	"github.com/sandeepkv93/lazyd/internal/selector"
)

type Phase string

const (
	PhaseUnset Phase = "Unset"
	PhaseFresh Phase = "Fresh"
	PhaseStale Phase = "Stale"
)

const (
	DefaultCategory   = model.CategoryStudy
	DefaultLevel      = 4
	DefaultWeeklyGoal = 4
)

// State is everything one user session owns. The reroll counter keeps
// running across day boundaries.
type State struct {
	ID            string
	History       continuity.History
	Today         *model.DailyTask
	RerollCounter int
	Category      model.Category
	Level         int
	WeeklyGoal    int
}

func New() State {
	return State{
		ID:         uuid.NewString(),
		History:    make(continuity.History),
		Category:   DefaultCategory,
		Level:      DefaultLevel,
		WeeklyGoal: DefaultWeeklyGoal,
	}
}

func (s State) Validate() error {
	if !s.Category.IsValid() {
		return fmt.Errorf("%w: %q", model.ErrInvalidCategory, s.Category)
	}
	if err := model.ValidateLevel(s.Level); err != nil {
		return err
	}
	return model.ValidateGoal(s.WeeklyGoal)
}

func (s State) Phase(today model.Date) Phase {
	switch {
	case s.Today == nil:
		return PhaseUnset
	case s.Today.Date != today:
		return PhaseStale
	default:
		return PhaseFresh
	}
}

// Current returns today's task, generating it when the slot is unset or
// holds another day.
func (s *State) Current(c catalog.Catalog, today model.Date) (model.DailyTask, error) {
	if s.Phase(today) == PhaseFresh {
		return *s.Today, nil
	}
	return s.regenerate(c, today)
}

// Reroll bumps the counter and replaces today's task. On error neither
// changes.
func (s *State) Reroll(c catalog.Catalog, today model.Date) (model.DailyTask, error) {
	task, err := selector.Daily(c, s.Category, s.Level, s.RerollCounter+1, today)
	if err != nil {
		return model.DailyTask{}, err
	}
	s.RerollCounter++
	s.Today = &task
	return task, nil
}

// Complete records today's task as done.
func (s *State) Complete(c catalog.Catalog, today model.Date) (model.CompletionRecord, error) {
	task, err := s.Current(c, today)
	if err != nil {
		return model.CompletionRecord{}, err
	}
	next, err := continuity.RecordCompletion(s.History, today, task.Category, task.Task)
	if err != nil {
		return model.CompletionRecord{}, err
	}
	s.History = next
	return next[today], nil
}

// Configure changes category and level. The current task is dropped when
// either differs so the next read matches the new settings.
func (s *State) Configure(category model.Category, level int) error {
	if !category.IsValid() {
		return fmt.Errorf("%w: %q", model.ErrInvalidCategory, category)
	}
	if err := model.ValidateLevel(level); err != nil {
		return err
	}
	if category != s.Category || level != s.Level {
		s.Today = nil
	}
	s.Category = category
	s.Level = level
	return nil
}

func (s *State) SetWeeklyGoal(goal int) error {
	if err := model.ValidateGoal(goal); err != nil {
		return err
	}
	s.WeeklyGoal = goal
	return nil
}

func (s State) Metrics(today model.Date) (continuity.Metrics, error) {
	return continuity.Summarize(s.History, today, s.WeeklyGoal)
}

func (s *State) regenerate(c catalog.Catalog, today model.Date) (model.DailyTask, error) {
	task, err := selector.Daily(c, s.Category, s.Level, s.RerollCounter, today)
	if err != nil {
		return model.DailyTask{}, err
	}
	s.Today = &task
	return task, nil
}
