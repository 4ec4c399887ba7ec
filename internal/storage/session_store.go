package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sandeepkv93/lazyd/internal/continuity"
	"github.com/sandeepkv93/lazyd/internal/model"
	"github.com/sandeepkv93/lazyd/internal/session"
)

// SessionStore maps session.State onto a Repository. Completion rows are
// keyed by (session, date), so the last write for a day wins.
type SessionStore struct {
	repo Repository
	now  func() time.Time
}

func NewSessionStore(repo Repository) *SessionStore {
	return &SessionStore{repo: repo, now: time.Now}
}

// Load returns the stored session with its full history.
func (s *SessionStore) Load(ctx context.Context, id string) (session.State, error) {
	row, err := s.repo.GetSession(ctx, id)
	if err != nil {
		return session.State{}, err
	}
	category, err := model.ParseCategory(row.Category)
	if err != nil {
		return session.State{}, fmt.Errorf("session %s: %w", id, err)
	}
	state := session.State{
		ID:            row.ID,
		History:       make(continuity.History),
		RerollCounter: row.RerollCounter,
		Category:      category,
		Level:         row.Level,
		WeeklyGoal:    row.WeeklyGoal,
	}
	if row.TodayDate != "" {
		today, err := toDailyTask(row)
		if err != nil {
			return session.State{}, fmt.Errorf("session %s: %w", id, err)
		}
		state.Today = &today
	}

	rows, err := s.repo.ListCompletions(ctx, CompletionListFilter{SessionID: id})
	if err != nil {
		return session.State{}, err
	}
	for _, c := range rows {
		rec, err := toRecord(c)
		if err != nil {
			return session.State{}, fmt.Errorf("session %s: %w", id, err)
		}
		state.History[rec.Date] = rec
	}
	if err := state.Validate(); err != nil {
		return session.State{}, fmt.Errorf("session %s: %w", id, err)
	}
	return state, nil
}

// LoadOrCreate loads id, or starts and saves a new session when id is empty
// or unknown. created reports which of the two happened.
func (s *SessionStore) LoadOrCreate(ctx context.Context, id string) (session.State, bool, error) {
	if id != "" {
		state, err := s.Load(ctx, id)
		if err == nil {
			return state, false, nil
		}
		if !errors.Is(err, ErrNotFound) {
			return session.State{}, false, err
		}
	}
	state := session.New()
	if id != "" {
		state.ID = id
	}
	if err := s.Save(ctx, state); err != nil {
		return session.State{}, false, err
	}
	slog.Debug("session created", "session", state.ID)
	return state, true, nil
}

// Save writes settings, the today slot and every completion in one
// transaction. Unchanged completions keep their recorded_at.
func (s *SessionStore) Save(ctx context.Context, state session.State) error {
	now := s.now().UTC()
	row := Session{
		ID:            state.ID,
		Category:      string(state.Category),
		Level:         state.Level,
		WeeklyGoal:    state.WeeklyGoal,
		RerollCounter: state.RerollCounter,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if state.Today != nil {
		row.TodayDate = state.Today.Date.String()
		row.TodayCategory = string(state.Today.Category)
		row.TodayLevel = state.Today.Level
		row.TodayTask = state.Today.Task
	}
	return s.repo.InTx(ctx, func(repo Repository) error {
		err := repo.UpdateSession(ctx, row)
		if errors.Is(err, ErrNotFound) {
			err = repo.CreateSession(ctx, row)
		}
		if err != nil {
			return fmt.Errorf("save session %s: %w", state.ID, err)
		}
		for _, rec := range continuity.Log(state.History) {
			if err := s.saveCompletion(ctx, repo, state.ID, rec); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *SessionStore) SaveCompletion(ctx context.Context, sessionID string, rec model.CompletionRecord) error {
	return s.saveCompletion(ctx, s.repo, sessionID, rec)
}

func (s *SessionStore) saveCompletion(ctx context.Context, repo Repository, sessionID string, rec model.CompletionRecord) error {
	err := repo.UpsertCompletion(ctx, Completion{
		SessionID:  sessionID,
		Date:       rec.Date.String(),
		Category:   string(rec.Category),
		Task:       rec.Task,
		RecordedAt: s.now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("save completion %s: %w", rec.Date, err)
	}
	return nil
}

func toDailyTask(row Session) (model.DailyTask, error) {
	date, err := model.ParseDate(row.TodayDate)
	if err != nil {
		return model.DailyTask{}, err
	}
	category, err := model.ParseCategory(row.TodayCategory)
	if err != nil {
		return model.DailyTask{}, err
	}
	return model.DailyTask{Date: date, Category: category, Level: row.TodayLevel, Task: row.TodayTask}, nil
}

func toRecord(c Completion) (model.CompletionRecord, error) {
	date, err := model.ParseDate(c.Date)
	if err != nil {
		return model.CompletionRecord{}, err
	}
	category, err := model.ParseCategory(c.Category)
	if err != nil {
		return model.CompletionRecord{}, err
	}
	return model.CompletionRecord{Date: date, Category: category, Task: c.Task}, nil
}
