package update

import (
	"context"
	"log/slog"
	"time"

	"github.com/sandeepkv93/lazyd/internal/session"
)

// Persister stores a session between runs. A nil Persister keeps the
// session in memory only.
type Persister interface {
	Save(ctx context.Context, state session.State) error
}

const persistTimeout = 5 * time.Second

func (m *Model) persist() error {
	if m.store == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()
	if err := m.store.Save(ctx, m.Session); err != nil {
		slog.Error("persist session", "session", m.Session.ID, "error", err)
		return err
	}
	slog.Debug("session persisted", "session", m.Session.ID, "completions", len(m.Session.History))
	return nil
}
