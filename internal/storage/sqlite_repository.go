package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const sqliteTimeLayout = time.RFC3339Nano

// querier is the part of *sql.DB and *sql.Tx the repository needs.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type SQLiteRepository struct {
	db *sql.DB
	q  querier
}

func NewSQLiteRepository(db *sql.DB) (*SQLiteRepository, error) {
	if db == nil {
		return nil, errors.New("storage: nil db")
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	return &SQLiteRepository{db: db, q: db}, nil
}

// OpenSQLite opens path, applies migrations and returns the repository.
func OpenSQLite(path string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// One connection keeps PRAGMA foreign_keys in effect for every query.
	db.SetMaxOpenConns(1)
	if err := MigrateUp(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	repo, err := NewSQLiteRepository(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	slog.Debug("sqlite store opened", "path", path)
	return repo, nil
}

func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// InTx runs fn against a repository bound to one transaction. Nested calls
// join the outer transaction.
func (r *SQLiteRepository) InTx(ctx context.Context, fn func(Repository) error) error {
	if _, ok := r.q.(*sql.Tx); ok {
		return fn(r)
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(&SQLiteRepository{db: r.db, q: tx}); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) CreateSession(ctx context.Context, in Session) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO sessions (id, category, level, weekly_goal, reroll_counter, today_date, today_category, today_level, today_task, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		in.ID, in.Category, in.Level, in.WeeklyGoal, in.RerollCounter,
		nullString(in.TodayDate), nullString(in.TodayCategory), nullInt(in.TodayLevel), nullString(in.TodayTask),
		mustTime(in.CreatedAt), mustTime(in.UpdatedAt),
	)
	return err
}

func (r *SQLiteRepository) GetSession(ctx context.Context, id string) (Session, error) {
	row := r.q.QueryRowContext(ctx, `
		SELECT id, category, level, weekly_goal, reroll_counter, today_date, today_category, today_level, today_task, created_at, updated_at
		FROM sessions WHERE id = ?`, id)
	item, err := scanSession(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Session{}, ErrNotFound
		}
		return Session{}, err
	}
	return item, nil
}

func (r *SQLiteRepository) UpdateSession(ctx context.Context, in Session) error {
	res, err := r.q.ExecContext(ctx, `
		UPDATE sessions
		SET category = ?, level = ?, weekly_goal = ?, reroll_counter = ?, today_date = ?, today_category = ?, today_level = ?, today_task = ?, updated_at = ?
		WHERE id = ?`,
		in.Category, in.Level, in.WeeklyGoal, in.RerollCounter,
		nullString(in.TodayDate), nullString(in.TodayCategory), nullInt(in.TodayLevel), nullString(in.TodayTask),
		mustTime(in.UpdatedAt), in.ID,
	)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) DeleteSession(ctx context.Context, id string) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) ListSessions(ctx context.Context, filter SessionListFilter) ([]Session, error) {
	args := make([]any, 0, 2)
	query := `SELECT id, category, level, weekly_goal, reroll_counter, today_date, today_category, today_level, today_task, created_at, updated_at
		FROM sessions ORDER BY updated_at DESC` + applyPagination(&args, filter.Limit, filter.Offset)
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Session, 0)
	for rows.Next() {
		item, scanErr := scanSession(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) UpsertCompletion(ctx context.Context, in Completion) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO completions (session_id, date, category, task, recorded_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (session_id, date) DO UPDATE SET
			category = excluded.category,
			task = excluded.task,
			recorded_at = excluded.recorded_at
		WHERE completions.category <> excluded.category OR completions.task <> excluded.task`,
		in.SessionID, in.Date, in.Category, in.Task, mustTime(in.RecordedAt),
	)
	return err
}

func (r *SQLiteRepository) GetCompletion(ctx context.Context, sessionID, date string) (Completion, error) {
	row := r.q.QueryRowContext(ctx, `
		SELECT session_id, date, category, task, recorded_at
		FROM completions WHERE session_id = ? AND date = ?`, sessionID, date)
	item, err := scanCompletion(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Completion{}, ErrNotFound
		}
		return Completion{}, err
	}
	return item, nil
}

func (r *SQLiteRepository) ListCompletions(ctx context.Context, filter CompletionListFilter) ([]Completion, error) {
	query := `SELECT session_id, date, category, task, recorded_at FROM completions`
	clauses := make([]string, 0, 3)
	args := make([]any, 0, 5)
	if filter.SessionID != "" {
		clauses = append(clauses, "session_id = ?")
		args = append(args, filter.SessionID)
	}
	if filter.From != "" {
		clauses = append(clauses, "date >= ?")
		args = append(args, filter.From)
	}
	if filter.To != "" {
		clauses = append(clauses, "date <= ?")
		args = append(args, filter.To)
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += ` ORDER BY date DESC`
	query += applyPagination(&args, filter.Limit, filter.Offset)

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Completion, 0)
	for rows.Next() {
		item, scanErr := scanCompletion(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

func nullString(v string) any {
	if v == "" {
		return nil
	}
	return v
}

func nullInt(v int) any {
	if v == 0 {
		return nil
	}
	return v
}

func mustTime(v time.Time) string {
	return v.UTC().Format(sqliteTimeLayout)
}

func parseRequiredTime(v string) (time.Time, error) {
	return time.Parse(sqliteTimeLayout, v)
}

func applyPagination(args *[]any, limit, offset int) string {
	sql := ""
	if limit > 0 {
		sql += " LIMIT ?"
		*args = append(*args, limit)
	} else if offset > 0 {
		sql += " LIMIT -1"
	}
	if offset > 0 {
		sql += " OFFSET ?"
		*args = append(*args, offset)
	}
	return sql
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSession(s scanner) (Session, error) {
	var out Session
	var todayDate, todayCategory, todayTask sql.NullString
	var todayLevel sql.NullInt64
	var created, updated string
	if err := s.Scan(&out.ID, &out.Category, &out.Level, &out.WeeklyGoal, &out.RerollCounter,
		&todayDate, &todayCategory, &todayLevel, &todayTask, &created, &updated); err != nil {
		return Session{}, err
	}
	createdAt, err := parseRequiredTime(created)
	if err != nil {
		return Session{}, err
	}
	updatedAt, err := parseRequiredTime(updated)
	if err != nil {
		return Session{}, err
	}
	out.TodayDate = todayDate.String
	out.TodayCategory = todayCategory.String
	out.TodayLevel = int(todayLevel.Int64)
	out.TodayTask = todayTask.String
	out.CreatedAt = createdAt
	out.UpdatedAt = updatedAt
	return out, nil
}

func scanCompletion(s scanner) (Completion, error) {
	var out Completion
	var recorded string
	if err := s.Scan(&out.SessionID, &out.Date, &out.Category, &out.Task, &recorded); err != nil {
		return Completion{}, err
	}
	recordedAt, err := parseRequiredTime(recorded)
	if err != nil {
		return Completion{}, err
	}
	out.RecordedAt = recordedAt
	return out, nil
}

func checkRowsAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
