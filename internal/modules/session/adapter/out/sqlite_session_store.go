package out

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"worklog/internal/modules/session/domain"
	sessionout "worklog/internal/modules/session/port/out"
	apperrors "worklog/internal/platform/errors"
	"worklog/internal/platform/tx"
)

const timeLayout = time.RFC3339Nano

type SQLiteSessionStore struct {
	db *sql.DB
}

func NewSQLiteSessionStore(ctx context.Context, db *sql.DB) (sessionout.SessionStore, error) {
	store := &SQLiteSessionStore{db: db}
	if err := store.ensureSchema(ctx); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *SQLiteSessionStore) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS sessions (
  user_id TEXT NOT NULL,
  start_time TEXT NOT NULL,
  end_time TEXT,
  duration_seconds REAL NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_sessions_user_end ON sessions(user_id, end_time);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create sessions table: %w", err)
	}
	return nil
}

func (s *SQLiteSessionStore) FindActive(ctx context.Context, userID string) (domain.ActiveSession, error) {
	row := tx.From(ctx, s.db).QueryRowContext(ctx, `
SELECT user_id, start_time FROM sessions
WHERE user_id = ? AND end_time IS NULL
ORDER BY rowid LIMIT 1;
`, userID)
	active, err := scanActive(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ActiveSession{}, apperrors.ErrNoActiveSession
		}
		return domain.ActiveSession{}, fmt.Errorf("find active session: %w", err)
	}
	return active, nil
}

func (s *SQLiteSessionStore) InsertActive(ctx context.Context, session domain.ActiveSession) error {
	_, err := tx.From(ctx, s.db).ExecContext(ctx, `
INSERT INTO sessions (user_id, start_time, end_time, duration_seconds)
VALUES (?, ?, NULL, 0);
`, session.UserID, session.StartedAt.Format(timeLayout))
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

func (s *SQLiteSessionStore) CloseActive(ctx context.Context, session domain.Session) error {
	res, err := tx.From(ctx, s.db).ExecContext(ctx, `
UPDATE sessions SET end_time = ?, duration_seconds = ?
WHERE rowid = (
  SELECT rowid FROM sessions WHERE user_id = ? AND end_time IS NULL ORDER BY rowid LIMIT 1
);
`, session.EndedAt.Format(timeLayout), session.DurationSeconds, session.UserID)
	if err != nil {
		return fmt.Errorf("close session: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("close session rows: %w", err)
	}
	if n == 0 {
		return apperrors.ErrNoActiveSession
	}
	return nil
}

func (s *SQLiteSessionStore) ListClosed(ctx context.Context) ([]domain.Session, error) {
	rows, err := tx.From(ctx, s.db).QueryContext(ctx, `
SELECT user_id, start_time, end_time, duration_seconds FROM sessions
WHERE end_time IS NOT NULL
ORDER BY rowid;
`)
	if err != nil {
		return nil, fmt.Errorf("list closed sessions: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Session, 0)
	for rows.Next() {
		var userID, start, end string
		var duration float64
		if err := rows.Scan(&userID, &start, &end, &duration); err != nil {
			return nil, fmt.Errorf("scan closed session: %w", err)
		}
		startedAt, err := time.Parse(timeLayout, start)
		if err != nil {
			return nil, fmt.Errorf("parse start_time: %w", err)
		}
		endedAt, err := time.Parse(timeLayout, end)
		if err != nil {
			return nil, fmt.Errorf("parse end_time: %w", err)
		}
		out = append(out, domain.Session{UserID: userID, StartedAt: startedAt, EndedAt: endedAt, DurationSeconds: duration})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate closed sessions: %w", err)
	}
	return out, nil
}

func (s *SQLiteSessionStore) ListActive(ctx context.Context) ([]domain.ActiveSession, error) {
	rows, err := tx.From(ctx, s.db).QueryContext(ctx, `
SELECT user_id, start_time FROM sessions
WHERE end_time IS NULL
ORDER BY rowid;
`)
	if err != nil {
		return nil, fmt.Errorf("list active sessions: %w", err)
	}
	defer rows.Close()

	out := make([]domain.ActiveSession, 0)
	for rows.Next() {
		active, err := scanActive(rows)
		if err != nil {
			return nil, fmt.Errorf("scan active session: %w", err)
		}
		out = append(out, active)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate active sessions: %w", err)
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanActive(row scanner) (domain.ActiveSession, error) {
	var userID, start string
	if err := row.Scan(&userID, &start); err != nil {
		return domain.ActiveSession{}, err
	}
	startedAt, err := time.Parse(timeLayout, start)
	if err != nil {
		return domain.ActiveSession{}, fmt.Errorf("parse start_time: %w", err)
	}
	return domain.ActiveSession{UserID: userID, StartedAt: startedAt}, nil
}
