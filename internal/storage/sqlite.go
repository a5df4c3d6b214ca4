package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/Pranav-Anand04/TerpFit/internal"
)

const sqliteSchema = `CREATE TABLE IF NOT EXISTS workouts (
	seq       INTEGER PRIMARY KEY AUTOINCREMENT,
	id        TEXT NOT NULL UNIQUE,
	type      TEXT NOT NULL,
	duration  INTEGER NOT NULL CHECK (duration > 0),
	calories  INTEGER NOT NULL CHECK (calories > 0),
	gym       TEXT NOT NULL DEFAULT '',
	date      TEXT NOT NULL,
	checklist TEXT NOT NULL DEFAULT '',
	notes     TEXT NOT NULL DEFAULT ''
)`

// SQLiteStorage is a single-file embedded backend. Checklists are stored as a
// JSON array and dates as RFC3339Nano text.
type SQLiteStorage struct {
	db     *sql.DB
	logger internal.Logger
}

func NewSQLiteStorage(path string, logger internal.Logger) (*SQLiteStorage, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("storage: create data dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		logger.Errorf("failed to open sqlite %s: %v", path, err)
		return nil, err
	}
	// one writer; avoids SQLITE_BUSY between pooled connections
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		logger.Errorf("failed to create workouts table: %v", err)
		return nil, fmt.Errorf("%w: %v", internal.ErrPersistence, err)
	}
	return &SQLiteStorage{db: db, logger: logger}, nil
}

func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// --- WorkoutRepository ---
func (s *SQLiteStorage) SaveWorkout(ctx context.Context, w *internal.Workout) error {
	checklist, err := encodeChecklist(w.Checklist)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO workouts (id, type, duration, calories, gym, date, checklist, notes) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		w.ID, w.Type, w.Duration, w.Calories, w.Gym, w.Date.Format(time.RFC3339Nano), checklist, w.Notes)
	if err != nil {
		s.logger.Errorf("failed to insert workout: %v", err)
		return fmt.Errorf("%w: %v", internal.ErrPersistence, err)
	}
	return nil
}

func (s *SQLiteStorage) ListWorkouts(ctx context.Context) ([]internal.Workout, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, type, duration, calories, gym, date, checklist, notes FROM workouts ORDER BY seq`)
	if err != nil {
		s.logger.Errorf("failed to query workouts: %v", err)
		return nil, fmt.Errorf("%w: %v", internal.ErrPersistence, err)
	}
	defer rows.Close()

	workouts := []internal.Workout{}
	for rows.Next() {
		w, err := scanSQLiteWorkout(rows)
		if err != nil {
			s.logger.Errorf("failed to scan workout: %v", err)
			return nil, fmt.Errorf("%w: %v", internal.ErrPersistence, err)
		}
		workouts = append(workouts, *w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", internal.ErrPersistence, err)
	}
	return workouts, nil
}

func (s *SQLiteStorage) GetWorkout(ctx context.Context, id string) (*internal.Workout, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id, type, duration, calories, gym, date, checklist, notes FROM workouts WHERE id = ?`, id)
	w, err := scanSQLiteWorkout(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, internal.ErrNotFound
		}
		s.logger.Errorf("failed to get workout %s: %v", id, err)
		return nil, fmt.Errorf("%w: %v", internal.ErrPersistence, err)
	}
	return w, nil
}

func (s *SQLiteStorage) DeleteWorkout(ctx context.Context, id string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM workouts WHERE id = ?`, id)
	if err != nil {
		s.logger.Errorf("failed to delete workout %s: %v", id, err)
		return false, fmt.Errorf("%w: %v", internal.ErrPersistence, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: %v", internal.ErrPersistence, err)
	}
	return n > 0, nil
}

func (s *SQLiteStorage) UpdateNotes(ctx context.Context, id, notes string) error {
	res, err := s.db.ExecContext(ctx, `UPDATE workouts SET notes = ? WHERE id = ?`, notes, id)
	if err != nil {
		s.logger.Errorf("failed to update notes for %s: %v", id, err)
		return fmt.Errorf("%w: %v", internal.ErrPersistence, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return internal.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSQLiteWorkout(row rowScanner) (*internal.Workout, error) {
	var (
		w         internal.Workout
		date      string
		checklist string
	)
	if err := row.Scan(&w.ID, &w.Type, &w.Duration, &w.Calories, &w.Gym, &date, &checklist, &w.Notes); err != nil {
		return nil, err
	}
	parsed, err := time.Parse(time.RFC3339Nano, date)
	if err != nil {
		return nil, fmt.Errorf("parse date %q: %w", date, err)
	}
	w.Date = parsed
	if checklist != "" {
		if err := json.Unmarshal([]byte(checklist), &w.Checklist); err != nil {
			return nil, fmt.Errorf("decode checklist: %w", err)
		}
	}
	return &w, nil
}

func encodeChecklist(items []string) (string, error) {
	if len(items) == 0 {
		return "", nil
	}
	b, err := json.Marshal(items)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

var _ WorkoutRepository = (*SQLiteStorage)(nil)
