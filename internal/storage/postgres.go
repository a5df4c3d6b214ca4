package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Pranav-Anand04/TerpFit/internal"
)

const postgresSchema = `CREATE TABLE IF NOT EXISTS workouts (
	seq       BIGSERIAL,
	id        TEXT PRIMARY KEY,
	type      TEXT NOT NULL,
	duration  INTEGER NOT NULL CHECK (duration > 0),
	calories  INTEGER NOT NULL CHECK (calories > 0),
	gym       TEXT NOT NULL DEFAULT '',
	date      TIMESTAMPTZ NOT NULL,
	checklist TEXT[],
	notes     TEXT NOT NULL DEFAULT ''
)`

type PostgresStorage struct {
	pool   *pgxpool.Pool
	logger internal.Logger
}

func NewPostgresStorage(dsn string, logger internal.Logger) (*PostgresStorage, error) {
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		logger.Errorf("failed to connect to postgres: %v", err)
		return nil, err
	}
	p := &PostgresStorage{pool: pool, logger: logger}
	if err := p.Migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return p, nil
}

// Migrate creates the workouts table if it does not exist.
func (p *PostgresStorage) Migrate(ctx context.Context) error {
	if _, err := p.pool.Exec(ctx, postgresSchema); err != nil {
		p.logger.Errorf("failed to create workouts table: %v", err)
		return fmt.Errorf("%w: %v", internal.ErrPersistence, err)
	}
	return nil
}

func (p *PostgresStorage) Close() error {
	p.pool.Close()
	return nil
}

// --- WorkoutRepository ---
func (p *PostgresStorage) SaveWorkout(ctx context.Context, w *internal.Workout) error {
	_, err := p.pool.Exec(ctx, `INSERT INTO workouts (id, type, duration, calories, gym, date, checklist, notes) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		w.ID, w.Type, w.Duration, w.Calories, w.Gym, w.Date, w.Checklist, w.Notes)
	if err != nil {
		p.logger.Errorf("failed to insert workout: %v", err)
		return fmt.Errorf("%w: %v", internal.ErrPersistence, err)
	}
	return nil
}

func (p *PostgresStorage) ListWorkouts(ctx context.Context) ([]internal.Workout, error) {
	rows, err := p.pool.Query(ctx, `SELECT id, type, duration, calories, gym, date, checklist, notes FROM workouts ORDER BY seq`)
	if err != nil {
		p.logger.Errorf("failed to query workouts: %v", err)
		return nil, fmt.Errorf("%w: %v", internal.ErrPersistence, err)
	}
	defer rows.Close()

	workouts := []internal.Workout{}
	for rows.Next() {
		w, err := scanWorkout(rows)
		if err != nil {
			p.logger.Errorf("failed to scan workout: %v", err)
			return nil, fmt.Errorf("%w: %v", internal.ErrPersistence, err)
		}
		workouts = append(workouts, *w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", internal.ErrPersistence, err)
	}
	return workouts, nil
}

func (p *PostgresStorage) GetWorkout(ctx context.Context, id string) (*internal.Workout, error) {
	row := p.pool.QueryRow(ctx, `SELECT id, type, duration, calories, gym, date, checklist, notes FROM workouts WHERE id = $1`, id)
	w, err := scanWorkout(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, internal.ErrNotFound
		}
		p.logger.Errorf("failed to get workout %s: %v", id, err)
		return nil, fmt.Errorf("%w: %v", internal.ErrPersistence, err)
	}
	return w, nil
}

func (p *PostgresStorage) DeleteWorkout(ctx context.Context, id string) (bool, error) {
	tag, err := p.pool.Exec(ctx, `DELETE FROM workouts WHERE id = $1`, id)
	if err != nil {
		p.logger.Errorf("failed to delete workout %s: %v", id, err)
		return false, fmt.Errorf("%w: %v", internal.ErrPersistence, err)
	}
	return tag.RowsAffected() > 0, nil
}

func (p *PostgresStorage) UpdateNotes(ctx context.Context, id, notes string) error {
	tag, err := p.pool.Exec(ctx, `UPDATE workouts SET notes = $2 WHERE id = $1`, id, notes)
	if err != nil {
		p.logger.Errorf("failed to update notes for %s: %v", id, err)
		return fmt.Errorf("%w: %v", internal.ErrPersistence, err)
	}
	if tag.RowsAffected() == 0 {
		return internal.ErrNotFound
	}
	return nil
}

func scanWorkout(row pgx.Row) (*internal.Workout, error) {
	var w internal.Workout
	if err := row.Scan(&w.ID, &w.Type, &w.Duration, &w.Calories, &w.Gym, &w.Date, &w.Checklist, &w.Notes); err != nil {
		return nil, err
	}
	return &w, nil
}

// --- Compile-time assertions ---
var _ WorkoutRepository = (*PostgresStorage)(nil)
