package storage

import (
	"fmt"

	"github.com/Pranav-Anand04/TerpFit/internal"
	"github.com/Pranav-Anand04/TerpFit/internal/config"
)

// NewWorkoutRepository opens the backend selected by cfg.DBType.
func NewWorkoutRepository(cfg *config.Config, logger internal.Logger) (WorkoutRepository, error) {
	switch cfg.DBType {
	case "file":
		return NewFileStorage(cfg.FileWorkouts, logger)
	case "sqlite":
		return NewSQLiteStorage(cfg.SQLitePath, logger)
	case "postgres":
		return NewPostgresStorage(cfg.DBDSN, logger)
	case "memory":
		return NewMemoryStorage(), nil
	default:
		return nil, fmt.Errorf("storage: unknown backend %q", cfg.DBType)
	}
}
