package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/Pranav-Anand04/TerpFit/internal"
	"github.com/Pranav-Anand04/TerpFit/internal/assistant"
	"github.com/Pranav-Anand04/TerpFit/internal/chat"
	"github.com/Pranav-Anand04/TerpFit/internal/config"
	"github.com/Pranav-Anand04/TerpFit/internal/events"
	"github.com/Pranav-Anand04/TerpFit/internal/gyms"
	"github.com/Pranav-Anand04/TerpFit/internal/service"
	"github.com/Pranav-Anand04/TerpFit/internal/storage"
)

// application holds the wired components and satisfies api.App.
type application struct {
	logger     internal.Logger
	repo       storage.WorkoutRepository
	publisher  events.Publisher
	workouts   *service.WorkoutService
	gyms       *gyms.Catalog
	controller *chat.Controller
	chat       *chat.Manager
}

func newApplication(ctx context.Context, cfg *config.Config, logger internal.Logger) (*application, error) {
	repo, err := storage.NewWorkoutRepository(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to init storage: %w", err)
	}

	catalog, err := gyms.Load(cfg.Gyms)
	if err != nil {
		_ = repo.Close()
		return nil, err
	}

	publisher := events.New(cfg.KafkaBrokers, cfg.KafkaTopic)
	workouts := service.NewWorkoutService(repo, logger,
		service.WithPublisher(publisher),
		service.WithHistoryLimit(cfg.MaxHistory, cfg.EvictionPolicy),
	)

	controller := chat.NewController(workouts, assistant.New(ctx, cfg, logger), catalog, logger)

	return &application{
		logger:     logger,
		repo:       repo,
		publisher:  publisher,
		workouts:   workouts,
		gyms:       catalog,
		controller: controller,
		chat:       chat.NewManager(controller, cfg.ChatSessionTTL, logger),
	}, nil
}

func (a *application) Logger() internal.Logger            { return a.logger }
func (a *application) Workouts() *service.WorkoutService { return a.workouts }
func (a *application) Chat() *chat.Manager               { return a.chat }
func (a *application) Gyms() *gyms.Catalog               { return a.gyms }

func (a *application) Close() error {
	return errors.Join(a.publisher.Close(), a.repo.Close())
}
