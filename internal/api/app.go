package api

import (
	"github.com/Pranav-Anand04/TerpFit/internal"
	"github.com/Pranav-Anand04/TerpFit/internal/chat"
	"github.com/Pranav-Anand04/TerpFit/internal/gyms"
	"github.com/Pranav-Anand04/TerpFit/internal/service"
)

// App is what the handlers need from the running process.
type App interface {
	Logger() internal.Logger
	Workouts() *service.WorkoutService
	Chat() *chat.Manager
	Gyms() *gyms.Catalog
}
