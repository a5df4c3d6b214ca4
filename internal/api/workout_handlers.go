package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Pranav-Anand04/TerpFit/internal"
	"github.com/Pranav-Anand04/TerpFit/internal/service"
)

func PostWorkout(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body service.CreateWorkoutRequest
		if err := c.ShouldBindJSON(&body); err != nil {
			HandleError(c, app.Logger(), err, http.StatusBadRequest, "Invalid JSON")
			return
		}
		if err := service.ValidateCreateWorkoutRequest(&body); err != nil {
			HandleError(c, app.Logger(), err, http.StatusBadRequest, "Validation failed")
			return
		}

		w, err := app.Workouts().Create(c.Request.Context(), body.Input())
		if err != nil {
			HandleError(c, app.Logger(), err, statusFor(err), "Failed to save workout")
			return
		}
		HandleStatus(c, app.Logger(), http.StatusCreated, w, nil)
	}
}

// ListWorkouts supports ?type=, ?gym=, ?from=, ?to= and ?order=newest.
func ListWorkouts(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		from, err := service.ParseDateBound(c.Query("from"), false)
		if err != nil {
			HandleError(c, app.Logger(), err, http.StatusBadRequest, "Invalid from")
			return
		}
		to, err := service.ParseDateBound(c.Query("to"), true)
		if err != nil {
			HandleError(c, app.Logger(), err, http.StatusBadRequest, "Invalid to")
			return
		}

		ctx := c.Request.Context()
		filter := service.Filter{Type: c.Query("type"), Gym: c.Query("gym"), From: from, To: to}

		var workouts []internal.Workout
		switch c.DefaultQuery("order", "stored") {
		case "newest":
			all := app.Workouts().ListNewestFirst(ctx)
			workouts = make([]internal.Workout, 0, len(all))
			for _, w := range all {
				if filter.Match(w) {
					workouts = append(workouts, w)
				}
			}
		case "stored":
			workouts = app.Workouts().Filter(ctx, filter)
		default:
			HandleError(c, app.Logger(), fmt.Errorf("unknown order %q", c.Query("order")), http.StatusBadRequest, "Invalid order")
			return
		}
		HandleSuccess(c, app.Logger(), workouts, map[string]any{"count": len(workouts)})
	}
}

func GetWorkout(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		w, err := app.Workouts().GetByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			HandleError(c, app.Logger(), err, statusFor(err), "Failed to fetch workout")
			return
		}
		HandleSuccess(c, app.Logger(), w, nil)
	}
}

func DeleteWorkout(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		removed, err := app.Workouts().DeleteByID(c.Request.Context(), id)
		if err != nil {
			HandleError(c, app.Logger(), err, http.StatusInternalServerError, "Failed to delete workout")
			return
		}
		if !removed {
			HandleError(c, app.Logger(), internal.ErrNotFound, http.StatusNotFound, "Workout "+id)
			return
		}
		HandleSuccess(c, app.Logger(), nil, map[string]any{"deleted": id})
	}
}

func PutWorkoutNotes(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body service.NotesRequest
		if err := c.ShouldBindJSON(&body); err != nil {
			HandleError(c, app.Logger(), err, http.StatusBadRequest, "Invalid JSON")
			return
		}
		if err := service.ValidateNotesRequest(&body); err != nil {
			HandleError(c, app.Logger(), err, http.StatusBadRequest, "Validation failed")
			return
		}
		w, err := app.Workouts().UpdateNotes(c.Request.Context(), c.Param("id"), body.Notes)
		if err != nil {
			HandleError(c, app.Logger(), err, statusFor(err), "Failed to update notes")
			return
		}
		HandleSuccess(c, app.Logger(), w, nil)
	}
}

func GetWorkoutStats(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		HandleSuccess(c, app.Logger(), app.Workouts().ComputeStats(c.Request.Context()), nil)
	}
}

func GetWorkoutStreak(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		streak := app.Workouts().ComputeStreak(c.Request.Context())
		HandleSuccess(c, app.Logger(), nil, map[string]any{"streak": streak})
	}
}
