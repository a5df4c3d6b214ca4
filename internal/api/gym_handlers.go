package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Pranav-Anand04/TerpFit/internal"
)

func ListGyms(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		all := app.Gyms().All()
		HandleSuccess(c, app.Logger(), all, map[string]any{"count": len(all)})
	}
}

func GetGym(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		g, ok := app.Gyms().Find(c.Param("name"))
		if !ok {
			HandleError(c, app.Logger(), internal.ErrNotFound, http.StatusNotFound, "Gym "+c.Param("name"))
			return
		}
		HandleSuccess(c, app.Logger(), g, nil)
	}
}
