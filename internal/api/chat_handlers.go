package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Pranav-Anand04/TerpFit/internal"
	"github.com/Pranav-Anand04/TerpFit/internal/chat"
)

type messageRequest struct {
	Text string `json:"text" binding:"required"`
}

type gymRequest struct {
	Gym string `json:"gym"`
}

type chatResponse struct {
	Reply   chat.Reply   `json:"reply"`
	Session chat.Session `json:"session"`
}

func replyMeta(r chat.Reply) map[string]any {
	if r.Err == nil {
		return nil
	}
	return map[string]any{"error": r.Err.Error()}
}

func CreateChatSession(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		s := app.Chat().Create()
		HandleStatus(c, app.Logger(), http.StatusCreated, chatResponse{Reply: chat.Reply{Text: chat.Welcome}, Session: s}, nil)
	}
}

func PostChatMessage(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body messageRequest
		if err := c.ShouldBindJSON(&body); err != nil {
			HandleError(c, app.Logger(), err, http.StatusBadRequest, "Invalid JSON")
			return
		}
		reply, s, err := app.Chat().Send(c.Request.Context(), c.Param("id"), body.Text)
		if err != nil {
			HandleError(c, app.Logger(), err, statusFor(err), "Chat session "+c.Param("id"))
			return
		}
		HandleSuccess(c, app.Logger(), chatResponse{Reply: reply, Session: s}, replyMeta(reply))
	}
}

// PostChatLogging starts a logging session, as a map marker's "log workout
// here" action would.
func PostChatLogging(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body gymRequest
		if err := bindOptionalJSON(c, &body); err != nil {
			HandleError(c, app.Logger(), err, http.StatusBadRequest, "Invalid JSON")
			return
		}
		reply, s, err := app.Chat().BeginLogging(c.Param("id"), body.Gym)
		if err != nil {
			HandleError(c, app.Logger(), err, statusFor(err), "Chat session "+c.Param("id"))
			return
		}
		HandleSuccess(c, app.Logger(), chatResponse{Reply: reply, Session: s}, nil)
	}
}

func PostChatGym(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body gymRequest
		if err := bindOptionalJSON(c, &body); err != nil {
			HandleError(c, app.Logger(), err, http.StatusBadRequest, "Invalid JSON")
			return
		}
		reply, s, err := app.Chat().BeginGymAssistance(c.Param("id"), body.Gym)
		if err != nil {
			HandleError(c, app.Logger(), err, statusFor(err), "Chat session "+c.Param("id"))
			return
		}
		HandleSuccess(c, app.Logger(), chatResponse{Reply: reply, Session: s}, nil)
	}
}

func DeleteChatSession(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		if !app.Chat().Delete(id) {
			HandleError(c, app.Logger(), internal.ErrNotFound, http.StatusNotFound, "Chat session "+id)
			return
		}
		HandleSuccess(c, app.Logger(), nil, map[string]any{"deleted": id})
	}
}

func bindOptionalJSON(c *gin.Context, v any) error {
	if err := c.ShouldBindJSON(v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
