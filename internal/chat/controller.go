package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Pranav-Anand04/TerpFit/internal"
	"github.com/Pranav-Anand04/TerpFit/internal/assistant"
	"github.com/Pranav-Anand04/TerpFit/internal/service"
)

const (
	Welcome = "Hello! I'm your TerpFit assistant. I can help you log workouts, find gyms, and provide workout recommendations. How can I assist you today?"

	promptType             = "What is the name of the workout you did? (e.g., Basketball, Chest, Cardio, Yoga)"
	promptDuration         = "Great! How long did you workout for? (in minutes)"
	promptCalories         = "How many calories did you burn?"
	promptInvalidDuration  = "Please enter a valid duration in minutes."
	promptInvalidCalories  = "Please enter a valid number of calories."
	replyCancelled         = "Okay, I've stopped logging that workout."
	replyAssistantFailure  = "I'm having trouble connecting to my AI brain right now. Please try again in a moment. Error: %s"
	replySaveFailure       = "I couldn't save your workout right now (%s). Send the calories again to retry, or say cancel."
	replyChecklistAttached = " I've also attached the workout checklist to your log."
)

// Store is the part of the workout store the controller needs.
type Store interface {
	Create(ctx context.Context, in service.WorkoutInput) (*internal.Workout, error)
	ListAll(ctx context.Context) []internal.Workout
}

type Assistant interface {
	Ask(ctx context.Context, req assistant.Request) (string, error)
}

type GymFinder interface {
	Find(name string) (internal.Gym, bool)
	Match(text string) (internal.Gym, bool)
	All() []internal.Gym
}

// Reply is what the controller says back for one input.
type Reply struct {
	Text string `json:"text"`
	// Checklist is set when the reply staged a new workout plan.
	Checklist []string `json:"checklist,omitempty"`
	// Workout is set when the input completed a logging session.
	Workout *internal.Workout `json:"workout,omitempty"`
	Err     error             `json:"-"`
}

type Controller struct {
	store     Store
	assistant Assistant
	gyms      GymFinder
	logger    internal.Logger
	now       func() time.Time
}

func NewController(store Store, asst Assistant, gyms GymFinder, logger internal.Logger) *Controller {
	return &Controller{store: store, assistant: asst, gyms: gyms, logger: logger, now: time.Now}
}

type command int

const (
	cmdNone command = iota
	cmdLog
	cmdGym
	cmdCancel
)

func classify(text string) command {
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "log workout"), strings.Contains(lower, "record workout"):
		return cmdLog
	case strings.Contains(lower, "find gym"), strings.Contains(lower, "locate gym"):
		return cmdGym
	case strings.TrimSpace(lower) == "cancel":
		return cmdCancel
	}
	return cmdNone
}

// HandleMessage advances s by one user message.
func (c *Controller) HandleMessage(ctx context.Context, s *Session, text string) Reply {
	text = strings.TrimSpace(text)
	if text == "" {
		return Reply{}
	}
	s.LastActive = c.now()

	switch classify(text) {
	case cmdLog:
		return c.BeginLogging(s, c.gymIn(text))
	case cmdGym:
		return c.BeginGymAssistance(s, c.gymIn(text))
	case cmdCancel:
		if s.Logging() {
			s.reset()
			return Reply{Text: replyCancelled}
		}
	}

	switch s.State {
	case CollectingType:
		s.Draft.Type = text
		s.State = CollectingDuration
		return Reply{Text: promptDuration}
	case CollectingDuration:
		n, err := service.ParsePositiveInt("duration", text)
		if err != nil {
			return Reply{Text: promptInvalidDuration, Err: err}
		}
		s.Draft.Duration = n
		s.State = CollectingCalories
		return Reply{Text: promptCalories}
	case CollectingCalories:
		n, err := service.ParsePositiveInt("calories", text)
		if err != nil {
			return Reply{Text: promptInvalidCalories, Err: err}
		}
		return c.complete(ctx, s, n)
	}

	return c.ask(ctx, s, text)
}

// BeginLogging starts a new logging session, dropping any draft in progress.
func (c *Controller) BeginLogging(s *Session, gym string) Reply {
	if g, ok := c.gyms.Find(gym); ok {
		gym = g.Name
	}
	s.State = CollectingType
	s.Draft = Draft{Gym: strings.TrimSpace(gym), Date: c.now()}
	s.GymContext = ""
	s.LastActive = s.Draft.Date
	return Reply{Text: promptType}
}

// BeginGymAssistance leaves any logging session and tags later questions with
// the gym.
func (c *Controller) BeginGymAssistance(s *Session, gym string) Reply {
	s.reset()
	s.LastActive = c.now()
	gym = strings.TrimSpace(gym)
	if g, ok := c.gyms.Find(gym); ok {
		gym = g.Name
	}
	s.GymContext = gym
	if gym == "" {
		names := make([]string, 0, 4)
		for _, g := range c.gyms.All() {
			names = append(names, g.Name)
		}
		return Reply{Text: "I can help you find a gym on campus: " + strings.Join(names, ", ") + ". Which one would you like to know about?"}
	}
	return Reply{Text: fmt.Sprintf("I can help you with information about %s. What would you like to know?", gym)}
}

func (c *Controller) gymIn(text string) string {
	if g, ok := c.gyms.Match(text); ok {
		return g.Name
	}
	return ""
}

func (c *Controller) complete(ctx context.Context, s *Session, calories int) Reply {
	in := service.WorkoutInput{
		Type:      s.Draft.Type,
		Duration:  s.Draft.Duration,
		Calories:  calories,
		Gym:       s.Draft.Gym,
		Date:      s.Draft.Date,
		Checklist: s.PendingChecklist,
	}
	w, err := c.store.Create(ctx, in)
	if err != nil {
		c.logger.Errorf("chat: session %s: saving workout failed: %v", s.ID, err)
		return Reply{Text: fmt.Sprintf(replySaveFailure, err), Err: err}
	}

	s.PendingChecklist = nil
	s.reset()

	msg := fmt.Sprintf("Great! I've logged your %s workout. You worked out for %d minutes and burned %d calories.", w.Type, w.Duration, w.Calories)
	if len(w.Checklist) > 0 {
		msg += replyChecklistAttached
	}
	return Reply{Text: msg, Workout: w}
}

func (c *Controller) ask(ctx context.Context, s *Session, text string) Reply {
	req := assistant.Request{Message: text, History: c.store.ListAll(ctx)}
	if s.GymContext != "" {
		if g, ok := c.gyms.Find(s.GymContext); ok {
			req.Gym = &g
		} else {
			req.Gym = &internal.Gym{Name: s.GymContext}
		}
	}

	reply, err := c.assistant.Ask(ctx, req)
	if err != nil {
		if !errors.Is(err, internal.ErrAssistantUnavailable) {
			err = fmt.Errorf("%w: %w", internal.ErrAssistantUnavailable, err)
		}
		c.logger.Warnf("chat: session %s: assistant failed: %v", s.ID, err)
		return Reply{Text: fmt.Sprintf(replyAssistantFailure, err), Err: err}
	}

	plan, ok := assistant.ExtractPlan(reply)
	if !ok {
		return Reply{Text: reply}
	}
	// A newer plan always replaces the staged one, even when it has no items.
	s.PendingChecklist = nil
	out := Reply{Text: plan.Text}
	if len(plan.Items) > 0 {
		s.PendingChecklist = plan.Items
		out.Checklist = append([]string(nil), plan.Items...)
	}
	return out
}
