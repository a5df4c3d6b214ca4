// Package chat is the conversation controller: it turns chat messages into
// logged workouts or assistant questions.
package chat

import "time"

type State int

const (
	Idle State = iota
	CollectingType
	CollectingDuration
	CollectingCalories
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case CollectingType:
		return "collecting-type"
	case CollectingDuration:
		return "collecting-duration"
	case CollectingCalories:
		return "collecting-calories"
	default:
		return "unknown"
	}
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Draft holds the fields collected so far. Date is stamped when logging
// starts.
type Draft struct {
	Type     string    `json:"type,omitempty"`
	Duration int       `json:"duration,omitempty"`
	Calories int       `json:"calories,omitempty"`
	Gym      string    `json:"gym,omitempty"`
	Date     time.Time `json:"date"`
}

// Session is one conversation. It is not safe for concurrent use; the Manager
// serializes access when sessions are shared.
type Session struct {
	ID    string `json:"id"`
	State State  `json:"state"`
	Draft Draft  `json:"draft"`
	// PendingChecklist is staged by an assistant plan and consumed by the next
	// completed logging session.
	PendingChecklist []string `json:"pending_checklist,omitempty"`
	// GymContext tags free text with a gym until logging starts or another
	// gym is picked.
	GymContext string    `json:"gym_context,omitempty"`
	LastActive time.Time `json:"last_active"`
}

func NewSession(id string) *Session {
	return &Session{ID: id, State: Idle}
}

// Logging reports whether a workout is being collected.
func (s *Session) Logging() bool { return s.State != Idle }

func (s *Session) reset() {
	s.State = Idle
	s.Draft = Draft{}
}

// snapshot copies s so it can leave the owner's lock.
func (s *Session) snapshot() Session {
	c := *s
	if s.PendingChecklist != nil {
		c.PendingChecklist = append([]string(nil), s.PendingChecklist...)
	}
	return c
}
