package service

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidationError reports a rejected field value. It never carries a partial
// value: callers keep whatever they had before.
type ValidationError struct {
	Field  string
	Input  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Input, e.Reason)
}

// ParsePositiveInt reads a leading integer the way a person types one into a
// chat box ("45", " 45 minutes", "+30") and requires it to be > 0.
func ParsePositiveInt(field, input string) (int, error) {
	s := strings.TrimLeftFunc(input, unicode.IsSpace)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digitsStart := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digitsStart {
		return 0, &ValidationError{Field: field, Input: input, Reason: "not a number"}
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, &ValidationError{Field: field, Input: input, Reason: "out of range"}
	}
	if n <= 0 {
		return 0, &ValidationError{Field: field, Input: input, Reason: "must be greater than zero"}
	}
	return n, nil
}

type CreateWorkoutRequest struct {
	Type      string     `json:"type" validate:"required"`
	Duration  int        `json:"duration" validate:"required,gt=0"`
	Calories  int        `json:"calories" validate:"required,gt=0"`
	Gym       string     `json:"gym,omitempty"`
	Date      *time.Time `json:"date,omitempty"`
	Checklist []string   `json:"checklist,omitempty" validate:"dive,required"`
	Notes     string     `json:"notes,omitempty" validate:"max=4000"`
}

func ValidateCreateWorkoutRequest(req *CreateWorkoutRequest) error {
	req.Type = strings.TrimSpace(req.Type)
	return validate.Struct(req)
}

// Input converts a validated request into store input.
func (r *CreateWorkoutRequest) Input() WorkoutInput {
	in := WorkoutInput{
		Type:      r.Type,
		Duration:  r.Duration,
		Calories:  r.Calories,
		Gym:       r.Gym,
		Checklist: r.Checklist,
		Notes:     r.Notes,
	}
	if r.Date != nil {
		in.Date = *r.Date
	}
	return in
}

type NotesRequest struct {
	Notes string `json:"notes" validate:"max=4000"`
}

func ValidateNotesRequest(req *NotesRequest) error {
	return validate.Struct(req)
}

// ParseDateBound accepts RFC 3339 or a bare YYYY-MM-DD in local time. A bare
// date used as an upper bound covers the whole day. Empty input is the zero
// time, which filters treat as unbounded.
func ParseDateBound(value string, endOfDay bool) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation(time.DateOnly, value, time.Local)
	if err != nil {
		return time.Time{}, &ValidationError{Field: "date", Input: value, Reason: "want YYYY-MM-DD or RFC 3339"}
	}
	if endOfDay {
		t = t.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}
	return t, nil
}
