package assistant

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/template"

	"github.com/Pranav-Anand04/TerpFit/internal"
)

// Request is everything the prompt is built from.
type Request struct {
	Message string
	History []internal.Workout
	Gym     *internal.Gym
}

var promptTemplate = template.Must(template.New("prompt").Funcs(template.FuncMap{
	"join": strings.Join,
}).Parse(`You are a fitness assistant for TerpFit, a fitness app for University of Maryland students.
The user's message is: "{{.Message}}".

Provide a helpful, fitness-focused response. If they're asking about workouts, consider their workout history: {{.History}}.
{{with .Gym}}
The user is asking about {{.Name}} ({{.Description}}). Hours: {{.Hours}}. Facilities: {{join .Facilities ", "}}.
{{end}}
If they're asking for a specific workout (like a leg workout), format your response as a checklist with the following structure:
` + PlanStart + `
- Exercise 1: sets x reps
- Exercise 2: sets x reps
- Exercise 3: sets x reps
` + PlanEnd + `

Add brief instructions or rest periods between exercises.
If they're just saying hello or thank you, respond naturally as a fitness assistant.
If they're asking about gyms, mention that TerpFit can help them find gyms on campus.

Keep your response concise and focused on fitness.`))

// BuildPrompt renders the single text prompt sent to the model.
func BuildPrompt(req Request) (string, error) {
	history := req.History
	if history == nil {
		history = []internal.Workout{}
	}
	encoded, err := json.Marshal(history)
	if err != nil {
		return "", fmt.Errorf("assistant: encoding history: %w", err)
	}

	var b strings.Builder
	err = promptTemplate.Execute(&b, struct {
		Message string
		History string
		Gym     *internal.Gym
	}{req.Message, string(encoded), req.Gym})
	if err != nil {
		return "", fmt.Errorf("assistant: rendering prompt: %w", err)
	}
	return b.String(), nil
}
