package assistant

import (
	"strings"
)

const (
	PlanStart = "WORKOUT_PLAN"
	PlanEnd   = "END_WORKOUT_PLAN"
)

var bullets = []string{"-", "*", "•"}

// Plan is a workout checklist lifted out of an assistant reply.
type Plan struct {
	Items []string
	// Text is the reply with the markers removed and the bullet lines
	// replaced by a markdown task list.
	Text string
}

// ExtractPlan looks for a block delimited by PlanStart and PlanEnd. When either
// marker is missing it returns the reply unchanged and false.
func ExtractPlan(reply string) (Plan, bool) {
	end := strings.Index(reply, PlanEnd)
	if end < 0 {
		return Plan{Text: reply}, false
	}
	// PlanEnd contains PlanStart, so only look before it.
	start := strings.Index(reply[:end], PlanStart)
	if start < 0 {
		return Plan{Text: reply}, false
	}

	items := ParseChecklist(reply[start+len(PlanStart) : end])

	var b strings.Builder
	if before := strings.TrimSpace(reply[:start]); before != "" {
		b.WriteString(before)
		b.WriteString("\n\n")
	}
	b.WriteString(RenderChecklist(items))
	if after := strings.TrimSpace(reply[end+len(PlanEnd):]); after != "" {
		b.WriteString("\n\n")
		b.WriteString(after)
	}
	return Plan{Items: items, Text: b.String()}, true
}

// ParseChecklist keeps bulleted lines, stripped of the bullet.
func ParseChecklist(block string) []string {
	var items []string
	for _, line := range strings.Split(block, "\n") {
		line = strings.TrimSpace(line)
		for _, bullet := range bullets {
			if strings.HasPrefix(line, bullet) {
				if item := strings.TrimSpace(strings.TrimPrefix(line, bullet)); item != "" {
					items = append(items, item)
				}
				break
			}
		}
	}
	return items
}

func RenderChecklist(items []string) string {
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = "- [ ] " + item
	}
	return strings.Join(lines, "\n")
}
