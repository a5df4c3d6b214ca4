// Package tui is the terminal chat window.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/Pranav-Anand04/TerpFit/internal/chat"
)

type role int

const (
	roleUser role = iota
	roleBot
)

type message struct {
	role role
	text string
	err  bool
}

// replyMsg carries a controller reply back into the update loop.
type replyMsg struct {
	reply chat.Reply
}

type Model struct {
	ctx        context.Context
	controller *chat.Controller
	session    *chat.Session

	messages []message
	// queued holds input typed while a reply is pending; it is sent in order.
	queued  []string
	waiting bool
	// state and staged mirror the session between replies so View never
	// reads it while a dispatch is running.
	state  chat.State
	staged int

	input    textinput.Model
	viewport viewport.Model
	spinner  spinner.Model
	renderer *glamour.TermRenderer

	width  int
	height int
}

func NewModel(ctx context.Context, controller *chat.Controller, session *chat.Session) Model {
	ti := textinput.New()
	ti.Placeholder = "Ask about workouts, say \"log workout\", or /help"
	ti.Prompt = "| "
	ti.CharLimit = 2000
	ti.Width = 80
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	vp := viewport.New(80, 20)

	renderer, _ := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(78),
	)

	m := Model{
		ctx:        ctx,
		controller: controller,
		session:    session,
		messages:   []message{{role: roleBot, text: chat.Welcome}},
		input:      ti,
		viewport:   vp,
		spinner:    sp,
		renderer:   renderer,
		state:      session.State,
		staged:     len(session.PendingChecklist),
		width:      80,
		height:     24,
	}
	m.refresh()
	return m
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = msg.Width
		m.viewport.Height = max(3, msg.Height-4)
		m.input.Width = max(10, msg.Width-4)
		m.refresh()
		return m, nil

	case replyMsg:
		m.waiting = false
		m.state = m.session.State
		m.staged = len(m.session.PendingChecklist)
		m.addReply(msg.reply)
		if len(m.queued) > 0 {
			next := m.queued[0]
			m.queued = m.queued[1:]
			return m, m.dispatch(next)
		}
		return m, nil

	case spinner.TickMsg:
		if !m.waiting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			text := strings.TrimSpace(m.input.Value())
			m.input.Reset()
			if text == "" {
				return m, nil
			}
			if text == "/quit" || text == "/exit" {
				return m, tea.Quit
			}
			m.messages = append(m.messages, message{role: roleUser, text: text})
			m.refresh()
			if m.waiting {
				m.queued = append(m.queued, text)
				return m, nil
			}
			return m, m.dispatch(text)
		case tea.KeyPgUp, tea.KeyPgDown:
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// dispatch runs one input against the controller off the update loop. Only
// one runs at a time, so the session is never touched concurrently.
func (m *Model) dispatch(text string) tea.Cmd {
	if local, ok := m.slashCommand(text); ok {
		return func() tea.Msg { return replyMsg{reply: local} }
	}
	m.waiting = true
	ctx, ctl, s := m.ctx, m.controller, m.session
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		return replyMsg{reply: ctl.HandleMessage(ctx, s, text)}
	})
}

// slashCommand handles the entry points a map marker would trigger.
func (m *Model) slashCommand(text string) (chat.Reply, bool) {
	if !strings.HasPrefix(text, "/") {
		return chat.Reply{}, false
	}
	cmd, arg, _ := strings.Cut(strings.TrimPrefix(text, "/"), " ")
	arg = strings.TrimSpace(arg)
	switch cmd {
	case "log":
		return m.controller.BeginLogging(m.session, arg), true
	case "gym":
		return m.controller.BeginGymAssistance(m.session, arg), true
	case "help":
		return chat.Reply{Text: "Commands: `/log [gym]` starts logging, `/gym [name]` asks about a gym, `cancel` stops logging, `/quit` exits."}, true
	}
	return chat.Reply{}, false
}

func (m *Model) addReply(r chat.Reply) {
	if r.Text == "" {
		return
	}
	m.messages = append(m.messages, message{role: roleBot, text: r.Text, err: r.Err != nil && r.Workout == nil && len(r.Checklist) == 0})
	m.refresh()
}

func (m *Model) refresh() {
	var b strings.Builder
	for _, msg := range m.messages {
		switch msg.role {
		case roleUser:
			b.WriteString(userStyle.Render("You") + "\n" + msg.text + "\n\n")
		case roleBot:
			b.WriteString(botStyle.Render("TerpFit") + "\n" + m.renderBot(msg) + "\n\n")
		}
	}
	m.viewport.SetContent(b.String())
	m.viewport.GotoBottom()
}

func (m *Model) renderBot(msg message) string {
	if msg.err {
		return errorStyle.Render(msg.text)
	}
	if m.renderer == nil {
		return msg.text
	}
	out, err := m.renderer.Render(msg.text)
	if err != nil {
		return msg.text
	}
	return strings.TrimSpace(out)
}

func (m Model) View() string {
	status := fmt.Sprintf("state: %s", m.state)
	if m.staged > 0 {
		status += fmt.Sprintf(" | plan staged: %d items", m.staged)
	}
	if m.waiting {
		status += " | " + m.spinner.View() + " thinking"
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("TerpFit"),
		m.viewport.View(),
		m.input.View(),
		statusBarStyle.Render(status)+" "+helpStyle.Render("enter send, esc quit"),
	)
}

// Run starts the full-screen chat.
func Run(ctx context.Context, controller *chat.Controller, session *chat.Session) error {
	p := tea.NewProgram(NewModel(ctx, controller, session), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
