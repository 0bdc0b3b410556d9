package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"travelchat/internal/conversation"
)

const (
	statusLogSize  = 50
	inputCharLimit = 2000
)

type model struct {
	cfg     appConfig
	session *conversation.Controller
	changes chan struct{}

	snapshot    conversation.Snapshot
	renderedLen int
	buttonFocus int
	showHelp    bool
	statusLine  string
	failed      bool
	logs        []string

	width  int
	height int

	input      textinput.Model
	transcript viewport.Model
	spinner    spinner.Model

	theme uiTheme
}

// sessionChangedMsg is delivered whenever the controller reports a change.
// Several changes may coalesce into one message; the model always reads the
// latest snapshot.
type sessionChangedMsg struct{}

type turnDoneMsg struct {
	turnID  string
	kind    conversation.TurnKind
	outcome conversation.Outcome
}

func newModel(cfg appConfig, session *conversation.Controller) model {
	input := textinput.New()
	input.Prompt = "❯ "
	input.CharLimit = inputCharLimit
	input.Placeholder = "Type a message..."
	input.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Points
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffd166"))

	transcript := viewport.New(0, 0)
	transcript.MouseWheelEnabled = true
	transcript.MouseWheelDelta = 3

	changes := make(chan struct{}, 1)
	session.Subscribe(conversation.ObserverFunc(func(conversation.Snapshot) {
		select {
		case changes <- struct{}{}:
		default:
		}
	}))

	return model{
		cfg:         cfg,
		session:     session,
		changes:     changes,
		snapshot:    session.Snapshot(),
		buttonFocus: -1,
		statusLine:  "connected to " + cfg.serverURL,
		logs:        []string{},
		input:       input,
		transcript:  transcript,
		spinner:     sp,
		theme:       newTheme(),
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		textinput.Blink,
		waitSessionMsg(m.changes),
	)
}

func waitSessionMsg(ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return sessionChangedMsg{}
	}
}

func runTurnCmd(turn *conversation.Turn) tea.Cmd {
	return func() tea.Msg {
		outcome := turn.Run(context.Background())
		return turnDoneMsg{turnID: turn.ID(), kind: turn.Kind(), outcome: outcome}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
	case sessionChangedMsg:
		if cmd := m.syncSession(); cmd != nil {
			cmds = append(cmds, cmd)
		}
		cmds = append(cmds, waitSessionMsg(m.changes))
	case turnDoneMsg:
		if cmd := m.syncSession(); cmd != nil {
			cmds = append(cmds, cmd)
		}
		m.recordOutcome(msg)
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
	case tea.MouseMsg:
		var cmd tea.Cmd
		m.transcript, cmd = m.transcript.Update(msg)
		cmds = append(cmds, cmd)
	case tea.KeyMsg:
		if cmd, handled := m.handleKey(msg); handled {
			return m, cmd
		}
		if !m.snapshot.AwaitingReply {
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			cmds = append(cmds, cmd)
		}
	}
	return m, tea.Batch(cmds...)
}

func (m *model) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch msg.String() {
	case "ctrl+c":
		return tea.Quit, true
	case "pgup", "pgdown":
		var cmd tea.Cmd
		m.transcript, cmd = m.transcript.Update(msg)
		return cmd, true
	case "tab":
		m.moveButtonFocus(1)
		return nil, true
	case "shift+tab":
		m.moveButtonFocus(-1)
		return nil, true
	case "esc":
		switch {
		case m.buttonFocus >= 0:
			m.buttonFocus = -1
			m.renderTranscript()
		case m.showHelp:
			m.showHelp = false
		}
		return nil, true
	case "enter":
		return m.submit(), true
	}
	return nil, false
}

func (m *model) submit() tea.Cmd {
	if m.snapshot.AwaitingReply {
		return nil
	}
	raw := m.input.Value()
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		buttons := activeButtons(m.snapshot)
		if m.buttonFocus >= 0 && m.buttonFocus < len(buttons) {
			b := buttons[m.buttonFocus]
			return m.onButtonClick(b.Label, b.Payload)
		}
		return nil
	}
	switch strings.ToLower(trimmed) {
	case "/quit", "/exit":
		return tea.Quit
	case "/help":
		m.showHelp = !m.showHelp
		m.input.Reset()
		return nil
	}
	return m.onSubmitTyped(raw)
}

// onSubmitTyped sends typed text. Blank text leaves the draft untouched.
func (m *model) onSubmitTyped(text string) tea.Cmd {
	turn := m.session.BeginTyped(text)
	if turn == nil {
		return nil
	}
	m.input.Reset()
	m.appendLog("sent: " + compactSingleLine(turn.Message(), 80))
	return m.startTurn(turn)
}

// onButtonClick sends payload and shows label as the user's message.
func (m *model) onButtonClick(label, payload string) tea.Cmd {
	turn := m.session.BeginButton(label, payload)
	if turn == nil {
		return nil
	}
	m.appendLog(fmt.Sprintf("chose %q -> %s", label, payload))
	return m.startTurn(turn)
}

func (m *model) startTurn(turn *conversation.Turn) tea.Cmd {
	m.buttonFocus = -1
	m.showHelp = false
	m.failed = false
	m.statusLine = "waiting for reply..."
	cmd := m.syncSession()
	return tea.Batch(cmd, runTurnCmd(turn))
}

// syncSession pulls the latest snapshot, toggles the input and scrolls to
// the newest entry when the log grew.
func (m *model) syncSession() tea.Cmd {
	m.snapshot = m.session.Snapshot()
	var cmd tea.Cmd
	if m.snapshot.AwaitingReply {
		m.input.Blur()
	} else if !m.input.Focused() {
		cmd = m.input.Focus()
	}
	if n := len(activeButtons(m.snapshot)); m.buttonFocus >= n {
		m.buttonFocus = -1
	}
	if len(m.snapshot.Entries) != m.renderedLen {
		m.renderTranscript()
		m.transcript.GotoBottom()
	}
	return cmd
}

func (m *model) recordOutcome(msg turnDoneMsg) {
	switch msg.outcome {
	case conversation.OutcomeReply:
		m.statusLine = "reply received"
	case conversation.OutcomeEmpty:
		m.statusLine = "no confident reply"
	default:
		m.failed = true
		m.statusLine = "connection failed, try again"
	}
	m.appendLog(fmt.Sprintf("turn %s (%s): %s", shortID(msg.turnID), msg.kind, msg.outcome))
}

func (m *model) moveButtonFocus(delta int) {
	if m.snapshot.AwaitingReply {
		return
	}
	n := len(activeButtons(m.snapshot))
	if n == 0 {
		m.buttonFocus = -1
		return
	}
	switch {
	case m.buttonFocus < 0 && delta > 0:
		m.buttonFocus = 0
	case m.buttonFocus < 0:
		m.buttonFocus = n - 1
	default:
		m.buttonFocus = (m.buttonFocus + delta + n) % n
	}
	m.renderTranscript()
}

// activeButtonGroup returns the index of the newest button group in the
// latest reply, or -1. Groups from earlier turns are shown but inert.
func activeButtonGroup(snap conversation.Snapshot) int {
	if snap.AwaitingReply {
		return -1
	}
	for i := len(snap.Entries) - 1; i >= 0; i-- {
		e := snap.Entries[i]
		if e.Origin == conversation.OriginUser {
			return -1
		}
		if e.Kind == conversation.KindButtonGroup {
			return i
		}
	}
	return -1
}

func activeButtons(snap conversation.Snapshot) []conversation.Button {
	idx := activeButtonGroup(snap)
	if idx < 0 {
		return nil
	}
	return snap.Entries[idx].Buttons
}

func (m *model) resize() {
	contentWidth := maxInt(40, m.width-4)
	m.input.Width = maxInt(20, contentWidth-6)
	m.transcript.Width = maxInt(20, contentWidth-4)
	m.transcript.Height = transcriptHeight(m.height)
	m.renderTranscript()
	m.transcript.GotoBottom()
}

// transcriptHeight leaves room for header (3), typing line (1), input (3),
// footer (4) and the transcript panel's own border and title (3).
func transcriptHeight(height int) int {
	return maxInt(4, height-14)
}

func (m *model) appendLog(line string) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return
	}
	m.logs = append(m.logs, fmt.Sprintf("%s %s", time.Now().Format("15:04:05"), compactSingleLine(trimmed, 160)))
	if len(m.logs) > statusLogSize {
		m.logs = m.logs[len(m.logs)-statusLogSize:]
	}
}

func shortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[len(id)-8:]
}
