package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/jwebster45206/adventure-console/internal/config"
	"github.com/jwebster45206/adventure-console/internal/game"
	"github.com/jwebster45206/adventure-console/pkg/command"
	"github.com/jwebster45206/adventure-console/pkg/state"
	"github.com/muesli/reflow/wordwrap"
)

const (
	PlaceHolderText = "What do you do? (/help for commands)"
)

type entryKind int

const (
	entryOutput entryKind = iota
	entryInput
	entryNotice
)

type entry struct {
	kind entryKind
	text string
}

// ConsoleUI is the BubbleTea model for the full-screen mode.
// https://github.com/charmbracelet/bubbletea
//
// The game is only touched from tea.Cmd goroutines, one at a time, while
// loading is set. The view reads the snapshot carried back in the result.
type ConsoleUI struct {
	ctx          context.Context
	game         *game.Game
	config       *config.Config
	chatViewport viewport.Model
	metaViewport viewport.Model
	textarea     textarea.Model
	spinner      spinner.Model
	ready        bool
	width        int
	height       int

	// pending names the server request behind loading. Local commands leave
	// it empty.
	loading bool
	pending string

	transcript []entry
	snapshot   state.Snapshot

	showQuitModal bool

	copyToClipboard func(string) error
}

// outcomeMsg carries the result of one exchange with the game.
type outcomeMsg struct {
	output   string
	exit     bool
	snapshot state.Snapshot
}

type clipboardMsg struct {
	id  string
	err error
}

var (
	transcriptPanel = lipgloss.NewStyle().Padding(1, 1, 1, 3)
	sidePanel       = lipgloss.NewStyle().Padding(1, 2, 0, 1)

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")). // pink
			Bold(true)
	echoStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))  // teal
	noticeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214")) // yellow
	hintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")) // dark grey

	dialogStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2).
			Width(52)
)

// layout splits the terminal into the transcript column and the side panel.
func layout(width int) (chat, side int) {
	chat = width * 3 / 4
	side = width - chat
	return chat, side
}

func NewConsoleUI(ctx context.Context, g *game.Game, cfg *config.Config) ConsoleUI {
	ta := textarea.New()
	ta.Placeholder = PlaceHolderText
	ta.Focus()
	ta.Prompt = hintStyle.Render("> ")
	ta.CharLimit = 500
	ta.SetWidth(50)
	ta.SetHeight(1)
	ta.ShowLineNumbers = false

	chatVp := viewport.New(50, 20)
	chatVp.MouseWheelEnabled = true

	return ConsoleUI{
		ctx:             ctx,
		game:            g,
		config:          cfg,
		textarea:        ta,
		chatViewport:    chatVp,
		metaViewport:    viewport.New(20, 20),
		spinner:         spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(noticeStyle)),
		loading:         true,
		pending:         "Loading the first screen",
		copyToClipboard: clipboard.WriteAll,
	}
}

func writeMetadata(snap state.Snapshot) string {
	var content strings.Builder
	content.WriteString(headerStyle.Render("SESSION") + "\n\n")

	content.WriteString("Screen:\n")
	switch {
	case snap.ScreenID == "":
		content.WriteString("(none)\n\n")
	case len(snap.ScreenID) > 8:
		content.WriteString(snap.ScreenID[:8] + "...\n\n")
	default:
		content.WriteString(snap.ScreenID + "\n\n")
	}

	content.WriteString("Inventory:\n")
	if len(snap.Inventory) == 0 {
		content.WriteString("Empty\n")
	} else {
		for _, item := range snap.Inventory {
			content.WriteString(fmt.Sprintf("• %s\n", item))
		}
	}

	content.WriteString("\n")
	content.WriteString("Commands:\n")
	for _, e := range command.Table {
		content.WriteString("• " + e.Name + "\n")
	}
	content.WriteString("• Ctrl+Y: Copy screen id\n")
	content.WriteString("• Ctrl+C: Quit\n")

	return content.String()
}

// writeChatContent rebuilds the transcript for the current viewport width.
func (m *ConsoleUI) writeChatContent() {
	chatWidth := m.chatViewport.Width
	if w := m.config.WrapWidth; w > 0 && w < chatWidth {
		chatWidth = w
	}
	if chatWidth < 10 {
		chatWidth = 10
	}

	var content strings.Builder
	content.WriteString(headerStyle.Render("ADVENTURE") + "\n\n")

	for _, e := range m.transcript {
		switch e.kind {
		case entryInput:
			content.WriteString(echoStyle.Render("> "+wordwrap.String(e.text, chatWidth-2)) + "\n")
		case entryNotice:
			content.WriteString(noticeStyle.Render(wordwrap.String(e.text, chatWidth)) + "\n")
		default:
			content.WriteString(wordwrap.String(e.text, chatWidth) + "\n")
		}
	}

	m.chatViewport.SetContent(content.String())
	m.chatViewport.GotoBottom()
}

func (m ConsoleUI) Init() tea.Cmd {
	return tea.Batch(m.startGame(), m.spinner.Tick, textarea.Blink)
}

func (m ConsoleUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.showQuitModal {
		return m.updateQuitModal(msg)
	}

	var (
		tiCmd tea.Cmd
		vpCmd tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.MouseMsg:
		m.chatViewport, vpCmd = m.chatViewport.Update(msg)
		return m, vpCmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		chat, side := layout(m.width)
		// Status line, rule and input sit under the transcript.
		m.chatViewport.Width = chat - transcriptPanel.GetHorizontalFrameSize()
		m.chatViewport.Height = max(m.height-transcriptPanel.GetVerticalFrameSize()-3, 1)
		m.metaViewport.Width = side - sidePanel.GetHorizontalFrameSize()
		m.metaViewport.Height = max(m.height-sidePanel.GetVerticalFrameSize(), 1)
		m.textarea.SetWidth(m.chatViewport.Width)

		m.ready = true
		m.writeChatContent()
		m.metaViewport.SetContent(writeMetadata(m.snapshot))

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.showQuitModal = true
			return m, nil
		case tea.KeyCtrlY:
			return m, m.copyScreenID()
		case tea.KeyEnter:
			return m.submit()
		}

	case outcomeMsg:
		m.loading = false
		m.pending = ""
		m.snapshot = msg.snapshot
		if msg.output != "" {
			m.transcript = append(m.transcript, entry{kind: entryOutput, text: strings.TrimRight(msg.output, "\n")})
		}
		m.writeChatContent()
		m.metaViewport.SetContent(writeMetadata(m.snapshot))
		if msg.exit {
			return m, tea.Quit
		}
		return m, nil

	case clipboardMsg:
		text := "Copied screen id " + msg.id
		if msg.err != nil {
			text = "Could not copy screen id: " + msg.err.Error()
		}
		m.transcript = append(m.transcript, entry{kind: entryNotice, text: text})
		m.writeChatContent()
		return m, nil

	case spinner.TickMsg:
		// Let the tick chain lapse once the server has answered.
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	m.textarea, tiCmd = m.textarea.Update(msg)
	m.chatViewport, vpCmd = m.chatViewport.Update(msg)

	return m, tea.Batch(tiCmd, vpCmd)
}

// submit sends the typed line to the game. Input is ignored while a request
// is outstanding.
func (m ConsoleUI) submit() (tea.Model, tea.Cmd) {
	if m.loading {
		return m, nil
	}

	input := strings.TrimSpace(m.textarea.Value())
	m.textarea.Reset()
	if input == "" {
		return m, nil
	}

	m.transcript = append(m.transcript, entry{kind: entryInput, text: input})
	m.loading = true
	m.pending = ""
	m.writeChatContent()

	if command.Parse(input).IsLocal() {
		return m, m.handleInput(input)
	}
	m.pending = fmt.Sprintf("Sending %q", input)
	return m, tea.Batch(m.handleInput(input), m.spinner.Tick)
}

func (m ConsoleUI) startGame() tea.Cmd {
	g, ctx := m.game, m.ctx
	return func() tea.Msg {
		out := g.Start(ctx)
		return outcomeMsg{output: out, snapshot: g.Session().Snapshot()}
	}
}

func (m ConsoleUI) handleInput(input string) tea.Cmd {
	g, ctx := m.game, m.ctx
	return func() tea.Msg {
		outcome := g.Handle(ctx, input)
		return outcomeMsg{
			output:   outcome.Output,
			exit:     g.State() == game.Exited,
			snapshot: g.Session().Snapshot(),
		}
	}
}

func (m ConsoleUI) copyScreenID() tea.Cmd {
	id, copyFn := m.snapshot.ScreenID, m.copyToClipboard
	return func() tea.Msg {
		if id == "" {
			return clipboardMsg{err: errors.New("no current screen")}
		}
		return clipboardMsg{id: id, err: copyFn(id)}
	}
}

func (m ConsoleUI) updateQuitModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case outcomeMsg:
		// A request finished behind the dialog; keep its result.
		m.showQuitModal = false
		model, cmd := m.Update(msg)
		ui := model.(ConsoleUI)
		ui.showQuitModal = true
		return ui, cmd

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc, tea.KeyEnter:
			return m, tea.Quit
		default:
			switch msg.String() {
			case "y", "Y":
				return m, tea.Quit
			case "n", "N":
				m.showQuitModal = false
				m.textarea.Focus()
				if m.loading {
					// Ticks were dropped while the dialog was up.
					return m, tea.Batch(textarea.Blink, m.spinner.Tick)
				}
				return m, textarea.Blink
			}
		}
	}

	return m, nil
}

// renderQuitModal asks before leaving. The game state exists only in this
// process, so quitting discards it.
func (m ConsoleUI) renderQuitModal() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Leave the adventure?") + "\n\n")
	b.WriteString("Your inventory is kept by this console only and is lost on exit.\n")
	if m.pending != "" {
		b.WriteString("\n" + noticeStyle.Render(m.pending+" has not been answered yet.") + "\n")
	}
	b.WriteString("\n" + hintStyle.Render("Y or Enter to quit, N to keep playing"))

	dialog := dialogStyle.Render(b.String())
	if m.width == 0 || m.height == 0 {
		return dialog
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, dialog)
}

// statusLine sits between the transcript and the input: a spinner while the
// server works on a command, key hints otherwise.
func (m ConsoleUI) statusLine() string {
	line := hintStyle.Render("Enter send · Ctrl+Y copy screen id · Esc quit")
	if m.loading && m.pending != "" {
		line = m.spinner.View() + " " + hintStyle.Render(m.pending+"...")
	}
	return lipgloss.NewStyle().MaxWidth(m.chatViewport.Width).Render(line)
}

func (m ConsoleUI) View() string {
	if m.showQuitModal {
		return m.renderQuitModal()
	}

	if !m.ready {
		return "\n  Initializing..."
	}

	chat, side := layout(m.width)
	left := transcriptPanel.Width(chat).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			m.chatViewport.View(),
			m.statusLine(),
			hintStyle.Render(strings.Repeat("─", m.chatViewport.Width)),
			m.textarea.View(),
		),
	)
	right := sidePanel.Width(side).Render(m.metaViewport.View())

	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}
