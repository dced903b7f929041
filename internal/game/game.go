package game

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/jwebster45206/adventure-console/internal/api"
	"github.com/jwebster45206/adventure-console/internal/logger"
	"github.com/jwebster45206/adventure-console/internal/render"
	"github.com/jwebster45206/adventure-console/pkg/command"
	"github.com/jwebster45206/adventure-console/pkg/state"
)

// Client is the part of the API the game needs.
type Client interface {
	GetScreen(ctx context.Context, screenID string) (*state.Screen, error)
	SubmitCommand(ctx context.Context, req api.SubmitCommandRequest) (*api.CommandResult, error)
}

type LoopState int

const (
	Running LoopState = iota
	Exited
)

func (s LoopState) String() string {
	if s == Exited {
		return "exited"
	}
	return "running"
}

// Outcome is what one line of input produced.
type Outcome struct {
	Command command.Command
	Output  string
	Err     error // Request failure already rendered into Output
}

// Game ties a session to the API and renders each exchange.
type Game struct {
	client          Client
	session         *state.Session
	render          *render.Renderer
	initialScreenID string
	loopState       LoopState
	log             *slog.Logger
}

func New(client Client, r *render.Renderer, initialScreenID string, log *slog.Logger) *Game {
	if log == nil {
		log = slog.Default()
	}
	return &Game{
		client:          client,
		session:         state.NewSession(),
		render:          r,
		initialScreenID: initialScreenID,
		loopState:       Running,
		log:             log,
	}
}

func (g *Game) State() LoopState {
	return g.loopState
}

func (g *Game) Session() *state.Session {
	return g.session
}

// Start loads the initial screen and returns its text. A failure is rendered
// and the game stays Running.
func (g *Game) Start(ctx context.Context) string {
	screen, err := g.loadInitialScreen(ctx)
	if err != nil {
		return g.render.Error(err)
	}
	return g.render.Screen(screen)
}

func (g *Game) loadInitialScreen(ctx context.Context) (*state.Screen, error) {
	screen, err := g.client.GetScreen(ctx, g.initialScreenID)
	if err != nil {
		logger.WithError(g.log, err).Error("Failed to load initial screen", "screen_id", g.initialScreenID)
		return nil, err
	}
	g.session.SetScreen(screen)
	g.log.Debug("Loaded screen", "screen_id", screen.ID)
	return screen, nil
}

// Handle runs one line of input.
func (g *Game) Handle(ctx context.Context, line string) Outcome {
	cmd := command.Parse(line)
	out := Outcome{Command: cmd}

	if g.loopState == Exited {
		return out
	}

	switch cmd.Kind {
	case command.KindNone:
		// Nothing typed.

	case command.KindExit:
		g.loopState = Exited

	case command.KindHelp:
		out.Output = g.render.Help()

	case command.KindScreenID:
		out.Output = g.render.ScreenID(g.session.ScreenID())

	case command.KindInventory:
		out.Output = g.render.Inventory(g.session.Inventory())

	case command.KindLook:
		if !g.session.HasScreen() {
			if _, err := g.loadInitialScreen(ctx); err != nil {
				out.Err = err
				out.Output = g.render.Error(err)
				return out
			}
		}
		out.Output = g.render.Screen(g.session.Screen())

	case command.KindPlay:
		out.Output, out.Err = g.play(ctx, cmd.Text)
	}
	return out
}

func (g *Game) play(ctx context.Context, text string) (string, error) {
	var prefix string
	if !g.session.HasScreen() {
		screen, err := g.loadInitialScreen(ctx)
		if err != nil {
			return g.render.Error(err), err
		}
		// The player never saw it.
		prefix = g.render.Screen(screen)
	}

	encoded, err := g.session.GameState().Encode()
	if err != nil {
		return prefix + g.render.Error(err), err
	}

	result, err := g.client.SubmitCommand(ctx, api.SubmitCommandRequest{
		ContextScreenID: g.session.ScreenID(),
		Command:         text,
		State:           encoded,
	})
	if err != nil {
		logger.WithError(g.log, err).Warn("Command failed", "command", text, "screen_id", g.session.ScreenID())
		return prefix + g.render.Error(err), err
	}

	var b strings.Builder
	b.WriteString(prefix)
	switch result.Kind {
	case api.ResultFailure:
		b.WriteString(g.render.Message(result.Message))
		return b.String(), nil
	case api.ResultNavigation:
		b.WriteString(g.render.Screen(result.Screen))
		g.session.SetScreen(result.Screen)
		g.log.Debug("Moved to screen", "screen_id", result.Screen.ID)
	case api.ResultMessage:
		b.WriteString(g.render.Message(result.Message))
	}
	b.WriteString(g.render.ItemChanges(result.ItemsAdded, result.ItemsRemoved))
	g.session.SetGameState(result.GameState)
	return b.String(), nil
}

// Run is the line REPL: prompt, read, handle, print, until Exit or end of
// input. Only terminal I/O errors are returned; lines of any length are read.
func (g *Game) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	if _, err := io.WriteString(out, g.Start(ctx)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	reader := bufio.NewReader(in)
	for g.loopState == Running {
		if _, err := io.WriteString(out, render.Prompt); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}

		line, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("failed to read input: %w", err)
		}
		atEOF := err != nil

		// A last line without a newline still counts.
		if line != "" {
			outcome := g.Handle(ctx, line)
			if _, err := io.WriteString(out, outcome.Output); err != nil {
				return fmt.Errorf("failed to write output: %w", err)
			}
		}
		if atEOF {
			g.loopState = Exited
		}
	}
	return nil
}
