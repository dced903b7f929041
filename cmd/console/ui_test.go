package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jwebster45206/adventure-console/internal/api"
	"github.com/jwebster45206/adventure-console/internal/config"
	"github.com/jwebster45206/adventure-console/internal/game"
	"github.com/jwebster45206/adventure-console/internal/render"
	"github.com/jwebster45206/adventure-console/pkg/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestUI(t *testing.T) ConsoleUI {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /screen/{id}", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"id":"`+r.PathValue("id")+`","body":["A quiet library."]}`)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	client := api.NewClient(srv.URL, srv.Client(), log)
	g := game.New(client, render.New(0, false), "0290922a-59ce-458b-8dbc-1c33f646580a", log)

	ui := NewConsoleUI(context.Background(), g, &config.Config{UI: config.UITUI})
	model, _ := ui.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return model.(ConsoleUI)
}

func TestConsoleUI_StartAndLocalCommands(t *testing.T) {
	ui := newTestUI(t)

	msg := ui.startGame()()
	model, _ := ui.Update(msg)
	ui = model.(ConsoleUI)
	assert.False(t, ui.loading)
	assert.Equal(t, "0290922a-59ce-458b-8dbc-1c33f646580a", ui.snapshot.ScreenID)
	require.Len(t, ui.transcript, 1)
	assert.Equal(t, "A quiet library.", ui.transcript[0].text)

	ui.textarea.SetValue("/screen-id")
	model, cmd := ui.Update(tea.KeyMsg{Type: tea.KeyEnter})
	ui = model.(ConsoleUI)
	assert.True(t, ui.loading)
	require.NotNil(t, cmd)

	model, _ = ui.Update(ui.handleInput("/screen-id")())
	ui = model.(ConsoleUI)
	assert.False(t, ui.loading)
	assert.Equal(t, "0290922a-59ce-458b-8dbc-1c33f646580a", ui.transcript[len(ui.transcript)-1].text)
}

func TestConsoleUI_SpinnerOnlyForServerCommands(t *testing.T) {
	ui := newTestUI(t)
	assert.Contains(t, ui.statusLine(), "Loading the first screen")

	model, _ := ui.Update(ui.startGame()())
	ui = model.(ConsoleUI)
	assert.Empty(t, ui.pending)
	assert.Contains(t, ui.statusLine(), "Ctrl+Y")

	ui.textarea.SetValue("/inventory")
	model, _ = ui.Update(tea.KeyMsg{Type: tea.KeyEnter})
	local := model.(ConsoleUI)
	assert.True(t, local.loading)
	assert.Empty(t, local.pending)

	ui.textarea.SetValue("open the door")
	model, _ = ui.Update(tea.KeyMsg{Type: tea.KeyEnter})
	remote := model.(ConsoleUI)
	assert.True(t, remote.loading)
	assert.Equal(t, `Sending "open the door"`, remote.pending)
	assert.Contains(t, remote.statusLine(), "open the door")
}

func TestConsoleUI_SpinnerStopsWhenIdle(t *testing.T) {
	ui := newTestUI(t)
	model, _ := ui.Update(ui.startGame()())
	ui = model.(ConsoleUI)

	_, cmd := ui.Update(ui.spinner.Tick())
	assert.Nil(t, cmd)
}

func TestConsoleUI_EnterIgnoredWhileLoading(t *testing.T) {
	ui := newTestUI(t)
	require.True(t, ui.loading)

	ui.textarea.SetValue("go north")
	model, cmd := ui.Update(tea.KeyMsg{Type: tea.KeyEnter})
	ui = model.(ConsoleUI)
	assert.Nil(t, cmd)
	assert.Empty(t, ui.transcript)
	assert.Equal(t, "go north", ui.textarea.Value())
}

func TestConsoleUI_ExitQuits(t *testing.T) {
	ui := newTestUI(t)
	model, _ := ui.Update(ui.startGame()())
	ui = model.(ConsoleUI)

	msg := ui.handleInput("/quit")()
	out, ok := msg.(outcomeMsg)
	require.True(t, ok)
	assert.True(t, out.exit)

	_, cmd := ui.Update(msg)
	require.NotNil(t, cmd)
	_, isQuit := cmd().(tea.QuitMsg)
	assert.True(t, isQuit)
}

func TestConsoleUI_QuitModal(t *testing.T) {
	ui := newTestUI(t)

	model, _ := ui.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	ui = model.(ConsoleUI)
	assert.True(t, ui.showQuitModal)

	model, _ = ui.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")})
	ui = model.(ConsoleUI)
	assert.False(t, ui.showQuitModal)
}

func TestConsoleUI_CopyScreenID(t *testing.T) {
	ui := newTestUI(t)
	var copied string
	ui.copyToClipboard = func(s string) error {
		copied = s
		return nil
	}

	msg := ui.copyScreenID()()
	assert.Equal(t, clipboardMsg{err: errors.New("no current screen")}, msg)

	ui.snapshot = state.Snapshot{ScreenID: "abc"}
	msg = ui.copyScreenID()()
	assert.Equal(t, clipboardMsg{id: "abc"}, msg)
	assert.Equal(t, "abc", copied)

	model, _ := ui.Update(msg)
	ui = model.(ConsoleUI)
	assert.Equal(t, "Copied screen id abc", ui.transcript[len(ui.transcript)-1].text)
}

func TestWriteMetadata(t *testing.T) {
	out := writeMetadata(state.Snapshot{ScreenID: "0290922a-59ce", Inventory: []string{"lamp"}})
	assert.Contains(t, out, "0290922a...")
	assert.Contains(t, out, "• lamp")
	assert.Contains(t, out, "• /look")

	out = writeMetadata(state.Snapshot{})
	assert.Contains(t, out, "(none)")
	assert.Contains(t, out, "Empty")
}
