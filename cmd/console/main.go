package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jwebster45206/adventure-console/internal/api"
	"github.com/jwebster45206/adventure-console/internal/config"
	"github.com/jwebster45206/adventure-console/internal/game"
	"github.com/jwebster45206/adventure-console/internal/logger"
	"github.com/jwebster45206/adventure-console/internal/render"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// The full-screen UI owns the terminal, so it only logs to a file.
	var fallback io.Writer = os.Stderr
	if cfg.UI == config.UITUI {
		fallback = io.Discard
	}
	logOut, closeLog, err := logger.Output(cfg, fallback)
	if err != nil {
		return err
	}
	defer func() {
		_ = closeLog() // Ignore error in defer
	}()

	log := logger.Setup(cfg, logOut)
	log.Info("Starting adventure console",
		"api_base_url", cfg.APIBaseURL,
		"initial_screen_id", cfg.InitialScreenID,
		"ui", cfg.UI)

	client := api.NewClient(cfg.APIBaseURL, &http.Client{Timeout: cfg.Timeout}, log)
	ctx := context.Background()

	if cfg.UI == config.UITUI {
		g := game.New(client, render.New(0, cfg.Color), cfg.InitialScreenID, log)
		p := tea.NewProgram(NewConsoleUI(ctx, g, cfg),
			tea.WithAltScreen(),
			tea.WithMouseCellMotion())
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("error running program: %w", err)
		}
		return nil
	}

	g := game.New(client, render.New(cfg.WrapWidth, cfg.Color), cfg.InitialScreenID, log)
	return g.Run(ctx, os.Stdin, os.Stdout)
}
