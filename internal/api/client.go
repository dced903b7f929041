package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jwebster45206/adventure-console/internal/logger"
	"github.com/jwebster45206/adventure-console/pkg/state"
)

const (
	RequestIDHeader = "X-Request-ID"

	maxErrorBodyLen = 200
)

// ErrorResponse is the generic error body some API deployments return.
type ErrorResponse struct {
	Error string `json:"error"`
}

// SubmitCommandRequest is the body of POST /command.
type SubmitCommandRequest struct {
	ContextScreenID string `json:"contextScreenId"` // Screen the player is on
	Command         string `json:"command"`
	State           string `json:"state"` // Encoded GameState
}

type ResultKind string

const (
	ResultMessage    ResultKind = "message"
	ResultNavigation ResultKind = "navigation"
	ResultFailure    ResultKind = "failure"
)

// CommandResult is the decoded answer to a submitted command.
// For ResultFailure only Message is set.
type CommandResult struct {
	Kind         ResultKind
	Type         string
	Message      []string
	Screen       *state.Screen
	GameState    *state.GameState
	ItemsAdded   []string
	ItemsRemoved []string
}

// commandResponse covers all three response shapes of POST /command.
type commandResponse struct {
	Success      *bool         `json:"success"`
	Type         string        `json:"type"`
	PrintMessage []string      `json:"printMessage"`
	Screen       *state.Screen `json:"screen"`
	State        *string       `json:"state"`
	ItemsAdded   []string      `json:"itemsAdded"`
	ItemsRemoved []string      `json:"itemsRemoved"`
	Message      string        `json:"message"`
}

// Client talks to the remote game API.
type Client struct {
	baseURL string
	http    *http.Client
	log     *slog.Logger
}

func NewClient(baseURL string, httpClient *http.Client, log *slog.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	if log == nil {
		log = slog.Default()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		log:     log,
	}
}

// GetScreen fetches a screen by id.
func (c *Client) GetScreen(ctx context.Context, screenID string) (*state.Screen, error) {
	const op = "get screen"
	if screenID == "" {
		return nil, &NetworkError{Op: op, Err: errors.New("screen id is empty")}
	}

	status, body, err := c.do(ctx, op, http.MethodGet, "/screen/"+url.PathEscape(screenID), nil)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, statusError(op, status, body)
	}

	var screen state.Screen
	if err := json.Unmarshal(body, &screen); err != nil {
		return nil, &ParseError{Op: op, Err: fmt.Errorf("failed to parse screen response: %w", err)}
	}
	if screen.ID == "" {
		return nil, &ParseError{Op: op, Err: errors.New("screen response has no id")}
	}
	return &screen, nil
}

// SubmitCommand sends a player command and decodes the outcome. A game-level
// rejection (success false) is a ResultFailure, not an error.
func (c *Client) SubmitCommand(ctx context.Context, req SubmitCommandRequest) (*CommandResult, error) {
	const op = "submit command"

	jsonData, err := json.Marshal(req)
	if err != nil {
		return nil, &ParseError{Op: op, Err: fmt.Errorf("failed to marshal request: %w", err)}
	}

	status, body, err := c.do(ctx, op, http.MethodPost, "/command", jsonData)
	if err != nil {
		return nil, err
	}

	if status < 200 || status > 299 {
		// Some rejections arrive with a 4xx status but a normal failure body.
		var resp commandResponse
		if json.Unmarshal(body, &resp) == nil && resp.Success != nil && !*resp.Success && resp.Message != "" {
			return &CommandResult{Kind: ResultFailure, Message: []string{resp.Message}}, nil
		}
		return nil, statusError(op, status, body)
	}

	var resp commandResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &ParseError{Op: op, Err: fmt.Errorf("failed to parse command response: %w", err)}
	}
	return decodeCommandResponse(op, &resp)
}

func decodeCommandResponse(op string, resp *commandResponse) (*CommandResult, error) {
	if resp.Success == nil {
		return nil, &ParseError{Op: op, Err: errors.New("command response has no success field")}
	}
	if !*resp.Success {
		return &CommandResult{Kind: ResultFailure, Message: []string{resp.Message}}, nil
	}

	result := &CommandResult{
		Type:         resp.Type,
		ItemsAdded:   resp.ItemsAdded,
		ItemsRemoved: resp.ItemsRemoved,
	}
	// A body carrying both shapes is a print message.
	switch {
	case resp.PrintMessage != nil:
		result.Kind = ResultMessage
		result.Message = resp.PrintMessage
	case resp.Screen != nil:
		if resp.Screen.ID == "" {
			return nil, &ParseError{Op: op, Err: errors.New("navigation response screen has no id")}
		}
		result.Kind = ResultNavigation
		result.Screen = resp.Screen
	default:
		return nil, &ParseError{Op: op, Err: errors.New("command response has neither screen nor printMessage")}
	}

	if resp.State == nil {
		return nil, &ParseError{Op: op, Err: errors.New("command response has no state")}
	}
	gs, err := state.DecodeGameState(*resp.State)
	if err != nil {
		return nil, &ParseError{Op: op, Err: err}
	}
	result.GameState = gs
	return result, nil
}

// do performs one request and returns the status and full body.
func (c *Client) do(ctx context.Context, op, method, path string, payload []byte) (int, []byte, error) {
	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return 0, nil, &NetworkError{Op: op, Err: fmt.Errorf("failed to create request: %w", err)}
	}
	requestID := uuid.NewString()
	req.Header.Set(RequestIDHeader, requestID)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	log := logger.WithRequestID(c.log, requestID)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		logger.WithError(log, err).Warn("API request failed", "method", method, "path", path)
		return 0, nil, &NetworkError{Op: op, Err: fmt.Errorf("failed to send request: %w", err)}
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		logger.WithError(log, err).Warn("Failed to read API response", "method", method, "path", path)
		return 0, nil, &NetworkError{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("failed to read response: %w", err)}
	}

	log.Debug("API request complete",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration", time.Since(start))

	return resp.StatusCode, body, nil
}

func statusError(op string, status int, body []byte) error {
	var errorResp ErrorResponse
	if err := json.Unmarshal(body, &errorResp); err == nil && errorResp.Error != "" {
		return &NetworkError{Op: op, StatusCode: status, Err: errors.New(errorResp.Error)}
	}
	text := strings.TrimSpace(string(body))
	if runes := []rune(text); len(runes) > maxErrorBodyLen {
		text = string(runes[:maxErrorBodyLen]) + "..."
	}
	if text == "" {
		text = http.StatusText(status)
	}
	return &NetworkError{Op: op, StatusCode: status, Err: errors.New(text)}
}
