package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/wricardo/klondike/game/engine"
	"github.com/wricardo/klondike/game/service"
)

// Client drives one session through the REST API
type Client struct {
	baseURL   string
	sessionID string
	client    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// SessionID is the session the client plays
func (c *Client) SessionID() string {
	return c.sessionID
}

func (c *Client) CreateSession(ctx context.Context, configID string) (*engine.GameState, error) {
	var body interface{}
	if configID != "" {
		body = map[string]string{"config_id": configID}
	}

	var session service.SessionInfo
	if err := c.do(ctx, http.MethodPost, "/api/sessions", body, &session); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	c.sessionID = session.ID
	return session.GameState, nil
}

// Resume attaches to an existing session
func (c *Client) Resume(ctx context.Context, sessionID string) (*engine.GameState, error) {
	c.sessionID = sessionID
	return c.GetState(ctx)
}

func (c *Client) GetState(ctx context.Context) (*engine.GameState, error) {
	var state engine.GameState
	if err := c.do(ctx, http.MethodGet, c.path("/state"), nil, &state); err != nil {
		return nil, fmt.Errorf("get state: %w", err)
	}
	return &state, nil
}

func (c *Client) PossibleMoves(ctx context.Context) ([]engine.MoveSpec, error) {
	var resp service.PossibleMovesResponse
	if err := c.do(ctx, http.MethodGet, c.path("/moves"), nil, &resp); err != nil {
		return nil, fmt.Errorf("possible moves: %w", err)
	}
	return resp.Moves, nil
}

func (c *Client) Deal(ctx context.Context) (*engine.GameState, error) {
	var result service.MoveResult
	if err := c.do(ctx, http.MethodPost, c.path("/deal"), nil, &result); err != nil {
		return nil, fmt.Errorf("deal: %w", err)
	}
	if !result.Success {
		return result.GameState, fmt.Errorf("deal failed: %s", result.Message)
	}
	return result.GameState, nil
}

func (c *Client) Move(ctx context.Context, move engine.MoveSpec) (*engine.GameState, error) {
	req := service.MoveRequest{From: move.From, To: move.To, Size: move.Size}

	var result service.MoveResult
	if err := c.do(ctx, http.MethodPost, c.path("/move"), req, &result); err != nil {
		return nil, fmt.Errorf("move %s: %w", move, err)
	}
	if !result.Success {
		return result.GameState, fmt.Errorf("move failed: %s", result.Message)
	}
	return result.GameState, nil
}

type ResetResponse struct {
	Message string            `json:"message"`
	State   *engine.GameState `json:"state"`
}

func (c *Client) Reset(ctx context.Context) (*engine.GameState, error) {
	var resp ResetResponse
	if err := c.do(ctx, http.MethodPost, c.path("/reset"), nil, &resp); err != nil {
		return nil, fmt.Errorf("reset: %w", err)
	}
	return resp.State, nil
}

func (c *Client) path(suffix string) string {
	return "/api/sessions/" + c.sessionID + suffix
}

// do sends body as JSON and decodes a 2xx response into out. Error bodies
// carry {"error": "..."}.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 300 {
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(data, &apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("%s: %s", resp.Status, apiErr.Error)
		}
		return fmt.Errorf("%s", resp.Status)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parse response: %w", err)
	}
	return nil
}
