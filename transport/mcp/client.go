package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/sirupsen/logrus"

	"github.com/wricardo/klondike/game/engine"
	"github.com/wricardo/klondike/game/service"
)

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
	log        logrus.FieldLogger
}

// Option configures a Client
type Option func(*Client)

// WithLogger sets the logger. The logrus standard logger is used otherwise.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(c *Client) {
		if logger != nil {
			c.log = logger
		}
	}
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		log: logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.WithField("component", "mcp")

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Klondike Solitaire",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Klondike Solitaire - MCP Interface

This is a thin client that proxies all requests to the REST API server.

GAME OBJECTIVE:
Build all four foundations from Ace to King, one per suit.

AVAILABLE TOOLS:
- create_session: Create a new game (config "klondike" deals 1, "klondike-draw-three" deals 3)
- game_state: Board with every visible card
- possible_moves: Legal moves right now, in command form
- deal: Deal from the stock, or turn the waste over when the stock is empty
- move: Move cards between piles (from, to, optional size) - requires intent explanation
- command: Run a console command such as "m w h" or "hint"
- reset_game: Deal a fresh game in the same session
- move_history: View past deals and moves
- get_session / list_sessions / list_configs / game_instructions

NOTE: The 'intent' parameter on move serves as rubber duck debugging - explain your reasoning!`),
	)

	// Register all tools
	c.registerTools()
}

func sessionIDProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Session ID",
	}
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	// Session management
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "create_session",
		Description: "Create a new game session with optional config selection",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"config_id": map[string]interface{}{
					"type":        "string",
					"description": "Config to use, see list_configs (optional)",
				},
			},
		},
	}, c.handleCreateSession)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_sessions",
		Description: "List all active game sessions",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListSessions)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_session",
		Description: "Get details of a specific session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID to retrieve",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleGetSession)

	// Game operations
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_state",
		Description: "Get the current board: foundations, waste, stock and the seven tableaus",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
			},
			Required: []string{"session_id"},
		},
	}, c.handleGameState)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "deal",
		Description: "Deal from the stock to the waste. With an empty stock the waste is turned over instead.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
			},
			Required: []string{"session_id"},
		},
	}, c.handleDeal)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "move",
		Description: "Move cards between piles. Locations: w (waste), c/d/h/s (foundations), f (matching foundation), t1..t7 (tableaus).",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
				"from": map[string]interface{}{
					"type":        "string",
					"description": "Source pile, e.g. w, t3 or h",
				},
				"to": map[string]interface{}{
					"type":        "string",
					"description": "Destination pile, e.g. t5, f or s",
				},
				"size": map[string]interface{}{
					"type":        "integer",
					"description": "Number of cards for tableau to tableau moves (default 1)",
				},
				"intent": map[string]interface{}{
					"type":        "string",
					"description": "Brief explanation of the intent behind this move (serves as a rubber duck to help explain your reasoning)",
				},
			},
			Required: []string{"session_id", "from", "to"},
		},
	}, c.handleMove)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "command",
		Description: "Run a console command: d, m <from> <to> [size], hint, board, new, help",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
				"input": map[string]interface{}{
					"type":        "string",
					"description": "Command line, e.g. \"m t2 t5 1\"",
				},
			},
			Required: []string{"session_id", "input"},
		},
	}, c.handleCommand)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "possible_moves",
		Description: "List the legal moves for the current board",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
			},
			Required: []string{"session_id"},
		},
	}, c.handlePossibleMoves)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "reset_game",
		Description: "Deal a fresh game in the same session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
			},
			Required: []string{"session_id"},
		},
	}, c.handleReset)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "move_history",
		Description: "Get move history for a session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
				"page": map[string]interface{}{
					"type":        "integer",
					"description": "Page number",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Items per page",
				},
				"order": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"asc", "desc"},
					"description": "Oldest first (asc) or newest first (desc, default)",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleMoveHistory)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_configs",
		Description: "List available game configurations",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListConfigs)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_instructions",
		Description: "Get the rules of Klondike and how to address piles",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleGameInstructions)
}

// GetMCPServer returns the underlying MCP server for serving
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// Helper methods for API calls

func (c *Client) apiCall(ctx context.Context, method, path string, body interface{}, result interface{}) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp map[string]string
		json.NewDecoder(resp.Body).Decode(&errResp)
		if msg, ok := errResp["error"]; ok {
			return fmt.Errorf("%s", msg)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}

	return nil
}

func sessionPath(sessionID, suffix string) string {
	return "/api/sessions/" + url.PathEscape(sessionID) + suffix
}

// Tool handlers

func (c *Client) handleCreateSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	configID := request.GetString("config_id", "")

	body := map[string]string{}
	if configID != "" {
		body["config_id"] = configID
	}

	var session service.SessionInfo
	if err := c.apiCall(ctx, "POST", "/api/sessions", body, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Created session: %s\nConfig: %s\n\n%s", session.ID, session.ConfigName, formatGameState(session.GameState))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count    int                   `json:"count"`
		Sessions []service.SessionInfo `json:"sessions"`
	}

	if err := c.apiCall(ctx, "GET", "/api/sessions", nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Active Sessions (%d):\n\n", response.Count)
	for _, s := range response.Sessions {
		moves, won := 0, false
		if s.GameState != nil {
			moves, won = s.GameState.TotalMoves, s.GameState.Won
		}
		result += fmt.Sprintf("- %s (Config: %s, Created: %s, Moves: %d, Won: %v)\n",
			s.ID, s.ConfigName, s.CreatedAt.Format("15:04:05"), moves, won)
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, err := request.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var session service.SessionInfo
	if err := c.apiCall(ctx, "GET", sessionPath(sessionID, ""), nil, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatSessionInfo(&session)), nil
}

func (c *Client) handleGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, err := request.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var state engine.GameState
	if err := c.apiCall(ctx, "GET", sessionPath(sessionID, "/state"), nil, &state); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatGameState(&state)), nil
}

func (c *Client) handleDeal(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, err := request.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var result service.MoveResult
	if err := c.apiCall(ctx, "POST", sessionPath(sessionID, "/deal"), nil, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatMoveResult(&result)), nil
}

func (c *Client) handleMove(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, err := request.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	from, err := request.RequireString("from")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	to, err := request.RequireString("to")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	size := request.GetInt("size", 1)
	c.log.WithFields(logrus.Fields{
		"session": sessionID,
		"from":    from,
		"to":      to,
		"size":    size,
		"intent":  request.GetString("intent", ""),
	}).Debug("move requested")

	body := map[string]interface{}{
		"from": from,
		"to":   to,
		"size": size,
	}

	var result service.MoveResult
	if err := c.apiCall(ctx, "POST", sessionPath(sessionID, "/move"), body, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatMoveResult(&result)), nil
}

func (c *Client) handleCommand(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, err := request.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	input, err := request.RequireString("input")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var result service.CommandResult
	if err := c.apiCall(ctx, "POST", sessionPath(sessionID, "/command"), map[string]string{"input": input}, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatCommandResult(&result)), nil
}

func (c *Client) handlePossibleMoves(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, err := request.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var moves service.PossibleMovesResponse
	if err := c.apiCall(ctx, "GET", sessionPath(sessionID, "/moves"), nil, &moves); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatPossibleMoves(&moves)), nil
}

func (c *Client) handleReset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, err := request.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var response struct {
		Message string            `json:"message"`
		State   *engine.GameState `json:"state"`
	}

	if err := c.apiCall(ctx, "POST", sessionPath(sessionID, "/reset"), nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("%s\n\n%s", response.Message, formatGameState(response.State))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleMoveHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, err := request.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	params := url.Values{}
	if page := request.GetInt("page", 0); page > 0 {
		params.Set("page", fmt.Sprint(page))
	}
	if limit := request.GetInt("limit", 0); limit > 0 {
		params.Set("limit", fmt.Sprint(limit))
	}
	if order := request.GetString("order", ""); order != "" {
		params.Set("order", order)
	}

	path := sessionPath(sessionID, "/history")
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	var history service.HistoryResponse
	if err := c.apiCall(ctx, "GET", path, nil, &history); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatHistory(&history)), nil
}

func (c *Client) handleListConfigs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var configs []service.ConfigInfo
	if err := c.apiCall(ctx, "GET", "/api/configs", nil, &configs); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := "Available Configurations:\n\n"
	for _, config := range configs {
		result += fmt.Sprintf("• %s (config_id: %s)\n  %s\n  Deals %d card(s) at a time\n\n",
			config.Name, config.ConfigID, config.Description, config.DealSize)
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGameInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(instructions), nil
}

const instructions = `Klondike Solitaire - Complete Instructions

GAME OBJECTIVE:
Move all 52 cards onto the four foundations, each built up by suit from Ace to King.

THE BOARD:
• Stock - face-down cards. deal turns 1 or 3 of them (depending on the config) onto the waste.
• Waste - the top card is playable.
• Foundations - one per suit (clubs, diamonds, hearts, spades). An Ace starts a foundation;
  after that only the next rank of the same suit goes on.
• Tableaus t1..t7 - column n starts with n cards, only the top one face up.

RULES:
• Tableau building goes down in rank with alternating colors (red on black, black on red).
• Only a King goes onto an empty tableau.
• A run of face-up cards moves together when it is already a valid sequence:
  move from t2 to t5 with size 3 moves the top three cards of t2.
• When the top card of a tableau leaves, the card under it turns face up.
• Foundation cards may come back down onto a tableau.
• With an empty stock, deal turns the waste back over into the stock.
• There is no undo and no scoring.

LOCATIONS:
• w - waste
• c, d, h, s - clubs, diamonds, hearts and spades foundations
• f - whichever foundation matches the moving card
• t1..t7 (or 1..7) - tableaus

COMMANDS (for the command tool):
• d - deal
• m <from> <to> [size] - move, e.g. "m w h", "m t7 t1", "m t2 t5 3"
• hint - list legal moves
• board - show the board
• new - start over
• help - this list

STRATEGY:
• Ask possible_moves before dealing; a move that turns over a face-down card is usually worth more than a deal.
• Play Aces and Twos to the foundations right away.
• Keep an empty tableau for a King that frees face-down cards.

SESSION MANAGEMENT:
- Multiple game sessions can run simultaneously
- Each session has unique 4-character ID
- Sessions maintain independent state and configuration

Good luck!`

// Formatting helpers

func formatSessionInfo(session *service.SessionInfo) string {
	return fmt.Sprintf("Session: %s\nConfig: %s\nCreated: %s\n\n%s",
		session.ID, session.ConfigName,
		session.CreatedAt.Format("2006-01-02 15:04:05"),
		formatGameState(session.GameState))
}

// cardCode is the short code of a face-up card and "##" for a face-down one
func cardCode(card engine.CardState) string {
	if !card.Open {
		return "##"
	}
	return card.Code
}

func formatGameState(state *engine.GameState) string {
	if state == nil {
		return "No game state available"
	}

	var result strings.Builder

	canDeal := "no"
	if state.CanDeal {
		canDeal = "yes"
	}
	result.WriteString(fmt.Sprintf("Config: %s | Deal: %d | Moves: %d | Stock: %d | Can deal: %s\n\n",
		state.ConfigName, state.DealSize, state.TotalMoves, state.Stock.Count, canDeal))

	result.WriteString("Foundations:")
	for _, f := range state.Foundations {
		top := "--"
		if f.Top != nil {
			top = cardCode(*f.Top)
		}
		result.WriteString(fmt.Sprintf(" %s %s (%d)", f.Suit, top, f.Count))
	}
	result.WriteString("\n")

	result.WriteString(fmt.Sprintf("Waste (%d):", state.Waste.Count))
	waste := state.Waste.Cards
	if len(waste) > engine.WasteShown {
		waste = waste[len(waste)-engine.WasteShown:]
	}
	if len(waste) == 0 {
		result.WriteString(" empty")
	}
	for _, card := range waste {
		result.WriteString(" " + cardCode(card))
	}
	result.WriteString(" <- top\n\n")

	for _, t := range state.Tableaus {
		result.WriteString(t.Name + ":")
		if len(t.Cards) == 0 {
			result.WriteString(" empty")
		}
		for _, card := range t.Cards {
			result.WriteString(" " + cardCode(card))
		}
		result.WriteString("\n")
	}

	if state.Won {
		result.WriteString("\n🎉 VICTORY!")
	}

	if state.Message != "" {
		result.WriteString(fmt.Sprintf("\nMessage: %s", state.Message))
	}

	return result.String()
}

func formatEvents(events []service.GameEvent) string {
	if len(events) == 0 {
		return ""
	}
	response := "Events:\n"
	for _, event := range events {
		response += fmt.Sprintf("- %s: %s\n", event.Type, event.Message)
	}
	return response
}

func formatMoveResult(result *service.MoveResult) string {
	response := "✓ " + result.Message + "\n"
	if !result.Success {
		response = "✗ " + result.Message + "\n"
	}

	response += formatEvents(result.Events)
	response += "\n" + formatGameState(result.GameState)
	return response
}

func formatCommandResult(result *service.CommandResult) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Command: %s\n", result.Command))

	switch {
	case result.Help != "":
		b.WriteString(result.Help)
		return b.String()
	case len(result.Hints) > 0:
		b.WriteString("Possible: " + strings.Join(result.Hints, ", ") + "\n")
		return b.String()
	case result.Applied && result.Success:
		b.WriteString("✓ " + result.Message + "\n")
	case result.Applied:
		b.WriteString("✗ " + result.Message + "\n")
	default:
		b.WriteString(result.Message + "\n")
	}

	b.WriteString(formatEvents(result.Events))
	b.WriteString("\n" + formatGameState(result.GameState))
	return b.String()
}

func formatPossibleMoves(moves *service.PossibleMovesResponse) string {
	if len(moves.Commands) == 0 {
		return "No moves left. Start a new game with reset_game."
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("Possible moves (%d):\n", len(moves.Commands)))
	for _, cmd := range moves.Commands {
		b.WriteString("- " + cmd + "\n")
	}
	return b.String()
}

func formatHistory(history *service.HistoryResponse) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Move History (Page %d/%d, Total: %d moves):\n\n",
		history.Page, history.TotalPages, history.TotalMoves))

	for _, move := range history.Moves {
		status := "✓"
		if !move.Success {
			status = "✗"
		}
		b.WriteString(fmt.Sprintf("#%d %s %s %s -> %s", move.MoveNumber, status, move.Action, move.From, move.To))
		if move.Size > 1 {
			b.WriteString(fmt.Sprintf(" (%d cards)", move.Size))
		}
		b.WriteString("\n")
	}

	if history.HasNext {
		b.WriteString(fmt.Sprintf("\nMore moves on page %d", history.Page+1))
	}
	return b.String()
}
