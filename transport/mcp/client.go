package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/wricardo/solitaire/game/engine"
	"github.com/wricardo/solitaire/game/service"
)

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Solitaire",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Klondike Solitaire - MCP Interface

This is a thin client that proxies all requests to the REST API server.

GAME OBJECTIVE:
Build all four foundations up by suit. Lanes build down in alternating colors.

AVAILABLE TOOLS:
- create_session: Deal a new game (optional layout and seed)
- list_sessions: List all active sessions
- get_session: Get session details
- board_state: Show the table
- draw_card: Turn the top deck card onto the waste
- recycle_waste: Turn the waste back into the deck once the deck is empty
- move_card: Move the top card of one zone onto a lane or foundation
- list_configs: List available table layouts
- game_rules: Get the full rules and zone names`),
	)

	c.registerTools()
}

var sessionIDProperty = map[string]any{
	"type":        "string",
	"description": "Session ID",
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	// Session management
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "create_session",
		Description: "Deal a new game session with an optional layout and seed",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]any{
				"config_id": map[string]any{
					"type":        "string",
					"description": "Layout to use (optional, see list_configs)",
				},
				"seed": map[string]any{
					"type":        "integer",
					"description": "Shuffle seed to replay a deal (optional)",
				},
			},
		},
	}, c.handleCreateSession)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_sessions",
		Description: "List all active game sessions",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]any{},
		},
	}, c.handleListSessions)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_session",
		Description: "Get details of a specific session",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]any{"session_id": sessionIDProperty},
			Required:   []string{"session_id"},
		},
	}, c.handleGetSession)

	// Game operations
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "board_state",
		Description: "Show the deck, waste, foundations and lanes",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]any{"session_id": sessionIDProperty},
			Required:   []string{"session_id"},
		},
	}, c.handleBoardState)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "draw_card",
		Description: "Turn the top card of the deck face-up onto the waste",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]any{"session_id": sessionIDProperty},
			Required:   []string{"session_id"},
		},
	}, c.handleDraw)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "recycle_waste",
		Description: "Turn the waste back into the deck. Only works once the deck is empty",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]any{"session_id": sessionIDProperty},
			Required:   []string{"session_id"},
		},
	}, c.handleRecycle)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "move_card",
		Description: "Move the top card of a zone onto a lane or foundation. Zones: waste, lane:1..lane:7, foundation:1..foundation:4",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]any{
				"session_id": sessionIDProperty,
				"from": map[string]any{
					"type":        "string",
					"description": "Source zone: waste, lane:N or foundation:N",
				},
				"to": map[string]any{
					"type":        "string",
					"description": "Target zone: lane:N or foundation:N",
				},
				"intent": map[string]any{
					"type":        "string",
					"description": "Brief explanation of why you are making this move",
				},
			},
			Required: []string{"session_id", "from", "to"},
		},
	}, c.handleMove)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_configs",
		Description: "List available table layouts",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]any{},
		},
	}, c.handleListConfigs)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_rules",
		Description: "Get the rules of the game and the zone naming scheme",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]any{},
		},
	}, c.handleGameRules)
}

// GetMCPServer returns the underlying MCP server for serving
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// Helper methods for API calls

func (c *Client) apiCall(ctx context.Context, method, path string, body any, result any) error {
	url := c.baseURL + path

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
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
		var errResp struct {
			Error string `json:"error"`
		}
		json.NewDecoder(resp.Body).Decode(&errResp)
		if errResp.Error != "" {
			return fmt.Errorf("%s", errResp.Error)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}
	return nil
}

func arguments(request mcp.CallToolRequest) map[string]any {
	args, _ := request.Params.Arguments.(map[string]any)
	if args == nil {
		return map[string]any{}
	}
	return args
}

// Tool handlers

func (c *Client) handleCreateSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)

	body := map[string]any{}
	if configID, _ := args["config_id"].(string); configID != "" {
		body["config_id"] = configID
	}
	if seed, ok := args["seed"].(float64); ok && seed > 0 {
		body["seed"] = uint64(seed)
	}

	var info service.SessionInfo
	if err := c.apiCall(ctx, "POST", "/api/sessions", body, &info); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Created session: %s\nConfig: %s\nSeed: %d\n\n", info.ID, info.ConfigName, info.Seed)
	if info.BoardState != nil {
		result += formatBoardState(info.BoardState)
	}
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

	var b strings.Builder
	fmt.Fprintf(&b, "Active Sessions (%d):\n\n", response.Count)
	for _, s := range response.Sessions {
		foundation := 0
		if s.BoardState != nil {
			for _, stack := range s.BoardState.Foundations {
				foundation += len(stack)
			}
		}
		fmt.Fprintf(&b, "- %s (Config: %s, Seed: %d, Foundations: %d/52, Created: %s)\n",
			s.ID, s.ConfigName, s.Seed, foundation, s.CreatedAt.Format("15:04:05"))
	}
	return mcp.NewToolResultText(b.String()), nil
}

func (c *Client) handleGetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, _ := arguments(request)["session_id"].(string)

	var info service.SessionInfo
	if err := c.apiCall(ctx, "GET", "/api/sessions/"+sessionID, nil, &info); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Session: %s\nConfig: %s\nSeed: %d\nCreated: %s\nLast accessed: %s\n\n",
		info.ID, info.ConfigName, info.Seed,
		info.CreatedAt.Format(time.RFC3339), info.LastAccessedAt.Format(time.RFC3339))
	if info.BoardState != nil {
		result += formatBoardState(info.BoardState)
	}
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleBoardState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, _ := arguments(request)["session_id"].(string)

	var state engine.BoardState
	if err := c.apiCall(ctx, "GET", "/api/sessions/"+sessionID+"/state", nil, &state); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(formatBoardState(&state)), nil
}

func (c *Client) handleDraw(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return c.postAction(ctx, request, "draw", nil)
}

func (c *Client) handleRecycle(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return c.postAction(ctx, request, "recycle", nil)
}

func (c *Client) handleMove(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	from, _ := args["from"].(string)
	to, _ := args["to"].(string)

	// validate locally for a friendlier message than a 400
	if _, err := engine.ParseZone(from); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("bad source zone: %v", err)), nil
	}
	if _, err := engine.ParseZone(to); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("bad target zone: %v", err)), nil
	}

	return c.postAction(ctx, request, "move", map[string]string{"from": from, "to": to})
}

func (c *Client) postAction(ctx context.Context, request mcp.CallToolRequest, action string, body any) (*mcp.CallToolResult, error) {
	sessionID, _ := arguments(request)["session_id"].(string)

	var result service.ActionResult
	if err := c.apiCall(ctx, "POST", "/api/sessions/"+sessionID+"/"+action, body, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(formatActionResult(&result)), nil
}

func (c *Client) handleListConfigs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var configs []service.ConfigInfo
	if err := c.apiCall(ctx, "GET", "/api/configs", nil, &configs); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	b.WriteString("Available layouts (use config_id with create_session):\n\n")
	for _, cfg := range configs {
		fmt.Fprintf(&b, "- %s: %s (%gx%g cards) %s\n",
			cfg.ConfigID, cfg.Name, cfg.CardWidth, cfg.CardHeight, cfg.Description)
	}
	return mcp.NewToolResultText(b.String()), nil
}

func (c *Client) handleGameRules(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(gameRules), nil
}

const gameRules = `KLONDIKE SOLITAIRE RULES

TABLE:
- deck: face-down stock. draw_card turns its top card onto the waste.
- waste: face-up cards drawn from the deck. Only the top card can move.
- lane:1 .. lane:7: the tableau. Lane N is dealt N cards, only the last face-up.
- foundation:1 .. foundation:4: where suits are built up.

MOVES (move_card):
- Onto a lane: the card must be one rank lower than the lane's top card
  and of the opposite color (red on black, black on red). Any card may
  start an empty lane.
- Onto a foundation: the card must be the same suit as the top card and
  one rank higher. Any card may start an empty foundation; the first card
  fixes that foundation's suit.
- Only the top card of a zone moves. Moving a lane's last face-up card
  turns the card beneath it face-up.
- A move the rules reject is not an error: the card stays where it was.

DECK:
- draw_card on an empty deck does nothing.
- recycle_waste puts the whole waste back into the deck, face-down, once
  the deck is empty.

BOARD NOTATION (board_state):
- Cards are rank + suit letter: A, 2..10, J, Q, K and C, D, H, S.
- ## is a face-down card.`

// Formatting helpers

var rankShort = map[string]string{
	"ace": "A", "jack": "J", "queen": "Q", "king": "K",
}

func shortCard(v engine.CardView) string {
	if !v.FaceUp {
		return "##"
	}
	rank, ok := rankShort[v.Rank]
	if !ok {
		rank = v.Rank
	}
	if v.Suit == "" {
		return rank + "?"
	}
	return rank + strings.ToUpper(v.Suit[:1])
}

func formatBoardState(state *engine.BoardState) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Deck: %d cards\n", state.DeckCount)
	if n := len(state.Waste); n > 0 {
		fmt.Fprintf(&b, "Waste: %s (%d cards)\n", shortCard(state.Waste[n-1]), n)
	} else {
		b.WriteString("Waste: empty\n")
	}

	b.WriteString("Foundations:")
	for i, stack := range state.Foundations {
		top := "--"
		if n := len(stack); n > 0 {
			top = shortCard(stack[n-1])
		}
		fmt.Fprintf(&b, " [%d] %s", i+1, top)
	}
	b.WriteString("\n\nLanes:\n")

	for i, lane := range state.Lanes {
		cards := make([]string, len(lane))
		for j, card := range lane {
			cards[j] = shortCard(card)
		}
		if len(cards) == 0 {
			cards = []string{"(empty)"}
		}
		fmt.Fprintf(&b, "  %d: %s\n", i+1, strings.Join(cards, " "))
	}

	if state.Held != nil {
		fmt.Fprintf(&b, "\nHeld: %s from %s\n", shortCard(state.Held.Card), state.Held.Origin)
	}
	return b.String()
}

func formatActionResult(result *service.ActionResult) string {
	status := "OK"
	if !result.Success {
		status = "NO CHANGE"
	}

	out := fmt.Sprintf("%s: %s\n", status, result.Message)
	if result.Revealed {
		out += "A face-down card was turned over.\n"
	}
	if result.BoardState != nil {
		out += "\n" + formatBoardState(result.BoardState)
	}
	return out
}
