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

	"github.com/armadagame/armada/game/engine"
	"github.com/armadagame/armada/game/fleet"
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
		baseURL: baseURL,
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
		"Armada Naval Battle",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Armada Naval Battle - MCP Interface

This is a thin client that proxies all requests to the REST API server.

GAME OBJECTIVE:
Sink the opponent's entire fleet before yours is destroyed. Each player
places 5 ships on a square grid and fires one shot per turn.

AVAILABLE TOOLS:
- create_match: Start a match against the scripted opponent
- match_state: Get the current match snapshot (your board + tracking grid)
- place_fleet: Place your fleet (random layout by default)
- fire_shot: Fire at a coordinate like "B7"
- list_matches: List active matches
- list_fleets: Browse the historical fleet catalog
- game_instructions: Get comprehensive game instructions and rules

Coordinates are a column letter followed by a 1-based row number, e.g.
"A1" is the top-left corner and "J10" the bottom-right on a 10x10 grid.`),
	)

	// Register all tools
	c.registerTools()
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "create_match",
		Description: "Create a new match against the scripted opponent",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"username": map[string]interface{}{
					"type":        "string",
					"description": "Display name for your admiral (optional)",
				},
			},
		},
	}, c.handleCreateMatch)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "match_state",
		Description: "Get the current state of a match, redacted for your seat",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"match_id": map[string]interface{}{
					"type":        "string",
					"description": "Match ID",
				},
				"user_id": map[string]interface{}{
					"type":        "string",
					"description": "Your player ID (returned by create_match)",
				},
			},
			Required: []string{"match_id", "user_id"},
		},
	}, c.handleMatchState)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "place_fleet",
		Description: "Place your fleet on the board. Omit placements for a random layout.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"match_id": map[string]interface{}{
					"type":        "string",
					"description": "Match ID",
				},
				"user_id": map[string]interface{}{
					"type":        "string",
					"description": "Your player ID",
				},
				"placements": map[string]interface{}{
					"type":        "array",
					"description": "Explicit placements: [{kind, cells}] with contiguous cells per ship (optional)",
					"items": map[string]interface{}{
						"type": "object",
					},
				},
			},
			Required: []string{"match_id", "user_id"},
		},
	}, c.handlePlaceFleet)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "fire_shot",
		Description: "Fire at one cell of the opponent's board, e.g. coord \"B7\"",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"match_id": map[string]interface{}{
					"type":        "string",
					"description": "Match ID",
				},
				"user_id": map[string]interface{}{
					"type":        "string",
					"description": "Your player ID",
				},
				"coord": map[string]interface{}{
					"type":        "string",
					"description": "Target coordinate, column letter + row number (e.g. \"B7\")",
				},
			},
			Required: []string{"match_id", "user_id", "coord"},
		},
	}, c.handleFireShot)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_matches",
		Description: "List all registered matches",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListMatches)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_fleets",
		Description: "Browse the historical fleet catalog, optionally for one nation",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"nation": map[string]interface{}{
					"type":        "string",
					"description": "Nation name (optional; lists nations when omitted)",
				},
			},
		},
	}, c.handleListFleets)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_instructions",
		Description: "Get comprehensive game instructions and rules",
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

func (c *Client) apiCall(method, path string, body interface{}, result interface{}) error {
	url := c.baseURL + path

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequest(method, url, reqBody)
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

// Tool handlers

func (c *Client) handleCreateMatch(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, _ := request.Params.Arguments.(map[string]interface{})
	username, _ := args["username"].(string)

	body := map[string]string{}
	if username != "" {
		body["username"] = username
	}

	var response struct {
		UserID string            `json:"userId"`
		State  engine.MatchState `json:"state"`
	}
	if err := c.apiCall("POST", "/api/matches", body, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Created match: %s\nYour player ID: %s\n\n%s",
		response.State.ID, response.UserID, formatMatchState(response.UserID, &response.State))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleMatchState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	matchID, _ := args["match_id"].(string)
	userID, _ := args["user_id"].(string)

	var state engine.MatchState
	err := c.apiCall("GET", fmt.Sprintf("/api/matches/%s?player=%s", matchID, userID), nil, &state)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatMatchState(userID, &state)), nil
}

func (c *Client) handlePlaceFleet(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	matchID, _ := args["match_id"].(string)
	userID, _ := args["user_id"].(string)

	body := map[string]interface{}{"userId": userID}
	if placements, ok := args["placements"].([]interface{}); ok && len(placements) > 0 {
		body["placements"] = placements
	} else {
		body["auto"] = true
	}

	var state engine.MatchState
	err := c.apiCall("POST", fmt.Sprintf("/api/matches/%s/placements", matchID), body, &state)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Fleet placed.\n\n%s", formatMatchState(userID, &state))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleFireShot(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	matchID, _ := args["match_id"].(string)
	userID, _ := args["user_id"].(string)
	coord, _ := args["coord"].(string)

	body := map[string]interface{}{
		"userId": userID,
		"coord":  coord,
	}

	var state engine.MatchState
	err := c.apiCall("POST", fmt.Sprintf("/api/matches/%s/shots", matchID), body, &state)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Fired at %s.\n\n%s", strings.ToUpper(coord), formatMatchState(userID, &state))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListMatches(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var summaries []engine.MatchSummary
	if err := c.apiCall("GET", "/api/matches", nil, &summaries); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Matches (%d):\n\n", len(summaries))
	for _, m := range summaries {
		fmt.Fprintf(&sb, "- %s (status: %s, players: %d)\n", m.ID, m.Phase, m.Players)
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func (c *Client) handleListFleets(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, _ := request.Params.Arguments.(map[string]interface{})
	nation, _ := args["nation"].(string)

	if nation == "" {
		var response struct {
			Nations []string `json:"nations"`
			Default string   `json:"default"`
		}
		if err := c.apiCall("GET", "/api/fleets", nil, &response); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		result := fmt.Sprintf("Nations (%d, default %s):\n%s\n",
			len(response.Nations), response.Default, strings.Join(response.Nations, ", "))
		return mcp.NewToolResultText(result), nil
	}

	var response struct {
		Nation  string         `json:"nation"`
		Vessels []fleet.Vessel `json:"vessels"`
	}
	if err := c.apiCall("GET", "/api/fleets/"+nation, nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Fleet of %s:\n\n", response.Nation)
	for _, v := range response.Vessels {
		fmt.Fprintf(&sb, "- %s (%s, %s, length %d)\n", v.Name, v.Class, v.Kind, v.Length)
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func (c *Client) handleGameInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(gameInstructions), nil
}

const gameInstructions = `ARMADA NAVAL BATTLE - INSTRUCTIONS

SETUP:
Each player commands 5 ships: carrier (5 cells), battleship (4),
cruiser (3), submarine (3), destroyer (2). Ships occupy straight,
contiguous runs of cells and may not overlap. Use place_fleet without
placements for a valid random layout.

TURNS:
Players alternate firing one shot per turn at a coordinate such as
"B7". A shot reports hit or miss; when the last intact cell of a ship
is hit, the whole ship is reported sunk. A cell can only be fired at
once.

BOARD LEGEND (match_state):
  .  unknown / open water
  S  your intact ship cell (never shown on the enemy grid)
  o  miss
  x  hit
  X  cell of a sunk ship

VICTORY:
Sink all 5 enemy ships. The winner keeps the turn; there is no extra
shot after the match finishes.

TIPS:
- Track your shots on the enemy grid; repeating a cell wastes a turn
  and is rejected.
- After a hit, probe the four adjacent cells to find the ship's axis.
- Ships never bend: once two hits line up, extend along that line.`

// formatMatchState renders a snapshot as text: the status line, each
// seat, and an ASCII grid per visible board.
func formatMatchState(viewerID string, state *engine.MatchState) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Match %s (status: %s)\n", state.ID, state.Phase)
	if state.CurrentTurn != "" {
		who := state.CurrentTurn
		if who == viewerID {
			who += " (you)"
		}
		fmt.Fprintf(&sb, "Turn: %s\n", who)
	}
	if state.WinnerID != "" {
		fmt.Fprintf(&sb, "Winner: %s\n", state.WinnerID)
	}

	for _, p := range state.Players {
		label := p.Username
		if p.ID == viewerID {
			label += " (you)"
		}
		fmt.Fprintf(&sb, "\n%s [%s] ready=%t\n", label, p.Nation, p.Ready)
		if p.Board != nil {
			sb.WriteString(formatBoard(p.Board))
		}
	}

	return sb.String()
}

// formatBoard renders one board as a letter-columned grid.
func formatBoard(view *engine.BoardView) string {
	shipCells := make(map[engine.Coord]bool)
	for _, ship := range view.Ships {
		for _, cell := range ship.Cells {
			shipCells[cell] = true
		}
	}

	var sb strings.Builder
	sb.WriteString("   ")
	for x := 0; x < view.Size; x++ {
		fmt.Fprintf(&sb, "%c ", 'A'+x)
	}
	sb.WriteByte('\n')

	for y := 0; y < view.Size; y++ {
		fmt.Fprintf(&sb, "%2d ", y+1)
		for x := 0; x < view.Size; x++ {
			coord := engine.FormatCoord(x, y)
			ch := "."
			if shipCells[coord] {
				ch = "S"
			}
			switch view.Cells[coord] {
			case engine.CellMiss:
				ch = "o"
			case engine.CellHit:
				ch = "x"
			case engine.CellSunk:
				ch = "X"
			}
			sb.WriteString(ch + " ")
		}
		sb.WriteByte('\n')
	}

	return sb.String()
}
